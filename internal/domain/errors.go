package domain

import "errors"

// Errores de dominio (sin dependencias externas). El motor nunca reintenta:
// cada error es un resultado terminal que el caller corrige y reenvía.
var (
	ErrNotFound               = errors.New("recurso no encontrado")
	ErrEntradaInvalida        = errors.New("entrada inválida")
	ErrTransicionInvalida     = errors.New("transición de estado inválida")
	ErrStockInsuficiente      = errors.New("stock insuficiente")
	ErrJustificacionRequerida = errors.New("se requiere justificación")
	ErrSinReglaDosis          = errors.New("no existe regla de dosis para el tipo y forma de aplicación")
	ErrEmailYaRegistrado      = errors.New("el email ya está registrado")
	ErrUnauthorized           = errors.New("no autorizado")
	ErrForbidden              = errors.New("acceso denegado")
	ErrConflict               = errors.New("conflicto con el estado actual")
)
