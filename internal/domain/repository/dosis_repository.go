package repository

import "github.com/luismorales81/agrocloud-sub002/internal/domain/entity"

// DosisRepository define el puerto de lectura/edición del catálogo de reglas
// de dosis. El motor solo lee; el alta/baja pertenece a la gestión de catálogo.
type DosisRepository interface {
	Create(dosis *entity.DosisInsumo) error
	GetByID(id string) (*entity.DosisInsumo, error)
	// Find resuelve la regla activa para (insumo, tipo, forma de aplicación).
	Find(insumoID, tipoAplicacion, formaAplicacion string) (*entity.DosisInsumo, error)
	ListByInsumo(insumoID string) ([]*entity.DosisInsumo, error)
	Deactivate(id string) error
}
