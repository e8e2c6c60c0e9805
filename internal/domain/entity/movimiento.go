package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento de inventario.
const (
	MovimientoEntrada = "ENTRADA" // ingreso de stock (compra, reversión por anulación)
	MovimientoSalida  = "SALIDA"  // consumo (aplicación en una labor)
	MovimientoAjuste  = "AJUSTE"  // corrección manual, con signo
)

// MovimientoInventario es una entrada del libro de inventario. El libro es
// append-only: las reversiones se registran como movimientos compensatorios,
// nunca editando ni borrando movimientos históricos. Cantidad lleva signo
// (negativa en salidas) para que el stock materializado del insumo sea siempre
// la suma de sus movimientos.
type MovimientoInventario struct {
	ID            string
	InsumoID      string
	LaborID       *string // labor que originó el movimiento, si corresponde
	Tipo          string
	Cantidad      decimal.Decimal
	Motivo        string
	Fecha         time.Time
	UsuarioID     string
	FechaCreacion time.Time
}
