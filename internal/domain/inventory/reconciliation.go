// Package inventory contiene servicios de dominio del libro de inventario.
package inventory

import (
	"github.com/shopspring/decimal"

	"github.com/luismorales81/agrocloud-sub002/internal/domain/entity"
)

// SumaMovimientos devuelve la suma con signo de una serie de movimientos.
// Invariante del libro: el stock materializado de un insumo debe ser siempre
// igual a la suma de todos sus movimientos.
func SumaMovimientos(movs []*entity.MovimientoInventario) decimal.Decimal {
	total := decimal.Zero
	for _, m := range movs {
		total = total.Add(m.Cantidad)
	}
	return total
}

// CantidadConSigno normaliza la cantidad según el tipo de movimiento:
// las salidas se almacenan negativas, las entradas positivas y los ajustes
// conservan el signo que traen.
func CantidadConSigno(tipo string, cantidad decimal.Decimal) decimal.Decimal {
	switch tipo {
	case entity.MovimientoSalida:
		return cantidad.Abs().Neg()
	case entity.MovimientoEntrada:
		return cantidad.Abs()
	default:
		return cantidad
	}
}
