package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RegisterMovementRequest alta manual de un movimiento de inventario.
// Para ENTRADA/SALIDA la cantidad es positiva; para AJUSTE lleva signo.
type RegisterMovementRequest struct {
	InsumoID string          `json:"insumo_id"`
	LaborID  *string         `json:"labor_id,omitempty"`
	Tipo     string          `json:"tipo"`
	Cantidad decimal.Decimal `json:"cantidad"`
	Motivo   string          `json:"motivo"`
}

// MovementResponse un movimiento del libro.
type MovementResponse struct {
	ID       string          `json:"id"`
	InsumoID string          `json:"insumo_id"`
	LaborID  *string         `json:"labor_id,omitempty"`
	Tipo     string          `json:"tipo"`
	Cantidad decimal.Decimal `json:"cantidad"`
	Motivo   string          `json:"motivo"`
	Fecha    time.Time       `json:"fecha"`
	Usuario  string          `json:"usuario_id"`
}

// KardexResponse movimientos de un insumo + stock materializado vigente.
type KardexResponse struct {
	InsumoID    string             `json:"insumo_id"`
	Nombre      string             `json:"nombre"`
	StockActual decimal.Decimal    `json:"stock_actual"`
	Movimientos []MovementResponse `json:"movimientos"`
}
