package repository

import (
	"github.com/shopspring/decimal"

	"github.com/luismorales81/agrocloud-sub002/internal/domain/entity"
)

// InsumoRepository define el puerto de persistencia para Insumo (DIP).
type InsumoRepository interface {
	Create(insumo *entity.Insumo) error
	GetByID(id string) (*entity.Insumo, error)
	// GetForUpdate bloquea la fila del insumo (SELECT FOR UPDATE) para
	// serializar actualizaciones concurrentes de stock.
	GetForUpdate(id string) (*entity.Insumo, error)
	Update(insumo *entity.Insumo) error
	UpdateStock(id string, stock decimal.Decimal) error
	List(soloActivos bool, limit, offset int) ([]*entity.Insumo, error)
	// Deactivate baja lógica; un insumo con movimientos nunca se borra.
	Deactivate(id string) error
}
