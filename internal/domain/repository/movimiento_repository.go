package repository

import (
	"time"

	"github.com/luismorales81/agrocloud-sub002/internal/domain/entity"
)

// MovimientoRepository define el puerto de persistencia del libro de
// movimientos. El libro es append-only: no hay Update ni Delete.
type MovimientoRepository interface {
	Append(mov *entity.MovimientoInventario) error
	GetByID(id string) (*entity.MovimientoInventario, error)
	ListByInsumo(insumoID string, from, to *time.Time, limit, offset int) ([]*entity.MovimientoInventario, error)
	ListByLabor(laborID string) ([]*entity.MovimientoInventario, error)
}
