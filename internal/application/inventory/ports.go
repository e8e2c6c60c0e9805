package inventory

import (
	"context"

	"github.com/luismorales81/agrocloud-sub002/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción, pasando repositorios
// atados a esa transacción. Garantiza que el alta del movimiento y la
// actualización del stock materializado sean una sola unidad atómica.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		movRepo repository.MovimientoRepository,
		insumoRepo repository.InsumoRepository,
	) error) error
}
