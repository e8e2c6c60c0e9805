package labor

import (
	"context"

	"github.com/luismorales81/agrocloud-sub002/internal/domain/repository"
)

// TxRunner ejecuta una transición de labor como unidad de trabajo atómica:
// débitos de stock, recálculo de costos y cambio de estado se confirman
// todos o ninguno.
type TxRunner interface {
	RunLabor(ctx context.Context, fn func(
		movRepo repository.MovimientoRepository,
		insumoRepo repository.InsumoRepository,
		laborRepo repository.LaborRepository,
		loteRepo repository.LoteRepository,
	) error) error
}
