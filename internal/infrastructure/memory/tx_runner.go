package memory

import (
	"context"
	"sync"

	"github.com/luismorales81/agrocloud-sub002/internal/application/inventory"
	"github.com/luismorales81/agrocloud-sub002/internal/application/labor"
	"github.com/luismorales81/agrocloud-sub002/internal/domain/repository"
)

// TxRunner simula transacciones sobre el Store: toma una instantánea antes de
// ejecutar la función y la restaura si falla. Las transacciones se serializan
// con un mutex propio, lo que equivale a aislamiento serializable.
type TxRunner struct {
	store *Store
	txMu  sync.Mutex

	insumoRepo *InsumoRepository
	movRepo    *MovimientoRepository
	laborRepo  *LaborRepository
	loteRepo   *LoteRepository
}

var _ inventory.TxRunner = (*TxRunner)(nil)
var _ labor.TxRunner = (*TxRunner)(nil)

// NewTxRunner crea el runner sobre el Store dado.
func NewTxRunner(store *Store) *TxRunner {
	return &TxRunner{
		store:      store,
		insumoRepo: NewInsumoRepository(store),
		movRepo:    NewMovimientoRepository(store),
		laborRepo:  NewLaborRepository(store),
		loteRepo:   NewLoteRepository(store),
	}
}

// Run ejecuta fn como unidad atómica sobre movimientos e insumos.
func (t *TxRunner) Run(ctx context.Context, fn func(
	movRepo repository.MovimientoRepository,
	insumoRepo repository.InsumoRepository,
) error) error {
	return t.atomic(ctx, func() error {
		return fn(t.movRepo, t.insumoRepo)
	})
}

// RunLabor ejecuta fn como unidad atómica sobre el estado completo del motor.
func (t *TxRunner) RunLabor(ctx context.Context, fn func(
	movRepo repository.MovimientoRepository,
	insumoRepo repository.InsumoRepository,
	laborRepo repository.LaborRepository,
	loteRepo repository.LoteRepository,
) error) error {
	return t.atomic(ctx, func() error {
		return fn(t.movRepo, t.insumoRepo, t.laborRepo, t.loteRepo)
	})
}

func (t *TxRunner) atomic(ctx context.Context, fn func() error) error {
	t.txMu.Lock()
	defer t.txMu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}

	t.store.mu.Lock()
	sn := t.store.snapshotLocked()
	t.store.mu.Unlock()

	if err := fn(); err != nil {
		t.store.mu.Lock()
		t.store.restoreLocked(sn)
		t.store.mu.Unlock()
		return err
	}
	return nil
}
