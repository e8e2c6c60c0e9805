package memory

import (
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/luismorales81/agrocloud-sub002/internal/domain"
	"github.com/luismorales81/agrocloud-sub002/internal/domain/entity"
	"github.com/luismorales81/agrocloud-sub002/internal/domain/repository"
)

// InsumoRepository implementación en memoria de repository.InsumoRepository.
type InsumoRepository struct {
	store *Store
}

var _ repository.InsumoRepository = (*InsumoRepository)(nil)

// NewInsumoRepository crea el repositorio sobre el Store dado.
func NewInsumoRepository(store *Store) *InsumoRepository {
	return &InsumoRepository{store: store}
}

func (r *InsumoRepository) Create(insumo *entity.Insumo) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.insumos[insumo.ID]; ok {
		return fmt.Errorf("insumo %s: %w", insumo.ID, domain.ErrConflict)
	}
	now := time.Now()
	c := cloneInsumo(insumo)
	c.FechaCreacion = now
	c.FechaActualizacion = now
	r.store.insumos[c.ID] = c
	return nil
}

func (r *InsumoRepository) GetByID(id string) (*entity.Insumo, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	i, ok := r.store.insumos[id]
	if !ok {
		return nil, fmt.Errorf("insumo %s: %w", id, domain.ErrNotFound)
	}
	return cloneInsumo(i), nil
}

// GetForUpdate en memoria equivale a GetByID: la exclusión la da la
// serialización de transacciones del TxRunner.
func (r *InsumoRepository) GetForUpdate(id string) (*entity.Insumo, error) {
	return r.GetByID(id)
}

func (r *InsumoRepository) Update(insumo *entity.Insumo) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	prev, ok := r.store.insumos[insumo.ID]
	if !ok {
		return fmt.Errorf("insumo %s: %w", insumo.ID, domain.ErrNotFound)
	}
	c := cloneInsumo(insumo)
	c.FechaCreacion = prev.FechaCreacion
	c.FechaActualizacion = time.Now()
	r.store.insumos[c.ID] = c
	return nil
}

func (r *InsumoRepository) UpdateStock(id string, stock decimal.Decimal) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	prev, ok := r.store.insumos[id]
	if !ok {
		return fmt.Errorf("insumo %s: %w", id, domain.ErrNotFound)
	}
	c := cloneInsumo(prev)
	c.StockActual = stock
	c.FechaActualizacion = time.Now()
	r.store.insumos[id] = c
	return nil
}

func (r *InsumoRepository) List(soloActivos bool, limit, offset int) ([]*entity.Insumo, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	var out []*entity.Insumo
	for _, i := range r.store.insumos {
		if soloActivos && !i.Activo {
			continue
		}
		out = append(out, cloneInsumo(i))
	}
	sort.Slice(out, func(a, b int) bool { return out[a].Nombre < out[b].Nombre })
	return paginate(out, limit, offset), nil
}

func (r *InsumoRepository) Deactivate(id string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	prev, ok := r.store.insumos[id]
	if !ok {
		return fmt.Errorf("insumo %s: %w", id, domain.ErrNotFound)
	}
	c := cloneInsumo(prev)
	c.Activo = false
	c.FechaActualizacion = time.Now()
	r.store.insumos[id] = c
	return nil
}

func paginate[T any](in []T, limit, offset int) []T {
	if offset >= len(in) {
		return nil
	}
	in = in[offset:]
	if limit > 0 && limit < len(in) {
		in = in[:limit]
	}
	return in
}
