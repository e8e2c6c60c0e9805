package memory

import (
	"fmt"
	"time"

	"github.com/luismorales81/agrocloud-sub002/internal/domain"
	"github.com/luismorales81/agrocloud-sub002/internal/domain/entity"
	"github.com/luismorales81/agrocloud-sub002/internal/domain/repository"
)

// MovimientoRepository implementación en memoria del libro de movimientos.
// Solo se agrega; no existen Update ni Delete.
type MovimientoRepository struct {
	store *Store
}

var _ repository.MovimientoRepository = (*MovimientoRepository)(nil)

// NewMovimientoRepository crea el repositorio sobre el Store dado.
func NewMovimientoRepository(store *Store) *MovimientoRepository {
	return &MovimientoRepository{store: store}
}

func (r *MovimientoRepository) Append(mov *entity.MovimientoInventario) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.movimientos[mov.ID]; ok {
		return fmt.Errorf("movimiento %s: %w", mov.ID, domain.ErrConflict)
	}
	c := cloneMovimiento(mov)
	if c.FechaCreacion.IsZero() {
		c.FechaCreacion = time.Now()
	}
	r.store.movimientos[c.ID] = c
	r.store.ordenMovs = append(r.store.ordenMovs, c.ID)
	return nil
}

func (r *MovimientoRepository) GetByID(id string) (*entity.MovimientoInventario, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	m, ok := r.store.movimientos[id]
	if !ok {
		return nil, fmt.Errorf("movimiento %s: %w", id, domain.ErrNotFound)
	}
	return cloneMovimiento(m), nil
}

func (r *MovimientoRepository) ListByInsumo(insumoID string, from, to *time.Time, limit, offset int) ([]*entity.MovimientoInventario, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	var out []*entity.MovimientoInventario
	for _, id := range r.store.ordenMovs {
		m := r.store.movimientos[id]
		if m.InsumoID != insumoID {
			continue
		}
		if from != nil && m.Fecha.Before(*from) {
			continue
		}
		if to != nil && m.Fecha.After(*to) {
			continue
		}
		out = append(out, cloneMovimiento(m))
	}
	return paginate(out, limit, offset), nil
}

func (r *MovimientoRepository) ListByLabor(laborID string) ([]*entity.MovimientoInventario, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	var out []*entity.MovimientoInventario
	for _, id := range r.store.ordenMovs {
		m := r.store.movimientos[id]
		if m.LaborID != nil && *m.LaborID == laborID {
			out = append(out, cloneMovimiento(m))
		}
	}
	return out, nil
}
