package memory

import (
	"fmt"
	"sort"
	"time"

	"github.com/luismorales81/agrocloud-sub002/internal/domain"
	"github.com/luismorales81/agrocloud-sub002/internal/domain/entity"
	"github.com/luismorales81/agrocloud-sub002/internal/domain/repository"
)

// LaborRepository implementación en memoria de repository.LaborRepository.
type LaborRepository struct {
	store *Store
}

var _ repository.LaborRepository = (*LaborRepository)(nil)

// NewLaborRepository crea el repositorio sobre el Store dado.
func NewLaborRepository(store *Store) *LaborRepository {
	return &LaborRepository{store: store}
}

func (r *LaborRepository) Create(labor *entity.Labor) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.labores[labor.ID]; ok {
		return fmt.Errorf("labor %s: %w", labor.ID, domain.ErrConflict)
	}
	now := time.Now()
	c := cloneLabor(labor)
	c.FechaCreacion = now
	c.FechaActualizacion = now
	r.store.labores[c.ID] = c
	return nil
}

func (r *LaborRepository) GetByID(id string) (*entity.Labor, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	l, ok := r.store.labores[id]
	if !ok {
		return nil, fmt.Errorf("labor %s: %w", id, domain.ErrNotFound)
	}
	return cloneLabor(l), nil
}

func (r *LaborRepository) Update(labor *entity.Labor) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	prev, ok := r.store.labores[labor.ID]
	if !ok {
		return fmt.Errorf("labor %s: %w", labor.ID, domain.ErrNotFound)
	}
	c := cloneLabor(labor)
	c.FechaCreacion = prev.FechaCreacion
	c.FechaActualizacion = time.Now()
	r.store.labores[c.ID] = c
	return nil
}

func (r *LaborRepository) Delete(id string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.labores[id]; !ok {
		return fmt.Errorf("labor %s: %w", id, domain.ErrNotFound)
	}
	delete(r.store.labores, id)
	return nil
}

func (r *LaborRepository) ListByLote(loteID string, limit, offset int) ([]*entity.Labor, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	var out []*entity.Labor
	for _, l := range r.store.labores {
		if l.LoteID == loteID {
			out = append(out, cloneLabor(l))
		}
	}
	sortLabores(out)
	return paginate(out, limit, offset), nil
}

func (r *LaborRepository) ListByEstado(estado entity.EstadoLabor, limit, offset int) ([]*entity.Labor, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	var out []*entity.Labor
	for _, l := range r.store.labores {
		if l.Estado == estado {
			out = append(out, cloneLabor(l))
		}
	}
	sortLabores(out)
	return paginate(out, limit, offset), nil
}

func (r *LaborRepository) ListLineasByInsumo(insumoID string) ([]*entity.LaborInsumo, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	var labores []*entity.Labor
	for _, l := range r.store.labores {
		if l.Estado == entity.LaborCompletada {
			labores = append(labores, l)
		}
	}
	sortLabores(labores)
	var out []*entity.LaborInsumo
	for _, l := range labores {
		for _, li := range l.Insumos {
			if li.InsumoID == insumoID {
				c := li
				out = append(out, &c)
			}
		}
	}
	return out, nil
}

// sortLabores ordena por fecha de inicio descendente, con el ID como desempate
// para que los listados sean deterministas.
func sortLabores(ls []*entity.Labor) {
	sort.Slice(ls, func(a, b int) bool {
		if !ls[a].FechaInicio.Equal(ls[b].FechaInicio) {
			return ls[a].FechaInicio.After(ls[b].FechaInicio)
		}
		return ls[a].ID < ls[b].ID
	})
}
