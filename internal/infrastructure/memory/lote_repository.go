package memory

import (
	"fmt"
	"sort"
	"time"

	"github.com/luismorales81/agrocloud-sub002/internal/domain"
	"github.com/luismorales81/agrocloud-sub002/internal/domain/entity"
	"github.com/luismorales81/agrocloud-sub002/internal/domain/repository"
)

// LoteRepository implementación en memoria de repository.LoteRepository.
type LoteRepository struct {
	store *Store
}

var _ repository.LoteRepository = (*LoteRepository)(nil)

// NewLoteRepository crea el repositorio sobre el Store dado.
func NewLoteRepository(store *Store) *LoteRepository {
	return &LoteRepository{store: store}
}

func (r *LoteRepository) Create(lote *entity.Lote) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.lotes[lote.ID]; ok {
		return fmt.Errorf("lote %s: %w", lote.ID, domain.ErrConflict)
	}
	now := time.Now()
	c := cloneLote(lote)
	c.FechaCreacion = now
	c.FechaActualizacion = now
	r.store.lotes[c.ID] = c
	return nil
}

func (r *LoteRepository) GetByID(id string) (*entity.Lote, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	l, ok := r.store.lotes[id]
	if !ok {
		return nil, fmt.Errorf("lote %s: %w", id, domain.ErrNotFound)
	}
	return cloneLote(l), nil
}

func (r *LoteRepository) Update(lote *entity.Lote) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	prev, ok := r.store.lotes[lote.ID]
	if !ok {
		return fmt.Errorf("lote %s: %w", lote.ID, domain.ErrNotFound)
	}
	c := cloneLote(lote)
	c.FechaCreacion = prev.FechaCreacion
	c.FechaActualizacion = time.Now()
	r.store.lotes[c.ID] = c
	return nil
}

func (r *LoteRepository) UpdateEstado(id string, estado entity.EstadoLote) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	prev, ok := r.store.lotes[id]
	if !ok {
		return fmt.Errorf("lote %s: %w", id, domain.ErrNotFound)
	}
	c := cloneLote(prev)
	c.Estado = estado
	c.FechaActualizacion = time.Now()
	r.store.lotes[id] = c
	return nil
}

func (r *LoteRepository) List(limit, offset int) ([]*entity.Lote, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	var out []*entity.Lote
	for _, l := range r.store.lotes {
		out = append(out, cloneLote(l))
	}
	sort.Slice(out, func(a, b int) bool { return out[a].Nombre < out[b].Nombre })
	return paginate(out, limit, offset), nil
}
