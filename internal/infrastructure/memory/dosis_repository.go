package memory

import (
	"fmt"
	"sort"
	"time"

	"github.com/luismorales81/agrocloud-sub002/internal/domain"
	"github.com/luismorales81/agrocloud-sub002/internal/domain/entity"
	"github.com/luismorales81/agrocloud-sub002/internal/domain/repository"
)

// DosisRepository implementación en memoria del catálogo de reglas de dosis.
type DosisRepository struct {
	store *Store
}

var _ repository.DosisRepository = (*DosisRepository)(nil)

// NewDosisRepository crea el repositorio sobre el Store dado.
func NewDosisRepository(store *Store) *DosisRepository {
	return &DosisRepository{store: store}
}

func (r *DosisRepository) Create(dosis *entity.DosisInsumo) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.dosis[dosis.ID]; ok {
		return fmt.Errorf("dosis %s: %w", dosis.ID, domain.ErrConflict)
	}
	now := time.Now()
	c := cloneDosis(dosis)
	c.FechaCreacion = now
	c.FechaActualizacion = now
	r.store.dosis[c.ID] = c
	return nil
}

func (r *DosisRepository) GetByID(id string) (*entity.DosisInsumo, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	d, ok := r.store.dosis[id]
	if !ok {
		return nil, fmt.Errorf("dosis %s: %w", id, domain.ErrNotFound)
	}
	return cloneDosis(d), nil
}

func (r *DosisRepository) Find(insumoID, tipoAplicacion, formaAplicacion string) (*entity.DosisInsumo, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	for _, d := range r.store.dosis {
		if d.Activo && d.InsumoID == insumoID &&
			d.TipoAplicacion == tipoAplicacion && d.FormaAplicacion == formaAplicacion {
			return cloneDosis(d), nil
		}
	}
	return nil, fmt.Errorf("regla de dosis para insumo %s (%s/%s): %w",
		insumoID, tipoAplicacion, formaAplicacion, domain.ErrNotFound)
}

func (r *DosisRepository) ListByInsumo(insumoID string) ([]*entity.DosisInsumo, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	var out []*entity.DosisInsumo
	for _, d := range r.store.dosis {
		if d.InsumoID == insumoID {
			out = append(out, cloneDosis(d))
		}
	}
	sort.Slice(out, func(a, b int) bool { return out[a].ID < out[b].ID })
	return out, nil
}

func (r *DosisRepository) Deactivate(id string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	prev, ok := r.store.dosis[id]
	if !ok {
		return fmt.Errorf("dosis %s: %w", id, domain.ErrNotFound)
	}
	c := cloneDosis(prev)
	c.Activo = false
	c.FechaActualizacion = time.Now()
	r.store.dosis[id] = c
	return nil
}
