package lote

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/luismorales81/agrocloud-sub002/internal/domain"
	"github.com/luismorales81/agrocloud-sub002/internal/domain/entity"
	domainlote "github.com/luismorales81/agrocloud-sub002/internal/domain/lote"
	"github.com/luismorales81/agrocloud-sub002/internal/domain/repository"
	"github.com/luismorales81/agrocloud-sub002/pkg/logger"
)

// Vigencia de una propuesta pendiente de confirmación.
const vigenciaPropuesta = 30 * time.Minute

// Propuesta es un cambio de estado de lote pendiente. Es efímera: vive en
// memoria hasta confirmarse, cancelarse o vencer; no se persiste como entidad.
type Propuesta struct {
	ID              string
	LoteID          string
	EstadoActual    entity.EstadoLote
	EstadoPropuesto entity.EstadoLote
	Motivo          string
	LaborID         *string
	Creada          time.Time
}

// PropuestaInput entrada para proponer un cambio de estado.
type PropuestaInput struct {
	LoteID      string
	NuevoEstado entity.EstadoLote
	Motivo      string
	LaborID     *string
}

// ResultadoPropuesta es la respuesta del paso de proposición.
type ResultadoPropuesta struct {
	PropuestaID          string
	EstadoActual         entity.EstadoLote
	EstadoPropuesto      entity.EstadoLote
	RequiereConfirmacion bool
	Consecuencias        []string
}

// UseCase implementa el protocolo de dos pasos proponer → confirmar/cancelar
// para cambiar el estado de cultivo de un lote, evitando cambios silenciosos.
type UseCase struct {
	loteRepo repository.LoteRepository
	log      *logger.Logger

	mu         sync.Mutex
	propuestas map[string]*Propuesta
	ahora      func() time.Time
}

// NewUseCase construye el workflow de estados de lote.
func NewUseCase(loteRepo repository.LoteRepository, log *logger.Logger) *UseCase {
	return &UseCase{
		loteRepo:   loteRepo,
		log:        log,
		propuestas: make(map[string]*Propuesta),
		ahora:      time.Now,
	}
}

// Proponer valida la transición contra el grafo de estados y devuelve si
// requiere confirmación humana junto con sus consecuencias. No cambia estado.
func (uc *UseCase) Proponer(ctx context.Context, input PropuestaInput) (*ResultadoPropuesta, error) {
	if input.LoteID == "" || input.NuevoEstado == "" {
		return nil, fmt.Errorf("%w: lote y estado propuesto son obligatorios", domain.ErrEntradaInvalida)
	}
	lt, err := uc.loteRepo.GetByID(input.LoteID)
	if err != nil {
		return nil, err
	}
	if lt == nil {
		return nil, fmt.Errorf("%w: lote %s", domain.ErrNotFound, input.LoteID)
	}
	if !domainlote.TransicionValida(lt.Estado, input.NuevoEstado) {
		return nil, fmt.Errorf("transición de lote %s → %s: %w",
			lt.Estado, input.NuevoEstado, domain.ErrTransicionInvalida)
	}

	prop := &Propuesta{
		ID:              uuid.New().String(),
		LoteID:          input.LoteID,
		EstadoActual:    lt.Estado,
		EstadoPropuesto: input.NuevoEstado,
		Motivo:          input.Motivo,
		LaborID:         input.LaborID,
		Creada:          uc.ahora(),
	}
	uc.mu.Lock()
	uc.purgarVencidasLocked()
	uc.propuestas[prop.ID] = prop
	uc.mu.Unlock()

	return &ResultadoPropuesta{
		PropuestaID:          prop.ID,
		EstadoActual:         lt.Estado,
		EstadoPropuesto:      input.NuevoEstado,
		RequiereConfirmacion: domainlote.RequiereConfirmacion(lt.Estado, input.NuevoEstado),
		Consecuencias:        domainlote.Consecuencias(lt.Estado, input.NuevoEstado),
	}, nil
}

// Confirmar finaliza una propuesta: con confirm=true persiste el nuevo
// estado; con confirm=false la descarta sin efectos. En ambos casos la
// propuesta deja de existir.
func (uc *UseCase) Confirmar(ctx context.Context, propuestaID string, confirm bool, motivo string) error {
	uc.mu.Lock()
	prop, ok := uc.propuestas[propuestaID]
	if ok {
		delete(uc.propuestas, propuestaID)
	}
	uc.mu.Unlock()
	if !ok || uc.ahora().Sub(prop.Creada) > vigenciaPropuesta {
		return fmt.Errorf("%w: propuesta %s", domain.ErrNotFound, propuestaID)
	}
	if !confirm {
		uc.log.Info().Str("lote_id", prop.LoteID).Str("propuesta_id", propuestaID).Msg("propuesta de cambio de estado descartada")
		return nil
	}

	// Revalidar contra el estado vigente: el lote pudo cambiar entre la
	// proposición y la confirmación.
	lt, err := uc.loteRepo.GetByID(prop.LoteID)
	if err != nil {
		return err
	}
	if lt == nil {
		return fmt.Errorf("%w: lote %s", domain.ErrNotFound, prop.LoteID)
	}
	if err := domainlote.Transicionar(lt, prop.EstadoPropuesto); err != nil {
		return fmt.Errorf("confirmar propuesta %s (lote en %s): %w", propuestaID, lt.Estado, err)
	}
	if err := uc.loteRepo.UpdateEstado(lt.ID, lt.Estado); err != nil {
		return err
	}
	uc.log.Info().
		Str("lote_id", lt.ID).
		Str("estado", string(lt.Estado)).
		Str("motivo", motivo).
		Msg("estado de lote actualizado")
	return nil
}

// Crear da de alta un lote en estado DISPONIBLE.
func (uc *UseCase) Crear(ctx context.Context, lt *entity.Lote) (*entity.Lote, error) {
	if lt.Nombre == "" || !lt.SuperficieHa.IsPositive() {
		return nil, fmt.Errorf("%w: nombre y superficie positiva son obligatorios", domain.ErrEntradaInvalida)
	}
	lt.ID = uuid.New().String()
	lt.Estado = entity.LoteDisponible
	lt.Activo = true
	if err := uc.loteRepo.Create(lt); err != nil {
		return nil, err
	}
	return lt, nil
}

// GetByID obtiene un lote por ID.
func (uc *UseCase) GetByID(ctx context.Context, id string) (*entity.Lote, error) {
	lt, err := uc.loteRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if lt == nil {
		return nil, fmt.Errorf("%w: lote %s", domain.ErrNotFound, id)
	}
	return lt, nil
}

// List lista lotes.
func (uc *UseCase) List(ctx context.Context, limit, offset int) ([]*entity.Lote, error) {
	return uc.loteRepo.List(limit, offset)
}

// purgarVencidasLocked elimina propuestas vencidas. Caller sostiene el mutex.
func (uc *UseCase) purgarVencidasLocked() {
	limite := uc.ahora().Add(-vigenciaPropuesta)
	for id, p := range uc.propuestas {
		if p.Creada.Before(limite) {
			delete(uc.propuestas, id)
		}
	}
}
