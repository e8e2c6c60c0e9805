package catalogo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/luismorales81/agrocloud-sub002/internal/application/dto"
	"github.com/luismorales81/agrocloud-sub002/internal/domain"
	"github.com/luismorales81/agrocloud-sub002/internal/domain/entity"
	"github.com/luismorales81/agrocloud-sub002/internal/domain/repository"
)

var (
	tiposAplicacion = map[string]bool{
		entity.TipoAplicacionSiembra:       true,
		entity.TipoAplicacionPreEmergente:  true,
		entity.TipoAplicacionPostEmergente: true,
		entity.TipoAplicacionFoliar:        true,
	}
	formasAplicacion = map[string]bool{
		entity.FormaAplicacionTerrestre: true,
		entity.FormaAplicacionAerea:     true,
		entity.FormaAplicacionManual:    true,
	}
)

// DosisUseCase casos de uso CRUD para el catálogo de reglas de dosis.
type DosisUseCase struct {
	repo       repository.DosisRepository
	insumoRepo repository.InsumoRepository
}

// NewDosisUseCase construye el caso de uso.
func NewDosisUseCase(repo repository.DosisRepository, insumoRepo repository.InsumoRepository) *DosisUseCase {
	return &DosisUseCase{repo: repo, insumoRepo: insumoRepo}
}

// Create da de alta una regla de dosis. La unidad se deriva de la unidad de
// medida del insumo; una regla activa por (insumo, tipo, forma).
func (uc *DosisUseCase) Create(ctx context.Context, in dto.CreateDosisRequest) (*dto.DosisResponse, error) {
	if in.InsumoID == "" || in.TipoAplicacion == "" || in.FormaAplicacion == "" {
		return nil, fmt.Errorf("%w: insumo, tipo y forma de aplicación son obligatorios", domain.ErrEntradaInvalida)
	}
	if !tiposAplicacion[in.TipoAplicacion] {
		return nil, fmt.Errorf("%w: tipo de aplicación desconocido %q", domain.ErrEntradaInvalida, in.TipoAplicacion)
	}
	if !formasAplicacion[in.FormaAplicacion] {
		return nil, fmt.Errorf("%w: forma de aplicación desconocida %q", domain.ErrEntradaInvalida, in.FormaAplicacion)
	}
	if !in.DosisRecomendadaPorHa.IsPositive() {
		return nil, fmt.Errorf("%w: la dosis recomendada debe ser positiva", domain.ErrEntradaInvalida)
	}

	insumo, err := uc.insumoRepo.GetByID(in.InsumoID)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}
	if insumo == nil {
		return nil, fmt.Errorf("insumo %s: %w", in.InsumoID, domain.ErrNotFound)
	}
	if !insumo.EsAgroquimico() {
		return nil, fmt.Errorf("%w: el insumo %s no es un agroquímico", domain.ErrEntradaInvalida, insumo.Nombre)
	}

	existente, err := uc.repo.Find(in.InsumoID, in.TipoAplicacion, in.FormaAplicacion)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}
	if existente != nil {
		return nil, fmt.Errorf("%w: ya existe una regla activa para ese insumo, tipo y forma", domain.ErrConflict)
	}

	dosis := &entity.DosisInsumo{
		ID:                    uuid.New().String(),
		InsumoID:              in.InsumoID,
		TipoAplicacion:        in.TipoAplicacion,
		FormaAplicacion:       in.FormaAplicacion,
		DosisRecomendadaPorHa: in.DosisRecomendadaPorHa,
		Unidad:                entity.UnidadDosis(insumo.UnidadMedida),
		Activo:                true,
	}
	if err := uc.repo.Create(dosis); err != nil {
		return nil, err
	}
	return toDosisResponse(dosis), nil
}

// ListByInsumo lista todas las reglas de un insumo.
func (uc *DosisUseCase) ListByInsumo(ctx context.Context, insumoID string) ([]dto.DosisResponse, error) {
	reglas, err := uc.repo.ListByInsumo(insumoID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.DosisResponse, 0, len(reglas))
	for _, d := range reglas {
		out = append(out, *toDosisResponse(d))
	}
	return out, nil
}

// Deactivate baja lógica de la regla.
func (uc *DosisUseCase) Deactivate(ctx context.Context, id string) error {
	return uc.repo.Deactivate(id)
}

func toDosisResponse(d *entity.DosisInsumo) *dto.DosisResponse {
	return &dto.DosisResponse{
		ID:                    d.ID,
		InsumoID:              d.InsumoID,
		TipoAplicacion:        d.TipoAplicacion,
		FormaAplicacion:       d.FormaAplicacion,
		DosisRecomendadaPorHa: d.DosisRecomendadaPorHa,
		Unidad:                d.Unidad,
		Activo:                d.Activo,
	}
}
