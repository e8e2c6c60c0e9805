// Package agroquimico expone el cálculo de dosis del catálogo y las
// estadísticas de desvío sobre aplicaciones históricas.
package agroquimico

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/luismorales81/agrocloud-sub002/internal/domain"
	"github.com/luismorales81/agrocloud-sub002/internal/domain/dosage"
	"github.com/luismorales81/agrocloud-sub002/internal/domain/repository"
)

// UseCase resuelve reglas de dosis y delega el cálculo en el servicio de
// dominio puro. Nunca muta stock: solo aconseja; el motor de labores decide
// cuánto debitar en la ejecución.
type UseCase struct {
	dosisRepo  repository.DosisRepository
	insumoRepo repository.InsumoRepository
	loteRepo   repository.LoteRepository
	laborRepo  repository.LaborRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(
	dosisRepo repository.DosisRepository,
	insumoRepo repository.InsumoRepository,
	loteRepo repository.LoteRepository,
	laborRepo repository.LaborRepository,
) *UseCase {
	return &UseCase{dosisRepo: dosisRepo, insumoRepo: insumoRepo, loteRepo: loteRepo, laborRepo: laborRepo}
}

// CalcularInput entrada para el cálculo de cantidad necesaria.
type CalcularInput struct {
	InsumoID           string
	LoteID             string
	TipoAplicacion     string
	FormaAplicacion    string
	DosisPersonalizada *decimal.Decimal
}

// CalcularCantidadNecesaria resuelve la regla de dosis para (insumo, tipo,
// forma) y calcula cantidad necesaria, veredicto de stock y clasificación del
// desvío si hay dosis personalizada.
func (uc *UseCase) CalcularCantidadNecesaria(ctx context.Context, input CalcularInput) (*dosage.Resultado, error) {
	insumo, err := uc.insumoRepo.GetByID(input.InsumoID)
	if err != nil {
		return nil, err
	}
	if insumo == nil {
		return nil, fmt.Errorf("%w: insumo %s", domain.ErrNotFound, input.InsumoID)
	}
	lt, err := uc.loteRepo.GetByID(input.LoteID)
	if err != nil {
		return nil, err
	}
	if lt == nil {
		return nil, fmt.Errorf("%w: lote %s", domain.ErrNotFound, input.LoteID)
	}
	regla, err := uc.dosisRepo.Find(input.InsumoID, input.TipoAplicacion, input.FormaAplicacion)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}
	if regla == nil {
		return nil, fmt.Errorf("%w: insumo %s, %s/%s",
			domain.ErrSinReglaDosis, input.InsumoID, input.TipoAplicacion, input.FormaAplicacion)
	}

	res := dosage.Calcular(regla, insumo, lt.SuperficieHa, input.DosisPersonalizada)
	return &res, nil
}

// EstadisticasDesvio agrega los desvíos planificado-vs-usado de todas las
// aplicaciones históricas de un insumo.
func (uc *UseCase) EstadisticasDesvio(ctx context.Context, insumoID string) (*dosage.Estadisticas, error) {
	lineas, err := uc.laborRepo.ListLineasByInsumo(insumoID)
	if err != nil {
		return nil, err
	}
	var desvios []decimal.Decimal
	for _, l := range lineas {
		if l.CantidadUsada.IsZero() || l.CantidadPlanificada.IsZero() {
			continue
		}
		desvios = append(desvios, dosage.Desvio(l.CantidadPlanificada, l.CantidadUsada))
	}
	est := dosage.AgregarDesvios(desvios)
	return &est, nil
}
