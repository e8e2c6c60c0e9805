package labor

import (
	"context"
	"fmt"

	"github.com/luismorales81/agrocloud-sub002/internal/domain"
	"github.com/luismorales81/agrocloud-sub002/internal/domain/entity"
	"github.com/luismorales81/agrocloud-sub002/internal/domain/repository"
)

// ReportePDFGenerator genera la representación PDF del informe de costos de
// una labor. La implementación vive en infraestructura.
type ReportePDFGenerator interface {
	GenerarReporteLabor(ctx context.Context, lab *entity.Labor, lote *entity.Lote, nombresInsumo map[string]string) ([]byte, error)
}

// ReporteUseCase arma el informe de costos de una labor en PDF.
type ReporteUseCase struct {
	laborRepo  repository.LaborRepository
	loteRepo   repository.LoteRepository
	insumoRepo repository.InsumoRepository
	gen        ReportePDFGenerator
}

// NewReporteUseCase construye el caso de uso de reportes.
func NewReporteUseCase(
	laborRepo repository.LaborRepository,
	loteRepo repository.LoteRepository,
	insumoRepo repository.InsumoRepository,
	gen ReportePDFGenerator,
) *ReporteUseCase {
	return &ReporteUseCase{laborRepo: laborRepo, loteRepo: loteRepo, insumoRepo: insumoRepo, gen: gen}
}

// PDF genera el informe de costos de la labor y devuelve sus bytes.
func (uc *ReporteUseCase) PDF(ctx context.Context, laborID string) ([]byte, error) {
	lab, err := uc.laborRepo.GetByID(laborID)
	if err != nil {
		return nil, err
	}
	if lab == nil {
		return nil, fmt.Errorf("%w: labor %s", domain.ErrNotFound, laborID)
	}
	lt, err := uc.loteRepo.GetByID(lab.LoteID)
	if err != nil {
		return nil, err
	}

	nombres := make(map[string]string, len(lab.Insumos))
	for _, li := range lab.Insumos {
		if _, ok := nombres[li.InsumoID]; ok {
			continue
		}
		insumo, err := uc.insumoRepo.GetByID(li.InsumoID)
		if err != nil || insumo == nil {
			nombres[li.InsumoID] = li.InsumoID
			continue
		}
		nombres[li.InsumoID] = insumo.Nombre
	}

	return uc.gen.GenerarReporteLabor(ctx, lab, lt, nombres)
}
