// Package catalogo contiene los casos de uso CRUD de los catálogos del motor:
// insumos y reglas de dosis. El stock de los insumos no se edita acá; solo
// cambia a través del libro de movimientos de inventario.
package catalogo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/luismorales81/agrocloud-sub002/internal/application/dto"
	"github.com/luismorales81/agrocloud-sub002/internal/application/inventory"
	"github.com/luismorales81/agrocloud-sub002/internal/domain"
	"github.com/luismorales81/agrocloud-sub002/internal/domain/entity"
	"github.com/luismorales81/agrocloud-sub002/internal/domain/repository"
)

var tiposInsumo = map[string]bool{
	entity.TipoInsumoFertilizante: true,
	entity.TipoInsumoHerbicida:    true,
	entity.TipoInsumoFungicida:    true,
	entity.TipoInsumoInsecticida:  true,
	entity.TipoInsumoSemilla:      true,
	entity.TipoInsumoCombustible:  true,
	entity.TipoInsumoOtros:        true,
}

// InsumoUseCase casos de uso CRUD para insumos.
type InsumoUseCase struct {
	repo   repository.InsumoRepository
	ledger *inventory.LedgerUseCase
}

// NewInsumoUseCase construye el caso de uso. El ledger se usa para registrar
// el stock inicial como movimiento de ENTRADA y preservar la conciliación.
func NewInsumoUseCase(repo repository.InsumoRepository, ledger *inventory.LedgerUseCase) *InsumoUseCase {
	return &InsumoUseCase{repo: repo, ledger: ledger}
}

// Create da de alta un insumo. El stock inicial, si viene, se registra como
// movimiento de ENTRADA: el stock materializado nunca se fija a mano.
func (uc *InsumoUseCase) Create(ctx context.Context, usuarioID string, in dto.CreateInsumoRequest) (*dto.InsumoResponse, error) {
	if in.Nombre == "" || in.Tipo == "" || in.UnidadMedida == "" {
		return nil, fmt.Errorf("%w: nombre, tipo y unidad de medida son obligatorios", domain.ErrEntradaInvalida)
	}
	if !tiposInsumo[in.Tipo] {
		return nil, fmt.Errorf("%w: tipo de insumo desconocido %q", domain.ErrEntradaInvalida, in.Tipo)
	}
	if in.PrecioUnitario.IsNegative() || in.StockMinimo.IsNegative() || in.StockInicial.IsNegative() {
		return nil, fmt.Errorf("%w: precio, stock mínimo y stock inicial no pueden ser negativos", domain.ErrEntradaInvalida)
	}

	insumo := &entity.Insumo{
		ID:               uuid.New().String(),
		Nombre:           in.Nombre,
		Descripcion:      in.Descripcion,
		Tipo:             in.Tipo,
		UnidadMedida:     in.UnidadMedida,
		PrecioUnitario:   in.PrecioUnitario,
		StockMinimo:      in.StockMinimo,
		StockActual:      decimal.Zero,
		Proveedor:        in.Proveedor,
		PrincipioActivo:  in.PrincipioActivo,
		ClaseQuimica:     in.ClaseQuimica,
		CarenciaDias:     in.CarenciaDias,
		DosisMinimaPorHa: in.DosisMinimaPorHa,
		DosisMaximaPorHa: in.DosisMaximaPorHa,
		Activo:           true,
	}
	if err := uc.repo.Create(insumo); err != nil {
		return nil, err
	}

	if in.StockInicial.IsPositive() {
		_, err := uc.ledger.RegistrarMovimiento(ctx, inventory.MovimientoInput{
			InsumoID:  insumo.ID,
			Tipo:      entity.MovimientoEntrada,
			Cantidad:  in.StockInicial,
			Motivo:    "Stock inicial",
			UsuarioID: usuarioID,
		})
		if err != nil {
			return nil, fmt.Errorf("registrar stock inicial: %w", err)
		}
		insumo.StockActual = in.StockInicial
	}
	return toInsumoResponse(insumo), nil
}

// GetByID obtiene un insumo por ID.
func (uc *InsumoUseCase) GetByID(ctx context.Context, id string) (*dto.InsumoResponse, error) {
	insumo, err := uc.repo.GetByID(id)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}
	if insumo == nil {
		return nil, fmt.Errorf("insumo %s: %w", id, domain.ErrNotFound)
	}
	return toInsumoResponse(insumo), nil
}

// List lista insumos, opcionalmente solo los activos.
func (uc *InsumoUseCase) List(ctx context.Context, soloActivos bool, limit, offset int) (*dto.InsumoListResponse, error) {
	insumos, err := uc.repo.List(soloActivos, limit, offset)
	if err != nil {
		return nil, err
	}
	out := &dto.InsumoListResponse{
		Total:   len(insumos),
		Insumos: make([]dto.InsumoResponse, 0, len(insumos)),
	}
	for _, i := range insumos {
		out.Insumos = append(out.Insumos, *toInsumoResponse(i))
	}
	return out, nil
}

// Update edita los campos del insumo. El stock materializado se preserva.
func (uc *InsumoUseCase) Update(ctx context.Context, id string, in dto.UpdateInsumoRequest) (*dto.InsumoResponse, error) {
	insumo, err := uc.repo.GetByID(id)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}
	if insumo == nil {
		return nil, fmt.Errorf("insumo %s: %w", id, domain.ErrNotFound)
	}
	if in.Nombre == "" || in.Tipo == "" || in.UnidadMedida == "" {
		return nil, fmt.Errorf("%w: nombre, tipo y unidad de medida son obligatorios", domain.ErrEntradaInvalida)
	}
	if !tiposInsumo[in.Tipo] {
		return nil, fmt.Errorf("%w: tipo de insumo desconocido %q", domain.ErrEntradaInvalida, in.Tipo)
	}

	insumo.Nombre = in.Nombre
	insumo.Descripcion = in.Descripcion
	insumo.Tipo = in.Tipo
	insumo.UnidadMedida = in.UnidadMedida
	insumo.PrecioUnitario = in.PrecioUnitario
	insumo.StockMinimo = in.StockMinimo
	insumo.Proveedor = in.Proveedor
	insumo.PrincipioActivo = in.PrincipioActivo
	insumo.ClaseQuimica = in.ClaseQuimica
	insumo.CarenciaDias = in.CarenciaDias
	insumo.DosisMinimaPorHa = in.DosisMinimaPorHa
	insumo.DosisMaximaPorHa = in.DosisMaximaPorHa

	if err := uc.repo.Update(insumo); err != nil {
		return nil, err
	}
	return toInsumoResponse(insumo), nil
}

// Deactivate baja lógica del insumo. El historial de movimientos queda intacto.
func (uc *InsumoUseCase) Deactivate(ctx context.Context, id string) error {
	return uc.repo.Deactivate(id)
}

func toInsumoResponse(i *entity.Insumo) *dto.InsumoResponse {
	return &dto.InsumoResponse{
		ID:               i.ID,
		Nombre:           i.Nombre,
		Descripcion:      i.Descripcion,
		Tipo:             i.Tipo,
		UnidadMedida:     i.UnidadMedida,
		PrecioUnitario:   i.PrecioUnitario,
		StockMinimo:      i.StockMinimo,
		StockActual:      i.StockActual,
		BajoStockMin:     i.BajoStockMinimo(),
		Proveedor:        i.Proveedor,
		PrincipioActivo:  i.PrincipioActivo,
		ClaseQuimica:     i.ClaseQuimica,
		CarenciaDias:     i.CarenciaDias,
		DosisMinimaPorHa: i.DosisMinimaPorHa,
		DosisMaximaPorHa: i.DosisMaximaPorHa,
		Activo:           i.Activo,
		FechaCreacion:    i.FechaCreacion,
	}
}
