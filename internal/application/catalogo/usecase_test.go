package catalogo_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/luismorales81/agrocloud-sub002/internal/application/catalogo"
	"github.com/luismorales81/agrocloud-sub002/internal/application/dto"
	"github.com/luismorales81/agrocloud-sub002/internal/application/inventory"
	"github.com/luismorales81/agrocloud-sub002/internal/domain"
	"github.com/luismorales81/agrocloud-sub002/internal/domain/entity"
	"github.com/luismorales81/agrocloud-sub002/internal/infrastructure/memory"
)

type catalogoFixture struct {
	insumos    *catalogo.InsumoUseCase
	dosis      *catalogo.DosisUseCase
	insumoRepo *memory.InsumoRepository
	movRepo    *memory.MovimientoRepository
}

func newCatalogoFixture(t *testing.T) *catalogoFixture {
	t.Helper()
	store := memory.NewStore()
	insumoRepo := memory.NewInsumoRepository(store)
	movRepo := memory.NewMovimientoRepository(store)
	dosisRepo := memory.NewDosisRepository(store)
	tx := memory.NewTxRunner(store)
	ledger := inventory.NewLedgerUseCase(tx, movRepo, insumoRepo)
	return &catalogoFixture{
		insumos:    catalogo.NewInsumoUseCase(insumoRepo, ledger),
		dosis:      catalogo.NewDosisUseCase(dosisRepo, insumoRepo),
		insumoRepo: insumoRepo,
		movRepo:    movRepo,
	}
}

func TestCreateInsumo_StockInicialPasaPorElLibro(t *testing.T) {
	f := newCatalogoFixture(t)

	res, err := f.insumos.Create(context.Background(), "u1", dto.CreateInsumoRequest{
		Nombre:       "Urea granulada",
		Tipo:         entity.TipoInsumoFertilizante,
		UnidadMedida: "KG",
		StockInicial: decimal.NewFromInt(500),
	})
	require.NoError(t, err)
	require.NotEmpty(t, res.ID)
	require.True(t, res.StockActual.Equal(decimal.NewFromInt(500)))

	// El alta con stock inicial genera un movimiento ENTRADA, no un stock fijado a mano.
	movs, err := f.movRepo.ListByInsumo(res.ID, nil, nil, 0, 0)
	require.NoError(t, err)
	require.Len(t, movs, 1)
	require.Equal(t, entity.MovimientoEntrada, movs[0].Tipo)
	require.True(t, movs[0].Cantidad.Equal(decimal.NewFromInt(500)))
	require.Equal(t, "Stock inicial", movs[0].Motivo)
}

func TestCreateInsumo_SinStockInicial(t *testing.T) {
	f := newCatalogoFixture(t)

	res, err := f.insumos.Create(context.Background(), "u1", dto.CreateInsumoRequest{
		Nombre:       "Glifosato 48%",
		Tipo:         entity.TipoInsumoHerbicida,
		UnidadMedida: "LTS",
	})
	require.NoError(t, err)
	require.True(t, res.StockActual.IsZero())

	movs, err := f.movRepo.ListByInsumo(res.ID, nil, nil, 0, 0)
	require.NoError(t, err)
	require.Empty(t, movs)
}

func TestCreateInsumo_Validaciones(t *testing.T) {
	f := newCatalogoFixture(t)
	ctx := context.Background()

	casos := []dto.CreateInsumoRequest{
		{Tipo: entity.TipoInsumoHerbicida, UnidadMedida: "LTS"},
		{Nombre: "x", Tipo: "VENENO", UnidadMedida: "LTS"},
		{Nombre: "x", Tipo: entity.TipoInsumoHerbicida, UnidadMedida: "LTS",
			StockInicial: decimal.NewFromInt(-1)},
	}
	for _, c := range casos {
		_, err := f.insumos.Create(ctx, "u1", c)
		require.ErrorIs(t, err, domain.ErrEntradaInvalida)
	}
}

func TestUpdateInsumo_NoTocaStock(t *testing.T) {
	f := newCatalogoFixture(t)
	ctx := context.Background()

	created, err := f.insumos.Create(ctx, "u1", dto.CreateInsumoRequest{
		Nombre:       "Urea",
		Tipo:         entity.TipoInsumoFertilizante,
		UnidadMedida: "KG",
		StockInicial: decimal.NewFromInt(100),
	})
	require.NoError(t, err)

	updated, err := f.insumos.Update(ctx, created.ID, dto.UpdateInsumoRequest{
		Nombre:       "Urea granulada",
		Tipo:         entity.TipoInsumoFertilizante,
		UnidadMedida: "KG",
		StockMinimo:  decimal.NewFromInt(20),
	})
	require.NoError(t, err)
	require.Equal(t, "Urea granulada", updated.Nombre)
	require.True(t, updated.StockActual.Equal(decimal.NewFromInt(100)))
}

func TestCreateDosis(t *testing.T) {
	f := newCatalogoFixture(t)
	ctx := context.Background()

	insumo, err := f.insumos.Create(ctx, "u1", dto.CreateInsumoRequest{
		Nombre:       "Glifosato 48%",
		Tipo:         entity.TipoInsumoHerbicida,
		UnidadMedida: "LTS",
	})
	require.NoError(t, err)

	regla, err := f.dosis.Create(ctx, dto.CreateDosisRequest{
		InsumoID:              insumo.ID,
		TipoAplicacion:        entity.TipoAplicacionPostEmergente,
		FormaAplicacion:       entity.FormaAplicacionTerrestre,
		DosisRecomendadaPorHa: decimal.NewFromInt(2),
	})
	require.NoError(t, err)
	require.NotEmpty(t, regla.ID)
	require.Equal(t, entity.UnidadDosis("LTS"), regla.Unidad)
	require.True(t, regla.Activo)

	// Una sola regla activa por (insumo, tipo, forma).
	_, err = f.dosis.Create(ctx, dto.CreateDosisRequest{
		InsumoID:              insumo.ID,
		TipoAplicacion:        entity.TipoAplicacionPostEmergente,
		FormaAplicacion:       entity.FormaAplicacionTerrestre,
		DosisRecomendadaPorHa: decimal.NewFromInt(3),
	})
	require.ErrorIs(t, err, domain.ErrConflict)

	// Tras desactivar la regla se puede crear otra.
	require.NoError(t, f.dosis.Deactivate(ctx, regla.ID))
	_, err = f.dosis.Create(ctx, dto.CreateDosisRequest{
		InsumoID:              insumo.ID,
		TipoAplicacion:        entity.TipoAplicacionPostEmergente,
		FormaAplicacion:       entity.FormaAplicacionTerrestre,
		DosisRecomendadaPorHa: decimal.NewFromInt(3),
	})
	require.NoError(t, err)
}

func TestCreateDosis_SoloAgroquimicos(t *testing.T) {
	f := newCatalogoFixture(t)
	ctx := context.Background()

	semilla, err := f.insumos.Create(ctx, "u1", dto.CreateInsumoRequest{
		Nombre:       "Semilla de maíz",
		Tipo:         entity.TipoInsumoSemilla,
		UnidadMedida: "KG",
	})
	require.NoError(t, err)

	_, err = f.dosis.Create(ctx, dto.CreateDosisRequest{
		InsumoID:              semilla.ID,
		TipoAplicacion:        entity.TipoAplicacionSiembra,
		FormaAplicacion:       entity.FormaAplicacionTerrestre,
		DosisRecomendadaPorHa: decimal.NewFromInt(25),
	})
	require.ErrorIs(t, err, domain.ErrEntradaInvalida)
}
