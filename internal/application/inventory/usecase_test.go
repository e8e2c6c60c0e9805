package inventory_test

import (
	"context"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/luismorales81/agrocloud-sub002/internal/application/inventory"
	"github.com/luismorales81/agrocloud-sub002/internal/domain"
	"github.com/luismorales81/agrocloud-sub002/internal/domain/entity"
	domaininv "github.com/luismorales81/agrocloud-sub002/internal/domain/inventory"
	"github.com/luismorales81/agrocloud-sub002/internal/infrastructure/memory"
)

type ledgerFixture struct {
	ledger     *inventory.LedgerUseCase
	insumoRepo *memory.InsumoRepository
	movRepo    *memory.MovimientoRepository
}

func newLedgerFixture(t *testing.T) *ledgerFixture {
	t.Helper()
	store := memory.NewStore()
	insumoRepo := memory.NewInsumoRepository(store)
	movRepo := memory.NewMovimientoRepository(store)
	tx := memory.NewTxRunner(store)
	return &ledgerFixture{
		ledger:     inventory.NewLedgerUseCase(tx, movRepo, insumoRepo),
		insumoRepo: insumoRepo,
		movRepo:    movRepo,
	}
}

func (f *ledgerFixture) seedInsumo(t *testing.T, id string, stock int64) {
	t.Helper()
	err := f.insumoRepo.Create(&entity.Insumo{
		ID:             id,
		Nombre:         "Glifosato 48%",
		Tipo:           entity.TipoInsumoHerbicida,
		UnidadMedida:   "LTS",
		PrecioUnitario: decimal.NewFromInt(10),
		StockActual:    decimal.NewFromInt(stock),
		Activo:         true,
	})
	require.NoError(t, err)
}

func (f *ledgerFixture) stock(t *testing.T, id string) decimal.Decimal {
	t.Helper()
	i, err := f.insumoRepo.GetByID(id)
	require.NoError(t, err)
	return i.StockActual
}

func TestRegistrarMovimiento_EntradaYSalida(t *testing.T) {
	f := newLedgerFixture(t)
	f.seedInsumo(t, "glifo", 0)
	ctx := context.Background()

	_, err := f.ledger.RegistrarMovimiento(ctx, inventory.MovimientoInput{
		InsumoID: "glifo", Tipo: entity.MovimientoEntrada,
		Cantidad: decimal.NewFromInt(100), Motivo: "Compra", UsuarioID: "u1",
	})
	require.NoError(t, err)
	require.True(t, f.stock(t, "glifo").Equal(decimal.NewFromInt(100)))

	movID, err := f.ledger.RegistrarMovimiento(ctx, inventory.MovimientoInput{
		InsumoID: "glifo", Tipo: entity.MovimientoSalida,
		Cantidad: decimal.NewFromInt(30), Motivo: "Consumo", UsuarioID: "u1",
	})
	require.NoError(t, err)
	require.True(t, f.stock(t, "glifo").Equal(decimal.NewFromInt(70)))

	// Las salidas quedan negativas en el libro.
	mov, err := f.movRepo.GetByID(movID)
	require.NoError(t, err)
	require.True(t, mov.Cantidad.Equal(decimal.NewFromInt(-30)))
}

func TestRegistrarMovimiento_SalidaInsuficiente(t *testing.T) {
	f := newLedgerFixture(t)
	f.seedInsumo(t, "glifo", 5)

	_, err := f.ledger.RegistrarMovimiento(context.Background(), inventory.MovimientoInput{
		InsumoID: "glifo", Tipo: entity.MovimientoSalida,
		Cantidad: decimal.NewFromInt(8), Motivo: "Consumo", UsuarioID: "u1",
	})
	require.ErrorIs(t, err, domain.ErrStockInsuficiente)
	require.Contains(t, err.Error(), "faltante 3")

	// El rechazo no deja rastro: ni stock tocado ni movimiento en el libro.
	require.True(t, f.stock(t, "glifo").Equal(decimal.NewFromInt(5)))
	movs, err := f.movRepo.ListByInsumo("glifo", nil, nil, 0, 0)
	require.NoError(t, err)
	require.Empty(t, movs)
}

func TestRegistrarMovimiento_AjusteConSigno(t *testing.T) {
	f := newLedgerFixture(t)
	f.seedInsumo(t, "glifo", 50)
	ctx := context.Background()

	_, err := f.ledger.RegistrarMovimiento(ctx, inventory.MovimientoInput{
		InsumoID: "glifo", Tipo: entity.MovimientoAjuste,
		Cantidad: decimal.NewFromInt(-10), Motivo: "Merma por derrame", UsuarioID: "u1",
	})
	require.NoError(t, err)
	require.True(t, f.stock(t, "glifo").Equal(decimal.NewFromInt(40)))

	_, err = f.ledger.RegistrarMovimiento(ctx, inventory.MovimientoInput{
		InsumoID: "glifo", Tipo: entity.MovimientoAjuste,
		Cantidad: decimal.NewFromInt(4), Motivo: "Recuento físico", UsuarioID: "u1",
	})
	require.NoError(t, err)
	require.True(t, f.stock(t, "glifo").Equal(decimal.NewFromInt(44)))

	_, err = f.ledger.RegistrarMovimiento(ctx, inventory.MovimientoInput{
		InsumoID: "glifo", Tipo: entity.MovimientoAjuste,
		Cantidad: decimal.Zero, Motivo: "Nada", UsuarioID: "u1",
	})
	require.ErrorIs(t, err, domain.ErrEntradaInvalida)
}

func TestRegistrarMovimiento_Validaciones(t *testing.T) {
	f := newLedgerFixture(t)
	f.seedInsumo(t, "glifo", 10)
	ctx := context.Background()

	casos := []inventory.MovimientoInput{
		{InsumoID: "glifo", Tipo: "PRESTAMO", Cantidad: decimal.NewFromInt(1), Motivo: "x", UsuarioID: "u1"},
		{InsumoID: "glifo", Tipo: entity.MovimientoEntrada, Cantidad: decimal.NewFromInt(-1), Motivo: "x", UsuarioID: "u1"},
		{InsumoID: "glifo", Tipo: entity.MovimientoSalida, Cantidad: decimal.Zero, Motivo: "x", UsuarioID: "u1"},
		{InsumoID: "glifo", Tipo: entity.MovimientoEntrada, Cantidad: decimal.NewFromInt(1), UsuarioID: "u1"},
		{Tipo: entity.MovimientoEntrada, Cantidad: decimal.NewFromInt(1), Motivo: "x", UsuarioID: "u1"},
	}
	for _, c := range casos {
		_, err := f.ledger.RegistrarMovimiento(ctx, c)
		require.ErrorIs(t, err, domain.ErrEntradaInvalida)
	}
}

func TestLedger_StockSiempreIgualASumaDeMovimientos(t *testing.T) {
	f := newLedgerFixture(t)
	f.seedInsumo(t, "urea", 0)
	ctx := context.Background()

	pasos := []struct {
		tipo     string
		cantidad int64
	}{
		{entity.MovimientoEntrada, 200},
		{entity.MovimientoSalida, 45},
		{entity.MovimientoAjuste, -5},
		{entity.MovimientoSalida, 50},
		{entity.MovimientoEntrada, 30},
	}
	for _, p := range pasos {
		_, err := f.ledger.RegistrarMovimiento(ctx, inventory.MovimientoInput{
			InsumoID: "urea", Tipo: p.tipo,
			Cantidad: decimal.NewFromInt(p.cantidad), Motivo: "test", UsuarioID: "u1",
		})
		require.NoError(t, err)
	}

	movs, err := f.movRepo.ListByInsumo("urea", nil, nil, 0, 0)
	require.NoError(t, err)
	require.Len(t, movs, len(pasos))
	require.True(t, f.stock(t, "urea").Equal(domaininv.SumaMovimientos(movs)))
	require.True(t, f.stock(t, "urea").Equal(decimal.NewFromInt(130)))
}

func TestLedger_EscriturasConcurrentes(t *testing.T) {
	f := newLedgerFixture(t)
	f.seedInsumo(t, "urea", 100)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.ledger.RegistrarMovimiento(ctx, inventory.MovimientoInput{
				InsumoID: "urea", Tipo: entity.MovimientoEntrada,
				Cantidad: decimal.NewFromInt(1), Motivo: "ingreso", UsuarioID: "u1",
			})
			assert.NoError(t, err)
			_, err = f.ledger.RegistrarMovimiento(ctx, inventory.MovimientoInput{
				InsumoID: "urea", Tipo: entity.MovimientoSalida,
				Cantidad: decimal.NewFromInt(1), Motivo: "consumo", UsuarioID: "u1",
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	require.True(t, f.stock(t, "urea").Equal(decimal.NewFromInt(100)))
	movs, err := f.movRepo.ListByInsumo("urea", nil, nil, 0, 0)
	require.NoError(t, err)
	require.Len(t, movs, 40)
}

func TestKardex(t *testing.T) {
	f := newLedgerFixture(t)
	f.seedInsumo(t, "glifo", 0)
	f.seedInsumo(t, "urea", 0)
	ctx := context.Background()

	for _, id := range []string{"glifo", "urea", "glifo"} {
		_, err := f.ledger.RegistrarMovimiento(ctx, inventory.MovimientoInput{
			InsumoID: id, Tipo: entity.MovimientoEntrada,
			Cantidad: decimal.NewFromInt(10), Motivo: "Compra", UsuarioID: "u1",
		})
		require.NoError(t, err)
	}

	insumo, movs, err := f.ledger.Kardex(ctx, "glifo", nil, nil, 0, 0)
	require.NoError(t, err)
	require.Equal(t, "glifo", insumo.ID)
	require.Len(t, movs, 2)
	require.True(t, insumo.StockActual.Equal(decimal.NewFromInt(20)))

	_, _, err = f.ledger.Kardex(ctx, "no-existe", nil, nil, 0, 0)
	require.ErrorIs(t, err, domain.ErrNotFound)
}
