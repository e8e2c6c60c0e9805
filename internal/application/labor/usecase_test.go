package labor_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/luismorales81/agrocloud-sub002/internal/application/inventory"
	"github.com/luismorales81/agrocloud-sub002/internal/application/labor"
	"github.com/luismorales81/agrocloud-sub002/internal/application/lote"
	"github.com/luismorales81/agrocloud-sub002/internal/domain"
	"github.com/luismorales81/agrocloud-sub002/internal/domain/entity"
	domaininv "github.com/luismorales81/agrocloud-sub002/internal/domain/inventory"
	"github.com/luismorales81/agrocloud-sub002/internal/infrastructure/memory"
	"github.com/luismorales81/agrocloud-sub002/pkg/logger"
)

type engineFixture struct {
	uc         *labor.UseCase
	insumoRepo *memory.InsumoRepository
	movRepo    *memory.MovimientoRepository
	laborRepo  *memory.LaborRepository
	loteRepo   *memory.LoteRepository
	dosisRepo  *memory.DosisRepository
}

func newEngineFixture(t *testing.T) *engineFixture {
	t.Helper()
	store := memory.NewStore()
	insumoRepo := memory.NewInsumoRepository(store)
	movRepo := memory.NewMovimientoRepository(store)
	laborRepo := memory.NewLaborRepository(store)
	loteRepo := memory.NewLoteRepository(store)
	dosisRepo := memory.NewDosisRepository(store)
	tx := memory.NewTxRunner(store)
	log := logger.New(logger.Config{Env: "development", Level: "error"})
	ledger := inventory.NewLedgerUseCase(tx, movRepo, insumoRepo)
	loteUC := lote.NewUseCase(loteRepo, log)
	uc := labor.NewUseCase(tx, laborRepo, loteRepo, insumoRepo, dosisRepo, ledger, loteUC,
		decimal.NewFromInt(10), log)
	return &engineFixture{
		uc:         uc,
		insumoRepo: insumoRepo,
		movRepo:    movRepo,
		laborRepo:  laborRepo,
		loteRepo:   loteRepo,
		dosisRepo:  dosisRepo,
	}
}

func (f *engineFixture) seedInsumo(t *testing.T, id string, stock, precio int64) {
	t.Helper()
	err := f.insumoRepo.Create(&entity.Insumo{
		ID:             id,
		Nombre:         "Insumo " + id,
		Tipo:           entity.TipoInsumoHerbicida,
		UnidadMedida:   "LTS",
		PrecioUnitario: decimal.NewFromInt(precio),
		StockActual:    decimal.NewFromInt(stock),
		Activo:         true,
	})
	require.NoError(t, err)
}

func (f *engineFixture) seedLote(t *testing.T, id string, estado entity.EstadoLote, superficieHa int64) {
	t.Helper()
	err := f.loteRepo.Create(&entity.Lote{
		ID:           id,
		Nombre:       "Lote " + id,
		SuperficieHa: decimal.NewFromInt(superficieHa),
		Estado:       estado,
		Activo:       true,
	})
	require.NoError(t, err)
}

func (f *engineFixture) stock(t *testing.T, id string) decimal.Decimal {
	t.Helper()
	i, err := f.insumoRepo.GetByID(id)
	require.NoError(t, err)
	return i.StockActual
}

func cantidad(n int64) *decimal.Decimal {
	d := decimal.NewFromInt(n)
	return &d
}

func fechaBase() time.Time {
	return time.Date(2026, 8, 1, 8, 0, 0, 0, time.UTC)
}

// planFumigacion planifica una labor de control de malezas con una línea de
// 20 L de glifosato sobre un lote de 10 ha (stock inicial 100 L).
func planFumigacion(t *testing.T, f *engineFixture) *entity.Labor {
	t.Helper()
	f.seedInsumo(t, "glifo", 100, 10)
	f.seedLote(t, "lote-1", entity.LoteSembrado, 10)
	lab, err := f.uc.Planificar(context.Background(), labor.PlanInput{
		TipoLabor:   entity.TipoLaborControlMalezas,
		LoteID:      "lote-1",
		UsuarioID:   "u1",
		FechaInicio: fechaBase(),
		Insumos: []labor.LineaPlanInput{
			{InsumoID: "glifo", Cantidad: cantidad(20)},
		},
	})
	require.NoError(t, err)
	return lab
}

func TestPlanificar_NoMueveStock(t *testing.T) {
	f := newEngineFixture(t)
	lab := planFumigacion(t, f)

	require.Equal(t, entity.LaborPlanificada, lab.Estado)
	require.Len(t, lab.Insumos, 1)
	require.True(t, lab.Insumos[0].CantidadPlanificada.Equal(decimal.NewFromInt(20)))
	require.True(t, lab.CostoTotal.Equal(decimal.NewFromInt(200)))

	// La planificación jamás toca el inventario.
	require.True(t, f.stock(t, "glifo").Equal(decimal.NewFromInt(100)))
	movs, err := f.movRepo.ListByInsumo("glifo", nil, nil, 0, 0)
	require.NoError(t, err)
	require.Empty(t, movs)
}

func TestPlanificar_CantidadDesdeReglaDeDosis(t *testing.T) {
	f := newEngineFixture(t)
	f.seedInsumo(t, "glifo", 100, 10)
	f.seedLote(t, "lote-1", entity.LoteSembrado, 10)
	require.NoError(t, f.dosisRepo.Create(&entity.DosisInsumo{
		ID:                    "regla-1",
		InsumoID:              "glifo",
		TipoAplicacion:        entity.TipoAplicacionPostEmergente,
		FormaAplicacion:       entity.FormaAplicacionTerrestre,
		DosisRecomendadaPorHa: decimal.NewFromInt(2),
		Unidad:                "L_HA",
		Activo:                true,
	}))

	lab, err := f.uc.Planificar(context.Background(), labor.PlanInput{
		TipoLabor:   entity.TipoLaborControlMalezas,
		LoteID:      "lote-1",
		UsuarioID:   "u1",
		FechaInicio: fechaBase(),
		Insumos: []labor.LineaPlanInput{
			{
				InsumoID:        "glifo",
				TipoAplicacion:  entity.TipoAplicacionPostEmergente,
				FormaAplicacion: entity.FormaAplicacionTerrestre,
			},
		},
	})
	require.NoError(t, err)
	// 2 L/ha × 10 ha = 20 L.
	require.True(t, lab.Insumos[0].CantidadPlanificada.Equal(decimal.NewFromInt(20)))
}

func TestPlanificar_SinReglaDeDosis(t *testing.T) {
	f := newEngineFixture(t)
	f.seedInsumo(t, "glifo", 100, 10)
	f.seedLote(t, "lote-1", entity.LoteSembrado, 10)

	_, err := f.uc.Planificar(context.Background(), labor.PlanInput{
		TipoLabor:   entity.TipoLaborControlMalezas,
		LoteID:      "lote-1",
		UsuarioID:   "u1",
		FechaInicio: fechaBase(),
		Insumos: []labor.LineaPlanInput{
			{
				InsumoID:        "glifo",
				TipoAplicacion:  entity.TipoAplicacionFoliar,
				FormaAplicacion: entity.FormaAplicacionAerea,
			},
		},
	})
	require.ErrorIs(t, err, domain.ErrSinReglaDosis)
}

func TestIniciar(t *testing.T) {
	f := newEngineFixture(t)
	lab := planFumigacion(t, f)
	ctx := context.Background()

	require.NoError(t, f.uc.Iniciar(ctx, lab.ID))
	got, err := f.uc.GetByID(ctx, lab.ID)
	require.NoError(t, err)
	require.Equal(t, entity.LaborEnProgreso, got.Estado)

	// Iniciar dos veces no es una transición válida.
	require.ErrorIs(t, f.uc.Iniciar(ctx, lab.ID), domain.ErrTransicionInvalida)
}

func TestCompletar_DebitaCantidadUsada(t *testing.T) {
	f := newEngineFixture(t)
	lab := planFumigacion(t, f)
	ctx := context.Background()
	require.NoError(t, f.uc.Iniciar(ctx, lab.ID))

	resumen, err := f.uc.Completar(ctx, lab.ID, []labor.LineaEjecucion{
		{
			LineaID:       lab.Insumos[0].ID,
			CantidadUsada: decimal.NewFromInt(25),
			MotivoDesvio:  "Viento: se repitió una pasada",
		},
	}, "", "u1")
	require.NoError(t, err)

	// Se debita lo usado (25), no lo planificado (20).
	require.True(t, f.stock(t, "glifo").Equal(decimal.NewFromInt(75)))
	require.True(t, resumen.CostoInsumos.Equal(decimal.NewFromInt(250)))
	require.True(t, resumen.CostoTotal.Equal(decimal.NewFromInt(250)))

	movs, err := f.movRepo.ListByLabor(lab.ID)
	require.NoError(t, err)
	require.Len(t, movs, 1)
	require.Equal(t, entity.MovimientoSalida, movs[0].Tipo)
	require.True(t, movs[0].Cantidad.Equal(decimal.NewFromInt(-25)))

	got, err := f.uc.GetByID(ctx, lab.ID)
	require.NoError(t, err)
	require.Equal(t, entity.LaborCompletada, got.Estado)
	require.NotNil(t, got.FechaFin)
	require.Equal(t, "Viento: se repitió una pasada", got.Insumos[0].MotivoDesvio)
}

func TestCompletar_DesvioSinMotivo(t *testing.T) {
	f := newEngineFixture(t)
	lab := planFumigacion(t, f)
	ctx := context.Background()
	require.NoError(t, f.uc.Iniciar(ctx, lab.ID))

	// 25 sobre 20 planificado = 25% de desvío, por encima de la tolerancia.
	_, err := f.uc.Completar(ctx, lab.ID, []labor.LineaEjecucion{
		{LineaID: lab.Insumos[0].ID, CantidadUsada: decimal.NewFromInt(25)},
	}, "", "u1")
	require.ErrorIs(t, err, domain.ErrJustificacionRequerida)

	// Nada cambió: ni stock ni estado.
	require.True(t, f.stock(t, "glifo").Equal(decimal.NewFromInt(100)))
	got, err := f.uc.GetByID(ctx, lab.ID)
	require.NoError(t, err)
	require.Equal(t, entity.LaborEnProgreso, got.Estado)
}

func TestCompletar_DentroDeToleranciaSinMotivo(t *testing.T) {
	f := newEngineFixture(t)
	lab := planFumigacion(t, f)
	ctx := context.Background()

	// 21 sobre 20 = 5%, dentro de la tolerancia del 10%: no exige motivo.
	_, err := f.uc.Completar(ctx, lab.ID, []labor.LineaEjecucion{
		{LineaID: lab.Insumos[0].ID, CantidadUsada: decimal.NewFromInt(21)},
	}, "", "u1")
	require.NoError(t, err)
	require.True(t, f.stock(t, "glifo").Equal(decimal.NewFromInt(79)))
}

func TestCompletar_CierreRetroactivoDesdePlanificada(t *testing.T) {
	f := newEngineFixture(t)
	lab := planFumigacion(t, f)

	// Sin pasar por EN_PROGRESO: las líneas toman la cantidad planificada.
	resumen, err := f.uc.Completar(context.Background(), lab.ID, nil, "Cerrada con lo planificado", "u1")
	require.NoError(t, err)
	require.True(t, f.stock(t, "glifo").Equal(decimal.NewFromInt(80)))
	require.True(t, resumen.CostoInsumos.Equal(decimal.NewFromInt(200)))
}

func TestCompletar_StockInsuficienteEsAtomico(t *testing.T) {
	f := newEngineFixture(t)
	f.seedInsumo(t, "glifo", 100, 10)
	f.seedInsumo(t, "aceite", 5, 3)
	f.seedLote(t, "lote-1", entity.LoteSembrado, 10)
	ctx := context.Background()

	lab, err := f.uc.Planificar(ctx, labor.PlanInput{
		TipoLabor:   entity.TipoLaborControlMalezas,
		LoteID:      "lote-1",
		UsuarioID:   "u1",
		FechaInicio: fechaBase(),
		Insumos: []labor.LineaPlanInput{
			{InsumoID: "glifo", Cantidad: cantidad(10)},
			{InsumoID: "aceite", Cantidad: cantidad(8)},
		},
	})
	require.NoError(t, err)

	_, err = f.uc.Completar(ctx, lab.ID, nil, "", "u1")
	require.ErrorIs(t, err, domain.ErrStockInsuficiente)

	// Ninguna línea se debita: ni siquiera la que sí tenía stock.
	require.True(t, f.stock(t, "glifo").Equal(decimal.NewFromInt(100)))
	require.True(t, f.stock(t, "aceite").Equal(decimal.NewFromInt(5)))
	movs, err := f.movRepo.ListByLabor(lab.ID)
	require.NoError(t, err)
	require.Empty(t, movs)
}

func TestCompletar_SinLineas(t *testing.T) {
	f := newEngineFixture(t)
	f.seedLote(t, "lote-1", entity.LoteSembrado, 10)
	ctx := context.Background()

	lab, err := f.uc.Planificar(ctx, labor.PlanInput{
		TipoLabor:   entity.TipoLaborRiego,
		LoteID:      "lote-1",
		UsuarioID:   "u1",
		FechaInicio: fechaBase(),
		ManoObra: []entity.LaborManoObra{
			{Descripcion: "Regador", CantPersonas: 1, Horas: decimal.NewFromInt(4), CostoPorHora: decimal.NewFromInt(50)},
		},
	})
	require.NoError(t, err)

	resumen, err := f.uc.Completar(ctx, lab.ID, nil, "", "u1")
	require.NoError(t, err)
	require.True(t, resumen.CostoInsumos.IsZero())
	require.True(t, resumen.CostoManoObra.Equal(decimal.NewFromInt(200)))
	require.True(t, resumen.CostoTotal.Equal(decimal.NewFromInt(200)))
}

func TestCompletar_LineaAjena(t *testing.T) {
	f := newEngineFixture(t)
	lab := planFumigacion(t, f)

	_, err := f.uc.Completar(context.Background(), lab.ID, []labor.LineaEjecucion{
		{LineaID: "otra-linea", CantidadUsada: decimal.NewFromInt(1)},
	}, "", "u1")
	require.ErrorIs(t, err, domain.ErrEntradaInvalida)
}

func TestCompletar_LineasIndependientesDelMismoInsumo(t *testing.T) {
	f := newEngineFixture(t)
	f.seedInsumo(t, "glifo", 100, 10)
	f.seedLote(t, "lote-1", entity.LoteSembrado, 10)
	ctx := context.Background()

	lab, err := f.uc.Planificar(ctx, labor.PlanInput{
		TipoLabor:   entity.TipoLaborControlMalezas,
		LoteID:      "lote-1",
		UsuarioID:   "u1",
		FechaInicio: fechaBase(),
		Insumos: []labor.LineaPlanInput{
			{InsumoID: "glifo", Cantidad: cantidad(10)},
			{InsumoID: "glifo", Cantidad: cantidad(5)},
		},
	})
	require.NoError(t, err)

	_, err = f.uc.Completar(ctx, lab.ID, nil, "", "u1")
	require.NoError(t, err)

	// Cada línea genera su propio movimiento en el libro.
	require.True(t, f.stock(t, "glifo").Equal(decimal.NewFromInt(85)))
	movs, err := f.movRepo.ListByLabor(lab.ID)
	require.NoError(t, err)
	require.Len(t, movs, 2)
}

func TestCancelar(t *testing.T) {
	f := newEngineFixture(t)
	lab := planFumigacion(t, f)
	ctx := context.Background()

	require.NoError(t, f.uc.Cancelar(ctx, lab.ID))
	_, err := f.uc.GetByID(ctx, lab.ID)
	require.ErrorIs(t, err, domain.ErrNotFound)
	require.True(t, f.stock(t, "glifo").Equal(decimal.NewFromInt(100)))
}

func TestCancelar_SoloPlanificada(t *testing.T) {
	f := newEngineFixture(t)
	lab := planFumigacion(t, f)
	ctx := context.Background()

	require.NoError(t, f.uc.Iniciar(ctx, lab.ID))
	require.ErrorIs(t, f.uc.Cancelar(ctx, lab.ID), domain.ErrTransicionInvalida)
}

func TestAnular_RestauraStock(t *testing.T) {
	f := newEngineFixture(t)
	lab := planFumigacion(t, f)
	ctx := context.Background()
	require.NoError(t, f.uc.Iniciar(ctx, lab.ID))
	_, err := f.uc.Completar(ctx, lab.ID, []labor.LineaEjecucion{
		{LineaID: lab.Insumos[0].ID, CantidadUsada: decimal.NewFromInt(25), MotivoDesvio: "repaso"},
	}, "", "u1")
	require.NoError(t, err)
	require.True(t, f.stock(t, "glifo").Equal(decimal.NewFromInt(75)))

	require.NoError(t, f.uc.Anular(ctx, lab.ID, "Se cargó sobre el lote equivocado", "jefe"))

	// El stock vuelve por movimiento compensatorio, nunca editando el libro.
	require.True(t, f.stock(t, "glifo").Equal(decimal.NewFromInt(100)))
	movs, err := f.movRepo.ListByLabor(lab.ID)
	require.NoError(t, err)
	require.Len(t, movs, 2)
	require.Equal(t, entity.MovimientoSalida, movs[0].Tipo)
	require.Equal(t, entity.MovimientoEntrada, movs[1].Tipo)
	require.True(t, domaininv.SumaMovimientos(movs).IsZero())

	got, err := f.uc.GetByID(ctx, lab.ID)
	require.NoError(t, err)
	require.Equal(t, entity.LaborAnulada, got.Estado)
	require.Equal(t, "Se cargó sobre el lote equivocado", got.MotivoAnulacion)
	require.Equal(t, "jefe", got.UsuarioAnulacion)
	require.NotNil(t, got.FechaAnulacion)
}

func TestAnular_SinMotivo(t *testing.T) {
	f := newEngineFixture(t)
	lab := planFumigacion(t, f)
	require.ErrorIs(t, f.uc.Anular(context.Background(), lab.ID, "", "jefe"),
		domain.ErrJustificacionRequerida)
}

func TestAnular_PlanificadaNoEsAnulable(t *testing.T) {
	f := newEngineFixture(t)
	lab := planFumigacion(t, f)
	require.ErrorIs(t, f.uc.Anular(context.Background(), lab.ID, "motivo", "jefe"),
		domain.ErrTransicionInvalida)
}

func TestCompletar_SiembraActualizaLote(t *testing.T) {
	f := newEngineFixture(t)
	f.seedInsumo(t, "semilla", 500, 2)
	f.seedLote(t, "lote-1", entity.LotePreparado, 10)
	ctx := context.Background()

	lab, err := f.uc.Planificar(ctx, labor.PlanInput{
		TipoLabor:   entity.TipoLaborSiembra,
		LoteID:      "lote-1",
		UsuarioID:   "u1",
		FechaInicio: fechaBase(),
		Insumos: []labor.LineaPlanInput{
			{InsumoID: "semilla", Cantidad: cantidad(100)},
		},
	})
	require.NoError(t, err)

	_, err = f.uc.Completar(ctx, lab.ID, nil, "", "u1")
	require.NoError(t, err)

	lt, err := f.loteRepo.GetByID("lote-1")
	require.NoError(t, err)
	require.Equal(t, entity.LoteSembrado, lt.Estado)
}

func TestCompletar_CosechaTempranaActualizaLote(t *testing.T) {
	f := newEngineFixture(t)
	f.seedLote(t, "lote-1", entity.LoteEnCrecimiento, 10)
	ctx := context.Background()

	lab, err := f.uc.Planificar(ctx, labor.PlanInput{
		TipoLabor:   entity.TipoLaborCosecha,
		LoteID:      "lote-1",
		UsuarioID:   "u1",
		FechaInicio: fechaBase(),
	})
	require.NoError(t, err)

	_, err = f.uc.Completar(ctx, lab.ID, nil, "", "u1")
	require.NoError(t, err)

	lt, err := f.loteRepo.GetByID("lote-1")
	require.NoError(t, err)
	require.Equal(t, entity.LoteCosechado, lt.Estado)
}

func TestCompletar_LoteNoAdmiteTransicionNoDeshaceLaLabor(t *testing.T) {
	f := newEngineFixture(t)
	// Un lote COSECHADO no admite volver a COSECHADO: la labor igual se
	// completa y el desajuste queda para el operador.
	f.seedLote(t, "lote-1", entity.LoteCosechado, 10)
	ctx := context.Background()

	lab, err := f.uc.Planificar(ctx, labor.PlanInput{
		TipoLabor:   entity.TipoLaborCosecha,
		LoteID:      "lote-1",
		UsuarioID:   "u1",
		FechaInicio: fechaBase(),
	})
	require.NoError(t, err)

	_, err = f.uc.Completar(ctx, lab.ID, nil, "", "u1")
	require.NoError(t, err)

	got, err := f.uc.GetByID(ctx, lab.ID)
	require.NoError(t, err)
	require.Equal(t, entity.LaborCompletada, got.Estado)
	lt, err := f.loteRepo.GetByID("lote-1")
	require.NoError(t, err)
	require.Equal(t, entity.LoteCosechado, lt.Estado)
}
