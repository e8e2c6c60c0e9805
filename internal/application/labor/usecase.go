package labor

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/luismorales81/agrocloud-sub002/internal/application/inventory"
	"github.com/luismorales81/agrocloud-sub002/internal/application/lote"
	"github.com/luismorales81/agrocloud-sub002/internal/domain"
	"github.com/luismorales81/agrocloud-sub002/internal/domain/dosage"
	"github.com/luismorales81/agrocloud-sub002/internal/domain/entity"
	domainlabor "github.com/luismorales81/agrocloud-sub002/internal/domain/labor"
	domainlote "github.com/luismorales81/agrocloud-sub002/internal/domain/lote"
	"github.com/luismorales81/agrocloud-sub002/internal/domain/repository"
	"github.com/luismorales81/agrocloud-sub002/pkg/logger"
)

// UseCase orquesta el ciclo de vida de una labor: planificación (con cálculo
// de dosis), inicio, ejecución (con débito de stock), cancelación y anulación
// (con reversión de stock). Toda mutación corre dentro del TxRunner.
type UseCase struct {
	txRunner   TxRunner
	laborRepo  repository.LaborRepository
	loteRepo   repository.LoteRepository
	insumoRepo repository.InsumoRepository
	dosisRepo  repository.DosisRepository
	ledger     *inventory.LedgerUseCase
	loteUC     *lote.UseCase

	// Tolerancia porcentual de desvío entre cantidad planificada y usada a
	// partir de la cual la ejecución exige un motivo.
	toleranciaDesvioPct decimal.Decimal

	log *logger.Logger
}

// NewUseCase construye el motor de labores.
func NewUseCase(
	txRunner TxRunner,
	laborRepo repository.LaborRepository,
	loteRepo repository.LoteRepository,
	insumoRepo repository.InsumoRepository,
	dosisRepo repository.DosisRepository,
	ledger *inventory.LedgerUseCase,
	loteUC *lote.UseCase,
	toleranciaDesvioPct decimal.Decimal,
	log *logger.Logger,
) *UseCase {
	return &UseCase{
		txRunner:            txRunner,
		laborRepo:           laborRepo,
		loteRepo:            loteRepo,
		insumoRepo:          insumoRepo,
		dosisRepo:           dosisRepo,
		ledger:              ledger,
		loteUC:              loteUC,
		toleranciaDesvioPct: toleranciaDesvioPct,
		log:                 log,
	}
}

// LineaPlanInput es una línea de insumo planificada. Si Cantidad es nil, la
// cantidad se calcula con la regla de dosis del catálogo para el tipo y forma
// de aplicación indicados.
type LineaPlanInput struct {
	InsumoID           string
	Cantidad           *decimal.Decimal
	TipoAplicacion     string
	FormaAplicacion    string
	DosisPersonalizada *decimal.Decimal
	Observaciones      string
}

// PlanInput entrada para planificar una labor.
type PlanInput struct {
	TipoLabor   string
	Descripcion string
	LoteID      string
	UsuarioID   string
	FechaInicio time.Time
	FechaFin    *time.Time
	Insumos     []LineaPlanInput
	Maquinaria  []entity.LaborMaquinaria
	ManoObra    []entity.LaborManoObra
}

// Planificar crea una labor en estado PLANIFICADA. La planificación nunca
// reserva ni mueve stock: la reserva se difiere a la ejecución para evitar
// stock retenido que nunca se consume.
func (uc *UseCase) Planificar(ctx context.Context, input PlanInput) (*entity.Labor, error) {
	if input.TipoLabor == "" || input.LoteID == "" || input.UsuarioID == "" {
		return nil, fmt.Errorf("%w: tipo de labor, lote y usuario son obligatorios", domain.ErrEntradaInvalida)
	}
	if input.FechaInicio.IsZero() {
		return nil, fmt.Errorf("%w: la fecha de inicio es obligatoria", domain.ErrEntradaInvalida)
	}
	if input.FechaFin != nil && input.FechaFin.Before(input.FechaInicio) {
		return nil, fmt.Errorf("%w: la fecha de fin no puede ser anterior al inicio", domain.ErrEntradaInvalida)
	}

	lt, err := uc.loteRepo.GetByID(input.LoteID)
	if err != nil {
		return nil, err
	}
	if lt == nil {
		return nil, fmt.Errorf("%w: lote %s", domain.ErrEntradaInvalida, input.LoteID)
	}

	now := time.Now()
	lab := &entity.Labor{
		ID:            uuid.New().String(),
		TipoLabor:     input.TipoLabor,
		Descripcion:   input.Descripcion,
		FechaInicio:   input.FechaInicio,
		FechaFin:      input.FechaFin,
		Estado:        entity.LaborPlanificada,
		LoteID:        input.LoteID,
		UsuarioID:     input.UsuarioID,
		FechaCreacion: now,
	}

	for _, in := range input.Insumos {
		insumo, err := uc.insumoRepo.GetByID(in.InsumoID)
		if err != nil {
			return nil, err
		}
		if insumo == nil || !insumo.Activo {
			return nil, fmt.Errorf("%w: insumo %s", domain.ErrEntradaInvalida, in.InsumoID)
		}

		var cantidad decimal.Decimal
		if in.Cantidad != nil {
			if !in.Cantidad.GreaterThan(decimal.Zero) {
				return nil, fmt.Errorf("%w: la cantidad planificada debe ser positiva", domain.ErrEntradaInvalida)
			}
			cantidad = *in.Cantidad
		} else {
			// Cantidad no provista: la completa la calculadora de dosis.
			regla, err := uc.dosisRepo.Find(in.InsumoID, in.TipoAplicacion, in.FormaAplicacion)
			if err != nil && !errors.Is(err, domain.ErrNotFound) {
				return nil, err
			}
			if regla == nil {
				return nil, fmt.Errorf("%w: insumo %s, %s/%s",
					domain.ErrSinReglaDosis, in.InsumoID, in.TipoAplicacion, in.FormaAplicacion)
			}
			res := dosage.Calcular(regla, insumo, lt.SuperficieHa, in.DosisPersonalizada)
			cantidad = res.CantidadNecesaria
			if !cantidad.GreaterThan(decimal.Zero) {
				return nil, fmt.Errorf("%w: la dosis calculada resultó no positiva", domain.ErrEntradaInvalida)
			}
		}

		linea := entity.LaborInsumo{
			ID:                  uuid.New().String(),
			LaborID:             lab.ID,
			InsumoID:            in.InsumoID,
			CantidadPlanificada: cantidad,
			CostoUnitario:       insumo.PrecioUnitario,
			CostoTotal:          cantidad.Mul(insumo.PrecioUnitario),
			Observaciones:       in.Observaciones,
		}
		lab.Insumos = append(lab.Insumos, linea)
	}

	for i := range input.Maquinaria {
		m := input.Maquinaria[i]
		m.ID = uuid.New().String()
		m.LaborID = lab.ID
		lab.Maquinaria = append(lab.Maquinaria, m)
	}
	for i := range input.ManoObra {
		mo := input.ManoObra[i]
		mo.ID = uuid.New().String()
		mo.LaborID = lab.ID
		mo.CostoTotal = mo.Horas.Mul(mo.CostoPorHora)
		lab.ManoObra = append(lab.ManoObra, mo)
	}
	lab.CostoTotal = lab.CostoLineas()

	if err := uc.laborRepo.Create(lab); err != nil {
		return nil, err
	}
	uc.log.Info().Str("labor_id", lab.ID).Str("tipo", lab.TipoLabor).Msg("labor planificada")
	return lab, nil
}

// Iniciar pasa la labor de PLANIFICADA a EN_PROGRESO. Sin efectos sobre stock.
func (uc *UseCase) Iniciar(ctx context.Context, laborID string) error {
	return uc.txRunner.RunLabor(ctx, func(
		_ repository.MovimientoRepository,
		_ repository.InsumoRepository,
		laborRepo repository.LaborRepository,
		_ repository.LoteRepository,
	) error {
		lab, err := laborRepo.GetByID(laborID)
		if err != nil {
			return err
		}
		if lab == nil {
			return fmt.Errorf("%w: labor %s", domain.ErrNotFound, laborID)
		}
		if err := domainlabor.Transicionar(lab, entity.LaborEnProgreso); err != nil {
			return fmt.Errorf("iniciar labor %s en estado %s: %w", laborID, lab.Estado, err)
		}
		return laborRepo.Update(lab)
	})
}

// LineaEjecucion es la cantidad realmente usada de una línea de insumo.
type LineaEjecucion struct {
	LineaID       string
	CantidadUsada decimal.Decimal
	MotivoDesvio  string
}

// ResumenCostos es el resultado de completar una labor.
type ResumenCostos struct {
	CostoInsumos    decimal.Decimal
	CostoMaquinaria decimal.Decimal
	CostoManoObra   decimal.Decimal
	CostoTotal      decimal.Decimal
}

// Completar ejecuta la labor: PLANIFICADA o EN_PROGRESO → COMPLETADA (el
// cierre retroactivo sin pasar por EN_PROGRESO está soportado). Por cada
// línea debita el stock por la cantidad usada (no la planificada) y recalcula
// costos; si alguna línea no tiene stock suficiente ninguna se debita. Si la
// cantidad usada se desvía de la planificada más allá de la tolerancia, exige
// un motivo. Al completarse, una labor de siembra o cosecha dispara el
// workflow de estado del lote.
func (uc *UseCase) Completar(ctx context.Context, laborID string, lineas []LineaEjecucion, observaciones string, usuarioID string) (*ResumenCostos, error) {
	now := time.Now()
	usadas := make(map[string]LineaEjecucion, len(lineas))
	for _, l := range lineas {
		usadas[l.LineaID] = l
	}

	var resumen ResumenCostos
	var tipoLabor, loteID string
	err := uc.txRunner.RunLabor(ctx, func(
		movRepo repository.MovimientoRepository,
		insumoRepo repository.InsumoRepository,
		laborRepo repository.LaborRepository,
		_ repository.LoteRepository,
	) error {
		lab, err := laborRepo.GetByID(laborID)
		if err != nil {
			return err
		}
		if lab == nil {
			return fmt.Errorf("%w: labor %s", domain.ErrNotFound, laborID)
		}
		if !domainlabor.TransicionValida(lab.Estado, entity.LaborCompletada) {
			return fmt.Errorf("completar labor en estado %s: %w", lab.Estado, domain.ErrTransicionInvalida)
		}

		lineasDeLaLabor := make(map[string]bool, len(lab.Insumos))
		for i := range lab.Insumos {
			lineasDeLaLabor[lab.Insumos[i].ID] = true
		}
		for id := range usadas {
			if !lineasDeLaLabor[id] {
				return fmt.Errorf("%w: la línea %s no pertenece a la labor", domain.ErrEntradaInvalida, id)
			}
		}

		for i := range lab.Insumos {
			linea := &lab.Insumos[i]
			ejec, hayEjec := usadas[linea.ID]
			cantidadUsada := linea.CantidadPlanificada
			if hayEjec {
				cantidadUsada = ejec.CantidadUsada
			}
			if !cantidadUsada.GreaterThan(decimal.Zero) {
				return fmt.Errorf("%w: la cantidad usada debe ser positiva", domain.ErrEntradaInvalida)
			}

			desvio := dosage.Desvio(linea.CantidadPlanificada, cantidadUsada)
			if desvio.Abs().GreaterThan(uc.toleranciaDesvioPct) {
				if !hayEjec || ejec.MotivoDesvio == "" {
					return fmt.Errorf("%w: la línea %s se desvía %s%% de lo planificado",
						domain.ErrJustificacionRequerida, linea.ID, desvio.StringFixed(1))
				}
				linea.MotivoDesvio = ejec.MotivoDesvio
			}

			insumo, err := insumoRepo.GetByID(linea.InsumoID)
			if err != nil {
				return err
			}
			if insumo == nil {
				return fmt.Errorf("%w: insumo %s", domain.ErrNotFound, linea.InsumoID)
			}

			// Débito por la cantidad usada real. Cada línea se registra de
			// forma independiente aunque repita insumo.
			motivo := fmt.Sprintf("Consumo por labor %s (%s)", lab.TipoLabor, lab.ID)
			if _, err := uc.ledger.RegistrarSalidaEnTx(movRepo, insumoRepo,
				linea.InsumoID, lab.ID, cantidadUsada, motivo, usuarioID, now); err != nil {
				return err
			}

			linea.CantidadUsada = cantidadUsada
			linea.CostoUnitario = insumo.PrecioUnitario
			linea.CostoTotal = cantidadUsada.Mul(insumo.PrecioUnitario)
		}

		if err := domainlabor.Transicionar(lab, entity.LaborCompletada); err != nil {
			return err
		}
		if lab.FechaFin == nil {
			lab.FechaFin = &now
		}
		if observaciones != "" {
			lab.Observaciones = observaciones
		}
		lab.CostoTotal = lab.CostoLineas()

		for _, li := range lab.Insumos {
			resumen.CostoInsumos = resumen.CostoInsumos.Add(li.CostoTotal)
		}
		for _, lm := range lab.Maquinaria {
			resumen.CostoMaquinaria = resumen.CostoMaquinaria.Add(lm.Costo)
		}
		for _, lo := range lab.ManoObra {
			resumen.CostoManoObra = resumen.CostoManoObra.Add(lo.CostoTotal)
		}
		resumen.CostoTotal = lab.CostoTotal
		tipoLabor = lab.TipoLabor
		loteID = lab.LoteID

		return laborRepo.Update(lab)
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().Str("labor_id", laborID).Str("costo_total", resumen.CostoTotal.String()).Msg("labor completada")
	uc.dispararCambioEstadoLote(ctx, tipoLabor, loteID, laborID)
	return &resumen, nil
}

// dispararCambioEstadoLote propone el cambio de estado de lote implicado por
// el tipo de labor completada. La propuesta corre fuera de la transacción de
// la labor: si el lote no admite la transición se informa y queda en manos
// del operador, sin deshacer la labor ya completada.
func (uc *UseCase) dispararCambioEstadoLote(ctx context.Context, tipoLabor, loteID, laborID string) {
	estado := domainlote.EstadoImplicadoPorLabor(tipoLabor)
	if estado == "" {
		return
	}
	motivo := fmt.Sprintf("Labor %s completada", tipoLabor)
	prop, err := uc.loteUC.Proponer(ctx, lote.PropuestaInput{
		LoteID:      loteID,
		NuevoEstado: estado,
		Motivo:      motivo,
		LaborID:     &laborID,
	})
	if err != nil {
		uc.log.Warn().Err(err).Str("lote_id", loteID).Str("labor_id", laborID).
			Msg("el lote no admite el cambio de estado implicado por la labor")
		return
	}
	if !prop.RequiereConfirmacion {
		if err := uc.loteUC.Confirmar(ctx, prop.PropuestaID, true, motivo); err != nil {
			uc.log.Warn().Err(err).Str("lote_id", loteID).Msg("no se pudo aplicar el cambio de estado del lote")
		}
	}
}

// Cancelar elimina una labor que sigue PLANIFICADA. Como la planificación
// nunca debitó stock, no hay nada que restaurar.
func (uc *UseCase) Cancelar(ctx context.Context, laborID string) error {
	return uc.txRunner.RunLabor(ctx, func(
		_ repository.MovimientoRepository,
		_ repository.InsumoRepository,
		laborRepo repository.LaborRepository,
		_ repository.LoteRepository,
	) error {
		lab, err := laborRepo.GetByID(laborID)
		if err != nil {
			return err
		}
		if lab == nil {
			return fmt.Errorf("%w: labor %s", domain.ErrNotFound, laborID)
		}
		if lab.Estado != entity.LaborPlanificada {
			return fmt.Errorf("cancelar labor en estado %s: %w", lab.Estado, domain.ErrTransicionInvalida)
		}
		return laborRepo.Delete(laborID)
	})
}

// Anular revierte una labor ejecutada (EN_PROGRESO o COMPLETADA). Exige un
// motivo no vacío y repone el stock agregando movimientos ENTRADA
// compensatorios por cada SALIDA de la labor; el libro nunca se edita ni se
// borra. Registra quién, cuándo y por qué.
func (uc *UseCase) Anular(ctx context.Context, laborID, motivo, usuarioID string) error {
	if motivo == "" {
		return fmt.Errorf("%w: el motivo de anulación es obligatorio", domain.ErrJustificacionRequerida)
	}
	now := time.Now()
	err := uc.txRunner.RunLabor(ctx, func(
		movRepo repository.MovimientoRepository,
		insumoRepo repository.InsumoRepository,
		laborRepo repository.LaborRepository,
		_ repository.LoteRepository,
	) error {
		lab, err := laborRepo.GetByID(laborID)
		if err != nil {
			return err
		}
		if lab == nil {
			return fmt.Errorf("%w: labor %s", domain.ErrNotFound, laborID)
		}
		if !domainlabor.TransicionValida(lab.Estado, entity.LaborAnulada) {
			return fmt.Errorf("anular labor en estado %s: %w", lab.Estado, domain.ErrTransicionInvalida)
		}

		movs, err := movRepo.ListByLabor(laborID)
		if err != nil {
			return err
		}
		for _, mov := range movs {
			if mov.Tipo != entity.MovimientoSalida {
				continue
			}
			motivoEntrada := fmt.Sprintf("Reversión por anulación de labor %s: %s", laborID, motivo)
			if _, err := uc.ledger.RegistrarEntradaEnTx(movRepo, insumoRepo,
				mov.InsumoID, laborID, mov.Cantidad.Abs(), motivoEntrada, usuarioID, now); err != nil {
				return err
			}
		}

		if err := domainlabor.Transicionar(lab, entity.LaborAnulada); err != nil {
			return err
		}
		lab.MotivoAnulacion = motivo
		lab.FechaAnulacion = &now
		lab.UsuarioAnulacion = usuarioID
		return laborRepo.Update(lab)
	})
	if err != nil {
		return err
	}
	uc.log.Info().Str("labor_id", laborID).Str("usuario", usuarioID).Msg("labor anulada, stock restaurado")
	return nil
}

// GetByID devuelve la labor con sus líneas.
func (uc *UseCase) GetByID(ctx context.Context, laborID string) (*entity.Labor, error) {
	lab, err := uc.laborRepo.GetByID(laborID)
	if err != nil {
		return nil, err
	}
	if lab == nil {
		return nil, fmt.Errorf("%w: labor %s", domain.ErrNotFound, laborID)
	}
	return lab, nil
}
