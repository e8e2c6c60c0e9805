package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/luismorales81/agrocloud-sub002/internal/domain"
	"github.com/luismorales81/agrocloud-sub002/internal/domain/entity"
	domaininv "github.com/luismorales81/agrocloud-sub002/internal/domain/inventory"
	"github.com/luismorales81/agrocloud-sub002/internal/domain/repository"
)

// LedgerUseCase es el único camino de código autorizado a modificar el stock
// de un insumo. Cada llamada agrega exactamente un movimiento al libro y
// actualiza el stock materializado en la misma transacción, con bloqueo de
// fila (SELECT FOR UPDATE) para serializar escrituras concurrentes sobre el
// mismo insumo.
type LedgerUseCase struct {
	txRunner   TxRunner
	movRepo    repository.MovimientoRepository
	insumoRepo repository.InsumoRepository
}

// NewLedgerUseCase construye el caso de uso.
func NewLedgerUseCase(txRunner TxRunner, movRepo repository.MovimientoRepository, insumoRepo repository.InsumoRepository) *LedgerUseCase {
	return &LedgerUseCase{txRunner: txRunner, movRepo: movRepo, insumoRepo: insumoRepo}
}

// MovimientoInput entrada para registrar un movimiento manual de inventario.
type MovimientoInput struct {
	InsumoID  string
	LaborID   *string
	Tipo      string          // ENTRADA, SALIDA, AJUSTE
	Cantidad  decimal.Decimal // ENTRADA/SALIDA: positiva; AJUSTE: con signo
	Motivo    string
	UsuarioID string
}

// RegistrarMovimiento valida y aplica un movimiento de inventario de forma
// transaccional. Devuelve el ID del movimiento registrado.
func (uc *LedgerUseCase) RegistrarMovimiento(ctx context.Context, input MovimientoInput) (string, error) {
	switch input.Tipo {
	case entity.MovimientoEntrada, entity.MovimientoSalida:
		if !input.Cantidad.GreaterThan(decimal.Zero) {
			return "", fmt.Errorf("%w: la cantidad debe ser positiva", domain.ErrEntradaInvalida)
		}
	case entity.MovimientoAjuste:
		if input.Cantidad.IsZero() {
			return "", fmt.Errorf("%w: el ajuste no puede ser cero", domain.ErrEntradaInvalida)
		}
	default:
		return "", fmt.Errorf("%w: tipo de movimiento desconocido %q", domain.ErrEntradaInvalida, input.Tipo)
	}
	if input.InsumoID == "" || input.Motivo == "" || input.UsuarioID == "" {
		return "", fmt.Errorf("%w: insumo, motivo y usuario son obligatorios", domain.ErrEntradaInvalida)
	}

	now := time.Now()
	var movID string
	err := uc.txRunner.Run(ctx, func(movRepo repository.MovimientoRepository, insumoRepo repository.InsumoRepository) error {
		mov, err := aplicarMovimiento(movRepo, insumoRepo, input.InsumoID, input.LaborID,
			input.Tipo, input.Cantidad, input.Motivo, input.UsuarioID, now)
		if err != nil {
			return err
		}
		movID = mov.ID
		return nil
	})
	if err != nil {
		return "", err
	}
	return movID, nil
}

// RegistrarSalidaEnTx debita stock por consumo de una labor usando los
// repositorios de la transacción del caller (misma unidad de trabajo que la
// transición de estado de la labor).
func (uc *LedgerUseCase) RegistrarSalidaEnTx(
	movRepo repository.MovimientoRepository,
	insumoRepo repository.InsumoRepository,
	insumoID, laborID string,
	cantidad decimal.Decimal,
	motivo, usuarioID string,
	now time.Time,
) (*entity.MovimientoInventario, error) {
	return aplicarMovimiento(movRepo, insumoRepo, insumoID, &laborID,
		entity.MovimientoSalida, cantidad, motivo, usuarioID, now)
}

// RegistrarEntradaEnTx acredita stock (reversión por anulación de labor)
// dentro de la transacción del caller.
func (uc *LedgerUseCase) RegistrarEntradaEnTx(
	movRepo repository.MovimientoRepository,
	insumoRepo repository.InsumoRepository,
	insumoID, laborID string,
	cantidad decimal.Decimal,
	motivo, usuarioID string,
	now time.Time,
) (*entity.MovimientoInventario, error) {
	return aplicarMovimiento(movRepo, insumoRepo, insumoID, &laborID,
		entity.MovimientoEntrada, cantidad, motivo, usuarioID, now)
}

// aplicarMovimiento bloquea la fila del insumo, verifica que el stock
// resultante no quede negativo, actualiza el stock materializado y agrega el
// movimiento con cantidad con signo. Todo dentro de la transacción del caller.
func aplicarMovimiento(
	movRepo repository.MovimientoRepository,
	insumoRepo repository.InsumoRepository,
	insumoID string,
	laborID *string,
	tipo string,
	cantidad decimal.Decimal,
	motivo, usuarioID string,
	now time.Time,
) (*entity.MovimientoInventario, error) {
	insumo, err := insumoRepo.GetForUpdate(insumoID)
	if err != nil {
		return nil, err
	}
	if insumo == nil {
		return nil, fmt.Errorf("%w: insumo %s", domain.ErrNotFound, insumoID)
	}

	conSigno := domaininv.CantidadConSigno(tipo, cantidad)
	nuevoStock := insumo.StockActual.Add(conSigno)
	if nuevoStock.IsNegative() {
		faltante := nuevoStock.Neg()
		return nil, fmt.Errorf("%w: disponible %s, solicitado %s, faltante %s",
			domain.ErrStockInsuficiente, insumo.StockActual, conSigno.Neg(), faltante)
	}

	if err := insumoRepo.UpdateStock(insumoID, nuevoStock); err != nil {
		return nil, err
	}
	mov := &entity.MovimientoInventario{
		ID:            uuid.New().String(),
		InsumoID:      insumoID,
		LaborID:       laborID,
		Tipo:          tipo,
		Cantidad:      conSigno,
		Motivo:        motivo,
		Fecha:         now,
		UsuarioID:     usuarioID,
		FechaCreacion: now,
	}
	if err := movRepo.Append(mov); err != nil {
		return nil, err
	}
	return mov, nil
}

// Kardex lista los movimientos de un insumo en un rango de fechas junto con
// el stock actual materializado.
func (uc *LedgerUseCase) Kardex(ctx context.Context, insumoID string, from, to *time.Time, limit, offset int) (*entity.Insumo, []*entity.MovimientoInventario, error) {
	insumo, err := uc.insumoRepo.GetByID(insumoID)
	if err != nil {
		return nil, nil, err
	}
	if insumo == nil {
		return nil, nil, fmt.Errorf("%w: insumo %s", domain.ErrNotFound, insumoID)
	}
	movs, err := uc.movRepo.ListByInsumo(insumoID, from, to, limit, offset)
	if err != nil {
		return nil, nil, err
	}
	return insumo, movs, nil
}
