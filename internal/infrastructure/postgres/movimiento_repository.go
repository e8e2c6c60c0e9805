package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/luismorales81/agrocloud-sub002/internal/domain/entity"
	"github.com/luismorales81/agrocloud-sub002/internal/domain/repository"
)

var _ repository.MovimientoRepository = (*MovimientoRepo)(nil)

const movimientoColumns = `id, insumo_id, labor_id, tipo, cantidad, motivo, fecha, usuario_id, fecha_creacion`

// MovimientoRepo implementación del libro de movimientos sobre PostgreSQL.
// El libro es append-only: este adaptador no expone UPDATE ni DELETE.
type MovimientoRepo struct {
	q Querier
}

// NewMovimientoRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMovimientoRepository(q Querier) *MovimientoRepo {
	return &MovimientoRepo{q: q}
}

// Append agrega un movimiento al libro.
func (r *MovimientoRepo) Append(mov *entity.MovimientoInventario) error {
	if mov.ID == "" {
		mov.ID = uuid.New().String()
	}
	query := `
		INSERT INTO movimientos_inventario (` + movimientoColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		mov.ID, mov.InsumoID, mov.LaborID, mov.Tipo, mov.Cantidad,
		mov.Motivo, mov.Fecha, mov.UsuarioID, mov.FechaCreacion,
	)
	if err != nil {
		return fmt.Errorf("append movimiento: %w", err)
	}
	return nil
}

// GetByID obtiene un movimiento por ID.
func (r *MovimientoRepo) GetByID(id string) (*entity.MovimientoInventario, error) {
	query := `SELECT ` + movimientoColumns + ` FROM movimientos_inventario WHERE id = $1`
	var m entity.MovimientoInventario
	err := scanMovimiento(r.q.QueryRow(context.Background(), query, id), &m)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get movimiento: %w", err)
	}
	return &m, nil
}

// ListByInsumo lista los movimientos de un insumo en un rango de fechas.
func (r *MovimientoRepo) ListByInsumo(insumoID string, from, to *time.Time, limit, offset int) ([]*entity.MovimientoInventario, error) {
	query := `SELECT ` + movimientoColumns + ` FROM movimientos_inventario WHERE insumo_id = $1`
	args := []any{insumoID}
	pos := 2
	if from != nil {
		query += fmt.Sprintf(" AND fecha >= $%d", pos)
		args = append(args, *from)
		pos++
	}
	if to != nil {
		query += fmt.Sprintf(" AND fecha <= $%d", pos)
		args = append(args, *to)
		pos++
	}
	query += fmt.Sprintf(" ORDER BY fecha_creacion LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, nullIfZero(limit), offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list movimientos por insumo: %w", err)
	}
	defer rows.Close()
	return collectMovimientos(rows)
}

// ListByLabor lista los movimientos originados por una labor, en orden de registro.
func (r *MovimientoRepo) ListByLabor(laborID string) ([]*entity.MovimientoInventario, error) {
	query := `SELECT ` + movimientoColumns + ` FROM movimientos_inventario
		WHERE labor_id = $1 ORDER BY fecha_creacion`
	rows, err := r.q.Query(context.Background(), query, laborID)
	if err != nil {
		return nil, fmt.Errorf("list movimientos por labor: %w", err)
	}
	defer rows.Close()
	return collectMovimientos(rows)
}

func collectMovimientos(rows pgx.Rows) ([]*entity.MovimientoInventario, error) {
	var list []*entity.MovimientoInventario
	for rows.Next() {
		var m entity.MovimientoInventario
		if err := scanMovimiento(rows, &m); err != nil {
			return nil, fmt.Errorf("scan movimiento: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}

func scanMovimiento(row pgx.Row, m *entity.MovimientoInventario) error {
	return row.Scan(
		&m.ID, &m.InsumoID, &m.LaborID, &m.Tipo, &m.Cantidad,
		&m.Motivo, &m.Fecha, &m.UsuarioID, &m.FechaCreacion,
	)
}

// nullIfZero traduce limit=0 a NULL (sin límite) para la cláusula LIMIT.
func nullIfZero(n int) any {
	if n <= 0 {
		return nil
	}
	return n
}
