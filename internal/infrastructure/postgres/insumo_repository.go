package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/luismorales81/agrocloud-sub002/internal/domain"
	"github.com/luismorales81/agrocloud-sub002/internal/domain/entity"
	"github.com/luismorales81/agrocloud-sub002/internal/domain/repository"
)

var _ repository.InsumoRepository = (*InsumoRepo)(nil)

const insumoColumns = `id, nombre, descripcion, tipo, unidad_medida, precio_unitario,
	stock_minimo, stock_actual, proveedor, principio_activo, clase_quimica,
	carencia_dias, dosis_minima_ha, dosis_maxima_ha, activo, fecha_creacion, fecha_actualizacion`

// InsumoRepo implementación de InsumoRepository sobre PostgreSQL (usable con pool o tx).
type InsumoRepo struct {
	q Querier
}

// NewInsumoRepository construye el adaptador de insumos. Pasar pool o tx (Querier).
func NewInsumoRepository(q Querier) *InsumoRepo {
	return &InsumoRepo{q: q}
}

// Create persiste un insumo nuevo.
func (r *InsumoRepo) Create(insumo *entity.Insumo) error {
	if insumo.ID == "" {
		insumo.ID = uuid.New().String()
	}
	query := `
		INSERT INTO insumos (` + insumoColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, now(), now())`
	_, err := r.q.Exec(context.Background(), query,
		insumo.ID, insumo.Nombre, insumo.Descripcion, insumo.Tipo, insumo.UnidadMedida,
		insumo.PrecioUnitario, insumo.StockMinimo, insumo.StockActual, insumo.Proveedor,
		insumo.PrincipioActivo, insumo.ClaseQuimica, insumo.CarenciaDias,
		insumo.DosisMinimaPorHa, insumo.DosisMaximaPorHa, insumo.Activo,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("insumo %s: %w", insumo.ID, domain.ErrConflict)
		}
		return fmt.Errorf("create insumo: %w", err)
	}
	return nil
}

// GetByID obtiene un insumo por ID.
func (r *InsumoRepo) GetByID(id string) (*entity.Insumo, error) {
	query := `SELECT ` + insumoColumns + ` FROM insumos WHERE id = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id), "get insumo")
}

// GetForUpdate obtiene el insumo y bloquea su fila (SELECT FOR UPDATE) para
// serializar actualizaciones concurrentes de stock.
func (r *InsumoRepo) GetForUpdate(id string) (*entity.Insumo, error) {
	query := `SELECT ` + insumoColumns + ` FROM insumos WHERE id = $1 FOR UPDATE`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id), "get insumo for update")
}

// Update persiste los campos editables del insumo. El stock solo se toca vía UpdateStock.
func (r *InsumoRepo) Update(insumo *entity.Insumo) error {
	query := `
		UPDATE insumos SET nombre = $2, descripcion = $3, tipo = $4, unidad_medida = $5,
			precio_unitario = $6, stock_minimo = $7, proveedor = $8, principio_activo = $9,
			clase_quimica = $10, carencia_dias = $11, dosis_minima_ha = $12,
			dosis_maxima_ha = $13, activo = $14, fecha_actualizacion = now()
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query,
		insumo.ID, insumo.Nombre, insumo.Descripcion, insumo.Tipo, insumo.UnidadMedida,
		insumo.PrecioUnitario, insumo.StockMinimo, insumo.Proveedor, insumo.PrincipioActivo,
		insumo.ClaseQuimica, insumo.CarenciaDias, insumo.DosisMinimaPorHa,
		insumo.DosisMaximaPorHa, insumo.Activo,
	)
	if err != nil {
		return fmt.Errorf("update insumo: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("insumo %s: %w", insumo.ID, domain.ErrNotFound)
	}
	return nil
}

// UpdateStock fija el stock materializado. Solo el libro de movimientos llama acá.
func (r *InsumoRepo) UpdateStock(id string, stock decimal.Decimal) error {
	query := `UPDATE insumos SET stock_actual = $2, fecha_actualizacion = now() WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query, id, stock)
	if err != nil {
		return fmt.Errorf("update stock: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("insumo %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

// List lista insumos, opcionalmente solo activos.
func (r *InsumoRepo) List(soloActivos bool, limit, offset int) ([]*entity.Insumo, error) {
	query := `SELECT ` + insumoColumns + ` FROM insumos`
	if soloActivos {
		query += ` WHERE activo`
	}
	query += ` ORDER BY nombre LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, nullIfZero(limit), offset)
	if err != nil {
		return nil, fmt.Errorf("list insumos: %w", err)
	}
	defer rows.Close()
	var list []*entity.Insumo
	for rows.Next() {
		var i entity.Insumo
		if err := scanInsumo(rows, &i); err != nil {
			return nil, fmt.Errorf("scan insumo: %w", err)
		}
		list = append(list, &i)
	}
	return list, rows.Err()
}

// Deactivate baja lógica del insumo. Los movimientos históricos quedan intactos.
func (r *InsumoRepo) Deactivate(id string) error {
	query := `UPDATE insumos SET activo = false, fecha_actualizacion = now() WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query, id)
	if err != nil {
		return fmt.Errorf("deactivate insumo: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("insumo %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

func (r *InsumoRepo) scanOne(row pgx.Row, op string) (*entity.Insumo, error) {
	var i entity.Insumo
	if err := scanInsumo(row, &i); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &i, nil
}

func scanInsumo(row pgx.Row, i *entity.Insumo) error {
	return row.Scan(
		&i.ID, &i.Nombre, &i.Descripcion, &i.Tipo, &i.UnidadMedida, &i.PrecioUnitario,
		&i.StockMinimo, &i.StockActual, &i.Proveedor, &i.PrincipioActivo, &i.ClaseQuimica,
		&i.CarenciaDias, &i.DosisMinimaPorHa, &i.DosisMaximaPorHa, &i.Activo,
		&i.FechaCreacion, &i.FechaActualizacion,
	)
}
