package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/luismorales81/agrocloud-sub002/internal/domain"
	"github.com/luismorales81/agrocloud-sub002/internal/domain/entity"
	"github.com/luismorales81/agrocloud-sub002/internal/domain/repository"
)

var _ repository.DosisRepository = (*DosisRepo)(nil)

const dosisColumns = `id, insumo_id, tipo_aplicacion, forma_aplicacion,
	dosis_recomendada_ha, unidad, activo, fecha_creacion, fecha_actualizacion`

// DosisRepo implementación del catálogo de reglas de dosis sobre PostgreSQL.
type DosisRepo struct {
	q Querier
}

// NewDosisRepository construye el adaptador. Pasar pool o tx (Querier).
func NewDosisRepository(q Querier) *DosisRepo {
	return &DosisRepo{q: q}
}

// Create persiste una regla de dosis.
func (r *DosisRepo) Create(dosis *entity.DosisInsumo) error {
	if dosis.ID == "" {
		dosis.ID = uuid.New().String()
	}
	query := `
		INSERT INTO dosis_insumos (` + dosisColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, now(), now())`
	_, err := r.q.Exec(context.Background(), query,
		dosis.ID, dosis.InsumoID, dosis.TipoAplicacion, dosis.FormaAplicacion,
		dosis.DosisRecomendadaPorHa, dosis.Unidad, dosis.Activo,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("regla de dosis %s: %w", dosis.ID, domain.ErrConflict)
		}
		return fmt.Errorf("create dosis: %w", err)
	}
	return nil
}

// GetByID obtiene una regla por ID.
func (r *DosisRepo) GetByID(id string) (*entity.DosisInsumo, error) {
	query := `SELECT ` + dosisColumns + ` FROM dosis_insumos WHERE id = $1`
	var d entity.DosisInsumo
	err := scanDosis(r.q.QueryRow(context.Background(), query, id), &d)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get dosis: %w", err)
	}
	return &d, nil
}

// Find resuelve la regla activa para (insumo, tipo, forma de aplicación).
func (r *DosisRepo) Find(insumoID, tipoAplicacion, formaAplicacion string) (*entity.DosisInsumo, error) {
	query := `SELECT ` + dosisColumns + ` FROM dosis_insumos
		WHERE insumo_id = $1 AND tipo_aplicacion = $2 AND forma_aplicacion = $3 AND activo`
	var d entity.DosisInsumo
	err := scanDosis(r.q.QueryRow(context.Background(), query, insumoID, tipoAplicacion, formaAplicacion), &d)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("find dosis: %w", err)
	}
	return &d, nil
}

// ListByInsumo lista todas las reglas de un insumo.
func (r *DosisRepo) ListByInsumo(insumoID string) ([]*entity.DosisInsumo, error) {
	query := `SELECT ` + dosisColumns + ` FROM dosis_insumos WHERE insumo_id = $1 ORDER BY id`
	rows, err := r.q.Query(context.Background(), query, insumoID)
	if err != nil {
		return nil, fmt.Errorf("list dosis: %w", err)
	}
	defer rows.Close()
	var list []*entity.DosisInsumo
	for rows.Next() {
		var d entity.DosisInsumo
		if err := scanDosis(rows, &d); err != nil {
			return nil, fmt.Errorf("scan dosis: %w", err)
		}
		list = append(list, &d)
	}
	return list, rows.Err()
}

// Deactivate baja lógica de la regla.
func (r *DosisRepo) Deactivate(id string) error {
	query := `UPDATE dosis_insumos SET activo = false, fecha_actualizacion = now() WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query, id)
	if err != nil {
		return fmt.Errorf("deactivate dosis: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("regla de dosis %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

func scanDosis(row pgx.Row, d *entity.DosisInsumo) error {
	return row.Scan(
		&d.ID, &d.InsumoID, &d.TipoAplicacion, &d.FormaAplicacion,
		&d.DosisRecomendadaPorHa, &d.Unidad, &d.Activo, &d.FechaCreacion, &d.FechaActualizacion,
	)
}
