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

var _ repository.LoteRepository = (*LoteRepo)(nil)

const loteColumns = `id, nombre, descripcion, superficie_ha, estado, cultivo_actual,
	campo_id, usuario_id, activo, fecha_creacion, fecha_actualizacion`

// LoteRepo implementación de LoteRepository sobre PostgreSQL (usable con pool o tx).
type LoteRepo struct {
	q Querier
}

// NewLoteRepository construye el adaptador. Pasar pool o tx (Querier).
func NewLoteRepository(q Querier) *LoteRepo {
	return &LoteRepo{q: q}
}

// Create persiste un lote nuevo.
func (r *LoteRepo) Create(lote *entity.Lote) error {
	if lote.ID == "" {
		lote.ID = uuid.New().String()
	}
	query := `
		INSERT INTO lotes (` + loteColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, now(), now())`
	_, err := r.q.Exec(context.Background(), query,
		lote.ID, lote.Nombre, lote.Descripcion, lote.SuperficieHa, lote.Estado,
		lote.CultivoActual, lote.CampoID, lote.UsuarioID, lote.Activo,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("lote %s: %w", lote.ID, domain.ErrConflict)
		}
		return fmt.Errorf("create lote: %w", err)
	}
	return nil
}

// GetByID obtiene un lote por ID.
func (r *LoteRepo) GetByID(id string) (*entity.Lote, error) {
	query := `SELECT ` + loteColumns + ` FROM lotes WHERE id = $1`
	var l entity.Lote
	err := scanLote(r.q.QueryRow(context.Background(), query, id), &l)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get lote: %w", err)
	}
	return &l, nil
}

// Update persiste los campos editables del lote.
func (r *LoteRepo) Update(lote *entity.Lote) error {
	query := `
		UPDATE lotes SET nombre = $2, descripcion = $3, superficie_ha = $4, estado = $5,
			cultivo_actual = $6, campo_id = $7, activo = $8, fecha_actualizacion = now()
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query,
		lote.ID, lote.Nombre, lote.Descripcion, lote.SuperficieHa, lote.Estado,
		lote.CultivoActual, lote.CampoID, lote.Activo,
	)
	if err != nil {
		return fmt.Errorf("update lote: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("lote %s: %w", lote.ID, domain.ErrNotFound)
	}
	return nil
}

// UpdateEstado persiste solo el estado de cultivo. Únicamente el workflow de
// estados llama acá.
func (r *LoteRepo) UpdateEstado(id string, estado entity.EstadoLote) error {
	query := `UPDATE lotes SET estado = $2, fecha_actualizacion = now() WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query, id, estado)
	if err != nil {
		return fmt.Errorf("update estado lote: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("lote %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

// List lista lotes ordenados por nombre.
func (r *LoteRepo) List(limit, offset int) ([]*entity.Lote, error) {
	query := `SELECT ` + loteColumns + ` FROM lotes ORDER BY nombre LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, nullIfZero(limit), offset)
	if err != nil {
		return nil, fmt.Errorf("list lotes: %w", err)
	}
	defer rows.Close()
	var list []*entity.Lote
	for rows.Next() {
		var l entity.Lote
		if err := scanLote(rows, &l); err != nil {
			return nil, fmt.Errorf("scan lote: %w", err)
		}
		list = append(list, &l)
	}
	return list, rows.Err()
}

func scanLote(row pgx.Row, l *entity.Lote) error {
	return row.Scan(
		&l.ID, &l.Nombre, &l.Descripcion, &l.SuperficieHa, &l.Estado, &l.CultivoActual,
		&l.CampoID, &l.UsuarioID, &l.Activo, &l.FechaCreacion, &l.FechaActualizacion,
	)
}
