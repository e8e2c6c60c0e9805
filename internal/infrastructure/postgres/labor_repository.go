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

var _ repository.LaborRepository = (*LaborRepo)(nil)

const laborColumns = `id, tipo_labor, descripcion, fecha_inicio, fecha_fin, estado,
	costo_total, observaciones, lote_id, usuario_id, motivo_anulacion, fecha_anulacion,
	usuario_anulacion, fecha_creacion, fecha_actualizacion`

// LaborRepo implementación de LaborRepository sobre PostgreSQL. Una labor y sus
// líneas se persisten como unidad; este adaptador se usa siempre dentro de la
// transacción del TxRunner cuando hay mutación.
type LaborRepo struct {
	q Querier
}

// NewLaborRepository construye el adaptador. Pasar pool o tx (Querier).
func NewLaborRepository(q Querier) *LaborRepo {
	return &LaborRepo{q: q}
}

// Create persiste la labor con todas sus líneas.
func (r *LaborRepo) Create(labor *entity.Labor) error {
	if labor.ID == "" {
		labor.ID = uuid.New().String()
	}
	query := `
		INSERT INTO labores (` + laborColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, now(), now())`
	_, err := r.q.Exec(context.Background(), query,
		labor.ID, labor.TipoLabor, labor.Descripcion, labor.FechaInicio, labor.FechaFin,
		labor.Estado, labor.CostoTotal, labor.Observaciones, labor.LoteID, labor.UsuarioID,
		labor.MotivoAnulacion, labor.FechaAnulacion, labor.UsuarioAnulacion,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("labor %s: %w", labor.ID, domain.ErrConflict)
		}
		return fmt.Errorf("create labor: %w", err)
	}
	return r.insertLineas(labor)
}

// GetByID obtiene la labor con sus líneas.
func (r *LaborRepo) GetByID(id string) (*entity.Labor, error) {
	query := `SELECT ` + laborColumns + ` FROM labores WHERE id = $1`
	var l entity.Labor
	err := scanLabor(r.q.QueryRow(context.Background(), query, id), &l)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get labor: %w", err)
	}
	if err := r.loadLineas(&l); err != nil {
		return nil, err
	}
	return &l, nil
}

// Update persiste la labor y reemplaza sus líneas como unidad.
func (r *LaborRepo) Update(labor *entity.Labor) error {
	query := `
		UPDATE labores SET tipo_labor = $2, descripcion = $3, fecha_inicio = $4,
			fecha_fin = $5, estado = $6, costo_total = $7, observaciones = $8,
			motivo_anulacion = $9, fecha_anulacion = $10, usuario_anulacion = $11,
			fecha_actualizacion = now()
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query,
		labor.ID, labor.TipoLabor, labor.Descripcion, labor.FechaInicio, labor.FechaFin,
		labor.Estado, labor.CostoTotal, labor.Observaciones,
		labor.MotivoAnulacion, labor.FechaAnulacion, labor.UsuarioAnulacion,
	)
	if err != nil {
		return fmt.Errorf("update labor: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("labor %s: %w", labor.ID, domain.ErrNotFound)
	}
	if err := r.deleteLineas(labor.ID); err != nil {
		return err
	}
	return r.insertLineas(labor)
}

// Delete elimina la labor y sus líneas. Solo el motor la llama, y solo
// mientras la labor sigue PLANIFICADA.
func (r *LaborRepo) Delete(id string) error {
	if err := r.deleteLineas(id); err != nil {
		return err
	}
	tag, err := r.q.Exec(context.Background(), `DELETE FROM labores WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete labor: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("labor %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

// ListByLote lista las labores de un lote, las más recientes primero.
func (r *LaborRepo) ListByLote(loteID string, limit, offset int) ([]*entity.Labor, error) {
	query := `SELECT ` + laborColumns + ` FROM labores WHERE lote_id = $1
		ORDER BY fecha_inicio DESC, id LIMIT $2 OFFSET $3`
	return r.list(query, loteID, nullIfZero(limit), offset)
}

// ListByEstado lista las labores en un estado dado.
func (r *LaborRepo) ListByEstado(estado entity.EstadoLabor, limit, offset int) ([]*entity.Labor, error) {
	query := `SELECT ` + laborColumns + ` FROM labores WHERE estado = $1
		ORDER BY fecha_inicio DESC, id LIMIT $2 OFFSET $3`
	return r.list(query, estado, nullIfZero(limit), offset)
}

// ListLineasByInsumo devuelve las líneas de un insumo en labores completadas,
// para estadísticas de desvío histórico.
func (r *LaborRepo) ListLineasByInsumo(insumoID string) ([]*entity.LaborInsumo, error) {
	query := `
		SELECT li.id, li.labor_id, li.insumo_id, li.cantidad_planificada, li.cantidad_usada,
			li.costo_unitario, li.costo_total, li.motivo_desvio, li.observaciones
		FROM labor_insumos li
		JOIN labores l ON l.id = li.labor_id
		WHERE li.insumo_id = $1 AND l.estado = $2
		ORDER BY l.fecha_inicio DESC, li.id`
	rows, err := r.q.Query(context.Background(), query, insumoID, entity.LaborCompletada)
	if err != nil {
		return nil, fmt.Errorf("list lineas por insumo: %w", err)
	}
	defer rows.Close()
	var list []*entity.LaborInsumo
	for rows.Next() {
		var li entity.LaborInsumo
		if err := rows.Scan(&li.ID, &li.LaborID, &li.InsumoID, &li.CantidadPlanificada,
			&li.CantidadUsada, &li.CostoUnitario, &li.CostoTotal, &li.MotivoDesvio,
			&li.Observaciones); err != nil {
			return nil, fmt.Errorf("scan linea: %w", err)
		}
		list = append(list, &li)
	}
	return list, rows.Err()
}

func (r *LaborRepo) list(query string, args ...any) ([]*entity.Labor, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list labores: %w", err)
	}
	defer rows.Close()
	var list []*entity.Labor
	for rows.Next() {
		var l entity.Labor
		if err := scanLabor(rows, &l); err != nil {
			return nil, fmt.Errorf("scan labor: %w", err)
		}
		list = append(list, &l)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, l := range list {
		if err := r.loadLineas(l); err != nil {
			return nil, err
		}
	}
	return list, nil
}

func (r *LaborRepo) insertLineas(labor *entity.Labor) error {
	ctx := context.Background()
	for i := range labor.Insumos {
		li := &labor.Insumos[i]
		if li.ID == "" {
			li.ID = uuid.New().String()
		}
		_, err := r.q.Exec(ctx, `
			INSERT INTO labor_insumos (id, labor_id, insumo_id, cantidad_planificada,
				cantidad_usada, costo_unitario, costo_total, motivo_desvio, observaciones)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
			li.ID, labor.ID, li.InsumoID, li.CantidadPlanificada, li.CantidadUsada,
			li.CostoUnitario, li.CostoTotal, li.MotivoDesvio, li.Observaciones,
		)
		if err != nil {
			return fmt.Errorf("insert labor_insumo: %w", err)
		}
	}
	for i := range labor.Maquinaria {
		lm := &labor.Maquinaria[i]
		if lm.ID == "" {
			lm.ID = uuid.New().String()
		}
		_, err := r.q.Exec(ctx, `
			INSERT INTO labor_maquinaria (id, labor_id, descripcion, proveedor, costo)
			VALUES ($1, $2, $3, $4, $5)`,
			lm.ID, labor.ID, lm.Descripcion, lm.Proveedor, lm.Costo,
		)
		if err != nil {
			return fmt.Errorf("insert labor_maquinaria: %w", err)
		}
	}
	for i := range labor.ManoObra {
		lo := &labor.ManoObra[i]
		if lo.ID == "" {
			lo.ID = uuid.New().String()
		}
		_, err := r.q.Exec(ctx, `
			INSERT INTO labor_mano_obra (id, labor_id, descripcion, cant_personas, horas,
				costo_por_hora, costo_total)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			lo.ID, labor.ID, lo.Descripcion, lo.CantPersonas, lo.Horas,
			lo.CostoPorHora, lo.CostoTotal,
		)
		if err != nil {
			return fmt.Errorf("insert labor_mano_obra: %w", err)
		}
	}
	return nil
}

func (r *LaborRepo) deleteLineas(laborID string) error {
	ctx := context.Background()
	for _, table := range []string{"labor_insumos", "labor_maquinaria", "labor_mano_obra"} {
		if _, err := r.q.Exec(ctx, `DELETE FROM `+table+` WHERE labor_id = $1`, laborID); err != nil {
			return fmt.Errorf("delete %s: %w", table, err)
		}
	}
	return nil
}

func (r *LaborRepo) loadLineas(l *entity.Labor) error {
	ctx := context.Background()

	rows, err := r.q.Query(ctx, `
		SELECT id, labor_id, insumo_id, cantidad_planificada, cantidad_usada,
			costo_unitario, costo_total, motivo_desvio, observaciones
		FROM labor_insumos WHERE labor_id = $1 ORDER BY id`, l.ID)
	if err != nil {
		return fmt.Errorf("load labor_insumos: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var li entity.LaborInsumo
		if err := rows.Scan(&li.ID, &li.LaborID, &li.InsumoID, &li.CantidadPlanificada,
			&li.CantidadUsada, &li.CostoUnitario, &li.CostoTotal, &li.MotivoDesvio,
			&li.Observaciones); err != nil {
			return fmt.Errorf("scan labor_insumo: %w", err)
		}
		l.Insumos = append(l.Insumos, li)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	rows, err = r.q.Query(ctx, `
		SELECT id, labor_id, descripcion, proveedor, costo
		FROM labor_maquinaria WHERE labor_id = $1 ORDER BY id`, l.ID)
	if err != nil {
		return fmt.Errorf("load labor_maquinaria: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var lm entity.LaborMaquinaria
		if err := rows.Scan(&lm.ID, &lm.LaborID, &lm.Descripcion, &lm.Proveedor, &lm.Costo); err != nil {
			return fmt.Errorf("scan labor_maquinaria: %w", err)
		}
		l.Maquinaria = append(l.Maquinaria, lm)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	rows, err = r.q.Query(ctx, `
		SELECT id, labor_id, descripcion, cant_personas, horas, costo_por_hora, costo_total
		FROM labor_mano_obra WHERE labor_id = $1 ORDER BY id`, l.ID)
	if err != nil {
		return fmt.Errorf("load labor_mano_obra: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var lo entity.LaborManoObra
		if err := rows.Scan(&lo.ID, &lo.LaborID, &lo.Descripcion, &lo.CantPersonas,
			&lo.Horas, &lo.CostoPorHora, &lo.CostoTotal); err != nil {
			return fmt.Errorf("scan labor_mano_obra: %w", err)
		}
		l.ManoObra = append(l.ManoObra, lo)
	}
	return rows.Err()
}

func scanLabor(row pgx.Row, l *entity.Labor) error {
	return row.Scan(
		&l.ID, &l.TipoLabor, &l.Descripcion, &l.FechaInicio, &l.FechaFin, &l.Estado,
		&l.CostoTotal, &l.Observaciones, &l.LoteID, &l.UsuarioID, &l.MotivoAnulacion,
		&l.FechaAnulacion, &l.UsuarioAnulacion, &l.FechaCreacion, &l.FechaActualizacion,
	)
}
