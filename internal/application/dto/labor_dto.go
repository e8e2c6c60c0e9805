package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// PlanLaborLineRequest línea de insumo planificada. Si cantidad viene vacía,
// se calcula con la regla de dosis para tipo/forma de aplicación.
type PlanLaborLineRequest struct {
	InsumoID           string           `json:"insumo_id"`
	Cantidad           *decimal.Decimal `json:"cantidad,omitempty"`
	TipoAplicacion     string           `json:"tipo_aplicacion,omitempty"`
	FormaAplicacion    string           `json:"forma_aplicacion,omitempty"`
	DosisPersonalizada *decimal.Decimal `json:"dosis_personalizada,omitempty"`
	Observaciones      string           `json:"observaciones,omitempty"`
}

// PlanMaquinariaRequest línea de maquinaria.
type PlanMaquinariaRequest struct {
	Descripcion string          `json:"descripcion"`
	Proveedor   string          `json:"proveedor,omitempty"`
	Costo       decimal.Decimal `json:"costo"`
}

// PlanManoObraRequest línea de mano de obra.
type PlanManoObraRequest struct {
	Descripcion  string          `json:"descripcion"`
	CantPersonas int             `json:"cant_personas"`
	Horas        decimal.Decimal `json:"horas"`
	CostoPorHora decimal.Decimal `json:"costo_por_hora"`
}

// PlanLaborRequest planifica una labor.
type PlanLaborRequest struct {
	TipoLabor   string                  `json:"tipo_labor"`
	Descripcion string                  `json:"descripcion,omitempty"`
	LoteID      string                  `json:"lote_id"`
	FechaInicio time.Time               `json:"fecha_inicio"`
	FechaFin    *time.Time              `json:"fecha_fin,omitempty"`
	Insumos     []PlanLaborLineRequest  `json:"insumos,omitempty"`
	Maquinaria  []PlanMaquinariaRequest `json:"maquinaria,omitempty"`
	ManoObra    []PlanManoObraRequest   `json:"mano_obra,omitempty"`
}

// CompleteLaborLineRequest cantidad realmente usada de una línea.
type CompleteLaborLineRequest struct {
	LineaID       string          `json:"linea_id"`
	CantidadUsada decimal.Decimal `json:"cantidad_usada"`
	MotivoDesvio  string          `json:"motivo_desvio,omitempty"`
}

// CompleteLaborRequest completa una labor con cantidades reales.
type CompleteLaborRequest struct {
	Lineas        []CompleteLaborLineRequest `json:"lineas,omitempty"`
	Observaciones string                     `json:"observaciones,omitempty"`
}

// AnnulLaborRequest anula una labor ejecutada.
type AnnulLaborRequest struct {
	Motivo string `json:"motivo"`
}

// CostSummaryResponse desglose de costos al completar una labor.
type CostSummaryResponse struct {
	CostoInsumos    decimal.Decimal `json:"costo_insumos"`
	CostoMaquinaria decimal.Decimal `json:"costo_maquinaria"`
	CostoManoObra   decimal.Decimal `json:"costo_mano_obra"`
	CostoTotal      decimal.Decimal `json:"costo_total"`
}

// LaborLineResponse línea de insumo de una labor.
type LaborLineResponse struct {
	ID                  string          `json:"id"`
	InsumoID            string          `json:"insumo_id"`
	CantidadPlanificada decimal.Decimal `json:"cantidad_planificada"`
	CantidadUsada       decimal.Decimal `json:"cantidad_usada"`
	CostoUnitario       decimal.Decimal `json:"costo_unitario"`
	CostoTotal          decimal.Decimal `json:"costo_total"`
	MotivoDesvio        string          `json:"motivo_desvio,omitempty"`
}

// LaborResponse representación de una labor.
type LaborResponse struct {
	ID              string              `json:"id"`
	TipoLabor       string              `json:"tipo_labor"`
	Descripcion     string              `json:"descripcion,omitempty"`
	Estado          string              `json:"estado"`
	LoteID          string              `json:"lote_id"`
	FechaInicio     time.Time           `json:"fecha_inicio"`
	FechaFin        *time.Time          `json:"fecha_fin,omitempty"`
	CostoTotal      decimal.Decimal     `json:"costo_total"`
	Observaciones   string              `json:"observaciones,omitempty"`
	MotivoAnulacion string              `json:"motivo_anulacion,omitempty"`
	Insumos         []LaborLineResponse `json:"insumos,omitempty"`
}
