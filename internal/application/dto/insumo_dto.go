package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateInsumoRequest alta de un insumo en el catálogo.
type CreateInsumoRequest struct {
	Nombre         string          `json:"nombre"`
	Descripcion    string          `json:"descripcion,omitempty"`
	Tipo           string          `json:"tipo"`
	UnidadMedida   string          `json:"unidad_medida"`
	PrecioUnitario decimal.Decimal `json:"precio_unitario"`
	StockMinimo    decimal.Decimal `json:"stock_minimo"`
	StockInicial   decimal.Decimal `json:"stock_inicial"`
	Proveedor      string          `json:"proveedor,omitempty"`

	PrincipioActivo  string           `json:"principio_activo,omitempty"`
	ClaseQuimica     string           `json:"clase_quimica,omitempty"`
	CarenciaDias     *int             `json:"carencia_dias,omitempty"`
	DosisMinimaPorHa *decimal.Decimal `json:"dosis_minima_ha,omitempty"`
	DosisMaximaPorHa *decimal.Decimal `json:"dosis_maxima_ha,omitempty"`
}

// UpdateInsumoRequest edición de un insumo. El stock no se edita acá:
// solo cambia a través del libro de movimientos.
type UpdateInsumoRequest struct {
	Nombre         string          `json:"nombre"`
	Descripcion    string          `json:"descripcion,omitempty"`
	Tipo           string          `json:"tipo"`
	UnidadMedida   string          `json:"unidad_medida"`
	PrecioUnitario decimal.Decimal `json:"precio_unitario"`
	StockMinimo    decimal.Decimal `json:"stock_minimo"`
	Proveedor      string          `json:"proveedor,omitempty"`

	PrincipioActivo  string           `json:"principio_activo,omitempty"`
	ClaseQuimica     string           `json:"clase_quimica,omitempty"`
	CarenciaDias     *int             `json:"carencia_dias,omitempty"`
	DosisMinimaPorHa *decimal.Decimal `json:"dosis_minima_ha,omitempty"`
	DosisMaximaPorHa *decimal.Decimal `json:"dosis_maxima_ha,omitempty"`
}

// InsumoResponse representación de un insumo.
type InsumoResponse struct {
	ID             string          `json:"id"`
	Nombre         string          `json:"nombre"`
	Descripcion    string          `json:"descripcion,omitempty"`
	Tipo           string          `json:"tipo"`
	UnidadMedida   string          `json:"unidad_medida"`
	PrecioUnitario decimal.Decimal `json:"precio_unitario"`
	StockMinimo    decimal.Decimal `json:"stock_minimo"`
	StockActual    decimal.Decimal `json:"stock_actual"`
	BajoStockMin   bool            `json:"bajo_stock_minimo"`
	Proveedor      string          `json:"proveedor,omitempty"`

	PrincipioActivo  string           `json:"principio_activo,omitempty"`
	ClaseQuimica     string           `json:"clase_quimica,omitempty"`
	CarenciaDias     *int             `json:"carencia_dias,omitempty"`
	DosisMinimaPorHa *decimal.Decimal `json:"dosis_minima_ha,omitempty"`
	DosisMaximaPorHa *decimal.Decimal `json:"dosis_maxima_ha,omitempty"`

	Activo        bool      `json:"activo"`
	FechaCreacion time.Time `json:"fecha_creacion"`
}

// InsumoListResponse listado paginado de insumos.
type InsumoListResponse struct {
	Total   int              `json:"total"`
	Insumos []InsumoResponse `json:"insumos"`
}
