package dto

import "github.com/shopspring/decimal"

// CreateDosisRequest alta de una regla de dosis del catálogo.
type CreateDosisRequest struct {
	InsumoID              string          `json:"insumo_id"`
	TipoAplicacion        string          `json:"tipo_aplicacion"`
	FormaAplicacion       string          `json:"forma_aplicacion"`
	DosisRecomendadaPorHa decimal.Decimal `json:"dosis_recomendada_por_ha"`
}

// DosisResponse representación de una regla de dosis.
type DosisResponse struct {
	ID                    string          `json:"id"`
	InsumoID              string          `json:"insumo_id"`
	TipoAplicacion        string          `json:"tipo_aplicacion"`
	FormaAplicacion       string          `json:"forma_aplicacion"`
	DosisRecomendadaPorHa decimal.Decimal `json:"dosis_recomendada_por_ha"`
	Unidad                string          `json:"unidad"`
	Activo                bool            `json:"activo"`
}

// CalcularCantidadRequest cálculo de cantidad necesaria de un agroquímico.
type CalcularCantidadRequest struct {
	InsumoID           string           `json:"insumo_id"`
	LoteID             string           `json:"lote_id"`
	TipoAplicacion     string           `json:"tipo_aplicacion"`
	FormaAplicacion    string           `json:"forma_aplicacion"`
	DosisPersonalizada *decimal.Decimal `json:"dosis_personalizada,omitempty"`
}

// CalcularCantidadResponse resultado del cálculo de dosis.
type CalcularCantidadResponse struct {
	CantidadNecesaria     decimal.Decimal  `json:"cantidad_necesaria"`
	Unidad                string           `json:"unidad"`
	DosisRecomendadaPorHa decimal.Decimal  `json:"dosis_recomendada_por_ha"`
	DosisUtilizada        decimal.Decimal  `json:"dosis_utilizada"`
	DosisModificada       bool             `json:"dosis_modificada"`
	VariacionPorcentual   *decimal.Decimal `json:"variacion_porcentual,omitempty"`
	Severidad             string           `json:"severidad,omitempty"`
	MensajeDosis          string           `json:"mensaje_dosis,omitempty"`
	StockSuficiente       bool             `json:"stock_suficiente"`
	MensajeStock          string           `json:"mensaje_stock"`
}

// EstadisticasDesvioResponse estadísticas de desvío histórico de un insumo.
type EstadisticasDesvioResponse struct {
	Total        int             `json:"total"`
	Minimo       decimal.Decimal `json:"minimo"`
	Maximo       decimal.Decimal `json:"maximo"`
	Promedio     decimal.Decimal `json:"promedio"`
	PorSeveridad map[string]int  `json:"por_severidad"`
}
