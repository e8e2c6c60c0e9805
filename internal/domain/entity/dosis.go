package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de aplicación de un agroquímico.
const (
	TipoAplicacionSiembra       = "SIEMBRA"
	TipoAplicacionPreEmergente  = "PRE_EMERGENTE"
	TipoAplicacionPostEmergente = "POST_EMERGENTE"
	TipoAplicacionFoliar        = "FOLIAR"
)

// Formas de aplicación.
const (
	FormaAplicacionTerrestre = "TERRESTRE"
	FormaAplicacionAerea     = "AEREA"
	FormaAplicacionManual    = "MANUAL"
)

// DosisInsumo es la regla de catálogo que mapea (insumo, tipo de aplicación,
// forma de aplicación) a una dosis recomendada por hectárea. Solo lectura para
// el motor; el catálogo se edita por fuera.
type DosisInsumo struct {
	ID                    string
	InsumoID              string
	TipoAplicacion        string
	FormaAplicacion       string
	DosisRecomendadaPorHa decimal.Decimal
	Unidad                string // derivada de la unidad de medida del insumo: L_HA, KG_HA, ML_HA
	Activo                bool
	FechaCreacion         time.Time
	FechaActualizacion    time.Time
}

// UnidadDosis deriva la unidad de dosis desde la unidad de medida del insumo.
func UnidadDosis(unidadMedida string) string {
	switch unidadMedida {
	case "LTS", "L":
		return "L_HA"
	case "KG":
		return "KG_HA"
	case "GR":
		return "GR_HA"
	case "ML":
		return "ML_HA"
	default:
		return "L_HA"
	}
}
