package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de insumo.
const (
	TipoInsumoFertilizante = "FERTILIZANTE"
	TipoInsumoHerbicida    = "HERBICIDA"
	TipoInsumoFungicida    = "FUNGICIDA"
	TipoInsumoInsecticida  = "INSECTICIDA"
	TipoInsumoSemilla      = "SEMILLA"
	TipoInsumoCombustible  = "COMBUSTIBLE"
	TipoInsumoOtros        = "OTROS"
)

// Insumo representa un consumible de campo (fertilizante, agroquímico, semilla, etc.).
// StockActual solo se modifica a través del libro de movimientos de inventario;
// en todo momento debe coincidir con la suma con signo de sus movimientos.
type Insumo struct {
	ID             string
	Nombre         string
	Descripcion    string
	Tipo           string
	UnidadMedida   string // LTS, KG, GR, ML, UN
	PrecioUnitario decimal.Decimal
	StockMinimo    decimal.Decimal
	StockActual    decimal.Decimal
	Proveedor      string
	// Atributos agroquímicos (opcionales; solo aplican a herbicidas,
	// fungicidas e insecticidas).
	PrincipioActivo  string
	ClaseQuimica     string
	CarenciaDias     *int
	DosisMinimaPorHa *decimal.Decimal
	DosisMaximaPorHa *decimal.Decimal

	// Un insumo referenciado por movimientos nunca se borra; se desactiva.
	Activo             bool
	FechaCreacion      time.Time
	FechaActualizacion time.Time
}

// EsAgroquimico indica si el insumo es un agroquímico (sujeto a reglas de dosis).
func (i *Insumo) EsAgroquimico() bool {
	switch i.Tipo {
	case TipoInsumoHerbicida, TipoInsumoFungicida, TipoInsumoInsecticida:
		return true
	}
	return false
}

// BajoStockMinimo indica si el stock actual está por debajo del umbral mínimo.
func (i *Insumo) BajoStockMinimo() bool {
	return i.StockActual.LessThan(i.StockMinimo)
}
