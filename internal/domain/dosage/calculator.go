// Package dosage implementa el cálculo de dosis de agroquímicos (servicio de
// dominio puro: sin I/O, sin escrituras; el motor de labores decide después
// cuánto stock debitar realmente).
package dosage

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/luismorales81/agrocloud-sub002/internal/domain/entity"
)

// Severidad del desvío entre la dosis utilizada y la recomendada.
const (
	DesvioOptimo    = "OPTIMA"
	DesvioAceptable = "ACEPTABLE"
	DesvioAlto      = "ALTA"
	DesvioCritico   = "CRITICA"
)

// Umbrales de clasificación en puntos porcentuales absolutos.
var (
	umbralOptimo    = decimal.NewFromInt(5)
	umbralAceptable = decimal.NewFromInt(10)
	umbralAlto      = decimal.NewFromInt(20)
)

// Resultado es la salida del cálculo de cantidad necesaria.
type Resultado struct {
	CantidadNecesaria     decimal.Decimal
	Unidad                string
	DosisRecomendadaPorHa decimal.Decimal
	DosisUtilizada        decimal.Decimal
	DosisModificada       bool
	VariacionPct          *decimal.Decimal
	Severidad             string // solo cuando DosisModificada
	MensajeDosis          string
	StockSuficiente       bool
	MensajeStock          string
}

// Calcular resuelve la cantidad necesaria de insumo para aplicar la regla de
// dosis sobre una superficie, con dosis personalizada opcional. La dosis
// personalizada nunca se rechaza: se clasifica y se informa, la decisión es
// del operador.
func Calcular(regla *entity.DosisInsumo, insumo *entity.Insumo, superficieHa decimal.Decimal, dosisPersonalizada *decimal.Decimal) Resultado {
	dosisUtilizada := regla.DosisRecomendadaPorHa
	if dosisPersonalizada != nil {
		dosisUtilizada = *dosisPersonalizada
	}
	necesaria := dosisUtilizada.Mul(superficieHa)

	res := Resultado{
		CantidadNecesaria:     necesaria,
		Unidad:                regla.Unidad,
		DosisRecomendadaPorHa: regla.DosisRecomendadaPorHa,
		DosisUtilizada:        dosisUtilizada,
		DosisModificada:       dosisPersonalizada != nil,
	}

	res.StockSuficiente = insumo.StockActual.GreaterThanOrEqual(necesaria)
	if res.StockSuficiente {
		res.MensajeStock = "Stock suficiente"
	} else {
		faltante := necesaria.Sub(insumo.StockActual)
		res.MensajeStock = fmt.Sprintf("Stock insuficiente. Disponible: %s %s, Necesario: %s %s, Faltante: %s %s",
			insumo.StockActual, regla.Unidad, necesaria, regla.Unidad, faltante, regla.Unidad)
	}

	if dosisPersonalizada != nil {
		variacion := Desvio(regla.DosisRecomendadaPorHa, dosisUtilizada)
		res.VariacionPct = &variacion
		res.Severidad = ClasificarDesvio(variacion)
		res.MensajeDosis = fmt.Sprintf("Dosis modificada por el usuario. Variación: %s%% (%s)",
			variacion.StringFixed(1), res.Severidad)
	}
	return res
}

// Desvio calcula la variación porcentual de la dosis utilizada respecto de la
// recomendada: (utilizada − recomendada) / recomendada × 100.
func Desvio(recomendada, utilizada decimal.Decimal) decimal.Decimal {
	if recomendada.IsZero() {
		return decimal.Zero
	}
	return utilizada.Sub(recomendada).Div(recomendada).Mul(decimal.NewFromInt(100))
}

// ClasificarDesvio clasifica un desvío porcentual en niveles de severidad
// según su valor absoluto.
func ClasificarDesvio(pct decimal.Decimal) string {
	abs := pct.Abs()
	switch {
	case abs.LessThanOrEqual(umbralOptimo):
		return DesvioOptimo
	case abs.LessThanOrEqual(umbralAceptable):
		return DesvioAceptable
	case abs.LessThanOrEqual(umbralAlto):
		return DesvioAlto
	default:
		return DesvioCritico
	}
}

// Estadisticas agrega desvíos históricos de aplicaciones.
type Estadisticas struct {
	Total        int
	Minimo       decimal.Decimal
	Maximo       decimal.Decimal
	Promedio     decimal.Decimal
	PorSeveridad map[string]int
}

// AgregarDesvios calcula estadísticas de una serie de desvíos porcentuales.
func AgregarDesvios(desvios []decimal.Decimal) Estadisticas {
	est := Estadisticas{PorSeveridad: map[string]int{}}
	if len(desvios) == 0 {
		return est
	}
	est.Total = len(desvios)
	est.Minimo = desvios[0]
	est.Maximo = desvios[0]
	suma := decimal.Zero
	for _, d := range desvios {
		if d.LessThan(est.Minimo) {
			est.Minimo = d
		}
		if d.GreaterThan(est.Maximo) {
			est.Maximo = d
		}
		suma = suma.Add(d)
		est.PorSeveridad[ClasificarDesvio(d)]++
	}
	est.Promedio = suma.Div(decimal.NewFromInt(int64(est.Total)))
	return est
}
