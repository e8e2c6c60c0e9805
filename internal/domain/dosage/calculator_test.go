package dosage

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/luismorales81/agrocloud-sub002/internal/domain/entity"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func reglaDePrueba(dosisPorHa string) *entity.DosisInsumo {
	return &entity.DosisInsumo{
		ID:                    "dosis-1",
		InsumoID:              "insumo-1",
		TipoAplicacion:        entity.TipoAplicacionFoliar,
		FormaAplicacion:       entity.FormaAplicacionTerrestre,
		DosisRecomendadaPorHa: dec(dosisPorHa),
		Unidad:                "L_HA",
		Activo:                true,
	}
}

func insumoConStock(stock string) *entity.Insumo {
	return &entity.Insumo{
		ID:           "insumo-1",
		Nombre:       "Glifosato 48%",
		Tipo:         entity.TipoInsumoHerbicida,
		UnidadMedida: "LTS",
		StockActual:  dec(stock),
		Activo:       true,
	}
}

// Escenario de referencia: stock 100, dosis 2/ha, 10 ha → necesaria 20, suficiente.
func TestCalcularSinDosisPersonalizada(t *testing.T) {
	res := Calcular(reglaDePrueba("2"), insumoConStock("100"), dec("10"), nil)

	assert.True(t, res.CantidadNecesaria.Equal(dec("20")))
	assert.True(t, res.StockSuficiente)
	assert.Equal(t, "Stock suficiente", res.MensajeStock)
	assert.False(t, res.DosisModificada)
	assert.Nil(t, res.VariacionPct)
	assert.Empty(t, res.Severidad)
}

func TestCalcularStockInsuficienteInformaFaltante(t *testing.T) {
	// stock 5, necesaria 8 → faltante 3
	res := Calcular(reglaDePrueba("2"), insumoConStock("5"), dec("4"), nil)

	assert.True(t, res.CantidadNecesaria.Equal(dec("8")))
	assert.False(t, res.StockSuficiente)
	assert.Contains(t, res.MensajeStock, "Faltante: 3")
}

func TestCalcularConDosisPersonalizada(t *testing.T) {
	override := dec("2.5")
	res := Calcular(reglaDePrueba("2"), insumoConStock("100"), dec("10"), &override)

	assert.True(t, res.CantidadNecesaria.Equal(dec("25")))
	assert.True(t, res.DosisModificada)
	require.NotNil(t, res.VariacionPct)
	assert.True(t, res.VariacionPct.Equal(dec("25")))
	assert.Equal(t, DesvioCritico, res.Severidad)
	assert.Contains(t, res.MensajeDosis, "25.0%")
}

// El cálculo es determinista: mismas entradas, mismo resultado.
func TestCalcularEsDeterminista(t *testing.T) {
	override := dec("1.9")
	a := Calcular(reglaDePrueba("2"), insumoConStock("100"), dec("10"), &override)
	b := Calcular(reglaDePrueba("2"), insumoConStock("100"), dec("10"), &override)

	assert.True(t, a.CantidadNecesaria.Equal(b.CantidadNecesaria))
	assert.Equal(t, a.Severidad, b.Severidad)
	assert.True(t, a.VariacionPct.Equal(*b.VariacionPct))
}

func TestClasificarDesvio(t *testing.T) {
	casos := []struct {
		pct       string
		severidad string
	}{
		{"0", DesvioOptimo},
		{"5", DesvioOptimo},
		{"-5", DesvioOptimo},
		{"5.1", DesvioAceptable},
		{"10", DesvioAceptable},
		{"-10", DesvioAceptable},
		{"15", DesvioAlto},
		{"20", DesvioAlto},
		{"-20", DesvioAlto},
		{"20.5", DesvioCritico},
		{"-45", DesvioCritico},
	}
	for _, c := range casos {
		t.Run(c.pct, func(t *testing.T) {
			assert.Equal(t, c.severidad, ClasificarDesvio(dec(c.pct)))
		})
	}
}

func TestDesvioConRecomendadaCero(t *testing.T) {
	assert.True(t, Desvio(decimal.Zero, dec("3")).IsZero())
}

func TestAgregarDesvios(t *testing.T) {
	est := AgregarDesvios([]decimal.Decimal{dec("2"), dec("-8"), dec("25"), dec("12")})

	assert.Equal(t, 4, est.Total)
	assert.True(t, est.Minimo.Equal(dec("-8")))
	assert.True(t, est.Maximo.Equal(dec("25")))
	assert.True(t, est.Promedio.Equal(dec("7.75")))
	assert.Equal(t, 1, est.PorSeveridad[DesvioOptimo])
	assert.Equal(t, 1, est.PorSeveridad[DesvioAceptable])
	assert.Equal(t, 1, est.PorSeveridad[DesvioAlto])
	assert.Equal(t, 1, est.PorSeveridad[DesvioCritico])
}

func TestAgregarDesviosVacio(t *testing.T) {
	est := AgregarDesvios(nil)
	assert.Zero(t, est.Total)
	assert.Empty(t, est.PorSeveridad)
}
