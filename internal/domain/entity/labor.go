package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de labor agropecuaria.
const (
	TipoLaborSiembra        = "SIEMBRA"
	TipoLaborFertilizacion  = "FERTILIZACION"
	TipoLaborRiego          = "RIEGO"
	TipoLaborCosecha        = "COSECHA"
	TipoLaborMantenimiento  = "MANTENIMIENTO"
	TipoLaborPoda           = "PODA"
	TipoLaborControlPlagas  = "CONTROL_PLAGAS"
	TipoLaborControlMalezas = "CONTROL_MALEZAS"
	TipoLaborAnalisisSuelo  = "ANALISIS_SUELO"
	TipoLaborOtros          = "OTROS"
)

// EstadoLabor es el estado del ciclo de vida de una labor.
type EstadoLabor string

// Estados del ciclo de vida. CANCELADA y ANULADA son terminales.
const (
	LaborPlanificada EstadoLabor = "PLANIFICADA" // planificada, aún no ejecutada
	LaborEnProgreso  EstadoLabor = "EN_PROGRESO" // en ejecución
	LaborCompletada  EstadoLabor = "COMPLETADA"  // finalizada, stock debitado
	LaborCancelada   EstadoLabor = "CANCELADA"   // cancelada antes de ejecutar, sin efecto en stock
	LaborAnulada     EstadoLabor = "ANULADA"     // anulada después de ejecutar, stock restaurado
)

// EsTerminal indica si desde este estado no hay transición posible.
func (e EstadoLabor) EsTerminal() bool {
	return e == LaborCancelada || e == LaborAnulada
}

// Labor representa una tarea de campo (siembra, pulverización, cosecha, etc.)
// con sus recursos planificados y usados. El estado solo se muta a través de
// la máquina de estados del motor de labores.
type Labor struct {
	ID            string
	TipoLabor     string
	Descripcion   string
	FechaInicio   time.Time
	FechaFin      *time.Time
	Estado        EstadoLabor
	CostoTotal    decimal.Decimal
	Observaciones string
	LoteID        string
	UsuarioID     string

	// Auditoría de anulación; solo se completa al pasar a ANULADA.
	MotivoAnulacion  string
	FechaAnulacion   *time.Time
	UsuarioAnulacion string

	Insumos    []LaborInsumo
	Maquinaria []LaborMaquinaria
	ManoObra   []LaborManoObra

	FechaCreacion      time.Time
	FechaActualizacion time.Time
}

// LaborInsumo es una línea de uso de insumo dentro de una labor. Si el mismo
// insumo aparece en varias líneas, cada una se registra en el libro de
// inventario de forma independiente.
type LaborInsumo struct {
	ID                  string
	LaborID             string
	InsumoID            string
	CantidadPlanificada decimal.Decimal
	CantidadUsada       decimal.Decimal
	CostoUnitario       decimal.Decimal
	CostoTotal          decimal.Decimal
	MotivoDesvio        string // obligatorio cuando usada difiere de planificada más allá de la tolerancia
	Observaciones       string
}

// LaborMaquinaria es una línea de uso de maquinaria (propia o alquilada).
type LaborMaquinaria struct {
	ID          string
	LaborID     string
	Descripcion string
	Proveedor   string
	Costo       decimal.Decimal
}

// LaborManoObra es una línea de mano de obra contratada para la labor.
type LaborManoObra struct {
	ID           string
	LaborID      string
	Descripcion  string
	CantPersonas int
	Horas        decimal.Decimal
	CostoPorHora decimal.Decimal
	CostoTotal   decimal.Decimal
}

// CostoLineas devuelve la suma de costos de todas las líneas de la labor
// (insumos + maquinaria + mano de obra).
func (l *Labor) CostoLineas() decimal.Decimal {
	total := decimal.Zero
	for _, li := range l.Insumos {
		total = total.Add(li.CostoTotal)
	}
	for _, lm := range l.Maquinaria {
		total = total.Add(lm.Costo)
	}
	for _, lo := range l.ManoObra {
		total = total.Add(lo.CostoTotal)
	}
	return total
}
