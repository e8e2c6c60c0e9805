// Package labor define la máquina de estados del ciclo de vida de una labor.
// Reemplaza los predicados booleanos dispersos (¿está planificada?, ¿puede
// eliminarse?) por una tabla de transiciones explícita.
package labor

import (
	"github.com/luismorales81/agrocloud-sub002/internal/domain"
	"github.com/luismorales81/agrocloud-sub002/internal/domain/entity"
)

// Tabla de transiciones válidas del ciclo de vida.
//
//	PLANIFICADA → EN_PROGRESO → COMPLETADA
//	PLANIFICADA → COMPLETADA            (cierre retroactivo)
//	PLANIFICADA → CANCELADA             (terminal, sin efecto en stock)
//	EN_PROGRESO/COMPLETADA → ANULADA    (terminal, stock restaurado)
var transiciones = map[entity.EstadoLabor][]entity.EstadoLabor{
	entity.LaborPlanificada: {entity.LaborEnProgreso, entity.LaborCompletada, entity.LaborCancelada},
	entity.LaborEnProgreso:  {entity.LaborCompletada, entity.LaborAnulada},
	entity.LaborCompletada:  {entity.LaborAnulada},
	entity.LaborCancelada:   {},
	entity.LaborAnulada:     {},
}

// TransicionValida indica si el cambio de estado desde→hacia está permitido.
func TransicionValida(desde, hacia entity.EstadoLabor) bool {
	for _, s := range transiciones[desde] {
		if s == hacia {
			return true
		}
	}
	return false
}

// Transicionar aplica la transición sobre la labor o devuelve
// ErrTransicionInvalida sin tocarla.
func Transicionar(l *entity.Labor, hacia entity.EstadoLabor) error {
	if !TransicionValida(l.Estado, hacia) {
		return domain.ErrTransicionInvalida
	}
	l.Estado = hacia
	return nil
}

// EstadosSiguientes devuelve los estados alcanzables desde el estado dado.
func EstadosSiguientes(desde entity.EstadoLabor) []entity.EstadoLabor {
	out := make([]entity.EstadoLabor, len(transiciones[desde]))
	copy(out, transiciones[desde])
	return out
}
