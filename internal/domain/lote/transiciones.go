// Package lote define el grafo de estados de cultivo de un lote y el
// protocolo de dos pasos (proponer → confirmar) para cambiarlo.
package lote

import (
	"github.com/luismorales81/agrocloud-sub002/internal/domain"
	"github.com/luismorales81/agrocloud-sub002/internal/domain/entity"
)

// Grafo de transiciones válidas entre estados de lote.
var transiciones = map[entity.EstadoLote][]entity.EstadoLote{
	entity.LoteDisponible:       {entity.LotePreparado, entity.LoteSembrado},
	entity.LotePreparado:        {entity.LoteSembrado, entity.LoteDisponible},
	// Desde cualquier estado de cultivo activo se admite cosecha anticipada
	// (problemas sanitarios o conversión a forraje), directa o vía EN_COSECHA.
	entity.LoteSembrado:         {entity.LoteEnCrecimiento, entity.LoteEnCosecha, entity.LoteCosechado, entity.LoteEnfermo},
	entity.LoteEnCrecimiento:    {entity.LoteEnFloracion, entity.LoteEnCosecha, entity.LoteCosechado, entity.LoteEnfermo},
	entity.LoteEnFloracion:      {entity.LoteEnFrutificacion, entity.LoteEnCosecha, entity.LoteCosechado, entity.LoteEnfermo},
	entity.LoteEnFrutificacion:  {entity.LoteListoParaCosecha, entity.LoteEnCosecha, entity.LoteCosechado, entity.LoteEnfermo},
	entity.LoteListoParaCosecha: {entity.LoteEnCosecha, entity.LoteCosechado, entity.LoteEnfermo},
	entity.LoteEnCosecha:        {entity.LoteCosechado, entity.LoteEnfermo},
	entity.LoteCosechado:        {entity.LoteEnDescanso, entity.LoteEnPreparacion},
	entity.LoteEnDescanso:       {entity.LoteEnPreparacion, entity.LoteDisponible},
	entity.LoteEnPreparacion:    {entity.LoteDisponible, entity.LotePreparado},
	entity.LoteEnfermo:          {entity.LoteEnDescanso, entity.LoteAbandonado},
	entity.LoteAbandonado:       {entity.LoteEnPreparacion},
}

// TransicionValida indica si el cambio de estado desde→hacia es una arista del grafo.
func TransicionValida(desde, hacia entity.EstadoLote) bool {
	for _, s := range transiciones[desde] {
		if s == hacia {
			return true
		}
	}
	return false
}

// RequiereConfirmacion indica si la transición necesita confirmación humana.
// Los pasos del ciclo normal de cultivo se aplican automáticamente (por
// ejemplo al completar una siembra o una cosecha); marcar un lote como
// enfermo o abandonado, o sacarlo de esos estados, siempre pide confirmación.
func RequiereConfirmacion(desde, hacia entity.EstadoLote) bool {
	if hacia == entity.LoteEnfermo || hacia == entity.LoteAbandonado {
		return true
	}
	if desde == entity.LoteEnfermo || desde == entity.LoteAbandonado {
		return true
	}
	return false
}

// Consecuencias devuelve la lista legible de efectos de aplicar la transición,
// para que el operador decida con información.
func Consecuencias(desde, hacia entity.EstadoLote) []string {
	var out []string
	switch hacia {
	case entity.LoteSembrado:
		out = append(out, "El lote inicia un nuevo ciclo de cultivo")
	case entity.LoteCosechado:
		out = append(out, "Se cierra el ciclo de cultivo actual del lote")
		out = append(out, "El rendimiento de la cosecha queda disponible para reportes")
	case entity.LoteEnfermo:
		out = append(out, "Las labores abiertas sobre este lote quedan marcadas para revisión")
		out = append(out, "No se podrán planificar nuevas labores de aplicación hasta recuperar el lote")
	case entity.LoteAbandonado:
		out = append(out, "El lote deja de estar disponible para planificación")
	case entity.LoteDisponible:
		out = append(out, "El lote vuelve a estar disponible para un nuevo ciclo")
	}
	if desde.EsCultivoActivo() && !hacia.EsCultivoActivo() && hacia != entity.LoteCosechado && hacia != entity.LoteEnCosecha {
		out = append(out, "El cultivo en curso se interrumpe")
	}
	return out
}

// Transicionar aplica la transición sobre el lote o devuelve
// ErrTransicionInvalida sin tocarlo.
func Transicionar(l *entity.Lote, hacia entity.EstadoLote) error {
	if !TransicionValida(l.Estado, hacia) {
		return domain.ErrTransicionInvalida
	}
	l.Estado = hacia
	return nil
}

// EstadoImplicadoPorLabor devuelve el estado de lote que implica completar una
// labor del tipo dado, o "" si el tipo de labor no afecta el estado del lote.
func EstadoImplicadoPorLabor(tipoLabor string) entity.EstadoLote {
	switch tipoLabor {
	case entity.TipoLaborSiembra:
		return entity.LoteSembrado
	case entity.TipoLaborCosecha:
		return entity.LoteCosechado
	default:
		return ""
	}
}
