package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// EstadoLote es el estado de cultivo de un lote.
type EstadoLote string

// Estados del ciclo de vida de un lote.
const (
	LoteDisponible       EstadoLote = "DISPONIBLE"
	LotePreparado        EstadoLote = "PREPARADO"
	LoteSembrado         EstadoLote = "SEMBRADO"
	LoteEnCrecimiento    EstadoLote = "EN_CRECIMIENTO"
	LoteEnFloracion      EstadoLote = "EN_FLORACION"
	LoteEnFrutificacion  EstadoLote = "EN_FRUTIFICACION"
	LoteListoParaCosecha EstadoLote = "LISTO_PARA_COSECHA"
	LoteEnCosecha        EstadoLote = "EN_COSECHA"
	LoteCosechado        EstadoLote = "COSECHADO"
	LoteEnDescanso       EstadoLote = "EN_DESCANSO"
	LoteEnPreparacion    EstadoLote = "EN_PREPARACION"
	LoteEnfermo          EstadoLote = "ENFERMO"
	LoteAbandonado       EstadoLote = "ABANDONADO"
)

// EsCultivoActivo indica si el lote tiene un cultivo en curso.
func (e EstadoLote) EsCultivoActivo() bool {
	switch e {
	case LoteSembrado, LoteEnCrecimiento, LoteEnFloracion, LoteEnFrutificacion:
		return true
	}
	return false
}

// RequiereAtencion indica si el lote está en un estado especial que pide
// intervención humana.
func (e EstadoLote) RequiereAtencion() bool {
	return e == LoteEnfermo || e == LoteAbandonado
}

// Lote es una subparcela de un campo con su propio estado de cultivo.
type Lote struct {
	ID                 string
	Nombre             string
	Descripcion        string
	SuperficieHa       decimal.Decimal
	Estado             EstadoLote
	CultivoActual      string
	CampoID            string
	UsuarioID          string
	Activo             bool
	FechaCreacion      time.Time
	FechaActualizacion time.Time
}
