package dto

import "github.com/shopspring/decimal"

// ProposePlotStatusRequest propone un cambio de estado de lote.
type ProposePlotStatusRequest struct {
	NuevoEstado string  `json:"nuevo_estado"`
	Motivo      string  `json:"motivo"`
	LaborID     *string `json:"labor_id,omitempty"`
}

// ProposePlotStatusResponse resultado de la proposición.
type ProposePlotStatusResponse struct {
	PropuestaID          string   `json:"propuesta_id"`
	EstadoActual         string   `json:"estado_actual"`
	EstadoPropuesto      string   `json:"estado_propuesto"`
	RequiereConfirmacion bool     `json:"requiere_confirmacion"`
	Consecuencias        []string `json:"consecuencias"`
}

// ConfirmPlotStatusRequest confirma o descarta una propuesta.
type ConfirmPlotStatusRequest struct {
	Confirmar bool   `json:"confirmar"`
	Motivo    string `json:"motivo,omitempty"`
}

// CreateLoteRequest alta de un lote.
type CreateLoteRequest struct {
	Nombre        string          `json:"nombre"`
	Descripcion   string          `json:"descripcion,omitempty"`
	SuperficieHa  decimal.Decimal `json:"superficie_ha"`
	CultivoActual string          `json:"cultivo_actual,omitempty"`
	CampoID       string          `json:"campo_id,omitempty"`
}

// LoteResponse representación de un lote.
type LoteResponse struct {
	ID            string          `json:"id"`
	Nombre        string          `json:"nombre"`
	Descripcion   string          `json:"descripcion,omitempty"`
	SuperficieHa  decimal.Decimal `json:"superficie_ha"`
	Estado        string          `json:"estado"`
	CultivoActual string          `json:"cultivo_actual,omitempty"`
	CampoID       string          `json:"campo_id,omitempty"`
	Activo        bool            `json:"activo"`
}
