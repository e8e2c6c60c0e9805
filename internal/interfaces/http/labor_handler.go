package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/luismorales81/agrocloud-sub002/internal/application/dto"
	"github.com/luismorales81/agrocloud-sub002/internal/application/labor"
	"github.com/luismorales81/agrocloud-sub002/internal/domain/entity"
)

// LaborHandler maneja el ciclo de vida de las labores (protegido).
type LaborHandler struct {
	uc      *labor.UseCase
	reporte *labor.ReporteUseCase
}

// NewLaborHandler construye el handler.
func NewLaborHandler(uc *labor.UseCase, reporte *labor.ReporteUseCase) *LaborHandler {
	return &LaborHandler{uc: uc, reporte: reporte}
}

// Plan godoc
// @Summary      Planificar labor
// @Description  Crea una labor en PLANIFICADA. No reserva ni mueve stock. Las
// @Description  líneas de insumo sin cantidad se calculan con la regla de dosis.
// @Tags         labores
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.PlanLaborRequest  true  "tipo_labor, lote_id, fecha_inicio, líneas de insumo/maquinaria/mano de obra"
// @Success      201   {object}  dto.LaborResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/labores [post]
func (h *LaborHandler) Plan(c *fiber.Ctx) error {
	var in dto.PlanLaborRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}

	input := labor.PlanInput{
		TipoLabor:   in.TipoLabor,
		Descripcion: in.Descripcion,
		LoteID:      in.LoteID,
		UsuarioID:   GetUserID(c),
		FechaInicio: in.FechaInicio,
		FechaFin:    in.FechaFin,
	}
	for _, li := range in.Insumos {
		input.Insumos = append(input.Insumos, labor.LineaPlanInput{
			InsumoID:           li.InsumoID,
			Cantidad:           li.Cantidad,
			TipoAplicacion:     li.TipoAplicacion,
			FormaAplicacion:    li.FormaAplicacion,
			DosisPersonalizada: li.DosisPersonalizada,
			Observaciones:      li.Observaciones,
		})
	}
	for _, lm := range in.Maquinaria {
		input.Maquinaria = append(input.Maquinaria, entity.LaborMaquinaria{
			Descripcion: lm.Descripcion,
			Proveedor:   lm.Proveedor,
			Costo:       lm.Costo,
		})
	}
	for _, lo := range in.ManoObra {
		input.ManoObra = append(input.ManoObra, entity.LaborManoObra{
			Descripcion:  lo.Descripcion,
			CantPersonas: lo.CantPersonas,
			Horas:        lo.Horas,
			CostoPorHora: lo.CostoPorHora,
		})
	}

	lab, err := h.uc.Planificar(c.Context(), input)
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toLaborResponse(lab))
}

// GetByID godoc
// @Summary      Obtener labor por ID
// @Tags         labores
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la labor"
// @Success      200  {object}  dto.LaborResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/labores/{id} [get]
func (h *LaborHandler) GetByID(c *fiber.Ctx) error {
	lab, err := h.uc.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(toLaborResponse(lab))
}

// Start godoc
// @Summary      Iniciar labor
// @Description  PLANIFICADA → EN_PROGRESO. No mueve stock.
// @Tags         labores
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la labor"
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/labores/{id}/iniciar [post]
func (h *LaborHandler) Start(c *fiber.Ctx) error {
	if err := h.uc.Iniciar(c.Context(), c.Params("id")); err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(fiber.Map{"message": "labor iniciada"})
}

// Complete godoc
// @Summary      Completar labor
// @Description  Debita el stock por las cantidades realmente usadas en una sola
// @Description  transacción y recalcula los costos. Un desvío de cantidad más
// @Description  allá de la tolerancia exige motivo (422 si falta).
// @Tags         labores
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la labor"
// @Param        body  body  dto.CompleteLaborRequest  true  "Cantidades usadas por línea con motivo de desvío opcional"
// @Success      200   {object}  dto.CostSummaryResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/labores/{id}/completar [post]
func (h *LaborHandler) Complete(c *fiber.Ctx) error {
	var in dto.CompleteLaborRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	lineas := make([]labor.LineaEjecucion, 0, len(in.Lineas))
	for _, le := range in.Lineas {
		lineas = append(lineas, labor.LineaEjecucion{
			LineaID:       le.LineaID,
			CantidadUsada: le.CantidadUsada,
			MotivoDesvio:  le.MotivoDesvio,
		})
	}
	resumen, err := h.uc.Completar(c.Context(), c.Params("id"), lineas, in.Observaciones, GetUserID(c))
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(dto.CostSummaryResponse{
		CostoInsumos:    resumen.CostoInsumos,
		CostoMaquinaria: resumen.CostoMaquinaria,
		CostoManoObra:   resumen.CostoManoObra,
		CostoTotal:      resumen.CostoTotal,
	})
}

// Cancel godoc
// @Summary      Cancelar labor planificada
// @Description  Solo desde PLANIFICADA. Neutral en stock: nunca hubo débitos.
// @Tags         labores
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la labor"
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/labores/{id}/cancelar [post]
func (h *LaborHandler) Cancel(c *fiber.Ctx) error {
	if err := h.uc.Cancelar(c.Context(), c.Params("id")); err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(fiber.Map{"message": "labor cancelada"})
}

// Annul godoc
// @Summary      Anular labor completada
// @Description  Restaura el stock con movimientos de ENTRADA compensatorios; el
// @Description  libro nunca se edita. Requiere motivo.
// @Tags         labores
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la labor"
// @Param        body  body  dto.AnnulLaborRequest  true  "Motivo de la anulación"
// @Success      200   {object}  map[string]string
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/labores/{id}/anular [post]
func (h *LaborHandler) Annul(c *fiber.Ctx) error {
	var in dto.AnnulLaborRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := h.uc.Anular(c.Context(), c.Params("id"), in.Motivo, GetUserID(c)); err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(fiber.Map{"message": "labor anulada, stock restaurado"})
}

// Report godoc
// @Summary      Informe de costos en PDF
// @Tags         labores
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  string  true  "ID de la labor"
// @Success      200  {file}    file
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/labores/{id}/reporte [get]
func (h *LaborHandler) Report(c *fiber.Ctx) error {
	pdfBytes, err := h.reporte.PDF(c.Context(), c.Params("id"))
	if err != nil {
		return mapDomainError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="labor_`+c.Params("id")+`.pdf"`)
	return c.Send(pdfBytes)
}

func toLaborResponse(lab *entity.Labor) dto.LaborResponse {
	out := dto.LaborResponse{
		ID:              lab.ID,
		TipoLabor:       lab.TipoLabor,
		Descripcion:     lab.Descripcion,
		Estado:          string(lab.Estado),
		LoteID:          lab.LoteID,
		FechaInicio:     lab.FechaInicio,
		FechaFin:        lab.FechaFin,
		CostoTotal:      lab.CostoTotal,
		Observaciones:   lab.Observaciones,
		MotivoAnulacion: lab.MotivoAnulacion,
	}
	for _, li := range lab.Insumos {
		out.Insumos = append(out.Insumos, dto.LaborLineResponse{
			ID:                  li.ID,
			InsumoID:            li.InsumoID,
			CantidadPlanificada: li.CantidadPlanificada,
			CantidadUsada:       li.CantidadUsada,
			CostoUnitario:       li.CostoUnitario,
			CostoTotal:          li.CostoTotal,
			MotivoDesvio:        li.MotivoDesvio,
		})
	}
	return out
}
