package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/luismorales81/agrocloud-sub002/internal/application/agroquimico"
	"github.com/luismorales81/agrocloud-sub002/internal/application/catalogo"
	"github.com/luismorales81/agrocloud-sub002/internal/application/dto"
)

// DosisHandler maneja el catálogo de reglas de dosis y el cálculo de
// cantidades de agroquímicos (protegido).
type DosisHandler struct {
	catalogo *catalogo.DosisUseCase
	calc     *agroquimico.UseCase
}

// NewDosisHandler construye el handler.
func NewDosisHandler(cat *catalogo.DosisUseCase, calc *agroquimico.UseCase) *DosisHandler {
	return &DosisHandler{catalogo: cat, calc: calc}
}

// Create godoc
// @Summary      Crear regla de dosis
// @Tags         dosis
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateDosisRequest  true  "insumo_id, tipo_aplicacion, forma_aplicacion, dosis_recomendada_por_ha"
// @Success      201   {object}  dto.DosisResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/dosis [post]
func (h *DosisHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateDosisRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.catalogo.Create(c.Context(), in)
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListByInsumo godoc
// @Summary      Listar reglas de dosis de un insumo
// @Tags         dosis
// @Security     Bearer
// @Produce      json
// @Param        insumo_id  query  string  true  "ID del insumo"
// @Success      200  {array}   dto.DosisResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/dosis [get]
func (h *DosisHandler) ListByInsumo(c *fiber.Ctx) error {
	insumoID := c.Query("insumo_id")
	if insumoID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "insumo_id es requerido"})
	}
	out, err := h.catalogo.ListByInsumo(c.Context(), insumoID)
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(out)
}

// Deactivate godoc
// @Summary      Desactivar regla de dosis
// @Tags         dosis
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la regla"
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/dosis/{id} [delete]
func (h *DosisHandler) Deactivate(c *fiber.Ctx) error {
	if err := h.catalogo.Deactivate(c.Context(), c.Params("id")); err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(fiber.Map{"message": "regla de dosis desactivada"})
}

// Calcular godoc
// @Summary      Calcular cantidad necesaria de agroquímico
// @Description  Resuelve la regla de dosis para (insumo, tipo, forma), multiplica
// @Description  por la superficie del lote y clasifica el desvío si hay dosis
// @Description  personalizada. Una dosis fuera de rango se informa, nunca se rechaza.
// @Tags         dosis
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CalcularCantidadRequest  true  "insumo_id, lote_id, tipo_aplicacion, forma_aplicacion, dosis_personalizada opcional"
// @Success      200   {object}  dto.CalcularCantidadResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/dosis/calcular [post]
func (h *DosisHandler) Calcular(c *fiber.Ctx) error {
	var in dto.CalcularCantidadRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	res, err := h.calc.CalcularCantidadNecesaria(c.Context(), agroquimico.CalcularInput{
		InsumoID:           in.InsumoID,
		LoteID:             in.LoteID,
		TipoAplicacion:     in.TipoAplicacion,
		FormaAplicacion:    in.FormaAplicacion,
		DosisPersonalizada: in.DosisPersonalizada,
	})
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(dto.CalcularCantidadResponse{
		CantidadNecesaria:     res.CantidadNecesaria,
		Unidad:                res.Unidad,
		DosisRecomendadaPorHa: res.DosisRecomendadaPorHa,
		DosisUtilizada:        res.DosisUtilizada,
		DosisModificada:       res.DosisModificada,
		VariacionPorcentual:   res.VariacionPct,
		Severidad:             res.Severidad,
		MensajeDosis:          res.MensajeDosis,
		StockSuficiente:       res.StockSuficiente,
		MensajeStock:          res.MensajeStock,
	})
}

// Estadisticas godoc
// @Summary      Estadísticas de desvío de dosis de un insumo
// @Description  Agrega los desvíos porcentuales de las labores completadas que
// @Description  aplicaron el insumo.
// @Tags         dosis
// @Security     Bearer
// @Produce      json
// @Param        insumo_id  path  string  true  "ID del insumo"
// @Success      200  {object}  dto.EstadisticasDesvioResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/dosis/estadisticas/{insumo_id} [get]
func (h *DosisHandler) Estadisticas(c *fiber.Ctx) error {
	est, err := h.calc.EstadisticasDesvio(c.Context(), c.Params("insumo_id"))
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(dto.EstadisticasDesvioResponse{
		Total:        est.Total,
		Minimo:       est.Minimo,
		Maximo:       est.Maximo,
		Promedio:     est.Promedio,
		PorSeveridad: est.PorSeveridad,
	})
}
