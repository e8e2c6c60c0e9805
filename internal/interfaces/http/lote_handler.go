package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/luismorales81/agrocloud-sub002/internal/application/dto"
	"github.com/luismorales81/agrocloud-sub002/internal/application/lote"
	"github.com/luismorales81/agrocloud-sub002/internal/domain/entity"
)

// LoteHandler maneja los lotes y el workflow de cambio de estado (protegido).
type LoteHandler struct {
	uc *lote.UseCase
}

// NewLoteHandler construye el handler.
func NewLoteHandler(uc *lote.UseCase) *LoteHandler {
	return &LoteHandler{uc: uc}
}

// Create godoc
// @Summary      Crear lote
// @Tags         lotes
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateLoteRequest  true  "nombre, superficie_ha"
// @Success      201   {object}  dto.LoteResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/lotes [post]
func (h *LoteHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateLoteRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	lt, err := h.uc.Crear(c.Context(), &entity.Lote{
		Nombre:        in.Nombre,
		Descripcion:   in.Descripcion,
		SuperficieHa:  in.SuperficieHa,
		CultivoActual: in.CultivoActual,
		CampoID:       in.CampoID,
		UsuarioID:     GetUserID(c),
	})
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toLoteResponse(lt))
}

// GetByID godoc
// @Summary      Obtener lote por ID
// @Tags         lotes
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del lote"
// @Success      200  {object}  dto.LoteResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/lotes/{id} [get]
func (h *LoteHandler) GetByID(c *fiber.Ctx) error {
	lt, err := h.uc.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(toLoteResponse(lt))
}

// List godoc
// @Summary      Listar lotes
// @Tags         lotes
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite"  default(20)
// @Param        offset  query  int  false  "Offset"  default(0)
// @Success      200  {array}  dto.LoteResponse
// @Router       /api/lotes [get]
func (h *LoteHandler) List(c *fiber.Ctx) error {
	page := pageFromQuery(c)
	lotes, err := h.uc.List(c.Context(), page.Limit, page.Offset)
	if err != nil {
		return mapDomainError(c, err)
	}
	out := make([]dto.LoteResponse, 0, len(lotes))
	for _, lt := range lotes {
		out = append(out, *toLoteResponse(lt))
	}
	return c.JSON(out)
}

// Propose godoc
// @Summary      Proponer cambio de estado de lote
// @Description  Paso 1 del workflow: valida la transición contra el grafo de
// @Description  estados y devuelve si requiere confirmación humana junto con
// @Description  sus consecuencias. No cambia el estado.
// @Tags         lotes
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del lote"
// @Param        body  body  dto.ProposePlotStatusRequest  true  "nuevo_estado, motivo"
// @Success      200   {object}  dto.ProposePlotStatusResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/lotes/{id}/estado/proponer [post]
func (h *LoteHandler) Propose(c *fiber.Ctx) error {
	var in dto.ProposePlotStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	res, err := h.uc.Proponer(c.Context(), lote.PropuestaInput{
		LoteID:      c.Params("id"),
		NuevoEstado: entity.EstadoLote(in.NuevoEstado),
		Motivo:      in.Motivo,
		LaborID:     in.LaborID,
	})
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(dto.ProposePlotStatusResponse{
		PropuestaID:          res.PropuestaID,
		EstadoActual:         string(res.EstadoActual),
		EstadoPropuesto:      string(res.EstadoPropuesto),
		RequiereConfirmacion: res.RequiereConfirmacion,
		Consecuencias:        res.Consecuencias,
	})
}

// Confirm godoc
// @Summary      Confirmar o descartar propuesta de cambio de estado
// @Description  Paso 2 del workflow: con confirmar=true persiste el nuevo
// @Description  estado; con confirmar=false descarta la propuesta sin efectos.
// @Tags         lotes
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        propuesta_id  path  string  true  "ID de la propuesta"
// @Param        body  body  dto.ConfirmPlotStatusRequest  true  "confirmar, motivo opcional"
// @Success      200   {object}  map[string]string
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/lotes/estado/confirmar/{propuesta_id} [post]
func (h *LoteHandler) Confirm(c *fiber.Ctx) error {
	var in dto.ConfirmPlotStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := h.uc.Confirmar(c.Context(), c.Params("propuesta_id"), in.Confirmar, in.Motivo); err != nil {
		return mapDomainError(c, err)
	}
	if !in.Confirmar {
		return c.JSON(fiber.Map{"message": "propuesta descartada"})
	}
	return c.JSON(fiber.Map{"message": "estado de lote actualizado"})
}

func toLoteResponse(lt *entity.Lote) *dto.LoteResponse {
	return &dto.LoteResponse{
		ID:            lt.ID,
		Nombre:        lt.Nombre,
		Descripcion:   lt.Descripcion,
		SuperficieHa:  lt.SuperficieHa,
		Estado:        string(lt.Estado),
		CultivoActual: lt.CultivoActual,
		CampoID:       lt.CampoID,
		Activo:        lt.Activo,
	}
}
