package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/luismorales81/agrocloud-sub002/internal/application/dto"
	"github.com/luismorales81/agrocloud-sub002/internal/application/inventory"
	"github.com/luismorales81/agrocloud-sub002/internal/domain/entity"
)

// InventoryHandler maneja el libro de movimientos de inventario (protegido).
type InventoryHandler struct {
	ledger *inventory.LedgerUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(ledger *inventory.LedgerUseCase) *InventoryHandler {
	return &InventoryHandler{ledger: ledger}
}

// RegisterMovement godoc
// @Summary      Registrar movimiento de inventario
// @Description  ENTRADA/SALIDA con cantidad positiva; AJUSTE con signo. El stock
// @Description  materializado se actualiza en la misma transacción que el asiento.
// @Tags         inventario
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterMovementRequest  true  "insumo_id, tipo (ENTRADA | SALIDA | AJUSTE), cantidad, motivo"
// @Success      201   {object}  map[string]string
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventario/movimientos [post]
func (h *InventoryHandler) RegisterMovement(c *fiber.Ctx) error {
	var in dto.RegisterMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	movID, err := h.ledger.RegistrarMovimiento(c.Context(), inventory.MovimientoInput{
		InsumoID:  in.InsumoID,
		LaborID:   in.LaborID,
		Tipo:      in.Tipo,
		Cantidad:  in.Cantidad,
		Motivo:    in.Motivo,
		UsuarioID: GetUserID(c),
	})
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"id": movID, "message": "movimiento registrado"})
}

// Kardex godoc
// @Summary      Kardex de un insumo
// @Description  Movimientos del insumo en orden cronológico más el stock
// @Description  materializado vigente. Filtros opcionales desde/hasta (RFC 3339).
// @Tags         inventario
// @Security     Bearer
// @Produce      json
// @Param        id      path   string  true   "ID del insumo"
// @Param        desde   query  string  false  "Fecha inicial (RFC 3339)"
// @Param        hasta   query  string  false  "Fecha final (RFC 3339)"
// @Param        limit   query  int     false  "Límite"  default(20)
// @Param        offset  query  int     false  "Offset"  default(0)
// @Success      200  {object}  dto.KardexResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/insumos/{id}/kardex [get]
func (h *InventoryHandler) Kardex(c *fiber.Ctx) error {
	desde, err := parseTimeQuery(c, "desde")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "desde debe ser RFC 3339"})
	}
	hasta, err := parseTimeQuery(c, "hasta")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "hasta debe ser RFC 3339"})
	}
	page := pageFromQuery(c)

	insumo, movs, err := h.ledger.Kardex(c.Context(), c.Params("id"), desde, hasta, page.Limit, page.Offset)
	if err != nil {
		return mapDomainError(c, err)
	}
	out := dto.KardexResponse{
		InsumoID:    insumo.ID,
		Nombre:      insumo.Nombre,
		StockActual: insumo.StockActual,
		Movimientos: make([]dto.MovementResponse, 0, len(movs)),
	}
	for _, m := range movs {
		out.Movimientos = append(out.Movimientos, toMovementResponse(m))
	}
	return c.JSON(out)
}

func toMovementResponse(m *entity.MovimientoInventario) dto.MovementResponse {
	return dto.MovementResponse{
		ID:       m.ID,
		InsumoID: m.InsumoID,
		LaborID:  m.LaborID,
		Tipo:     m.Tipo,
		Cantidad: m.Cantidad,
		Motivo:   m.Motivo,
		Fecha:    m.Fecha,
		Usuario:  m.UsuarioID,
	}
}

func parseTimeQuery(c *fiber.Ctx, name string) (*time.Time, error) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
