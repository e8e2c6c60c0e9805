package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/luismorales81/agrocloud-sub002/internal/application/dto"
	"github.com/luismorales81/agrocloud-sub002/internal/domain"
)

// mapDomainError traduce los errores de dominio a respuestas HTTP. Todo error
// no reconocido es un 500.
func mapDomainError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrEntradaInvalida):
		return respond(c, fiber.StatusBadRequest, "VALIDATION", err)
	case errors.Is(err, domain.ErrNotFound):
		return respond(c, fiber.StatusNotFound, "NOT_FOUND", err)
	case errors.Is(err, domain.ErrSinReglaDosis):
		return respond(c, fiber.StatusNotFound, "NO_DOSE_RULE", err)
	case errors.Is(err, domain.ErrTransicionInvalida):
		return respond(c, fiber.StatusConflict, "INVALID_TRANSITION", err)
	case errors.Is(err, domain.ErrStockInsuficiente):
		return respond(c, fiber.StatusConflict, "INSUFFICIENT_STOCK", err)
	case errors.Is(err, domain.ErrEmailYaRegistrado):
		return respond(c, fiber.StatusConflict, "EMAIL_TAKEN", err)
	case errors.Is(err, domain.ErrConflict):
		return respond(c, fiber.StatusConflict, "CONFLICT", err)
	case errors.Is(err, domain.ErrJustificacionRequerida):
		return respond(c, fiber.StatusUnprocessableEntity, "JUSTIFICATION_REQUIRED", err)
	case errors.Is(err, domain.ErrUnauthorized):
		return respond(c, fiber.StatusUnauthorized, "UNAUTHORIZED", err)
	case errors.Is(err, domain.ErrForbidden):
		return respond(c, fiber.StatusForbidden, "FORBIDDEN", err)
	default:
		return respond(c, fiber.StatusInternalServerError, "INTERNAL", err)
	}
}

func respond(c *fiber.Ctx, status int, code string, err error) error {
	return c.Status(status).JSON(dto.ErrorResponse{Code: code, Message: err.Error()})
}
