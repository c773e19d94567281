package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/magazzino-api/internal/application/dto"
	"github.com/jhoicas/magazzino-api/internal/domain"
	"github.com/rs/zerolog/log"
)

// errorCodes código estable para cada sentinela de dominio.
var errorCodes = []struct {
	err    error
	code   string
	status int
}{
	{domain.ErrNotFound, "NOT_FOUND", fiber.StatusNotFound},
	{domain.ErrUnauthorized, "UNAUTHORIZED", fiber.StatusUnauthorized},
	{domain.ErrInsufficientStock, "INSUFFICIENT_STOCK", fiber.StatusBadRequest},
	{domain.ErrInactiveItem, "INACTIVE_ITEM", fiber.StatusBadRequest},
	{domain.ErrStockNotZero, "STOCK_NOT_ZERO", fiber.StatusBadRequest},
	{domain.ErrOrderReceived, "ORDER_RECEIVED", fiber.StatusBadRequest},
	{domain.ErrOverReceipt, "OVER_RECEIPT", fiber.StatusBadRequest},
	{domain.ErrInvalidStatus, "INVALID_STATUS", fiber.StatusBadRequest},
	{domain.ErrDuplicate, "DUPLICATE", fiber.StatusBadRequest},
	{domain.ErrInvalidInput, "VALIDATION", fiber.StatusBadRequest},
}

// respondError traduce un error de dominio a {error, code, details}. Lo no reconocido es 500.
func respondError(c *fiber.Ctx, err error) error {
	for _, ec := range errorCodes {
		if errors.Is(err, ec.err) {
			body := dto.ErrorResponse{Error: err.Error(), Code: ec.code}
			var rule *domain.RuleError
			if errors.As(err, &rule) && len(rule.Details) > 0 {
				body.Details = rule.Details
			}
			return c.Status(ec.status).JSON(body)
		}
	}
	log.Error().Err(err).Str("method", c.Method()).Str("path", c.Path()).Msg("error no controlado")
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "error interno", Code: "INTERNAL"})
}

func badRequest(c *fiber.Ctx, field, message string) error {
	return respondError(c, domain.Invalid(field, message))
}
