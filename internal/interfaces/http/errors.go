package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/remitos-api/internal/application/dto"
	"github.com/jhoicas/remitos-api/internal/domain"
	"github.com/jhoicas/remitos-api/pkg/logger"
)

// errorStatus traduce un error de dominio al status HTTP y código de la respuesta.
func errorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrUnauthorized):
		return fiber.StatusUnauthorized, "UNAUTHORIZED"
	case errors.Is(err, domain.ErrForbidden):
		return fiber.StatusForbidden, "FORBIDDEN"
	case errors.Is(err, domain.ErrNotFound):
		return fiber.StatusNotFound, "NOT_FOUND"
	case errors.Is(err, domain.ErrDuplicateName):
		return fiber.StatusBadRequest, "DUPLICATE_NAME"
	case errors.Is(err, domain.ErrDuplicate):
		return fiber.StatusConflict, "DUPLICATE"
	case errors.Is(err, domain.ErrInUse):
		return fiber.StatusBadRequest, "STATUS_IN_USE"
	case errors.Is(err, domain.ErrInvalidStatus):
		return fiber.StatusBadRequest, "INVALID_STATUS"
	case errors.Is(err, domain.ErrTenantRequired):
		return fiber.StatusBadRequest, "COMPANY_REQUIRED"
	case errors.Is(err, domain.ErrInvalidInput):
		return fiber.StatusBadRequest, "VALIDATION"
	default:
		return fiber.StatusInternalServerError, "INTERNAL"
	}
}

// writeError responde con el cuerpo de error estándar. Los 500 no exponen el detalle:
// se registra con request id y path.
func writeError(c *fiber.Ctx, log *logger.Logger, err error) error {
	status, code := errorStatus(err)
	msg := err.Error()
	if status == fiber.StatusInternalServerError {
		log.Error().
			Err(err).
			Str("request_id", c.GetRespHeader(fiber.HeaderXRequestID)).
			Str("method", c.Method()).
			Str("path", c.Path()).
			Msg("error interno")
		msg = "error interno, intente más tarde"
	}
	return c.Status(status).JSON(dto.ErrorResponse{Code: code, Message: msg})
}
