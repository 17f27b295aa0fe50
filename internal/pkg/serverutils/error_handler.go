package serverutils

import (
	"errors"

	"workpackage-be/internal/pkg/apperror"
	"workpackage-be/internal/pkg/logger"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandlerMiddleware turns errors returned by handlers into error
// resources. Unknown errors become a 500 without leaking their text.
func ErrorHandlerMiddleware(log logger.ILogger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		err := c.Next()
		if err == nil {
			return nil
		}
		return WriteError(c, log, err)
	}
}

func WriteError(c *fiber.Ctx, log logger.ILogger, err error) error {
	var apiErr *apperror.APIError
	if errors.As(err, &apiErr) {
		if apiErr.Status >= fiber.StatusInternalServerError {
			log.Error("HTTP", apiErr.Message, map[string]interface{}{"error": err.Error(), "path": c.Path()})
		}
		return c.Status(apiErr.Status).JSON(NewErrorResponse(apiErr.ErrorIdentifier, apiErr.Message))
	}

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		identifier := apperror.IdentifierInternal
		if fiberErr.Code == fiber.StatusNotFound {
			identifier = apperror.IdentifierNotFound
		}
		return c.Status(fiberErr.Code).JSON(NewErrorResponse(identifier, fiberErr.Message))
	}

	log.Error("HTTP", "Unhandled error", map[string]interface{}{"error": err.Error(), "path": c.Path()})
	return c.Status(fiber.StatusInternalServerError).
		JSON(NewErrorResponse(apperror.IdentifierInternal, "An internal error has occurred"))
}
