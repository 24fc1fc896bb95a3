package serverutils

import (
	"errors"

	"contract-workflow-be/internal/repository/contract"
	"contract-workflow-be/pkg/ai/transform"
	"contract-workflow-be/pkg/loader"
	"contract-workflow-be/pkg/schema"

	"github.com/gofiber/fiber/v2"
)

// StatusFor maps a service error to an HTTP status.
func StatusFor(err error) int {
	var fiberErr *fiber.Error
	switch {
	case errors.As(err, &fiberErr):
		return fiberErr.Code
	case errors.Is(err, schema.ErrValidation), errors.Is(err, loader.ErrUnsupportedDocument):
		return fiber.StatusBadRequest
	case errors.Is(err, contract.ErrDocumentNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, contract.ErrDocumentExists):
		return fiber.StatusConflict
	case errors.Is(err, transform.ErrUpstream), errors.Is(err, transform.ErrOutputValidation):
		return fiber.StatusBadGateway
	default:
		return fiber.StatusInternalServerError
	}
}

// ErrorHandlerMiddleware turns handler errors into the standard envelope.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		code := StatusFor(err)
		message := err.Error()
		if code == fiber.StatusInternalServerError {
			message = "Internal server error"
		}
		return ctx.Status(code).JSON(ErrorResponse(code, message))
	}
}
