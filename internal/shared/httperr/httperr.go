package httperr

import (
	"errors"

	"backend-hikeroutes/internal/validation"

	"github.com/gofiber/fiber/v2"
)

type ErrorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

// Status is the HTTP status Handler renders for err.
func Status(err error) int {
	var fields validation.Errors
	if errors.As(err, &fields) {
		return fiber.StatusBadRequest
	}
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return fe.Code
	}
	return fiber.StatusInternalServerError
}

// Handler is the fiber ErrorHandler shared by the app and handler tests.
func Handler(c *fiber.Ctx, err error) error {
	var fields validation.Errors
	if errors.As(err, &fields) {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error:  "validation failed",
			Fields: fields,
		})
	}

	message := "Internal Server Error"
	var fe *fiber.Error
	if errors.As(err, &fe) {
		message = fe.Message
	}

	return c.Status(Status(err)).JSON(ErrorResponse{Error: message})
}
