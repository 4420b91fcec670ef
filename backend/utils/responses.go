package utils

import (
	"errors"
	"log"
	"net/http"

	"github.com/gofiber/fiber/v2"
)

type ErrorResponse struct {
	Success bool        `json:"success"`
	Error   string      `json:"error"`
	Message string      `json:"message,omitempty"`
	Details interface{} `json:"details,omitempty"`
}

// Error writes the error envelope.
func Error(c *fiber.Ctx, status int, err error, details ...interface{}) error {
	response := ErrorResponse{
		Success: false,
		Error:   http.StatusText(status),
		Message: err.Error(),
	}

	if len(details) > 0 {
		response.Details = details[0]
	}

	return c.Status(status).JSON(response)
}

// ErrorHandler is installed as fiber.Config.ErrorHandler. Handlers return
// *fiber.Error or FieldErrors and this renders them as the error envelope.
func ErrorHandler(logger *log.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var fieldErrs FieldErrors
		if errors.As(err, &fieldErrs) {
			return Error(c, fiber.StatusBadRequest, errors.New("validation failed"), map[string]string(fieldErrs))
		}

		code := fiber.StatusInternalServerError
		var fe *fiber.Error
		if errors.As(err, &fe) {
			code = fe.Code
		}

		if code >= fiber.StatusInternalServerError {
			logger.Printf("[ERROR] %s %s: %v", c.Method(), c.Path(), err)
		}

		return Error(c, code, err)
	}
}
