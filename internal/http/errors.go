package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandler translates handler errors into the API's error shape.
// Unexpected errors collapse to a generic 500; internals never leak.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "internal server error"

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		code = fiberErr.Code
		message = fiberErr.Message
	}

	return c.Status(code).JSON(fiber.Map{"message": message})
}
