package response

import "github.com/gofiber/fiber/v2"

// Response bodies are flat: successes carry a free-text "message" field
// (plus payload keys at the top level), failures carry a free-text
// "error" field. No structured error codes.

// Message sends a 200 response with a message body
func Message(c *fiber.Ctx, message string) error {
	return c.JSON(fiber.Map{"message": message})
}

// Created sends a 201 response with a message body
func Created(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": message})
}

// Error sends an error response
func Error(c *fiber.Ctx, statusCode int, message string) error {
	return c.Status(statusCode).JSON(fiber.Map{"error": message})
}

// BadRequest sends a 400 bad request response
func BadRequest(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusBadRequest, message)
}

// Unauthorized sends a 401 unauthorized response
func Unauthorized(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusUnauthorized, message)
}

// NotFound sends a 404 not found response
func NotFound(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusNotFound, message)
}

// InternalServerError sends a 500 internal server error response.
// Detail stays server-side; clients get the generic message.
func InternalServerError(c *fiber.Ctx) error {
	return Error(c, fiber.StatusInternalServerError, "Internal Server Error")
}
