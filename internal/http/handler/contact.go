package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"pydenweb/internal/service"
)

// Contact relays a website contact-form submission by email.
func Contact(svc service.ContactService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req service.ContactRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
		}

		if err := svc.Send(c.UserContext(), req); err != nil {
			if errors.Is(err, service.ErrMissingFields) {
				return writeError(c, fiber.StatusBadRequest, "MISSING_FIELDS", "name, email, subject and message are required")
			}
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "failed to send message")
		}

		return c.JSON(fiber.Map{"message": "Mensagem enviada com sucesso!"})
	}
}
