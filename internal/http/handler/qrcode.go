package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"pydenweb/internal/service"
)

// createQRCodeRequest mirrors the form the admin dashboard posts. The "id"
// field is the caller-supplied business identifier, not the surrogate key.
type createQRCodeRequest struct {
	Type        string `json:"type"`
	Description string `json:"description"`
	ExternalID  string `json:"id"`
}

// CreateQRCode issues a new QR record. Auth is enforced by the session
// middleware on the route.
func CreateQRCode(svc service.QRCodeService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req createQRCodeRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
		}

		res, err := svc.Issue(c.UserContext(), req.Type, req.Description, req.ExternalID)
		if err != nil {
			switch {
			case errors.Is(err, service.ErrMissingFields):
				return writeError(c, fiber.StatusBadRequest, "MISSING_FIELDS", "type, description and id are required")
			case errors.Is(err, service.ErrInvalidType):
				return writeError(c, fiber.StatusBadRequest, "INVALID_TYPE", "use contratos, orcamentos or propostas")
			case errors.Is(err, service.ErrDuplicate):
				return writeError(c, fiber.StatusConflict, "DUPLICATE", "a QR code already exists for this type and id")
			default:
				return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
			}
		}
		return c.Status(fiber.StatusCreated).JSON(res)
	}
}

// ListQRCodes returns issued records for the admin dashboard, newest first.
func ListQRCodes(svc service.QRCodeService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		items, err := svc.List(c.UserContext(), c.Query("type"), c.Query("search"))
		if err != nil {
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		return c.JSON(fiber.Map{"data": items})
	}
}
