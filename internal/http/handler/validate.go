package handler

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"pydenweb/internal/service"
)

// ValidatePage renders the public validation page for a QR public identifier.
// This endpoint is the system's public trust surface and requires no auth.
func ValidatePage(svc service.QRCodeService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		publicID := c.Params("publicId")

		rec, err := svc.Validate(c.UserContext(), publicID)
		if err != nil {
			if errors.Is(err, service.ErrNotFound) {
				// No record details leak on unknown identifiers.
				return c.Status(fiber.StatusNotFound).Render("validate_not_found", fiber.Map{})
			}
			return c.Status(fiber.StatusInternalServerError).SendString("Erro interno.")
		}

		return c.Render("validate", fiber.Map{
			"Type":        rec.Type,
			"ExternalID":  rec.ExternalID,
			"Description": rec.Description,
			"CreatedAt":   rec.CreatedAt.Format("02/01/2006 15:04"),
			"ImagePath":   service.ImagePath(rec.PublicID),
		})
	}
}

// QRImage streams a previously generated QR PNG from object storage.
// The path is stable and keyed on the public identifier.
func QRImage(svc service.QRCodeService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		file := c.Params("file")
		publicID := strings.TrimSuffix(file, ".png")
		if publicID == "" || publicID == file {
			return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "resource not found")
		}

		rc, info, err := svc.Image(c.UserContext(), publicID)
		if err != nil {
			return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "resource not found")
		}

		c.Set(fiber.HeaderContentType, "image/png")
		return c.SendStream(rc, int(info.Size))
	}
}
