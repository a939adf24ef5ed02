package handler

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"

	"pydenweb/internal/http/middleware"
	"pydenweb/internal/service"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login authenticates an admin operator and establishes a server-side session.
func Login(svc service.AuthService, store *session.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req loginRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
		}
		if strings.TrimSpace(req.Email) == "" || req.Password == "" {
			return writeError(c, fiber.StatusBadRequest, "MISSING_FIELDS", "email and password are required")
		}

		u, err := svc.Authenticate(c.UserContext(), req.Email, req.Password)
		if err != nil {
			if errors.Is(err, service.ErrInvalidCredentials) {
				return writeError(c, fiber.StatusUnauthorized, "INVALID_CREDENTIALS", "invalid credentials")
			}
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}

		sess, err := store.Get(c)
		if err != nil {
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		// Fresh session id on login; never reuse a pre-auth session.
		if err := sess.Regenerate(); err != nil {
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		sess.Set(middleware.SessionUserIDKey, u.ID)
		sess.Set(middleware.SessionEmailKey, u.Email)
		if err := sess.Save(); err != nil {
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}

		return c.JSON(fiber.Map{"ok": true, "email": u.Email})
	}
}

// Logout tears down the current session. Logging out without a session is not
// an error.
func Logout(store *session.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess, err := store.Get(c)
		if err == nil {
			_ = sess.Destroy()
		}
		return c.JSON(fiber.Map{"ok": true})
	}
}
