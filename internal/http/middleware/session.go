package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"

	"pydenweb/internal/config"
)

// Session locals/value keys set by RequireSession and the login handler.
const (
	SessionUserIDKey = "user_id"
	SessionEmailKey  = "email"
)

// NewSessionStore builds the server-side session store for admin sessions.
// storage persists sessions across restarts (Postgres in production);
// nil falls back to the in-memory store, which tests rely on.
// Expiration is absolute: no sliding renewal.
func NewSessionStore(cfg config.SessionConfig, storage fiber.Storage) *session.Store {
	return session.New(session.Config{
		Storage:        storage,
		Expiration:     time.Duration(cfg.ExpirationHours) * time.Hour,
		KeyLookup:      "cookie:" + cfg.CookieName,
		CookieHTTPOnly: true,
		CookieSameSite: "Lax",
	})
}

// RequireSession gates admin endpoints behind a valid authenticated session.
// The public validator routes never pass through this middleware.
func RequireSession(store *session.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess, err := store.Get(c)
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "authentication required")
		}
		uid := sess.Get(SessionUserIDKey)
		if uid == nil {
			return fiber.NewError(fiber.StatusUnauthorized, "authentication required")
		}

		c.Locals(SessionUserIDKey, uid)
		if email := sess.Get(SessionEmailKey); email != nil {
			c.Locals(SessionEmailKey, email)
		}
		return c.Next()
	}
}
