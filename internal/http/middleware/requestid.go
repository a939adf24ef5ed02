package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const (
	// RequestIDHeader carries the request id on requests and responses.
	RequestIDHeader = "X-Request-ID"
	// RequestIDLocalKey is where the id lives in the Fiber locals, for the
	// logger and the error payload.
	RequestIDLocalKey = "request_id"
)

// RequestID tags every request with an id. An id supplied by the caller is
// kept so upstream proxies can correlate; otherwise a fresh UUID is minted.
// The id is echoed back on the response and exposed via locals.
func RequestID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Get(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}

		c.Locals(RequestIDLocalKey, id)
		c.Set(RequestIDHeader, id)

		return c.Next()
	}
}
