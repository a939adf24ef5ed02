package handler

import (
	"database/sql"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"

	"pydenweb/internal/http/middleware"
	"pydenweb/internal/service"
)

// Per-IP rate limits. Login gets a tight budget against credential stuffing;
// the QR API gets a wider one sized for dashboard usage.
const (
	rateLimitWindow = 15 * time.Minute
	authRateLimit   = 50
	apiRateLimit    = 300
)

// RegisterRoutes wires every application endpoint onto the Fiber app. QR code
// issuance and listing sit behind the session gate; validation pages, the QR
// images and the contact relay are public.
func RegisterRoutes(
	app *fiber.App,
	db *sql.DB,
	qrSvc service.QRCodeService,
	contactSvc service.ContactService,
	authSvc service.AuthService,
	store *session.Store,
) {
	app.Get("/health", HealthCheck(db))
	app.Get("/healthz", LivenessProbe())

	app.Post("/contact", Contact(contactSvc))

	authLimiter := middleware.RateLimit(authRateLimit, rateLimitWindow)
	app.Post("/admin/login", authLimiter, Login(authSvc, store))
	app.Post("/admin/logout", Logout(store))

	app.Get("/validar/:publicId", ValidatePage(qrSvc))
	app.Get("/img/qrcodes/:file", QRImage(qrSvc))

	apiLimiter := middleware.RateLimit(apiRateLimit, rateLimitWindow)
	auth := middleware.RequireSession(store)
	app.Post("/qrcodes", apiLimiter, auth, CreateQRCode(qrSvc))
	app.Get("/qrcodes", apiLimiter, auth, ListQRCodes(qrSvc))
}
