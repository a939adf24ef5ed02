package main

import (
	"context"
	"log"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofiber/contrib/otelfiber/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	pgstorage "github.com/gofiber/storage/postgres/v3"
	"github.com/gofiber/swagger"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"pydenweb/docs"
	"pydenweb/internal/config"
	"pydenweb/internal/database"
	"pydenweb/internal/database/migration"
	handlers "pydenweb/internal/http/handler"
	"pydenweb/internal/http/middleware"
	"pydenweb/internal/mail"
	"pydenweb/internal/otel"
	"pydenweb/internal/repository/postgres"
	"pydenweb/internal/service"
	"pydenweb/internal/storage"
	"pydenweb/internal/view"
)

// @title PyDen Web API
// @version 1.0
// @BasePath /
func main() {
	// Load configuration from environment variables (.env auto-loaded if present)
	cfg := config.Load()

	ctx := context.Background()

	// Tracing is optional; a misconfigured exporter degrades to noop.
	shutdownTracing, err := otel.Init(ctx)
	if err != nil {
		log.Fatalf("failed to initialize tracing: %v", err)
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = shutdownTracing(sctx)
	}()

	// Initialize PostgreSQL connection (with pooling via database/sql)
	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := migration.EnsureMigrated(ctx, db, time.UTC, cfg.Database.Host); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	// Initialize reusable S3-compatible object storage client (MinIO-supported)
	objStore, err := storage.NewMinIO(cfg.MinIO)
	if err != nil {
		log.Fatalf("failed to initialize object storage: %v", err)
	}

	mailer, err := mail.NewSMTP(cfg.SMTP)
	if err != nil {
		log.Fatalf("failed to initialize mailer: %v", err)
	}

	// Initialize repositories and services
	qrRepo := postgres.NewQRCodePostgres(db)
	userRepo := postgres.NewUserPostgres(db)

	qrSvc := service.NewQRCodeService(objStore, qrRepo, cfg.BaseURL)
	contactSvc := service.NewContactService(mailer)
	authSvc := service.NewAuthService(userRepo)

	// Seed the admin account before accepting traffic.
	if err := authSvc.EnsureAdmin(ctx, cfg.Admin.Email, cfg.Admin.Password); err != nil {
		log.Fatalf("failed to ensure admin account: %v", err)
	}

	// Admin sessions survive restarts via the Postgres-backed store.
	dsn, err := database.BuildPostgresDSN(cfg.Database)
	if err != nil {
		log.Fatalf("failed to build session store DSN: %v", err)
	}
	sessionStorage := pgstorage.New(pgstorage.Config{
		ConnectionURI: dsn,
		Table:         "admin_sessions",
		GCInterval:    10 * time.Minute,
	})
	sessionStore := middleware.NewSessionStore(cfg.Session, sessionStorage)

	engine, err := view.NewEngine()
	if err != nil {
		log.Fatalf("failed to load templates: %v", err)
	}

	app := fiber.New(fiber.Config{
		ErrorHandler: handlers.ErrorHandler(),
		Views:        engine,
	})

	// Register global middleware
	// RequestID middleware adds/propagates X-Request-ID and stores it in context
	app.Use(middleware.RequestID())
	// JSON Logger middleware for structured request logs
	app.Use(middleware.Logger())
	// Security headers and CORS for the browser-facing surfaces
	app.Use(helmet.New())
	app.Use(cors.New())
	app.Use(otelfiber.Middleware())

	reg := prometheus.NewRegistry()
	promMW, err := middleware.NewPrometheusMiddleware(reg)
	if err != nil {
		log.Fatalf("failed to register metrics: %v", err)
	}
	app.Use(promMW.Handler())
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))

	// Register HTTP routes with injected services
	handlers.RegisterRoutes(app, db, qrSvc, contactSvc, authSvc, sessionStore)

	// Swagger UI with dynamic host and scheme
	app.Get("/swagger/*", func(c *fiber.Ctx) error {
		scheme := c.Protocol()
		if proto := c.Get("X-Forwarded-Proto"); proto != "" {
			scheme = strings.Split(proto, ",")[0]
		}

		docs.SwaggerInfo.Host = c.Get("Host")
		docs.SwaggerInfo.Schemes = []string{scheme}

		return swagger.HandlerDefault(c)
	})

	registerStatic(app, "./public")

	addr := ":" + cfg.Port

	if err := app.Listen(addr); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}

// registerStatic serves the marketing site assets and sends the landing page
// for unknown GET paths, so deep links into the site still resolve.
// It must run after every API route is registered.
func registerStatic(app *fiber.App, dir string) {
	app.Static("/", dir)
	app.Get("/*", func(c *fiber.Ctx) error {
		return c.SendFile(filepath.Join(dir, "index.html"))
	})
}
