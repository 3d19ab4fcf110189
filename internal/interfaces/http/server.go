package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/backoffice-api/pkg/logger"
	"github.com/jhoicas/backoffice-api/pkg/metrics"
)

// AppOptions configuración de la aplicación Fiber.
type AppOptions struct {
	Name   string
	Logger *logger.Logger
	// Metrics puede ser nil (sin métricas HTTP).
	Metrics *metrics.Metrics
	// MetricsHandler expone /metrics si no es nil.
	MetricsHandler http.Handler
	// DocsFile ruta al swagger.json; vacío = sin /docs.
	DocsFile string
	// HealthCheck verifica dependencias (p. ej. ping a la base); nil = siempre ok.
	HealthCheck func(ctx context.Context) error
	Deps        RouterDeps
}

// NewApp arma la aplicación: recover, log de peticiones, /health, /metrics, /docs y la API.
func NewApp(opts AppOptions) *fiber.App {
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}
	app := fiber.New(fiber.Config{
		AppName:      opts.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
		ErrorHandler: ErrorHandler(log),
	})
	app.Use(recover.New())
	app.Use(RequestLogger(log, opts.Metrics))

	// Swagger UI en local: http://localhost:<port>/docs
	if opts.DocsFile != "" {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: opts.DocsFile,
			Path:     "docs",
			Title:    "Backoffice API",
		}))
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		if opts.HealthCheck != nil {
			ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
			defer cancel()
			if err := opts.HealthCheck(ctx); err != nil {
				log.Warn().Err(err).Msg("health check")
				return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "unavailable", "service": opts.Name})
			}
		}
		return c.JSON(fiber.Map{"status": "ok", "service": opts.Name})
	})
	if opts.MetricsHandler != nil {
		app.Get("/metrics", adaptor.HTTPHandler(opts.MetricsHandler))
	}

	Router(app, opts.Deps)
	return app
}
