package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/backoffice-api/pkg/logger"
	"github.com/jhoicas/backoffice-api/pkg/metrics"
)

// RequestLogger registra cada petición (método, ruta, estado, latencia, tenant) y su duración en Prometheus.
// La ruta de la métrica es el patrón registrado (/api/inventory/:id), no el path concreto.
func RequestLogger(log *logger.Logger, m *metrics.Metrics) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		chainErr := c.Next()
		if chainErr != nil {
			// Escribe la respuesta de error antes de leer el estado final.
			if err := c.App().ErrorHandler(c, chainErr); err != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}
		latency := time.Since(start)
		status := c.Response().StatusCode()

		m.ObserveHTTP(c.Method(), c.Route().Path, status, latency)

		ev := log.Info()
		if status >= fiber.StatusInternalServerError {
			ev = log.Warn()
		}
		ev.Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Dur("latency", latency).
			Str("tenant_id", GetTenantID(c)).
			Msg("http")
		return nil
	}
}
