package http

import (
	"errors"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/meustock-api/pkg/metrics"
)

// MetricsMiddleware registra conteo y duración por método, ruta (plantilla) y status.
func MetricsMiddleware(m *metrics.Metrics) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			var fe *fiber.Error
			if errors.As(err, &fe) {
				status = fe.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}
		path := c.Route().Path
		if path == "" || path == "/" {
			path = "unmatched"
		}
		m.ObserveHTTP(c.Method(), path, strconv.Itoa(status), time.Since(start).Seconds())
		return err
	}
}
