package logger

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

// RequestLogger logs one line per request through the application logger
func RequestLogger(l ILogger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		details := map[string]interface{}{
			"method":   c.Method(),
			"path":     c.Path(),
			"status":   c.Response().StatusCode(),
			"duration": time.Since(start).String(),
			"ip":       c.IP(),
		}
		if err != nil {
			details["error"] = err.Error()
		}

		if c.Response().StatusCode() >= fiber.StatusInternalServerError {
			l.Warn("HTTP", "request failed", details)
		} else {
			l.Debug("HTTP", "request handled", details)
		}
		return err
	}
}
