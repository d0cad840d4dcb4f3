package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/smartstock-api/pkg/logger"
)

// RequestLogger registra método, ruta, status, latencia e id de petición.
// 5xx se registra en error y 4xx en warn.
func RequestLogger(l *logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		if err != nil {
			// El ErrorHandler escribe la respuesta; aquí solo se necesita el status final.
			if herr := c.App().ErrorHandler(c, err); herr != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}
		status := c.Response().StatusCode()

		ev := l.Info()
		switch {
		case status >= fiber.StatusInternalServerError:
			ev = l.Error()
		case status >= fiber.StatusBadRequest:
			ev = l.Warn()
		}
		ev.Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Str("request_id", requestID(c)).
			Str("ip", c.IP()).
			Msg("http")
		return nil
	}
}
