package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/jhoicas/smartstock-api/internal/application/dto"
)

// Pinger consulta la hora del servidor de base de datos.
type Pinger func(ctx context.Context) (time.Time, error)

// Health godoc
// @Summary      Estado del servicio
// @Tags         health
// @Produce      json
// @Success      200  {object}  dto.HealthResponse
// @Failure      503  {object}  dto.HealthResponse
// @Router       /health [get]
func Health(ping Pinger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), 3*time.Second)
		defer cancel()

		now, err := ping(ctx)
		if err != nil {
			log.Error().Err(err).Msg("health: base de datos no disponible")
			return c.Status(fiber.StatusServiceUnavailable).JSON(dto.HealthResponse{
				Status:   "error",
				Database: "desconectada",
			})
		}
		return c.JSON(dto.HealthResponse{
			Status:    "ok",
			Database:  "conectada",
			Timestamp: now.UTC().Format(time.RFC3339),
		})
	}
}
