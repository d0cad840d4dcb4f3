package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/smartstock-api/internal/application/dto"
	"github.com/jhoicas/smartstock-api/internal/application/usecase"
)

// AlertHandler alertas operativas.
type AlertHandler struct {
	uc *usecase.AlertUseCase
}

// NewAlertHandler construye el handler.
func NewAlertHandler(uc *usecase.AlertUseCase) *AlertHandler {
	return &AlertHandler{uc: uc}
}

// List godoc
// @Summary      Listar alertas
// @Tags         alertas
// @Produce      json
// @Success      200  {array}  dto.AlertResponse
// @Router       /api/alertas [get]
func (h *AlertHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext())
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// Unresolved godoc
// @Summary      Alertas sin resolver
// @Tags         alertas
// @Produce      json
// @Success      200  {array}  dto.AlertResponse
// @Router       /api/alertas/no-resueltas [get]
func (h *AlertHandler) Unresolved(c *fiber.Ctx) error {
	out, err := h.uc.ListUnresolved(c.UserContext())
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// Resolve godoc
// @Summary      Resolver alerta
// @Tags         alertas
// @Produce      json
// @Param        id   path  int  true  "ID de la alerta"
// @Success      200  {object}  dto.MessageResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/alertas/{id}/resolver [put]
func (h *AlertHandler) Resolve(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return fail(c, err)
	}
	if err := h.uc.Resolve(c.UserContext(), id); err != nil {
		return fail(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "alerta resuelta"})
}

// Generate godoc
// @Summary      Generar alertas automáticas
// @Description  Stock muerto (contratos con uso bajo) y stock bajo; no duplica alertas abiertas.
// @Tags         alertas
// @Produce      json
// @Success      200  {object}  dto.GenerateAlertsResponse
// @Router       /api/alertas/generar [post]
func (h *AlertHandler) Generate(c *fiber.Ctx) error {
	out, err := h.uc.Generate(c.UserContext())
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}
