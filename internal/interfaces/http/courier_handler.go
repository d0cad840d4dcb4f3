package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/smartstock-api/internal/application/dto"
	"github.com/jhoicas/smartstock-api/internal/application/usecase"
)

// CourierHandler repartidores.
type CourierHandler struct {
	uc *usecase.CourierUseCase
}

// NewCourierHandler construye el handler.
func NewCourierHandler(uc *usecase.CourierUseCase) *CourierHandler {
	return &CourierHandler{uc: uc}
}

// List godoc
// @Summary      Repartidores disponibles
// @Tags         repartidores
// @Produce      json
// @Success      200  {array}  dto.CourierResponse
// @Router       /api/repartidores [get]
func (h *CourierHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.ListAvailable(c.UserContext())
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Registrar repartidor
// @Tags         repartidores
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateCourierRequest  true  "Datos del repartidor"
// @Success      201   {object}  dto.CourierResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/repartidores [post]
func (h *CourierHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateCourierRequest
	if err := decodeJSON(c, &in); err != nil {
		return fail(c, err)
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Shipments godoc
// @Summary      Envíos activos de un repartidor
// @Tags         repartidores
// @Produce      json
// @Param        id   path  int  true  "ID del repartidor"
// @Success      200  {array}  dto.ShipmentResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/repartidores/{id}/envios [get]
func (h *CourierHandler) Shipments(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return fail(c, err)
	}
	list, err := h.uc.ActiveShipments(c.UserContext(), id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(toShipmentResponses(list))
}
