package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/smartstock-api/internal/application/inventory"
)

// InventoryHandler estados de inventario y movimientos de stock.
type InventoryHandler struct {
	uc *inventory.UseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(uc *inventory.UseCase) *InventoryHandler {
	return &InventoryHandler{uc: uc}
}

// States godoc
// @Summary      Estados de inventario por producto
// @Tags         inventario
// @Produce      json
// @Success      200  {array}  dto.InventoryStateResponse
// @Router       /api/inventario/estados [get]
func (h *InventoryHandler) States(c *fiber.Ctx) error {
	out, err := h.uc.States(c.UserContext())
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// State godoc
// @Summary      Estado de inventario de un producto
// @Tags         inventario
// @Produce      json
// @Param        productoId  path  int  true  "ID del producto"
// @Success      200  {object}  dto.InventoryStateResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventario/producto/{productoId} [get]
func (h *InventoryHandler) State(c *fiber.Ctx) error {
	id, err := paramID(c, "productoId")
	if err != nil {
		return fail(c, err)
	}
	out, err := h.uc.State(c.UserContext(), id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// Summary godoc
// @Summary      Totales de inventario
// @Tags         inventario
// @Produce      json
// @Success      200  {object}  dto.InventorySummaryResponse
// @Router       /api/inventario/resumen [get]
func (h *InventoryHandler) Summary(c *fiber.Ctx) error {
	out, err := h.uc.Summary(c.UserContext())
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// Movements godoc
// @Summary      Últimos movimientos de stock
// @Tags         inventario
// @Produce      json
// @Success      200  {array}  dto.StockMovementResponse
// @Router       /api/inventario/movimientos [get]
func (h *InventoryHandler) Movements(c *fiber.Ctx) error {
	out, err := h.uc.Movements(c.UserContext())
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}
