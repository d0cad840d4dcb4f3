package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/smartstock-api/internal/application/dto"
	"github.com/jhoicas/smartstock-api/internal/application/inventory"
	"github.com/jhoicas/smartstock-api/internal/application/usecase"
)

// ProductHandler catálogo de productos y ajustes manuales de stock.
type ProductHandler struct {
	uc    *usecase.ProductUseCase
	stock *inventory.UseCase
}

// NewProductHandler construye el handler.
func NewProductHandler(uc *usecase.ProductUseCase, stock *inventory.UseCase) *ProductHandler {
	return &ProductHandler{uc: uc, stock: stock}
}

// List godoc
// @Summary      Listar productos
// @Tags         productos
// @Produce      json
// @Success      200  {array}  dto.ProductResponse
// @Router       /api/productos [get]
func (h *ProductHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext())
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener producto por ID
// @Tags         productos
// @Produce      json
// @Param        id   path  int  true  "ID del producto"
// @Success      200  {object}  dto.ProductResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/productos/{id} [get]
func (h *ProductHandler) GetByID(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return fail(c, err)
	}
	out, err := h.uc.GetByID(c.UserContext(), id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// StockAlerts godoc
// @Summary      Productos con stock crítico o bajo
// @Tags         productos
// @Produce      json
// @Success      200  {array}  dto.StockAlertResponse
// @Router       /api/productos/alertas/stock [get]
func (h *ProductHandler) StockAlerts(c *fiber.Ctx) error {
	out, err := h.uc.StockAlerts(c.UserContext())
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// AdjustStock godoc
// @Summary      Ajuste manual de stock
// @Description  cantidad es un delta; un resultado negativo se rechaza.
// @Tags         productos
// @Accept       json
// @Produce      json
// @Param        id    path  int  true  "ID del producto"
// @Param        body  body  dto.AdjustStockRequest  true  "Delta y razón"
// @Success      200   {object}  dto.AdjustStockResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/productos/{id}/stock [put]
func (h *ProductHandler) AdjustStock(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return fail(c, err)
	}
	var in dto.AdjustStockRequest
	if err := decodeJSON(c, &in); err != nil {
		return fail(c, err)
	}
	out, err := h.stock.AdjustStock(c.UserContext(), inventory.AdjustInput{
		ProductID: id,
		Delta:     in.Quantity,
		Reason:    in.Reason,
		UserID:    in.UserID,
	})
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}
