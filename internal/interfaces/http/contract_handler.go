package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/smartstock-api/internal/application/usecase"
)

// ContractHandler contratos, salud y productos disponibles por cliente. Solo lectura.
type ContractHandler struct {
	uc *usecase.ContractUseCase
}

// NewContractHandler construye el handler.
func NewContractHandler(uc *usecase.ContractUseCase) *ContractHandler {
	return &ContractHandler{uc: uc}
}

// List godoc
// @Summary      Listar contratos
// @Tags         contratos
// @Produce      json
// @Success      200  {array}  dto.ContractResponse
// @Router       /api/contratos [get]
func (h *ContractHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext())
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener contrato
// @Tags         contratos
// @Produce      json
// @Param        id   path  int  true  "ID del contrato"
// @Success      200  {object}  dto.ContractResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/contratos/{id} [get]
func (h *ContractHandler) GetByID(c *fiber.Ctx) error {
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

// Health godoc
// @Summary      Salud de contratos vigentes
// @Tags         contratos
// @Produce      json
// @Success      200  {array}  dto.ContractHealthResponse
// @Router       /api/contratos/salud [get]
func (h *ContractHandler) Health(c *fiber.Ctx) error {
	out, err := h.uc.Health(c.UserContext())
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// Summary godoc
// @Summary      Resumen estadístico de contratos
// @Tags         contratos
// @Produce      json
// @Success      200  {object}  dto.ContractSummaryResponse
// @Router       /api/contratos/resumen/estadistico [get]
func (h *ContractHandler) Summary(c *fiber.Ctx) error {
	out, err := h.uc.Summary(c.UserContext())
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// ByCustomer godoc
// @Summary      Contratos de un cliente
// @Tags         contratos
// @Produce      json
// @Param        clienteId  path  int  true  "ID del cliente"
// @Success      200  {array}  dto.ContractResponse
// @Router       /api/contratos/cliente/{clienteId} [get]
func (h *ContractHandler) ByCustomer(c *fiber.Ctx) error {
	id, err := paramID(c, "clienteId")
	if err != nil {
		return fail(c, err)
	}
	out, err := h.uc.ListByCustomer(c.UserContext(), id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// AvailableProducts godoc
// @Summary      Productos que el cliente puede pedir
// @Tags         contratos
// @Produce      json
// @Param        clienteId  path  int  true  "ID del cliente"
// @Success      200  {array}  dto.AvailableProductResponse
// @Router       /api/contratos/cliente/{clienteId}/productos [get]
func (h *ContractHandler) AvailableProducts(c *fiber.Ctx) error {
	id, err := paramID(c, "clienteId")
	if err != nil {
		return fail(c, err)
	}
	out, err := h.uc.AvailableProducts(c.UserContext(), id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}
