package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/smartstock-api/internal/application/dto"
	"github.com/jhoicas/smartstock-api/internal/application/usecase"
)

// CustomerHandler clientes (empresas que contratan tarjetas).
type CustomerHandler struct {
	uc *usecase.CustomerUseCase
}

// NewCustomerHandler construye el handler.
func NewCustomerHandler(uc *usecase.CustomerUseCase) *CustomerHandler {
	return &CustomerHandler{uc: uc}
}

// List godoc
// @Summary      Listar clientes activos
// @Tags         clientes
// @Produce      json
// @Success      200  {array}   dto.CustomerResponse
// @Router       /api/clientes [get]
func (h *CustomerHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.ListActive(c.UserContext())
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener cliente por ID
// @Tags         clientes
// @Produce      json
// @Param        id   path  int  true  "ID del cliente"
// @Success      200  {object}  dto.CustomerResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/clientes/{id} [get]
func (h *CustomerHandler) GetByID(c *fiber.Ctx) error {
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

// Create godoc
// @Summary      Registrar cliente
// @Tags         clientes
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateCustomerRequest  true  "Datos del cliente"
// @Success      201   {object}  dto.CustomerResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/clientes [post]
func (h *CustomerHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateCustomerRequest
	if err := decodeJSON(c, &in); err != nil {
		return fail(c, err)
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update godoc
// @Summary      Actualizar cliente (parcial)
// @Tags         clientes
// @Accept       json
// @Produce      json
// @Param        id    path  int  true  "ID del cliente"
// @Param        body  body  dto.UpdateCustomerRequest  true  "Campos a actualizar"
// @Success      200   {object}  dto.CustomerResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/clientes/{id} [put]
func (h *CustomerHandler) Update(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return fail(c, err)
	}
	var in dto.UpdateCustomerRequest
	if err := decodeJSON(c, &in); err != nil {
		return fail(c, err)
	}
	out, err := h.uc.Update(c.UserContext(), id, in)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// Login godoc
// @Summary      Login de cliente
// @Tags         clientes
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "Nombre de empresa y contraseña"
// @Success      200   {object}  dto.LoginResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/clientes/login [post]
func (h *CustomerHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := decodeJSON(c, &in); err != nil {
		return fail(c, err)
	}
	out, err := h.uc.Login(c.UserContext(), in)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}
