package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/smartstock-api/internal/application/dto"
	"github.com/jhoicas/smartstock-api/internal/application/usecase"
)

// TicketHandler tickets de soporte.
type TicketHandler struct {
	uc *usecase.TicketUseCase
}

// NewTicketHandler construye el handler.
func NewTicketHandler(uc *usecase.TicketUseCase) *TicketHandler {
	return &TicketHandler{uc: uc}
}

// Create godoc
// @Summary      Abrir ticket
// @Tags         tickets
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateTicketRequest  true  "Datos del ticket"
// @Success      201   {object}  dto.TicketResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/tickets [post]
func (h *TicketHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateTicketRequest
	if err := decodeJSON(c, &in); err != nil {
		return fail(c, err)
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ByCustomer godoc
// @Summary      Tickets de un cliente
// @Tags         tickets
// @Produce      json
// @Param        clienteId  path  int  true  "ID del cliente"
// @Success      200  {array}  dto.TicketResponse
// @Router       /api/tickets/cliente/{clienteId} [get]
func (h *TicketHandler) ByCustomer(c *fiber.Ctx) error {
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

// Detail godoc
// @Summary      Ticket con sus respuestas
// @Tags         tickets
// @Produce      json
// @Param        id   path  int  true  "ID del ticket"
// @Success      200  {object}  dto.TicketDetailResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/tickets/{id} [get]
func (h *TicketHandler) Detail(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return fail(c, err)
	}
	out, err := h.uc.Detail(c.UserContext(), id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// Reply godoc
// @Summary      Responder ticket
// @Tags         tickets
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AddReplyRequest  true  "Respuesta"
// @Success      201   {object}  dto.TicketReplyResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/tickets/respuesta [post]
func (h *TicketHandler) Reply(c *fiber.Ctx) error {
	var in dto.AddReplyRequest
	if err := decodeJSON(c, &in); err != nil {
		return fail(c, err)
	}
	out, err := h.uc.AddReply(c.UserContext(), in)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Close godoc
// @Summary      Cerrar ticket
// @Tags         tickets
// @Produce      json
// @Param        id   path  int  true  "ID del ticket"
// @Success      200  {object}  dto.MessageResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/tickets/{id}/cerrar [put]
func (h *TicketHandler) Close(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return fail(c, err)
	}
	if err := h.uc.Close(c.UserContext(), id); err != nil {
		return fail(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "ticket cerrado"})
}
