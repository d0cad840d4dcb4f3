package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/smartstock-api/internal/application/dto"
	"github.com/jhoicas/smartstock-api/internal/application/ordering"
	"github.com/jhoicas/smartstock-api/internal/domain"
)

// OrderHandler ciclo de vida de pedidos: reserva directa, solicitud, aprobación y rechazo.
type OrderHandler struct {
	uc *ordering.UseCase
}

// NewOrderHandler construye el handler.
func NewOrderHandler(uc *ordering.UseCase) *OrderHandler {
	return &OrderHandler{uc: uc}
}

func toReserveInput(in dto.CreateOrderRequest) ordering.ReserveInput {
	return ordering.ReserveInput{
		ContractID: in.ContractID,
		CustomerID: in.CustomerID,
		ProductID:  in.ProductID,
		Quantity:   in.Quantity,
	}
}

// Create godoc
// @Summary      Crear pedido con reserva inmediata
// @Description  Valida el contrato y reserva stock y cupo en una sola transacción. El pedido queda en pendiente_envio.
// @Tags         pedidos
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateOrderRequest  true  "contrato_id o cliente_id + producto_id, y cantidad"
// @Success      201   {object}  dto.ReservationResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/pedidos [post]
func (h *OrderHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateOrderRequest
	if err := decodeJSON(c, &in); err != nil {
		return fail(c, err)
	}
	res, err := h.uc.Reserve(c.UserContext(), toReserveInput(in))
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toReservationResponse("pedido creado y stock reservado", res))
}

// Request godoc
// @Summary      Solicitar pedido sujeto a aprobación
// @Description  Crea el pedido en pendiente sin reservar stock.
// @Tags         pedidos
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateOrderRequest  true  "contrato_id o cliente_id + producto_id, y cantidad"
// @Success      201   {object}  dto.OrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/pedidos/solicitudes [post]
func (h *OrderHandler) Request(c *fiber.Ctx) error {
	var in dto.CreateOrderRequest
	if err := decodeJSON(c, &in); err != nil {
		return fail(c, err)
	}
	order, err := h.uc.Request(c.UserContext(), toReserveInput(in))
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toOrderResponse(order))
}

// Validate godoc
// @Summary      Simular validar_pedido
// @Tags         pedidos
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ValidateOrderRequest  true  "contratoId y cantidad"
// @Success      200   {object}  dto.ValidateOrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/pedidos/validar [post]
func (h *OrderHandler) Validate(c *fiber.Ctx) error {
	var in dto.ValidateOrderRequest
	if err := decodeJSON(c, &in); err != nil {
		return fail(c, err)
	}
	v, err := h.uc.Validate(c.UserContext(), in.ContractID, in.Quantity)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(dto.ValidateOrderResponse{Approved: v.Approved, Reason: v.Reason})
}

// List godoc
// @Summary      Listar pedidos
// @Tags         pedidos
// @Produce      json
// @Success      200  {array}  dto.OrderResponse
// @Router       /api/pedidos [get]
func (h *OrderHandler) List(c *fiber.Ctx) error {
	list, err := h.uc.List(c.UserContext())
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(toOrderResponses(list))
}

// GetByID godoc
// @Summary      Obtener pedido
// @Tags         pedidos
// @Produce      json
// @Param        id   path  int  true  "ID del pedido"
// @Success      200  {object}  dto.OrderResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/pedidos/{id} [get]
func (h *OrderHandler) GetByID(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return fail(c, err)
	}
	order, err := h.uc.GetByID(c.UserContext(), id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(toOrderResponse(order))
}

// Approve godoc
// @Summary      Aprobar pedido pendiente
// @Description  Ejecuta la misma reserva que la creación directa. Solo desde pendiente.
// @Tags         pedidos
// @Accept       json
// @Produce      json
// @Param        id    path  int  true  "ID del pedido"
// @Param        body  body  dto.ApproveOrderRequest  false  "Usuario que aprueba"
// @Success      200   {object}  dto.ReservationResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/pedidos/{id}/aprobar [put]
func (h *OrderHandler) Approve(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return fail(c, err)
	}
	var in dto.ApproveOrderRequest
	if len(c.Body()) > 0 {
		if err := decodeJSON(c, &in); err != nil {
			return fail(c, err)
		}
	}
	if in.UserID < 0 {
		return fail(c, domain.NewValidationError("usuario_id debe ser positivo"))
	}
	res, err := h.uc.Approve(c.UserContext(), id, in.UserID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(toReservationResponse("pedido aprobado y stock reservado", res))
}

// Reject godoc
// @Summary      Rechazar pedido pendiente
// @Tags         pedidos
// @Accept       json
// @Produce      json
// @Param        id    path  int  true  "ID del pedido"
// @Param        body  body  dto.RejectOrderRequest  true  "Razón del rechazo"
// @Success      200   {object}  dto.OrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/pedidos/{id}/rechazar [put]
func (h *OrderHandler) Reject(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return fail(c, err)
	}
	var in dto.RejectOrderRequest
	if err := decodeJSON(c, &in); err != nil {
		return fail(c, err)
	}
	order, err := h.uc.Reject(c.UserContext(), id, in.Reason)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(toOrderResponse(order))
}
