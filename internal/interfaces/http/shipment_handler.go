package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/smartstock-api/internal/application/dto"
	"github.com/jhoicas/smartstock-api/internal/application/shipping"
	"github.com/jhoicas/smartstock-api/internal/domain"
)

// ShipmentHandler despacho, rastreo y entrega de pedidos.
type ShipmentHandler struct {
	uc *shipping.UseCase
}

// NewShipmentHandler construye el handler.
func NewShipmentHandler(uc *shipping.UseCase) *ShipmentHandler {
	return &ShipmentHandler{uc: uc}
}

// Create godoc
// @Summary      Despachar pedido
// @Description  Acepta pedidos en pendiente_envio o aprobado; el pedido pasa a en_transito.
// @Tags         envios
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateShipmentRequest  true  "Pedido y repartidor opcional"
// @Success      201   {object}  dto.ShipmentResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/envios [post]
func (h *ShipmentHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateShipmentRequest
	if err := decodeJSON(c, &in); err != nil {
		return fail(c, err)
	}
	sh, err := h.uc.Create(c.UserContext(), shipping.CreateInput{OrderID: in.OrderID, CourierID: in.CourierID})
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toShipmentResponse(sh))
}

// UpdateLocation godoc
// @Summary      Actualizar ubicación GPS
// @Tags         envios
// @Accept       json
// @Produce      json
// @Param        id    path  int  true  "ID del envío"
// @Param        body  body  dto.UpdateLocationRequest  true  "Latitud y longitud"
// @Success      200   {object}  dto.MessageResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/envios/{id}/ubicacion [put]
func (h *ShipmentHandler) UpdateLocation(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return fail(c, err)
	}
	var in dto.UpdateLocationRequest
	if err := decodeJSON(c, &in); err != nil {
		return fail(c, err)
	}
	if in.Latitude == nil || in.Longitude == nil {
		return fail(c, domain.NewValidationError("latitud y longitud son requeridas"))
	}
	if err := h.uc.UpdateLocation(c.UserContext(), id, *in.Latitude, *in.Longitude); err != nil {
		return fail(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "ubicación actualizada"})
}

// Deliver godoc
// @Summary      Confirmar entrega
// @Tags         envios
// @Accept       json
// @Produce      json
// @Param        id    path  int  true  "ID del envío"
// @Param        body  body  dto.DeliverRequest  false  "URL de la foto de evidencia"
// @Success      200   {object}  dto.DeliveryResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/envios/{id}/entregar [put]
func (h *ShipmentHandler) Deliver(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return fail(c, err)
	}
	var in dto.DeliverRequest
	if len(c.Body()) > 0 {
		if err := decodeJSON(c, &in); err != nil {
			return fail(c, err)
		}
	}
	d, err := h.uc.Deliver(c.UserContext(), id, in.EvidenceURL)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(toDeliveryResponse(d))
}

// Active godoc
// @Summary      Envíos activos
// @Tags         envios
// @Produce      json
// @Success      200  {array}  dto.ShipmentResponse
// @Router       /api/envios/activos [get]
func (h *ShipmentHandler) Active(c *fiber.Ctx) error {
	list, err := h.uc.ListActive(c.UserContext())
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(toShipmentResponses(list))
}

// Tracking godoc
// @Summary      Rastrear envío por código
// @Tags         envios
// @Produce      json
// @Param        tracking_code  path  string  true  "Código de rastreo"
// @Success      200  {object}  dto.ShipmentResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/envios/tracking/{tracking_code} [get]
func (h *ShipmentHandler) Tracking(c *fiber.Ctx) error {
	sh, err := h.uc.GetByTracking(c.UserContext(), c.Params("tracking_code"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(toShipmentResponse(sh))
}

// ByCustomer godoc
// @Summary      Envíos de un cliente
// @Tags         envios
// @Produce      json
// @Param        clienteId  path  int  true  "ID del cliente"
// @Success      200  {array}  dto.ShipmentResponse
// @Router       /api/envios/cliente/{clienteId} [get]
func (h *ShipmentHandler) ByCustomer(c *fiber.Ctx) error {
	id, err := paramID(c, "clienteId")
	if err != nil {
		return fail(c, err)
	}
	list, err := h.uc.ListByCustomer(c.UserContext(), id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(toShipmentResponses(list))
}

// Label godoc
// @Summary      Guía de envío en PDF
// @Tags         envios
// @Produce      application/pdf
// @Param        id   path  int  true  "ID del envío"
// @Success      200  {file}  binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/envios/{id}/guia [get]
func (h *ShipmentHandler) Label(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return fail(c, err)
	}
	pdf, name, err := h.uc.Label(c.UserContext(), id)
	if err != nil {
		return fail(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`inline; filename="%s"`, name))
	return c.Send(pdf)
}
