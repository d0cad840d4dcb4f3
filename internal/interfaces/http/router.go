package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/smartstock-api/internal/application/inventory"
	"github.com/jhoicas/smartstock-api/internal/application/ordering"
	"github.com/jhoicas/smartstock-api/internal/application/payroll"
	"github.com/jhoicas/smartstock-api/internal/application/shipping"
	"github.com/jhoicas/smartstock-api/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	CustomerUC *usecase.CustomerUseCase
	ProductUC  *usecase.ProductUseCase
	ContractUC *usecase.ContractUseCase
	AlertUC    *usecase.AlertUseCase
	CourierUC  *usecase.CourierUseCase
	TicketUC   *usecase.TicketUseCase
	Ordering   *ordering.UseCase
	Shipping   *shipping.UseCase
	Inventory  *inventory.UseCase
	Payroll    *payroll.UseCase

	UploadDir      string
	UploadMaxBytes int64
}

// Router registra las rutas de la API. Las rutas fijas van antes que las de parámetro.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	customers := api.Group("/clientes")
	customerHandler := NewCustomerHandler(deps.CustomerUC)
	customers.Post("/login", customerHandler.Login)
	customers.Get("/", customerHandler.List)
	customers.Post("/", customerHandler.Create)
	customers.Get("/:id", customerHandler.GetByID)
	customers.Put("/:id", customerHandler.Update)

	products := api.Group("/productos")
	productHandler := NewProductHandler(deps.ProductUC, deps.Inventory)
	products.Get("/", productHandler.List)
	products.Get("/alertas/stock", productHandler.StockAlerts)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id/stock", productHandler.AdjustStock)

	contracts := api.Group("/contratos")
	contractHandler := NewContractHandler(deps.ContractUC)
	contracts.Get("/", contractHandler.List)
	contracts.Get("/salud", contractHandler.Health)
	contracts.Get("/resumen/estadistico", contractHandler.Summary)
	contracts.Get("/cliente/:clienteId/productos", contractHandler.AvailableProducts)
	contracts.Get("/cliente/:clienteId", contractHandler.ByCustomer)
	contracts.Get("/:id", contractHandler.GetByID)

	orders := api.Group("/pedidos")
	orderHandler := NewOrderHandler(deps.Ordering)
	orders.Post("/validar", orderHandler.Validate)
	orders.Post("/solicitudes", orderHandler.Request)
	orders.Post("/", orderHandler.Create)
	orders.Get("/", orderHandler.List)
	orders.Get("/:id", orderHandler.GetByID)
	orders.Put("/:id/aprobar", orderHandler.Approve)
	orders.Put("/:id/rechazar", orderHandler.Reject)

	alerts := api.Group("/alertas")
	alertHandler := NewAlertHandler(deps.AlertUC)
	alerts.Get("/", alertHandler.List)
	alerts.Get("/no-resueltas", alertHandler.Unresolved)
	alerts.Post("/generar", alertHandler.Generate)
	alerts.Put("/:id/resolver", alertHandler.Resolve)

	shipments := api.Group("/envios")
	shipmentHandler := NewShipmentHandler(deps.Shipping)
	shipments.Post("/", shipmentHandler.Create)
	shipments.Get("/activos", shipmentHandler.Active)
	shipments.Get("/tracking/:tracking_code", shipmentHandler.Tracking)
	shipments.Get("/cliente/:clienteId", shipmentHandler.ByCustomer)
	shipments.Get("/:id/guia", shipmentHandler.Label)
	shipments.Put("/:id/ubicacion", shipmentHandler.UpdateLocation)
	shipments.Put("/:id/entregar", shipmentHandler.Deliver)

	couriers := api.Group("/repartidores")
	courierHandler := NewCourierHandler(deps.CourierUC)
	couriers.Get("/", courierHandler.List)
	couriers.Post("/", courierHandler.Create)
	couriers.Get("/:id/envios", courierHandler.Shipments)

	tickets := api.Group("/tickets")
	ticketHandler := NewTicketHandler(deps.TicketUC)
	tickets.Post("/", ticketHandler.Create)
	tickets.Post("/respuesta", ticketHandler.Reply)
	tickets.Get("/cliente/:clienteId", ticketHandler.ByCustomer)
	tickets.Get("/:id", ticketHandler.Detail)
	tickets.Put("/:id/cerrar", ticketHandler.Close)

	inv := api.Group("/inventario")
	inventoryHandler := NewInventoryHandler(deps.Inventory)
	inv.Get("/estados", inventoryHandler.States)
	inv.Get("/resumen", inventoryHandler.Summary)
	inv.Get("/movimientos", inventoryHandler.Movements)
	inv.Get("/producto/:productoId", inventoryHandler.State)

	validation := api.Group("/validacion")
	payrollHandler := NewPayrollHandler(deps.Payroll, deps.UploadDir, deps.UploadMaxBytes)
	validation.Post("/nomina", payrollHandler.Validate)
	validation.Get("/plantilla", payrollHandler.Template)
	validation.Get("/empleados/:clienteId", payrollHandler.Employees)
}
