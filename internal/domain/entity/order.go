package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados del pedido.
//
//	pendiente ──aprobar──> aprobado ──┐
//	    └──rechazar──> rechazado      ├──envío──> en_transito ──entrega──> entregado
//	(creación directa) pendiente_envio┘
const (
	OrderStatusPending         = "pendiente"
	OrderStatusPendingShipment = "pendiente_envio"
	OrderStatusApproved        = "aprobado"
	OrderStatusRejected        = "rechazado"
	OrderStatusInTransit       = "en_transito"
	OrderStatusDelivered       = "entregado"
)

// Estados de inventario del pedido.
const (
	InventoryStatusNone      = "sin_reserva"
	InventoryStatusReserved  = "reservado"
	InventoryStatusInTransit = "en_transito"
	InventoryStatusReceived  = "recibido"
)

// Order pedido de tarjetas contra un contrato.
// Los campos *Snapshot se fijan al reservar y no vuelven a cambiar.
type Order struct {
	ID               int64
	ContractID       int64
	Quantity         int
	Status           string
	InventoryStatus  string
	UsagePctSnapshot decimal.Decimal
	InactiveSnapshot int
	RequestedAt      time.Time
	ApprovedAt       *time.Time
	ApprovedBy       *int64
	RejectionReason  *string

	// Datos de lectura (JOIN con contrato, cliente y producto).
	CustomerID   int64
	ProductID    int64
	CustomerName string
	ProductName  string
}

// CanShip indica si el pedido puede despacharse.
func (o *Order) CanShip() bool {
	return o.Status == OrderStatusPendingShipment || o.Status == OrderStatusApproved
}
