package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateOrderRequest body para POST /api/pedidos y /api/pedidos/solicitudes.
// Se indica contrato_id, o bien cliente_id + producto_id.
type CreateOrderRequest struct {
	ContractID int64 `json:"contrato_id"`
	CustomerID int64 `json:"cliente_id"`
	ProductID  int64 `json:"producto_id"`
	Quantity   int   `json:"cantidad"`
}

// ValidateOrderRequest body para POST /api/pedidos/validar.
type ValidateOrderRequest struct {
	ContractID int64 `json:"contratoId"`
	Quantity   int   `json:"cantidad"`
}

// ValidateOrderResponse veredicto de validar_pedido.
type ValidateOrderResponse struct {
	Approved bool   `json:"aprobado"`
	Reason   string `json:"razon"`
}

// ApproveOrderRequest body para PUT /api/pedidos/:id/aprobar.
type ApproveOrderRequest struct {
	UserID int64 `json:"usuario_id"`
}

// RejectOrderRequest body para PUT /api/pedidos/:id/rechazar.
type RejectOrderRequest struct {
	Reason string `json:"razon_rechazo"`
}

// OrderResponse salida de un pedido.
type OrderResponse struct {
	ID               int64           `json:"id"`
	ContractID       int64           `json:"contrato_id"`
	Quantity         int             `json:"cantidad"`
	Status           string          `json:"estado"`
	InventoryStatus  string          `json:"estado_inventario"`
	UsagePctSnapshot decimal.Decimal `json:"porcentaje_uso_momento_pedido"`
	InactiveSnapshot int             `json:"tarjetas_inactivas_momento_pedido"`
	RequestedAt      time.Time       `json:"fecha_solicitud"`
	ApprovedAt       *time.Time      `json:"fecha_aprobacion,omitempty"`
	ApprovedBy       *int64          `json:"aprobado_por,omitempty"`
	RejectionReason  *string         `json:"razon_rechazo,omitempty"`
	CustomerName     string          `json:"cliente_nombre,omitempty"`
	ProductName      string          `json:"producto_nombre,omitempty"`
}

// StockMovement stock antes y después de una reserva.
type StockMovement struct {
	Before int `json:"anterior"`
	After  int `json:"nuevo"`
}

// QuotaMovement cupo del contrato antes y después de una reserva.
type QuotaMovement struct {
	Max          int `json:"maximas"`
	IssuedBefore int `json:"emitidas_anterior"`
	IssuedAfter  int `json:"emitidas_nuevo"`
	Remaining    int `json:"disponibles"`
}

// InventorySnapshot estado de inventario tras la reserva.
type InventorySnapshot struct {
	AvailableBefore int `json:"disponible_anterior"`
	AvailableAfter  int `json:"disponible_nuevo"`
	InTransit       int `json:"en_transito"`
}

// ReservationResponse resultado de crear o aprobar un pedido con reserva.
type ReservationResponse struct {
	Message     string            `json:"mensaje"`
	Order       OrderResponse     `json:"pedido"`
	ProductName string            `json:"producto"`
	Stock       StockMovement     `json:"stock"`
	Quota       QuotaMovement     `json:"contrato"`
	Inventory   InventorySnapshot `json:"inventario"`
}
