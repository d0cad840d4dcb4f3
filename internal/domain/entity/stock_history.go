package entity

import "time"

// Razones de movimiento registradas en historial_stock.
const (
	StockReasonOrder             = "pedido"
	StockReasonApproval          = "aprobacion_pedido"
	StockReasonDeliveryConfirmed = "entrega_confirmada"
	StockReasonManualAdjustment  = "ajuste_manual"
)

// StockHistoryEntry registro de auditoría de un cambio de stock (append-only).
type StockHistoryEntry struct {
	ID          int64
	ProductID   int64
	ProductName string
	Before      int
	After       int
	Reason      string
	UserID      *int64
	CreatedAt   time.Time
}
