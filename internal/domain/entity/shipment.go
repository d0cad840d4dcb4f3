package entity

import "time"

// Estados de envío.
const (
	ShipmentStatusPending   = "pendiente"
	ShipmentStatusInTransit = "en_transito"
	ShipmentStatusDelivered = "entregado"
)

// Shipment envío físico de un pedido.
type Shipment struct {
	ID           int64
	OrderID      int64
	CourierID    *int64
	TrackingCode string
	Status       string
	Latitude     *float64
	Longitude    *float64
	DepartedAt   time.Time
	DeliveredAt  *time.Time
	EvidenceURL  *string

	// Datos de lectura (JOIN).
	Quantity     int
	CustomerID   int64
	CustomerName string
	ProductName  string
	CourierName  string
}
