package entity

import "time"

// InventoryState agregado por producto. Available + InTransit + Received = Total.
type InventoryState struct {
	ProductID   int64
	ProductName string
	Available   int
	InTransit   int
	Received    int
	Total       int
	UpdatedAt   time.Time
}

// Reserve pasa qty de disponible a en tránsito.
func (s *InventoryState) Reserve(qty int, now time.Time) {
	s.Available -= qty
	s.InTransit += qty
	s.UpdatedAt = now
}

// ConfirmDelivery pasa qty de en tránsito a recibido por el cliente. Total no cambia.
func (s *InventoryState) ConfirmDelivery(qty int, now time.Time) {
	s.InTransit -= qty
	s.Received += qty
	s.UpdatedAt = now
}

// InventorySummary totales de todos los productos.
type InventorySummary struct {
	Products  int
	Available int
	InTransit int
	Received  int
	Total     int
}
