package entity

import "time"

// Tipos y prioridades de alerta.
const (
	AlertTypeDeadStock = "stock_muerto"
	AlertTypeLowStock  = "stock_bajo"

	AlertPriorityCritical = "critica"
	AlertPriorityHigh     = "alta"
	AlertPriorityMedium   = "media"

	AlertEntityContract = "contrato"
	AlertEntityProduct  = "producto"
)

// Alert alerta operativa sobre un contrato o producto.
type Alert struct {
	ID         int64
	Type       string
	Priority   string
	EntityType string
	EntityID   int64
	Message    string
	Resolved   bool
	CreatedAt  time.Time
	ResolvedAt *time.Time
}
