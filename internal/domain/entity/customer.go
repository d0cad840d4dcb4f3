package entity

import "time"

// Estados de cliente. Los clientes nunca se eliminan: se marcan inactivos.
const (
	CustomerStatusActive   = "activo"
	CustomerStatusInactive = "inactivo"
)

// Customer representa un cliente (persona moral) que contrata emisión de tarjetas.
type Customer struct {
	ID           int64
	Name         string
	RFC          string // RFC persona moral, único
	Email        string
	Phone        string
	Address      string
	PasswordHash string
	Status       string
	CreatedAt    time.Time
}

// IsActive indica si el cliente puede operar.
func (c *Customer) IsActive() bool { return c.Status == CustomerStatusActive }
