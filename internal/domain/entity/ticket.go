package entity

import "time"

// Estados de ticket.
const (
	TicketStatusOpen   = "abierto"
	TicketStatusClosed = "cerrado"
)

// Ticket hilo de soporte de un cliente.
type Ticket struct {
	ID         int64
	CustomerID int64
	Type       string
	Subject    string
	Message    string
	Status     string
	CreatedBy  *int64
	CreatedAt  time.Time
	UpdatedAt  time.Time
	ResolvedAt *time.Time
	ReplyCount int
}

// TicketReply respuesta dentro de un ticket.
type TicketReply struct {
	ID        int64
	TicketID  int64
	UserID    *int64
	Message   string
	Internal  bool
	CreatedAt time.Time
}
