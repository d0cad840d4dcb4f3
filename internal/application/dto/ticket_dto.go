package dto

import "time"

// CreateTicketRequest body para POST /api/tickets.
type CreateTicketRequest struct {
	CustomerID int64  `json:"cliente_id"`
	Type       string `json:"tipo"`
	Subject    string `json:"asunto"`
	Message    string `json:"mensaje"`
	CreatedBy  *int64 `json:"creado_por"`
}

// AddReplyRequest body para POST /api/tickets/respuesta.
type AddReplyRequest struct {
	TicketID int64  `json:"ticket_id"`
	UserID   *int64 `json:"usuario_id"`
	Message  string `json:"mensaje"`
	Internal bool   `json:"es_interno"`
}

// TicketResponse salida de un ticket.
type TicketResponse struct {
	ID         int64      `json:"id"`
	CustomerID int64      `json:"cliente_id"`
	Type       string     `json:"tipo"`
	Subject    string     `json:"asunto"`
	Message    string     `json:"mensaje"`
	Status     string     `json:"estado"`
	CreatedBy  *int64     `json:"creado_por,omitempty"`
	CreatedAt  time.Time  `json:"fecha_creacion"`
	UpdatedAt  time.Time  `json:"fecha_actualizacion"`
	ResolvedAt *time.Time `json:"fecha_resolucion,omitempty"`
	ReplyCount int        `json:"num_respuestas"`
}

// TicketReplyResponse salida de una respuesta.
type TicketReplyResponse struct {
	ID        int64     `json:"id"`
	TicketID  int64     `json:"ticket_id"`
	UserID    *int64    `json:"usuario_id,omitempty"`
	Message   string    `json:"mensaje"`
	Internal  bool      `json:"es_interno"`
	CreatedAt time.Time `json:"fecha_creacion"`
}

// TicketDetailResponse ticket con su hilo de respuestas.
type TicketDetailResponse struct {
	Ticket  TicketResponse        `json:"ticket"`
	Replies []TicketReplyResponse `json:"respuestas"`
}
