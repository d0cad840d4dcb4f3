package repository

import (
	"context"

	"github.com/jhoicas/smartstock-api/internal/domain/entity"
)

// TicketRepository define el puerto para tickets de soporte y sus respuestas.
type TicketRepository interface {
	Create(ctx context.Context, t *entity.Ticket) error
	GetByID(ctx context.Context, id int64) (*entity.Ticket, error)
	ListByCustomer(ctx context.Context, customerID int64) ([]*entity.Ticket, error)
	ListReplies(ctx context.Context, ticketID int64) ([]*entity.TicketReply, error)
	// AddReply inserta la respuesta y actualiza la fecha del ticket.
	AddReply(ctx context.Context, r *entity.TicketReply) error
	Close(ctx context.Context, id int64) error
}
