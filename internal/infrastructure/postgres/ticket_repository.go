package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/smartstock-api/internal/domain"
	"github.com/jhoicas/smartstock-api/internal/domain/entity"
	"github.com/jhoicas/smartstock-api/internal/domain/repository"
)

var _ repository.TicketRepository = (*TicketRepo)(nil)

// TicketRepo tickets y respuestas_tickets.
type TicketRepo struct {
	q Querier
}

// NewTicketRepository construye el adaptador. Pasar pool o tx (Querier).
func NewTicketRepository(q Querier) *TicketRepo {
	return &TicketRepo{q: q}
}

const ticketSelect = `
	SELECT t.id, t.cliente_id, COALESCE(t.tipo, ''), t.asunto, t.mensaje, t.estado, t.creado_por,
	       t.fecha_creacion, t.fecha_actualizacion, t.fecha_resolucion,
	       (SELECT COUNT(*) FROM respuestas_tickets rt WHERE rt.ticket_id = t.id)
	FROM tickets t`

func scanTicket(row pgx.Row) (*entity.Ticket, error) {
	var t entity.Ticket
	err := row.Scan(&t.ID, &t.CustomerID, &t.Type, &t.Subject, &t.Message, &t.Status, &t.CreatedBy,
		&t.CreatedAt, &t.UpdatedAt, &t.ResolvedAt, &t.ReplyCount)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// Create inserta el ticket y completa ID y fechas.
func (r *TicketRepo) Create(ctx context.Context, t *entity.Ticket) error {
	err := r.q.QueryRow(ctx, `
		INSERT INTO tickets (cliente_id, tipo, asunto, mensaje, creado_por, estado)
		VALUES ($1, NULLIF($2, ''), $3, $4, $5, $6)
		RETURNING id, fecha_creacion, fecha_actualizacion`,
		t.CustomerID, t.Type, t.Subject, t.Message, t.CreatedBy, t.Status,
	).Scan(&t.ID, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return wrapWrite("insert ticket", err)
	}
	return nil
}

func (r *TicketRepo) GetByID(ctx context.Context, id int64) (*entity.Ticket, error) {
	t, err := scanTicket(r.q.QueryRow(ctx, ticketSelect+` WHERE t.id = $1`, id))
	if err != nil {
		if noRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get ticket: %w", err)
	}
	return t, nil
}

// ListByCustomer tickets del cliente, más recientes primero.
func (r *TicketRepo) ListByCustomer(ctx context.Context, customerID int64) ([]*entity.Ticket, error) {
	rows, err := r.q.Query(ctx, ticketSelect+` WHERE t.cliente_id = $1 ORDER BY t.fecha_creacion DESC`, customerID)
	if err != nil {
		return nil, fmt.Errorf("list tickets: %w", err)
	}
	return collect(rows, "tickets", func(rows pgx.Rows) (*entity.Ticket, error) { return scanTicket(rows) })
}

// ListReplies respuestas en orden cronológico.
func (r *TicketRepo) ListReplies(ctx context.Context, ticketID int64) ([]*entity.TicketReply, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, ticket_id, usuario_id, mensaje, es_interno, fecha_creacion
		FROM respuestas_tickets WHERE ticket_id = $1
		ORDER BY fecha_creacion ASC, id ASC`, ticketID)
	if err != nil {
		return nil, fmt.Errorf("list respuestas: %w", err)
	}
	return collect(rows, "respuestas", func(rows pgx.Rows) (*entity.TicketReply, error) {
		var rep entity.TicketReply
		err := rows.Scan(&rep.ID, &rep.TicketID, &rep.UserID, &rep.Message, &rep.Internal, &rep.CreatedAt)
		return &rep, err
	})
}

// AddReply inserta la respuesta y toca fecha_actualizacion del ticket en la misma sentencia.
func (r *TicketRepo) AddReply(ctx context.Context, rep *entity.TicketReply) error {
	query := `
		WITH ins AS (
			INSERT INTO respuestas_tickets (ticket_id, usuario_id, mensaje, es_interno)
			VALUES ($1, $2, $3, $4)
			RETURNING id, fecha_creacion
		), upd AS (
			UPDATE tickets SET fecha_actualizacion = CURRENT_TIMESTAMP WHERE id = $1
		)
		SELECT id, fecha_creacion FROM ins`
	if err := r.q.QueryRow(ctx, query, rep.TicketID, rep.UserID, rep.Message, rep.Internal).Scan(&rep.ID, &rep.CreatedAt); err != nil {
		return wrapWrite("insert respuesta", err)
	}
	return nil
}

// Close marca el ticket como cerrado con fecha de resolución.
func (r *TicketRepo) Close(ctx context.Context, id int64) error {
	cmd, err := r.q.Exec(ctx, `
		UPDATE tickets
		SET estado = $2, fecha_resolucion = CURRENT_TIMESTAMP, fecha_actualizacion = CURRENT_TIMESTAMP
		WHERE id = $1`, id, entity.TicketStatusClosed)
	if err != nil {
		return fmt.Errorf("cerrar ticket: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("ticket %d: %w", id, domain.ErrNotFound)
	}
	return nil
}
