package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/jhoicas/smartstock-api/internal/application/dto"
	"github.com/jhoicas/smartstock-api/internal/domain"
	"github.com/jhoicas/smartstock-api/internal/domain/entity"
	"github.com/jhoicas/smartstock-api/internal/domain/repository"
)

// TicketUseCase tickets de soporte y sus respuestas.
type TicketUseCase struct {
	repo         repository.TicketRepository
	customerRepo repository.CustomerRepository
}

// NewTicketUseCase construye el caso de uso.
func NewTicketUseCase(repo repository.TicketRepository, customerRepo repository.CustomerRepository) *TicketUseCase {
	return &TicketUseCase{repo: repo, customerRepo: customerRepo}
}

// Create abre un ticket para un cliente existente.
func (uc *TicketUseCase) Create(ctx context.Context, in dto.CreateTicketRequest) (*dto.TicketResponse, error) {
	var errs []string
	if in.CustomerID <= 0 {
		errs = append(errs, "cliente_id es requerido")
	}
	if strings.TrimSpace(in.Subject) == "" {
		errs = append(errs, "asunto es requerido")
	}
	if strings.TrimSpace(in.Message) == "" {
		errs = append(errs, "mensaje es requerido")
	}
	if len(errs) > 0 {
		return nil, domain.NewValidationError(errs...)
	}
	customer, err := uc.customerRepo.GetByID(ctx, in.CustomerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, fmt.Errorf("cliente %d: %w", in.CustomerID, domain.ErrNotFound)
	}

	t := &entity.Ticket{
		CustomerID: in.CustomerID,
		Type:       strings.TrimSpace(in.Type),
		Subject:    strings.TrimSpace(in.Subject),
		Message:    strings.TrimSpace(in.Message),
		Status:     entity.TicketStatusOpen,
		CreatedBy:  in.CreatedBy,
	}
	if err := uc.repo.Create(ctx, t); err != nil {
		return nil, err
	}
	resp := toTicketResponse(t)
	return &resp, nil
}

// ListByCustomer tickets de un cliente, más recientes primero.
func (uc *TicketUseCase) ListByCustomer(ctx context.Context, customerID int64) ([]dto.TicketResponse, error) {
	list, err := uc.repo.ListByCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.TicketResponse, 0, len(list))
	for _, t := range list {
		out = append(out, toTicketResponse(t))
	}
	return out, nil
}

// Detail ticket con sus respuestas en orden cronológico.
func (uc *TicketUseCase) Detail(ctx context.Context, id int64) (*dto.TicketDetailResponse, error) {
	t, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, fmt.Errorf("ticket %d: %w", id, domain.ErrNotFound)
	}
	replies, err := uc.repo.ListReplies(ctx, id)
	if err != nil {
		return nil, err
	}
	out := &dto.TicketDetailResponse{
		Ticket:  toTicketResponse(t),
		Replies: make([]dto.TicketReplyResponse, 0, len(replies)),
	}
	for _, r := range replies {
		out.Replies = append(out.Replies, toReplyResponse(r))
	}
	out.Ticket.ReplyCount = len(replies)
	return out, nil
}

// AddReply agrega una respuesta a un ticket abierto.
func (uc *TicketUseCase) AddReply(ctx context.Context, in dto.AddReplyRequest) (*dto.TicketReplyResponse, error) {
	if in.TicketID <= 0 || strings.TrimSpace(in.Message) == "" {
		return nil, domain.NewValidationError("ticket_id y mensaje son requeridos")
	}
	t, err := uc.repo.GetByID(ctx, in.TicketID)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, fmt.Errorf("ticket %d: %w", in.TicketID, domain.ErrNotFound)
	}
	if t.Status == entity.TicketStatusClosed {
		return nil, &domain.StateError{Entity: "ticket", Current: t.Status, Expected: []string{entity.TicketStatusOpen}}
	}
	r := &entity.TicketReply{
		TicketID: in.TicketID,
		UserID:   in.UserID,
		Message:  strings.TrimSpace(in.Message),
		Internal: in.Internal,
	}
	if err := uc.repo.AddReply(ctx, r); err != nil {
		return nil, err
	}
	resp := toReplyResponse(r)
	return &resp, nil
}

// Close cierra un ticket abierto.
func (uc *TicketUseCase) Close(ctx context.Context, id int64) error {
	t, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if t == nil {
		return fmt.Errorf("ticket %d: %w", id, domain.ErrNotFound)
	}
	if t.Status == entity.TicketStatusClosed {
		return &domain.StateError{Entity: "ticket", Current: t.Status, Expected: []string{entity.TicketStatusOpen}}
	}
	return uc.repo.Close(ctx, id)
}

func toTicketResponse(t *entity.Ticket) dto.TicketResponse {
	return dto.TicketResponse{
		ID:         t.ID,
		CustomerID: t.CustomerID,
		Type:       t.Type,
		Subject:    t.Subject,
		Message:    t.Message,
		Status:     t.Status,
		CreatedBy:  t.CreatedBy,
		CreatedAt:  t.CreatedAt,
		UpdatedAt:  t.UpdatedAt,
		ResolvedAt: t.ResolvedAt,
		ReplyCount: t.ReplyCount,
	}
}

func toReplyResponse(r *entity.TicketReply) dto.TicketReplyResponse {
	return dto.TicketReplyResponse{
		ID:        r.ID,
		TicketID:  r.TicketID,
		UserID:    r.UserID,
		Message:   r.Message,
		Internal:  r.Internal,
		CreatedAt: r.CreatedAt,
	}
}
