// Package ordering implementa el flujo de pedidos: reserva transaccional de stock y cupo,
// solicitudes pendientes de aprobación, aprobación y rechazo.
package ordering

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/jhoicas/smartstock-api/internal/domain"
	"github.com/jhoicas/smartstock-api/internal/domain/entity"
	"github.com/jhoicas/smartstock-api/internal/domain/inventory"
	"github.com/jhoicas/smartstock-api/internal/domain/repository"
	"github.com/jhoicas/smartstock-api/pkg/metrics"
	"github.com/jhoicas/smartstock-api/pkg/tracing"
)

// UseCase casos de uso de pedidos.
type UseCase struct {
	txRunner     TxRunner
	orderRepo    repository.OrderRepository
	contractRepo repository.ContractRepository
	now          func() time.Time
}

// NewUseCase construye el caso de uso. orderRepo y contractRepo se usan para lecturas fuera de tx.
func NewUseCase(txRunner TxRunner, orderRepo repository.OrderRepository, contractRepo repository.ContractRepository) *UseCase {
	return &UseCase{
		txRunner:     txRunner,
		orderRepo:    orderRepo,
		contractRepo: contractRepo,
		now:          time.Now,
	}
}

// WithClock reemplaza el reloj (tests).
func (uc *UseCase) WithClock(now func() time.Time) *UseCase {
	uc.now = now
	return uc
}

// Request crea un pedido en estado pendiente, sin reservar stock; requiere aprobación manual.
func (uc *UseCase) Request(ctx context.Context, in ReserveInput) (*entity.Order, error) {
	if in.Quantity <= 0 {
		return nil, domain.NewValidationError("cantidad debe ser un entero positivo")
	}
	contractID := in.ContractID
	if contractID <= 0 {
		if in.CustomerID <= 0 || in.ProductID <= 0 {
			return nil, domain.NewValidationError("contrato_id o cliente_id + producto_id son requeridos")
		}
		id, err := uc.contractRepo.ResolveID(ctx, in.CustomerID, in.ProductID)
		if err != nil {
			return nil, err
		}
		contractID = id
	}
	contract, err := uc.contractRepo.GetByID(ctx, contractID)
	if err != nil {
		return nil, err
	}
	if contract == nil {
		return nil, fmt.Errorf("contrato %d: %w", contractID, domain.ErrNotFound)
	}
	if !contract.IsActive() {
		return nil, &domain.StateError{Entity: "contrato", Current: contract.Status, Expected: []string{entity.ContractStatusActive}}
	}

	order := &entity.Order{
		ContractID:      contractID,
		Quantity:        in.Quantity,
		Status:          entity.OrderStatusPending,
		InventoryStatus: entity.InventoryStatusNone,
	}
	if err := uc.orderRepo.Create(ctx, order); err != nil {
		return nil, err
	}
	metrics.RecordOrder("solicitar", "ok")
	return order, nil
}

// Approve aprueba un pedido pendiente ejecutando la misma reserva bloqueante que Reserve.
// Solo es válido desde pendiente; aprobar dos veces devuelve ErrInvalidState.
func (uc *UseCase) Approve(ctx context.Context, orderID, approverID int64) (res *Reservation, err error) {
	ctx, span := tracer.Start(ctx, "ordering.Approve")
	defer func() {
		tracing.RecordError(span, err)
		span.End()
		metrics.RecordOrder("aprobar", outcome(err))
	}()
	span.SetAttributes(attribute.Int64("pedido_id", orderID))

	var approver *int64
	if approverID > 0 {
		approver = &approverID
	}

	err = uc.txRunner.Run(ctx, func(
		contractRepo repository.ContractRepository,
		productRepo repository.ProductRepository,
		orderRepo repository.OrderRepository,
		stateRepo repository.InventoryStateRepository,
		historyRepo repository.StockHistoryRepository,
	) error {
		order, err := orderRepo.GetForUpdate(ctx, orderID)
		if err != nil {
			return err
		}
		if order == nil {
			return fmt.Errorf("pedido %d: %w", orderID, domain.ErrNotFound)
		}
		if order.Status != entity.OrderStatusPending {
			return &domain.StateError{Entity: "pedido", Current: order.Status, Expected: []string{entity.OrderStatusPending}}
		}

		now := uc.now()
		repos := txRepos{contractRepo, productRepo, orderRepo, stateRepo, historyRepo}
		r, contract, err := uc.reserveStock(ctx, repos, order.ContractID, order.Quantity, now, entity.StockReasonApproval, approver)
		if err != nil {
			return err
		}

		order.Status = entity.OrderStatusApproved
		order.InventoryStatus = entity.InventoryStatusReserved
		order.ApprovedAt = &now
		order.ApprovedBy = approver
		order.UsagePctSnapshot = inventory.UtilizationPct(contract.Active, contract.Issued)
		order.InactiveSnapshot = contract.Inactive
		if err := orderRepo.UpdateStatus(ctx, order); err != nil {
			return err
		}
		r.Order = order
		res = r
		return nil
	})
	if err != nil {
		return nil, err
	}
	metrics.RecordReserved(res.Order.Quantity)
	return res, nil
}

// Reject rechaza un pedido pendiente guardando la razón. Sin efecto sobre stock.
// Rechazar un pedido que ya no está pendiente (incluido uno ya rechazado) devuelve ErrInvalidState.
func (uc *UseCase) Reject(ctx context.Context, orderID int64, reason string) (order *entity.Order, err error) {
	defer func() { metrics.RecordOrder("rechazar", outcome(err)) }()

	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, domain.NewValidationError("razon_rechazo es requerida")
	}
	err = uc.txRunner.Run(ctx, func(
		_ repository.ContractRepository,
		_ repository.ProductRepository,
		orderRepo repository.OrderRepository,
		_ repository.InventoryStateRepository,
		_ repository.StockHistoryRepository,
	) error {
		o, err := orderRepo.GetForUpdate(ctx, orderID)
		if err != nil {
			return err
		}
		if o == nil {
			return fmt.Errorf("pedido %d: %w", orderID, domain.ErrNotFound)
		}
		if o.Status != entity.OrderStatusPending {
			return &domain.StateError{Entity: "pedido", Current: o.Status, Expected: []string{entity.OrderStatusPending}}
		}
		o.Status = entity.OrderStatusRejected
		o.RejectionReason = &reason
		if err := orderRepo.UpdateStatus(ctx, o); err != nil {
			return err
		}
		order = o
		return nil
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

// Validate consulta validar_pedido sin efectos (simulación previa a crear el pedido).
func (uc *UseCase) Validate(ctx context.Context, contractID int64, quantity int) (*entity.OrderVerdict, error) {
	if contractID <= 0 || quantity <= 0 {
		return nil, domain.NewValidationError("contratoId y cantidad (entero positivo) son requeridos")
	}
	contract, err := uc.contractRepo.GetByID(ctx, contractID)
	if err != nil {
		return nil, err
	}
	if contract == nil {
		return nil, fmt.Errorf("contrato %d: %w", contractID, domain.ErrNotFound)
	}
	return uc.contractRepo.ValidateOrder(ctx, contractID, quantity)
}

// List lista pedidos con nombre de cliente y producto.
func (uc *UseCase) List(ctx context.Context) ([]*entity.Order, error) {
	return uc.orderRepo.List(ctx)
}

// GetByID obtiene un pedido.
func (uc *UseCase) GetByID(ctx context.Context, id int64) (*entity.Order, error) {
	o, err := uc.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, fmt.Errorf("pedido %d: %w", id, domain.ErrNotFound)
	}
	return o, nil
}
