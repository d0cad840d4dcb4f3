package ordering

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/jhoicas/smartstock-api/internal/domain"
	"github.com/jhoicas/smartstock-api/internal/domain/entity"
	"github.com/jhoicas/smartstock-api/internal/domain/inventory"
	"github.com/jhoicas/smartstock-api/internal/domain/repository"
	"github.com/jhoicas/smartstock-api/pkg/metrics"
	"github.com/jhoicas/smartstock-api/pkg/tracing"
)

var tracer = tracing.Tracer("ordering")

// ReserveInput entrada para crear un pedido con reserva inmediata.
// Se identifica el contrato por ContractID o por el par CustomerID + ProductID.
type ReserveInput struct {
	ContractID int64
	CustomerID int64
	ProductID  int64
	Quantity   int
}

// Reservation resultado completo de una reserva (suficiente para confirmar sin otra lectura).
type Reservation struct {
	Order *entity.Order

	ProductName string
	StockBefore int
	StockAfter  int

	MaxCards     int
	IssuedBefore int
	IssuedAfter  int

	AvailableBefore int
	AvailableAfter  int
	InTransit       int
}

// txRepos repositorios atados a una misma transacción.
type txRepos struct {
	contracts repository.ContractRepository
	products  repository.ProductRepository
	orders    repository.OrderRepository
	states    repository.InventoryStateRepository
	history   repository.StockHistoryRepository
}

// Reserve valida y reserva stock y cupo en una sola transacción, creando el pedido en pendiente_envio.
// Orden de validación: cantidad, contrato existente, contrato vigente, validar_pedido, stock, cupo.
func (uc *UseCase) Reserve(ctx context.Context, in ReserveInput) (res *Reservation, err error) {
	ctx, span := tracer.Start(ctx, "ordering.Reserve")
	defer func() {
		tracing.RecordError(span, err)
		span.End()
		metrics.RecordOrder("reservar", outcome(err))
	}()

	if in.Quantity <= 0 {
		return nil, domain.NewValidationError("cantidad debe ser un entero positivo")
	}
	if in.ContractID <= 0 && (in.CustomerID <= 0 || in.ProductID <= 0) {
		return nil, domain.NewValidationError("contrato_id o cliente_id + producto_id son requeridos")
	}

	err = uc.txRunner.Run(ctx, func(
		contractRepo repository.ContractRepository,
		productRepo repository.ProductRepository,
		orderRepo repository.OrderRepository,
		stateRepo repository.InventoryStateRepository,
		historyRepo repository.StockHistoryRepository,
	) error {
		repos := txRepos{contractRepo, productRepo, orderRepo, stateRepo, historyRepo}

		contractID := in.ContractID
		if contractID <= 0 {
			id, err := contractRepo.ResolveID(ctx, in.CustomerID, in.ProductID)
			if err != nil {
				return err
			}
			if id == 0 {
				return fmt.Errorf("contrato del cliente %d para el producto %d: %w", in.CustomerID, in.ProductID, domain.ErrNotFound)
			}
			contractID = id
		}
		span.SetAttributes(attribute.Int64("contrato_id", contractID), attribute.Int("cantidad", in.Quantity))

		now := uc.now()
		r, contract, err := uc.reserveStock(ctx, repos, contractID, in.Quantity, now, entity.StockReasonOrder, nil)
		if err != nil {
			return err
		}

		order := &entity.Order{
			ContractID:       contractID,
			Quantity:         in.Quantity,
			Status:           entity.OrderStatusPendingShipment,
			InventoryStatus:  entity.InventoryStatusReserved,
			UsagePctSnapshot: inventory.UtilizationPct(contract.Active, contract.Issued),
			InactiveSnapshot: contract.Inactive,
			ApprovedAt:       &now,
		}
		if err := orderRepo.Create(ctx, order); err != nil {
			return err
		}
		r.Order = order
		res = r
		return nil
	})
	if err != nil {
		return nil, err
	}
	metrics.RecordReserved(in.Quantity)
	return res, nil
}

// reserveStock bloquea contrato y producto, ejecuta las validaciones 2..6 y aplica los efectos
// sobre contrato, producto, estado de inventario e historial. Devuelve el contrato tal como
// estaba antes de la reserva (para los snapshots del pedido).
func (uc *UseCase) reserveStock(
	ctx context.Context,
	r txRepos,
	contractID int64,
	qty int,
	now time.Time,
	reason string,
	actor *int64,
) (*Reservation, *entity.Contract, error) {
	// Bloquea la fila del contrato y luego la del producto (siempre en ese orden)
	contract, err := r.contracts.GetForUpdate(ctx, contractID)
	if err != nil {
		return nil, nil, err
	}
	if contract == nil {
		return nil, nil, fmt.Errorf("contrato %d: %w", contractID, domain.ErrNotFound)
	}
	product, err := r.products.GetForUpdate(ctx, contract.ProductID)
	if err != nil {
		return nil, nil, err
	}
	if product == nil {
		return nil, nil, fmt.Errorf("producto %d del contrato %d: %w", contract.ProductID, contractID, domain.ErrNotFound)
	}

	if !contract.IsActive() {
		return nil, nil, &domain.StateError{Entity: "contrato", Current: contract.Status, Expected: []string{entity.ContractStatusActive}}
	}
	verdict, err := r.contracts.ValidateOrder(ctx, contractID, qty)
	if err != nil {
		return nil, nil, err
	}
	if !verdict.Approved {
		return nil, nil, &domain.RuleViolationError{Reason: verdict.Reason}
	}
	if err := inventory.CheckStock(product.StockCurrent, qty); err != nil {
		return nil, nil, err
	}
	if err := inventory.CheckQuota(contract, qty); err != nil {
		return nil, nil, err
	}

	if err := r.contracts.AddIssued(ctx, contractID, qty); err != nil {
		return nil, nil, err
	}
	stockAfter := product.StockCurrent - qty
	if err := r.products.UpdateStock(ctx, product.ID, stockAfter, now); err != nil {
		return nil, nil, err
	}

	state, err := r.states.GetForUpdate(ctx, product.ID)
	if err != nil {
		return nil, nil, err
	}
	if state == nil {
		state = &entity.InventoryState{
			ProductID: product.ID,
			Available: product.StockCurrent,
			Total:     product.StockCurrent,
		}
	}
	availableBefore := state.Available
	state.Reserve(qty, now)
	if err := r.states.Save(ctx, state); err != nil {
		return nil, nil, err
	}

	if err := r.history.Append(ctx, &entity.StockHistoryEntry{
		ProductID: product.ID,
		Before:    product.StockCurrent,
		After:     stockAfter,
		Reason:    reason,
		UserID:    actor,
		CreatedAt: now,
	}); err != nil {
		return nil, nil, err
	}

	return &Reservation{
		ProductName:     product.Name,
		StockBefore:     product.StockCurrent,
		StockAfter:      stockAfter,
		MaxCards:        contract.MaxCards,
		IssuedBefore:    contract.Issued,
		IssuedAfter:     contract.Issued + qty,
		AvailableBefore: availableBefore,
		AvailableAfter:  state.Available,
		InTransit:       state.InTransit,
	}, contract, nil
}

// outcome etiqueta de métrica para el resultado de una operación.
func outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, domain.ErrInvalidInput):
		return "invalid_input"
	case errors.Is(err, domain.ErrNotFound):
		return "not_found"
	case errors.Is(err, domain.ErrInvalidState):
		return "invalid_state"
	case errors.Is(err, domain.ErrBusinessRule):
		return "rule_violation"
	case errors.Is(err, domain.ErrInsufficientStock):
		return "insufficient_stock"
	case errors.Is(err, domain.ErrQuotaExceeded):
		return "quota_exceeded"
	default:
		return "error"
	}
}
