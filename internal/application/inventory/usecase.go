// Package inventory expone el estado de inventario por producto, el historial de movimientos
// y el ajuste manual de stock.
package inventory

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/smartstock-api/internal/application/dto"
	"github.com/jhoicas/smartstock-api/internal/domain"
	"github.com/jhoicas/smartstock-api/internal/domain/entity"
	"github.com/jhoicas/smartstock-api/internal/domain/repository"
)

// MovementsLimit cantidad de movimientos recientes que devuelve Movements.
const MovementsLimit = 50

// UseCase casos de uso de inventario.
type UseCase struct {
	txRunner    TxRunner
	productRepo repository.ProductRepository
	stateRepo   repository.InventoryStateRepository
	historyRepo repository.StockHistoryRepository
	now         func() time.Time
}

// NewUseCase construye el caso de uso.
func NewUseCase(
	txRunner TxRunner,
	productRepo repository.ProductRepository,
	stateRepo repository.InventoryStateRepository,
	historyRepo repository.StockHistoryRepository,
) *UseCase {
	return &UseCase{
		txRunner:    txRunner,
		productRepo: productRepo,
		stateRepo:   stateRepo,
		historyRepo: historyRepo,
		now:         time.Now,
	}
}

// WithClock reemplaza el reloj (tests).
func (uc *UseCase) WithClock(now func() time.Time) *UseCase {
	uc.now = now
	return uc
}

// AdjustInput ajuste manual: Delta se suma al stock actual (negativo para bajas).
type AdjustInput struct {
	ProductID int64
	Delta     int
	Reason    string
	UserID    *int64
}

// AdjustStock aplica un ajuste manual bajo bloqueo de fila. El estado de inventario mueve
// disponible y total en la misma cantidad; se rechaza cualquier resultado negativo.
func (uc *UseCase) AdjustStock(ctx context.Context, in AdjustInput) (*dto.AdjustStockResponse, error) {
	if in.ProductID <= 0 {
		return nil, domain.NewValidationError("producto_id es requerido")
	}
	if in.Delta == 0 {
		return nil, domain.NewValidationError("cantidad debe ser distinta de cero")
	}
	reason := strings.TrimSpace(in.Reason)
	if reason == "" {
		reason = entity.StockReasonManualAdjustment
	}

	var out *dto.AdjustStockResponse
	err := uc.txRunner.RunStock(ctx, func(
		productRepo repository.ProductRepository,
		stateRepo repository.InventoryStateRepository,
		historyRepo repository.StockHistoryRepository,
	) error {
		// Bloquea la fila del producto (SELECT FOR UPDATE)
		product, err := productRepo.GetForUpdate(ctx, in.ProductID)
		if err != nil {
			return err
		}
		if product == nil {
			return fmt.Errorf("producto %d: %w", in.ProductID, domain.ErrNotFound)
		}
		after := product.StockCurrent + in.Delta
		if after < 0 {
			return &domain.StockError{Available: product.StockCurrent, Requested: -in.Delta}
		}

		state, err := stateRepo.GetForUpdate(ctx, product.ID)
		if err != nil {
			return err
		}
		if state == nil {
			state = &entity.InventoryState{ProductID: product.ID, Available: product.StockCurrent, Total: product.StockCurrent}
		}
		if state.Available+in.Delta < 0 {
			return &domain.StockError{Available: state.Available, Requested: -in.Delta}
		}

		now := uc.now()
		if err := productRepo.UpdateStock(ctx, product.ID, after, now); err != nil {
			return err
		}
		state.Available += in.Delta
		state.Total += in.Delta
		state.UpdatedAt = now
		if err := stateRepo.Save(ctx, state); err != nil {
			return err
		}
		if err := historyRepo.Append(ctx, &entity.StockHistoryEntry{
			ProductID: product.ID,
			Before:    product.StockCurrent,
			After:     after,
			Reason:    reason,
			UserID:    in.UserID,
			CreatedAt: now,
		}); err != nil {
			return err
		}
		out = &dto.AdjustStockResponse{
			Message:     "Stock actualizado correctamente",
			StockBefore: product.StockCurrent,
			StockAfter:  after,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// States estados de inventario de todos los productos.
func (uc *UseCase) States(ctx context.Context) ([]dto.InventoryStateResponse, error) {
	list, err := uc.stateRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.InventoryStateResponse, 0, len(list))
	for _, s := range list {
		out = append(out, ToStateResponse(s))
	}
	return out, nil
}

// State estado de inventario de un producto.
func (uc *UseCase) State(ctx context.Context, productID int64) (*dto.InventoryStateResponse, error) {
	s, err := uc.stateRepo.GetByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, fmt.Errorf("estado de inventario del producto %d: %w", productID, domain.ErrNotFound)
	}
	resp := ToStateResponse(s)
	return &resp, nil
}

// Summary totales de inventario.
func (uc *UseCase) Summary(ctx context.Context) (*dto.InventorySummaryResponse, error) {
	s, err := uc.stateRepo.Summary(ctx)
	if err != nil {
		return nil, err
	}
	return &dto.InventorySummaryResponse{
		Available: s.Available,
		InTransit: s.InTransit,
		Received:  s.Received,
		Total:     s.Total,
		Products:  s.Products,
	}, nil
}

// Movements últimos movimientos del historial de stock, del más reciente al más antiguo.
func (uc *UseCase) Movements(ctx context.Context) ([]dto.StockMovementResponse, error) {
	list, err := uc.historyRepo.ListRecent(ctx, MovementsLimit)
	if err != nil {
		return nil, err
	}
	out := make([]dto.StockMovementResponse, 0, len(list))
	for _, e := range list {
		out = append(out, dto.StockMovementResponse{
			ID:          e.ID,
			ProductID:   e.ProductID,
			ProductName: e.ProductName,
			Before:      e.Before,
			After:       e.After,
			Reason:      e.Reason,
			UserID:      e.UserID,
			CreatedAt:   e.CreatedAt,
		})
	}
	return out, nil
}

// ToStateResponse convierte un estado de inventario a DTO.
func ToStateResponse(s *entity.InventoryState) dto.InventoryStateResponse {
	return dto.InventoryStateResponse{
		ProductID:   s.ProductID,
		ProductName: s.ProductName,
		Available:   s.Available,
		InTransit:   s.InTransit,
		Received:    s.Received,
		Total:       s.Total,
		UpdatedAt:   s.UpdatedAt,
	}
}
