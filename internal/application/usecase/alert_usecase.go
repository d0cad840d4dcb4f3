package usecase

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/smartstock-api/internal/application/dto"
	"github.com/jhoicas/smartstock-api/internal/domain"
	"github.com/jhoicas/smartstock-api/internal/domain/entity"
	"github.com/jhoicas/smartstock-api/internal/domain/inventory"
	"github.com/jhoicas/smartstock-api/internal/domain/repository"
)

// AlertUseCase alertas operativas: consulta, resolución y generación automática.
type AlertUseCase struct {
	alertRepo    repository.AlertRepository
	contractRepo repository.ContractRepository
	productRepo  repository.ProductRepository
}

// NewAlertUseCase construye el caso de uso.
func NewAlertUseCase(
	alertRepo repository.AlertRepository,
	contractRepo repository.ContractRepository,
	productRepo repository.ProductRepository,
) *AlertUseCase {
	return &AlertUseCase{alertRepo: alertRepo, contractRepo: contractRepo, productRepo: productRepo}
}

// List todas las alertas por prioridad y fecha.
func (uc *AlertUseCase) List(ctx context.Context) ([]dto.AlertResponse, error) {
	list, err := uc.alertRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	return toAlertResponses(list), nil
}

// ListUnresolved alertas sin resolver.
func (uc *AlertUseCase) ListUnresolved(ctx context.Context) ([]dto.AlertResponse, error) {
	list, err := uc.alertRepo.ListUnresolved(ctx)
	if err != nil {
		return nil, err
	}
	return toAlertResponses(list), nil
}

// Resolve marca una alerta como resuelta.
func (uc *AlertUseCase) Resolve(ctx context.Context, id int64) error {
	ok, err := uc.alertRepo.Resolve(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("alerta %d: %w", id, domain.ErrNotFound)
	}
	return nil
}

// Generate crea alertas de stock muerto (contratos con uso < 70%) y de stock bajo
// (productos CRITICO/BAJO). No duplica una alerta sin resolver del mismo tipo y entidad.
func (uc *AlertUseCase) Generate(ctx context.Context) (*dto.GenerateAlertsResponse, error) {
	out := &dto.GenerateAlertsResponse{Message: "Alertas generadas exitosamente"}

	health, err := uc.contractRepo.Health(ctx)
	if err != nil {
		return nil, err
	}
	for _, h := range health {
		if !h.UsagePct.LessThan(inventory.DeadStockThreshold) {
			continue
		}
		unused := decimal.NewFromInt(100).Sub(h.UsagePct).Round(0)
		created, err := uc.createIfAbsent(ctx, &entity.Alert{
			Type:       entity.AlertTypeDeadStock,
			Priority:   inventory.DeadStockPriority(h.UsagePct),
			EntityType: entity.AlertEntityContract,
			EntityID:   h.ContractID,
			Message:    fmt.Sprintf("Cliente %s tiene %d tarjetas sin usar (%s%% del total)", h.CustomerName, h.Inactive, unused.String()),
		})
		if err != nil {
			return nil, err
		}
		if created {
			out.DeadStock++
		}
	}

	low, err := uc.productRepo.ListStockAlerts(ctx)
	if err != nil {
		return nil, err
	}
	for _, a := range low {
		priority := entity.AlertPriorityHigh
		if a.Level == entity.StockLevelCritical {
			priority = entity.AlertPriorityCritical
		}
		created, err := uc.createIfAbsent(ctx, &entity.Alert{
			Type:       entity.AlertTypeLowStock,
			Priority:   priority,
			EntityType: entity.AlertEntityProduct,
			EntityID:   a.ProductID,
			Message:    fmt.Sprintf("Producto %s tiene solo %d unidades (minimo: %d)", a.ProductName, a.StockCurrent, a.StockMin),
		})
		if err != nil {
			return nil, err
		}
		if created {
			out.LowStock++
		}
	}

	log.Info().Int("stock_muerto", out.DeadStock).Int("stock_bajo", out.LowStock).Msg("alertas generadas")
	return out, nil
}

func (uc *AlertUseCase) createIfAbsent(ctx context.Context, a *entity.Alert) (bool, error) {
	exists, err := uc.alertRepo.ExistsUnresolved(ctx, a.Type, a.EntityType, a.EntityID)
	if err != nil {
		return false, err
	}
	if exists {
		return false, nil
	}
	if err := uc.alertRepo.Create(ctx, a); err != nil {
		return false, err
	}
	return true, nil
}

func toAlertResponses(list []*entity.Alert) []dto.AlertResponse {
	out := make([]dto.AlertResponse, 0, len(list))
	for _, a := range list {
		out = append(out, dto.AlertResponse{
			ID:         a.ID,
			Type:       a.Type,
			Priority:   a.Priority,
			EntityType: a.EntityType,
			EntityID:   a.EntityID,
			Message:    a.Message,
			Resolved:   a.Resolved,
			CreatedAt:  a.CreatedAt,
			ResolvedAt: a.ResolvedAt,
		})
	}
	return out
}
