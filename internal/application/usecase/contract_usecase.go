package usecase

import (
	"context"
	"fmt"

	"github.com/jhoicas/smartstock-api/internal/application/dto"
	"github.com/jhoicas/smartstock-api/internal/domain"
	"github.com/jhoicas/smartstock-api/internal/domain/entity"
	"github.com/jhoicas/smartstock-api/internal/domain/repository"
)

// ContractUseCase consultas de contratos y su salud.
type ContractUseCase struct {
	repo repository.ContractRepository
}

// NewContractUseCase construye el caso de uso.
func NewContractUseCase(repo repository.ContractRepository) *ContractUseCase {
	return &ContractUseCase{repo: repo}
}

// List todos los contratos con nombres de cliente y producto.
func (uc *ContractUseCase) List(ctx context.Context) ([]dto.ContractResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return toContractResponses(list), nil
}

// GetByID obtiene un contrato.
func (uc *ContractUseCase) GetByID(ctx context.Context, id int64) (*dto.ContractResponse, error) {
	c, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, fmt.Errorf("contrato %d: %w", id, domain.ErrNotFound)
	}
	resp := toContractResponse(c)
	return &resp, nil
}

// ListByCustomer contratos de un cliente.
func (uc *ContractUseCase) ListByCustomer(ctx context.Context, customerID int64) ([]dto.ContractResponse, error) {
	list, err := uc.repo.ListByCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}
	return toContractResponses(list), nil
}

// Health salud de contratos ordenada por porcentaje de uso ascendente.
func (uc *ContractUseCase) Health(ctx context.Context) ([]dto.ContractHealthResponse, error) {
	list, err := uc.repo.Health(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ContractHealthResponse, 0, len(list))
	for _, h := range list {
		out = append(out, dto.ContractHealthResponse{
			ContractID:   h.ContractID,
			CustomerID:   h.CustomerID,
			CustomerName: h.CustomerName,
			ProductName:  h.ProductName,
			MaxCards:     h.MaxCards,
			Issued:       h.Issued,
			Active:       h.Active,
			Inactive:     h.Inactive,
			UsagePct:     h.UsagePct,
			HealthLevel:  h.HealthLevel,
		})
	}
	return out, nil
}

// Summary resumen estadístico de contratos vigentes.
func (uc *ContractUseCase) Summary(ctx context.Context) (*dto.ContractSummaryResponse, error) {
	s, err := uc.repo.Summary(ctx)
	if err != nil {
		return nil, err
	}
	return &dto.ContractSummaryResponse{
		Total:       s.Total,
		Critical:    s.Critical,
		AtRisk:      s.AtRisk,
		Acceptable:  s.Acceptable,
		Optimal:     s.Optimal,
		AvgUsagePct: s.AvgUsagePct,
		TotalMax:    s.TotalMax,
		TotalIssued: s.TotalIssued,
		TotalActive: s.TotalActive,
	}, nil
}

// AvailableProducts productos que el cliente puede pedir por sus contratos vigentes.
func (uc *ContractUseCase) AvailableProducts(ctx context.Context, customerID int64) ([]dto.AvailableProductResponse, error) {
	list, err := uc.repo.AvailableProducts(ctx, customerID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.AvailableProductResponse, 0, len(list))
	for _, p := range list {
		out = append(out, dto.AvailableProductResponse{
			ContractID:   p.ContractID,
			ProductID:    p.ProductID,
			ProductName:  p.ProductName,
			StockCurrent: p.StockCurrent,
			MaxCards:     p.MaxCards,
			Issued:       p.Issued,
			Remaining:    p.Remaining,
		})
	}
	return out, nil
}

func toContractResponses(list []*entity.Contract) []dto.ContractResponse {
	out := make([]dto.ContractResponse, 0, len(list))
	for _, c := range list {
		out = append(out, toContractResponse(c))
	}
	return out
}

func toContractResponse(c *entity.Contract) dto.ContractResponse {
	return dto.ContractResponse{
		ID:           c.ID,
		CustomerID:   c.CustomerID,
		ProductID:    c.ProductID,
		MaxCards:     c.MaxCards,
		Issued:       c.Issued,
		Active:       c.Active,
		Inactive:     c.Inactive,
		Status:       c.Status,
		CustomerName: c.CustomerName,
		ProductName:  c.ProductName,
	}
}
