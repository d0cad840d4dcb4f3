package usecase

import (
	"context"
	"fmt"

	"github.com/jhoicas/smartstock-api/internal/application/dto"
	"github.com/jhoicas/smartstock-api/internal/domain"
	"github.com/jhoicas/smartstock-api/internal/domain/entity"
	"github.com/jhoicas/smartstock-api/internal/domain/repository"
)

// ProductUseCase consultas de productos. El stock solo cambia vía pedidos o ajustes de inventario.
type ProductUseCase struct {
	repo repository.ProductRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository) *ProductUseCase {
	return &ProductUseCase{repo: repo}
}

// GetByID obtiene un producto por ID.
func (uc *ProductUseCase) GetByID(ctx context.Context, id int64) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, fmt.Errorf("producto %d: %w", id, domain.ErrNotFound)
	}
	resp := toProductResponse(product)
	return &resp, nil
}

// List lista productos ordenados por nombre.
func (uc *ProductUseCase) List(ctx context.Context) ([]dto.ProductResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		out = append(out, toProductResponse(p))
	}
	return out, nil
}

// StockAlerts productos en nivel CRITICO o BAJO, críticos primero.
func (uc *ProductUseCase) StockAlerts(ctx context.Context) ([]dto.StockAlertResponse, error) {
	list, err := uc.repo.ListStockAlerts(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.StockAlertResponse, 0, len(list))
	for _, a := range list {
		out = append(out, dto.StockAlertResponse{
			ProductID:    a.ProductID,
			ProductName:  a.ProductName,
			StockCurrent: a.StockCurrent,
			StockMin:     a.StockMin,
			Level:        a.Level,
		})
	}
	return out, nil
}

func toProductResponse(p *entity.Product) dto.ProductResponse {
	return dto.ProductResponse{
		ID:           p.ID,
		Name:         p.Name,
		StockCurrent: p.StockCurrent,
		StockMin:     p.StockMin,
		StockMax:     p.StockMax,
		UpdatedAt:    p.UpdatedAt,
	}
}
