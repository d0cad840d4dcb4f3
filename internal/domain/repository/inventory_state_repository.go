package repository

import (
	"context"

	"github.com/jhoicas/smartstock-api/internal/domain/entity"
)

// InventoryStateRepository define el puerto para estados_inventario.
type InventoryStateRepository interface {
	// GetByProduct devuelve nil, nil si el producto aún no tiene estado.
	GetByProduct(ctx context.Context, productID int64) (*entity.InventoryState, error)
	GetForUpdate(ctx context.Context, productID int64) (*entity.InventoryState, error)
	Save(ctx context.Context, s *entity.InventoryState) error
	List(ctx context.Context) ([]*entity.InventoryState, error)
	Summary(ctx context.Context) (*entity.InventorySummary, error)
}
