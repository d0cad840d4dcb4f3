package repository

import (
	"context"

	"github.com/jhoicas/smartstock-api/internal/domain/entity"
)

// StockHistoryRepository historial_stock: solo inserción y lectura.
type StockHistoryRepository interface {
	Append(ctx context.Context, e *entity.StockHistoryEntry) error
	ListRecent(ctx context.Context, limit int) ([]*entity.StockHistoryEntry, error)
}
