package repository

import (
	"context"
	"time"

	"github.com/jhoicas/smartstock-api/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
type ProductRepository interface {
	GetByID(ctx context.Context, id int64) (*entity.Product, error)
	// GetForUpdate bloquea la fila del producto (SELECT FOR UPDATE). Solo dentro de una tx.
	GetForUpdate(ctx context.Context, id int64) (*entity.Product, error)
	List(ctx context.Context) ([]*entity.Product, error)
	ListStockAlerts(ctx context.Context) ([]*entity.StockAlert, error)
	UpdateStock(ctx context.Context, id int64, stock int, at time.Time) error
}
