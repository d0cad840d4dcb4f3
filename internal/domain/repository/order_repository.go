package repository

import (
	"context"

	"github.com/jhoicas/smartstock-api/internal/domain/entity"
)

// OrderRepository define el puerto de persistencia para pedidos.
type OrderRepository interface {
	// Create inserta el pedido y completa ID y RequestedAt.
	Create(ctx context.Context, o *entity.Order) error
	GetByID(ctx context.Context, id int64) (*entity.Order, error)
	GetForUpdate(ctx context.Context, id int64) (*entity.Order, error)
	// UpdateStatus persiste estado, estado de inventario, aprobación y razón de rechazo.
	UpdateStatus(ctx context.Context, o *entity.Order) error
	List(ctx context.Context) ([]*entity.Order, error)
}
