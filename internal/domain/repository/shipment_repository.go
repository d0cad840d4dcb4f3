package repository

import (
	"context"

	"github.com/jhoicas/smartstock-api/internal/domain/entity"
)

// ShipmentRepository define el puerto de persistencia para envíos.
type ShipmentRepository interface {
	Create(ctx context.Context, s *entity.Shipment) error
	GetByID(ctx context.Context, id int64) (*entity.Shipment, error)
	// GetForUpdate lee y bloquea la fila del envío hasta el fin de la transacción.
	GetForUpdate(ctx context.Context, id int64) (*entity.Shipment, error)
	GetByTracking(ctx context.Context, code string) (*entity.Shipment, error)
	// UpdateLocation solo afecta envíos en tránsito; devuelve false si no se actualizó.
	UpdateLocation(ctx context.Context, id int64, lat, lng float64) (bool, error)
	// MarkDelivered solo aplica a envíos en tránsito; en otro estado devuelve *domain.StateError.
	MarkDelivered(ctx context.Context, s *entity.Shipment) error
	ListActive(ctx context.Context) ([]*entity.Shipment, error)
	ListByCustomer(ctx context.Context, customerID int64) ([]*entity.Shipment, error)
	ListByCourier(ctx context.Context, courierID int64) ([]*entity.Shipment, error)
}

// CourierRepository define el puerto para repartidores.
type CourierRepository interface {
	Create(ctx context.Context, c *entity.Courier) error
	GetByID(ctx context.Context, id int64) (*entity.Courier, error)
	ListAvailable(ctx context.Context) ([]*entity.Courier, error)
}
