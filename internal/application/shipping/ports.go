package shipping

import (
	"context"

	"github.com/jhoicas/smartstock-api/internal/domain/entity"
	"github.com/jhoicas/smartstock-api/internal/domain/repository"
)

// TxRunner ejecuta las transiciones de envío dentro de una transacción.
type TxRunner interface {
	RunShipping(ctx context.Context, fn func(
		orderRepo repository.OrderRepository,
		shipmentRepo repository.ShipmentRepository,
		stateRepo repository.InventoryStateRepository,
		historyRepo repository.StockHistoryRepository,
	) error) error
}

// LabelGenerator genera la guía de envío imprimible (PDF).
type LabelGenerator interface {
	GenerateShippingLabel(ctx context.Context, shipment *entity.Shipment) ([]byte, error)
}
