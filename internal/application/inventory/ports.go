package inventory

import (
	"context"

	"github.com/jhoicas/smartstock-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Garantiza que stock físico, estado de inventario e historial cambien juntos.
type TxRunner interface {
	RunStock(ctx context.Context, fn func(
		productRepo repository.ProductRepository,
		stateRepo repository.InventoryStateRepository,
		historyRepo repository.StockHistoryRepository,
	) error) error
}
