package ordering

import (
	"context"

	"github.com/jhoicas/smartstock-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Si fn devuelve error la transacción se revierte completa.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		contractRepo repository.ContractRepository,
		productRepo repository.ProductRepository,
		orderRepo repository.OrderRepository,
		stateRepo repository.InventoryStateRepository,
		historyRepo repository.StockHistoryRepository,
	) error) error
}
