package repository

import (
	"context"

	"github.com/jhoicas/smartstock-api/internal/domain/entity"
)

// ContractRepository define el puerto de persistencia para contratos.
type ContractRepository interface {
	GetByID(ctx context.Context, id int64) (*entity.Contract, error)
	// GetForUpdate bloquea la fila del contrato hasta el fin de la transacción.
	GetForUpdate(ctx context.Context, id int64) (*entity.Contract, error)
	// ResolveID devuelve el contrato del cliente para el producto, prefiriendo el vigente (0 si no hay).
	ResolveID(ctx context.Context, customerID, productID int64) (int64, error)
	// ValidateOrder invoca el procedimiento almacenado validar_pedido.
	ValidateOrder(ctx context.Context, contractID int64, quantity int) (*entity.OrderVerdict, error)
	AddIssued(ctx context.Context, id int64, quantity int) error
	List(ctx context.Context) ([]*entity.Contract, error)
	ListByCustomer(ctx context.Context, customerID int64) ([]*entity.Contract, error)
	Health(ctx context.Context) ([]*entity.ContractHealth, error)
	Summary(ctx context.Context) (*entity.ContractSummary, error)
	AvailableProducts(ctx context.Context, customerID int64) ([]*entity.AvailableProduct, error)
}
