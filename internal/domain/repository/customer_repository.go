package repository

import (
	"context"

	"github.com/jhoicas/smartstock-api/internal/domain/entity"
)

// CustomerRepository define el puerto de persistencia para clientes (DIP).
type CustomerRepository interface {
	Create(ctx context.Context, c *entity.Customer) error
	GetByID(ctx context.Context, id int64) (*entity.Customer, error)
	GetByName(ctx context.Context, name string) (*entity.Customer, error)
	// ExistsByRFC / ExistsByEmail ignoran el cliente excludeID (0 = ninguno).
	ExistsByRFC(ctx context.Context, rfc string, excludeID int64) (bool, error)
	ExistsByEmail(ctx context.Context, email string, excludeID int64) (bool, error)
	Update(ctx context.Context, c *entity.Customer) error
	ListActive(ctx context.Context) ([]*entity.Customer, error)
}
