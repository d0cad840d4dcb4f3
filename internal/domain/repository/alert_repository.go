package repository

import (
	"context"

	"github.com/jhoicas/smartstock-api/internal/domain/entity"
)

// AlertRepository define el puerto para alertas.
type AlertRepository interface {
	Create(ctx context.Context, a *entity.Alert) error
	List(ctx context.Context) ([]*entity.Alert, error)
	ListUnresolved(ctx context.Context) ([]*entity.Alert, error)
	// Resolve devuelve false si la alerta no existe.
	Resolve(ctx context.Context, id int64) (bool, error)
	ExistsUnresolved(ctx context.Context, alertType, entityType string, entityID int64) (bool, error)
}
