package repository

import (
	"context"

	"github.com/jhoicas/smartstock-api/internal/domain/entity"
)

// EmployeeRepository define el puerto para empleados_clientes y validaciones_archivo.
type EmployeeRepository interface {
	// ExistingRFCs devuelve cuáles de los RFC ya están registrados para el cliente.
	ExistingRFCs(ctx context.Context, customerID int64, rfcs []string) (map[string]bool, error)
	// InsertBatch inserta los empleados ignorando conflictos (cliente_id, rfc); devuelve cuántos se insertaron.
	InsertBatch(ctx context.Context, validationID int64, employees []*entity.Employee) (int, error)
	ListByCustomer(ctx context.Context, customerID int64) ([]*entity.Employee, error)
	// StartValidation registra la corrida en estado procesando y asigna v.ID.
	StartValidation(ctx context.Context, v *entity.FileValidation) error
	// FinishValidation guarda contadores, detalle y estado final de la corrida.
	FinishValidation(ctx context.Context, v *entity.FileValidation) error
}
