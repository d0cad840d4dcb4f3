// Package mocks contiene dobles de prueba (testify/mock) para los puertos de repositorio.
package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/jhoicas/smartstock-api/internal/domain/entity"
	"github.com/jhoicas/smartstock-api/internal/domain/repository"
)

var (
	_ repository.CustomerRepository = (*CustomerRepository)(nil)
	_ repository.CourierRepository  = (*CourierRepository)(nil)
	_ repository.AlertRepository    = (*AlertRepository)(nil)
	_ repository.ContractRepository = (*ContractRepository)(nil)
	_ repository.ProductRepository  = (*ProductRepository)(nil)
	_ repository.EmployeeRepository = (*EmployeeRepository)(nil)
	_ repository.TicketRepository   = (*TicketRepository)(nil)
)

func ptrOrNil[T any](v any) *T {
	if v == nil {
		return nil
	}
	return v.(*T)
}

func sliceOrNil[T any](v any) []T {
	if v == nil {
		return nil
	}
	return v.([]T)
}

// ── Clientes ─────────────────────────────────────────────────────────────────

type CustomerRepository struct{ mock.Mock }

func (m *CustomerRepository) Create(ctx context.Context, c *entity.Customer) error {
	return m.Called(ctx, c).Error(0)
}

func (m *CustomerRepository) GetByID(ctx context.Context, id int64) (*entity.Customer, error) {
	args := m.Called(ctx, id)
	return ptrOrNil[entity.Customer](args.Get(0)), args.Error(1)
}

func (m *CustomerRepository) GetByName(ctx context.Context, name string) (*entity.Customer, error) {
	args := m.Called(ctx, name)
	return ptrOrNil[entity.Customer](args.Get(0)), args.Error(1)
}

func (m *CustomerRepository) ExistsByRFC(ctx context.Context, rfc string, excludeID int64) (bool, error) {
	args := m.Called(ctx, rfc, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *CustomerRepository) ExistsByEmail(ctx context.Context, email string, excludeID int64) (bool, error) {
	args := m.Called(ctx, email, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *CustomerRepository) Update(ctx context.Context, c *entity.Customer) error {
	return m.Called(ctx, c).Error(0)
}

func (m *CustomerRepository) ListActive(ctx context.Context) ([]*entity.Customer, error) {
	args := m.Called(ctx)
	return sliceOrNil[*entity.Customer](args.Get(0)), args.Error(1)
}

// ── Repartidores ─────────────────────────────────────────────────────────────

type CourierRepository struct{ mock.Mock }

func (m *CourierRepository) Create(ctx context.Context, c *entity.Courier) error {
	return m.Called(ctx, c).Error(0)
}

func (m *CourierRepository) GetByID(ctx context.Context, id int64) (*entity.Courier, error) {
	args := m.Called(ctx, id)
	return ptrOrNil[entity.Courier](args.Get(0)), args.Error(1)
}

func (m *CourierRepository) ListAvailable(ctx context.Context) ([]*entity.Courier, error) {
	args := m.Called(ctx)
	return sliceOrNil[*entity.Courier](args.Get(0)), args.Error(1)
}

// ── Alertas ──────────────────────────────────────────────────────────────────

type AlertRepository struct{ mock.Mock }

func (m *AlertRepository) Create(ctx context.Context, a *entity.Alert) error {
	return m.Called(ctx, a).Error(0)
}

func (m *AlertRepository) List(ctx context.Context) ([]*entity.Alert, error) {
	args := m.Called(ctx)
	return sliceOrNil[*entity.Alert](args.Get(0)), args.Error(1)
}

func (m *AlertRepository) ListUnresolved(ctx context.Context) ([]*entity.Alert, error) {
	args := m.Called(ctx)
	return sliceOrNil[*entity.Alert](args.Get(0)), args.Error(1)
}

func (m *AlertRepository) Resolve(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *AlertRepository) ExistsUnresolved(ctx context.Context, alertType, entityType string, entityID int64) (bool, error) {
	args := m.Called(ctx, alertType, entityType, entityID)
	return args.Bool(0), args.Error(1)
}

// ── Contratos ────────────────────────────────────────────────────────────────

type ContractRepository struct{ mock.Mock }

func (m *ContractRepository) GetByID(ctx context.Context, id int64) (*entity.Contract, error) {
	args := m.Called(ctx, id)
	return ptrOrNil[entity.Contract](args.Get(0)), args.Error(1)
}

func (m *ContractRepository) GetForUpdate(ctx context.Context, id int64) (*entity.Contract, error) {
	args := m.Called(ctx, id)
	return ptrOrNil[entity.Contract](args.Get(0)), args.Error(1)
}

func (m *ContractRepository) ResolveID(ctx context.Context, customerID, productID int64) (int64, error) {
	args := m.Called(ctx, customerID, productID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *ContractRepository) ValidateOrder(ctx context.Context, contractID int64, quantity int) (*entity.OrderVerdict, error) {
	args := m.Called(ctx, contractID, quantity)
	return ptrOrNil[entity.OrderVerdict](args.Get(0)), args.Error(1)
}

func (m *ContractRepository) AddIssued(ctx context.Context, id int64, quantity int) error {
	return m.Called(ctx, id, quantity).Error(0)
}

func (m *ContractRepository) List(ctx context.Context) ([]*entity.Contract, error) {
	args := m.Called(ctx)
	return sliceOrNil[*entity.Contract](args.Get(0)), args.Error(1)
}

func (m *ContractRepository) ListByCustomer(ctx context.Context, customerID int64) ([]*entity.Contract, error) {
	args := m.Called(ctx, customerID)
	return sliceOrNil[*entity.Contract](args.Get(0)), args.Error(1)
}

func (m *ContractRepository) Health(ctx context.Context) ([]*entity.ContractHealth, error) {
	args := m.Called(ctx)
	return sliceOrNil[*entity.ContractHealth](args.Get(0)), args.Error(1)
}

func (m *ContractRepository) Summary(ctx context.Context) (*entity.ContractSummary, error) {
	args := m.Called(ctx)
	return ptrOrNil[entity.ContractSummary](args.Get(0)), args.Error(1)
}

func (m *ContractRepository) AvailableProducts(ctx context.Context, customerID int64) ([]*entity.AvailableProduct, error) {
	args := m.Called(ctx, customerID)
	return sliceOrNil[*entity.AvailableProduct](args.Get(0)), args.Error(1)
}

// ── Productos ────────────────────────────────────────────────────────────────

type ProductRepository struct{ mock.Mock }

func (m *ProductRepository) GetByID(ctx context.Context, id int64) (*entity.Product, error) {
	args := m.Called(ctx, id)
	return ptrOrNil[entity.Product](args.Get(0)), args.Error(1)
}

func (m *ProductRepository) GetForUpdate(ctx context.Context, id int64) (*entity.Product, error) {
	args := m.Called(ctx, id)
	return ptrOrNil[entity.Product](args.Get(0)), args.Error(1)
}

func (m *ProductRepository) List(ctx context.Context) ([]*entity.Product, error) {
	args := m.Called(ctx)
	return sliceOrNil[*entity.Product](args.Get(0)), args.Error(1)
}

func (m *ProductRepository) ListStockAlerts(ctx context.Context) ([]*entity.StockAlert, error) {
	args := m.Called(ctx)
	return sliceOrNil[*entity.StockAlert](args.Get(0)), args.Error(1)
}

func (m *ProductRepository) UpdateStock(ctx context.Context, id int64, stock int, at time.Time) error {
	return m.Called(ctx, id, stock, at).Error(0)
}

// ── Empleados ────────────────────────────────────────────────────────────────

type EmployeeRepository struct{ mock.Mock }

func (m *EmployeeRepository) ExistingRFCs(ctx context.Context, customerID int64, rfcs []string) (map[string]bool, error) {
	args := m.Called(ctx, customerID, rfcs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]bool), args.Error(1)
}

func (m *EmployeeRepository) InsertBatch(ctx context.Context, validationID int64, employees []*entity.Employee) (int, error) {
	args := m.Called(ctx, validationID, employees)
	return args.Int(0), args.Error(1)
}

func (m *EmployeeRepository) ListByCustomer(ctx context.Context, customerID int64) ([]*entity.Employee, error) {
	args := m.Called(ctx, customerID)
	return sliceOrNil[*entity.Employee](args.Get(0)), args.Error(1)
}

func (m *EmployeeRepository) StartValidation(ctx context.Context, v *entity.FileValidation) error {
	return m.Called(ctx, v).Error(0)
}

func (m *EmployeeRepository) FinishValidation(ctx context.Context, v *entity.FileValidation) error {
	return m.Called(ctx, v).Error(0)
}

// ── Tickets ──────────────────────────────────────────────────────────────────

type TicketRepository struct{ mock.Mock }

func (m *TicketRepository) Create(ctx context.Context, t *entity.Ticket) error {
	return m.Called(ctx, t).Error(0)
}

func (m *TicketRepository) GetByID(ctx context.Context, id int64) (*entity.Ticket, error) {
	args := m.Called(ctx, id)
	return ptrOrNil[entity.Ticket](args.Get(0)), args.Error(1)
}

func (m *TicketRepository) ListByCustomer(ctx context.Context, customerID int64) ([]*entity.Ticket, error) {
	args := m.Called(ctx, customerID)
	return sliceOrNil[*entity.Ticket](args.Get(0)), args.Error(1)
}

func (m *TicketRepository) ListReplies(ctx context.Context, ticketID int64) ([]*entity.TicketReply, error) {
	args := m.Called(ctx, ticketID)
	return sliceOrNil[*entity.TicketReply](args.Get(0)), args.Error(1)
}

func (m *TicketRepository) AddReply(ctx context.Context, r *entity.TicketReply) error {
	return m.Called(ctx, r).Error(0)
}

func (m *TicketRepository) Close(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}
