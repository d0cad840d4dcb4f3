package ordering_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/smartstock-api/internal/application/ordering"
	"github.com/jhoicas/smartstock-api/internal/domain"
	"github.com/jhoicas/smartstock-api/internal/domain/entity"
	"github.com/jhoicas/smartstock-api/internal/testutil/memdb"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

var fixedNow = time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

type fixture struct {
	db         *memdb.DB
	uc         *ordering.UseCase
	productID  int64
	contractID int64
}

// newFixture crea un producto con stock y un contrato vigente (máx 100, emitidas 40, activas 30).
func newFixture(t *testing.T, stock int) *fixture {
	t.Helper()
	db := memdb.New()
	pid := db.AddProduct(entity.Product{Name: "Tarjeta Despensa", StockCurrent: stock, StockMin: 5})
	cid := db.AddContract(entity.Contract{
		CustomerID: 7, ProductID: pid, MaxCards: 100, Issued: 40, Active: 30, Inactive: 10,
		Status: entity.ContractStatusActive,
	})
	contracts, _, orders, _, _, _ := db.Repos()
	uc := ordering.NewUseCase(db, orders, contracts).WithClock(func() time.Time { return fixedNow })
	return &fixture{db: db, uc: uc, productID: pid, contractID: cid}
}

// assertUnchanged verifica que producto, contrato, inventario y pedidos no cambiaron.
func (f *fixture) assertUnchanged(t *testing.T, stock, issued int) {
	t.Helper()
	assert.Equal(t, stock, f.db.Product(f.productID).StockCurrent, "stock no debe cambiar")
	assert.Equal(t, issued, f.db.Contract(f.contractID).Issued, "emitidas no debe cambiar")
	assert.Equal(t, stock, f.db.State(f.productID).Available, "disponible no debe cambiar")
	assert.Zero(t, f.db.State(f.productID).InTransit)
	assert.Zero(t, f.db.Orders(), "no debe crearse pedido")
	assert.Empty(t, f.db.History(), "no debe escribirse historial")
}

// ──────────────────────────────────────────────────────────────────────────────
// Reserve
// ──────────────────────────────────────────────────────────────────────────────

func TestReserve_ExitoAplicaTodosLosEfectos(t *testing.T) {
	f := newFixture(t, 50)

	res, err := f.uc.Reserve(context.Background(), ordering.ReserveInput{ContractID: f.contractID, Quantity: 20})
	require.NoError(t, err)

	// Resultado
	require.NotNil(t, res.Order)
	assert.NotZero(t, res.Order.ID)
	assert.Equal(t, entity.OrderStatusPendingShipment, res.Order.Status)
	assert.Equal(t, entity.InventoryStatusReserved, res.Order.InventoryStatus)
	assert.True(t, res.Order.UsagePctSnapshot.Equal(decimal.RequireFromString("75")), "30 activas de 40 emitidas")
	assert.Equal(t, 10, res.Order.InactiveSnapshot)
	require.NotNil(t, res.Order.ApprovedAt)
	assert.Equal(t, fixedNow, *res.Order.ApprovedAt)
	assert.Equal(t, 50, res.StockBefore)
	assert.Equal(t, 30, res.StockAfter)
	assert.Equal(t, 40, res.IssuedBefore)
	assert.Equal(t, 60, res.IssuedAfter)
	assert.Equal(t, 50, res.AvailableBefore)
	assert.Equal(t, 30, res.AvailableAfter)
	assert.Equal(t, 20, res.InTransit)
	assert.Equal(t, "Tarjeta Despensa", res.ProductName)

	// Estado confirmado
	assert.Equal(t, 30, f.db.Product(f.productID).StockCurrent)
	c := f.db.Contract(f.contractID)
	assert.Equal(t, 60, c.Issued)
	assert.Equal(t, 30, c.Inactive, "inactivas = emitidas - activas")
	st := f.db.State(f.productID)
	assert.Equal(t, 30, st.Available)
	assert.Equal(t, 20, st.InTransit)
	assert.Equal(t, st.Total, st.Available+st.InTransit+st.Received)

	hist := f.db.History()
	require.Len(t, hist, 1)
	assert.Equal(t, 50, hist[0].Before)
	assert.Equal(t, 30, hist[0].After)
	assert.Equal(t, entity.StockReasonOrder, hist[0].Reason)
	assert.Nil(t, hist[0].UserID)
}

func TestReserve_ResuelveContratoPorClienteYProducto(t *testing.T) {
	f := newFixture(t, 50)
	// Contrato vencido del mismo cliente/producto: debe preferirse el vigente.
	f.db.AddContract(entity.Contract{CustomerID: 7, ProductID: f.productID, MaxCards: 10, Status: "vencido"})

	res, err := f.uc.Reserve(context.Background(), ordering.ReserveInput{CustomerID: 7, ProductID: f.productID, Quantity: 5})
	require.NoError(t, err)
	assert.Equal(t, f.contractID, res.Order.ContractID)

	_, err = f.uc.Reserve(context.Background(), ordering.ReserveInput{CustomerID: 99, ProductID: f.productID, Quantity: 5})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestReserve_CantidadInvalida(t *testing.T) {
	f := newFixture(t, 50)
	for _, q := range []int{0, -3} {
		_, err := f.uc.Reserve(context.Background(), ordering.ReserveInput{ContractID: f.contractID, Quantity: q})
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	}
	_, err := f.uc.Reserve(context.Background(), ordering.ReserveInput{Quantity: 1})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "sin contrato ni cliente+producto")
	f.assertUnchanged(t, 50, 40)
}

func TestReserve_ContratoInexistente(t *testing.T) {
	f := newFixture(t, 50)
	_, err := f.uc.Reserve(context.Background(), ordering.ReserveInput{ContractID: 12345, Quantity: 1})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestReserve_ContratoNoVigente(t *testing.T) {
	f := newFixture(t, 50)
	cid := f.db.AddContract(entity.Contract{CustomerID: 8, ProductID: f.productID, MaxCards: 10, Status: "suspendido"})

	_, err := f.uc.Reserve(context.Background(), ordering.ReserveInput{ContractID: cid, Quantity: 1})
	require.ErrorIs(t, err, domain.ErrInvalidState)
	var se *domain.StateError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, "suspendido", se.Current)
	f.assertUnchanged(t, 50, 40)
}

func TestReserve_ValidarPedidoRechaza(t *testing.T) {
	f := newFixture(t, 50)
	f.db.Verdict = func(*entity.Contract, int) entity.OrderVerdict {
		return entity.OrderVerdict{Approved: false, Reason: "Contrato con tarjetas inactivas excesivas"}
	}

	_, err := f.uc.Reserve(context.Background(), ordering.ReserveInput{ContractID: f.contractID, Quantity: 5})
	require.ErrorIs(t, err, domain.ErrBusinessRule)
	var rv *domain.RuleViolationError
	require.ErrorAs(t, err, &rv)
	assert.Equal(t, "Contrato con tarjetas inactivas excesivas", rv.Reason)
	f.assertUnchanged(t, 50, 40)
}

func TestReserve_StockInsuficienteNoMuta(t *testing.T) {
	f := newFixture(t, 10)

	_, err := f.uc.Reserve(context.Background(), ordering.ReserveInput{ContractID: f.contractID, Quantity: 11})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)
	var se *domain.StockError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, 10, se.Available)
	assert.Equal(t, 11, se.Requested)
	assert.Equal(t, 1, se.Shortfall())
	f.assertUnchanged(t, 10, 40)
}

func TestReserve_CupoExcedidoNoMuta(t *testing.T) {
	f := newFixture(t, 500)

	_, err := f.uc.Reserve(context.Background(), ordering.ReserveInput{ContractID: f.contractID, Quantity: 61})
	require.ErrorIs(t, err, domain.ErrQuotaExceeded)
	var qe *domain.QuotaError
	require.ErrorAs(t, err, &qe)
	assert.Equal(t, 100, qe.Max)
	assert.Equal(t, 40, qe.Issued)
	assert.Equal(t, 60, qe.Remaining())
	f.assertUnchanged(t, 500, 40)
}

func TestReserve_StockSeValidaAntesQueCupo(t *testing.T) {
	f := newFixture(t, 5)
	_, err := f.uc.Reserve(context.Background(), ordering.ReserveInput{ContractID: f.contractID, Quantity: 80})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock, "ambas fallan: gana la primera en el orden")
}

func TestReserve_FalloIntermedioRevierteTodo(t *testing.T) {
	f := newFixture(t, 50)
	f.db.FailOn["history.Append"] = errors.New("conexión perdida")

	_, err := f.uc.Reserve(context.Background(), ordering.ReserveInput{ContractID: f.contractID, Quantity: 5})
	require.Error(t, err)
	f.assertUnchanged(t, 50, 40)
}

// Dos reservas concurrentes que caben por separado pero no juntas: exactamente una gana.
// memdb serializa transacciones completas con un mutex, así que aquí no se ejercita el
// SELECT ... FOR UPDATE; eso lo cubre TestReserve_ConcurrentesContraPostgres (tag integration).
func TestReserve_ConcurrenteSoloUnaGana(t *testing.T) {
	f := newFixture(t, 10)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	start := make(chan struct{})
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			<-start
			_, errs[i] = f.uc.Reserve(context.Background(), ordering.ReserveInput{ContractID: f.contractID, Quantity: 6})
		}(i)
	}
	close(start)
	wg.Wait()

	var ok, stockErr int
	for _, err := range errs {
		switch {
		case err == nil:
			ok++
		case errors.Is(err, domain.ErrInsufficientStock):
			stockErr++
		}
	}
	assert.Equal(t, 1, ok, "exactamente una reserva debe confirmarse")
	assert.Equal(t, 1, stockErr, "la otra debe fallar por stock")
	assert.Equal(t, 4, f.db.Product(f.productID).StockCurrent)
	assert.Equal(t, 46, f.db.Contract(f.contractID).Issued)
	assert.Equal(t, 1, f.db.Orders())
}

// ──────────────────────────────────────────────────────────────────────────────
// Solicitud, aprobación y rechazo
// ──────────────────────────────────────────────────────────────────────────────

func TestRequest_CreaPendienteSinReservar(t *testing.T) {
	f := newFixture(t, 50)

	o, err := f.uc.Request(context.Background(), ordering.ReserveInput{ContractID: f.contractID, Quantity: 5})
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusPending, o.Status)
	assert.Equal(t, 50, f.db.Product(f.productID).StockCurrent)
	assert.Equal(t, 40, f.db.Contract(f.contractID).Issued)
}

func TestApprove_ReservaYMarcaAprobado(t *testing.T) {
	f := newFixture(t, 50)
	o, err := f.uc.Request(context.Background(), ordering.ReserveInput{ContractID: f.contractID, Quantity: 5})
	require.NoError(t, err)

	res, err := f.uc.Approve(context.Background(), o.ID, 3)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusApproved, res.Order.Status)
	require.NotNil(t, res.Order.ApprovedBy)
	assert.Equal(t, int64(3), *res.Order.ApprovedBy)

	stored := f.db.Order(o.ID)
	assert.Equal(t, entity.OrderStatusApproved, stored.Status)
	assert.Equal(t, entity.InventoryStatusReserved, stored.InventoryStatus)
	assert.Equal(t, 45, f.db.Product(f.productID).StockCurrent)
	assert.Equal(t, 45, f.db.Contract(f.contractID).Issued)
	assert.Equal(t, 5, f.db.State(f.productID).InTransit)

	hist := f.db.History()
	require.Len(t, hist, 1)
	assert.Equal(t, entity.StockReasonApproval, hist[0].Reason)
	require.NotNil(t, hist[0].UserID)
	assert.Equal(t, int64(3), *hist[0].UserID)

	// Re-aprobar falla sin efectos adicionales
	_, err = f.uc.Approve(context.Background(), o.ID, 3)
	assert.ErrorIs(t, err, domain.ErrInvalidState)
	assert.Equal(t, 45, f.db.Product(f.productID).StockCurrent)
}

func TestApprove_PedidoAutoReservadoNoSeAprueba(t *testing.T) {
	f := newFixture(t, 50)
	res, err := f.uc.Reserve(context.Background(), ordering.ReserveInput{ContractID: f.contractID, Quantity: 5})
	require.NoError(t, err)

	_, err = f.uc.Approve(context.Background(), res.Order.ID, 1)
	assert.ErrorIs(t, err, domain.ErrInvalidState)
}

func TestApprove_StockInsuficienteDejaPendiente(t *testing.T) {
	f := newFixture(t, 3)
	o, err := f.uc.Request(context.Background(), ordering.ReserveInput{ContractID: f.contractID, Quantity: 5})
	require.NoError(t, err)

	_, err = f.uc.Approve(context.Background(), o.ID, 1)
	require.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, entity.OrderStatusPending, f.db.Order(o.ID).Status)
}

func TestReject_SegundoRechazoFalla(t *testing.T) {
	f := newFixture(t, 50)
	o, err := f.uc.Request(context.Background(), ordering.ReserveInput{ContractID: f.contractID, Quantity: 5})
	require.NoError(t, err)

	rejected, err := f.uc.Reject(context.Background(), o.ID, "Cliente canceló")
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusRejected, rejected.Status)
	require.NotNil(t, rejected.RejectionReason)
	assert.Equal(t, "Cliente canceló", *rejected.RejectionReason)

	_, err = f.uc.Reject(context.Background(), o.ID, "otra vez")
	require.ErrorIs(t, err, domain.ErrInvalidState, "rechazar dos veces no es idempotente")
	assert.Equal(t, "Cliente canceló", *f.db.Order(o.ID).RejectionReason, "la razón original se conserva")
	assert.Equal(t, 50, f.db.Product(f.productID).StockCurrent)
}

func TestReject_Validaciones(t *testing.T) {
	f := newFixture(t, 50)
	_, err := f.uc.Reject(context.Background(), 1, "  ")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.uc.Reject(context.Background(), 999, "motivo")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestValidate_Simulacion(t *testing.T) {
	f := newFixture(t, 50)
	v, err := f.uc.Validate(context.Background(), f.contractID, 5)
	require.NoError(t, err)
	assert.True(t, v.Approved)

	_, err = f.uc.Validate(context.Background(), 999, 5)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Zero(t, f.db.Orders())
}
