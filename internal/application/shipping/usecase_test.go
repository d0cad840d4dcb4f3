package shipping_test

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/smartstock-api/internal/application/shipping"
	"github.com/jhoicas/smartstock-api/internal/domain"
	"github.com/jhoicas/smartstock-api/internal/domain/entity"
	"github.com/jhoicas/smartstock-api/internal/domain/repository"
	"github.com/jhoicas/smartstock-api/internal/testutil/memdb"
	"github.com/jhoicas/smartstock-api/internal/testutil/mocks"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

var fixedNow = time.Date(2025, 3, 11, 9, 30, 0, 0, time.UTC)

type fixture struct {
	db        *memdb.DB
	uc        *shipping.UseCase
	couriers  *mocks.CourierRepository
	labels    *fakeLabels
	productID int64
	orderID   int64
}

type fakeLabels struct {
	got *entity.Shipment
}

func (f *fakeLabels) GenerateShippingLabel(_ context.Context, sh *entity.Shipment) ([]byte, error) {
	f.got = sh
	return []byte("%PDF-fake"), nil
}

// newFixture deja un pedido de 5 tarjetas ya reservado (disponible 45, en tránsito 5) en el estado indicado.
func newFixture(t *testing.T, orderStatus string) *fixture {
	t.Helper()
	db := memdb.New()
	pid := db.AddProduct(entity.Product{Name: "Tarjeta Regalo", StockCurrent: 45})
	cid := db.AddContract(entity.Contract{
		CustomerID: 3, ProductID: pid, MaxCards: 100, Issued: 5, Inactive: 5,
		Status: entity.ContractStatusActive,
	})
	db.SetState(entity.InventoryState{ProductID: pid, Available: 45, InTransit: 5, Total: 50})
	oid := db.AddOrder(entity.Order{
		ContractID: cid, Quantity: 5, Status: orderStatus, InventoryStatus: entity.InventoryStatusReserved,
	})

	couriers := &mocks.CourierRepository{}
	labels := &fakeLabels{}
	_, _, _, _, _, shipments := db.Repos()
	uc := shipping.NewUseCase(db, shipments, couriers, labels).WithClock(func() time.Time { return fixedNow })
	return &fixture{db: db, uc: uc, couriers: couriers, labels: labels, productID: pid, orderID: oid}
}

func (f *fixture) ship(t *testing.T) *entity.Shipment {
	t.Helper()
	sh, err := f.uc.Create(context.Background(), shipping.CreateInput{OrderID: f.orderID})
	require.NoError(t, err)
	return sh
}

// ──────────────────────────────────────────────────────────────────────────────
// Create
// ──────────────────────────────────────────────────────────────────────────────

func TestCreate_DesdePendienteEnvio(t *testing.T) {
	f := newFixture(t, entity.OrderStatusPendingShipment)
	courierID := int64(9)
	f.couriers.On("GetByID", mock.Anything, courierID).Return(&entity.Courier{ID: courierID, Name: "Luis"}, nil)

	sh, err := f.uc.Create(context.Background(), shipping.CreateInput{OrderID: f.orderID, CourierID: &courierID})
	require.NoError(t, err)

	assert.Equal(t, entity.ShipmentStatusInTransit, sh.Status)
	assert.Equal(t, fixedNow, sh.DepartedAt)
	require.NotNil(t, sh.CourierID)
	assert.Equal(t, courierID, *sh.CourierID)
	assert.Equal(t, 5, sh.Quantity)

	order := f.db.Order(f.orderID)
	assert.Equal(t, entity.OrderStatusInTransit, order.Status)
	assert.Equal(t, entity.InventoryStatusInTransit, order.InventoryStatus)
	assert.Equal(t, sh.TrackingCode, f.db.Shipment(sh.ID).TrackingCode)

	// Despachar no mueve inventario
	state := f.db.State(f.productID)
	assert.Equal(t, 45, state.Available)
	assert.Equal(t, 5, state.InTransit)
	f.couriers.AssertExpectations(t)
}

func TestCreate_DesdeAprobado(t *testing.T) {
	f := newFixture(t, entity.OrderStatusApproved)
	sh := f.ship(t)
	assert.NotZero(t, sh.ID)
	assert.Equal(t, entity.OrderStatusInTransit, f.db.Order(f.orderID).Status)
}

func TestCreate_PedidoPendienteNoSePuedeDespachar(t *testing.T) {
	f := newFixture(t, entity.OrderStatusPending)

	_, err := f.uc.Create(context.Background(), shipping.CreateInput{OrderID: f.orderID})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidState))
	assert.Equal(t, entity.OrderStatusPending, f.db.Order(f.orderID).Status)
}

func TestCreate_DosVecesElMismoPedido(t *testing.T) {
	f := newFixture(t, entity.OrderStatusPendingShipment)
	f.ship(t)

	_, err := f.uc.Create(context.Background(), shipping.CreateInput{OrderID: f.orderID})
	assert.True(t, errors.Is(err, domain.ErrInvalidState))
}

func TestCreate_RepartidorInexistente(t *testing.T) {
	f := newFixture(t, entity.OrderStatusPendingShipment)
	courierID := int64(77)
	f.couriers.On("GetByID", mock.Anything, courierID).Return(nil, nil)

	_, err := f.uc.Create(context.Background(), shipping.CreateInput{OrderID: f.orderID, CourierID: &courierID})
	assert.True(t, errors.Is(err, domain.ErrNotFound))
	assert.Equal(t, entity.OrderStatusPendingShipment, f.db.Order(f.orderID).Status)
}

func TestCreate_PedidoInexistente(t *testing.T) {
	f := newFixture(t, entity.OrderStatusPendingShipment)
	_, err := f.uc.Create(context.Background(), shipping.CreateInput{OrderID: 999})
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestNewTrackingCode_Formato(t *testing.T) {
	code := shipping.NewTrackingCode(fixedNow)
	assert.Regexp(t, regexp.MustCompile(`^TRACK-\d+-[0-9A-F]{9}$`), code)
	assert.Contains(t, code, "TRACK-1741685400000-")
	assert.NotEqual(t, code, shipping.NewTrackingCode(fixedNow))
}

// ──────────────────────────────────────────────────────────────────────────────
// UpdateLocation
// ──────────────────────────────────────────────────────────────────────────────

func TestUpdateLocation_EnTransito(t *testing.T) {
	f := newFixture(t, entity.OrderStatusPendingShipment)
	sh := f.ship(t)

	require.NoError(t, f.uc.UpdateLocation(context.Background(), sh.ID, 19.4326, -99.1332))
	got := f.db.Shipment(sh.ID)
	require.NotNil(t, got.Latitude)
	assert.InDelta(t, 19.4326, *got.Latitude, 1e-9)
	assert.InDelta(t, -99.1332, *got.Longitude, 1e-9)
}

func TestUpdateLocation_FueraDeRango(t *testing.T) {
	f := newFixture(t, entity.OrderStatusPendingShipment)
	sh := f.ship(t)

	err := f.uc.UpdateLocation(context.Background(), sh.ID, 91, 0)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
	err = f.uc.UpdateLocation(context.Background(), sh.ID, 0, -181)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

func TestUpdateLocation_EnvioInexistente(t *testing.T) {
	f := newFixture(t, entity.OrderStatusPendingShipment)
	err := f.uc.UpdateLocation(context.Background(), 555, 10, 10)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

// ──────────────────────────────────────────────────────────────────────────────
// Deliver
// ──────────────────────────────────────────────────────────────────────────────

func TestDeliver_MueveCantidadATransitoRecibido(t *testing.T) {
	f := newFixture(t, entity.OrderStatusPendingShipment)
	sh := f.ship(t)

	d, err := f.uc.Deliver(context.Background(), sh.ID, " https://evidencias/foto.jpg ")
	require.NoError(t, err)

	assert.Equal(t, entity.ShipmentStatusDelivered, d.Shipment.Status)
	require.NotNil(t, d.Shipment.DeliveredAt)
	assert.Equal(t, fixedNow, *d.Shipment.DeliveredAt)
	require.NotNil(t, d.Shipment.EvidenceURL)
	assert.Equal(t, "https://evidencias/foto.jpg", *d.Shipment.EvidenceURL)

	order := f.db.Order(f.orderID)
	assert.Equal(t, entity.OrderStatusDelivered, order.Status)
	assert.Equal(t, entity.InventoryStatusReceived, order.InventoryStatus)

	state := f.db.State(f.productID)
	assert.Equal(t, 45, state.Available, "disponible no cambia al entregar")
	assert.Equal(t, 0, state.InTransit)
	assert.Equal(t, 5, state.Received)
	assert.Equal(t, 50, state.Total, "el total no cambia")

	hist := f.db.History()
	require.Len(t, hist, 1)
	assert.Equal(t, entity.StockReasonDeliveryConfirmed, hist[0].Reason)
	assert.Equal(t, 0, hist[0].Before)
	assert.Equal(t, 5, hist[0].After)

	// El stock físico del producto no se toca en la entrega
	assert.Equal(t, 45, f.db.Product(f.productID).StockCurrent)
}

func TestDeliver_SegundaVezFalla(t *testing.T) {
	f := newFixture(t, entity.OrderStatusPendingShipment)
	sh := f.ship(t)
	_, err := f.uc.Deliver(context.Background(), sh.ID, "")
	require.NoError(t, err)

	_, err = f.uc.Deliver(context.Background(), sh.ID, "")
	assert.True(t, errors.Is(err, domain.ErrInvalidState))
	assert.Equal(t, 5, f.db.State(f.productID).Received, "no debe contarse dos veces")
	assert.Len(t, f.db.History(), 1)
}

// staleShipments devuelve una lectura del envío tomada antes de otra entrega ya confirmada,
// la que obtendría una transacción concurrente que leyó sin bloqueo.
type staleShipments struct {
	repository.ShipmentRepository
	stale entity.Shipment
}

func (s staleShipments) GetByID(context.Context, int64) (*entity.Shipment, error) {
	c := s.stale
	return &c, nil
}

func (s staleShipments) GetForUpdate(context.Context, int64) (*entity.Shipment, error) {
	c := s.stale
	return &c, nil
}

type staleRunner struct {
	db    *memdb.DB
	stale entity.Shipment
}

func (r staleRunner) RunShipping(ctx context.Context, fn func(
	orderRepo repository.OrderRepository,
	shipmentRepo repository.ShipmentRepository,
	stateRepo repository.InventoryStateRepository,
	historyRepo repository.StockHistoryRepository,
) error) error {
	return r.db.RunShipping(ctx, func(
		orderRepo repository.OrderRepository,
		shipmentRepo repository.ShipmentRepository,
		stateRepo repository.InventoryStateRepository,
		historyRepo repository.StockHistoryRepository,
	) error {
		return fn(orderRepo, staleShipments{ShipmentRepository: shipmentRepo, stale: r.stale}, stateRepo, historyRepo)
	})
}

func TestDeliver_EntregaConcurrenteConLecturaViejaNoDuplica(t *testing.T) {
	f := newFixture(t, entity.OrderStatusPendingShipment)
	sh := f.ship(t)
	stale := f.db.Shipment(sh.ID)
	require.Equal(t, entity.ShipmentStatusInTransit, stale.Status)

	_, err := f.uc.Deliver(context.Background(), sh.ID, "")
	require.NoError(t, err)

	_, _, _, _, _, shipments := f.db.Repos()
	late := shipping.NewUseCase(staleRunner{db: f.db, stale: stale}, shipments, f.couriers, f.labels).
		WithClock(func() time.Time { return fixedNow })
	_, err = late.Deliver(context.Background(), sh.ID, "")
	var stateErr *domain.StateError
	require.ErrorAs(t, err, &stateErr)
	assert.Equal(t, entity.ShipmentStatusDelivered, stateErr.Current)

	state := f.db.State(f.productID)
	assert.Equal(t, 0, state.InTransit)
	assert.Equal(t, 5, state.Received, "la entrega mueve exactamente la cantidad del pedido")
	assert.Len(t, f.db.History(), 1)
}

func TestMarkDelivered_SoloDesdeEnTransito(t *testing.T) {
	f := newFixture(t, entity.OrderStatusPendingShipment)
	sh := f.ship(t)
	_, _, _, _, _, shipments := f.db.Repos()

	delivered := f.db.Shipment(sh.ID)
	delivered.Status = entity.ShipmentStatusDelivered
	delivered.DeliveredAt = &fixedNow
	require.NoError(t, shipments.MarkDelivered(context.Background(), &delivered))

	err := shipments.MarkDelivered(context.Background(), &delivered)
	assert.True(t, errors.Is(err, domain.ErrInvalidState))

	missing := entity.Shipment{ID: 999, Status: entity.ShipmentStatusDelivered}
	assert.True(t, errors.Is(shipments.MarkDelivered(context.Background(), &missing), domain.ErrNotFound))
}

func TestDeliver_SinEvidenciaDejaNil(t *testing.T) {
	f := newFixture(t, entity.OrderStatusPendingShipment)
	sh := f.ship(t)
	d, err := f.uc.Deliver(context.Background(), sh.ID, "   ")
	require.NoError(t, err)
	assert.Nil(t, d.Shipment.EvidenceURL)
}

func TestDeliver_FallaHistorialRevierte(t *testing.T) {
	f := newFixture(t, entity.OrderStatusPendingShipment)
	sh := f.ship(t)
	f.db.FailOn["history.Append"] = errors.New("disco lleno")

	_, err := f.uc.Deliver(context.Background(), sh.ID, "")
	require.Error(t, err)
	assert.Equal(t, entity.ShipmentStatusInTransit, f.db.Shipment(sh.ID).Status)
	assert.Equal(t, entity.OrderStatusInTransit, f.db.Order(f.orderID).Status)
	assert.Equal(t, 5, f.db.State(f.productID).InTransit)
}

func TestUpdateLocation_DespuesDeEntregarFalla(t *testing.T) {
	f := newFixture(t, entity.OrderStatusPendingShipment)
	sh := f.ship(t)
	_, err := f.uc.Deliver(context.Background(), sh.ID, "")
	require.NoError(t, err)

	err = f.uc.UpdateLocation(context.Background(), sh.ID, 1, 1)
	assert.True(t, errors.Is(err, domain.ErrInvalidState))
}

// ──────────────────────────────────────────────────────────────────────────────
// Consultas y guía
// ──────────────────────────────────────────────────────────────────────────────

func TestGetByTracking(t *testing.T) {
	f := newFixture(t, entity.OrderStatusPendingShipment)
	sh := f.ship(t)

	got, err := f.uc.GetByTracking(context.Background(), " "+sh.TrackingCode+" ")
	require.NoError(t, err)
	assert.Equal(t, sh.ID, got.ID)

	_, err = f.uc.GetByTracking(context.Background(), "TRACK-0-NOEXISTE")
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestLabel_GeneraNombreConTracking(t *testing.T) {
	f := newFixture(t, entity.OrderStatusPendingShipment)
	sh := f.ship(t)

	pdf, name, err := f.uc.Label(context.Background(), sh.ID)
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF-fake"), pdf)
	assert.Equal(t, "guia_"+sh.TrackingCode+".pdf", name)
	require.NotNil(t, f.labels.got)
	assert.Equal(t, sh.TrackingCode, f.labels.got.TrackingCode)
}
