// Package memdb implementa en memoria los repositorios transaccionales (contratos, productos,
// pedidos, estados de inventario, historial y envíos) para pruebas de los casos de uso.
//
// Cada transacción toma un mutex global (equivalente a bloquear todas las filas) y trabaja
// sobre una copia; solo si fn termina sin error la copia reemplaza al estado confirmado.
package memdb

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/jhoicas/smartstock-api/internal/domain"
	"github.com/jhoicas/smartstock-api/internal/domain/entity"
	"github.com/jhoicas/smartstock-api/internal/domain/repository"
)

// DB base de datos en memoria.
type DB struct {
	mu   sync.Mutex
	data *state

	// Verdict reemplaza a validar_pedido. Por defecto aprueba mientras queden tarjetas.
	Verdict func(c *entity.Contract, qty int) entity.OrderVerdict
	// FailOn fuerza un error en la operación indicada (ej. "history.Append").
	FailOn map[string]error
}

type state struct {
	nextID    int64
	products  map[int64]entity.Product
	contracts map[int64]entity.Contract
	orders    map[int64]entity.Order
	states    map[int64]entity.InventoryState
	history   []entity.StockHistoryEntry
	shipments map[int64]entity.Shipment
}

// New crea una base vacía.
func New() *DB {
	return &DB{
		data: &state{
			products:  map[int64]entity.Product{},
			contracts: map[int64]entity.Contract{},
			orders:    map[int64]entity.Order{},
			states:    map[int64]entity.InventoryState{},
			shipments: map[int64]entity.Shipment{},
		},
		FailOn: map[string]error{},
	}
}

func (s *state) clone() *state {
	c := &state{
		nextID:    s.nextID,
		products:  make(map[int64]entity.Product, len(s.products)),
		contracts: make(map[int64]entity.Contract, len(s.contracts)),
		orders:    make(map[int64]entity.Order, len(s.orders)),
		states:    make(map[int64]entity.InventoryState, len(s.states)),
		history:   append([]entity.StockHistoryEntry(nil), s.history...),
		shipments: make(map[int64]entity.Shipment, len(s.shipments)),
	}
	for k, v := range s.products {
		c.products[k] = v
	}
	for k, v := range s.contracts {
		c.contracts[k] = v
	}
	for k, v := range s.orders {
		c.orders[k] = v
	}
	for k, v := range s.states {
		c.states[k] = v
	}
	for k, v := range s.shipments {
		c.shipments[k] = v
	}
	return c
}

func (s *state) id() int64 {
	s.nextID++
	return s.nextID
}

// ── Seeds y lecturas directas (fuera de transacción) ─────────────────────────

// AddProduct inserta un producto con su estado de inventario inicial (todo disponible).
func (db *DB) AddProduct(p entity.Product) int64 {
	db.mu.Lock()
	defer db.mu.Unlock()
	if p.ID == 0 {
		p.ID = db.data.id()
	}
	db.data.products[p.ID] = p
	db.data.states[p.ID] = entity.InventoryState{ProductID: p.ID, ProductName: p.Name, Available: p.StockCurrent, Total: p.StockCurrent}
	return p.ID
}

// AddContract inserta un contrato.
func (db *DB) AddContract(c entity.Contract) int64 {
	db.mu.Lock()
	defer db.mu.Unlock()
	if c.ID == 0 {
		c.ID = db.data.id()
	}
	db.data.contracts[c.ID] = c
	return c.ID
}

// AddOrder inserta un pedido tal cual.
func (db *DB) AddOrder(o entity.Order) int64 {
	db.mu.Lock()
	defer db.mu.Unlock()
	if o.ID == 0 {
		o.ID = db.data.id()
	}
	db.data.orders[o.ID] = o
	return o.ID
}

// AddShipment inserta un envío tal cual.
func (db *DB) AddShipment(s entity.Shipment) int64 {
	db.mu.Lock()
	defer db.mu.Unlock()
	if s.ID == 0 {
		s.ID = db.data.id()
	}
	db.data.shipments[s.ID] = s
	return s.ID
}

// SetState reemplaza el estado de inventario de un producto.
func (db *DB) SetState(s entity.InventoryState) {
	db.mu.Lock()
	defer db.mu.Unlock()
	db.data.states[s.ProductID] = s
}

// Product devuelve una copia del producto confirmado.
func (db *DB) Product(id int64) entity.Product {
	db.mu.Lock()
	defer db.mu.Unlock()
	return db.data.products[id]
}

// Contract devuelve una copia del contrato confirmado.
func (db *DB) Contract(id int64) entity.Contract {
	db.mu.Lock()
	defer db.mu.Unlock()
	return db.data.contracts[id]
}

// Order devuelve una copia del pedido confirmado.
func (db *DB) Order(id int64) entity.Order {
	db.mu.Lock()
	defer db.mu.Unlock()
	return db.data.orders[id]
}

// Orders cantidad de pedidos confirmados.
func (db *DB) Orders() int {
	db.mu.Lock()
	defer db.mu.Unlock()
	return len(db.data.orders)
}

// State devuelve el estado de inventario confirmado.
func (db *DB) State(productID int64) entity.InventoryState {
	db.mu.Lock()
	defer db.mu.Unlock()
	return db.data.states[productID]
}

// Shipment devuelve una copia del envío confirmado.
func (db *DB) Shipment(id int64) entity.Shipment {
	db.mu.Lock()
	defer db.mu.Unlock()
	return db.data.shipments[id]
}

// History copia del historial confirmado.
func (db *DB) History() []entity.StockHistoryEntry {
	db.mu.Lock()
	defer db.mu.Unlock()
	return append([]entity.StockHistoryEntry(nil), db.data.history...)
}

// ── Transacciones ─────────────────────────────────────────────────────────────

// Run ejecuta fn con repositorios de pedidos atados a una transacción.
func (db *DB) Run(ctx context.Context, fn func(
	contractRepo repository.ContractRepository,
	productRepo repository.ProductRepository,
	orderRepo repository.OrderRepository,
	stateRepo repository.InventoryStateRepository,
	historyRepo repository.StockHistoryRepository,
) error) error {
	return db.inTx(func(s store) error {
		return fn(&ContractRepo{s}, &ProductRepo{s}, &OrderRepo{s}, &StateRepo{s}, &HistoryRepo{s})
	})
}

// RunShipping ejecuta fn con repositorios de envíos atados a una transacción.
func (db *DB) RunShipping(ctx context.Context, fn func(
	orderRepo repository.OrderRepository,
	shipmentRepo repository.ShipmentRepository,
	stateRepo repository.InventoryStateRepository,
	historyRepo repository.StockHistoryRepository,
) error) error {
	return db.inTx(func(s store) error {
		return fn(&OrderRepo{s}, &ShipmentRepo{s}, &StateRepo{s}, &HistoryRepo{s})
	})
}

// RunStock ejecuta fn con repositorios de ajuste de stock atados a una transacción.
func (db *DB) RunStock(ctx context.Context, fn func(
	productRepo repository.ProductRepository,
	stateRepo repository.InventoryStateRepository,
	historyRepo repository.StockHistoryRepository,
) error) error {
	return db.inTx(func(s store) error {
		return fn(&ProductRepo{s}, &StateRepo{s}, &HistoryRepo{s})
	})
}

func (db *DB) inTx(fn func(s store) error) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	work := db.data.clone()
	if err := fn(store{db: db, tx: work}); err != nil {
		return err
	}
	db.data = work
	return nil
}

// Repos devuelve repositorios fuera de transacción (cada llamada es atómica por sí sola).
func (db *DB) Repos() (*ContractRepo, *ProductRepo, *OrderRepo, *StateRepo, *HistoryRepo, *ShipmentRepo) {
	s := store{db: db}
	return &ContractRepo{s}, &ProductRepo{s}, &OrderRepo{s}, &StateRepo{s}, &HistoryRepo{s}, &ShipmentRepo{s}
}

type store struct {
	db *DB
	tx *state
}

func (s store) with(fn func(st *state) error) error {
	if s.tx != nil {
		return fn(s.tx)
	}
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	return fn(s.db.data)
}

func (s store) fail(op string) error {
	return s.db.FailOn[op]
}

// ── Contratos ────────────────────────────────────────────────────────────────

var _ repository.ContractRepository = (*ContractRepo)(nil)

type ContractRepo struct{ s store }

func (r *ContractRepo) get(id int64) (*entity.Contract, error) {
	var out *entity.Contract
	err := r.s.with(func(st *state) error {
		if c, ok := st.contracts[id]; ok {
			if p, ok := st.products[c.ProductID]; ok {
				c.ProductName = p.Name
			}
			out = &c
		}
		return nil
	})
	return out, err
}

func (r *ContractRepo) GetByID(_ context.Context, id int64) (*entity.Contract, error) {
	return r.get(id)
}

func (r *ContractRepo) GetForUpdate(_ context.Context, id int64) (*entity.Contract, error) {
	return r.get(id)
}

func (r *ContractRepo) ResolveID(_ context.Context, customerID, productID int64) (int64, error) {
	var best int64
	var bestActive bool
	err := r.s.with(func(st *state) error {
		for id, c := range st.contracts {
			if c.CustomerID != customerID || c.ProductID != productID {
				continue
			}
			active := c.IsActive()
			if best == 0 || (active && !bestActive) || (active == bestActive && id > best) {
				best, bestActive = id, active
			}
		}
		return nil
	})
	return best, err
}

func (r *ContractRepo) ValidateOrder(_ context.Context, contractID int64, qty int) (*entity.OrderVerdict, error) {
	var v entity.OrderVerdict
	err := r.s.with(func(st *state) error {
		c := st.contracts[contractID]
		if r.s.db.Verdict != nil {
			v = r.s.db.Verdict(&c, qty)
			return nil
		}
		v = entity.OrderVerdict{Approved: c.Issued < c.MaxCards, Reason: "Pedido aprobado"}
		if !v.Approved {
			v.Reason = "El contrato ya no tiene tarjetas disponibles"
		}
		return nil
	})
	return &v, err
}

func (r *ContractRepo) AddIssued(_ context.Context, id int64, qty int) error {
	if err := r.s.fail("contracts.AddIssued"); err != nil {
		return err
	}
	return r.s.with(func(st *state) error {
		c := st.contracts[id]
		c.Issued += qty
		c.Inactive += qty
		st.contracts[id] = c
		return nil
	})
}

func (r *ContractRepo) list(filter func(entity.Contract) bool) ([]*entity.Contract, error) {
	var out []*entity.Contract
	err := r.s.with(func(st *state) error {
		for _, c := range st.contracts {
			if filter(c) {
				c := c
				out = append(out, &c)
			}
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, err
}

func (r *ContractRepo) List(context.Context) ([]*entity.Contract, error) {
	return r.list(func(entity.Contract) bool { return true })
}

func (r *ContractRepo) ListByCustomer(_ context.Context, customerID int64) ([]*entity.Contract, error) {
	return r.list(func(c entity.Contract) bool { return c.CustomerID == customerID })
}

func (r *ContractRepo) Health(context.Context) ([]*entity.ContractHealth, error) { return nil, nil }

func (r *ContractRepo) Summary(context.Context) (*entity.ContractSummary, error) {
	return &entity.ContractSummary{}, nil
}

func (r *ContractRepo) AvailableProducts(context.Context, int64) ([]*entity.AvailableProduct, error) {
	return nil, nil
}

// ── Productos ────────────────────────────────────────────────────────────────

var _ repository.ProductRepository = (*ProductRepo)(nil)

type ProductRepo struct{ s store }

func (r *ProductRepo) GetByID(_ context.Context, id int64) (*entity.Product, error) {
	var out *entity.Product
	err := r.s.with(func(st *state) error {
		if p, ok := st.products[id]; ok {
			out = &p
		}
		return nil
	})
	return out, err
}

func (r *ProductRepo) GetForUpdate(ctx context.Context, id int64) (*entity.Product, error) {
	return r.GetByID(ctx, id)
}

func (r *ProductRepo) List(context.Context) ([]*entity.Product, error) {
	var out []*entity.Product
	err := r.s.with(func(st *state) error {
		for _, p := range st.products {
			p := p
			out = append(out, &p)
		}
		return nil
	})
	return out, err
}

func (r *ProductRepo) ListStockAlerts(context.Context) ([]*entity.StockAlert, error) { return nil, nil }

func (r *ProductRepo) UpdateStock(_ context.Context, id int64, stock int, at time.Time) error {
	if err := r.s.fail("products.UpdateStock"); err != nil {
		return err
	}
	return r.s.with(func(st *state) error {
		p := st.products[id]
		p.StockCurrent = stock
		p.UpdatedAt = at
		st.products[id] = p
		return nil
	})
}

// ── Pedidos ──────────────────────────────────────────────────────────────────

var _ repository.OrderRepository = (*OrderRepo)(nil)

type OrderRepo struct{ s store }

func (r *OrderRepo) Create(_ context.Context, o *entity.Order) error {
	if err := r.s.fail("orders.Create"); err != nil {
		return err
	}
	return r.s.with(func(st *state) error {
		o.ID = st.id()
		o.RequestedAt = time.Now()
		st.orders[o.ID] = *o
		return nil
	})
}

func (r *OrderRepo) GetByID(_ context.Context, id int64) (*entity.Order, error) {
	var out *entity.Order
	err := r.s.with(func(st *state) error {
		if o, ok := st.orders[id]; ok {
			c := st.contracts[o.ContractID]
			o.CustomerID, o.ProductID = c.CustomerID, c.ProductID
			out = &o
		}
		return nil
	})
	return out, err
}

func (r *OrderRepo) GetForUpdate(ctx context.Context, id int64) (*entity.Order, error) {
	return r.GetByID(ctx, id)
}

func (r *OrderRepo) UpdateStatus(_ context.Context, o *entity.Order) error {
	return r.s.with(func(st *state) error {
		st.orders[o.ID] = *o
		return nil
	})
}

func (r *OrderRepo) List(context.Context) ([]*entity.Order, error) {
	var out []*entity.Order
	err := r.s.with(func(st *state) error {
		for _, o := range st.orders {
			o := o
			out = append(out, &o)
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, err
}

// ── Estados de inventario ────────────────────────────────────────────────────

var _ repository.InventoryStateRepository = (*StateRepo)(nil)

type StateRepo struct{ s store }

func (r *StateRepo) GetByProduct(_ context.Context, productID int64) (*entity.InventoryState, error) {
	var out *entity.InventoryState
	err := r.s.with(func(st *state) error {
		if v, ok := st.states[productID]; ok {
			out = &v
		}
		return nil
	})
	return out, err
}

func (r *StateRepo) GetForUpdate(ctx context.Context, productID int64) (*entity.InventoryState, error) {
	return r.GetByProduct(ctx, productID)
}

func (r *StateRepo) Save(_ context.Context, s *entity.InventoryState) error {
	return r.s.with(func(st *state) error {
		st.states[s.ProductID] = *s
		return nil
	})
}

func (r *StateRepo) List(context.Context) ([]*entity.InventoryState, error) {
	var out []*entity.InventoryState
	err := r.s.with(func(st *state) error {
		for _, v := range st.states {
			v := v
			out = append(out, &v)
		}
		return nil
	})
	return out, err
}

func (r *StateRepo) Summary(context.Context) (*entity.InventorySummary, error) {
	sum := &entity.InventorySummary{}
	err := r.s.with(func(st *state) error {
		for _, v := range st.states {
			sum.Products++
			sum.Available += v.Available
			sum.InTransit += v.InTransit
			sum.Received += v.Received
			sum.Total += v.Total
		}
		return nil
	})
	return sum, err
}

// ── Historial ────────────────────────────────────────────────────────────────

var _ repository.StockHistoryRepository = (*HistoryRepo)(nil)

type HistoryRepo struct{ s store }

func (r *HistoryRepo) Append(_ context.Context, e *entity.StockHistoryEntry) error {
	if err := r.s.fail("history.Append"); err != nil {
		return err
	}
	return r.s.with(func(st *state) error {
		e.ID = st.id()
		st.history = append(st.history, *e)
		return nil
	})
}

func (r *HistoryRepo) ListRecent(_ context.Context, limit int) ([]*entity.StockHistoryEntry, error) {
	var out []*entity.StockHistoryEntry
	err := r.s.with(func(st *state) error {
		for i := len(st.history) - 1; i >= 0 && len(out) < limit; i-- {
			e := st.history[i]
			out = append(out, &e)
		}
		return nil
	})
	return out, err
}

// ── Envíos ───────────────────────────────────────────────────────────────────

var _ repository.ShipmentRepository = (*ShipmentRepo)(nil)

type ShipmentRepo struct{ s store }

func (r *ShipmentRepo) Create(_ context.Context, sh *entity.Shipment) error {
	return r.s.with(func(st *state) error {
		sh.ID = st.id()
		st.shipments[sh.ID] = *sh
		return nil
	})
}

func (r *ShipmentRepo) find(match func(entity.Shipment) bool) (*entity.Shipment, error) {
	var out *entity.Shipment
	err := r.s.with(func(st *state) error {
		for _, sh := range st.shipments {
			if match(sh) {
				if o, ok := st.orders[sh.OrderID]; ok {
					sh.Quantity = o.Quantity
				}
				out = &sh
				return nil
			}
		}
		return nil
	})
	return out, err
}

func (r *ShipmentRepo) GetByID(_ context.Context, id int64) (*entity.Shipment, error) {
	return r.find(func(sh entity.Shipment) bool { return sh.ID == id })
}

// GetForUpdate equivale a GetByID: la transacción ya tiene el mutex global.
func (r *ShipmentRepo) GetForUpdate(ctx context.Context, id int64) (*entity.Shipment, error) {
	return r.GetByID(ctx, id)
}

func (r *ShipmentRepo) GetByTracking(_ context.Context, code string) (*entity.Shipment, error) {
	return r.find(func(sh entity.Shipment) bool { return sh.TrackingCode == code })
}

func (r *ShipmentRepo) UpdateLocation(_ context.Context, id int64, lat, lng float64) (bool, error) {
	var ok bool
	err := r.s.with(func(st *state) error {
		sh, found := st.shipments[id]
		if !found || sh.Status != entity.ShipmentStatusInTransit {
			return nil
		}
		sh.Latitude, sh.Longitude = &lat, &lng
		st.shipments[id] = sh
		ok = true
		return nil
	})
	return ok, err
}

func (r *ShipmentRepo) MarkDelivered(_ context.Context, sh *entity.Shipment) error {
	return r.s.with(func(st *state) error {
		cur, ok := st.shipments[sh.ID]
		if !ok {
			return fmt.Errorf("envío %d: %w", sh.ID, domain.ErrNotFound)
		}
		if cur.Status != entity.ShipmentStatusInTransit {
			return &domain.StateError{Entity: "envío", Current: cur.Status, Expected: []string{entity.ShipmentStatusInTransit}}
		}
		cur.Status = sh.Status
		cur.DeliveredAt = sh.DeliveredAt
		cur.EvidenceURL = sh.EvidenceURL
		st.shipments[sh.ID] = cur
		return nil
	})
}

func (r *ShipmentRepo) list(match func(entity.Shipment) bool) ([]*entity.Shipment, error) {
	var out []*entity.Shipment
	err := r.s.with(func(st *state) error {
		for _, sh := range st.shipments {
			if match(sh) {
				sh := sh
				out = append(out, &sh)
			}
		}
		return nil
	})
	return out, err
}

func (r *ShipmentRepo) ListActive(context.Context) ([]*entity.Shipment, error) {
	return r.list(func(sh entity.Shipment) bool {
		return sh.Status == entity.ShipmentStatusInTransit || sh.Status == entity.ShipmentStatusPending
	})
}

func (r *ShipmentRepo) ListByCustomer(_ context.Context, customerID int64) ([]*entity.Shipment, error) {
	return r.list(func(sh entity.Shipment) bool { return sh.CustomerID == customerID })
}

func (r *ShipmentRepo) ListByCourier(_ context.Context, courierID int64) ([]*entity.Shipment, error) {
	return r.list(func(sh entity.Shipment) bool { return sh.CourierID != nil && *sh.CourierID == courierID })
}
