package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/smartstock-api/internal/domain"
	"github.com/jhoicas/smartstock-api/internal/domain/entity"
	"github.com/jhoicas/smartstock-api/internal/domain/repository"
)

var (
	_ repository.ShipmentRepository = (*ShipmentRepo)(nil)
	_ repository.CourierRepository  = (*CourierRepo)(nil)
)

// ShipmentRepo envíos con datos de pedido, cliente, producto y repartidor.
type ShipmentRepo struct {
	q Querier
}

// NewShipmentRepository construye el adaptador. Pasar pool o tx (Querier).
func NewShipmentRepository(q Querier) *ShipmentRepo {
	return &ShipmentRepo{q: q}
}

// El repartidor es opcional: LEFT JOIN.
const shipmentSelect = `
	SELECT e.id, e.pedido_id, e.repartidor_id, e.tracking_code, e.status,
	       e.ubicacion_actual_lat, e.ubicacion_actual_lng, e.fecha_salida, e.fecha_entrega, e.evidencia_foto_url,
	       p.cantidad, c.cliente_id, cl.nombre, pr.nombre, COALESCE(r.nombre, '')
	FROM envios e
	JOIN pedidos p ON p.id = e.pedido_id
	JOIN contratos c ON c.id = p.contrato_id
	JOIN clientes cl ON cl.id = c.cliente_id
	JOIN productos pr ON pr.id = c.producto_id
	LEFT JOIN repartidores r ON r.id = e.repartidor_id`

func scanShipment(row pgx.Row) (*entity.Shipment, error) {
	var s entity.Shipment
	err := row.Scan(&s.ID, &s.OrderID, &s.CourierID, &s.TrackingCode, &s.Status,
		&s.Latitude, &s.Longitude, &s.DepartedAt, &s.DeliveredAt, &s.EvidenceURL,
		&s.Quantity, &s.CustomerID, &s.CustomerName, &s.ProductName, &s.CourierName)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// Create inserta el envío y completa su ID. Un pedido solo admite un envío (UNIQUE pedido_id).
func (r *ShipmentRepo) Create(ctx context.Context, s *entity.Shipment) error {
	query := `
		INSERT INTO envios (pedido_id, repartidor_id, tracking_code, fecha_salida, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`
	if err := r.q.QueryRow(ctx, query, s.OrderID, s.CourierID, s.TrackingCode, s.DepartedAt, s.Status).Scan(&s.ID); err != nil {
		return wrapWrite("insert envío", err)
	}
	return nil
}

func (r *ShipmentRepo) GetByID(ctx context.Context, id int64) (*entity.Shipment, error) {
	return r.get(ctx, shipmentSelect+` WHERE e.id = $1`, id)
}

// GetForUpdate bloquea solo la fila de envios (FOR UPDATE OF e), no las tablas del JOIN.
func (r *ShipmentRepo) GetForUpdate(ctx context.Context, id int64) (*entity.Shipment, error) {
	return r.get(ctx, shipmentSelect+` WHERE e.id = $1 FOR UPDATE OF e`, id)
}

func (r *ShipmentRepo) GetByTracking(ctx context.Context, code string) (*entity.Shipment, error) {
	return r.get(ctx, shipmentSelect+` WHERE e.tracking_code = $1`, code)
}

func (r *ShipmentRepo) get(ctx context.Context, query string, arg any) (*entity.Shipment, error) {
	s, err := scanShipment(r.q.QueryRow(ctx, query, arg))
	if err != nil {
		if noRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get envío: %w", err)
	}
	return s, nil
}

// UpdateLocation solo actualiza envíos en tránsito.
func (r *ShipmentRepo) UpdateLocation(ctx context.Context, id int64, lat, lng float64) (bool, error) {
	cmd, err := r.q.Exec(ctx, `
		UPDATE envios SET ubicacion_actual_lat = $2, ubicacion_actual_lng = $3
		WHERE id = $1 AND status = $4`, id, lat, lng, entity.ShipmentStatusInTransit)
	if err != nil {
		return false, fmt.Errorf("update ubicación: %w", err)
	}
	return cmd.RowsAffected() > 0, nil
}

// MarkDelivered persiste estado, fecha de entrega y evidencia si el envío sigue en tránsito.
func (r *ShipmentRepo) MarkDelivered(ctx context.Context, s *entity.Shipment) error {
	cmd, err := r.q.Exec(ctx, `
		UPDATE envios SET status = $2, fecha_entrega = $3, evidencia_foto_url = $4
		WHERE id = $1 AND status = $5`, s.ID, s.Status, s.DeliveredAt, s.EvidenceURL, entity.ShipmentStatusInTransit)
	if err != nil {
		return wrapWrite("update envío entregado", err)
	}
	if cmd.RowsAffected() > 0 {
		return nil
	}
	var current string
	if err := r.q.QueryRow(ctx, `SELECT status FROM envios WHERE id = $1`, s.ID).Scan(&current); err != nil {
		if noRows(err) {
			return fmt.Errorf("envío %d: %w", s.ID, domain.ErrNotFound)
		}
		return fmt.Errorf("estado de envío: %w", err)
	}
	return &domain.StateError{Entity: "envío", Current: current, Expected: []string{entity.ShipmentStatusInTransit}}
}

// ListActive envíos pendientes o en tránsito.
func (r *ShipmentRepo) ListActive(ctx context.Context) ([]*entity.Shipment, error) {
	return r.list(ctx, shipmentSelect+` WHERE e.status IN ($1, $2) ORDER BY e.fecha_salida DESC`,
		entity.ShipmentStatusPending, entity.ShipmentStatusInTransit)
}

func (r *ShipmentRepo) ListByCustomer(ctx context.Context, customerID int64) ([]*entity.Shipment, error) {
	return r.list(ctx, shipmentSelect+` WHERE c.cliente_id = $1 ORDER BY e.fecha_salida DESC`, customerID)
}

// ListByCourier envíos activos del repartidor.
func (r *ShipmentRepo) ListByCourier(ctx context.Context, courierID int64) ([]*entity.Shipment, error) {
	return r.list(ctx, shipmentSelect+` WHERE e.repartidor_id = $1 AND e.status IN ($2, $3) ORDER BY e.fecha_salida DESC`,
		courierID, entity.ShipmentStatusPending, entity.ShipmentStatusInTransit)
}

func (r *ShipmentRepo) list(ctx context.Context, query string, args ...any) ([]*entity.Shipment, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list envíos: %w", err)
	}
	return collect(rows, "envíos", func(rows pgx.Rows) (*entity.Shipment, error) { return scanShipment(rows) })
}

// ── Repartidores ─────────────────────────────────────────────────────────────

const courierAvailable = "disponible"

// CourierRepo repartidores.
type CourierRepo struct {
	q Querier
}

// NewCourierRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCourierRepository(q Querier) *CourierRepo {
	return &CourierRepo{q: q}
}

func scanCourier(row pgx.Row) (*entity.Courier, error) {
	var c entity.Courier
	var status string
	if err := row.Scan(&c.ID, &c.Name, &c.Phone, &c.Vehicle, &status); err != nil {
		return nil, err
	}
	c.Available = status == courierAvailable
	return &c, nil
}

// Create registra al repartidor como disponible.
func (r *CourierRepo) Create(ctx context.Context, c *entity.Courier) error {
	err := r.q.QueryRow(ctx, `
		INSERT INTO repartidores (nombre, telefono, vehiculo, status)
		VALUES ($1, NULLIF($2, ''), NULLIF($3, ''), $4)
		RETURNING id`, c.Name, c.Phone, c.Vehicle, courierAvailable).Scan(&c.ID)
	if err != nil {
		return wrapWrite("insert repartidor", err)
	}
	c.Available = true
	return nil
}

func (r *CourierRepo) GetByID(ctx context.Context, id int64) (*entity.Courier, error) {
	c, err := scanCourier(r.q.QueryRow(ctx, `
		SELECT id, nombre, COALESCE(telefono, ''), COALESCE(vehiculo, ''), status
		FROM repartidores WHERE id = $1`, id))
	if err != nil {
		if noRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get repartidor: %w", err)
	}
	return c, nil
}

func (r *CourierRepo) ListAvailable(ctx context.Context) ([]*entity.Courier, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, nombre, COALESCE(telefono, ''), COALESCE(vehiculo, ''), status
		FROM repartidores WHERE status = $1 ORDER BY nombre`, courierAvailable)
	if err != nil {
		return nil, fmt.Errorf("list repartidores: %w", err)
	}
	return collect(rows, "repartidores", func(rows pgx.Rows) (*entity.Courier, error) { return scanCourier(rows) })
}
