package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/smartstock-api/internal/domain"
	"github.com/jhoicas/smartstock-api/internal/domain/entity"
	"github.com/jhoicas/smartstock-api/internal/domain/repository"
)

var _ repository.OrderRepository = (*OrderRepo)(nil)

// OrderRepo pedidos. Las lecturas incluyen cliente y producto vía el contrato.
type OrderRepo struct {
	q Querier
}

// NewOrderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewOrderRepository(q Querier) *OrderRepo {
	return &OrderRepo{q: q}
}

const orderSelect = `
	SELECT p.id, p.contrato_id, p.cantidad, p.estado, p.estado_inventario,
	       COALESCE(p.porcentaje_uso_momento_pedido, 0), COALESCE(p.tarjetas_inactivas_momento_pedido, 0),
	       p.fecha_solicitud, p.fecha_aprobacion, p.aprobado_por, p.razon_rechazo,
	       c.cliente_id, c.producto_id, cl.nombre, pr.nombre
	FROM pedidos p
	JOIN contratos c ON c.id = p.contrato_id
	JOIN clientes cl ON cl.id = c.cliente_id
	JOIN productos pr ON pr.id = c.producto_id`

func scanOrder(row pgx.Row) (*entity.Order, error) {
	var o entity.Order
	err := row.Scan(&o.ID, &o.ContractID, &o.Quantity, &o.Status, &o.InventoryStatus,
		&o.UsagePctSnapshot, &o.InactiveSnapshot,
		&o.RequestedAt, &o.ApprovedAt, &o.ApprovedBy, &o.RejectionReason,
		&o.CustomerID, &o.ProductID, &o.CustomerName, &o.ProductName)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

// Create inserta el pedido y completa ID y RequestedAt.
func (r *OrderRepo) Create(ctx context.Context, o *entity.Order) error {
	query := `
		INSERT INTO pedidos (contrato_id, cantidad, estado, estado_inventario, fecha_aprobacion, aprobado_por,
		                     porcentaje_uso_momento_pedido, tarjetas_inactivas_momento_pedido)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, fecha_solicitud`
	err := r.q.QueryRow(ctx, query, o.ContractID, o.Quantity, o.Status, o.InventoryStatus,
		o.ApprovedAt, o.ApprovedBy, o.UsagePctSnapshot, o.InactiveSnapshot,
	).Scan(&o.ID, &o.RequestedAt)
	if err != nil {
		return wrapWrite("insert pedido", err)
	}
	return nil
}

func (r *OrderRepo) GetByID(ctx context.Context, id int64) (*entity.Order, error) {
	return r.get(ctx, orderSelect+` WHERE p.id = $1`, id)
}

// GetForUpdate bloquea la fila del pedido.
func (r *OrderRepo) GetForUpdate(ctx context.Context, id int64) (*entity.Order, error) {
	return r.get(ctx, orderSelect+` WHERE p.id = $1 FOR UPDATE OF p`, id)
}

func (r *OrderRepo) get(ctx context.Context, query string, id int64) (*entity.Order, error) {
	o, err := scanOrder(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if noRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get pedido: %w", err)
	}
	return o, nil
}

// UpdateStatus persiste estado, estado de inventario, aprobación, snapshots y razón de rechazo.
func (r *OrderRepo) UpdateStatus(ctx context.Context, o *entity.Order) error {
	query := `
		UPDATE pedidos
		SET estado = $2, estado_inventario = $3, fecha_aprobacion = $4, aprobado_por = $5,
		    razon_rechazo = $6, porcentaje_uso_momento_pedido = $7, tarjetas_inactivas_momento_pedido = $8
		WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query, o.ID, o.Status, o.InventoryStatus, o.ApprovedAt, o.ApprovedBy,
		o.RejectionReason, o.UsagePctSnapshot, o.InactiveSnapshot)
	if err != nil {
		return wrapWrite("update pedido", err)
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("pedido %d: %w", o.ID, domain.ErrNotFound)
	}
	return nil
}

// List todos los pedidos, más recientes primero.
func (r *OrderRepo) List(ctx context.Context) ([]*entity.Order, error) {
	rows, err := r.q.Query(ctx, orderSelect+` ORDER BY p.fecha_solicitud DESC, p.id DESC`)
	if err != nil {
		return nil, fmt.Errorf("list pedidos: %w", err)
	}
	return collect(rows, "pedidos", func(rows pgx.Rows) (*entity.Order, error) { return scanOrder(rows) })
}
