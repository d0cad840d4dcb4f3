package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/smartstock-api/internal/domain/entity"
	"github.com/jhoicas/smartstock-api/internal/domain/repository"
)

var _ repository.InventoryStateRepository = (*InventoryStateRepo)(nil)

// InventoryStateRepo implementación de InventoryStateRepository sobre estados_inventario.
type InventoryStateRepo struct {
	q Querier
}

// NewInventoryStateRepository construye el adaptador. Acepta pool o tx (Querier).
func NewInventoryStateRepository(q Querier) *InventoryStateRepo {
	return &InventoryStateRepo{q: q}
}

const stateSelect = `
	SELECT ei.producto_id, p.nombre, ei.stock_disponible, ei.stock_en_transito,
	       ei.stock_recibido_cliente, ei.stock_total, ei.ultima_actualizacion
	FROM estados_inventario ei
	JOIN productos p ON p.id = ei.producto_id`

func scanState(row pgx.Row) (*entity.InventoryState, error) {
	var s entity.InventoryState
	err := row.Scan(&s.ProductID, &s.ProductName, &s.Available, &s.InTransit, &s.Received, &s.Total, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *InventoryStateRepo) GetByProduct(ctx context.Context, productID int64) (*entity.InventoryState, error) {
	return r.get(ctx, stateSelect+` WHERE ei.producto_id = $1`, productID)
}

func (r *InventoryStateRepo) GetForUpdate(ctx context.Context, productID int64) (*entity.InventoryState, error) {
	return r.get(ctx, stateSelect+` WHERE ei.producto_id = $1 FOR UPDATE OF ei`, productID)
}

func (r *InventoryStateRepo) get(ctx context.Context, query string, productID int64) (*entity.InventoryState, error) {
	s, err := scanState(r.q.QueryRow(ctx, query, productID))
	if err != nil {
		if noRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get estado de inventario: %w", err)
	}
	return s, nil
}

// Save inserta o reemplaza el estado del producto.
func (r *InventoryStateRepo) Save(ctx context.Context, s *entity.InventoryState) error {
	query := `
		INSERT INTO estados_inventario (producto_id, stock_disponible, stock_en_transito, stock_recibido_cliente, stock_total, ultima_actualizacion)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (producto_id)
		DO UPDATE SET stock_disponible = EXCLUDED.stock_disponible,
		              stock_en_transito = EXCLUDED.stock_en_transito,
		              stock_recibido_cliente = EXCLUDED.stock_recibido_cliente,
		              stock_total = EXCLUDED.stock_total,
		              ultima_actualizacion = EXCLUDED.ultima_actualizacion`
	_, err := r.q.Exec(ctx, query, s.ProductID, s.Available, s.InTransit, s.Received, s.Total, s.UpdatedAt)
	if err != nil {
		return wrapWrite("upsert estado de inventario", err)
	}
	return nil
}

// List estados de todos los productos ordenados por nombre.
func (r *InventoryStateRepo) List(ctx context.Context) ([]*entity.InventoryState, error) {
	rows, err := r.q.Query(ctx, stateSelect+` ORDER BY p.nombre`)
	if err != nil {
		return nil, fmt.Errorf("list estados de inventario: %w", err)
	}
	return collect(rows, "estados de inventario", func(rows pgx.Rows) (*entity.InventoryState, error) { return scanState(rows) })
}

// Summary suma los contadores de todos los productos.
func (r *InventoryStateRepo) Summary(ctx context.Context) (*entity.InventorySummary, error) {
	query := `
		SELECT COUNT(*),
		       COALESCE(SUM(stock_disponible), 0),
		       COALESCE(SUM(stock_en_transito), 0),
		       COALESCE(SUM(stock_recibido_cliente), 0),
		       COALESCE(SUM(stock_total), 0)
		FROM estados_inventario`
	var s entity.InventorySummary
	if err := r.q.QueryRow(ctx, query).Scan(&s.Products, &s.Available, &s.InTransit, &s.Received, &s.Total); err != nil {
		return nil, fmt.Errorf("resumen de inventario: %w", err)
	}
	return &s, nil
}
