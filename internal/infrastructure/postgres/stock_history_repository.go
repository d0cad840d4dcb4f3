package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/smartstock-api/internal/domain/entity"
	"github.com/jhoicas/smartstock-api/internal/domain/repository"
)

var _ repository.StockHistoryRepository = (*StockHistoryRepo)(nil)

// StockHistoryRepo historial_stock (append-only).
type StockHistoryRepo struct {
	q Querier
}

// NewStockHistoryRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockHistoryRepository(q Querier) *StockHistoryRepo {
	return &StockHistoryRepo{q: q}
}

// Append inserta el movimiento y completa su ID.
func (r *StockHistoryRepo) Append(ctx context.Context, e *entity.StockHistoryEntry) error {
	query := `
		INSERT INTO historial_stock (producto_id, cantidad_anterior, cantidad_nueva, razon, usuario_id, fecha)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`
	if err := r.q.QueryRow(ctx, query, e.ProductID, e.Before, e.After, e.Reason, e.UserID, e.CreatedAt).Scan(&e.ID); err != nil {
		return wrapWrite("insert historial_stock", err)
	}
	return nil
}

// ListRecent últimos movimientos con el nombre del producto.
func (r *StockHistoryRepo) ListRecent(ctx context.Context, limit int) ([]*entity.StockHistoryEntry, error) {
	query := `
		SELECT h.id, h.producto_id, p.nombre, h.cantidad_anterior, h.cantidad_nueva, h.razon, h.usuario_id, h.fecha
		FROM historial_stock h
		JOIN productos p ON p.id = h.producto_id
		ORDER BY h.fecha DESC, h.id DESC
		LIMIT $1`
	rows, err := r.q.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("list historial_stock: %w", err)
	}
	return collect(rows, "historial_stock", func(rows pgx.Rows) (*entity.StockHistoryEntry, error) {
		var e entity.StockHistoryEntry
		err := rows.Scan(&e.ID, &e.ProductID, &e.ProductName, &e.Before, &e.After, &e.Reason, &e.UserID, &e.CreatedAt)
		return &e, err
	})
}
