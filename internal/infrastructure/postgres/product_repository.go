package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/smartstock-api/internal/domain"
	"github.com/jhoicas/smartstock-api/internal/domain/entity"
	"github.com/jhoicas/smartstock-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

const productColumns = `id, nombre, stock_actual, stock_minimo, stock_maximo, ultima_actualizacion`

func scanProduct(row pgx.Row) (*entity.Product, error) {
	var p entity.Product
	if err := row.Scan(&p.ID, &p.Name, &p.StockCurrent, &p.StockMin, &p.StockMax, &p.UpdatedAt); err != nil {
		return nil, err
	}
	return &p, nil
}

// GetByID obtiene un producto por ID.
func (r *ProductRepo) GetByID(ctx context.Context, id int64) (*entity.Product, error) {
	return r.get(ctx, `SELECT `+productColumns+` FROM productos WHERE id = $1`, id)
}

// GetForUpdate bloquea la fila hasta el fin de la transacción.
func (r *ProductRepo) GetForUpdate(ctx context.Context, id int64) (*entity.Product, error) {
	return r.get(ctx, `SELECT `+productColumns+` FROM productos WHERE id = $1 FOR UPDATE`, id)
}

func (r *ProductRepo) get(ctx context.Context, query string, id int64) (*entity.Product, error) {
	p, err := scanProduct(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if noRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get producto: %w", err)
	}
	return p, nil
}

// List lista productos por nombre.
func (r *ProductRepo) List(ctx context.Context) ([]*entity.Product, error) {
	rows, err := r.q.Query(ctx, `SELECT `+productColumns+` FROM productos ORDER BY nombre`)
	if err != nil {
		return nil, fmt.Errorf("list productos: %w", err)
	}
	return collect(rows, "productos", func(rows pgx.Rows) (*entity.Product, error) { return scanProduct(rows) })
}

// ListStockAlerts lee la vista v_alertas_stock (solo niveles CRITICO y BAJO).
func (r *ProductRepo) ListStockAlerts(ctx context.Context) ([]*entity.StockAlert, error) {
	query := `
		SELECT producto_id, nombre, stock_actual, stock_minimo, estado_stock
		FROM v_alertas_stock
		WHERE estado_stock IN ('CRITICO', 'BAJO')
		ORDER BY stock_actual - stock_minimo, nombre`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list alertas de stock: %w", err)
	}
	return collect(rows, "alertas de stock", func(rows pgx.Rows) (*entity.StockAlert, error) {
		var a entity.StockAlert
		err := rows.Scan(&a.ProductID, &a.ProductName, &a.StockCurrent, &a.StockMin, &a.Level)
		return &a, err
	})
}

// UpdateStock fija el stock físico. El CHECK stock_actual >= 0 de la tabla respalda la validación del dominio.
func (r *ProductRepo) UpdateStock(ctx context.Context, id int64, stock int, at time.Time) error {
	cmd, err := r.q.Exec(ctx,
		`UPDATE productos SET stock_actual = $2, ultima_actualizacion = $3 WHERE id = $1`,
		id, stock, at,
	)
	if err != nil {
		return wrapWrite("update stock producto", err)
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("producto %d: %w", id, domain.ErrNotFound)
	}
	return nil
}
