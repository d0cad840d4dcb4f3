package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/smartstock-api/internal/application/inventory"
	"github.com/jhoicas/smartstock-api/internal/application/ordering"
	"github.com/jhoicas/smartstock-api/internal/application/shipping"
	"github.com/jhoicas/smartstock-api/internal/domain/repository"
)

var (
	_ ordering.TxRunner  = (*TxRunner)(nil)
	_ shipping.TxRunner  = (*TxRunner)(nil)
	_ inventory.TxRunner = (*TxRunner)(nil)
)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// inTx abre la transacción, ejecuta fn y hace Commit. Cualquier salida sin Commit
// (error o panic) revierte vía el Rollback diferido.
func (r *TxRunner) inTx(ctx context.Context, fn func(tx pgx.Tx) error) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted})
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// Run transacción del flujo de pedidos (reserva, aprobación, rechazo).
func (r *TxRunner) Run(ctx context.Context, fn func(
	contractRepo repository.ContractRepository,
	productRepo repository.ProductRepository,
	orderRepo repository.OrderRepository,
	stateRepo repository.InventoryStateRepository,
	historyRepo repository.StockHistoryRepository,
) error) error {
	return r.inTx(ctx, func(tx pgx.Tx) error {
		return fn(
			NewContractRepository(tx),
			NewProductRepository(tx),
			NewOrderRepository(tx),
			NewInventoryStateRepository(tx),
			NewStockHistoryRepository(tx),
		)
	})
}

// RunShipping transacción de creación y entrega de envíos.
func (r *TxRunner) RunShipping(ctx context.Context, fn func(
	orderRepo repository.OrderRepository,
	shipmentRepo repository.ShipmentRepository,
	stateRepo repository.InventoryStateRepository,
	historyRepo repository.StockHistoryRepository,
) error) error {
	return r.inTx(ctx, func(tx pgx.Tx) error {
		return fn(
			NewOrderRepository(tx),
			NewShipmentRepository(tx),
			NewInventoryStateRepository(tx),
			NewStockHistoryRepository(tx),
		)
	})
}

// RunStock transacción de ajustes manuales de stock.
func (r *TxRunner) RunStock(ctx context.Context, fn func(
	productRepo repository.ProductRepository,
	stateRepo repository.InventoryStateRepository,
	historyRepo repository.StockHistoryRepository,
) error) error {
	return r.inTx(ctx, func(tx pgx.Tx) error {
		return fn(
			NewProductRepository(tx),
			NewInventoryStateRepository(tx),
			NewStockHistoryRepository(tx),
		)
	})
}
