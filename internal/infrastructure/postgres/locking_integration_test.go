//go:build integration

// Pruebas contra PostgreSQL real: los bloqueos FOR UPDATE solo se ejercitan con una base
// de datos. Ejecutar con:
//
//	TEST_DATABASE_URL=postgres://... go test -tags integration ./internal/infrastructure/postgres/
package postgres_test

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/smartstock-api/internal/application/ordering"
	"github.com/jhoicas/smartstock-api/internal/application/shipping"
	"github.com/jhoicas/smartstock-api/internal/domain"
	"github.com/jhoicas/smartstock-api/internal/infrastructure/postgres"
	"github.com/jhoicas/smartstock-api/migrations"
	"github.com/jhoicas/smartstock-api/pkg/config"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

func testPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL no definido")
	}
	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, config.DBConfig{DatabaseURL: url, MaxConns: 8})
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	_, err = postgres.Migrate(ctx, pool, migrations.FS)
	require.NoError(t, err)
	return pool
}

type seeded struct {
	productID  int64
	contractID int64
}

// seed crea cliente, producto con stock y contrato vigente con cupo de sobra.
func seed(t *testing.T, pool *pgxpool.Pool, stock int) seeded {
	t.Helper()
	ctx := context.Background()
	suffix := time.Now().UnixNano() % 1_000_000_000

	var customerID, productID, contractID int64
	require.NoError(t, pool.QueryRow(ctx, `
		INSERT INTO clientes (nombre, rfc, contacto_email, password)
		VALUES ($1, $2, $3, 'x') RETURNING id`,
		fmt.Sprintf("Cliente %d", suffix), fmt.Sprintf("ITG%09d", suffix), fmt.Sprintf("itg%d@test.mx", suffix),
	).Scan(&customerID))
	require.NoError(t, pool.QueryRow(ctx, `
		INSERT INTO productos (nombre, stock_actual) VALUES ('Tarjeta Integración', $1) RETURNING id`, stock,
	).Scan(&productID))
	_, err := pool.Exec(ctx, `
		INSERT INTO estados_inventario (producto_id, stock_disponible, stock_total) VALUES ($1, $2, $2)`, productID, stock)
	require.NoError(t, err)
	require.NoError(t, pool.QueryRow(ctx, `
		INSERT INTO contratos (cliente_id, producto_id, tarjetas_maximas) VALUES ($1, $2, 1000) RETURNING id`,
		customerID, productID,
	).Scan(&contractID))
	return seeded{productID: productID, contractID: contractID}
}

// concurrently corre fn n veces a la vez y devuelve los errores en orden.
func concurrently(n int, fn func() error) []error {
	errs := make([]error, n)
	start := make(chan struct{})
	var wg sync.WaitGroup
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			<-start
			errs[i] = fn()
		}(i)
	}
	close(start)
	wg.Wait()
	return errs
}

// ──────────────────────────────────────────────────────────────────────────────
// Reserva con FOR UPDATE
// ──────────────────────────────────────────────────────────────────────────────

func TestReserve_ConcurrentesContraPostgres(t *testing.T) {
	pool := testPool(t)
	s := seed(t, pool, 10)
	uc := ordering.NewUseCase(postgres.NewTxRunner(pool), postgres.NewOrderRepository(pool), postgres.NewContractRepository(pool))

	errs := concurrently(4, func() error {
		_, err := uc.Reserve(context.Background(), ordering.ReserveInput{ContractID: s.contractID, Quantity: 6})
		return err
	})

	var ok int
	for _, err := range errs {
		if err == nil {
			ok++
			continue
		}
		assert.True(t, errors.Is(err, domain.ErrInsufficientStock), "error inesperado: %v", err)
	}
	assert.Equal(t, 1, ok, "exactamente una reserva debe confirmarse")

	var stock, issued, available, inTransit int
	require.NoError(t, pool.QueryRow(context.Background(),
		`SELECT stock_actual FROM productos WHERE id = $1`, s.productID).Scan(&stock))
	require.NoError(t, pool.QueryRow(context.Background(),
		`SELECT tarjetas_emitidas FROM contratos WHERE id = $1`, s.contractID).Scan(&issued))
	require.NoError(t, pool.QueryRow(context.Background(),
		`SELECT stock_disponible, stock_en_transito FROM estados_inventario WHERE producto_id = $1`, s.productID).
		Scan(&available, &inTransit))
	assert.Equal(t, 4, stock)
	assert.Equal(t, 6, issued)
	assert.Equal(t, 4, available)
	assert.Equal(t, 6, inTransit)
}

// ──────────────────────────────────────────────────────────────────────────────
// Entrega con FOR UPDATE del envío
// ──────────────────────────────────────────────────────────────────────────────

func TestDeliver_ConcurrentesContraPostgres(t *testing.T) {
	pool := testPool(t)
	s := seed(t, pool, 20)
	txRunner := postgres.NewTxRunner(pool)
	orders := ordering.NewUseCase(txRunner, postgres.NewOrderRepository(pool), postgres.NewContractRepository(pool))
	ships := shipping.NewUseCase(txRunner, postgres.NewShipmentRepository(pool), postgres.NewCourierRepository(pool), nil)

	res, err := orders.Reserve(context.Background(), ordering.ReserveInput{ContractID: s.contractID, Quantity: 5})
	require.NoError(t, err)
	sh, err := ships.Create(context.Background(), shipping.CreateInput{OrderID: res.Order.ID})
	require.NoError(t, err)

	errs := concurrently(3, func() error {
		_, err := ships.Deliver(context.Background(), sh.ID, "")
		return err
	})

	var ok int
	for _, err := range errs {
		if err == nil {
			ok++
			continue
		}
		assert.True(t, errors.Is(err, domain.ErrInvalidState), "error inesperado: %v", err)
	}
	assert.Equal(t, 1, ok, "solo una confirmación de entrega")

	var inTransit, received, entries int
	require.NoError(t, pool.QueryRow(context.Background(),
		`SELECT stock_en_transito, stock_recibido_cliente FROM estados_inventario WHERE producto_id = $1`, s.productID).
		Scan(&inTransit, &received))
	require.NoError(t, pool.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM historial_stock WHERE producto_id = $1 AND razon = 'entrega_confirmada'`, s.productID).
		Scan(&entries))
	assert.Equal(t, 0, inTransit)
	assert.Equal(t, 5, received)
	assert.Equal(t, 1, entries)
}
