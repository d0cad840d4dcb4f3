package inventory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/smartstock-api/internal/application/inventory"
	"github.com/jhoicas/smartstock-api/internal/domain"
	"github.com/jhoicas/smartstock-api/internal/domain/entity"
	"github.com/jhoicas/smartstock-api/internal/testutil/memdb"
)

var fixedNow = time.Date(2025, 4, 2, 8, 0, 0, 0, time.UTC)

func newUseCase(t *testing.T, stock int) (*memdb.DB, *inventory.UseCase, int64) {
	t.Helper()
	db := memdb.New()
	pid := db.AddProduct(entity.Product{Name: "Vale Gasolina", StockCurrent: stock})
	_, products, _, states, history, _ := db.Repos()
	uc := inventory.NewUseCase(db, products, states, history).WithClock(func() time.Time { return fixedNow })
	return db, uc, pid
}

// ──────────────────────────────────────────────────────────────────────────────
// AdjustStock
// ──────────────────────────────────────────────────────────────────────────────

func TestAdjustStock_Entrada(t *testing.T) {
	db, uc, pid := newUseCase(t, 10)
	user := int64(4)

	res, err := uc.AdjustStock(context.Background(), inventory.AdjustInput{ProductID: pid, Delta: 15, UserID: &user})
	require.NoError(t, err)
	assert.Equal(t, 10, res.StockBefore)
	assert.Equal(t, 25, res.StockAfter)

	assert.Equal(t, 25, db.Product(pid).StockCurrent)
	assert.Equal(t, fixedNow, db.Product(pid).UpdatedAt)
	state := db.State(pid)
	assert.Equal(t, 25, state.Available)
	assert.Equal(t, 25, state.Total)

	hist := db.History()
	require.Len(t, hist, 1)
	assert.Equal(t, entity.StockReasonManualAdjustment, hist[0].Reason)
	assert.Equal(t, 10, hist[0].Before)
	assert.Equal(t, 25, hist[0].After)
	require.NotNil(t, hist[0].UserID)
	assert.Equal(t, user, *hist[0].UserID)
}

func TestAdjustStock_SalidaConRazon(t *testing.T) {
	db, uc, pid := newUseCase(t, 10)

	_, err := uc.AdjustStock(context.Background(), inventory.AdjustInput{ProductID: pid, Delta: -4, Reason: "merma"})
	require.NoError(t, err)
	assert.Equal(t, 6, db.Product(pid).StockCurrent)
	assert.Equal(t, "merma", db.History()[0].Reason)
}

func TestAdjustStock_NoPermiteNegativo(t *testing.T) {
	db, uc, pid := newUseCase(t, 3)

	_, err := uc.AdjustStock(context.Background(), inventory.AdjustInput{ProductID: pid, Delta: -5})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInsufficientStock))

	var se *domain.StockError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, 2, se.Shortfall())
	assert.Equal(t, 3, db.Product(pid).StockCurrent)
	assert.Empty(t, db.History())
}

func TestAdjustStock_Validaciones(t *testing.T) {
	_, uc, pid := newUseCase(t, 3)

	_, err := uc.AdjustStock(context.Background(), inventory.AdjustInput{ProductID: pid})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))

	_, err = uc.AdjustStock(context.Background(), inventory.AdjustInput{ProductID: 999, Delta: 1})
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestAdjustStock_FallaHistorialRevierte(t *testing.T) {
	db, uc, pid := newUseCase(t, 10)
	db.FailOn["history.Append"] = errors.New("timeout")

	_, err := uc.AdjustStock(context.Background(), inventory.AdjustInput{ProductID: pid, Delta: 5})
	require.Error(t, err)
	assert.Equal(t, 10, db.Product(pid).StockCurrent)
	assert.Equal(t, 10, db.State(pid).Available)
}

// ──────────────────────────────────────────────────────────────────────────────
// Consultas
// ──────────────────────────────────────────────────────────────────────────────

func TestSummaryYEstado(t *testing.T) {
	db, uc, pid := newUseCase(t, 10)
	db.AddProduct(entity.Product{Name: "Vale Despensa", StockCurrent: 5})

	sum, err := uc.Summary(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, sum.Products)
	assert.Equal(t, 15, sum.Available)
	assert.Equal(t, 15, sum.Total)

	st, err := uc.State(context.Background(), pid)
	require.NoError(t, err)
	assert.Equal(t, 10, st.Available)

	_, err = uc.State(context.Background(), 12345)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestMovements_MasRecientePrimero(t *testing.T) {
	_, uc, pid := newUseCase(t, 10)
	for _, d := range []int{1, 2, 3} {
		_, err := uc.AdjustStock(context.Background(), inventory.AdjustInput{ProductID: pid, Delta: d})
		require.NoError(t, err)
	}

	movs, err := uc.Movements(context.Background())
	require.NoError(t, err)
	require.Len(t, movs, 3)
	assert.Equal(t, 16, movs[0].After)
	assert.Equal(t, 11, movs[2].After)
}
