package inventoryservice_test

import (
	"context"
	"database/sql"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	inventoryservice "github.com/jcmexdev/storefront/internal/inventory-service"
	"github.com/jcmexdev/storefront/internal/inventory-service/domain"
	"github.com/jcmexdev/storefront/internal/store"
	"github.com/jcmexdev/storefront/internal/store/storetest"
)

func ledgerFixture() store.Fixture {
	return store.Fixture{
		Products: []store.ProductRow{
			{ID: "a", Name: "A", Price: decimal.NewFromInt(10), Active: true},
			{ID: "b", Name: "B", Price: decimal.NewFromInt(20), Active: true},
			{ID: "off", Name: "Retired", Price: decimal.NewFromInt(1), Active: false},
		},
		Warehouses: []store.WarehouseRow{
			{ID: "w1", Name: "W1", Active: true},
			{ID: "w2", Name: "W2", Active: true},
			{ID: "closed", Name: "Closed", Active: false},
		},
		Stock: []store.StockRow{
			{WarehouseID: "w1", ProductID: "a", Quantity: 5},
			{WarehouseID: "w2", ProductID: "a", Quantity: 3},
			{WarehouseID: "closed", ProductID: "a", Quantity: 100},
			{WarehouseID: "w1", ProductID: "b", Quantity: 2},
			{WarehouseID: "w1", ProductID: "off", Quantity: 9},
		},
	}
}

func newLedger(t *testing.T) (*inventoryservice.Ledger, *store.DB) {
	db := storetest.NewSeeded(t, ledgerFixture())
	return inventoryservice.NewLedger(db), db
}

func TestTotalStock(t *testing.T) {
	ledger, _ := newLedger(t)
	ctx := context.Background()

	tests := []struct {
		product string
		want    int
	}{
		{"a", 8},
		{"b", 2},
		{"off", 0},
		{"missing", 0},
	}
	for _, tt := range tests {
		t.Run(tt.product, func(t *testing.T) {
			got, err := ledger.TotalStock(ctx, tt.product)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestReserveAndDeduct_SplitsAcrossWarehouses(t *testing.T) {
	ledger, db := newLedger(t)
	ctx := context.Background()

	var deductions []domain.Deduction
	err := db.InTx(ctx, func(tx *sql.Tx) error {
		var err error
		deductions, err = ledger.ReserveAndDeduct(ctx, tx, []domain.LineRequest{{ProductID: "a", Quantity: 6}})
		return err
	})
	require.NoError(t, err)

	assert.Equal(t, []domain.Deduction{
		{WarehouseID: "w1", ProductID: "a", Quantity: 5},
		{WarehouseID: "w2", ProductID: "a", Quantity: 1},
	}, deductions)
	assert.Equal(t, 0, storetest.Quantity(t, db, "w1", "a"))
	assert.Equal(t, 2, storetest.Quantity(t, db, "w2", "a"))
	assert.Equal(t, 100, storetest.Quantity(t, db, "closed", "a"), "inactive warehouse must be untouched")
}

func TestReserveAndDeduct_AllOrNothing(t *testing.T) {
	ledger, db := newLedger(t)
	ctx := context.Background()

	err := db.InTx(ctx, func(tx *sql.Tx) error {
		_, err := ledger.ReserveAndDeduct(ctx, tx, []domain.LineRequest{
			{ProductID: "a", Quantity: 1},
			{ProductID: "b", Quantity: 3},
		})
		return err
	})

	var insufficient *domain.InsufficientStockError
	require.ErrorAs(t, err, &insufficient)
	assert.Equal(t, "b", insufficient.ProductID)
	assert.Equal(t, 3, insufficient.Needed)
	assert.Equal(t, 2, insufficient.Available)

	assert.Equal(t, 5, storetest.Quantity(t, db, "w1", "a"))
	assert.Equal(t, 2, storetest.Quantity(t, db, "w1", "b"))
}

func TestReserve_MergesDuplicateLines(t *testing.T) {
	ledger, db := newLedger(t)
	ctx := context.Background()

	err := db.InTx(ctx, func(tx *sql.Tx) error {
		_, err := ledger.Reserve(ctx, tx, []domain.LineRequest{
			{ProductID: "a", Quantity: 5},
			{ProductID: "a", Quantity: 4},
		})
		return err
	})

	var insufficient *domain.InsufficientStockError
	require.ErrorAs(t, err, &insufficient)
	assert.Equal(t, 9, insufficient.Needed)
	assert.Equal(t, 8, insufficient.Available)
}

func TestReserve_InactiveProductHasNoStock(t *testing.T) {
	ledger, db := newLedger(t)
	ctx := context.Background()

	err := db.InTx(ctx, func(tx *sql.Tx) error {
		_, err := ledger.Reserve(ctx, tx, []domain.LineRequest{{ProductID: "off", Quantity: 1}})
		return err
	})

	var insufficient *domain.InsufficientStockError
	require.ErrorAs(t, err, &insufficient)
	assert.Zero(t, insufficient.Available)
}

func TestReserveAndDeduct_Concurrent(t *testing.T) {
	ledger, db := newLedger(t)
	ctx := context.Background()

	const buyers = 12
	var wg sync.WaitGroup
	var mu sync.Mutex
	sold := 0
	for i := 0; i < buyers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := db.InTx(ctx, func(tx *sql.Tx) error {
				_, err := ledger.ReserveAndDeduct(ctx, tx, []domain.LineRequest{{ProductID: "a", Quantity: 1}})
				return err
			})
			if err == nil {
				mu.Lock()
				sold++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	total, err := ledger.TotalStock(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, 8, sold)
	assert.Zero(t, total)
}

func TestAddStock(t *testing.T) {
	ledger, db := newLedger(t)
	ctx := context.Background()

	entry, err := ledger.AddStock(ctx, "w2", "b", 4)
	require.NoError(t, err)
	assert.Equal(t, 4, entry.Quantity)

	entry, err = ledger.AddStock(ctx, "w2", "b", 1)
	require.NoError(t, err)
	assert.Equal(t, 5, entry.Quantity)
	assert.Equal(t, 5, storetest.Quantity(t, db, "w2", "b"))

	_, err = ledger.AddStock(ctx, "w2", "b", 0)
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)

	_, err = ledger.AddStock(ctx, "nowhere", "b", 1)
	assert.ErrorIs(t, err, domain.ErrWarehouseNotFound)

	_, err = ledger.AddStock(ctx, "w1", "ghost", 1)
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}

func TestSetStock(t *testing.T) {
	ledger, db := newLedger(t)
	ctx := context.Background()

	_, err := ledger.SetStock(ctx, "w1", "a", 11)
	require.NoError(t, err)
	assert.Equal(t, 11, storetest.Quantity(t, db, "w1", "a"))

	_, err = ledger.SetStock(ctx, "w1", "a", 0)
	require.NoError(t, err)
	assert.Equal(t, 4, storetest.Count(t, db, "warehouse_stock"))

	_, err = ledger.SetStock(ctx, "w1", "a", -1)
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)
}

func TestRemoveStock(t *testing.T) {
	ledger, _ := newLedger(t)
	ctx := context.Background()

	require.NoError(t, ledger.RemoveStock(ctx, "w2", "a"))
	assert.ErrorIs(t, ledger.RemoveStock(ctx, "w2", "a"), domain.ErrEntryNotFound)

	total, err := ledger.TotalStock(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, 5, total)
}
