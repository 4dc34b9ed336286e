// Package storetest opens throwaway SQLite stores for package tests.
package storetest

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jcmexdev/storefront/internal/store"
)

// New returns a migrated SQLite store in t's temp dir, closed on cleanup.
func New(t testing.TB) *store.DB {
	t.Helper()

	db, err := store.OpenSQLite(context.Background(), filepath.Join(t.TempDir(), "storefront.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, db.Migrate(context.Background()))
	return db
}

// NewSeeded is New plus the given fixture.
func NewSeeded(t testing.TB, f store.Fixture) *store.DB {
	t.Helper()

	db := New(t)
	require.NoError(t, db.Seed(context.Background(), f))
	return db
}

// Quantity reads a single ledger row, returning 0 when it is absent.
func Quantity(t testing.TB, db *store.DB, warehouseID, productID string) int {
	t.Helper()

	var q int
	rows, err := db.QueryContext(context.Background(),
		"SELECT stock_quantity FROM warehouse_stock WHERE warehouse_id = ? AND product_id = ?", warehouseID, productID)
	require.NoError(t, err)
	defer rows.Close()
	if rows.Next() {
		require.NoError(t, rows.Scan(&q))
	}
	require.NoError(t, rows.Err())
	return q
}

// Count returns the number of rows in table.
func Count(t testing.TB, db *store.DB, table string) int {
	t.Helper()

	var n int
	require.NoError(t, db.QueryRowContext(context.Background(), "SELECT COUNT(*) FROM "+table).Scan(&n))
	return n
}
