package app_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jcmexdev/storefront/internal/order-service/app"
	"github.com/jcmexdev/storefront/internal/order-service/domain"
	"github.com/jcmexdev/storefront/internal/order-service/progression"
	"github.com/jcmexdev/storefront/internal/store"
	"github.com/jcmexdev/storefront/internal/store/storetest"
)

var now = time.Date(2025, 6, 10, 11, 0, 0, 0, time.UTC)

type env struct {
	db   *store.DB
	repo *app.Repository
	svc  *app.Service
}

func newEnv(t *testing.T) *env {
	db := storetest.NewSeeded(t, store.Fixture{
		Persons: []store.PersonRow{
			{ID: "alice", FirstName: "Alice", LastName: "A", Email: "alice@example.com"},
			{ID: "bob", FirstName: "Bob", LastName: "B", Email: "bob@example.com"},
		},
		Addresses: []store.AddressRow{
			{ID: "alice-home", PersonID: "alice", Street: "1 Main", City: "Town"},
			{ID: "bob-home", PersonID: "bob", Street: "2 Main", City: "Town"},
		},
		Products: []store.ProductRow{
			{ID: "x", Name: "Xylophone", Price: decimal.RequireFromString("12.50"), Active: true},
			{ID: "y", Name: "Yoyo", Price: decimal.RequireFromString("3.00"), Active: true},
		},
	})
	repo := app.NewRepository(time.UTC)
	engine := progression.NewEngine(time.UTC, func() time.Time { return now })
	return &env{db: db, repo: repo, svc: app.NewService(db, repo, engine)}
}

func (e *env) order(t *testing.T, id, person string, placed time.Time, status domain.OrderStatus) {
	t.Helper()
	ctx := context.Background()
	two, four := 2, 4
	o := &domain.Order{
		ID: id, PersonID: person, AddressID: person + "-home", OrderDate: placed,
		Status: status, OrderType: domain.OrderTypeCustomer, ShippingCost: decimal.RequireFromString("5.00"),
		ShippedDay: &two, ExpectedDeliveryDay: &four,
	}
	require.NoError(t, e.repo.Create(ctx, e.db, o))
	require.NoError(t, e.repo.CreateLines(ctx, e.db, []domain.OrderLine{
		{OrderID: id, ProductID: "x", Quantity: 2, UnitPrice: decimal.RequireFromString("12.50"), Status: status},
		{OrderID: id, ProductID: "y", Quantity: 1, UnitPrice: decimal.RequireFromString("3.00"), Status: status},
	}))
}

func TestListOrders_ProgressesAndTotals(t *testing.T) {
	e := newEnv(t)
	e.order(t, "old", "alice", now.AddDate(0, 0, -5), domain.StatusProcessing)
	e.order(t, "new", "alice", now.Add(-time.Hour), domain.StatusProcessing)
	e.order(t, "other", "bob", now, domain.StatusProcessing)

	orders, err := e.svc.ListOrders(context.Background(), "alice")
	require.NoError(t, err)
	require.Len(t, orders, 2)

	assert.Equal(t, "new", orders[0].ID)
	assert.Equal(t, domain.StatusProcessing, orders[0].Status)
	assert.Equal(t, "old", orders[1].ID)
	assert.Equal(t, domain.StatusDelivered, orders[1].Status)
	assert.Equal(t, 3, orders[1].ItemCount)
	assert.True(t, decimal.RequireFromString("33.00").Equal(orders[1].Total), orders[1].Total.String())
}

func TestGetOrderDetails_Ownership(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	e.order(t, "o1", "alice", now.AddDate(0, 0, -2), domain.StatusProcessing)

	_, err := e.svc.GetOrderDetails(ctx, "o1", "bob", domain.RoleCustomer)
	assert.ErrorIs(t, err, domain.ErrOrderNotFound)

	detail, err := e.svc.GetOrderDetails(ctx, "o1", "bob", domain.RoleStaff)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusShipped, detail.Status)
	require.Len(t, detail.Lines, 2)
	assert.Equal(t, "Xylophone", detail.Lines[0].ProductName)
	for _, l := range detail.Lines {
		assert.Equal(t, domain.StatusShipped, l.Status)
	}
	assert.Nil(t, detail.Payment)

	_, err = e.svc.GetOrderDetails(ctx, "missing", "alice", domain.RoleAdmin)
	assert.ErrorIs(t, err, domain.ErrOrderNotFound)
}

func TestListAllOrders_Filter(t *testing.T) {
	e := newEnv(t)
	e.order(t, "a", "alice", now.AddDate(0, 0, -1), domain.StatusProcessing)
	e.order(t, "b", "bob", now.AddDate(0, 0, -3), domain.StatusProcessing)
	e.order(t, "c", "bob", now.AddDate(0, 0, -9), domain.StatusCancelled)

	f, err := app.ParseListFilter("Processing", "oldest")
	require.NoError(t, err)
	orders, err := e.svc.ListAllOrders(context.Background(), f)
	require.NoError(t, err)
	require.Len(t, orders, 1, "b shipped while being listed")
	assert.Equal(t, "a", orders[0].ID)

	all, err := e.svc.ListAllOrders(context.Background(), app.ListFilter{Sort: app.SortOldest})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []string{"c", "b", "a"}, []string{all[0].ID, all[1].ID, all[2].ID})
	assert.Equal(t, domain.StatusCancelled, all[0].Status)
}

func TestParseListFilter(t *testing.T) {
	_, err := app.ParseListFilter("Lost", "")
	assert.ErrorIs(t, err, app.ErrInvalidFilter)

	_, err = app.ParseListFilter("", "order_id; DROP TABLE orders")
	assert.ErrorIs(t, err, app.ErrInvalidFilter)

	f, err := app.ParseListFilter("", "")
	require.NoError(t, err)
	assert.Equal(t, app.ListFilter{}, f)
}

func TestReconcileAll(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	e.order(t, "fresh", "alice", now, domain.StatusProcessing)
	e.order(t, "due", "alice", now.AddDate(0, 0, -4), domain.StatusShipped)
	e.order(t, "done", "bob", now.AddDate(0, 0, -20), domain.StatusDelivered)
	_, err := e.db.ExecContext(ctx, "UPDATE order_lines SET line_status = 'Processing' WHERE order_id = 'done'")
	require.NoError(t, err)

	report, err := e.svc.ReconcileAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, app.ReconcileReport{Scanned: 3, Advanced: 1}, report)
	assert.Equal(t, 0, countLines(t, e.db, "done", "Processing"))

	report, err = e.svc.ReconcileAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, app.ReconcileReport{Scanned: 1, Advanced: 0}, report)
}

func countLines(t *testing.T, db *store.DB, orderID, status string) int {
	var n int
	require.NoError(t, db.QueryRowContext(context.Background(),
		"SELECT COUNT(*) FROM order_lines WHERE order_id = ? AND line_status = ?", orderID, status).Scan(&n))
	return n
}
