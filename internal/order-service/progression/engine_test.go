package progression_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/jcmexdev/storefront/internal/order-service/domain"
	"github.com/jcmexdev/storefront/internal/order-service/progression"
	"github.com/jcmexdev/storefront/internal/store"
	"github.com/jcmexdev/storefront/internal/store/storetest"
)

var defaults = domain.Thresholds{ShippedDay: 2, ExpectedDeliveryDay: 4}

func TestDecide(t *testing.T) {
	tests := []struct {
		name    string
		status  domain.OrderStatus
		days    int
		want    domain.OrderStatus
		changed bool
	}{
		{"too early", domain.StatusProcessing, 1, domain.StatusProcessing, false},
		{"ships on threshold", domain.StatusProcessing, 2, domain.StatusShipped, true},
		{"skips straight to delivered", domain.StatusProcessing, 5, domain.StatusDelivered, true},
		{"shipped waits", domain.StatusShipped, 3, domain.StatusShipped, false},
		{"shipped delivers", domain.StatusShipped, 4, domain.StatusDelivered, true},
		{"delivered stays", domain.StatusDelivered, 40, domain.StatusDelivered, false},
		{"cancelled never moves", domain.StatusCancelled, 40, domain.StatusCancelled, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, changed := progression.Decide(tt.status, defaults, tt.days)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.changed, changed)
		})
	}
}

func TestDecide_ForwardOnlyAndIdempotent(t *testing.T) {
	rank := map[domain.OrderStatus]int{
		domain.StatusProcessing: 0, domain.StatusShipped: 1, domain.StatusDelivered: 2,
	}
	rapid.Check(t, func(t *rapid.T) {
		status := rapid.SampledFrom([]domain.OrderStatus{
			domain.StatusProcessing, domain.StatusShipped, domain.StatusDelivered, domain.StatusCancelled,
		}).Draw(t, "status")
		shipped := rapid.IntRange(1, 5).Draw(t, "shipped")
		th := domain.Thresholds{ShippedDay: shipped, ExpectedDeliveryDay: rapid.IntRange(shipped+1, 10).Draw(t, "delivery")}
		days := rapid.IntRange(-3, 30).Draw(t, "days")

		next, _ := progression.Decide(status, th, days)
		if status == domain.StatusCancelled {
			if next != status {
				t.Fatalf("cancelled moved to %s", next)
			}
			return
		}
		if rank[next] < rank[status] {
			t.Fatalf("moved backwards from %s to %s", status, next)
		}
		again, changed := progression.Decide(next, th, days)
		if changed || again != next {
			t.Fatalf("second decision changed %s to %s", next, again)
		}
	})
}

func TestOrderThresholdsDefaults(t *testing.T) {
	three := 3
	o := domain.Order{ShippedDay: &three}
	assert.Equal(t, domain.Thresholds{ShippedDay: 3, ExpectedDeliveryDay: 4}, o.Thresholds())
}

type fixture struct {
	db     *store.DB
	engine *progression.Engine
	now    time.Time
}

func newFixture(t *testing.T) *fixture {
	db := storetest.NewSeeded(t, store.Fixture{
		Persons:   []store.PersonRow{{ID: "p1", FirstName: "P", LastName: "One", Email: "p1@example.com"}},
		Addresses: []store.AddressRow{{ID: "a1", PersonID: "p1", Street: "1 Main", City: "Town"}},
		Products: []store.ProductRow{
			{ID: "x", Name: "X", Price: decimal.NewFromInt(1), Active: true},
			{ID: "y", Name: "Y", Price: decimal.NewFromInt(2), Active: true},
		},
	})
	now := time.Date(2025, 6, 10, 11, 0, 0, 0, time.UTC)
	return &fixture{db: db, engine: progression.NewEngine(time.UTC, func() time.Time { return now }), now: now}
}

func (f *fixture) insert(t *testing.T, id string, placed time.Time, status domain.OrderStatus, lineStatus domain.OrderStatus) *domain.Order {
	t.Helper()
	ctx := context.Background()
	_, err := f.db.ExecContext(ctx, `
		INSERT INTO orders (order_id, person_id, address_id, order_date, order_status, order_type,
		                    shipping_cost, shipped_day, expected_delivery_day)
		VALUES (?, 'p1', 'a1', ?, ?, 'customer', '5.00', 2, 4)`,
		id, store.FormatTimestamp(placed), string(status))
	require.NoError(t, err)
	for _, p := range []string{"x", "y"} {
		_, err := f.db.ExecContext(ctx,
			"INSERT INTO order_lines (order_id, product_id, quantity, unit_price, line_status) VALUES (?, ?, 1, '1.00', ?)",
			id, p, string(lineStatus))
		require.NoError(t, err)
	}
	two, four := 2, 4
	return &domain.Order{ID: id, OrderDate: placed, Status: status, ShippedDay: &two, ExpectedDeliveryDay: &four}
}

func (f *fixture) state(t *testing.T, id string) (order string, delivery, shipped *string, lines []string) {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, f.db.QueryRowContext(ctx,
		"SELECT order_status, delivery_date, shipped_date FROM orders WHERE order_id = ?", id).Scan(&order, &delivery, &shipped))
	rows, err := f.db.QueryContext(ctx, "SELECT line_status FROM order_lines WHERE order_id = ? ORDER BY product_id", id)
	require.NoError(t, err)
	defer rows.Close()
	for rows.Next() {
		var s string
		require.NoError(t, rows.Scan(&s))
		lines = append(lines, s)
	}
	require.NoError(t, rows.Err())
	return order, delivery, shipped, lines
}

func TestApply_JumpsToDelivered(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	o := f.insert(t, "o1", f.now.AddDate(0, 0, -5), domain.StatusProcessing, domain.StatusProcessing)

	changed, err := f.engine.Apply(ctx, f.db, o)
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, domain.StatusDelivered, o.Status)

	status, delivery, shipped, lines := f.state(t, "o1")
	assert.Equal(t, "Delivered", status)
	require.NotNil(t, delivery)
	assert.Equal(t, "2025-06-10", *delivery)
	assert.Nil(t, shipped)
	assert.Equal(t, []string{"Delivered", "Delivered"}, lines)

	changed, err = f.engine.Apply(ctx, f.db, o)
	require.NoError(t, err)
	assert.False(t, changed, "second application is a no-op")
}

func TestApply_Ships(t *testing.T) {
	f := newFixture(t)
	o := f.insert(t, "o1", f.now.AddDate(0, 0, -2), domain.StatusProcessing, domain.StatusProcessing)

	changed, err := f.engine.Apply(context.Background(), f.db, o)
	require.NoError(t, err)
	assert.True(t, changed)

	status, _, shipped, lines := f.state(t, "o1")
	assert.Equal(t, "Shipped", status)
	require.NotNil(t, shipped)
	assert.Equal(t, "2025-06-10", *shipped)
	assert.Equal(t, []string{"Shipped", "Shipped"}, lines)

	require.NotNil(t, o.ShippedDate)
	assert.True(t, time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC).Equal(*o.ShippedDate))
	assert.Nil(t, o.DeliveryDate)
}

func TestApply_StaleReaderLosesRace(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	first := f.insert(t, "o1", f.now.AddDate(0, 0, -3), domain.StatusProcessing, domain.StatusProcessing)
	stale := *first

	_, err := f.engine.Apply(ctx, f.db, first)
	require.NoError(t, err)

	changed, err := f.engine.Apply(ctx, f.db, &stale)
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Equal(t, domain.StatusShipped, stale.Status)
	require.NotNil(t, stale.ShippedDate)
}

func TestApply_ReconcilesDriftedLines(t *testing.T) {
	f := newFixture(t)
	o := f.insert(t, "o1", f.now.AddDate(0, 0, -1), domain.StatusShipped, domain.StatusProcessing)

	changed, err := f.engine.Apply(context.Background(), f.db, o)
	require.NoError(t, err)
	assert.False(t, changed)

	_, _, _, lines := f.state(t, "o1")
	assert.Equal(t, []string{"Shipped", "Shipped"}, lines)
}

func TestApply_LeavesCancelledAlone(t *testing.T) {
	f := newFixture(t)
	o := f.insert(t, "o1", f.now.AddDate(0, 0, -30), domain.StatusCancelled, domain.StatusCancelled)

	changed, err := f.engine.Apply(context.Background(), f.db, o)
	require.NoError(t, err)
	assert.False(t, changed)

	status, _, _, lines := f.state(t, "o1")
	assert.Equal(t, "Cancelled", status)
	assert.Equal(t, []string{"Cancelled", "Cancelled"}, lines)
}
