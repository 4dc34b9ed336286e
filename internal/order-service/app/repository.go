package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jcmexdev/storefront/internal/order-service/domain"
	"github.com/jcmexdev/storefront/internal/store"
)

// Repository reads and writes orders, order lines and their payment rows.
// Every method takes the Querier to run on so the checkout can use its
// transaction.
type Repository struct {
	loc *time.Location
}

func NewRepository(loc *time.Location) *Repository {
	return &Repository{loc: loc}
}

const orderColumns = `o.order_id, o.person_id, o.address_id, o.order_date, o.order_status, o.order_type,
	o.shipping_cost, o.shipped_day, o.expected_delivery_day, o.shipped_date, o.delivery_date`

func (r *Repository) Create(ctx context.Context, q store.Querier, o *domain.Order) error {
	_, err := q.ExecContext(ctx, `
		INSERT INTO orders (order_id, person_id, address_id, order_date, order_status, order_type,
		                    shipping_cost, shipped_day, expected_delivery_day, shipped_date, delivery_date)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		o.ID, o.PersonID, o.AddressID, store.FormatTimestamp(o.OrderDate), string(o.Status), o.OrderType,
		o.ShippingCost.StringFixed(2), nullInt(o.ShippedDay), nullInt(o.ExpectedDeliveryDay),
		store.DateValue(o.ShippedDate), store.DateValue(o.DeliveryDate))
	if err != nil {
		return fmt.Errorf("orders: create %s: %w", o.ID, err)
	}
	return nil
}

func (r *Repository) SetThresholds(ctx context.Context, q store.Querier, orderID string, t domain.Thresholds) error {
	_, err := q.ExecContext(ctx,
		"UPDATE orders SET shipped_day = ?, expected_delivery_day = ? WHERE order_id = ?",
		t.ShippedDay, t.ExpectedDeliveryDay, orderID)
	if err != nil {
		return fmt.Errorf("orders: set thresholds of %s: %w", orderID, err)
	}
	return nil
}

func (r *Repository) CreateLines(ctx context.Context, q store.Querier, lines []domain.OrderLine) error {
	for _, l := range lines {
		_, err := q.ExecContext(ctx,
			"INSERT INTO order_lines (order_id, product_id, quantity, unit_price, line_status) VALUES (?, ?, ?, ?, ?)",
			l.OrderID, l.ProductID, l.Quantity, l.UnitPrice.StringFixed(2), string(l.Status))
		if err != nil {
			return fmt.Errorf("orders: create line %s/%s: %w", l.OrderID, l.ProductID, err)
		}
	}
	return nil
}

func (r *Repository) Get(ctx context.Context, q store.Querier, orderID string) (*domain.Order, error) {
	orders, err := r.query(ctx, q, "SELECT "+orderColumns+" FROM orders o WHERE o.order_id = ?", orderID)
	if err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return nil, fmt.Errorf("orders: %s: %w", orderID, domain.ErrOrderNotFound)
	}
	return &orders[0], nil
}

func (r *Repository) ListByPerson(ctx context.Context, q store.Querier, personID string) ([]domain.Order, error) {
	return r.query(ctx, q,
		"SELECT "+orderColumns+" FROM orders o WHERE o.person_id = ? ORDER BY o.order_date DESC, o.order_id DESC", personID)
}

// ListFiltered lists every order matching f. Only fragments from the
// filter tables reach the SQL text.
func (r *Repository) ListFiltered(ctx context.Context, q store.Querier, f ListFilter) ([]domain.Order, error) {
	query := "SELECT " + orderColumns + " FROM orders o"
	var args []any
	if f.Status != "" {
		query += " WHERE o.order_status = ?"
		args = append(args, string(f.Status))
	}
	query += " ORDER BY " + sortClauses[f.sortOrDefault()]
	return r.query(ctx, q, query, args...)
}

// ListUnsettled returns orders the progression engine may still change:
// anything not yet Delivered or Cancelled, plus Shipped/Delivered orders
// whose lines drifted from the order status.
func (r *Repository) ListUnsettled(ctx context.Context, q store.Querier) ([]domain.Order, error) {
	return r.query(ctx, q, `
		SELECT `+orderColumns+`
		FROM   orders o
		WHERE  o.order_status IN (?, ?)
		   OR (o.order_status = ? AND EXISTS (
		           SELECT 1 FROM order_lines l WHERE l.order_id = o.order_id AND l.line_status <> o.order_status))
		ORDER  BY o.order_date ASC, o.order_id ASC`,
		string(domain.StatusProcessing), string(domain.StatusShipped), string(domain.StatusDelivered))
}

func (r *Repository) query(ctx context.Context, q store.Querier, query string, args ...any) ([]domain.Order, error) {
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("orders: query: %w", err)
	}
	defer rows.Close()

	var orders []domain.Order
	for rows.Next() {
		o, err := r.scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("orders: iterate: %w", err)
	}
	return orders, nil
}

func (r *Repository) scanOrder(rows *sql.Rows) (domain.Order, error) {
	var (
		o                     domain.Order
		orderDate, status     string
		shippedDay, delivDay  sql.NullInt64
		shippedDate, delivery sql.NullString
	)
	err := rows.Scan(&o.ID, &o.PersonID, &o.AddressID, &orderDate, &status, &o.OrderType,
		&o.ShippingCost, &shippedDay, &delivDay, &shippedDate, &delivery)
	if err != nil {
		return domain.Order{}, fmt.Errorf("orders: scan: %w", err)
	}

	o.Status = domain.OrderStatus(status)
	if o.OrderDate, err = store.ParseTimestamp(orderDate); err != nil {
		return domain.Order{}, err
	}
	if shippedDay.Valid {
		v := int(shippedDay.Int64)
		o.ShippedDay = &v
	}
	if delivDay.Valid {
		v := int(delivDay.Int64)
		o.ExpectedDeliveryDay = &v
	}
	if o.ShippedDate, err = store.NullDate(shippedDate, r.loc); err != nil {
		return domain.Order{}, err
	}
	if o.DeliveryDate, err = store.NullDate(delivery, r.loc); err != nil {
		return domain.Order{}, err
	}
	return o, nil
}

func (r *Repository) Lines(ctx context.Context, q store.Querier, orderID string) ([]domain.OrderLine, error) {
	rows, err := q.QueryContext(ctx, `
		SELECT l.order_id, l.product_id, COALESCE(p.product_name, ''), l.quantity, l.unit_price, l.line_status
		FROM   order_lines l
		LEFT   JOIN products p ON p.product_id = l.product_id
		WHERE  l.order_id = ?
		ORDER  BY l.product_id`, orderID)
	if err != nil {
		return nil, fmt.Errorf("orders: lines of %s: %w", orderID, err)
	}
	defer rows.Close()

	var lines []domain.OrderLine
	for rows.Next() {
		var l domain.OrderLine
		var status string
		if err := rows.Scan(&l.OrderID, &l.ProductID, &l.ProductName, &l.Quantity, &l.UnitPrice, &status); err != nil {
			return nil, fmt.Errorf("orders: scan line: %w", err)
		}
		l.Status = domain.OrderStatus(status)
		lines = append(lines, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("orders: iterate lines: %w", err)
	}
	return lines, nil
}

func (r *Repository) Payment(ctx context.Context, q store.Querier, orderID string) (*domain.PaymentSummary, error) {
	var (
		p        domain.PaymentSummary
		lastFour sql.NullString
	)
	err := q.QueryRowContext(ctx,
		"SELECT payment_method, payment_status, amount, card_last_four FROM payments WHERE order_id = ?", orderID).
		Scan(&p.Method, &p.Status, &p.Amount, &lastFour)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("orders: payment of %s: %w", orderID, err)
	}
	p.CardLastFour = lastFour.String
	return &p, nil
}

// Total is the sum of line subtotals plus shipping.
func Total(o domain.Order, lines []domain.OrderLine) decimal.Decimal {
	total := o.ShippingCost
	for _, l := range lines {
		total = total.Add(l.Subtotal())
	}
	return total
}

func nullInt(v *int) any {
	if v == nil {
		return nil
	}
	return *v
}
