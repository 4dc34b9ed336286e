// Package progression moves orders through Processing, Shipped and
// Delivered as calendar days pass. It runs whenever an order is read; there
// is no scheduler.
package progression

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/jcmexdev/storefront/internal/order-service/domain"
	"github.com/jcmexdev/storefront/internal/store"
)

// Decide returns the status an order should have after daysSinceOrder days.
// Delivered is checked first, so an order that crossed both thresholds
// since it was last read skips Shipped. Cancelled orders never move.
func Decide(status domain.OrderStatus, t domain.Thresholds, daysSinceOrder int) (domain.OrderStatus, bool) {
	if status == domain.StatusCancelled {
		return status, false
	}
	if status != domain.StatusDelivered && daysSinceOrder >= t.ExpectedDeliveryDay {
		return domain.StatusDelivered, true
	}
	if status == domain.StatusProcessing && daysSinceOrder >= t.ShippedDay {
		return domain.StatusShipped, true
	}
	return status, false
}

type Engine struct {
	loc *time.Location
	now func() time.Time
}

func NewEngine(loc *time.Location, now func() time.Time) *Engine {
	if now == nil {
		now = time.Now
	}
	return &Engine{loc: loc, now: now}
}

// Apply brings o up to date, writing through q, and reconciles its lines.
// The transition is a conditional UPDATE on the status that was read, so
// two readers racing over the same threshold leave the same row behind.
// It reports whether the order status changed.
func (e *Engine) Apply(ctx context.Context, q store.Querier, o *domain.Order) (bool, error) {
	now := e.now()
	days := store.DaysBetween(o.OrderDate, now, e.loc)

	next, move := Decide(o.Status, o.Thresholds(), days)
	changed := false
	if move {
		midnight := store.Midnight(now, e.loc)
		today := store.FormatDate(midnight)
		column := "shipped_date"
		if next == domain.StatusDelivered {
			column = "delivery_date"
		}

		result, err := q.ExecContext(ctx,
			"UPDATE orders SET order_status = ?, "+column+" = ? WHERE order_id = ? AND order_status = ?",
			string(next), today, o.ID, string(o.Status))
		if err != nil {
			return false, fmt.Errorf("progression: move %s to %s: %w", o.ID, next, err)
		}
		n, err := result.RowsAffected()
		if err != nil {
			return false, fmt.Errorf("progression: rows affected: %w", err)
		}

		// n == 0: another reader moved it first, pick up what it wrote
		if n == 1 {
			changed = true
			prev := o.Status
			o.Status = next
			if next == domain.StatusDelivered {
				o.DeliveryDate = &midnight
			} else {
				o.ShippedDate = &midnight
			}
			slog.InfoContext(ctx, "order status advanced",
				"order_id", o.ID, "from", prev, "to", next, "days_since_order", days)
		} else if err := e.reload(ctx, q, o); err != nil {
			return false, err
		}
	}

	if err := Reconcile(ctx, q, o); err != nil {
		return changed, err
	}
	return changed, nil
}

func (e *Engine) reload(ctx context.Context, q store.Querier, o *domain.Order) error {
	var status string
	var shipped, delivered sql.NullString
	err := q.QueryRowContext(ctx,
		"SELECT order_status, shipped_date, delivery_date FROM orders WHERE order_id = ?", o.ID).
		Scan(&status, &shipped, &delivered)
	if err != nil {
		return fmt.Errorf("progression: reload %s: %w", o.ID, err)
	}
	o.Status = domain.OrderStatus(status)
	if o.ShippedDate, err = store.NullDate(shipped, e.loc); err != nil {
		return err
	}
	if o.DeliveryDate, err = store.NullDate(delivered, e.loc); err != nil {
		return err
	}
	return nil
}

// Reconcile forces every line of a Shipped or Delivered order to the order
// status. Lines of Processing and Cancelled orders are left alone.
func Reconcile(ctx context.Context, q store.Querier, o *domain.Order) error {
	if o.Status != domain.StatusShipped && o.Status != domain.StatusDelivered {
		return nil
	}
	result, err := q.ExecContext(ctx,
		"UPDATE order_lines SET line_status = ? WHERE order_id = ? AND line_status <> ?",
		string(o.Status), o.ID, string(o.Status))
	if err != nil {
		return fmt.Errorf("progression: reconcile lines of %s: %w", o.ID, err)
	}
	if n, err := result.RowsAffected(); err == nil && n > 0 {
		slog.DebugContext(ctx, "order lines reconciled", "order_id", o.ID, "status", o.Status, "lines", n)
	}
	return nil
}
