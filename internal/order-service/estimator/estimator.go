// Package estimator derives an order's shipped and delivery day thresholds
// from in-flight load and recent fulfilment history.
package estimator

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/jcmexdev/storefront/internal/order-service/domain"
	"github.com/jcmexdev/storefront/internal/store"
)

const (
	historySize = 10
	loadStep    = 10

	minShippedDay  = 1
	maxShippedDay  = 5
	maxDeliveryDay = 10
)

// Load is the input of Estimate.
type Load struct {
	ProcessingCount int
	ShippedCount    int
	// Averages over recent orders with both dates set; HasHistory is false
	// when there were none.
	AvgShipDays    float64
	AvgDeliverDays float64
	HasHistory     bool
}

// Estimate computes the thresholds frozen onto a new order. Every ten
// in-flight orders push the estimate back by one day.
func Estimate(l Load) domain.Thresholds {
	avgShip, avgDeliver := 2.0, 4.0
	if l.HasHistory {
		avgShip, avgDeliver = l.AvgShipDays, l.AvgDeliverDays
	}

	shipped := int(math.RoundToEven(avgShip + float64(l.ProcessingCount/loadStep)))
	shipped = clamp(shipped, minShippedDay, maxShippedDay)

	delivery := int(math.RoundToEven(avgDeliver + float64(l.ShippedCount/loadStep)))
	delivery = clamp(delivery, shipped+1, maxDeliveryDay)

	return domain.Thresholds{ShippedDay: shipped, ExpectedDeliveryDay: delivery}
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}

// LoadReader reads Load from the orders table.
type LoadReader struct {
	loc *time.Location
}

func NewLoadReader(loc *time.Location) *LoadReader {
	return &LoadReader{loc: loc}
}

// Read collects the current load. excludeOrderID, when set, keeps an order
// that is being created in the same transaction out of the counts.
func (r *LoadReader) Read(ctx context.Context, q store.Querier, excludeOrderID string) (Load, error) {
	var l Load
	var err error

	if l.ProcessingCount, err = countByStatus(ctx, q, domain.StatusProcessing, excludeOrderID); err != nil {
		return Load{}, err
	}
	if l.ShippedCount, err = countByStatus(ctx, q, domain.StatusShipped, excludeOrderID); err != nil {
		return Load{}, err
	}

	rows, err := q.QueryContext(ctx, `
		SELECT order_date, shipped_date, delivery_date
		FROM   orders
		WHERE  shipped_date IS NOT NULL AND delivery_date IS NOT NULL AND order_id <> ?
		ORDER  BY order_date DESC, order_id DESC
		LIMIT  ?`, excludeOrderID, historySize)
	if err != nil {
		return Load{}, fmt.Errorf("estimator: read history: %w", err)
	}
	defer rows.Close()

	var shipSum, deliverSum, n int
	for rows.Next() {
		var orderDate, shippedDate, deliveryDate string
		if err := rows.Scan(&orderDate, &shippedDate, &deliveryDate); err != nil {
			return Load{}, fmt.Errorf("estimator: scan history: %w", err)
		}
		placed, err := store.ParseTimestamp(orderDate)
		if err != nil {
			return Load{}, err
		}
		shipped, err := store.ParseDate(shippedDate, r.loc)
		if err != nil {
			return Load{}, err
		}
		delivered, err := store.ParseDate(deliveryDate, r.loc)
		if err != nil {
			return Load{}, err
		}
		shipSum += store.DaysBetween(placed, shipped, r.loc)
		deliverSum += store.DaysBetween(placed, delivered, r.loc)
		n++
	}
	if err := rows.Err(); err != nil {
		return Load{}, fmt.Errorf("estimator: iterate history: %w", err)
	}

	if n > 0 {
		l.HasHistory = true
		l.AvgShipDays = float64(shipSum) / float64(n)
		l.AvgDeliverDays = float64(deliverSum) / float64(n)
	}
	return l, nil
}

func countByStatus(ctx context.Context, q store.Querier, status domain.OrderStatus, excludeOrderID string) (int, error) {
	var n int
	err := q.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM orders WHERE order_status = ? AND order_id <> ?", string(status), excludeOrderID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("estimator: count %s orders: %w", status, err)
	}
	return n, nil
}

// Preview returns the thresholds a new order would receive right now.
func (r *LoadReader) Preview(ctx context.Context, q store.Querier) (domain.Thresholds, error) {
	l, err := r.Read(ctx, q, "")
	if err != nil {
		return domain.Thresholds{}, err
	}
	return Estimate(l), nil
}
