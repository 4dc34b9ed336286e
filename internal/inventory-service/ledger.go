package inventoryservice

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"sort"

	"github.com/jcmexdev/storefront/internal/inventory-service/domain"
	"github.com/jcmexdev/storefront/internal/store"
)

// Ledger owns the warehouse_stock table.
type Ledger struct {
	db *store.DB
}

func NewLedger(db *store.DB) *Ledger {
	return &Ledger{db: db}
}

const activeStockFrom = `
	FROM   warehouse_stock ws
	JOIN   warehouses w ON w.warehouse_id = ws.warehouse_id
	JOIN   products   p ON p.product_id   = ws.product_id
	WHERE  ws.product_id = ? AND w.is_active = 1 AND p.is_active = 1`

// TotalStock sums a product's quantity over active warehouses. Inactive or
// unknown products report zero.
func (l *Ledger) TotalStock(ctx context.Context, productID string) (int, error) {
	var total int
	err := l.db.QueryRowContext(ctx, "SELECT COALESCE(SUM(ws.stock_quantity), 0)"+activeStockFrom, productID).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("ledger: total stock for %q: %w", productID, err)
	}
	return total, nil
}

func (l *Ledger) readEntries(ctx context.Context, q store.Querier, productID, suffix string) ([]domain.StockEntry, error) {
	rows, err := q.QueryContext(ctx,
		"SELECT ws.warehouse_id, ws.stock_quantity"+activeStockFrom+
			" ORDER BY ws.stock_quantity DESC, ws.warehouse_id ASC"+suffix,
		productID)
	if err != nil {
		return nil, fmt.Errorf("ledger: read entries for %q: %w", productID, err)
	}
	defer rows.Close()

	var entries []domain.StockEntry
	for rows.Next() {
		e := domain.StockEntry{ProductID: productID}
		if err := rows.Scan(&e.WarehouseID, &e.Quantity); err != nil {
			return nil, fmt.Errorf("ledger: scan entry for %q: %w", productID, err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ledger: iterate entries for %q: %w", productID, err)
	}
	return entries, nil
}

// Reservation holds the deduction plan computed while the ledger rows of
// every requested product are locked by the surrounding transaction.
type Reservation struct {
	Deductions []domain.Deduction
}

// Reserve locks the ledger rows of every product in lines, re-reads their
// totals under the lock and plans the deduction. Nothing is written; the
// first line that cannot be satisfied fails the whole call with an
// *domain.InsufficientStockError.
//
// Products are locked in ascending id order so concurrent checkouts over
// overlapping carts acquire row locks in the same sequence. Only the stock
// and product rows are locked; warehouse rows are shared by every product
// and stay unlocked, so carts with disjoint products never wait on each
// other.
func (l *Ledger) Reserve(ctx context.Context, tx *sql.Tx, lines []domain.LineRequest) (*Reservation, error) {
	needed, err := mergeLines(lines)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(needed))
	for id := range needed {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	res := &Reservation{}
	for _, id := range ids {
		entries, err := l.readEntries(ctx, tx, id, l.db.Dialect.LockSuffix("ws", "p"))
		if err != nil {
			return nil, err
		}
		plan, err := PlanDeduction(id, entries, needed[id])
		if err != nil {
			return nil, err
		}
		res.Deductions = append(res.Deductions, plan...)
	}
	return res, nil
}

// Deduct applies the reservation inside the same transaction that reserved
// it. The stock_quantity guard turns any drift into an error instead of a
// negative balance.
func (r *Reservation) Deduct(ctx context.Context, tx *sql.Tx) error {
	const q = `
		UPDATE warehouse_stock
		SET    stock_quantity = stock_quantity - ?
		WHERE  warehouse_id = ? AND product_id = ? AND stock_quantity >= ?`

	for _, d := range r.Deductions {
		result, err := tx.ExecContext(ctx, q, d.Quantity, d.WarehouseID, d.ProductID, d.Quantity)
		if err != nil {
			return fmt.Errorf("ledger: deduct %d of %q from %q: %w", d.Quantity, d.ProductID, d.WarehouseID, err)
		}
		n, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("ledger: deduct rows affected: %w", err)
		}
		if n != 1 {
			return fmt.Errorf("ledger: stock of %q in %q changed under reservation", d.ProductID, d.WarehouseID)
		}
		slog.DebugContext(ctx, "stock deducted",
			"warehouse_id", d.WarehouseID, "product_id", d.ProductID, "quantity", d.Quantity)
	}
	return nil
}

// ReserveAndDeduct is Reserve followed by Deduct.
func (l *Ledger) ReserveAndDeduct(ctx context.Context, tx *sql.Tx, lines []domain.LineRequest) ([]domain.Deduction, error) {
	res, err := l.Reserve(ctx, tx, lines)
	if err != nil {
		return nil, err
	}
	if err := res.Deduct(ctx, tx); err != nil {
		return nil, err
	}
	return res.Deductions, nil
}

func mergeLines(lines []domain.LineRequest) (map[string]int, error) {
	needed := make(map[string]int, len(lines))
	for _, line := range lines {
		if line.Quantity <= 0 {
			return nil, fmt.Errorf("ledger: product %q quantity %d: %w", line.ProductID, line.Quantity, domain.ErrInvalidQuantity)
		}
		needed[line.ProductID] += line.Quantity
	}
	return needed, nil
}

// AddStock restocks a warehouse, creating the ledger row when absent.
func (l *Ledger) AddStock(ctx context.Context, warehouseID, productID string, quantity int) (domain.StockEntry, error) {
	if quantity < 1 || quantity > domain.MaxQuantity {
		return domain.StockEntry{}, fmt.Errorf("ledger: add %d: %w", quantity, domain.ErrInvalidQuantity)
	}

	upsert := `
		INSERT INTO warehouse_stock (warehouse_id, product_id, stock_quantity) VALUES (?, ?, ?)
		ON CONFLICT (warehouse_id, product_id) DO UPDATE SET stock_quantity = stock_quantity + excluded.stock_quantity`
	if l.db.Dialect == store.MySQL {
		upsert = `
		INSERT INTO warehouse_stock (warehouse_id, product_id, stock_quantity) VALUES (?, ?, ?)
		ON DUPLICATE KEY UPDATE stock_quantity = stock_quantity + VALUES(stock_quantity)`
	}

	entry := domain.StockEntry{WarehouseID: warehouseID, ProductID: productID}
	err := l.db.InTx(ctx, func(tx *sql.Tx) error {
		if err := checkRefs(ctx, tx, warehouseID, productID); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, upsert, warehouseID, productID, quantity); err != nil {
			return fmt.Errorf("ledger: add stock: %w", err)
		}
		return readQuantity(ctx, tx, &entry)
	})
	if err != nil {
		return domain.StockEntry{}, err
	}

	slog.InfoContext(ctx, "stock added",
		"warehouse_id", warehouseID, "product_id", productID, "added", quantity, "quantity", entry.Quantity)
	return entry, nil
}

// SetStock overwrites a ledger row. A zero quantity deletes it.
func (l *Ledger) SetStock(ctx context.Context, warehouseID, productID string, quantity int) (domain.StockEntry, error) {
	if quantity < 0 || quantity > domain.MaxQuantity {
		return domain.StockEntry{}, fmt.Errorf("ledger: set %d: %w", quantity, domain.ErrInvalidQuantity)
	}
	if quantity == 0 {
		if err := l.RemoveStock(ctx, warehouseID, productID); err != nil && !errors.Is(err, domain.ErrEntryNotFound) {
			return domain.StockEntry{}, err
		}
		return domain.StockEntry{WarehouseID: warehouseID, ProductID: productID}, nil
	}

	upsert := `
		INSERT INTO warehouse_stock (warehouse_id, product_id, stock_quantity) VALUES (?, ?, ?)
		ON CONFLICT (warehouse_id, product_id) DO UPDATE SET stock_quantity = excluded.stock_quantity`
	if l.db.Dialect == store.MySQL {
		upsert = `
		INSERT INTO warehouse_stock (warehouse_id, product_id, stock_quantity) VALUES (?, ?, ?)
		ON DUPLICATE KEY UPDATE stock_quantity = VALUES(stock_quantity)`
	}

	err := l.db.InTx(ctx, func(tx *sql.Tx) error {
		if err := checkRefs(ctx, tx, warehouseID, productID); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, upsert, warehouseID, productID, quantity); err != nil {
			return fmt.Errorf("ledger: set stock: %w", err)
		}
		return nil
	})
	if err != nil {
		return domain.StockEntry{}, err
	}

	slog.InfoContext(ctx, "stock set", "warehouse_id", warehouseID, "product_id", productID, "quantity", quantity)
	return domain.StockEntry{WarehouseID: warehouseID, ProductID: productID, Quantity: quantity}, nil
}

// RemoveStock deletes a ledger row.
func (l *Ledger) RemoveStock(ctx context.Context, warehouseID, productID string) error {
	result, err := l.db.ExecContext(ctx,
		"DELETE FROM warehouse_stock WHERE warehouse_id = ? AND product_id = ?", warehouseID, productID)
	if err != nil {
		return fmt.Errorf("ledger: remove stock: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("ledger: remove stock rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("ledger: %q in %q: %w", productID, warehouseID, domain.ErrEntryNotFound)
	}
	slog.InfoContext(ctx, "stock removed", "warehouse_id", warehouseID, "product_id", productID)
	return nil
}

func checkRefs(ctx context.Context, tx *sql.Tx, warehouseID, productID string) error {
	var one int
	err := tx.QueryRowContext(ctx, "SELECT 1 FROM warehouses WHERE warehouse_id = ?", warehouseID).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("ledger: %q: %w", warehouseID, domain.ErrWarehouseNotFound)
	}
	if err != nil {
		return fmt.Errorf("ledger: look up warehouse: %w", err)
	}
	err = tx.QueryRowContext(ctx, "SELECT 1 FROM products WHERE product_id = ?", productID).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("ledger: %q: %w", productID, domain.ErrProductNotFound)
	}
	if err != nil {
		return fmt.Errorf("ledger: look up product: %w", err)
	}
	return nil
}

func readQuantity(ctx context.Context, tx *sql.Tx, entry *domain.StockEntry) error {
	err := tx.QueryRowContext(ctx,
		"SELECT stock_quantity FROM warehouse_stock WHERE warehouse_id = ? AND product_id = ?",
		entry.WarehouseID, entry.ProductID).Scan(&entry.Quantity)
	if err != nil {
		return fmt.Errorf("ledger: read quantity: %w", err)
	}
	return nil
}
