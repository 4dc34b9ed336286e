package domain

import (
	"errors"
	"fmt"
	"math"
)

// MaxQuantity is the largest quantity a ledger row can hold.
const MaxQuantity = math.MaxInt32

var (
	ErrInvalidQuantity   = errors.New("invalid stock quantity")
	ErrWarehouseNotFound = errors.New("warehouse not found")
	ErrProductNotFound   = errors.New("product not found")
	ErrEntryNotFound     = errors.New("stock entry not found")
)

// StockEntry is one ledger row: the quantity of a product held by a warehouse.
type StockEntry struct {
	WarehouseID string
	ProductID   string
	Quantity    int
}

// LineRequest is the quantity of a product an order needs.
type LineRequest struct {
	ProductID string
	Quantity  int
}

// Deduction is the amount taken from a single warehouse for a product.
type Deduction struct {
	WarehouseID string
	ProductID   string
	Quantity    int
}

// InsufficientStockError reports the first line whose requirement exceeds
// the stock held across active warehouses.
type InsufficientStockError struct {
	ProductID string
	Needed    int
	Available int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for product %s: needed %d, available %d", e.ProductID, e.Needed, e.Available)
}

// StockAdjustment is an administrative change to one ledger row.
type StockAdjustment struct {
	WarehouseID string
	ProductID   string
	Quantity    int
	RequestID   string
}
