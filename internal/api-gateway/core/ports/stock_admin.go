package ports

import (
	"context"

	"github.com/jcmexdev/storefront/internal/inventory-service/domain"
)

// StockAdmin administers the stock ledger, either in process or through
// the inventory-service.
type StockAdmin interface {
	AddStock(ctx context.Context, warehouseID, productID string, quantity int) (domain.StockEntry, error)
	SetStock(ctx context.Context, warehouseID, productID string, quantity int) (domain.StockEntry, error)
	RemoveStock(ctx context.Context, warehouseID, productID string) error
	TotalStock(ctx context.Context, productID string) (int, error)
}
