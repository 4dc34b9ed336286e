package service

import (
	"github.com/jcmexdev/storefront/internal/api-gateway/core/ports"
	inventoryservice "github.com/jcmexdev/storefront/internal/inventory-service"
)

// Ensure the in-process ledger implements the port at compile time.
var _ ports.StockAdmin = (*inventoryservice.Ledger)(nil)

// NewLocalStockAdmin serves stock administration from the gateway's own
// database connection. Used when no inventory-service address is configured.
func NewLocalStockAdmin(l *inventoryservice.Ledger) ports.StockAdmin {
	return l
}
