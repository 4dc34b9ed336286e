package inventoryservice

import (
	"sort"

	"github.com/jcmexdev/storefront/internal/inventory-service/domain"
)

// PlanDeduction decides how much to take from each warehouse to satisfy
// needed units of one product. Warehouses are consumed largest-first; ties
// go to the lower warehouse id so the plan is deterministic.
func PlanDeduction(productID string, entries []domain.StockEntry, needed int) ([]domain.Deduction, error) {
	if needed <= 0 {
		return nil, domain.ErrInvalidQuantity
	}

	sorted := make([]domain.StockEntry, 0, len(entries))
	available := 0
	for _, e := range entries {
		if e.Quantity <= 0 {
			continue
		}
		sorted = append(sorted, e)
		available += e.Quantity
	}
	if available < needed {
		return nil, &domain.InsufficientStockError{ProductID: productID, Needed: needed, Available: available}
	}

	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Quantity != sorted[j].Quantity {
			return sorted[i].Quantity > sorted[j].Quantity
		}
		return sorted[i].WarehouseID < sorted[j].WarehouseID
	})

	remaining := needed
	plan := make([]domain.Deduction, 0, len(sorted))
	for _, e := range sorted {
		if remaining == 0 {
			break
		}
		take := min(remaining, e.Quantity)
		plan = append(plan, domain.Deduction{WarehouseID: e.WarehouseID, ProductID: productID, Quantity: take})
		remaining -= take
	}
	return plan, nil
}
