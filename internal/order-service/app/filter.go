package app

import (
	"errors"
	"fmt"

	"github.com/jcmexdev/storefront/internal/order-service/domain"
)

var ErrInvalidFilter = errors.New("invalid order filter")

type SortOrder string

const (
	SortNewest SortOrder = "newest"
	SortOldest SortOrder = "oldest"
	SortStatus SortOrder = "status"
)

var sortClauses = map[SortOrder]string{
	SortNewest: "o.order_date DESC, o.order_id DESC",
	SortOldest: "o.order_date ASC, o.order_id ASC",
	SortStatus: "o.order_status ASC, o.order_date DESC, o.order_id DESC",
}

// ListFilter selects orders for the back-office listing. The zero value
// lists everything newest first.
type ListFilter struct {
	Status domain.OrderStatus
	Sort   SortOrder
}

// ParseListFilter accepts the query-string values of the admin listing.
// Empty values mean "any status" and "newest".
func ParseListFilter(status, sort string) (ListFilter, error) {
	f := ListFilter{Status: domain.OrderStatus(status), Sort: SortOrder(sort)}
	if f.Status != "" && !f.Status.Valid() {
		return ListFilter{}, fmt.Errorf("%w: status %q", ErrInvalidFilter, status)
	}
	if f.Sort != "" {
		if _, ok := sortClauses[f.Sort]; !ok {
			return ListFilter{}, fmt.Errorf("%w: sort %q", ErrInvalidFilter, sort)
		}
	}
	return f, nil
}

func (f ListFilter) sortOrDefault() SortOrder {
	if _, ok := sortClauses[f.Sort]; ok {
		return f.Sort
	}
	return SortNewest
}
