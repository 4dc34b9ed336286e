package ports

import (
	"context"

	orderapp "github.com/jcmexdev/storefront/internal/order-service/app"
	"github.com/jcmexdev/storefront/internal/order-service/domain"
)

// OrderService is the read side of orders. Every call runs the progression
// engine over the orders it returns.
type OrderService interface {
	ListOrders(ctx context.Context, personID string) ([]domain.OrderSummary, error)
	ListAllOrders(ctx context.Context, f orderapp.ListFilter) ([]domain.OrderSummary, error)
	GetOrderDetails(ctx context.Context, orderID, requesterID string, role domain.Role) (*domain.OrderDetail, error)
}
