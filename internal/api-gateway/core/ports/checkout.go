package ports

import (
	"context"

	"github.com/jcmexdev/storefront/internal/coordinator"
	"github.com/jcmexdev/storefront/internal/order-service/domain"
)

type Checkout interface {
	PlaceOrder(ctx context.Context, req coordinator.PlaceOrderRequest) (string, error)
	EstimateDelivery(ctx context.Context) (domain.Thresholds, error)
}
