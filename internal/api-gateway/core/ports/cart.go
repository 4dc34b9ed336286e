package ports

import (
	"context"

	"github.com/jcmexdev/storefront/internal/cart"
)

type CartStore interface {
	Add(ctx context.Context, personID, productID string, quantity int) error
	Remove(ctx context.Context, personID, productID string) error
	Get(ctx context.Context, personID string) (cart.Cart, error)
	Clear(ctx context.Context, personID string) error
}
