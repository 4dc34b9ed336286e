package entity

import (
	"context"

	orderdomain "github.com/jcmexdev/storefront/internal/order-service/domain"
)

// Identity is the caller as asserted by the upstream auth proxy.
type Identity struct {
	PersonID string
	Role     orderdomain.Role
}

func (i Identity) Privileged() bool { return i.Role.Privileged() }

type identityKey struct{}

func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, id)
}

// IdentityFrom returns the identity stored by the identity middleware.
func IdentityFrom(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityKey{}).(Identity)
	return id, ok
}
