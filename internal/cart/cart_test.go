package cart

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// storeContract exercises any Store implementation.
func storeContract(t *testing.T, s Store) {
	ctx := context.Background()

	c, err := s.Get(ctx, "p1")
	require.NoError(t, err)
	assert.True(t, c.Empty())

	require.NoError(t, s.Add(ctx, "p1", "b", 2))
	require.NoError(t, s.Add(ctx, "p1", "a", 1))
	require.NoError(t, s.Add(ctx, "p1", "b", 3))
	require.NoError(t, s.Add(ctx, "p2", "a", 7))
	assert.ErrorIs(t, s.Add(ctx, "p1", "a", 0), ErrInvalidQuantity)

	c, err = s.Get(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, Cart{PersonID: "p1", Items: []Item{{ProductID: "a", Quantity: 1}, {ProductID: "b", Quantity: 5}}}, c)

	require.NoError(t, s.Remove(ctx, "p1", "a"))
	c, err = s.Get(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, []Item{{ProductID: "b", Quantity: 5}}, c.Items)

	// b was read as 5, then 2 more were added before the subtract
	require.NoError(t, s.Add(ctx, "p1", "c", 4))
	require.NoError(t, s.Add(ctx, "p1", "b", 2))
	require.NoError(t, s.Subtract(ctx, "p1", []Item{{ProductID: "b", Quantity: 5}, {ProductID: "c", Quantity: 4}}))
	c, err = s.Get(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, []Item{{ProductID: "b", Quantity: 2}}, c.Items)
	require.NoError(t, s.Subtract(ctx, "nobody", []Item{{ProductID: "b", Quantity: 1}}))

	require.NoError(t, s.Clear(ctx, "p1"))
	c, err = s.Get(ctx, "p1")
	require.NoError(t, err)
	assert.True(t, c.Empty())

	c, err = s.Get(ctx, "p2")
	require.NoError(t, err)
	assert.Len(t, c.Items, 1, "other carts untouched")
}

func TestMemoryStore(t *testing.T) {
	storeContract(t, NewMemoryStore())
}
