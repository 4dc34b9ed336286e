package cache

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryCache(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache("checkout")

	key := c.GenerateKey("place", "p1:k1")
	assert.Equal(t, "checkout:place:p1:k1", key)

	require.NoError(t, c.Set(ctx, key, "order-1", 50*time.Millisecond))
	got, err := c.Get(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, "order-1", got)

	require.Eventually(t, func() bool {
		got, err := c.Get(ctx, key)
		return err == nil && got == ""
	}, time.Second, 10*time.Millisecond, "expired entries read as missing")

	require.NoError(t, c.Set(ctx, key, 42, 0))
	got, err = c.Get(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, "42", got)

	require.NoError(t, c.Delete(ctx, key))
	got, err = c.Get(ctx, key)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestMemoryCache_SetNX(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache("checkout")

	ok, err := c.SetNX(ctx, "k", "first", time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = c.SetNX(ctx, "k", "second", time.Minute)
	require.NoError(t, err)
	assert.False(t, ok)
	got, _ := c.Get(ctx, "k")
	assert.Equal(t, "first", got)

	// an expired claim can be taken again
	ok, err = c.SetNX(ctx, "short", "a", 20*time.Millisecond)
	require.NoError(t, err)
	require.True(t, ok)
	require.Eventually(t, func() bool {
		ok, err := c.SetNX(ctx, "short", "b", time.Minute)
		return err == nil && ok
	}, time.Second, 10*time.Millisecond)
}

func TestMemoryCache_SetNXSingleWinner(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache("checkout")

	const callers = 16
	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		wins int
	)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ok, err := c.SetNX(ctx, "k", "claim", time.Minute)
			assert.NoError(t, err)
			if ok {
				mu.Lock()
				wins++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, wins)
}
