package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/jellydator/ttlcache/v3"
)

// memoryCache serves single-process deployments and tests.
type memoryCache struct {
	items       *ttlcache.Cache[string, string]
	serviceName string
}

func NewMemoryCache(serviceName string) Cache {
	return &memoryCache{
		// reads must not extend an entry's lifetime
		items:       ttlcache.New[string, string](ttlcache.WithDisableTouchOnHit[string, string]()),
		serviceName: serviceName,
	}
}

func itemTTL(ttl time.Duration) time.Duration {
	if ttl <= 0 {
		return ttlcache.NoTTL
	}
	return ttl
}

func (m *memoryCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	m.items.Set(key, fmt.Sprint(value), itemTTL(ttl))
	return nil
}

func (m *memoryCache) SetNX(ctx context.Context, key string, value interface{}, ttl time.Duration) (bool, error) {
	_, found := m.items.GetOrSet(key, fmt.Sprint(value), ttlcache.WithTTL[string, string](itemTTL(ttl)))
	return !found, nil
}

func (m *memoryCache) Get(ctx context.Context, key string) (string, error) {
	item := m.items.Get(key)
	if item == nil {
		return "", nil
	}
	return item.Value(), nil
}

func (m *memoryCache) Delete(ctx context.Context, key string) error {
	m.items.Delete(key)
	return nil
}

func (m *memoryCache) GenerateKey(operation, key string) string {
	return generateKey(m.serviceName, operation, key)
}
