package cart

import (
	"context"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps each cart in a hash keyed "cart:<person>" mapping product
// id to quantity.
type RedisStore struct {
	client *redis.Client
}

// subtractScript decrements each product field and drops the ones that
// reach zero, atomically. ARGV holds product/quantity pairs.
var subtractScript = redis.NewScript(`
for i = 1, #ARGV, 2 do
	local left = redis.call('HINCRBY', KEYS[1], ARGV[i], -tonumber(ARGV[i + 1]))
	if left <= 0 then
		redis.call('HDEL', KEYS[1], ARGV[i])
	end
end
return 1`)

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func key(personID string) string {
	return "cart:" + personID
}

func (s *RedisStore) Add(ctx context.Context, personID, productID string, quantity int) error {
	if quantity < 1 {
		return ErrInvalidQuantity
	}
	if err := s.client.HIncrBy(ctx, key(personID), productID, int64(quantity)).Err(); err != nil {
		return fmt.Errorf("cart: add %s for %s: %w", productID, personID, err)
	}
	return nil
}

func (s *RedisStore) Remove(ctx context.Context, personID, productID string) error {
	if err := s.client.HDel(ctx, key(personID), productID).Err(); err != nil {
		return fmt.Errorf("cart: remove %s for %s: %w", productID, personID, err)
	}
	return nil
}

func (s *RedisStore) Get(ctx context.Context, personID string) (Cart, error) {
	fields, err := s.client.HGetAll(ctx, key(personID)).Result()
	if err != nil {
		return Cart{}, fmt.Errorf("cart: get for %s: %w", personID, err)
	}

	quantities := make(map[string]int, len(fields))
	for productID, raw := range fields {
		q, err := strconv.Atoi(raw)
		if err != nil {
			return Cart{}, fmt.Errorf("cart: bad quantity %q for %s: %w", raw, productID, err)
		}
		quantities[productID] = q
	}
	return newCart(personID, quantities), nil
}

func (s *RedisStore) Clear(ctx context.Context, personID string) error {
	if err := s.client.Del(ctx, key(personID)).Err(); err != nil {
		return fmt.Errorf("cart: clear for %s: %w", personID, err)
	}
	return nil
}

func (s *RedisStore) Subtract(ctx context.Context, personID string, items []Item) error {
	if len(items) == 0 {
		return nil
	}
	args := make([]interface{}, 0, 2*len(items))
	for _, item := range items {
		args = append(args, item.ProductID, item.Quantity)
	}
	if err := subtractScript.Run(ctx, s.client, []string{key(personID)}, args...).Err(); err != nil {
		return fmt.Errorf("cart: subtract for %s: %w", personID, err)
	}
	return nil
}
