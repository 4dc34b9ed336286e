package cart

import (
	"context"
	"sync"
)

type MemoryStore struct {
	mu    sync.Mutex
	carts map[string]map[string]int
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{carts: make(map[string]map[string]int)}
}

func (s *MemoryStore) Add(ctx context.Context, personID, productID string, quantity int) error {
	if quantity < 1 {
		return ErrInvalidQuantity
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.carts[personID]
	if !ok {
		c = make(map[string]int)
		s.carts[personID] = c
	}
	c[productID] += quantity
	return nil
}

func (s *MemoryStore) Remove(ctx context.Context, personID, productID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.carts[personID], productID)
	return nil
}

func (s *MemoryStore) Get(ctx context.Context, personID string) (Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return newCart(personID, s.carts[personID]), nil
}

func (s *MemoryStore) Clear(ctx context.Context, personID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.carts, personID)
	return nil
}

func (s *MemoryStore) Subtract(ctx context.Context, personID string, items []Item) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.carts[personID]
	if !ok {
		return nil
	}
	for _, item := range items {
		c[item.ProductID] -= item.Quantity
		if c[item.ProductID] <= 0 {
			delete(c, item.ProductID)
		}
	}
	return nil
}
