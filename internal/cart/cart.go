// Package cart stores each person's shopping cart outside the request, so
// checkout receives it as an explicit value.
package cart

import (
	"context"
	"errors"
	"sort"
)

var ErrInvalidQuantity = errors.New("cart quantity must be positive")

type Item struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

// Cart is a person's cart; Items are ordered by product id.
type Cart struct {
	PersonID string `json:"person_id"`
	Items    []Item `json:"items"`
}

func (c Cart) Empty() bool { return len(c.Items) == 0 }

type Store interface {
	// Add increases the quantity of productID by quantity (≥ 1).
	Add(ctx context.Context, personID, productID string, quantity int) error
	Remove(ctx context.Context, personID, productID string) error
	Get(ctx context.Context, personID string) (Cart, error)
	Clear(ctx context.Context, personID string) error
	// Subtract takes items off the cart, dropping products that reach zero.
	// Quantities added since the items were read are kept.
	Subtract(ctx context.Context, personID string, items []Item) error
}

func newCart(personID string, quantities map[string]int) Cart {
	c := Cart{PersonID: personID, Items: make([]Item, 0, len(quantities))}
	for id, q := range quantities {
		if q > 0 {
			c.Items = append(c.Items, Item{ProductID: id, Quantity: q})
		}
	}
	sort.Slice(c.Items, func(i, j int) bool { return c.Items[i].ProductID < c.Items[j].ProductID })
	return c
}
