// Package cart manages the shopping cart: line items keyed by product id,
// snapshot unit prices and quantities. Every mutation writes the full cart
// back to the persistent store before returning.
package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/shopspring/decimal"

	"shophub-client/internal/domain"
	"shophub-client/internal/store"
)

// Cart holds the cart lines. Quantity is always >= 1; dropping a quantity to
// zero deletes the line.
type Cart struct {
	mu    sync.Mutex
	store store.Store
	items []domain.CartItem
}

// New restores the persisted cart. A missing key starts an empty cart.
func New(ctx context.Context, st store.Store) (*Cart, error) {
	c := &Cart{store: st}
	raw, err := st.Get(ctx, store.KeyCart)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c, nil
		}
		return nil, fmt.Errorf("load cart: %w", err)
	}
	if err := json.Unmarshal([]byte(raw), &c.items); err != nil {
		return nil, fmt.Errorf("decode cart: %w", err)
	}
	return c, nil
}

// Add puts one unit of the product in the cart. If a line for the product
// already exists its quantity is incremented; the stored unit price stays the
// snapshot taken on first add.
func (c *Cart) Add(ctx context.Context, productID int64, name string, price decimal.Decimal) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.items {
		if c.items[i].ProductID == productID {
			c.items[i].Quantity++
			return c.persist(ctx)
		}
	}
	c.items = append(c.items, domain.CartItem{
		ProductID: productID,
		Name:      name,
		Price:     price,
		Quantity:  1,
	})
	return c.persist(ctx)
}

// Remove deletes the whole line for productID regardless of quantity.
func (c *Cart) Remove(ctx context.Context, productID int64) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.items {
		if c.items[i].ProductID == productID {
			c.items = append(c.items[:i], c.items[i+1:]...)
			return c.persist(ctx)
		}
	}
	return nil
}

// UpdateQuantity sets the line quantity exactly. qty <= 0 removes the line.
// Stock limits are not checked here; the backend validates at checkout.
func (c *Cart) UpdateQuantity(ctx context.Context, productID int64, qty int) error {
	if qty <= 0 {
		return c.Remove(ctx, productID)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.items {
		if c.items[i].ProductID == productID {
			c.items[i].Quantity = qty
			return c.persist(ctx)
		}
	}
	return nil
}

// Items returns a copy of the cart lines.
func (c *Cart) Items() []domain.CartItem {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]domain.CartItem, len(c.items))
	copy(out, c.items)
	return out
}

// Total is the exact sum of price times quantity over all lines.
func (c *Cart) Total() decimal.Decimal {
	c.mu.Lock()
	defer c.mu.Unlock()
	total := decimal.Zero
	for _, it := range c.items {
		total = total.Add(it.Subtotal())
	}
	return total
}

// DisplayTotal renders the total with two decimal places. Rounding happens
// only here; Total stays exact.
func (c *Cart) DisplayTotal() string {
	return c.Total().StringFixed(2)
}

// Count is the badge value: the sum of all line quantities.
func (c *Cart) Count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, it := range c.items {
		n += it.Quantity
	}
	return n
}

// Clear empties the cart.
func (c *Cart) Clear(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = nil
	return c.persist(ctx)
}

// persist writes the full snapshot. Callers hold c.mu.
func (c *Cart) persist(ctx context.Context) error {
	items := c.items
	if items == nil {
		items = []domain.CartItem{}
	}
	raw, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encode cart: %w", err)
	}
	if err := c.store.Set(ctx, store.KeyCart, string(raw)); err != nil {
		return fmt.Errorf("persist cart: %w", err)
	}
	return nil
}
