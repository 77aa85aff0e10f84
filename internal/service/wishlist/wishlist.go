// Package wishlist manages the set of saved products. Entries are keyed by
// product id, and every mutation writes the full snapshot to the store.
package wishlist

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

type productGetter interface {
	Product(ctx context.Context, id int64) (*domain.Product, error)
}

type cartAdder interface {
	Add(ctx context.Context, productID int64, name string, price decimal.Decimal) error
}

// MoveOutcome distinguishes the results of MoveToCart that are not errors.
type MoveOutcome int

const (
	// Moved means the product was added to the cart and removed from the
	// wishlist.
	Moved MoveOutcome = iota
	// OutOfStock means the live product has no stock; the wishlist and the
	// cart are both untouched.
	OutOfStock
)

// Wishlist holds the saved product snapshots.
type Wishlist struct {
	mu    sync.Mutex
	store store.Store
	api   productGetter
	cart  cartAdder
	items []domain.WishlistItem
}

// New restores the persisted wishlist. A missing key starts empty.
func New(ctx context.Context, st store.Store, api productGetter, cart cartAdder) (*Wishlist, error) {
	w := &Wishlist{store: st, api: api, cart: cart}
	raw, err := st.Get(ctx, store.KeyWishlist)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return w, nil
		}
		return nil, fmt.Errorf("load wishlist: %w", err)
	}
	if err := json.Unmarshal([]byte(raw), &w.items); err != nil {
		return nil, fmt.Errorf("decode wishlist: %w", err)
	}
	return w, nil
}

// Toggle adds p when absent and removes it when present. The returned bool is
// the new membership: true means p is now in the wishlist. Callers use it to
// flip their indicator instead of re-querying.
func (w *Wishlist) Toggle(ctx context.Context, p domain.Product) (bool, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	for i := range w.items {
		if w.items[i].ProductID == p.ID {
			w.items = append(w.items[:i], w.items[i+1:]...)
			if err := w.persist(ctx); err != nil {
				return false, err
			}
			return false, nil
		}
	}
	w.items = append(w.items, domain.WishlistItem{
		ProductID: p.ID,
		Name:      p.Name,
		Price:     p.Price,
		ImageURL:  p.ImageURL,
		Category:  p.Category,
	})
	if err := w.persist(ctx); err != nil {
		return false, err
	}
	return true, nil
}

// Contains reports membership without side effects.
func (w *Wishlist) Contains(productID int64) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	for _, it := range w.items {
		if it.ProductID == productID {
			return true
		}
	}
	return false
}

// Items returns a copy of the saved snapshots.
func (w *Wishlist) Items() []domain.WishlistItem {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := make([]domain.WishlistItem, len(w.items))
	copy(out, w.items)
	return out
}

func (w *Wishlist) Count() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.items)
}

// Remove drops the entry for productID if present.
func (w *Wishlist) Remove(ctx context.Context, productID int64) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	for i := range w.items {
		if w.items[i].ProductID == productID {
			w.items = append(w.items[:i], w.items[i+1:]...)
			return w.persist(ctx)
		}
	}
	return nil
}

// MoveToCart fetches the live product and, when it has stock, adds it to the
// cart at the live price and removes it from the wishlist. An out-of-stock
// product is reported as an outcome, not an error, and changes nothing.
func (w *Wishlist) MoveToCart(ctx context.Context, productID int64) (MoveOutcome, error) {
	p, err := w.api.Product(ctx, productID)
	if err != nil {
		return 0, err
	}
	if !p.InStock() {
		return OutOfStock, nil
	}
	if err := w.cart.Add(ctx, p.ID, p.Name, p.Price); err != nil {
		return 0, err
	}
	return Moved, w.Remove(ctx, productID)
}

// Clear unconditionally empties the wishlist. Any confirmation dialog is the
// caller's concern.
func (w *Wishlist) Clear(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.items = nil
	return w.persist(ctx)
}

// persist writes the full snapshot. Callers hold w.mu.
func (w *Wishlist) persist(ctx context.Context) error {
	items := w.items
	if items == nil {
		items = []domain.WishlistItem{}
	}
	raw, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encode wishlist: %w", err)
	}
	if err := w.store.Set(ctx, store.KeyWishlist, string(raw)); err != nil {
		return fmt.Errorf("persist wishlist: %w", err)
	}
	return nil
}
