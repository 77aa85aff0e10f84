package wishlist

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"

	"shophub-client/internal/domain"
	"shophub-client/internal/store"
)

type stubProducts struct {
	product *domain.Product
	err     error
	lastID  int64
}

func (s *stubProducts) Product(_ context.Context, id int64) (*domain.Product, error) {
	s.lastID = id
	return s.product, s.err
}

type stubCart struct {
	adds   []domain.CartItem
	addErr error
}

func (s *stubCart) Add(_ context.Context, productID int64, name string, price decimal.Decimal) error {
	if s.addErr != nil {
		return s.addErr
	}
	s.adds = append(s.adds, domain.CartItem{ProductID: productID, Name: name, Price: price, Quantity: 1})
	return nil
}

func dec(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("bad decimal %q: %v", s, err)
	}
	return d
}

func newWishlist(t *testing.T, st store.Store, api *stubProducts, cart *stubCart) *Wishlist {
	t.Helper()
	w, err := New(context.Background(), st, api, cart)
	if err != nil {
		t.Fatalf("new wishlist: %v", err)
	}
	return w
}

func TestToggleAddsThenRemoves(t *testing.T) {
	ctx := context.Background()
	w := newWishlist(t, store.NewMemory(), &stubProducts{}, &stubCart{})
	p := domain.Product{ID: 1, Name: "Widget", Price: dec(t, "9.99")}

	added, err := w.Toggle(ctx, p)
	if err != nil || !added {
		t.Fatalf("expected added=true, got %v err %v", added, err)
	}
	if !w.Contains(1) || w.Count() != 1 {
		t.Fatalf("expected product on the wishlist")
	}

	added, err = w.Toggle(ctx, p)
	if err != nil || added {
		t.Fatalf("expected added=false, got %v err %v", added, err)
	}
	if w.Contains(1) || w.Count() != 0 {
		t.Fatalf("expected product removed")
	}
}

func TestWishlistPersistsAcrossRestores(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemory()
	w := newWishlist(t, st, &stubProducts{}, &stubCart{})

	category := &domain.Category{ID: 2, Name: "Books", Slug: "books"}
	if _, err := w.Toggle(ctx, domain.Product{ID: 1, Name: "Guide", Price: dec(t, "34.99"), Category: category}); err != nil {
		t.Fatalf("toggle: %v", err)
	}

	restored := newWishlist(t, st, &stubProducts{}, &stubCart{})
	items := restored.Items()
	if len(items) != 1 {
		t.Fatalf("expected one entry after restore, got %d", len(items))
	}
	if items[0].Name != "Guide" || items[0].Category == nil || items[0].Category.Slug != "books" {
		t.Fatalf("unexpected restored entry: %+v", items[0])
	}
}

func TestMoveToCartOutOfStockChangesNothing(t *testing.T) {
	ctx := context.Background()
	cart := &stubCart{}
	api := &stubProducts{product: &domain.Product{ID: 1, Name: "Mat", Price: dec(t, "29.99"), StockQuantity: 0}}
	w := newWishlist(t, store.NewMemory(), api, cart)
	if _, err := w.Toggle(ctx, domain.Product{ID: 1, Name: "Mat", Price: dec(t, "29.99")}); err != nil {
		t.Fatalf("toggle: %v", err)
	}

	outcome, err := w.MoveToCart(ctx, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if outcome != OutOfStock {
		t.Fatalf("expected OutOfStock, got %v", outcome)
	}
	if len(cart.adds) != 0 {
		t.Fatalf("expected cart untouched")
	}
	if !w.Contains(1) {
		t.Fatalf("expected wishlist entry kept")
	}
}

func TestMoveToCartUsesLivePrice(t *testing.T) {
	ctx := context.Background()
	cart := &stubCart{}
	// Snapshot price was 29.99; the live product is cheaper now.
	api := &stubProducts{product: &domain.Product{ID: 1, Name: "Mat", Price: dec(t, "24.99"), StockQuantity: 5}}
	w := newWishlist(t, store.NewMemory(), api, cart)
	if _, err := w.Toggle(ctx, domain.Product{ID: 1, Name: "Mat", Price: dec(t, "29.99")}); err != nil {
		t.Fatalf("toggle: %v", err)
	}

	outcome, err := w.MoveToCart(ctx, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if outcome != Moved {
		t.Fatalf("expected Moved, got %v", outcome)
	}
	if len(cart.adds) != 1 || !cart.adds[0].Price.Equal(dec(t, "24.99")) {
		t.Fatalf("expected live price in cart, got %+v", cart.adds)
	}
	if w.Contains(1) {
		t.Fatalf("expected wishlist entry removed")
	}
}

func TestMoveToCartFetchErrorLeavesWishlist(t *testing.T) {
	ctx := context.Background()
	api := &stubProducts{err: domain.ErrNotFound}
	w := newWishlist(t, store.NewMemory(), api, &stubCart{})
	if _, err := w.Toggle(ctx, domain.Product{ID: 1, Name: "Mat", Price: dec(t, "29.99")}); err != nil {
		t.Fatalf("toggle: %v", err)
	}

	if _, err := w.MoveToCart(ctx, 1); err == nil {
		t.Fatalf("expected fetch error")
	}
	if !w.Contains(1) {
		t.Fatalf("expected wishlist entry kept on error")
	}
}

func TestClearEmptiesWishlist(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemory()
	w := newWishlist(t, st, &stubProducts{}, &stubCart{})
	w.Toggle(ctx, domain.Product{ID: 1, Name: "A", Price: dec(t, "1.00")})
	w.Toggle(ctx, domain.Product{ID: 2, Name: "B", Price: dec(t, "2.00")})

	if err := w.Clear(ctx); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if w.Count() != 0 {
		t.Fatalf("expected empty wishlist")
	}

	restored := newWishlist(t, st, &stubProducts{}, &stubCart{})
	if restored.Count() != 0 {
		t.Fatalf("expected cleared wishlist to persist")
	}
}
