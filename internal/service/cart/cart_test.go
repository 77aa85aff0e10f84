package cart

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"

	"shophub-client/internal/store"
)

func price(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("bad price %q: %v", s, err)
	}
	return d
}

func TestAddMergesExistingLine(t *testing.T) {
	ctx := context.Background()
	c, err := New(ctx, store.NewMemory())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := c.Add(ctx, 1, "Widget", price(t, "9.99")); err != nil {
		t.Fatalf("first add: %v", err)
	}
	if err := c.Add(ctx, 1, "Widget", price(t, "9.99")); err != nil {
		t.Fatalf("second add: %v", err)
	}

	items := c.Items()
	if len(items) != 1 {
		t.Fatalf("expected one line, got %d", len(items))
	}
	if items[0].Quantity != 2 {
		t.Fatalf("expected quantity 2, got %d", items[0].Quantity)
	}
	if got := c.DisplayTotal(); got != "19.98" {
		t.Fatalf("expected total 19.98, got %s", got)
	}
	if c.Count() != 2 {
		t.Fatalf("expected count 2, got %d", c.Count())
	}
}

func TestAddKeepsPriceSnapshot(t *testing.T) {
	ctx := context.Background()
	c, _ := New(ctx, store.NewMemory())

	if err := c.Add(ctx, 1, "Widget", price(t, "9.99")); err != nil {
		t.Fatalf("add: %v", err)
	}
	// A later add at a different live price must not change the stored one.
	if err := c.Add(ctx, 1, "Widget", price(t, "12.50")); err != nil {
		t.Fatalf("add: %v", err)
	}

	items := c.Items()
	if !items[0].Price.Equal(price(t, "9.99")) {
		t.Fatalf("expected snapshot price 9.99, got %s", items[0].Price)
	}
}

func TestUpdateQuantity(t *testing.T) {
	ctx := context.Background()
	c, _ := New(ctx, store.NewMemory())
	if err := c.Add(ctx, 1, "Widget", price(t, "9.99")); err != nil {
		t.Fatalf("add: %v", err)
	}

	if err := c.UpdateQuantity(ctx, 1, 5); err != nil {
		t.Fatalf("update: %v", err)
	}
	if got := c.Items()[0].Quantity; got != 5 {
		t.Fatalf("expected quantity 5, got %d", got)
	}

	if err := c.UpdateQuantity(ctx, 1, 0); err != nil {
		t.Fatalf("update to zero: %v", err)
	}
	if len(c.Items()) != 0 {
		t.Fatalf("expected empty cart after zero quantity")
	}
}

func TestUpdateQuantityUnknownProductIsNoop(t *testing.T) {
	ctx := context.Background()
	c, _ := New(ctx, store.NewMemory())
	if err := c.UpdateQuantity(ctx, 42, 3); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(c.Items()) != 0 {
		t.Fatalf("expected no lines")
	}
}

func TestRemoveDropsWholeLine(t *testing.T) {
	ctx := context.Background()
	c, _ := New(ctx, store.NewMemory())
	c.Add(ctx, 1, "Widget", price(t, "9.99"))
	c.Add(ctx, 1, "Widget", price(t, "9.99"))
	c.Add(ctx, 2, "Gadget", price(t, "4.00"))

	if err := c.Remove(ctx, 1); err != nil {
		t.Fatalf("remove: %v", err)
	}
	items := c.Items()
	if len(items) != 1 || items[0].ProductID != 2 {
		t.Fatalf("expected only the gadget line, got %+v", items)
	}
}

func TestTotalIsExact(t *testing.T) {
	ctx := context.Background()
	c, _ := New(ctx, store.NewMemory())
	c.Add(ctx, 1, "A", price(t, "0.10"))
	c.Add(ctx, 2, "B", price(t, "0.20"))

	if !c.Total().Equal(price(t, "0.30")) {
		t.Fatalf("expected exact 0.30, got %s", c.Total())
	}
}

func TestCartPersistsAcrossRestores(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemory()

	c, _ := New(ctx, st)
	c.Add(ctx, 1, "Widget", price(t, "9.99"))
	c.Add(ctx, 2, "Gadget", price(t, "4.00"))
	c.UpdateQuantity(ctx, 2, 3)

	restored, err := New(ctx, st)
	if err != nil {
		t.Fatalf("restore: %v", err)
	}
	items := restored.Items()
	if len(items) != 2 {
		t.Fatalf("expected 2 lines after restore, got %d", len(items))
	}
	if got := restored.DisplayTotal(); got != "21.99" {
		t.Fatalf("expected total 21.99 after restore, got %s", got)
	}
}

func TestCorruptPersistedCartFailsLoud(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemory()
	st.Set(ctx, store.KeyCart, "{not json")

	if _, err := New(ctx, st); err == nil {
		t.Fatalf("expected decode error")
	}
}

func TestClear(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemory()
	c, _ := New(ctx, st)
	c.Add(ctx, 1, "Widget", price(t, "9.99"))

	if err := c.Clear(ctx); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if len(c.Items()) != 0 || c.Count() != 0 {
		t.Fatalf("expected empty cart")
	}

	restored, _ := New(ctx, st)
	if len(restored.Items()) != 0 {
		t.Fatalf("expected cleared cart to persist")
	}
}
