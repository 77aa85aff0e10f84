// Package catalog holds the product list and its filter criteria.
package catalog

import (
	"context"
	"sync"

	"shophub-client/internal/api"
	"shophub-client/internal/domain"
)

// DefaultOrdering sorts newest products first, matching the backend default.
const DefaultOrdering = "-created_at"

type gateway interface {
	Products(ctx context.Context, q api.ProductQuery) ([]domain.Product, error)
	Categories(ctx context.Context) ([]domain.Category, error)
}

// Filter is the current catalog filter criteria. Price bounds are kept as the
// raw strings the user typed; the backend interprets them. min <= max is not
// enforced here.
type Filter struct {
	Search   string
	Category string // category slug
	MinPrice string
	MaxPrice string
	Ordering string
}

// DefaultFilter is the bootstrap filter: no criteria, newest first.
func DefaultFilter() Filter {
	return Filter{Ordering: DefaultOrdering}
}

// Patch updates a subset of filter fields; nil fields keep their value.
type Patch struct {
	Search   *string
	Category *string
	MinPrice *string
	MaxPrice *string
	Ordering *string
}

// Catalog owns the fetched product list, the category list and the filter
// state. Overlapping fetches are tagged with a generation counter so a stale
// response can never overwrite a newer one.
type Catalog struct {
	mu         sync.Mutex
	api        gateway
	filter     Filter
	generation uint64

	products   []domain.Product
	fetchErr   error
	categories []domain.Category
}

func New(api gateway) *Catalog {
	return &Catalog{api: api, filter: DefaultFilter()}
}

// Filter returns a copy of the current filter.
func (c *Catalog) Filter() Filter {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.filter
}

// SetFilter merges p into the current filter without fetching.
func (c *Catalog) SetFilter(p Patch) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if p.Search != nil {
		c.filter.Search = *p.Search
	}
	if p.Category != nil {
		c.filter.Category = *p.Category
	}
	if p.MinPrice != nil {
		c.filter.MinPrice = *p.MinPrice
	}
	if p.MaxPrice != nil {
		c.filter.MaxPrice = *p.MaxPrice
	}
	if p.Ordering != nil {
		c.filter.Ordering = *p.Ordering
	}
}

// Apply fetches products for the current filter and replaces the list.
// Empty filter fields are omitted from the request. If another Apply was
// started after this one, the older response is discarded and the shared
// state keeps the newer result; the caller still receives its own response.
func (c *Catalog) Apply(ctx context.Context) ([]domain.Product, error) {
	c.mu.Lock()
	c.generation++
	gen := c.generation
	q := api.ProductQuery{
		Search:   c.filter.Search,
		Category: c.filter.Category,
		PriceMin: c.filter.MinPrice,
		PriceMax: c.filter.MaxPrice,
		Ordering: c.filter.Ordering,
	}
	c.mu.Unlock()

	products, err := c.api.Products(ctx, q)

	c.mu.Lock()
	defer c.mu.Unlock()
	if gen == c.generation {
		if err != nil {
			c.products = nil
			c.fetchErr = err
		} else {
			c.products = products
			c.fetchErr = nil
		}
	}
	if err != nil {
		return nil, err
	}
	return products, nil
}

// Load resets the filter to the default and fetches.
func (c *Catalog) Load(ctx context.Context) ([]domain.Product, error) {
	c.mu.Lock()
	c.filter = DefaultFilter()
	c.mu.Unlock()
	return c.Apply(ctx)
}

// Products returns the last successfully fetched list.
func (c *Catalog) Products() []domain.Product {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]domain.Product, len(c.products))
	copy(out, c.products)
	return out
}

// Err reports whether the last fetch failed. A nil Err with an empty
// Products list means the filter genuinely matched nothing.
func (c *Catalog) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.fetchErr
}

// LoadCategories fetches and caches the category list.
func (c *Catalog) LoadCategories(ctx context.Context) ([]domain.Category, error) {
	categories, err := c.api.Categories(ctx)
	if err != nil {
		return nil, err
	}
	c.mu.Lock()
	c.categories = categories
	c.mu.Unlock()
	return categories, nil
}

// Categories returns the cached category list.
func (c *Catalog) Categories() []domain.Category {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]domain.Category, len(c.categories))
	copy(out, c.categories)
	return out
}
