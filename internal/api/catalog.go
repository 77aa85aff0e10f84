package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/shopspring/decimal"

	"shophub-client/internal/domain"
)

// ProductQuery holds list filters. Empty fields are omitted from the query
// string entirely, so a zero ProductQuery requests the unfiltered list.
type ProductQuery struct {
	Search   string
	Category string // category slug
	PriceMin string
	PriceMax string
	Ordering string
}

func (q ProductQuery) values() url.Values {
	v := url.Values{}
	if q.Search != "" {
		v.Set("search", q.Search)
	}
	if q.Category != "" {
		v.Set("category", q.Category)
	}
	if q.PriceMin != "" {
		v.Set("price_min", q.PriceMin)
	}
	if q.PriceMax != "" {
		v.Set("price_max", q.PriceMax)
	}
	if q.Ordering != "" {
		v.Set("ordering", q.Ordering)
	}
	return v
}

// ProductInput is the payload for creating or updating a product.
type ProductInput struct {
	Name          string          `json:"name"`
	Description   string          `json:"description"`
	Price         decimal.Decimal `json:"price"`
	CategoryID    int64           `json:"category_id"`
	StockQuantity int             `json:"stock_quantity"`
	ImageURL      string          `json:"image_url"`
}

// Availability is the result of a stock check for a requested quantity.
type Availability struct {
	Product           string `json:"product"`
	RequestedQuantity int    `json:"requested_quantity"`
	AvailableStock    int    `json:"available_stock"`
	IsAvailable       bool   `json:"is_available"`
	Message           string `json:"message"`
}

// Products fetches the product list matching q.
func (c *Client) Products(ctx context.Context, q ProductQuery) ([]domain.Product, error) {
	var products []domain.Product
	if err := c.do(ctx, http.MethodGet, "/products/", q.values(), nil, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// Product fetches a single product by id.
func (c *Client) Product(ctx context.Context, id int64) (*domain.Product, error) {
	var p domain.Product
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/products/%d/", id), nil, nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *Client) CreateProduct(ctx context.Context, in ProductInput) (*domain.Product, error) {
	var p domain.Product
	if err := c.do(ctx, http.MethodPost, "/products/", nil, in, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *Client) UpdateProduct(ctx context.Context, id int64, in ProductInput) (*domain.Product, error) {
	var p domain.Product
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/products/%d/", id), nil, in, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *Client) DeleteProduct(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/products/%d/", id), nil, nil, nil)
}

// CheckAvailability asks the backend whether quantity units are in stock.
func (c *Client) CheckAvailability(ctx context.Context, id int64, quantity int) (*Availability, error) {
	var a Availability
	body := map[string]int{"quantity": quantity}
	path := fmt.Sprintf("/products/%d/check_availability/", id)
	if err := c.do(ctx, http.MethodPost, path, nil, body, &a); err != nil {
		return nil, err
	}
	return &a, nil
}

// Categories fetches all categories.
func (c *Client) Categories(ctx context.Context) ([]domain.Category, error) {
	var categories []domain.Category
	if err := c.do(ctx, http.MethodGet, "/categories/", nil, nil, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

// CreateCategory creates a category; the backend derives the slug.
func (c *Client) CreateCategory(ctx context.Context, name string) (*domain.Category, error) {
	var cat domain.Category
	body := map[string]string{"name": name}
	if err := c.do(ctx, http.MethodPost, "/categories/", nil, body, &cat); err != nil {
		return nil, err
	}
	return &cat, nil
}
