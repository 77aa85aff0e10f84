package api

import (
	"context"
	"fmt"
	"net/http"

	"shophub-client/internal/domain"
)

// OrderInput is the payload for placing an order. The backend snapshots
// prices, validates stock and computes the total.
type OrderInput struct {
	CustomerEmail string           `json:"customer_email"`
	Items         []OrderItemInput `json:"items"`
}

type OrderItemInput struct {
	ProductID int64 `json:"product"`
	Quantity  int   `json:"quantity"`
}

// orderEnvelope wraps mutating order responses, which carry the order next
// to a status message.
type orderEnvelope struct {
	Order   domain.Order `json:"order"`
	Message string       `json:"message"`
}

// CreateOrder places an order.
func (c *Client) CreateOrder(ctx context.Context, in OrderInput) (*domain.Order, error) {
	var env orderEnvelope
	if err := c.do(ctx, http.MethodPost, "/orders/", nil, in, &env); err != nil {
		return nil, err
	}
	return &env.Order, nil
}

// MyOrders lists the current user's orders.
func (c *Client) MyOrders(ctx context.Context) ([]domain.Order, error) {
	var orders []domain.Order
	if err := c.do(ctx, http.MethodGet, "/orders/my_orders/", nil, nil, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// CancelOrder cancels an order; the backend restores reserved stock.
func (c *Client) CancelOrder(ctx context.Context, id int64) (*domain.Order, error) {
	var env orderEnvelope
	path := fmt.Sprintf("/orders/%d/cancel/", id)
	if err := c.do(ctx, http.MethodPost, path, nil, nil, &env); err != nil {
		return nil, err
	}
	return &env.Order, nil
}
