// Package checkout turns the cart into an order and runs the simulated
// payment for it.
package checkout

import (
	"context"
	"errors"
	"log"

	"shophub-client/internal/api"
	"shophub-client/internal/domain"
	"shophub-client/internal/payment"
)

// ErrEmptyCart rejects checkout before any network call.
var ErrEmptyCart = errors.New("cart is empty")

type gateway interface {
	CurrentUser(ctx context.Context) (*domain.User, error)
	CreateOrder(ctx context.Context, in api.OrderInput) (*domain.Order, error)
	CancelOrder(ctx context.Context, id int64) (*domain.Order, error)
}

type cartState interface {
	Items() []domain.CartItem
	Clear(ctx context.Context) error
}

// Checkout orchestrates order placement and payment.
type Checkout struct {
	api      gateway
	cart     cartState
	payments *payment.Simulator
	logger   *log.Logger
}

func New(api gateway, cart cartState, payments *payment.Simulator, logger *log.Logger) *Checkout {
	return &Checkout{api: api, cart: cart, payments: payments, logger: logger}
}

// Result is a completed checkout: the placed order and its receipt.
type Result struct {
	Order   *domain.Order
	Receipt *payment.Receipt
}

// PlaceOrder creates a stock-validated order for the cart contents and then
// processes the payment for the server-computed total. On success the cart is
// cleared. A cancelled payment cancels the order (restoring its stock) and
// returns payment.ErrCancelled.
func (c *Checkout) PlaceOrder(ctx context.Context, method payment.Method, card *payment.Card) (*Result, error) {
	items := c.cart.Items()
	if len(items) == 0 {
		return nil, ErrEmptyCart
	}

	user, err := c.api.CurrentUser(ctx)
	if err != nil {
		return nil, err
	}

	in := api.OrderInput{CustomerEmail: user.Email}
	for _, it := range items {
		in.Items = append(in.Items, api.OrderItemInput{
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
		})
	}

	order, err := c.api.CreateOrder(ctx, in)
	if err != nil {
		return nil, err
	}

	receipt, err := c.payments.Process(ctx, method, order.TotalAmount, card)
	if err != nil {
		if errors.Is(err, payment.ErrCancelled) {
			if _, cancelErr := c.api.CancelOrder(ctx, order.ID); cancelErr != nil {
				c.logger.Printf("cancel order %d after aborted payment: %v", order.ID, cancelErr)
			}
		}
		return nil, err
	}

	if err := c.cart.Clear(ctx); err != nil {
		return nil, err
	}
	return &Result{Order: order, Receipt: receipt}, nil
}
