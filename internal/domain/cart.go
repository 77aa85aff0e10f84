package domain

import "github.com/shopspring/decimal"

// CartItem is one cart line. Price is the unit price snapshotted when the
// item was first added; it is never refreshed from the catalog.
type CartItem struct {
	ProductID int64           `json:"product_id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
}

// Subtotal is unit price times quantity, exact.
func (i CartItem) Subtotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}
