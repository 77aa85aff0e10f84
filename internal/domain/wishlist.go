package domain

import "github.com/shopspring/decimal"

// WishlistItem is a saved product snapshot. The wishlist keys entries by
// ProductID, so there is at most one item per product.
type WishlistItem struct {
	ProductID int64           `json:"product_id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	ImageURL  string          `json:"image_url,omitempty"`
	Category  *Category       `json:"category,omitempty"`
}
