package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type Product struct {
	ID            int64           `json:"id"`
	Name          string          `json:"name"`
	Description   string          `json:"description,omitempty"`
	Price         decimal.Decimal `json:"price"`
	Category      *Category       `json:"category,omitempty"`
	StockQuantity int             `json:"stock_quantity"`
	ImageURL      string          `json:"image_url,omitempty"`
	Owner         *User           `json:"owner,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
}

// InStock reports whether at least one unit can be ordered.
func (p Product) InStock() bool {
	return p.StockQuantity > 0
}
