// Package store provides the key-value persistence used for session, cart,
// wishlist and preference state. The contract is deliberately small: values
// are strings, writes are last-write-wins, and there are no transactions.
package store

import "context"

// Well-known keys.
const (
	KeyAuthToken = "authToken"
	KeyUsername  = "username"
	KeyTheme     = "theme"
	KeyWishlist  = "wishlist"
	KeyCart      = "cart"
)

// Store is a durable string key-value store.
type Store interface {
	// Get returns the stored value, or domain.ErrNotFound when the key is absent.
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}
