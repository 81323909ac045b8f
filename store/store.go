// Package store is the durable local key-value port backing session and
// cart persistence. Values are JSON-serialized. Production uses the bbolt
// implementation; tests use the in-memory one.
package store

import "errors"

// ErrNotFound is returned by Get when the key has no stored value.
var ErrNotFound = errors.New("key not found")

// Storage keys. The names match the original storefront's local-storage
// layout so upgraded installs keep their state.
const (
	KeyUser      = "user"
	KeyToken     = "token"
	KeyCart      = "cartItems"
	KeyTheme     = "appTheme"
	KeyFavorites = "favoritePizzas"
)

// Store is a small key-value persistence port.
type Store interface {
	// Get unmarshals the value stored under key into v. Returns
	// ErrNotFound when the key is absent, or a decode error when the
	// stored bytes are not valid JSON for v.
	Get(key string, v any) error

	// Set marshals v and stores it under key, replacing any prior value.
	Set(key string, v any) error

	// Delete removes key. Deleting an absent key is not an error.
	Delete(key string) error

	Close() error
}
