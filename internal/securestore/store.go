// Package securestore provides the secure key-value storage capability used
// for pairing codes, connection records and key material. The capability is
// an explicit dependency, constructed once and handed to the components that
// need it, so tests substitute an in-memory fake and no package-level state
// exists.
package securestore

import (
	"context"
	"errors"
)

var (
	// ErrNotFound is returned by Get for an absent key.
	ErrNotFound = errors.New("secure store: key not found")

	// ErrUnauthorized is returned when the keyring passphrase does not match.
	ErrUnauthorized = errors.New("secure store: unauthorized")
)

// Store is a small durable key-value store for secrets. Implementations must
// persist every successful mutation before returning: a caller observing a
// nil error is guaranteed durability up to the underlying medium's own
// guarantees.
type Store interface {
	// Get returns the value stored under key, or ErrNotFound.
	Get(ctx context.Context, key string) (string, error)

	// Set stores value under key, overwriting any previous value.
	Set(ctx context.Context, key string, value string) error

	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// Keys lists all stored keys in unspecified order.
	Keys(ctx context.Context) ([]string, error)
}
