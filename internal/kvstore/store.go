// Package kvstore provides the namespaced key-value store the console
// persists records in, plus the adapters that implement it.
package kvstore

import "context"

// Store is the four-method contract the console consumes. Values are
// serialized records. Implementations must be safe for concurrent use.
type Store interface {
	// List returns every key that starts with prefix. It fails with an error
	// wrapping apperrors.ErrStoreUnavailable when the store cannot be reached.
	List(ctx context.Context, prefix string) ([]string, error)

	// Get returns the value stored under key. The bool is false when the key
	// is absent, in which case the error is nil.
	Get(ctx context.Context, key string) (string, bool, error)

	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key, value string) error

	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error
}
