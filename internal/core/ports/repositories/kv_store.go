package repositories

import "context"

// KVStore is the opaque key-value persistence boundary. The receipt
// store keeps the entire collection serialized as one value under a
// fixed key, so the contract is deliberately minimal.
type KVStore interface {
	// Get returns the value for key. The second return is false when the
	// key does not exist; that is not an error.
	Get(ctx context.Context, key string) (string, bool, error)
	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key string, value string) error
	// Remove deletes key. Removing a missing key is a no-op.
	Remove(ctx context.Context, key string) error
}
