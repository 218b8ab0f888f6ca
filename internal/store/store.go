// Package store provides the key-value client adapter for the backing
// store. Absence of a key is a normal result, never an error; any error
// returned by a KV method is an infrastructure failure.
package store

import "context"

// KV is the contract every backing store implementation satisfies.
// The connection behind an implementation is process-scoped: created once
// at startup and shared by all concurrent requests.
type KV interface {
	// Get returns the value for key. The boolean reports whether the
	// key exists; a missing key is (_, false, nil).
	Get(ctx context.Context, key string) (string, bool, error)

	// Set writes value under key, overwriting any previous value.
	Set(ctx context.Context, key, value string) error

	// SetNX writes value under key only if the key does not exist.
	// It reports whether the write happened.
	SetNX(ctx context.Context, key, value string) (bool, error)

	// Exists reports whether key is present.
	Exists(ctx context.Context, key string) (bool, error)

	// Delete removes key and reports whether a key was actually removed.
	Delete(ctx context.Context, key string) (bool, error)

	// Ping verifies the store is reachable.
	Ping(ctx context.Context) error

	// Close releases the underlying connection or pool.
	Close() error
}
