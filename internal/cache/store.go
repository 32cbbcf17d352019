package cache

import (
	"context"
	"time"
)

// Store is a TTL cache shared by the catalog layer. Expiry is enforced twice:
// lazily on Get, and in bulk by Sweep, which the maintenance scheduler runs
// on a fixed interval regardless of read traffic.
type Store interface {
	// Get returns the payload for key. An entry whose expiry has passed is
	// deleted as a side effect and reported as absent.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set unconditionally replaces the entry for key with expiry now+ttl.
	// A zero or negative ttl is legal and yields an already-expired entry.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete removes the given keys, ignoring those that are absent.
	Delete(ctx context.Context, keys ...string) error

	// Sweep removes every expired entry and reports how many were deleted.
	// Live entries are untouched.
	Sweep(ctx context.Context) (int64, error)
}
