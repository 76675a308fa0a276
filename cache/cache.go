package cache

import (
	"context"
	"time"
)

// ExpireFunc is invoked when an entry's TTL elapses before the entry
// was overwritten or removed. It runs on a background goroutine, after
// the entry has already been dropped from the store.
type ExpireFunc func(key int64, value any)

// Store is the interface for dependency-aware response caching.
//
// Contract:
//   - Concurrency: implementations must be safe for concurrent use.
//   - Errors: operations never fail on well-formed input; Get reports a
//     miss as (nil, false) rather than an error.
//   - Side effects: Get is not read-only. Dependency drift and TTL
//     expiry are detected lazily at access time, so a Get may evict the
//     entry it was asked for and update the recorded snapshot.
type Store interface {
	// Get retrieves a cached value. The supplied snapshot is compared
	// against the one recorded at write time; a mismatch evicts the
	// entry regardless of remaining TTL. Returns (nil, false) on miss.
	Get(ctx context.Context, key int64, deps Snapshot) (any, bool)

	// Set stores a value, replacing any previous entry for key. A
	// positive ttl gives the entry an absolute expiry; ttl <= 0 means
	// the entry lives until removed or dependency-invalidated. When
	// both ttl > 0 and onExpire are given, onExpire fires once if the
	// entry is still live when the TTL elapses. The snapshot is always
	// recorded as the key's current dependency state.
	Set(ctx context.Context, key int64, value any, ttl time.Duration, onExpire ExpireFunc, deps Snapshot)

	// Remove deletes the entry and its dependency record. Idempotent.
	Remove(ctx context.Context, key int64)

	// Has reports whether an entry exists for key. It is a raw
	// existence probe: no TTL or dependency checks are performed.
	Has(ctx context.Context, key int64) bool
}
