package cache

import (
	"context"
	"sync"
	"time"
)

// MemoryStore is the in-memory Store implementation.
//
// Dependency snapshots are recorded in a side table that outlives the
// entries themselves: a key's last-seen snapshot survives TTL expiry
// and dependency eviction so the next write's comparison still has a
// baseline. Only Remove drops the dependency record.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[int64]*entry
	deps    map[int64]Snapshot
	stats   Stats
	onEvict EvictFunc
}

// EvictReason classifies why an entry left the store.
type EvictReason string

const (
	EvictExpired    EvictReason = "expired"
	EvictDependency EvictReason = "dependency"
	EvictRemoved    EvictReason = "removed"
)

// EvictFunc observes entries leaving the store. It runs outside the
// store lock and may re-enter the store.
type EvictFunc func(key int64, value any, reason EvictReason)

// OnEvict registers fn to be notified of every eviction: TTL expiry
// (timer-driven or lazy), dependency invalidation, and explicit
// removal. A nil fn clears the hook.
func (c *MemoryStore) OnEvict(fn EvictFunc) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onEvict = fn
}

type entry struct {
	value     any
	expiresAt time.Time   // zero means no time-based expiry
	timer     *time.Timer // non-nil only when an expiry callback was scheduled
}

func (e *entry) stopTimer() {
	if e.timer != nil {
		e.timer.Stop()
	}
}

// Stats is a snapshot of the store's activity counters.
type Stats struct {
	Entries       int    `json:"entries"`
	Hits          uint64 `json:"hits"`
	Misses        uint64 `json:"misses"`
	Stores        uint64 `json:"stores"`
	Removals      uint64 `json:"removals"`
	Expirations   uint64 `json:"expirations"`
	Invalidations uint64 `json:"invalidations"`
}

// NewMemoryStore creates an empty store. Each store is independent;
// callers that need isolation (tests in particular) construct their own.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		entries: make(map[int64]*entry),
		deps:    make(map[int64]Snapshot),
	}
}

// Get retrieves a value. The dependency check runs first: if the
// recorded snapshot differs from deps, the entry is evicted no matter
// how much TTL remains, and deps becomes the key's new recorded
// snapshot so a subsequent write starts from a clean comparison. TTL
// expiry is then checked lazily, evicting on the spot.
func (c *MemoryStore) Get(_ context.Context, key int64, deps Snapshot) (any, bool) {
	c.mu.Lock()

	if recorded, ok := c.deps[key]; ok && !recorded.Equal(deps) {
		c.deps[key] = deps.clone()
		var evicted *entry
		if e, live := c.entries[key]; live {
			e.stopTimer()
			delete(c.entries, key)
			c.stats.Invalidations++
			evicted = e
		}
		c.stats.Misses++
		fn := c.onEvict
		c.mu.Unlock()

		if evicted != nil && fn != nil {
			fn(key, evicted.value, EvictDependency)
		}
		return nil, false
	}

	e, ok := c.entries[key]
	if !ok {
		c.stats.Misses++
		c.mu.Unlock()
		return nil, false
	}

	if !e.expiresAt.IsZero() && !time.Now().Before(e.expiresAt) {
		e.stopTimer()
		delete(c.entries, key)
		c.stats.Expirations++
		c.stats.Misses++
		fn := c.onEvict
		c.mu.Unlock()

		if fn != nil {
			fn(key, e.value, EvictExpired)
		}
		return nil, false
	}

	c.stats.Hits++
	v := e.value
	c.mu.Unlock()
	return v, true
}

// Set stores a value, fully replacing any previous entry for key and
// cancelling its pending timer. The snapshot is recorded
// unconditionally, superseding whatever the dependency table held.
func (c *MemoryStore) Set(_ context.Context, key int64, value any, ttl time.Duration, onExpire ExpireFunc, deps Snapshot) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if old, ok := c.entries[key]; ok {
		old.stopTimer()
	}

	e := &entry{value: value}
	if ttl > 0 {
		e.expiresAt = time.Now().Add(ttl)
		if onExpire != nil {
			e.timer = time.AfterFunc(ttl, func() {
				c.expire(key, e, onExpire)
			})
		}
	}

	c.entries[key] = e
	c.deps[key] = deps.clone()
	c.stats.Stores++
}

// expire runs on the timer goroutine. The identity check makes it a
// no-op when the entry was overwritten or removed between scheduling
// and firing, so a stale timer can never delete an unrelated live
// entry. The callback runs outside the lock and may re-enter the store.
func (c *MemoryStore) expire(key int64, e *entry, onExpire ExpireFunc) {
	c.mu.Lock()
	cur, ok := c.entries[key]
	if !ok || cur != e {
		c.mu.Unlock()
		return
	}
	delete(c.entries, key)
	c.stats.Expirations++
	fn := c.onEvict
	c.mu.Unlock()

	if fn != nil {
		fn(key, e.value, EvictExpired)
	}
	onExpire(key, e.value)
}

// Remove deletes the entry, its dependency record, and cancels any
// pending expiry timer. Idempotent.
func (c *MemoryStore) Remove(_ context.Context, key int64) {
	c.mu.Lock()
	e, ok := c.entries[key]
	if ok {
		e.stopTimer()
		delete(c.entries, key)
		c.stats.Removals++
	}
	delete(c.deps, key)
	fn := c.onEvict
	c.mu.Unlock()

	if ok && fn != nil {
		fn(key, e.value, EvictRemoved)
	}
}

// Has reports whether an entry exists for key, without TTL or
// dependency checks.
func (c *MemoryStore) Has(_ context.Context, key int64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	_, ok := c.entries[key]
	return ok
}

// Len returns the number of live entries.
func (c *MemoryStore) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return len(c.entries)
}

// Stats returns a snapshot of the store's activity counters.
func (c *MemoryStore) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := c.stats
	s.Entries = len(c.entries)
	return s
}

// Ensure MemoryStore implements Store
var _ Store = (*MemoryStore)(nil)
