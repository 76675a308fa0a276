package cache_test

import (
	"context"
	"fmt"
	"time"

	"github.com/jonwraymond/depcache/cache"
)

func ExampleNewMemoryStore() {
	store := cache.NewMemoryStore()
	ctx := context.Background()

	key := cache.DeriveKey("GET /api/users")
	deps := cache.Snapshot{"schema-v1"}

	// Store a value with a one hour TTL
	store.Set(ctx, key, "cached response", time.Hour, nil, deps)

	// Retrieve it with the same dependency snapshot
	if value, ok := store.Get(ctx, key, deps); ok {
		fmt.Println("Value:", value)
	}
	// Output:
	// Value: cached response
}

func ExampleMemoryStore_Get_dependencyDrift() {
	store := cache.NewMemoryStore()
	ctx := context.Background()

	key := cache.DeriveKey("GET /api/config")

	// Written against dependency state "v1"
	store.Set(ctx, key, "stale soon", time.Hour, nil, cache.Snapshot{"v1"})

	// A read against "v2" evicts the entry even though the TTL is far off
	_, ok := store.Get(ctx, key, cache.Snapshot{"v2"})
	fmt.Println("Hit after drift:", ok)
	fmt.Println("Still stored:", store.Has(ctx, key))
	// Output:
	// Hit after drift: false
	// Still stored: false
}

func ExampleDeriveKey() {
	fmt.Println(cache.DeriveKey(""))
	fmt.Println(cache.DeriveKey("abc"))
	// Output:
	// 2147483648
	// 2147580002
}
