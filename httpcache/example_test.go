package httpcache_test

import (
	"fmt"
	"net/http"
	"net/http/httptest"

	"github.com/jonwraymond/depcache/cache"
	"github.com/jonwraymond/depcache/httpcache"
)

func ExampleMiddleware() {
	schemaVersion := "v1"

	m, err := httpcache.NewMiddleware(httpcache.Options{
		Store:  cache.NewMemoryStore(),
		Policy: cache.DefaultPolicy(),
		Dependencies: func(r *http.Request) cache.Snapshot {
			return cache.Snapshot{schemaVersion}
		},
		Hooks: httpcache.Hooks{
			OnMiss:  func(id string) { fmt.Println("miss:", id) },
			OnHit:   func(id string) { fmt.Println("hit:", id) },
			OnStore: func(id string) { fmt.Println("store:", id) },
		},
	})
	if err != nil {
		panic(err)
	}

	handler := m.Wrap(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "users payload")
	}))

	// First request misses and stores; the repeat is served from cache.
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/users", nil))
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/users", nil))

	// Changing a dependency invalidates the entry on the next read.
	schemaVersion = "v2"
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/users", nil))

	// Output:
	// miss: GET /api/users
	// store: GET /api/users
	// hit: GET /api/users
	// miss: GET /api/users
	// store: GET /api/users
}
