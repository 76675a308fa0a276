// Package httpcache integrates the cache store with net/http.
//
// Its middleware captures a response produced by an inner handler,
// stores it together with a per-request dependency snapshot, and serves
// it on later hits. Observation hooks report misses, hits, and stores;
// concurrent misses for the same identifier share one execution.
package httpcache
