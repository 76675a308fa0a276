// Package observe provides observability primitives for cache activity.
//
// It is a pure instrumentation library: no caching, no transport, no I/O
// beyond exporter setup. Consumers wire the observer into the httpcache
// middleware or their own boundary code.
package observe
