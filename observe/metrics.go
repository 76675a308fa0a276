package observe

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Eviction reasons recorded on cache.evictions.total.
const (
	ReasonExpired    = "expired"
	ReasonDependency = "dependency"
	ReasonRemoved    = "removed"
)

// CacheMetrics records cache activity.
//
// Contract:
// - Concurrency: implementations must be safe for concurrent use.
// - Context: must honor cancellation/deadlines and return quickly.
// - Errors: implementations must not panic.
type CacheMetrics struct {
	lookupCount   metric.Int64Counter
	storeCount    metric.Int64Counter
	evictionCount metric.Int64Counter
	lookupHist    metric.Float64Histogram
}

// NewCacheMetrics creates a CacheMetrics instance on the given meter.
func NewCacheMetrics(meter metric.Meter) (*CacheMetrics, error) {
	lookupCount, err := meter.Int64Counter(
		"cache.requests.total",
		metric.WithDescription("Total number of cache lookups"),
		metric.WithUnit("{lookup}"),
	)
	if err != nil {
		return nil, err
	}

	storeCount, err := meter.Int64Counter(
		"cache.stores.total",
		metric.WithDescription("Total number of values stored"),
		metric.WithUnit("{store}"),
	)
	if err != nil {
		return nil, err
	}

	evictionCount, err := meter.Int64Counter(
		"cache.evictions.total",
		metric.WithDescription("Total number of entries evicted"),
		metric.WithUnit("{eviction}"),
	)
	if err != nil {
		return nil, err
	}

	lookupHist, err := meter.Float64Histogram(
		"cache.lookup.duration_ms",
		metric.WithDescription("Cache lookup duration in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	return &CacheMetrics{
		lookupCount:   lookupCount,
		storeCount:    storeCount,
		evictionCount: evictionCount,
		lookupHist:    lookupHist,
	}, nil
}

// RecordLookup records a cache lookup and its outcome.
func (m *CacheMetrics) RecordLookup(ctx context.Context, hit bool, duration time.Duration) {
	result := "miss"
	if hit {
		result = "hit"
	}
	opt := metric.WithAttributes(attribute.String("result", result))

	m.lookupCount.Add(ctx, 1, opt)
	m.lookupHist.Record(ctx, float64(duration.Microseconds())/1000.0, opt)
}

// RecordStore records a value being written into the cache.
func (m *CacheMetrics) RecordStore(ctx context.Context) {
	m.storeCount.Add(ctx, 1)
}

// RecordEviction records an entry leaving the cache, with the reason
// (expired, dependency, removed).
func (m *CacheMetrics) RecordEviction(ctx context.Context, reason string) {
	m.evictionCount.Add(ctx, 1, metric.WithAttributes(attribute.String("reason", reason)))
}
