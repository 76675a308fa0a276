package httpcache

import (
	"context"
	"errors"
	"net/http"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/jonwraymond/depcache/cache"
	"github.com/jonwraymond/depcache/observe"
)

// ErrNilStore indicates Options.Store was not provided.
var ErrNilStore = errors.New("httpcache: store is nil")

// IdentifierFunc derives the request-identifying string the cache key
// is computed from.
type IdentifierFunc func(r *http.Request) string

// DependencyFunc produces the dependency snapshot for a request. It is
// invoked once per request, before the cache lookup.
type DependencyFunc func(r *http.Request) cache.Snapshot

// SkipFunc reports whether caching should be bypassed for a request.
type SkipFunc func(r *http.Request) bool

// Hooks are informational callbacks around cache activity. Each
// receives the request-identifying string; all are optional and no
// return value is consumed.
type Hooks struct {
	// OnMiss fires when no cached response could be served.
	OnMiss func(id string)

	// OnHit fires when a cached response is served.
	OnHit func(id string)

	// OnStore fires when a freshly produced response is stored.
	OnStore func(id string)
}

// DefaultIdentifier identifies a request by method and URI.
func DefaultIdentifier(r *http.Request) string {
	return r.Method + " " + r.URL.RequestURI()
}

// DefaultSkip bypasses caching for anything but GET and HEAD.
func DefaultSkip(r *http.Request) bool {
	return r.Method != http.MethodGet && r.Method != http.MethodHead
}

// Options configures a Middleware. Store is required; everything else
// has a usable default or is optional.
type Options struct {
	// Store holds cached responses.
	Store cache.Store

	// Policy supplies the TTL for stored responses. A zero policy
	// disables caching and the middleware becomes a pass-through.
	Policy cache.Policy

	// Dependencies produces the per-request dependency snapshot.
	// Nil means no dependency tracking (TTL remains the only expiry).
	Dependencies DependencyFunc

	// Identifier overrides DefaultIdentifier.
	Identifier IdentifierFunc

	// Skip overrides DefaultSkip.
	Skip SkipFunc

	// Hooks receive miss/hit/store notifications.
	Hooks Hooks

	// OnExpire fires when a stored response's TTL elapses.
	OnExpire cache.ExpireFunc

	// Logger, Metrics, and Tracer are optional observability wiring.
	Logger  observe.Logger
	Metrics *observe.CacheMetrics
	Tracer  observe.Tracer
}

// Middleware wraps an http.Handler with response caching.
//
// Contract:
//   - Concurrency: safe for concurrent use; concurrent misses for the
//     same identifier execute the inner handler once and share the
//     captured response.
//   - Errors: never fails a request; anything uncacheable simply passes
//     through.
type Middleware struct {
	store    cache.Store
	policy   cache.Policy
	deps     DependencyFunc
	identify IdentifierFunc
	skip     SkipFunc
	hooks    Hooks
	onExpire cache.ExpireFunc
	logger   observe.Logger
	metrics  *observe.CacheMetrics
	tracer   observe.Tracer
	flight   singleflight.Group
}

// NewMiddleware creates a caching middleware from opts.
func NewMiddleware(opts Options) (*Middleware, error) {
	if opts.Store == nil {
		return nil, ErrNilStore
	}

	m := &Middleware{
		store:    opts.Store,
		policy:   opts.Policy,
		deps:     opts.Dependencies,
		identify: opts.Identifier,
		skip:     opts.Skip,
		hooks:    opts.Hooks,
		onExpire: opts.OnExpire,
		logger:   opts.Logger,
		metrics:  opts.Metrics,
		tracer:   opts.Tracer,
	}
	if m.identify == nil {
		m.identify = DefaultIdentifier
	}
	if m.skip == nil {
		m.skip = DefaultSkip
	}
	if m.logger == nil {
		m.logger = observe.NopLogger()
	}
	if m.tracer == nil {
		m.tracer = observe.NewNoopTracer()
	}
	m.logger = m.logger.WithComponent("httpcache")

	// Stores that report evictions feed the eviction counter with the
	// reason (expired, dependency, removed).
	if opts.Metrics != nil {
		if notifier, ok := opts.Store.(interface{ OnEvict(cache.EvictFunc) }); ok {
			notifier.OnEvict(func(key int64, value any, reason cache.EvictReason) {
				opts.Metrics.RecordEviction(context.Background(), string(reason))
			})
		}
	}

	return m, nil
}

// Wrap returns a handler that serves next's responses through the cache.
func (m *Middleware) Wrap(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !m.policy.ShouldCache() || m.skip(r) {
			next.ServeHTTP(w, r)
			return
		}

		id := m.identify(r)
		key := cache.DeriveKey(id)

		var snap cache.Snapshot
		if m.deps != nil {
			snap = m.deps(r)
		}

		ctx, span := m.tracer.StartLookup(r.Context(), id)
		r = r.WithContext(ctx)

		start := time.Now()
		if v, ok := m.store.Get(ctx, key, snap); ok {
			if rec, isRecord := v.(*Record); isRecord {
				m.tracer.EndLookup(span, true)
				if m.metrics != nil {
					m.metrics.RecordLookup(ctx, true, time.Since(start))
				}
				if m.hooks.OnHit != nil {
					m.hooks.OnHit(id)
				}
				m.logger.Debug(ctx, "cache hit", observe.Field{Key: "cache_id", Value: id})
				rec.serve(w)
				return
			}
		}

		m.tracer.EndLookup(span, false)
		if m.metrics != nil {
			m.metrics.RecordLookup(ctx, false, time.Since(start))
		}
		if m.hooks.OnMiss != nil {
			m.hooks.OnMiss(id)
		}
		m.logger.Debug(ctx, "cache miss", observe.Field{Key: "cache_id", Value: id})

		// Concurrent misses for the same identifier share one execution
		// of the inner handler; only the leader stores.
		v, _, _ := m.flight.Do(id, func() (any, error) {
			rec := capture(next, r)

			if cacheable(rec) {
				ttl := m.policy.EffectiveTTL(0)
				m.store.Set(ctx, key, rec, ttl, m.onExpire, snap)
				if m.metrics != nil {
					m.metrics.RecordStore(ctx)
				}
				if m.hooks.OnStore != nil {
					m.hooks.OnStore(id)
				}
				m.logger.Debug(ctx, "response stored",
					observe.Field{Key: "cache_id", Value: id},
					observe.Field{Key: "ttl", Value: ttl.String()},
				)
			}
			return rec, nil
		})

		rec := v.(*Record)
		rec.serve(w)
	})
}

// capture runs the inner handler against a recorder and snapshots its
// response.
func capture(next http.Handler, r *http.Request) *Record {
	rw := newRecorder()
	next.ServeHTTP(rw, r)
	return rw.record()
}

// cacheable reports whether a captured response may be stored. Only
// successful responses are kept; errors are recomputed every time.
func cacheable(rec *Record) bool {
	return rec.Status >= 200 && rec.Status < 300
}
