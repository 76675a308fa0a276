package observe

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	tracenoop "go.opentelemetry.io/otel/trace/noop"
)

// Tracer wraps OpenTelemetry tracing with cache-specific span management.
//
// Contract:
// - Concurrency: implementations must be safe for concurrent use.
// - Context: StartLookup must propagate the returned context.
// - Errors: EndLookup must be best-effort and must not panic.
type Tracer interface {
	// StartLookup starts a span for a cache lookup identified by id.
	StartLookup(ctx context.Context, id string) (context.Context, trace.Span)

	// EndLookup ends the span, recording the lookup outcome.
	EndLookup(span trace.Span, hit bool)
}

// tracerImpl is the concrete implementation of Tracer.
type tracerImpl struct {
	tracer trace.Tracer
}

// NewTracer creates a Tracer wrapping the given OpenTelemetry tracer.
func NewTracer(t trace.Tracer) Tracer {
	return &tracerImpl{tracer: t}
}

// StartLookup starts a span with the cache identifier as an attribute.
func (t *tracerImpl) StartLookup(ctx context.Context, id string) (context.Context, trace.Span) {
	ctx, span := t.tracer.Start(ctx, "cache.lookup",
		trace.WithAttributes(
			attribute.String("cache.id", id),
			attribute.Bool("cache.hit", false), // Updated in EndLookup on a hit
		),
		trace.WithSpanKind(trace.SpanKindInternal),
	)

	return ctx, span
}

// EndLookup ends the span, recording whether the lookup hit.
func (t *tracerImpl) EndLookup(span trace.Span, hit bool) {
	span.SetAttributes(attribute.Bool("cache.hit", hit))
	span.End()
}

// noopTracer is a tracer that does nothing.
type noopTracer struct {
	noop trace.Tracer
}

// NewNoopTracer creates a no-op tracer.
func NewNoopTracer() Tracer {
	return &noopTracer{
		noop: tracenoop.NewTracerProvider().Tracer("noop"),
	}
}

func (t *noopTracer) StartLookup(ctx context.Context, id string) (context.Context, trace.Span) {
	return t.noop.Start(ctx, "cache.lookup")
}

func (t *noopTracer) EndLookup(span trace.Span, hit bool) {
	span.End()
}
