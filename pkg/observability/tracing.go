// Package observability sets up OpenTelemetry tracing for descriptor resolution
package observability

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// InstrumentationName names the tracer used by the connector packages
const InstrumentationName = "github.com/ajitpratap0/lakesoul-connector"

// Span attribute keys
const (
	AttrConnector   = attribute.Key("lakesoul.connector")
	AttrTable       = attribute.Key("lakesoul.table")
	AttrDirection   = attribute.Key("lakesoul.direction")
	AttrRuntimeMode = attribute.Key("lakesoul.runtime_mode")
	AttrBoundedness = attribute.Key("lakesoul.boundedness")
	AttrCacheHit    = attribute.Key("lakesoul.cache_hit")
)

// Tracer returns the connector tracer from the global provider. Without
// InitTracing the global provider is a no-op.
func Tracer() trace.Tracer {
	return otel.Tracer(InstrumentationName)
}

// StartSpan starts a span on the connector tracer
func StartSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return Tracer().Start(ctx, name, trace.WithAttributes(attrs...))
}

// EndSpan records the outcome of an operation and ends the span
func EndSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}
