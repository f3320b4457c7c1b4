// Package tracing starts child spans only for requests that are already traced.
package tracing

import (
	"context"

	"go.opentelemetry.io/otel/trace"
)

var noopSpan = trace.SpanFromContext(context.Background())

// Child starts name under the span carried by ctx. Without a valid parent it
// returns ctx unchanged and a no-op span, so filtered routes stay span-free.
func Child(ctx context.Context, tracer trace.Tracer, name string) (context.Context, trace.Span) {
	if name == "" || !trace.SpanContextFromContext(ctx).IsValid() {
		return ctx, noopSpan
	}
	return tracer.Start(ctx, name)
}
