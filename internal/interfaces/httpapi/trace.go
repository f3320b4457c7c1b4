package httpapi

import (
	"context"
	"strings"

	"github.com/riskibarqy/dinor-predictions/internal/platform/tracing"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

var apiTracer = otel.Tracer("dinor-predictions/internal/interfaces/httpapi")

// startSpan records handler spans only; helper names such as
// httpapi.writeError pass through without a span.
func startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	if !isHandlerSpan(name) {
		name = ""
	}
	return tracing.Child(ctx, apiTracer, name)
}

func isHandlerSpan(name string) bool {
	return strings.HasPrefix(name, "httpapi.Handler.")
}
