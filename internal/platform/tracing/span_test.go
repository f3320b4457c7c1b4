package tracing

import (
	"context"
	"testing"

	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

func TestChild_WithoutParentKeepsContext(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	got, span := Child(ctx, noop.NewTracerProvider().Tracer("test"), "usecase.MatchService.Create")
	defer span.End()

	if got != ctx {
		t.Fatalf("expected context to be returned unchanged")
	}
	if span.SpanContext().IsValid() {
		t.Fatalf("expected no-op span without parent")
	}
}

func TestChild_WithParentStartsSpan(t *testing.T) {
	t.Parallel()

	parent := trace.NewSpanContext(trace.SpanContextConfig{
		TraceID:    trace.TraceID{9},
		SpanID:     trace.SpanID{3},
		TraceFlags: trace.FlagsSampled,
	})
	ctx := trace.ContextWithSpanContext(context.Background(), parent)

	got, span := Child(ctx, noop.NewTracerProvider().Tracer("test"), "usecase.MatchService.Create")
	defer span.End()

	if span.SpanContext().TraceID() != parent.TraceID() {
		t.Fatalf("expected child span to share the parent trace id")
	}
	if trace.SpanContextFromContext(got).TraceID() != parent.TraceID() {
		t.Fatalf("expected returned context to stay on the parent trace")
	}
}

func TestChild_EmptyNameSkipsSpan(t *testing.T) {
	t.Parallel()

	parent := trace.NewSpanContext(trace.SpanContextConfig{
		TraceID:    trace.TraceID{9},
		SpanID:     trace.SpanID{3},
		TraceFlags: trace.FlagsSampled,
	})
	ctx := trace.ContextWithSpanContext(context.Background(), parent)

	got, span := Child(ctx, noop.NewTracerProvider().Tracer("test"), "")
	defer span.End()

	if got != ctx {
		t.Fatalf("expected context to be returned unchanged for an empty name")
	}
	if span.SpanContext().IsValid() {
		t.Fatalf("expected no-op span for an empty name")
	}
}
