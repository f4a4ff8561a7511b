// Package telemetry implements ports.Tracer using OpenTelemetry.
package telemetry

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"

	"github.com/stellarforge/ubuild/internal/core/ports"
)

// OTelTracer is a concrete implementation of ports.Tracer using OpenTelemetry.
type OTelTracer struct {
	tracer trace.Tracer
	tp     *sdktrace.TracerProvider
}

// NewOTelTracer creates a tracer with the given instrumentation name,
// backed by a local SDK tracer provider.
func NewOTelTracer(name string) *OTelTracer {
	tp := sdktrace.NewTracerProvider()
	otel.SetTracerProvider(tp)

	return &OTelTracer{
		tracer: tp.Tracer(name),
		tp:     tp,
	}
}

// Start creates a new span for a build phase.
func (t *OTelTracer) Start(ctx context.Context, name string) (context.Context, ports.Span) {
	ctx, span := t.tracer.Start(ctx, name)
	return ctx, &otelSpan{span: span}
}

// Shutdown flushes and stops the tracer provider.
func (t *OTelTracer) Shutdown(ctx context.Context) error {
	return t.tp.Shutdown(ctx)
}

type otelSpan struct {
	span trace.Span
}

func (s *otelSpan) RecordError(err error) {
	if err == nil {
		return
	}
	s.span.RecordError(err)
	s.span.SetStatus(codes.Error, err.Error())
}

func (s *otelSpan) End() {
	s.span.End()
}
