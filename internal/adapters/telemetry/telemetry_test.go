package telemetry_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stellarforge/ubuild/internal/adapters/telemetry"
)

func TestNoOpTracer_Start(t *testing.T) {
	t.Parallel()

	tracer := telemetry.NewNoOpTracer()
	ctx := context.Background()

	newCtx, span := tracer.Start(ctx, "build.compile")
	assert.Equal(t, ctx, newCtx)
	assert.NotNil(t, span)

	span.End()
}

func TestNoOpSpan_RecordError(t *testing.T) {
	t.Parallel()

	tracer := telemetry.NewNoOpTracer()

	_, span := tracer.Start(context.Background(), "build.compile")
	span.RecordError(errors.New("compile failed"))
	span.End()
}

func TestOTelTracer_StartAndShutdown(t *testing.T) {
	tracer := telemetry.NewOTelTracer("ubuild-test")
	ctx := context.Background()

	newCtx, span := tracer.Start(ctx, "build.clean")
	assert.NotEqual(t, ctx, newCtx, "span context should carry the span")
	require.NotNil(t, span)

	span.RecordError(errors.New("artifact removal failed"))
	span.RecordError(nil)
	span.End()

	require.NoError(t, tracer.Shutdown(context.Background()))
}
