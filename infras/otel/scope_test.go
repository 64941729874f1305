package otel_test

import (
	"context"
	"errors"
	"testing"

	"dipsport/infras/otel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestScope(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tracer := otel.NewWithProvider(trace.NewTracerProvider(trace.WithSpanProcessor(recorder)))

	_, scope := tracer.NewScope(context.Background(), "service", "service.booking.Create")
	scope.SetAttributes(map[string]any{"code": "DS-1", "slots": 3, "total": int64(150000)})
	scope.TraceIfError(nil)
	scope.TraceError(nil)
	scope.TraceIfError(errors.New("slot taken"))
	scope.End()

	spans := recorder.Ended()
	require.Len(t, spans, 1)

	span := spans[0]
	assert.Equal(t, "service.booking.Create", span.Name())
	assert.Equal(t, codes.Error, span.Status().Code)
	assert.Equal(t, "slot taken", span.Status().Description)
	assert.Len(t, span.Attributes(), 3)
	assert.Len(t, span.Events(), 1)
}
