package observability

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
)

func TestKafkaHeaderPropagation(t *testing.T) {
	shutdown, err := SetupTracingSDK(context.Background(), &TracingConfig{})
	require.NoError(t, err)
	defer shutdown(context.Background())

	tp := sdktrace.NewTracerProvider()
	defer tp.Shutdown(context.Background())

	ctx, span := tp.Tracer("test").Start(context.Background(), "publish")
	defer span.End()

	headers := InjectKafkaHeaders(ctx)
	require.NotEmpty(t, headers)

	restored := ExtractKafkaHeaders(context.Background(), headers)
	sc := trace.SpanContextFromContext(restored)
	assert.True(t, sc.IsValid())
	assert.Equal(t, span.SpanContext().TraceID(), sc.TraceID())
}
