package trace

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
)

func TestStartSpan_DisabledIsNoop(t *testing.T) {
	require.False(t, Enabled())
	ctx, span := StartSpan(context.Background(), "noop")
	assert.False(t, span.SpanContext().IsValid())
	_, _, ok := Fields(ctx)
	assert.False(t, ok)
	End(span, nil)
}

func TestStartSpan_Exports(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Init("test", &buf))
	require.True(t, Enabled())

	ctx, span := StartSpan(context.Background(), "fetch", attribute.String("ticker", "AAPL"))
	traceID, spanID, ok := Fields(ctx)
	assert.True(t, ok)
	assert.NotEmpty(t, traceID)
	assert.NotEmpty(t, spanID)
	End(span, errors.New("upstream down"))

	require.NoError(t, Shutdown(context.Background()))
	assert.False(t, Enabled())
	assert.Contains(t, buf.String(), `"Name":"fetch"`)
	assert.Contains(t, buf.String(), "upstream down")
}
