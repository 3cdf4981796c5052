package otel

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.uber.org/zap"
)

func TestInitTracer_ExportsSpans(t *testing.T) {
	var out bytes.Buffer

	shutdown, err := InitTracer("prompt-router-test", zap.NewNop(), &out)
	require.NoError(t, err)

	_, span := otel.Tracer("test").Start(context.Background(), "routing.Resolve")
	span.End()

	require.NoError(t, shutdown(context.Background()))
	assert.Contains(t, out.String(), "routing.Resolve")
	assert.Contains(t, out.String(), "prompt-router-test")
}
