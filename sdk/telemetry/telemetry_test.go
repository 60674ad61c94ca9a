package telemetry_test

import (
	"context"
	"strings"
	"testing"

	"github.com/jrazmi/tasktrack/sdk/telemetry"
	"github.com/stretchr/testify/assert"
)

func TestTraceID(t *testing.T) {
	tel := telemetry.NewTelemetry()

	assert.Equal(t, "--------NOTRACE--------", tel.GetTraceID(context.Background()))

	ctx := tel.SetTraceID(context.Background())
	assert.Len(t, tel.GetTraceID(ctx), 18)

	ctx = tel.WithTraceID(context.Background(), "abc123")
	assert.Equal(t, "abc123", tel.GetTraceID(ctx))

	ctx = tel.WithTraceID(context.Background(), strings.Repeat("x", 65))
	assert.NotEqual(t, strings.Repeat("x", 65), tel.GetTraceID(ctx))
}
