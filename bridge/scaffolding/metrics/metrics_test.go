package metrics_test

import (
	"context"
	"expvar"
	"testing"

	"github.com/jrazmi/tasktrack/bridge/scaffolding/metrics"
	"github.com/stretchr/testify/assert"
)

func TestCountersRequireContext(t *testing.T) {
	assert.Zero(t, metrics.AddRequests(context.Background()))
}

func TestCounters(t *testing.T) {
	ctx := metrics.Set(context.Background())

	before := metrics.AddRequests(ctx)
	after := metrics.AddRequests(ctx)
	assert.Equal(t, before+1, after)

	errs := metrics.AddErrors(ctx)
	assert.Positive(t, errs)
	assert.Positive(t, metrics.AddGoroutines(ctx))

	assert.NotNil(t, expvar.Get(metrics.RequestsVar))
	assert.NotNil(t, expvar.Get(metrics.GoroutinesVar))
}
