// Package metrics constructs the metrics the application will track.
package metrics

import (
	"context"
	"expvar"
	"runtime"
	"sync"
)

// Published names under /debug/vars.
const (
	RequestsVar   = "requests"
	ErrorsVar     = "errors"
	PanicsVar     = "panics"
	GoroutinesVar = "goroutines"
)

type metrics struct {
	goroutines *expvar.Int
	requests   *expvar.Int
	errors     *expvar.Int
	panics     *expvar.Int
}

var (
	m    *metrics
	once sync.Once
)

// expvar panics on duplicate names, so the set is published once per process.
func get() *metrics {
	once.Do(func() {
		m = &metrics{
			goroutines: expvar.NewInt(GoroutinesVar),
			requests:   expvar.NewInt(RequestsVar),
			errors:     expvar.NewInt(ErrorsVar),
			panics:     expvar.NewInt(PanicsVar),
		}
	})
	return m
}

type ctxKey int

const key ctxKey = 1

// Set sets the metrics data into the context.
func Set(ctx context.Context) context.Context {
	return context.WithValue(ctx, key, get())
}

func from(ctx context.Context) *metrics {
	v, ok := ctx.Value(key).(*metrics)
	if !ok {
		return nil
	}
	return v
}

// AddGoroutines refreshes the goroutine metric.
func AddGoroutines(ctx context.Context) int64 {
	if v := from(ctx); v != nil {
		g := int64(runtime.NumGoroutine())
		v.goroutines.Set(g)
		return g
	}
	return 0
}

// AddRequests increments the request metric by 1.
func AddRequests(ctx context.Context) int64 {
	if v := from(ctx); v != nil {
		v.requests.Add(1)
		return v.requests.Value()
	}
	return 0
}

// AddErrors increments the errors metric by 1.
func AddErrors(ctx context.Context) int64 {
	if v := from(ctx); v != nil {
		v.errors.Add(1)
		return v.errors.Value()
	}
	return 0
}

// AddPanics increments the panics metric by 1.
func AddPanics(ctx context.Context) int64 {
	if v := from(ctx); v != nil {
		v.panics.Add(1)
		return v.panics.Value()
	}
	return 0
}
