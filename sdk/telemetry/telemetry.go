// Package telemetry carries per-request trace values through a context.
package telemetry

import (
	"context"
	"time"

	"github.com/jrazmi/tasktrack/sdk/cryptids"
)

type telKey int

const (
	traceIDKey telKey = iota + 1
)

const noTrace = "--------NOTRACE--------"

// TraceHeader is echoed on every response and accepted from trusted callers.
const TraceHeader = "X-Trace-Id"

type TraceValues struct {
	TraceID    string
	Now        time.Time
	StatusCode int
}

type Telemetry struct{}

func NewTelemetry() Telemetry {
	return Telemetry{}
}

// SetTraceID stores a fresh random trace id on ctx.
func (t Telemetry) SetTraceID(ctx context.Context) context.Context {
	tid, err := cryptids.GenerateID()
	if err != nil {
		return context.WithValue(ctx, traceIDKey, noTrace)
	}
	return context.WithValue(ctx, traceIDKey, tid)
}

// WithTraceID stores tid on ctx, generating one when tid is empty.
func (t Telemetry) WithTraceID(ctx context.Context, tid string) context.Context {
	if tid == "" || len(tid) > 64 {
		return t.SetTraceID(ctx)
	}
	return context.WithValue(ctx, traceIDKey, tid)
}

func (t Telemetry) GetTraceID(ctx context.Context) string {
	v, ok := ctx.Value(traceIDKey).(string)
	if !ok {
		return noTrace
	}
	return v
}
