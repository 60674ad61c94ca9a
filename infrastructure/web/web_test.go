package web_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/jrazmi/tasktrack/infrastructure/web"
	"github.com/jrazmi/tasktrack/sdk/telemetry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type payload struct {
	Name string `json:"name"`
}

func (p payload) Validate() error {
	if p.Name == "" {
		return errors.New("name required")
	}
	return nil
}

func tag(name string, order *[]string) web.Middleware {
	return func(next web.HandlerFunc) web.HandlerFunc {
		return func(ctx context.Context, r *http.Request) web.Encoder {
			*order = append(*order, name)
			return next(ctx, r)
		}
	}
}

func TestHandleRunsMiddlewareInOrder(t *testing.T) {
	var order []string
	wh := web.NewWebHandler(web.HandlerOptions{},
		web.WithTelemetry(telemetry.NewTelemetry()),
		web.WithGlobalMiddleware(tag("global", &order)),
		web.WithDefaultHeaders(map[string]string{"X-Content-Type-Options": "nosniff"}),
	)

	api := wh.Group("/api/", tag("group", &order))
	api.GET("/things/{id}", func(ctx context.Context, r *http.Request) web.Encoder {
		order = append(order, "handler")
		require.NotNil(t, web.GetWriter(ctx))
		return web.NewJSONResponse(map[string]string{"id": web.Param(r, "id")})
	}, tag("route", &order))

	req := httptest.NewRequest(http.MethodGet, "/api/things/42", nil)
	req.Header.Set(telemetry.TraceHeader, "trace-abc")
	rec := httptest.NewRecorder()
	wh.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"id":"42"}`, rec.Body.String())
	assert.Equal(t, []string{"global", "group", "route", "handler"}, order)
	assert.Equal(t, "trace-abc", rec.Header().Get(telemetry.TraceHeader))
	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
}

func TestHandleGeneratesTraceID(t *testing.T) {
	wh := web.NewWebHandler(web.HandlerOptions{}, web.WithTelemetry(telemetry.NewTelemetry()))
	wh.GET("/ping", func(ctx context.Context, r *http.Request) web.Encoder {
		return web.NoContent{}
	})

	rec := httptest.NewRecorder()
	wh.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ping", nil))

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.NotEmpty(t, rec.Header().Get(telemetry.TraceHeader))
}

func TestSiblingGroupsDoNotShareMiddleware(t *testing.T) {
	var order []string
	wh := web.NewWebHandler(web.HandlerOptions{})
	root := wh.Group("/api", tag("root", &order))
	a := root.Group("/a", tag("a", &order))
	b := root.Group("/b", tag("b", &order))

	h := func(ctx context.Context, r *http.Request) web.Encoder { return web.NoContent{} }
	a.GET("/x", h)
	b.GET("/x", h)

	wh.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/b/x", nil))
	assert.Equal(t, []string{"root", "b"}, order)
}

func TestDecode(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		var p payload
		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"a"}`))
		require.NoError(t, web.Decode(r, &p))
		assert.Equal(t, "a", p.Name)
	})

	t.Run("empty body", func(t *testing.T) {
		var p payload
		r := httptest.NewRequest(http.MethodPost, "/", http.NoBody)
		assert.ErrorIs(t, web.Decode(r, &p), web.ErrEmptyBody)
	})

	t.Run("bad json", func(t *testing.T) {
		var p payload
		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":`))
		assert.Error(t, web.Decode(r, &p))
	})

	t.Run("validation error returned as is", func(t *testing.T) {
		var p payload
		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{}`))
		assert.EqualError(t, web.Decode(r, &p), "name required")
	})
}

func TestStatusCode(t *testing.T) {
	assert.Equal(t, http.StatusNoContent, web.StatusCode(nil))
	assert.Equal(t, http.StatusCreated, web.StatusCode(web.NewJSONResponseWithStatus("x", http.StatusCreated)))
	assert.Equal(t, http.StatusOK, web.StatusCode(web.NewJSONResponse("x")))
}

func TestRespondSkipsNoResponse(t *testing.T) {
	rec := httptest.NewRecorder()
	require.NoError(t, web.Respond(context.Background(), rec, web.NewNoResponse()))
	assert.Equal(t, 0, rec.Body.Len())
}

func TestRespondCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.Error(t, web.Respond(ctx, httptest.NewRecorder(), web.NewJSONResponse("x")))
}
