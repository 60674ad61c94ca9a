package mid

import (
	"context"
	"net/http"
	"regexp"
	"slices"
	"strings"

	"github.com/jrazmi/tasktrack/infrastructure/web"
)

var localhostOrigin = regexp.MustCompile(`^http://localhost:\d+$`)

// CORSConfig holds CORS configuration options
type CORSConfig struct {
	Origins        []string
	AllowLocalhost bool
	Methods        []string
	Headers        []string
	Credentials    bool
	MaxAge         string
}

// DefaultCORSConfig returns a default CORS configuration
func DefaultCORSConfig() CORSConfig {
	return CORSConfig{
		AllowLocalhost: true,
		Methods:        []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		Headers:        []string{"Accept", "Content-Type", "Authorization", "If-Match", "X-Trace-Id"},
		Credentials:    true,
		MaxAge:         "86400",
	}
}

// CORS creates CORS middleware allowing the given origins plus any
// http://localhost:<port> origin.
func CORS(origins ...string) web.Middleware {
	config := DefaultCORSConfig()
	config.Origins = origins
	return CORSWithConfig(config)
}

// CORSWithConfig creates CORS middleware with full configuration. Requests
// without an Origin pass through untouched; preflight requests are answered
// with 204 without reaching the handler.
func CORSWithConfig(config CORSConfig) web.Middleware {
	methods := strings.Join(config.Methods, ", ")
	headers := strings.Join(config.Headers, ", ")

	return func(next web.HandlerFunc) web.HandlerFunc {
		return func(ctx context.Context, r *http.Request) web.Encoder {
			w := web.GetWriter(ctx)
			reqOrigin := r.Header.Get("Origin")

			if w != nil && reqOrigin != "" && config.allowed(reqOrigin) {
				h := w.Header()
				h.Add("Vary", "Origin")
				h.Set("Access-Control-Allow-Origin", reqOrigin)
				if config.Credentials {
					h.Set("Access-Control-Allow-Credentials", "true")
				}
				if methods != "" {
					h.Set("Access-Control-Allow-Methods", methods)
				}
				if headers != "" {
					h.Set("Access-Control-Allow-Headers", headers)
				}
				if config.MaxAge != "" {
					h.Set("Access-Control-Max-Age", config.MaxAge)
				}
			}

			if r.Method == http.MethodOptions {
				return web.NoContent{}
			}

			return next(ctx, r)
		}
	}
}

func (c CORSConfig) allowed(origin string) bool {
	if slices.Contains(c.Origins, "*") || slices.Contains(c.Origins, origin) {
		return true
	}
	return c.AllowLocalhost && localhostOrigin.MatchString(origin)
}
