// Package api assembles the tasktrack HTTP surface.
package api

import (
	"context"
	"expvar"
	"net/http"
	"time"

	"github.com/jrazmi/tasktrack/bridge/repositories/tasksrepobridge"
	"github.com/jrazmi/tasktrack/bridge/repositories/usersrepobridge"
	"github.com/jrazmi/tasktrack/bridge/scaffolding/mid"
	"github.com/jrazmi/tasktrack/core/repositories/tasksrepo"
	"github.com/jrazmi/tasktrack/core/repositories/usersrepo"
	"github.com/jrazmi/tasktrack/infrastructure/web"
	"github.com/jrazmi/tasktrack/sdk/auth"
	"github.com/jrazmi/tasktrack/sdk/logger"
	"github.com/jrazmi/tasktrack/sdk/telemetry"
	"github.com/jrazmi/tasktrack/sdk/validation"
)

// StatusCheck reports whether a backing service is reachable.
type StatusCheck func(ctx context.Context) error

type Config struct {
	Build     string
	Log       *logger.Logger
	Server    web.ServerConfig
	Telemetry telemetry.Telemetry
	Tokens    *auth.TokenManager
	Users     *usersrepo.Repository
	Tasks     *tasksrepo.Repository

	// Limiter throttles the /auth endpoints. Nil disables throttling.
	Limiter mid.Limiter

	// Checks are run by the readiness endpoint, keyed by service name.
	Checks map[string]StatusCheck

	// Now defaults to time.Now.
	Now func() time.Time
}

// Handler builds the routed handler for the whole api.
func Handler(cfg Config) http.Handler {
	if cfg.Now == nil {
		cfg.Now = time.Now
	}

	wh := web.NewWebHandler(web.HandlerOptions{},
		web.WithLogging(cfg.Log.Logger),
		web.WithTelemetry(cfg.Telemetry),
		web.WithGlobalMiddleware(
			mid.CORS(cfg.Server.CORSOrigins...),
			mid.Logger(cfg.Log, cfg.Telemetry),
			mid.Errors(cfg.Log),
			mid.Metrics(),
			mid.Panics(),
		),
	)

	api := wh.Group(cfg.Server.ApiRoute)

	// Preflight requests are answered by the CORS middleware; the route only
	// needs to exist so the mux dispatches them.
	api.OPTIONS(func(ctx context.Context, r *http.Request) web.Encoder {
		return web.NoContent{}
	})

	s := status{log: cfg.Log, build: cfg.Build, checks: cfg.Checks, now: cfg.Now}
	api.GET("/health", s.health)
	api.GET("/readiness", s.readiness)

	var throttle []web.Middleware
	if cfg.Limiter != nil {
		throttle = append(throttle, mid.RateLimit(cfg.Log, cfg.Limiter, mid.WithTrustedProxy(cfg.Server.TrustProxy)))
	}
	authenticate := mid.Authenticate(cfg.Log, cfg.Tokens, cfg.Users)

	usersrepobridge.AddHttpRoutes(api, usersrepobridge.Config{
		Log:          cfg.Log,
		Repository:   cfg.Users,
		Tokens:       cfg.Tokens,
		Authenticate: authenticate,
		Throttle:     throttle,
	})

	tasksrepobridge.AddHttpRoutes(api, tasksrepobridge.Config{
		Log:        cfg.Log,
		Repository: cfg.Tasks,
		Middleware: []web.Middleware{authenticate},
	})

	if cfg.Server.EnableDebug {
		wh.HandleRaw("GET /debug/vars", expvar.Handler())
	}

	return wh
}

// =============================================================================

type status struct {
	log    *logger.Logger
	build  string
	checks map[string]StatusCheck
	now    func() time.Time
}

type Health struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Build     string `json:"build,omitempty"`
}

type Readiness struct {
	Status   string            `json:"status"`
	Services map[string]string `json:"services,omitempty"`
}

func (s status) health(ctx context.Context, r *http.Request) web.Encoder {
	return web.NewJSONResponse(Health{
		Status:    "ok",
		Timestamp: validation.FormatTime(s.now()),
		Build:     s.build,
	})
}

func (s status) readiness(ctx context.Context, r *http.Request) web.Encoder {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	out := Readiness{Status: "ok", Services: make(map[string]string, len(s.checks))}
	for name, check := range s.checks {
		if err := check(ctx); err != nil {
			s.log.WarnContext(ctx, "readiness check failed", "service", name, "err", err)
			out.Status = "unavailable"
			out.Services[name] = "unavailable"
			continue
		}
		out.Services[name] = "ok"
	}

	if out.Status != "ok" {
		return web.NewJSONResponseWithStatus(out, http.StatusServiceUnavailable)
	}
	return web.NewJSONResponse(out)
}
