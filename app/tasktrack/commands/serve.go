package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/jrazmi/tasktrack/app/tasktrack/api"
	"github.com/jrazmi/tasktrack/bridge/scaffolding/mid"
	"github.com/jrazmi/tasktrack/infrastructure/redisdb"
	"github.com/jrazmi/tasktrack/infrastructure/web"
	"github.com/jrazmi/tasktrack/sdk/auth"
	"github.com/jrazmi/tasktrack/sdk/logger"
	"github.com/jrazmi/tasktrack/sdk/telemetry"
	"github.com/spf13/cobra"
)

func newServeCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the http api",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			if err := a.serve(ctx); err != nil {
				a.log.ErrorContext(ctx, "startup", "err", err)
				return err
			}
			return nil
		},
	}
}

func (a *app) serve(ctx context.Context) error {
	log := a.log
	cfg := a.cfg
	log.InfoContext(ctx, "startup", "GOMAXPROCS", runtime.GOMAXPROCS(0), "build", a.build, "store", cfg.Store.Driver)

	st, err := openStore(ctx, log, cfg)
	if err != nil {
		return err
	}
	defer st.close(context.WithoutCancel(ctx))

	tokens, err := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	if err != nil {
		return fmt.Errorf("configuring tokens: %w", err)
	}

	limiter, closeLimiter, err := a.openLimiter(ctx, st.checks)
	if err != nil {
		return err
	}
	defer closeLimiter()

	handler := api.Handler(api.Config{
		Build:     a.build,
		Log:       log,
		Server:    cfg.Server,
		Telemetry: telemetry.NewTelemetry(),
		Tokens:    tokens,
		Users:     st.Users,
		Tasks:     st.Tasks,
		Limiter:   limiter,
		Checks:    st.checks,
	})

	server := web.NewServer(cfg.Server,
		web.WithHandler(handler),
		web.WithErrorLog(logger.NewStdLogger(log, slog.LevelError)),
	)

	log.InfoContext(ctx, "startup", "status", "api router started", "host", server.Addr)
	defer log.InfoContext(ctx, "shutdown", "status", "shutdown complete")

	return server.Run(ctx)
}

// openLimiter picks the redis sliding window when redis is configured and
// falls back to process memory. The redis check is added to checks.
func (a *app) openLimiter(ctx context.Context, checks map[string]api.StatusCheck) (mid.Limiter, func(), error) {
	rl := a.cfg.RateLimit
	if rl.Disabled {
		return nil, func() {}, nil
	}

	if !a.cfg.Redis.Enabled() {
		return mid.NewMemoryLimiter(rl.Requests, rl.Window), func() {}, nil
	}

	rdb, err := redisdb.New(ctx, a.cfg.Redis)
	if err != nil {
		return nil, nil, fmt.Errorf("configuring redis support: %w", err)
	}
	a.log.InfoContext(ctx, "init", "service", "redis", "addr", a.cfg.Redis.Addr)

	checks["redis"] = func(ctx context.Context) error { return redisdb.StatusCheck(ctx, rdb) }

	return mid.NewRedisLimiter(rdb, rl.Requests, rl.Window), func() {
		if err := rdb.Close(); err != nil {
			a.log.ErrorContext(context.Background(), "shutdown", "service", "redis", "err", err)
		}
	}, nil
}

