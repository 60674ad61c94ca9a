package commands

import (
	"context"
	"fmt"

	"github.com/jrazmi/tasktrack/app/tasktrack/api"
	"github.com/jrazmi/tasktrack/app/tasktrack/config"
	"github.com/jrazmi/tasktrack/core/repositories"
	"github.com/jrazmi/tasktrack/infrastructure/mongodb"
	"github.com/jrazmi/tasktrack/infrastructure/postgresdb"
	"github.com/jrazmi/tasktrack/schema"
	"github.com/jrazmi/tasktrack/sdk/logger"
)

// store is an opened store driver with its readiness checks.
type store struct {
	repositories.Repositories
	checks map[string]api.StatusCheck
	close  func(ctx context.Context)
}

func openStore(ctx context.Context, log *logger.Logger, cfg config.Config) (store, error) {
	switch cfg.Store.Driver {
	case config.DriverPostgres:
		return openPostgres(ctx, log, cfg)
	case config.DriverMongo:
		return openMongo(ctx, log, cfg)
	default:
		log.WarnContext(ctx, "using in-memory store, data is lost on restart")
		return store{
			Repositories: repositories.NewMemory(log),
			checks:       map[string]api.StatusCheck{},
			close:        func(context.Context) {},
		}, nil
	}
}

func openPostgres(ctx context.Context, log *logger.Logger, cfg config.Config) (store, error) {
	pool, err := postgresdb.New(ctx, cfg.Postgres, postgresdb.WithLogger(log.Logger))
	if err != nil {
		return store{}, fmt.Errorf("configuring postgres support: %w", err)
	}
	log.InfoContext(ctx, "init", "service", "postgres")

	if cfg.Store.AutoMigrate {
		if err := postgresdb.Migrate(ctx, pool, schema.PostgresMigrations()); err != nil {
			pool.Close()
			return store{}, fmt.Errorf("migrate database: %w", err)
		}
	}

	return store{
		Repositories: repositories.NewPostgres(log, pool),
		checks: map[string]api.StatusCheck{
			"postgres": func(ctx context.Context) error { return postgresdb.StatusCheck(ctx, pool) },
		},
		close: func(ctx context.Context) {
			log.InfoContext(ctx, "shutdown", "status", "closing database connection")
			pool.Close()
		},
	}, nil
}

func openMongo(ctx context.Context, log *logger.Logger, cfg config.Config) (store, error) {
	db, err := mongodb.New(ctx, cfg.Mongo)
	if err != nil {
		return store{}, fmt.Errorf("configuring mongo support: %w", err)
	}
	log.InfoContext(ctx, "init", "service", "mongo", "database", cfg.Mongo.Database)

	repos := repositories.NewMongo(log, db.DB)
	if cfg.Store.AutoMigrate {
		if err := repos.EnsureIndexes(ctx); err != nil {
			_ = db.Close(ctx)
			return store{}, err
		}
	}

	return store{
		Repositories: repos,
		checks: map[string]api.StatusCheck{
			"mongo": db.StatusCheck,
		},
		close: func(ctx context.Context) {
			log.InfoContext(ctx, "shutdown", "status", "closing database connection")
			if err := db.Close(ctx); err != nil {
				log.ErrorContext(ctx, "shutdown", "service", "mongo", "err", err)
			}
		},
	}, nil
}
