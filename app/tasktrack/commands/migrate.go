package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/jrazmi/tasktrack/app/tasktrack/config"
	"github.com/jrazmi/tasktrack/core/repositories"
	"github.com/jrazmi/tasktrack/infrastructure/mongodb"
	"github.com/jrazmi/tasktrack/infrastructure/postgresdb"
	"github.com/jrazmi/tasktrack/schema"
	"github.com/spf13/cobra"
)

func newMigrateCommand(a *app) *cobra.Command {
	var statusOnly bool

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Create or upgrade the schema of the configured store",
		Long: `Applies pending goose migrations for the postgres driver and creates
collection indexes for the mongo driver. The memory driver has nothing to do.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), 5*time.Minute)
			defer cancel()

			switch a.cfg.Store.Driver {
			case config.DriverPostgres:
				return a.migratePostgres(ctx, cmd, statusOnly)
			case config.DriverMongo:
				if statusOnly {
					return fmt.Errorf("--status is only supported for postgres")
				}
				return a.migrateMongo(ctx)
			default:
				fmt.Fprintf(cmd.OutOrStdout(), "store driver %q needs no migration\n", a.cfg.Store.Driver)
				return nil
			}
		},
	}

	cmd.Flags().BoolVar(&statusOnly, "status", false, "print the current schema version and exit")

	return cmd
}

func (a *app) migratePostgres(ctx context.Context, cmd *cobra.Command, statusOnly bool) error {
	pool, err := postgresdb.New(ctx, a.cfg.Postgres,
		postgresdb.WithTracer(postgresdb.NewLoggingQueryTracer(a.log.Logger)))
	if err != nil {
		return fmt.Errorf("configuring postgres support: %w", err)
	}
	defer pool.Close()

	if !statusOnly {
		a.log.InfoContext(ctx, "migration started")
		if err := postgresdb.Migrate(ctx, pool, schema.PostgresMigrations()); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
		a.log.InfoContext(ctx, "migration completed successfully")
	}

	version, err := postgresdb.MigrationVersion(ctx, pool, schema.PostgresMigrations())
	if err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "schema version %d\n", version)

	return nil
}

func (a *app) migrateMongo(ctx context.Context) error {
	db, err := mongodb.New(ctx, a.cfg.Mongo)
	if err != nil {
		return fmt.Errorf("configuring mongo support: %w", err)
	}
	defer db.Close(context.WithoutCancel(ctx))

	a.log.InfoContext(ctx, "creating indexes", "database", a.cfg.Mongo.Database)
	return repositories.NewMongo(a.log, db.DB).EnsureIndexes(ctx)
}
