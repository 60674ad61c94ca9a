// Package repositories bundles the repositories served from one store driver.
package repositories

import (
	"context"
	"fmt"

	"github.com/jrazmi/tasktrack/core/repositories/tasksrepo"
	"github.com/jrazmi/tasktrack/core/repositories/tasksrepo/stores/tasksmemstore"
	"github.com/jrazmi/tasktrack/core/repositories/tasksrepo/stores/tasksmongostore"
	"github.com/jrazmi/tasktrack/core/repositories/tasksrepo/stores/taskspgxstore"
	"github.com/jrazmi/tasktrack/core/repositories/usersrepo"
	"github.com/jrazmi/tasktrack/core/repositories/usersrepo/stores/usersmemstore"
	"github.com/jrazmi/tasktrack/core/repositories/usersrepo/stores/usersmongostore"
	"github.com/jrazmi/tasktrack/core/repositories/usersrepo/stores/userspgxstore"
	"github.com/jrazmi/tasktrack/infrastructure/postgresdb"
	"github.com/jrazmi/tasktrack/sdk/logger"
	"go.mongodb.org/mongo-driver/mongo"
)

type indexer interface {
	EnsureIndexes(ctx context.Context) error
}

type Repositories struct {
	Users *usersrepo.Repository
	Tasks *tasksrepo.Repository

	indexers []indexer
}

// NewMemory keeps everything in process. Data is lost on restart.
func NewMemory(log *logger.Logger) Repositories {
	return Repositories{
		Users: usersrepo.NewRepository(log, usersmemstore.NewStore()),
		Tasks: tasksrepo.NewRepository(log, tasksmemstore.NewStore()),
	}
}

func NewPostgres(log *logger.Logger, pool *postgresdb.Pool) Repositories {
	return Repositories{
		Users: usersrepo.NewRepository(log, userspgxstore.NewStore(log, pool)),
		Tasks: tasksrepo.NewRepository(log, taskspgxstore.NewStore(log, pool)),
	}
}

func NewMongo(log *logger.Logger, db *mongo.Database) Repositories {
	users := usersmongostore.NewStore(log, db)
	tasks := tasksmongostore.NewStore(log, db)

	return Repositories{
		Users:    usersrepo.NewRepository(log, users),
		Tasks:    tasksrepo.NewRepository(log, tasks),
		indexers: []indexer{users, tasks},
	}
}

// EnsureIndexes creates the store side indexes the repositories rely on.
// Drivers whose schema is managed by migrations have nothing to do here.
func (r Repositories) EnsureIndexes(ctx context.Context) error {
	for _, ix := range r.indexers {
		if err := ix.EnsureIndexes(ctx); err != nil {
			return fmt.Errorf("ensure indexes: %w", err)
		}
	}
	return nil
}
