// Package taskspgxstore stores tasks in PostgreSQL through pgx.
package taskspgxstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jrazmi/tasktrack/core/repositories/tasksrepo"
	"github.com/jrazmi/tasktrack/core/scaffolding/fop"
	"github.com/jrazmi/tasktrack/infrastructure/postgresdb"
	"github.com/jrazmi/tasktrack/sdk/logger"
)

type Store struct {
	log  *logger.Logger
	pool *postgresdb.Pool
}

func NewStore(log *logger.Logger, pool *postgresdb.Pool) *Store {
	return &Store{
		log:  log,
		pool: pool,
	}
}

func (s *Store) Create(ctx context.Context, task tasksrepo.Task) (tasksrepo.Task, error) {
	query, args, err := insertQuery(task).ToSql()
	if err != nil {
		return tasksrepo.Task{}, fmt.Errorf("build insert: %w", err)
	}
	return s.queryOne(ctx, query, args)
}

func (s *Store) Get(ctx context.Context, ownerID, id string) (tasksrepo.Task, error) {
	query, args, err := getQuery(ownerID, id).ToSql()
	if err != nil {
		return tasksrepo.Task{}, fmt.Errorf("build select: %w", err)
	}
	return s.queryOne(ctx, query, args)
}

func (s *Store) List(ctx context.Context, filter tasksrepo.QueryFilter, page fop.Page) ([]tasksrepo.Task, error) {
	query, args, err := listQuery(filter, page).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list: %w", err)
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, postgresdb.HandlePgError(err)
	}
	defer rows.Close()

	tasks, err := pgx.CollectRows(rows, pgx.RowToStructByName[tasksrepo.Task])
	if err != nil {
		return nil, postgresdb.HandlePgError(err)
	}
	return tasks, nil
}

func (s *Store) Count(ctx context.Context, filter tasksrepo.QueryFilter) (int, error) {
	query, args, err := countQuery(filter).ToSql()
	if err != nil {
		return 0, fmt.Errorf("build count: %w", err)
	}

	var total int
	if err := s.pool.QueryRow(ctx, query, args...).Scan(&total); err != nil {
		return 0, postgresdb.HandlePgError(err)
	}
	return total, nil
}

func (s *Store) Update(ctx context.Context, ownerID, id string, upd tasksrepo.UpdateTask) (tasksrepo.Task, error) {
	query, args, err := updateQuery(ownerID, id, upd).ToSql()
	if err != nil {
		return tasksrepo.Task{}, fmt.Errorf("build update: %w", err)
	}

	task, err := s.queryOne(ctx, query, args)
	if !errors.Is(err, tasksrepo.ErrNotFound) || upd.ExpectedVersion == nil {
		return task, err
	}

	// nothing matched: either the task is gone or its version moved on
	if _, getErr := s.Get(ctx, ownerID, id); getErr == nil {
		return tasksrepo.Task{}, tasksrepo.ErrVersionConflict
	}
	return tasksrepo.Task{}, tasksrepo.ErrNotFound
}

func (s *Store) Delete(ctx context.Context, ownerID, id string) error {
	query, args, err := deleteQuery(ownerID, id).ToSql()
	if err != nil {
		return fmt.Errorf("build delete: %w", err)
	}

	tag, err := s.pool.Exec(ctx, query, args...)
	if err != nil {
		return postgresdb.HandlePgError(err)
	}
	if tag.RowsAffected() == 0 {
		return tasksrepo.ErrNotFound
	}
	return nil
}

func (s *Store) queryOne(ctx context.Context, query string, args []any) (tasksrepo.Task, error) {
	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return tasksrepo.Task{}, postgresdb.HandlePgError(err)
	}
	defer rows.Close()

	task, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[tasksrepo.Task])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return tasksrepo.Task{}, tasksrepo.ErrNotFound
		}
		return tasksrepo.Task{}, postgresdb.HandlePgError(err)
	}
	return task, nil
}
