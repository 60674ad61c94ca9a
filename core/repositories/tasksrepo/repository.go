// Package tasksrepo is the owner-scoped task repository. Every read and
// write is constrained to tasks whose owner is the requesting user.
package tasksrepo

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jrazmi/tasktrack/core/scaffolding/fop"
	"github.com/jrazmi/tasktrack/sdk/logger"
	"golang.org/x/sync/errgroup"
)

var (
	// ErrNotFound covers both a missing task and one owned by someone else.
	// Callers never learn which.
	ErrNotFound = errors.New("task not found")

	// ErrVersionConflict means the task changed since the caller read it.
	ErrVersionConflict = errors.New("task version conflict")
)

// Storer persists tasks. Implementations must AND the owner into every
// statement and return ErrNotFound / ErrVersionConflict from this package.
type Storer interface {
	Create(ctx context.Context, task Task) (Task, error)
	Get(ctx context.Context, ownerID, id string) (Task, error)
	List(ctx context.Context, filter QueryFilter, page fop.Page) ([]Task, error)
	Count(ctx context.Context, filter QueryFilter) (int, error)
	Update(ctx context.Context, ownerID, id string, upd UpdateTask) (Task, error)
	Delete(ctx context.Context, ownerID, id string) error
}

// Repository provides access to task storage.
type Repository struct {
	log    *logger.Logger
	storer Storer
}

// NewRepository creates a new Task repository
func NewRepository(log *logger.Logger, storer Storer) *Repository {
	return &Repository{
		log:    log,
		storer: storer,
	}
}

// List returns one page of the owner's tasks, newest first, with page info.
func (r *Repository) List(ctx context.Context, filter QueryFilter, page fop.Page) ([]Task, fop.PageInfo, error) {
	var (
		tasks []Task
		total int
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		tasks, err = r.storer.List(gctx, filter, page)
		return err
	})
	g.Go(func() error {
		var err error
		total, err = r.storer.Count(gctx, filter)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fop.PageInfo{}, fmt.Errorf("list tasks: %w", err)
	}

	if tasks == nil {
		tasks = []Task{}
	}

	return tasks, fop.NewPageInfo(total, page), nil
}

// Get returns the task with id if ownerID owns it.
func (r *Repository) Get(ctx context.Context, ownerID, id string) (Task, error) {
	if !validID(id) {
		return Task{}, ErrNotFound
	}

	task, err := r.storer.Get(ctx, ownerID, id)
	if err != nil {
		return Task{}, fmt.Errorf("get task: %w", err)
	}
	return task, nil
}

// Create stores a new task owned by ownerID.
func (r *Repository) Create(ctx context.Context, ownerID string, input CreateTask) (Task, error) {
	input.Title = strings.TrimSpace(input.Title)
	if input.Status == "" {
		input.Status = StatusTodo
	}
	if input.Priority == "" {
		input.Priority = PriorityMedium
	}
	if err := input.Validate(); err != nil {
		return Task{}, err
	}

	task := Task{
		ID:          uuid.NewString(),
		UserID:      ownerID,
		Title:       input.Title,
		Description: input.Description,
		Status:      input.Status,
		Priority:    input.Priority,
		DueDate:     input.DueDate,
		Version:     1,
	}

	created, err := r.storer.Create(ctx, task)
	if err != nil {
		return Task{}, fmt.Errorf("create task: %w", err)
	}

	r.log.InfoContext(ctx, "task created", "task_id", created.ID, "user_id", ownerID)
	return created, nil
}

// Update applies the fields present in upd to the owner's task. A payload
// that changes nothing returns the current record.
func (r *Repository) Update(ctx context.Context, ownerID, id string, upd UpdateTask) (Task, error) {
	if !validID(id) {
		return Task{}, ErrNotFound
	}

	if upd.Title != nil {
		t := strings.TrimSpace(*upd.Title)
		upd.Title = &t
	}
	if err := upd.Validate(); err != nil {
		return Task{}, err
	}

	if upd.Empty() {
		current, err := r.storer.Get(ctx, ownerID, id)
		if err != nil {
			return Task{}, fmt.Errorf("update task: %w", err)
		}
		if upd.ExpectedVersion != nil && *upd.ExpectedVersion != current.Version {
			return Task{}, ErrVersionConflict
		}
		return current, nil
	}

	updated, err := r.storer.Update(ctx, ownerID, id, upd)
	if err != nil {
		return Task{}, fmt.Errorf("update task: %w", err)
	}

	r.log.InfoContext(ctx, "task updated", "task_id", id, "user_id", ownerID, "version", updated.Version)
	return updated, nil
}

// Delete removes the owner's task. Deleting a task that is already gone
// reports ErrNotFound.
func (r *Repository) Delete(ctx context.Context, ownerID, id string) error {
	if !validID(id) {
		return ErrNotFound
	}

	if err := r.storer.Delete(ctx, ownerID, id); err != nil {
		return fmt.Errorf("delete task: %w", err)
	}

	r.log.InfoContext(ctx, "task deleted", "task_id", id, "user_id", ownerID)
	return nil
}

func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
