package tasksrepobridge

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/jrazmi/tasktrack/bridge/scaffolding/errs"
	"github.com/jrazmi/tasktrack/bridge/scaffolding/fopbridge"
	"github.com/jrazmi/tasktrack/bridge/scaffolding/mid"
	"github.com/jrazmi/tasktrack/core/repositories/tasksrepo"
	"github.com/jrazmi/tasktrack/infrastructure/web"
	"github.com/jrazmi/tasktrack/sdk/logger"
)

const (
	msgCreated  = "Task created."
	msgUpdated  = "Task updated."
	msgDeleted  = "Task deleted."
	msgNotFound = "Task not found."
)

type bridge struct {
	log             *logger.Logger
	tasksRepository *tasksrepo.Repository
}

func newBridge(log *logger.Logger, tasksRepository *tasksrepo.Repository) *bridge {
	return &bridge{
		log:             log,
		tasksRepository: tasksRepository,
	}
}

func (b *bridge) httpList(ctx context.Context, r *http.Request) web.Encoder {
	userID, err := mid.GetUserID(ctx)
	if err != nil {
		return errs.New(errs.Unauthenticated, err)
	}

	qp := parseQueryParams(r)
	filter, page := qp.toRepository(userID)

	tasks, info, err := b.tasksRepository.List(ctx, filter, page)
	if err != nil {
		return errs.Newf(errs.Internal, "list tasks: %s", err)
	}

	return fopbridge.NewPaginatedResponse("tasks", MarshalListToBridge(tasks), info)
}

func (b *bridge) httpGetByID(ctx context.Context, r *http.Request) web.Encoder {
	userID, err := mid.GetUserID(ctx)
	if err != nil {
		return errs.New(errs.Unauthenticated, err)
	}

	task, err := b.tasksRepository.Get(ctx, userID, web.Param(r, "task_id"))
	if err != nil {
		return b.repositoryError(ctx, "get task", err)
	}

	setETag(ctx, task)
	return fopbridge.NewEnvelope("task", MarshalToBridge(task))
}

func (b *bridge) httpCreate(ctx context.Context, r *http.Request) web.Encoder {
	userID, err := mid.GetUserID(ctx)
	if err != nil {
		return errs.New(errs.Unauthenticated, err)
	}

	var input CreateTaskInput
	if err := web.Decode(r, &input); err != nil {
		return decodeError(err)
	}

	task, err := b.tasksRepository.Create(ctx, userID, MarshalCreateToRepository(input))
	if err != nil {
		return b.repositoryError(ctx, "create task", err)
	}

	setETag(ctx, task)
	return fopbridge.NewEnvelope("task", MarshalToBridge(task)).WithMessage(msgCreated).WithStatus(http.StatusCreated)
}

func (b *bridge) httpUpdate(ctx context.Context, r *http.Request) web.Encoder {
	userID, err := mid.GetUserID(ctx)
	if err != nil {
		return errs.New(errs.Unauthenticated, err)
	}

	expected, err := parseIfMatch(r.Header.Get("If-Match"))
	if err != nil {
		return errs.Newf(errs.InvalidArgument, "Invalid If-Match header")
	}

	var input UpdateTaskInput
	if err := web.Decode(r, &input); err != nil {
		return decodeError(err)
	}

	upd := MarshalUpdateToRepository(input)
	upd.ExpectedVersion = expected

	task, err := b.tasksRepository.Update(ctx, userID, web.Param(r, "task_id"), upd)
	if err != nil {
		return b.repositoryError(ctx, "update task", err)
	}

	setETag(ctx, task)
	return fopbridge.NewEnvelope("task", MarshalToBridge(task)).WithMessage(msgUpdated)
}

func (b *bridge) httpDelete(ctx context.Context, r *http.Request) web.Encoder {
	userID, err := mid.GetUserID(ctx)
	if err != nil {
		return errs.New(errs.Unauthenticated, err)
	}

	if err := b.tasksRepository.Delete(ctx, userID, web.Param(r, "task_id")); err != nil {
		return b.repositoryError(ctx, "delete task", err)
	}

	return fopbridge.NewMessageResponse(msgDeleted)
}

// =============================================================================

func (b *bridge) repositoryError(ctx context.Context, op string, err error) *errs.Error {
	if fe := errs.FromValidation(err); fe != nil {
		return fe
	}
	switch {
	case errors.Is(err, tasksrepo.ErrNotFound):
		return errs.Newf(errs.NotFound, msgNotFound)
	case errors.Is(err, tasksrepo.ErrVersionConflict):
		b.log.InfoContext(ctx, "stale task update rejected", "err", err)
		return errs.Newf(errs.Aborted, "Task was modified by another request.")
	}
	return errs.Newf(errs.Internal, "%s: %s", op, err)
}

func decodeError(err error) *errs.Error {
	if fe := errs.FromValidation(err); fe != nil {
		return fe
	}
	return errs.Newf(errs.InvalidArgument, "Invalid request body")
}

func setETag(ctx context.Context, task tasksrepo.Task) {
	if w := web.GetWriter(ctx); w != nil {
		w.Header().Set("ETag", strconv.Quote(strconv.Itoa(task.Version)))
	}
}
