// Package tasksmemstore keeps tasks in process memory. It backs local
// development and tests.
package tasksmemstore

import (
	"cmp"
	"context"
	"slices"
	"sync"
	"time"

	"github.com/jrazmi/tasktrack/core/repositories/tasksrepo"
	"github.com/jrazmi/tasktrack/core/scaffolding/fop"
)

type entry struct {
	task tasksrepo.Task
	seq  uint64
}

// Store is a mutex-guarded map of tasks keyed by id.
type Store struct {
	mu    sync.RWMutex
	tasks map[string]entry
	seq   uint64
	now   func() time.Time
}

// Option configures a Store.
type Option func(*Store)

// WithClock replaces time.Now for timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

func NewStore(opts ...Option) *Store {
	s := &Store{
		tasks: make(map[string]entry),
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) Create(ctx context.Context, task tasksrepo.Task) (tasksrepo.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now().UTC()
	task.CreatedAt = now
	task.UpdatedAt = now

	s.seq++
	s.tasks[task.ID] = entry{task: task, seq: s.seq}

	return task, nil
}

func (s *Store) Get(ctx context.Context, ownerID, id string) (tasksrepo.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.tasks[id]
	if !ok || e.task.UserID != ownerID {
		return tasksrepo.Task{}, tasksrepo.ErrNotFound
	}
	return e.task, nil
}

func (s *Store) List(ctx context.Context, filter tasksrepo.QueryFilter, page fop.Page) ([]tasksrepo.Task, error) {
	s.mu.RLock()
	matched := make([]entry, 0, len(s.tasks))
	for _, e := range s.tasks {
		if filter.Matches(e.task) {
			matched = append(matched, e)
		}
	}
	s.mu.RUnlock()

	// newest first; insertion order breaks ties on identical timestamps
	slices.SortFunc(matched, func(a, b entry) int {
		if c := b.task.CreatedAt.Compare(a.task.CreatedAt); c != 0 {
			return c
		}
		return cmp.Compare(b.seq, a.seq)
	})

	start := page.Offset()
	if start < 0 || start > len(matched) {
		start = len(matched)
	}
	end := start + min(page.Limit, len(matched)-start)

	out := make([]tasksrepo.Task, 0, end-start)
	for _, e := range matched[start:end] {
		out = append(out, e.task)
	}
	return out, nil
}

func (s *Store) Count(ctx context.Context, filter tasksrepo.QueryFilter) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n := 0
	for _, e := range s.tasks {
		if filter.Matches(e.task) {
			n++
		}
	}
	return n, nil
}

func (s *Store) Update(ctx context.Context, ownerID, id string, upd tasksrepo.UpdateTask) (tasksrepo.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.tasks[id]
	if !ok || e.task.UserID != ownerID {
		return tasksrepo.Task{}, tasksrepo.ErrNotFound
	}
	if upd.ExpectedVersion != nil && *upd.ExpectedVersion != e.task.Version {
		return tasksrepo.Task{}, tasksrepo.ErrVersionConflict
	}

	task := upd.Apply(e.task)
	task.Version++
	task.UpdatedAt = s.now().UTC()

	e.task = task
	s.tasks[id] = e

	return task, nil
}

func (s *Store) Delete(ctx context.Context, ownerID, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.tasks[id]
	if !ok || e.task.UserID != ownerID {
		return tasksrepo.ErrNotFound
	}
	delete(s.tasks, id)
	return nil
}
