// Package tasksmongostore stores tasks as MongoDB documents.
package tasksmongostore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jrazmi/tasktrack/core/repositories/tasksrepo"
	"github.com/jrazmi/tasktrack/core/scaffolding/fop"
	"github.com/jrazmi/tasktrack/sdk/logger"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const collection = "tasks"

type Store struct {
	log  *logger.Logger
	coll *mongo.Collection
	now  func() time.Time
}

func NewStore(log *logger.Logger, db *mongo.Database) *Store {
	return &Store{
		log:  log,
		coll: db.Collection(collection),
		now:  time.Now,
	}
}

// EnsureIndexes creates the indexes the list and lookup paths rely on.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	_, err := s.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "user", Value: 1}, {Key: "createdAt", Value: -1}}},
		{Keys: bson.D{{Key: "user", Value: 1}, {Key: "status", Value: 1}}},
		{Keys: bson.D{{Key: "user", Value: 1}, {Key: "priority", Value: 1}}},
	})
	if err != nil {
		return fmt.Errorf("create task indexes: %w", err)
	}
	return nil
}

func (s *Store) Create(ctx context.Context, task tasksrepo.Task) (tasksrepo.Task, error) {
	now := s.now().UTC().Truncate(time.Millisecond)
	task.CreatedAt = now
	task.UpdatedAt = now

	if _, err := s.coll.InsertOne(ctx, task); err != nil {
		return tasksrepo.Task{}, fmt.Errorf("insert task: %w", err)
	}
	return task, nil
}

func (s *Store) Get(ctx context.Context, ownerID, id string) (tasksrepo.Task, error) {
	var task tasksrepo.Task
	err := s.coll.FindOne(ctx, ownerScope(ownerID, id)).Decode(&task)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return tasksrepo.Task{}, tasksrepo.ErrNotFound
		}
		return tasksrepo.Task{}, fmt.Errorf("find task: %w", err)
	}
	return task, nil
}

func (s *Store) List(ctx context.Context, filter tasksrepo.QueryFilter, page fop.Page) ([]tasksrepo.Task, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}}).
		SetSkip(int64(page.Offset())).
		SetLimit(int64(page.Limit))

	cur, err := s.coll.Find(ctx, filterDoc(filter), opts)
	if err != nil {
		return nil, fmt.Errorf("find tasks: %w", err)
	}

	tasks := []tasksrepo.Task{}
	if err := cur.All(ctx, &tasks); err != nil {
		return nil, fmt.Errorf("decode tasks: %w", err)
	}
	return tasks, nil
}

func (s *Store) Count(ctx context.Context, filter tasksrepo.QueryFilter) (int, error) {
	n, err := s.coll.CountDocuments(ctx, filterDoc(filter))
	if err != nil {
		return 0, fmt.Errorf("count tasks: %w", err)
	}
	return int(n), nil
}

func (s *Store) Update(ctx context.Context, ownerID, id string, upd tasksrepo.UpdateTask) (tasksrepo.Task, error) {
	scope := ownerScope(ownerID, id)
	if upd.ExpectedVersion != nil {
		scope = append(scope, bson.E{Key: "version", Value: *upd.ExpectedVersion})
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var task tasksrepo.Task
	err := s.coll.FindOneAndUpdate(ctx, scope, updateDoc(upd, s.now().UTC().Truncate(time.Millisecond)), opts).Decode(&task)
	if err == nil {
		return task, nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return tasksrepo.Task{}, fmt.Errorf("update task: %w", err)
	}

	if upd.ExpectedVersion != nil {
		if _, getErr := s.Get(ctx, ownerID, id); getErr == nil {
			return tasksrepo.Task{}, tasksrepo.ErrVersionConflict
		}
	}
	return tasksrepo.Task{}, tasksrepo.ErrNotFound
}

func (s *Store) Delete(ctx context.Context, ownerID, id string) error {
	res, err := s.coll.DeleteOne(ctx, ownerScope(ownerID, id))
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	if res.DeletedCount == 0 {
		return tasksrepo.ErrNotFound
	}
	return nil
}
