// Package usersmongostore stores accounts as MongoDB documents.
package usersmongostore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jrazmi/tasktrack/core/repositories/usersrepo"
	"github.com/jrazmi/tasktrack/sdk/logger"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const collection = "users"

// publicProjection keeps the password hash out of ordinary reads.
var publicProjection = bson.D{{Key: "passwordHash", Value: 0}}

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

// EnsureIndexes creates the unique email index.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	_, err := s.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("create user indexes: %w", err)
	}
	return nil
}

func (s *Store) Create(ctx context.Context, cred usersrepo.Credentials) (usersrepo.User, error) {
	now := s.now().UTC().Truncate(time.Millisecond)
	cred.CreatedAt = now
	cred.UpdatedAt = now

	if _, err := s.coll.InsertOne(ctx, cred); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return usersrepo.User{}, usersrepo.ErrDuplicateEmail
		}
		return usersrepo.User{}, fmt.Errorf("insert user: %w", err)
	}
	return cred.User, nil
}

func (s *Store) GetByID(ctx context.Context, id string) (usersrepo.User, error) {
	var usr usersrepo.User
	opts := options.FindOne().SetProjection(publicProjection)
	if err := s.coll.FindOne(ctx, bson.D{{Key: "_id", Value: id}}, opts).Decode(&usr); err != nil {
		return usersrepo.User{}, mapError(err)
	}
	return usr, nil
}

func (s *Store) GetCredentialsByEmail(ctx context.Context, email string) (usersrepo.Credentials, error) {
	return s.findCredentials(ctx, bson.D{{Key: "email", Value: email}})
}

func (s *Store) GetCredentialsByID(ctx context.Context, id string) (usersrepo.Credentials, error) {
	return s.findCredentials(ctx, bson.D{{Key: "_id", Value: id}})
}

func (s *Store) Update(ctx context.Context, id string, upd usersrepo.UpdateUser) (usersrepo.User, error) {
	set := bson.D{{Key: "updatedAt", Value: s.now().UTC().Truncate(time.Millisecond)}}
	if upd.Name != nil {
		set = append(set, bson.E{Key: "name", Value: *upd.Name})
	}
	if upd.Bio != nil {
		set = append(set, bson.E{Key: "bio", Value: *upd.Bio})
	}
	if upd.Avatar != nil {
		set = append(set, bson.E{Key: "avatar", Value: *upd.Avatar})
	}

	opts := options.FindOneAndUpdate().
		SetReturnDocument(options.After).
		SetProjection(publicProjection)

	var usr usersrepo.User
	err := s.coll.FindOneAndUpdate(ctx, bson.D{{Key: "_id", Value: id}}, bson.D{{Key: "$set", Value: set}}, opts).Decode(&usr)
	if err != nil {
		return usersrepo.User{}, mapError(err)
	}
	return usr, nil
}

func (s *Store) UpdatePassword(ctx context.Context, id, hash string) error {
	res, err := s.coll.UpdateByID(ctx, id, bson.D{{Key: "$set", Value: bson.D{
		{Key: "passwordHash", Value: hash},
		{Key: "updatedAt", Value: s.now().UTC().Truncate(time.Millisecond)},
	}}})
	if err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	if res.MatchedCount == 0 {
		return usersrepo.ErrNotFound
	}
	return nil
}

func (s *Store) findCredentials(ctx context.Context, filter bson.D) (usersrepo.Credentials, error) {
	var cred usersrepo.Credentials
	if err := s.coll.FindOne(ctx, filter).Decode(&cred); err != nil {
		return usersrepo.Credentials{}, mapError(err)
	}
	return cred, nil
}

func mapError(err error) error {
	switch {
	case errors.Is(err, mongo.ErrNoDocuments):
		return usersrepo.ErrNotFound
	case mongo.IsDuplicateKeyError(err):
		return usersrepo.ErrDuplicateEmail
	}
	return fmt.Errorf("users collection: %w", err)
}
