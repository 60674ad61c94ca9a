// Package userspgxstore stores accounts in PostgreSQL through pgx.
package userspgxstore

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jrazmi/tasktrack/core/repositories/usersrepo"
	"github.com/jrazmi/tasktrack/infrastructure/postgresdb"
	"github.com/jrazmi/tasktrack/sdk/logger"
)

const userColumns = `id, name, email, bio, avatar, created_at, updated_at`

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

func (s *Store) Create(ctx context.Context, cred usersrepo.Credentials) (usersrepo.User, error) {
	query := `INSERT INTO users (id, name, email, password_hash)
		VALUES (@id, @name, @email, @password_hash)
		RETURNING ` + userColumns

	args := pgx.NamedArgs{
		"id":            cred.ID,
		"name":          cred.Name,
		"email":         cred.Email,
		"password_hash": cred.PasswordHash,
	}

	return s.queryUser(ctx, query, args)
}

func (s *Store) GetByID(ctx context.Context, id string) (usersrepo.User, error) {
	query := `SELECT ` + userColumns + `
		FROM users
		WHERE id = @id`

	return s.queryUser(ctx, query, pgx.NamedArgs{"id": id})
}

func (s *Store) GetCredentialsByEmail(ctx context.Context, email string) (usersrepo.Credentials, error) {
	query := `SELECT ` + userColumns + `, password_hash
		FROM users
		WHERE email = @email`

	return s.queryCredentials(ctx, query, pgx.NamedArgs{"email": email})
}

func (s *Store) GetCredentialsByID(ctx context.Context, id string) (usersrepo.Credentials, error) {
	query := `SELECT ` + userColumns + `, password_hash
		FROM users
		WHERE id = @id`

	return s.queryCredentials(ctx, query, pgx.NamedArgs{"id": id})
}

// Update uses COALESCE so absent fields keep their stored value.
func (s *Store) Update(ctx context.Context, id string, upd usersrepo.UpdateUser) (usersrepo.User, error) {
	query := `UPDATE users SET
			name = COALESCE(@name, name),
			bio = COALESCE(@bio, bio),
			avatar = COALESCE(@avatar, avatar),
			updated_at = NOW()
		WHERE id = @id
		RETURNING ` + userColumns

	args := pgx.NamedArgs{
		"id":     id,
		"name":   upd.Name,
		"bio":    upd.Bio,
		"avatar": upd.Avatar,
	}

	return s.queryUser(ctx, query, args)
}

func (s *Store) UpdatePassword(ctx context.Context, id, hash string) error {
	query := `UPDATE users SET password_hash = @password_hash, updated_at = NOW() WHERE id = @id`

	tag, err := s.pool.Exec(ctx, query, pgx.NamedArgs{"id": id, "password_hash": hash})
	if err != nil {
		return postgresdb.HandlePgError(err)
	}
	if tag.RowsAffected() == 0 {
		return usersrepo.ErrNotFound
	}
	return nil
}

func (s *Store) queryUser(ctx context.Context, query string, args pgx.NamedArgs) (usersrepo.User, error) {
	rows, err := s.pool.Query(ctx, query, args)
	if err != nil {
		return usersrepo.User{}, mapError(err)
	}
	defer rows.Close()

	usr, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[usersrepo.User])
	if err != nil {
		return usersrepo.User{}, mapError(err)
	}
	return usr, nil
}

func (s *Store) queryCredentials(ctx context.Context, query string, args pgx.NamedArgs) (usersrepo.Credentials, error) {
	rows, err := s.pool.Query(ctx, query, args)
	if err != nil {
		return usersrepo.Credentials{}, mapError(err)
	}
	defer rows.Close()

	cred, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[usersrepo.Credentials])
	if err != nil {
		return usersrepo.Credentials{}, mapError(err)
	}
	return cred, nil
}

func mapError(err error) error {
	err = postgresdb.HandlePgError(err)
	switch {
	case errors.Is(err, postgresdb.ErrDBNotFound):
		return usersrepo.ErrNotFound
	case errors.Is(err, postgresdb.ErrDBDuplicatedEntry):
		return usersrepo.ErrDuplicateEmail
	}
	return err
}
