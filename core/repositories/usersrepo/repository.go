// Package usersrepo manages accounts: registration, login, profile edits and
// password changes.
package usersrepo

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jrazmi/tasktrack/sdk/auth"
	"github.com/jrazmi/tasktrack/sdk/logger"
	"github.com/jrazmi/tasktrack/sdk/validation"
)

var (
	ErrNotFound           = errors.New("user not found")
	ErrDuplicateEmail     = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrWrongPassword      = errors.New("current password is incorrect")
)

// Storer persists users. Create and Update report ErrDuplicateEmail when the
// address is taken; lookups report ErrNotFound.
type Storer interface {
	Create(ctx context.Context, cred Credentials) (User, error)
	GetByID(ctx context.Context, id string) (User, error)
	GetCredentialsByEmail(ctx context.Context, email string) (Credentials, error)
	GetCredentialsByID(ctx context.Context, id string) (Credentials, error)
	Update(ctx context.Context, id string, upd UpdateUser) (User, error)
	UpdatePassword(ctx context.Context, id, hash string) error
}

// Repository provides access to user storage.
type Repository struct {
	log    *logger.Logger
	storer Storer
}

// NewRepository creates a new User repository
func NewRepository(log *logger.Logger, storer Storer) *Repository {
	return &Repository{
		log:    log,
		storer: storer,
	}
}

// Register creates an account with a hashed password.
func (r *Repository) Register(ctx context.Context, input CreateUser) (User, error) {
	if err := input.Validate(); err != nil {
		return User{}, err
	}

	hash, err := auth.HashPassword(input.Password)
	if err != nil {
		return User{}, fmt.Errorf("register: %w", err)
	}

	cred := Credentials{
		User: User{
			ID:    uuid.NewString(),
			Name:  strings.TrimSpace(input.Name),
			Email: NormalizeEmail(input.Email),
		},
		PasswordHash: hash,
	}

	usr, err := r.storer.Create(ctx, cred)
	if err != nil {
		return User{}, fmt.Errorf("register: %w", err)
	}

	r.log.InfoContext(ctx, "user registered", "user_id", usr.ID)
	return usr, nil
}

// Authenticate returns the user owning email when password matches. Unknown
// addresses and wrong passwords are indistinguishable.
func (r *Repository) Authenticate(ctx context.Context, email, password string) (User, error) {
	cred, err := r.storer.GetCredentialsByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return User{}, ErrInvalidCredentials
		}
		return User{}, fmt.Errorf("authenticate: %w", err)
	}

	if err := auth.CheckPassword(cred.PasswordHash, password); err != nil {
		if errors.Is(err, auth.ErrPasswordMismatch) {
			return User{}, ErrInvalidCredentials
		}
		return User{}, fmt.Errorf("authenticate: %w", err)
	}

	return cred.User, nil
}

// GetByID returns the user with id.
func (r *Repository) GetByID(ctx context.Context, id string) (User, error) {
	if _, err := uuid.Parse(id); err != nil {
		return User{}, ErrNotFound
	}

	usr, err := r.storer.GetByID(ctx, id)
	if err != nil {
		return User{}, fmt.Errorf("get user: %w", err)
	}
	return usr, nil
}

// UpdateProfile changes the fields present in upd.
func (r *Repository) UpdateProfile(ctx context.Context, id string, upd UpdateUser) (User, error) {
	if upd.Name != nil {
		n := strings.TrimSpace(*upd.Name)
		upd.Name = &n
	}
	if err := upd.Validate(); err != nil {
		return User{}, err
	}

	if upd.Empty() {
		return r.GetByID(ctx, id)
	}

	usr, err := r.storer.Update(ctx, id, upd)
	if err != nil {
		return User{}, fmt.Errorf("update profile: %w", err)
	}
	return usr, nil
}

// ChangePassword replaces the password after checking the current one. The
// stored hash is untouched when current does not match.
func (r *Repository) ChangePassword(ctx context.Context, id, current, next string) error {
	var fe validation.FieldErrors
	if current == "" {
		fe.Add("currentPassword", "Current password required")
	}
	CheckNewPassword(&fe, "newPassword", "New password", next)
	if err := fe.Err(); err != nil {
		return err
	}

	cred, err := r.storer.GetCredentialsByID(ctx, id)
	if err != nil {
		return fmt.Errorf("change password: %w", err)
	}

	if err := auth.CheckPassword(cred.PasswordHash, current); err != nil {
		if errors.Is(err, auth.ErrPasswordMismatch) {
			return ErrWrongPassword
		}
		return fmt.Errorf("change password: %w", err)
	}

	hash, err := auth.HashPassword(next)
	if err != nil {
		return fmt.Errorf("change password: %w", err)
	}

	if err := r.storer.UpdatePassword(ctx, id, hash); err != nil {
		return fmt.Errorf("change password: %w", err)
	}

	r.log.InfoContext(ctx, "password changed", "user_id", id)
	return nil
}
