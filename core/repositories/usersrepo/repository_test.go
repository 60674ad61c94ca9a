package usersrepo_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/jrazmi/tasktrack/core/repositories/usersrepo"
	"github.com/jrazmi/tasktrack/core/repositories/usersrepo/stores/usersmemstore"
	"github.com/jrazmi/tasktrack/sdk/logger"
	"github.com/jrazmi/tasktrack/sdk/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRepo() (*usersrepo.Repository, *usersmemstore.Store) {
	store := usersmemstore.NewStore()
	return usersrepo.NewRepository(logger.NewDiscard(), store), store
}

func fieldNames(t *testing.T, err error) []string {
	t.Helper()
	var fe *validation.FieldErrors
	require.True(t, errors.As(err, &fe), "expected field errors, got %v", err)
	return fe.Fields()
}

func TestRegisterThenAuthenticate(t *testing.T) {
	ctx := context.Background()
	repo, _ := newRepo()

	registered, err := repo.Register(ctx, usersrepo.CreateUser{
		Name:     "  Ada Lovelace ",
		Email:    " Ada@Example.COM ",
		Password: "engine1",
	})
	require.NoError(t, err)
	assert.Equal(t, "Ada Lovelace", registered.Name)
	assert.Equal(t, "ada@example.com", registered.Email)
	assert.NotEmpty(t, registered.ID)

	loggedIn, err := repo.Authenticate(ctx, "ADA@example.com", "engine1")
	require.NoError(t, err)
	assert.Equal(t, registered, loggedIn)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	ctx := context.Background()
	repo, _ := newRepo()

	_, err := repo.Register(ctx, usersrepo.CreateUser{Name: "A", Email: "a@b.co", Password: "secret1"})
	require.NoError(t, err)

	_, err = repo.Register(ctx, usersrepo.CreateUser{Name: "B", Email: "A@B.CO", Password: "secret2"})
	assert.ErrorIs(t, err, usersrepo.ErrDuplicateEmail)
}

func TestRegister_Validation(t *testing.T) {
	repo, _ := newRepo()

	_, err := repo.Register(context.Background(), usersrepo.CreateUser{
		Name:     strings.Repeat("n", 101),
		Email:    "not-an-email",
		Password: "12345",
	})
	require.Error(t, err)
	assert.ElementsMatch(t, []string{"name", "email", "password"}, fieldNames(t, err))
}

func TestAuthenticate_FailuresLookAlike(t *testing.T) {
	ctx := context.Background()
	repo, _ := newRepo()

	_, err := repo.Register(ctx, usersrepo.CreateUser{Name: "A", Email: "a@b.co", Password: "secret1"})
	require.NoError(t, err)

	_, errWrong := repo.Authenticate(ctx, "a@b.co", "secret2")
	_, errUnknown := repo.Authenticate(ctx, "nobody@b.co", "secret1")

	assert.ErrorIs(t, errWrong, usersrepo.ErrInvalidCredentials)
	assert.ErrorIs(t, errUnknown, usersrepo.ErrInvalidCredentials)
	assert.Equal(t, errWrong.Error(), errUnknown.Error())
}

func TestUpdateProfile_Partial(t *testing.T) {
	ctx := context.Background()
	repo, _ := newRepo()

	usr, err := repo.Register(ctx, usersrepo.CreateUser{Name: "Grace", Email: "g@h.co", Password: "cobol60"})
	require.NoError(t, err)

	updated, err := repo.UpdateProfile(ctx, usr.ID, usersrepo.UpdateUser{
		Bio:    validation.StringPtr("Rear admiral"),
		Avatar: validation.StringPtr("https://img.example.com/g.png"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Grace", updated.Name)
	assert.Equal(t, "Rear admiral", updated.Bio)
	assert.Equal(t, "https://img.example.com/g.png", updated.Avatar)

	cleared, err := repo.UpdateProfile(ctx, usr.ID, usersrepo.UpdateUser{Avatar: validation.StringPtr("")})
	require.NoError(t, err)
	assert.Empty(t, cleared.Avatar)
	assert.Equal(t, "Rear admiral", cleared.Bio)
}

func TestUpdateProfile_Validation(t *testing.T) {
	ctx := context.Background()
	repo, _ := newRepo()

	usr, err := repo.Register(ctx, usersrepo.CreateUser{Name: "Grace", Email: "g@h.co", Password: "cobol60"})
	require.NoError(t, err)

	_, err = repo.UpdateProfile(ctx, usr.ID, usersrepo.UpdateUser{
		Name:   validation.StringPtr("   "),
		Bio:    validation.StringPtr(strings.Repeat("b", 501)),
		Avatar: validation.StringPtr("not a url"),
	})
	require.Error(t, err)
	assert.ElementsMatch(t, []string{"name", "bio", "avatar"}, fieldNames(t, err))
}

func TestPasswordBeyondBcryptLimit(t *testing.T) {
	ctx := context.Background()
	repo, _ := newRepo()

	_, err := repo.Register(ctx, usersrepo.CreateUser{Name: "Long", Email: "long@example.com", Password: strings.Repeat("p", 80)})
	require.Error(t, err)
	assert.Equal(t, []string{"password"}, fieldNames(t, err))

	maxLen := strings.Repeat("p", usersrepo.MaxPasswordBytes)
	usr, err := repo.Register(ctx, usersrepo.CreateUser{Name: "Long", Email: "long@example.com", Password: maxLen})
	require.NoError(t, err)

	err = repo.ChangePassword(ctx, usr.ID, maxLen, strings.Repeat("q", usersrepo.MaxPasswordBytes+1))
	require.Error(t, err)
	assert.Equal(t, []string{"newPassword"}, fieldNames(t, err))

	_, err = repo.Authenticate(ctx, "long@example.com", maxLen)
	assert.NoError(t, err, "password unchanged")
}

func TestChangePassword(t *testing.T) {
	ctx := context.Background()
	repo, store := newRepo()

	usr, err := repo.Register(ctx, usersrepo.CreateUser{Name: "Linus", Email: "l@k.org", Password: "oldpass"})
	require.NoError(t, err)

	before, err := store.GetCredentialsByID(ctx, usr.ID)
	require.NoError(t, err)

	err = repo.ChangePassword(ctx, usr.ID, "wrong!", "newpass")
	assert.ErrorIs(t, err, usersrepo.ErrWrongPassword)

	after, err := store.GetCredentialsByID(ctx, usr.ID)
	require.NoError(t, err)
	assert.Equal(t, before.PasswordHash, after.PasswordHash, "hash untouched on wrong current password")

	err = repo.ChangePassword(ctx, usr.ID, "oldpass", "short")
	require.Error(t, err)
	assert.Equal(t, []string{"newPassword"}, fieldNames(t, err))

	require.NoError(t, repo.ChangePassword(ctx, usr.ID, "oldpass", "newpass"))

	_, err = repo.Authenticate(ctx, "l@k.org", "newpass")
	assert.NoError(t, err)
	_, err = repo.Authenticate(ctx, "l@k.org", "oldpass")
	assert.ErrorIs(t, err, usersrepo.ErrInvalidCredentials)
}

func TestGetByID(t *testing.T) {
	ctx := context.Background()
	repo, _ := newRepo()

	_, err := repo.GetByID(ctx, "garbage")
	assert.ErrorIs(t, err, usersrepo.ErrNotFound)

	usr, err := repo.Register(ctx, usersrepo.CreateUser{Name: "A", Email: "a@b.co", Password: "secret1"})
	require.NoError(t, err)

	got, err := repo.GetByID(ctx, usr.ID)
	require.NoError(t, err)
	assert.Equal(t, usr, got)
}
