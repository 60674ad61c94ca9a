// Package mid provides app level middleware support.
package mid

import (
	"context"
	"errors"

	"github.com/jrazmi/tasktrack/core/repositories/usersrepo"
	"github.com/jrazmi/tasktrack/infrastructure/web"
)

type ctxKey int

const (
	userKey ctxKey = iota + 1
)

// ErrNoUser is returned when a handler not behind Authenticate asks for the
// requesting user.
var ErrNoUser = errors.New("user not found in context")

func setUser(ctx context.Context, usr usersrepo.User) context.Context {
	return context.WithValue(ctx, userKey, usr)
}

// GetUser returns the authenticated user from the context.
func GetUser(ctx context.Context) (usersrepo.User, error) {
	v, ok := ctx.Value(userKey).(usersrepo.User)
	if !ok {
		return usersrepo.User{}, ErrNoUser
	}
	return v, nil
}

// GetUserID returns the user id from the context.
func GetUserID(ctx context.Context) (string, error) {
	usr, err := GetUser(ctx)
	if err != nil {
		return "", err
	}
	return usr.ID, nil
}

// isError tests if the Encoder has an error inside of it.
func isError(e web.Encoder) error {
	err, isError := e.(error)
	if isError {
		return err
	}
	return nil
}
