package mid

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/jrazmi/tasktrack/bridge/scaffolding/errs"
	"github.com/jrazmi/tasktrack/core/repositories/usersrepo"
	"github.com/jrazmi/tasktrack/infrastructure/web"
	"github.com/jrazmi/tasktrack/sdk/auth"
	"github.com/jrazmi/tasktrack/sdk/logger"
)

// TokenVerifier turns a bearer token into the subject user id.
type TokenVerifier interface {
	VerifyToken(token string) (string, error)
}

// UserGetter loads the public projection of a user.
type UserGetter interface {
	GetByID(ctx context.Context, id string) (usersrepo.User, error)
}

const unauthenticatedMessage = "Not authorized."

// Authenticate guards a route: the bearer token must verify and name a user
// that still exists. Every credential failure produces the same 401; a user
// lookup that fails for any other reason is an internal error. The wrapped
// handler is never invoked on failure.
func Authenticate(log *logger.Logger, verifier TokenVerifier, users UserGetter) web.Middleware {
	return func(next web.HandlerFunc) web.HandlerFunc {
		return func(ctx context.Context, r *http.Request) web.Encoder {
			token, err := auth.ParseBearer(r.Header.Get("Authorization"))
			if err != nil {
				return errs.Newf(errs.Unauthenticated, unauthenticatedMessage)
			}

			userID, err := verifier.VerifyToken(token)
			if err != nil {
				log.DebugContext(ctx, "token rejected", "err", err)
				return errs.Newf(errs.Unauthenticated, unauthenticatedMessage)
			}

			usr, err := users.GetByID(ctx, userID)
			if err != nil {
				if errors.Is(err, usersrepo.ErrNotFound) {
					log.DebugContext(ctx, "token subject rejected", "user_id", userID, "err", err)
					return errs.Newf(errs.Unauthenticated, unauthenticatedMessage)
				}
				return errs.New(errs.Internal, fmt.Errorf("authenticate: %w", err))
			}

			return next(setUser(ctx, usr), r)
		}
	}
}
