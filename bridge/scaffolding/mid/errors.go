package mid

import (
	"context"
	"errors"
	"net/http"
	"path"

	"github.com/jrazmi/tasktrack/bridge/scaffolding/errs"
	"github.com/jrazmi/tasktrack/infrastructure/web"
	"github.com/jrazmi/tasktrack/sdk/logger"
)

// Errors handles errors coming out of the call chain.
func Errors(log *logger.Logger) web.Middleware {
	return func(next web.HandlerFunc) web.HandlerFunc {
		return func(ctx context.Context, r *http.Request) web.Encoder {
			resp := next(ctx, r)
			err := isError(resp)
			if err == nil {
				return resp
			}

			var appErr *errs.Error
			if !errors.As(err, &appErr) {
				appErr = errs.Newf(errs.Internal, "%s", err)
			}

			log.ErrorContext(ctx, "handled error during request",
				"err", err,
				"status", appErr.HTTPStatus(),
				"source_err_file", path.Base(appErr.FileName),
				"source_err_func", path.Base(appErr.FuncName))

			return appErr.Public()
		}
	}
}
