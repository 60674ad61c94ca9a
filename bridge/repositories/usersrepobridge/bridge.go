package usersrepobridge

import (
	"context"
	"errors"
	"net/http"

	"github.com/jrazmi/tasktrack/bridge/scaffolding/errs"
	"github.com/jrazmi/tasktrack/bridge/scaffolding/fopbridge"
	"github.com/jrazmi/tasktrack/bridge/scaffolding/mid"
	"github.com/jrazmi/tasktrack/core/repositories/usersrepo"
	"github.com/jrazmi/tasktrack/infrastructure/web"
	"github.com/jrazmi/tasktrack/sdk/logger"
)

const (
	msgRegistered      = "Account created successfully."
	msgLoggedIn        = "Logged in successfully."
	msgEmailTaken      = "Email already registered."
	msgBadCredentials  = "Invalid email or password."
	msgProfileUpdated  = "Profile updated."
	msgWrongPassword   = "Current password is incorrect."
	msgPasswordChanged = "Password changed successfully."
)

type bridge struct {
	log             *logger.Logger
	usersRepository *usersrepo.Repository
	tokens          TokenIssuer
}

func newBridge(log *logger.Logger, usersRepository *usersrepo.Repository, tokens TokenIssuer) *bridge {
	return &bridge{
		log:             log,
		usersRepository: usersRepository,
		tokens:          tokens,
	}
}

func (b *bridge) httpRegister(ctx context.Context, r *http.Request) web.Encoder {
	var input RegisterInput
	if err := web.Decode(r, &input); err != nil {
		return decodeError(err)
	}

	usr, err := b.usersRepository.Register(ctx, MarshalRegisterToRepository(input))
	if err != nil {
		if errors.Is(err, usersrepo.ErrDuplicateEmail) {
			return errs.Newf(errs.AlreadyExists, msgEmailTaken)
		}
		return repositoryError("register", err)
	}

	return b.withToken(usr, msgRegistered, http.StatusCreated)
}

func (b *bridge) httpLogin(ctx context.Context, r *http.Request) web.Encoder {
	var input LoginInput
	if err := web.Decode(r, &input); err != nil {
		return decodeError(err)
	}

	usr, err := b.usersRepository.Authenticate(ctx, input.Email, input.Password)
	if err != nil {
		if errors.Is(err, usersrepo.ErrInvalidCredentials) {
			return errs.Newf(errs.Unauthenticated, msgBadCredentials)
		}
		return repositoryError("login", err)
	}

	return b.withToken(usr, msgLoggedIn, http.StatusOK)
}

func (b *bridge) httpMe(ctx context.Context, r *http.Request) web.Encoder {
	usr, err := mid.GetUser(ctx)
	if err != nil {
		return errs.New(errs.Unauthenticated, err)
	}
	return fopbridge.NewEnvelope("user", MarshalToBridge(usr))
}

func (b *bridge) httpUpdateProfile(ctx context.Context, r *http.Request) web.Encoder {
	userID, err := mid.GetUserID(ctx)
	if err != nil {
		return errs.New(errs.Unauthenticated, err)
	}

	var input UpdateProfileInput
	if err := web.Decode(r, &input); err != nil {
		return decodeError(err)
	}

	usr, err := b.usersRepository.UpdateProfile(ctx, userID, MarshalUpdateToRepository(input))
	if err != nil {
		return repositoryError("update profile", err)
	}

	return fopbridge.NewEnvelope("user", MarshalToBridge(usr)).WithMessage(msgProfileUpdated)
}

func (b *bridge) httpChangePassword(ctx context.Context, r *http.Request) web.Encoder {
	userID, err := mid.GetUserID(ctx)
	if err != nil {
		return errs.New(errs.Unauthenticated, err)
	}

	var input ChangePasswordInput
	if err := web.Decode(r, &input); err != nil {
		return decodeError(err)
	}

	if err := b.usersRepository.ChangePassword(ctx, userID, input.CurrentPassword, input.NewPassword); err != nil {
		if errors.Is(err, usersrepo.ErrWrongPassword) {
			return errs.Newf(errs.InvalidArgument, msgWrongPassword)
		}
		return repositoryError("change password", err)
	}

	return fopbridge.NewMessageResponse(msgPasswordChanged)
}

// =============================================================================

func (b *bridge) withToken(usr usersrepo.User, message string, status int) web.Encoder {
	token, _, err := b.tokens.GenerateToken(usr.ID)
	if err != nil {
		return errs.Newf(errs.Internal, "generate token: %s", err)
	}

	return fopbridge.NewEnvelope("user", MarshalToBridge(usr)).
		With("token", token).
		WithMessage(message).
		WithStatus(status)
}

func repositoryError(op string, err error) *errs.Error {
	if fe := errs.FromValidation(err); fe != nil {
		return fe
	}
	if errors.Is(err, usersrepo.ErrNotFound) {
		return errs.Newf(errs.NotFound, "User not found.")
	}
	if errors.Is(err, usersrepo.ErrDuplicateEmail) {
		return errs.Newf(errs.AlreadyExists, msgEmailTaken)
	}
	return errs.Newf(errs.Internal, "%s: %s", op, err)
}

func decodeError(err error) *errs.Error {
	if fe := errs.FromValidation(err); fe != nil {
		return fe
	}
	return errs.Newf(errs.InvalidArgument, "Invalid request body")
}
