// Package usersrepobridge exposes registration, login and profile management
// over HTTP.
package usersrepobridge

import (
	"time"

	"github.com/jrazmi/tasktrack/core/repositories/usersrepo"
	"github.com/jrazmi/tasktrack/infrastructure/web"
	"github.com/jrazmi/tasktrack/sdk/logger"
)

// TokenIssuer signs a token for a user id.
type TokenIssuer interface {
	GenerateToken(subject string) (string, time.Time, error)
}

// Config holds configuration for the User bridge
type Config struct {
	Log        *logger.Logger
	Repository *usersrepo.Repository
	Tokens     TokenIssuer

	// Authenticate guards /auth/me and /profile*.
	Authenticate web.Middleware

	// Throttle runs on the unauthenticated /auth/register and /auth/login.
	Throttle []web.Middleware
}

// AddHttpRoutes registers the /auth and /profile routes.
func AddHttpRoutes(group *web.RouteGroup, cfg Config) {
	b := newBridge(cfg.Log, cfg.Repository, cfg.Tokens)

	authGroup := group.Group("/auth")
	authGroup.POST("/register", b.httpRegister, cfg.Throttle...)
	authGroup.POST("/login", b.httpLogin, cfg.Throttle...)
	authGroup.GET("/me", b.httpMe, cfg.Authenticate)

	profile := group.Group("/profile", cfg.Authenticate)
	profile.GET("", b.httpMe)
	profile.PUT("", b.httpUpdateProfile)
	profile.PUT("/password", b.httpChangePassword)
}
