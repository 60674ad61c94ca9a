// Package tasksrepobridge exposes the task repository over HTTP.
package tasksrepobridge

import (
	"github.com/jrazmi/tasktrack/core/repositories/tasksrepo"
	"github.com/jrazmi/tasktrack/infrastructure/web"
	"github.com/jrazmi/tasktrack/sdk/logger"
)

// Config holds configuration for the Task bridge
type Config struct {
	Log        *logger.Logger
	Repository *tasksrepo.Repository

	// Middleware runs on every task route, after the group's middleware. The
	// routes require an authenticated user, so authentication belongs here
	// or on the group.
	Middleware []web.Middleware
}

// AddHttpRoutes registers all HTTP routes for Task
func AddHttpRoutes(group *web.RouteGroup, cfg Config) {
	b := newBridge(cfg.Log, cfg.Repository)
	tasks := group.Group("/tasks", cfg.Middleware...)

	tasks.GET("", b.httpList)
	tasks.GET("/{task_id}", b.httpGetByID)
	tasks.POST("", b.httpCreate)
	tasks.PUT("/{task_id}", b.httpUpdate)
	tasks.DELETE("/{task_id}", b.httpDelete)
}
