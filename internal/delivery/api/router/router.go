// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"taskboard/config"
	"taskboard/internal/delivery/api/router/handler"
	"taskboard/internal/delivery/middleware"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	AuthHandler       *handler.AuthHandler
	UserHandler       *handler.UserHandler
	TaskHandler       *handler.TaskHandler
	UserTaskHandler   *handler.UserTaskHandler
	MetricsMiddleware *middleware.MetricsMiddleware
	Config            *config.Config
}

// router holds all the handlers that need to be registered.
type router struct {
	authHandler       *handler.AuthHandler
	userHandler       *handler.UserHandler
	taskHandler       *handler.TaskHandler
	userTaskHandler   *handler.UserTaskHandler
	metricsMiddleware *middleware.MetricsMiddleware
	config            *config.Config
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		authHandler:       params.AuthHandler,
		userHandler:       params.UserHandler,
		taskHandler:       params.TaskHandler,
		userTaskHandler:   params.UserTaskHandler,
		metricsMiddleware: params.MetricsMiddleware,
		config:            params.Config,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	// Auth routes
	authGroup := e.Group("/auth")
	{
		authGroup.POST("/register", r.authHandler.Register)
		authGroup.POST("/login", r.authHandler.Login)
		authGroup.PATCH("/login", r.authHandler.Login)
		authGroup.PATCH("/logout", r.authHandler.Logout)
	}

	// User administration
	usersGroup := e.Group("/users")
	{
		usersGroup.POST("", r.userHandler.Create)
		usersGroup.GET("", r.userHandler.Find)
		usersGroup.PATCH("", r.userHandler.UpdateAll)
		usersGroup.GET("/count", r.userHandler.Count)
		usersGroup.GET("/:id", r.userHandler.FindByID)
		usersGroup.PATCH("/:id", r.userHandler.UpdateByID)
		usersGroup.PUT("/:id", r.userHandler.ReplaceByID)
		usersGroup.DELETE("/:id", r.userHandler.DeleteByID)

		// Tasks scoped to one user
		usersGroup.POST("/:userId/dashboard", r.userTaskHandler.Create)
		usersGroup.GET("/:userId/dashboard", r.userTaskHandler.List)
		usersGroup.GET("/:userId/dashboard/:id", r.userTaskHandler.Get)
		usersGroup.PATCH("/:userId/dashboard/:id", r.userTaskHandler.UpdateByID)
		usersGroup.DELETE("/:userId/dashboard/:id", r.userTaskHandler.DeleteByID)
	}

	// Unscoped task routes
	dashboardGroup := e.Group("/dashboard")
	{
		dashboardGroup.POST("", r.taskHandler.Create)
		dashboardGroup.GET("", r.taskHandler.Find)
		dashboardGroup.PATCH("", r.taskHandler.UpdateAll)
		dashboardGroup.GET("/count", r.taskHandler.Count)
		dashboardGroup.GET("/:id", r.taskHandler.FindByID)
		dashboardGroup.PATCH("/:id", r.taskHandler.UpdateByID)
		dashboardGroup.PUT("/:id", r.taskHandler.ReplaceByID)
		dashboardGroup.DELETE("/:id", r.taskHandler.DeleteByID)
	}

	e.GET("/tasks/:id/user", r.taskHandler.FindOwner)
}

// RegisterMetricsRoute exposes Prometheus metrics when enabled.
func (r *router) RegisterMetricsRoute(e *echo.Echo) {
	if r.metricsMiddleware == nil || !r.metricsMiddleware.Enabled() {
		return
	}

	path := r.config.Metrics.Path
	if path == "" {
		path = config.DefaultMetricsPath
	}
	e.GET(path, r.metricsMiddleware.Handler())
}
