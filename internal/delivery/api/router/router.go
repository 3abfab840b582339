// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"jobboard/internal/delivery/api/middleware"
	"jobboard/internal/delivery/api/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	UserHandler    *handler.UserHandler
	JobHandler     *handler.JobHandler
	AuthMiddleware *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	userHandler    *handler.UserHandler
	jobHandler     *handler.JobHandler
	authMiddleware *middleware.AuthMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		userHandler:    params.UserHandler,
		jobHandler:     params.JobHandler,
		authMiddleware: params.AuthMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", handler.HealthCheck)

	api := e.Group("/api")
	{
		api.POST("/register", r.userHandler.Register)
		api.POST("/login", r.userHandler.Login)

		api.GET("/jobs", r.jobHandler.ListJobs)
		api.POST("/jobs", r.jobHandler.CreateJob, r.authMiddleware.Authenticate)
	}
}
