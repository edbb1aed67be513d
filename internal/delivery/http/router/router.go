// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"helios/internal/delivery/http/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	AccountHandler *handler.AccountHandler
}

// router holds all the handlers that need to be registered.
type router struct {
	accountHandler *handler.AccountHandler
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		accountHandler: params.AccountHandler,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	// Auth routes
	authGroup := e.Group("/auth")
	{
		authGroup.POST("/register", r.accountHandler.Register)
		authGroup.POST("/login", r.accountHandler.Login)
	}

	// Account lifecycle routes
	accountGroup := e.Group("/accounts")
	{
		accountGroup.GET("", r.accountHandler.List)
		accountGroup.GET("/:id", r.accountHandler.Get)
		accountGroup.PUT("/:id", r.accountHandler.Update)
		accountGroup.DELETE("/:id", r.accountHandler.Delete)
	}
}
