package routes

import (
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"synthflow/controllers"
	"synthflow/middlewares"
)

// Controllers groups everything RegisterRoutes wires up.
type Controllers struct {
	Auth     *controllers.AuthController
	OAuth    *controllers.OAuthController
	Workflow *controllers.WorkflowController
	Health   *controllers.HealthController
}

// RegisterRoutes initializes all API routes.
func RegisterRoutes(e *echo.Echo, c Controllers, authMW *middlewares.AuthMiddleware) {
	// Public routes
	e.GET("/", c.Health.Root)
	e.GET("/api/health", c.Health.Health)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	authGroup := e.Group("/api/auth")
	authGroup.POST("/google", c.Auth.GoogleLogin)
	authGroup.POST("/refresh", c.Auth.Refresh)
	authGroup.POST("/logout", c.Auth.Logout)
	authGroup.GET("/google/login", c.OAuth.Login)
	authGroup.GET("/google/callback", c.OAuth.Callback)

	// Protected routes
	authGroup.GET("/me", c.Auth.Me, authMW.RequireAuth())

	workflows := e.Group("/api/workflows", authMW.RequireAuth())
	workflows.POST("", c.Workflow.Create)
	workflows.GET("", c.Workflow.List)
	workflows.GET("/:id", c.Workflow.Get)
	workflows.PUT("/:id", c.Workflow.Update)
	workflows.DELETE("/:id", c.Workflow.Delete)
}
