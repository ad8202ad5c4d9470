package router

import (
	"github.com/anonto42/nano-midea/discovery/internal/discovery"
	"github.com/anonto42/nano-midea/discovery/internal/handlers"
	"github.com/anonto42/nano-midea/discovery/internal/middleware"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

// Dependencies are the collaborators the routes are built from
type Dependencies struct {
	Engine        *discovery.Engine
	Authenticator middleware.Authenticator
	Logger        zerolog.Logger
}

// SetupRoutes configures all application routes and injects dependencies
func SetupRoutes(e *echo.Echo, deps Dependencies) {
	logger := deps.Logger

	// Health check - always accessible
	e.GET("/health", handlers.HealthCheck)

	// Every discovery route accepts anonymous viewers; operations that need
	// one answer 401 themselves.
	api := e.Group("/api/v1")
	api.Use(middleware.OptionalAuth(deps.Authenticator))

	handlers.NewFeedHandler(deps.Engine, logger).RegisterFeedRoutes(api)
	handlers.NewExploreHandler(deps.Engine, logger).RegisterExploreRoutes(api)
	handlers.NewUserHandler(deps.Engine, logger).RegisterUserRoutes(api)
	handlers.NewStoryHandler(deps.Engine, logger).RegisterStoryRoutes(api)
	handlers.NewPostHandler(deps.Engine, logger).RegisterPostRoutes(api)
	handlers.NewSearchHandler(deps.Engine, logger).RegisterSearchRoutes(api)
	handlers.NewLocationHandler(deps.Engine, logger).RegisterLocationRoutes(api)

	logger.Info().Int("routes", len(e.Routes())).Msg("all routes configured")
}
