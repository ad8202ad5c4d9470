package handlers

import (
	"github.com/anonto42/nano-midea/discovery/internal/discovery"
	"github.com/anonto42/nano-midea/discovery/internal/middleware"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

// StoryHandler serves a profile's active stories and highlights
type StoryHandler struct {
	engine *discovery.Engine
	logger zerolog.Logger
}

func NewStoryHandler(engine *discovery.Engine, logger zerolog.Logger) *StoryHandler {
	return &StoryHandler{engine: engine, logger: logger}
}

func (h *StoryHandler) RegisterStoryRoutes(g *echo.Group) {
	g.GET("/users/:id/stories", h.GetUserStories)
}

func (h *StoryHandler) GetUserStories(c echo.Context) error {
	owner := c.Param("id")
	stories, err := h.engine.GetUserStories(c.Request().Context(), middleware.ViewerFromContext(c), owner)
	if err != nil {
		return engineError(c, h.logger, err)
	}
	return success(c, echo.Map{"stories": stories}, echo.Map{"count": len(stories)})
}
