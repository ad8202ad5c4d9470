package handlers

import (
	"github.com/anonto42/nano-midea/discovery/internal/discovery"
	"github.com/anonto42/nano-midea/discovery/internal/middleware"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

// FeedHandler serves the viewer's own timelines
type FeedHandler struct {
	engine *discovery.Engine
	logger zerolog.Logger
}

// NewFeedHandler creates a new FeedHandler
func NewFeedHandler(engine *discovery.Engine, logger zerolog.Logger) *FeedHandler {
	return &FeedHandler{engine: engine, logger: logger}
}

// RegisterFeedRoutes registers feed-related routes
func (h *FeedHandler) RegisterFeedRoutes(g *echo.Group) {
	g.GET("/feed", h.GetFeed)
	g.GET("/archive", h.GetArchivedPosts)
}

// GetFeed returns posts by the viewer and the people they follow, newest first
func (h *FeedHandler) GetFeed(c echo.Context) error {
	var q pageQuery
	if err := bindAndValidate(c, &q); err != nil {
		return err
	}

	posts, err := h.engine.GetFeed(c.Request().Context(), middleware.ViewerFromContext(c), q.limit(), q.Offset)
	if err != nil {
		return engineError(c, h.logger, err)
	}
	return success(c, echo.Map{"posts": posts}, pageMeta(q, len(posts)))
}

// GetArchivedPosts returns the viewer's archived posts
func (h *FeedHandler) GetArchivedPosts(c echo.Context) error {
	var q pageQuery
	if err := bindAndValidate(c, &q); err != nil {
		return err
	}

	posts, err := h.engine.GetArchivedPosts(c.Request().Context(), middleware.ViewerFromContext(c), q.limit(), q.Offset)
	if err != nil {
		return engineError(c, h.logger, err)
	}
	return success(c, echo.Map{"posts": posts}, pageMeta(q, len(posts)))
}
