package handlers

import (
	"github.com/anonto42/nano-midea/discovery/internal/discovery"
	"github.com/anonto42/nano-midea/discovery/internal/middleware"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

type limitQuery struct {
	Limit uint32 `query:"limit" validate:"omitempty,min=1,max=100"`
}

func (q limitQuery) limit() uint32 {
	return pageQuery{Limit: q.Limit}.limit()
}

// ExploreHandler serves the ranked surfaces: explore and trending
type ExploreHandler struct {
	engine *discovery.Engine
	logger zerolog.Logger
}

func NewExploreHandler(engine *discovery.Engine, logger zerolog.Logger) *ExploreHandler {
	return &ExploreHandler{engine: engine, logger: logger}
}

func (h *ExploreHandler) RegisterExploreRoutes(g *echo.Group) {
	g.GET("/explore", h.GetExplore)
	g.GET("/trending/posts", h.GetTrendingPosts)
	g.GET("/trending/hashtags", h.GetTrendingHashtags)
}

func (h *ExploreHandler) GetExplore(c echo.Context) error {
	var q limitQuery
	if err := bindAndValidate(c, &q); err != nil {
		return err
	}
	posts, err := h.engine.GetExploreContent(c.Request().Context(), middleware.ViewerFromContext(c), q.limit())
	if err != nil {
		return engineError(c, h.logger, err)
	}
	return success(c, echo.Map{"posts": posts}, echo.Map{"limit": q.limit(), "count": len(posts)})
}

func (h *ExploreHandler) GetTrendingPosts(c echo.Context) error {
	var q limitQuery
	if err := bindAndValidate(c, &q); err != nil {
		return err
	}
	posts, err := h.engine.GetTrendingPosts(c.Request().Context(), q.limit())
	if err != nil {
		return engineError(c, h.logger, err)
	}
	return success(c, echo.Map{"posts": posts}, echo.Map{"limit": q.limit(), "count": len(posts)})
}

func (h *ExploreHandler) GetTrendingHashtags(c echo.Context) error {
	var q limitQuery
	if err := bindAndValidate(c, &q); err != nil {
		return err
	}
	tags, err := h.engine.GetTrendingHashtags(c.Request().Context(), q.limit())
	if err != nil {
		return engineError(c, h.logger, err)
	}
	return success(c, echo.Map{"hashtags": tags}, echo.Map{"limit": q.limit(), "count": len(tags)})
}
