package handlers

import (
	"github.com/anonto42/nano-midea/discovery/internal/discovery"
	"github.com/anonto42/nano-midea/discovery/internal/middleware"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

// PostHandler serves single posts and hashtag listings
type PostHandler struct {
	engine *discovery.Engine
	logger zerolog.Logger
}

// NewPostHandler creates a new PostHandler
func NewPostHandler(engine *discovery.Engine, logger zerolog.Logger) *PostHandler {
	return &PostHandler{engine: engine, logger: logger}
}

// RegisterPostRoutes registers post-related routes
func (h *PostHandler) RegisterPostRoutes(g *echo.Group) {
	g.GET("/posts/:id", h.GetPost)
	g.GET("/hashtags/:tag/posts", h.GetPostsByHashtag)
}

// GetPost returns one post if the viewer may see it
func (h *PostHandler) GetPost(c echo.Context) error {
	post, err := h.engine.GetPost(c.Request().Context(), middleware.ViewerFromContext(c), c.Param("id"))
	if err != nil {
		return engineError(c, h.logger, err)
	}
	return success(c, post, nil)
}

type hashtagPostsQuery struct {
	Tag    string `param:"tag" validate:"required,max=100"`
	Limit  uint32 `query:"limit" validate:"omitempty,min=1,max=100"`
	Offset uint32 `query:"offset"`
}

func (q hashtagPostsQuery) page() pageQuery {
	return pageQuery{Limit: q.Limit, Offset: q.Offset}
}

// GetPostsByHashtag returns public posts carrying a hashtag
func (h *PostHandler) GetPostsByHashtag(c echo.Context) error {
	var q hashtagPostsQuery
	if err := bindAndValidate(c, &q); err != nil {
		return err
	}
	page := q.page()
	posts, err := h.engine.GetPostsByHashtag(c.Request().Context(), q.Tag, page.limit(), page.Offset)
	if err != nil {
		return engineError(c, h.logger, err)
	}
	return success(c, echo.Map{"hashtag": q.Tag, "posts": posts}, pageMeta(page, len(posts)))
}
