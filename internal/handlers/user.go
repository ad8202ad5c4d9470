package handlers

import (
	"github.com/anonto42/nano-midea/discovery/internal/discovery"
	"github.com/anonto42/nano-midea/discovery/internal/middleware"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

// UserHandler serves people-centric discovery: suggestions and profile grids
type UserHandler struct {
	engine *discovery.Engine
	logger zerolog.Logger
}

func NewUserHandler(engine *discovery.Engine, logger zerolog.Logger) *UserHandler {
	return &UserHandler{engine: engine, logger: logger}
}

func (h *UserHandler) RegisterUserRoutes(g *echo.Group) {
	g.GET("/users/suggested", h.GetSuggestedUsers)
	g.GET("/users/:id/posts", h.GetUserPosts)
}

// GetSuggestedUsers returns accounts the viewer might want to follow
func (h *UserHandler) GetSuggestedUsers(c echo.Context) error {
	var q limitQuery
	if err := bindAndValidate(c, &q); err != nil {
		return err
	}
	users, err := h.engine.GetSuggestedUsers(c.Request().Context(), middleware.ViewerFromContext(c), q.limit())
	if err != nil {
		return engineError(c, h.logger, err)
	}
	return success(c, echo.Map{"users": users}, echo.Map{"limit": q.limit(), "count": len(users)})
}

type userPostsQuery struct {
	UserID string `param:"id" validate:"required"`
	Limit  uint32 `query:"limit" validate:"omitempty,min=1,max=100"`
	Offset uint32 `query:"offset"`
}

func (q userPostsQuery) page() pageQuery {
	return pageQuery{Limit: q.Limit, Offset: q.Offset}
}

// GetUserPosts returns the posts of a profile visible to the viewer
func (h *UserHandler) GetUserPosts(c echo.Context) error {
	var q userPostsQuery
	if err := bindAndValidate(c, &q); err != nil {
		return err
	}
	page := q.page()
	posts, err := h.engine.GetUserPosts(c.Request().Context(), middleware.ViewerFromContext(c), q.UserID, page.limit(), page.Offset)
	if err != nil {
		return engineError(c, h.logger, err)
	}
	return success(c, echo.Map{"posts": posts}, pageMeta(page, len(posts)))
}
