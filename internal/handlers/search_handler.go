package handlers

import (
	"github.com/anonto42/nano-midea/discovery/internal/discovery"
	"github.com/anonto42/nano-midea/discovery/internal/models"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

type searchQuery struct {
	Query    string `query:"q" validate:"required,max=100"`
	Category string `query:"type" validate:"search_category"`
}

// SearchHandler serves the combined search endpoint
type SearchHandler struct {
	engine *discovery.Engine
	logger zerolog.Logger
}

func NewSearchHandler(engine *discovery.Engine, logger zerolog.Logger) *SearchHandler {
	return &SearchHandler{engine: engine, logger: logger}
}

func (h *SearchHandler) RegisterSearchRoutes(g *echo.Group) {
	g.GET("/search", h.Search)
}

// Search matches users, posts, hashtags and locations. type selects one
// category; without it every category is searched.
func (h *SearchHandler) Search(c echo.Context) error {
	var q searchQuery
	if err := bindAndValidate(c, &q); err != nil {
		return err
	}
	category, _ := models.ParseSearchCategory(q.Category)

	results, err := h.engine.SearchContent(c.Request().Context(), q.Query, category)
	if err != nil {
		return engineError(c, h.logger, err)
	}
	return success(c, results, echo.Map{"query": q.Query, "type": category})
}
