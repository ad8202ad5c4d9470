package handlers

import (
	"github.com/anonto42/nano-midea/discovery/internal/discovery"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

const defaultRadiusKm = 10.0

type nearbyQuery struct {
	Latitude  float64 `validate:"latitude"`
	Longitude float64 `validate:"longitude"`
	RadiusKm  float64 `validate:"gte=0,lte=20000"`
}

type locationSearchQuery struct {
	Query string `query:"q" validate:"required,max=100"`
	Limit uint32 `query:"limit" validate:"omitempty,min=1,max=100"`
}

// LocationHandler serves geospatial discovery
type LocationHandler struct {
	engine *discovery.Engine
	logger zerolog.Logger
}

func NewLocationHandler(engine *discovery.Engine, logger zerolog.Logger) *LocationHandler {
	return &LocationHandler{engine: engine, logger: logger}
}

func (h *LocationHandler) RegisterLocationRoutes(g *echo.Group) {
	g.GET("/locations/nearby", h.GetNearby)
	g.GET("/locations/search", h.Search)
	g.GET("/locations/posts", h.GetPosts)
}

// GetNearby aggregates tagged places around lat/lon within radius_km (default 10)
func (h *LocationHandler) GetNearby(c echo.Context) error {
	q := nearbyQuery{RadiusKm: defaultRadiusKm}
	err := echo.QueryParamsBinder(c).
		MustFloat64("lat", &q.Latitude).
		MustFloat64("lon", &q.Longitude).
		Float64("radius_km", &q.RadiusKm).
		BindError()
	if err != nil {
		return err
	}
	if err := c.Validate(&q); err != nil {
		return err
	}

	locations, err := h.engine.GetNearbyLocations(c.Request().Context(), q.Latitude, q.Longitude, q.RadiusKm)
	if err != nil {
		return engineError(c, h.logger, err)
	}
	return success(c, echo.Map{"locations": locations}, echo.Map{"radius_km": q.RadiusKm, "count": len(locations)})
}

// Search finds places by name
func (h *LocationHandler) Search(c echo.Context) error {
	var q locationSearchQuery
	if err := bindAndValidate(c, &q); err != nil {
		return err
	}
	limit := pageQuery{Limit: q.Limit}.limit()
	locations, err := h.engine.SearchLocations(c.Request().Context(), q.Query, limit)
	if err != nil {
		return engineError(c, h.logger, err)
	}
	return success(c, echo.Map{"locations": locations}, echo.Map{"limit": limit, "count": len(locations)})
}

// GetPosts lists public posts at a place, matched by name, by lat/lon, or both
func (h *LocationHandler) GetPosts(c echo.Context) error {
	var page pageQuery
	if err := bindAndValidate(c, &page); err != nil {
		return err
	}

	filter := discovery.LocationFilter{
		Name:           c.QueryParam("name"),
		HasCoordinates: c.QueryParam("lat") != "" || c.QueryParam("lon") != "",
	}
	if filter.HasCoordinates {
		err := echo.QueryParamsBinder(c).
			MustFloat64("lat", &filter.Latitude).
			MustFloat64("lon", &filter.Longitude).
			BindError()
		if err != nil {
			return err
		}
	}

	posts, err := h.engine.GetPostsByLocation(c.Request().Context(), filter, page.limit(), page.Offset)
	if err != nil {
		return engineError(c, h.logger, err)
	}
	return success(c, echo.Map{"posts": posts}, pageMeta(page, len(posts)))
}
