package discovery

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/anonto42/nano-midea/discovery/internal/geo"
	"github.com/anonto42/nano-midea/discovery/internal/metrics"
	"github.com/anonto42/nano-midea/discovery/internal/models"
	"github.com/anonto42/nano-midea/discovery/internal/repositories"
)

// MaxQueryLength bounds free-text queries, in characters
const MaxQueryLength = 100

// nearbyDegrees is how far apart, in degrees of both latitude and longitude, two
// tags may be and still name the same place
const nearbyDegrees = 0.01

// locationAggregate deduplicates location tags by geo.LocationKey and counts the
// posts seen for each.
type locationAggregate struct {
	byKey map[string]*models.LocationTag
}

func newLocationAggregate() *locationAggregate {
	return &locationAggregate{byKey: make(map[string]*models.LocationTag)}
}

func (a *locationAggregate) add(tag *models.LocationTag) {
	key := geo.LocationKey(tag.Name, tag.Latitude, tag.Longitude)
	if agg, ok := a.byKey[key]; ok {
		agg.PostsCount++
		return
	}
	a.byKey[key] = &models.LocationTag{
		Name:       tag.Name,
		Latitude:   tag.Latitude,
		Longitude:  tag.Longitude,
		PlaceID:    tag.PlaceID,
		PostsCount: 1,
	}
}

type keyedLocation struct {
	key string
	tag models.LocationTag
}

// sorted returns the aggregate ordered by less, falling back to name then key
func (a *locationAggregate) sorted(less func(x, y *models.LocationTag) (bool, bool)) []models.LocationTag {
	entries := make([]keyedLocation, 0, len(a.byKey))
	for k, v := range a.byKey {
		entries = append(entries, keyedLocation{key: k, tag: *v})
	}
	sort.Slice(entries, func(i, j int) bool {
		if less != nil {
			if decided, result := less(&entries[i].tag, &entries[j].tag); decided {
				return result
			}
		}
		if entries[i].tag.PostsCount != entries[j].tag.PostsCount {
			return entries[i].tag.PostsCount > entries[j].tag.PostsCount
		}
		if entries[i].tag.Name != entries[j].tag.Name {
			return entries[i].tag.Name < entries[j].tag.Name
		}
		return entries[i].key < entries[j].key
	})
	out := make([]models.LocationTag, len(entries))
	for i := range entries {
		out[i] = entries[i].tag
	}
	return out
}

func validateQuery(query string) (string, error) {
	q := strings.TrimSpace(query)
	if q == "" {
		return "", fmt.Errorf("%w: query is required", ErrValidation)
	}
	if utf8.RuneCountInString(q) > MaxQueryLength {
		return "", fmt.Errorf("%w: query longer than %d characters", ErrValidation, MaxQueryLength)
	}
	return q, nil
}

// GetNearbyLocations aggregates tagged posts within radiusKm of (lat, lon),
// most used places first.
func (e *Engine) GetNearbyLocations(ctx context.Context, lat, lon, radiusKm float64) ([]models.LocationTag, error) {
	const op = "nearby_locations"
	if !geo.ValidCoordinates(lat, lon) {
		err := fmt.Errorf("%w: coordinates out of range", ErrValidation)
		e.finish(ctx, op, time.Now(), err)
		return nil, err
	}
	if math.IsNaN(radiusKm) || radiusKm < 0 {
		err := fmt.Errorf("%w: radius must be non-negative", ErrValidation)
		e.finish(ctx, op, time.Now(), err)
		return nil, err
	}

	var out []models.LocationTag
	err := e.view(ctx, op, func(ctx context.Context, r repositories.Reader) error {
		all, err := r.GetAllContent(ctx)
		if err != nil {
			return err
		}
		metrics.RecordCandidates(op, len(all))

		agg := newLocationAggregate()
		for i := range all {
			c := &all[i]
			if !c.Listable() || c.Location == nil {
				continue
			}
			if geo.HaversineKm(lat, lon, c.Location.Latitude, c.Location.Longitude) <= radiusKm {
				agg.add(c.Location)
			}
		}
		out = agg.sorted(nil)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// SearchLocations finds places whose name contains query. Exact name matches
// come first, then the most used places.
func (e *Engine) SearchLocations(ctx context.Context, query string, limit uint32) ([]models.LocationTag, error) {
	const op = "search_locations"
	q, err := validateQuery(query)
	if err != nil {
		e.finish(ctx, op, time.Now(), err)
		return nil, err
	}

	var out []models.LocationTag
	err = e.view(ctx, op, func(ctx context.Context, r repositories.Reader) error {
		var merr error
		out, merr = matchLocations(ctx, r, q, limit)
		return merr
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func matchLocations(ctx context.Context, r repositories.ContentReader, query string, limit uint32) ([]models.LocationTag, error) {
	all, err := r.GetAllContent(ctx)
	if err != nil {
		return nil, err
	}
	metrics.RecordCandidates("match_locations", len(all))

	q := strings.ToLower(query)
	agg := newLocationAggregate()
	for i := range all {
		c := &all[i]
		if !c.Listable() || c.Location == nil {
			continue
		}
		if strings.Contains(strings.ToLower(c.Location.Name), q) {
			agg.add(c.Location)
		}
	}
	exactFirst := func(x, y *models.LocationTag) (bool, bool) {
		ex, ey := strings.EqualFold(x.Name, query), strings.EqualFold(y.Name, query)
		if ex != ey {
			return true, ex
		}
		return false, false
	}
	return truncate(agg.sorted(exactFirst), limit), nil
}

// LocationFilter selects posts by place name, coordinates, or both. A post
// matches when its location name contains Name or it lies within 0.01 degrees
// of the coordinates.
type LocationFilter struct {
	Name           string
	Latitude       float64
	Longitude      float64
	HasCoordinates bool
}

func (f LocationFilter) matches(tag *models.LocationTag) bool {
	if f.Name != "" && strings.Contains(strings.ToLower(tag.Name), strings.ToLower(f.Name)) {
		return true
	}
	return f.HasCoordinates &&
		math.Abs(tag.Latitude-f.Latitude) < nearbyDegrees &&
		math.Abs(tag.Longitude-f.Longitude) < nearbyDegrees
}

// GetPostsByLocation lists public posts tagged at a place, newest first
func (e *Engine) GetPostsByLocation(ctx context.Context, filter LocationFilter, limit, offset uint32) ([]models.Content, error) {
	const op = "posts_by_location"
	filter.Name = strings.TrimSpace(filter.Name)
	var verr error
	switch {
	case filter.Name == "" && !filter.HasCoordinates:
		verr = fmt.Errorf("%w: location name or coordinates required", ErrValidation)
	case utf8.RuneCountInString(filter.Name) > MaxQueryLength:
		verr = fmt.Errorf("%w: location name longer than %d characters", ErrValidation, MaxQueryLength)
	case filter.HasCoordinates && !geo.ValidCoordinates(filter.Latitude, filter.Longitude):
		verr = fmt.Errorf("%w: coordinates out of range", ErrValidation)
	}
	if verr != nil {
		e.finish(ctx, op, time.Now(), verr)
		return nil, verr
	}

	var out []models.Content
	err := e.view(ctx, op, func(ctx context.Context, r repositories.Reader) error {
		all, err := r.GetAllContent(ctx)
		if err != nil {
			return err
		}
		metrics.RecordCandidates(op, len(all))

		matched := make([]models.Content, 0)
		for i := range all {
			c := &all[i]
			if isPublicPost(c) && c.Location != nil && filter.matches(c.Location) {
				matched = append(matched, *c)
			}
		}
		sortByRecency(matched)
		out = paginate(matched, limit, offset)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
