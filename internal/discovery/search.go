package discovery

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/anonto42/nano-midea/discovery/internal/metrics"
	"github.com/anonto42/nano-midea/discovery/internal/models"
	"github.com/anonto42/nano-midea/discovery/internal/repositories"
)

const (
	allCategoryLimit    = 10
	singleCategoryLimit = 50
)

// SearchContent fans query out to the matchers selected by category. All runs
// every matcher with a small limit; a single category gets a larger one. Audio
// currently matches posts the same way Posts does.
func (e *Engine) SearchContent(ctx context.Context, query string, category models.SearchCategory) (models.SearchResults, error) {
	const op = "search"
	results := models.NewSearchResults()

	q, err := validateQuery(query)
	if err == nil {
		parsed, ok := models.ParseSearchCategory(string(category))
		if !ok {
			err = fmt.Errorf("%w: unknown search category %q", ErrValidation, category)
		}
		category = parsed
	}
	if err != nil {
		e.finish(ctx, op, time.Now(), err)
		return results, err
	}

	err = e.view(ctx, op, func(ctx context.Context, r repositories.Reader) error {
		var err error
		switch category {
		case models.SearchAll:
			if results.Users, err = matchUsers(ctx, r, q, allCategoryLimit); err != nil {
				return err
			}
			if results.Posts, err = matchPosts(ctx, r, q, allCategoryLimit); err != nil {
				return err
			}
			if results.Hashtags, err = matchHashtags(ctx, r, q, allCategoryLimit); err != nil {
				return err
			}
			results.Locations, err = matchLocations(ctx, r, q, allCategoryLimit)
		case models.SearchUsers:
			results.Users, err = matchUsers(ctx, r, q, singleCategoryLimit)
		case models.SearchPosts, models.SearchAudio:
			results.Posts, err = matchPosts(ctx, r, q, singleCategoryLimit)
		case models.SearchHashtags:
			results.Hashtags, err = matchHashtags(ctx, r, q, singleCategoryLimit)
		case models.SearchLocations:
			results.Locations, err = matchLocations(ctx, r, q, singleCategoryLimit)
		}
		return err
	})
	if err != nil {
		return models.NewSearchResults(), err
	}
	return results, nil
}

// matchUsers finds users whose username, display name or bio contains query.
// An exact username match ranks first, then the most followed.
func matchUsers(ctx context.Context, r repositories.UserReader, query string, limit uint32) ([]models.UserProfile, error) {
	users, err := r.GetAllUsers(ctx)
	if err != nil {
		return nil, err
	}
	metrics.RecordCandidates("match_users", len(users))

	q := strings.ToLower(query)
	matched := make([]models.UserProfile, 0)
	for i := range users {
		u := &users[i]
		if strings.Contains(strings.ToLower(u.Username), q) ||
			strings.Contains(strings.ToLower(u.DisplayName), q) ||
			strings.Contains(strings.ToLower(u.Bio), q) {
			matched = append(matched, *u)
		}
	}
	sort.SliceStable(matched, func(i, j int) bool {
		ei, ej := strings.EqualFold(matched[i].Username, query), strings.EqualFold(matched[j].Username, query)
		if ei != ej {
			return ei
		}
		if matched[i].FollowersCount != matched[j].FollowersCount {
			return matched[i].FollowersCount > matched[j].FollowersCount
		}
		return matched[i].ID < matched[j].ID
	})
	return truncate(matched, limit), nil
}

// matchPosts finds public posts whose caption or any hashtag contains query
func matchPosts(ctx context.Context, r repositories.ContentReader, query string, limit uint32) ([]models.Content, error) {
	all, err := r.GetAllContent(ctx)
	if err != nil {
		return nil, err
	}
	metrics.RecordCandidates("match_posts", len(all))

	q := strings.ToLower(query)
	matched := make([]models.Content, 0)
	for i := range all {
		c := &all[i]
		if isPublicPost(c) && postContains(c, q) {
			matched = append(matched, *c)
		}
	}
	sortByRecency(matched)
	return truncate(matched, limit), nil
}

func postContains(c *models.Content, lowerQuery string) bool {
	if strings.Contains(strings.ToLower(c.Caption), lowerQuery) {
		return true
	}
	for _, tag := range c.Hashtags {
		if strings.Contains(strings.ToLower(tag), lowerQuery) {
			return true
		}
	}
	return false
}

func matchHashtags(ctx context.Context, r repositories.HashtagIndex, query string, limit uint32) ([]models.Hashtag, error) {
	tags, err := r.SearchHashtags(ctx, strings.TrimPrefix(query, "#"))
	if err != nil {
		return nil, err
	}
	sortHashtags(tags)
	return truncate(tags, limit), nil
}
