package discovery

import (
	"context"
	"sort"

	"github.com/anonto42/nano-midea/discovery/internal/metrics"
	"github.com/anonto42/nano-midea/discovery/internal/models"
	"github.com/anonto42/nano-midea/discovery/internal/repositories"
)

const (
	msPerHour      = 3_600_000
	decayHalfHours = 24.0
)

// ExploreScore weighs engagement (shares count double) by a recency decay that
// halves the score after one day. Content dated in the future counts as new.
func ExploreScore(c *models.Content, nowMs int64) float64 {
	weighted := float64(c.LikesCount + c.CommentsCount + 2*c.SharesCount)
	ageMs := nowMs - c.CreatedAt
	if ageMs < 0 {
		ageMs = 0
	}
	ageHours := float64(ageMs) / msPerHour
	timeFactor := 1 / (1 + ageHours/decayHalfHours)
	return weighted * timeFactor
}

func isPublicPost(c *models.Content) bool {
	return c.Listable() && c.Visibility == models.VisibilityPublic
}

// GetTrendingPosts returns public posts ordered by raw engagement
func (e *Engine) GetTrendingPosts(ctx context.Context, limit uint32) ([]models.Content, error) {
	const op = "trending_posts"
	var out []models.Content
	err := e.view(ctx, op, func(ctx context.Context, r repositories.Reader) error {
		all, err := r.GetAllContent(ctx)
		if err != nil {
			return err
		}
		metrics.RecordCandidates(op, len(all))

		public := make([]models.Content, 0, len(all))
		for i := range all {
			if isPublicPost(&all[i]) {
				public = append(public, all[i])
			}
		}
		sort.SliceStable(public, func(i, j int) bool {
			ei, ej := public[i].Engagement(), public[j].Engagement()
			if ei != ej {
				return ei > ej
			}
			return public[i].ID < public[j].ID
		})
		out = truncate(public, limit)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

type scoredContent struct {
	content models.Content
	score   float64
}

// GetExploreContent returns public posts ranked by ExploreScore. An
// authenticated viewer only sees content from people they do not follow yet.
func (e *Engine) GetExploreContent(ctx context.Context, viewer string, limit uint32) ([]models.Content, error) {
	const op = "explore"
	now := e.clock.NowMs()
	var out []models.Content
	err := e.view(ctx, op, func(ctx context.Context, r repositories.Reader) error {
		exclude := repositories.NewIDSet()
		if viewer != "" {
			following, err := r.GetFollowing(ctx, viewer)
			if err != nil {
				return err
			}
			exclude = repositories.NewIDSet(viewer)
			for id := range following {
				exclude[id] = struct{}{}
			}
		}

		all, err := r.GetAllContent(ctx)
		if err != nil {
			return err
		}
		metrics.RecordCandidates(op, len(all))

		scored := make([]scoredContent, 0, len(all))
		for i := range all {
			c := &all[i]
			if !isPublicPost(c) || exclude.Has(c.OwnerID) {
				continue
			}
			scored = append(scored, scoredContent{content: *c, score: ExploreScore(c, now)})
		}
		sort.SliceStable(scored, func(i, j int) bool {
			if scored[i].score != scored[j].score {
				return scored[i].score > scored[j].score
			}
			return scored[i].content.ID < scored[j].content.ID
		})

		scored = truncate(scored, limit)
		out = make([]models.Content, len(scored))
		for i, s := range scored {
			out[i] = s.content
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// GetTrendingHashtags returns the most used hashtags
func (e *Engine) GetTrendingHashtags(ctx context.Context, limit uint32) ([]models.Hashtag, error) {
	const op = "trending_hashtags"
	var out []models.Hashtag
	err := e.view(ctx, op, func(ctx context.Context, r repositories.Reader) error {
		tags, err := r.SearchHashtags(ctx, "")
		if err != nil {
			return err
		}
		metrics.RecordCandidates(op, len(tags))
		sortHashtags(tags)
		out = truncate(tags, limit)
		for i := range out {
			out[i].IsTrending = true
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// sortHashtags orders by post count descending, then name
func sortHashtags(tags []models.Hashtag) {
	sort.SliceStable(tags, func(i, j int) bool {
		if tags[i].PostsCount != tags[j].PostsCount {
			return tags[i].PostsCount > tags[j].PostsCount
		}
		return tags[i].Name < tags[j].Name
	})
}
