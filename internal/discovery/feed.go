package discovery

import (
	"context"
	"sort"
	"time"

	"github.com/anonto42/nano-midea/discovery/internal/metrics"
	"github.com/anonto42/nano-midea/discovery/internal/models"
	"github.com/anonto42/nano-midea/discovery/internal/repositories"
)

// GetFeed returns the viewer's home feed: visible posts by the viewer and by
// everyone they follow, newest first.
func (e *Engine) GetFeed(ctx context.Context, viewer string, limit, offset uint32) ([]models.Content, error) {
	const op = "feed"
	if viewer == "" {
		e.finish(ctx, op, time.Now(), ErrUnauthenticated)
		return nil, ErrUnauthenticated
	}

	var feed []models.Content
	err := e.view(ctx, op, func(ctx context.Context, r repositories.Reader) error {
		following, err := r.GetFollowing(ctx, viewer)
		if err != nil {
			return err
		}
		authors := make([]string, 0, len(following)+1)
		authors = append(authors, viewer)
		for id := range following {
			if id != viewer {
				authors = append(authors, id)
			}
		}
		sort.Strings(authors)

		var candidates []models.Content
		for _, author := range authors {
			items, err := r.GetContentByOwner(ctx, author)
			if err != nil {
				return err
			}
			candidates = append(candidates, items...)
		}
		metrics.RecordCandidates(op, len(candidates))

		scope := newAccessScope(viewer, r)
		visible, err := scope.filterVisible(ctx, candidates, (*models.Content).Listable)
		if err != nil {
			return err
		}
		sortByRecency(visible)
		feed = paginate(visible, limit, offset)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return feed, nil
}
