package discovery

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/anonto42/nano-midea/discovery/internal/metrics"
	"github.com/anonto42/nano-midea/discovery/internal/models"
	"github.com/anonto42/nano-midea/discovery/internal/repositories"
)

// storyActive reports whether a story is still showing at nowMs. Highlights
// never expire.
func storyActive(c *models.Content, nowMs int64) bool {
	return c.IsHighlight || c.ExpiresAt > nowMs
}

// GetPost returns one content item if the viewer may see it. Archived and
// expired items are only returned to their owner.
func (e *Engine) GetPost(ctx context.Context, viewer, id string) (*models.Content, error) {
	const op = "get_post"
	now := e.clock.NowMs()
	var out *models.Content
	err := e.view(ctx, op, func(ctx context.Context, r repositories.Reader) error {
		c, err := r.GetContent(ctx, id)
		if err != nil {
			return notFound(err)
		}
		owner := viewer != "" && viewer == c.OwnerID
		if !owner && (c.IsArchived || (c.Kind == models.KindStory && !storyActive(c, now))) {
			return ErrNotFound
		}
		ok, err := newAccessScope(viewer, r).canView(ctx, c)
		if err != nil {
			return err
		}
		if !ok {
			return ErrAccessDenied
		}
		out = c
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// GetUserPosts lists the posts of owner the viewer may see, newest first
func (e *Engine) GetUserPosts(ctx context.Context, viewer, owner string, limit, offset uint32) ([]models.Content, error) {
	const op = "user_posts"
	var out []models.Content
	err := e.view(ctx, op, func(ctx context.Context, r repositories.Reader) error {
		if _, err := r.GetUser(ctx, owner); err != nil {
			return notFound(err)
		}
		items, err := r.GetContentByOwner(ctx, owner)
		if err != nil {
			return err
		}
		metrics.RecordCandidates(op, len(items))

		visible, err := newAccessScope(viewer, r).filterVisible(ctx, items, (*models.Content).Listable)
		if err != nil {
			return err
		}
		sortByRecency(visible)
		out = paginate(visible, limit, offset)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// GetArchivedPosts lists the viewer's own archived posts, newest first
func (e *Engine) GetArchivedPosts(ctx context.Context, viewer string, limit, offset uint32) ([]models.Content, error) {
	const op = "archived_posts"
	if viewer == "" {
		e.finish(ctx, op, time.Now(), ErrUnauthenticated)
		return nil, ErrUnauthenticated
	}

	var out []models.Content
	err := e.view(ctx, op, func(ctx context.Context, r repositories.Reader) error {
		items, err := r.GetContentByOwner(ctx, viewer)
		if err != nil {
			return err
		}
		archived := make([]models.Content, 0)
		for i := range items {
			if items[i].Kind == models.KindPost && items[i].IsArchived {
				archived = append(archived, items[i])
			}
		}
		sortByRecency(archived)
		out = paginate(archived, limit, offset)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// GetPostsByHashtag lists public posts carrying tag, newest first. The leading
// '#' is optional and case is ignored.
func (e *Engine) GetPostsByHashtag(ctx context.Context, tag string, limit, offset uint32) ([]models.Content, error) {
	const op = "posts_by_hashtag"
	tag = strings.TrimPrefix(strings.TrimSpace(tag), "#")
	if _, err := validateQuery(tag); err != nil {
		err = fmt.Errorf("%w: invalid hashtag", err)
		e.finish(ctx, op, time.Now(), err)
		return nil, err
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
			if isPublicPost(c) && hasHashtag(c, tag) {
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

func hasHashtag(c *models.Content, tag string) bool {
	for _, t := range c.Hashtags {
		if strings.EqualFold(strings.TrimPrefix(t, "#"), tag) {
			return true
		}
	}
	return false
}

// GetUserStories returns the owner's active stories and highlights the viewer
// may see, newest first. A viewer the owner blocked is denied outright.
func (e *Engine) GetUserStories(ctx context.Context, viewer, owner string) ([]models.Content, error) {
	const op = "user_stories"
	now := e.clock.NowMs()
	var out []models.Content
	err := e.view(ctx, op, func(ctx context.Context, r repositories.Reader) error {
		if _, err := r.GetUser(ctx, owner); err != nil {
			return notFound(err)
		}
		if viewer != "" && viewer != owner {
			blocked, err := r.IsBlocked(ctx, owner, viewer)
			if err != nil {
				return err
			}
			if blocked {
				return ErrAccessDenied
			}
		}

		items, err := r.GetContentByOwner(ctx, owner)
		if err != nil {
			return err
		}
		active := func(c *models.Content) bool {
			return c.Kind == models.KindStory && !c.IsArchived && storyActive(c, now)
		}
		visible, err := newAccessScope(viewer, r).filterVisible(ctx, items, active)
		if err != nil {
			return err
		}
		sortByRecency(visible)
		out = visible
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
