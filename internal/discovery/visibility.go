package discovery

import (
	"context"

	"github.com/anonto42/nano-midea/discovery/internal/models"
	"github.com/anonto42/nano-midea/discovery/internal/repositories"
)

// accessScope answers visibility questions for one viewer within one request.
// Graph lookups are memoised here and nowhere else, so no decision outlives the
// request that made it.
type accessScope struct {
	viewer string
	graph  repositories.GraphReader

	follows      map[string]bool // owner -> viewer follows owner
	closeFriends map[string]bool // owner -> owner lists viewer as close friend
}

func newAccessScope(viewer string, graph repositories.GraphReader) *accessScope {
	return &accessScope{
		viewer:       viewer,
		graph:        graph,
		follows:      make(map[string]bool),
		closeFriends: make(map[string]bool),
	}
}

// canView reports whether the scope's viewer may see c. Block edges are not
// consulted here.
func (s *accessScope) canView(ctx context.Context, c *models.Content) (bool, error) {
	switch c.Visibility {
	case models.VisibilityPublic:
		return true, nil
	case models.VisibilityPrivate:
		return s.isOwner(c), nil
	case models.VisibilityFollowers:
		if s.viewer == "" {
			return false, nil
		}
		if s.isOwner(c) {
			return true, nil
		}
		return s.followsOwner(ctx, c.OwnerID)
	case models.VisibilityCloseFriends:
		if s.viewer == "" {
			return false, nil
		}
		if s.isOwner(c) {
			return true, nil
		}
		return s.isCloseFriendOf(ctx, c.OwnerID)
	}
	// unknown tiers are never visible
	return false, nil
}

func (s *accessScope) isOwner(c *models.Content) bool {
	return s.viewer != "" && s.viewer == c.OwnerID
}

func (s *accessScope) followsOwner(ctx context.Context, owner string) (bool, error) {
	if v, ok := s.follows[owner]; ok {
		return v, nil
	}
	v, err := s.graph.IsFollowing(ctx, s.viewer, owner)
	if err != nil {
		return false, err
	}
	s.follows[owner] = v
	return v, nil
}

func (s *accessScope) isCloseFriendOf(ctx context.Context, owner string) (bool, error) {
	if v, ok := s.closeFriends[owner]; ok {
		return v, nil
	}
	v, err := s.graph.IsCloseFriend(ctx, owner, s.viewer)
	if err != nil {
		return false, err
	}
	s.closeFriends[owner] = v
	return v, nil
}

// filterVisible keeps the items of items that pass keep and canView, in order
func (s *accessScope) filterVisible(ctx context.Context, items []models.Content, keep func(*models.Content) bool) ([]models.Content, error) {
	out := make([]models.Content, 0, len(items))
	for i := range items {
		c := &items[i]
		if keep != nil && !keep(c) {
			continue
		}
		ok, err := s.canView(ctx, c)
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, *c)
		}
	}
	return out, nil
}
