package repositories

import (
	"context"
	"errors"

	"github.com/anonto42/nano-midea/discovery/internal/models"
)

// ErrNotFound is returned by single-entity lookups when nothing matches
var ErrNotFound = errors.New("record not found")

// IDSet is an unordered set of user IDs
type IDSet map[string]struct{}

// NewIDSet builds a set from ids
func NewIDSet(ids ...string) IDSet {
	s := make(IDSet, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

// Has reports membership
func (s IDSet) Has(id string) bool {
	_, ok := s[id]
	return ok
}

// ContentReader is the read side of the content store
type ContentReader interface {
	GetContent(ctx context.Context, id string) (*models.Content, error)
	GetAllContent(ctx context.Context) ([]models.Content, error)
	GetContentByOwner(ctx context.Context, ownerID string) ([]models.Content, error)
}

// UserReader is the read side of the profile store
type UserReader interface {
	GetUser(ctx context.Context, id string) (*models.UserProfile, error)
	GetAllUsers(ctx context.Context) ([]models.UserProfile, error)
}

// GraphReader is the read side of the social graph store
type GraphReader interface {
	IsFollowing(ctx context.Context, followerID, followingID string) (bool, error)
	GetFollowing(ctx context.Context, userID string) (IDSet, error)
	GetFollowers(ctx context.Context, userID string) (IDSet, error)
	IsCloseFriend(ctx context.Context, ownerID, viewerID string) (bool, error)
	IsBlocked(ctx context.Context, blockerID, blockedID string) (bool, error)
	GetBlocked(ctx context.Context, blockerID string) (IDSet, error)
}

// HashtagIndex answers substring lookups over known hashtags
type HashtagIndex interface {
	SearchHashtags(ctx context.Context, substr string) ([]models.Hashtag, error)
}

// Reader is everything one discovery request may read
type Reader interface {
	ContentReader
	UserReader
	GraphReader
	HashtagIndex
}

// Store hands out consistent read snapshots. fn must use the context it is given,
// which may carry a database session.
type Store interface {
	View(ctx context.Context, fn func(ctx context.Context, r Reader) error) error
}

// Writer is the collaborator-side mutation surface used for seeding.
// DeleteContent and Unfollow return ErrNotFound when there is nothing to remove.
type Writer interface {
	PutUser(ctx context.Context, user *models.UserProfile) error
	PutContent(ctx context.Context, content *models.Content) error
	DeleteContent(ctx context.Context, id string) error
	Follow(ctx context.Context, followerID, followingID string) error
	Unfollow(ctx context.Context, followerID, followingID string) error
	AddCloseFriend(ctx context.Context, ownerID, friendID string) error
	Block(ctx context.Context, blockerID, blockedID string) error
	IndexHashtag(ctx context.Context, name string) error
}
