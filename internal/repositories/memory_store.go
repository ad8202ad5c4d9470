package repositories

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/anonto42/nano-midea/discovery/internal/models"
)

// MemoryStore keeps every collaborator store in process. A View holds the read
// lock for the whole request, so a request never observes a half-applied write.
type MemoryStore struct {
	mu           sync.RWMutex
	users        map[string]models.UserProfile
	content      map[string]models.Content
	following    map[string]IDSet
	followers    map[string]IDSet
	closeFriends map[string]IDSet
	blocked      map[string]IDSet
	hashtags     map[string]int64
}

var (
	_ Store  = (*MemoryStore)(nil)
	_ Writer = (*MemoryStore)(nil)
)

// NewMemoryStore creates an empty MemoryStore
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:        make(map[string]models.UserProfile),
		content:      make(map[string]models.Content),
		following:    make(map[string]IDSet),
		followers:    make(map[string]IDSet),
		closeFriends: make(map[string]IDSet),
		blocked:      make(map[string]IDSet),
		hashtags:     make(map[string]int64),
	}
}

// View runs fn against a read snapshot
func (s *MemoryStore) View(ctx context.Context, fn func(ctx context.Context, r Reader) error) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return fn(ctx, memoryReader{s: s})
}

// PutUser inserts or replaces a profile
func (s *MemoryStore) PutUser(_ context.Context, user *models.UserProfile) error {
	if user.ID == "" {
		return fmt.Errorf("user id is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[user.ID] = *user
	return nil
}

// PutContent inserts or replaces a content item; a new post bumps the owner's posts count
func (s *MemoryStore) PutContent(_ context.Context, c *models.Content) error {
	if c.ID == "" {
		return fmt.Errorf("content id is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	_, existed := s.content[c.ID]
	s.content[c.ID] = *c
	if !existed && c.Kind == models.KindPost {
		if u, ok := s.users[c.OwnerID]; ok {
			u.PostsCount++
			s.users[c.OwnerID] = u
		}
	}
	return nil
}

// DeleteContent hard-deletes a content item and decrements the owner's posts count
func (s *MemoryStore) DeleteContent(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.content[id]
	if !ok {
		return ErrNotFound
	}
	delete(s.content, id)
	if c.Kind == models.KindPost {
		if u, ok := s.users[c.OwnerID]; ok && u.PostsCount > 0 {
			u.PostsCount--
			s.users[c.OwnerID] = u
		}
	}
	return nil
}

// Follow adds a deduplicated Following edge and updates both profiles' counters
func (s *MemoryStore) Follow(_ context.Context, followerID, followingID string) error {
	if followerID == followingID {
		return fmt.Errorf("cannot follow yourself")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if !addEdge(s.following, followerID, followingID) {
		return nil
	}
	addEdge(s.followers, followingID, followerID)
	if u, ok := s.users[followerID]; ok {
		u.FollowingCount++
		s.users[followerID] = u
	}
	if u, ok := s.users[followingID]; ok {
		u.FollowersCount++
		s.users[followingID] = u
	}
	return nil
}

// Unfollow removes a Following edge if present
func (s *MemoryStore) Unfollow(_ context.Context, followerID, followingID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !removeEdge(s.following, followerID, followingID) {
		return ErrNotFound
	}
	removeEdge(s.followers, followingID, followerID)
	if u, ok := s.users[followerID]; ok && u.FollowingCount > 0 {
		u.FollowingCount--
		s.users[followerID] = u
	}
	if u, ok := s.users[followingID]; ok && u.FollowersCount > 0 {
		u.FollowersCount--
		s.users[followingID] = u
	}
	return nil
}

// AddCloseFriend designates friendID as a close friend of ownerID
func (s *MemoryStore) AddCloseFriend(_ context.Context, ownerID, friendID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	addEdge(s.closeFriends, ownerID, friendID)
	return nil
}

// Block records that blockerID blocked blockedID
func (s *MemoryStore) Block(_ context.Context, blockerID, blockedID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	addEdge(s.blocked, blockerID, blockedID)
	return nil
}

// IndexHashtag counts one more post for the hashtag
func (s *MemoryStore) IndexHashtag(_ context.Context, name string) error {
	if name == "" {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hashtags[name]++
	return nil
}

func addEdge(edges map[string]IDSet, from, to string) bool {
	set, ok := edges[from]
	if !ok {
		set = make(IDSet)
		edges[from] = set
	}
	if set.Has(to) {
		return false
	}
	set[to] = struct{}{}
	return true
}

func removeEdge(edges map[string]IDSet, from, to string) bool {
	set, ok := edges[from]
	if !ok || !set.Has(to) {
		return false
	}
	delete(set, to)
	return true
}

func copySet(s IDSet) IDSet {
	out := make(IDSet, len(s))
	for id := range s {
		out[id] = struct{}{}
	}
	return out
}

// memoryReader reads without locking; it only exists inside View.
type memoryReader struct {
	s *MemoryStore
}

func (r memoryReader) GetContent(_ context.Context, id string) (*models.Content, error) {
	c, ok := r.s.content[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &c, nil
}

func (r memoryReader) GetAllContent(_ context.Context) ([]models.Content, error) {
	out := make([]models.Content, 0, len(r.s.content))
	for _, c := range r.s.content {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r memoryReader) GetContentByOwner(_ context.Context, ownerID string) ([]models.Content, error) {
	var out []models.Content
	for _, c := range r.s.content {
		if c.OwnerID == ownerID {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r memoryReader) GetUser(_ context.Context, id string) (*models.UserProfile, error) {
	u, ok := r.s.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &u, nil
}

func (r memoryReader) GetAllUsers(_ context.Context) ([]models.UserProfile, error) {
	out := make([]models.UserProfile, 0, len(r.s.users))
	for _, u := range r.s.users {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r memoryReader) IsFollowing(_ context.Context, followerID, followingID string) (bool, error) {
	return r.s.following[followerID].Has(followingID), nil
}

func (r memoryReader) GetFollowing(_ context.Context, userID string) (IDSet, error) {
	return copySet(r.s.following[userID]), nil
}

func (r memoryReader) GetFollowers(_ context.Context, userID string) (IDSet, error) {
	return copySet(r.s.followers[userID]), nil
}

func (r memoryReader) IsCloseFriend(_ context.Context, ownerID, viewerID string) (bool, error) {
	return r.s.closeFriends[ownerID].Has(viewerID), nil
}

func (r memoryReader) IsBlocked(_ context.Context, blockerID, blockedID string) (bool, error) {
	return r.s.blocked[blockerID].Has(blockedID), nil
}

func (r memoryReader) GetBlocked(_ context.Context, blockerID string) (IDSet, error) {
	return copySet(r.s.blocked[blockerID]), nil
}

func (r memoryReader) SearchHashtags(_ context.Context, substr string) ([]models.Hashtag, error) {
	q := strings.ToLower(substr)
	var out []models.Hashtag
	for name, count := range r.s.hashtags {
		if strings.Contains(strings.ToLower(name), q) {
			out = append(out, models.Hashtag{Name: name, PostsCount: count})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}
