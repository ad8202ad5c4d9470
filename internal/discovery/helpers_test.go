package discovery

import (
	"context"
	"testing"

	"github.com/anonto42/nano-midea/discovery/internal/models"
	"github.com/anonto42/nano-midea/discovery/internal/repositories"
)

const (
	hourMs = int64(3_600_000)
	dayMs  = 24 * hourMs
	// testNow is 2024-01-01T00:00:00Z
	testNow = int64(1_704_067_200_000)
)

type fixedClock int64

func (c fixedClock) NowMs() int64 { return int64(c) }

type fixture struct {
	t     *testing.T
	ctx   context.Context
	store *repositories.MemoryStore
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	return &fixture{t: t, ctx: context.Background(), store: repositories.NewMemoryStore()}
}

func (f *fixture) engine() *Engine {
	return NewEngine(f.store, WithClock(fixedClock(testNow)))
}

func (f *fixture) user(u models.UserProfile) {
	f.t.Helper()
	if u.Username == "" {
		u.Username = u.ID
	}
	if u.CreatedAt == 0 {
		u.CreatedAt = testNow - 365*dayMs
	}
	if err := f.store.PutUser(f.ctx, &u); err != nil {
		f.t.Fatalf("put user %s: %v", u.ID, err)
	}
}

func (f *fixture) users(ids ...string) {
	f.t.Helper()
	for _, id := range ids {
		f.user(models.UserProfile{ID: id})
	}
}

func (f *fixture) content(c models.Content) {
	f.t.Helper()
	if c.Kind == "" {
		c.Kind = models.KindPost
	}
	if c.Visibility == "" {
		c.Visibility = models.VisibilityPublic
	}
	if err := f.store.PutContent(f.ctx, &c); err != nil {
		f.t.Fatalf("put content %s: %v", c.ID, err)
	}
}

func (f *fixture) follow(follower, following string) {
	f.t.Helper()
	if err := f.store.Follow(f.ctx, follower, following); err != nil {
		f.t.Fatalf("follow %s -> %s: %v", follower, following, err)
	}
}

func (f *fixture) closeFriend(owner, friend string) {
	f.t.Helper()
	if err := f.store.AddCloseFriend(f.ctx, owner, friend); err != nil {
		f.t.Fatalf("close friend %s -> %s: %v", owner, friend, err)
	}
}

func (f *fixture) block(blocker, blocked string) {
	f.t.Helper()
	if err := f.store.Block(f.ctx, blocker, blocked); err != nil {
		f.t.Fatalf("block %s -> %s: %v", blocker, blocked, err)
	}
}

func contentIDs(items []models.Content) []string {
	ids := make([]string, len(items))
	for i := range items {
		ids[i] = items[i].ID
	}
	return ids
}

func userIDs(items []models.UserProfile) []string {
	ids := make([]string, len(items))
	for i := range items {
		ids[i] = items[i].ID
	}
	return ids
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
