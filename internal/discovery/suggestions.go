package discovery

import (
	"context"
	"math"
	"sort"
	"time"

	"github.com/anonto42/nano-midea/discovery/internal/metrics"
	"github.com/anonto42/nano-midea/discovery/internal/models"
	"github.com/anonto42/nano-midea/discovery/internal/repositories"
)

const (
	msPerDay        = 86_400_000
	newAccountDays  = 30
	mutualWeight    = 3.0
	followersWeight = 0.5
	postsWeight     = 0.3
	newAccountBonus = 0.5
	verifiedBonus   = 0.2
)

// SuggestionScore rates candidate as someone the viewer might follow. mutual is
// the number of the viewer's followers the candidate follows.
func SuggestionScore(candidate *models.UserProfile, mutual int, nowMs int64) float64 {
	score := mutualWeight * float64(mutual)
	score += followersWeight * math.Log10(float64(max(candidate.FollowersCount, 1)))
	score += postsWeight * math.Log10(float64(max(candidate.PostsCount, 1)))
	if (nowMs-candidate.CreatedAt)/msPerDay < newAccountDays {
		score += newAccountBonus
	}
	if candidate.IsVerified {
		score += verifiedBonus
	}
	return score
}

type scoredUser struct {
	user  models.UserProfile
	score float64
}

// GetSuggestedUsers recommends accounts the viewer does not follow yet. Users
// the viewer blocked are skipped; users who blocked the viewer are not.
func (e *Engine) GetSuggestedUsers(ctx context.Context, viewer string, limit uint32) ([]models.UserProfile, error) {
	const op = "suggested_users"
	if viewer == "" {
		e.finish(ctx, op, time.Now(), ErrUnauthenticated)
		return nil, ErrUnauthenticated
	}

	now := e.clock.NowMs()
	var out []models.UserProfile
	err := e.view(ctx, op, func(ctx context.Context, r repositories.Reader) error {
		following, err := r.GetFollowing(ctx, viewer)
		if err != nil {
			return err
		}
		followers, err := r.GetFollowers(ctx, viewer)
		if err != nil {
			return err
		}
		blocked, err := r.GetBlocked(ctx, viewer)
		if err != nil {
			return err
		}
		users, err := r.GetAllUsers(ctx)
		if err != nil {
			return err
		}
		metrics.RecordCandidates(op, len(users))

		scored := make([]scoredUser, 0, len(users))
		for i := range users {
			u := &users[i]
			if u.ID == viewer || following.Has(u.ID) || blocked.Has(u.ID) {
				continue
			}
			candidateFollowing, err := r.GetFollowing(ctx, u.ID)
			if err != nil {
				return err
			}
			mutual := 0
			for id := range followers {
				if candidateFollowing.Has(id) {
					mutual++
				}
			}
			scored = append(scored, scoredUser{user: *u, score: SuggestionScore(u, mutual, now)})
		}
		sort.SliceStable(scored, func(i, j int) bool {
			if scored[i].score != scored[j].score {
				return scored[i].score > scored[j].score
			}
			return scored[i].user.ID < scored[j].user.ID
		})

		scored = truncate(scored, limit)
		out = make([]models.UserProfile, len(scored))
		for i, s := range scored {
			out[i] = s.user
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
