// Package seed writes a small demo social graph and content set through the
// store's write side.
package seed

import (
	"context"
	"fmt"

	"github.com/anonto42/nano-midea/discovery/internal/models"
	"github.com/anonto42/nano-midea/discovery/internal/repositories"
	"github.com/google/uuid"
)

const (
	hourMs = int64(3_600_000)
	dayMs  = 24 * hourMs
)

var namespace = uuid.MustParse("9f3c1d2e-5b7a-4c8e-a1f0-6d2b3c4e5f60")

// ID derives a stable identifier for a demo entity name
func ID(name string) string {
	return uuid.NewSHA1(namespace, []byte(name)).String()
}

// Summary counts what Demo wrote
type Summary struct {
	Users    int
	Content  int
	Edges    int
	Hashtags int
}

type demoUser struct {
	name        string
	displayName string
	bio         string
	accountType models.AccountType
	verified    bool
	ageDays     int64
}

var demoUsers = []demoUser{
	{"ayu", "Ayu Lestari", "street food and sunsets", models.AccountCreator, true, 400},
	{"budi", "Budi Santoso", "cyclist, coffee", models.AccountPersonal, false, 200},
	{"citra", "Citra Dewi", "travel photographer", models.AccountCreator, true, 900},
	{"dimas", "Dimas Pratama", "bakery owner", models.AccountBusiness, false, 12},
	{"eka", "Eka Putri", "", models.AccountPersonal, false, 5},
	{"fajar", "Fajar Nugroho", "hiking every weekend", models.AccountPersonal, false, 60},
}

var (
	monas  = models.LocationTag{Name: "Monas", Latitude: -6.175392, Longitude: 106.827153}
	braga  = models.LocationTag{Name: "Jalan Braga", Latitude: -6.917464, Longitude: 107.609810}
	kuta   = models.LocationTag{Name: "Kuta Beach", Latitude: -8.718492, Longitude: 115.168632}
	bromo  = models.LocationTag{Name: "Mount Bromo", Latitude: -7.942493, Longitude: 112.953012}
	bakery = models.LocationTag{Name: "Dimas Bakery", Latitude: -6.200000, Longitude: 106.816666}
)

type demoContent struct {
	name       string
	owner      string
	kind       models.ContentKind
	caption    string
	hashtags   []string
	location   *models.LocationTag
	visibility models.Visibility
	likes      int64
	comments   int64
	shares     int64
	ageHours   int64
	archived   bool
	highlight  bool
}

var demoContents = []demoContent{
	{"ayu-1", "ayu", models.KindPost, "Sunset over Kuta", []string{"sunset", "bali"}, &kuta, models.VisibilityPublic, 320, 41, 12, 3, false, false},
	{"ayu-2", "ayu", models.KindPost, "Best satay in town", []string{"streetfood"}, &monas, models.VisibilityPublic, 150, 20, 30, 30, false, false},
	{"ayu-3", "ayu", models.KindPost, "Only for my people", nil, nil, models.VisibilityCloseFriends, 10, 2, 0, 5, false, false},
	{"budi-1", "budi", models.KindPost, "Morning ride to Monas", []string{"cycling"}, &monas, models.VisibilityPublic, 25, 3, 1, 10, false, false},
	{"budi-2", "budi", models.KindPost, "Training log", []string{"cycling"}, nil, models.VisibilityFollowers, 4, 0, 0, 50, false, false},
	{"citra-1", "citra", models.KindPost, "Sunrise at Bromo", []string{"sunrise", "travel"}, &bromo, models.VisibilityPublic, 900, 77, 140, 72, false, false},
	{"citra-2", "citra", models.KindPost, "Braga at night", []string{"travel", "bandung"}, &braga, models.VisibilityPublic, 210, 18, 9, 8, false, false},
	{"citra-3", "citra", models.KindPost, "Old edit", []string{"travel"}, &braga, models.VisibilityPublic, 5, 0, 0, 2000, true, false},
	{"dimas-1", "dimas", models.KindPost, "Fresh croissants", []string{"bakery", "streetfood"}, &bakery, models.VisibilityPublic, 40, 12, 6, 1, false, false},
	{"eka-1", "eka", models.KindPost, "Private diary", nil, nil, models.VisibilityPrivate, 0, 0, 0, 2, false, false},
	{"fajar-1", "fajar", models.KindPost, "Summit push", []string{"hiking", "sunrise"}, &bromo, models.VisibilityPublic, 60, 4, 2, 20, false, false},
	{"ayu-story-1", "ayu", models.KindStory, "Behind the scenes", nil, nil, models.VisibilityPublic, 0, 0, 0, 2, false, false},
	{"ayu-story-2", "ayu", models.KindStory, "Best of 2023", nil, nil, models.VisibilityPublic, 0, 0, 0, 24 * 40, false, true},
	{"citra-story-1", "citra", models.KindStory, "Packing list", nil, nil, models.VisibilityCloseFriends, 0, 0, 0, 4, false, false},
}

var demoFollows = [][2]string{
	{"budi", "ayu"}, {"budi", "citra"}, {"ayu", "citra"}, {"citra", "ayu"},
	{"dimas", "ayu"}, {"eka", "budi"}, {"fajar", "citra"}, {"fajar", "budi"},
	{"eka", "dimas"},
}

var demoCloseFriends = [][2]string{{"ayu", "budi"}, {"citra", "ayu"}}

var demoBlocks = [][2]string{{"citra", "eka"}}

// Demo writes the demo data set relative to nowMs. Running it twice rewrites
// the same entities.
func Demo(ctx context.Context, w repositories.Writer, nowMs int64) (Summary, error) {
	var s Summary

	for _, u := range demoUsers {
		profile := &models.UserProfile{
			ID:          ID(u.name),
			Username:    u.name,
			DisplayName: u.displayName,
			Bio:         u.bio,
			AccountType: u.accountType,
			IsVerified:  u.verified,
			CreatedAt:   nowMs - u.ageDays*dayMs,
			UpdatedAt:   nowMs,
		}
		if err := w.PutUser(ctx, profile); err != nil {
			return s, fmt.Errorf("seed user %s: %w", u.name, err)
		}
		s.Users++
	}

	for _, e := range demoFollows {
		if err := w.Follow(ctx, ID(e[0]), ID(e[1])); err != nil {
			return s, fmt.Errorf("seed follow %s -> %s: %w", e[0], e[1], err)
		}
		s.Edges++
	}
	for _, e := range demoCloseFriends {
		if err := w.AddCloseFriend(ctx, ID(e[0]), ID(e[1])); err != nil {
			return s, fmt.Errorf("seed close friend %s -> %s: %w", e[0], e[1], err)
		}
		s.Edges++
	}
	for _, e := range demoBlocks {
		if err := w.Block(ctx, ID(e[0]), ID(e[1])); err != nil {
			return s, fmt.Errorf("seed block %s -> %s: %w", e[0], e[1], err)
		}
		s.Edges++
	}

	for _, dc := range demoContents {
		created := nowMs - dc.ageHours*hourMs
		c := &models.Content{
			ID:            ID(dc.name),
			OwnerID:       ID(dc.owner),
			Username:      dc.owner,
			Kind:          dc.kind,
			Caption:       dc.caption,
			Hashtags:      dc.hashtags,
			Visibility:    dc.visibility,
			LikesCount:    dc.likes,
			CommentsCount: dc.comments,
			SharesCount:   dc.shares,
			IsArchived:    dc.archived,
			CreatedAt:     created,
			UpdatedAt:     created,
		}
		if dc.location != nil {
			loc := *dc.location
			c.Location = &loc
		}
		if dc.kind == models.KindStory {
			c.ExpiresAt = created + dayMs
			c.IsHighlight = dc.highlight
		}
		if err := w.PutContent(ctx, c); err != nil {
			return s, fmt.Errorf("seed content %s: %w", dc.name, err)
		}
		s.Content++

		for _, tag := range dc.hashtags {
			if err := w.IndexHashtag(ctx, tag); err != nil {
				return s, fmt.Errorf("seed hashtag %s: %w", tag, err)
			}
			s.Hashtags++
		}
	}
	return s, nil
}

// Usernames lists the demo accounts in creation order
func Usernames() []string {
	names := make([]string, len(demoUsers))
	for i, u := range demoUsers {
		names[i] = u.name
	}
	return names
}
