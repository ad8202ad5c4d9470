package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/anonto42/nano-midea/discovery/internal/discovery"
	"github.com/anonto42/nano-midea/discovery/internal/middleware"
	"github.com/anonto42/nano-midea/discovery/internal/models"
	"github.com/anonto42/nano-midea/discovery/internal/repositories"
	"github.com/anonto42/nano-midea/discovery/internal/validators"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

const now = int64(1_704_067_200_000)

type fixedClock struct{}

func (fixedClock) NowMs() int64 { return now }

type testServer struct {
	e     *echo.Echo
	auth  *middleware.JWTAuthenticator
	store *repositories.MemoryStore
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	ctx := context.Background()
	store := repositories.NewMemoryStore()

	must := func(err error) {
		t.Helper()
		if err != nil {
			t.Fatalf("seed: %v", err)
		}
	}
	for _, id := range []string{"alice", "bob", "carol"} {
		must(store.PutUser(ctx, &models.UserProfile{ID: id, Username: id, CreatedAt: now - 400*86_400_000}))
	}
	must(store.Follow(ctx, "alice", "bob"))
	must(store.PutContent(ctx, &models.Content{ID: "b1", OwnerID: "bob", Kind: models.KindPost, Visibility: models.VisibilityPublic,
		Caption: "sunset at the pier", Hashtags: []string{"sunset"}, LikesCount: 5, CreatedAt: now - 1000,
		Location: &models.LocationTag{Name: "Pier", Latitude: 10, Longitude: 20}}))
	must(store.PutContent(ctx, &models.Content{ID: "b2", OwnerID: "bob", Kind: models.KindPost, Visibility: models.VisibilityFollowers,
		Caption: "for followers", CreatedAt: now - 500}))
	must(store.PutContent(ctx, &models.Content{ID: "c1", OwnerID: "carol", Kind: models.KindPost, Visibility: models.VisibilityPrivate,
		Caption: "secret", CreatedAt: now - 100}))
	must(store.PutContent(ctx, &models.Content{ID: "a1", OwnerID: "alice", Kind: models.KindPost, Visibility: models.VisibilityPublic,
		IsArchived: true, CreatedAt: now - 2000}))
	must(store.IndexHashtag(ctx, "sunset"))

	engine := discovery.NewEngine(store, discovery.WithClock(fixedClock{}))
	logger := zerolog.Nop()
	auth := middleware.NewJWTAuthenticator("test")

	e := echo.New()
	e.Validator = validators.NewValidator()
	api := e.Group("/api/v1", middleware.OptionalAuth(auth))
	NewFeedHandler(engine, logger).RegisterFeedRoutes(api)
	NewExploreHandler(engine, logger).RegisterExploreRoutes(api)
	NewUserHandler(engine, logger).RegisterUserRoutes(api)
	NewStoryHandler(engine, logger).RegisterStoryRoutes(api)
	NewPostHandler(engine, logger).RegisterPostRoutes(api)
	NewSearchHandler(engine, logger).RegisterSearchRoutes(api)
	NewLocationHandler(engine, logger).RegisterLocationRoutes(api)
	e.GET("/health", HealthCheck)

	return &testServer{e: e, auth: auth, store: store}
}

type envelope struct {
	Success bool                       `json:"success"`
	Data    map[string]json.RawMessage `json:"data"`
	Meta    map[string]interface{}     `json:"meta"`
	Message string                     `json:"message"`
}

func (s *testServer) get(t *testing.T, viewer, target string) (int, envelope) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	if viewer != "" {
		token, err := s.auth.IssueToken(viewer, viewer, time.Hour)
		if err != nil {
			t.Fatalf("token: %v", err)
		}
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)

	var body envelope
	if rec.Body.Len() > 0 {
		if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
			t.Fatalf("decode %s: %v (%s)", target, err, rec.Body.String())
		}
	}
	return rec.Code, body
}

func decodeIDs(t *testing.T, raw json.RawMessage) []string {
	t.Helper()
	var items []struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(raw, &items); err != nil {
		t.Fatalf("decode items: %v", err)
	}
	ids := make([]string, len(items))
	for i := range items {
		ids[i] = items[i].ID
	}
	return ids
}

func TestFeedEndpoint(t *testing.T) {
	s := newTestServer(t)

	code, body := s.get(t, "alice", "/api/v1/feed?limit=10")
	if code != http.StatusOK || !body.Success {
		t.Fatalf("status %d body %+v", code, body)
	}
	if ids := decodeIDs(t, body.Data["posts"]); len(ids) != 2 || ids[0] != "b2" || ids[1] != "b1" {
		t.Fatalf("feed ids %v", ids)
	}

	if code, _ := s.get(t, "", "/api/v1/feed"); code != http.StatusUnauthorized {
		t.Fatalf("anonymous feed status %d, want 401", code)
	}
	if code, _ := s.get(t, "alice", "/api/v1/feed?limit=0&offset=-1"); code != http.StatusBadRequest {
		t.Fatalf("bad offset status %d, want 400", code)
	}
	if code, _ := s.get(t, "alice", "/api/v1/feed?limit=500"); code != http.StatusBadRequest {
		t.Fatalf("limit over max status %d, want 400", code)
	}
}

func TestPostEndpointStatusCodes(t *testing.T) {
	s := newTestServer(t)
	tests := []struct {
		viewer string
		path   string
		want   int
	}{
		{"", "/api/v1/posts/b1", http.StatusOK},
		{"", "/api/v1/posts/b2", http.StatusForbidden},
		{"alice", "/api/v1/posts/b2", http.StatusOK},
		{"alice", "/api/v1/posts/c1", http.StatusForbidden},
		{"alice", "/api/v1/posts/missing", http.StatusNotFound},
	}
	for _, tt := range tests {
		if code, _ := s.get(t, tt.viewer, tt.path); code != tt.want {
			t.Errorf("%s as %q: status %d, want %d", tt.path, tt.viewer, code, tt.want)
		}
	}
}

func TestRankedEndpoints(t *testing.T) {
	s := newTestServer(t)

	code, body := s.get(t, "", "/api/v1/trending/posts")
	if code != http.StatusOK {
		t.Fatalf("trending status %d", code)
	}
	if ids := decodeIDs(t, body.Data["posts"]); len(ids) != 1 || ids[0] != "b1" {
		t.Fatalf("trending ids %v", ids)
	}

	code, body = s.get(t, "alice", "/api/v1/explore")
	if code != http.StatusOK {
		t.Fatalf("explore status %d", code)
	}
	if ids := decodeIDs(t, body.Data["posts"]); len(ids) != 0 {
		t.Fatalf("alice follows bob, explore should be empty, got %v", ids)
	}

	code, body = s.get(t, "", "/api/v1/trending/hashtags?limit=5")
	if code != http.StatusOK || len(body.Data["hashtags"]) == 0 {
		t.Fatalf("hashtags status %d body %+v", code, body)
	}
}

func TestSuggestedUsersEndpoint(t *testing.T) {
	s := newTestServer(t)
	code, body := s.get(t, "alice", "/api/v1/users/suggested")
	if code != http.StatusOK {
		t.Fatalf("status %d", code)
	}
	if ids := decodeIDs(t, body.Data["users"]); len(ids) != 1 || ids[0] != "carol" {
		t.Fatalf("suggested %v", ids)
	}
	if code, _ := s.get(t, "", "/api/v1/users/suggested"); code != http.StatusUnauthorized {
		t.Fatalf("anonymous status %d, want 401", code)
	}
}

func TestUserPostsAndStoriesEndpoints(t *testing.T) {
	s := newTestServer(t)
	code, body := s.get(t, "", "/api/v1/users/bob/posts")
	if code != http.StatusOK {
		t.Fatalf("status %d", code)
	}
	if ids := decodeIDs(t, body.Data["posts"]); len(ids) != 1 || ids[0] != "b1" {
		t.Fatalf("posts %v", ids)
	}
	if code, _ := s.get(t, "", "/api/v1/users/nobody/posts"); code != http.StatusNotFound {
		t.Fatalf("unknown user status %d, want 404", code)
	}
	if code, _ := s.get(t, "", "/api/v1/users/bob/stories"); code != http.StatusOK {
		t.Fatalf("stories status %d", code)
	}

	code, body = s.get(t, "alice", "/api/v1/archive")
	if code != http.StatusOK {
		t.Fatalf("archive status %d", code)
	}
	if ids := decodeIDs(t, body.Data["posts"]); len(ids) != 1 || ids[0] != "a1" {
		t.Fatalf("archive %v", ids)
	}
}

func TestPaginatedPathEndpoints(t *testing.T) {
	s := newTestServer(t)
	err := s.store.PutContent(context.Background(), &models.Content{ID: "b3", OwnerID: "bob", Kind: models.KindPost,
		Visibility: models.VisibilityPublic, Hashtags: []string{"sunset"}, CreatedAt: now - 2000})
	if err != nil {
		t.Fatalf("seed: %v", err)
	}

	tests := []struct {
		name   string
		target string
		want   []string
	}{
		{"user posts first page", "/api/v1/users/bob/posts?limit=1", []string{"b2"}},
		{"user posts offset", "/api/v1/users/bob/posts?limit=1&offset=1", []string{"b1"}},
		{"user posts past end", "/api/v1/users/bob/posts?offset=5", []string{}},
		{"hashtag first page", "/api/v1/hashtags/sunset/posts?limit=1", []string{"b1"}},
		{"hashtag offset", "/api/v1/hashtags/sunset/posts?offset=1", []string{"b3"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, body := s.get(t, "alice", tt.target)
			if code != http.StatusOK {
				t.Fatalf("status %d body %+v", code, body)
			}
			ids := decodeIDs(t, body.Data["posts"])
			if len(ids) != len(tt.want) {
				t.Fatalf("ids %v, want %v", ids, tt.want)
			}
			for i := range ids {
				if ids[i] != tt.want[i] {
					t.Fatalf("ids %v, want %v", ids, tt.want)
				}
			}
		})
	}

	_, body := s.get(t, "alice", "/api/v1/users/bob/posts?limit=1&offset=1")
	if body.Meta["limit"] != float64(1) || body.Meta["offset"] != float64(1) {
		t.Fatalf("meta %v", body.Meta)
	}

	for _, target := range []string{
		"/api/v1/users/bob/posts?limit=500",
		"/api/v1/hashtags/sunset/posts?limit=500",
		"/api/v1/hashtags/sunset/posts?offset=-1",
	} {
		if code, _ := s.get(t, "alice", target); code != http.StatusBadRequest {
			t.Errorf("%s: status %d, want 400", target, code)
		}
	}
}

func TestSearchEndpoint(t *testing.T) {
	s := newTestServer(t)

	code, body := s.get(t, "", "/api/v1/search?q=sunset")
	if code != http.StatusOK {
		t.Fatalf("status %d", code)
	}
	for _, key := range []string{"users", "posts", "hashtags", "locations"} {
		if _, ok := body.Data[key]; !ok {
			t.Errorf("missing %s in results", key)
		}
	}
	if ids := decodeIDs(t, body.Data["posts"]); len(ids) != 1 || ids[0] != "b1" {
		t.Fatalf("posts %v", ids)
	}

	if code, _ := s.get(t, "", "/api/v1/search?q=sunset&type=videos"); code != http.StatusBadRequest {
		t.Fatalf("unknown type status %d, want 400", code)
	}
	if code, _ := s.get(t, "", "/api/v1/search"); code != http.StatusBadRequest {
		t.Fatalf("missing q status %d, want 400", code)
	}
}

func TestLocationEndpoints(t *testing.T) {
	s := newTestServer(t)

	code, body := s.get(t, "", "/api/v1/locations/nearby?lat=10&lon=20&radius_km=1")
	if code != http.StatusOK {
		t.Fatalf("nearby status %d", code)
	}
	if len(body.Data["locations"]) == 0 || string(body.Data["locations"]) == "[]" {
		t.Fatalf("expected the pier nearby, got %s", body.Data["locations"])
	}

	for _, target := range []string{
		"/api/v1/locations/nearby?lat=95&lon=20",
		"/api/v1/locations/nearby?lon=20",
		"/api/v1/locations/nearby?lat=10&lon=20&radius_km=-3",
		"/api/v1/locations/posts",
	} {
		if code, _ := s.get(t, "", target); code != http.StatusBadRequest {
			t.Errorf("%s: status %d, want 400", target, code)
		}
	}

	code, body = s.get(t, "", "/api/v1/locations/posts?lat=10.001&lon=20.001")
	if code != http.StatusOK {
		t.Fatalf("posts status %d", code)
	}
	if ids := decodeIDs(t, body.Data["posts"]); len(ids) != 1 || ids[0] != "b1" {
		t.Fatalf("location posts %v", ids)
	}

	if code, _ := s.get(t, "", "/api/v1/locations/search?q=pier"); code != http.StatusOK {
		t.Fatalf("search status %d", code)
	}
}

func TestHashtagPostsEndpoint(t *testing.T) {
	s := newTestServer(t)
	code, body := s.get(t, "", "/api/v1/hashtags/SUNSET/posts")
	if code != http.StatusOK {
		t.Fatalf("status %d", code)
	}
	if ids := decodeIDs(t, body.Data["posts"]); len(ids) != 1 || ids[0] != "b1" {
		t.Fatalf("posts %v", ids)
	}
}

func TestHealthCheck(t *testing.T) {
	s := newTestServer(t)
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d", rec.Code)
	}
}
