package models

import "strings"

// Visibility is the access tier of a content item
type Visibility string

const (
	VisibilityPublic       Visibility = "public"
	VisibilityPrivate      Visibility = "private"
	VisibilityFollowers    Visibility = "followers"
	VisibilityCloseFriends Visibility = "close_friends"
)

// Valid reports whether v is one of the known tiers
func (v Visibility) Valid() bool {
	switch v {
	case VisibilityPublic, VisibilityPrivate, VisibilityFollowers, VisibilityCloseFriends:
		return true
	}
	return false
}

// ParseVisibility accepts the wire form case-insensitively
func ParseVisibility(s string) (Visibility, bool) {
	v := Visibility(strings.ToLower(strings.TrimSpace(s)))
	return v, v.Valid()
}

// ContentKind distinguishes feed posts from ephemeral stories
type ContentKind string

const (
	KindPost  ContentKind = "post"
	KindStory ContentKind = "story"
)

// Content is a post or story stored in MongoDB
type Content struct {
	ID            string       `json:"id" bson:"_id"`
	OwnerID       string       `json:"user_id" bson:"user_id"` // ID of the user who created the content
	Username      string       `json:"username" bson:"username"`
	Kind          ContentKind  `json:"kind" bson:"kind"`
	Caption       string       `json:"caption" bson:"caption"`
	MediaURLs     []string     `json:"media_urls,omitempty" bson:"media_urls,omitempty"`
	Hashtags      []string     `json:"hashtags,omitempty" bson:"hashtags,omitempty"`
	Location      *LocationTag `json:"location,omitempty" bson:"location,omitempty"`
	Visibility    Visibility   `json:"visibility" bson:"visibility"`
	LikesCount    int64        `json:"likes_count" bson:"likes_count"`
	CommentsCount int64        `json:"comments_count" bson:"comments_count"`
	SharesCount   int64        `json:"shares_count" bson:"shares_count"`
	IsArchived    bool         `json:"is_archived" bson:"is_archived"`
	CreatedAt     int64        `json:"created_at" bson:"created_at"` // milliseconds since epoch
	UpdatedAt     int64        `json:"updated_at" bson:"updated_at"`

	// Story-only fields
	ExpiresAt   int64 `json:"expires_at,omitempty" bson:"expires_at,omitempty"`
	IsHighlight bool  `json:"is_highlight,omitempty" bson:"is_highlight,omitempty"`
}

// Listable reports whether the content belongs in normal post listings
func (c *Content) Listable() bool {
	return c.Kind == KindPost && !c.IsArchived
}

// Engagement is the unweighted popularity signal
func (c *Content) Engagement() int64 {
	return c.LikesCount + c.CommentsCount + c.SharesCount
}

// LocationTag is an optional place attached to content
type LocationTag struct {
	Name       string  `json:"name" bson:"name"`
	Latitude   float64 `json:"latitude" bson:"latitude"`
	Longitude  float64 `json:"longitude" bson:"longitude"`
	PlaceID    string  `json:"place_id,omitempty" bson:"place_id,omitempty"`
	PostsCount int64   `json:"posts_count" bson:"posts_count"`
}
