package models

import "strings"

// SearchCategory selects which matchers the search dispatcher runs
type SearchCategory string

const (
	SearchAll       SearchCategory = "all"
	SearchUsers     SearchCategory = "users"
	SearchPosts     SearchCategory = "posts"
	SearchHashtags  SearchCategory = "hashtags"
	SearchLocations SearchCategory = "locations"
	SearchAudio     SearchCategory = "audio"
)

// ParseSearchCategory maps the query parameter to a category; empty means all
func ParseSearchCategory(s string) (SearchCategory, bool) {
	if strings.TrimSpace(s) == "" {
		return SearchAll, true
	}
	c := SearchCategory(strings.ToLower(strings.TrimSpace(s)))
	switch c {
	case SearchAll, SearchUsers, SearchPosts, SearchHashtags, SearchLocations, SearchAudio:
		return c, true
	}
	return "", false
}

// SearchResults groups matches per category; unused categories stay empty
type SearchResults struct {
	Users     []UserProfile `json:"users"`
	Posts     []Content     `json:"posts"`
	Hashtags  []Hashtag     `json:"hashtags"`
	Locations []LocationTag `json:"locations"`
}

// NewSearchResults returns results with non-nil slices so they encode as []
func NewSearchResults() SearchResults {
	return SearchResults{
		Users:     []UserProfile{},
		Posts:     []Content{},
		Hashtags:  []Hashtag{},
		Locations: []LocationTag{},
	}
}
