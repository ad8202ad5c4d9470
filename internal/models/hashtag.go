package models

// Hashtag is an entry of the hashtag index
type Hashtag struct {
	Name       string `json:"name"`
	PostsCount int64  `json:"posts_count"`
	IsTrending bool   `json:"is_trending"`
}
