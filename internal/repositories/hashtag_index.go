package repositories

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/anonto42/nano-midea/discovery/internal/models"
	"github.com/redis/go-redis/v9"
)

const hashtagsKey = "discovery:hashtags"

// RedisHashtagIndex keeps hashtag post counts in a Redis hash
type RedisHashtagIndex struct {
	client *redis.Client
}

// NewRedisHashtagIndex creates the index
func NewRedisHashtagIndex(client *redis.Client) *RedisHashtagIndex {
	return &RedisHashtagIndex{client: client}
}

// IndexHashtag counts one more post for name
func (i *RedisHashtagIndex) IndexHashtag(ctx context.Context, name string) error {
	if name == "" {
		return nil
	}
	return i.client.HIncrBy(ctx, hashtagsKey, name, 1).Err()
}

// SearchHashtags returns every hashtag whose name contains substr, case-insensitively
func (i *RedisHashtagIndex) SearchHashtags(ctx context.Context, substr string) ([]models.Hashtag, error) {
	all, err := i.client.HGetAll(ctx, hashtagsKey).Result()
	if err != nil {
		return nil, err
	}
	q := strings.ToLower(substr)
	out := make([]models.Hashtag, 0, len(all))
	for name, raw := range all {
		if !strings.Contains(strings.ToLower(name), q) {
			continue
		}
		count, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("hashtag %q has invalid count %q: %w", name, raw, err)
		}
		out = append(out, models.Hashtag{Name: name, PostsCount: count})
	}
	sort.Slice(out, func(a, b int) bool { return out[a].Name < out[b].Name })
	return out, nil
}
