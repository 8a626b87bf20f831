package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"checkflow/internal/model"
)

// SuggestionCache holds computed room suggestions per session so
// repeated reads don't rescore. Entries are dropped whenever a
// session's answers change.
type SuggestionCache interface {
	SetSuggestions(ctx context.Context, sessionID string, set *model.SuggestionSet) error
	GetSuggestions(ctx context.Context, sessionID string) (*model.SuggestionSet, error)
	Invalidate(ctx context.Context, sessionID string) error
}

type suggestionCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewSuggestionCache creates a Redis-backed suggestion cache.
func NewSuggestionCache(client *redis.Client) SuggestionCache {
	return &suggestionCache{
		client: client,
		ttl:    10 * time.Minute,
	}
}

func (c *suggestionCache) key(sessionID string) string {
	return fmt.Sprintf("qa:session:%s:suggestions", sessionID)
}

func (c *suggestionCache) SetSuggestions(ctx context.Context, sessionID string, set *model.SuggestionSet) error {
	data, err := json.Marshal(set)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.key(sessionID), data, c.ttl).Err()
}

func (c *suggestionCache) GetSuggestions(ctx context.Context, sessionID string) (*model.SuggestionSet, error) {
	data, err := c.client.Get(ctx, c.key(sessionID)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var set model.SuggestionSet
	if err := json.Unmarshal([]byte(data), &set); err != nil {
		return nil, err
	}
	return &set, nil
}

func (c *suggestionCache) Invalidate(ctx context.Context, sessionID string) error {
	return c.client.Del(ctx, c.key(sessionID)).Err()
}
