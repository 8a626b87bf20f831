package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"checkflow/internal/model"
)

// DefaultSessionTTL bounds how long an abandoned session survives.
const DefaultSessionTTL = 30 * time.Minute

// SessionStore is the pluggable store for in-progress QA sessions.
// Eviction is the store's concern: the Redis implementation applies a
// TTL refreshed on every write, so abandoned sessions age out instead
// of accumulating.
type SessionStore interface {
	Set(ctx context.Context, session *model.Session) error
	Get(ctx context.Context, id string) (*model.Session, error)
	Delete(ctx context.Context, id string) error
}

type redisSessionStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewSessionStore creates a Redis-backed session store. A non-positive
// ttl falls back to DefaultSessionTTL.
func NewSessionStore(client *redis.Client, ttl time.Duration) SessionStore {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &redisSessionStore{client: client, ttl: ttl}
}

func (s *redisSessionStore) key(id string) string {
	return "qa:session:" + id
}

func (s *redisSessionStore) Set(ctx context.Context, session *model.Session) error {
	data, err := json.Marshal(session)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, s.key(session.ID), data, s.ttl).Err()
}

func (s *redisSessionStore) Get(ctx context.Context, id string) (*model.Session, error) {
	data, err := s.client.Get(ctx, s.key(id)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var session model.Session
	if err := json.Unmarshal([]byte(data), &session); err != nil {
		return nil, err
	}
	return &session, nil
}

func (s *redisSessionStore) Delete(ctx context.Context, id string) error {
	return s.client.Del(ctx, s.key(id)).Err()
}
