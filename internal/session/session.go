package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrNotFound is returned when no session exists for the given id.
var ErrNotFound = errors.New("session not found")

// Session is the payload the identity service stores per logged-in
// user. This service only reads it to resolve the caller.
type Session struct {
	UserID    string `json:"uid"`
	Name      string `json:"name"`
	Role      string `json:"role"`
	IssuedAt  int64  `json:"iat"`
	ExpiresAt int64  `json:"exp"`
}

// Expired reports whether the session's own expiry has passed.
func (s *Session) Expired(now time.Time) bool {
	return s.ExpiresAt > 0 && now.Unix() > s.ExpiresAt
}

// defaultExpiry backfills ExpiresAt for sessions the identity service
// wrote without an exp claim, counting the configured maximum age from
// issue time.
func (s *Session) defaultExpiry(maxAge time.Duration) {
	if s.ExpiresAt == 0 && s.IssuedAt > 0 && maxAge > 0 {
		s.ExpiresAt = s.IssuedAt + int64(maxAge/time.Second)
	}
}

// Store resolves session ids to sessions.
type Store interface {
	Get(ctx context.Context, id string) (*Session, error)
	Delete(ctx context.Context, id string) error
}

// RedisStore reads sessions from the Redis instance shared with the
// identity service. maxAge caps sessions that carry no expiry of
// their own.
type RedisStore struct {
	rdb    *redis.Client
	maxAge time.Duration
}

func NewRedisStore(rdb *redis.Client, maxAge time.Duration) *RedisStore {
	return &RedisStore{rdb: rdb, maxAge: maxAge}
}

func key(id string) string { return fmt.Sprintf("app:sess:%s", id) }

func (s *RedisStore) Get(ctx context.Context, id string) (*Session, error) {
	b, err := s.rdb.Get(ctx, key(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	var sess Session
	if err := json.Unmarshal(b, &sess); err != nil {
		return nil, err
	}
	sess.defaultExpiry(s.maxAge)
	return &sess, nil
}

func (s *RedisStore) Delete(ctx context.Context, id string) error {
	return s.rdb.Del(ctx, key(id)).Err()
}
