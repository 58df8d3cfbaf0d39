package repositories

import (
	"context"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// TokenStore keeps the ids of revoked JWTs until they would have expired anyway.
type TokenStore interface {
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

type RedisTokenStore struct {
	rdb    *goredis.Client
	prefix string
}

func NewRedisTokenStore(rdb *goredis.Client) *RedisTokenStore {
	return &RedisTokenStore{rdb: rdb, prefix: "revoked_token:"}
}

func (s *RedisTokenStore) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	return s.rdb.Set(ctx, s.prefix+tokenID, 1, ttl).Err()
}

func (s *RedisTokenStore) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	n, err := s.rdb.Exists(ctx, s.prefix+tokenID).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// NoopTokenStore is used when Redis is not configured; nothing is ever revoked.
type NoopTokenStore struct{}

func (NoopTokenStore) Revoke(context.Context, string, time.Duration) error { return nil }
func (NoopTokenStore) IsRevoked(context.Context, string) (bool, error)     { return false, nil }
