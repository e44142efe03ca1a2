package cache

import (
	"context"
	"time"

	pkgredis "github.com/medimarket/storefront-backend/pkg/redis"
)

// RedisStore adapts the shared redis client to the cache Store surface.
type RedisStore struct {
	client *pkgredis.Client
}

func NewRedisStore(client *pkgredis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) Get(ctx context.Context, key string) (string, bool, error) {
	val, err := s.client.Get(ctx, key)
	if err != nil {
		if pkgredis.IsMiss(err) {
			return "", false, nil
		}
		return "", false, err
	}
	return val, true, nil
}

func (s *RedisStore) Set(ctx context.Context, key string, value string, ttl time.Duration) error {
	return s.client.Set(ctx, key, value, ttl)
}
