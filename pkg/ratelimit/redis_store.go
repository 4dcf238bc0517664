package ratelimit

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// RedisStore keeps entries in Redis with a TTL so stale sessions expire on
// their own.
type RedisStore struct {
	client goredis.Cmdable
	prefix string
	ttl    time.Duration
}

func NewRedisStore(client goredis.Cmdable, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, prefix: "rl:", ttl: ttl}
}

func (s *RedisStore) Get(ctx context.Context, key string) (time.Time, bool, error) {
	val, err := s.client.Get(ctx, s.prefix+key).Result()
	if errors.Is(err, goredis.Nil) {
		return time.Time{}, false, nil
	}
	if err != nil {
		return time.Time{}, false, err
	}
	sec, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return time.Time{}, false, fmt.Errorf("unexpected value %q: %w", val, err)
	}
	return time.Unix(sec, 0), true, nil
}

func (s *RedisStore) Set(ctx context.Context, key string, at time.Time) error {
	return s.client.Set(ctx, s.prefix+key, strconv.FormatInt(at.Unix(), 10), s.ttl).Err()
}
