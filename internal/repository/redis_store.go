package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps pending-confirmation flags in Redis so they survive
// restarts and are shared across instances. Redis expires the keys.
type RedisStore struct {
	redis *redis.Client
	ttl   time.Duration
}

// NewRedisStore creates a RedisStore whose flags expire after ttl.
func NewRedisStore(client *redis.Client, ttl time.Duration) (*RedisStore, error) {
	if client == nil {
		return nil, errors.New("repository: redis client must not be nil")
	}
	if ttl <= 0 {
		ttl = DefaultStateTTL
	}
	return &RedisStore{redis: client, ttl: ttl}, nil
}

func pendingKey(key string) string {
	return fmt.Sprintf("pending_confirmation:%s", key)
}

// TakePending atomically reads and deletes the flag with GETDEL.
func (s *RedisStore) TakePending(ctx context.Context, key string) (bool, error) {
	_, err := s.redis.GetDel(ctx, pendingKey(key)).Result()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("repository: TakePending: %w", err)
	}
	return true, nil
}

// ArmPending sets the flag with the store TTL.
func (s *RedisStore) ArmPending(ctx context.Context, key string) error {
	if err := s.redis.Set(ctx, pendingKey(key), "1", s.ttl).Err(); err != nil {
		return fmt.Errorf("repository: ArmPending: %w", err)
	}
	return nil
}
