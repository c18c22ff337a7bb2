package kvstore

import (
	"context"
	"errors"

	portsrepo "github.com/codify-lk/receipts_backend/internal/core/ports/repositories"
	"github.com/redis/go-redis/v9"
)

// RedisStore adapts a redis client to the KVStore port for hosted
// deployments where the register outlives one machine.
type RedisStore struct {
	client *redis.Client
}

var _ portsrepo.KVStore = (*RedisStore)(nil)

// NewRedisStore connects to redis at addr. DB selection and password
// follow the usual redis client options.
func NewRedisStore(addr, password string, db int) *RedisStore {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	return &RedisStore{client: client}
}

func (s *RedisStore) Get(ctx context.Context, key string) (string, bool, error) {
	val, err := s.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return val, true, nil
}

func (s *RedisStore) Set(ctx context.Context, key string, value string) error {
	return s.client.Set(ctx, key, value, 0).Err()
}

func (s *RedisStore) Remove(ctx context.Context, key string) error {
	return s.client.Del(ctx, key).Err()
}

// Ping verifies connectivity at startup.
func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}
