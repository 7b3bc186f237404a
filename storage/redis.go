package storage

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
)

const defaultRedisPrefix = "crmsession:"

// Redis mirrors session keys into a Redis instance so several client
// processes can share one signed-in session. Keys carry no TTL; expiry is
// the session lifecycle's job, not the store's.
type Redis struct {
	client redis.UniversalClient
	prefix string
}

// NewRedis wraps an existing client. An empty prefix selects the default.
func NewRedis(client redis.UniversalClient, prefix string) *Redis {
	if prefix == "" {
		prefix = defaultRedisPrefix
	}
	return &Redis{client: client, prefix: prefix}
}

func (r *Redis) Get(ctx context.Context, key string) (string, error) {
	value, err := r.client.Get(ctx, r.prefix+key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", ErrNotFound
		}
		return "", err
	}
	return value, nil
}

func (r *Redis) Set(ctx context.Context, key, value string) error {
	return r.client.Set(ctx, r.prefix+key, value, 0).Err()
}

func (r *Redis) Delete(ctx context.Context, key string) error {
	return r.client.Del(ctx, r.prefix+key).Err()
}

// Close closes the underlying client connection.
func (r *Redis) Close() error {
	return r.client.Close()
}
