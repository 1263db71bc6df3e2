package store

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
)

// Redis keeps each collection as a string value under prefix+key.
type Redis struct {
	client *redis.Client
	prefix string
}

// NewRedis wraps an existing client. The client is closed by Close.
func NewRedis(client *redis.Client, prefix string) *Redis {
	return &Redis{client: client, prefix: prefix}
}

// OpenRedis connects to addr and verifies the connection with a PING.
func OpenRedis(ctx context.Context, opts RedisOptions) (*Redis, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}
	return NewRedis(client, opts.Prefix), nil
}

func (r *Redis) key(k Key) string {
	return r.prefix + string(k)
}

func (r *Redis) Read(ctx context.Context, key Key) ([]byte, error) {
	val, err := r.client.Get(ctx, r.key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotExist
	}
	if err != nil {
		return nil, err
	}
	return val, nil
}

func (r *Redis) Write(ctx context.Context, key Key, data []byte) error {
	return r.client.Set(ctx, r.key(key), data, 0).Err()
}

func (r *Redis) Close() error {
	return r.client.Close()
}
