package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisKeyPrefix namespaces slot keys.
const RedisKeyPrefix = "kuis:slot:"

// RedisSlotRepo stores each slot as a plain string key.
type RedisSlotRepo struct {
	client *redis.Client
}

// NewRedisSlotRepo wraps an existing client.
func NewRedisSlotRepo(client *redis.Client) *RedisSlotRepo {
	return &RedisSlotRepo{client: client}
}

// OpenRedis connects to addr and verifies the connection with PING.
func OpenRedis(ctx context.Context, addr, password string, db int) (*RedisSlotRepo, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("connect redis %s: %w", addr, err)
	}
	return &RedisSlotRepo{client: client}, nil
}

// Close closes the underlying client.
func (r *RedisSlotRepo) Close() error {
	return r.client.Close()
}

func (r *RedisSlotRepo) Get(ctx context.Context, name string) ([]byte, error) {
	if name == "" {
		return nil, ErrInvalidSlotName
	}
	data, err := r.client.Get(ctx, RedisKeyPrefix+name).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrSlotNotFound
		}
		return nil, fmt.Errorf("get slot %s: %w", name, err)
	}
	return data, nil
}

func (r *RedisSlotRepo) Put(ctx context.Context, name string, data []byte) error {
	if name == "" {
		return ErrInvalidSlotName
	}
	if err := r.client.Set(ctx, RedisKeyPrefix+name, data, 0).Err(); err != nil {
		return fmt.Errorf("save slot %s: %w", name, err)
	}
	return nil
}

func (r *RedisSlotRepo) Delete(ctx context.Context, name string) error {
	if name == "" {
		return ErrInvalidSlotName
	}
	if err := r.client.Del(ctx, RedisKeyPrefix+name).Err(); err != nil {
		return fmt.Errorf("delete slot %s: %w", name, err)
	}
	return nil
}
