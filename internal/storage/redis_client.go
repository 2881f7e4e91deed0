package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

const sessionKeyPrefix = "timetracker:session:"

// RedisClient wraps the Redis client and implements fiber.Storage so it can
// back the session middleware.
type RedisClient struct {
	client *redis.Client
	ctx    context.Context
	prefix string
}

// NewRedisClient creates a new Redis client and checks the connection.
func NewRedisClient(host string, port string) (*RedisClient, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         fmt.Sprintf("%s:%s", host, port),
		PoolSize:     20,
		MinIdleConns: 2,
		DialTimeout:  10 * time.Second,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 5 * time.Second,
		MaxRetries:   3,
	})

	ctx := context.Background()

	// Test connection
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisClient{
		client: client,
		ctx:    ctx,
		prefix: sessionKeyPrefix,
	}, nil
}

// Get retrieves a value. A missing key yields nil, nil as fiber.Storage requires.
func (r *RedisClient) Get(key string) ([]byte, error) {
	if key == "" {
		return nil, nil
	}
	val, err := r.client.Get(r.ctx, r.prefix+key).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	return val, err
}

// Set stores a value. Empty keys and values are ignored; exp 0 means no expiration.
func (r *RedisClient) Set(key string, val []byte, exp time.Duration) error {
	if key == "" || len(val) == 0 {
		return nil
	}
	return r.client.Set(r.ctx, r.prefix+key, val, exp).Err()
}

// Delete removes a key.
func (r *RedisClient) Delete(key string) error {
	if key == "" {
		return nil
	}
	return r.client.Del(r.ctx, r.prefix+key).Err()
}

// Reset removes every session key, leaving other data in the database alone.
func (r *RedisClient) Reset() error {
	keys, err := r.client.Keys(r.ctx, r.prefix+"*").Result()
	if err != nil {
		return err
	}
	if len(keys) == 0 {
		return nil
	}
	return r.client.Del(r.ctx, keys...).Err()
}

// Close closes the Redis connection.
func (r *RedisClient) Close() error {
	return r.client.Close()
}
