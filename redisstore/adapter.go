package redisstore

import (
	"context"

	"github.com/redis/go-redis/v9"
)

// RedisClientAdapter adapts a go-redis client to RedisClient.
type RedisClientAdapter struct {
	client *redis.Client
}

// NewRedisClientAdapter creates a new Redis client adapter.
func NewRedisClientAdapter(client *redis.Client) *RedisClientAdapter {
	return &RedisClientAdapter{client: client}
}

// Eval executes a Lua script.
func (a *RedisClientAdapter) Eval(ctx context.Context, script string, keys []string, args ...any) (any, error) {
	return a.client.Eval(ctx, script, keys, args...).Result()
}

// Del deletes keys.
func (a *RedisClientAdapter) Del(ctx context.Context, keys ...string) error {
	return a.client.Del(ctx, keys...).Err()
}

// RedisClusterClientAdapter adapts a go-redis cluster client to RedisClient.
type RedisClusterClientAdapter struct {
	client *redis.ClusterClient
}

// NewRedisClusterClientAdapter creates a new Redis cluster client adapter.
func NewRedisClusterClientAdapter(client *redis.ClusterClient) *RedisClusterClientAdapter {
	return &RedisClusterClientAdapter{client: client}
}

// Eval executes a Lua script.
func (a *RedisClusterClientAdapter) Eval(ctx context.Context, script string, keys []string, args ...any) (any, error) {
	return a.client.Eval(ctx, script, keys, args...).Result()
}

// Del deletes keys.
func (a *RedisClusterClientAdapter) Del(ctx context.Context, keys ...string) error {
	return a.client.Del(ctx, keys...).Err()
}
