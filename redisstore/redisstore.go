// Package redisstore implements hyperlimit.DistributedStorage on top of
// Redis, so that multiple Registry instances across processes can share one
// admission counter per key.
package redisstore

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/ratelimitcore/hyperlimit"
)

var (
	_ hyperlimit.DistributedStorage = (*Store)(nil)

	_ RedisClient = (*RedisClientAdapter)(nil)
	_ RedisClient = (*RedisClusterClientAdapter)(nil)
)

// RedisClient is the slice of Redis operations Store needs. Narrow on
// purpose so a fake implementation is trivial to write for tests.
type RedisClient interface {
	// Eval executes a Lua script.
	Eval(ctx context.Context, script string, keys []string, args ...any) (any, error)

	// Del deletes keys.
	Del(ctx context.Context, keys ...string) error
}

// Store is a Redis-backed DistributedStorage. Every key maintains a single
// integer counter in Redis; TryAcquire, Release, and Reset are each a single
// round trip via a server-side script so concurrent callers across
// processes never race on read-then-write.
type Store struct {
	client    RedisClient
	keyPrefix string
	ttl       time.Duration
}

// NewStore creates a Redis-backed DistributedStorage. keyPrefix namespaces
// every counter this Store touches; ttl bounds how long an idle counter
// survives in Redis (zero disables expiry, not recommended in production).
func NewStore(client RedisClient, keyPrefix string, ttl time.Duration) *Store {
	if client == nil {
		panic("redisstore: client must not be nil")
	}
	return &Store{client: client, keyPrefix: keyPrefix, ttl: ttl}
}

func (s *Store) key(k string) string {
	return s.keyPrefix + ":hl:" + k
}

// tryAcquireScript decrements the counter if positive, initializing it to
// maxTokens on first sight, and reports whether a token was claimed.
var tryAcquireScript = `
local key = KEYS[1]
local maxTokens = tonumber(ARGV[1])
local ttl = tonumber(ARGV[2])

local exists = redis.call('EXISTS', key)
local count
if exists == 0 then
    count = maxTokens
else
    count = tonumber(redis.call('GET', key))
end

local acquired = 0
if count > 0 then
    count = count - 1
    acquired = 1
end

redis.call('SET', key, count)
if ttl > 0 then
    redis.call('EXPIRE', key, ttl)
end

return acquired
`

// releaseScript adds n back to the counter, initializing it to n if absent
// rather than to some implied maxTokens — Release has no maxTokens argument
// by contract, so a Release on a key TryAcquire never saw simply seeds it.
var releaseScript = `
local key = KEYS[1]
local n = tonumber(ARGV[1])
local ttl = tonumber(ARGV[2])

local count = tonumber(redis.call('INCRBY', key, n))
if ttl > 0 then
    redis.call('EXPIRE', key, ttl)
end
return count
`

// resetScript sets the counter to maxTokens unconditionally. The original
// C++ distributed storage never implemented reset; this closes that gap so
// Registry's fixed-window refill can set the shared counter back to the
// local dynamic limit at each window boundary.
var resetScript = `
local key = KEYS[1]
local maxTokens = tonumber(ARGV[1])
local ttl = tonumber(ARGV[2])

redis.call('SET', key, maxTokens)
if ttl > 0 then
    redis.call('EXPIRE', key, ttl)
end
return maxTokens
`

// TryAcquire implements hyperlimit.DistributedStorage.
func (s *Store) TryAcquire(ctx context.Context, key string, maxTokens int64) (bool, error) {
	res, err := s.client.Eval(ctx, tryAcquireScript, []string{s.key(key)}, maxTokens, int64(s.ttl.Seconds()))
	if err != nil {
		return false, fmt.Errorf("redisstore: tryAcquire %q: %w", key, err)
	}
	return toInt64(res) == 1, nil
}

// Release implements hyperlimit.DistributedStorage.
func (s *Store) Release(ctx context.Context, key string, n int64) error {
	_, err := s.client.Eval(ctx, releaseScript, []string{s.key(key)}, n, int64(s.ttl.Seconds()))
	if err != nil {
		return fmt.Errorf("redisstore: release %q: %w", key, err)
	}
	return nil
}

// Reset implements hyperlimit.DistributedStorage.
func (s *Store) Reset(ctx context.Context, key string, maxTokens int64) error {
	_, err := s.client.Eval(ctx, resetScript, []string{s.key(key)}, maxTokens, int64(s.ttl.Seconds()))
	if err != nil {
		return fmt.Errorf("redisstore: reset %q: %w", key, err)
	}
	return nil
}

// Forget deletes key's counter entirely, for callers that remove a limiter
// locally and want its distributed state cleared too.
func (s *Store) Forget(ctx context.Context, key string) error {
	return s.client.Del(ctx, s.key(key))
}

func toInt64(v any) int64 {
	switch val := v.(type) {
	case int64:
		return val
	case int:
		return int64(val)
	case float64:
		return int64(val)
	case string:
		i, _ := strconv.ParseInt(val, 10, 64)
		return i
	default:
		return 0
	}
}
