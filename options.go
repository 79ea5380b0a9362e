package hyperlimit

// Option configures a Registry at construction time, in the same
// functional-option shape as the teacher's MiddlewareOption.
type Option func(*registryConfig)

type registryConfig struct {
	bucketCount int
	storage     DistributedStorage
}

// WithBucketCount sets the initial bucket table size. Rounded up to the
// next power of two and floored at 1024 regardless of what is requested.
func WithBucketCount(n int) Option {
	return func(c *registryConfig) {
		c.bucketCount = n
	}
}

// WithDistributedStorage attaches a cluster-wide coordination backend.
// Registries constructed without this option operate purely locally.
func WithDistributedStorage(s DistributedStorage) Option {
	return func(c *registryConfig) {
		c.storage = s
	}
}

// LimiterOption configures an individual key's policy in CreateLimiter.
type LimiterOption func(*limiterPolicy)

type limiterPolicy struct {
	sliding          bool
	blockMs          int64
	maxPenaltyPoints int64
	distributedKey   string
}

// WithSlidingWindow makes the limiter refill proportionally to elapsed
// time instead of resetting to full capacity at each window boundary.
func WithSlidingWindow() LimiterOption {
	return func(p *limiterPolicy) {
		p.sliding = true
	}
}

// WithBlockDuration sets a post-exhaustion cooldown: once a request is
// denied with zero tokens, all further requests deny for blockMs
// milliseconds regardless of refill. Zero (the default) disables blocking.
func WithBlockDuration(blockMs int64) LimiterOption {
	return func(p *limiterPolicy) {
		p.blockMs = blockMs
	}
}

// WithMaxPenalty enables penalty-driven dynamic limit reduction, capping
// the accumulated penalty's effect at maxPoints. Zero (the default)
// disables dynamic reduction entirely.
func WithMaxPenalty(maxPoints int64) LimiterOption {
	return func(p *limiterPolicy) {
		p.maxPenaltyPoints = maxPoints
	}
}

// WithDistributedKey routes this limiter's acquisitions through the
// registry's DistributedStorage (if any) under key, which may differ from
// the limiter's local key. Empty (the default) keeps the limiter local-only
// even when a backend is attached.
func WithDistributedKey(key string) LimiterOption {
	return func(p *limiterPolicy) {
		p.distributedKey = key
	}
}
