package hyperlimit

import "fmt"

// Registry is the engine's single public object: a fixed-capacity bucket
// table plus optional allow/deny lists and an optional distributed
// backend. Construct with New; there is no package-level shared instance —
// any "global" registry is the caller's choice, not this package's.
type Registry struct {
	table     *registryTable
	storage   DistributedStorage
	whitelist *clientList
	blacklist *clientList
	stats     requestStats
}

// New constructs a Registry. With no options, the table starts at the
// minimum size (1024 buckets, rounded up to a power of two as configured)
// and there is no distributed backend — every limiter is local-only until
// given a distributed key on a registry that also has WithDistributedStorage.
func New(opts ...Option) *Registry {
	cfg := registryConfig{bucketCount: minBucketCount}
	for _, opt := range opts {
		opt(&cfg)
	}

	return &Registry{
		table:     newRegistryTable(cfg.bucketCount),
		storage:   cfg.storage,
		whitelist: newClientList(),
		blacklist: newClientList(),
	}
}

// CreateLimiter creates or atomically replaces the policy for key. Fails
// with an error wrapping ErrInvalidArgument if key is empty, maxTokens is
// negative, refillMs is not positive, or options set a negative blockMs or
// maxPenalty. Replacing an existing key never mutates the live entry in
// place: a brand new entry is built and the slot's pointer is swapped, so
// any in-flight TryRequest against the old policy runs to completion
// unaffected.
func (r *Registry) CreateLimiter(key string, maxTokens, refillMs int64, opts ...LimiterOption) error {
	if key == "" {
		return fmt.Errorf("%w: key must not be empty", ErrInvalidArgument)
	}
	if maxTokens < 0 {
		return fmt.Errorf("%w: maxTokens must not be negative", ErrInvalidArgument)
	}
	if refillMs <= 0 {
		return fmt.Errorf("%w: refillMs must be positive", ErrInvalidArgument)
	}

	policy := limiterPolicy{}
	for _, opt := range opts {
		opt(&policy)
	}

	if policy.blockMs < 0 {
		return fmt.Errorf("%w: blockMs must not be negative", ErrInvalidArgument)
	}
	if policy.maxPenaltyPoints < 0 {
		return fmt.Errorf("%w: maxPenalty must not be negative", ErrInvalidArgument)
	}

	var distKey []byte
	if policy.distributedKey != "" {
		distKey = []byte(policy.distributedKey)
	}

	e := newEntry([]byte(key), maxTokens, refillMs, policy.sliding, policy.blockMs, policy.maxPenaltyPoints, distKey)
	r.table.createOrReplace(e)
	return nil
}

// RemoveLimiter removes key's policy. No-op if key is not present.
func (r *Registry) RemoveLimiter(key string) {
	r.table.remove([]byte(key))
}
