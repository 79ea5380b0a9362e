package hyperlimit

// RateLimitInfo is the snapshot returned by GetRateLimitInfo, shaped for
// adapters that need to set HTTP rate-limit headers without reaching into
// engine internals.
type RateLimitInfo struct {
	Limit        int64
	Remaining    int64
	ResetMsEpoch int64
	Blocked      bool
	RetryAfterS  int64
}

// GetTokens returns key's current token count, or -1 if key is missing.
func (r *Registry) GetTokens(key string) int64 {
	e := r.table.find([]byte(key))
	if e == nil || !e.valid.Load() {
		return -1
	}
	return e.tokens.Load()
}

// GetCurrentLimit returns key's current dynamic limit, or -1 if key is
// missing.
func (r *Registry) GetCurrentLimit(key string) int64 {
	e := r.table.find([]byte(key))
	if e == nil || !e.valid.Load() {
		return -1
	}
	return e.dynamicMaxTokens.Load()
}

// GetRateLimitInfo returns a full snapshot for key, refilling first so the
// figures are current. Missing keys return a zeroed RateLimitInfo with
// Blocked false.
func (r *Registry) GetRateLimitInfo(key string) RateLimitInfo {
	e := r.table.find([]byte(key))
	if e == nil || !e.valid.Load() {
		return RateLimitInfo{}
	}

	now := nowMs()
	refill(e, r.storage, now)

	until := e.blockUntilMs.Load()
	blocked := until > now

	tokens := e.tokens.Load()
	if tokens < 0 {
		tokens = 0
	}
	if blocked {
		tokens = 0
	}

	retryAfterS := int64(0)
	if blocked {
		retryAfterS = (until - now) / 1000
		if retryAfterS < 0 {
			retryAfterS = 0
		}
	}

	return RateLimitInfo{
		Limit:        e.dynamicMaxTokens.Load(),
		Remaining:    tokens,
		ResetMsEpoch: e.lastRefillMs.Load() + e.refillMs,
		Blocked:      blocked,
		RetryAfterS:  retryAfterS,
	}
}
