package hyperlimit

import "context"

// TryRequest is the hot-path entry point: decides whether a request for
// key may proceed, per the acquisition protocol in spec §4.5. Never
// blocks and never returns an error — an absent or invalid key is treated
// as a denial, and any distributed backend failure is swallowed and
// degrades to local-only admission.
func (r *Registry) TryRequest(key string) bool {
	return r.tryRequest(key, "")
}

// TryRequestClient is TryRequest with an additional client identifier
// consulted against the registry's allow/deny lists before any bucket
// work. A deny-listed client is always refused; an allow-listed one always
// proceeds, bypassing the bucket entirely — if a client is on both lists,
// deny wins.
func (r *Registry) TryRequestClient(key, clientID string) bool {
	return r.tryRequest(key, clientID)
}

func (r *Registry) tryRequest(key, clientID string) bool {
	r.stats.total.Add(1)

	if clientID != "" {
		if r.blacklist.contains(clientID) {
			r.stats.blocked.Add(1)
			return false
		}
		if r.whitelist.contains(clientID) {
			r.stats.allowed.Add(1)
			return true
		}
	}

	e := r.table.find([]byte(key))
	if e == nil || !e.valid.Load() {
		r.stats.blocked.Add(1)
		return false
	}

	now := nowMs()
	if e.isBlocked(now) {
		r.stats.blocked.Add(1)
		return false
	}

	refill(e, r.storage, now)

	distributed := false
	if r.storage != nil && len(e.distributedKey) > 0 {
		acquired, err := r.storage.TryAcquire(context.Background(), string(e.distributedKey), e.dynamicMaxTokens.Load())
		if err == nil {
			if !acquired {
				r.stats.blocked.Add(1)
				return false
			}
			distributed = true
		}
		// err != nil: backend failure degrades to local-only, per spec §4.5.
	}

	for {
		t := e.tokens.Load()
		if t <= 0 {
			if distributed {
				_ = r.storage.Release(context.Background(), string(e.distributedKey), 1)
			}
			if e.blockMs > 0 {
				e.blockUntilMs.Store(now + e.blockMs)
			}
			r.stats.blocked.Add(1)
			return false
		}
		if e.tokens.CompareAndSwap(t, t-1) {
			r.stats.allowed.Add(1)
			if e.penaltyPoints.Load() > 0 {
				r.stats.penalized.Add(1)
			}
			return true
		}
	}
}
