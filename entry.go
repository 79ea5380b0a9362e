package hyperlimit

import "sync/atomic"

// entry is the per-key bucket state machine. Once constructed, the cold
// fields below (key, distributedKey, baseMaxTokens, refillMs, blockMs,
// maxPenaltyPoints, isSliding) are never mutated; recreating a key builds a
// brand new entry and swaps the slot's pointer rather than editing a live
// one, so a goroutine holding an *entry is always looking at a
// self-consistent policy.
//
// The hot fields are grouped first and padded out so they do not share a
// cache line with the cold, read-mostly fields below them. Go gives no
// alignas equivalent and the allocator makes no 64-byte alignment promise
// for the entry itself, so this is a best-effort translation of the
// original's explicit alignas(64) layout, not a guarantee.
type entry struct {
	tokens           atomic.Int64
	lastRefillMs     atomic.Int64
	blockUntilMs     atomic.Int64
	dynamicMaxTokens atomic.Int64
	penaltyPoints    atomic.Int64
	valid            atomic.Bool
	_                [20]byte // pad hot fields away from the cold ones below

	key              []byte
	distributedKey   []byte
	baseMaxTokens    int64
	refillMs         int64
	blockMs          int64
	maxPenaltyPoints int64
	isSliding        bool
}

// newEntry constructs a fully-initialized, valid entry for key under
// policy. It never mutates an existing entry; callers that need to
// "recreate" a key build a new one with this and swap the table slot.
func newEntry(key []byte, maxTokens, refillMs int64, sliding bool, blockMs, maxPenalty int64, distKey []byte) *entry {
	e := &entry{
		key:              key,
		distributedKey:   distKey,
		baseMaxTokens:    maxTokens,
		refillMs:         refillMs,
		blockMs:          blockMs,
		maxPenaltyPoints: maxPenalty,
		isSliding:        sliding,
	}
	e.tokens.Store(maxTokens)
	e.dynamicMaxTokens.Store(maxTokens)
	e.lastRefillMs.Store(nowMs())
	e.valid.Store(true)
	return e
}

// dynamicLimit computes the penalty-adjusted effective capacity for this
// entry, per the penalty calculator in spec §4.4. Pure with respect to its
// inputs; callers are responsible for publishing the result.
func (e *entry) dynamicLimit() int64 {
	return computeDynamicLimit(e.baseMaxTokens, e.penaltyPoints.Load(), e.maxPenaltyPoints)
}

// isBlocked reports whether the entry is currently in its post-exhaustion
// cooldown, clearing blockUntilMs if the cooldown has elapsed. Idempotent:
// repeated calls after expiry are all no-ops past the first.
func (e *entry) isBlocked(now int64) bool {
	until := e.blockUntilMs.Load()
	if until == 0 {
		return false
	}
	if now >= until {
		e.blockUntilMs.Store(0)
		return false
	}
	return true
}

// computeDynamicLimit is the pure penalty calculator: base limit reduced
// proportionally to accumulated penalty points, capped at a 90% reduction,
// and never pushed below max(ceil(base/10), 1).
func computeDynamicLimit(base, penaltyPoints, maxPenaltyPoints int64) int64 {
	if maxPenaltyPoints <= 0 || penaltyPoints <= 0 {
		return base
	}

	p := penaltyPoints
	if p > maxPenaltyPoints {
		p = maxPenaltyPoints
	}

	reduction := (p * base) / maxPenaltyPoints
	maxReduction := (base * 9) / 10
	if reduction > maxReduction {
		reduction = maxReduction
	}

	minLimit := (base + 9) / 10
	if minLimit < 1 {
		minLimit = 1
	}

	limit := base - reduction
	if limit < minLimit {
		limit = minLimit
	}
	return limit
}
