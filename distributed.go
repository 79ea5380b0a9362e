package hyperlimit

import "context"

// DistributedStorage is the boundary contract the core calls into for
// cluster-wide coordination. Implementations must make each method atomic
// with respect to the shared counter they maintain for key — natively, via
// compare-and-swap retry, or via a server-side script. The core tolerates
// any method failing: every call site swallows the error and degrades to
// local-only behavior, per spec §4.5 and §7's BackendTransient kind.
//
// Keys passed here are never sanitized by the core; any character
// restrictions are the implementation's concern.
type DistributedStorage interface {
	// TryAcquire atomically decrements the shared counter for key if it is
	// greater than zero, initializing it to maxTokens on first sight, and
	// reports whether a token was claimed.
	TryAcquire(ctx context.Context, key string, maxTokens int64) (bool, error)

	// Release adds n back to the shared counter for key.
	Release(ctx context.Context, key string, n int64) error

	// Reset sets the shared counter for key to maxTokens.
	Reset(ctx context.Context, key string, maxTokens int64) error
}
