// Package hyperlimit provides a lock-free, multi-tenant token-bucket rate
// limiting engine for high-throughput services.
//
// # Features
//
// - Lock-free token bucket with fixed-window or sliding-window refill
// - Dynamic capacity reduction via a penalty accumulator
// - Optional distributed coordination with fail-open degradation
// - Per-client allow/deny lists, deny takes precedence
// - Bucket table resize that never blocks lock-free lookups
// - Aggregate request statistics
//
// # Quick Start
//
//	reg := hyperlimit.New()
//	if err := reg.CreateLimiter("user:123", 20, 1000); err != nil {
//	    // invalid arguments
//	}
//	if reg.TryRequest("user:123") {
//	    // serve the request
//	}
//
// # Sliding Window
//
// By default a bucket refills in discrete fixed windows. WithSlidingWindow
// spreads the refill proportionally across elapsed time instead:
//
//	reg.CreateLimiter("user:123", 100, 60000, hyperlimit.WithSlidingWindow())
//
// # Blocking and Penalties
//
// A limiter can impose a cooldown after exhaustion, and its effective
// capacity can be reduced by an external penalty signal:
//
//	reg.CreateLimiter("user:123", 100, 60000,
//	    hyperlimit.WithBlockDuration(5000),
//	    hyperlimit.WithMaxPenalty(50),
//	)
//	reg.AddPenalty("user:123", 20)    // shrinks the dynamic limit
//	reg.RemovePenalty("user:123", 20) // restores it
//
// # Distributed Coordination
//
// A Registry can coordinate admission through a shared DistributedStorage
// backend (see the redisstore submodule for a Redis-backed implementation).
// A backend error degrades to local-only admission rather than blocking
// requests:
//
//	reg := hyperlimit.New(hyperlimit.WithDistributedStorage(store))
//	reg.CreateLimiter("user:123", 100, 60000, hyperlimit.WithDistributedKey("user:123"))
//
// # Allow and Deny Lists
//
// TryRequestClient consults per-registry allow/deny lists before touching
// the bucket table. A client on both lists is denied:
//
//	reg.AddToBlacklist("abuser:1")
//	reg.AddToWhitelist("partner:7")
//	reg.TryRequestClient("user:123", "partner:7") // bypasses the bucket
//
// # Introspection
//
//	info := reg.GetRateLimitInfo("user:123")
//	if info.Blocked {
//	    fmt.Printf("retry after %ds\n", info.RetryAfterS)
//	}
//
// # Statistics
//
//	stats := reg.GetStats()
//	fmt.Printf("allow rate: %.2f%%\n", stats.AllowRate*100)
//
// # Metrics
//
// Prometheus integration wraps GetStats (see the metrics package):
//
//	import "github.com/ratelimitcore/hyperlimit/metrics"
//
//	collector := metrics.NewCollector()
//	collector.Register("api", reg)
//	prometheus.MustRegister(collector)
//
// # Thread Safety
//
// Registry and every method on it are safe for concurrent use. No method
// blocks or allocates beyond what table resize and allow/deny-list
// mutation require.
package hyperlimit
