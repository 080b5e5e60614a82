/*
Package leakybucket provides leaky bucket rate limiting.

A leaky bucket enforces a steady maximum throughput. Every admitted event
adds one unit to the bucket and the bucket drains continuously at Rate units
per second. An event that would push the level above Capacity is rejected,
not delayed, so bursts beyond the instantaneous headroom are dropped and the
sustained admission rate converges to Rate.

Basic usage:

	lb, err := leakybucket.New(3, ratelimit.PerSecond(1)) // capacity 3, drains 1/sec
	if err != nil {
		return err
	}
	if lb.Allow(ratelimit.Milliseconds(nowMs)) {
		// Process request
	}

Comparison with Token Bucket:

	// Token Bucket: starts full, allows an immediate burst of Capacity
	tb, _ := tokenbucket.New(10, 5)

	// Leaky Bucket: starts empty, fills up to Capacity and drains at Rate
	lb, _ := leakybucket.New(10, 5)

Both admit Capacity events at a single instant; they differ in what the
level means. A token bucket's level is credit that elapsed time earns, a
leaky bucket's level is occupancy that elapsed time removes.

Timestamps:

Allow takes a ratelimit.Timestamp. Millisecond readings convert with
ratelimit.Milliseconds; any resolution works as long as callers use one
monotonic timeline. A timestamp earlier than the previous call drains
nothing and never raises the headroom.

Thread Safety:

Allow is safe for concurrent use. Each call drains, tests and fills under
one mutex.
*/
package leakybucket
