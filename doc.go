/*
Package bucketflow provides token bucket and leaky bucket rate limiters driven
by caller-supplied timestamps.

Rate Limiting (pkg/ratelimit):
  - tokenbucket: Burst-tolerant limiting; bursts up to capacity, then a steady rate
  - leakybucket: Smooth limiting; admitted events fill the bucket, which drains steadily
  - config: Build named limiters from YAML or generic maps

Observability (pkg/metrics):
  - Prometheus counters and gauges for admissions, denials, level and clock skew

Example usage:

	import (
		"github.com/vnykmshr/bucketflow/pkg/ratelimit"
		"github.com/vnykmshr/bucketflow/pkg/ratelimit/tokenbucket"
	)

	tb, _ := tokenbucket.New(20, ratelimit.PerSecond(10)) // burst 20, 10 RPS
	limiter := ratelimit.NewClocked(tb, nil)              // monotonic clock

	if limiter.Allow() {
		// Process request
	}

Limiters never read a clock themselves: TryAdmit takes the current
ratelimit.Timestamp, so the same limiter can be replayed against a synthetic
timeline (see cmd/bucketsim) or driven by a real one.
*/
package bucketflow
