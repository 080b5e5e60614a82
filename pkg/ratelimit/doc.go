/*
Package ratelimit defines the admission-control capability shared by the
bucketflow limiters, together with the time and rate types they use.

Two algorithms implement Limiter:

  - tokenbucket: burst-tolerant. A reservoir of tokens refills at a fixed
    rate; an event is admitted while at least one token is available.
  - leakybucket: steady drain. A fill level drains at a fixed rate; an event
    is admitted while adding one unit stays within capacity.

Both answer one question per call:

	tb, err := tokenbucket.New(5, ratelimit.PerMinute(60))
	if err != nil {
		return err
	}
	if tb.Admit(ratelimit.Seconds(12)) {
		// handle the event
	}

Time:

Limiters never read a clock. Every decision takes a Timestamp, a
nanosecond offset on a monotonic timeline whose origin the caller picks.
Seconds and Milliseconds convert coarse readings, and MonotonicClock
produces timestamps from the runtime's monotonic clock:

	clocked := ratelimit.NewClocked(tb, ratelimit.NewMonotonicClock())
	if clocked.Allow() {
		// ...
	}

The first call to a limiter anchors its timeline and is never credited with
time elapsed since the origin. A timestamp earlier than the previous one is
treated as zero elapsed time.

Rates:

Rate is units per second. PerMinute, Per and Every convert other
intervals using real arithmetic, so PerMinute(30) refills half a token per
second.

Concurrency:

Every limiter is safe for concurrent use; each decision is one atomic
read-modify-write of the limiter's level and anchor. Limiters share no
state with each other and start no goroutines.

Metrics:

Instrument wraps any Limiter with Prometheus counters and gauges from the
metrics package.
*/
package ratelimit
