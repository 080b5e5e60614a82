/*
Package tokenbucket provides token bucket rate limiting.

A token bucket holds up to Capacity tokens and refills continuously at Rate
tokens per second. Each admitted event spends one token, so the bucket
absorbs bursts of up to Capacity events and then settles to Rate events per
second. Over any window T it admits at most Capacity + Rate*T events.

Basic usage:

	tb, err := tokenbucket.New(5, ratelimit.PerMinute(60)) // burst 5, 1 token/sec
	if err != nil {
		return err
	}
	if tb.Admit(ratelimit.Milliseconds(nowMs)) {
		// Process request
	}

The bucket never reads a clock. Callers pass a monotonic Timestamp to
every Admit call; ratelimit.Clocked pairs a bucket with a Clock when that is
more convenient.

Configuration Options:

	tb, err := tokenbucket.NewWithConfig(tokenbucket.Config{
		Capacity:      20,
		Rate:          ratelimit.PerSecond(10),
		InitialTokens: 0,      // start empty; -1 starts full
		Logger:        logger, // debug log for out-of-order timestamps
	})

A non-positive capacity or rate, a NaN or infinite rate, or InitialTokens
above capacity fails construction with an error wrapping
errors.ErrInvalidConfiguration.

Thread Safety:

Admit is safe for concurrent use. Each call refills, tests and spends under
one mutex, so concurrent callers can never spend the same token twice.
*/
package tokenbucket
