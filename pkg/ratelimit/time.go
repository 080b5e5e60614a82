package ratelimit

import (
	"math"
	"time"
)

// Timestamp is a point on a monotonic timeline, expressed in nanoseconds
// from an origin chosen by the caller. Only differences between timestamps
// are meaningful; the origin itself is never treated as elapsed time.
//
// Both limiters accept Timestamp, so callers holding second or millisecond
// readings convert once with Seconds or Milliseconds.
type Timestamp int64

// Seconds returns the Timestamp s seconds after the origin.
func Seconds(s int64) Timestamp {
	return scale(s, int64(time.Second))
}

// Milliseconds returns the Timestamp ms milliseconds after the origin.
func Milliseconds(ms int64) Timestamp {
	return scale(ms, int64(time.Millisecond))
}

// FromDuration returns the Timestamp d after the origin.
func FromDuration(d time.Duration) Timestamp {
	return Timestamp(d)
}

// Add returns t shifted by d, saturating at the int64 bounds.
func (t Timestamp) Add(d time.Duration) Timestamp {
	sum := int64(t) + int64(d)
	switch {
	case d > 0 && sum < int64(t):
		return Timestamp(math.MaxInt64)
	case d < 0 && sum > int64(t):
		return Timestamp(math.MinInt64)
	}
	return Timestamp(sum)
}

// Sub returns the duration t-u, saturating at the int64 bounds.
func (t Timestamp) Sub(u Timestamp) time.Duration {
	diff := int64(t) - int64(u)
	switch {
	case u < 0 && diff < int64(t):
		return time.Duration(math.MaxInt64)
	case u > 0 && diff > int64(t):
		return time.Duration(math.MinInt64)
	}
	return time.Duration(diff)
}

// Duration returns the offset of t from the origin.
func (t Timestamp) Duration() time.Duration {
	return time.Duration(t)
}

// Milliseconds returns t truncated to whole milliseconds.
func (t Timestamp) Milliseconds() int64 {
	return time.Duration(t).Milliseconds()
}

func (t Timestamp) String() string {
	return time.Duration(t).String()
}

func scale(n, unit int64) Timestamp {
	if n > math.MaxInt64/unit {
		return Timestamp(math.MaxInt64)
	}
	if n < math.MinInt64/unit {
		return Timestamp(math.MinInt64)
	}
	return Timestamp(n * unit)
}

// Rate is a number of units per second. For a token bucket it is the refill
// rate; for a leaky bucket it is the drain rate.
type Rate float64

// PerSecond returns a Rate of n units per second.
func PerSecond(n float64) Rate {
	return Rate(n)
}

// PerMinute returns a Rate of n units per minute. The conversion is real
// valued: PerMinute(30) is half a unit per second, not zero.
func PerMinute(n float64) Rate {
	return Rate(n / 60)
}

// Per returns a Rate of n units every interval. A non-positive interval
// yields +Inf, which limiter constructors reject.
func Per(n float64, interval time.Duration) Rate {
	if interval <= 0 {
		return Rate(math.Inf(1))
	}
	return Rate(n / interval.Seconds())
}

// Every converts a minimum interval between events to a Rate.
func Every(interval time.Duration) Rate {
	return Per(1, interval)
}

// Units returns how many units the rate produces over elapsed.
// Negative elapsed counts as zero.
func (r Rate) Units(elapsed time.Duration) float64 {
	if elapsed <= 0 {
		return 0
	}
	return elapsed.Seconds() * float64(r)
}
