package ratelimit

import "time"

// Clock provides the current time on a monotonic timeline. It can be mocked
// for testing.
type Clock interface {
	Now() Timestamp
}

// MonotonicClock implements Clock using the runtime's monotonic clock.
// Readings are offsets from the moment the clock was created, so they are
// unaffected by wall-clock adjustments.
type MonotonicClock struct {
	origin time.Time
}

// NewMonotonicClock returns a MonotonicClock whose origin is now.
func NewMonotonicClock() *MonotonicClock {
	return &MonotonicClock{origin: time.Now()}
}

// Now returns the time elapsed since the clock's origin.
func (c *MonotonicClock) Now() Timestamp {
	return FromDuration(time.Since(c.origin))
}

// ClockFunc adapts an ordinary function to the Clock interface.
type ClockFunc func() Timestamp

// Now calls f.
func (f ClockFunc) Now() Timestamp {
	return f()
}
