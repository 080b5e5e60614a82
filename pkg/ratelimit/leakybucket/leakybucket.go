package leakybucket

import (
	"github.com/vnykmshr/bucketflow/pkg/ratelimit"
)

// Allow reports whether one event is admitted at now, adding a unit if so.
//
// The first call anchors the bucket's timeline without draining. Later
// calls drain the time elapsed since the previous call before testing for
// headroom. The timeline advances to now on every call; a denied event
// leaves the level unchanged.
func (lb *LeakyBucket) Allow(now ratelimit.Timestamp) bool {
	return lb.res.Step(now)
}

// TryAdmit is Allow; it satisfies ratelimit.Limiter.
func (lb *LeakyBucket) TryAdmit(now ratelimit.Timestamp) bool {
	return lb.Allow(now)
}

// Level returns the fill level as of the last call.
func (lb *LeakyBucket) Level() float64 {
	return lb.res.Level()
}

// Available returns the headroom as of the last call.
func (lb *LeakyBucket) Available() float64 {
	return float64(lb.capacity) - lb.res.Level()
}

// Capacity returns the bucket capacity.
func (lb *LeakyBucket) Capacity() int {
	return lb.capacity
}

// Rate returns the drain rate.
func (lb *LeakyBucket) Rate() ratelimit.Rate {
	return lb.res.Rate()
}

// Kind returns "leaky_bucket".
func (lb *LeakyBucket) Kind() string {
	return Kind
}

// ClockSkews returns how many timestamps arrived earlier than the previous one.
func (lb *LeakyBucket) ClockSkews() uint64 {
	return lb.res.Skews()
}

// LastUpdate returns the timestamp the bucket was last drained to and
// whether any call has anchored it yet.
func (lb *LeakyBucket) LastUpdate() (ratelimit.Timestamp, bool) {
	s := lb.res.Snapshot()
	return s.LastUpdate, s.Anchored
}
