package tokenbucket

import (
	"github.com/vnykmshr/bucketflow/pkg/ratelimit"
)

// Admit reports whether one event is admitted at now, spending a token if so.
//
// Tokens earned since the previous call are added first, capped at
// capacity. The bucket's timeline advances to now whether or not the event
// is admitted, so no elapsed time is lost or counted twice.
func (tb *TokenBucket) Admit(now ratelimit.Timestamp) bool {
	return tb.res.Step(now)
}

// TryAdmit is Admit; it satisfies ratelimit.Limiter.
func (tb *TokenBucket) TryAdmit(now ratelimit.Timestamp) bool {
	return tb.Admit(now)
}

// Tokens returns the number of tokens available as of the last call.
func (tb *TokenBucket) Tokens() float64 {
	return tb.res.Level()
}

// Level is Tokens.
func (tb *TokenBucket) Level() float64 {
	return tb.res.Level()
}

// Available returns the number of whole events that could be admitted
// immediately, ignoring any refill since the last call.
func (tb *TokenBucket) Available() int {
	return int(tb.res.Level())
}

// Capacity returns the maximum number of tokens.
func (tb *TokenBucket) Capacity() int {
	return tb.capacity
}

// Rate returns the refill rate.
func (tb *TokenBucket) Rate() ratelimit.Rate {
	return tb.res.Rate()
}

// Kind returns "token_bucket".
func (tb *TokenBucket) Kind() string {
	return Kind
}

// ClockSkews returns how many timestamps arrived earlier than the previous one.
func (tb *TokenBucket) ClockSkews() uint64 {
	return tb.res.Skews()
}

// LastUpdate returns the timestamp the bucket was last synchronized to and
// whether any call has anchored it yet.
func (tb *TokenBucket) LastUpdate() (ratelimit.Timestamp, bool) {
	s := tb.res.Snapshot()
	return s.LastUpdate, s.Anchored
}
