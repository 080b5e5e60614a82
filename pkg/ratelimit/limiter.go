package ratelimit

// Limiter is a bounded reservoir that decides, one event at a time, whether
// an event is admitted at the given timestamp.
//
// Implementations are safe for concurrent use: every TryAdmit is an atomic
// read-modify-write of the limiter's level and last-update timestamp.
type Limiter interface {
	// TryAdmit reports whether one event is admitted at now. A timestamp
	// earlier than the previous call counts as zero elapsed time.
	TryAdmit(now Timestamp) bool

	// Level returns the reservoir level as of the last call. It does not
	// advance time.
	Level() float64

	// Capacity returns the maximum level.
	Capacity() int

	// Rate returns the refill or drain rate.
	Rate() Rate

	// Kind names the algorithm, e.g. "token_bucket".
	Kind() string
}

// Clocked pairs a Limiter with the Clock its caller reads. The limiter
// itself never reads a clock.
type Clocked struct {
	limiter Limiter
	clock   Clock
}

// NewClocked returns a Clocked reading clock for every decision.
// A nil clock means a fresh MonotonicClock.
func NewClocked(limiter Limiter, clock Clock) *Clocked {
	if clock == nil {
		clock = NewMonotonicClock()
	}
	return &Clocked{limiter: limiter, clock: clock}
}

// Allow reports whether one event is admitted now.
//
// The clock is read before the limiter's lock is taken, so concurrent
// callers may reach the limiter with slightly out-of-order timestamps.
// The limiter treats those as zero elapsed time.
func (c *Clocked) Allow() bool {
	return c.limiter.TryAdmit(c.clock.Now())
}

// Limiter returns the wrapped limiter.
func (c *Clocked) Limiter() Limiter {
	return c.limiter
}

// Clock returns the clock used for decisions.
func (c *Clocked) Clock() Clock {
	return c.clock
}
