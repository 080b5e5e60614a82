// Package reservoir implements the bounded, time-adjusted level shared by
// the token bucket and leaky bucket limiters.
package reservoir

import (
	"math"
	"sync"

	"go.uber.org/zap"

	"github.com/vnykmshr/bucketflow/pkg/ratelimit"
)

// Strategy supplies the two algorithm-specific steps of an admission.
// The reservoir clamps the level to [0, capacity] after each of them.
type Strategy interface {
	// Adjust applies units of elapsed-time adjustment to level.
	Adjust(level, units float64) float64

	// Admit decides one event against level and returns the new level.
	Admit(level, capacity float64) (float64, bool)
}

// Config holds the parameters of a Reservoir. Values are assumed validated.
type Config struct {
	Capacity int
	Rate     ratelimit.Rate
	Level    float64
	Strategy Strategy
	Logger   *zap.Logger
}

// State is a point-in-time copy of a reservoir's mutable fields.
type State struct {
	Level      float64
	LastUpdate ratelimit.Timestamp
	Anchored   bool
}

// Reservoir is a capacity-bounded level adjusted by elapsed time.
type Reservoir struct {
	mu       sync.Mutex
	capacity float64
	rate     ratelimit.Rate
	level    float64
	last     ratelimit.Timestamp
	anchored bool
	skews    uint64
	strategy Strategy
	log      *zap.Logger
}

// New creates a Reservoir. The timeline stays unanchored until the first Step.
func New(config Config) *Reservoir {
	log := config.Logger
	if log == nil {
		log = zap.NewNop()
	}
	capacity := float64(config.Capacity)
	return &Reservoir{
		capacity: capacity,
		rate:     config.Rate,
		level:    clamp(config.Level, capacity),
		strategy: config.Strategy,
		log:      log,
	}
}

// Step synchronizes the level to now and decides one event.
func (r *Reservoir) Step(now ratelimit.Timestamp) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.advance(now)

	level, admitted := r.strategy.Admit(r.level, r.capacity)
	r.level = clamp(level, r.capacity)
	return admitted
}

// advance applies the time elapsed since the last update. The first call
// only anchors the timeline. A timestamp behind the anchor contributes no
// time and leaves the anchor where it is.
func (r *Reservoir) advance(now ratelimit.Timestamp) {
	if !r.anchored {
		r.last = now
		r.anchored = true
		return
	}

	if now < r.last {
		r.skews++
		r.log.Debug("timestamp behind last update, treating elapsed time as zero",
			zap.Stringer("now", now),
			zap.Stringer("last_update", r.last),
			zap.Uint64("skews", r.skews))
		return
	}

	units := r.rate.Units(now.Sub(r.last))
	r.level = clamp(r.strategy.Adjust(r.level, units), r.capacity)
	r.last = now
}

// Level returns the level as of the last Step.
func (r *Reservoir) Level() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.level
}

// Snapshot returns a copy of the mutable state.
func (r *Reservoir) Snapshot() State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return State{Level: r.level, LastUpdate: r.last, Anchored: r.anchored}
}

// Skews returns how many timestamps arrived behind the anchor.
func (r *Reservoir) Skews() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.skews
}

// Capacity returns the capacity as a float.
func (r *Reservoir) Capacity() float64 {
	return r.capacity
}

// Rate returns the adjustment rate.
func (r *Reservoir) Rate() ratelimit.Rate {
	return r.rate
}

func clamp(level, capacity float64) float64 {
	if math.IsNaN(level) || level < 0 {
		return 0
	}
	return math.Min(level, capacity)
}
