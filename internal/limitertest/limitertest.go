// Package limitertest holds the conformance suite every ratelimit.Limiter
// implementation runs, so both algorithms are held to identical clamping,
// anchoring and clock-skew behavior.
package limitertest

import (
	"math"
	"math/rand"
	"sync/atomic"
	"testing"
	"time"

	"github.com/vnykmshr/bucketflow/internal/testutil"
	"github.com/vnykmshr/bucketflow/pkg/ratelimit"
)

// Factory builds a fresh limiter in its default initial state.
type Factory func(t *testing.T, capacity int, rate ratelimit.Rate) ratelimit.Limiter

// Suite describes the implementation under test.
type Suite struct {
	New Factory

	// Refills is true when elapsed time raises the level (token bucket)
	// and false when it lowers it (leaky bucket).
	Refills bool
}

// Run executes every conformance check as a subtest.
func Run(t *testing.T, s Suite) {
	t.Run("LevelStaysWithinBounds", s.testLevelBounds)
	t.Run("BurstAdmitsExactlyCapacity", s.testBurst)
	t.Run("SustainedRate", s.testSustainedRate)
	t.Run("AdmissionsBoundedByCapacityPlusRate", s.testUpperBound)
	t.Run("FirstCallIgnoresOrigin", s.testFirstCallAnchoring)
	t.Run("SkewedTimestampCountsAsZeroElapsed", s.testSkew)
	t.Run("LongIdleSaturates", s.testLongIdle)
	t.Run("ConcurrentCallersAreExclusive", s.testConcurrentExclusivity)
}

func (s Suite) testLevelBounds(t *testing.T) {
	const capacity = 4
	lim := s.New(t, capacity, ratelimit.PerSecond(3))
	rng := rand.New(rand.NewSource(42))

	now := ratelimit.Seconds(1000)
	for i := 0; i < 5000; i++ {
		switch rng.Intn(5) {
		case 0:
			now = now.Add(-time.Duration(rng.Intn(2000)) * time.Millisecond)
		case 1:
			now = now.Add(time.Duration(rng.Intn(3600)) * time.Second)
		default:
			now = now.Add(time.Duration(rng.Intn(400)) * time.Millisecond)
		}
		lim.TryAdmit(now)

		level := lim.Level()
		if level < 0 || level > capacity || math.IsNaN(level) {
			t.Fatalf("call %d at %v: level %v outside [0, %d]", i, now, level, capacity)
		}
	}
}

func (s Suite) testBurst(t *testing.T) {
	const capacity = 5
	lim := s.New(t, capacity, ratelimit.PerMinute(60))

	admitted := 0
	for i := 0; i < 2*capacity; i++ {
		if lim.TryAdmit(0) {
			admitted++
		} else if i < capacity {
			t.Fatalf("call %d denied before capacity was reached", i+1)
		}
	}
	testutil.AssertEqual(t, admitted, capacity)
}

func (s Suite) testSustainedRate(t *testing.T) {
	const capacity = 3
	lim := s.New(t, capacity, ratelimit.PerMinute(60))

	now := ratelimit.Timestamp(0)
	for lim.TryAdmit(now) {
	}

	for i := 0; i < 500; i++ {
		now = now.Add(time.Second)
		if !lim.TryAdmit(now) {
			t.Fatalf("tick %d: expected one admission after 1s", i+1)
		}
		if lim.TryAdmit(now) {
			t.Fatalf("tick %d: expected a second admission at the same timestamp to be denied", i+1)
		}
	}
}

func (s Suite) testUpperBound(t *testing.T) {
	const capacity = 10
	rate := ratelimit.PerSecond(7.5)
	lim := s.New(t, capacity, rate)

	start := ratelimit.Seconds(50)
	now := start
	admitted := 0
	for i := 0; i < 20000; i++ {
		if lim.TryAdmit(now) {
			admitted++
		}
		now = now.Add(time.Millisecond)

		window := now.Sub(start)
		bound := capacity + rate.Units(window)
		if float64(admitted) > bound+testutil.FloatTolerance {
			t.Fatalf("after %v: %d admissions exceed bound %.3f", window, admitted, bound)
		}
	}
}

func (s Suite) testFirstCallAnchoring(t *testing.T) {
	const capacity = 3
	atOrigin := s.New(t, capacity, ratelimit.PerSecond(1))
	farOut := s.New(t, capacity, ratelimit.PerSecond(1))

	late := ratelimit.Seconds(1 << 30)
	for i := 0; i < capacity+1; i++ {
		a := atOrigin.TryAdmit(ratelimit.Seconds(0))
		b := farOut.TryAdmit(late)
		if a != b {
			t.Fatalf("call %d: first-call timestamp changed the outcome (%v vs %v)", i+1, a, b)
		}
		testutil.AssertFloat(t, farOut.Level(), atOrigin.Level())
	}
}

func (s Suite) testSkew(t *testing.T) {
	const capacity = 4
	rate := ratelimit.PerSecond(2)
	skewed := s.New(t, capacity, rate)
	reference := s.New(t, capacity, rate)

	now := ratelimit.Seconds(10)
	for i := 0; i < capacity; i++ {
		skewed.TryAdmit(now)
		reference.TryAdmit(now)
	}
	now = now.Add(700 * time.Millisecond)
	skewed.TryAdmit(now)
	reference.TryAdmit(now)

	for i, back := range []time.Duration{time.Millisecond, time.Second, time.Hour} {
		before := skewed.Level()
		got := skewed.TryAdmit(now.Add(-back))
		want := reference.TryAdmit(now)
		testutil.AssertEqual(t, got, want)
		testutil.AssertFloat(t, skewed.Level(), reference.Level())

		if !got {
			if s.Refills && skewed.Level() > before {
				t.Fatalf("skew %d: level rose from %v to %v", i, before, skewed.Level())
			}
			if !s.Refills && skewed.Level() < before {
				t.Fatalf("skew %d: level fell from %v to %v", i, before, skewed.Level())
			}
		}
	}

	// A skewed call must not rewind the anchor: the next on-time call sees
	// only the time since now.
	later := now.Add(500 * time.Millisecond)
	testutil.AssertEqual(t, skewed.TryAdmit(later), reference.TryAdmit(later))
	testutil.AssertFloat(t, skewed.Level(), reference.Level())
}

func (s Suite) testLongIdle(t *testing.T) {
	const capacity = 6
	lim := s.New(t, capacity, ratelimit.PerSecond(1))

	for lim.TryAdmit(0) {
	}

	idle := ratelimit.Timestamp(math.MaxInt64)
	if !lim.TryAdmit(idle) {
		t.Fatal("expected admission after a long idle gap")
	}

	want := 1.0
	if s.Refills {
		want = capacity - 1
	}
	testutil.AssertFloat(t, lim.Level(), want)
}

func (s Suite) testConcurrentExclusivity(t *testing.T) {
	const (
		capacity   = 100
		goroutines = 64
		perCaller  = 10
	)
	lim := s.New(t, capacity, ratelimit.PerSecond(1))

	var admitted int64
	testutil.Parallel(goroutines, func(int) {
		for j := 0; j < perCaller; j++ {
			if lim.TryAdmit(ratelimit.Seconds(5)) {
				atomic.AddInt64(&admitted, 1)
			}
		}
	})

	testutil.AssertEqual(t, atomic.LoadInt64(&admitted), int64(capacity))

	want := float64(capacity)
	if s.Refills {
		want = 0
	}
	testutil.AssertFloat(t, lim.Level(), want)
}
