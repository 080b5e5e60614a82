package ratelimit_test

import (
	"math"
	"testing"
	"time"

	"github.com/vnykmshr/bucketflow/internal/testutil"
	"github.com/vnykmshr/bucketflow/pkg/ratelimit"
)

func TestTimestampConstructors(t *testing.T) {
	testutil.AssertEqual(t, ratelimit.Seconds(2), ratelimit.Milliseconds(2000))
	testutil.AssertEqual(t, ratelimit.FromDuration(1500*time.Millisecond), ratelimit.Milliseconds(1500))
	testutil.AssertEqual(t, ratelimit.Milliseconds(1500).Milliseconds(), int64(1500))
	testutil.AssertEqual(t, ratelimit.Seconds(3).Duration(), 3*time.Second)
	testutil.AssertEqual(t, ratelimit.Seconds(3).String(), "3s")
}

func TestTimestampSaturates(t *testing.T) {
	testutil.AssertEqual(t, ratelimit.Seconds(math.MaxInt64), ratelimit.Timestamp(math.MaxInt64))
	testutil.AssertEqual(t, ratelimit.Seconds(math.MinInt64), ratelimit.Timestamp(math.MinInt64))

	maxTS := ratelimit.Timestamp(math.MaxInt64)
	minTS := ratelimit.Timestamp(math.MinInt64)
	testutil.AssertEqual(t, maxTS.Add(time.Second), maxTS)
	testutil.AssertEqual(t, minTS.Add(-time.Second), minTS)
	testutil.AssertEqual(t, maxTS.Sub(minTS), time.Duration(math.MaxInt64))
	testutil.AssertEqual(t, minTS.Sub(maxTS), time.Duration(math.MinInt64))
}

func TestTimestampSub(t *testing.T) {
	a := ratelimit.Milliseconds(1500)
	b := ratelimit.Milliseconds(500)
	testutil.AssertEqual(t, a.Sub(b), time.Second)
	testutil.AssertEqual(t, b.Sub(a), -time.Second)
}

func TestRateConversions(t *testing.T) {
	tests := []struct {
		name string
		got  ratelimit.Rate
		want float64
	}{
		{"per second", ratelimit.PerSecond(5), 5},
		{"60 per minute", ratelimit.PerMinute(60), 1},
		{"30 per minute", ratelimit.PerMinute(30), 0.5},
		{"1 per minute", ratelimit.PerMinute(1), 1.0 / 60},
		{"per 10s", ratelimit.Per(5, 10*time.Second), 0.5},
		{"every 100ms", ratelimit.Every(100 * time.Millisecond), 10},
		{"every 2s", ratelimit.Every(2 * time.Second), 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			testutil.AssertFloat(t, float64(tt.got), tt.want)
		})
	}

	if !math.IsInf(float64(ratelimit.Every(0)), 1) {
		t.Error("Every(0) should be +Inf")
	}
}

func TestRateUnits(t *testing.T) {
	r := ratelimit.PerMinute(60)
	testutil.AssertFloat(t, r.Units(time.Second), 1)
	testutil.AssertFloat(t, r.Units(250*time.Millisecond), 0.25)
	testutil.AssertFloat(t, r.Units(-time.Second), 0)
	testutil.AssertFloat(t, ratelimit.PerMinute(6).Units(time.Second), 0.1)
}
