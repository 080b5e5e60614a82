package testutil

import (
	"math"
	"sync"
	"testing"
)

// FloatTolerance is the absolute tolerance used by AssertFloat.
const FloatTolerance = 1e-9

// AssertNoError fails the test if err is not nil
func AssertNoError(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// AssertError fails the test if err is nil
func AssertError(t *testing.T, err error) {
	t.Helper()
	if err == nil {
		t.Fatal("expected error, got nil")
	}
}

// AssertEqual fails the test if got != want
func AssertEqual[T comparable](t *testing.T, got, want T) {
	t.Helper()
	if got != want {
		t.Fatalf("got %v, want %v", got, want)
	}
}

// AssertFloat fails the test if got differs from want by more than FloatTolerance.
func AssertFloat(t *testing.T, got, want float64) {
	t.Helper()
	if math.Abs(got-want) > FloatTolerance {
		t.Fatalf("got %v, want %v", got, want)
	}
}

// AssertWithin fails the test if v falls outside [lo, hi].
func AssertWithin(t *testing.T, v, lo, hi float64) {
	t.Helper()
	if v < lo || v > hi {
		t.Fatalf("value %v outside [%v, %v]", v, lo, hi)
	}
}

// Parallel runs fn from n goroutines released at the same moment and waits
// for all of them.
func Parallel(n int, fn func(i int)) {
	var (
		start sync.WaitGroup
		done  sync.WaitGroup
	)
	start.Add(1)
	done.Add(n)
	for i := 0; i < n; i++ {
		go func(i int) {
			defer done.Done()
			start.Wait()
			fn(i)
		}(i)
	}
	start.Done()
	done.Wait()
}
