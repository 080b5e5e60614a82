package testutil

import (
	"sync"
	"time"

	"github.com/vnykmshr/bucketflow/pkg/ratelimit"
)

// MockClock implements ratelimit.Clock with controllable time.
// It is shared by the limiter tests to avoid real sleeps.
type MockClock struct {
	mu  sync.Mutex
	now ratelimit.Timestamp
}

// NewMockClock creates a new MockClock starting at the given timestamp.
func NewMockClock(start ratelimit.Timestamp) *MockClock {
	return &MockClock{now: start}
}

// Now returns the current mock time.
func (m *MockClock) Now() ratelimit.Timestamp {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

// Advance moves the mock clock by d. A negative d moves it backwards,
// which simulates clock skew between callers.
func (m *MockClock) Advance(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now = m.now.Add(d)
}

// Set sets the mock clock to a specific timestamp.
func (m *MockClock) Set(ts ratelimit.Timestamp) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now = ts
}
