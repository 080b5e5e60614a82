package tokenbucket_test

import (
	"fmt"
	"time"

	"github.com/vnykmshr/bucketflow/pkg/ratelimit"
	"github.com/vnykmshr/bucketflow/pkg/ratelimit/tokenbucket"
)

// Example demonstrates a burst followed by the sustained refill rate.
func Example() {
	// Burst of 5, refilled at 60 tokens per minute (one per second)
	tb, err := tokenbucket.New(5, ratelimit.PerMinute(60))
	if err != nil {
		panic(fmt.Sprintf("Failed to create limiter: %v", err))
	}

	now := ratelimit.Seconds(0)
	for i := 1; i <= 6; i++ {
		fmt.Printf("Request %d: %v\n", i, tb.Admit(now))
	}

	now = now.Add(time.Second)
	fmt.Printf("After 1s: %v\n", tb.Admit(now))

	// Output:
	// Request 1: true
	// Request 2: true
	// Request 3: true
	// Request 4: true
	// Request 5: true
	// Request 6: false
	// After 1s: true
}

// Example_configuration demonstrates starting with a partially filled bucket
func Example_configuration() {
	tb, err := tokenbucket.NewWithConfig(tokenbucket.Config{
		Capacity:      5,
		Rate:          ratelimit.Every(100 * time.Millisecond), // 1 token every 100ms
		InitialTokens: 2,
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to create limiter: %v", err))
	}

	fmt.Printf("Initial tokens: %.0f\n", tb.Tokens())
	fmt.Printf("Rate limit: %.1f/sec\n", float64(tb.Rate()))
	fmt.Printf("Burst capacity: %d\n", tb.Capacity())

	// Output:
	// Initial tokens: 2
	// Rate limit: 10.0/sec
	// Burst capacity: 5
}

// Example_invalidConfiguration demonstrates construction-time validation
func Example_invalidConfiguration() {
	_, err := tokenbucket.New(0, ratelimit.PerSecond(1))
	fmt.Println(err)

	// Output:
	// tokenbucket: invalid capacity=0 (must be positive) - value must be greater than 0
}
