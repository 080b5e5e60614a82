package tokenbucket

import (
	"go.uber.org/zap"

	"github.com/vnykmshr/bucketflow/internal/reservoir"
	"github.com/vnykmshr/bucketflow/pkg/common/validation"
	"github.com/vnykmshr/bucketflow/pkg/ratelimit"
)

// Kind is the limiter_type label reported by TokenBucket.
const Kind = "token_bucket"

// Config holds configuration options for creating a new TokenBucket.
type Config struct {
	// Capacity is the maximum number of tokens the bucket can hold.
	Capacity int

	// Rate is the number of tokens added per second.
	Rate ratelimit.Rate

	// InitialTokens is the number of tokens to start with.
	// If negative, starts with full capacity.
	InitialTokens int

	// Logger receives debug events such as out-of-order timestamps.
	// If nil, logging is disabled.
	Logger *zap.Logger
}

// TokenBucket admits bursts of up to Capacity events and sustains Rate
// events per second once the burst is spent.
type TokenBucket struct {
	res      *reservoir.Reservoir
	capacity int
}

// New creates a token bucket that starts full.
func New(capacity int, rate ratelimit.Rate) (*TokenBucket, error) {
	return NewWithConfig(Config{
		Capacity:      capacity,
		Rate:          rate,
		InitialTokens: -1, // Start with full capacity
	})
}

// NewWithConfig creates a token bucket from config. Capacity and Rate must
// be positive; the values are never clamped.
func NewWithConfig(config Config) (*TokenBucket, error) {
	if err := validation.ValidatePositive("tokenbucket", "capacity", config.Capacity); err != nil {
		return nil, err
	}
	if err := validation.ValidatePositiveRate("tokenbucket", "rate", float64(config.Rate)); err != nil {
		return nil, err
	}
	if err := validation.ValidateAtMost("tokenbucket", "initial_tokens", config.InitialTokens, config.Capacity); err != nil {
		return nil, err
	}

	initialTokens := float64(config.InitialTokens)
	if config.InitialTokens < 0 {
		initialTokens = float64(config.Capacity)
	}

	log := config.Logger
	if log != nil {
		log = log.With(zap.String("limiter_type", Kind))
	}

	return &TokenBucket{
		res: reservoir.New(reservoir.Config{
			Capacity: config.Capacity,
			Rate:     config.Rate,
			Level:    initialTokens,
			Strategy: refill{},
			Logger:   log,
		}),
		capacity: config.Capacity,
	}, nil
}

// refill adds earned tokens and spends one per admitted event.
type refill struct{}

func (refill) Adjust(tokens, earned float64) float64 {
	return tokens + earned
}

func (refill) Admit(tokens, _ float64) (float64, bool) {
	if tokens >= 1 {
		return tokens - 1, true
	}
	return tokens, false
}

var _ ratelimit.Limiter = (*TokenBucket)(nil)
