package leakybucket

import (
	"go.uber.org/zap"

	"github.com/vnykmshr/bucketflow/internal/reservoir"
	"github.com/vnykmshr/bucketflow/pkg/common/validation"
	"github.com/vnykmshr/bucketflow/pkg/ratelimit"
)

// Kind is the limiter_type label reported by LeakyBucket.
const Kind = "leaky_bucket"

// Config holds configuration options for creating a new LeakyBucket.
type Config struct {
	// Capacity is the maximum number of units the bucket can hold.
	Capacity int

	// Rate is the rate at which units drain from the bucket (units per second).
	Rate ratelimit.Rate

	// InitialLevel is the initial fill level of the bucket.
	// If negative, starts empty (0).
	InitialLevel int

	// Logger receives debug events such as out-of-order timestamps.
	// If nil, logging is disabled.
	Logger *zap.Logger
}

// LeakyBucket enforces a steady maximum throughput. Each admitted event adds
// one unit, the level drains at Rate units per second, and events that
// would overflow Capacity are rejected rather than queued.
type LeakyBucket struct {
	res      *reservoir.Reservoir
	capacity int
}

// New creates a leaky bucket that starts empty.
func New(capacity int, rate ratelimit.Rate) (*LeakyBucket, error) {
	return NewWithConfig(Config{
		Capacity:     capacity,
		Rate:         rate,
		InitialLevel: -1, // Start empty
	})
}

// NewWithConfig creates a leaky bucket from config. Capacity and Rate must
// be positive; the values are never clamped.
func NewWithConfig(config Config) (*LeakyBucket, error) {
	if err := validation.ValidatePositive("leakybucket", "capacity", config.Capacity); err != nil {
		return nil, err
	}
	if err := validation.ValidatePositiveRate("leakybucket", "rate", float64(config.Rate)); err != nil {
		return nil, err
	}
	if err := validation.ValidateAtMost("leakybucket", "initial_level", config.InitialLevel, config.Capacity); err != nil {
		return nil, err
	}

	initialLevel := float64(config.InitialLevel)
	if config.InitialLevel < 0 {
		initialLevel = 0
	}

	log := config.Logger
	if log != nil {
		log = log.With(zap.String("limiter_type", Kind))
	}

	return &LeakyBucket{
		res: reservoir.New(reservoir.Config{
			Capacity: config.Capacity,
			Rate:     config.Rate,
			Level:    initialLevel,
			Strategy: drain{},
			Logger:   log,
		}),
		capacity: config.Capacity,
	}, nil
}

// drain removes leaked units and adds one per admitted event.
type drain struct{}

func (drain) Adjust(level, drained float64) float64 {
	return level - drained
}

func (drain) Admit(level, capacity float64) (float64, bool) {
	if level+1 <= capacity {
		return level + 1, true
	}
	return level, false
}

var _ ratelimit.Limiter = (*LeakyBucket)(nil)
