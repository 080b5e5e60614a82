package config

import (
	"fmt"

	"go.uber.org/zap"

	bferrors "github.com/vnykmshr/bucketflow/pkg/common/errors"
	"github.com/vnykmshr/bucketflow/pkg/metrics"
	"github.com/vnykmshr/bucketflow/pkg/ratelimit"
	"github.com/vnykmshr/bucketflow/pkg/ratelimit/leakybucket"
	"github.com/vnykmshr/bucketflow/pkg/ratelimit/tokenbucket"
)

// Options controls how limiters are built from definitions.
type Options struct {
	// Logger is passed to every limiter, tagged with limiter_name.
	Logger *zap.Logger

	// Metrics instruments every limiter when Metrics.Enabled is true.
	Metrics metrics.Config
}

// Build constructs the limiter called name.
func (f *File) Build(name string, opts Options) (ratelimit.Limiter, error) {
	def, ok := f.Limiters[name]
	if !ok {
		return nil, fmt.Errorf("%w: %w: %q", bferrors.ErrInvalidConfiguration, bferrors.ErrUnknownLimiter, name)
	}
	lim, err := def.Build(name, opts)
	if err != nil {
		return nil, fmt.Errorf("limiter %q: %w", name, err)
	}
	return lim, nil
}

// BuildAll constructs every defined limiter, keyed by name.
func (f *File) BuildAll(opts Options) (map[string]ratelimit.Limiter, error) {
	out := make(map[string]ratelimit.Limiter, len(f.Limiters))
	for _, name := range f.Names() {
		lim, err := f.Build(name, opts)
		if err != nil {
			return nil, err
		}
		out[name] = lim
	}
	return out, nil
}

// Build constructs a limiter from the definition. name labels logs and metrics.
func (d Definition) Build(name string, opts Options) (ratelimit.Limiter, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}
	algo, _ := d.algorithm()
	rate, _ := d.RatePerSecond()

	log := opts.Logger
	if log != nil {
		log = log.With(zap.String("limiter_name", name))
	}

	var (
		lim ratelimit.Limiter
		err error
	)
	switch algo {
	case AlgorithmTokenBucket:
		lim, err = tokenbucket.NewWithConfig(tokenbucket.Config{
			Capacity:      d.Capacity,
			Rate:          rate,
			InitialTokens: d.initial(),
			Logger:        log,
		})
	case AlgorithmLeakyBucket:
		lim, err = leakybucket.NewWithConfig(leakybucket.Config{
			Capacity:     d.Capacity,
			Rate:         rate,
			InitialLevel: d.initial(),
			Logger:       log,
		})
	}
	if err != nil {
		return nil, err
	}

	if log != nil {
		log.Debug("limiter built",
			zap.String("algorithm", algo),
			zap.Int("capacity", d.Capacity),
			zap.Float64("rate_per_second", float64(rate)))
	}

	return ratelimit.Instrument(lim, name, opts.Metrics), nil
}
