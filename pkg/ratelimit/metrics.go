package ratelimit

import (
	"sync/atomic"

	"github.com/vnykmshr/bucketflow/pkg/metrics"
)

// SkewReporter is implemented by limiters that count out-of-order timestamps.
type SkewReporter interface {
	ClockSkews() uint64
}

// MetricsLimiter wraps a Limiter with Prometheus metrics collection.
type MetricsLimiter struct {
	limiter  Limiter
	name     string
	registry atomic.Pointer[metrics.Registry]
	enabled  atomic.Bool
	skews    atomic.Uint64
}

// Instrument wraps limiter so every decision is recorded under name.
// When config.Enabled is false the limiter is returned unchanged.
func Instrument(limiter Limiter, name string, config metrics.Config) Limiter {
	if !config.Enabled {
		return limiter
	}

	ml := &MetricsLimiter{limiter: limiter, name: name}
	if sr, ok := limiter.(SkewReporter); ok {
		ml.skews.Store(sr.ClockSkews())
	}
	ml.registry.Store(registryFor(config))
	ml.enabled.Store(true)
	ml.registry.Load().SetState(limiter.Kind(), name, limiter.Level(), limiter.Capacity())
	return ml
}

func registryFor(config metrics.Config) *metrics.Registry {
	if config.IsDefault() {
		return metrics.Default()
	}
	return metrics.NewRegistryFromConfig(config)
}

// TryAdmit reports whether one event is admitted at now.
func (ml *MetricsLimiter) TryAdmit(now Timestamp) bool {
	admitted := ml.limiter.TryAdmit(now)

	if ml.enabled.Load() {
		reg := ml.registry.Load()
		kind := ml.limiter.Kind()
		reg.Observe(kind, ml.name, admitted)
		reg.SetState(kind, ml.name, ml.limiter.Level(), ml.limiter.Capacity())
		if sr, ok := ml.limiter.(SkewReporter); ok {
			reg.AddClockSkews(kind, ml.name, ml.newSkews(sr.ClockSkews()))
		}
	}

	return admitted
}

// newSkews advances the recorded skew total to total and returns the
// increment, or zero when another caller already recorded it.
func (ml *MetricsLimiter) newSkews(total uint64) uint64 {
	for {
		prev := ml.skews.Load()
		if total <= prev {
			return 0
		}
		if ml.skews.CompareAndSwap(prev, total) {
			return total - prev
		}
	}
}

// Level returns the wrapped limiter's level.
func (ml *MetricsLimiter) Level() float64 {
	return ml.limiter.Level()
}

// Capacity returns the wrapped limiter's capacity.
func (ml *MetricsLimiter) Capacity() int {
	return ml.limiter.Capacity()
}

// Rate returns the wrapped limiter's rate.
func (ml *MetricsLimiter) Rate() Rate {
	return ml.limiter.Rate()
}

// Kind returns the wrapped limiter's kind.
func (ml *MetricsLimiter) Kind() string {
	return ml.limiter.Kind()
}

// Name returns the limiter_name label value.
func (ml *MetricsLimiter) Name() string {
	return ml.name
}

// Unwrap returns the wrapped limiter.
func (ml *MetricsLimiter) Unwrap() Limiter {
	return ml.limiter
}

// EnableMetrics enables metrics collection.
func (ml *MetricsLimiter) EnableMetrics(config metrics.Config) error {
	if config.Registry != nil || config.Namespace != "" || len(config.Labels) > 0 {
		ml.registry.Store(registryFor(config))
	}
	ml.enabled.Store(config.Enabled)
	return nil
}

// DisableMetrics disables metrics collection.
func (ml *MetricsLimiter) DisableMetrics() {
	ml.enabled.Store(false)
}

// MetricsEnabled returns true if metrics are currently enabled.
func (ml *MetricsLimiter) MetricsEnabled() bool {
	return ml.enabled.Load()
}

var _ metrics.Instrumentable = (*MetricsLimiter)(nil)
