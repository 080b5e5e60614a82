package metrics

import (
	"errors"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Registry holds the rate-limit collectors shared by instrumented limiters.
type Registry struct {
	Requests   *prometheus.CounterVec
	Allowed    *prometheus.CounterVec
	Denied     *prometheus.CounterVec
	ClockSkews *prometheus.CounterVec
	Level      *prometheus.GaugeVec
	Capacity   *prometheus.GaugeVec
}

var (
	defaultOnce     sync.Once
	defaultRegistry *Registry
)

// Default returns the registry bound to prometheus.DefaultRegisterer,
// creating it on first use.
func Default() *Registry {
	defaultOnce.Do(func() {
		defaultRegistry = NewRegistry(prometheus.DefaultRegisterer)
	})
	return defaultRegistry
}

// NewRegistry creates a registry in the default namespace on reg.
func NewRegistry(reg prometheus.Registerer) *Registry {
	return NewRegistryFromConfig(Config{Registry: reg})
}

// NewRegistryFromConfig creates a registry from cfg. Collectors already
// registered on the same registerer are reused, so several registries built
// from one registerer share their series.
func NewRegistryFromConfig(cfg Config) *Registry {
	reg := cfg.Registry
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	ns := cfg.Namespace
	if ns == "" {
		ns = DefaultNamespace
	}
	labels := []string{"limiter_type", "limiter_name"}

	counter := func(name, help string) *prometheus.CounterVec {
		return register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   ns,
			Subsystem:   "ratelimit",
			Name:        name,
			Help:        help,
			ConstLabels: cfg.Labels,
		}, labels))
	}
	gauge := func(name, help string) *prometheus.GaugeVec {
		return register(reg, prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace:   ns,
			Subsystem:   "ratelimit",
			Name:        name,
			Help:        help,
			ConstLabels: cfg.Labels,
		}, labels))
	}

	return &Registry{
		Requests:   counter("requests_total", "Total number of admission decisions requested"),
		Allowed:    counter("allowed_total", "Total number of admitted events"),
		Denied:     counter("denied_total", "Total number of denied events"),
		ClockSkews: counter("clock_skews_total", "Timestamps observed earlier than the previous one"),
		Level:      gauge("level", "Current reservoir level (tokens available or units occupied)"),
		Capacity:   gauge("capacity", "Configured reservoir capacity"),
	}
}

// register adds c to reg, returning the existing collector when an
// identical one is already registered. Any other failure panics, as
// MustRegister would.
func register[C prometheus.Collector](reg prometheus.Registerer, c C) C {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing
			}
		}
		panic(err)
	}
	return c
}

// Observe records one admission decision for the limiter identified by kind and name.
func (r *Registry) Observe(kind, name string, admitted bool) {
	r.Requests.WithLabelValues(kind, name).Inc()
	if admitted {
		r.Allowed.WithLabelValues(kind, name).Inc()
	} else {
		r.Denied.WithLabelValues(kind, name).Inc()
	}
}

// SetState publishes the current level and capacity.
func (r *Registry) SetState(kind, name string, level float64, capacity int) {
	r.Level.WithLabelValues(kind, name).Set(level)
	r.Capacity.WithLabelValues(kind, name).Set(float64(capacity))
}

// AddClockSkews counts n newly observed out-of-order timestamps.
func (r *Registry) AddClockSkews(kind, name string, n uint64) {
	if n == 0 {
		return
	}
	r.ClockSkews.WithLabelValues(kind, name).Add(float64(n))
}
