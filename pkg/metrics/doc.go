/*
Package metrics provides Prometheus instrumentation for bucketflow limiters.

A Registry owns six collectors, all labeled by limiter_type and limiter_name:

	bucketflow_ratelimit_requests_total
	bucketflow_ratelimit_allowed_total
	bucketflow_ratelimit_denied_total
	bucketflow_ratelimit_clock_skews_total
	bucketflow_ratelimit_level
	bucketflow_ratelimit_capacity

Limiters are not instrumented directly. Wrap one with ratelimit.Instrument:

	tb, _ := tokenbucket.New(100, ratelimit.PerSecond(10))
	limiter := ratelimit.Instrument(tb, "api", metrics.Config{
		Enabled:  true,
		Registry: prometheus.NewRegistry(),
	})

Use a dedicated prometheus.Registry per test or component to keep series
isolated. Registries created from the same registerer share collectors
instead of failing with a duplicate registration.
*/
package metrics
