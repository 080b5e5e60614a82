package ratelimit_test

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	promtest "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vnykmshr/bucketflow/pkg/metrics"
	"github.com/vnykmshr/bucketflow/pkg/ratelimit"
	"github.com/vnykmshr/bucketflow/pkg/ratelimit/leakybucket"
	"github.com/vnykmshr/bucketflow/pkg/ratelimit/tokenbucket"
)

func newRegistry(t *testing.T) (*prometheus.Registry, metrics.Config) {
	t.Helper()
	reg := prometheus.NewRegistry()
	return reg, metrics.Config{Enabled: true, Registry: reg}
}

func TestInstrumentDisabledReturnsLimiter(t *testing.T) {
	tb, err := tokenbucket.New(1, 1)
	require.NoError(t, err)

	got := ratelimit.Instrument(tb, "api", metrics.Config{Enabled: false})
	assert.Same(t, tb, got)
}

func TestInstrumentRecordsDecisions(t *testing.T) {
	_, cfg := newRegistry(t)
	tb, err := tokenbucket.New(2, ratelimit.PerSecond(1))
	require.NoError(t, err)

	lim := ratelimit.Instrument(tb, "api", cfg)
	ml, ok := lim.(*ratelimit.MetricsLimiter)
	require.True(t, ok)
	reg := metrics.NewRegistryFromConfig(cfg)

	assert.True(t, lim.TryAdmit(0))
	assert.True(t, lim.TryAdmit(0))
	assert.False(t, lim.TryAdmit(0))

	assert.Equal(t, 3.0, promtest.ToFloat64(reg.Requests.WithLabelValues("token_bucket", "api")))
	assert.Equal(t, 2.0, promtest.ToFloat64(reg.Allowed.WithLabelValues("token_bucket", "api")))
	assert.Equal(t, 1.0, promtest.ToFloat64(reg.Denied.WithLabelValues("token_bucket", "api")))
	assert.Equal(t, 0.0, promtest.ToFloat64(reg.Level.WithLabelValues("token_bucket", "api")))
	assert.Equal(t, 2.0, promtest.ToFloat64(reg.Capacity.WithLabelValues("token_bucket", "api")))

	assert.Equal(t, "api", ml.Name())
	assert.Same(t, tb, ml.Unwrap())
	assert.Equal(t, tb.Kind(), lim.Kind())
	assert.Equal(t, tb.Rate(), lim.Rate())
	assert.Equal(t, tb.Capacity(), lim.Capacity())
}

func TestInstrumentCountsClockSkews(t *testing.T) {
	_, cfg := newRegistry(t)
	lb, err := leakybucket.New(3, ratelimit.PerSecond(1))
	require.NoError(t, err)

	lim := ratelimit.Instrument(lb, "ingest", cfg)
	reg := metrics.NewRegistryFromConfig(cfg)

	lim.TryAdmit(ratelimit.Seconds(10))
	lim.TryAdmit(ratelimit.Seconds(9))
	lim.TryAdmit(ratelimit.Seconds(8))
	lim.TryAdmit(ratelimit.Seconds(11))

	assert.Equal(t, 2.0, promtest.ToFloat64(reg.ClockSkews.WithLabelValues("leaky_bucket", "ingest")))
	assert.Equal(t, 4.0, promtest.ToFloat64(reg.Allowed.WithLabelValues("leaky_bucket", "ingest"))+
		promtest.ToFloat64(reg.Denied.WithLabelValues("leaky_bucket", "ingest")))
}

func TestInstrumentSharedRegisterer(t *testing.T) {
	promReg, cfg := newRegistry(t)

	a, err := tokenbucket.New(1, 1)
	require.NoError(t, err)
	b, err := leakybucket.New(1, 1)
	require.NoError(t, err)

	require.NotPanics(t, func() {
		ratelimit.Instrument(a, "a", cfg).TryAdmit(0)
		ratelimit.Instrument(b, "b", cfg).TryAdmit(0)
	})

	count, err := promtest.GatherAndCount(promReg, "bucketflow_ratelimit_requests_total")
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestMetricsToggle(t *testing.T) {
	_, cfg := newRegistry(t)
	tb, err := tokenbucket.New(5, 1)
	require.NoError(t, err)

	ml := ratelimit.Instrument(tb, "toggle", cfg).(*ratelimit.MetricsLimiter)
	reg := metrics.NewRegistryFromConfig(cfg)
	requests := reg.Requests.WithLabelValues("token_bucket", "toggle")

	ml.TryAdmit(0)
	ml.DisableMetrics()
	assert.False(t, ml.MetricsEnabled())
	ml.TryAdmit(0)
	assert.Equal(t, 1.0, promtest.ToFloat64(requests))

	require.NoError(t, ml.EnableMetrics(metrics.Config{Enabled: true}))
	assert.True(t, ml.MetricsEnabled())
	ml.TryAdmit(0)
	assert.Equal(t, 2.0, promtest.ToFloat64(requests))
}
