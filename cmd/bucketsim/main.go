// Command bucketsim replays a synthetic stream of arrivals through a limiter
// defined in a YAML file and reports which ones were admitted.
//
//	bucketsim -config limits.yaml -limiter api -requests 20 -interval 250ms -metrics
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"go.uber.org/zap"

	"github.com/vnykmshr/bucketflow/pkg/metrics"
	"github.com/vnykmshr/bucketflow/pkg/ratelimit"
	"github.com/vnykmshr/bucketflow/pkg/ratelimit/config"
)

type options struct {
	configPath string
	limiter    string
	requests   int
	interval   time.Duration
	burst      int
	metrics    bool
	verbose    bool
}

func main() {
	var opts options
	flag.StringVar(&opts.configPath, "config", "limits.yaml", "limiter definitions file")
	flag.StringVar(&opts.limiter, "limiter", "", "limiter to simulate (default: first defined)")
	flag.IntVar(&opts.requests, "requests", 20, "number of arrival ticks")
	flag.DurationVar(&opts.interval, "interval", 250*time.Millisecond, "synthetic time between ticks")
	flag.IntVar(&opts.burst, "burst", 1, "arrivals per tick")
	flag.BoolVar(&opts.metrics, "metrics", false, "print Prometheus metrics after the run")
	flag.BoolVar(&opts.verbose, "v", false, "log every decision")
	flag.Parse()

	log, err := newLogger(opts.verbose)
	if err != nil {
		fmt.Fprintf(os.Stderr, "bucketsim: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	if err := run(opts, log, os.Stdout); err != nil {
		log.Error("simulation failed", zap.Error(err))
		os.Exit(1)
	}
}

func newLogger(verbose bool) (*zap.Logger, error) {
	cfg := zap.NewDevelopmentConfig()
	if !verbose {
		cfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	}
	return cfg.Build()
}

// result summarizes one simulation.
type result struct {
	Limiter  string
	Kind     string
	Offered  int
	Admitted int
	Span     time.Duration
	Level    float64
}

func run(opts options, log *zap.Logger, out io.Writer) error {
	if opts.requests <= 0 || opts.burst <= 0 {
		return fmt.Errorf("requests and burst must be positive")
	}
	if opts.interval < 0 {
		return fmt.Errorf("interval cannot be negative")
	}

	f, err := config.Load(opts.configPath, log)
	if err != nil {
		return err
	}

	name := opts.limiter
	if name == "" {
		name = f.Names()[0]
	}

	reg := prometheus.NewRegistry()
	buildOpts := config.Options{Logger: log}
	if opts.metrics {
		buildOpts.Metrics = metrics.Config{Enabled: true, Registry: reg, Namespace: metrics.DefaultNamespace}
	}

	lim, err := f.Build(name, buildOpts)
	if err != nil {
		return err
	}

	res := simulate(lim, name, opts, log)
	printSummary(out, res)

	if opts.metrics {
		return writeMetrics(out, reg)
	}
	return nil
}

// simulate offers opts.burst arrivals every opts.interval of synthetic time,
// starting at a zero Timestamp.
func simulate(lim ratelimit.Limiter, name string, opts options, log *zap.Logger) result {
	res := result{Limiter: name, Kind: lim.Kind()}

	now := ratelimit.Timestamp(0)
	for tick := 0; tick < opts.requests; tick++ {
		for i := 0; i < opts.burst; i++ {
			admitted := lim.TryAdmit(now)
			res.Offered++
			if admitted {
				res.Admitted++
			}
			log.Debug("decision",
				zap.Int("tick", tick),
				zap.Stringer("at", now),
				zap.Bool("admitted", admitted),
				zap.Float64("level", lim.Level()))
		}
		if tick < opts.requests-1 {
			now = now.Add(opts.interval)
		}
	}

	res.Span = now.Duration()
	res.Level = lim.Level()
	return res
}

func printSummary(out io.Writer, res result) {
	fmt.Fprintf(out, "limiter:  %s (%s)\n", res.Limiter, res.Kind)
	fmt.Fprintf(out, "span:     %v\n", res.Span)
	fmt.Fprintf(out, "offered:  %d\n", res.Offered)
	fmt.Fprintf(out, "admitted: %d\n", res.Admitted)
	fmt.Fprintf(out, "denied:   %d\n", res.Offered-res.Admitted)
	fmt.Fprintf(out, "level:    %.3f\n", res.Level)
}

func writeMetrics(out io.Writer, g prometheus.Gatherer) error {
	families, err := g.Gather()
	if err != nil {
		return fmt.Errorf("gather metrics: %w", err)
	}
	fmt.Fprintln(out)
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(out, mf); err != nil {
			return fmt.Errorf("write metrics: %w", err)
		}
	}
	return nil
}
