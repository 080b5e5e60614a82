package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	bferrors "github.com/vnykmshr/bucketflow/pkg/common/errors"
	"github.com/vnykmshr/bucketflow/pkg/common/validation"
	"github.com/vnykmshr/bucketflow/pkg/ratelimit"
)

// Supported algorithm names.
const (
	AlgorithmTokenBucket = "token_bucket"
	AlgorithmLeakyBucket = "leaky_bucket"
)

// DefaultPer is the interval Rate is expressed over when Per is empty.
const DefaultPer = "1s"

// File is a set of named limiter definitions.
type File struct {
	Limiters map[string]Definition `yaml:"limiters" mapstructure:"limiters"`
}

// Definition describes one limiter.
type Definition struct {
	// Algorithm is token_bucket or leaky_bucket.
	Algorithm string `yaml:"algorithm" mapstructure:"algorithm"`

	// Capacity is the burst size (token bucket) or maximum fill (leaky bucket).
	Capacity int `yaml:"capacity" mapstructure:"capacity"`

	// Rate is the number of units refilled or drained every Per.
	Rate float64 `yaml:"rate" mapstructure:"rate"`

	// Per is a time.ParseDuration string, e.g. "1m" for a per-minute rate.
	// Defaults to "1s".
	Per string `yaml:"per,omitempty" mapstructure:"per"`

	// Initial overrides the starting level: tokens for a token bucket,
	// occupied units for a leaky bucket. Nil keeps the algorithm default
	// (token bucket full, leaky bucket empty).
	Initial *int `yaml:"initial,omitempty" mapstructure:"initial"`
}

// Load reads and validates a YAML limiter file.
func Load(path string, log *zap.Logger) (*File, error) {
	if log == nil {
		log = zap.NewNop()
	}
	log.Debug("loading limiter configuration", zap.String("path", path))

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, bferrors.NewOperationError("config", "Load", err).WithContext(path)
	}

	f, err := Parse(data)
	if err != nil {
		return nil, bferrors.NewOperationError("config", "Load", err).WithContext(path)
	}

	log.Debug("limiter configuration loaded", zap.String("path", path), zap.Strings("limiters", f.Names()))
	return f, nil
}

// Parse decodes and validates a YAML limiter document. Unknown fields are
// rejected.
func Parse(data []byte) (*File, error) {
	var f File
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: %v", bferrors.ErrInvalidConfiguration, err)
	}
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return &f, nil
}

// Decode builds a File from a generic map, such as one produced by another
// configuration system. Numeric strings are accepted; unknown keys are not.
func Decode(raw map[string]interface{}) (*File, error) {
	var f File
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &f,
		TagName:          "mapstructure",
		WeaklyTypedInput: true,
		ErrorUnused:      true,
	})
	if err != nil {
		return nil, err
	}
	if err := dec.Decode(raw); err != nil {
		return nil, fmt.Errorf("%w: %v", bferrors.ErrInvalidConfiguration, err)
	}
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return &f, nil
}

// Validate checks every definition. A file must define at least one limiter.
func (f *File) Validate() error {
	if len(f.Limiters) == 0 {
		return bferrors.NewValidationError("config", "limiters", 0, "no limiters defined").
			WithHint("add at least one entry under limiters:")
	}
	for _, name := range f.Names() {
		if err := validation.ValidateNotEmpty("config", "limiter name", strings.TrimSpace(name)); err != nil {
			return err
		}
		if err := f.Limiters[name].Validate(); err != nil {
			return fmt.Errorf("limiter %q: %w", name, err)
		}
	}
	return nil
}

// Names returns the defined limiter names in sorted order.
func (f *File) Names() []string {
	names := make([]string, 0, len(f.Limiters))
	for name := range f.Limiters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Validate checks the definition without building a limiter.
func (d Definition) Validate() error {
	if _, err := d.algorithm(); err != nil {
		return err
	}
	if err := validation.ValidatePositive("config", "capacity", d.Capacity); err != nil {
		return err
	}
	rate, err := d.RatePerSecond()
	if err != nil {
		return err
	}
	if err := validation.ValidatePositiveRate("config", "rate", float64(rate)); err != nil {
		return err
	}
	if d.Initial != nil {
		if *d.Initial < 0 {
			return bferrors.NewValidationError("config", "initial", *d.Initial, "cannot be negative").
				WithHint("omit initial to use the algorithm default")
		}
		if err := validation.ValidateAtMost("config", "initial", *d.Initial, d.Capacity); err != nil {
			return err
		}
	}
	return nil
}

// RatePerSecond converts Rate over Per into a ratelimit.Rate.
func (d Definition) RatePerSecond() (ratelimit.Rate, error) {
	per := d.Per
	if per == "" {
		per = DefaultPer
	}
	interval, err := time.ParseDuration(per)
	if err != nil {
		return 0, bferrors.NewValidationError("config", "per", d.Per, "not a duration").
			WithHint(`use a Go duration such as "1s" or "1m"`)
	}
	if interval <= 0 {
		return 0, bferrors.NewValidationError("config", "per", d.Per, "must be positive")
	}
	return ratelimit.Per(d.Rate, interval), nil
}

func (d Definition) algorithm() (string, error) {
	algo := strings.ToLower(strings.TrimSpace(d.Algorithm))
	switch algo {
	case AlgorithmTokenBucket, AlgorithmLeakyBucket:
		return algo, nil
	}
	return "", bferrors.NewValidationError("config", "algorithm", d.Algorithm, "unknown algorithm").
		WithHint("use token_bucket or leaky_bucket")
}

// initial returns the level override, or -1 for the algorithm default.
func (d Definition) initial() int {
	if d.Initial == nil {
		return -1
	}
	return *d.Initial
}
