package validation

import (
	"math"
	"testing"

	"github.com/vnykmshr/bucketflow/pkg/common/errors"
)

func TestValidatePositive(t *testing.T) {
	tests := []struct {
		name      string
		value     int
		wantError bool
	}{
		{"positive value", 10, false},
		{"positive value 1", 1, false},
		{"zero value", 0, true},
		{"negative value", -1, true},
		{"large negative", -1000000, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePositive("test", "capacity", tt.value)
			checkResult(t, err, tt.wantError)
		})
	}
}

func TestValidatePositiveRate(t *testing.T) {
	tests := []struct {
		name      string
		value     float64
		wantError bool
	}{
		{"whole rate", 10, false},
		{"sub-unit rate", 1.0 / 60, false},
		{"small positive", 0.001, false},
		{"zero", 0, true},
		{"negative", -1.5, true},
		{"positive infinity", math.Inf(1), true},
		{"negative infinity", math.Inf(-1), true},
		{"NaN", math.NaN(), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePositiveRate("test", "rate", tt.value)
			checkResult(t, err, tt.wantError)
		})
	}
}

func TestValidateAtMost(t *testing.T) {
	checkResult(t, ValidateAtMost("test", "initial", 5, 5), false)
	checkResult(t, ValidateAtMost("test", "initial", -1, 5), false)
	checkResult(t, ValidateAtMost("test", "initial", 6, 5), true)
}

func TestValidateNotEmpty(t *testing.T) {
	checkResult(t, ValidateNotEmpty("test", "name", "api"), false)
	checkResult(t, ValidateNotEmpty("test", "name", ""), true)
}

func checkResult(t *testing.T, err error, wantError bool) {
	t.Helper()
	if !wantError {
		if err != nil {
			t.Errorf("expected no error, got %v", err)
		}
		return
	}
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !errors.IsValidationError(err) {
		t.Errorf("expected ValidationError, got %T", err)
	}
	if !errors.IsInvalidConfiguration(err) {
		t.Errorf("expected error to wrap ErrInvalidConfiguration, got %v", err)
	}
}
