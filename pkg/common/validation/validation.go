package validation

import (
	"math"

	bferrors "github.com/vnykmshr/bucketflow/pkg/common/errors"
)

// ValidatePositive validates that an integer value is positive (> 0).
// Returns a ValidationError if the value is not positive.
func ValidatePositive(module, field string, value int) error {
	if value <= 0 {
		return bferrors.NewValidationError(module, field, value, "must be positive").
			WithHint("value must be greater than 0")
	}
	return nil
}

// ValidatePositiveRate validates that a rate is positive and finite.
// NaN and ±Inf are rejected.
func ValidatePositiveRate(module, field string, value float64) error {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return bferrors.NewValidationError(module, field, value, "must be finite").
			WithHint("express the rate as events per second, e.g. ratelimit.PerMinute(60)")
	}
	if value <= 0 {
		return bferrors.NewValidationError(module, field, value, "must be positive").
			WithHint("value must be greater than 0")
	}
	return nil
}

// ValidateAtMost validates that value does not exceed limit.
func ValidateAtMost(module, field string, value, limit int) error {
	if value > limit {
		return bferrors.NewValidationError(module, field, value, "exceeds capacity").
			WithHint("use -1 for the default or a value between 0 and capacity")
	}
	return nil
}

// ValidateNotEmpty validates that a string value is not empty.
// Returns a ValidationError if the string is empty.
func ValidateNotEmpty(module, field string, value string) error {
	if value == "" {
		return bferrors.NewValidationError(module, field, value, "cannot be empty").
			WithHint("provide a non-empty " + field)
	}
	return nil
}
