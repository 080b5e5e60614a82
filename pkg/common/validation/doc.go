// Package validation provides the constructor checks shared by the limiter
// packages and the configuration loader.
//
// Every helper returns a *errors.ValidationError that unwraps to
// errors.ErrInvalidConfiguration, so callers can test a construction failure
// with errors.Is regardless of which field was rejected.
package validation
