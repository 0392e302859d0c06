package model

import (
	"errors"
	"fmt"
)

// Kind categorizes engine errors.
type Kind string

const (
	// KindConfiguration covers a missing or invalid secret and missing,
	// malformed or inconsistent pool/lexicon data. Fatal at startup.
	KindConfiguration Kind = "CONFIGURATION"

	// KindValidation covers malformed dates, out-of-range counts and empty
	// user ids. Recoverable and reported to the caller; never retried.
	KindValidation Kind = "VALIDATION"

	// KindInternal covers conditions that valid configuration should have
	// ruled out, such as a theme with zero usable candidates.
	KindInternal Kind = "INTERNAL"
)

// Error is the engine's structured error.
type Error struct {
	// Kind identifies the error category.
	Kind Kind

	// Op names the operation that failed (e.g. "DeriveDailySeed").
	Op string

	// Message is a human-readable description.
	Message string

	// Err is the underlying cause, if any.
	Err error

	// Details carries additional context such as validation codes.
	Details map[string]string
}

// Error implements the error interface.
func (e *Error) Error() string {
	msg := fmt.Sprintf("%s: %s", e.Kind, e.Message)
	if e.Op != "" {
		msg = fmt.Sprintf("%s: %s: %s", e.Kind, e.Op, e.Message)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Err
}

// NewConfigurationError creates a KindConfiguration error.
func NewConfigurationError(op, message string, err error) *Error {
	return &Error{Kind: KindConfiguration, Op: op, Message: message, Err: err}
}

// NewValidationError creates a KindValidation error.
func NewValidationError(op, message string) *Error {
	return &Error{Kind: KindValidation, Op: op, Message: message}
}

// NewInternalError creates a KindInternal error.
func NewInternalError(op, message string, err error) *Error {
	return &Error{Kind: KindInternal, Op: op, Message: message, Err: err}
}

// KindOf returns the Kind of err, or "" when err is not an *Error.
// Uses errors.As to handle wrapped errors.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// IsConfiguration returns true if err is a configuration error.
func IsConfiguration(err error) bool {
	return KindOf(err) == KindConfiguration
}

// IsValidation returns true if err is a validation error.
func IsValidation(err error) bool {
	return KindOf(err) == KindValidation
}

// IsInternal returns true if err is an internal error.
func IsInternal(err error) bool {
	return KindOf(err) == KindInternal
}
