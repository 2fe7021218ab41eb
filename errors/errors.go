// Package errors provides error handling for irgen.
//
// This package re-exports github.com/cockroachdb/errors, providing:
//   - Stack traces for debugging
//   - Error wrapping and context
//   - Hints and details for CLI users
//   - Sentinel errors for the compiler's error taxonomy
//
// Usage:
//
//	// Wrap with context
//	if err := loader.Load(ctx, src); err != nil {
//	    return errors.Wrap(err, "failed to load IR")
//	}
//
//	// Classify a compile failure
//	if errors.Is(err, errors.ErrMalformedIR) {
//	    // the front end produced an invalid tree
//	}
//
// For full documentation see: https://pkg.go.dev/github.com/cockroachdb/errors
package errors

import (
	crdb "github.com/cockroachdb/errors"
)

// Core error creation and wrapping
var (
	New          = crdb.New
	Newf         = crdb.Newf
	Wrap         = crdb.Wrap
	Wrapf        = crdb.Wrapf
	WithStack    = crdb.WithStack
	WithMessage  = crdb.WithMessage
	WithMessagef = crdb.WithMessagef
	Mark         = crdb.Mark
)

// User-facing messages and details
var (
	WithHint           = crdb.WithHint
	WithHintf          = crdb.WithHintf
	WithDetail         = crdb.WithDetail
	WithDetailf        = crdb.WithDetailf
	WithSecondaryError = crdb.WithSecondaryError
	CombineErrors      = crdb.CombineErrors
)

// Error inspection
var (
	Is             = crdb.Is
	IsAny          = crdb.IsAny
	As             = crdb.As
	Unwrap         = crdb.Unwrap
	UnwrapOnce     = crdb.UnwrapOnce
	UnwrapAll      = crdb.UnwrapAll
	GetAllHints    = crdb.GetAllHints
	GetAllDetails  = crdb.GetAllDetails
	FlattenHints   = crdb.FlattenHints
	FlattenDetails = crdb.FlattenDetails
)

// Assertions
var (
	AssertionFailedf = crdb.AssertionFailedf
)

// Sentinel errors for the compiler's error taxonomy.
// Use these with errors.Is() and wrap them to add context while preserving the type.
var (
	// ErrMalformedIR indicates the input violates an invariant of the elaborated IR
	// (dangling reference, custom type without constructors, missing type annotation).
	ErrMalformedIR = New("malformed IR")

	// ErrUnsupportedShape indicates an IR construct with no mapping rule
	ErrUnsupportedShape = New("unsupported IR shape")

	// ErrUnsupportedFormat indicates a serialized IR whose format version is not accepted
	ErrUnsupportedFormat = New("unsupported IR format")

	// ErrInvalidConfig indicates a configuration value outside its allowed range
	ErrInvalidConfig = New("invalid configuration")

	// ErrNotFound indicates a requested module, target or file does not exist
	ErrNotFound = New("not found")
)

// IsMalformedIR checks if an error is or wraps ErrMalformedIR
func IsMalformedIR(err error) bool {
	return err != nil && Is(err, ErrMalformedIR)
}

// IsUnsupportedShape checks if an error is or wraps ErrUnsupportedShape
func IsUnsupportedShape(err error) bool {
	return err != nil && Is(err, ErrUnsupportedShape)
}

// IsNotFoundError checks if an error is or wraps ErrNotFound
func IsNotFoundError(err error) bool {
	return err != nil && Is(err, ErrNotFound)
}

// NewMalformedIRError creates a malformed-IR error with a formatted message
func NewMalformedIRError(format string, args ...interface{}) error {
	return Mark(Newf(format, args...), ErrMalformedIR)
}

// NewUnsupportedShapeError creates an unsupported-shape error with a formatted message
func NewUnsupportedShapeError(format string, args ...interface{}) error {
	return Mark(Newf(format, args...), ErrUnsupportedShape)
}

// NewNotFoundError creates a not-found error with a formatted message
func NewNotFoundError(format string, args ...interface{}) error {
	return Mark(Newf(format, args...), ErrNotFound)
}

// NewInvalidConfigError creates an invalid-config error with a formatted message
func NewInvalidConfigError(format string, args ...interface{}) error {
	return Mark(Newf(format, args...), ErrInvalidConfig)
}
