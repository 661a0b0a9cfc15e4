// Package errors provides error handling for commonargs.
//
// This package re-exports github.com/cockroachdb/errors, providing:
//   - Stack traces for debugging
//   - Error wrapping and context
//   - User-facing hints and details
//
// Usage:
//
//	// Wrap a sentinel so callers can match it with errors.Is
//	return errors.Wrapf(errors.ErrUnresolvedEndpointTransform, "env_key_transform %q", name)
//
//	// Add hints for users
//	return errors.WithHint(err, "known transforms: identity, upper, lower, snake")
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
)

// User-facing messages and details
var (
	WithHint    = crdb.WithHint
	WithHintf   = crdb.WithHintf
	WithDetail  = crdb.WithDetail
	WithDetailf = crdb.WithDetailf
)

// Error inspection
var (
	Is             = crdb.Is
	IsAny          = crdb.IsAny
	As             = crdb.As
	Unwrap         = crdb.Unwrap
	UnwrapAll      = crdb.UnwrapAll
	GetAllHints    = crdb.GetAllHints
	GetAllDetails  = crdb.GetAllDetails
	FlattenHints   = crdb.FlattenHints
	FlattenDetails = crdb.FlattenDetails
)

// Sentinel errors. Wrap these with Wrap/Wrapf to add context while keeping
// them matchable with errors.Is.
var (
	// ErrInvalidFilterKind indicates a name filter that is neither a predicate nor a set of names
	ErrInvalidFilterKind = New("invalid name filter kind")

	// ErrUnresolvedEndpointTransform indicates an endpoint transform that is neither
	// a function nor one of the recognized sentinels or transform names
	ErrUnresolvedEndpointTransform = New("unresolved endpoint transform")

	// ErrUnknownOption indicates an unrecognized keyword in a configuration bag
	ErrUnknownOption = New("unknown option")

	// ErrUnknownModule indicates a module name with no registered argument table
	ErrUnknownModule = New("unknown module")

	// ErrInvalidTable indicates a malformed argument table definition
	ErrInvalidTable = New("invalid argument table")

	// ErrIncompatibleSchema indicates a table file written for an unsupported schema version
	ErrIncompatibleSchema = New("incompatible table schema")
)

// IsInvalidFilterKind checks if an error is or wraps ErrInvalidFilterKind
func IsInvalidFilterKind(err error) bool {
	return err != nil && Is(err, ErrInvalidFilterKind)
}

// IsUnresolvedEndpointTransform checks if an error is or wraps ErrUnresolvedEndpointTransform
func IsUnresolvedEndpointTransform(err error) bool {
	return err != nil && Is(err, ErrUnresolvedEndpointTransform)
}

// IsUnknownOption checks if an error is or wraps ErrUnknownOption
func IsUnknownOption(err error) bool {
	return err != nil && Is(err, ErrUnknownOption)
}

// IsConfigurationError reports whether err is one of the configuration
// errors raised while building filters, converters or option bags.
func IsConfigurationError(err error) bool {
	return err != nil && IsAny(err, ErrInvalidFilterKind, ErrUnresolvedEndpointTransform, ErrUnknownOption)
}

// NewInvalidTableError creates an invalid-table error with a formatted message
func NewInvalidTableError(format string, args ...interface{}) error {
	return Wrap(ErrInvalidTable, Newf(format, args...).Error())
}
