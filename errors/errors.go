// Package errors provides error handling for typeweaver.
//
// This package re-exports github.com/cockroachdb/errors, providing:
//   - Stack traces for debugging
//   - Error wrapping and context
//   - User-facing hints printed by the CLI
//
// Usage:
//
//	// Wrap with context
//	if err := os.WriteFile(path, data, 0644); err != nil {
//	    return errors.Wrapf(err, "failed to write %s", path)
//	}
//
//	// Classify with a sentinel and add a hint
//	err := errors.Wrapf(errors.ErrUnknownFormat, "%q", name)
//	return errors.WithHint(err, "supported formats: rbi, rbs")
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
	WithHint      = crdb.WithHint
	WithHintf     = crdb.WithHintf
	WithDetail    = crdb.WithDetail
	WithDetailf   = crdb.WithDetailf
	CombineErrors = crdb.CombineErrors
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

// Sentinel errors. Match with errors.Is(); wrap with errors.Wrap() to add
// context while preserving the classification.
var (
	// ErrNotFound indicates a requested entity, file or table does not exist
	ErrNotFound = New("not found")

	// ErrInvalidConfig indicates the project configuration cannot be used.
	// Configuration errors abort a run before any output is written.
	ErrInvalidConfig = New("invalid configuration")

	// ErrUnknownProducer indicates a generation source selector that is not
	// one of static, yard, rails
	ErrUnknownProducer = New("unknown generation source")

	// ErrUnknownFormat indicates an output format selector that is not rbi or rbs
	ErrUnknownFormat = New("unknown output format")

	// ErrUnsupportedVersion indicates a config file written for an
	// incompatible typeweaver version
	ErrUnsupportedVersion = New("unsupported config version")

	// ErrParse indicates a source file could not be parsed
	ErrParse = New("parse error")
)

// IsConfigError reports whether err should abort the whole run as a
// configuration problem.
func IsConfigError(err error) bool {
	return err != nil && IsAny(err, ErrInvalidConfig, ErrUnknownProducer, ErrUnknownFormat, ErrUnsupportedVersion)
}

// IsNotFoundError checks if an error is or wraps ErrNotFound.
func IsNotFoundError(err error) bool {
	return err != nil && Is(err, ErrNotFound)
}

// NewNotFoundError creates a not-found error with a formatted message
func NewNotFoundError(format string, args ...interface{}) error {
	return Wrapf(ErrNotFound, format, args...)
}

// NewConfigError creates an invalid-config error with a formatted message
func NewConfigError(format string, args ...interface{}) error {
	return Wrapf(ErrInvalidConfig, format, args...)
}
