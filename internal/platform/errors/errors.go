// Package errors provides the project's coded error type
package errors

// Import as perr

import (
	stderrs "errors"
	"fmt"
)

// ErrorCode classifies failures. Values are stable, append only
type ErrorCode uint16

const (
	// ErrorCodeUnknown is for unclassified errors
	ErrorCodeUnknown ErrorCode = iota

	// ErrorCodeInvalidArgument is for bad caller input (flags, manifests, options)
	ErrorCodeInvalidArgument

	// ErrorCodeValidation is for inputs that failed a shape check
	ErrorCodeValidation

	// ErrorCodeResource is for sources that cannot be opened or read
	ErrorCodeResource

	// ErrorCodeParse is for data rows that do not conform to their header
	ErrorCodeParse

	// ErrorCodeAggregation is for scores that cannot be computed (e.g. no records)
	ErrorCodeAggregation

	// ErrorCodeDuplicateKey is for unique constraint violations
	ErrorCodeDuplicateKey

	// ErrorCodeDB is for general database errors
	ErrorCodeDB

	// ErrorCodeUnavailable is for a dependency that is not reachable
	ErrorCodeUnavailable
)

var codeNames = map[ErrorCode]string{
	ErrorCodeUnknown:         "unknown",
	ErrorCodeInvalidArgument: "invalid_argument",
	ErrorCodeValidation:      "validation",
	ErrorCodeResource:        "resource",
	ErrorCodeParse:           "parse",
	ErrorCodeAggregation:     "aggregation",
	ErrorCodeDuplicateKey:    "duplicate_key",
	ErrorCodeDB:              "db",
	ErrorCodeUnavailable:     "unavailable",
}

// String returns the snake_case name of the code
func (c ErrorCode) String() string {
	if s, ok := codeNames[c]; ok {
		return s
	}
	return fmt.Sprintf("code(%d)", uint16(c))
}

// ExitCode maps an ErrorCode to a process exit status for the CLI
func ExitCode(c ErrorCode) int {
	switch c {
	case ErrorCodeInvalidArgument, ErrorCodeValidation:
		return 2
	case ErrorCodeResource:
		return 3
	case ErrorCodeParse:
		return 4
	case ErrorCodeAggregation:
		return 5
	case ErrorCodeDB, ErrorCodeDuplicateKey, ErrorCodeUnavailable:
		return 6
	default:
		return 1
	}
}

// Error carries a machine code, a message, an optional operation label and the wrapped cause
type Error struct {
	orig error
	msg  string
	code ErrorCode
	op   string
}

// Error implements the error interface
func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.orig != nil {
		return fmt.Sprintf("%s: %v", e.msg, e.orig)
	}
	return e.msg
}

// Unwrap returns the wrapped cause
func (e *Error) Unwrap() error { return e.orig }

// Code returns the error code
func (e *Error) Code() ErrorCode { return e.code }

// Op returns the operation label, if set
func (e *Error) Op() string { return e.op }

// As returns (*Error, true) when err is or wraps one of ours
func As(err error) (*Error, bool) {
	var e *Error
	if stderrs.As(err, &e) {
		return e, true
	}
	return nil, false
}

// CodeOf returns the code of err, ErrorCodeUnknown for foreign errors
func CodeOf(err error) ErrorCode {
	if e, ok := As(err); ok {
		return e.code
	}
	return ErrorCodeUnknown
}

// IsCode reports whether err carries code
func IsCode(err error, code ErrorCode) bool { return CodeOf(err) == code }

// ExitStatus returns the CLI exit status for err, 0 for nil
func ExitStatus(err error) int {
	if err == nil {
		return 0
	}
	return ExitCode(CodeOf(err))
}

// WithOp returns a copy of err labelled with op. Foreign errors are returned unchanged
func WithOp(err error, op string) error {
	if e, ok := As(err); ok {
		c := *e
		c.op = op
		return &c
	}
	return err
}

// New returns an *Error with code and msg
func New(code ErrorCode, msg string) error { return &Error{code: code, msg: msg} }

// Newf returns an *Error with code and a formatted message
func Newf(code ErrorCode, format string, a ...any) error {
	return &Error{code: code, msg: fmt.Sprintf(format, a...)}
}

// Wrap returns an *Error with code and msg wrapping orig
func Wrap(orig error, code ErrorCode, msg string) error {
	return &Error{code: code, msg: msg, orig: orig}
}

// Wrapf returns an *Error with code and a formatted message wrapping orig
func Wrapf(orig error, code ErrorCode, format string, a ...any) error {
	return &Error{code: code, msg: fmt.Sprintf(format, a...), orig: orig}
}

// Rewrap wraps err with msg keeping the code of err (Unknown for foreign errors)
func Rewrap(err error, format string, a ...any) error {
	if err == nil {
		return nil
	}
	return &Error{code: CodeOf(err), msg: fmt.Sprintf(format, a...), orig: err}
}

// InvalidArgf returns an invalid argument error
func InvalidArgf(format string, a ...any) error { return Newf(ErrorCodeInvalidArgument, format, a...) }

// Validationf returns a validation error
func Validationf(format string, a ...any) error { return Newf(ErrorCodeValidation, format, a...) }

// Resourcef wraps an I/O failure on a source
func Resourcef(orig error, format string, a ...any) error {
	return Wrapf(orig, ErrorCodeResource, format, a...)
}

// Parsef returns a parse error, wrapping orig when non-nil
func Parsef(orig error, format string, a ...any) error {
	return Wrapf(orig, ErrorCodeParse, format, a...)
}

// Aggregationf returns an aggregation error
func Aggregationf(format string, a ...any) error { return Newf(ErrorCodeAggregation, format, a...) }

// DBf returns a general database error
func DBf(format string, a ...any) error { return Newf(ErrorCodeDB, format, a...) }
