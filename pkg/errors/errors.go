// Package errors provides the structured errors reported at the boundaries
// of modalroute: graph loaders, the pipeline, the CLI and the HTTP API.
//
// Library packages such as graph report precondition violations with
// sentinel errors. Boundary code wraps them in an [*Error] carrying a
// machine-readable [Code], so that the CLI can print a short message and the
// server can choose a status code without inspecting error strings.
//
// # Codes
//
// Every code belongs to one [Class]:
//
//	INVALID_INPUT, INVALID_FORMAT, INVALID_VERTEX,
//	INVALID_DIMENSION, INVALID_PATH, UNSUPPORTED     → ClassInvalid
//	NOT_FOUND, FILE_NOT_FOUND, VERTEX_NOT_FOUND      → ClassNotFound
//	NETWORK_ERROR, TIMEOUT                           → ClassUnavailable
//	INTERNAL_ERROR and unknown codes                 → ClassInternal
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidFormat, "grafo.txt:3: bad weight %q", tok)
//	if errors.Is(err, errors.ErrCodeInvalidFormat) {
//	    // malformed graph file
//	}
//
//	err = errors.Wrap(errors.ErrCodeFileNotFound, cause, "open %s", path)
package errors

import (
	"errors"
	"fmt"
)

// Code is a machine-readable error code.
type Code string

const (
	ErrCodeInvalidInput     Code = "INVALID_INPUT"
	ErrCodeInvalidFormat    Code = "INVALID_FORMAT"
	ErrCodeInvalidVertex    Code = "INVALID_VERTEX"
	ErrCodeInvalidDimension Code = "INVALID_DIMENSION"
	ErrCodeInvalidPath      Code = "INVALID_PATH"
	ErrCodeUnsupported      Code = "UNSUPPORTED"

	ErrCodeNotFound       Code = "NOT_FOUND"
	ErrCodeFileNotFound   Code = "FILE_NOT_FOUND"
	ErrCodeVertexNotFound Code = "VERTEX_NOT_FOUND"

	ErrCodeNetwork Code = "NETWORK_ERROR"
	ErrCodeTimeout Code = "TIMEOUT"

	ErrCodeInternal Code = "INTERNAL_ERROR"
)

// Class groups codes by who has to act on the failure.
type Class int

const (
	// ClassInternal is a bug or an unexpected condition.
	ClassInternal Class = iota
	// ClassInvalid means the caller sent something unusable.
	ClassInvalid
	// ClassNotFound means a named file or vertex does not exist.
	ClassNotFound
	// ClassUnavailable means a dependency (cache, listener) failed or timed out.
	ClassUnavailable
)

var classes = map[Code]Class{
	ErrCodeInvalidInput:     ClassInvalid,
	ErrCodeInvalidFormat:    ClassInvalid,
	ErrCodeInvalidVertex:    ClassInvalid,
	ErrCodeInvalidDimension: ClassInvalid,
	ErrCodeInvalidPath:      ClassInvalid,
	ErrCodeUnsupported:      ClassInvalid,
	ErrCodeNotFound:         ClassNotFound,
	ErrCodeFileNotFound:     ClassNotFound,
	ErrCodeVertexNotFound:   ClassNotFound,
	ErrCodeNetwork:          ClassUnavailable,
	ErrCodeTimeout:          ClassUnavailable,
}

// Class returns the class of c. Unknown codes are internal.
func (c Code) Class() Class {
	return classes[c]
}

// Error is a structured error with a code and optional cause.
type Error struct {
	Code    Code   // Machine-readable error code
	Message string // Human-readable message
	Cause   error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the cause, so that errors.Is matches sentinels below it.
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates an Error with a formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap creates an Error around cause.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...), Cause: cause}
}

// Is reports whether the outermost *Error in err's chain has code.
func Is(err error, code Code) bool {
	return GetCode(err) == code
}

// GetCode returns the code of the outermost *Error in err's chain, or ""
// when there is none.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// ClassOf returns the class of err's code; errors without a code are
// internal.
func ClassOf(err error) Class {
	return GetCode(err).Class()
}

// UserMessage returns err without the code prefix, e.g.
// "grafo.txt:3: bad weight \"x\"" instead of "INVALID_FORMAT: grafo.txt:3: ...".
func UserMessage(err error) string {
	var e *Error
	if !errors.As(err, &e) {
		return err.Error()
	}
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}
