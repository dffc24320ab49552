// Package errors provides structured error types for cabledraw.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across CLI, API and the rendering worker
//   - Machine-readable error codes and kinds for programmatic handling
//   - User-friendly error messages without stack traces
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Error codes follow a hierarchical naming convention:
//   - INVALID_*: Input validation failures (kind "bad_request")
//   - *NOT_FOUND: Resource not found (kind "not_found")
//   - UPSTREAM_FAILURE, TIMEOUT: Remote rendering worker failures (kind "upstream_failure")
//   - INTERNAL_ERROR, UNSUPPORTED: Unexpected internal errors (kind "internal")
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidSchema, "ribbon way count must be positive")
//	if errors.Is(err, errors.ErrCodeInvalidSchema) {
//	    // Handle validation error
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeUpstream, origErr, "renderer at %s", url)
package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Input validation errors
	ErrCodeInvalidInput    Code = "INVALID_INPUT"
	ErrCodeInvalidSchema   Code = "INVALID_SCHEMA"
	ErrCodeInvalidFormat   Code = "INVALID_FORMAT"
	ErrCodeInvalidTemplate Code = "INVALID_TEMPLATE"
	ErrCodeInvalidPath     Code = "INVALID_PATH"

	// Resource not found errors
	ErrCodeNotFound         Code = "NOT_FOUND"
	ErrCodeAssemblyNotFound Code = "ASSEMBLY_NOT_FOUND"
	ErrCodeTemplateNotFound Code = "TEMPLATE_NOT_FOUND"
	ErrCodeDrawingNotFound  Code = "DRAWING_NOT_FOUND"

	// Remote rendering worker errors
	ErrCodeUpstream Code = "UPSTREAM_FAILURE"
	ErrCodeTimeout  Code = "TIMEOUT"

	// Internal errors
	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
)

// Kind is the coarse error class exposed to callers.
type Kind string

// Error kinds.
const (
	KindBadRequest Kind = "bad_request"
	KindNotFound   Kind = "not_found"
	KindUpstream   Kind = "upstream_failure"
	KindInternal   Kind = "internal"
)

var codeKinds = map[Code]Kind{
	ErrCodeInvalidInput:     KindBadRequest,
	ErrCodeInvalidSchema:    KindBadRequest,
	ErrCodeInvalidFormat:    KindBadRequest,
	ErrCodeInvalidTemplate:  KindBadRequest,
	ErrCodeInvalidPath:      KindBadRequest,
	ErrCodeNotFound:         KindNotFound,
	ErrCodeAssemblyNotFound: KindNotFound,
	ErrCodeTemplateNotFound: KindNotFound,
	ErrCodeDrawingNotFound:  KindNotFound,
	ErrCodeUpstream:         KindUpstream,
	ErrCodeTimeout:          KindUpstream,
	ErrCodeInternal:         KindInternal,
	ErrCodeUnsupported:      KindInternal,
}

// Kind returns the error class for the code. Unknown codes are internal.
func (c Code) Kind() Kind {
	if k, ok := codeKinds[c]; ok {
		return k
	}
	return KindInternal
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

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates a new Error with the given code and formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap creates a new Error wrapping an existing error.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// Is reports whether err has the given error code.
// It looks at the outermost *Error in the chain.
func Is(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// GetCode extracts the error code from an error, if available.
// Returns empty string if the error is not an *Error.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// KindOf returns the error class of err. Errors without a code are internal.
func KindOf(err error) Kind {
	return GetCode(err).Kind()
}

// UserMessage returns a user-friendly message for the error.
// For *Error types, returns the message without the code prefix.
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}

// HTTPStatus maps err to the HTTP status code used by the API.
func HTTPStatus(err error) int {
	switch code := GetCode(err); {
	case code == ErrCodeTimeout:
		return http.StatusGatewayTimeout
	case code == ErrCodeUnsupported:
		return http.StatusNotImplemented
	default:
		switch code.Kind() {
		case KindBadRequest:
			return http.StatusBadRequest
		case KindNotFound:
			return http.StatusNotFound
		case KindUpstream:
			return http.StatusBadGateway
		}
	}
	return http.StatusInternalServerError
}
