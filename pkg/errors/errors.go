// Package errors carries machine-readable codes on ifscope errors.
//
// Every failure a caller can act on is an [*Error] with a [Code]. The CLI
// prints [UserMessage], the HTTP server maps codes to statuses with
// [HTTPStatus], and callers branch with [Is]:
//
//	sys, err := catalog.Lookup(name)
//	if errors.Is(err, errors.ErrCodeUnknownSystem) {
//		// offer catalog.Names()
//	}
//
// Codes starting with INVALID_ describe input the caller can fix.
package errors

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Code is a machine-readable error class.
type Code string

const (
	ErrCodeInvalidInput    Code = "INVALID_INPUT"
	ErrCodeInvalidSystem   Code = "INVALID_SYSTEM" // rejected system definition
	ErrCodeInvalidCount    Code = "INVALID_COUNT"
	ErrCodeInvalidFormat   Code = "INVALID_FORMAT"
	ErrCodeInvalidViewport Code = "INVALID_VIEWPORT"
	ErrCodeInvalidConfig   Code = "INVALID_CONFIG"

	ErrCodeUnknownSystem Code = "UNKNOWN_SYSTEM" // selection not in the catalog
	ErrCodeNotFound      Code = "NOT_FOUND"

	ErrCodeInternal Code = "INTERNAL_ERROR"
)

// Validation reports whether c is one of the INVALID_* codes.
func (c Code) Validation() bool {
	return strings.HasPrefix(string(c), "INVALID_")
}

// HTTPStatus returns the response status for c.
func (c Code) HTTPStatus() int {
	switch {
	case c == ErrCodeUnknownSystem, c == ErrCodeNotFound:
		return http.StatusNotFound
	case c.Validation():
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// Error is an error with a code, a user-facing message and an optional cause.
type Error struct {
	Code    Code
	Message string
	Cause   error
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(string(e.Code))
	b.WriteString(": ")
	b.WriteString(e.Message)
	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	return b.String()
}

func (e *Error) Unwrap() error { return e.Cause }

// Is lets the standard library match on code: errors.Is(err, &Error{Code: c}).
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Message == "" && t.Code == e.Code
}

// New returns an Error with a formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap returns an Error whose cause is err.
func Wrap(code Code, err error, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...), Cause: err}
}

// first returns the outermost *Error in err's chain.
func first(err error) (*Error, bool) {
	var e *Error
	ok := errors.As(err, &e)
	return e, ok
}

// Is reports whether the outermost *Error in err's chain has code. Inner
// codes are ignored, so a wrapped INVALID_INPUT under INVALID_SYSTEM only
// matches INVALID_SYSTEM.
func Is(err error, code Code) bool {
	e, ok := first(err)
	return ok && e.Code == code
}

// GetCode returns the outermost code in err's chain, or "".
func GetCode(err error) Code {
	if e, ok := first(err); ok {
		return e.Code
	}
	return ""
}

// UserMessage returns the message without the code prefix. Errors without
// a code return err.Error().
func UserMessage(err error) string {
	if e, ok := first(err); ok {
		return e.Message
	}
	return err.Error()
}

// IsValidation reports whether err carries an INVALID_* code.
func IsValidation(err error) bool {
	return GetCode(err).Validation()
}

// HTTPStatus maps err to a response status. Errors without a code are 500.
func HTTPStatus(err error) int {
	return GetCode(err).HTTPStatus()
}
