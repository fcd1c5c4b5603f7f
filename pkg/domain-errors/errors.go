// Package domainerrors defines the coded error type every layer shares.
// Transport translates codes to HTTP statuses; services stay free of
// net/http.
package domainerrors

import "fmt"

// Code identifies the error class.
type Code string

const (
	CodeBadRequest   Code = "bad_request"
	CodeUnauthorized Code = "unauthorized"
	CodeNotFound     Code = "not_found"
	CodeRateLimited  Code = "rate_limited"
	CodeInternal     Code = "internal_error"
)

// Error is a coded domain error. Description is safe to show callers for
// every code except CodeInternal.
type Error struct {
	Code        Code
	Description string
	wrapped     error
}

func (e *Error) Error() string {
	if e.wrapped != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Description, e.wrapped)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Description)
}

func (e *Error) Unwrap() error {
	return e.wrapped
}

// New builds a coded error.
func New(code Code, description string) *Error {
	return &Error{Code: code, Description: description}
}

// Wrap builds a coded error preserving the underlying cause for logs.
func Wrap(code Code, description string, err error) *Error {
	return &Error{Code: code, Description: description, wrapped: err}
}
