// Package derrors defines coded domain errors so transport layers can map
// failures onto HTTP responses without inspecting error strings.
package derrors

import (
	"errors"
	"net/http"
)

// Code identifies the class of a domain error.
type Code string

const (
	CodeBadRequest    Code = "bad_request"
	CodeUnprocessable Code = "unprocessable"
	CodeInternal      Code = "internal_error"
)

// Error is a coded domain error. Description is safe to show to API clients
// for request-level failures; internal descriptions are withheld at the
// transport layer.
type Error struct {
	Code        Code
	Description string
	wrapped     error
}

// New builds a coded error.
func New(code Code, description string) *Error {
	return &Error{Code: code, Description: description}
}

// Wrap attaches a cause so errors.Is/As keep working through the code.
func Wrap(code Code, description string, cause error) *Error {
	return &Error{Code: code, Description: description, wrapped: cause}
}

func (e *Error) Error() string {
	if e.wrapped != nil {
		return string(e.Code) + ": " + e.Description + ": " + e.wrapped.Error()
	}
	return string(e.Code) + ": " + e.Description
}

func (e *Error) Unwrap() error { return e.wrapped }

// CodeOf extracts the code from err, defaulting to CodeInternal.
func CodeOf(err error) Code {
	var de *Error
	if errors.As(err, &de) {
		return de.Code
	}
	return CodeInternal
}

// ToHTTPStatus maps a code onto the HTTP status the transport layer writes.
func ToHTTPStatus(code Code) int {
	switch code {
	case CodeBadRequest:
		return http.StatusBadRequest
	case CodeUnprocessable:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
