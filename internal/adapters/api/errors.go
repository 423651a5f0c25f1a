package api

import (
	"errors"
	"fmt"
)

// TransportError is a failed exchange with the backend: the request did not
// complete, or the server answered with a 5xx.
type TransportError struct {
	Method string
	Path   string
	Err    error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Method, e.Path, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// ValidationError is a 4xx answer from the backend. Message is the backend's
// error text, verbatim.
type ValidationError struct {
	Method     string
	Path       string
	StatusCode int
	Message    string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s %s rejected (%d): %s", e.Method, e.Path, e.StatusCode, e.Message)
}

// IsTransport reports whether err is or wraps a *TransportError.
func IsTransport(err error) bool {
	var te *TransportError
	return errors.As(err, &te)
}

// IsValidation reports whether err is or wraps a *ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

type errorBody struct {
	Error string `json:"error"`
}
