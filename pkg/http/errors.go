package http

import (
	"errors"
	"fmt"
)

// ErrErrorResponse is returned by Execute when the body matched the error response shape.
var ErrErrorResponse = errors.New("response matched error shape")

// DecodeError is returned when the body matched neither the success nor the error shape.
type DecodeError struct {
	StatusCode int
	SuccessErr error
	ErrorErr   error
}

func (e *DecodeError) Error() string {
	if e.ErrorErr == nil {
		return fmt.Sprintf("failed to decode response (status %d): %v", e.StatusCode, e.SuccessErr)
	}
	return fmt.Sprintf("failed to decode response (status %d): as success: %v; as error: %v",
		e.StatusCode, e.SuccessErr, e.ErrorErr)
}

// TransportError wraps a failure to send the request or read its body.
type TransportError struct {
	Method string
	URL    string
	Err    error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Method, e.URL, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// URLError wraps a failure to assemble the request URL.
type URLError struct {
	Err error
}

func (e *URLError) Error() string {
	return fmt.Sprintf("invalid request url: %v", e.Err)
}

func (e *URLError) Unwrap() error {
	return e.Err
}
