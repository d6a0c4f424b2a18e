package openweather

import "fmt"

// APIError is returned when the API answered with an error report instead of data.
type APIError struct {
	Report ErrorReport
}

func (e *APIError) Error() string {
	return fmt.Sprintf("openweather API error: %s", e.Report)
}

// ParseError is returned when a body matched neither the expected type nor ErrorReport.
// Both decode failures are kept for diagnosis.
type ParseError struct {
	Target  string
	Success error
	Report  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("error parsing json. Parsing as %s: %v - Parsing as ErrorReport: %v", e.Target, e.Success, e.Report)
}

// ConnectionError wraps transport failures: DNS, dial, TLS, reading the body.
type ConnectionError struct {
	Err error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("http request error: %v", e.Err)
}

func (e *ConnectionError) Unwrap() error {
	return e.Err
}

// InputError is returned before any request is made when an argument is out of range.
type InputError struct {
	Msg string
}

func (e *InputError) Error() string {
	return "bad input: " + e.Msg
}

// URLError is returned when the request URL cannot be assembled.
type URLError struct {
	Err error
}

func (e *URLError) Error() string {
	return fmt.Sprintf("error parsing url: %v", e.Err)
}

func (e *URLError) Unwrap() error {
	return e.Err
}
