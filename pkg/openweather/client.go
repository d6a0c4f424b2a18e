// Package openweather is a client for the OpenWeatherMap 2.5 REST API.
//
// Every call performs exactly one GET and returns. Responses are classified by shape:
// a body is first decoded as the endpoint's type and, only if that fails, as an
// ErrorReport. HTTP status codes are not used for classification.
package openweather

import (
	"errors"
	"fmt"
	"strings"

	"go-owm/pkg/http"
)

// APIBase is the root every endpoint path is resolved against.
const APIBase = "https://api.openweathermap.org/data/2.5/"

// keyParam is the query parameter carrying the API key.
const keyParam = "APPID"

// Client performs requests against the API. It holds no mutable state and is safe
// for concurrent use.
type Client struct {
	httpClient *http.Client
}

type clientConfig struct {
	baseURL     string
	httpOptions http.ClientOptions
}

// Option configures a Client.
type Option func(*clientConfig)

// WithBaseURL points the client at another root, e.g. a proxy or a test server.
func WithBaseURL(baseURL string) Option {
	return func(c *clientConfig) {
		c.baseURL = baseURL
	}
}

// WithHTTPClientOptions sets the transport options. The API key parameter is always
// added to the redacted parameters.
func WithHTTPClientOptions(opts http.ClientOptions) Option {
	return func(c *clientConfig) {
		logger := c.httpOptions.Logger
		c.httpOptions = opts
		if c.httpOptions.Logger == nil {
			c.httpOptions.Logger = logger
		}
	}
}

// WithLogger replaces the request logger.
func WithLogger(logger http.HTTPLogger) Option {
	return func(c *clientConfig) {
		c.httpOptions.Logger = logger
	}
}

// NewClient creates a Client for APIBase unless WithBaseURL says otherwise.
func NewClient(opts ...Option) *Client {
	cfg := &clientConfig{
		baseURL: APIBase,
		httpOptions: http.ClientOptions{
			FollowRedirect: true,
			Logger:         http.NewZapHTTPLogger(),
		},
	}
	for _, opt := range opts {
		opt(cfg)
	}
	cfg.httpOptions.RedactedParams = appendUnique(cfg.httpOptions.RedactedParams, keyParam)

	return &Client{
		httpClient: http.NewHttpClient(cfg.baseURL, cfg.httpOptions),
	}
}

// DefaultClient is used by the package-level functions.
var DefaultClient = NewClient()

// get performs one GET and disambiguates the body: T first, ErrorReport second.
func get[T any](c *Client, path string, params http.QueryParams) (T, error) {
	var zero T

	successResp, errResp, _, err := c.httpClient.Request().
		WithPath(path).
		WithQueryParams(params).
		WithSuccessResp(new(T)).
		WithErrorResp(&ErrorReport{}).
		Execute()

	if err == nil {
		return *successResp.(*T), nil
	}

	if errors.Is(err, http.ErrErrorResponse) {
		return zero, &APIError{Report: *errResp.(*ErrorReport)}
	}

	var decodeErr *http.DecodeError
	if errors.As(err, &decodeErr) {
		return zero, &ParseError{
			Target:  strings.TrimPrefix(fmt.Sprintf("%T", zero), "openweather."),
			Success: decodeErr.SuccessErr,
			Report:  decodeErr.ErrorErr,
		}
	}

	var urlErr *http.URLError
	if errors.As(err, &urlErr) {
		return zero, &URLError{Err: urlErr.Err}
	}

	return zero, &ConnectionError{Err: err}
}

// URL returns the redacted URL a request for path and params would hit.
func (c *Client) URL(path string, params http.QueryParams) (string, error) {
	u, err := c.httpClient.Request().WithPath(path).WithQueryParams(params).URL()
	if err != nil {
		var urlErr *http.URLError
		if errors.As(err, &urlErr) {
			err = urlErr.Err
		}
		return "", &URLError{Err: err}
	}
	return c.httpClient.Redact(u), nil
}

func appendUnique(list []string, value string) []string {
	out := append([]string(nil), list...)
	for _, v := range out {
		if strings.EqualFold(v, value) {
			return out
		}
	}
	return append(out, value)
}
