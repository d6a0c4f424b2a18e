package http

import (
	"fmt"
	"net/http"
)

// Request represents a GET request under construction.
type Request struct {
	requestClient      *Client
	requestPath        string
	requestQueryParams QueryParams
	requestHeaders     map[string]string
	requestSuccessResp any
	requestErrorResp   any
}

// NewHttpClientRequest creates a new Request object with the given client.
func NewHttpClientRequest(client *Client) *Request {
	return &Request{
		requestClient: client,
		requestPath:   "/",
	}
}

// WithPath sets the path for the request, relative to the client's base URL.
func (r *Request) WithPath(path string) *Request {
	r.requestPath = path
	return r
}

// WithQueryParams sets the query parameters for the request.
func (r *Request) WithQueryParams(params QueryParams) *Request {
	r.requestQueryParams = params
	return r
}

// WithHeaders sets the headers for the request.
func (r *Request) WithHeaders(headers map[string]string) *Request {
	r.requestHeaders = headers
	return r
}

// WithSuccessResp sets the target the body is decoded into first.
func (r *Request) WithSuccessResp(successResp any) *Request {
	r.requestSuccessResp = successResp
	return r
}

// WithErrorResp sets the target tried when the success decode fails.
func (r *Request) WithErrorResp(errorResp any) *Request {
	r.requestErrorResp = errorResp
	return r
}

// URL returns the full URL the request would be sent to.
func (r *Request) URL() (string, error) {
	if r.requestClient == nil {
		return "", fmt.Errorf("client is required")
	}
	return r.requestClient.buildURL(r.requestPath, r.requestQueryParams)
}

// Execute sends the request and returns the success response, error response, status code, and error if any.
func (r *Request) Execute() (any, any, int, error) {
	if r.requestClient == nil {
		return nil, nil, 0, fmt.Errorf("client is required")
	}
	if r.requestPath == "" {
		return nil, nil, 0, fmt.Errorf("path is required")
	}

	return r.requestClient.doRequest(
		http.MethodGet,
		r.requestPath,
		r.requestQueryParams,
		r.requestHeaders,
		r.requestSuccessResp,
		r.requestErrorResp,
	)
}
