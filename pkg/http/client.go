package http

import (
	"errors"
	"io"
	"mime"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	charsetpkg "golang.org/x/net/html/charset"

	"go-owm/pkg/util/jsonutils"
)

// Client represents an HTTP client with configuration options.
type Client struct {
	baseURL        string
	client         *http.Client
	defaultHeaders map[string]string
	redactedParams []string
	logger         HTTPLogger
}

// ClientOptions represents the configuration options for the HTTP client.
type ClientOptions struct {
	FollowRedirect      bool
	DefaultHeaders      map[string]string
	MaxIdleConns        int
	MaxIdleConnsPerHost int
	IdleConnTimeout     time.Duration
	ConnectionTimeout   time.Duration
	ReadTimeout         time.Duration
	// RedactedParams lists query keys whose values never reach logs or error messages.
	RedactedParams []string
	Logger         HTTPLogger
}

// NewHttpClient creates a new HTTP client with the given base URL and configuration options.
func NewHttpClient(baseURL string, opts ClientOptions) *Client {
	if opts.MaxIdleConns == 0 {
		opts.MaxIdleConns = 200
	}
	if opts.MaxIdleConnsPerHost == 0 {
		opts.MaxIdleConnsPerHost = 20
	}
	if opts.ReadTimeout == 0 {
		opts.ReadTimeout = 60 * time.Second
	}
	if opts.ConnectionTimeout == 0 {
		opts.ConnectionTimeout = 60 * time.Second
	}
	if opts.Logger == nil {
		opts.Logger = nopLogger{}
	}

	transport := &http.Transport{
		Proxy:               http.ProxyFromEnvironment,
		MaxIdleConns:        opts.MaxIdleConns,
		MaxIdleConnsPerHost: opts.MaxIdleConnsPerHost,
		IdleConnTimeout:     opts.IdleConnTimeout,
		DialContext: (&net.Dialer{
			Timeout: opts.ConnectionTimeout,
		}).DialContext,
	}

	client := &http.Client{
		Transport: transport,
		Timeout:   opts.ReadTimeout,
	}

	if !opts.FollowRedirect {
		client.CheckRedirect = func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		}
	}

	return &Client{
		baseURL:        baseURL,
		client:         client,
		defaultHeaders: opts.DefaultHeaders,
		redactedParams: opts.RedactedParams,
		logger:         opts.Logger,
	}
}

// Request creates a new Request object for the client.
func (hc *Client) Request() *Request {
	return NewHttpClientRequest(hc)
}

// Get sends a GET request to the specified path with optional query parameters and headers.
// The body is decoded into successResp first and, only if that fails, into errorResp.
// It returns the success response, error response, status code, and error if any.
func (hc *Client) Get(path string, queryParams QueryParams, headers map[string]string, successResp any, errorResp any) (any, any, int, error) {
	return hc.doRequest(http.MethodGet, path, queryParams, headers, successResp, errorResp)
}

// doRequest builds the URL, executes the request, buffers the whole body and hands it to decodeResponse.
func (hc *Client) doRequest(method, path string, queryParams QueryParams, headers map[string]string, successResp any, errorResp any) (any, any, int, error) {
	reqURL, err := hc.buildURL(path, queryParams)
	if err != nil {
		return nil, nil, 0, err
	}
	logURL := hc.Redact(reqURL)

	req, err := http.NewRequest(method, reqURL, nil)
	if err != nil {
		return nil, nil, 0, &URLError{Err: unwrapURLError(err)}
	}

	req.Header.Set("Accept", "application/json")
	for k, v := range hc.defaultHeaders {
		req.Header.Set(k, v)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	hc.logger.LogRequest(method, logURL, headers)
	start := time.Now()

	resp, err := hc.client.Do(req)
	if err != nil {
		return nil, nil, 0, &TransportError{Method: method, URL: logURL, Err: unwrapURLError(err)}
	}
	defer func() { _ = resp.Body.Close() }()

	bodyBytes, err := readBody(resp)
	if err != nil {
		return nil, nil, resp.StatusCode, &TransportError{Method: method, URL: logURL, Err: err}
	}

	return hc.decodeResponse(method, logURL, resp.StatusCode, bodyBytes, time.Since(start).Milliseconds(), successResp, errorResp)
}

// readBody reads the whole body as UTF-8, transcoding when Content-Type names another charset.
// Bodies without a charset parameter are passed through as JSON is UTF-8 by default.
func readBody(resp *http.Response) ([]byte, error) {
	var body io.Reader = resp.Body
	if _, params, err := mime.ParseMediaType(resp.Header.Get("Content-Type")); err == nil {
		if label := params["charset"]; label != "" && !strings.EqualFold(label, "utf-8") {
			if decoded, err := charsetpkg.NewReaderLabel(label, resp.Body); err == nil {
				body = decoded
			}
		}
	}
	return io.ReadAll(body)
}

// decodeResponse classifies the body by shape. The status code is reported but never
// used to pick a decode target, because upstream APIs do not set it reliably.
func (hc *Client) decodeResponse(method, logURL string, status int, body []byte, latency int64, successResp any, errorResp any) (any, any, int, error) {
	if successResp == nil {
		hc.logger.LogResponseSuccess(method, logURL, status, string(body), latency)
		return nil, nil, status, nil
	}

	successErr := jsonutils.StrictUnmarshal(body, successResp)
	if successErr == nil {
		hc.logger.LogResponseSuccess(method, logURL, status, string(body), latency)
		return successResp, nil, status, nil
	}

	if errorResp == nil {
		decodeErr := &DecodeError{StatusCode: status, SuccessErr: successErr}
		hc.logger.LogResponseError(method, logURL, status, string(body), latency, decodeErr)
		return nil, nil, status, decodeErr
	}

	errorErr := jsonutils.StrictUnmarshal(body, errorResp)
	if errorErr == nil {
		hc.logger.LogResponseError(method, logURL, status, string(body), latency, ErrErrorResponse)
		return nil, errorResp, status, ErrErrorResponse
	}

	decodeErr := &DecodeError{StatusCode: status, SuccessErr: successErr, ErrorErr: errorErr}
	hc.logger.LogResponseError(method, logURL, status, string(body), latency, decodeErr)
	return nil, nil, status, decodeErr
}

// buildURL joins baseURL and path and appends the encoded query.
func (hc *Client) buildURL(path string, queryParams QueryParams) (string, error) {
	base := hc.baseURL
	if path != "" {
		base = strings.TrimRight(base, "/") + "/" + strings.TrimLeft(path, "/")
	}

	u, err := url.Parse(base)
	if err != nil {
		return "", &URLError{Err: unwrapURLError(err)}
	}
	if u.Scheme == "" || u.Host == "" {
		return "", &URLError{Err: errors.New("url must be absolute: " + base)}
	}

	u.RawQuery = queryParams.Encode()
	return u.String(), nil
}

// Redact replaces the value of every configured sensitive query parameter with "***".
func (hc *Client) Redact(rawURL string) string {
	if len(hc.redactedParams) == 0 {
		return rawURL
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}

	parts := strings.Split(u.RawQuery, "&")
	for i, part := range parts {
		key, _, found := strings.Cut(part, "=")
		if !found {
			continue
		}
		for _, secret := range hc.redactedParams {
			if strings.EqualFold(key, secret) {
				parts[i] = key + "=***"
				break
			}
		}
	}
	u.RawQuery = strings.Join(parts, "&")
	return u.String()
}

// unwrapURLError drops the *url.Error envelope, which repeats the full request URL.
func unwrapURLError(err error) error {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return urlErr.Err
	}
	return err
}
