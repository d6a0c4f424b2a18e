package http

import (
	"go.uber.org/zap"

	"go-owm/pkg/log"
)

// HTTPLogger interface defines methods for logging HTTP requests and responses.
// URLs passed to it are already redacted.
type HTTPLogger interface {
	// LogRequest is called before the request is sent
	LogRequest(method, url string, headers map[string]string)

	// LogResponseSuccess is called when the body decoded into the success target
	LogResponseSuccess(method, url string, httpStatus int, responseBody string, latency int64)

	// LogResponseError is called when the body did not decode into the success target
	LogResponseError(method, url string, httpStatus int, responseBody string, latency int64, err error)
}

type nopLogger struct{}

func (nopLogger) LogRequest(string, string, map[string]string)               {}
func (nopLogger) LogResponseSuccess(string, string, int, string, int64)      {}
func (nopLogger) LogResponseError(string, string, int, string, int64, error) {}

// ZapHTTPLogger writes request traces through pkg/log. Bodies are only logged at debug level.
type ZapHTTPLogger struct{}

// NewZapHTTPLogger creates a HTTPLogger backed by the application zap logger.
func NewZapHTTPLogger() *ZapHTTPLogger {
	return &ZapHTTPLogger{}
}

func (l *ZapHTTPLogger) LogRequest(method, url string, headers map[string]string) {
	log.Debug("http request",
		zap.String("method", method),
		zap.String("url", url),
		zap.Int("headers", len(headers)))
}

func (l *ZapHTTPLogger) LogResponseSuccess(method, url string, httpStatus int, responseBody string, latency int64) {
	log.Debug("http response",
		zap.String("method", method),
		zap.String("url", url),
		zap.Int("status", httpStatus),
		zap.Int64("latency_ms", latency),
		zap.String("body", responseBody))
}

func (l *ZapHTTPLogger) LogResponseError(method, url string, httpStatus int, responseBody string, latency int64, err error) {
	log.Debug("http response not decodable as success",
		zap.String("method", method),
		zap.String("url", url),
		zap.Int("status", httpStatus),
		zap.Int64("latency_ms", latency),
		zap.String("body", responseBody),
		zap.Error(err))
}
