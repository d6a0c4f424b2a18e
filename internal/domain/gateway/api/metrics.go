package api

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"go-owm/pkg/openweather"
)

// Outcome labels of owm_upstream_requests_total.
const (
	OutcomeSuccess         = "success"
	OutcomeAPIError        = "api_error"
	OutcomeParseError      = "parse_error"
	OutcomeConnectionError = "connection_error"
	OutcomeInputError      = "input_error"
	OutcomeURLError        = "url_error"
	OutcomeUnknown         = "unknown"
)

// Metrics holds the upstream call collectors.
type Metrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewMetrics registers the upstream collectors with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		// requests tracks every gateway call by endpoint and outcome
		requests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "owm_upstream_requests_total",
				Help: "Total number of OpenWeatherMap calls",
			},
			[]string{"endpoint", "outcome"},
		),
		// duration excludes calls rejected before any request was made
		duration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "owm_upstream_request_duration_seconds",
				Help:    "Duration of OpenWeatherMap calls in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"endpoint"},
		),
	}
}

// Record records one call.
func (m *Metrics) Record(endpoint string, duration time.Duration, err error) {
	outcome := Outcome(err)
	m.requests.WithLabelValues(endpoint, outcome).Inc()
	if outcome != OutcomeInputError && outcome != OutcomeURLError {
		m.duration.WithLabelValues(endpoint).Observe(duration.Seconds())
	}
}

// Outcome classifies a gateway error.
func Outcome(err error) string {
	var (
		apiErr   *openweather.APIError
		parseErr *openweather.ParseError
		connErr  *openweather.ConnectionError
		inputErr *openweather.InputError
		urlErr   *openweather.URLError
	)

	switch {
	case err == nil:
		return OutcomeSuccess
	case errors.As(err, &apiErr):
		return OutcomeAPIError
	case errors.As(err, &parseErr):
		return OutcomeParseError
	case errors.As(err, &connErr):
		return OutcomeConnectionError
	case errors.As(err, &inputErr):
		return OutcomeInputError
	case errors.As(err, &urlErr):
		return OutcomeURLError
	default:
		return OutcomeUnknown
	}
}
