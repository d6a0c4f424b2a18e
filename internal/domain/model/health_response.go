package model

// HealthStatus represents the possible health status values
type HealthStatus string

const (
	StatusUp      HealthStatus = "UP"
	StatusDown    HealthStatus = "DOWN"
	StatusUnknown HealthStatus = "UNKNOWN"
)

// ComponentHealthStatus represents the health check structure of a application component
type ComponentHealthStatus struct {
	Status  HealthStatus      `json:"status"`
	Details map[string]string `json:"details,omitempty"`
}

// HealthResponse represents the health check response of all application
type HealthResponse struct {
	Status HealthStatus          `json:"status"`
	Cache  ComponentHealthStatus `json:"cache"`
	Quota  map[string]string     `json:"quota,omitempty"`
}

// ErrorResponse is the body of every non-2xx answer of the weather routes.
type ErrorResponse struct {
	Error     string `json:"error"`
	Code      int    `json:"code,omitempty"`
	Message   string `json:"message,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}
