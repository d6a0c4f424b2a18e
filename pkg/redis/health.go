package redis

import (
	"context"
	"fmt"
	"strconv"
	"time"
)

type HealthStatus string

const (
	StatusUp      HealthStatus = "UP"
	StatusDown    HealthStatus = "DOWN"
	StatusUnknown HealthStatus = "UNKNOWN"
)

// RedisHealthCheck represents the health check response for Redis
type RedisHealthCheck struct {
	Status  HealthStatus      `json:"status"`
	Details map[string]string `json:"details"`
}

// HealthChecker provides Redis health checking functionality
type HealthChecker struct {
	client  *Client
	timeout time.Duration
}

// NewHealthChecker creates a new Redis health checker
func NewHealthChecker(client *Client) *HealthChecker {
	return &HealthChecker{
		client:  client,
		timeout: 2 * time.Second,
	}
}

// HealthCheck pings Redis and reports the connection settings.
func (h *HealthChecker) HealthCheck(ctx context.Context) RedisHealthCheck {
	ctx, cancel := context.WithTimeout(ctx, h.timeout)
	defer cancel()

	config := h.client.GetConfig()
	details := map[string]string{
		"host":     config.Host,
		"port":     strconv.Itoa(config.Port),
		"database": strconv.Itoa(config.Database),
	}

	start := time.Now()
	if err := h.client.Ping(ctx); err != nil {
		details["error"] = fmt.Sprintf("ping failed: %v", err)
		return RedisHealthCheck{Status: StatusDown, Details: details}
	}
	details["latency"] = time.Since(start).String()

	stats := h.client.GetClient().PoolStats()
	details["total_conns"] = strconv.FormatUint(uint64(stats.TotalConns), 10)
	details["idle_conns"] = strconv.FormatUint(uint64(stats.IdleConns), 10)

	return RedisHealthCheck{Status: StatusUp, Details: details}
}
