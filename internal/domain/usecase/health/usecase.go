package health

import (
	"context"

	"go-owm/internal/domain/model"
)

type UseCase interface {
	CheckHealth(ctx context.Context) model.HealthResponse
}

// CacheChecker reports the health of the response cache.
type CacheChecker interface {
	HealthCheck(ctx context.Context) model.ComponentHealthStatus
}

// QuotaReporter reports the current upstream quota usage.
type QuotaReporter interface {
	Usage(ctx context.Context) (map[string]string, error)
}
