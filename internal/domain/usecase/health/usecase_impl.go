package health

import (
	"context"

	"go-owm/internal/domain/model"
	"go-owm/pkg/redis"
)

type healthUseCase struct {
	cache CacheChecker
	quota QuotaReporter
}

// NewHealthUseCase creates the health use case. Either argument may be nil when
// the component is disabled.
func NewHealthUseCase(cache CacheChecker, quota QuotaReporter) UseCase {
	return &healthUseCase{
		cache: cache,
		quota: quota,
	}
}

func (useCase *healthUseCase) CheckHealth(ctx context.Context) model.HealthResponse {
	cacheHealth := model.ComponentHealthStatus{Status: model.StatusUnknown}
	if useCase.cache != nil {
		cacheHealth = useCase.cache.HealthCheck(ctx)
	}

	overallStatus := model.StatusUp
	if cacheHealth.Status == model.StatusDown {
		overallStatus = model.StatusDown
	}

	response := model.HealthResponse{
		Status: overallStatus,
		Cache:  cacheHealth,
	}

	if useCase.quota != nil {
		if usage, err := useCase.quota.Usage(ctx); err == nil {
			response.Quota = usage
		}
	}

	return response
}

// redisChecker adapts redis.HealthChecker to CacheChecker.
type redisChecker struct {
	checker *redis.HealthChecker
}

func NewRedisCacheChecker(client *redis.Client) CacheChecker {
	return &redisChecker{checker: redis.NewHealthChecker(client)}
}

func (r *redisChecker) HealthCheck(ctx context.Context) model.ComponentHealthStatus {
	check := r.checker.HealthCheck(ctx)
	return model.ComponentHealthStatus{
		Status:  model.HealthStatus(check.Status),
		Details: check.Details,
	}
}
