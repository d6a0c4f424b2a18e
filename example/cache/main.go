package main

import (
	"context"
	"os"
	"time"

	"go.uber.org/zap"

	"go-owm/internal/domain/gateway/api"
	"go-owm/internal/domain/model"
	"go-owm/internal/domain/usecase/weather"
	"go-owm/pkg/log"
	"go-owm/pkg/openweather"
	"go-owm/pkg/redis"
)

// Run with OWM_API_KEY set and a Redis on localhost:6379. The second lookup is served
// from the cache, the third is refused by the quota guard.
func main() {
	defer log.Sync()

	key := os.Getenv("OWM_API_KEY")
	if key == "" {
		log.Fatal("OWM_API_KEY is not set")
	}

	redisClient, err := redis.NewClient(redis.NewRedisConfig().WithCacheTTL(api.EndpointCurrent, 2*time.Minute))
	if err != nil {
		log.Fatal("Invalid redis configuration", zap.Error(err))
	}
	defer redisClient.Close()

	ctx := context.Background()
	if err := redisClient.Ping(ctx); err != nil {
		log.Fatal("Redis is not reachable", zap.Error(err))
	}

	limiter, err := redis.NewRateLimiter(redisClient, "example", redis.NewRateLimiterOptions().WithMaxPerMinute(2))
	if err != nil {
		log.Fatal("Invalid limiter configuration", zap.Error(err))
	}
	defer limiter.Reset(ctx)

	gateway := api.NewWeatherGateway(openweather.NewClient(), key, nil)
	useCase := weather.NewWeatherUseCase(gateway, weather.WithCache(redisClient), weather.WithLimiter(limiter))

	queries := []model.WeatherQuery{
		{City: "Lisbon", Country: "PT", Units: "metric"},
		{City: "Lisbon", Country: "PT", Units: "metric"},
		{City: "Porto", Country: "PT", Units: "metric"},
		{City: "Faro", Country: "PT", Units: "metric"},
	}

	for _, query := range queries {
		start := time.Now()
		report, err := useCase.CurrentWeather(ctx, query)
		if err != nil {
			log.Warn("Lookup failed", zap.String("city", query.City), zap.Error(err))
			continue
		}
		log.Info("Lookup done",
			zap.String("city", report.Name),
			zap.Float64("temp", report.Main.Temp),
			zap.Duration("took", time.Since(start)))
	}

	usage, _ := limiter.Usage(ctx)
	log.Info("Quota usage", zap.Any("usage", usage))
}
