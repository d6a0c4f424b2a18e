package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	"go-owm/configs"
	"go-owm/internal/application/controller"
	"go-owm/internal/application/middleware"
	"go-owm/internal/application/schedule"
	"go-owm/internal/application/stream"
	"go-owm/internal/domain/gateway/api"
	"go-owm/internal/domain/gateway/queue"
	"go-owm/internal/domain/usecase/health"
	"go-owm/internal/domain/usecase/weather"
	owmhttp "go-owm/pkg/http"
	"go-owm/pkg/log"
	"go-owm/pkg/mqtt"
	"go-owm/pkg/msg"
	"go-owm/pkg/openweather"
	"go-owm/pkg/redis"
	"go-owm/pkg/resource"
)

func main() {
	defer log.Sync()

	if err := resource.InitFromEnv(); err != nil {
		log.Fatal("Failed to load properties", zap.Error(err))
	}
	if err := msg.InitFromEnv(); err != nil {
		log.Fatal("Failed to load messages", zap.Error(err))
	}
	log.SetLevel(resource.GetStringOrDefault("app.log.level", configs.Env.LogLevel))
	log.Info(msg.GetMessage("app.start"))

	if resource.GetBool("app.log.watch") {
		watcher, err := resource.Watch(onPropertiesReload)
		if err != nil {
			log.Fatal(msg.GetMessage("app.config-fail", err), zap.Error(err))
		}
		defer watcher.Close()
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	apiKey := resource.GetStringOrDefault("app.openweather.api-key", configs.Env.OWMAPIKey)
	if apiKey == "" {
		log.Fatal(msg.GetMessage("weather.missing-key"))
	}

	// Init infra
	e := echo.New()
	e.HideBanner = true
	middleware.SetupRequestID(e)
	middleware.SetupRequestLogger(e)
	routes := e.Group(resource.GetString("app.server.context-path"))

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	// Init Gateway
	client := openweather.NewClient(
		openweather.WithBaseURL(resource.GetStringOrDefault("app.openweather.base-url", openweather.APIBase)),
		openweather.WithHTTPClientOptions(owmhttp.ClientOptions{
			FollowRedirect:      true,
			ConnectionTimeout:   resource.GetDuration("app.openweather.connection-timeout"),
			ReadTimeout:         resource.GetDuration("app.openweather.read-timeout"),
			MaxIdleConnsPerHost: resource.GetInt("app.openweather.max-idle-conns-per-host"),
		}),
	)
	weatherGateway := api.NewWeatherGateway(client, apiKey, api.NewMetrics(registry))

	// Init UseCase
	var (
		weatherOptions []weather.Option
		cacheChecker   health.CacheChecker
		quotaReporter  health.QuotaReporter
		redisClient    *redis.Client
	)
	if resource.GetBool("app.cache.enabled") {
		var err error
		redisClient, err = redis.NewClient(redisConfig())
		if err != nil {
			log.Fatal(msg.GetMessage("app.config-fail", err), zap.Error(err))
		}
		defer redisClient.Close()

		weatherOptions = append(weatherOptions, weather.WithCache(redisClient))
		cacheChecker = health.NewRedisCacheChecker(redisClient)
		log.Info(msg.GetMessage("weather.cache-enabled", redisClient.GetConfig().Addr()))

		if perMinute := resource.GetInt("app.quota.per-minute"); perMinute > 0 {
			limiter, err := redis.NewRateLimiter(redisClient, "openweather",
				redis.NewRateLimiterOptions().WithMaxPerMinute(perMinute).WithNamespace("quota"))
			if err != nil {
				log.Fatal(msg.GetMessage("app.config-fail", err), zap.Error(err))
			}
			weatherOptions = append(weatherOptions, weather.WithLimiter(limiter))
			quotaReporter = limiter
			log.Info(msg.GetMessage("weather.limiter-enabled", perMinute))
		}
	}

	weatherUseCase := weather.NewWeatherUseCase(weatherGateway, weatherOptions...)
	healthUseCase := health.NewHealthUseCase(cacheChecker, quotaReporter)

	// Init Controller
	weatherController := controller.NewWeatherController(routes, weatherUseCase)
	healthController := controller.NewHealthController(routes, healthUseCase, registry)

	// Init Routes
	weatherController.InitWeatherRoutes()
	healthController.InitHealthRoutes()

	var publishers []queue.Publisher
	if resource.GetBool("app.stream.enabled") {
		hub := stream.NewHub()
		go hub.Run(ctx)
		controller.NewStreamController(routes, hub).InitStreamRoutes()
		publishers = append(publishers, hub)
	}
	if resource.GetBool("app.mqtt.enabled") {
		publisher, err := mqtt.NewPublisher(mqttConfig())
		if err != nil {
			log.Fatal(msg.GetMessage("app.config-fail", err), zap.Error(err))
		}
		if err := publisher.Connect(); err != nil {
			log.Fatal(msg.GetMessage("app.config-fail", err), zap.Error(err))
		}
		defer publisher.Disconnect()
		publishers = append(publishers, publisher)
	}

	// Init Schedule
	if redisClient != nil && resource.GetBool("app.warmup.enabled") {
		scheduler := schedule.NewWeatherScheduler(weatherUseCase, redisClient, &schedule.WeatherSchedulerConfig{
			CronExpression: resource.GetString("app.warmup.cron"),
			Cities:         resource.GetStringSlice("app.warmup.cities"),
			Units:          resource.GetString("app.warmup.units"),
			Lang:           resource.GetString("app.warmup.lang"),
			GuardTTL:       resource.GetDuration("app.warmup.guard-ttl"),
		})
		for _, publisher := range publishers {
			scheduler.WithPublisher(publisher)
		}
		if err := scheduler.Start(); err != nil {
			log.Fatal(msg.GetMessage("app.config-fail", err), zap.Error(err))
		}
		defer scheduler.Stop()
	}

	// Start Routes
	port := resource.GetStringOrDefault("app.server.port", "8080")
	go func() {
		if err := e.Start(":" + port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Server stopped", zap.Error(err))
		}
	}()
	log.Info(msg.GetMessage("app.started", port))

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error("Graceful shutdown failed", zap.Error(err))
	}
}

func onPropertiesReload(err error) {
	if err != nil {
		log.Warn(msg.GetMessage("app.config-reload-fail", err), zap.Error(err))
		return
	}
	level := resource.GetStringOrDefault("app.log.level", configs.Env.LogLevel)
	log.SetLevel(level)
	log.Info(msg.GetMessage("app.config-reloaded", level))
}

func mqttConfig() *mqtt.Config {
	config := mqtt.NewConfig().
		WithBroker(resource.GetStringOrDefault("app.mqtt.broker", "localhost"), resource.GetInt("app.mqtt.port")).
		WithClientID(resource.GetStringOrDefault("app.mqtt.client-id", configs.Env.ApplicationName)).
		WithCredentials(resource.GetString("app.mqtt.username"), resource.GetString("app.mqtt.password")).
		WithTopicPrefix(resource.GetString("app.mqtt.topic-prefix")).
		WithQoS(byte(resource.GetInt("app.mqtt.qos")), resource.GetBool("app.mqtt.retained"))

	if timeout := resource.GetDuration("app.mqtt.publish-timeout"); timeout > 0 {
		config.PublishTimeout = timeout
	}
	return config
}

func redisConfig() *redis.Config {
	config := redis.NewRedisConfig().
		WithHost(resource.GetStringOrDefault("app.redis.host", "localhost")).
		WithPort(resource.GetInt("app.redis.port")).
		WithPassword(resource.GetString("app.redis.password")).
		WithDatabase(resource.GetInt("app.redis.database"))

	if timeout := resource.GetDuration("app.redis.dial-timeout"); timeout > 0 {
		config.DialTimeout = timeout
	}
	if timeout := resource.GetDuration("app.redis.read-timeout"); timeout > 0 {
		config.ReadTimeout = timeout
	}
	if timeout := resource.GetDuration("app.redis.write-timeout"); timeout > 0 {
		config.WriteTimeout = timeout
	}
	if ttl := resource.GetDuration("app.cache.default-ttl"); ttl > 0 {
		config.WithDefaultCacheTTL(ttl)
	}
	for _, endpoint := range api.Endpoints {
		if ttl := resource.GetDuration("app.cache.ttl." + endpoint); ttl > 0 {
			config.WithCacheTTL(endpoint, ttl)
		}
	}
	return config
}
