package schedule

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"go-owm/internal/domain/gateway/queue"
	"go-owm/internal/domain/model"
	"go-owm/pkg/log"
	"go-owm/pkg/msg"
	"go-owm/pkg/openweather"
)

const guardKey = "weather_warmup_scheduler"

// Refresher refreshes the cached current weather of a query.
type Refresher interface {
	RefreshCurrentWeather(ctx context.Context, query model.WeatherQuery) (*openweather.WeatherReportCurrent, error)
}

// TickGuard lets a single instance run each tick. *redis.Client satisfies it.
type TickGuard interface {
	SetNX(ctx context.Context, key string, value any, expiration time.Duration) (bool, error)
}

// WeatherSchedulerConfig holds configuration for the warm-up scheduler
type WeatherSchedulerConfig struct {
	CronExpression string
	// Cities are "City" or "City,CC" entries
	Cities []string
	Units  string
	Lang   string
	// GuardTTL must be shorter than the cron interval
	GuardTTL time.Duration
}

// WeatherScheduler keeps the current weather of a fixed set of cities warm in the cache
type WeatherScheduler struct {
	cron       *cron.Cron
	refresher  Refresher
	guard      TickGuard
	publishers []queue.Publisher
	config     *WeatherSchedulerConfig
}

// NewWeatherScheduler creates the warm-up scheduler. guard may be nil for a single instance.
func NewWeatherScheduler(refresher Refresher, guard TickGuard, config *WeatherSchedulerConfig) *WeatherScheduler {
	return &WeatherScheduler{
		cron:      cron.New(),
		refresher: refresher,
		guard:     guard,
		config:    config,
	}
}

// WithPublisher sends every refreshed report to p on its city topic.
func (s *WeatherScheduler) WithPublisher(p queue.Publisher) *WeatherScheduler {
	s.publishers = append(s.publishers, p)
	return s
}

// Start registers the task and starts the cron.
func (s *WeatherScheduler) Start() error {
	if _, err := s.cron.AddFunc(s.config.CronExpression, s.ExecuteScheduledTask); err != nil {
		return err
	}
	s.cron.Start()
	log.Info(msg.GetMessage("weather.warmup-started", s.config.CronExpression, len(s.config.Cities)))
	return nil
}

// ExecuteScheduledTask refreshes every configured city once.
func (s *WeatherScheduler) ExecuteScheduledTask() {
	requestID := uuid.New().String()
	ctx := context.Background()

	if s.guard != nil {
		acquired, err := s.guard.SetNX(ctx, guardKey, requestID, s.getGuardTTL())
		if err != nil {
			log.Warn(msg.GetMessage("weather.warmup-guard-fail", err), zap.String("request_id", requestID), zap.Error(err))
			return
		}
		if !acquired {
			log.Debug("Warm-up tick taken by another instance", zap.String("request_id", requestID))
			return
		}
	}

	refreshed, failed := 0, 0
	for _, city := range s.config.Cities {
		query := ParseCity(city)
		if query.City == "" {
			continue
		}
		query.Units = s.config.Units
		query.Lang = s.config.Lang

		report, err := s.refresher.RefreshCurrentWeather(ctx, query)
		if err != nil {
			log.Warn(msg.GetMessage("weather.warmup-city-fail", city, err),
				zap.String("request_id", requestID),
				zap.String("city", city),
				zap.Error(err))
			failed++
			continue
		}
		refreshed++
		s.publish(requestID, query, report)
	}

	log.Info(msg.GetMessage("weather.warmup-done", refreshed, failed),
		zap.String("request_id", requestID),
		zap.Int("refreshed", refreshed),
		zap.Int("failed", failed))
}

func (s *WeatherScheduler) publish(requestID string, query model.WeatherQuery, report *openweather.WeatherReportCurrent) {
	topic := model.CurrentWeatherTopic(query.City, query.Country)
	for _, publisher := range s.publishers {
		if err := publisher.Publish(topic, report); err != nil {
			log.Warn(msg.GetMessage("weather.warmup-publish-fail", query.City, err),
				zap.String("request_id", requestID),
				zap.String("topic", topic),
				zap.Error(err))
		}
	}
}

// Stop gracefully stops the scheduler
func (s *WeatherScheduler) Stop() {
	if s.cron != nil {
		ctx := s.cron.Stop()
		<-ctx.Done()
	}
}

func (s *WeatherScheduler) getGuardTTL() time.Duration {
	if s.config.GuardTTL > 0 {
		return s.config.GuardTTL
	}
	return 30 * time.Second
}

// ParseCity splits "City,CC" into a query.
func ParseCity(entry string) model.WeatherQuery {
	city, country, _ := strings.Cut(entry, ",")
	return model.WeatherQuery{
		City:    strings.TrimSpace(city),
		Country: strings.TrimSpace(country),
	}
}
