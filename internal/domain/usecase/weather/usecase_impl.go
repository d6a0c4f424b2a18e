package weather

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"go-owm/internal/domain/gateway/api"
	"go-owm/internal/domain/model"
	"go-owm/pkg/log"
	"go-owm/pkg/msg"
	"go-owm/pkg/openweather"
	"go-owm/pkg/redis"
)

type weatherUseCase struct {
	gateway api.WeatherGateway
	caches  map[string]*redis.Cache
	limiter Limiter
}

type Option func(*weatherUseCase)

// WithCache caches successful responses in Redis, one named cache per endpoint.
// TTLs come from the client's Config.
func WithCache(client *redis.Client) Option {
	return func(uc *weatherUseCase) {
		uc.caches = make(map[string]*redis.Cache, len(api.Endpoints))
		for _, endpoint := range api.Endpoints {
			uc.caches[endpoint] = redis.NewCache(client, redis.NewCacheOptions().WithCacheName(endpoint))
		}
	}
}

// WithLimiter makes every upstream call acquire from limiter first.
func WithLimiter(limiter Limiter) Option {
	return func(uc *weatherUseCase) {
		uc.limiter = limiter
	}
}

func NewWeatherUseCase(gateway api.WeatherGateway, opts ...Option) UseCase {
	uc := &weatherUseCase{gateway: gateway}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// fetch serves key from the endpoint cache or calls the gateway and stores the result.
// Cache failures are logged and never fail the call.
func fetch[T any](ctx context.Context, uc *weatherUseCase, endpoint, key string, call func() (T, error)) (T, error) {
	var zero T
	cache := uc.caches[endpoint]

	if cache != nil {
		var cached T
		err := cache.Get(ctx, key, &cached)
		if err == nil {
			log.Debug(msg.GetMessage("weather.cache-hit", endpoint+"::"+key))
			return cached, nil
		}
		if !errors.Is(err, redis.ErrNotFound) {
			log.Warn(msg.GetMessage("weather.cache-read-fail", endpoint, err), zap.String("endpoint", endpoint), zap.Error(err))
		}
	}

	if uc.limiter != nil {
		if err := uc.limiter.Acquire(ctx); err != nil {
			if errors.Is(err, redis.ErrRateLimited) {
				return zero, fmt.Errorf("%w: %v", ErrQuotaExceeded, err)
			}
			// the limiter fails open when Redis is unavailable
			log.Warn(msg.GetMessage("weather.limiter-fail", endpoint, err), zap.String("endpoint", endpoint), zap.Error(err))
		}
	}

	result, err := call()
	if err != nil {
		log.Warn(msg.GetMessage("weather.upstream-fail", endpoint, err), zap.String("endpoint", endpoint), zap.String("outcome", api.Outcome(err)))
		return zero, err
	}

	if cache != nil {
		if err := cache.Set(ctx, key, result); err != nil {
			log.Warn(msg.GetMessage("weather.cache-write-fail", endpoint, err), zap.String("endpoint", endpoint), zap.Error(err))
		}
	}
	return result, nil
}

// resolveLocation picks the most specific location in query: id, then lat and lon,
// then zip, then city.
func resolveLocation(query model.WeatherQuery) (openweather.LocationSpecifier, error) {
	switch {
	case query.ID != 0:
		return openweather.CityID{ID: query.ID}, nil
	case query.Lat != nil && query.Lon != nil:
		return resolveCoordinates(query)
	case strings.TrimSpace(query.Zip) != "":
		return openweather.ZipCode{Zip: strings.TrimSpace(query.Zip), Country: strings.TrimSpace(query.Country)}, nil
	case strings.TrimSpace(query.City) != "":
		city := strings.TrimSpace(query.City)
		if country := strings.TrimSpace(query.Country); country != "" {
			return openweather.CityAndCountryName{City: city, Country: country}, nil
		}
		return openweather.CityName{City: city}, nil
	}
	return nil, &openweather.InputError{Msg: "one of id, lat and lon, zip or city is required"}
}

func resolveCoordinates(query model.WeatherQuery) (openweather.Coordinates, error) {
	if query.Lat == nil || query.Lon == nil {
		return openweather.Coordinates{}, &openweather.InputError{Msg: "lat and lon are required"}
	}
	if *query.Lat < -90 || *query.Lat > 90 || *query.Lon < -180 || *query.Lon > 180 {
		return openweather.Coordinates{}, &openweather.InputError{Msg: "lat must be within [-90, 90] and lon within [-180, 180]"}
	}
	return openweather.Coordinates{Lat: *query.Lat, Lon: *query.Lon}, nil
}

func resolveSettings(query model.WeatherQuery) (openweather.Settings, error) {
	unit := openweather.Unit(strings.ToLower(query.Units))
	switch unit {
	case "", openweather.Metric, openweather.Imperial, openweather.Standard:
	default:
		return openweather.Settings{}, &openweather.InputError{Msg: fmt.Sprintf("unsupported units %q", query.Units)}
	}
	return openweather.Settings{Unit: unit, Lang: openweather.Language(strings.ToLower(query.Lang))}, nil
}

func checkRange(start, end time.Time) error {
	if start.After(end) {
		return &openweather.InputError{Msg: "start must not be after end"}
	}
	return nil
}

func locationAndSettings(query model.WeatherQuery) (openweather.LocationSpecifier, openweather.Settings, error) {
	loc, err := resolveLocation(query)
	if err != nil {
		return nil, openweather.Settings{}, err
	}
	settings, err := resolveSettings(query)
	if err != nil {
		return nil, openweather.Settings{}, err
	}
	return loc, settings, nil
}

func coordinatesAndSettings(query model.WeatherQuery) (openweather.Coordinates, openweather.Settings, error) {
	coords, err := resolveCoordinates(query)
	if err != nil {
		return openweather.Coordinates{}, openweather.Settings{}, err
	}
	settings, err := resolveSettings(query)
	if err != nil {
		return openweather.Coordinates{}, openweather.Settings{}, err
	}
	return coords, settings, nil
}

func rangeKey(query model.WeatherQuery, start, end time.Time) string {
	return query.CacheKey() + "&start=" + strconv.FormatInt(start.Unix(), 10) + "&end=" + strconv.FormatInt(end.Unix(), 10)
}

func (uc *weatherUseCase) CurrentWeather(ctx context.Context, query model.WeatherQuery) (*openweather.WeatherReportCurrent, error) {
	loc, settings, err := locationAndSettings(query)
	if err != nil {
		return nil, err
	}
	return fetch(ctx, uc, api.EndpointCurrent, query.CacheKey(), func() (*openweather.WeatherReportCurrent, error) {
		return uc.gateway.GetCurrentWeather(loc, settings)
	})
}

func (uc *weatherUseCase) RefreshCurrentWeather(ctx context.Context, query model.WeatherQuery) (*openweather.WeatherReportCurrent, error) {
	if cache := uc.caches[api.EndpointCurrent]; cache != nil {
		if err := cache.Delete(ctx, query.CacheKey()); err != nil {
			log.Warn(msg.GetMessage("weather.cache-write-fail", api.EndpointCurrent, err), zap.Error(err))
		}
	}
	return uc.CurrentWeather(ctx, query)
}

func (uc *weatherUseCase) Forecast(ctx context.Context, query model.WeatherQuery) (*openweather.WeatherReport5Day, error) {
	loc, settings, err := locationAndSettings(query)
	if err != nil {
		return nil, err
	}
	return fetch(ctx, uc, api.EndpointForecast, query.CacheKey(), func() (*openweather.WeatherReport5Day, error) {
		return uc.gateway.Get5DayForecast(loc, settings)
	})
}

func (uc *weatherUseCase) DailyForecast(ctx context.Context, query model.WeatherQuery, days uint8) (*openweather.WeatherReport16Day, error) {
	loc, settings, err := locationAndSettings(query)
	if err != nil {
		return nil, err
	}
	if err := openweather.CheckDays(days, openweather.MaxDailyForecastDays); err != nil {
		return nil, err
	}
	key := query.CacheKey() + "&cnt=" + strconv.Itoa(int(days))
	return fetch(ctx, uc, api.EndpointForecastDaily, key, func() (*openweather.WeatherReport16Day, error) {
		return uc.gateway.Get16DayForecast(loc, days, settings)
	})
}

func (uc *weatherUseCase) OneCall(ctx context.Context, query model.WeatherQuery) (*openweather.WeatherReportOneCall, error) {
	coords, settings, err := coordinatesAndSettings(query)
	if err != nil {
		return nil, err
	}
	return fetch(ctx, uc, api.EndpointOneCall, query.CacheKey(), func() (*openweather.WeatherReportOneCall, error) {
		return uc.gateway.GetOneCallCurrent(coords, settings)
	})
}

func (uc *weatherUseCase) OneCallHistorical(ctx context.Context, query model.WeatherQuery, dt time.Time) (*openweather.WeatherReportOneCallHistorical, error) {
	coords, settings, err := coordinatesAndSettings(query)
	if err != nil {
		return nil, err
	}
	key := query.CacheKey() + "&dt=" + strconv.FormatInt(dt.Unix(), 10)
	return fetch(ctx, uc, api.EndpointOneCallTimeMachine, key, func() (*openweather.WeatherReportOneCallHistorical, error) {
		return uc.gateway.GetOneCallHistorical(coords, dt, settings)
	})
}

func (uc *weatherUseCase) History(ctx context.Context, query model.WeatherQuery, start, end time.Time) (*openweather.WeatherReportHistorical, error) {
	loc, settings, err := locationAndSettings(query)
	if err != nil {
		return nil, err
	}
	if err := checkRange(start, end); err != nil {
		return nil, err
	}
	return fetch(ctx, uc, api.EndpointHistory, rangeKey(query, start, end), func() (*openweather.WeatherReportHistorical, error) {
		return uc.gateway.GetHistoricalData(loc, start, end, settings)
	})
}

func (uc *weatherUseCase) AccumulatedTemperature(ctx context.Context, query model.WeatherQuery, start, end time.Time, threshold uint32) (openweather.WeatherAccumulatedTemperature, error) {
	loc, settings, err := locationAndSettings(query)
	if err != nil {
		return nil, err
	}
	if err := checkRange(start, end); err != nil {
		return nil, err
	}
	key := rangeKey(query, start, end) + "&threshold=" + strconv.FormatUint(uint64(threshold), 10)
	return fetch(ctx, uc, api.EndpointAccumulatedTemperature, key, func() (openweather.WeatherAccumulatedTemperature, error) {
		return uc.gateway.GetAccumulatedTemperatureData(loc, start, end, threshold, settings)
	})
}

func (uc *weatherUseCase) AccumulatedPrecipitation(ctx context.Context, query model.WeatherQuery, start, end time.Time, threshold uint32) (openweather.WeatherAccumulatedPrecipitation, error) {
	loc, settings, err := locationAndSettings(query)
	if err != nil {
		return nil, err
	}
	if err := checkRange(start, end); err != nil {
		return nil, err
	}
	key := rangeKey(query, start, end) + "&threshold=" + strconv.FormatUint(uint64(threshold), 10)
	return fetch(ctx, uc, api.EndpointAccumulatedPrecipitation, key, func() (openweather.WeatherAccumulatedPrecipitation, error) {
		return uc.gateway.GetAccumulatedPrecipitationData(loc, start, end, threshold, settings)
	})
}

func (uc *weatherUseCase) CurrentUvIndex(ctx context.Context, query model.WeatherQuery) (*openweather.UvIndex, error) {
	loc, settings, err := locationAndSettings(query)
	if err != nil {
		return nil, err
	}
	return fetch(ctx, uc, api.EndpointUvIndex, query.CacheKey(), func() (*openweather.UvIndex, error) {
		return uc.gateway.GetCurrentUvIndex(loc, settings)
	})
}

func (uc *weatherUseCase) ForecastUvIndex(ctx context.Context, query model.WeatherQuery, days uint8) (openweather.ForecastUvIndex, error) {
	loc, settings, err := locationAndSettings(query)
	if err != nil {
		return nil, err
	}
	if err := openweather.CheckDays(days, openweather.MaxUvForecastDays); err != nil {
		return nil, err
	}
	key := query.CacheKey() + "&cnt=" + strconv.Itoa(int(days))
	return fetch(ctx, uc, api.EndpointUvIndexForecast, key, func() (openweather.ForecastUvIndex, error) {
		return uc.gateway.GetForecastUvIndex(loc, days, settings)
	})
}

func (uc *weatherUseCase) HistoricalUvIndex(ctx context.Context, query model.WeatherQuery, start, end time.Time) (openweather.HistoricalUvIndex, error) {
	loc, settings, err := locationAndSettings(query)
	if err != nil {
		return nil, err
	}
	if err := checkRange(start, end); err != nil {
		return nil, err
	}
	return fetch(ctx, uc, api.EndpointUvIndexHistory, rangeKey(query, start, end), func() (openweather.HistoricalUvIndex, error) {
		return uc.gateway.GetHistoricalUvIndex(loc, start, end, settings)
	})
}
