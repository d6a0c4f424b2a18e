package weather

import (
	"context"
	"errors"
	"time"

	"go-owm/internal/domain/model"
	"go-owm/pkg/openweather"
)

// ErrQuotaExceeded is returned when the shared upstream quota is used up.
var ErrQuotaExceeded = errors.New("openweather quota exceeded")

type UseCase interface {
	CurrentWeather(ctx context.Context, query model.WeatherQuery) (*openweather.WeatherReportCurrent, error)
	// RefreshCurrentWeather drops the cached entry of query and fetches it again
	RefreshCurrentWeather(ctx context.Context, query model.WeatherQuery) (*openweather.WeatherReportCurrent, error)
	Forecast(ctx context.Context, query model.WeatherQuery) (*openweather.WeatherReport5Day, error)
	DailyForecast(ctx context.Context, query model.WeatherQuery, days uint8) (*openweather.WeatherReport16Day, error)

	// OneCall and OneCallHistorical require lat and lon
	OneCall(ctx context.Context, query model.WeatherQuery) (*openweather.WeatherReportOneCall, error)
	OneCallHistorical(ctx context.Context, query model.WeatherQuery, dt time.Time) (*openweather.WeatherReportOneCallHistorical, error)

	History(ctx context.Context, query model.WeatherQuery, start, end time.Time) (*openweather.WeatherReportHistorical, error)
	AccumulatedTemperature(ctx context.Context, query model.WeatherQuery, start, end time.Time, threshold uint32) (openweather.WeatherAccumulatedTemperature, error)
	AccumulatedPrecipitation(ctx context.Context, query model.WeatherQuery, start, end time.Time, threshold uint32) (openweather.WeatherAccumulatedPrecipitation, error)

	CurrentUvIndex(ctx context.Context, query model.WeatherQuery) (*openweather.UvIndex, error)
	ForecastUvIndex(ctx context.Context, query model.WeatherQuery, days uint8) (openweather.ForecastUvIndex, error)
	HistoricalUvIndex(ctx context.Context, query model.WeatherQuery, start, end time.Time) (openweather.HistoricalUvIndex, error)
}

// Limiter guards the upstream quota.
type Limiter interface {
	Acquire(ctx context.Context) error
}
