package api

import (
	"time"

	"go-owm/pkg/openweather"
)

// Endpoint names, used as metric labels and cache names.
const (
	EndpointCurrent                  = "weather"
	EndpointForecast                 = "forecast"
	EndpointForecastDaily            = "forecast-daily"
	EndpointOneCall                  = "onecall"
	EndpointOneCallTimeMachine       = "onecall-timemachine"
	EndpointHistory                  = "history-city"
	EndpointAccumulatedTemperature   = "history-accumulated-temperature"
	EndpointAccumulatedPrecipitation = "history-accumulated-precipitation"
	EndpointUvIndex                  = "uvi"
	EndpointUvIndexForecast          = "uvi-forecast"
	EndpointUvIndexHistory           = "uvi-history"
)

// Endpoints lists every endpoint name.
var Endpoints = []string{
	EndpointCurrent,
	EndpointForecast,
	EndpointForecastDaily,
	EndpointOneCall,
	EndpointOneCallTimeMachine,
	EndpointHistory,
	EndpointAccumulatedTemperature,
	EndpointAccumulatedPrecipitation,
	EndpointUvIndex,
	EndpointUvIndexForecast,
	EndpointUvIndexHistory,
}

// WeatherGateway defines the OpenWeatherMap calls available to the application.
// The API key is bound by the implementation.
type WeatherGateway interface {
	GetCurrentWeather(loc openweather.LocationSpecifier, settings openweather.Settings) (*openweather.WeatherReportCurrent, error)
	Get5DayForecast(loc openweather.LocationSpecifier, settings openweather.Settings) (*openweather.WeatherReport5Day, error)
	// Get16DayForecast accepts 1 to 16 days
	Get16DayForecast(loc openweather.LocationSpecifier, days uint8, settings openweather.Settings) (*openweather.WeatherReport16Day, error)
	GetOneCallCurrent(coords openweather.Coordinates, settings openweather.Settings) (*openweather.WeatherReportOneCall, error)
	GetOneCallHistorical(coords openweather.Coordinates, dt time.Time, settings openweather.Settings) (*openweather.WeatherReportOneCallHistorical, error)
	GetHistoricalData(loc openweather.LocationSpecifier, start, end time.Time, settings openweather.Settings) (*openweather.WeatherReportHistorical, error)
	GetAccumulatedTemperatureData(loc openweather.LocationSpecifier, start, end time.Time, threshold uint32, settings openweather.Settings) (openweather.WeatherAccumulatedTemperature, error)
	GetAccumulatedPrecipitationData(loc openweather.LocationSpecifier, start, end time.Time, threshold uint32, settings openweather.Settings) (openweather.WeatherAccumulatedPrecipitation, error)
	GetCurrentUvIndex(loc openweather.LocationSpecifier, settings openweather.Settings) (*openweather.UvIndex, error)
	// GetForecastUvIndex accepts 1 to 8 days
	GetForecastUvIndex(loc openweather.LocationSpecifier, days uint8, settings openweather.Settings) (openweather.ForecastUvIndex, error)
	GetHistoricalUvIndex(loc openweather.LocationSpecifier, start, end time.Time, settings openweather.Settings) (openweather.HistoricalUvIndex, error)
}
