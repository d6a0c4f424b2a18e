package api

import (
	"time"

	"go-owm/pkg/openweather"
)

// weatherGatewayImpl implements the WeatherGateway interface
type weatherGatewayImpl struct {
	client  *openweather.Client
	apiKey  string
	metrics *Metrics
}

// NewWeatherGateway binds client to apiKey. metrics may be nil.
func NewWeatherGateway(client *openweather.Client, apiKey string, metrics *Metrics) WeatherGateway {
	return &weatherGatewayImpl{
		client:  client,
		apiKey:  apiKey,
		metrics: metrics,
	}
}

// observe wraps one library call with metrics.
func observe[T any](w *weatherGatewayImpl, endpoint string, call func() (T, error)) (T, error) {
	start := time.Now()
	result, err := call()
	if w.metrics != nil {
		w.metrics.Record(endpoint, time.Since(start), err)
	}
	return result, err
}

func (w *weatherGatewayImpl) GetCurrentWeather(loc openweather.LocationSpecifier, settings openweather.Settings) (*openweather.WeatherReportCurrent, error) {
	return observe(w, EndpointCurrent, func() (*openweather.WeatherReportCurrent, error) {
		return w.client.GetCurrentWeather(loc, w.apiKey, settings)
	})
}

func (w *weatherGatewayImpl) Get5DayForecast(loc openweather.LocationSpecifier, settings openweather.Settings) (*openweather.WeatherReport5Day, error) {
	return observe(w, EndpointForecast, func() (*openweather.WeatherReport5Day, error) {
		return w.client.Get5DayForecast(loc, w.apiKey, settings)
	})
}

func (w *weatherGatewayImpl) Get16DayForecast(loc openweather.LocationSpecifier, days uint8, settings openweather.Settings) (*openweather.WeatherReport16Day, error) {
	return observe(w, EndpointForecastDaily, func() (*openweather.WeatherReport16Day, error) {
		return w.client.Get16DayForecast(loc, w.apiKey, days, settings)
	})
}

func (w *weatherGatewayImpl) GetOneCallCurrent(coords openweather.Coordinates, settings openweather.Settings) (*openweather.WeatherReportOneCall, error) {
	return observe(w, EndpointOneCall, func() (*openweather.WeatherReportOneCall, error) {
		return w.client.GetOneCallCurrent(coords, w.apiKey, settings)
	})
}

func (w *weatherGatewayImpl) GetOneCallHistorical(coords openweather.Coordinates, dt time.Time, settings openweather.Settings) (*openweather.WeatherReportOneCallHistorical, error) {
	return observe(w, EndpointOneCallTimeMachine, func() (*openweather.WeatherReportOneCallHistorical, error) {
		return w.client.GetOneCallHistorical(coords, dt, w.apiKey, settings)
	})
}

func (w *weatherGatewayImpl) GetHistoricalData(loc openweather.LocationSpecifier, start, end time.Time, settings openweather.Settings) (*openweather.WeatherReportHistorical, error) {
	return observe(w, EndpointHistory, func() (*openweather.WeatherReportHistorical, error) {
		return w.client.GetHistoricalData(loc, w.apiKey, start, end, settings)
	})
}

func (w *weatherGatewayImpl) GetAccumulatedTemperatureData(loc openweather.LocationSpecifier, start, end time.Time, threshold uint32, settings openweather.Settings) (openweather.WeatherAccumulatedTemperature, error) {
	return observe(w, EndpointAccumulatedTemperature, func() (openweather.WeatherAccumulatedTemperature, error) {
		return w.client.GetAccumulatedTemperatureData(loc, w.apiKey, start, end, threshold, settings)
	})
}

func (w *weatherGatewayImpl) GetAccumulatedPrecipitationData(loc openweather.LocationSpecifier, start, end time.Time, threshold uint32, settings openweather.Settings) (openweather.WeatherAccumulatedPrecipitation, error) {
	return observe(w, EndpointAccumulatedPrecipitation, func() (openweather.WeatherAccumulatedPrecipitation, error) {
		return w.client.GetAccumulatedPrecipitationData(loc, w.apiKey, start, end, threshold, settings)
	})
}

func (w *weatherGatewayImpl) GetCurrentUvIndex(loc openweather.LocationSpecifier, settings openweather.Settings) (*openweather.UvIndex, error) {
	return observe(w, EndpointUvIndex, func() (*openweather.UvIndex, error) {
		return w.client.GetCurrentUvIndex(loc, w.apiKey, settings)
	})
}

func (w *weatherGatewayImpl) GetForecastUvIndex(loc openweather.LocationSpecifier, days uint8, settings openweather.Settings) (openweather.ForecastUvIndex, error) {
	return observe(w, EndpointUvIndexForecast, func() (openweather.ForecastUvIndex, error) {
		return w.client.GetForecastUvIndex(loc, w.apiKey, days, settings)
	})
}

func (w *weatherGatewayImpl) GetHistoricalUvIndex(loc openweather.LocationSpecifier, start, end time.Time, settings openweather.Settings) (openweather.HistoricalUvIndex, error) {
	return observe(w, EndpointUvIndexHistory, func() (openweather.HistoricalUvIndex, error) {
		return w.client.GetHistoricalUvIndex(loc, w.apiKey, start, end, settings)
	})
}
