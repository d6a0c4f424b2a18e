package openweather

import (
	"fmt"
	"strconv"
	"time"

	"go-owm/pkg/http"
)

const (
	PathCurrentWeather           = "weather"
	Path5DayForecast             = "forecast"
	Path16DayForecast            = "forecast/daily"
	PathOneCall                  = "onecall"
	PathOneCallHistorical        = "onecall/timemachine"
	PathHistoricalCity           = "history/city"
	PathAccumulatedTemperature   = "history/accumulated_temperature"
	PathAccumulatedPrecipitation = "history/accumulated_precipitation"
	PathUvIndex                  = "uvi"
	PathUvIndexForecast          = "uvi/forecast"
	PathUvIndexHistory           = "uvi/history"
)

const (
	MaxDailyForecastDays = 16
	MaxUvForecastDays    = 8
)

// locationQuery orders parameters as location, extras, key, settings.
func locationQuery(loc LocationSpecifier, key string, settings Settings, extra ...http.QueryParam) http.QueryParams {
	params := append(http.QueryParams{}, loc.Params()...)
	params = append(params, extra...)
	params = params.Add(keyParam, key)
	return append(params, settings.Params()...)
}

// coordinateQuery orders parameters as settings, lat, lon, extras, key.
func coordinateQuery(coords Coordinates, key string, settings Settings, extra ...http.QueryParam) http.QueryParams {
	params := settings.Params()
	params = append(params, coords.Params()...)
	params = append(params, extra...)
	return params.Add(keyParam, key)
}

func rangeParams(start, end time.Time) []http.QueryParam {
	return []http.QueryParam{
		http.Param("start", epoch(start)),
		http.Param("end", epoch(end)),
	}
}

func epoch(t time.Time) string {
	return strconv.FormatInt(t.Unix(), 10)
}

// CheckDays rejects a forecast length outside 1..limit without touching the network.
func CheckDays(n uint8, limit uint8) error {
	if n == 0 || n > limit {
		return &InputError{Msg: fmt.Sprintf("Only support 1 to %d day forecasts but %d requested", limit, n)}
	}
	return nil
}

// GetCurrentWeather returns current conditions for loc.
func (c *Client) GetCurrentWeather(loc LocationSpecifier, key string, settings Settings) (*WeatherReportCurrent, error) {
	report, err := get[WeatherReportCurrent](c, PathCurrentWeather, locationQuery(loc, key, settings))
	if err != nil {
		return nil, err
	}
	return &report, nil
}

// Get5DayForecast returns the 5 day / 3 hour forecast for loc.
func (c *Client) Get5DayForecast(loc LocationSpecifier, key string, settings Settings) (*WeatherReport5Day, error) {
	report, err := get[WeatherReport5Day](c, Path5DayForecast, locationQuery(loc, key, settings))
	if err != nil {
		return nil, err
	}
	return &report, nil
}

// Get16DayForecast returns a daily forecast of days entries, 1 to 16.
func (c *Client) Get16DayForecast(loc LocationSpecifier, key string, days uint8, settings Settings) (*WeatherReport16Day, error) {
	if err := CheckDays(days, MaxDailyForecastDays); err != nil {
		return nil, err
	}

	params := locationQuery(loc, key, settings, http.Param("cnt", strconv.Itoa(int(days))))
	report, err := get[WeatherReport16Day](c, Path16DayForecast, params)
	if err != nil {
		return nil, err
	}
	return &report, nil
}

// GetOneCallCurrent returns current conditions plus the daily forecast for coords.
// Minutely and hourly blocks are excluded.
func (c *Client) GetOneCallCurrent(coords Coordinates, key string, settings Settings) (*WeatherReportOneCall, error) {
	params := coordinateQuery(coords, key, settings, http.Param("exclude", "minutely,hourly"))
	report, err := get[WeatherReportOneCall](c, PathOneCall, params)
	if err != nil {
		return nil, err
	}
	return &report, nil
}

// GetOneCallHistorical returns conditions at coords for the instant dt.
func (c *Client) GetOneCallHistorical(coords Coordinates, dt time.Time, key string, settings Settings) (*WeatherReportOneCallHistorical, error) {
	params := coordinateQuery(coords, key, settings, http.Param("dt", epoch(dt)))
	report, err := get[WeatherReportOneCallHistorical](c, PathOneCallHistorical, params)
	if err != nil {
		return nil, err
	}
	return &report, nil
}

// GetHistoricalData returns hourly history for loc between start and end.
func (c *Client) GetHistoricalData(loc LocationSpecifier, key string, start, end time.Time, settings Settings) (*WeatherReportHistorical, error) {
	extra := append([]http.QueryParam{http.Param("type", "hour")}, rangeParams(start, end)...)
	report, err := get[WeatherReportHistorical](c, PathHistoricalCity, locationQuery(loc, key, settings, extra...))
	if err != nil {
		return nil, err
	}
	return &report, nil
}

// GetAccumulatedTemperatureData returns daily accumulated temperature above threshold.
func (c *Client) GetAccumulatedTemperatureData(loc LocationSpecifier, key string, start, end time.Time, threshold uint32, settings Settings) (WeatherAccumulatedTemperature, error) {
	return get[WeatherAccumulatedTemperature](c, PathAccumulatedTemperature, accumulatedQuery(loc, key, start, end, threshold, settings))
}

// GetAccumulatedPrecipitationData returns daily accumulated precipitation above threshold.
func (c *Client) GetAccumulatedPrecipitationData(loc LocationSpecifier, key string, start, end time.Time, threshold uint32, settings Settings) (WeatherAccumulatedPrecipitation, error) {
	return get[WeatherAccumulatedPrecipitation](c, PathAccumulatedPrecipitation, accumulatedQuery(loc, key, start, end, threshold, settings))
}

func accumulatedQuery(loc LocationSpecifier, key string, start, end time.Time, threshold uint32, settings Settings) http.QueryParams {
	extra := append([]http.QueryParam{http.Param("type", "hour")}, rangeParams(start, end)...)
	extra = append(extra, http.Param("threshold", strconv.FormatUint(uint64(threshold), 10)))
	return locationQuery(loc, key, settings, extra...)
}

// GetCurrentUvIndex returns the current UV index for loc.
func (c *Client) GetCurrentUvIndex(loc LocationSpecifier, key string, settings Settings) (*UvIndex, error) {
	report, err := get[UvIndex](c, PathUvIndex, locationQuery(loc, key, settings))
	if err != nil {
		return nil, err
	}
	return &report, nil
}

// GetForecastUvIndex returns a UV forecast of days entries, 1 to 8.
func (c *Client) GetForecastUvIndex(loc LocationSpecifier, key string, days uint8, settings Settings) (ForecastUvIndex, error) {
	if err := CheckDays(days, MaxUvForecastDays); err != nil {
		return nil, err
	}
	params := locationQuery(loc, key, settings, http.Param("cnt", strconv.Itoa(int(days))))
	return get[ForecastUvIndex](c, PathUvIndexForecast, params)
}

// GetHistoricalUvIndex returns UV history for loc between start and end.
func (c *Client) GetHistoricalUvIndex(loc LocationSpecifier, key string, start, end time.Time, settings Settings) (HistoricalUvIndex, error) {
	return get[HistoricalUvIndex](c, PathUvIndexHistory, locationQuery(loc, key, settings, rangeParams(start, end)...))
}

// GetCurrentWeather calls DefaultClient.GetCurrentWeather.
func GetCurrentWeather(loc LocationSpecifier, key string, settings Settings) (*WeatherReportCurrent, error) {
	return DefaultClient.GetCurrentWeather(loc, key, settings)
}

// Get5DayForecast calls DefaultClient.Get5DayForecast.
func Get5DayForecast(loc LocationSpecifier, key string, settings Settings) (*WeatherReport5Day, error) {
	return DefaultClient.Get5DayForecast(loc, key, settings)
}

// Get16DayForecast calls DefaultClient.Get16DayForecast.
func Get16DayForecast(loc LocationSpecifier, key string, days uint8, settings Settings) (*WeatherReport16Day, error) {
	return DefaultClient.Get16DayForecast(loc, key, days, settings)
}

// GetOneCallCurrent calls DefaultClient.GetOneCallCurrent.
func GetOneCallCurrent(coords Coordinates, key string, settings Settings) (*WeatherReportOneCall, error) {
	return DefaultClient.GetOneCallCurrent(coords, key, settings)
}

// GetOneCallHistorical calls DefaultClient.GetOneCallHistorical.
func GetOneCallHistorical(coords Coordinates, dt time.Time, key string, settings Settings) (*WeatherReportOneCallHistorical, error) {
	return DefaultClient.GetOneCallHistorical(coords, dt, key, settings)
}

// GetHistoricalData calls DefaultClient.GetHistoricalData.
func GetHistoricalData(loc LocationSpecifier, key string, start, end time.Time, settings Settings) (*WeatherReportHistorical, error) {
	return DefaultClient.GetHistoricalData(loc, key, start, end, settings)
}

// GetAccumulatedTemperatureData calls DefaultClient.GetAccumulatedTemperatureData.
func GetAccumulatedTemperatureData(loc LocationSpecifier, key string, start, end time.Time, threshold uint32, settings Settings) (WeatherAccumulatedTemperature, error) {
	return DefaultClient.GetAccumulatedTemperatureData(loc, key, start, end, threshold, settings)
}

// GetAccumulatedPrecipitationData calls DefaultClient.GetAccumulatedPrecipitationData.
func GetAccumulatedPrecipitationData(loc LocationSpecifier, key string, start, end time.Time, threshold uint32, settings Settings) (WeatherAccumulatedPrecipitation, error) {
	return DefaultClient.GetAccumulatedPrecipitationData(loc, key, start, end, threshold, settings)
}

// GetCurrentUvIndex calls DefaultClient.GetCurrentUvIndex.
func GetCurrentUvIndex(loc LocationSpecifier, key string, settings Settings) (*UvIndex, error) {
	return DefaultClient.GetCurrentUvIndex(loc, key, settings)
}

// GetForecastUvIndex calls DefaultClient.GetForecastUvIndex.
func GetForecastUvIndex(loc LocationSpecifier, key string, days uint8, settings Settings) (ForecastUvIndex, error) {
	return DefaultClient.GetForecastUvIndex(loc, key, days, settings)
}

// GetHistoricalUvIndex calls DefaultClient.GetHistoricalUvIndex.
func GetHistoricalUvIndex(loc LocationSpecifier, key string, start, end time.Time, settings Settings) (HistoricalUvIndex, error) {
	return DefaultClient.GetHistoricalUvIndex(loc, key, start, end, settings)
}
