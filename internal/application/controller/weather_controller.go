package controller

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"go-owm/internal/domain/model"
	"go-owm/internal/domain/usecase/weather"
	"go-owm/pkg/openweather"
	"go-owm/pkg/util/numberutils"
)

const (
	defaultDailyDays = 7
	defaultUvDays    = int(openweather.MaxUvForecastDays)
)

type WeatherController struct {
	api     *echo.Group
	useCase weather.UseCase
}

func NewWeatherController(api *echo.Group, useCase weather.UseCase) *WeatherController {
	return &WeatherController{api: api, useCase: useCase}
}

// InitWeatherRoutes initializes weather routes
func (controller *WeatherController) InitWeatherRoutes() {
	controller.api.GET("/weather/current", controller.CurrentWeather)
	controller.api.GET("/weather/forecast", controller.Forecast)
	controller.api.GET("/weather/forecast/daily", controller.DailyForecast)
	controller.api.GET("/weather/onecall", controller.OneCall)
	controller.api.GET("/weather/onecall/timemachine", controller.OneCallHistorical)
	controller.api.GET("/weather/history", controller.History)
	controller.api.GET("/weather/history/accumulated-temperature", controller.AccumulatedTemperature)
	controller.api.GET("/weather/history/accumulated-precipitation", controller.AccumulatedPrecipitation)
	controller.api.GET("/weather/uvi", controller.CurrentUvIndex)
	controller.api.GET("/weather/uvi/forecast", controller.ForecastUvIndex)
	controller.api.GET("/weather/uvi/history", controller.HistoricalUvIndex)
}

// CurrentWeather godoc
// @Summary Current weather
// @Description Current conditions for id, lat+lon, zip or city (with optional country)
// @Tags weather
// @Produce json
// @Router /weather/current [get]
func (controller *WeatherController) CurrentWeather(c echo.Context) error {
	query, err := bindWeatherQuery(c)
	if err != nil {
		return writeError(c, err)
	}
	result, err := controller.useCase.CurrentWeather(c.Request().Context(), query)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, result)
}

// Forecast godoc
// @Summary 5 day / 3 hour forecast
// @Tags weather
// @Produce json
// @Router /weather/forecast [get]
func (controller *WeatherController) Forecast(c echo.Context) error {
	query, err := bindWeatherQuery(c)
	if err != nil {
		return writeError(c, err)
	}
	result, err := controller.useCase.Forecast(c.Request().Context(), query)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, result)
}

// DailyForecast godoc
// @Summary Daily forecast up to 16 days
// @Tags weather
// @Produce json
// @Param cnt query int false "Number of days (1-16)" default(7)
// @Router /weather/forecast/daily [get]
func (controller *WeatherController) DailyForecast(c echo.Context) error {
	query, err := bindWeatherQuery(c)
	if err != nil {
		return writeError(c, err)
	}
	days, err := parseDays(c, defaultDailyDays)
	if err != nil {
		return writeError(c, err)
	}
	result, err := controller.useCase.DailyForecast(c.Request().Context(), query, days)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, result)
}

// OneCall godoc
// @Summary One Call current and daily data
// @Tags weather
// @Produce json
// @Param lat query number true "Latitude"
// @Param lon query number true "Longitude"
// @Router /weather/onecall [get]
func (controller *WeatherController) OneCall(c echo.Context) error {
	query, err := bindWeatherQuery(c)
	if err != nil {
		return writeError(c, err)
	}
	result, err := controller.useCase.OneCall(c.Request().Context(), query)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, result)
}

// OneCallHistorical godoc
// @Summary One Call data for a past instant
// @Tags weather
// @Produce json
// @Param dt query int true "Unix time in seconds"
// @Router /weather/onecall/timemachine [get]
func (controller *WeatherController) OneCallHistorical(c echo.Context) error {
	query, err := bindWeatherQuery(c)
	if err != nil {
		return writeError(c, err)
	}
	dt, err := parseUnix(c, "dt")
	if err != nil {
		return writeError(c, err)
	}
	result, err := controller.useCase.OneCallHistorical(c.Request().Context(), query, dt)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, result)
}

// History godoc
// @Summary Hourly historical data
// @Tags weather
// @Produce json
// @Param start query int true "Unix time in seconds"
// @Param end query int true "Unix time in seconds"
// @Router /weather/history [get]
func (controller *WeatherController) History(c echo.Context) error {
	query, start, end, err := bindRangeQuery(c)
	if err != nil {
		return writeError(c, err)
	}
	result, err := controller.useCase.History(c.Request().Context(), query, start, end)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, result)
}

// AccumulatedTemperature godoc
// @Summary Accumulated temperature over a threshold
// @Tags weather
// @Produce json
// @Param threshold query int false "Threshold"
// @Router /weather/history/accumulated-temperature [get]
func (controller *WeatherController) AccumulatedTemperature(c echo.Context) error {
	query, start, end, err := bindRangeQuery(c)
	if err != nil {
		return writeError(c, err)
	}
	threshold, err := parseThreshold(c)
	if err != nil {
		return writeError(c, err)
	}
	result, err := controller.useCase.AccumulatedTemperature(c.Request().Context(), query, start, end, threshold)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, result)
}

// AccumulatedPrecipitation godoc
// @Summary Accumulated precipitation over a threshold
// @Tags weather
// @Produce json
// @Param threshold query int false "Threshold"
// @Router /weather/history/accumulated-precipitation [get]
func (controller *WeatherController) AccumulatedPrecipitation(c echo.Context) error {
	query, start, end, err := bindRangeQuery(c)
	if err != nil {
		return writeError(c, err)
	}
	threshold, err := parseThreshold(c)
	if err != nil {
		return writeError(c, err)
	}
	result, err := controller.useCase.AccumulatedPrecipitation(c.Request().Context(), query, start, end, threshold)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, result)
}

// CurrentUvIndex godoc
// @Summary Current UV index
// @Tags weather
// @Produce json
// @Router /weather/uvi [get]
func (controller *WeatherController) CurrentUvIndex(c echo.Context) error {
	query, err := bindWeatherQuery(c)
	if err != nil {
		return writeError(c, err)
	}
	result, err := controller.useCase.CurrentUvIndex(c.Request().Context(), query)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, result)
}

// ForecastUvIndex godoc
// @Summary UV index forecast up to 8 days
// @Tags weather
// @Produce json
// @Param cnt query int false "Number of days (1-8)" default(8)
// @Router /weather/uvi/forecast [get]
func (controller *WeatherController) ForecastUvIndex(c echo.Context) error {
	query, err := bindWeatherQuery(c)
	if err != nil {
		return writeError(c, err)
	}
	days, err := parseDays(c, defaultUvDays)
	if err != nil {
		return writeError(c, err)
	}
	result, err := controller.useCase.ForecastUvIndex(c.Request().Context(), query, days)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, result)
}

// HistoricalUvIndex godoc
// @Summary Historical UV index
// @Tags weather
// @Produce json
// @Router /weather/uvi/history [get]
func (controller *WeatherController) HistoricalUvIndex(c echo.Context) error {
	query, start, end, err := bindRangeQuery(c)
	if err != nil {
		return writeError(c, err)
	}
	result, err := controller.useCase.HistoricalUvIndex(c.Request().Context(), query, start, end)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, result)
}

func bindWeatherQuery(c echo.Context) (model.WeatherQuery, error) {
	query := model.WeatherQuery{
		Zip:     c.QueryParam("zip"),
		City:    c.QueryParam("city"),
		Country: c.QueryParam("country"),
		Units:   c.QueryParam("units"),
		Lang:    c.QueryParam("lang"),
	}

	if raw := c.QueryParam("id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil || id == 0 {
			return query, inputError("id must be a positive integer, got %q", raw)
		}
		query.ID = id
	}

	var err error
	if query.Lat, err = parseFloat(c, "lat"); err != nil {
		return query, err
	}
	if query.Lon, err = parseFloat(c, "lon"); err != nil {
		return query, err
	}
	return query, nil
}

func bindRangeQuery(c echo.Context) (model.WeatherQuery, time.Time, time.Time, error) {
	query, err := bindWeatherQuery(c)
	if err != nil {
		return query, time.Time{}, time.Time{}, err
	}
	start, err := parseUnix(c, "start")
	if err != nil {
		return query, time.Time{}, time.Time{}, err
	}
	end, err := parseUnix(c, "end")
	if err != nil {
		return query, time.Time{}, time.Time{}, err
	}
	return query, start, end, nil
}

func parseFloat(c echo.Context, name string) (*float64, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return nil, nil
	}
	v, err := numberutils.ToFloat64WithError(raw)
	if err != nil {
		return nil, inputError("%s must be a number, got %q", name, raw)
	}
	return &v, nil
}

// parseUnix reads a required Unix time in seconds.
func parseUnix(c echo.Context, name string) (time.Time, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return time.Time{}, inputError("%s is required", name)
	}
	seconds, err := numberutils.ToInt64WithError(raw)
	if err != nil || seconds < 0 {
		return time.Time{}, inputError("%s must be a Unix time in seconds, got %q", name, raw)
	}
	return time.Unix(seconds, 0).UTC(), nil
}

// parseDays reads cnt. Values that fit in a byte are passed on so the client
// reports its own range error.
func parseDays(c echo.Context, defaultDays int) (uint8, error) {
	raw := c.QueryParam("cnt")
	if raw == "" {
		return uint8(defaultDays), nil
	}
	days, err := numberutils.ToIntWithError(raw)
	if err != nil || !numberutils.IsIntInRange(days, 0, 255) {
		return 0, inputError("cnt must be a small positive integer, got %q", raw)
	}
	return uint8(days), nil
}

func parseThreshold(c echo.Context) (uint32, error) {
	raw := c.QueryParam("threshold")
	if raw == "" {
		return 0, nil
	}
	threshold, err := numberutils.ToUint32WithError(raw)
	if err != nil {
		return 0, inputError("threshold must be a non-negative integer, got %q", raw)
	}
	return threshold, nil
}

func inputError(format string, args ...any) error {
	return &openweather.InputError{Msg: fmt.Sprintf(format, args...)}
}
