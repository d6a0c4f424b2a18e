package main

import (
	"errors"
	"os"
	"time"

	"go.uber.org/zap"

	"go-owm/pkg/log"
	"go-owm/pkg/openweather"
)

// Run with OWM_API_KEY set. LOG_LEVEL=debug shows the redacted request URLs.
func main() {
	defer log.Sync()

	key := os.Getenv("OWM_API_KEY")
	if key == "" {
		log.Fatal("OWM_API_KEY is not set")
	}

	minneapolis := openweather.CityAndCountryName{City: "Minneapolis", Country: "USA"}
	metric := openweather.Settings{Unit: openweather.Metric, Lang: openweather.English}

	current, err := openweather.GetCurrentWeather(minneapolis, key, metric)
	if err != nil {
		report(err)
	} else {
		log.Infof("Minneapolis: %.1f°C, %.0f%% humidity, %s", current.Main.Temp, current.Main.Humidity, describe(current.Weather))
	}

	mammoth := openweather.Coordinates{Lat: 37.65047, Lon: -119.037439}
	oneCall, err := openweather.GetOneCallCurrent(mammoth, key, openweather.Settings{Unit: openweather.Imperial})
	if err != nil {
		report(err)
	} else {
		log.Infof("Mammoth Mountain (%s): %.1f°F now, %d daily entries", oneCall.Timezone, oneCall.Current.Temp, len(oneCall.Daily))
	}

	uv, err := openweather.GetForecastUvIndex(openweather.CityID{ID: 5391959}, key, 3, openweather.Settings{})
	if err != nil {
		report(err)
	} else {
		for _, day := range uv {
			log.Infof("San Francisco UV %s: %.1f", time.Unix(day.Date, 0).UTC().Format(time.DateOnly), day.Value)
		}
	}

	// rejected before any request is made
	if _, err := openweather.Get16DayForecast(minneapolis, key, 17, metric); err != nil {
		report(err)
	}

	// an unknown city comes back as an error report
	if _, err := openweather.GetCurrentWeather(openweather.CityName{City: "Atlantis-under-the-sea"}, key, metric); err != nil {
		report(err)
	}
}

func describe(conditions []openweather.Weather) string {
	if len(conditions) == 0 {
		return "no conditions"
	}
	return conditions[0].Description
}

func report(err error) {
	var (
		apiErr   *openweather.APIError
		parseErr *openweather.ParseError
		inputErr *openweather.InputError
	)

	switch {
	case errors.As(err, &apiErr):
		log.Warn("API returned an error report",
			zap.Int("cod", int(apiErr.Report.Code)),
			zap.String("message", apiErr.Report.Message))
	case errors.As(err, &parseErr):
		log.Error("Unexpected body", zap.String("target", parseErr.Target), zap.Error(err))
	case errors.As(err, &inputErr):
		log.Warn("Rejected input", zap.String("reason", inputErr.Msg))
	default:
		log.Error("Request failed", zap.Error(err))
	}
}
