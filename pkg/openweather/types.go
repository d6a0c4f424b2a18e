package openweather

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// Fields tagged omitempty are optional in the upstream payload. All other fields must
// be present for a body to count as that type; see jsonutils.StrictUnmarshal.

// StatusCode is the "cod" member. The API sends it as a number or a string.
type StatusCode int

func (c *StatusCode) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		n, err := strconv.Atoi(s)
		if err != nil {
			return fmt.Errorf("cod %q is not numeric", s)
		}
		*c = StatusCode(n)
		return nil
	}

	var n int
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*c = StatusCode(n)
	return nil
}

// ErrorReport is the body the API returns for domain failures (bad key, unknown city, ...).
type ErrorReport struct {
	Code    StatusCode `json:"cod"`
	Message string     `json:"message"`
}

func (r ErrorReport) String() string {
	return fmt.Sprintf("%d: %s", r.Code, r.Message)
}

// Weather is one weather condition entry.
type Weather struct {
	ID          int    `json:"id"`
	Main        string `json:"main"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

// Main holds the core measurements of a report.
type Main struct {
	Temp      float64  `json:"temp"`
	FeelsLike *float64 `json:"feels_like,omitempty"`
	TempMin   float64  `json:"temp_min"`
	TempMax   float64  `json:"temp_max"`
	Pressure  float64  `json:"pressure"`
	Humidity  float64  `json:"humidity"`
	SeaLevel  *float64 `json:"sea_level,omitempty"`
	GrndLevel *float64 `json:"grnd_level,omitempty"`
	TempKf    *float64 `json:"temp_kf,omitempty"`
}

type Wind struct {
	Speed float64  `json:"speed"`
	Deg   *float64 `json:"deg,omitempty"`
	Gust  *float64 `json:"gust,omitempty"`
}

type Clouds struct {
	All float64 `json:"all"`
}

// Precipitation is rain or snow volume in mm over the last hour / three hours.
type Precipitation struct {
	OneHour    *float64 `json:"1h,omitempty"`
	ThreeHours *float64 `json:"3h,omitempty"`
}

type Sys struct {
	Type    *int     `json:"type,omitempty"`
	ID      *int64   `json:"id,omitempty"`
	Message *float64 `json:"message,omitempty"`
	Country string   `json:"country,omitempty"`
	Sunrise int64    `json:"sunrise,omitempty"`
	Sunset  int64    `json:"sunset,omitempty"`
}

// WeatherReportCurrent is the response of the "weather" endpoint.
type WeatherReportCurrent struct {
	Coord      Coordinates    `json:"coord"`
	Weather    []Weather      `json:"weather"`
	Base       string         `json:"base,omitempty"`
	Main       Main           `json:"main"`
	Visibility *int           `json:"visibility,omitempty"`
	Wind       Wind           `json:"wind"`
	Clouds     Clouds         `json:"clouds"`
	Rain       *Precipitation `json:"rain,omitempty"`
	Snow       *Precipitation `json:"snow,omitempty"`
	Dt         int64          `json:"dt"`
	Sys        Sys            `json:"sys"`
	Timezone   *int           `json:"timezone,omitempty"`
	ID         int64          `json:"id"`
	Name       string         `json:"name"`
	Cod        StatusCode     `json:"cod"`
}

type City struct {
	ID         int64       `json:"id"`
	Name       string      `json:"name"`
	Coord      Coordinates `json:"coord"`
	Country    string      `json:"country"`
	Population *int64      `json:"population,omitempty"`
	Timezone   *int        `json:"timezone,omitempty"`
	Sunrise    *int64      `json:"sunrise,omitempty"`
	Sunset     *int64      `json:"sunset,omitempty"`
}

type PartOfDay struct {
	Pod string `json:"pod"`
}

// Forecast3Hour is one entry of the 5 day / 3 hour forecast.
type Forecast3Hour struct {
	Dt         int64          `json:"dt"`
	Main       Main           `json:"main"`
	Weather    []Weather      `json:"weather"`
	Clouds     Clouds         `json:"clouds"`
	Wind       Wind           `json:"wind"`
	Visibility *int           `json:"visibility,omitempty"`
	Pop        *float64       `json:"pop,omitempty"`
	Rain       *Precipitation `json:"rain,omitempty"`
	Snow       *Precipitation `json:"snow,omitempty"`
	Sys        *PartOfDay     `json:"sys,omitempty"`
	DtTxt      string         `json:"dt_txt"`
}

// WeatherReport5Day is the response of the "forecast" endpoint.
type WeatherReport5Day struct {
	Cod     StatusCode      `json:"cod"`
	Message any             `json:"message,omitempty"`
	Cnt     int             `json:"cnt"`
	List    []Forecast3Hour `json:"list"`
	City    City            `json:"city"`
}

type DailyTemperature struct {
	Day   float64 `json:"day"`
	Min   float64 `json:"min"`
	Max   float64 `json:"max"`
	Night float64 `json:"night"`
	Eve   float64 `json:"eve"`
	Morn  float64 `json:"morn"`
}

type DailyFeelsLike struct {
	Day   float64 `json:"day"`
	Night float64 `json:"night"`
	Eve   float64 `json:"eve"`
	Morn  float64 `json:"morn"`
}

// ForecastDaily is one day of the 16 day forecast.
type ForecastDaily struct {
	Dt        int64            `json:"dt"`
	Sunrise   *int64           `json:"sunrise,omitempty"`
	Sunset    *int64           `json:"sunset,omitempty"`
	Temp      DailyTemperature `json:"temp"`
	FeelsLike *DailyFeelsLike  `json:"feels_like,omitempty"`
	Pressure  float64          `json:"pressure"`
	Humidity  float64          `json:"humidity"`
	Weather   []Weather        `json:"weather"`
	Speed     float64          `json:"speed"`
	Deg       float64          `json:"deg"`
	Gust      *float64         `json:"gust,omitempty"`
	Clouds    float64          `json:"clouds"`
	Pop       *float64         `json:"pop,omitempty"`
	Rain      *float64         `json:"rain,omitempty"`
	Snow      *float64         `json:"snow,omitempty"`
}

// WeatherReport16Day is the response of the "forecast/daily" endpoint.
type WeatherReport16Day struct {
	City    City            `json:"city"`
	Cod     StatusCode      `json:"cod"`
	Message any             `json:"message,omitempty"`
	Cnt     int             `json:"cnt"`
	List    []ForecastDaily `json:"list"`
}

// OneCallPoint is a single instant of one-call data: "current" or one "hourly" entry.
type OneCallPoint struct {
	Dt         int64          `json:"dt"`
	Sunrise    *int64         `json:"sunrise,omitempty"`
	Sunset     *int64         `json:"sunset,omitempty"`
	Temp       float64        `json:"temp"`
	FeelsLike  float64        `json:"feels_like"`
	Pressure   float64        `json:"pressure"`
	Humidity   float64        `json:"humidity"`
	DewPoint   float64        `json:"dew_point"`
	Uvi        *float64       `json:"uvi,omitempty"`
	Clouds     float64        `json:"clouds"`
	Visibility *int           `json:"visibility,omitempty"`
	WindSpeed  float64        `json:"wind_speed"`
	WindDeg    float64        `json:"wind_deg"`
	WindGust   *float64       `json:"wind_gust,omitempty"`
	Pop        *float64       `json:"pop,omitempty"`
	Rain       *Precipitation `json:"rain,omitempty"`
	Snow       *Precipitation `json:"snow,omitempty"`
	Weather    []Weather      `json:"weather"`
}

type OneCallMinute struct {
	Dt            int64   `json:"dt"`
	Precipitation float64 `json:"precipitation"`
}

type OneCallDaily struct {
	Dt        int64            `json:"dt"`
	Sunrise   *int64           `json:"sunrise,omitempty"`
	Sunset    *int64           `json:"sunset,omitempty"`
	Temp      DailyTemperature `json:"temp"`
	FeelsLike DailyFeelsLike   `json:"feels_like"`
	Pressure  float64          `json:"pressure"`
	Humidity  float64          `json:"humidity"`
	DewPoint  float64          `json:"dew_point"`
	WindSpeed float64          `json:"wind_speed"`
	WindDeg   float64          `json:"wind_deg"`
	WindGust  *float64         `json:"wind_gust,omitempty"`
	Weather   []Weather        `json:"weather"`
	Clouds    float64          `json:"clouds"`
	Pop       *float64         `json:"pop,omitempty"`
	Rain      *float64         `json:"rain,omitempty"`
	Snow      *float64         `json:"snow,omitempty"`
	Uvi       *float64         `json:"uvi,omitempty"`
}

// Alert is a national weather alert attached to a one-call response.
type Alert struct {
	SenderName  string   `json:"sender_name"`
	Event       string   `json:"event"`
	Start       int64    `json:"start"`
	End         int64    `json:"end"`
	Description string   `json:"description"`
	Tags        []string `json:"tags,omitempty"`
}

// WeatherReportOneCall is the response of the "onecall" endpoint.
type WeatherReportOneCall struct {
	Lat            float64         `json:"lat"`
	Lon            float64         `json:"lon"`
	Timezone       string          `json:"timezone"`
	TimezoneOffset *int            `json:"timezone_offset,omitempty"`
	Current        OneCallPoint    `json:"current"`
	Minutely       []OneCallMinute `json:"minutely,omitempty"`
	Hourly         []OneCallPoint  `json:"hourly,omitempty"`
	Daily          []OneCallDaily  `json:"daily,omitempty"`
	Alerts         []Alert         `json:"alerts,omitempty"`
}

// WeatherReportOneCallHistorical is the response of the "onecall/timemachine" endpoint.
type WeatherReportOneCallHistorical struct {
	Lat            float64        `json:"lat"`
	Lon            float64        `json:"lon"`
	Timezone       string         `json:"timezone"`
	TimezoneOffset *int           `json:"timezone_offset,omitempty"`
	Current        OneCallPoint   `json:"current"`
	Hourly         []OneCallPoint `json:"hourly,omitempty"`
}

// HistoricalEntry is one hourly record of city history.
type HistoricalEntry struct {
	Dt      int64          `json:"dt"`
	Main    Main           `json:"main"`
	Wind    Wind           `json:"wind"`
	Clouds  Clouds         `json:"clouds"`
	Weather []Weather      `json:"weather"`
	Rain    *Precipitation `json:"rain,omitempty"`
	Snow    *Precipitation `json:"snow,omitempty"`
}

// WeatherReportHistorical is the response of the "history/city" endpoint.
type WeatherReportHistorical struct {
	Message  string            `json:"message,omitempty"`
	Cod      StatusCode        `json:"cod"`
	CityID   int64             `json:"city_id"`
	Calctime *float64          `json:"calctime,omitempty"`
	Cnt      int               `json:"cnt"`
	List     []HistoricalEntry `json:"list"`
}

type AccumulatedTemperature struct {
	Date  string  `json:"date"`
	Temp  float64 `json:"temp"`
	Count int     `json:"count"`
}

// WeatherAccumulatedTemperature is the response of "history/accumulated_temperature".
type WeatherAccumulatedTemperature []AccumulatedTemperature

type AccumulatedPrecipitation struct {
	Date  string  `json:"date"`
	Rain  float64 `json:"rain"`
	Count int     `json:"count"`
}

// WeatherAccumulatedPrecipitation is the response of "history/accumulated_precipitation".
type WeatherAccumulatedPrecipitation []AccumulatedPrecipitation

// UvIndex is the response of the "uvi" endpoint and the element of the UV lists.
type UvIndex struct {
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
	DateIso string  `json:"date_iso"`
	Date    int64   `json:"date"`
	Value   float64 `json:"value"`
}

// ForecastUvIndex is the response of "uvi/forecast".
type ForecastUvIndex []UvIndex

// HistoricalUvIndex is the response of "uvi/history".
type HistoricalUvIndex []UvIndex
