package model

import (
	"net/url"
	"strconv"
	"strings"
)

// WeatherQuery is the location and display settings of a weather request.
// Lat and Lon are pointers so that 0 can be told apart from absent.
type WeatherQuery struct {
	ID      uint64   `json:"id,omitempty"`
	Lat     *float64 `json:"lat,omitempty"`
	Lon     *float64 `json:"lon,omitempty"`
	Zip     string   `json:"zip,omitempty"`
	City    string   `json:"city,omitempty"`
	Country string   `json:"country,omitempty"`
	Units   string   `json:"units,omitempty"`
	Lang    string   `json:"lang,omitempty"`
}

// CacheKey renders the query as a stable string, lower-cased where the API is case-insensitive.
// Values are query-escaped so a field can never impersonate another.
func (q WeatherQuery) CacheKey() string {
	var b strings.Builder
	write := func(k, v string) {
		if v == "" {
			return
		}
		if b.Len() > 0 {
			b.WriteByte('&')
		}
		b.WriteString(k)
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(v))
	}

	if q.ID != 0 {
		write("id", strconv.FormatUint(q.ID, 10))
	}
	if q.Lat != nil {
		write("lat", strconv.FormatFloat(*q.Lat, 'f', -1, 64))
	}
	if q.Lon != nil {
		write("lon", strconv.FormatFloat(*q.Lon, 'f', -1, 64))
	}
	write("zip", strings.ToLower(strings.TrimSpace(q.Zip)))
	write("city", strings.ToLower(strings.TrimSpace(q.City)))
	write("country", strings.ToLower(strings.TrimSpace(q.Country)))
	write("units", strings.ToLower(strings.TrimSpace(q.Units)))
	write("lang", strings.ToLower(strings.TrimSpace(q.Lang)))
	return b.String()
}

// CurrentWeatherTopicPrefix prefixes every published current-weather update.
const CurrentWeatherTopicPrefix = "weather/current/"

// CurrentWeatherTopic names the publish topic of a city, e.g. "weather/current/sao-paulo-br".
func CurrentWeatherTopic(city, country string) string {
	slug := strings.Join(strings.Fields(strings.ToLower(city)), "-")
	if country = strings.ToLower(strings.TrimSpace(country)); country != "" {
		slug += "-" + country
	}
	return CurrentWeatherTopicPrefix + slug
}
