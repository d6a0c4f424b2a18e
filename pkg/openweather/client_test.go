package openweather

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"
)

const testAPIKey = "test-key"

type fakeUpstream struct {
	server   *httptest.Server
	hits     atomic.Int32
	path     atomic.Value
	rawQuery atomic.Value
}

func newFakeUpstream(t *testing.T, status int, body string) *fakeUpstream {
	t.Helper()
	f := &fakeUpstream{}
	f.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.hits.Add(1)
		f.path.Store(r.URL.Path)
		f.rawQuery.Store(r.URL.RawQuery)
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(f.server.Close)
	return f
}

func (f *fakeUpstream) client() *Client {
	return NewClient(WithBaseURL(f.server.URL + "/data/2.5/"))
}

func (f *fakeUpstream) lastPath() string {
	v, _ := f.path.Load().(string)
	return v
}

func (f *fakeUpstream) lastQuery() string {
	v, _ := f.rawQuery.Load().(string)
	return v
}

var (
	minneapolis = CityAndCountryName{City: "Minneapolis", Country: "USA"}
	mammoth     = Coordinates{Lat: 37.65047, Lon: -119.037439}
	rangeStart  = time.Unix(1696118400, 0)
	rangeEnd    = time.Unix(1696204800, 0)
)

func TestEndpointsBuildOrderedQuery(t *testing.T) {
	metricEnglish := Settings{Unit: Metric, Lang: English}

	tests := []struct {
		name      string
		body      string
		call      func(c *Client) error
		wantPath  string
		wantQuery string
	}{
		{
			name: "current weather",
			body: currentWeatherBody,
			call: func(c *Client) error {
				_, err := c.GetCurrentWeather(minneapolis, testAPIKey, metricEnglish)
				return err
			},
			wantPath:  "/data/2.5/weather",
			wantQuery: "q=Minneapolis%2CUSA&APPID=test-key&units=metric&lang=en",
		},
		{
			name: "5 day forecast",
			body: fiveDayBody,
			call: func(c *Client) error {
				_, err := c.Get5DayForecast(CityID{ID: 5037649}, testAPIKey, Settings{})
				return err
			},
			wantPath:  "/data/2.5/forecast",
			wantQuery: "id=5037649&APPID=test-key",
		},
		{
			name: "16 day forecast",
			body: sixteenDayBody,
			call: func(c *Client) error {
				_, err := c.Get16DayForecast(ZipCode{Zip: "55401", Country: "us"}, testAPIKey, 7, Settings{Unit: Imperial})
				return err
			},
			wantPath:  "/data/2.5/forecast/daily",
			wantQuery: "zip=55401%2Cus&cnt=7&APPID=test-key&units=imperial",
		},
		{
			name: "one call current",
			body: oneCallBody,
			call: func(c *Client) error {
				_, err := c.GetOneCallCurrent(mammoth, testAPIKey, Settings{Lang: German})
				return err
			},
			wantPath:  "/data/2.5/onecall",
			wantQuery: "lang=de&lat=37.65047&lon=-119.037439&exclude=minutely%2Chourly&APPID=test-key",
		},
		{
			name: "one call historical",
			body: oneCallHistoricalBody,
			call: func(c *Client) error {
				_, err := c.GetOneCallHistorical(Coordinates{Lat: 40.457177, Lon: -106.804447}, rangeStart, testAPIKey, Settings{})
				return err
			},
			wantPath:  "/data/2.5/onecall/timemachine",
			wantQuery: "lat=40.457177&lon=-106.804447&dt=1696118400&APPID=test-key",
		},
		{
			name: "historical city",
			body: historicalBody,
			call: func(c *Client) error {
				_, err := c.GetHistoricalData(CityName{City: "London"}, testAPIKey, rangeStart, rangeEnd, Settings{Unit: Standard})
				return err
			},
			wantPath:  "/data/2.5/history/city",
			wantQuery: "q=London&type=hour&start=1696118400&end=1696204800&APPID=test-key&units=standard",
		},
		{
			name: "accumulated temperature",
			body: accumulatedTemperatureBody,
			call: func(c *Client) error {
				_, err := c.GetAccumulatedTemperatureData(CityName{City: "London"}, testAPIKey, rangeStart, rangeEnd, 284, Settings{})
				return err
			},
			wantPath:  "/data/2.5/history/accumulated_temperature",
			wantQuery: "q=London&type=hour&start=1696118400&end=1696204800&threshold=284&APPID=test-key",
		},
		{
			name: "accumulated precipitation",
			body: accumulatedPrecipitationBody,
			call: func(c *Client) error {
				_, err := c.GetAccumulatedPrecipitationData(CityName{City: "London"}, testAPIKey, rangeStart, rangeEnd, 2, Settings{})
				return err
			},
			wantPath:  "/data/2.5/history/accumulated_precipitation",
			wantQuery: "q=London&type=hour&start=1696118400&end=1696204800&threshold=2&APPID=test-key",
		},
		{
			name: "current uv index",
			body: uvIndexBody,
			call: func(c *Client) error {
				_, err := c.GetCurrentUvIndex(Coordinates{Lat: 37.75, Lon: -122.37}, testAPIKey, Settings{})
				return err
			},
			wantPath:  "/data/2.5/uvi",
			wantQuery: "lat=37.75&lon=-122.37&APPID=test-key",
		},
		{
			name: "forecast uv index",
			body: uvIndexListBody,
			call: func(c *Client) error {
				_, err := c.GetForecastUvIndex(Coordinates{Lat: 37.75, Lon: -122.37}, testAPIKey, 2, Settings{})
				return err
			},
			wantPath:  "/data/2.5/uvi/forecast",
			wantQuery: "lat=37.75&lon=-122.37&cnt=2&APPID=test-key",
		},
		{
			name: "historical uv index",
			body: uvIndexListBody,
			call: func(c *Client) error {
				_, err := c.GetHistoricalUvIndex(Coordinates{Lat: 37.75, Lon: -122.37}, testAPIKey, rangeStart, rangeEnd, Settings{})
				return err
			},
			wantPath:  "/data/2.5/uvi/history",
			wantQuery: "lat=37.75&lon=-122.37&start=1696118400&end=1696204800&APPID=test-key",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			upstream := newFakeUpstream(t, http.StatusOK, tt.body)

			if err := tt.call(upstream.client()); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if got := upstream.lastPath(); got != tt.wantPath {
				t.Errorf("path = %q, want %q", got, tt.wantPath)
			}
			if got := upstream.lastQuery(); got != tt.wantQuery {
				t.Errorf("query = %q, want %q", got, tt.wantQuery)
			}
			if n := strings.Count(upstream.lastQuery(), "APPID="); n != 1 {
				t.Errorf("APPID appears %d times, want 1", n)
			}
		})
	}
}

func TestGetCurrentWeather_DecodesSuccess(t *testing.T) {
	upstream := newFakeUpstream(t, http.StatusOK, currentWeatherBody)

	got, err := upstream.client().GetCurrentWeather(minneapolis, testAPIKey, Settings{Unit: Metric})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got.Name != "Minneapolis" {
		t.Errorf("Name = %q, want Minneapolis", got.Name)
	}
	if got.Main.Temp != 21.4 {
		t.Errorf("Main.Temp = %v, want 21.4", got.Main.Temp)
	}
	if got.Coord.Lat != 44.98 || got.Coord.Lon != -93.2638 {
		t.Errorf("Coord = %+v", got.Coord)
	}
	if len(got.Weather) != 1 || got.Weather[0].Main != "Clear" {
		t.Errorf("Weather = %+v", got.Weather)
	}
	if got.Cod != 200 {
		t.Errorf("Cod = %d, want 200", got.Cod)
	}
	if got.Rain != nil {
		t.Errorf("Rain should be nil when absent, got %+v", got.Rain)
	}
}

func TestListEndpoints_DecodeSuccess(t *testing.T) {
	t.Run("accumulated temperature", func(t *testing.T) {
		upstream := newFakeUpstream(t, http.StatusOK, accumulatedTemperatureBody)
		got, err := upstream.client().GetAccumulatedTemperatureData(CityName{City: "London"}, testAPIKey, rangeStart, rangeEnd, 284, Settings{})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := WeatherAccumulatedTemperature{
			{Date: "2018-10-21", Temp: 281.94, Count: 24},
			{Date: "2018-10-22", Temp: 566.8, Count: 48},
		}
		if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
			t.Errorf("got %+v, want %+v", got, want)
		}
	})

	t.Run("forecast uv index", func(t *testing.T) {
		upstream := newFakeUpstream(t, http.StatusOK, uvIndexListBody)
		got, err := upstream.client().GetForecastUvIndex(CityName{City: "San Francisco"}, testAPIKey, 2, Settings{})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(got) != 2 || got[1].Value != 5.1 || got[0].DateIso != "2023-10-05T12:00:00Z" {
			t.Errorf("unexpected uv forecast: %+v", got)
		}
	})

	t.Run("one call", func(t *testing.T) {
		upstream := newFakeUpstream(t, http.StatusOK, oneCallBody)
		got, err := upstream.client().GetOneCallCurrent(mammoth, testAPIKey, Settings{})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got.Timezone != "America/Los_Angeles" || got.Current.Temp != 8.2 || len(got.Daily) != 1 {
			t.Errorf("unexpected one call report: %+v", got)
		}
		if got.Daily[0].Temp.Max != 10.4 {
			t.Errorf("Daily[0].Temp.Max = %v, want 10.4", got.Daily[0].Temp.Max)
		}
	})
}

func TestGet_APIErrorReport(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		body        string
		wantCode    StatusCode
		wantMessage string
	}{
		{
			name:        "numeric cod with 401",
			status:      http.StatusUnauthorized,
			body:        invalidKeyBody,
			wantCode:    401,
			wantMessage: "Invalid API key",
		},
		{
			name:        "string cod with 404",
			status:      http.StatusNotFound,
			body:        cityNotFoundBody,
			wantCode:    404,
			wantMessage: "city not found",
		},
		{
			name:        "error report with 200 status",
			status:      http.StatusOK,
			body:        `{"cod": 429, "message": "rate limit exceeded"}`,
			wantCode:    429,
			wantMessage: "rate limit exceeded",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			upstream := newFakeUpstream(t, tt.status, tt.body)

			got, err := upstream.client().GetCurrentWeather(minneapolis, testAPIKey, Settings{})
			if got != nil {
				t.Errorf("expected nil report, got %+v", got)
			}

			var apiErr *APIError
			if !errors.As(err, &apiErr) {
				t.Fatalf("expected *APIError, got %T: %v", err, err)
			}
			if apiErr.Report.Code != tt.wantCode {
				t.Errorf("Code = %d, want %d", apiErr.Report.Code, tt.wantCode)
			}
			if !strings.Contains(apiErr.Report.Message, tt.wantMessage) {
				t.Errorf("Message = %q, want it to contain %q", apiErr.Report.Message, tt.wantMessage)
			}
		})
	}
}

func TestGet_SuccessBodyWithErrorStatus(t *testing.T) {
	upstream := newFakeUpstream(t, http.StatusInternalServerError, uvIndexBody)

	got, err := upstream.client().GetCurrentUvIndex(CityName{City: "Oslo"}, testAPIKey, Settings{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Value != 5.2 {
		t.Errorf("Value = %v, want 5.2", got.Value)
	}
}

func TestGet_ParseErrorWhenNeitherShapeMatches(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "unrelated object", body: `{"status":"ok"}`},
		{name: "html", body: `<html><body>502 Bad Gateway</body></html>`},
		{name: "empty body", body: ``},
		{name: "error report without message", body: `{"cod": 500}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			upstream := newFakeUpstream(t, http.StatusOK, tt.body)

			got, err := upstream.client().GetCurrentWeather(minneapolis, testAPIKey, Settings{})
			if got != nil {
				t.Errorf("expected nil report, got %+v", got)
			}

			var parseErr *ParseError
			if !errors.As(err, &parseErr) {
				t.Fatalf("expected *ParseError, got %T: %v", err, err)
			}
			if parseErr.Success == nil || parseErr.Report == nil {
				t.Errorf("both decode failures must be kept: %+v", parseErr)
			}
			if parseErr.Target != "WeatherReportCurrent" {
				t.Errorf("Target = %q, want WeatherReportCurrent", parseErr.Target)
			}
		})
	}
}

func TestGet_ParseErrorForListEndpoint(t *testing.T) {
	upstream := newFakeUpstream(t, http.StatusOK, `{"unexpected": true}`)

	got, err := upstream.client().GetHistoricalUvIndex(CityName{City: "Oslo"}, testAPIKey, rangeStart, rangeEnd, Settings{})
	if got != nil {
		t.Errorf("expected nil list, got %+v", got)
	}
	var parseErr *ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("expected *ParseError, got %T: %v", err, err)
	}
}

func TestDayCountValidation(t *testing.T) {
	tests := []struct {
		name    string
		call    func(c *Client) error
		wantErr bool
		limit   string
	}{
		{
			name: "16 day forecast with 0",
			call: func(c *Client) error {
				_, err := c.Get16DayForecast(minneapolis, testAPIKey, 0, Settings{})
				return err
			},
			wantErr: true,
			limit:   "16",
		},
		{
			name: "16 day forecast with 17",
			call: func(c *Client) error {
				_, err := c.Get16DayForecast(minneapolis, testAPIKey, 17, Settings{})
				return err
			},
			wantErr: true,
			limit:   "16",
		},
		{
			name: "uv forecast with 0",
			call: func(c *Client) error {
				_, err := c.GetForecastUvIndex(minneapolis, testAPIKey, 0, Settings{})
				return err
			},
			wantErr: true,
			limit:   "8",
		},
		{
			name: "uv forecast with 9",
			call: func(c *Client) error {
				_, err := c.GetForecastUvIndex(minneapolis, testAPIKey, 9, Settings{})
				return err
			},
			wantErr: true,
			limit:   "8",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			upstream := newFakeUpstream(t, http.StatusOK, sixteenDayBody)

			err := tt.call(upstream.client())

			var inputErr *InputError
			if !errors.As(err, &inputErr) {
				t.Fatalf("expected *InputError, got %T: %v", err, err)
			}
			if !strings.Contains(inputErr.Error(), tt.limit) {
				t.Errorf("error %q should reference %s", inputErr.Error(), tt.limit)
			}
			if hits := upstream.hits.Load(); hits != 0 {
				t.Errorf("no request expected, got %d", hits)
			}
		})
	}
}

func TestDayCountValidation_Bounds(t *testing.T) {
	upstream := newFakeUpstream(t, http.StatusOK, sixteenDayBody)
	client := upstream.client()

	for _, days := range []uint8{1, 16} {
		if _, err := client.Get16DayForecast(minneapolis, testAPIKey, days, Settings{}); err != nil {
			t.Errorf("Get16DayForecast(%d) unexpected error: %v", days, err)
		}
	}

	uvUpstream := newFakeUpstream(t, http.StatusOK, uvIndexListBody)
	for _, days := range []uint8{1, 8} {
		if _, err := uvUpstream.client().GetForecastUvIndex(minneapolis, testAPIKey, days, Settings{}); err != nil {
			t.Errorf("GetForecastUvIndex(%d) unexpected error: %v", days, err)
		}
	}

	if upstream.hits.Load() != 2 || uvUpstream.hits.Load() != 2 {
		t.Errorf("expected 2 requests per endpoint, got %d and %d", upstream.hits.Load(), uvUpstream.hits.Load())
	}
}

func TestInputErrorMessage(t *testing.T) {
	_, err := NewClient().Get16DayForecast(minneapolis, testAPIKey, 17, Settings{})
	want := "bad input: Only support 1 to 16 day forecasts but 17 requested"
	if err == nil || err.Error() != want {
		t.Errorf("error = %v, want %q", err, want)
	}
}

func TestGet_ConnectionError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	base := srv.URL
	srv.Close()

	client := NewClient(WithBaseURL(base))
	_, err := client.GetCurrentWeather(minneapolis, "secret-key", Settings{})

	var connErr *ConnectionError
	if !errors.As(err, &connErr) {
		t.Fatalf("expected *ConnectionError, got %T: %v", err, err)
	}
	if strings.Contains(err.Error(), "secret-key") {
		t.Errorf("error leaks api key: %v", err)
	}
}

func TestGet_URLError(t *testing.T) {
	client := NewClient(WithBaseURL("::not a url"))

	_, err := client.GetCurrentWeather(minneapolis, testAPIKey, Settings{})

	var urlErr *URLError
	if !errors.As(err, &urlErr) {
		t.Fatalf("expected *URLError, got %T: %v", err, err)
	}
}

func TestClientURL_RedactsKey(t *testing.T) {
	client := NewClient()

	got, err := client.URL(PathCurrentWeather, locationQuery(minneapolis, "secret", Settings{}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "https://api.openweathermap.org/data/2.5/weather?q=Minneapolis%2CUSA&APPID=***"
	if got != want {
		t.Errorf("URL() = %q, want %q", got, want)
	}
}
