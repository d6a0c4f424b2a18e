package openweather

const currentWeatherBody = `{
  "coord": {"lon": -93.2638, "lat": 44.98},
  "weather": [{"id": 800, "main": "Clear", "description": "clear sky", "icon": "01d"}],
  "base": "stations",
  "main": {"temp": 21.4, "feels_like": 20.9, "temp_min": 19.8, "temp_max": 22.6, "pressure": 1016, "humidity": 52},
  "visibility": 10000,
  "wind": {"speed": 4.12, "deg": 170},
  "clouds": {"all": 0},
  "dt": 1696435200,
  "sys": {"type": 2, "id": 2011577, "country": "US", "sunrise": 1696421412, "sunset": 1696462924},
  "timezone": -18000,
  "id": 5037649,
  "name": "Minneapolis",
  "cod": 200
}`

const fiveDayBody = `{
  "cod": "200",
  "message": 0,
  "cnt": 1,
  "list": [{
    "dt": 1696442400,
    "main": {"temp": 22.1, "feels_like": 21.7, "temp_min": 22.1, "temp_max": 23.0, "pressure": 1015, "sea_level": 1015, "grnd_level": 985, "humidity": 50, "temp_kf": -0.9},
    "weather": [{"id": 800, "main": "Clear", "description": "clear sky", "icon": "01d"}],
    "clouds": {"all": 3},
    "wind": {"speed": 5.2, "deg": 175, "gust": 9.1},
    "visibility": 10000,
    "pop": 0,
    "sys": {"pod": "d"},
    "dt_txt": "2023-10-04 18:00:00"
  }],
  "city": {"id": 5037649, "name": "Minneapolis", "coord": {"lat": 44.98, "lon": -93.2638}, "country": "US", "population": 382578, "timezone": -18000, "sunrise": 1696421412, "sunset": 1696462924}
}`

const sixteenDayBody = `{
  "city": {"id": 5037649, "name": "Minneapolis", "coord": {"lat": 44.98, "lon": -93.2638}, "country": "US"},
  "cod": "200",
  "message": 0.0892,
  "cnt": 1,
  "list": [{
    "dt": 1696442400,
    "sunrise": 1696421412,
    "sunset": 1696462924,
    "temp": {"day": 22.1, "min": 12.3, "max": 23.0, "night": 14.2, "eve": 19.9, "morn": 12.8},
    "feels_like": {"day": 21.7, "night": 13.9, "eve": 19.5, "morn": 12.4},
    "pressure": 1015,
    "humidity": 50,
    "weather": [{"id": 500, "main": "Rain", "description": "light rain", "icon": "10d"}],
    "speed": 5.2,
    "deg": 175,
    "clouds": 40,
    "pop": 0.3,
    "rain": 0.8
  }]
}`

const oneCallBody = `{
  "lat": 37.6505,
  "lon": -119.0374,
  "timezone": "America/Los_Angeles",
  "timezone_offset": -25200,
  "current": {
    "dt": 1696442400, "sunrise": 1696428000, "sunset": 1696470000,
    "temp": 8.2, "feels_like": 6.1, "pressure": 1020, "humidity": 40, "dew_point": -4.3,
    "uvi": 4.1, "clouds": 0, "visibility": 10000, "wind_speed": 3.1, "wind_deg": 250,
    "weather": [{"id": 800, "main": "Clear", "description": "clear sky", "icon": "01d"}]
  },
  "daily": [{
    "dt": 1696446000, "sunrise": 1696428000, "sunset": 1696470000,
    "temp": {"day": 9.0, "min": -2.1, "max": 10.4, "night": 0.5, "eve": 6.2, "morn": -1.9},
    "feels_like": {"day": 7.1, "night": -1.4, "eve": 4.9, "morn": -4.0},
    "pressure": 1020, "humidity": 35, "dew_point": -6.0,
    "wind_speed": 4.4, "wind_deg": 240,
    "weather": [{"id": 800, "main": "Clear", "description": "clear sky", "icon": "01d"}],
    "clouds": 2, "pop": 0, "uvi": 5.3
  }]
}`

const oneCallHistoricalBody = `{
  "lat": 40.4572,
  "lon": -106.8044,
  "timezone": "America/Denver",
  "timezone_offset": -21600,
  "current": {
    "dt": 1696356000, "temp": 11.0, "feels_like": 9.6, "pressure": 1018, "humidity": 45,
    "dew_point": -0.4, "clouds": 20, "wind_speed": 2.1, "wind_deg": 200,
    "weather": [{"id": 801, "main": "Clouds", "description": "few clouds", "icon": "02d"}]
  },
  "hourly": [{
    "dt": 1696352400, "temp": 9.8, "feels_like": 8.9, "pressure": 1018, "humidity": 50,
    "dew_point": 0.1, "clouds": 20, "wind_speed": 1.5, "wind_deg": 190,
    "weather": [{"id": 801, "main": "Clouds", "description": "few clouds", "icon": "02n"}]
  }]
}`

const historicalBody = `{
  "message": "",
  "cod": "200",
  "city_id": 4298960,
  "calctime": 0.00297316,
  "cnt": 1,
  "list": [{
    "dt": 1369728000,
    "main": {"temp": 288.2, "temp_min": 288.2, "temp_max": 288.2, "pressure": 1016, "humidity": 77},
    "wind": {"speed": 0, "deg": 0},
    "clouds": {"all": 90},
    "weather": [{"id": 804, "main": "Clouds", "description": "overcast clouds", "icon": "04n"}]
  }]
}`

const accumulatedTemperatureBody = `[
  {"date": "2018-10-21", "temp": 281.94, "count": 24},
  {"date": "2018-10-22", "temp": 566.8, "count": 48}
]`

const accumulatedPrecipitationBody = `[
  {"date": "2018-10-21", "rain": 0.4, "count": 24},
  {"date": "2018-10-22", "rain": 1.25, "count": 48}
]`

const uvIndexBody = `{"lat": 37.75, "lon": -122.37, "date_iso": "2023-10-04T12:00:00Z", "date": 1696420800, "value": 5.2}`

const uvIndexListBody = `[
  {"lat": 37.75, "lon": -122.37, "date_iso": "2023-10-05T12:00:00Z", "date": 1696507200, "value": 4.9},
  {"lat": 37.75, "lon": -122.37, "date_iso": "2023-10-06T12:00:00Z", "date": 1696593600, "value": 5.1}
]`

const invalidKeyBody = `{"cod": 401, "message": "Invalid API key. Please see https://openweathermap.org/faq#error401 for more info."}`

const cityNotFoundBody = `{"cod": "404", "message": "city not found"}`
