package openweather

import (
	"strconv"

	"go-owm/pkg/http"
)

// LocationSpecifier identifies a place in one of the ways the API accepts.
// The set of implementations is closed: CityName, CityAndCountryName, Coordinates,
// CityID and ZipCode.
type LocationSpecifier interface {
	// Params returns the query parameters selecting this location.
	Params() http.QueryParams
	isLocation()
}

// CityName selects a location by city name only.
type CityName struct {
	City string
}

// CityAndCountryName selects a location by city name and country code.
type CityAndCountryName struct {
	City    string
	Country string
}

// Coordinates is a latitude/longitude pair. No range checking is done.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// CityID selects a location by the API's numeric city id.
type CityID struct {
	ID uint64
}

// ZipCode selects a location by postal code and country code.
type ZipCode struct {
	Zip     string
	Country string
}

func (l CityName) Params() http.QueryParams {
	return http.QueryParams{http.Param("q", l.City)}
}

func (l CityAndCountryName) Params() http.QueryParams {
	return http.QueryParams{http.Param("q", l.City+","+l.Country)}
}

func (c Coordinates) Params() http.QueryParams {
	return http.QueryParams{
		http.Param("lat", formatFloat(c.Lat)),
		http.Param("lon", formatFloat(c.Lon)),
	}
}

func (l CityID) Params() http.QueryParams {
	return http.QueryParams{http.Param("id", strconv.FormatUint(l.ID, 10))}
}

func (l ZipCode) Params() http.QueryParams {
	return http.QueryParams{http.Param("zip", l.Zip+","+l.Country)}
}

func (CityName) isLocation()           {}
func (CityAndCountryName) isLocation() {}
func (Coordinates) isLocation()        {}
func (CityID) isLocation()             {}
func (ZipCode) isLocation()            {}

// formatFloat renders the shortest decimal that round-trips to v.
func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
