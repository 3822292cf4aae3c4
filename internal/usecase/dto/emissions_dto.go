package dto

import (
	"fmt"
	"strconv"
	"strings"
)

// Endpoint names a trip end either by IATA airport code or by coordinates.
// Key optionally identifies the location in the route cache.
type Endpoint struct {
	IATA string   `json:"iata,omitempty" validate:"omitempty,len=3,alpha"`
	Lat  *float64 `json:"lat,omitempty"`
	Lon  *float64 `json:"lon,omitempty"`
	Key  string   `json:"key,omitempty" validate:"omitempty,max=128"`
	Name string   `json:"name,omitempty" validate:"omitempty,max=256"`
}

// ParseEndpoint reads the query string form: an IATA code ("LHR") or
// "lat,lon".
func ParseEndpoint(s string) (Endpoint, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Endpoint{}, fmt.Errorf("empty endpoint")
	}

	lat, lon, found := strings.Cut(s, ",")
	if !found {
		return Endpoint{IATA: s}, nil
	}

	latV, err := strconv.ParseFloat(strings.TrimSpace(lat), 64)
	if err != nil {
		return Endpoint{}, fmt.Errorf("invalid latitude %q", lat)
	}
	lonV, err := strconv.ParseFloat(strings.TrimSpace(lon), 64)
	if err != nil {
		return Endpoint{}, fmt.Errorf("invalid longitude %q", lon)
	}
	return Endpoint{Lat: &latV, Lon: &lonV}, nil
}

type FlightRequest struct {
	Origin          Endpoint `json:"origin"`
	Destination     Endpoint `json:"destination"`
	Passengers      int      `json:"passengers"`
	IsRoundTrip     bool     `json:"is_round_trip"`
	CabinClass      string   `json:"cabin_class,omitempty"`
	AircraftType    string   `json:"aircraft_type,omitempty" validate:"omitempty,max=8,alphanum"`
	CargoTons       float64  `json:"cargo_tons"`
	IsInternational bool     `json:"is_international"`
	RouteGroup      string   `json:"route_group,omitempty" validate:"omitempty,max=32"`
	// Country selects the carbon price used for the cost estimate.
	Country string `json:"country,omitempty" validate:"omitempty,len=2,alpha"`
}

type CompareRequest struct {
	FlightRequest
}
