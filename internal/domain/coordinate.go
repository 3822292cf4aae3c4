package domain

import "fmt"

type Coordinate struct {
	Lat float64 `json:"lat" db:"lat"`
	Lon float64 `json:"lon" db:"lon"`
}

func (c Coordinate) IsValid() bool {
	return c.Lat >= -90 && c.Lat <= 90 && c.Lon >= -180 && c.Lon <= 180
}

// Key is the cache key derived from the coordinate itself, rounded to
// roughly one metre.
func (c Coordinate) Key() string {
	return fmt.Sprintf("%.5f,%.5f", c.Lat, c.Lon)
}

// Place is a resolved trip endpoint.
type Place struct {
	Key        string     `json:"key"`
	Name       string     `json:"name,omitempty"`
	Country    string     `json:"country,omitempty"`
	Coordinate Coordinate `json:"coordinate"`
}

// NewPlace builds a place, deriving the key from the coordinate when none
// is given.
func NewPlace(key string, c Coordinate) Place {
	if key == "" {
		key = c.Key()
	}
	return Place{Key: key, Coordinate: c}
}
