package utils

import (
	"math"

	"github.com/samali323/carbonemissioncalc-sub000/internal/domain"
)

const earthRadiusKm = 6371.0

// HaversineDistance returns the great-circle distance between two points in
// kilometres. Inputs are not validated.
func HaversineDistance(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := (lat2 - lat1) * math.Pi / 180.0
	dLon := (lon2 - lon1) * math.Pi / 180.0

	lat1Rad := lat1 * math.Pi / 180.0
	lat2Rad := lat2 * math.Pi / 180.0

	sinDLat := math.Sin(dLat / 2)
	sinDLon := math.Sin(dLon / 2)

	// cos product first so swapping the endpoints gives the same bits
	a := sinDLat*sinDLat + math.Cos(lat1Rad)*math.Cos(lat2Rad)*sinDLon*sinDLon
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusKm * c
}

// GreatCircleKm is HaversineDistance over domain coordinates.
func GreatCircleKm(a, b domain.Coordinate) float64 {
	return HaversineDistance(a.Lat, a.Lon, b.Lat, b.Lon)
}

func ValidateCoordinates(lat, lon float64) bool {
	return lat >= -90 && lat <= 90 && lon >= -180 && lon <= 180
}
