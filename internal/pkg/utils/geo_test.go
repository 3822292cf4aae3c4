package utils

import (
	"testing"

	"github.com/samali323/carbonemissioncalc-sub000/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestHaversineDistance(t *testing.T) {
	tests := []struct {
		name     string
		a, b     domain.Coordinate
		expected float64
		delta    float64
	}{
		{
			name:     "London to Paris",
			a:        domain.Coordinate{Lat: 51.4700, Lon: -0.4543},
			b:        domain.Coordinate{Lat: 49.0097, Lon: 2.5479},
			expected: 348,
			delta:    3,
		},
		{
			name:     "New York to Los Angeles",
			a:        domain.Coordinate{Lat: 40.6413, Lon: -73.7781},
			b:        domain.Coordinate{Lat: 33.9416, Lon: -118.4085},
			expected: 3983,
			delta:    10,
		},
		{
			name:     "antipodal-ish across the date line",
			a:        domain.Coordinate{Lat: -33.9399, Lon: 151.1753},
			b:        domain.Coordinate{Lat: 37.6213, Lon: -122.3790},
			expected: 11940,
			delta:    30,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, GreatCircleKm(tt.a, tt.b), tt.delta)
		})
	}
}

func TestHaversineDistance_Symmetric(t *testing.T) {
	points := []domain.Coordinate{
		{Lat: 0, Lon: 0},
		{Lat: 89.9, Lon: 179.9},
		{Lat: -45.5, Lon: 12.25},
		{Lat: 51.4700, Lon: -0.4543},
		{Lat: -33.9399, Lon: 151.1753},
		{Lat: 64.1466, Lon: -21.9426},
	}

	for _, a := range points {
		assert.Equal(t, 0.0, GreatCircleKm(a, a))
		for _, b := range points {
			assert.Equal(t, GreatCircleKm(a, b), GreatCircleKm(b, a), "%v <-> %v", a, b)
		}
	}
}

func TestValidateCoordinates(t *testing.T) {
	assert.True(t, ValidateCoordinates(90, 180))
	assert.True(t, ValidateCoordinates(-90, -180))
	assert.False(t, ValidateCoordinates(90.01, 0))
	assert.False(t, ValidateCoordinates(0, -180.5))
}
