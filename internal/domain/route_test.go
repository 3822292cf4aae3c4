package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestClassifyEntry(t *testing.T) {
	written := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	entry := &RouteCacheEntry{OriginKey: "a", DestinationKey: "b", LastUpdated: written}

	tests := []struct {
		name     string
		entry    *RouteCacheEntry
		now      time.Time
		expected CacheState
	}{
		{"missing row", nil, written, CacheAbsent},
		{"just written", entry, written, CacheFresh},
		{"29 days old", entry, written.Add(29 * 24 * time.Hour), CacheFresh},
		{"exactly at ttl", entry, written.Add(DefaultRouteTTL), CacheFresh},
		{"31 days old", entry, written.Add(31 * 24 * time.Hour), CacheStale},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ClassifyEntry(tt.entry, tt.now, DefaultRouteTTL))
		})
	}
}

func TestRouteCacheEntry_SetLookup(t *testing.T) {
	entry := &RouteCacheEntry{}

	entry.SetLookup(TravelModeDriving, &RouteLookup{DurationS: 3600, DistanceM: 95000})
	entry.SetLookup(TravelModeTransit, nil)

	if assert.NotNil(t, entry.Duration(TravelModeDriving)) {
		assert.Equal(t, int64(3600), *entry.Duration(TravelModeDriving))
		assert.Equal(t, int64(95000), *entry.Distance(TravelModeDriving))
	}
	assert.Nil(t, entry.Duration(TravelModeTransit))
	assert.Nil(t, entry.Distance(TravelModeTransit))
	assert.Nil(t, entry.Duration(TravelMode("walking")))

	entry.SetLookup(TravelModeTransit, &RouteLookup{DurationS: 5400})
	if assert.NotNil(t, entry.Duration(TravelModeTransit)) {
		assert.Equal(t, int64(5400), *entry.Duration(TravelModeTransit))
	}
	assert.Nil(t, entry.Distance(TravelModeTransit))
}

func TestCacheState_String(t *testing.T) {
	assert.Equal(t, "absent", CacheAbsent.String())
	assert.Equal(t, "fresh", CacheFresh.String())
	assert.Equal(t, "stale", CacheStale.String())
}
