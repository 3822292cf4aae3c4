package domain

import (
	"errors"
	"time"
)

// DefaultRouteTTL is how long a resolved route stays servable.
const DefaultRouteTTL = 30 * 24 * time.Hour

type TravelMode string

const (
	TravelModeDriving TravelMode = "driving"
	TravelModeTransit TravelMode = "transit"
)

// TravelModes are the modes stored in every cache row.
var TravelModes = []TravelMode{TravelModeDriving, TravelModeTransit}

var (
	// ErrNoRoute is returned by a routing provider when the mode has no
	// route between the endpoints. It is an answer, not a failure.
	ErrNoRoute = errors.New("no route for travel mode")
	// ErrModeUnsupported is returned by a provider that cannot route a mode.
	ErrModeUnsupported = errors.New("travel mode not supported by provider")
)

// RouteLookup is a single provider answer. DistanceM is zero when the
// provider reported a duration without a distance.
type RouteLookup struct {
	DurationS int64 `json:"duration_s"`
	DistanceM int64 `json:"distance_m"`
}

type RouteKey struct {
	OriginKey      string `json:"origin_key"`
	DestinationKey string `json:"destination_key"`
}

func (k RouteKey) String() string {
	return k.OriginKey + "|" + k.DestinationKey
}

// RouteCacheEntry is one persisted row per (origin, destination). A nil
// mode measure means the provider reported no route for that mode.
type RouteCacheEntry struct {
	OriginKey        string    `json:"origin_key" db:"origin_key"`
	DestinationKey   string    `json:"destination_key" db:"destination_key"`
	DrivingDurationS *int64    `json:"driving_duration_s" db:"driving_duration_s"`
	DrivingDistanceM *int64    `json:"driving_distance_m" db:"driving_distance_m"`
	TransitDurationS *int64    `json:"transit_duration_s" db:"transit_duration_s"`
	TransitDistanceM *int64    `json:"transit_distance_m" db:"transit_distance_m"`
	LastUpdated      time.Time `json:"last_updated" db:"last_updated"`
}

func (e *RouteCacheEntry) Key() RouteKey {
	return RouteKey{OriginKey: e.OriginKey, DestinationKey: e.DestinationKey}
}

// Duration returns the stored duration for mode, nil when infeasible.
func (e *RouteCacheEntry) Duration(mode TravelMode) *int64 {
	switch mode {
	case TravelModeDriving:
		return e.DrivingDurationS
	case TravelModeTransit:
		return e.TransitDurationS
	}
	return nil
}

func (e *RouteCacheEntry) Distance(mode TravelMode) *int64 {
	switch mode {
	case TravelModeDriving:
		return e.DrivingDistanceM
	case TravelModeTransit:
		return e.TransitDistanceM
	}
	return nil
}

// SetLookup records a provider answer for mode. A nil lookup clears it; a
// lookup without a distance stores only the duration.
func (e *RouteCacheEntry) SetLookup(mode TravelMode, lookup *RouteLookup) {
	var duration, distance *int64
	if lookup != nil {
		d := lookup.DurationS
		duration = &d
		if lookup.DistanceM > 0 {
			m := lookup.DistanceM
			distance = &m
		}
	}
	switch mode {
	case TravelModeDriving:
		e.DrivingDurationS, e.DrivingDistanceM = duration, distance
	case TravelModeTransit:
		e.TransitDurationS, e.TransitDistanceM = duration, distance
	}
}

type CacheState int

const (
	CacheAbsent CacheState = iota
	CacheFresh
	CacheStale
)

func (s CacheState) String() string {
	switch s {
	case CacheFresh:
		return "fresh"
	case CacheStale:
		return "stale"
	default:
		return "absent"
	}
}

// ClassifyEntry decides whether entry can be served at now. Only fresh
// entries are served; absent and stale both require a provider refresh.
func ClassifyEntry(entry *RouteCacheEntry, now time.Time, ttl time.Duration) CacheState {
	if entry == nil {
		return CacheAbsent
	}
	if now.Sub(entry.LastUpdated) > ttl {
		return CacheStale
	}
	return CacheFresh
}
