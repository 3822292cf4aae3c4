package dto

import (
	"time"

	"github.com/samali323/carbonemissioncalc-sub000/internal/domain"
)

type RoutePair struct {
	Origin      Endpoint `json:"origin"`
	Destination Endpoint `json:"destination"`
}

type WarmRoutesRequest struct {
	Pairs []RoutePair `json:"pairs" validate:"required,min=1,max=100,dive"`
}

type WarmRoutesResponse struct {
	Accepted   int      `json:"accepted"`
	RequestIDs []string `json:"request_ids"`
}

type RouteResponse struct {
	Origin      domain.Place        `json:"origin"`
	Destination domain.Place        `json:"destination"`
	Driving     *domain.RouteLookup `json:"driving"`
	Transit     *domain.RouteLookup `json:"transit"`
	LastUpdated time.Time           `json:"last_updated"`
}

func lookupFor(entry *domain.RouteCacheEntry, mode domain.TravelMode) *domain.RouteLookup {
	duration := entry.Duration(mode)
	if duration == nil {
		return nil
	}
	lookup := &domain.RouteLookup{DurationS: *duration}
	if distance := entry.Distance(mode); distance != nil {
		lookup.DistanceM = *distance
	}
	return lookup
}

func NewRouteResponse(origin, destination domain.Place, entry *domain.RouteCacheEntry) *RouteResponse {
	return &RouteResponse{
		Origin:      origin,
		Destination: destination,
		Driving:     lookupFor(entry, domain.TravelModeDriving),
		Transit:     lookupFor(entry, domain.TravelModeTransit),
		LastUpdated: entry.LastUpdated,
	}
}
