package repository

import (
	"context"

	"github.com/samali323/carbonemissioncalc-sub000/internal/domain"
)

// RoutingProvider resolves travel time and distance for one mode.
//
// Lookup returns domain.ErrNoRoute when the mode has no route between the
// endpoints. Any other error is a lookup failure.
type RoutingProvider interface {
	Lookup(ctx context.Context, origin, destination domain.Coordinate, mode domain.TravelMode) (domain.RouteLookup, error)
}
