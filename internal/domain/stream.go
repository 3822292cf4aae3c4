package domain

import (
	"time"

	"github.com/google/uuid"
)

// StreamRouteWarm carries route pairs to resolve ahead of demand.
const StreamRouteWarm = "stream:route:warm"

// RouteWarmEvent asks the worker to make sure a route pair is cached.
type RouteWarmEvent struct {
	RequestID   uuid.UUID `json:"request_id"`
	Origin      Place     `json:"origin"`
	Destination Place     `json:"destination"`
	RequestedAt time.Time `json:"requested_at"`
}

func NewRouteWarmEvent(origin, destination Place, now time.Time) RouteWarmEvent {
	return RouteWarmEvent{
		RequestID:   uuid.New(),
		Origin:      origin,
		Destination: destination,
		RequestedAt: now.UTC(),
	}
}

// Validate reports whether both endpoints carry a key and a usable coordinate.
func (e *RouteWarmEvent) Validate() bool {
	return e.Origin.Key != "" && e.Destination.Key != "" &&
		e.Origin.Coordinate.IsValid() && e.Destination.Coordinate.IsValid()
}

// StreamMessage is a raw entry read from a Redis stream.
type StreamMessage struct {
	ID   string
	Data string
}
