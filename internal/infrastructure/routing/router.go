package routing

import (
	"context"
	"fmt"

	"github.com/samali323/carbonemissioncalc-sub000/internal/domain"
	"github.com/samali323/carbonemissioncalc-sub000/internal/domain/repository"
)

// ModeRouter sends each travel mode to the provider configured for it.
type ModeRouter struct {
	providers map[domain.TravelMode]repository.RoutingProvider
}

// NewModeRouter builds a router from mode to provider name and the set of
// named providers. Every mode in domain.TravelModes must be covered.
func NewModeRouter(
	selection map[domain.TravelMode]string,
	providers map[string]repository.RoutingProvider,
) (*ModeRouter, error) {
	r := &ModeRouter{providers: make(map[domain.TravelMode]repository.RoutingProvider, len(selection))}
	for _, mode := range domain.TravelModes {
		name, ok := selection[mode]
		if !ok {
			return nil, fmt.Errorf("no routing provider selected for %s", mode)
		}
		p, ok := providers[name]
		if !ok {
			return nil, fmt.Errorf("unknown routing provider %q for %s", name, mode)
		}
		r.providers[mode] = p
	}
	return r, nil
}

func (r *ModeRouter) Lookup(
	ctx context.Context,
	origin, destination domain.Coordinate,
	mode domain.TravelMode,
) (domain.RouteLookup, error) {
	p, ok := r.providers[mode]
	if !ok {
		return domain.RouteLookup{}, fmt.Errorf("route %s: %w", mode, domain.ErrModeUnsupported)
	}
	return p.Lookup(ctx, origin, destination, mode)
}
