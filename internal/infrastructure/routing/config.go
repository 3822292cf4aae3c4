package routing

import (
	"fmt"

	"github.com/samali323/carbonemissioncalc-sub000/internal/config"
	"github.com/samali323/carbonemissioncalc-sub000/internal/domain"
	"github.com/samali323/carbonemissioncalc-sub000/internal/domain/repository"
	"github.com/samali323/carbonemissioncalc-sub000/internal/infrastructure/googlemaps"
	"github.com/samali323/carbonemissioncalc-sub000/internal/infrastructure/mapbox"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const (
	ProviderMapbox = "mapbox"
	ProviderGoogle = "google"
)

// NewFromConfig builds the providers named in cfg.Routing, each with its
// own rate limiter, and routes modes to them.
func NewFromConfig(cfg *config.Config, logger *zap.Logger) (*ModeRouter, error) {
	selection := map[domain.TravelMode]string{
		domain.TravelModeDriving: cfg.Routing.DrivingProvider,
		domain.TravelModeTransit: cfg.Routing.TransitProvider,
	}
	if selection[domain.TravelModeTransit] == ProviderMapbox {
		return nil, fmt.Errorf("mapbox cannot serve transit routes")
	}

	providers := make(map[string]repository.RoutingProvider, 2)
	for _, name := range selection {
		if _, ok := providers[name]; ok {
			continue
		}
		limiter := rate.NewLimiter(rate.Limit(cfg.Routing.RateLimitRPS), cfg.Routing.RateLimitBurst)

		switch name {
		case ProviderMapbox:
			if cfg.Mapbox.AccessToken == "" {
				return nil, fmt.Errorf("MAPBOX_ACCESS_TOKEN is required for the mapbox provider")
			}
			providers[name] = mapbox.NewMapboxClient(&cfg.Mapbox, limiter, logger.Named(name))
		case ProviderGoogle:
			if cfg.Google.APIKey == "" {
				return nil, fmt.Errorf("GOOGLE_MAPS_API_KEY is required for the google provider")
			}
			providers[name] = googlemaps.NewGoogleMapsClient(&cfg.Google, limiter, logger.Named(name))
		default:
			return nil, fmt.Errorf("unknown routing provider %q", name)
		}
	}

	logger.Info("Routing providers configured",
		zap.String("driving", selection[domain.TravelModeDriving]),
		zap.String("transit", selection[domain.TravelModeTransit]),
		zap.Float64("rate_limit_rps", cfg.Routing.RateLimitRPS))

	return NewModeRouter(selection, providers)
}
