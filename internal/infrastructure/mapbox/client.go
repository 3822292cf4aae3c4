package mapbox

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"time"

	"github.com/samali323/carbonemissioncalc-sub000/internal/config"
	"github.com/samali323/carbonemissioncalc-sub000/internal/domain"
	"github.com/samali323/carbonemissioncalc-sub000/internal/domain/repository"
	"github.com/samali323/carbonemissioncalc-sub000/internal/pkg/metrics"
	"github.com/samali323/carbonemissioncalc-sub000/internal/pkg/utils"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const providerName = "mapbox"

type directionsResponse struct {
	Code    string `json:"code"`
	Message string `json:"message,omitempty"`
	Routes  []struct {
		Duration float64 `json:"duration"`
		Distance float64 `json:"distance"`
	} `json:"routes"`
}

type client struct {
	httpClient  *http.Client
	baseURL     string
	accessToken string
	profile     string
	limiter     *rate.Limiter
	logger      *zap.Logger
}

// NewMapboxClient returns a Directions API client. Mapbox has no transit
// profile, so only driving lookups are answered. A nil limiter means no
// client-side rate limit.
func NewMapboxClient(cfg *config.MapboxConfig, limiter *rate.Limiter, logger *zap.Logger) repository.RoutingProvider {
	if limiter == nil {
		limiter = rate.NewLimiter(rate.Inf, 1)
	}
	return &client{
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.RequestTimeout) * time.Second,
		},
		baseURL:     cfg.BaseURL,
		accessToken: cfg.AccessToken,
		profile:     cfg.DrivingProfile,
		limiter:     limiter,
		logger:      logger,
	}
}

func (c *client) Lookup(
	ctx context.Context,
	origin, destination domain.Coordinate,
	mode domain.TravelMode,
) (domain.RouteLookup, error) {
	if mode != domain.TravelModeDriving {
		return domain.RouteLookup{}, fmt.Errorf("mapbox %s: %w", mode, domain.ErrModeUnsupported)
	}

	waitStarted := time.Now()
	if err := c.limiter.Wait(ctx); err != nil {
		return domain.RouteLookup{}, fmt.Errorf("rate limiter: %w", err)
	}
	metrics.RateLimitWaitTime.WithLabelValues(providerName).Observe(time.Since(waitStarted).Seconds())

	coordinates := fmt.Sprintf("%f,%f;%f,%f", origin.Lon, origin.Lat, destination.Lon, destination.Lat)
	query := url.Values{}
	query.Set("alternatives", "false")
	query.Set("overview", "false")
	query.Set("steps", "false")

	c.logger.Debug("Calling Mapbox Directions API",
		zap.String("profile", c.profile),
		zap.String("coordinates", coordinates))

	query.Set("access_token", c.accessToken)
	reqURL := fmt.Sprintf("%s/directions/v5/%s/%s?%s", c.baseURL, c.profile, coordinates, query.Encode())

	started := time.Now()
	lookup, err := c.do(ctx, reqURL)
	status := "ok"
	switch {
	case err == nil:
	case errors.Is(err, domain.ErrNoRoute):
		status = "no_route"
	default:
		status = "error"
	}
	metrics.ObserveProvider(providerName, string(mode), status, started)

	return lookup, err
}

func (c *client) do(ctx context.Context, reqURL string) (domain.RouteLookup, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		err = utils.RedactURLError(err, "access_token")
		c.logger.Error("Failed to create request", zap.Error(err))
		return domain.RouteLookup{}, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		err = utils.RedactURLError(err, "access_token")
		c.logger.Error("Failed to execute request", zap.Error(err))
		return domain.RouteLookup{}, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return domain.RouteLookup{}, fmt.Errorf("failed to read response: %w", err)
	}

	var directions directionsResponse
	decodeErr := json.Unmarshal(body, &directions)

	// NoRoute and NoSegment are answers about the route, whatever the status
	if decodeErr == nil && (directions.Code == "NoRoute" || directions.Code == "NoSegment") {
		return domain.RouteLookup{}, domain.ErrNoRoute
	}

	if resp.StatusCode != http.StatusOK {
		c.logger.Error("Mapbox API returned error",
			zap.Int("status_code", resp.StatusCode),
			zap.String("body", string(body)))
		return domain.RouteLookup{}, fmt.Errorf("mapbox API error: status %d, body: %s", resp.StatusCode, string(body))
	}

	if decodeErr != nil {
		c.logger.Error("Failed to decode response", zap.Error(decodeErr))
		return domain.RouteLookup{}, fmt.Errorf("failed to decode response: %w", decodeErr)
	}

	if directions.Code != "Ok" {
		c.logger.Error("Mapbox API returned non-OK code",
			zap.String("code", directions.Code),
			zap.String("message", directions.Message))
		return domain.RouteLookup{}, fmt.Errorf("mapbox API returned code: %s", directions.Code)
	}

	if len(directions.Routes) == 0 {
		return domain.RouteLookup{}, domain.ErrNoRoute
	}

	route := directions.Routes[0]
	return domain.RouteLookup{
		DurationS: int64(math.Round(route.Duration)),
		DistanceM: int64(math.Round(route.Distance)),
	}, nil
}
