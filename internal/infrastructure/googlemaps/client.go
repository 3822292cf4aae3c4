package googlemaps

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/samali323/carbonemissioncalc-sub000/internal/config"
	"github.com/samali323/carbonemissioncalc-sub000/internal/domain"
	"github.com/samali323/carbonemissioncalc-sub000/internal/domain/repository"
	"github.com/samali323/carbonemissioncalc-sub000/internal/pkg/metrics"
	"github.com/samali323/carbonemissioncalc-sub000/internal/pkg/utils"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const providerName = "google"

type distanceMatrixResponse struct {
	Status       string `json:"status"`
	ErrorMessage string `json:"error_message,omitempty"`
	Rows         []struct {
		Elements []struct {
			Status   string `json:"status"`
			Distance *struct {
				Value int64 `json:"value"`
			} `json:"distance"`
			Duration *struct {
				Value int64 `json:"value"`
			} `json:"duration"`
		} `json:"elements"`
	} `json:"rows"`
}

type client struct {
	httpClient *retryablehttp.Client
	baseURL    string
	apiKey     string
	limiter    *rate.Limiter
	logger     *zap.Logger
}

// NewGoogleMapsClient returns a Distance Matrix client answering driving
// and transit lookups. Transport errors, 429 and 5xx responses are retried
// up to cfg.MaxRetries times.
func NewGoogleMapsClient(cfg *config.GoogleConfig, limiter *rate.Limiter, logger *zap.Logger) repository.RoutingProvider {
	if limiter == nil {
		limiter = rate.NewLimiter(rate.Inf, 1)
	}

	rc := retryablehttp.NewClient()
	rc.RetryMax = cfg.MaxRetries
	rc.RetryWaitMin = 100 * time.Millisecond
	rc.RetryWaitMax = 2 * time.Second
	rc.Logger = nil
	rc.HTTPClient.Timeout = time.Duration(cfg.RequestTimeout) * time.Second
	rc.CheckRetry = retryPolicy
	// hand back the last response instead of an error carrying the keyed URL
	rc.ErrorHandler = retryablehttp.PassthroughErrorHandler
	rc.RequestLogHook = func(_ retryablehttp.Logger, req *http.Request, attempt int) {
		if attempt > 0 {
			logger.Warn("Retrying Google Maps request",
				zap.String("path", req.URL.Path),
				zap.Int("attempt", attempt))
		}
	}

	return &client{
		httpClient: rc,
		baseURL:    cfg.BaseURL,
		apiKey:     cfg.APIKey,
		limiter:    limiter,
		logger:     logger,
	}
}

func retryPolicy(ctx context.Context, resp *http.Response, err error) (bool, error) {
	if ctx.Err() != nil {
		return false, ctx.Err()
	}
	if err != nil && (errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)) {
		return false, err
	}
	return retryablehttp.DefaultRetryPolicy(ctx, resp, err)
}

func (c *client) Lookup(
	ctx context.Context,
	origin, destination domain.Coordinate,
	mode domain.TravelMode,
) (domain.RouteLookup, error) {
	if mode != domain.TravelModeDriving && mode != domain.TravelModeTransit {
		return domain.RouteLookup{}, fmt.Errorf("google %s: %w", mode, domain.ErrModeUnsupported)
	}

	waitStarted := time.Now()
	if err := c.limiter.Wait(ctx); err != nil {
		return domain.RouteLookup{}, fmt.Errorf("rate limiter: %w", err)
	}
	metrics.RateLimitWaitTime.WithLabelValues(providerName).Observe(time.Since(waitStarted).Seconds())

	params := url.Values{}
	params.Set("origins", fmt.Sprintf("%f,%f", origin.Lat, origin.Lon))
	params.Set("destinations", fmt.Sprintf("%f,%f", destination.Lat, destination.Lon))
	params.Set("mode", string(mode))
	params.Set("units", "metric")
	params.Set("key", c.apiKey)
	fullURL := fmt.Sprintf("%s/maps/api/distancematrix/json?%s", c.baseURL, params.Encode())

	c.logger.Debug("Calling Google Distance Matrix API",
		zap.String("mode", string(mode)),
		zap.String("origin", params.Get("origins")),
		zap.String("destination", params.Get("destinations")))

	started := time.Now()
	lookup, err := c.do(ctx, fullURL)
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

func (c *client) do(ctx context.Context, fullURL string) (domain.RouteLookup, error) {
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return domain.RouteLookup{}, fmt.Errorf("failed to create request: %w", utils.RedactURLError(err, "key"))
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		err = utils.RedactURLError(err, "key")
		c.logger.Error("Failed to execute request", zap.Error(err))
		return domain.RouteLookup{}, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return domain.RouteLookup{}, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		c.logger.Error("Google Maps API returned error",
			zap.Int("status_code", resp.StatusCode),
			zap.String("body", string(body)))
		return domain.RouteLookup{}, fmt.Errorf("google maps API error: status %d, body: %s", resp.StatusCode, string(body))
	}

	var matrix distanceMatrixResponse
	if err := json.Unmarshal(body, &matrix); err != nil {
		c.logger.Error("Failed to decode response", zap.Error(err))
		return domain.RouteLookup{}, fmt.Errorf("failed to decode response: %w", err)
	}

	if matrix.Status != "OK" {
		c.logger.Error("Google Maps API returned non-OK status",
			zap.String("status", matrix.Status),
			zap.String("message", matrix.ErrorMessage))
		return domain.RouteLookup{}, fmt.Errorf("google maps API returned status %s: %s", matrix.Status, matrix.ErrorMessage)
	}

	if len(matrix.Rows) == 0 || len(matrix.Rows[0].Elements) == 0 {
		return domain.RouteLookup{}, fmt.Errorf("missing data in response")
	}

	element := matrix.Rows[0].Elements[0]
	switch element.Status {
	case "OK":
	case "ZERO_RESULTS", "NOT_FOUND":
		return domain.RouteLookup{}, domain.ErrNoRoute
	default:
		return domain.RouteLookup{}, fmt.Errorf("google maps element status %s", element.Status)
	}

	if element.Duration == nil {
		return domain.RouteLookup{}, fmt.Errorf("missing duration in response")
	}

	lookup := domain.RouteLookup{DurationS: element.Duration.Value}
	if element.Distance != nil {
		lookup.DistanceM = element.Distance.Value
	}
	return lookup, nil
}
