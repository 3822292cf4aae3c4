package mapbox

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/samali323/carbonemissioncalc-sub000/internal/config"
	"github.com/samali323/carbonemissioncalc-sub000/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

var (
	paris    = domain.Coordinate{Lat: 48.8566, Lon: 2.3522}
	brussels = domain.Coordinate{Lat: 50.8503, Lon: 4.3517}
)

func testConfig(baseURL string) *config.MapboxConfig {
	return &config.MapboxConfig{
		AccessToken:    "test_token",
		BaseURL:        baseURL,
		DrivingProfile: "mapbox/driving",
		RequestTimeout: 5,
	}
}

func TestClient_Lookup(t *testing.T) {
	logger, _ := zap.NewDevelopment()

	t.Run("successful request", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/directions/v5/mapbox/driving/2.352200,48.856600;4.351700,50.850300", r.URL.Path)
			assert.Equal(t, "test_token", r.URL.Query().Get("access_token"))
			assert.Equal(t, "false", r.URL.Query().Get("overview"))

			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"code":"Ok","routes":[{"duration":11520.4,"distance":312480.6},{"duration":1,"distance":1}]}`))
		}))
		defer server.Close()

		client := NewMapboxClient(testConfig(server.URL), nil, logger)

		result, err := client.Lookup(context.Background(), paris, brussels, domain.TravelModeDriving)
		require.NoError(t, err)
		assert.Equal(t, int64(11520), result.DurationS)
		assert.Equal(t, int64(312481), result.DistanceM)
	})

	t.Run("transit is not supported", func(t *testing.T) {
		client := NewMapboxClient(testConfig("http://127.0.0.1:1"), nil, logger)

		_, err := client.Lookup(context.Background(), paris, brussels, domain.TravelModeTransit)
		assert.ErrorIs(t, err, domain.ErrModeUnsupported)
	})

	t.Run("no route", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
			w.Write([]byte(`{"code":"NoRoute","message":"No route found","routes":[]}`))
		}))
		defer server.Close()

		client := NewMapboxClient(testConfig(server.URL), nil, logger)

		_, err := client.Lookup(context.Background(), paris, brussels, domain.TravelModeDriving)
		assert.ErrorIs(t, err, domain.ErrNoRoute)
	})

	t.Run("no segment on 422", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnprocessableEntity)
			w.Write([]byte(`{"code":"NoSegment","message":"Could not find a matching segment"}`))
		}))
		defer server.Close()

		client := NewMapboxClient(testConfig(server.URL), nil, logger)

		_, err := client.Lookup(context.Background(), paris, brussels, domain.TravelModeDriving)
		assert.ErrorIs(t, err, domain.ErrNoRoute)
	})

	t.Run("API error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"message":"Not Authorized - Invalid Token"}`))
		}))
		defer server.Close()

		client := NewMapboxClient(testConfig(server.URL), nil, logger)

		_, err := client.Lookup(context.Background(), paris, brussels, domain.TravelModeDriving)
		require.Error(t, err)
		assert.False(t, errors.Is(err, domain.ErrNoRoute))
		assert.Contains(t, err.Error(), "status 401")
	})

	t.Run("invalid JSON response", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("not json"))
		}))
		defer server.Close()

		client := NewMapboxClient(testConfig(server.URL), nil, logger)

		_, err := client.Lookup(context.Background(), paris, brussels, domain.TravelModeDriving)
		require.Error(t, err)
		assert.True(t, strings.Contains(err.Error(), "decode"))
	})

	t.Run("context timeout", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(300 * time.Millisecond)
		}))
		defer server.Close()

		client := NewMapboxClient(testConfig(server.URL), nil, logger)

		ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
		defer cancel()
		_, err := client.Lookup(ctx, paris, brussels, domain.TravelModeDriving)
		assert.ErrorIs(t, err, context.DeadlineExceeded)
	})

	t.Run("rate limiter honours context", func(t *testing.T) {
		limiter := rate.NewLimiter(rate.Every(time.Hour), 1)
		require.True(t, limiter.Allow())

		client := NewMapboxClient(testConfig("http://127.0.0.1:1"), limiter, logger)

		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
		defer cancel()
		_, err := client.Lookup(ctx, paris, brussels, domain.TravelModeDriving)
		assert.Error(t, err)
	})

	t.Run("transport errors do not carry the access token", func(t *testing.T) {
		server := httptest.NewServer(http.NotFoundHandler())
		server.Close()

		client := NewMapboxClient(testConfig(server.URL), nil, logger)

		_, err := client.Lookup(context.Background(), paris, brussels, domain.TravelModeDriving)
		require.Error(t, err)
		assert.NotContains(t, err.Error(), "test_token")
		assert.Contains(t, err.Error(), "access_token=REDACTED")
	})
}
