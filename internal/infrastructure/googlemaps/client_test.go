package googlemaps

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/samali323/carbonemissioncalc-sub000/internal/config"
	"github.com/samali323/carbonemissioncalc-sub000/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var (
	madrid    = domain.Coordinate{Lat: 40.4168, Lon: -3.7038}
	barcelona = domain.Coordinate{Lat: 41.3874, Lon: 2.1686}
)

func testConfig(baseURL string, retries int) *config.GoogleConfig {
	return &config.GoogleConfig{
		APIKey:         "test_key",
		BaseURL:        baseURL,
		RequestTimeout: 5,
		MaxRetries:     retries,
	}
}

const okBody = `{
  "status": "OK",
  "rows": [{"elements": [{"status": "OK", "distance": {"value": 621300}, "duration": {"value": 9900}}]}]
}`

func TestClient_Lookup(t *testing.T) {
	logger := zap.NewNop()

	t.Run("transit request", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/maps/api/distancematrix/json", r.URL.Path)
			q := r.URL.Query()
			assert.Equal(t, "transit", q.Get("mode"))
			assert.Equal(t, "40.416800,-3.703800", q.Get("origins"))
			assert.Equal(t, "41.387400,2.168600", q.Get("destinations"))
			assert.Equal(t, "test_key", q.Get("key"))
			w.Write([]byte(okBody))
		}))
		defer server.Close()

		client := NewGoogleMapsClient(testConfig(server.URL, 0), nil, logger)

		result, err := client.Lookup(context.Background(), madrid, barcelona, domain.TravelModeTransit)
		require.NoError(t, err)
		assert.Equal(t, int64(9900), result.DurationS)
		assert.Equal(t, int64(621300), result.DistanceM)
	})

	t.Run("zero results is no route", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"status":"OK","rows":[{"elements":[{"status":"ZERO_RESULTS"}]}]}`))
		}))
		defer server.Close()

		client := NewGoogleMapsClient(testConfig(server.URL, 0), nil, logger)

		_, err := client.Lookup(context.Background(), madrid, barcelona, domain.TravelModeTransit)
		assert.ErrorIs(t, err, domain.ErrNoRoute)
	})

	t.Run("request denied is a failure", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"status":"REQUEST_DENIED","error_message":"The provided API key is invalid.","rows":[]}`))
		}))
		defer server.Close()

		client := NewGoogleMapsClient(testConfig(server.URL, 0), nil, logger)

		_, err := client.Lookup(context.Background(), madrid, barcelona, domain.TravelModeDriving)
		require.Error(t, err)
		assert.NotErrorIs(t, err, domain.ErrNoRoute)
		assert.Contains(t, err.Error(), "REQUEST_DENIED")
	})

	t.Run("retries server errors", func(t *testing.T) {
		var hits atomic.Int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if hits.Add(1) == 1 {
				w.WriteHeader(http.StatusServiceUnavailable)
				return
			}
			w.Write([]byte(okBody))
		}))
		defer server.Close()

		client := NewGoogleMapsClient(testConfig(server.URL, 2), nil, logger)

		result, err := client.Lookup(context.Background(), madrid, barcelona, domain.TravelModeDriving)
		require.NoError(t, err)
		assert.Equal(t, int64(9900), result.DurationS)
		assert.Equal(t, int32(2), hits.Load())
	})

	t.Run("gives up after max retries", func(t *testing.T) {
		var hits atomic.Int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			hits.Add(1)
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer server.Close()

		client := NewGoogleMapsClient(testConfig(server.URL, 1), nil, logger)

		_, err := client.Lookup(context.Background(), madrid, barcelona, domain.TravelModeDriving)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "status 502")
		assert.Equal(t, int32(2), hits.Load())
	})

	t.Run("unsupported mode", func(t *testing.T) {
		client := NewGoogleMapsClient(testConfig("http://127.0.0.1:1", 0), nil, logger)

		_, err := client.Lookup(context.Background(), madrid, barcelona, domain.TravelMode("flying"))
		assert.ErrorIs(t, err, domain.ErrModeUnsupported)
	})

	t.Run("transport errors do not carry the api key", func(t *testing.T) {
		server := httptest.NewServer(http.NotFoundHandler())
		server.Close()

		client := NewGoogleMapsClient(testConfig(server.URL, 0), nil, logger)

		_, err := client.Lookup(context.Background(), madrid, barcelona, domain.TravelModeDriving)
		require.Error(t, err)
		assert.NotContains(t, err.Error(), "test_key")
	})

	t.Run("missing distance is left unknown", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"status":"OK","rows":[{"elements":[{"status":"OK","duration":{"value":7200}}]}]}`))
		}))
		defer server.Close()

		client := NewGoogleMapsClient(testConfig(server.URL, 0), nil, logger)

		result, err := client.Lookup(context.Background(), madrid, barcelona, domain.TravelModeTransit)
		require.NoError(t, err)
		assert.Equal(t, int64(7200), result.DurationS)
		assert.Equal(t, int64(0), result.DistanceM)

		entry := &domain.RouteCacheEntry{}
		entry.SetLookup(domain.TravelModeTransit, &result)
		require.NotNil(t, entry.Duration(domain.TravelModeTransit))
		assert.Nil(t, entry.Distance(domain.TravelModeTransit))
	})
}
