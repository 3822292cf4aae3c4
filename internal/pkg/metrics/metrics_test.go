package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestObserveProvider(t *testing.T) {
	before := testutil.ToFloat64(ProviderRequestsTotal.WithLabelValues("test", "driving", "ok"))

	ObserveProvider("test", "driving", "ok", time.Now().Add(-150*time.Millisecond))

	after := testutil.ToFloat64(ProviderRequestsTotal.WithLabelValues("test", "driving", "ok"))
	assert.Equal(t, before+1, after)
}

func TestRouteCacheLookups(t *testing.T) {
	c := RouteCacheLookupsTotal.WithLabelValues(RouteStale)
	before := testutil.ToFloat64(c)
	c.Inc()
	assert.Equal(t, before+1, testutil.ToFloat64(c))
}
