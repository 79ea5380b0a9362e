package metrics

import (
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/ratelimitcore/hyperlimit"
)

func TestCollector_ScrapesRegisteredRegistry(t *testing.T) {
	reg := hyperlimit.New()
	reg.CreateLimiter("user:1", 2, 60000)
	reg.TryRequest("user:1")
	reg.TryRequest("user:1")
	reg.TryRequest("user:1")

	c := NewCollector()
	c.Register("api", reg)

	expected := `
# HELP hyperlimit_requests_total Total number of rate limit checks by outcome.
# TYPE hyperlimit_requests_total counter
hyperlimit_requests_total{outcome="allowed",registry="api"} 2
hyperlimit_requests_total{outcome="blocked",registry="api"} 1
hyperlimit_requests_total{outcome="penalized",registry="api"} 0
`
	if err := testutil.CollectAndCompare(c, strings.NewReader(expected), "hyperlimit_requests_total"); err != nil {
		t.Errorf("unexpected collected metrics: %v", err)
	}
}

func TestCollector_UnregisterStopsScraping(t *testing.T) {
	reg := hyperlimit.New()
	reg.CreateLimiter("user:1", 5, 60000)

	c := NewCollector()
	c.Register("api", reg)
	c.Unregister("api")

	if testutil.CollectAndCount(c) != 0 {
		t.Error("expected no metrics after Unregister")
	}
}
