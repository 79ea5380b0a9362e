// Package metrics bridges a hyperlimit Registry's built-in statistics to
// Prometheus, the way the teacher repo wires its own limiter metrics.
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/ratelimitcore/hyperlimit"
)

var (
	requestsDesc = prometheus.NewDesc(
		"hyperlimit_requests_total",
		"Total number of rate limit checks by outcome.",
		[]string{"registry", "outcome"}, nil,
	)
	allowRateDesc = prometheus.NewDesc(
		"hyperlimit_allow_rate",
		"Fraction of requests admitted since the last stats reset.",
		[]string{"registry"}, nil,
	)
)

// Collector is a prometheus.Collector over any number of named Registry
// instances. Unlike the teacher's push-style counters, it reads each
// Registry's own atomic stats on every scrape — there is nothing to
// increment per request, since Registry already tracks its counters.
type Collector struct {
	mu         sync.RWMutex
	registries map[string]*hyperlimit.Registry
}

// NewCollector creates an empty Collector. Register Registry instances with
// Register before handing this to prometheus.MustRegister.
func NewCollector() *Collector {
	return &Collector{registries: make(map[string]*hyperlimit.Registry)}
}

// Register adds reg under name, so its stats are scraped under that label.
// Registering the same name again replaces the prior Registry.
func (c *Collector) Register(name string, reg *hyperlimit.Registry) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.registries[name] = reg
}

// Unregister stops scraping the Registry registered under name.
func (c *Collector) Unregister(name string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.registries, name)
}

// Describe implements prometheus.Collector.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- requestsDesc
	ch <- allowRateDesc
}

// Collect implements prometheus.Collector.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	for name, reg := range c.registries {
		stats := reg.GetStats()
		ch <- prometheus.MustNewConstMetric(requestsDesc, prometheus.CounterValue, float64(stats.Allowed), name, "allowed")
		ch <- prometheus.MustNewConstMetric(requestsDesc, prometheus.CounterValue, float64(stats.Blocked), name, "blocked")
		ch <- prometheus.MustNewConstMetric(requestsDesc, prometheus.CounterValue, float64(stats.Penalized), name, "penalized")
		ch <- prometheus.MustNewConstMetric(allowRateDesc, prometheus.GaugeValue, stats.AllowRate, name)
	}
}
