// Package metrics provides an optional Prometheus collector for
// simulation runs: per-policy hit/miss counters and occupancy gauges.
package metrics

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Config controls whether the collector is active and where it serves.
type Config struct {
	Enabled bool   `yaml:"enabled"`
	Addr    string `yaml:"addr"`
	Path    string `yaml:"path"`
}

// Collector records per-run counters for each policy under simulation.
// Disabled by default; a disabled Collector's Record* methods are no-ops
// so callers never need to branch on Config.Enabled.
type Collector struct {
	config   *Config
	registry *prometheus.Registry

	requestCounter *prometheus.CounterVec
	occupancyGauge *prometheus.GaugeVec
	runDuration    *prometheus.HistogramVec

	server *http.Server
}

// NewCollector builds a Collector. When config.Enabled is false the
// returned Collector has no registry and every Record method is a no-op.
func NewCollector(config *Config) (*Collector, error) {
	if config == nil {
		config = &Config{Enabled: false}
	}
	if !config.Enabled {
		return &Collector{config: config}, nil
	}

	registry := prometheus.NewRegistry()
	c := &Collector{config: config, registry: registry}

	c.requestCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "tracesim",
			Name:      "requests_total",
			Help:      "Total requests classified by policy, operation, and outcome.",
		},
		[]string{"policy", "op", "outcome"},
	)
	c.occupancyGauge = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "tracesim",
			Name:      "occupancy",
			Help:      "Current resident-entry count for a policy run.",
		},
		[]string{"policy"},
	)
	c.runDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "tracesim",
			Name:      "run_duration_seconds",
			Help:      "Wall-clock duration of a complete driver run.",
			Buckets:   prometheus.ExponentialBuckets(0.001, 2, 15),
		},
		[]string{"policy"},
	)

	for _, m := range []prometheus.Collector{c.requestCounter, c.occupancyGauge, c.runDuration} {
		if err := registry.Register(m); err != nil {
			return nil, fmt.Errorf("failed to register metric: %w", err)
		}
	}

	return c, nil
}

// Start serves the registry at config.Path (/metrics when unset) until
// ctx is canceled.
func (c *Collector) Start(ctx context.Context) error {
	if !c.config.Enabled {
		return nil
	}

	path := c.config.Path
	if path == "" {
		path = "/metrics"
	}

	mux := http.NewServeMux()
	mux.Handle(path, promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{EnableOpenMetrics: true}))

	c.server = &http.Server{
		Addr:              c.config.Addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		if err := c.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			fmt.Fprintf(os.Stderr, "metrics server error: %v\n", err)
		}
	}()

	go func() {
		<-ctx.Done()
		_ = c.server.Shutdown(context.Background())
	}()

	return nil
}

// RecordRequest records one classified request outcome for a policy.
func (c *Collector) RecordRequest(policy, op, outcome string) {
	if !c.config.Enabled {
		return
	}
	c.requestCounter.WithLabelValues(policy, op, outcome).Inc()
}

// RecordOccupancy sets the current resident-entry gauge for a policy.
func (c *Collector) RecordOccupancy(policy string, occupancy int) {
	if !c.config.Enabled {
		return
	}
	c.occupancyGauge.WithLabelValues(policy).Set(float64(occupancy))
}

// RecordRunDuration records the wall-clock duration of a completed run.
func (c *Collector) RecordRunDuration(policy string, d time.Duration) {
	if !c.config.Enabled {
		return
	}
	c.runDuration.WithLabelValues(policy).Observe(d.Seconds())
}
