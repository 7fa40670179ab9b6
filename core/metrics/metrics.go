// Package metrics records what learners do with the simulator: commands run,
// how they end and how big the simulated cluster grows.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	v1 "github.com/MallardxGreen/K8-Learning-Simulator-sub000/core/types/v1"
)

const namespace = "k1s_tutor"

// Observer receives one call per executed command.
type Observer interface {
	// ObserveCommand records the outcome of a single command line.
	ObserveCommand(action string, success bool, duration time.Duration)

	// ObserveStore records the size of the store after a command.
	ObserveStore(store v1.Store)
}

// Nop is an Observer that discards everything.
type Nop struct{}

func (Nop) ObserveCommand(string, bool, time.Duration) {}
func (Nop) ObserveStore(v1.Store)                      {}

// Collector implements Observer on top of a private Prometheus registry.
type Collector struct {
	registry *prometheus.Registry

	commandsTotal   *prometheus.CounterVec
	commandDuration *prometheus.HistogramVec
	resources       *prometheus.GaugeVec
}

// NewCollector creates a collector with its own registry.
func NewCollector() *Collector {
	registry := prometheus.NewRegistry()

	return &Collector{
		registry: registry,

		commandsTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "commands_total",
				Help:      "Total number of commands executed",
			},
			[]string{"action", "status"},
		),

		commandDuration: promauto.With(registry).NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "command_duration_seconds",
				Help:      "Command execution time in seconds",
				Buckets:   prometheus.ExponentialBuckets(0.00005, 4, 8),
			},
			[]string{"action"},
		),

		resources: promauto.With(registry).NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "resources",
				Help:      "Number of resources in the simulated cluster by type",
			},
			[]string{"type"},
		),
	}
}

// ObserveCommand records the outcome of a single command line.
func (c *Collector) ObserveCommand(action string, success bool, duration time.Duration) {
	if action == "" {
		action = "none"
	}
	status := "success"
	if !success {
		status = "failure"
	}
	c.commandsTotal.WithLabelValues(action, status).Inc()
	c.commandDuration.WithLabelValues(action).Observe(duration.Seconds())
}

// ObserveStore records the size of the store after a command.
func (c *Collector) ObserveStore(store v1.Store) {
	counts := make(map[string]int)
	for _, r := range store {
		counts[r.Type]++
	}
	c.resources.Reset()
	for t, n := range counts {
		c.resources.WithLabelValues(t).Set(float64(n))
	}
}

// Registry exposes the underlying registry for tests and custom exporters.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// Handler serves the collected metrics in the Prometheus text format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}
