// Package observability provides Prometheus instrumentation for the HTTP
// server and the scheduler.
package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the instrument set shared by the server and the scheduler.
type Metrics struct {
	registry *prometheus.Registry

	ScenarioRuns      *prometheus.CounterVec
	ScenarioDuration  prometheus.Histogram
	SchedulerDispatch prometheus.Counter
}

// NewMetrics registers the instrument set on a fresh registry.
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()

	m := &Metrics{
		registry: registry,
		ScenarioRuns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "telepilot_scenario_runs_total",
			Help: "Scenario executions by result.",
		}, []string{"result"}),
		ScenarioDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "telepilot_scenario_duration_seconds",
			Help:    "Wall-clock duration of scenario executions.",
			Buckets: prometheus.ExponentialBuckets(0.5, 2, 10),
		}),
		SchedulerDispatch: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "telepilot_scheduler_dispatch_total",
			Help: "Minutes dispatched by the scheduler loop.",
		}),
	}

	registry.MustRegister(m.ScenarioRuns, m.ScenarioDuration, m.SchedulerDispatch)
	return m
}

// Handler returns the /metrics endpoint handler.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// ObserveRun records one scenario execution.
func (m *Metrics) ObserveRun(success bool, seconds float64) {
	result := "success"
	if !success {
		result = "failure"
	}
	m.ScenarioRuns.WithLabelValues(result).Inc()
	m.ScenarioDuration.Observe(seconds)
}
