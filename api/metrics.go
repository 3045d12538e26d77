package api

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the Prometheus metrics of the simulation API.
type Metrics struct {
	SimulationRuns     *prometheus.CounterVec
	SimulationDuration prometheus.Histogram
	TrialsSimulated    prometheus.Counter
	UndefinedNetIRR    prometheus.Counter
}

// NewMetrics creates a Metrics instance registered with the default registry.
func NewMetrics(namespace string) *Metrics {
	if namespace == "" {
		namespace = "fund_sim"
	}
	return &Metrics{
		SimulationRuns: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "api",
			Name:      "simulation_runs_total",
			Help:      "Total number of simulation requests by status",
		}, []string{"status"}),
		SimulationDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "api",
			Name:      "simulation_duration_seconds",
			Help:      "Wall time of completed simulation batches",
			Buckets:   prometheus.ExponentialBuckets(0.01, 2, 12),
		}),
		TrialsSimulated: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "montecarlo",
			Name:      "trials_total",
			Help:      "Total number of fund trials simulated",
		}),
		UndefinedNetIRR: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "montecarlo",
			Name:      "undefined_net_irr_total",
			Help:      "Trials whose net IRR could not be solved",
		}),
	}
}

// DefaultMetrics is the default metrics instance.
var DefaultMetrics = NewMetrics("")

// MetricsHandler returns the Prometheus scrape handler.
func MetricsHandler() http.Handler {
	return promhttp.Handler()
}

// RecordSimulation records the outcome of one request.
func RecordSimulation(status string, trials, undefinedNetIRR int, seconds float64) {
	DefaultMetrics.SimulationRuns.WithLabelValues(status).Inc()
	if status != "completed" {
		return
	}
	DefaultMetrics.SimulationDuration.Observe(seconds)
	DefaultMetrics.TrialsSimulated.Add(float64(trials))
	DefaultMetrics.UndefinedNetIRR.Add(float64(undefinedNetIRR))
}
