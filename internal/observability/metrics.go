package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the
// fountains API.
type Metrics struct {
	// Dataset lifecycle metrics.
	DatasetRows         prometheus.Gauge
	DatasetLoads        *prometheus.CounterVec // labels: result={success,error}
	DatasetLoadDuration prometheus.Histogram
	RowsDefaulted       *prometheus.CounterVec // labels: field={code_postal,longitude,latitude}

	// Query metrics.
	FilterEvaluations prometheus.Counter
	ResponseCache     *prometheus.CounterVec // labels: result={hit,miss}
}

// NewMetrics creates and registers all service metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		DatasetRows: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "fountains_api",
			Name:      "dataset_rows",
			Help:      "Number of fountain records in the current snapshot.",
		}),
		DatasetLoads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "fountains_api",
			Name:      "dataset_loads_total",
			Help:      "Dataset load attempts by result.",
		}, []string{"result"}),
		DatasetLoadDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "fountains_api",
			Name:      "dataset_load_duration_seconds",
			Help:      "Duration of a complete read-prepare-swap cycle.",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 2.5},
		}),
		RowsDefaulted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "fountains_api",
			Name:      "rows_defaulted_total",
			Help:      "Numeric fields that failed to parse and were defaulted, by field.",
		}, []string{"field"}),
		FilterEvaluations: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "fountains_api",
			Name:      "filter_evaluations_total",
			Help:      "Total filtered dataset views computed.",
		}),
		ResponseCache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "fountains_api",
			Name:      "response_cache_total",
			Help:      "Response cache lookups by result.",
		}, []string{"result"}),
	}

	prometheus.MustRegister(
		m.DatasetRows,
		m.DatasetLoads,
		m.DatasetLoadDuration,
		m.RowsDefaulted,
		m.FilterEvaluations,
		m.ResponseCache,
	)

	return m
}

// NewMetricsForTesting creates Metrics with unregistered collectors to
// avoid "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		DatasetRows:         prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "fountains_api", Name: "dataset_rows"}),
		DatasetLoads:        prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "fountains_api", Name: "dataset_loads_total"}, []string{"result"}),
		DatasetLoadDuration: prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "fountains_api", Name: "dataset_load_duration_seconds"}),
		RowsDefaulted:       prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "fountains_api", Name: "rows_defaulted_total"}, []string{"field"}),
		FilterEvaluations:   prometheus.NewCounter(prometheus.CounterOpts{Namespace: "fountains_api", Name: "filter_evaluations_total"}),
		ResponseCache:       prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "fountains_api", Name: "response_cache_total"}, []string{"result"}),
	}
}
