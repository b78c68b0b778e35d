package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "centralplot"

// Registry holds all metrics for one run of the tool
type Registry struct {
	// Dataset Metrics
	DatasetLoadDuration *prometheus.HistogramVec
	DatasetLoadsTotal   *prometheus.CounterVec
	DatasetRowsTotal    *prometheus.CounterVec
	DatasetPoints       prometheus.Gauge

	// Regression Metrics
	RegressionIntercept prometheus.Gauge
	RegressionSlope     prometheus.Gauge
	RegressionRSquared  prometheus.Gauge
	RegressionFailures  *prometheus.CounterVec

	// Viewer Metrics
	ViewerEventsTotal   *prometheus.CounterVec
	ViewerHoverLookups  prometheus.Counter
	ViewerMarkerSize    prometheus.Gauge

	// Generator Metrics
	GeneratorNodes prometheus.Gauge
	GeneratorEdges prometheus.Gauge

	registry *prometheus.Registry
}

// NewRegistry creates a new metrics registry with all metrics initialized
func NewRegistry() *Registry {
	r := &Registry{
		registry: prometheus.NewRegistry(),
	}

	r.initDatasetMetrics()
	r.initRegressionMetrics()
	r.initViewerMetrics()
	r.initGeneratorMetrics()

	return r
}

// Gatherer returns the underlying Prometheus registry for export
func (r *Registry) Gatherer() prometheus.Gatherer {
	return r.registry
}
