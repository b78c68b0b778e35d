package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initViewerMetrics() {
	r.ViewerEventsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "viewer_events_total",
			Help:      "Events dispatched by the interactive viewer, by type",
		},
		[]string{"event"},
	)

	r.ViewerHoverLookups = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "viewer_hover_lookups_total",
			Help:      "Nearest-point lookups triggered by the pointer",
		},
	)

	r.ViewerMarkerSize = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "viewer_marker_size_cells",
			Help:      "Current marker size hint in terminal cells",
		},
	)
}

func (r *Registry) initGeneratorMetrics() {
	r.GeneratorNodes = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "generator_nodes",
			Help:      "Nodes in the edge list the centralities were computed from",
		},
	)

	r.GeneratorEdges = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "generator_edges",
			Help:      "Edges in the edge list the centralities were computed from",
		},
	)
}
