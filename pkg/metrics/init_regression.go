package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initRegressionMetrics() {
	r.RegressionIntercept = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "regression_intercept",
			Help:      "Intercept b0 of the closeness-on-betweenness fit",
		},
	)

	r.RegressionSlope = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "regression_slope",
			Help:      "Slope b1 of the closeness-on-betweenness fit",
		},
	)

	r.RegressionRSquared = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "regression_r_squared",
			Help:      "Coefficient of determination of the fit",
		},
	)

	r.RegressionFailures = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "regression_failures_total",
			Help:      "Fits that could not be computed, by reason",
		},
		[]string{"reason"},
	)
}
