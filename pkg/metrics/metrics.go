package metrics

import (
	"errors"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/dd0wney/cluso-centralities/pkg/dataset"
	"github.com/dd0wney/cluso-centralities/pkg/regression"
)

// RecordLoad records the outcome of one dataset load. ds may be nil on failure.
func (r *Registry) RecordLoad(ds *dataset.Dataset, err error, duration time.Duration) {
	status := "success"
	if err != nil {
		status = "error"
	}
	r.DatasetLoadsTotal.WithLabelValues(status).Inc()
	r.DatasetLoadDuration.WithLabelValues(status).Observe(duration.Seconds())

	if ds == nil {
		return
	}
	stats := ds.Stats()
	accepted := stats.Rows - stats.Skipped - stats.Duplicates
	r.DatasetRowsTotal.WithLabelValues("accepted").Add(float64(accepted))
	r.DatasetRowsTotal.WithLabelValues("skipped").Add(float64(stats.Skipped))
	r.DatasetRowsTotal.WithLabelValues("duplicate").Add(float64(stats.Duplicates))
	r.DatasetPoints.Set(float64(ds.Count()))
}

// RecordFit records a regression result or the reason it failed.
func (r *Registry) RecordFit(s regression.Summary, err error) {
	if err != nil {
		reason := "other"
		switch {
		case errors.Is(err, regression.ErrDegenerate):
			reason = "degenerate"
		case errors.Is(err, regression.ErrInsufficientPoints):
			reason = "insufficient_points"
		}
		r.RegressionFailures.WithLabelValues(reason).Inc()
		return
	}
	r.RegressionIntercept.Set(s.Intercept)
	r.RegressionSlope.Set(s.Slope)
	r.RegressionRSquared.Set(s.RSquared)
}

// RecordEvent counts one viewer event.
func (r *Registry) RecordEvent(event string) {
	r.ViewerEventsTotal.WithLabelValues(event).Inc()
}

// RecordHover counts one nearest-point lookup.
func (r *Registry) RecordHover() {
	r.ViewerHoverLookups.Inc()
}

// SetMarkerSize records the current marker size hint.
func (r *Registry) SetMarkerSize(size float64) {
	r.ViewerMarkerSize.Set(size)
}

// RecordGraph records the size of a graph centralities were generated from.
func (r *Registry) RecordGraph(nodes, edges int) {
	r.GeneratorNodes.Set(float64(nodes))
	r.GeneratorEdges.Set(float64(edges))
}

// WriteTextfile writes every metric to path in the Prometheus text format, for
// pickup by a node exporter textfile collector. The file is replaced atomically.
func (r *Registry) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}
