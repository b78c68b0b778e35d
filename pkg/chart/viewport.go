// Package chart maps centrality data onto a character-cell plot area: the
// visible data window, zoom and pan, cell/data coordinate conversion and
// rasterisation of the scatter and regression line.
package chart

import (
	"math"

	"github.com/dd0wney/cluso-centralities/pkg/dataset"
)

// Range is a closed interval on one axis.
type Range struct {
	Min float64 `yaml:"min" json:"min"`
	Max float64 `yaml:"max" json:"max"`
}

// Span returns the length of the range.
func (r Range) Span() float64 {
	return r.Max - r.Min
}

// Center returns the midpoint of the range.
func (r Range) Center() float64 {
	return (r.Min + r.Max) / 2
}

// Contains reports whether v lies inside the range.
func (r Range) Contains(v float64) bool {
	return v >= r.Min && v <= r.Max
}

func (r Range) scaled(factor float64) Range {
	half := r.Span() / 2 / factor
	c := r.Center()
	return Range{Min: c - half, Max: c + half}
}

func (r Range) shifted(d float64) Range {
	return Range{Min: r.Min + d, Max: r.Max + d}
}

var (
	// DefaultX is the betweenness window shown at start-up.
	DefaultX = Range{Min: 0, Max: 0.65}
	// DefaultY is the closeness window shown at start-up.
	DefaultY = Range{Min: 0, Max: 0.025}
)

const (
	// ZoomInFactor and ZoomOutFactor are applied by the +/- keys.
	ZoomInFactor  = 2.0
	ZoomOutFactor = 0.5
	// WheelZoomIn and WheelZoomOut are applied per ctrl+wheel notch.
	WheelZoomIn  = 1.1
	WheelZoomOut = 0.9

	minSpan = 1e-12
)

// Viewport is the window of data space currently visible. The zero value is
// not usable; create one with NewViewport.
type Viewport struct {
	X, Y Range

	homeX, homeY Range
}

// NewViewport creates a viewport showing x and y. Reset returns to these ranges.
func NewViewport(x, y Range) Viewport {
	return Viewport{X: x, Y: y, homeX: x, homeY: y}
}

// DefaultViewport shows the fixed centrality window.
func DefaultViewport() Viewport {
	return NewViewport(DefaultX, DefaultY)
}

// Zoom scales the visible window about its center. A factor above 1 zooms in,
// below 1 zooms out. Non-positive factors are ignored.
func (v Viewport) Zoom(factor float64) Viewport {
	if factor <= 0 || math.IsNaN(factor) || math.IsInf(factor, 0) {
		return v
	}
	x, y := v.X.scaled(factor), v.Y.scaled(factor)
	if x.Span() < minSpan || y.Span() < minSpan {
		return v
	}
	v.X, v.Y = x, y
	return v
}

// ZoomIn zooms in by ZoomInFactor.
func (v Viewport) ZoomIn() Viewport {
	return v.Zoom(ZoomInFactor)
}

// ZoomOut zooms out by ZoomOutFactor.
func (v Viewport) ZoomOut() Viewport {
	return v.Zoom(ZoomOutFactor)
}

// Scroll moves the window by whole cells of a cols x rows plot area. Positive
// dc moves toward larger x, positive dr toward larger y.
func (v Viewport) Scroll(dc, dr, cols, rows int) Viewport {
	if cols > 0 {
		v.X = v.X.shifted(float64(dc) * v.X.Span() / float64(cols))
	}
	if rows > 0 {
		v.Y = v.Y.shifted(float64(dr) * v.Y.Span() / float64(rows))
	}
	return v
}

// Reset restores the ranges the viewport was created with.
func (v Viewport) Reset() Viewport {
	v.X, v.Y = v.homeX, v.homeY
	return v
}

// Fit returns a viewport whose window encloses the box [min, max] with a
// fractional margin on every side. A degenerate axis is widened to a unit span
// so the points stay visible. The reset ranges are kept.
func (v Viewport) Fit(min, max dataset.Point, margin float64) Viewport {
	fit := func(lo, hi float64) Range {
		span := hi - lo
		if span < minSpan {
			span = 1
			lo -= 0.5
		}
		pad := span * margin
		return Range{Min: lo - pad, Max: lo + span + pad}
	}
	v.X = fit(min.X, max.X)
	v.Y = fit(min.Y, max.Y)
	return v
}

// Visible reports whether p lies inside the window.
func (v Viewport) Visible(p dataset.Point) bool {
	return v.X.Contains(p.X) && v.Y.Contains(p.Y)
}

// ToCell maps p to the cell of a cols x rows grid that contains it. Row 0 is
// the top of the plot (largest y). ok is false when p is outside the window.
func (v Viewport) ToCell(p dataset.Point, cols, rows int) (col, row int, ok bool) {
	if cols <= 0 || rows <= 0 || !v.Visible(p) {
		return 0, 0, false
	}
	col = int(math.Floor((p.X - v.X.Min) / v.X.Span() * float64(cols)))
	row = int(math.Floor((v.Y.Max - p.Y) / v.Y.Span() * float64(rows)))
	return min(col, cols-1), min(row, rows-1), true
}

// ToData maps the center of cell (col, row) back to data space.
func (v Viewport) ToData(col, row, cols, rows int) dataset.Point {
	if cols <= 0 || rows <= 0 {
		return dataset.Point{X: v.X.Center(), Y: v.Y.Center()}
	}
	return dataset.Point{
		X: v.X.Min + (float64(col)+0.5)/float64(cols)*v.X.Span(),
		Y: v.Y.Max - (float64(row)+0.5)/float64(rows)*v.Y.Span(),
	}
}
