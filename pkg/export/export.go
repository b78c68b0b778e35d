// Package export renders the centrality chart to an image file with gonum/plot.
package export

import (
	"errors"
	"fmt"
	"image/color"
	"io"
	"math"
	"path/filepath"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/dd0wney/cluso-centralities/pkg/chart"
	"github.com/dd0wney/cluso-centralities/pkg/dataset"
	"github.com/dd0wney/cluso-centralities/pkg/regression"
)

// ErrUnsupportedFormat is returned for output paths whose extension has no renderer.
var ErrUnsupportedFormat = errors.New("unsupported export format")

// Formats lists the accepted file extensions, without the dot.
var Formats = []string{"png", "svg", "pdf"}

var (
	pointColor    = color.RGBA{R: 0x00, G: 0x6f, B: 0xbf, A: 0xff}
	lineColor     = color.RGBA{R: 0xe0, G: 0x8f, B: 0x00, A: 0xff}
	selectedColor = color.RGBA{R: 0xd0, G: 0x00, B: 0x00, A: 0xff}
)

// Options controls the exported chart.
type Options struct {
	// Width and Height are the page size in points.
	Width, Height float64
	Viewport      chart.Viewport
	// LineFrom and LineTo bound the regression line in x.
	LineFrom, LineTo float64
	// Selected is highlighted with a larger marker when set.
	Selected *dataset.PointRecord
}

// DefaultOptions is an 8 inch square page over the default centrality window.
func DefaultOptions() Options {
	return Options{
		Width:    576,
		Height:   576,
		Viewport: chart.DefaultViewport(),
		LineFrom: chart.LineFrom,
		LineTo:   chart.LineTo,
	}
}

// Render builds the chart. line may be nil when no regression could be fitted.
func Render(ds *dataset.Dataset, line *regression.Coefficients, opts Options) (*plot.Plot, error) {
	if opts.Width <= 0 || opts.Height <= 0 {
		return nil, fmt.Errorf("invalid page size %gx%g", opts.Width, opts.Height)
	}

	p := plot.New()
	p.Title.Text = chart.Title
	p.X.Label.Text = chart.XAxisTitle
	p.Y.Label.Text = chart.YAxisTitle
	p.X.Min, p.X.Max = opts.Viewport.X.Min, opts.Viewport.X.Max
	p.Y.Min, p.Y.Max = opts.Viewport.Y.Min, opts.Viewport.Y.Max
	p.Add(plotter.NewGrid())
	p.Legend.Top = true

	if line != nil {
		if seg, ok := clipLine(*line, opts.LineFrom, opts.LineTo, opts.Viewport); ok {
			l, err := plotter.NewLine(seg)
			if err != nil {
				return nil, fmt.Errorf("regression line: %w", err)
			}
			l.LineStyle.Width = vg.Points(1.5)
			l.LineStyle.Color = lineColor
			p.Add(l)
			p.Legend.Add(chart.LineName, l)
		}
	}

	// Markers follow the density heuristic, measured in points on the page.
	radius := chart.MarkerSize(opts.Width, opts.Height, ds.Count()) / 2

	s, err := plotter.NewScatter(visible(ds, opts.Viewport))
	if err != nil {
		return nil, fmt.Errorf("scatter: %w", err)
	}
	s.GlyphStyle.Shape = draw.CircleGlyph{}
	s.GlyphStyle.Color = pointColor
	s.GlyphStyle.Radius = vg.Points(radius)
	p.Add(s)
	p.Legend.Add(chart.ScatterName, s)

	if opts.Selected != nil && opts.Viewport.Visible(opts.Selected.Point()) {
		sel, err := plotter.NewScatter(plotter.XYs{{X: opts.Selected.X, Y: opts.Selected.Y}})
		if err != nil {
			return nil, fmt.Errorf("selected point: %w", err)
		}
		sel.GlyphStyle.Shape = draw.BoxGlyph{}
		sel.GlyphStyle.Color = selectedColor
		sel.GlyphStyle.Radius = vg.Points(radius * chart.SelectedScale)
		p.Add(sel)
		p.Legend.Add(chart.SelectedName, sel)
	}

	return p, nil
}

// Save renders the chart to path. The format follows the file extension.
func Save(path string, ds *dataset.Dataset, line *regression.Coefficients, opts Options) error {
	if _, err := formatOf(path); err != nil {
		return err
	}
	p, err := Render(ds, line, opts)
	if err != nil {
		return err
	}
	if err := p.Save(vg.Points(opts.Width), vg.Points(opts.Height), path); err != nil {
		return fmt.Errorf("save chart %s: %w", path, err)
	}
	return nil
}

// Write renders the chart in the named format to w.
func Write(w io.Writer, format string, ds *dataset.Dataset, line *regression.Coefficients, opts Options) error {
	format = strings.ToLower(format)
	if !supported(format) {
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	p, err := Render(ds, line, opts)
	if err != nil {
		return err
	}
	wt, err := p.WriterTo(vg.Points(opts.Width), vg.Points(opts.Height), format)
	if err != nil {
		return fmt.Errorf("render %s: %w", format, err)
	}
	if _, err := wt.WriteTo(w); err != nil {
		return fmt.Errorf("write %s: %w", format, err)
	}
	return nil
}

func formatOf(path string) (string, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	if !supported(ext) {
		return "", fmt.Errorf("%w: %q (want one of %s)", ErrUnsupportedFormat, filepath.Ext(path), strings.Join(Formats, ", "))
	}
	return ext, nil
}

func supported(format string) bool {
	for _, f := range Formats {
		if f == format {
			return true
		}
	}
	return false
}

// visible returns the points inside the viewport; gonum/plot does not clip
// glyphs to the data area.
func visible(ds *dataset.Dataset, v chart.Viewport) plotter.XYs {
	var pts plotter.XYs
	for _, r := range ds.Data() {
		if v.Visible(r.Point()) {
			pts = append(pts, plotter.XY{X: r.X, Y: r.Y})
		}
	}
	return pts
}

// clipLine returns the part of the line between x0 and x1 that lies inside the
// viewport, or false when none of it does.
func clipLine(c regression.Coefficients, x0, x1 float64, v chart.Viewport) (plotter.XYs, bool) {
	lo := math.Max(math.Min(x0, x1), v.X.Min)
	hi := math.Min(math.Max(x0, x1), v.X.Max)
	if lo > hi {
		return nil, false
	}

	if c.Slope != 0 {
		// x where the line meets the bottom and top of the window.
		a := (v.Y.Min - c.Intercept) / c.Slope
		b := (v.Y.Max - c.Intercept) / c.Slope
		lo = math.Max(lo, math.Min(a, b))
		hi = math.Min(hi, math.Max(a, b))
		if lo > hi {
			return nil, false
		}
	} else if !v.Y.Contains(c.Intercept) {
		return nil, false
	}

	p0, p1 := c.Segment(lo, hi)
	return plotter.XYs{{X: p0[0], Y: p0[1]}, {X: p1[0], Y: p1[1]}}, true
}
