package export

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dd0wney/cluso-centralities/pkg/chart"
	"github.com/dd0wney/cluso-centralities/pkg/dataset"
	"github.com/dd0wney/cluso-centralities/pkg/regression"
)

func testDataset() *dataset.Dataset {
	return dataset.FromRecords([]dataset.PointRecord{
		{ID: 1, X: 0.10, Y: 0.02},
		{ID: 2, X: 0.30, Y: 0.05},
		{ID: 3, X: 0.05, Y: 0.01},
		{ID: 4, X: 0.90, Y: 0.02}, // outside the default window
	})
}

func TestRender(t *testing.T) {
	line := &regression.Coefficients{Intercept: 0.005, Slope: 0.02}

	p, err := Render(testDataset(), line, DefaultOptions())
	require.NoError(t, err)

	assert.Equal(t, chart.Title, p.Title.Text)
	assert.Equal(t, chart.XAxisTitle, p.X.Label.Text)
	assert.Equal(t, chart.YAxisTitle, p.Y.Label.Text)

	// Out-of-window points must not stretch the axes.
	assert.Equal(t, chart.DefaultX.Min, p.X.Min)
	assert.Equal(t, chart.DefaultX.Max, p.X.Max)
	assert.Equal(t, chart.DefaultY.Min, p.Y.Min)
	assert.Equal(t, chart.DefaultY.Max, p.Y.Max)
}

func TestRenderInvalidSize(t *testing.T) {
	opts := DefaultOptions()
	opts.Width = 0

	_, err := Render(testDataset(), nil, opts)
	assert.Error(t, err)
}

func TestSave(t *testing.T) {
	dir := t.TempDir()
	line := &regression.Coefficients{Intercept: 0.005, Slope: 0.02}
	opts := DefaultOptions()
	opts.Selected = &dataset.PointRecord{ID: 2, X: 0.30, Y: 0.05}

	for _, format := range Formats {
		t.Run(format, func(t *testing.T) {
			path := filepath.Join(dir, "chart."+format)
			require.NoError(t, Save(path, testDataset(), line, opts))

			info, err := os.Stat(path)
			require.NoError(t, err)
			assert.Positive(t, info.Size())
		})
	}
}

func TestSaveUnsupportedFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chart.bmp")

	err := Save(path, testDataset(), nil, DefaultOptions())
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
	assert.NoFileExists(t, path)
}

func TestWriteSVG(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, "SVG", testDataset(), nil, DefaultOptions()))
	assert.Contains(t, buf.String(), "<svg")
	assert.Contains(t, buf.String(), chart.Title)

	assert.ErrorIs(t, Write(&buf, "gif", testDataset(), nil, DefaultOptions()), ErrUnsupportedFormat)
}

func TestRenderEmptyDataset(t *testing.T) {
	_, err := Render(dataset.FromRecords(nil), nil, DefaultOptions())
	assert.NoError(t, err)
}

func TestVisible(t *testing.T) {
	pts := visible(testDataset(), chart.DefaultViewport())
	require.Len(t, pts, 3)
	for _, p := range pts {
		assert.LessOrEqual(t, p.X, chart.DefaultX.Max)
	}
}

func TestClipLine(t *testing.T) {
	v := chart.DefaultViewport() // x [0, 0.65], y [0, 0.025]

	tests := []struct {
		name     string
		c        regression.Coefficients
		ok       bool
		from, to float64
	}{
		{"flat inside", regression.Coefficients{Intercept: 0.01}, true, 0, 0.65},
		{"flat above", regression.Coefficients{Intercept: 0.1}, false, 0, 0},
		// y = 0.05x leaves the top of the window at x = 0.5.
		{"exits top", regression.Coefficients{Slope: 0.05}, true, 0, 0.5},
		// y = 0.03 - 0.05x enters through the top at x = 0.1.
		{"enters top", regression.Coefficients{Intercept: 0.03, Slope: -0.05}, true, 0.1, 0.6},
		{"below window", regression.Coefficients{Intercept: -1, Slope: 0.01}, false, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seg, ok := clipLine(tt.c, chart.LineFrom, chart.LineTo, v)
			require.Equal(t, tt.ok, ok)
			if !ok {
				return
			}
			require.Len(t, seg, 2)
			assert.InDelta(t, tt.from, seg[0].X, 1e-12)
			assert.InDelta(t, tt.to, seg[1].X, 1e-12)
			for _, p := range seg {
				assert.InDelta(t, tt.c.At(p.X), p.Y, 1e-12)
				assert.True(t, v.Visible(dataset.Point{X: p.X, Y: p.Y}) || almostVisible(v, p.X, p.Y))
			}
		})
	}
}

func almostVisible(v chart.Viewport, x, y float64) bool {
	const tol = 1e-12
	return x >= v.X.Min-tol && x <= v.X.Max+tol && y >= v.Y.Min-tol && y <= v.Y.Max+tol
}
