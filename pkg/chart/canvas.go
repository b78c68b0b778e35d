package chart

import (
	"math"
	"strings"

	"github.com/dd0wney/cluso-centralities/pkg/dataset"
	"github.com/dd0wney/cluso-centralities/pkg/regression"
)

// Kind tells the renderer what occupies a cell so it can be styled.
type Kind uint8

const (
	Blank Kind = iota
	LineCell
	PointCell
	SelectedCell
)

// SelectedGlyph marks the point under the pointer.
const SelectedGlyph = '■'

// Cell is one character of the plot area.
type Cell struct {
	Rune rune
	Kind Kind
}

// Grid is a rasterised plot area, row 0 at the top.
type Grid struct {
	Cols, Rows int
	cells      []Cell
}

// NewGrid creates an empty cols x rows grid.
func NewGrid(cols, rows int) *Grid {
	cols, rows = max(cols, 0), max(rows, 0)
	g := &Grid{Cols: cols, Rows: rows, cells: make([]Cell, cols*rows)}
	for i := range g.cells {
		g.cells[i] = Cell{Rune: ' '}
	}
	return g
}

// At returns the cell at (col, row). Out-of-range coordinates return a blank cell.
func (g *Grid) At(col, row int) Cell {
	if col < 0 || row < 0 || col >= g.Cols || row >= g.Rows {
		return Cell{Rune: ' '}
	}
	return g.cells[row*g.Cols+col]
}

func (g *Grid) set(col, row int, r rune, k Kind) {
	if col < 0 || row < 0 || col >= g.Cols || row >= g.Rows {
		return
	}
	g.cells[row*g.Cols+col] = Cell{Rune: r, Kind: k}
}

// Count returns how many cells hold k.
func (g *Grid) Count(k Kind) int {
	n := 0
	for _, c := range g.cells {
		if c.Kind == k {
			n++
		}
	}
	return n
}

// Lines renders the grid row by row. Consecutive cells of the same kind are
// passed to style together; a nil style returns the plain runes.
func (g *Grid) Lines(style func(Kind, string) string) []string {
	if style == nil {
		style = func(_ Kind, s string) string { return s }
	}

	lines := make([]string, g.Rows)
	var line, run strings.Builder
	for row := 0; row < g.Rows; row++ {
		line.Reset()
		run.Reset()
		kind := Blank
		for col := 0; col < g.Cols; col++ {
			c := g.At(col, row)
			if c.Kind != kind && run.Len() > 0 {
				line.WriteString(style(kind, run.String()))
				run.Reset()
			}
			kind = c.Kind
			run.WriteRune(c.Rune)
		}
		if run.Len() > 0 {
			line.WriteString(style(kind, run.String()))
		}
		lines[row] = line.String()
	}
	return lines
}

// Scene is everything drawn in the plot area.
type Scene struct {
	Viewport Viewport
	Points   []dataset.PointRecord
	// Line is the regression line, drawn between LineFrom and LineTo. Nil skips it.
	Line             *regression.Coefficients
	LineFrom, LineTo float64
	// Selected is the hovered record. Nil when nothing is hovered.
	Selected   *dataset.PointRecord
	MarkerSize float64
}

// Rasterize draws s onto a cols x rows grid: regression line first, then the
// scatter, then the selected marker on top.
func Rasterize(s Scene, cols, rows int) *Grid {
	g := NewGrid(cols, rows)
	if g.Cols == 0 || g.Rows == 0 {
		return g
	}

	if s.Line != nil {
		drawLine(g, s.Viewport, *s.Line, s.LineFrom, s.LineTo)
	}

	glyph := Glyph(s.MarkerSize)
	for _, p := range s.Points {
		if col, row, ok := s.Viewport.ToCell(p.Point(), g.Cols, g.Rows); ok {
			g.set(col, row, glyph, PointCell)
		}
	}

	if s.Selected != nil {
		if col, row, ok := s.Viewport.ToCell(s.Selected.Point(), g.Cols, g.Rows); ok {
			g.set(col, row, SelectedGlyph, SelectedCell)
		}
	}
	return g
}

// drawLine samples the line at every column center and joins consecutive
// samples with vertical strokes so steep lines stay connected.
func drawLine(g *Grid, v Viewport, c regression.Coefficients, from, to float64) {
	lo, hi := math.Min(from, to), math.Max(from, to)
	prev, havePrev := 0, false

	for col := 0; col < g.Cols; col++ {
		x := v.ToData(col, 0, g.Cols, g.Rows).X
		if x < lo || x > hi {
			havePrev = false
			continue
		}

		rowF := (v.Y.Max - c.At(x)) / v.Y.Span() * float64(g.Rows)
		if math.IsNaN(rowF) || math.IsInf(rowF, 0) {
			havePrev = false
			continue
		}
		// keep far off-screen samples bounded so the stroke loop stays short
		row := int(math.Floor(math.Max(-1, math.Min(float64(g.Rows), rowF))))

		glyph := '─'
		if havePrev {
			switch {
			case row < prev:
				glyph = '╱'
				for r := row + 1; r < prev; r++ {
					g.set(col, r, '│', LineCell)
				}
			case row > prev:
				glyph = '╲'
				for r := prev + 1; r < row; r++ {
					g.set(col, r, '│', LineCell)
				}
			}
		}
		g.set(col, row, glyph, LineCell)
		prev, havePrev = row, true
	}
}
