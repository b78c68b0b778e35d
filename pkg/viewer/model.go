// Package viewer is the interactive terminal front end: a bubbletea model
// that plots a centrality dataset with its regression line and answers
// resize, pointer and key events through a single Update dispatch.
package viewer

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/dd0wney/cluso-centralities/pkg/chart"
	"github.com/dd0wney/cluso-centralities/pkg/dataset"
	"github.com/dd0wney/cluso-centralities/pkg/logging"
	"github.com/dd0wney/cluso-centralities/pkg/metrics"
	"github.com/dd0wney/cluso-centralities/pkg/regression"
)

const (
	// Screen chrome around the plot area.
	gutterWidth = 9 // y-axis labels
	headerRows  = 2 // title, y-axis title
	footerRows  = 7 // x-axis line, x labels, x title, legend, status, tooltip, help

	minPlotCols = 10
	minPlotRows = 3
)

// HoverMsg reports the pointer at a position in data space.
type HoverMsg struct {
	Point dataset.Point
}

// LeaveMsg reports that the pointer left the plot area.
type LeaveMsg struct{}

// Options configures a Model.
type Options struct {
	Dataset  *dataset.Dataset
	Viewport chart.Viewport
	Logger   logging.Logger
	// Metrics is optional.
	Metrics *metrics.Registry
}

// Model is the bubbletea model for the centrality chart.
type Model struct {
	data    *dataset.Dataset
	records []dataset.PointRecord
	summary regression.Summary
	fitErr  error

	viewport chart.Viewport
	width    int
	height   int
	marker   float64

	selected *dataset.PointRecord
	tooltip  string

	help    help.Model
	keys    keyMap
	logger  logging.Logger
	metrics *metrics.Registry
}

// New builds the model and fits the regression line once; the dataset never
// changes while the model lives.
func New(opts Options) Model {
	logger := opts.Logger
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	logger = logger.With(logging.Component("viewer"))

	m := Model{
		data:     opts.Dataset,
		records:  opts.Dataset.Data(),
		viewport: opts.Viewport,
		help:     help.New(),
		keys:     keys,
		logger:   logger,
		metrics:  opts.Metrics,
	}

	m.summary, m.fitErr = regression.Summarize(opts.Dataset)
	if m.fitErr != nil {
		logger.Warn("regression line unavailable", logging.Error(m.fitErr))
	}
	if m.metrics != nil {
		m.metrics.RecordFit(m.summary, m.fitErr)
	}
	return m
}

func (m Model) Init() tea.Cmd {
	return nil
}

// Update is the single dispatch point for every event the viewer handles.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.record("resize")
		m.resize(msg.Width, msg.Height)

	case tea.MouseMsg:
		return m.mouse(msg)

	case HoverMsg:
		m.record("hover")
		m.hover(msg.Point)

	case LeaveMsg:
		m.record("leave")
		m.clearSelection()

	case tea.KeyMsg:
		m.record("key")
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.ZoomIn):
			m.viewport = m.viewport.ZoomIn()
		case key.Matches(msg, m.keys.ZoomOut):
			m.viewport = m.viewport.ZoomOut()
		case key.Matches(msg, m.keys.Up):
			m.scroll(0, 1)
		case key.Matches(msg, m.keys.Down):
			m.scroll(0, -1)
		case key.Matches(msg, m.keys.Left):
			m.scroll(-1, 0)
		case key.Matches(msg, m.keys.Right):
			m.scroll(1, 0)
		case key.Matches(msg, m.keys.Reset):
			m.viewport = m.viewport.Reset()
		case key.Matches(msg, m.keys.Fit):
			m.fit()
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
		}
	}

	return m, nil
}

func (m Model) mouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	switch msg.Button {
	case tea.MouseButtonWheelUp, tea.MouseButtonWheelDown:
		m.record("wheel")
		up := msg.Button == tea.MouseButtonWheelUp
		switch {
		case msg.Ctrl && up:
			m.viewport = m.viewport.Zoom(chart.WheelZoomIn)
		case msg.Ctrl:
			m.viewport = m.viewport.Zoom(chart.WheelZoomOut)
		case up:
			m.scroll(0, 1)
		default:
			m.scroll(0, -1)
		}
		return m, nil
	}

	if msg.Action != tea.MouseActionMotion && msg.Action != tea.MouseActionPress {
		return m, nil
	}

	col, row, ok := m.plotCell(msg.X, msg.Y)
	if !ok {
		return m.Update(LeaveMsg{})
	}
	cols, rows := m.PlotSize()
	return m.Update(HoverMsg{Point: m.viewport.ToData(col, row, cols, rows)})
}

func (m *Model) resize(width, height int) {
	m.width, m.height = width, height
	m.help.Width = width

	cols, rows := m.PlotSize()
	m.marker = chart.MarkerSize(float64(cols), float64(rows), m.data.Count())
	if m.metrics != nil {
		m.metrics.SetMarkerSize(m.marker)
	}
	m.logger.Debug("viewport resized",
		logging.Int("cols", cols),
		logging.Int("rows", rows),
		logging.Float64("marker_size", m.marker),
	)
}

func (m *Model) hover(p dataset.Point) {
	rec, err := m.data.Nearest(p)
	if err != nil {
		if !errors.Is(err, dataset.ErrEmptyDataset) {
			m.logger.Error("nearest point lookup failed", logging.Error(err))
		}
		m.clearSelection()
		return
	}
	if m.metrics != nil {
		m.metrics.RecordHover()
	}

	m.selected = &rec
	m.tooltip = fmt.Sprintf("ID: %d  %g %g", rec.ID, rec.X, rec.Y)
	m.logger.Debug("hovered point", logging.RecordID(rec.ID))
}

func (m *Model) clearSelection() {
	m.selected = nil
	m.tooltip = ""
}

func (m *Model) scroll(dc, dr int) {
	cols, rows := m.PlotSize()
	m.viewport = m.viewport.Scroll(dc, dr, cols, rows)
}

func (m *Model) fit() {
	lo, hi, err := m.data.Bounds()
	if err != nil {
		return
	}
	m.viewport = m.viewport.Fit(lo, hi, 0.05)
}

func (m *Model) record(event string) {
	if m.metrics != nil {
		m.metrics.RecordEvent(event)
	}
}

// PlotSize returns the plot area in cells, or zeros when the terminal is too
// small to draw a chart.
func (m Model) PlotSize() (cols, rows int) {
	cols = m.width - gutterWidth - 1
	rows = m.height - headerRows - footerRows
	if cols < minPlotCols || rows < minPlotRows {
		return 0, 0
	}
	return cols, rows
}

// plotCell converts a screen position to a plot-area cell.
func (m Model) plotCell(x, y int) (col, row int, ok bool) {
	cols, rows := m.PlotSize()
	col = x - gutterWidth - 1
	row = y - headerRows
	if cols == 0 || col < 0 || row < 0 || col >= cols || row >= rows {
		return 0, 0, false
	}
	return col, row, true
}

// Viewport returns the visible data window.
func (m Model) Viewport() chart.Viewport {
	return m.viewport
}

// Selected returns the hovered record, or nil.
func (m Model) Selected() *dataset.PointRecord {
	return m.selected
}

// Tooltip returns the text shown for the hovered record.
func (m Model) Tooltip() string {
	return m.tooltip
}

// MarkerSize returns the current marker size hint in cells.
func (m Model) MarkerSize() float64 {
	return m.marker
}

// Fit returns the regression summary, or the reason there is none.
func (m Model) Fit() (regression.Summary, error) {
	return m.summary, m.fitErr
}
