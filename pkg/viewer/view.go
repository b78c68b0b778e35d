package viewer

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/dd0wney/cluso-centralities/pkg/chart"
)

func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	cols, rows := m.PlotSize()
	if cols == 0 {
		return errorStyle.Render("Terminal too small") + "\n"
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render(chart.Title))
	b.WriteString("\n")
	b.WriteString(axisTitleStyle.Render(chart.YAxisTitle))
	b.WriteString("\n")

	scene := chart.Scene{
		Viewport:   m.viewport,
		Points:     m.records,
		LineFrom:   chart.LineFrom,
		LineTo:     chart.LineTo,
		Selected:   m.selected,
		MarkerSize: m.marker,
	}
	if m.fitErr == nil {
		line := m.summary.Coefficients
		scene.Line = &line
	}

	plot := chart.Rasterize(scene, cols, rows).Lines(styleCell)
	for row, line := range plot {
		b.WriteString(axisStyle.Render(m.yLabel(row, rows)))
		b.WriteString(axisStyle.Render("│"))
		b.WriteString(line)
		b.WriteString("\n")
	}

	b.WriteString(axisStyle.Render(strings.Repeat(" ", gutterWidth) + "└" + strings.Repeat("─", cols)))
	b.WriteString("\n")
	b.WriteString(axisStyle.Render(m.xLabels(cols)))
	b.WriteString("\n")
	b.WriteString(axisTitleStyle.Render(center(chart.XAxisTitle, gutterWidth+1+cols)))
	b.WriteString("\n")

	b.WriteString(legend())
	b.WriteString("\n")
	b.WriteString(m.status())
	b.WriteString("\n")

	if m.tooltip != "" {
		b.WriteString(tooltipStyle.Render(m.tooltip))
	}
	b.WriteString("\n")

	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// yLabel labels the top, middle and bottom plot rows.
func (m Model) yLabel(row, rows int) string {
	var label string
	switch row {
	case 0:
		label = chart.FormatTick(m.viewport.Y.Max)
	case rows / 2:
		label = chart.FormatTick(m.viewport.Y.Center())
	case rows - 1:
		label = chart.FormatTick(m.viewport.Y.Min)
	}
	return fmt.Sprintf("%*s", gutterWidth, truncate(label, gutterWidth))
}

// xLabels places min, center and max under the left edge, middle and right
// edge of the plot.
func (m Model) xLabels(cols int) string {
	lo := chart.FormatTick(m.viewport.X.Min)
	mid := chart.FormatTick(m.viewport.X.Center())
	hi := chart.FormatTick(m.viewport.X.Max)

	line := []rune(strings.Repeat(" ", gutterWidth+1+cols))
	place := func(at int, s string) {
		at = max(0, min(at, len(line)-len(s)))
		copy(line[at:], []rune(s))
	}
	place(gutterWidth+1, lo)
	place(gutterWidth+1+cols/2-len(mid)/2, mid)
	place(gutterWidth+1+cols-len(hi), hi)
	return string(line)
}

func (m Model) status() string {
	count := fmt.Sprintf("N=%d", m.data.Count())
	if m.fitErr != nil {
		return statusStyle.Render(count+"  ") + errorStyle.Render("no regression line: "+m.fitErr.Error())
	}
	return statusStyle.Render(fmt.Sprintf("%s  %s  r=%.4f  R²=%.4f",
		count, m.summary.Coefficients, m.summary.Correlation, m.summary.RSquared))
}

func legend() string {
	return lipgloss.JoinHorizontal(lipgloss.Top,
		pointStyle.Render("● "), chart.ScatterName, "  ",
		lineStyle.Render("─ "), chart.LineName, "  ",
		selectedStyle.Render(string(chart.SelectedGlyph)+" "), chart.SelectedName,
	)
}

func center(s string, width int) string {
	pad := (width - len([]rune(s))) / 2
	if pad <= 0 {
		return s
	}
	return strings.Repeat(" ", pad) + s
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
