package viewer

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/dd0wney/cluso-centralities/pkg/chart"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF00FF"))

	axisStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888"))

	axisTitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#00FFFF"))

	pointStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#00AFFF"))

	lineStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFAF00"))

	selectedStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF0000"))

	tooltipStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color("#5F00AF")).
			Padding(0, 1)

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#00FF00"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF0000")).
			Bold(true)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888"))
)

func styleCell(k chart.Kind, s string) string {
	switch k {
	case chart.PointCell:
		return pointStyle.Render(s)
	case chart.LineCell:
		return lineStyle.Render(s)
	case chart.SelectedCell:
		return selectedStyle.Render(s)
	default:
		return s
	}
}
