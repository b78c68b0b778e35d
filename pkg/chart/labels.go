package chart

// Text shared by every rendering of the chart.
const (
	Title        = "Centralities relation"
	ScatterName  = "The relation between centralities"
	LineName     = "Linear regression line"
	SelectedName = "Current point"
	XAxisTitle   = "Betweenness centrality"
	YAxisTitle   = "Closeness centrality"

	// The regression line is drawn over this betweenness interval.
	LineFrom = 0.0
	LineTo   = 1.0
)
