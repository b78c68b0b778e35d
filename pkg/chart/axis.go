package chart

import "strconv"

// Ticks returns n evenly spaced values across r, both ends included.
func Ticks(r Range, n int) []float64 {
	if n < 2 {
		return []float64{r.Min}
	}
	out := make([]float64, n)
	step := r.Span() / float64(n-1)
	for i := range out {
		out[i] = r.Min + float64(i)*step
	}
	out[n-1] = r.Max
	return out
}

// FormatTick prints an axis value compactly.
func FormatTick(v float64) string {
	if v == 0 {
		return "0"
	}
	return strconv.FormatFloat(v, 'g', 3, 64)
}
