package chart

import "math"

// SelectedScale is how much larger the hovered point's marker is than the rest.
const SelectedScale = 4

// MarkerSize returns a marker size hint for n points on a w x h surface:
// sqrt(2·w·h / (n·π)), so that marker area shrinks as point density grows.
// It returns 0 when there are no points or the surface is empty.
func MarkerSize(w, h float64, n int) float64 {
	if n <= 0 || w <= 0 || h <= 0 {
		return 0
	}
	return math.Sqrt(2 * (w * h) / (float64(n) * math.Pi))
}

// Glyph picks the character used for a marker of the given size in cells.
func Glyph(size float64) rune {
	switch {
	case size >= 3:
		return '●'
	case size >= 1.5:
		return '•'
	default:
		return '·'
	}
}
