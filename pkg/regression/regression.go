// Package regression fits an ordinary least-squares line through a set of
// (x, y) points.
package regression

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"
)

var (
	ErrInsufficientPoints = errors.New("regression needs at least two points")
	ErrDegenerate         = errors.New("regression undefined: all points share one x value")
)

// XYer is a source of points. It matches gonum's plotter.XYer, so a
// dataset.Dataset or a plotter.XYs can be passed directly.
type XYer interface {
	Len() int
	XY(i int) (x, y float64)
}

// Point is a single (x, y) observation.
type Point struct{ X, Y float64 }

// XYs is a slice of points implementing XYer.
type XYs []Point

func (p XYs) Len() int                { return len(p) }
func (p XYs) XY(i int) (x, y float64) { return p[i].X, p[i].Y }

// Coefficients describe the line y = Intercept + Slope*x.
type Coefficients struct {
	Intercept float64 `json:"intercept"` // b0
	Slope     float64 `json:"slope"`     // b1
}

// At evaluates the line at x.
func (c Coefficients) At(x float64) float64 {
	return c.Intercept + c.Slope*x
}

// Segment returns the two endpoints of the line between x0 and x1.
func (c Coefficients) Segment(x0, x1 float64) (p0, p1 [2]float64) {
	return [2]float64{x0, c.At(x0)}, [2]float64{x1, c.At(x1)}
}

// String formats the line as an equation.
func (c Coefficients) String() string {
	sign := "+"
	slope := c.Slope
	if slope < 0 {
		sign = "-"
		slope = -slope
	}
	return fmt.Sprintf("y = %.6g %s %.6gx", c.Intercept, sign, slope)
}

// Compute fits the least-squares line through data. It makes one pass for
// the means and a second for Sxy and Sxx; b1 = Sxy/Sxx and b0 = ȳ - b1·x̄.
func Compute(data XYer) (Coefficients, error) {
	n := data.Len()
	if n < 2 {
		return Coefficients{}, fmt.Errorf("%w: got %d", ErrInsufficientPoints, n)
	}

	// Rounding in the mean can leave Sxx slightly above zero when every x is
	// equal, so constant x is detected directly.
	x0, _ := data.XY(0)
	varies := false
	var xmean, ymean float64
	for i := 0; i < n; i++ {
		x, y := data.XY(i)
		xmean += x
		ymean += y
		if x != x0 {
			varies = true
		}
	}
	if !varies {
		return Coefficients{}, ErrDegenerate
	}
	xmean /= float64(n)
	ymean /= float64(n)

	var sxy, sxx float64
	for i := 0; i < n; i++ {
		x, y := data.XY(i)
		dx := x - xmean
		sxy += dx * (y - ymean)
		sxx += dx * dx
	}

	if sxx == 0 {
		return Coefficients{}, ErrDegenerate
	}

	b1 := sxy / sxx
	b0 := ymean - b1*xmean
	if math.IsNaN(b1) || math.IsInf(b1, 0) || math.IsNaN(b0) || math.IsInf(b0, 0) {
		return Coefficients{}, fmt.Errorf("%w: non-finite coefficients", ErrDegenerate)
	}

	return Coefficients{Intercept: b0, Slope: b1}, nil
}

// RSS returns the residual sum of squares of c over data.
func RSS(data XYer, c Coefficients) float64 {
	var rss float64
	for i := 0; i < data.Len(); i++ {
		x, y := data.XY(i)
		r := y - c.At(x)
		rss += r * r
	}
	return rss
}

// Summary is a fitted line plus goodness-of-fit measures.
type Summary struct {
	Coefficients
	N           int     `json:"n"`
	Correlation float64 `json:"r"`
	RSquared    float64 `json:"r_squared"`
	RSS         float64 `json:"rss"`
}

// Summarize fits data and reports Pearson's r and R². When every y is equal
// the correlation is undefined and both are reported as 0.
func Summarize(data XYer) (Summary, error) {
	c, err := Compute(data)
	if err != nil {
		return Summary{}, err
	}

	n := data.Len()
	xs := make([]float64, n)
	ys := make([]float64, n)
	for i := 0; i < n; i++ {
		xs[i], ys[i] = data.XY(i)
	}

	s := Summary{
		Coefficients: c,
		N:            n,
		RSS:          RSS(data, c),
	}

	if stat.Variance(ys, nil) > 0 {
		s.Correlation = stat.Correlation(xs, ys, nil)
		s.RSquared = stat.RSquared(xs, ys, nil, c.Intercept, c.Slope)
	}
	return s, nil
}
