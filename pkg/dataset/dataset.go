package dataset

import (
	"maps"
	"math"
	"slices"
)

// Dataset maps node ids to their (betweenness, closeness) position. It is
// built once by Load or Read and never mutated afterwards, so it is safe to
// share between goroutines.
type Dataset struct {
	source  string
	points  map[int64]Point
	ids     []int64         // ascending; the iteration order for every query
	reverse map[Point]int64 // lowest id per position
	stats   Stats
}

func newDataset(source string, points map[int64]Point, stats Stats) *Dataset {
	ids := slices.Sorted(maps.Keys(points))

	reverse := make(map[Point]int64, len(points))
	for _, id := range ids {
		p := points[id]
		if _, seen := reverse[p]; !seen {
			reverse[p] = id
		}
	}

	return &Dataset{
		source:  source,
		points:  points,
		ids:     ids,
		reverse: reverse,
		stats:   stats,
	}
}

// FromRecords builds a dataset from records already in memory. Later records
// overwrite earlier ones with the same id.
func FromRecords(records []PointRecord) *Dataset {
	points := make(map[int64]Point, len(records))
	stats := Stats{Rows: len(records)}
	for _, r := range records {
		if _, dup := points[r.ID]; dup {
			stats.Duplicates++
		}
		points[r.ID] = r.Point()
	}
	return newDataset("", points, stats)
}

// Source returns the path the dataset was loaded from, if any.
func (d *Dataset) Source() string {
	return d.source
}

// Stats returns parse statistics for the load that produced the dataset.
func (d *Dataset) Stats() Stats {
	return d.stats
}

// Count returns the number of distinct ids.
func (d *Dataset) Count() int {
	return len(d.ids)
}

// Data returns every record in ascending id order.
func (d *Dataset) Data() []PointRecord {
	out := make([]PointRecord, len(d.ids))
	for i, id := range d.ids {
		p := d.points[id]
		out[i] = PointRecord{ID: id, X: p.X, Y: p.Y}
	}
	return out
}

// Point returns the position recorded for id.
func (d *Dataset) Point(id int64) (Point, bool) {
	p, ok := d.points[id]
	return p, ok
}

// IDOf returns the id whose position is exactly p. When several ids share a
// position the lowest one is returned.
func (d *Dataset) IDOf(p Point) (int64, bool) {
	id, ok := d.reverse[p]
	return id, ok
}

// Len and XY let a Dataset be used directly as a gonum plotter.XYer.
func (d *Dataset) Len() int {
	return len(d.ids)
}

// XY returns the i-th point in ascending id order.
func (d *Dataset) XY(i int) (x, y float64) {
	p := d.points[d.ids[i]]
	return p.X, p.Y
}

// Bounds returns the smallest box containing every point.
func (d *Dataset) Bounds() (min, max Point, err error) {
	if len(d.ids) == 0 {
		return Point{}, Point{}, ErrEmptyDataset
	}

	min = Point{X: math.Inf(1), Y: math.Inf(1)}
	max = Point{X: math.Inf(-1), Y: math.Inf(-1)}
	for _, id := range d.ids {
		p := d.points[id]
		min.X = math.Min(min.X, p.X)
		min.Y = math.Min(min.Y, p.Y)
		max.X = math.Max(max.X, p.X)
		max.Y = math.Max(max.Y, p.Y)
	}
	return min, max, nil
}

// Nearest returns the record closest to q by Euclidean distance. Points are
// scanned in ascending id order and only a strictly closer point replaces the
// current best, so ties go to the lowest id.
func (d *Dataset) Nearest(q Point) (PointRecord, error) {
	if len(d.ids) == 0 {
		return PointRecord{}, ErrEmptyDataset
	}

	bestID := d.ids[0]
	best := math.Inf(1)
	for _, id := range d.ids {
		p := d.points[id]
		dist := math.Hypot(p.X-q.X, p.Y-q.Y)
		if dist < best {
			best = dist
			bestID = id
		}
	}

	p := d.points[bestID]
	return PointRecord{ID: bestID, X: p.X, Y: p.Y}, nil
}
