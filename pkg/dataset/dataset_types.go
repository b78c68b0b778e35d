package dataset

import (
	"errors"

	"github.com/dd0wney/cluso-centralities/pkg/logging"
)

const (
	// DefaultDir is the directory, relative to the working directory, that
	// centrality exports are read from.
	DefaultDir = "job_test"
	// DefaultFile is the export read when no file name is given.
	DefaultFile = "centralities.csv"

	// Column layout of a centrality export: id,closeness,betweenness
	colID          = 0
	colCloseness   = 1
	colBetweenness = 2
	minColumns     = 3
)

var (
	ErrFileUnreadable = errors.New("centrality file not found or unreadable")
	ErrMalformedRow   = errors.New("malformed centrality row")
	ErrDuplicateID    = errors.New("duplicate record id")
	ErrEmptyDataset   = errors.New("dataset is empty")
)

// Point is a position in data space: X is betweenness, Y is closeness.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// PointRecord is one node's centrality measurements.
type PointRecord struct {
	ID int64   `json:"id"`
	X  float64 `json:"betweenness"`
	Y  float64 `json:"closeness"`
}

// Point returns the record's position in data space.
func (r PointRecord) Point() Point {
	return Point{X: r.X, Y: r.Y}
}

// DuplicatePolicy decides what happens when an id appears on more than one row.
type DuplicatePolicy int

const (
	// KeepLast lets later rows overwrite earlier ones.
	KeepLast DuplicatePolicy = iota
	// RejectDuplicates fails the load with ErrDuplicateID.
	RejectDuplicates
)

// String returns the config spelling of the policy.
func (p DuplicatePolicy) String() string {
	switch p {
	case KeepLast:
		return "keep-last"
	case RejectDuplicates:
		return "reject"
	default:
		return "unknown"
	}
}

// ParseDuplicatePolicy converts the config spelling back to a policy.
func ParseDuplicatePolicy(s string) (DuplicatePolicy, bool) {
	switch s {
	case "", "keep-last":
		return KeepLast, true
	case "reject":
		return RejectDuplicates, true
	default:
		return KeepLast, false
	}
}

type options struct {
	lenient    bool
	duplicates DuplicatePolicy
	logger     logging.Logger
}

// Option configures a load.
type Option func(*options)

// WithLenient skips malformed rows instead of failing the load. Skipped rows
// are counted in Stats and logged at WARN.
func WithLenient() Option {
	return func(o *options) { o.lenient = true }
}

// WithStrict fails the load on the first malformed row. This is the default.
func WithStrict() Option {
	return func(o *options) { o.lenient = false }
}

// WithDuplicatePolicy sets how repeated ids are handled.
func WithDuplicatePolicy(p DuplicatePolicy) Option {
	return func(o *options) { o.duplicates = p }
}

// WithLogger sets the logger used for row-level warnings.
func WithLogger(l logging.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// Stats describes what happened while a dataset was parsed.
type Stats struct {
	Rows       int `json:"rows"`       // data rows read, header excluded
	Skipped    int `json:"skipped"`    // malformed rows dropped in lenient mode
	Duplicates int `json:"duplicates"` // rows whose id had already been seen
}
