package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/golang/snappy"

	"github.com/dd0wney/cluso-centralities/pkg/logging"
)

// SnappyExt marks a snappy-framed centrality export.
const SnappyExt = ".sz"

// ResolvePath joins dir and name the way centrality exports are laid out.
// Empty arguments fall back to DefaultDir and DefaultFile. An absolute name is
// returned unchanged.
func ResolvePath(dir, name string) string {
	if name == "" {
		name = DefaultFile
	}
	if filepath.IsAbs(name) {
		return name
	}
	if dir == "" {
		dir = DefaultDir
	}
	return filepath.Join(dir, name)
}

// Load reads a centrality export from path. A path that cannot be opened
// yields an error wrapping ErrFileUnreadable and no dataset.
func Load(path string, opts ...Option) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrFileUnreadable, path, err)
	}
	defer f.Close()

	var r io.Reader = f
	if strings.HasSuffix(path, SnappyExt) {
		r = snappy.NewReader(f)
	}

	ds, err := read(path, r, opts...)
	if err != nil {
		return nil, err
	}
	return ds, nil
}

// Read parses a centrality export from r.
func Read(r io.Reader, opts ...Option) (*Dataset, error) {
	return read("", r, opts...)
}

func read(source string, r io.Reader, opts ...Option) (*Dataset, error) {
	o := options{duplicates: KeepLast, logger: logging.NewNopLogger()}
	for _, opt := range opts {
		opt(&o)
	}
	logger := o.logger.With(logging.Component("dataset"))
	if source != "" {
		logger = logger.With(logging.Path(source))
	}

	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	cr.LazyQuotes = true
	cr.ReuseRecord = true

	points := make(map[int64]Point)
	var stats Stats

	header := true
	for {
		fields, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var perr *csv.ParseError
			if errors.As(err, &perr) {
				if !o.lenient {
					return nil, fmt.Errorf("%w: line %d: %w", ErrMalformedRow, perr.Line, err)
				}
				if header {
					header = false
					continue
				}
				stats.Rows++
				stats.Skipped++
				logger.Warn("skipping unparsable row", logging.Line(perr.Line), logging.Error(err))
				continue
			}
			if source != "" {
				return nil, fmt.Errorf("%w: %s: %w", ErrFileUnreadable, source, err)
			}
			return nil, fmt.Errorf("%w: %w", ErrFileUnreadable, err)
		}

		if header {
			header = false
			continue
		}

		if blank(fields) {
			continue
		}

		line, _ := cr.FieldPos(0)
		stats.Rows++

		rec, err := parseRow(fields)
		if err != nil {
			if !o.lenient {
				return nil, fmt.Errorf("%w: line %d: %w", ErrMalformedRow, line, err)
			}
			stats.Skipped++
			logger.Warn("skipping malformed row", logging.Line(line), logging.Error(err))
			continue
		}

		if _, dup := points[rec.ID]; dup {
			if o.duplicates == RejectDuplicates {
				return nil, fmt.Errorf("%w: %d on line %d", ErrDuplicateID, rec.ID, line)
			}
			stats.Duplicates++
			logger.Warn("duplicate id overwrites earlier row", logging.RecordID(rec.ID), logging.Line(line))
		}
		points[rec.ID] = rec.Point()
	}

	logger.Debug("parsed centrality rows",
		logging.Count(len(points)),
		logging.Int("rows", stats.Rows),
		logging.Int("skipped", stats.Skipped),
		logging.Int("duplicates", stats.Duplicates),
	)

	return newDataset(source, points, stats), nil
}

func blank(fields []string) bool {
	for _, f := range fields {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}

func parseRow(fields []string) (PointRecord, error) {
	if len(fields) < minColumns {
		return PointRecord{}, fmt.Errorf("expected at least %d columns, got %d", minColumns, len(fields))
	}

	id, err := strconv.ParseInt(strings.TrimSpace(fields[colID]), 10, 64)
	if err != nil {
		return PointRecord{}, fmt.Errorf("id %q: %w", fields[colID], err)
	}
	y, err := parseMeasure("closeness", fields[colCloseness])
	if err != nil {
		return PointRecord{}, err
	}
	x, err := parseMeasure("betweenness", fields[colBetweenness])
	if err != nil {
		return PointRecord{}, err
	}

	return PointRecord{ID: id, X: x, Y: y}, nil
}

func parseMeasure(name, field string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
	if err != nil {
		return 0, fmt.Errorf("%s %q: %w", name, field, err)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%s %q: not a finite number", name, field)
	}
	return v, nil
}
