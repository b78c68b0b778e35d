package centrality

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/golang/snappy"

	"github.com/dd0wney/cluso-centralities/pkg/dataset"
)

// Header is the first row of a centrality export.
var Header = []string{"id", "closeness", "betweenness"}

// WriteCSV writes records as a centrality export that dataset.Read accepts.
func WriteCSV(w io.Writer, records []dataset.PointRecord) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	row := make([]string, len(Header))
	for _, r := range records {
		row[0] = strconv.FormatInt(r.ID, 10)
		row[1] = strconv.FormatFloat(r.Y, 'g', -1, 64)
		row[2] = strconv.FormatFloat(r.X, 'g', -1, 64)
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write record %d: %w", r.ID, err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush centralities: %w", err)
	}
	return nil
}

// WriteFile writes records to path, creating parent directories. A path
// ending in dataset.SnappyExt is snappy-framed.
func WriteFile(path string, records []dataset.PointRecord) (err error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close %s: %w", path, cerr)
		}
	}()

	if !strings.HasSuffix(path, dataset.SnappyExt) {
		return WriteCSV(f, records)
	}

	sw := snappy.NewBufferedWriter(f)
	if err := WriteCSV(sw, records); err != nil {
		return err
	}
	if err := sw.Close(); err != nil {
		return fmt.Errorf("compress %s: %w", path, err)
	}
	return nil
}
