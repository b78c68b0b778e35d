// Package centrality computes the per-node measurements the rest of the tool
// plots: betweenness and closeness over an edge list.
package centrality

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/golang/snappy"
	"gonum.org/v1/gonum/graph/simple"

	"github.com/dd0wney/cluso-centralities/pkg/dataset"
)

var (
	ErrMalformedEdge = errors.New("malformed edge row")
	ErrEmptyGraph    = errors.New("graph has no nodes")
)

// ReadEdgeListFile reads an edge list from path. Files ending in
// dataset.SnappyExt are decompressed.
func ReadEdgeListFile(path string, directed bool) (*simple.DirectedGraph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open edge list: %w", err)
	}
	defer f.Close()

	var r io.Reader = f
	if strings.HasSuffix(path, dataset.SnappyExt) {
		r = snappy.NewReader(f)
	}

	g, err := ReadEdgeList(r, directed)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return g, nil
}

// ReadEdgeList builds a graph from "from,to" rows after a header row. Node ids
// are integers and become the record ids of the generated export. An
// undirected list adds each edge in both directions. Self-loops and repeated
// edges are dropped since neither changes a shortest path. A row with a single
// id adds an isolated node.
func ReadEdgeList(r io.Reader, directed bool) (*simple.DirectedGraph, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	cr.ReuseRecord = true

	g := simple.NewDirectedGraph()
	addNode := func(id int64) {
		if g.Node(id) == nil {
			g.AddNode(simple.Node(id))
		}
	}
	addEdge := func(from, to int64) {
		if from != to && !g.HasEdgeFromTo(from, to) {
			g.SetEdge(simple.Edge{F: simple.Node(from), T: simple.Node(to)})
		}
	}

	header := true
	for {
		fields, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrMalformedEdge, err)
		}
		if header {
			header = false
			continue
		}
		line, _ := cr.FieldPos(0)

		ids, err := parseEdge(fields)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %w", ErrMalformedEdge, line, err)
		}
		for _, id := range ids {
			addNode(id)
		}
		if len(ids) < 2 {
			continue
		}

		addEdge(ids[0], ids[1])
		if !directed {
			addEdge(ids[1], ids[0])
		}
	}

	return g, nil
}

// parseEdge returns one id for an isolated node or two for an edge. Blank rows
// return nothing; columns after the second are ignored.
func parseEdge(fields []string) ([]int64, error) {
	var ids []int64
	for i, f := range fields {
		if i == 2 {
			break
		}
		f = strings.TrimSpace(f)
		if f == "" {
			continue
		}
		id, err := strconv.ParseInt(f, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("node id %q: %w", f, err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}
