package centrality

import (
	"slices"

	"gonum.org/v1/gonum/graph"

	"github.com/dd0wney/cluso-centralities/pkg/dataset"
	"github.com/dd0wney/cluso-centralities/pkg/parallel"
)

type options struct {
	workers int
}

// Option configures a centrality computation.
type Option func(*options)

// WithWorkers sets how many goroutines share the per-source passes. Zero or
// less uses one per CPU.
func WithWorkers(n int) Option {
	return func(o *options) { o.workers = n }
}

func buildOptions(opts []Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// nodeIDs returns the ids of every node in g in ascending order, so that
// results do not depend on gonum's map iteration.
func nodeIDs(g graph.Graph) []int64 {
	nodes := graph.NodesOf(g.Nodes())
	ids := make([]int64, len(nodes))
	for i, n := range nodes {
		ids[i] = n.ID()
	}
	slices.Sort(ids)
	return ids
}

// successors returns the ids reachable from id by one edge.
func successors(g graph.Directed, id int64) []int64 {
	it := g.From(id)
	out := make([]int64, 0, it.Len())
	for it.Next() {
		out = append(out, it.Node().ID())
	}
	return out
}

// forEachChunk splits sources into contiguous chunks and runs fn on each in
// the worker pool. Chunk boundaries depend only on the worker count, so
// results merged in chunk order are reproducible.
func forEachChunk(ids []int64, workers int, fn func(chunk int, sources []int64)) (int, error) {
	pool := parallel.NewWorkerPool(workers)
	chunks := parallel.Chunks(len(ids), pool.Workers())
	for i, c := range chunks {
		pool.Submit(func() error {
			fn(i, ids[c[0]:c[1]])
			return nil
		})
	}
	return len(chunks), pool.Wait()
}

// brandesFrom runs the single-source stage of Brandes' algorithm and adds the
// dependencies of source to acc.
func brandesFrom(g graph.Directed, ids []int64, source int64, acc map[int64]float64) {
	stack := make([]int64, 0, len(ids))
	predecessors := make(map[int64][]int64, len(ids))
	sigma := make(map[int64]float64, len(ids))
	distance := make(map[int64]int, len(ids))
	for _, id := range ids {
		distance[id] = -1
	}
	sigma[source] = 1
	distance[source] = 0

	queue := []int64{source}
	for len(queue) > 0 {
		v := queue[0]
		queue = queue[1:]
		stack = append(stack, v)

		for _, w := range successors(g, v) {
			if distance[w] < 0 {
				queue = append(queue, w)
				distance[w] = distance[v] + 1
			}
			if distance[w] == distance[v]+1 {
				sigma[w] += sigma[v]
				predecessors[w] = append(predecessors[w], v)
			}
		}
	}

	// Back-propagation of pair dependencies.
	delta := make(map[int64]float64, len(stack))
	for i := len(stack) - 1; i >= 0; i-- {
		w := stack[i]
		for _, v := range predecessors[w] {
			delta[v] += (sigma[v] / sigma[w]) * (1 + delta[w])
		}
		if w != source {
			acc[w] += delta[w]
		}
	}
}

// Betweenness computes betweenness centrality for every node: how often a node
// lies on shortest paths between other nodes, normalised by 1/((n-1)(n-2)).
// Sources are split across a worker pool; each chunk accumulates its own
// partial sums which are merged in chunk order.
func Betweenness(g graph.Directed, opts ...Option) (map[int64]float64, error) {
	o := buildOptions(opts)
	ids := nodeIDs(g)

	partials := make([]map[int64]float64, len(ids))
	chunks, err := forEachChunk(ids, o.workers, func(chunk int, sources []int64) {
		acc := make(map[int64]float64, len(ids))
		for _, s := range sources {
			brandesFrom(g, ids, s, acc)
		}
		partials[chunk] = acc
	})
	if err != nil {
		return nil, err
	}

	betweenness := make(map[int64]float64, len(ids))
	for _, id := range ids {
		for _, p := range partials[:chunks] {
			betweenness[id] += p[id]
		}
	}

	if n := len(ids); n > 2 {
		norm := 1.0 / float64((n-1)*(n-2))
		for id := range betweenness {
			betweenness[id] *= norm
		}
	}
	return betweenness, nil
}

// closenessFrom is the number of nodes source reaches over the total distance
// to them, or 0 when it reaches nothing.
func closenessFrom(g graph.Directed, source int64) float64 {
	distance := map[int64]int{source: 0}
	queue := []int64{source}
	for len(queue) > 0 {
		v := queue[0]
		queue = queue[1:]
		for _, w := range successors(g, v) {
			if _, seen := distance[w]; !seen {
				distance[w] = distance[v] + 1
				queue = append(queue, w)
			}
		}
	}

	total, reachable := 0, 0
	for _, d := range distance {
		if d > 0 {
			total += d
			reachable++
		}
	}
	if total == 0 {
		return 0
	}
	return float64(reachable) / float64(total)
}

// Closeness computes closeness centrality for every node as the number of
// reachable nodes over the total distance to them. A node that reaches nothing
// scores 0.
func Closeness(g graph.Directed, opts ...Option) (map[int64]float64, error) {
	o := buildOptions(opts)
	ids := nodeIDs(g)

	scores := make([]float64, len(ids))
	index := make(map[int64]int, len(ids))
	for i, id := range ids {
		index[id] = i
	}

	if _, err := forEachChunk(ids, o.workers, func(_ int, sources []int64) {
		for _, s := range sources {
			scores[index[s]] = closenessFrom(g, s)
		}
	}); err != nil {
		return nil, err
	}

	closeness := make(map[int64]float64, len(ids))
	for i, id := range ids {
		closeness[id] = scores[i]
	}
	return closeness, nil
}

// Compute returns one record per node, in ascending id, with X set to
// betweenness and Y to closeness.
func Compute(g graph.Directed, opts ...Option) ([]dataset.PointRecord, error) {
	ids := nodeIDs(g)
	if len(ids) == 0 {
		return nil, ErrEmptyGraph
	}

	betweenness, err := Betweenness(g, opts...)
	if err != nil {
		return nil, err
	}
	closeness, err := Closeness(g, opts...)
	if err != nil {
		return nil, err
	}

	records := make([]dataset.PointRecord, len(ids))
	for i, id := range ids {
		records[i] = dataset.PointRecord{ID: id, X: betweenness[id], Y: closeness[id]}
	}
	return records, nil
}
