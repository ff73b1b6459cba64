// SPDX-License-Identifier: MIT

package bfs

import (
	"context"
	"errors"
	"fmt"
	"sort"
)

// Sentinel errors for BFS execution.
var (
	// ErrStartVertexNotFound is returned when the start ID is absent.
	ErrStartVertexNotFound = errors.New("bfs: start vertex not found")

	// ErrGraphNil is returned if a nil graph is passed.
	ErrGraphNil = errors.New("bfs: graph is nil")

	// ErrOptionViolation is returned when an invalid Option is supplied.
	ErrOptionViolation = errors.New("bfs: invalid option supplied")

	// ErrNeighbors is returned when fetching neighbors from the graph fails.
	ErrNeighbors = errors.New("bfs: neighbor iteration error")
)

// Graph is the read surface BFS walks.
type Graph interface {
	HasVertex(id int) bool
	NeighborIDs(id int) ([]int, error)
}

// Adjacency is an undirected simple graph over integer IDs.
// Parallel edges collapse into one neighbor entry; self-loops are ignored.
type Adjacency struct {
	nbrs map[int]map[int]struct{}
}

// NewAdjacency returns an empty adjacency.
func NewAdjacency() *Adjacency {
	return &Adjacency{nbrs: make(map[int]map[int]struct{})}
}

// AddVertex adds id without edges; adding an existing vertex is a no-op.
func (a *Adjacency) AddVertex(id int) {
	if _, ok := a.nbrs[id]; !ok {
		a.nbrs[id] = make(map[int]struct{})
	}
}

// AddEdge joins u and v, adding either vertex if absent.
func (a *Adjacency) AddEdge(u, v int) {
	a.AddVertex(u)
	a.AddVertex(v)
	if u == v {
		return
	}
	a.nbrs[u][v] = struct{}{}
	a.nbrs[v][u] = struct{}{}
}

// HasVertex reports whether id is a vertex.
func (a *Adjacency) HasVertex(id int) bool {
	_, ok := a.nbrs[id]
	return ok
}

// NeighborIDs returns the neighbors of id ascending.
func (a *Adjacency) NeighborIDs(id int) ([]int, error) {
	set, ok := a.nbrs[id]
	if !ok {
		return nil, fmt.Errorf("bfs: vertex %d: %w", id, ErrStartVertexNotFound)
	}
	out := make([]int, 0, len(set))
	for v := range set {
		out = append(out, v)
	}
	sort.Ints(out)

	return out, nil
}

// Vertices returns every vertex ascending.
func (a *Adjacency) Vertices() []int {
	out := make([]int, 0, len(a.nbrs))
	for v := range a.nbrs {
		out = append(out, v)
	}
	sort.Ints(out)

	return out
}

// Option configures BFS behavior via functional arguments.
// An invalid Option is recorded and surfaced as ErrOptionViolation when BFS
// is invoked.
type Option func(*Options)

// Options holds parameters and callbacks of one traversal.
type Options struct {
	// Ctx allows cancellation and deadlines.
	Ctx context.Context

	// OnEnqueue is called when a vertex is enqueued, with its depth.
	OnEnqueue func(id, depth int)

	// OnDequeue is called immediately before visiting a vertex.
	OnDequeue func(id, depth int)

	// OnVisit is called when visiting a vertex; an error aborts the search.
	OnVisit func(id, depth int) error

	// MaxDepth, if > 0, stops exploring beyond this depth; 0 means no limit.
	MaxDepth int

	// FilterNeighbor skips the edge curr→neighbor when it returns false.
	FilterNeighbor func(curr, neighbor int) bool

	err error
}

// DefaultOptions returns background context, no-op hooks, no depth limit and
// no filtering.
func DefaultOptions() Options {
	return Options{
		Ctx:            context.Background(),
		OnEnqueue:      func(int, int) {},
		OnDequeue:      func(int, int) {},
		OnVisit:        func(int, int) error { return nil },
		FilterNeighbor: func(_, _ int) bool { return true },
	}
}

// WithContext sets a custom context for cancellation.
func WithContext(ctx context.Context) Option {
	return func(o *Options) {
		if ctx != nil {
			o.Ctx = ctx
		}
	}
}

// WithOnEnqueue registers a callback to run on enqueue.
func WithOnEnqueue(fn func(id, depth int)) Option {
	return func(o *Options) {
		if fn != nil {
			o.OnEnqueue = fn
		}
	}
}

// WithOnDequeue registers a callback to run on dequeue.
func WithOnDequeue(fn func(id, depth int)) Option {
	return func(o *Options) {
		if fn != nil {
			o.OnDequeue = fn
		}
	}
}

// WithOnVisit registers a callback to run on visit; returning an error stops
// the search.
func WithOnVisit(fn func(id, depth int) error) Option {
	return func(o *Options) {
		if fn != nil {
			o.OnVisit = fn
		}
	}
}

// WithMaxDepth stops the search beyond depth d.
//
//	d > 0: limit to depth d
//	d == 0: no depth limit
//	d < 0: ErrOptionViolation
func WithMaxDepth(d int) Option {
	return func(o *Options) {
		if d < 0 {
			o.err = fmt.Errorf("%w: MaxDepth cannot be negative (%d)", ErrOptionViolation, d)
			return
		}
		o.MaxDepth = d
	}
}

// WithFilterNeighbor skips neighbors when fn returns false.
func WithFilterNeighbor(fn func(curr, neighbor int) bool) Option {
	return func(o *Options) {
		if fn != nil {
			o.FilterNeighbor = fn
		}
	}
}

func gatherOptions(opts []Option) (Options, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	return o, o.err
}

// Result holds the outcome of one BFS.
type Result struct {
	// Order is the visit sequence starting with the start vertex.
	Order []int
	// Depth maps each reached vertex to its hop distance.
	Depth map[int]int
	// Parent maps each reached vertex except the start to its predecessor.
	Parent map[int]int
}

// PathTo returns the vertices from the start to dest inclusive.
// Returns an error if dest was not reached.
func (r *Result) PathTo(dest int) ([]int, error) {
	if _, ok := r.Depth[dest]; !ok {
		return nil, fmt.Errorf("bfs: no path to %d", dest)
	}
	path := []int{}
	for cur := dest; ; {
		path = append(path, cur)
		prev, ok := r.Parent[cur]
		if !ok {
			break
		}
		cur = prev
	}
	// reverse to get start → dest
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}

	return path, nil
}
