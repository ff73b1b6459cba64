// Package bfs provides breadth-first search over an undirected adjacency of
// integer vertex IDs, returning hop distances, parent links and visit order,
// plus connected components built on the same traversal.
//
// What
//
//   - BFS explores vertices in non-decreasing hop count from a start vertex
//     and returns a Result holding:
//   - Order: visit sequence
//   - Depth: vertex → hops from start
//   - Parent: vertex → predecessor in the BFS tree
//   - Components partitions every vertex of an Adjacency into connected
//     components, each sorted ascending, ordered by their smallest vertex.
//   - Hooks at three stages: OnEnqueue, OnDequeue, OnVisit (may abort).
//   - WithFilterNeighbor skips individual edges; WithMaxDepth bounds hops.
//
// Determinism
//
//	Adjacency.NeighborIDs returns neighbors ascending and BFS enqueues them
//	in that order, so Order and Parent are reproducible.
//
// Complexity (V = vertices, E = edges)
//
//   - Time:   O(V + E) per BFS, O(V + E) for Components.
//   - Memory: O(V).
//
// Usage
//
//	g := bfs.NewAdjacency()
//	g.AddEdge(1, 2)
//	g.AddEdge(2, 3)
//	res, err := bfs.BFS(g, 1, bfs.WithMaxDepth(1))
//	comps, err := bfs.Components(g)
//
// Errors
//
//   - ErrGraphNil             nil graph.
//   - ErrStartVertexNotFound  start vertex absent.
//   - ErrOptionViolation      invalid Option (negative MaxDepth).
//   - ErrNeighbors            neighbor lookup failed.
//   - Wrapped hook errors from OnVisit; ctx errors on cancellation.
package bfs
