// Package topology resolves substation (and transmission-line) switching
// graphs into observed buses.
//
// What:
//
//   - VertexCluster: a sorted set of node IDs treated as one electrical node.
//   - VertexAdjacencyList: rows of (cluster, adjacent node IDs); the working
//     structure of the resolver, a merge-find over node identifiers.
//   - Graph: vertices (nodes) and edges (switching devices) of one owner.
//     Resolve() starts from one singleton cluster per node and repeatedly
//     merges a cluster with an adjacent cluster when a closed device joins
//     them, dropping the absorbed row and restarting the scan, until no
//     closed adjacency is left (fixed point).
//   - ObservedBus: the resolved bus, carrying aggregate observability and the
//     per-cycle voltage estimate.
//   - Islands: electrical islands of observed buses joined by branches.
//
// Determinism:
//
//   - Union is associative and commutative, so the final partition does not
//     depend on scan order; buses are returned sorted by their smallest node ID.
//
// Complexity:
//
//   - Resolve: worst case O(E·V) merges-times-scan for V nodes and E devices;
//     substation graphs hold tens of nodes.
package topology
