// SPDX-License-Identifier: MIT

package topology

// VertexAdjacencyRow is one row of a VertexAdjacencyList: a cluster and the
// IDs of the nodes adjacent to it through any switching device (excluding its
// own members).
type VertexAdjacencyRow struct {
	Cluster  VertexCluster
	Adjacent []int // sorted ascending
}

// VertexAdjacencyList is the working partition of the resolver.
type VertexAdjacencyList struct {
	Rows []VertexAdjacencyRow
}

// RowOf returns the index of the row whose cluster holds nodeID, or -1.
// Complexity: O(R·log n).
func (l *VertexAdjacencyList) RowOf(nodeID int) int {
	for i := range l.Rows {
		if l.Rows[i].Cluster.Contains(nodeID) {
			return i
		}
	}

	return -1
}

// Merge folds row j into row i and removes row j. Adjacency becomes the union
// of both rows minus the merged members.
func (l *VertexAdjacencyList) Merge(i, j int) {
	if i == j || i < 0 || j < 0 || i >= len(l.Rows) || j >= len(l.Rows) {
		return
	}
	dst := &l.Rows[i]
	src := l.Rows[j]
	dst.Cluster.Absorb(src.Cluster)

	adj := union(dst.Adjacent, src.Adjacent)
	kept := adj[:0]
	for _, id := range adj {
		if !dst.Cluster.Contains(id) {
			kept = append(kept, id)
		}
	}
	dst.Adjacent = kept

	l.Rows = append(l.Rows[:j], l.Rows[j+1:]...)
}

// Clusters returns the cluster of every row.
func (l *VertexAdjacencyList) Clusters() []VertexCluster {
	out := make([]VertexCluster, len(l.Rows))
	for i := range l.Rows {
		out[i] = l.Rows[i].Cluster
	}

	return out
}
