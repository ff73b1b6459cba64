// SPDX-License-Identifier: MIT

package topology

import (
	"github.com/katalvlaran/linse/bfs"
	"github.com/katalvlaran/linse/network"
	"github.com/katalvlaran/linse/phasor"
)

// ObservedBus is one resolved bus: a cluster of nodes that share a voltage.
// Observation aggregates the member states; Estimate holds the per-unit
// voltage of the current cycle (one entry, or A/B/C in three-phase mode).
type ObservedBus struct {
	Owner       network.Owner
	Cluster     VertexCluster
	BaseKV      float64
	Observation network.ObservationState
	Estimate    []complex128
}

// NodeIDs returns the member node IDs.
func (b *ObservedBus) NodeIDs() []int { return b.Cluster.IDs() }

// Contains reports whether nodeID is a member.
func (b *ObservedBus) Contains(nodeID int) bool { return b.Cluster.Contains(nodeID) }

// NominalEstimate returns estimate i in line-to-neutral volts.
func (b *ObservedBus) NominalEstimate(i int) complex128 {
	if i < 0 || i >= len(b.Estimate) {
		return 0
	}

	return phasor.FromPerUnit(b.Estimate[i], phasor.VoltageBase(b.BaseKV))
}

// NodeIndex maps every member node ID to the index of its bus in buses.
func NodeIndex(buses []ObservedBus) map[int]int {
	idx := make(map[int]int)
	for i := range buses {
		for _, id := range buses[i].Cluster.ids {
			idx[id] = i
		}
	}

	return idx
}

// Islands groups bus indices into electrical islands connected through
// transformers and line segments. Islands are ordered by their first bus;
// bus indices inside an island ascend.
func Islands(net *network.Network, buses []ObservedBus) [][]int {
	idx := NodeIndex(buses)
	g := bfs.NewAdjacency()
	for i := range buses {
		g.AddVertex(i)
	}
	link := func(a, b int) {
		ia, okA := idx[a]
		ib, okB := idx[b]
		if okA && okB {
			g.AddEdge(ia, ib)
		}
	}
	for _, t := range net.Transformers() {
		link(t.FromNodeID, t.ToNodeID)
	}
	for _, s := range net.Segments() {
		link(s.FromNodeID, s.ToNodeID)
	}

	islands, _ := bfs.Components(g) // g is non-nil
	return islands
}
