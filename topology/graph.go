// SPDX-License-Identifier: MIT

package topology

import (
	"fmt"
	"sort"

	"github.com/katalvlaran/linse/network"
)

// Edge is one switching device between two vertices.
type Edge struct {
	DeviceID int
	From, To int
}

// Graph is the vertex/edge view of one substation or transmission line.
type Graph struct {
	owner    network.Owner
	vertices []int
	edges    []Edge
	baseKV   map[int]float64
	// unordered node pair → devices joining the pair
	pairs map[[2]int][]*network.SwitchingDevice
}

// NewGraph builds the graph of owner from net.
// Errors: ErrNetworkNil, ErrEmptyOwner.
func NewGraph(net *network.Network, owner network.Owner) (*Graph, error) {
	if net == nil {
		return nil, ErrNetworkNil
	}
	nodes := net.NodesOf(owner)
	if len(nodes) == 0 {
		return nil, fmt.Errorf("topology: %s: %w", owner, ErrEmptyOwner)
	}
	g := &Graph{
		owner:  owner,
		baseKV: make(map[int]float64, len(nodes)),
		pairs:  make(map[[2]int][]*network.SwitchingDevice),
	}
	for _, n := range nodes {
		g.vertices = append(g.vertices, n.ID)
		g.baseKV[n.ID] = n.BaseKV
	}
	for _, d := range net.DevicesOf(owner) {
		g.edges = append(g.edges, Edge{DeviceID: d.ID, From: d.FromNodeID, To: d.ToNodeID})
		k := pair(d.FromNodeID, d.ToNodeID)
		g.pairs[k] = append(g.pairs[k], d)
	}

	return g, nil
}

// Owner returns the owner this graph was built for.
func (g *Graph) Owner() network.Owner { return g.owner }

// Vertices returns the node IDs ascending.
func (g *Graph) Vertices() []int { return append([]int(nil), g.vertices...) }

// Edges returns the device edges ascending by device ID.
func (g *Graph) Edges() []Edge { return append([]Edge(nil), g.edges...) }

// adjacencyList returns singleton rows with device adjacency.
func (g *Graph) adjacencyList() *VertexAdjacencyList {
	adj := make(map[int][]int, len(g.vertices))
	for _, e := range g.edges {
		adj[e.From] = append(adj[e.From], e.To)
		adj[e.To] = append(adj[e.To], e.From)
	}
	l := &VertexAdjacencyList{Rows: make([]VertexAdjacencyRow, 0, len(g.vertices))}
	for _, v := range g.vertices {
		ids := adj[v]
		sort.Ints(ids)
		l.Rows = append(l.Rows, VertexAdjacencyRow{Cluster: NewVertexCluster(v), Adjacent: dedupe(ids)})
	}

	return l
}

// closedBetween reports whether any device joining a member of c to node a is closed.
func (g *Graph) closedBetween(c VertexCluster, a int) bool {
	for _, m := range c.ids {
		for _, d := range g.pairs[pair(m, a)] {
			if d.IsClosed() {
				return true
			}
		}
	}

	return false
}

// Partition runs the fixed-point merge and returns the resulting clusters
// sorted by smallest member, plus the number of merges performed.
// Blueprint:
//
//	Stage 1 (Prepare): one singleton row per vertex.
//	Stage 2 (Iterate): scan (row, adjacent node) pairs; on a closed device,
//	                   merge the adjacent row into the current one and restart.
//	Stage 3 (Finalize): fixed point reached when a full scan merges nothing.
func (g *Graph) Partition() ([]VertexCluster, int) {
	// Stage 1: singleton clusters
	l := g.adjacencyList()

	// Stage 2: fixed-point iteration
	merges := 0
	for {
		merged := false
	scan:
		for i := range l.Rows {
			for _, a := range l.Rows[i].Adjacent {
				j := l.RowOf(a)
				if j < 0 || j == i {
					continue
				}
				if g.closedBetween(l.Rows[i].Cluster, a) {
					l.Merge(i, j)
					merges++
					merged = true
					break scan
				}
			}
		}
		// Stage 3: no closed adjacency left
		if !merged {
			break
		}
	}

	clusters := l.Clusters()
	sort.Slice(clusters, func(i, j int) bool { return clusters[i].Min() < clusters[j].Min() })

	return clusters, merges
}

// Resolve partitions the graph and wraps every cluster into an ObservedBus.
func (g *Graph) Resolve() []ObservedBus {
	clusters, _ := g.Partition()
	buses := make([]ObservedBus, len(clusters))
	for i, c := range clusters {
		buses[i] = ObservedBus{Owner: g.owner, Cluster: c, BaseKV: g.baseKV[c.Min()]}
	}

	return buses
}

// ResolveNetwork resolves every owner of net (substations, then lines) and
// returns all buses in that order.
func ResolveNetwork(net *network.Network) ([]ObservedBus, error) {
	if net == nil {
		return nil, ErrNetworkNil
	}
	var buses []ObservedBus
	for _, o := range net.Owners() {
		g, err := NewGraph(net, o)
		if err != nil {
			return nil, err
		}
		buses = append(buses, g.Resolve()...)
	}

	return buses, nil
}

func pair(a, b int) [2]int {
	if a > b {
		a, b = b, a
	}

	return [2]int{a, b}
}
