// SPDX-License-Identifier: MIT

// Package selection filters the measurement catalog down to the groups the
// estimator may use in the current cycle.
//
// The filter runs in two stages. Active* applies the inclusion predicate of
// the configured phase mode (user enable, status-word quality, key validity)
// and seeds observability analysis. Included* runs after topology resolution
// and observability and further requires every referenced node to sit on a
// surviving bus; current flows additionally require the measured-from node
// to be observed.
package selection

import (
	"github.com/katalvlaran/linse/network"
	"github.com/katalvlaran/linse/phasor"
	"github.com/katalvlaran/linse/topology"
)

// Selection is one stage of the filter, groups kept in catalog order.
type Selection struct {
	Voltages          []*phasor.Group
	CurrentFlows      []*phasor.Group
	CurrentInjections []*phasor.Group
}

// Len returns the number of measurement groups.
func (s Selection) Len() int {
	return len(s.Voltages) + len(s.CurrentFlows) + len(s.CurrentInjections)
}

// Contains reports whether g is part of the selection.
func (s Selection) Contains(g *phasor.Group) bool {
	for _, list := range [][]*phasor.Group{s.Voltages, s.CurrentFlows, s.CurrentInjections} {
		for _, x := range list {
			if x == g {
				return true
			}
		}
	}

	return false
}

// Nodes returns the node IDs the selection's rows reference: voltage and
// injection nodes, and both terminals of every current flow.
func (s Selection) Nodes() map[int]bool {
	nodes := make(map[int]bool, s.Len()+len(s.CurrentFlows))
	for _, g := range s.Voltages {
		nodes[g.NodeID] = true
	}
	for _, g := range s.CurrentFlows {
		nodes[g.NodeID] = true
		nodes[g.ToNodeID] = true
	}
	for _, g := range s.CurrentInjections {
		nodes[g.NodeID] = true
	}

	return nodes
}

// Selector applies the filter for one phase mode.
type Selector struct {
	Mode phasor.PhaseMode
}

// ActiveVoltages returns the voltage groups whose inclusion predicate holds.
func (s Selector) ActiveVoltages(groups []*phasor.Group) []*phasor.Group {
	return s.active(groups)
}

// ActiveCurrentFlows returns the current-flow groups whose inclusion predicate holds.
func (s Selector) ActiveCurrentFlows(groups []*phasor.Group) []*phasor.Group {
	return s.active(groups)
}

// ActiveCurrentInjections returns the injection groups whose inclusion predicate holds.
func (s Selector) ActiveCurrentInjections(groups []*phasor.Group) []*phasor.Group {
	return s.active(groups)
}

// IncludedVoltages keeps active voltages whose node sits on a bus in index.
func (s Selector) IncludedVoltages(active []*phasor.Group, index map[int]int) []*phasor.Group {
	out := make([]*phasor.Group, 0, len(active))
	for _, g := range active {
		if _, ok := index[g.NodeID]; ok {
			out = append(out, g)
		}
	}

	return out
}

// IncludedCurrentFlows keeps active current flows whose measured-from node is
// observed in net and whose two terminals both sit on buses in index.
func (s Selector) IncludedCurrentFlows(net *network.Network, active []*phasor.Group, index map[int]int) []*phasor.Group {
	out := make([]*phasor.Group, 0, len(active))
	for _, g := range active {
		from, ok := net.Node(g.NodeID)
		if !ok || !from.IsObserved() {
			continue
		}
		if _, ok = index[g.NodeID]; !ok {
			continue
		}
		if _, ok = index[g.ToNodeID]; !ok {
			continue
		}
		out = append(out, g)
	}

	return out
}

// IncludedCurrentInjections keeps active injections whose node is observed
// and sits on a bus in index.
func (s Selector) IncludedCurrentInjections(net *network.Network, active []*phasor.Group, index map[int]int) []*phasor.Group {
	out := make([]*phasor.Group, 0, len(active))
	for _, g := range active {
		n, ok := net.Node(g.NodeID)
		if !ok || !n.IsObserved() {
			continue
		}
		if _, ok = index[g.NodeID]; ok {
			out = append(out, g)
		}
	}

	return out
}

// Active runs stage one over the whole catalog.
func (s Selector) Active(cat *phasor.Catalog) Selection {
	return Selection{
		Voltages:          s.ActiveVoltages(cat.Voltages),
		CurrentFlows:      s.ActiveCurrentFlows(cat.CurrentFlows),
		CurrentInjections: s.ActiveCurrentInjections(cat.CurrentInjections),
	}
}

// Included runs stage two over an active selection against the surviving buses.
func (s Selector) Included(net *network.Network, active Selection, buses []topology.ObservedBus) Selection {
	index := topology.NodeIndex(buses)

	return Selection{
		Voltages:          s.IncludedVoltages(active.Voltages, index),
		CurrentFlows:      s.IncludedCurrentFlows(net, active.CurrentFlows, index),
		CurrentInjections: s.IncludedCurrentInjections(net, active.CurrentInjections, index),
	}
}

// Select returns both stages. Observation states in net must already reflect
// the buses (see observability.Check).
func (s Selector) Select(net *network.Network, cat *phasor.Catalog, buses []topology.ObservedBus) (active, included Selection) {
	active = s.Active(cat)

	return active, s.Included(net, active, buses)
}

func (s Selector) active(groups []*phasor.Group) []*phasor.Group {
	out := make([]*phasor.Group, 0, len(groups))
	for _, g := range groups {
		if g.Included(s.Mode) {
			out = append(out, g)
		}
	}

	return out
}
