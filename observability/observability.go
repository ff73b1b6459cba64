// SPDX-License-Identifier: MIT

package observability

import (
	"github.com/katalvlaran/linse/network"
	"github.com/katalvlaran/linse/phasor"
	"github.com/katalvlaran/linse/topology"
)

// Summary counts the outcome of one check.
type Summary struct {
	Direct     int
	Indirect   int
	Unobserved int
	Pruned     int // buses removed
}

// Observed returns Direct + Indirect.
func (s Summary) Observed() int { return s.Direct + s.Indirect }

// Add accumulates o into s.
func (s *Summary) Add(o Summary) {
	s.Direct += o.Direct
	s.Indirect += o.Indirect
	s.Unobserved += o.Unobserved
	s.Pruned += o.Pruned
}

// Check classifies the nodes of buses (one owner) from the active voltage and
// current-flow groups, writes the node states into net and returns the buses
// that are observed. It returns nil when nothing in scope is observed.
func Check(net *network.Network, buses []topology.ObservedBus, voltages, flows []*phasor.Group) ([]topology.ObservedBus, Summary) {
	states := classify(buses, voltages, flows)
	kept, s := complete(buses, states)
	for id, st := range states {
		if n, ok := net.Node(id); ok {
			n.Observation = st
		}
	}

	return kept, s
}

// CheckPotential is Check over the groups expected in mode (enabled and
// bound), regardless of live quality. Node states in net are not modified.
func CheckPotential(buses []topology.ObservedBus, cat *phasor.Catalog, mode phasor.PhaseMode) ([]topology.ObservedBus, Summary) {
	states := classify(buses, expected(cat.Voltages, mode), expected(cat.CurrentFlows, mode))

	return complete(buses, states)
}

// CheckNetwork runs Check owner by owner over buses, which must be grouped
// by owner as produced by topology.ResolveNetwork.
func CheckNetwork(net *network.Network, buses []topology.ObservedBus, voltages, flows []*phasor.Group) ([]topology.ObservedBus, Summary) {
	var (
		kept  []topology.ObservedBus
		total Summary
	)
	for start := 0; start < len(buses); {
		end := start + 1
		for end < len(buses) && buses[end].Owner == buses[start].Owner {
			end++
		}
		scope, s := Check(net, buses[start:end], voltages, flows)
		kept = append(kept, scope...)
		total.Add(s)
		start = end
	}

	return kept, total
}

// classify runs stages 1 and 2 for the nodes of buses.
func classify(buses []topology.ObservedBus, voltages, flows []*phasor.Group) map[int]network.ObservationState {
	states := make(map[int]network.ObservationState)
	for i := range buses {
		for _, id := range buses[i].NodeIDs() {
			states[id] = network.Unobserved
		}
	}

	// Stage 1: direct
	for _, g := range voltages {
		if _, ok := states[g.NodeID]; ok {
			states[g.NodeID] = network.DirectlyObserved
		}
	}
	// Stage 2: indirect through current-flow "to" terminals
	for _, g := range flows {
		if st, ok := states[g.ToNodeID]; ok && st == network.Unobserved {
			states[g.ToNodeID] = network.IndirectlyObserved
		}
	}

	return states
}

// complete runs stage 3 and builds the summary.
func complete(buses []topology.ObservedBus, states map[int]network.ObservationState) ([]topology.ObservedBus, Summary) {
	var (
		s    Summary
		kept = make([]topology.ObservedBus, 0, len(buses))
	)
	for _, b := range buses {
		agg := network.Unobserved
		for _, id := range b.NodeIDs() {
			switch states[id] {
			case network.DirectlyObserved:
				agg = network.DirectlyObserved
			case network.IndirectlyObserved:
				if agg == network.Unobserved {
					agg = network.IndirectlyObserved
				}
			}
		}
		if agg == network.Unobserved {
			s.Unobserved += b.Cluster.Len()
			s.Pruned++
			continue
		}
		for _, id := range b.NodeIDs() {
			if states[id] == network.Unobserved {
				states[id] = network.IndirectlyObserved
			}
			if states[id] == network.DirectlyObserved {
				s.Direct++
			} else {
				s.Indirect++
			}
		}
		b.Observation = agg
		kept = append(kept, b)
	}
	if s.Observed() == 0 {
		return nil, s
	}

	return kept, s
}

func expected(groups []*phasor.Group, mode phasor.PhaseMode) []*phasor.Group {
	out := make([]*phasor.Group, 0, len(groups))
	for _, g := range groups {
		if g.Expected(mode) {
			out = append(out, g)
		}
	}

	return out
}

// Retain keeps the buses holding at least one node in referenced and drops
// the rest. Members of a dropped bus are reset to Unobserved in net and moved
// from the observed counts of s to its unobserved count; s.Pruned counts each
// dropped bus. It returns the kept buses and the number dropped.
func Retain(net *network.Network, buses []topology.ObservedBus, referenced map[int]bool, s *Summary) ([]topology.ObservedBus, int) {
	var (
		dropped int
		kept    = make([]topology.ObservedBus, 0, len(buses))
	)
	for _, b := range buses {
		ids := b.NodeIDs()
		hit := false
		for _, id := range ids {
			if referenced[id] {
				hit = true
				break
			}
		}
		if hit {
			kept = append(kept, b)
			continue
		}
		for _, id := range ids {
			n, ok := net.Node(id)
			if !ok {
				continue
			}
			switch n.Observation {
			case network.DirectlyObserved:
				s.Direct--
			case network.IndirectlyObserved:
				s.Indirect--
			default:
				continue
			}
			n.Observation = network.Unobserved
			s.Unobserved++
		}
		s.Pruned++
		dropped++
	}

	return kept, dropped
}
