// SPDX-License-Identifier: MIT
// Package network: read accessors.
//
// Determinism:
//   - Every slice-returning accessor orders entities by ascending ID.

package network

import "sort"

// Node returns the node with the given ID.
func (n *Network) Node(id int) (*Node, bool) {
	i, ok := n.nodeIdx[id]
	if !ok {
		return nil, false
	}

	return &n.nodes[i], true
}

// NodeIDs returns all node IDs ascending.
func (n *Network) NodeIDs() []int {
	ids := make([]int, 0, len(n.nodes))
	for i := range n.nodes {
		ids = append(ids, n.nodes[i].ID)
	}
	sort.Ints(ids)

	return ids
}

// Owners returns every node owner that has at least one node: substations
// ascending, then transmission lines ascending.
func (n *Network) Owners() []Owner {
	out := make([]Owner, len(n.owners))
	copy(out, n.owners)

	return out
}

// NodesOf returns the nodes owned by o, ascending by ID.
func (n *Network) NodesOf(o Owner) []*Node {
	list := n.ownerNodes[o]
	out := make([]*Node, len(list))
	for i, idx := range list {
		out[i] = &n.nodes[idx]
	}

	return out
}

// DevicesOf returns the switching devices owned by o, ascending by ID.
func (n *Network) DevicesOf(o Owner) []*SwitchingDevice {
	list := n.ownerDevices[o]
	out := make([]*SwitchingDevice, len(list))
	for i, idx := range list {
		out[i] = &n.devices[idx]
	}

	return out
}

// DevicesBetween returns every device joining nodes a and b, in either direction.
func (n *Network) DevicesBetween(a, b int) []*SwitchingDevice {
	list := n.pairDevices[pairKey(a, b)]
	out := make([]*SwitchingDevice, len(list))
	for i, idx := range list {
		out[i] = &n.devices[idx]
	}

	return out
}

// Device returns the switching device with the given ID.
func (n *Network) Device(id int) (*SwitchingDevice, bool) {
	i, ok := n.deviceIdx[id]
	if !ok {
		return nil, false
	}

	return &n.devices[i], true
}

// Devices returns all switching devices ascending by ID.
func (n *Network) Devices() []*SwitchingDevice {
	out := make([]*SwitchingDevice, len(n.devices))
	for i := range n.devices {
		out[i] = &n.devices[i]
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })

	return out
}

// Transformer returns the transformer with the given ID.
func (n *Network) Transformer(id int) (*Transformer, bool) {
	i, ok := n.transformerIdx[id]
	if !ok {
		return nil, false
	}

	return &n.transformers[i], true
}

// Transformers returns all transformers ascending by ID.
func (n *Network) Transformers() []*Transformer {
	out := make([]*Transformer, len(n.transformers))
	for i := range n.transformers {
		out[i] = &n.transformers[i]
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })

	return out
}

// Segment returns the line segment with the given ID.
func (n *Network) Segment(id int) (*LineSegment, bool) {
	i, ok := n.segmentIdx[id]
	if !ok {
		return nil, false
	}

	return &n.segments[i], true
}

// Segments returns all line segments ascending by ID.
func (n *Network) Segments() []*LineSegment {
	out := make([]*LineSegment, len(n.segments))
	for i := range n.segments {
		out[i] = &n.segments[i]
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })

	return out
}

// Shunt returns the shunt with the given ID.
func (n *Network) Shunt(id int) (*Shunt, bool) {
	i, ok := n.shuntIdx[id]
	if !ok {
		return nil, false
	}

	return &n.shunts[i], true
}

// Shunts returns all shunts ascending by ID.
func (n *Network) Shunts() []*Shunt {
	out := make([]*Shunt, len(n.shunts))
	for i := range n.shunts {
		out[i] = &n.shunts[i]
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })

	return out
}

// Substations returns all substations ascending by ID.
func (n *Network) Substations() []Substation {
	out := append([]Substation(nil), n.substations...)
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })

	return out
}

// Lines returns all transmission lines ascending by ID.
func (n *Network) Lines() []TransmissionLine {
	out := append([]TransmissionLine(nil), n.lines...)
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })

	return out
}

// Counts summarizes entity cardinalities.
type Counts struct {
	Companies, Divisions, Substations, Lines int
	Nodes, Breakers, Switches                int
	Transformers, Segments, Shunts           int
}

// Count returns the entity cardinalities of the network.
func (n *Network) Count() Counts {
	c := Counts{
		Companies:    len(n.companies),
		Divisions:    len(n.divisions),
		Substations:  len(n.substations),
		Lines:        len(n.lines),
		Nodes:        len(n.nodes),
		Transformers: len(n.transformers),
		Segments:     len(n.segments),
		Shunts:       len(n.shunts),
	}
	for i := range n.devices {
		if n.devices[i].Kind == Breaker {
			c.Breakers++
		} else {
			c.Switches++
		}
	}

	return c
}

// ResetObservation marks every node Unobserved.
func (n *Network) ResetObservation() {
	for i := range n.nodes {
		n.nodes[i].Observation = Unobserved
	}
}
