// SPDX-License-Identifier: MIT
// Package network: the entity arena and its one-time link-resolution pass.

package network

import (
	"fmt"
	"sort"

	"github.com/go-playground/validator"
)

// validate is shared; validator caches struct metadata internally.
var validate = validator.New()

// Description is a fully formed topology as supplied by an importer.
// Only IDs cross-link entities.
type Description struct {
	Companies     []Company
	Divisions     []Division
	Substations   []Substation
	Lines         []TransmissionLine
	VoltageLevels []VoltageLevel
	Nodes         []Node
	Devices       []SwitchingDevice
	Transformers  []Transformer
	Segments      []LineSegment
	Shunts        []Shunt
}

// Network is the linked arena. Entities are stored by value; accessors return
// pointers into the arena so cycle-local state (observation, device actual
// state, tap position) is mutated in place.
type Network struct {
	companies     []Company
	divisions     []Division
	substations   []Substation
	lines         []TransmissionLine
	voltageLevels []VoltageLevel
	nodes         []Node
	devices       []SwitchingDevice
	transformers  []Transformer
	segments      []LineSegment
	shunts        []Shunt

	// id → index
	substationIdx  map[int]int
	lineIdx        map[int]int
	nodeIdx        map[int]int
	deviceIdx      map[int]int
	transformerIdx map[int]int
	segmentIdx     map[int]int
	shuntIdx       map[int]int

	// owner → member indices, sorted by entity ID
	ownerNodes   map[Owner][]int
	ownerDevices map[Owner][]int
	// unordered node pair → device indices
	pairDevices map[[2]int][]int
	owners      []Owner
}

// New copies desc into an arena and resolves all cross references.
// Blueprint:
//
//	Stage 1 (Validate): struct tags on every entity.
//	Stage 2 (Index): id→index maps, rejecting duplicates.
//	Stage 3 (Link): owners, voltage levels, device/branch/shunt endpoints.
//	Stage 4 (Group): per-owner node and device lists, node-pair device lists.
func New(desc Description) (*Network, error) {
	// Stage 1: field-level validation
	if err := validateAll(desc); err != nil {
		return nil, err
	}

	n := &Network{
		companies:     append([]Company(nil), desc.Companies...),
		divisions:     append([]Division(nil), desc.Divisions...),
		substations:   append([]Substation(nil), desc.Substations...),
		lines:         append([]TransmissionLine(nil), desc.Lines...),
		voltageLevels: append([]VoltageLevel(nil), desc.VoltageLevels...),
		nodes:         append([]Node(nil), desc.Nodes...),
		devices:       append([]SwitchingDevice(nil), desc.Devices...),
		transformers:  append([]Transformer(nil), desc.Transformers...),
		segments:      append([]LineSegment(nil), desc.Segments...),
		shunts:        append([]Shunt(nil), desc.Shunts...),
		ownerNodes:    make(map[Owner][]int),
		ownerDevices:  make(map[Owner][]int),
		pairDevices:   make(map[[2]int][]int),
	}

	// Stage 2: indices
	var err error
	companyIdx, err := indexBy("company", len(n.companies), func(i int) int { return n.companies[i].ID })
	if err != nil {
		return nil, err
	}
	divisionIdx, err := indexBy("division", len(n.divisions), func(i int) int { return n.divisions[i].ID })
	if err != nil {
		return nil, err
	}
	levelIdx, err := indexBy("voltage level", len(n.voltageLevels), func(i int) int { return n.voltageLevels[i].ID })
	if err != nil {
		return nil, err
	}
	if n.substationIdx, err = indexBy("substation", len(n.substations), func(i int) int { return n.substations[i].ID }); err != nil {
		return nil, err
	}
	if n.lineIdx, err = indexBy("line", len(n.lines), func(i int) int { return n.lines[i].ID }); err != nil {
		return nil, err
	}
	if n.nodeIdx, err = indexBy("node", len(n.nodes), func(i int) int { return n.nodes[i].ID }); err != nil {
		return nil, err
	}
	if n.deviceIdx, err = indexBy("device", len(n.devices), func(i int) int { return n.devices[i].ID }); err != nil {
		return nil, err
	}
	if n.transformerIdx, err = indexBy("transformer", len(n.transformers), func(i int) int { return n.transformers[i].ID }); err != nil {
		return nil, err
	}
	if n.segmentIdx, err = indexBy("segment", len(n.segments), func(i int) int { return n.segments[i].ID }); err != nil {
		return nil, err
	}
	if n.shuntIdx, err = indexBy("shunt", len(n.shunts), func(i int) int { return n.shunts[i].ID }); err != nil {
		return nil, err
	}

	// Stage 3: hierarchy and endpoints
	for _, d := range n.divisions {
		if _, ok := companyIdx[d.CompanyID]; !ok {
			return nil, fmt.Errorf("network: division %d company %d: %w", d.ID, d.CompanyID, ErrUnknownOwner)
		}
	}
	for _, s := range n.substations {
		if _, ok := divisionIdx[s.DivisionID]; !ok {
			return nil, fmt.Errorf("network: substation %d division %d: %w", s.ID, s.DivisionID, ErrUnknownOwner)
		}
	}
	for _, l := range n.lines {
		if _, ok := divisionIdx[l.DivisionID]; !ok {
			return nil, fmt.Errorf("network: line %d division %d: %w", l.ID, l.DivisionID, ErrUnknownOwner)
		}
		for _, sid := range []int{l.FromSubstationID, l.ToSubstationID} {
			if _, ok := n.substationIdx[sid]; !ok {
				return nil, fmt.Errorf("network: line %d substation %d: %w", l.ID, sid, ErrUnknownOwner)
			}
		}
	}
	for i := range n.nodes {
		node := &n.nodes[i]
		if !n.hasOwner(node.Owner) {
			return nil, fmt.Errorf("network: node %d owner %s: %w", node.ID, node.Owner, ErrUnknownOwner)
		}
		li, ok := levelIdx[node.VoltageLevelID]
		if !ok {
			return nil, fmt.Errorf("network: node %d voltage level %d: %w", node.ID, node.VoltageLevelID, ErrUnknownVoltageLevel)
		}
		node.BaseKV = n.voltageLevels[li].BaseKV
		node.Observation = Unobserved
	}
	for i := range n.devices {
		d := &n.devices[i]
		if !n.hasOwner(d.Owner) {
			return nil, fmt.Errorf("network: device %d owner %s: %w", d.ID, d.Owner, ErrUnknownOwner)
		}
		if err = n.checkEnds("device", d.ID, d.FromNodeID, d.ToNodeID, &d.Owner); err != nil {
			return nil, err
		}
	}
	for _, t := range n.transformers {
		owner := Owner{Kind: OwnerSubstation, ID: t.SubstationID}
		if !n.hasOwner(owner) {
			return nil, fmt.Errorf("network: transformer %d substation %d: %w", t.ID, t.SubstationID, ErrUnknownOwner)
		}
		if err = n.checkEnds("transformer", t.ID, t.FromNodeID, t.ToNodeID, &owner); err != nil {
			return nil, err
		}
		if t.R == 0 && t.X == 0 {
			return nil, fmt.Errorf("network: transformer %d has zero impedance: %w", t.ID, ErrInvalidDescription)
		}
		if mag := t.ratioAt(t.TapPosition); !(mag > 0) {
			return nil, fmt.Errorf("network: transformer %d tap %d: %w", t.ID, t.TapPosition, ErrInvalidTap)
		}
	}
	for _, s := range n.segments {
		if _, ok := n.lineIdx[s.LineID]; !ok {
			return nil, fmt.Errorf("network: segment %d line %d: %w", s.ID, s.LineID, ErrUnknownOwner)
		}
		if err = n.checkEnds("segment", s.ID, s.FromNodeID, s.ToNodeID, nil); err != nil {
			return nil, err
		}
		if s.R == 0 && s.X == 0 {
			return nil, fmt.Errorf("network: segment %d has zero impedance: %w", s.ID, ErrInvalidDescription)
		}
	}
	for _, s := range n.shunts {
		if _, ok := n.nodeIdx[s.NodeID]; !ok {
			return nil, fmt.Errorf("network: shunt %d node %d: %w", s.ID, s.NodeID, ErrUnknownNode)
		}
	}

	// Stage 4: grouping
	for i := range n.nodes {
		o := n.nodes[i].Owner
		n.ownerNodes[o] = append(n.ownerNodes[o], i)
	}
	for i := range n.devices {
		d := &n.devices[i]
		n.ownerDevices[d.Owner] = append(n.ownerDevices[d.Owner], i)
		key := pairKey(d.FromNodeID, d.ToNodeID)
		n.pairDevices[key] = append(n.pairDevices[key], i)
	}
	for _, s := range n.substations {
		o := Owner{Kind: OwnerSubstation, ID: s.ID}
		if len(n.ownerNodes[o]) == 0 {
			return nil, fmt.Errorf("network: substation %d: %w", s.ID, ErrEmptySubstation)
		}
	}
	n.sortGroups()

	return n, nil
}

func validateAll(desc Description) error {
	check := func(kind string, id int, v interface{}) error {
		if err := validate.Struct(v); err != nil {
			return fmt.Errorf("network: %s %d: %v: %w", kind, id, err, ErrInvalidDescription)
		}
		return nil
	}
	for i := range desc.Companies {
		if err := check("company", desc.Companies[i].ID, &desc.Companies[i]); err != nil {
			return err
		}
	}
	for i := range desc.Divisions {
		if err := check("division", desc.Divisions[i].ID, &desc.Divisions[i]); err != nil {
			return err
		}
	}
	for i := range desc.Substations {
		if err := check("substation", desc.Substations[i].ID, &desc.Substations[i]); err != nil {
			return err
		}
	}
	for i := range desc.Lines {
		if err := check("line", desc.Lines[i].ID, &desc.Lines[i]); err != nil {
			return err
		}
	}
	for i := range desc.VoltageLevels {
		if err := check("voltage level", desc.VoltageLevels[i].ID, &desc.VoltageLevels[i]); err != nil {
			return err
		}
	}
	for i := range desc.Nodes {
		if err := check("node", desc.Nodes[i].ID, &desc.Nodes[i]); err != nil {
			return err
		}
	}
	for i := range desc.Devices {
		if err := check("device", desc.Devices[i].ID, &desc.Devices[i]); err != nil {
			return err
		}
	}
	for i := range desc.Transformers {
		if err := check("transformer", desc.Transformers[i].ID, &desc.Transformers[i]); err != nil {
			return err
		}
	}
	for i := range desc.Segments {
		if err := check("segment", desc.Segments[i].ID, &desc.Segments[i]); err != nil {
			return err
		}
	}
	for i := range desc.Shunts {
		if err := check("shunt", desc.Shunts[i].ID, &desc.Shunts[i]); err != nil {
			return err
		}
	}

	return nil
}

func indexBy(kind string, n int, id func(int) int) (map[int]int, error) {
	idx := make(map[int]int, n)
	for i := 0; i < n; i++ {
		if _, dup := idx[id(i)]; dup {
			return nil, fmt.Errorf("network: %s %d: %w", kind, id(i), ErrDuplicateID)
		}
		idx[id(i)] = i
	}

	return idx, nil
}

func (n *Network) hasOwner(o Owner) bool {
	switch o.Kind {
	case OwnerSubstation:
		_, ok := n.substationIdx[o.ID]
		return ok
	case OwnerTransmissionLine:
		_, ok := n.lineIdx[o.ID]
		return ok
	default:
		return false
	}
}

// checkEnds verifies two distinct existing endpoints, optionally owned by owner.
func (n *Network) checkEnds(kind string, id, from, to int, owner *Owner) error {
	if from == to {
		return fmt.Errorf("network: %s %d node %d: %w", kind, id, from, ErrSelfLoop)
	}
	for _, nid := range []int{from, to} {
		ni, ok := n.nodeIdx[nid]
		if !ok {
			return fmt.Errorf("network: %s %d node %d: %w", kind, id, nid, ErrUnknownNode)
		}
		if owner != nil && n.nodes[ni].Owner != *owner {
			return fmt.Errorf("network: %s %d node %d in %s, want %s: %w", kind, id, nid, n.nodes[ni].Owner, *owner, ErrOwnerMismatch)
		}
	}

	return nil
}

func (n *Network) sortGroups() {
	for o, list := range n.ownerNodes {
		sort.Slice(list, func(i, j int) bool { return n.nodes[list[i]].ID < n.nodes[list[j]].ID })
		n.owners = append(n.owners, o)
	}
	for _, list := range n.ownerDevices {
		sort.Slice(list, func(i, j int) bool { return n.devices[list[i]].ID < n.devices[list[j]].ID })
	}
	for _, list := range n.pairDevices {
		sort.Slice(list, func(i, j int) bool { return n.devices[list[i]].ID < n.devices[list[j]].ID })
	}
	sort.Slice(n.owners, func(i, j int) bool {
		if n.owners[i].Kind != n.owners[j].Kind {
			return n.owners[i].Kind < n.owners[j].Kind
		}
		return n.owners[i].ID < n.owners[j].ID
	})
}

func pairKey(a, b int) [2]int {
	if a > b {
		a, b = b, a
	}

	return [2]int{a, b}
}
