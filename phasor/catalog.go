// SPDX-License-Identifier: MIT
// Package phasor: the measurement catalog linked against a network.

package phasor

import (
	"fmt"
	"sort"

	"github.com/katalvlaran/linse/network"
)

// Catalog is the full measurement catalog of one network. Group slices are
// ordered by ID and keep that order for the lifetime of the catalog, so
// inclusion-flag snapshots line up between cycles.
type Catalog struct {
	Voltages          []*Group
	CurrentFlows      []*Group
	CurrentInjections []*Group

	StatusWords []*StatusWord
	Breakers    []*BreakerStatus
	Taps        []*TapPosition

	statusByKey map[string]*StatusWord
}

// NewCatalog links groups against net: resolves base kV, checks bindings per
// role, and derives breaker-status and tap inputs from the devices and
// transformers that carry a key.
func NewCatalog(net *network.Network, groups []Group) (*Catalog, error) {
	c := &Catalog{statusByKey: make(map[string]*StatusWord)}
	seen := make(map[string]struct{}, len(groups))

	for i := range groups {
		g := groups[i]
		if g.Key != "" {
			if _, dup := seen[g.Key]; dup {
				return nil, fmt.Errorf("phasor: group %q: %w", g.Key, ErrDuplicateKey)
			}
			seen[g.Key] = struct{}{}
		}
		if err := bind(net, &g); err != nil {
			return nil, err
		}
		switch g.Role {
		case Voltage:
			c.Voltages = append(c.Voltages, &g)
		case CurrentFlow:
			c.CurrentFlows = append(c.CurrentFlows, &g)
		case CurrentInjection:
			c.CurrentInjections = append(c.CurrentInjections, &g)
		default:
			return nil, fmt.Errorf("phasor: group %q role %d: %w", g.Key, g.Role, ErrRoleMismatch)
		}
		if g.StatusWordKey != "" {
			if _, ok := c.statusByKey[g.StatusWordKey]; !ok {
				sw := &StatusWord{Key: g.StatusWordKey}
				c.statusByKey[sw.Key] = sw
				c.StatusWords = append(c.StatusWords, sw)
			}
		}
	}
	for _, list := range [][]*Group{c.Voltages, c.CurrentFlows, c.CurrentInjections} {
		sort.SliceStable(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	}
	sort.Slice(c.StatusWords, func(i, j int) bool { return c.StatusWords[i].Key < c.StatusWords[j].Key })

	for _, d := range net.Devices() {
		if d.ReportsStatus() {
			c.Breakers = append(c.Breakers, &BreakerStatus{DeviceID: d.ID, Key: d.StatusKey, Bit: d.StatusBit})
		}
	}
	for _, t := range net.Transformers() {
		if t.TapKey != "" {
			c.Taps = append(c.Taps, &TapPosition{TransformerID: t.ID, Key: t.TapKey})
		}
	}

	return c, nil
}

func bind(net *network.Network, g *Group) error {
	node, ok := net.Node(g.NodeID)
	if !ok {
		return fmt.Errorf("phasor: group %q node %d: %w", g.Key, g.NodeID, ErrUnboundGroup)
	}
	g.BaseKV = node.BaseKV

	switch g.Role {
	case CurrentFlow:
		var from, to int
		switch g.BranchKind {
		case network.BranchTransformer:
			t, ok := net.Transformer(g.BranchID)
			if !ok {
				return fmt.Errorf("phasor: group %q transformer %d: %w", g.Key, g.BranchID, ErrUnboundGroup)
			}
			from, to = t.FromNodeID, t.ToNodeID
		case network.BranchLineSegment:
			s, ok := net.Segment(g.BranchID)
			if !ok {
				return fmt.Errorf("phasor: group %q segment %d: %w", g.Key, g.BranchID, ErrUnboundGroup)
			}
			from, to = s.FromNodeID, s.ToNodeID
		default:
			return fmt.Errorf("phasor: group %q has no branch: %w", g.Key, ErrRoleMismatch)
		}
		if !(g.NodeID == from && g.ToNodeID == to) && !(g.NodeID == to && g.ToNodeID == from) {
			return fmt.Errorf("phasor: group %q terminals %d→%d not on branch %d: %w", g.Key, g.NodeID, g.ToNodeID, g.BranchID, ErrRoleMismatch)
		}
	case CurrentInjection:
		s, ok := net.Shunt(g.ShuntID)
		if !ok {
			return fmt.Errorf("phasor: group %q shunt %d: %w", g.Key, g.ShuntID, ErrUnboundGroup)
		}
		if s.NodeID != g.NodeID {
			return fmt.Errorf("phasor: group %q shunt %d at node %d: %w", g.Key, s.ID, s.NodeID, ErrRoleMismatch)
		}
	}

	return nil
}

// Groups returns voltages, current flows and current injections concatenated.
func (c *Catalog) Groups() []*Group {
	out := make([]*Group, 0, len(c.Voltages)+len(c.CurrentFlows)+len(c.CurrentInjections))
	out = append(out, c.Voltages...)
	out = append(out, c.CurrentFlows...)

	return append(out, c.CurrentInjections...)
}

// Ingest reads one frame into the catalog: status words first, then group
// quality, then measured (acceptMeasurements) and published estimate
// (acceptEstimates) values, then breaker and tap inputs.
func (c *Catalog) Ingest(frame Frame, acceptMeasurements, acceptEstimates bool) {
	for _, sw := range c.StatusWords {
		sw.Ingest(frame)
	}
	for _, g := range c.Groups() {
		if g.StatusWordKey != "" {
			g.SetQuality(c.statusByKey[g.StatusWordKey].DataValid())
		} else {
			g.SetQuality(true)
		}
		if acceptMeasurements {
			g.Ingest(frame)
		}
		if acceptEstimates {
			g.IngestEstimates(frame)
		}
	}
	for _, b := range c.Breakers {
		b.Ingest(frame)
	}
	for _, t := range c.Taps {
		t.Ingest(frame)
	}
}

// InputKeys returns every measurement key the catalog consumes in mode,
// sorted and de-duplicated.
func (c *Catalog) InputKeys(mode PhaseMode) []string {
	set := make(map[string]struct{})
	for _, g := range c.Groups() {
		if !g.Enabled {
			continue
		}
		for _, k := range g.InputKeys(mode) {
			set[k] = struct{}{}
		}
	}
	for _, b := range c.Breakers {
		set[b.Key] = struct{}{}
	}
	for _, t := range c.Taps {
		set[t.Key] = struct{}{}
	}
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	return keys
}
