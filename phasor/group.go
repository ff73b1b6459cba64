// SPDX-License-Identifier: MIT

package phasor

import "github.com/katalvlaran/linse/network"

// Group is a named phasor measurement point. The same record serves all
// three roles; the role decides which binding fields are meaningful:
//
//	Voltage:          NodeID
//	CurrentFlow:      NodeID (measured-from), ToNodeID, BranchKind, BranchID
//	CurrentInjection: NodeID, ShuntID
type Group struct {
	ID   int
	Key  string
	Role Role

	NodeID     int
	ToNodeID   int
	BranchKind network.BranchKind
	BranchID   int
	ShuntID    int

	// StatusWordKey binds the group to the STAT word of its PMU.
	StatusWordKey string
	// Enabled is the user-enable flag.
	Enabled bool

	// BaseKV is resolved from NodeID when the catalog is linked.
	BaseKV float64

	Channels [channelCount]Phasor

	statusFault bool
}

// Channel returns a pointer to channel c.
func (g *Group) Channel(c Channel) *Phasor { return &g.Channels[c] }

// Quality reports the last status-word verdict (true when unbound).
func (g *Group) Quality() bool { return !g.statusFault }

// SetQuality records the status-word verdict of the current frame.
func (g *Group) SetQuality(ok bool) { g.statusFault = !ok }

// Included is the inclusion predicate for the configured mode: the group is
// user-enabled, its PMU reports valid data, and every mode channel has bound
// keys with a valid value in the current frame.
func (g *Group) Included(mode PhaseMode) bool {
	if !g.Enabled || g.statusFault {
		return false
	}
	for _, c := range ChannelsFor(mode) {
		p := &g.Channels[c]
		if !p.Bound() || !p.Valid {
			return false
		}
	}

	return true
}

// Expected is the planning variant of Included: user-enabled and bound for
// the mode, regardless of live quality.
func (g *Group) Expected(mode PhaseMode) bool {
	if !g.Enabled {
		return false
	}
	for _, c := range ChannelsFor(mode) {
		if !g.Channels[c].Bound() {
			return false
		}
	}

	return true
}

// Ingest reads every bound channel from frame.
func (g *Group) Ingest(frame Frame) {
	for c := range g.Channels {
		if g.Channels[c].Bound() {
			g.Channels[c].Ingest(frame)
		}
	}
}

// IngestEstimates reads previously published estimates for every bound channel.
func (g *Group) IngestEstimates(frame Frame) {
	for c := range g.Channels {
		if g.Channels[c].Bound() {
			g.Channels[c].IngestEstimate(frame)
		}
	}
}

// Base returns the per-unit base of the group: voltage base for Voltage,
// current base for the current roles.
func (g *Group) Base(baseMVA float64) float64 {
	if g.Role == Voltage {
		return VoltageBase(g.BaseKV)
	}

	return CurrentBase(g.BaseKV, baseMVA)
}

// InputKeys returns the measurement keys this group consumes in mode.
func (g *Group) InputKeys(mode PhaseMode) []string {
	var keys []string
	for _, c := range ChannelsFor(mode) {
		p := &g.Channels[c]
		if p.Bound() {
			keys = append(keys, p.MagnitudeKey, p.AngleKey)
		}
	}
	if g.StatusWordKey != "" {
		keys = append(keys, g.StatusWordKey)
	}

	return keys
}
