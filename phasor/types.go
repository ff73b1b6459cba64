// SPDX-License-Identifier: MIT

package phasor

// Role parameterizes a Group.
type Role int

const (
	// Voltage: bus voltage at NodeID.
	Voltage Role = iota + 1
	// CurrentFlow: branch current measured at NodeID flowing toward ToNodeID.
	CurrentFlow
	// CurrentInjection: shunt current injected at NodeID.
	CurrentInjection
)

// String returns the role label.
func (r Role) String() string {
	switch r {
	case Voltage:
		return "voltage"
	case CurrentFlow:
		return "current-flow"
	case CurrentInjection:
		return "current-injection"
	default:
		return "unknown"
	}
}

// PhaseMode selects the estimator fidelity.
type PhaseMode int

const (
	// ModePositiveSequence: one unknown per observed bus.
	ModePositiveSequence PhaseMode = iota
	// ModeThreePhase: three unknowns (A, B, C) per observed bus.
	ModeThreePhase
)

// String returns the configuration name of the mode.
func (m PhaseMode) String() string {
	if m == ModeThreePhase {
		return "three-phase"
	}

	return "positive-sequence"
}

// Width returns the number of unknowns per bus (1 or 3).
func (m PhaseMode) Width() int {
	if m == ModeThreePhase {
		return 3
	}

	return 1
}

// ParsePhaseMode maps "three-phase" onto ModeThreePhase and anything else
// onto ModePositiveSequence.
func ParsePhaseMode(s string) PhaseMode {
	if s == ModeThreePhase.String() {
		return ModeThreePhase
	}

	return ModePositiveSequence
}

// Channel indexes the phasor channels of a Group.
type Channel int

const (
	ChannelZero Channel = iota
	ChannelNegative
	ChannelPositive
	ChannelA
	ChannelB
	ChannelC

	channelCount
)

// String returns a short channel label.
func (c Channel) String() string {
	switch c {
	case ChannelZero:
		return "0"
	case ChannelNegative:
		return "-"
	case ChannelPositive:
		return "+"
	case ChannelA:
		return "A"
	case ChannelB:
		return "B"
	case ChannelC:
		return "C"
	default:
		return "?"
	}
}

var (
	positiveChannels   = []Channel{ChannelPositive}
	threePhaseChannels = []Channel{ChannelA, ChannelB, ChannelC}
)

// ChannelsFor returns the channels that carry the state in the given mode.
// The returned slice must not be modified.
func ChannelsFor(m PhaseMode) []Channel {
	if m == ModeThreePhase {
		return threePhaseChannels
	}

	return positiveChannels
}
