// SPDX-License-Identifier: MIT
// Package network: switching devices (breakers and switches).

package network

// DeviceKind is the tag of the switching-device variant.
type DeviceKind int

const (
	// Breaker is a circuit breaker; its status is telemetered.
	Breaker DeviceKind = iota + 1
	// Switch is a disconnect switch; operated by command unless a status key is bound.
	Switch
)

// String returns "breaker" or "switch".
func (k DeviceKind) String() string {
	switch k {
	case Breaker:
		return "breaker"
	case Switch:
		return "switch"
	default:
		return "device"
	}
}

// HasStatusTelemetry reports whether devices of this kind publish a status
// measurement by default.
func (k DeviceKind) HasStatusTelemetry() bool { return k == Breaker }

// DeviceState is the open/closed position of a switching device.
type DeviceState int

const (
	// Open: the device isolates its two nodes.
	Open DeviceState = iota
	// Closed: the device merges its two nodes electrically.
	Closed
)

// String returns "open" or "closed".
func (s DeviceState) String() string {
	if s == Closed {
		return "closed"
	}

	return "open"
}

// Code returns the numeric output code (0 open, 1 closed).
func (s DeviceState) Code() float64 {
	if s == Closed {
		return 1
	}

	return 0
}

// SwitchingDevice connects exactly two distinct nodes of one owner.
//
// Actual follows status measurements (ApplyStatus) unless ManualOverride is
// engaged by an operator Command; Release returns to telemetry mode and
// restores the normal state until the next status arrives.
type SwitchingDevice struct {
	ID         int `validate:"gt=0"`
	Name       string
	Kind       DeviceKind `validate:"min=1,max=2"`
	Owner      Owner
	FromNodeID int `validate:"gt=0"`
	ToNodeID   int `validate:"gt=0"`

	Normal         DeviceState `validate:"min=0,max=1"`
	Actual         DeviceState `validate:"min=0,max=1"`
	ManualOverride bool

	// StatusKey is the measurement key of the binary status; StatusBit the bit
	// carrying the closed flag inside that value.
	StatusKey string
	StatusBit int `validate:"min=0,max=63"`
}

// IsClosed reports whether the actual state is Closed.
func (d *SwitchingDevice) IsClosed() bool { return d.Actual == Closed }

// ReportsStatus reports whether a status measurement drives this device.
func (d *SwitchingDevice) ReportsStatus() bool {
	return d.StatusKey != ""
}

// ApplyStatus sets the actual state from telemetry. It is a no-op under manual
// override and returns whether the state changed.
func (d *SwitchingDevice) ApplyStatus(state DeviceState) bool {
	if d.ManualOverride || d.Actual == state {
		return false
	}
	d.Actual = state

	return true
}

// Command forces the actual state and engages manual override.
func (d *SwitchingDevice) Command(state DeviceState) {
	d.Actual = state
	d.ManualOverride = true
}

// Release clears manual override and restores the normal state.
func (d *SwitchingDevice) Release() {
	d.ManualOverride = false
	d.Actual = d.Normal
}

// Other returns the endpoint opposite to nodeID, or 0 when nodeID is not an endpoint.
func (d *SwitchingDevice) Other(nodeID int) int {
	switch nodeID {
	case d.FromNodeID:
		return d.ToNodeID
	case d.ToNodeID:
		return d.FromNodeID
	default:
		return 0
	}
}
