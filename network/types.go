// SPDX-License-Identifier: MIT
// Package network: entity records and enums.

package network

import "fmt"

// ObservationState classifies a node after observability analysis.
type ObservationState int

const (
	// Unobserved: no usable measurement reaches the node.
	Unobserved ObservationState = iota
	// DirectlyObserved: the node carries an active voltage measurement.
	DirectlyObserved
	// IndirectlyObserved: voltage inferred from a current flow or a merged bus.
	IndirectlyObserved
)

// String returns a short label for reports.
func (s ObservationState) String() string {
	switch s {
	case DirectlyObserved:
		return "direct"
	case IndirectlyObserved:
		return "indirect"
	default:
		return "unobserved"
	}
}

// OwnerKind tells which container owns a node or a switching device.
type OwnerKind int

const (
	// OwnerSubstation: owned by a substation.
	OwnerSubstation OwnerKind = iota + 1
	// OwnerTransmissionLine: owned by a transmission line.
	OwnerTransmissionLine
)

// Owner references the single container of a node or device.
type Owner struct {
	Kind OwnerKind `validate:"min=1,max=2"`
	ID   int       `validate:"gt=0"`
}

// String renders the owner as "substation/12" or "line/3".
func (o Owner) String() string {
	switch o.Kind {
	case OwnerSubstation:
		return fmt.Sprintf("substation/%d", o.ID)
	case OwnerTransmissionLine:
		return fmt.Sprintf("line/%d", o.ID)
	default:
		return fmt.Sprintf("owner?/%d", o.ID)
	}
}

// Company is the top of the ownership hierarchy.
type Company struct {
	ID      int `validate:"gt=0"`
	Name    string
	Acronym string
}

// Division groups substations and lines inside a company.
type Division struct {
	ID        int `validate:"gt=0"`
	CompanyID int `validate:"gt=0"`
	Name      string
}

// Substation owns nodes, switching devices, transformers and shunts.
type Substation struct {
	ID         int `validate:"gt=0"`
	DivisionID int `validate:"gt=0"`
	Name       string
	Acronym    string
}

// TransmissionLine owns line segments, intermediate nodes and line switches.
type TransmissionLine struct {
	ID               int `validate:"gt=0"`
	DivisionID       int `validate:"gt=0"`
	Name             string
	FromSubstationID int `validate:"gt=0"`
	ToSubstationID   int `validate:"gt=0"`
}

// VoltageLevel carries the nominal line-to-line base voltage in kV.
type VoltageLevel struct {
	ID     int     `validate:"gt=0"`
	BaseKV float64 `validate:"gt=0"`
}

// Node is an electrical terminal.
// BaseKV is resolved from VoltageLevelID by New; Observation is rewritten by
// the observability analyzer every cycle.
type Node struct {
	ID             int `validate:"gt=0"`
	Name           string
	VoltageLevelID int `validate:"gt=0"`
	Owner          Owner

	BaseKV      float64          `validate:"-"`
	Observation ObservationState `validate:"-"`
}

// IsObserved reports whether the node is directly or indirectly observed.
func (n *Node) IsObserved() bool {
	return n.Observation == DirectlyObserved || n.Observation == IndirectlyObserved
}

// Shunt is a fixed admittance to ground at a node, in per-unit.
type Shunt struct {
	ID     int `validate:"gt=0"`
	Name   string
	NodeID int `validate:"gt=0"`
	G, B   float64
}

// Admittance returns G + jB.
func (s *Shunt) Admittance() complex128 { return complex(s.G, s.B) }
