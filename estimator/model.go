// SPDX-License-Identifier: MIT

package estimator

import (
	"github.com/katalvlaran/linse/network"
	"github.com/katalvlaran/linse/phasor"
	"github.com/katalvlaran/linse/selection"
	"github.com/katalvlaran/linse/topology"
)

// Model is the input of one assembly: the surviving buses in column order
// and the included groups in row order.
type Model struct {
	Mode    phasor.PhaseMode
	BaseMVA float64
	Net     *network.Network
	Buses   []topology.ObservedBus

	Voltages          []*phasor.Group
	CurrentFlows      []*phasor.Group
	CurrentInjections []*phasor.Group

	index map[int]int
}

// NewModel binds buses and the included selection.
func NewModel(net *network.Network, mode phasor.PhaseMode, baseMVA float64, buses []topology.ObservedBus, included selection.Selection) *Model {
	return &Model{
		Mode:              mode,
		BaseMVA:           baseMVA,
		Net:               net,
		Buses:             buses,
		Voltages:          included.Voltages,
		CurrentFlows:      included.CurrentFlows,
		CurrentInjections: included.CurrentInjections,
		index:             topology.NodeIndex(buses),
	}
}

// Unknowns returns the number of state entries (columns).
func (m *Model) Unknowns() int { return len(m.Buses) * m.Mode.Width() }

// Measurements returns the number of measurement entries (rows).
func (m *Model) Measurements() int {
	return (len(m.Voltages) + len(m.CurrentFlows) + len(m.CurrentInjections)) * m.Mode.Width()
}

// Groups returns the included groups in row order.
func (m *Model) Groups() []*phasor.Group {
	out := make([]*phasor.Group, 0, len(m.Voltages)+len(m.CurrentFlows)+len(m.CurrentInjections))
	out = append(out, m.Voltages...)
	out = append(out, m.CurrentFlows...)

	return append(out, m.CurrentInjections...)
}

// BusOf returns the column block of the bus holding nodeID.
func (m *Model) BusOf(nodeID int) (int, bool) {
	i, ok := m.index[nodeID]

	return i, ok
}
