// SPDX-License-Identifier: MIT

package estimator

import (
	"fmt"
	"math/cmplx"

	"github.com/katalvlaran/linse/matrix"
	"github.com/katalvlaran/linse/matrix/ops"
	"github.com/katalvlaran/linse/network"
	"github.com/katalvlaran/linse/phasor"
)

// term is one w×w coefficient block of a measurement row against a bus.
type term struct {
	bus   int
	block *matrix.Dense
}

// BuildSystemMatrix assembles the measurement matrix H of m (per-unit).
// Rows follow m.Groups(), columns follow m.Buses; each entry is a w×w
// block with w = m.Mode.Width(). Coefficients of a row that reference the
// same bus twice are accumulated.
//
// Errors: ErrNoVoltageMeasurements, ErrUnresolvedTerminal, network lookup
// errors, and matrix errors from non-finite parameters.
func BuildSystemMatrix(m *Model) (*matrix.Dense, error) {
	if len(m.Voltages) == 0 {
		return nil, fmt.Errorf("BuildSystemMatrix: %w", ErrNoVoltageMeasurements)
	}
	w := m.Mode.Width()
	h, err := matrix.NewDense(m.Measurements(), m.Unknowns())
	if err != nil {
		return nil, fmt.Errorf("BuildSystemMatrix: %w", err)
	}

	row := 0
	for _, g := range m.Groups() {
		ts, err := m.terms(g)
		if err != nil {
			return nil, fmt.Errorf("BuildSystemMatrix: %w", err)
		}
		for _, t := range ts {
			if err = h.AddBlock(row, t.bus*w, t.block); err != nil {
				return nil, fmt.Errorf("BuildSystemMatrix: group %q: %w", g.Key, err)
			}
		}
		row += w
	}

	return h, nil
}

// MeasurementVector returns the per-unit measured values of m in row order.
func MeasurementVector(m *Model) ([]complex128, error) {
	if len(m.Voltages) == 0 {
		return nil, fmt.Errorf("MeasurementVector: %w", ErrNoVoltageMeasurements)
	}
	z := make([]complex128, 0, m.Measurements())
	for _, g := range m.Groups() {
		base := g.Base(m.BaseMVA)
		for _, c := range phasor.ChannelsFor(m.Mode) {
			z = append(z, phasor.ToPerUnit(g.Channel(c).Measured, base))
		}
	}

	return z, nil
}

// Evaluate returns the per-unit measurement function of g at state, one
// value per mode channel. g need not be part of the model rows.
func (m *Model) Evaluate(g *phasor.Group, state []complex128) ([]complex128, error) {
	w := m.Mode.Width()
	if len(state) != m.Unknowns() {
		return nil, fmt.Errorf("Evaluate: state length %d, want %d: %w", len(state), m.Unknowns(), matrix.ErrDimensionMismatch)
	}
	ts, err := m.terms(g)
	if err != nil {
		return nil, fmt.Errorf("Evaluate: %w", err)
	}
	out := make([]complex128, w)
	for _, t := range ts {
		part, err := matrix.MulVec(t.block, state[t.bus*w:(t.bus+1)*w])
		if err != nil {
			return nil, fmt.Errorf("Evaluate: %w", err)
		}
		for i := range out {
			out[i] += part[i]
		}
	}

	return out, nil
}

// terms returns the coefficient blocks of g.
func (m *Model) terms(g *phasor.Group) ([]term, error) {
	self, ok := m.BusOf(g.NodeID)
	if !ok {
		return nil, fmt.Errorf("group %q node %d: %w", g.Key, g.NodeID, ErrUnresolvedTerminal)
	}
	w := m.Mode.Width()

	switch g.Role {
	case phasor.Voltage:
		b, err := scalarBlock(w, 1)
		if err != nil {
			return nil, err
		}
		return []term{{bus: self, block: b}}, nil

	case phasor.CurrentInjection:
		sh, ok := m.Net.Shunt(g.ShuntID)
		if !ok {
			return nil, fmt.Errorf("group %q shunt %d: %w", g.Key, g.ShuntID, ErrUnresolvedTerminal)
		}
		b, err := scalarBlock(w, sh.Admittance())
		if err != nil {
			return nil, err
		}
		return []term{{bus: self, block: b}}, nil

	case phasor.CurrentFlow:
		other, ok := m.BusOf(g.ToNodeID)
		if !ok {
			return nil, fmt.Errorf("group %q node %d: %w", g.Key, g.ToNodeID, ErrUnresolvedTerminal)
		}
		selfBlock, otherBlock, err := m.branchBlocks(g)
		if err != nil {
			return nil, fmt.Errorf("group %q: %w", g.Key, err)
		}
		return []term{{bus: self, block: selfBlock}, {bus: other, block: otherBlock}}, nil
	}

	return nil, fmt.Errorf("group %q role %s: %w", g.Key, g.Role, phasor.ErrRoleMismatch)
}

// branchBlocks returns the blocks multiplying the measured-end and far-end
// voltages of a current-flow group.
func (m *Model) branchBlocks(g *phasor.Group) (*matrix.Dense, *matrix.Dense, error) {
	w := m.Mode.Width()

	switch g.BranchKind {
	case network.BranchTransformer:
		t, ok := m.Net.Transformer(g.BranchID)
		if !ok {
			return nil, nil, fmt.Errorf("transformer %d: %w", g.BranchID, ErrUnresolvedTerminal)
		}
		y, a := t.SeriesAdmittance(), t.Ratio()
		var self, other complex128
		if g.NodeID == t.FromNodeID {
			// tap side: I = y/|a|²·Vf − y/conj(a)·Vt
			aa := cmplx.Abs(a)
			self = y/complex(aa*aa, 0) + complex(0, t.MagnetizingB)
			other = -y / cmplx.Conj(a)
		} else {
			// I = y·Vt − y/a·Vf
			self = y
			other = -y / a
		}
		sb, err := scalarBlock(w, self)
		if err != nil {
			return nil, nil, err
		}
		ob, err := scalarBlock(w, other)
		if err != nil {
			return nil, nil, err
		}
		return sb, ob, nil

	case network.BranchLineSegment:
		s, ok := m.Net.Segment(g.BranchID)
		if !ok {
			return nil, nil, fmt.Errorf("segment %d: %w", g.BranchID, ErrUnresolvedTerminal)
		}
		if m.Mode == phasor.ModeThreePhase {
			return lineBlocks3(s)
		}
		// π-model: I = y(Vk − Vo) + j(b/2)Vk
		y := s.SeriesAdmittance()
		sb, err := scalarBlock(1, y+complex(0, s.B/2))
		if err != nil {
			return nil, nil, err
		}
		ob, err := scalarBlock(1, -y)
		if err != nil {
			return nil, nil, err
		}
		return sb, ob, nil
	}

	return nil, nil, fmt.Errorf("branch kind %s: %w", g.BranchKind, phasor.ErrRoleMismatch)
}

// lineBlocks3 builds the phase-frame π-model of s from its sequence data:
// Zs = (Z0 + 2·Z1)/3 on the diagonal, Zm = (Z0 − Z1)/3 off it, and the same
// rule for the charging susceptance.
func lineBlocks3(s *network.LineSegment) (*matrix.Dense, *matrix.Dense, error) {
	z1 := complex(s.R, s.X)
	z0, b0 := s.ZeroSequence()

	z, err := sequenceMatrix(z1, z0)
	if err != nil {
		return nil, nil, err
	}
	y, err := ops.Inverse(z)
	if err != nil {
		return nil, nil, fmt.Errorf("segment %d: %w", s.ID, err)
	}
	bsh, err := sequenceMatrix(complex(0, s.B/2), complex(0, b0/2))
	if err != nil {
		return nil, nil, err
	}

	self := y.Clone()
	if err = self.AddBlock(0, 0, bsh); err != nil {
		return nil, nil, err
	}
	other, err := matrix.Scale(y, -1)
	if err != nil {
		return nil, nil, err
	}

	return self, other, nil
}

// sequenceMatrix returns the 3×3 phase-frame matrix of a balanced element
// with positive- and zero-sequence values v1 and v0.
func sequenceMatrix(v1, v0 complex128) (*matrix.Dense, error) {
	s := (v0 + 2*v1) / 3
	mu := (v0 - v1) / 3

	return matrix.NewFromRows([][]complex128{
		{s, mu, mu},
		{mu, s, mu},
		{mu, mu, s},
	})
}

// scalarBlock returns v·I of size w.
func scalarBlock(w int, v complex128) (*matrix.Dense, error) {
	id, err := matrix.NewIdentity(w)
	if err != nil {
		return nil, err
	}
	if v == 1 {
		return id, nil
	}

	return matrix.Scale(id, v)
}
