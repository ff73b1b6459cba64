// SPDX-License-Identifier: MIT
// Package network: series branches (transformers, line segments).

package network

import (
	"fmt"
	"math"
	"math/cmplx"
)

// BranchKind distinguishes the two series branch variants.
type BranchKind int

const (
	// BranchNone marks a measurement that is not bound to a branch.
	BranchNone BranchKind = iota
	// BranchTransformer is a two-winding transformer.
	BranchTransformer
	// BranchLineSegment is one π-section of a transmission line.
	BranchLineSegment
)

// String returns "transformer" or "segment".
func (k BranchKind) String() string {
	switch k {
	case BranchTransformer:
		return "transformer"
	case BranchLineSegment:
		return "segment"
	default:
		return "none"
	}
}

// Transformer is a two-winding transformer inside one substation.
// Impedance is per-unit on the system base. The effective off-nominal ratio is
// FixedTap + (TapPosition − NeutralTap)·TapStepPU at PhaseShiftDeg.
type Transformer struct {
	ID           int `validate:"gt=0"`
	Name         string
	SubstationID int `validate:"gt=0"`
	FromNodeID   int `validate:"gt=0"`
	ToNodeID     int `validate:"gt=0"`

	R, X          float64
	MagnetizingB  float64
	FixedTap      float64 `validate:"gte=0"`
	PhaseShiftDeg float64

	TapKey      string
	TapStepPU   float64
	NeutralTap  int
	TapPosition int
}

// SeriesAdmittance returns 1/(R + jX).
func (t *Transformer) SeriesAdmittance() complex128 { return admittance(t.R, t.X) }

// Ratio returns the complex off-nominal turns ratio a = |a|∠shift.
func (t *Transformer) Ratio() complex128 {
	return cmplx.Rect(t.ratioAt(t.TapPosition), t.PhaseShiftDeg*math.Pi/180)
}

// SetTapPosition moves the tap changer to pos. A position whose ratio
// magnitude is not positive is rejected with ErrInvalidTap and the current
// position is kept.
func (t *Transformer) SetTapPosition(pos int) error {
	if mag := t.ratioAt(pos); !(mag > 0) || math.IsInf(mag, 0) {
		return fmt.Errorf("network: transformer %d tap %d ratio %g: %w", t.ID, pos, mag, ErrInvalidTap)
	}
	t.TapPosition = pos

	return nil
}

// ratioAt returns |a| at tap position pos; a zero FixedTap means nominal.
func (t *Transformer) ratioAt(pos int) float64 {
	mag := t.FixedTap
	if mag == 0 {
		mag = 1
	}

	return mag + float64(pos-t.NeutralTap)*t.TapStepPU
}

// LineSegment is a π-section. R, X, B are positive-sequence per-unit values;
// R0, X0, B0 the zero-sequence ones (zero means "same as positive").
type LineSegment struct {
	ID         int `validate:"gt=0"`
	LineID     int `validate:"gt=0"`
	FromNodeID int `validate:"gt=0"`
	ToNodeID   int `validate:"gt=0"`

	R, X, B    float64
	R0, X0, B0 float64
}

// SeriesAdmittance returns the positive-sequence 1/(R + jX).
func (s *LineSegment) SeriesAdmittance() complex128 { return admittance(s.R, s.X) }

// ZeroSequence returns the zero-sequence series impedance and total charging
// susceptance, defaulting to the positive-sequence values.
func (s *LineSegment) ZeroSequence() (complex128, float64) {
	r, x, b := s.R0, s.X0, s.B0
	if r == 0 && x == 0 {
		r, x = s.R, s.X
	}
	if b == 0 {
		b = s.B
	}

	return complex(r, x), b
}

func admittance(r, x float64) complex128 {
	z := complex(r, x)
	if z == 0 {
		return 0
	}

	return 1 / z
}
