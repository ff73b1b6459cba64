// SPDX-License-Identifier: MIT
// Package phasor: Fortescue symmetrical components.

package phasor

import (
	"math"
	"math/cmplx"
)

// a is the 120° rotation operator.
var (
	a  = cmplx.Rect(1, 2*math.Pi/3)
	a2 = a * a
)

// SequenceComponents returns the zero, positive and negative sequence
// components of the phase values va, vb, vc.
func SequenceComponents(va, vb, vc complex128) (zero, positive, negative complex128) {
	zero = (va + vb + vc) / 3
	positive = (va + a*vb + a2*vc) / 3
	negative = (va + a2*vb + a*vc) / 3

	return zero, positive, negative
}

// PhaseComponents is the inverse of SequenceComponents.
func PhaseComponents(zero, positive, negative complex128) (va, vb, vc complex128) {
	va = zero + positive + negative
	vb = zero + a2*positive + a*negative
	vc = zero + a*positive + a2*negative

	return va, vb, vc
}
