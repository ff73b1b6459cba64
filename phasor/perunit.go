// SPDX-License-Identifier: MIT
// Package phasor: per-unit scaling and polar helpers.

package phasor

import (
	"math"
	"math/cmplx"
)

// DefaultBaseMVA is the system power base.
const DefaultBaseMVA = 100.0

var sqrt3 = math.Sqrt(3)

// VoltageBase returns the line-to-neutral voltage base in volts for a
// line-to-line nominal voltage in kV.
func VoltageBase(baseKV float64) float64 { return baseKV * 1000 / sqrt3 }

// CurrentBase returns the current base in amperes.
func CurrentBase(baseKV, baseMVA float64) float64 {
	return baseMVA * 1e6 / (sqrt3 * baseKV * 1000)
}

// ToPerUnit divides v by base. A zero base yields zero.
func ToPerUnit(v complex128, base float64) complex128 {
	if base == 0 {
		return 0
	}

	return v / complex(base, 0)
}

// FromPerUnit multiplies v by base.
func FromPerUnit(v complex128, base float64) complex128 { return v * complex(base, 0) }

// Polar builds a phasor from a magnitude and an angle in degrees.
func Polar(magnitude, angleDeg float64) complex128 {
	return cmplx.Rect(magnitude, angleDeg*math.Pi/180)
}

// ToPolar returns the magnitude and angle in degrees of v.
func ToPolar(v complex128) (float64, float64) {
	r, theta := cmplx.Polar(v)

	return r, theta * 180 / math.Pi
}
