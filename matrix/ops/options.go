// SPDX-License-Identifier: MIT
// Package ops: functional options for PseudoInverse.

package ops

// Method selects the pseudo-inverse algorithm.
type Method int

const (
	// MethodSVD computes H⁺ from a singular value decomposition (default).
	MethodSVD Method = iota
	// MethodNormalEquations computes (HᴴH)⁻¹Hᴴ through LU.
	MethodNormalEquations
)

// String returns the configuration name of the method.
func (m Method) String() string {
	switch m {
	case MethodSVD:
		return "svd"
	case MethodNormalEquations:
		return "normal"
	default:
		return "unknown"
	}
}

// ParseMethod maps a configuration name onto a Method; unknown names map to MethodSVD.
func ParseMethod(name string) Method {
	if name == MethodNormalEquations.String() {
		return MethodNormalEquations
	}

	return MethodSVD
}

// Defaults.
const (
	// DefaultTolerance is the relative singular value (or pivot) threshold
	// below which a direction is treated as numerically zero.
	DefaultTolerance = 1e-10

	// DefaultMaxCondition is the condition number ceiling of the input matrix.
	DefaultMaxCondition = 1e12
)

// Options holds configurable parameters for PseudoInverse.
type Options struct {
	Method       Method
	Tolerance    float64
	MaxCondition float64
}

// Option configures PseudoInverse.
type Option func(*Options)

// DefaultOptions returns SVD with DefaultTolerance and DefaultMaxCondition.
func DefaultOptions() Options {
	return Options{
		Method:       MethodSVD,
		Tolerance:    DefaultTolerance,
		MaxCondition: DefaultMaxCondition,
	}
}

// WithMethod selects the algorithm.
func WithMethod(m Method) Option {
	return func(o *Options) { o.Method = m }
}

// WithTolerance sets the relative rank tolerance. Non-positive values are ignored.
func WithTolerance(tol float64) Option {
	return func(o *Options) {
		if tol > 0 {
			o.Tolerance = tol
		}
	}
}

// WithMaxCondition sets the condition number ceiling. Non-positive values are ignored.
func WithMaxCondition(c float64) Option {
	return func(o *Options) {
		if c > 0 {
			o.MaxCondition = c
		}
	}
}

func gatherOptions(opts []Option) Options {
	o := DefaultOptions()
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	return o
}
