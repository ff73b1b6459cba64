// SPDX-License-Identifier: MIT

package estimator

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/katalvlaran/linse/matrix/ops"
	"github.com/katalvlaran/linse/phasor"
)

// DefaultSolveTimeout bounds one matrix rebuild.
const DefaultSolveTimeout = 5 * time.Second

// OutputSelection picks the key groups written to Result.Output.
type OutputSelection struct {
	Voltages          bool
	CurrentFlows      bool
	CurrentInjections bool
	Residuals         bool
	DeviceStates      bool
	TapPositions      bool
}

// DefaultOutput publishes voltage and current estimates only.
func DefaultOutput() OutputSelection {
	return OutputSelection{Voltages: true, CurrentFlows: true, CurrentInjections: true}
}

// Options configures an Estimator.
type Options struct {
	Mode    phasor.PhaseMode
	BaseMVA float64

	// AcceptMeasurements reads measured values from each frame.
	AcceptMeasurements bool
	// AcceptEstimates reads previously published estimates from each frame.
	AcceptEstimates bool

	Output OutputSelection

	Method       ops.Method
	Tolerance    float64
	MaxCondition float64
	SolveTimeout time.Duration // ≤ 0 disables the deadline

	// Registerer receives the estimator metrics; nil leaves them unregistered.
	Registerer prometheus.Registerer
}

// Option configures an Estimator.
type Option func(*Options)

// DefaultOptions returns positive-sequence mode on DefaultBaseMVA with the
// ops solver defaults.
func DefaultOptions() Options {
	return Options{
		Mode:               phasor.ModePositiveSequence,
		BaseMVA:            phasor.DefaultBaseMVA,
		AcceptMeasurements: true,
		Output:             DefaultOutput(),
		Method:             ops.MethodSVD,
		Tolerance:          ops.DefaultTolerance,
		MaxCondition:       ops.DefaultMaxCondition,
		SolveTimeout:       DefaultSolveTimeout,
	}
}

// WithPhaseMode selects positive-sequence or three-phase estimation.
func WithPhaseMode(m phasor.PhaseMode) Option {
	return func(o *Options) { o.Mode = m }
}

// WithBaseMVA sets the system power base. Non-positive values are ignored.
func WithBaseMVA(mva float64) Option {
	return func(o *Options) {
		if mva > 0 {
			o.BaseMVA = mva
		}
	}
}

// WithAcceptMeasurements toggles reading measured values.
func WithAcceptMeasurements(on bool) Option {
	return func(o *Options) { o.AcceptMeasurements = on }
}

// WithAcceptEstimates toggles reading previously published estimates.
func WithAcceptEstimates(on bool) Option {
	return func(o *Options) { o.AcceptEstimates = on }
}

// WithOutput sets the output selection.
func WithOutput(s OutputSelection) Option {
	return func(o *Options) { o.Output = s }
}

// WithSolver sets the pseudo-inverse method, rank tolerance and condition
// ceiling. Non-positive tolerance or ceiling keep the defaults.
func WithSolver(m ops.Method, tol, maxCond float64) Option {
	return func(o *Options) {
		o.Method = m
		if tol > 0 {
			o.Tolerance = tol
		}
		if maxCond > 0 {
			o.MaxCondition = maxCond
		}
	}
}

// WithSolveTimeout sets the rebuild deadline.
func WithSolveTimeout(d time.Duration) Option {
	return func(o *Options) { o.SolveTimeout = d }
}

// WithRegisterer registers the metrics on r.
func WithRegisterer(r prometheus.Registerer) Option {
	return func(o *Options) { o.Registerer = r }
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

func (o Options) solver() []ops.Option {
	return []ops.Option{
		ops.WithMethod(o.Method),
		ops.WithTolerance(o.Tolerance),
		ops.WithMaxCondition(o.MaxCondition),
	}
}
