// SPDX-License-Identifier: MIT

package estimator

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/katalvlaran/linse/gate"
	"github.com/katalvlaran/linse/logger"
	"github.com/katalvlaran/linse/network"
	"github.com/katalvlaran/linse/observability"
	"github.com/katalvlaran/linse/phasor"
	"github.com/katalvlaran/linse/selection"
	"github.com/katalvlaran/linse/topology"
)

// Result is the outcome of one successful cycle.
type Result struct {
	CycleID uuid.UUID

	// Buses are the solved buses in column order, estimates per-unit.
	Buses []topology.ObservedBus
	// State is the per-unit state vector.
	State []complex128

	Active        selection.Selection
	Included      selection.Selection
	Observability observability.Summary

	MatrixRebuilt bool
	Fingerprint   uint64

	// Output holds the published keys.
	Output   phasor.Frame
	Duration time.Duration
}

// Outcome pairs a result with its error for streaming.
type Outcome struct {
	Result *Result
	Err    error
}

// Estimator runs estimation cycles over one network and catalog. Cycles are
// serialized; Run may be called from several goroutines.
type Estimator struct {
	mu sync.Mutex

	net  *network.Network
	cat  *phasor.Catalog
	opts Options
	sel  selection.Selector

	cache   gate.Cache[*System]
	metrics *metrics
}

// New returns an estimator over net and cat.
func New(net *network.Network, cat *phasor.Catalog, opts ...Option) (*Estimator, error) {
	if net == nil || cat == nil {
		return nil, ErrNilInput
	}
	o := gatherOptions(opts)

	return &Estimator{
		net:     net,
		cat:     cat,
		opts:    o,
		sel:     selection.Selector{Mode: o.Mode},
		metrics: newMetrics(o.Registerer),
	}, nil
}

// Options returns the effective configuration.
func (e *Estimator) Options() Options { return e.opts }

// Run executes one cycle over frame.
// Blueprint:
//
//	Stage 1 (Ingest): status words, measurements, breaker and tap inputs.
//	Stage 2 (Select): active groups under the configured phase mode.
//	Stage 3 (Resolve): buses of every owner, observability, pruning.
//	Stage 4 (Include): groups whose terminals survived; buses no included
//	                   row references are dropped until nothing changes.
//	Stage 5 (Gate): reuse or rebuild H and its pseudo-inverse.
//	Stage 6 (Solve): state = H⁺·z, bus estimates, back-substitution.
//	Stage 7 (Publish): output keys.
//
// Errors: ErrNoVoltageMeasurements, ErrNumerical, ErrSolveTimeout, ctx errors.
func (e *Estimator) Run(ctx context.Context, frame phasor.Frame) (*Result, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	start := time.Now()
	id := uuid.New()
	logger.Debug("cycle start", "cycle", id, "keys", len(frame))

	res, err := e.run(ctx, id, frame)
	elapsed := time.Since(start)
	e.metrics.duration.Observe(elapsed.Seconds())
	e.metrics.cycles.WithLabelValues(resultLabel(err)).Inc()
	if err != nil {
		logger.Error("cycle failed", "cycle", id, "err", err)
		return nil, err
	}
	res.Duration = elapsed
	e.metrics.observed.Set(float64(len(res.Buses)))
	logger.Debug("cycle done", "cycle", id, "buses", len(res.Buses), "rebuilt", res.MatrixRebuilt, "elapsed", elapsed)

	return res, nil
}

func (e *Estimator) run(ctx context.Context, id uuid.UUID, frame phasor.Frame) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Stage 1: ingest
	e.cat.Ingest(frame, e.opts.AcceptMeasurements, e.opts.AcceptEstimates)
	e.applyDiscreteInputs()

	// Stage 2: active selection
	active := e.sel.Active(e.cat)

	// Stage 3: topology and observability
	buses, err := topology.ResolveNetwork(e.net)
	if err != nil {
		return nil, fmt.Errorf("Run: %w", err)
	}
	e.net.ResetObservation()
	kept, summary := observability.CheckNetwork(e.net, buses, active.Voltages, active.CurrentFlows)
	if summary.Pruned > 0 {
		logger.Debug("buses pruned", "cycle", id, "pruned", summary.Pruned, "kept", len(kept))
	}

	// Stage 4: included selection over a fixed point of bus retention
	included := e.sel.Included(e.net, active, kept)
	for {
		var dropped int
		kept, dropped = observability.Retain(e.net, kept, included.Nodes(), &summary)
		if dropped == 0 {
			break
		}
		logger.Debug("buses without rows dropped", "cycle", id, "dropped", dropped, "kept", len(kept))
		included = e.sel.Included(e.net, active, kept)
	}
	if len(included.Voltages) == 0 {
		return nil, fmt.Errorf("Run: %w", ErrNoVoltageMeasurements)
	}
	model := NewModel(e.net, e.opts.Mode, e.opts.BaseMVA, kept, included)

	// Stage 5: gate
	snap := gate.Capture(e.cat, e.net, included, kept)
	sys, rebuilt, err := e.cache.Get(snap, func() (*System, error) {
		return e.rebuild(ctx, model)
	})
	if err != nil {
		return nil, fmt.Errorf("Run: %w", err)
	}
	if rebuilt {
		e.metrics.rebuilds.Inc()
		logger.Info("system matrix rebuilt", "cycle", id,
			"rows", sys.H.Rows(), "cols", sys.H.Cols(), "fingerprint", e.cache.Fingerprint())
	}

	// Stage 6: solve and back-substitute
	z, err := MeasurementVector(model)
	if err != nil {
		return nil, fmt.Errorf("Run: %w", err)
	}
	state, err := sys.State(z)
	if err != nil {
		return nil, fmt.Errorf("Run: %w", err)
	}
	model.Scatter(state)
	estimated, err := model.BackSubstitute(state, e.cat.Groups())
	if err != nil {
		return nil, fmt.Errorf("Run: %w", err)
	}

	// Stage 7: publish
	inc := make(map[*phasor.Group]bool, included.Len())
	for _, g := range model.Groups() {
		inc[g] = true
	}

	return &Result{
		CycleID:       id,
		Buses:         model.Buses,
		State:         state,
		Active:        active,
		Included:      included,
		Observability: summary,
		MatrixRebuilt: rebuilt,
		Fingerprint:   e.cache.Fingerprint(),
		Output:        buildOutput(e.opts.Output, e.opts.Mode, e.net, estimated, inc),
	}, nil
}

// rebuild assembles H and factorizes it within the solve deadline.
func (e *Estimator) rebuild(ctx context.Context, model *Model) (*System, error) {
	h, err := BuildSystemMatrix(model)
	if err != nil {
		return nil, err
	}
	if e.opts.SolveTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.opts.SolveTimeout)
		defer cancel()
	}

	return Solve(ctx, h, e.opts.solver()...)
}

// applyDiscreteInputs moves breaker statuses and tap positions of the
// current frame onto the network. Devices under operator override keep
// their commanded state; a tap that would leave a non-positive ratio keeps
// the previous position.
func (e *Estimator) applyDiscreteInputs() {
	for _, b := range e.cat.Breakers {
		if !b.Present {
			continue
		}
		if d, ok := e.net.Device(b.DeviceID); ok {
			d.ApplyStatus(b.State())
		}
	}
	for _, tp := range e.cat.Taps {
		if !tp.Present {
			continue
		}
		t, ok := e.net.Transformer(tp.TransformerID)
		if !ok {
			continue
		}
		if err := t.SetTapPosition(tp.Value); err != nil {
			logger.Warn("tap position ignored", "transformer", t.ID, "tap", tp.Value, "err", err)
		}
	}
}

// Stream runs one cycle per frame on a single worker and emits outcomes in
// frame order. The output channel closes when frames closes or ctx ends.
func (e *Estimator) Stream(ctx context.Context, frames <-chan phasor.Frame) <-chan Outcome {
	out := make(chan Outcome)
	go func() {
		defer close(out)
		for {
			select {
			case <-ctx.Done():
				return
			case f, ok := <-frames:
				if !ok {
					return
				}
				r, err := e.Run(ctx, f)
				select {
				case out <- Outcome{Result: r, Err: err}:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return out
}

// CommandDevice forces device id into state until ReleaseDevice.
func (e *Estimator) CommandDevice(id int, state network.DeviceState) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	d, ok := e.net.Device(id)
	if !ok {
		return fmt.Errorf("CommandDevice: device %d: %w", id, network.ErrUnknownDevice)
	}
	d.Command(state)
	logger.Info("device commanded", "device", id, "state", state)

	return nil
}

// ReleaseDevice returns device id to telemetry control.
func (e *Estimator) ReleaseDevice(id int) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	d, ok := e.net.Device(id)
	if !ok {
		return fmt.Errorf("ReleaseDevice: device %d: %w", id, network.ErrUnknownDevice)
	}
	d.Release()
	logger.Info("device released", "device", id)

	return nil
}

// RequiredInputKeys returns every frame key the estimator reads.
func (e *Estimator) RequiredInputKeys() []string {
	return e.cat.InputKeys(e.opts.Mode)
}

// Invalidate drops the cached system; the next cycle rebuilds it.
func (e *Estimator) Invalidate() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.cache.Invalidate()
}

func resultLabel(err error) string {
	switch {
	case err == nil:
		return resultOK
	case errors.Is(err, ErrNoVoltageMeasurements):
		return resultNoVoltage
	case errors.Is(err, ErrNumerical):
		return resultNumerical
	case errors.Is(err, ErrSolveTimeout):
		return resultTimeout
	default:
		return resultError
	}
}
