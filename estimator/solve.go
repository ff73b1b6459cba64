// SPDX-License-Identifier: MIT

package estimator

import (
	"context"
	"errors"
	"fmt"

	"github.com/katalvlaran/linse/matrix"
	"github.com/katalvlaran/linse/matrix/ops"
)

// System is a factorized measurement model: H and its pseudo-inverse.
// It is immutable once built and shared across cycles by the gate cache.
type System struct {
	H    *matrix.Dense
	Pinv *matrix.Dense
}

// Solve computes the pseudo-inverse of h under ctx. Factorization failures
// are wrapped as ErrNumerical; an expired ctx yields ErrSolveTimeout.
func Solve(ctx context.Context, h *matrix.Dense, opts ...ops.Option) (*System, error) {
	if err := ctx.Err(); err != nil {
		return nil, solveAborted(err)
	}
	type outcome struct {
		pinv *matrix.Dense
		err  error
	}
	done := make(chan outcome, 1)
	go func() {
		p, err := ops.PseudoInverse(h, opts...)
		done <- outcome{pinv: p, err: err}
	}()

	select {
	case <-ctx.Done():
		return nil, solveAborted(ctx.Err())
	case r := <-done:
		if r.err != nil {
			return nil, fmt.Errorf("Solve: %w: %w", ErrNumerical, r.err)
		}
		return &System{H: h, Pinv: r.pinv}, nil
	}
}

func solveAborted(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("Solve: %w", ErrSolveTimeout)
	}

	return fmt.Errorf("Solve: %w", err)
}

// State returns pinv·z.
func (s *System) State(z []complex128) ([]complex128, error) {
	x, err := matrix.MulVec(s.Pinv, z)
	if err != nil {
		return nil, fmt.Errorf("State: %w", err)
	}

	return x, nil
}
