// SPDX-License-Identifier: MIT

package estimator

import "errors"

var (
	// ErrNoVoltageMeasurements indicates a cycle with zero included voltage
	// groups; the system has no reference and cannot be solved.
	ErrNoVoltageMeasurements = errors.New("estimator: no voltage measurements included")

	// ErrNumerical wraps factorization failures of the system matrix.
	// errors.Is also matches the underlying ops error.
	ErrNumerical = errors.New("estimator: numerical failure")

	// ErrSolveTimeout indicates the solve did not finish within its deadline.
	ErrSolveTimeout = errors.New("estimator: solve deadline exceeded")

	// ErrUnresolvedTerminal indicates a group whose node is not on a solved bus.
	ErrUnresolvedTerminal = errors.New("estimator: terminal not on an observed bus")

	// ErrNilInput indicates a nil network or catalog.
	ErrNilInput = errors.New("estimator: nil network or catalog")
)
