// SPDX-License-Identifier: MIT

package ops

import "errors"

var (
	// ErrSingular is returned when the input does not have full column rank
	// (or a zero pivot is met during LU), so no unique solution exists.
	ErrSingular = errors.New("ops: matrix is singular")

	// ErrIllConditioned is returned when the estimated condition number
	// exceeds the configured ceiling.
	ErrIllConditioned = errors.New("ops: matrix is ill-conditioned")

	// ErrFactorization is returned when the SVD kernel reports failure.
	ErrFactorization = errors.New("ops: factorization failed")
)
