// SPDX-License-Identifier: MIT

package ops

import (
	"fmt"

	"github.com/katalvlaran/linse/matrix"
)

// Inverse returns the inverse of the square matrix m.
// Blueprint:
//
//	Stage 1 (Decompose): P·A = L·U.
//	Stage 2 (Execute): for each identity column eᵢ solve A·x = eᵢ.
//	Stage 3 (Finalize): assemble columns into the inverse.
//
// Complexity: O(n³) time, O(n²) memory.
func Inverse(m *matrix.Dense) (*matrix.Dense, error) {
	// Stage 1: LU decomposition
	f, err := LU(m)
	if err != nil {
		return nil, fmt.Errorf("Inverse: %w", err)
	}

	// Stage 2: Solve one column at a time
	n := f.n
	inv, err := matrix.NewDense(n, n)
	if err != nil {
		return nil, fmt.Errorf("Inverse: %w", err)
	}
	e := make([]complex128, n)
	for col := 0; col < n; col++ {
		for i := range e {
			e[i] = 0
		}
		e[col] = 1
		x, err := f.Solve(e)
		if err != nil {
			return nil, fmt.Errorf("Inverse: %w", err)
		}
		// Stage 3: Write the solved column
		for i, v := range x {
			if err = inv.Set(i, col, v); err != nil {
				return nil, fmt.Errorf("Inverse: %w", err)
			}
		}
	}

	return inv, nil
}
