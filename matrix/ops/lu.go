// SPDX-License-Identifier: MIT

package ops

import (
	"fmt"
	"math/cmplx"

	"github.com/katalvlaran/linse/matrix"
)

// Factors holds an LU decomposition P·A = L·U of a square complex matrix.
// L is unit lower triangular and stored below the diagonal of lu; U occupies
// the diagonal and above. perm[i] is the source row of row i.
type Factors struct {
	n    int
	lu   [][]complex128
	perm []int
}

// LU performs Doolittle LU decomposition with partial (row) pivoting.
// MAIN DESCRIPTION:
//   - Factor a square complex matrix as P·A = L·U for repeated solves.
//
// Implementation:
//   - Stage 1 (Validate): ensure m is square.
//   - Stage 2 (Prepare): copy m into a row-slice workspace and find max|a_ij|.
//   - Stage 3 (Execute): per column k, pick the largest-modulus pivot in
//     rows k..n-1, swap it up, then eliminate below the diagonal.
//
// Behavior highlights:
//   - Row swaps exchange slice headers, never elements.
//   - L multipliers overwrite the eliminated entries; U stays in place.
//
// Inputs:
//   - m: square matrix; not modified.
//
// Returns:
//   - *Factors: packed L\U plus the row permutation.
//
// Errors:
//   - matrix.ErrNilMatrix, matrix.ErrNonSquare (wrapped "LU: ...").
//   - ErrSingular for a zero matrix or a pivot <= DefaultTolerance·max|a_ij|.
//
// Determinism:
//   - Ties in pivot modulus keep the lowest row index.
//
// Complexity:
//   - Time O(n³), Space O(n²).
func LU(m *matrix.Dense) (*Factors, error) {
	// Stage 1: Validate input shape
	if err := matrix.ValidateSquare(m); err != nil {
		return nil, fmt.Errorf("LU: %w", err)
	}
	n := m.Rows() // common dimension

	// Stage 2: Prepare workspace and scale reference
	var (
		a      = make([][]complex128, n) // working rows; become L\U
		perm   = make([]int, n)          // perm[i] = source row of row i
		maxAbs float64                   // largest modulus in m
	)
	for i := 0; i < n; i++ {
		row, _ := m.Row(i) // i is in range by construction
		a[i] = row
		perm[i] = i // identity permutation
		for _, v := range row {
			if av := cmplx.Abs(v); av > maxAbs {
				maxAbs = av
			}
		}
	}
	if maxAbs == 0 {
		return nil, fmt.Errorf("LU: zero matrix: %w", ErrSingular)
	}
	threshold := DefaultTolerance * maxAbs // relative pivot floor

	// Stage 3: Eliminate column by column
	var (
		i, j, k, p int        // loop indices and pivot row
		best, av   float64    // best pivot modulus so far, candidate modulus
		factor     complex128 // L multiplier for row i
	)
	for k = 0; k < n; k++ {
		// search rows k..n-1 for the largest pivot in column k
		p, best = k, cmplx.Abs(a[k][k])
		for i = k + 1; i < n; i++ {
			if av = cmplx.Abs(a[i][k]); av > best {
				p, best = i, av
			}
		}
		if best <= threshold {
			return nil, fmt.Errorf("LU: pivot %d below %g: %w", k, threshold, ErrSingular)
		}
		// bring the pivot row up
		if p != k {
			a[p], a[k] = a[k], a[p]
			perm[p], perm[k] = perm[k], perm[p]
		}
		// eliminate below the pivot
		for i = k + 1; i < n; i++ {
			factor = a[i][k] / a[k][k] // multiplier l_ik
			a[i][k] = factor           // store L below the diagonal
			if factor == 0 {
				continue
			}
			for j = k + 1; j < n; j++ {
				a[i][j] -= factor * a[k][j] // update trailing row
			}
		}
	}

	// Stage 4: Finalize
	return &Factors{n: n, lu: a, perm: perm}, nil
}

// Solve returns x with A·x = b using forward then backward substitution.
// MAIN DESCRIPTION:
//   - Reuse the factorization for one right-hand side.
//
// Implementation:
//   - Stage 1: forward substitution L·y = P·b (unit diagonal).
//   - Stage 2: backward substitution U·x = y, in place over y.
//
// Errors:
//   - matrix.ErrDimensionMismatch when len(b) != n.
//
// Complexity:
//   - Time O(n²), Space O(n).
func (f *Factors) Solve(b []complex128) ([]complex128, error) {
	if len(b) != f.n {
		return nil, fmt.Errorf("Factors.Solve: len %d, want %d: %w", len(b), f.n, matrix.ErrDimensionMismatch)
	}
	var (
		i, k int
		sum  complex128
		y    = make([]complex128, f.n)
	)
	// Forward substitution: L·y = P·b
	for i = 0; i < f.n; i++ {
		sum = b[f.perm[i]] // permuted right-hand side
		for k = 0; k < i; k++ {
			sum -= f.lu[i][k] * y[k] // subtract known terms
		}
		y[i] = sum // l_ii == 1
	}
	// Backward substitution: U·x = y (in place)
	for i = f.n - 1; i >= 0; i-- {
		sum = y[i]
		for k = i + 1; k < f.n; k++ {
			sum -= f.lu[i][k] * y[k] // y[k] already holds x[k]
		}
		y[i] = sum / f.lu[i][i] // divide by pivot u_ii
	}

	return y, nil
}

// L returns the unit lower triangular factor as a new matrix.
func (f *Factors) L() *matrix.Dense {
	out, _ := matrix.NewIdentity(f.n)
	for i := 1; i < f.n; i++ {
		for j := 0; j < i; j++ {
			_ = out.Set(i, j, f.lu[i][j])
		}
	}

	return out
}

// U returns the upper triangular factor as a new matrix.
func (f *Factors) U() *matrix.Dense {
	out, _ := matrix.NewDense(f.n, f.n)
	for i := 0; i < f.n; i++ {
		for j := i; j < f.n; j++ {
			_ = out.Set(i, j, f.lu[i][j])
		}
	}

	return out
}

// Perm returns a copy of the row permutation.
func (f *Factors) Perm() []int {
	out := make([]int, len(f.perm))
	copy(out, f.perm)

	return out
}
