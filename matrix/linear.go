// SPDX-License-Identifier: MIT
// Package matrix: products and transposes.
//
// Determinism:
//   - Fixed i-k-j loop order; results are reproducible bit for bit.

package matrix

import "fmt"

// ConjTranspose returns the Hermitian transpose mᴴ.
// Complexity: O(r*c).
func ConjTranspose(m *Dense) (*Dense, error) {
	if m == nil {
		return nil, fmt.Errorf("ConjTranspose: %w", ErrNilMatrix)
	}
	out := &Dense{r: m.c, c: m.r, data: make([]complex128, len(m.data))}
	for i := 0; i < m.r; i++ {
		for j := 0; j < m.c; j++ {
			v := m.data[i*m.c+j]
			out.data[j*m.r+i] = complex(real(v), -imag(v))
		}
	}

	return out, nil
}

// Mul returns the matrix product a × b.
// MAIN DESCRIPTION:
//   - Dense product used for Gram matrices and normal-equation pseudo-inverses.
//
// Implementation:
//   - Stage 1: validate operands and inner dimension.
//   - Stage 2: i-k-j loop; each a[i][k] scales row k of b into row i of out.
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch when a.Cols != b.Rows.
//
// Complexity:
//   - Time O(r*n*c), Space O(r*c).
func Mul(a, b *Dense) (*Dense, error) {
	if a == nil || b == nil {
		return nil, fmt.Errorf("Mul: %w", ErrNilMatrix)
	}
	if a.c != b.r {
		return nil, fmt.Errorf("Mul: %dx%d by %dx%d: %w", a.r, a.c, b.r, b.c, ErrDimensionMismatch)
	}
	out := &Dense{r: a.r, c: b.c, data: make([]complex128, a.r*b.c)}
	var (
		i, k, j int
		aik     complex128
	)
	for i = 0; i < a.r; i++ {
		row := out.data[i*b.c : (i+1)*b.c]
		for k = 0; k < a.c; k++ {
			aik = a.data[i*a.c+k]
			if aik == 0 {
				continue // structural zero
			}
			bk := b.data[k*b.c : (k+1)*b.c]
			for j = 0; j < b.c; j++ {
				row[j] += aik * bk[j]
			}
		}
	}

	return out, nil
}

// MulVec returns y = m·x.
// MAIN DESCRIPTION:
//   - Applies a cached pseudo-inverse to the measurement vector each cycle.
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch when len(x) != m.Cols().
//
// Complexity:
//   - Time O(r*c), Space O(r).
func MulVec(m *Dense, x []complex128) ([]complex128, error) {
	if m == nil {
		return nil, fmt.Errorf("MulVec: %w", ErrNilMatrix)
	}
	if len(x) != m.c {
		return nil, fmt.Errorf("MulVec: vector length %d, want %d: %w", len(x), m.c, ErrDimensionMismatch)
	}
	y := make([]complex128, m.r)
	for i := 0; i < m.r; i++ {
		var sum complex128
		row := m.data[i*m.c : (i+1)*m.c]
		for j, v := range row {
			sum += v * x[j]
		}
		y[i] = sum
	}

	return y, nil
}

// Scale returns alpha·m as a new matrix.
func Scale(m *Dense, alpha complex128) (*Dense, error) {
	if m == nil {
		return nil, fmt.Errorf("Scale: %w", ErrNilMatrix)
	}
	out := m.Clone()
	for i := range out.data {
		out.data[i] *= alpha
	}

	return out, nil
}

// ValidateSquare checks that m is non-nil and square.
func ValidateSquare(m *Dense) error {
	if m == nil {
		return fmt.Errorf("ValidateSquare: %w", ErrNilMatrix)
	}
	if m.r != m.c {
		return fmt.Errorf("ValidateSquare: %dx%d: %w", m.r, m.c, ErrNonSquare)
	}

	return nil
}
