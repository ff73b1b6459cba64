// SPDX-License-Identifier: MIT

// Package matrix - Dense storage (row-major, complex128) & safe accessors.
//
// Purpose:
//   - Provide a flat row-major buffer with the explicit index formula i*cols + j.
//   - Guarantee safety at the public surface: At/Set/Add return errors instead of panicking.
//   - Keep algorithmic determinism (fixed loop orders, no map iteration).
//   - Reject NaN/Inf components on every write.
//   - Support block placement for assembling per-phase 3×3 coefficient blocks.
//
// Complexity quicksheet:
//   - NewDense: O(r*c) zero-init; At/Set/Add: O(1); Clone/Row: O(r*c)/O(c);
//     SetBlock/AddBlock: O(h*w) for an h×w block.

package matrix

import (
	"fmt"
	"math"
	"math/cmplx"
	"strings"
)

// ---------- error context tags ----------

const (
	ctxAt       = "At"       // method tag used in error wrappers
	ctxSet      = "Set"      // method tag used in error wrappers
	ctxAdd      = "Add"      // method tag used in error wrappers
	ctxRow      = "Row"      // method tag used in error wrappers
	ctxSetBlock = "SetBlock" // method tag used in error wrappers
	ctxAddBlock = "AddBlock" // method tag used in error wrappers
)

// ---------- formatting literals ----------

const (
	_fmtRowOpen  = "["
	_fmtRowClose = "]\n"
	_fmtSep      = ", "
)

// denseErrorf wraps an error with a uniform Dense context and callsite indices.
// MAIN DESCRIPTION:
//   - Attach method context and coordinates to a sentinel error for diagnostics.
//
// Implementation:
//   - Stage 1: format "Dense.<method>(row,col): %w".
//   - Stage 2: return wrapped error.
//
// Complexity:
//   - Time O(1), Space O(1).
func denseErrorf(method string, row, col int, err error) error {
	return fmt.Errorf("Dense.%s(%d,%d): %w", method, row, col, err)
}

// Dense is a concrete row-major matrix of complex128 values.
//   - r,c hold dimensions (rows, cols).
//   - data is a flat buffer of length r*c in row-major order (offset = i*c + j).
type Dense struct {
	r, c int          // row and column counts (> 0)
	data []complex128 // contiguous row-major storage (len == r*c)
}

// Compile-time assertion for fmt.Stringer conformance.
var _ fmt.Stringer = (*Dense)(nil)

// NewDense creates an r×c zero matrix using row-major storage.
// MAIN DESCRIPTION:
//   - Public constructor for Dense with strict shape validation.
//
// Implementation:
//   - Stage 1: validate rows>0 && cols>0; else ErrInvalidDimensions.
//   - Stage 2: allocate a zero-filled buffer.
//
// Behavior highlights:
//   - No panics on user errors; returns sentinel errors.
//   - Empty dimensions are rejected; a measurement model always has rows and columns.
//
// Inputs:
//   - rows: positive number of rows
//   - cols: positive number of columns
//
// Returns:
//   - *Dense: newly allocated matrix.
//
// Errors:
//   - ErrInvalidDimensions (shape contract violation).
//
// Complexity:
//   - Time O(r*c), Space O(r*c).
func NewDense(rows, cols int) (*Dense, error) {
	// Validate shape.
	if rows <= 0 || cols <= 0 {
		return nil, ErrInvalidDimensions
	}
	// Allocate a contiguous flat buffer; make() zero-fills it.
	buf := make([]complex128, rows*cols)

	return &Dense{r: rows, c: cols, data: buf}, nil
}

// NewIdentity returns the n×n identity matrix.
// MAIN DESCRIPTION:
//   - Convenience constructor used for voltage rows and unit lower factors.
//
// Errors:
//   - ErrInvalidDimensions when n <= 0.
//
// Complexity:
//   - Time O(n²), Space O(n²).
func NewIdentity(n int) (*Dense, error) {
	m, err := NewDense(n, n)
	if err != nil {
		return nil, err
	}
	for i := 0; i < n; i++ {
		m.data[i*n+i] = 1 // diagonal offset
	}

	return m, nil
}

// NewFromRows builds a Dense from a rectangular slice of rows.
// MAIN DESCRIPTION:
//   - Literal constructor for tests and small fixed blocks.
//
// Implementation:
//   - Stage 1: reject empty input (ErrInvalidDimensions).
//   - Stage 2: allocate r×c where c = len(rows[0]).
//   - Stage 3: copy row by row, rejecting ragged rows (ErrDimensionMismatch).
//
// Notes:
//   - Values are copied; later edits to rows do not reach the matrix.
//   - Values are not checked for NaN/Inf; use Set for checked writes.
//
// Complexity:
//   - Time O(r*c), Space O(r*c).
func NewFromRows(rows [][]complex128) (*Dense, error) {
	// Stage 1: shape presence
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, ErrInvalidDimensions
	}
	// Stage 2: allocate
	m, err := NewDense(len(rows), len(rows[0]))
	if err != nil {
		return nil, err
	}
	// Stage 3: copy rows
	for i, row := range rows {
		if len(row) != m.c {
			return nil, fmt.Errorf("NewFromRows: row %d has %d cols, want %d: %w", i, len(row), m.c, ErrDimensionMismatch)
		}
		copy(m.data[i*m.c:(i+1)*m.c], row) // row i occupies [i*c, (i+1)*c)
	}

	return m, nil
}

// Rows returns the number of rows in the matrix.
// Complexity: O(1).
func (m *Dense) Rows() int { return m.r }

// Cols returns the number of columns in the matrix.
// Complexity: O(1).
func (m *Dense) Cols() int { return m.c }

// indexOf computes the flat index for (row, col) or returns ErrOutOfRange.
// Contract:
//   - 0 <= row < r, 0 <= col < c.
func (m *Dense) indexOf(method string, row, col int) (int, error) {
	// Bounds check once; callers reuse the flat offset.
	if row < 0 || row >= m.r || col < 0 || col >= m.c {
		return 0, denseErrorf(method, row, col, ErrOutOfRange)
	}

	return row*m.c + col, nil
}

// At retrieves the element at (row, col).
// MAIN DESCRIPTION:
//   - Safe read accessor with bounds checking.
//
// Errors:
//   - ErrOutOfRange (wrapped with "Dense.At(row,col)").
//
// Complexity:
//   - Time O(1), Space O(1).
func (m *Dense) At(row, col int) (complex128, error) {
	idx, err := m.indexOf(ctxAt, row, col)
	if err != nil {
		return 0, err
	}

	return m.data[idx], nil
}

// Set assigns value v at (row, col).
// MAIN DESCRIPTION:
//   - Safe write accessor with bounds checking and the numeric policy.
//
// Implementation:
//   - Stage 1: resolve the flat index (ErrOutOfRange).
//   - Stage 2: reject non-finite v (ErrNaNInf).
//   - Stage 3: store.
//
// Errors:
//   - ErrOutOfRange, ErrNaNInf (wrapped with "Dense.Set(row,col)").
//
// Complexity:
//   - Time O(1), Space O(1).
func (m *Dense) Set(row, col int, v complex128) error {
	// Stage 1: bounds
	idx, err := m.indexOf(ctxSet, row, col)
	if err != nil {
		return err
	}
	// Stage 2: numeric policy
	if !finite(v) {
		return denseErrorf(ctxSet, row, col, ErrNaNInf)
	}
	// Stage 3: write
	m.data[idx] = v

	return nil
}

// Add accumulates v into (row, col).
// MAIN DESCRIPTION:
//   - Stamping accessor: assembly adds the contribution of each terminal so
//     two terminals landing on one bus column sum.
//
// Errors:
//   - ErrOutOfRange, ErrNaNInf (wrapped with "Dense.Add(row,col)").
//
// Complexity:
//   - Time O(1), Space O(1).
func (m *Dense) Add(row, col int, v complex128) error {
	idx, err := m.indexOf(ctxAdd, row, col)
	if err != nil {
		return err
	}
	if !finite(v) {
		return denseErrorf(ctxAdd, row, col, ErrNaNInf)
	}
	m.data[idx] += v // accumulate in place

	return nil
}

// SetBlock copies block into m with its top-left corner at (row, col).
// MAIN DESCRIPTION:
//   - Overwrites an h×w window of m with block.
//
// Errors:
//   - ErrNilMatrix when block is nil.
//   - ErrOutOfRange when the block does not fit.
//
// Complexity:
//   - Time O(h*w), Space O(1).
func (m *Dense) SetBlock(row, col int, block *Dense) error {
	return m.placeBlock(ctxSetBlock, row, col, block, false)
}

// AddBlock accumulates block into m with its top-left corner at (row, col).
// MAIN DESCRIPTION:
//   - Stamps a per-phase coefficient block (1×1 or 3×3) into the system matrix.
//
// Errors:
//   - ErrNilMatrix when block is nil.
//   - ErrOutOfRange when the block does not fit.
//
// Complexity:
//   - Time O(h*w), Space O(1).
func (m *Dense) AddBlock(row, col int, block *Dense) error {
	return m.placeBlock(ctxAddBlock, row, col, block, true)
}

// placeBlock is the shared kernel of SetBlock and AddBlock.
// Implementation:
//   - Stage 1: validate block presence and fit.
//   - Stage 2: per block row, slice the destination window and copy or add.
func (m *Dense) placeBlock(method string, row, col int, block *Dense, accumulate bool) error {
	// Stage 1: validate
	if block == nil {
		return fmt.Errorf("Dense.%s: %w", method, ErrNilMatrix)
	}
	if row < 0 || col < 0 || row+block.r > m.r || col+block.c > m.c {
		return denseErrorf(method, row, col, ErrOutOfRange)
	}
	// Stage 2: row-wise transfer
	for i := 0; i < block.r; i++ {
		dst := m.data[(row+i)*m.c+col : (row+i)*m.c+col+block.c] // window row in m
		src := block.data[i*block.c : (i+1)*block.c]             // row i of block
		if accumulate {
			for j := range src {
				dst[j] += src[j]
			}
			continue
		}
		copy(dst, src)
	}

	return nil
}

// Row returns a copy of row i.
// Errors:
//   - ErrOutOfRange when i is outside [0, r).
//
// Complexity:
//   - Time O(c), Space O(c).
func (m *Dense) Row(i int) ([]complex128, error) {
	if i < 0 || i >= m.r {
		return nil, denseErrorf(ctxRow, i, 0, ErrOutOfRange)
	}
	out := make([]complex128, m.c)
	copy(out, m.data[i*m.c:(i+1)*m.c]) // detach from backing storage

	return out, nil
}

// Clone returns a deep copy of the Dense matrix.
// Complexity:
//   - Time O(r*c), Space O(r*c).
func (m *Dense) Clone() *Dense {
	data := make([]complex128, len(m.data))
	copy(data, m.data)

	return &Dense{r: m.r, c: m.c, data: data}
}

// String implements fmt.Stringer for debugging.
// Each row renders as "[v00, v01, ...]" followed by a newline.
func (m *Dense) String() string {
	var b strings.Builder
	for i := 0; i < m.r; i++ {
		b.WriteString(_fmtRowOpen)
		for j := 0; j < m.c; j++ {
			if j > 0 {
				b.WriteString(_fmtSep)
			}
			fmt.Fprintf(&b, "%g", m.data[i*m.c+j])
		}
		b.WriteString(_fmtRowClose)
	}

	return b.String()
}

// finite reports whether both components of v are finite.
func finite(v complex128) bool {
	re, im := real(v), imag(v)
	return !cmplx.IsNaN(v) && !math.IsInf(re, 0) && !math.IsInf(im, 0)
}
