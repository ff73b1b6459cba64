// Package matrix provides a complex-valued, row-major dense matrix used to
// assemble the measurement model of the linear state estimator.
//
// What:
//
//   - Dense: complex128 storage in a flat slice with bounds-checked At/Set/Add.
//   - Block placement (SetBlock/AddBlock) for three-phase submatrices.
//   - Products: Mul, MulVec, ConjTranspose, Scale.
//
// Why:
//
//   - Measurement matrices mix voltage rows (identity) and current rows
//     (branch admittances); both are naturally complex.
//   - A small, explicit surface keeps the assembler free of index arithmetic
//     and shape bugs, which all surface as sentinel errors.
//
// Errors:
//
//   - ErrInvalidDimensions  rows or cols <= 0
//   - ErrOutOfRange         index outside bounds
//   - ErrDimensionMismatch  incompatible operand shapes
//   - ErrNonSquare          square matrix required
//   - ErrNaNInf             non-finite value written
//   - ErrNilMatrix          nil operand
//
// Decompositions and inverses live in the ops subpackage.
package matrix
