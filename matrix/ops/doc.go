// Package ops provides decompositions and inverses for matrix.Dense:
// LU with partial pivoting, square inverse, and the Moore–Penrose
// pseudo-inverse used as the least-squares solution operator of an
// overdetermined measurement model.
//
// What:
//
//   - LU(m):               P·A = L·U with row pivoting (complex Doolittle).
//   - Inverse(m):          A⁻¹ through LU and per-column substitution.
//   - PseudoInverse(m, …): H⁺ through either
//   - MethodSVD (default): gonum's real SVD of the embedding
//     [[Re H, −Im H], [Im H, Re H]], whose pseudo-inverse is the
//     embedding of H⁺.
//   - MethodNormalEquations: (HᴴH)⁻¹Hᴴ, cheaper, squares the condition number.
//
// Errors:
//
//   - ErrSingular        rank-deficient input (state not determined)
//   - ErrIllConditioned  condition number above the configured ceiling
//   - ErrFactorization   the SVD kernel failed to converge
//   - matrix sentinels   shape / nil violations
//
// Complexity:
//
//   - LU, Inverse: O(n³) time, O(n²) memory.
//   - PseudoInverse (SVD): O(m·n²) on the 2m×2n embedding.
package ops
