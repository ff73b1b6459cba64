// SPDX-License-Identifier: MIT

package ops

import (
	"fmt"
	"math"
	"math/cmplx"

	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/linse/matrix"
)

// PseudoInverse returns the Moore–Penrose pseudo-inverse H⁺ (n×m) of the
// m×n matrix h.
// MAIN DESCRIPTION:
//   - Least-squares solution operator for the linear measurement model z = H·x.
//
// Implementation:
//   - Stage 1: validate h and the row count (m >= n).
//   - Stage 2: dispatch on Options.Method:
//   - MethodSVD: SVD of the real embedding, rank and condition checks,
//     then E⁺ = V·Σ⁻¹·Uᵀ folded back to complex.
//   - MethodNormalEquations: (HᴴH)⁻¹Hᴴ via LU.
//
// Behavior highlights:
//   - The input must have full column rank; a rank-deficient h is reported
//     as ErrSingular rather than returning a minimum-norm answer.
//   - h is never modified.
//
// Errors:
//   - matrix.ErrNilMatrix      h == nil.
//   - ErrSingular              rank(h) < n.
//   - ErrIllConditioned        cond(h) > MaxCondition.
//   - ErrFactorization         SVD did not converge.
//
// Complexity:
//   - SVD: Time O(m·n²) on the 2m×2n embedding, Space O(m·n).
//   - Normal equations: Time O(m·n² + n³), Space O(n² + m·n).
func PseudoInverse(h *matrix.Dense, opts ...Option) (*matrix.Dense, error) {
	if h == nil {
		return nil, fmt.Errorf("PseudoInverse: %w", matrix.ErrNilMatrix)
	}
	o := gatherOptions(opts)
	if h.Rows() < h.Cols() {
		return nil, fmt.Errorf("PseudoInverse: %d rows for %d unknowns: %w", h.Rows(), h.Cols(), ErrSingular)
	}
	switch o.Method {
	case MethodNormalEquations:
		return pinvNormal(h, o)
	default:
		return pinvSVD(h, o)
	}
}

// embed returns the real 2m×2n matrix [[Re H, −Im H], [Im H, Re H]].
func embed(h *matrix.Dense) *mat.Dense {
	m, n := h.Rows(), h.Cols()
	e := mat.NewDense(2*m, 2*n, nil)
	for i := 0; i < m; i++ {
		for j := 0; j < n; j++ {
			v, _ := h.At(i, j)
			re, im := real(v), imag(v)
			e.Set(i, j, re)
			e.Set(i, n+j, -im)
			e.Set(m+i, j, im)
			e.Set(m+i, n+j, re)
		}
	}

	return e
}

// pinvSVD computes H⁺ from the SVD of the real embedding E = U·Σ·Vᵀ.
// E⁺ = V·Σ⁻¹·Uᵀ is itself an embedding, so H⁺ = E⁺[0:n,0:m] + i·E⁺[n:2n,0:m].
func pinvSVD(h *matrix.Dense, o Options) (*matrix.Dense, error) {
	// Stage 1: Factorize the embedding
	m, n := h.Rows(), h.Cols()
	var svd mat.SVD
	if ok := svd.Factorize(embed(h), mat.SVDThin); !ok {
		return nil, fmt.Errorf("PseudoInverse: %w", ErrFactorization)
	}
	values := svd.Values(nil)

	// Stage 2: Rank and conditioning (values are sorted descending)
	if len(values) == 0 || values[0] == 0 {
		return nil, fmt.Errorf("PseudoInverse: zero matrix: %w", ErrSingular)
	}
	threshold := o.Tolerance * values[0]
	smallest := values[len(values)-1]
	if smallest <= threshold {
		return nil, fmt.Errorf("PseudoInverse: rank below %d unknowns: %w", n, ErrSingular)
	}
	if cond := values[0] / smallest; cond > o.MaxCondition {
		return nil, fmt.Errorf("PseudoInverse: condition %.3g > %.3g: %w", cond, o.MaxCondition, ErrIllConditioned)
	}

	// Stage 3: Assemble the complex pseudo-inverse block by block
	var u, v mat.Dense
	svd.UTo(&u)
	svd.VTo(&v)
	out, err := matrix.NewDense(n, m)
	if err != nil {
		return nil, fmt.Errorf("PseudoInverse: %w", err)
	}
	var (
		i, j, k int
		re, im  float64
		inv     = make([]float64, len(values))
	)
	for k = range values {
		inv[k] = 1 / values[k]
	}
	for j = 0; j < n; j++ {
		for i = 0; i < m; i++ {
			re, im = 0, 0
			for k = range values {
				w := inv[k] * u.At(i, k)
				re += v.At(j, k) * w
				im += v.At(n+j, k) * w
			}
			if err = out.Set(j, i, complex(re, im)); err != nil {
				return nil, fmt.Errorf("PseudoInverse: %w", err)
			}
		}
	}

	return out, nil
}

// pinvNormal computes (HᴴH)⁻¹Hᴴ. The Gram matrix squares the condition
// number, so the ceiling is checked against MaxCondition².
func pinvNormal(h *matrix.Dense, o Options) (*matrix.Dense, error) {
	hh, err := matrix.ConjTranspose(h)
	if err != nil {
		return nil, fmt.Errorf("PseudoInverse: %w", err)
	}
	gram, err := matrix.Mul(hh, h)
	if err != nil {
		return nil, fmt.Errorf("PseudoInverse: %w", err)
	}
	gi, err := Inverse(gram)
	if err != nil {
		return nil, fmt.Errorf("PseudoInverse: %w", err)
	}
	if cond := norm1(gram) * norm1(gi); cond > o.MaxCondition*o.MaxCondition {
		return nil, fmt.Errorf("PseudoInverse: gram condition %.3g: %w", cond, ErrIllConditioned)
	}
	out, err := matrix.Mul(gi, hh)
	if err != nil {
		return nil, fmt.Errorf("PseudoInverse: %w", err)
	}

	return out, nil
}

// norm1 returns the maximum absolute column sum.
func norm1(m *matrix.Dense) float64 {
	var best float64
	for j := 0; j < m.Cols(); j++ {
		var sum float64
		for i := 0; i < m.Rows(); i++ {
			v, _ := m.At(i, j)
			sum += cmplx.Abs(v)
		}
		best = math.Max(best, sum)
	}

	return best
}
