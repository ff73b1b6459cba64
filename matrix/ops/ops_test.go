package ops_test

import (
	"math/cmplx"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/linse/matrix"
	"github.com/katalvlaran/linse/matrix/ops"
)

const tol = 1e-9

func requireClose(t *testing.T, want, got *matrix.Dense) {
	t.Helper()
	require.Equal(t, want.Rows(), got.Rows())
	require.Equal(t, want.Cols(), got.Cols())
	for i := 0; i < want.Rows(); i++ {
		for j := 0; j < want.Cols(); j++ {
			w, _ := want.At(i, j)
			g, _ := got.At(i, j)
			assert.InDelta(t, 0, cmplx.Abs(w-g), tol, "cell (%d,%d): want %v got %v", i, j, w, g)
		}
	}
}

func TestLU_Reconstructs(t *testing.T) {
	a, err := matrix.NewFromRows([][]complex128{
		{0, 2 + 1i, 1},
		{1, 1, 0},
		{3i, 0, 4},
	})
	require.NoError(t, err)

	f, err := ops.LU(a)
	require.NoError(t, err)

	lu, err := matrix.Mul(f.L(), f.U())
	require.NoError(t, err)

	// P·A must equal L·U.
	perm := f.Perm()
	pa, _ := matrix.NewDense(3, 3)
	for i, src := range perm {
		row, _ := a.Row(src)
		for j, v := range row {
			_ = pa.Set(i, j, v)
		}
	}
	requireClose(t, pa, lu)
}

func TestLU_Singular(t *testing.T) {
	a, err := matrix.NewFromRows([][]complex128{{1, 2}, {2, 4}})
	require.NoError(t, err)

	_, err = ops.LU(a)
	require.ErrorIs(t, err, ops.ErrSingular)

	rect, _ := matrix.NewDense(2, 3)
	_, err = ops.LU(rect)
	require.ErrorIs(t, err, matrix.ErrNonSquare)
}

func TestInverse(t *testing.T) {
	a, err := matrix.NewFromRows([][]complex128{{2, 1i}, {-1i, 3}})
	require.NoError(t, err)

	inv, err := ops.Inverse(a)
	require.NoError(t, err)

	id, _ := matrix.NewIdentity(2)
	p, err := matrix.Mul(a, inv)
	require.NoError(t, err)
	requireClose(t, id, p)
}

func TestPseudoInverse_Methods(t *testing.T) {
	h, err := matrix.NewFromRows([][]complex128{
		{1, 0},
		{0, 1},
		{5 - 10i, -5 + 10i},
		{1, 1},
	})
	require.NoError(t, err)

	for _, m := range []ops.Method{ops.MethodSVD, ops.MethodNormalEquations} {
		t.Run(m.String(), func(t *testing.T) {
			p, err := ops.PseudoInverse(h, ops.WithMethod(m))
			require.NoError(t, err)
			require.Equal(t, 2, p.Rows())
			require.Equal(t, 4, p.Cols())

			// Full column rank: H⁺·H = I.
			ph, err := matrix.Mul(p, h)
			require.NoError(t, err)
			id, _ := matrix.NewIdentity(2)
			requireClose(t, id, ph)
		})
	}
}

func TestPseudoInverse_RecoversState(t *testing.T) {
	h, err := matrix.NewFromRows([][]complex128{{1, 0}, {0, 1}, {2 - 3i, -2 + 3i}})
	require.NoError(t, err)
	x := []complex128{1.02 + 0.01i, 0.98 - 0.05i}
	z, err := matrix.MulVec(h, x)
	require.NoError(t, err)

	p, err := ops.PseudoInverse(h)
	require.NoError(t, err)
	got, err := matrix.MulVec(p, z)
	require.NoError(t, err)
	for i := range x {
		assert.InDelta(t, 0, cmplx.Abs(x[i]-got[i]), tol)
	}
}

func TestPseudoInverse_Failures(t *testing.T) {
	_, err := ops.PseudoInverse(nil)
	require.ErrorIs(t, err, matrix.ErrNilMatrix)

	wide, _ := matrix.NewDense(1, 2)
	_, err = ops.PseudoInverse(wide)
	require.ErrorIs(t, err, ops.ErrSingular)

	dep, _ := matrix.NewFromRows([][]complex128{{1, 1}, {2, 2}, {3i, 3i}})
	_, err = ops.PseudoInverse(dep)
	require.ErrorIs(t, err, ops.ErrSingular)
	_, err = ops.PseudoInverse(dep, ops.WithMethod(ops.MethodNormalEquations))
	require.ErrorIs(t, err, ops.ErrSingular)

	ill, _ := matrix.NewFromRows([][]complex128{{1, 0}, {0, 1e-7}})
	_, err = ops.PseudoInverse(ill, ops.WithMaxCondition(1e3))
	require.ErrorIs(t, err, ops.ErrIllConditioned)
}
