package qsim_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"qtermsim/qsim"
)

// mat builds a matrix from real-valued rows.
func mat(t *testing.T, rows ...[]float64) *qsim.Matrix {
	t.Helper()
	cr := make([][]qsim.Complex, len(rows))
	for i, row := range rows {
		cr[i] = make([]qsim.Complex, len(row))
		for j, v := range row {
			cr[i][j] = qsim.C(v, 0)
		}
	}
	m, err := qsim.NewMatrix(cr)
	require.NoError(t, err)
	return m
}

func TestNewMatrixRejectsBadInput(t *testing.T) {
	_, err := qsim.NewMatrix(nil)
	require.ErrorIs(t, err, qsim.ErrDimensionMismatch)

	_, err = qsim.NewMatrix([][]qsim.Complex{{}})
	require.ErrorIs(t, err, qsim.ErrDimensionMismatch)

	_, err = qsim.NewMatrix([][]qsim.Complex{{1, 2}, {3}})
	require.ErrorIs(t, err, qsim.ErrDimensionMismatch)

	_, err = qsim.NewFilled(0, 3, qsim.One)
	require.ErrorIs(t, err, qsim.ErrDimensionMismatch)
}

func TestNewFilledAndAt(t *testing.T) {
	m, err := qsim.NewFilled(2, 3, qsim.C(1, 1))
	require.NoError(t, err)
	require.Equal(t, 2, m.Rows())
	require.Equal(t, 3, m.Cols())

	v, err := m.At(1, 2)
	require.NoError(t, err)
	require.Equal(t, qsim.C(1, 1), v)

	_, err = m.At(2, 0)
	require.ErrorIs(t, err, qsim.ErrIndexOutOfRange)
	_, err = m.At(0, -1)
	require.ErrorIs(t, err, qsim.ErrIndexOutOfRange)
}

func TestIdentity(t *testing.T) {
	id, err := qsim.Identity(3)
	require.NoError(t, err)
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			v, _ := id.At(i, j)
			if i == j {
				require.Equal(t, qsim.One, v)
			} else {
				require.Equal(t, qsim.Zero, v)
			}
		}
	}

	_, err = qsim.Identity(0)
	require.ErrorIs(t, err, qsim.ErrDimensionMismatch)
}

func TestMul(t *testing.T) {
	a := mat(t, []float64{1, 2}, []float64{3, 4})
	b := mat(t, []float64{0, 1}, []float64{1, 0})

	got, err := qsim.Mul(a, b)
	require.NoError(t, err)
	require.True(t, got.Equal(mat(t, []float64{2, 1}, []float64{4, 3})), "got\n%v", got)

	rect := mat(t, []float64{1, 2, 3})
	got, err = qsim.Mul(rect, mat(t, []float64{1}, []float64{1}, []float64{1}))
	require.NoError(t, err)
	r, c := got.Dims()
	require.Equal(t, 1, r)
	require.Equal(t, 1, c)
}

func TestMulDimensionMismatch(t *testing.T) {
	a := mat(t, []float64{1, 2, 3})
	b := mat(t, []float64{1, 2})

	got, err := qsim.Mul(a, b)
	require.ErrorIs(t, err, qsim.ErrDimensionMismatch)
	require.Nil(t, got)
}

func TestMulVec(t *testing.T) {
	m := mat(t, []float64{1, 2}, []float64{3, 4})
	v, err := qsim.MulVec(m, []qsim.Complex{1, qsim.I})
	require.NoError(t, err)
	require.Equal(t, []qsim.Complex{qsim.C(1, 2), qsim.C(3, 4)}, v)

	_, err = qsim.MulVec(m, []qsim.Complex{1, 2, 3})
	require.ErrorIs(t, err, qsim.ErrDimensionMismatch)
}

func TestKron(t *testing.T) {
	a := mat(t, []float64{1, 2}, []float64{3, 4})
	b := mat(t, []float64{0, 5}, []float64{6, 7})

	got := qsim.Kron(a, b)
	want := mat(t,
		[]float64{0, 5, 0, 10},
		[]float64{6, 7, 12, 14},
		[]float64{0, 15, 0, 20},
		[]float64{18, 21, 24, 28},
	)
	require.True(t, got.Equal(want), "got\n%v", got)

	rect := qsim.Kron(mat(t, []float64{1, 2, 3}), mat(t, []float64{1}, []float64{2}))
	r, c := rect.Dims()
	require.Equal(t, 2, r)
	require.Equal(t, 3, c)
}

func TestKronAssociative(t *testing.T) {
	a := mat(t, []float64{1, -2}, []float64{0.5, 3})
	b := qsim.Hadamard()
	c := qsim.PauliY()

	left := qsim.Kron(qsim.Kron(a, b), c)
	right := qsim.Kron(a, qsim.Kron(b, c))
	require.True(t, left.ApproxEqual(right, 1e-12))
}

func TestConjTransposeAndUnitary(t *testing.T) {
	for name, g := range map[string]*qsim.Matrix{
		"H":    qsim.Hadamard(),
		"Y":    qsim.PauliY(),
		"T":    qsim.TGate(),
		"CNOT": qsim.CNOT(),
		"RX":   qsim.RX(0.3),
	} {
		require.True(t, g.IsUnitary(1e-12), name)
	}
	require.False(t, mat(t, []float64{1, 1}, []float64{0, 1}).IsUnitary(1e-9))
	require.False(t, mat(t, []float64{1, 0, 0}).IsUnitary(1e-9))

	adj := qsim.PauliY().ConjTranspose()
	require.True(t, adj.Equal(qsim.PauliY()))
}
