package qsim_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"qtermsim/qsim"
)

func bellCircuit(t *testing.T, opts ...qsim.Option) *qsim.Circuit {
	t.Helper()
	c, err := qsim.NewCircuit(2, opts...)
	require.NoError(t, err)
	require.NoError(t, c.H(0))
	require.NoError(t, c.CX(0, 1))
	return c
}

func TestNewCircuitErrors(t *testing.T) {
	_, err := qsim.NewCircuit(0)
	require.ErrorIs(t, err, qsim.ErrInvalidQubitCount)

	_, err = qsim.NewCircuit(qsim.DefaultMaxQubits + 1)
	require.ErrorIs(t, err, qsim.ErrTooManyQubits)

	_, err = qsim.NewCircuit(4, qsim.WithMaxQubits(3))
	require.ErrorIs(t, err, qsim.ErrTooManyQubits)

	c, err := qsim.NewCircuit(3, qsim.WithMaxQubits(3))
	require.NoError(t, err)
	require.Equal(t, 3, c.Qubits())
}

func TestNewCircuitHardLimit(t *testing.T) {
	for _, n := range []int{qsim.HardMaxQubits + 1, 40, 64} {
		_, err := qsim.NewCircuit(n, qsim.WithMaxQubits(64))
		require.ErrorIs(t, err, qsim.ErrTooManyQubits, "qubits=%d", n)
	}

	// A raised ceiling is refused even when the register itself is small.
	_, err := qsim.NewCircuit(2, qsim.WithMaxQubits(qsim.HardMaxQubits+1))
	require.ErrorIs(t, err, qsim.ErrTooManyQubits)

	c, err := qsim.NewCircuit(qsim.HardMaxQubits, qsim.WithMaxQubits(qsim.HardMaxQubits))
	require.NoError(t, err)
	require.Equal(t, qsim.HardMaxQubits, c.Qubits())
}

func TestBellStateVector(t *testing.T) {
	state, err := bellCircuit(t).Run()
	require.NoError(t, err)

	r := 1 / math.Sqrt2
	amps := state.Amplitudes()
	require.InDelta(t, r, amps[0].Real(), 1e-9)
	require.InDelta(t, r, amps[3].Real(), 1e-9)
	require.InDelta(t, 0, amps[1].Abs(), 1e-9)
	require.InDelta(t, 0, amps[2].Abs(), 1e-9)
}

func TestBellStateWithExplicitCNOT(t *testing.T) {
	c, err := qsim.NewCircuit(2)
	require.NoError(t, err)
	require.NoError(t, c.H(0))
	require.NoError(t, c.Apply(qsim.CNOT()))

	state, err := c.Run()
	require.NoError(t, err)
	p := state.Probabilities()
	require.InDelta(t, 0.5, p[0], 1e-9)
	require.InDelta(t, 0.5, p[3], 1e-9)
}

func TestBellStateMeasurementCounts(t *testing.T) {
	const shots = 1000
	res, err := bellCircuit(t, qsim.WithSeed(2024)).Measure(shots)
	require.NoError(t, err)

	require.Equal(t, shots, res.Shots())
	require.Equal(t, 0, res.Count("01"))
	require.Equal(t, 0, res.Count("10"))
	require.Equal(t, shots, res.Count("00")+res.Count("11"))
	require.GreaterOrEqual(t, res.Count("00"), 400)
	require.LessOrEqual(t, res.Count("00"), 600)
	require.GreaterOrEqual(t, res.Count("11"), 400)
	require.LessOrEqual(t, res.Count("11"), 600)
}

func TestRunIsIdempotent(t *testing.T) {
	c, err := qsim.NewCircuit(3)
	require.NoError(t, err)
	require.NoError(t, c.H(0))
	require.NoError(t, c.RY(1, 0.4))
	require.NoError(t, c.CX(1, 2))
	require.NoError(t, c.T(2))

	first, err := c.Run()
	require.NoError(t, err)
	second, err := c.Run()
	require.NoError(t, err)
	require.Equal(t, first.Amplitudes(), second.Amplitudes())
	require.Equal(t, 4, c.Len())
}

func TestRunDoesNotShareStateWithMeasure(t *testing.T) {
	c := bellCircuit(t, qsim.WithSeed(1))
	for i := 0; i < 20; i++ {
		idx, err := c.RunAndMeasure()
		require.NoError(t, err)
		require.Contains(t, []int{0, 3}, idx)
	}
	state, err := c.Run()
	require.NoError(t, err)
	require.False(t, state.Collapsed())
	require.InDelta(t, 0.5, state.Probabilities()[0], 1e-9)
}

func TestCircuitApplyDimensionMismatch(t *testing.T) {
	c, err := qsim.NewCircuit(2)
	require.NoError(t, err)
	require.ErrorIs(t, c.Apply(qsim.Hadamard()), qsim.ErrDimensionMismatch)
	require.Equal(t, 0, c.Len())
}

func TestCircuitBuilders(t *testing.T) {
	c, err := qsim.NewCircuit(2)
	require.NoError(t, err)

	require.ErrorIs(t, c.H(2), qsim.ErrQubitOutOfRange)
	require.ErrorIs(t, c.X(-1), qsim.ErrQubitOutOfRange)
	require.ErrorIs(t, c.CX(1, 0), qsim.ErrUnsupportedLayout)
	require.ErrorIs(t, c.CX(0, 2), qsim.ErrQubitOutOfRange)
	require.Equal(t, 0, c.Len())

	// X on qubit 1 flips the least-significant bit: |01⟩.
	require.NoError(t, c.X(1))
	state, err := c.Run()
	require.NoError(t, err)
	require.Equal(t, 1.0, state.Probabilities()[1])

	require.NoError(t, c.Gate("x", []int{0}))
	require.NoError(t, c.Gate("cx", []int{0, 1}))
	state, err = c.Run()
	require.NoError(t, err)
	// |01⟩ → |11⟩ → CX flips qubit 1 → |10⟩
	require.Equal(t, 1.0, state.Probabilities()[2])

	require.ErrorIs(t, c.Gate("rx", []int{0}), qsim.ErrGateArity)
	require.ErrorIs(t, c.Gate("h", []int{0, 1}), qsim.ErrDimensionMismatch)
	require.ErrorIs(t, c.Gate("cx", []int{0}), qsim.ErrDimensionMismatch)

	ops := c.Operations()
	require.Len(t, ops, 3)
	c.Reset()
	require.Equal(t, 0, c.Len())
	require.Len(t, ops, 3)
}

func TestPhaseKickback(t *testing.T) {
	// H Z H = X on a single qubit.
	c, err := qsim.NewCircuit(1)
	require.NoError(t, err)
	require.NoError(t, c.H(0))
	require.NoError(t, c.Z(0))
	require.NoError(t, c.H(0))

	state, err := c.Run()
	require.NoError(t, err)
	require.InDelta(t, 1.0, state.Probabilities()[1], 1e-12)

	// S·S = Z, so H S S H is X as well.
	c.Reset()
	require.NoError(t, c.H(0))
	require.NoError(t, c.S(0))
	require.NoError(t, c.S(0))
	require.NoError(t, c.H(0))
	state, err = c.Run()
	require.NoError(t, err)
	require.InDelta(t, 1.0, state.Probabilities()[1], 1e-12)
}

func TestMeasureInvalidShots(t *testing.T) {
	_, err := bellCircuit(t).Measure(0)
	require.ErrorIs(t, err, qsim.ErrInvalidShots)
}

func TestSeededMeasureIsReproducible(t *testing.T) {
	a, err := bellCircuit(t, qsim.WithSeed(99)).Measure(500)
	require.NoError(t, err)
	b, err := bellCircuit(t, qsim.WithSeed(99)).Measure(500)
	require.NoError(t, err)
	require.Equal(t, a.Counts(), b.Counts())
}

func TestResultSorted(t *testing.T) {
	c, err := qsim.NewCircuit(2, qsim.WithSeed(5))
	require.NoError(t, err)
	require.NoError(t, c.H(0))
	require.NoError(t, c.H(1))

	res, err := c.Measure(400)
	require.NoError(t, err)

	sorted := res.Sorted()
	require.Len(t, sorted, 4)
	total := 0
	for i, o := range sorted {
		require.Equal(t, qsim.BasisLabel(i, 2), o.State)
		total += o.Count
	}
	require.Equal(t, 400, total)
	require.InDelta(t, 1.0, res.Probability("00")+res.Probability("01")+res.Probability("10")+res.Probability("11"), 1e-12)

	counts := res.Counts()
	counts["00"] = -1
	require.NotEqual(t, -1, res.Count("00"))
	require.Equal(t, 2, res.Qubits())
}
