package qsim

import (
	"fmt"
	"math"
	"math/bits"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/floats"
)

// Source yields uniform values in [0, 1). *rand.Rand from math/rand and
// math/rand/v2 both satisfy it.
type Source interface {
	Float64() float64
}

// StateVector holds the amplitudes of an n-qubit pure state. The amplitudes
// are kept normalized: Σ|aᵢ|² == 1 within floating tolerance after every
// construction and every Apply.
type StateVector struct {
	amps      []Complex
	qubits    int
	collapsed bool
}

// NewStateVector copies amps and normalizes them. The length must be a power
// of two of at least 2.
func NewStateVector(amps []Complex) (*StateVector, error) {
	if len(amps) == 0 {
		return nil, fmt.Errorf("NewStateVector: %w", ErrEmptyState)
	}
	n := len(amps)
	if n < 2 || bits.OnesCount(uint(n)) != 1 {
		return nil, fmt.Errorf("NewStateVector: %d amplitudes is not 2^n: %w", n, ErrDimensionMismatch)
	}
	s := &StateVector{
		amps:   append([]Complex(nil), amps...),
		qubits: bits.TrailingZeros(uint(n)),
	}
	if err := s.normalize(); err != nil {
		return nil, fmt.Errorf("NewStateVector: %w", err)
	}
	return s, nil
}

// GroundState returns |0…0⟩ over the given number of qubits.
func GroundState(qubits int) (*StateVector, error) {
	if qubits <= 0 {
		return nil, fmt.Errorf("GroundState(%d): %w", qubits, ErrInvalidQubitCount)
	}
	if qubits >= bits.UintSize-1 {
		return nil, fmt.Errorf("GroundState(%d): %w", qubits, ErrTooManyQubits)
	}
	amps := make([]Complex, 1<<qubits)
	amps[0] = One
	return &StateVector{amps: amps, qubits: qubits}, nil
}

// Dimension returns the number of basis states, 2^n.
func (s *StateVector) Dimension() int { return len(s.amps) }

// Qubits returns n.
func (s *StateVector) Qubits() int { return s.qubits }

// Collapsed reports whether the last operation was a measurement.
func (s *StateVector) Collapsed() bool { return s.collapsed }

// Amplitude returns the amplitude of basis state i.
func (s *StateVector) Amplitude(i int) (Complex, error) {
	if i < 0 || i >= len(s.amps) {
		return Zero, fmt.Errorf("StateVector.Amplitude(%d) of %d: %w", i, len(s.amps), ErrIndexOutOfRange)
	}
	return s.amps[i], nil
}

// Amplitudes returns a copy of the amplitudes in basis order.
func (s *StateVector) Amplitudes() []Complex {
	return append([]Complex(nil), s.amps...)
}

// Probabilities returns |aᵢ|² for every basis state.
func (s *StateVector) Probabilities() []float64 {
	probs := make([]float64, len(s.amps))
	for i, a := range s.amps {
		probs[i] = a.Abs2()
	}
	return probs
}

// Norm returns sqrt(Σ|aᵢ|²).
func (s *StateVector) Norm() float64 {
	return math.Sqrt(floats.Sum(s.Probabilities()))
}

func (s *StateVector) Clone() *StateVector {
	return &StateVector{
		amps:      append([]Complex(nil), s.amps...),
		qubits:    s.qubits,
		collapsed: s.collapsed,
	}
}

func (s *StateVector) normalize() error {
	norm := s.Norm()
	if norm == 0 || math.IsNaN(norm) {
		return ErrZeroNormState
	}
	inv := 1 / norm
	for i, a := range s.amps {
		s.amps[i] = a.Scale(inv)
	}
	return nil
}

// Apply replaces the state with m·ψ and renormalizes.
//
// Renormalization runs after every application, even for unitary m. It keeps
// accumulated rounding from drifting the norm, and it also means a non-unitary
// m is rescaled rather than rejected. Only a result with zero norm fails; the
// state is left untouched in that case.
func (s *StateVector) Apply(m *Matrix) error {
	if m.rows != len(s.amps) || m.cols != len(s.amps) {
		return fmt.Errorf("StateVector.Apply: %dx%d on dimension %d: %w", m.rows, m.cols, len(s.amps), ErrDimensionMismatch)
	}
	next, err := MulVec(m, s.amps)
	if err != nil {
		return fmt.Errorf("StateVector.Apply: %w", err)
	}
	prev := s.amps
	s.amps = next
	if err := s.normalize(); err != nil {
		s.amps = prev
		return fmt.Errorf("StateVector.Apply: %w", err)
	}
	s.collapsed = false
	return nil
}

// Measure draws one outcome from the Born distribution, collapses the state
// onto it and returns its basis index. The draw is irreversible; use
// Circuit.Measure for repeated sampling.
func (s *StateVector) Measure(src Source) int {
	cdf := cumulative(s.Probabilities())
	idx := sampleIndex(cdf, src.Float64())
	s.collapseTo(idx)
	return idx
}

func (s *StateVector) collapseTo(idx int) {
	for i := range s.amps {
		s.amps[i] = Zero
	}
	s.amps[idx] = One
	s.collapsed = true
}

// cumulative returns the running sum of probs.
func cumulative(probs []float64) []float64 {
	cdf := make([]float64, len(probs))
	return floats.CumSum(cdf, probs)
}

// sampleIndex walks cdf in ascending order and returns the first index whose
// running total exceeds r. Rounding can leave the total just under r; the
// last index is returned then.
func sampleIndex(cdf []float64, r float64) int {
	for i, c := range cdf {
		if r < c {
			return i
		}
	}
	return len(cdf) - 1
}

// BasisLabel renders basis index i as a zero-padded bitstring of width qubits.
func BasisLabel(i, qubits int) string {
	label := strconv.FormatInt(int64(i), 2)
	if pad := qubits - len(label); pad > 0 {
		label = strings.Repeat("0", pad) + label
	}
	return label
}

// String lists every basis state with its amplitude and probability.
func (s *StateVector) String() string {
	var sb strings.Builder
	for i, a := range s.amps {
		if i > 0 {
			sb.WriteString("\n")
		}
		fmt.Fprintf(&sb, "|%s⟩: %s (p=%.4f)", BasisLabel(i, s.qubits), a, a.Abs2())
	}
	return sb.String()
}
