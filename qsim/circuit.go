package qsim

import (
	"fmt"
	"math/rand/v2"

	"github.com/charmbracelet/log"
)

// Circuit is an ordered list of full-dimension operators over a fixed number
// of qubits. Building appends operators; Run folds them onto |0…0⟩ without
// touching the list, so a circuit can be run any number of times.
//
// A Circuit is not safe for concurrent mutation.
type Circuit struct {
	qubits    int
	dim       int
	ops       []*Matrix
	maxQubits int
	workers   int
	rng       *rand.Rand
	logger    *log.Logger
}

// NewCircuit creates an empty circuit over qubits qubits.
func NewCircuit(qubits int, opts ...Option) (*Circuit, error) {
	c := &Circuit{
		qubits:    qubits,
		maxQubits: DefaultMaxQubits,
		workers:   1,
		logger:    discardLogger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if qubits <= 0 {
		return nil, fmt.Errorf("NewCircuit(%d): %w", qubits, ErrInvalidQubitCount)
	}
	if c.maxQubits > HardMaxQubits {
		return nil, fmt.Errorf("NewCircuit(%d): ceiling %d above hard limit %d: %w", qubits, c.maxQubits, HardMaxQubits, ErrTooManyQubits)
	}
	if qubits > c.maxQubits {
		return nil, fmt.Errorf("NewCircuit(%d): ceiling is %d: %w", qubits, c.maxQubits, ErrTooManyQubits)
	}
	if c.rng == nil {
		c.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	c.dim = 1 << qubits
	return c, nil
}

func (c *Circuit) Qubits() int { return c.qubits }

// Len returns the number of stored operators.
func (c *Circuit) Len() int { return len(c.ops) }

// Operations returns the stored operators in application order.
func (c *Circuit) Operations() []*Matrix {
	return append([]*Matrix(nil), c.ops...)
}

// Reset drops every stored operator.
func (c *Circuit) Reset() {
	c.ops = nil
}

// Apply appends a full-dimension operator. m must be 2^n × 2^n.
func (c *Circuit) Apply(m *Matrix) error {
	if m.rows != c.dim || m.cols != c.dim {
		return fmt.Errorf("Circuit.Apply: %dx%d on %d qubits: %w", m.rows, m.cols, c.qubits, ErrDimensionMismatch)
	}
	c.ops = append(c.ops, m)
	return nil
}

// applyAt embeds gate at target and appends the result.
func (c *Circuit) applyAt(gate *Matrix, target int) error {
	full, err := Embed(gate, c.qubits, target)
	if err != nil {
		return err
	}
	return c.Apply(full)
}

func (c *Circuit) H(q int) error { return c.applyAt(Hadamard(), q) }
func (c *Circuit) X(q int) error { return c.applyAt(PauliX(), q) }
func (c *Circuit) Y(q int) error { return c.applyAt(PauliY(), q) }
func (c *Circuit) Z(q int) error { return c.applyAt(PauliZ(), q) }
func (c *Circuit) S(q int) error { return c.applyAt(SGate(), q) }
func (c *Circuit) T(q int) error { return c.applyAt(TGate(), q) }

func (c *Circuit) RX(q int, theta float64) error  { return c.applyAt(RX(theta), q) }
func (c *Circuit) RY(q int, theta float64) error  { return c.applyAt(RY(theta), q) }
func (c *Circuit) RZ(q int, theta float64) error  { return c.applyAt(RZ(theta), q) }
func (c *Circuit) Phase(q int, lam float64) error { return c.applyAt(Phase(lam), q) }

// CX appends a controlled-NOT. Only the canonical adjacent layout is
// supported: the target must sit directly after the control. Other pairs fail
// with ErrUnsupportedLayout.
func (c *Circuit) CX(control, target int) error {
	if control < 0 || control >= c.qubits || target < 0 || target >= c.qubits {
		return fmt.Errorf("Circuit.CX(%d,%d) on %d qubits: %w", control, target, c.qubits, ErrQubitOutOfRange)
	}
	if target != control+1 {
		return fmt.Errorf("Circuit.CX(%d,%d): target must follow control: %w", control, target, ErrUnsupportedLayout)
	}
	return c.applyAt(CNOT(), control)
}

// Gate appends a gate by name. Single-qubit gates take one qubit; CX takes
// control then target.
func (c *Circuit) Gate(name string, qubits []int, params ...float64) error {
	m, err := GateByName(name, params...)
	if err != nil {
		return err
	}
	if m.rows == 4 {
		if len(qubits) != 2 {
			return fmt.Errorf("Circuit.Gate(%s): want 2 qubits, got %d: %w", name, len(qubits), ErrDimensionMismatch)
		}
		return c.CX(qubits[0], qubits[1])
	}
	if len(qubits) != 1 {
		return fmt.Errorf("Circuit.Gate(%s): want 1 qubit, got %d: %w", name, len(qubits), ErrDimensionMismatch)
	}
	return c.applyAt(m, qubits[0])
}

// Run evolves a fresh ground state through every operator in order.
func (c *Circuit) Run() (*StateVector, error) {
	state, err := GroundState(c.qubits)
	if err != nil {
		return nil, err
	}
	for i, op := range c.ops {
		if err := state.Apply(op); err != nil {
			return nil, fmt.Errorf("Circuit.Run: operation %d: %w", i, err)
		}
	}
	c.logger.Debug("circuit run", "qubits", c.qubits, "ops", len(c.ops))
	return state, nil
}

// RunAndMeasure runs the circuit and measures the final state once. Each call
// produces one sample; use Measure for statistics.
func (c *Circuit) RunAndMeasure() (int, error) {
	state, err := c.Run()
	if err != nil {
		return 0, err
	}
	return state.Measure(c.rng), nil
}

// Measure runs the circuit once and draws shots independent samples from the
// final probability vector. The state is never collapsed between draws.
func (c *Circuit) Measure(shots int) (*Result, error) {
	if shots <= 0 {
		return nil, fmt.Errorf("Circuit.Measure(%d): %w", shots, ErrInvalidShots)
	}
	state, err := c.Run()
	if err != nil {
		return nil, err
	}
	cdf := cumulative(state.Probabilities())
	hist := sampleShots(cdf, shots, c.workers, c.rng)

	counts := make(map[string]int)
	for idx, n := range hist {
		if n > 0 {
			counts[BasisLabel(idx, c.qubits)] = n
		}
	}
	c.logger.Debug("circuit sampled", "shots", shots, "workers", c.workers, "outcomes", len(counts))
	return newResult(c.qubits, shots, counts), nil
}
