package qsim

import (
	"fmt"
	"math"
	"math/cmplx"
	"strings"
	"sync"
)

// Gate names understood by GateByName and Circuit.Gate.
const (
	GateH    = "H"
	GateX    = "X"
	GateY    = "Y"
	GateZ    = "Z"
	GateS    = "S"
	GateT    = "T"
	GateRX   = "RX"
	GateRY   = "RY"
	GateRZ   = "RZ"
	GateP    = "P"
	GateCX   = "CX"
	GateCNOT = "CNOT"
)

var (
	gatesOnce sync.Once
	gates     map[string]*Matrix
)

// loadGates builds the constant gate table exactly once per process. All
// callers receive the same *Matrix values, so every use sees bit-identical
// elements.
func loadGates() map[string]*Matrix {
	gatesOnce.Do(func() {
		h := 1 / math.Sqrt2
		gates = make(map[string]*Matrix, 7)
		gates[GateH] = mustMatrix([][]Complex{
			{C(h, 0), C(h, 0)},
			{C(h, 0), C(-h, 0)},
		})
		gates[GateX] = mustMatrix([][]Complex{
			{Zero, One},
			{One, Zero},
		})
		gates[GateY] = mustMatrix([][]Complex{
			{Zero, -I},
			{I, Zero},
		})
		gates[GateZ] = mustMatrix([][]Complex{
			{One, Zero},
			{Zero, -One},
		})
		gates[GateS] = mustMatrix([][]Complex{
			{One, Zero},
			{Zero, I},
		})
		gates[GateT] = mustMatrix([][]Complex{
			{One, Zero},
			{Zero, Complex(cmplx.Exp(complex(0, math.Pi/4)))},
		})
		// Control on the more-significant qubit: |10⟩ and |11⟩ swap.
		gates[GateCX] = mustMatrix([][]Complex{
			{One, Zero, Zero, Zero},
			{Zero, One, Zero, Zero},
			{Zero, Zero, Zero, One},
			{Zero, Zero, One, Zero},
		})
	})
	return gates
}

// Hadamard returns (1/√2)·[[1,1],[1,-1]].
func Hadamard() *Matrix { return loadGates()[GateH] }

// PauliX returns [[0,1],[1,0]].
func PauliX() *Matrix { return loadGates()[GateX] }

// PauliY returns [[0,-i],[i,0]].
func PauliY() *Matrix { return loadGates()[GateY] }

// PauliZ returns [[1,0],[0,-1]].
func PauliZ() *Matrix { return loadGates()[GateZ] }

// SGate returns diag(1, i).
func SGate() *Matrix { return loadGates()[GateS] }

// TGate returns diag(1, e^{iπ/4}).
func TGate() *Matrix { return loadGates()[GateT] }

// CNOT returns the 4×4 controlled-NOT with the control on the more-significant
// qubit of the pair.
func CNOT() *Matrix { return loadGates()[GateCX] }

// RX returns the rotation exp(-iθX/2).
func RX(theta float64) *Matrix {
	c := C(math.Cos(theta/2), 0)
	s := C(0, -math.Sin(theta/2))
	return mustMatrix([][]Complex{
		{c, s},
		{s, c},
	})
}

// RY returns the rotation exp(-iθY/2).
func RY(theta float64) *Matrix {
	c := math.Cos(theta / 2)
	s := math.Sin(theta / 2)
	return mustMatrix([][]Complex{
		{C(c, 0), C(-s, 0)},
		{C(s, 0), C(c, 0)},
	})
}

// RZ returns diag(e^{-iθ/2}, e^{iθ/2}).
func RZ(theta float64) *Matrix {
	phase := Complex(cmplx.Exp(complex(0, theta/2)))
	return mustMatrix([][]Complex{
		{phase.Conj(), Zero},
		{Zero, phase},
	})
}

// Phase returns diag(1, e^{iλ}).
func Phase(lambda float64) *Matrix {
	return mustMatrix([][]Complex{
		{One, Zero},
		{Zero, Complex(cmplx.Exp(complex(0, lambda)))},
	})
}

// GateByName resolves a gate name (case-insensitive) and its parameters to a
// matrix. Rotation gates take exactly one parameter; constant gates take none.
func GateByName(name string, params ...float64) (*Matrix, error) {
	name = strings.ToUpper(name)
	if name == GateCNOT {
		name = GateCX
	}
	switch name {
	case GateRX, GateRY, GateRZ, GateP:
		if len(params) != 1 {
			return nil, fmt.Errorf("GateByName(%s): want 1 parameter, got %d: %w", name, len(params), ErrGateArity)
		}
		switch name {
		case GateRX:
			return RX(params[0]), nil
		case GateRY:
			return RY(params[0]), nil
		case GateRZ:
			return RZ(params[0]), nil
		default:
			return Phase(params[0]), nil
		}
	}
	m, ok := loadGates()[name]
	if !ok {
		return nil, fmt.Errorf("GateByName(%q): %w", name, ErrUnknownGate)
	}
	if len(params) != 0 {
		return nil, fmt.Errorf("GateByName(%s): takes no parameters, got %d: %w", name, len(params), ErrGateArity)
	}
	return m, nil
}

// IsParameterized reports whether the named gate takes an angle.
func IsParameterized(name string) bool {
	switch strings.ToUpper(name) {
	case GateRX, GateRY, GateRZ, GateP:
		return true
	}
	return false
}
