package qsim

import (
	"fmt"
	"math/bits"
)

// Embed lifts gate into the 2^qubits-dimensional operator of an n-qubit
// register. Qubit 0 is the most-significant bit of a basis label.
//
// A single-qubit gate at target t becomes I₂ ⊗ … ⊗ gate ⊗ … ⊗ I₂ with the gate
// in slot t. A 2^k×2^k gate occupies the k adjacent slots t, t+1, …, t+k-1 in
// the order its own basis is written; no basis permutation is ever applied.
// Registers above HardMaxQubits are refused with ErrTooManyQubits.
func Embed(gate *Matrix, qubits, target int) (*Matrix, error) {
	if !gate.IsSquare() || gate.rows < 2 || bits.OnesCount(uint(gate.rows)) != 1 {
		return nil, fmt.Errorf("Embed: gate %dx%d is not a 2^k square: %w", gate.rows, gate.cols, ErrDimensionMismatch)
	}
	k := bits.TrailingZeros(uint(gate.rows))
	if qubits <= 0 {
		return nil, fmt.Errorf("Embed: %d qubits: %w", qubits, ErrInvalidQubitCount)
	}
	if qubits > HardMaxQubits {
		return nil, fmt.Errorf("Embed: %d qubits, hard limit %d: %w", qubits, HardMaxQubits, ErrTooManyQubits)
	}
	if target < 0 || target+k > qubits {
		return nil, fmt.Errorf("Embed: %d-qubit gate at %d in %d-qubit register: %w", k, target, qubits, ErrQubitOutOfRange)
	}

	id2, _ := Identity(2)
	var out *Matrix
	for slot := 0; slot < qubits; {
		factor, width := id2, 1
		if slot == target {
			factor, width = gate, k
		}
		if out == nil {
			out = factor
		} else {
			out = Kron(out, factor)
		}
		slot += width
	}
	return out, nil
}
