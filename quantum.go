package main

import (
	"math/cmplx"

	"qtermsim/qsim"
)

// simulate compiles the circuit up to upToStep (everything when negative) and
// evolves the ground state through it.
func simulate(c *Circuit, upToStep int, opts ...qsim.Option) (*qsim.StateVector, error) {
	qc, err := c.Compile(upToStep, opts...)
	if err != nil {
		return nil, err
	}
	return qc.Run()
}

// QubitProbability is the marginal distribution of one qubit.
type QubitProbability struct {
	Prob0 float64
	Prob1 float64
}

// qubitProbabilities marginalises the Born distribution onto each qubit.
// Qubit 0 is the most-significant bit of the basis index.
func qubitProbabilities(s *qsim.StateVector) []QubitProbability {
	n := s.Qubits()
	probs := make([]QubitProbability, n)
	for i, p := range s.Probabilities() {
		for q := range n {
			if i&(1<<(n-1-q)) != 0 {
				probs[q].Prob1 += p
			} else {
				probs[q].Prob0 += p
			}
		}
	}
	return probs
}

// BasisEntry is a basis state with non-negligible weight.
type BasisEntry struct {
	Label     string
	Amplitude qsim.Complex
	Prob      float64
	Phase     float64
}

// significantStates lists basis states whose probability exceeds tol, in
// index order.
func significantStates(s *qsim.StateVector, tol float64) []BasisEntry {
	amps := s.Amplitudes()
	entries := make([]BasisEntry, 0, len(amps))
	for i, a := range amps {
		p := a.Abs2()
		if p <= tol {
			continue
		}
		entries = append(entries, BasisEntry{
			Label:     qsim.BasisLabel(i, s.Qubits()),
			Amplitude: a,
			Prob:      p,
			Phase:     cmplx.Phase(complex128(a)),
		})
	}
	return entries
}
