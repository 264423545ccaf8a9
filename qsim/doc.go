// Package qsim simulates small quantum circuits by dense state-vector
// evolution.
//
// Gates are 2^k×2^k matrices lifted into the full 2^n-dimensional space with
// Kronecker products (see Embed). A Circuit stores the resulting operators in
// order; Run folds them onto the ground state |0…0⟩ and Measure samples the
// final Born distribution into a Result histogram.
//
// Basis labels are written with qubit 0 as the most-significant bit, so the
// label "10" means qubit 0 is |1⟩ and qubit 1 is |0⟩.
//
//	c, _ := qsim.NewCircuit(2)
//	_ = c.H(0)
//	_ = c.CX(0, 1)
//	res, _ := c.Measure(1000) // only "00" and "11"
//
// Memory grows as 4^n for every stored operator; NewCircuit refuses registers
// above DefaultMaxQubits unless WithMaxQubits raises the ceiling.
package qsim
