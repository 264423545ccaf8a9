package qsim

import (
	"fmt"
	"maps"
	"slices"
	"strings"
)

// Outcome is one row of a sorted histogram.
type Outcome struct {
	State string
	Count int
}

// Result is the immutable histogram produced by Circuit.Measure. Keys are
// zero-padded bitstrings of the circuit's width; counts sum to Shots.
type Result struct {
	shots  int
	qubits int
	counts map[string]int
}

func newResult(qubits, shots int, counts map[string]int) *Result {
	return &Result{shots: shots, qubits: qubits, counts: counts}
}

func (r *Result) Shots() int  { return r.shots }
func (r *Result) Qubits() int { return r.qubits }

// Counts returns a copy of the histogram.
func (r *Result) Counts() map[string]int {
	return maps.Clone(r.counts)
}

// Count returns the occurrences of state, zero when it was never sampled.
func (r *Result) Count(state string) int {
	return r.counts[state]
}

// Probability returns the observed frequency of state.
func (r *Result) Probability(state string) float64 {
	return float64(r.counts[state]) / float64(r.shots)
}

// Sorted returns the histogram ordered by ascending bitstring. Bitstrings share
// a width, so lexicographic order is numeric order.
func (r *Result) Sorted() []Outcome {
	keys := slices.Sorted(maps.Keys(r.counts))
	out := make([]Outcome, len(keys))
	for i, k := range keys {
		out[i] = Outcome{State: k, Count: r.counts[k]}
	}
	return out
}

func (r *Result) String() string {
	var sb strings.Builder
	for i, o := range r.Sorted() {
		if i > 0 {
			sb.WriteString("\n")
		}
		fmt.Fprintf(&sb, "%s: %d", o.State, o.Count)
	}
	return sb.String()
}
