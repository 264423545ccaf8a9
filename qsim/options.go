package qsim

import (
	"io"
	"math/rand/v2"

	"github.com/charmbracelet/log"
)

// DefaultMaxQubits bounds the register size. A dense operator over n qubits
// holds 4^n complex values, so the ceiling keeps allocations explicit.
const DefaultMaxQubits = 10

// HardMaxQubits is the largest register any circuit may hold, whatever
// WithMaxQubits asks for. One operator at this size takes 4 GiB.
const HardMaxQubits = 14

// Option configures a Circuit.
type Option func(*Circuit)

// WithSeed makes sampling reproducible.
func WithSeed(seed uint64) Option {
	return func(c *Circuit) {
		c.rng = rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	}
}

// WithRand supplies the random stream used for measurement draws.
func WithRand(rng *rand.Rand) Option {
	return func(c *Circuit) {
		if rng != nil {
			c.rng = rng
		}
	}
}

// WithWorkers spreads Measure(shots) over n goroutines. Values below 2 keep
// sampling on the calling goroutine.
func WithWorkers(n int) Option {
	return func(c *Circuit) {
		c.workers = max(n, 1)
	}
}

// WithMaxQubits overrides DefaultMaxQubits. NewCircuit rejects values above
// HardMaxQubits.
func WithMaxQubits(n int) Option {
	return func(c *Circuit) {
		c.maxQubits = n
	}
}

// WithLogger routes debug output of runs and sampling to logger.
func WithLogger(logger *log.Logger) Option {
	return func(c *Circuit) {
		if logger != nil {
			c.logger = logger
		}
	}
}

func discardLogger() *log.Logger {
	return log.New(io.Discard)
}
