package main

import (
	"cmp"
	"fmt"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"qtermsim/qsim"
)

// Pre-compiled regexps for the QASM subset the engine can execute.
var (
	singleGateRegex      = regexp.MustCompile(`^(\w+)\s+q\[(\d+)\]\s*;?$`)
	singleGateParamRegex = regexp.MustCompile(`^(\w+)\s*\(\s*([^)]*?)\s*\)\s+q\[(\d+)\]\s*;?$`)
	twoQubitRegex        = regexp.MustCompile(`^(\w+)\s+q\[(\d+)\]\s*,\s*q\[(\d+)\]\s*;?$`)
	qregRegex            = regexp.MustCompile(`^qreg\s+\w+\[(\d+)\]\s*;?$`)
)

// Gate is one operation placed on the circuit grid.
type Gate struct {
	Type    string    // upper-case engine name: H, X, RX, CX, ...
	Target  int       // target qubit
	Control int       // control qubit for CX, -1 otherwise
	Step    int       // column in the grid
	Params  []float64 // angle for RX/RY/RZ/P
}

// Circuit is the editable, grid-positioned form of a program. It compiles
// into a qsim.Circuit by applying its gates in step order.
type Circuit struct {
	NumQubits int
	Gates     []Gate
	MaxSteps  int
}

// AddGate appends a gate to the circuit. A control qubit turns it into a CX.
func (c *Circuit) AddGate(gateType string, target, step int, control ...int) {
	c.AddParameterizedGate(gateType, target, step, nil, control...)
}

// AddParameterizedGate appends a gate carrying parameters.
func (c *Circuit) AddParameterizedGate(gateType string, target, step int, params []float64, control ...int) {
	ctrl := -1
	if len(control) > 0 {
		ctrl = control[0]
	}
	c.Gates = append(c.Gates, Gate{
		Type:    strings.ToUpper(gateType),
		Target:  target,
		Control: ctrl,
		Step:    step,
		Params:  params,
	})
	if step >= c.MaxSteps {
		c.MaxSteps = step + 1
	}
}

// references reports whether the gate touches the given qubit.
func (g Gate) references(qubit int) bool {
	return g.Target == qubit || g.Control == qubit
}

// qubits returns the qubits the gate acts on, control first.
func (g Gate) qubits() []int {
	if g.Control >= 0 {
		return []int{g.Control, g.Target}
	}
	return []int{g.Target}
}

// RemoveGateAt removes any gate at the given step that touches qubit.
func (c *Circuit) RemoveGateAt(step, qubit int) {
	c.Gates = slices.DeleteFunc(c.Gates, func(g Gate) bool {
		return g.Step == step && g.references(qubit)
	})
}

// RemoveGatesOnQubit removes every gate that references qubit.
func (c *Circuit) RemoveGatesOnQubit(qubit int) {
	c.Gates = slices.DeleteFunc(c.Gates, func(g Gate) bool {
		return g.references(qubit)
	})
}

// GetGateAt returns the gate at the given step and qubit, or nil.
func (c *Circuit) GetGateAt(step, qubit int) *Gate {
	for i := range c.Gates {
		g := &c.Gates[i]
		if g.Step == step && g.references(qubit) {
			return g
		}
	}
	return nil
}

// CanPlaceAt reports whether every qubit is free at step.
func (c *Circuit) CanPlaceAt(step int, qubits []int) bool {
	for _, q := range qubits {
		if q < 0 || q >= c.NumQubits || c.GetGateAt(step, q) != nil {
			return false
		}
	}
	return true
}

// Ordered returns the gates sorted by step, keeping insertion order inside a
// step.
func (c *Circuit) Ordered() []Gate {
	gates := slices.Clone(c.Gates)
	slices.SortStableFunc(gates, func(a, b Gate) int {
		return cmp.Compare(a.Step, b.Step)
	})
	return gates
}

// Compile turns the gates up to and including upToStep (all of them when
// upToStep < 0) into an engine circuit.
func (c *Circuit) Compile(upToStep int, opts ...qsim.Option) (*qsim.Circuit, error) {
	qc, err := qsim.NewCircuit(c.NumQubits, opts...)
	if err != nil {
		return nil, err
	}
	for _, g := range c.Ordered() {
		if upToStep >= 0 && g.Step > upToStep {
			continue
		}
		if err := qc.Gate(g.Type, g.qubits(), g.Params...); err != nil {
			return nil, fmt.Errorf("step %d: %s: %w", g.Step, g.Type, err)
		}
	}
	return qc, nil
}

// ToQASM generates QASM 2.0 output from the circuit.
func (c *Circuit) ToQASM() string {
	numQubits := max(c.NumQubits, 1)
	for _, g := range c.Gates {
		numQubits = max(numQubits, g.Target+1, g.Control+1)
	}

	var sb strings.Builder
	sb.WriteString("OPENQASM 2.0;\n")
	sb.WriteString("include \"qelib1.inc\";\n\n")
	fmt.Fprintf(&sb, "qreg q[%d];\n", numQubits)
	fmt.Fprintf(&sb, "creg c[%d];\n\n", numQubits)

	for _, g := range c.Ordered() {
		name := strings.ToLower(g.Type)
		switch {
		case g.Control >= 0:
			fmt.Fprintf(&sb, "%s q[%d], q[%d];\n", name, g.Control, g.Target)
		case len(g.Params) > 0:
			params := make([]string, len(g.Params))
			for i, p := range g.Params {
				params[i] = formatParam(p)
			}
			fmt.Fprintf(&sb, "%s(%s) q[%d];\n", name, strings.Join(params, ", "), g.Target)
		default:
			fmt.Fprintf(&sb, "%s q[%d];\n", name, g.Target)
		}
	}
	return sb.String()
}

// ParseQASM parses QASM text and rebuilds the circuit from it. Each gate is
// placed in the first step after the last gate on any of its qubits.
// Declarations the engine has no use for (creg, barrier, measure) are
// skipped; any other unrecognised line is an error naming its line number.
func (c *Circuit) ParseQASM(qasm string) error {
	c.Gates = nil
	c.MaxSteps = 0
	nextFree := map[int]int{}

	place := func(qubits ...int) int {
		step := 0
		for _, q := range qubits {
			step = max(step, nextFree[q])
		}
		for _, q := range qubits {
			nextFree[q] = step + 1
		}
		return step
	}

	for n, line := range strings.Split(qasm, "\n") {
		line = strings.TrimSpace(line)
		if i := strings.Index(line, "//"); i >= 0 {
			line = strings.TrimSpace(line[:i])
		}
		switch {
		case line == "",
			strings.HasPrefix(line, "OPENQASM"),
			strings.HasPrefix(line, "include"),
			strings.HasPrefix(line, "creg"),
			strings.HasPrefix(line, "barrier"),
			strings.HasPrefix(line, "measure"):
			continue
		}

		if m := qregRegex.FindStringSubmatch(line); m != nil {
			size, err := strconv.Atoi(m[1])
			if err != nil {
				return fmt.Errorf("line %d: qreg size %s: %w", n+1, m[1], err)
			}
			c.NumQubits = size
			continue
		}

		if m := twoQubitRegex.FindStringSubmatch(line); m != nil {
			name := strings.ToUpper(m[1])
			if name != qsim.GateCX && name != qsim.GateCNOT {
				return fmt.Errorf("line %d: unsupported two-qubit gate %q", n+1, m[1])
			}
			control, err := qubitIndex(m[2])
			if err != nil {
				return fmt.Errorf("line %d: %w", n+1, err)
			}
			target, err := qubitIndex(m[3])
			if err != nil {
				return fmt.Errorf("line %d: %w", n+1, err)
			}
			c.AddGate(qsim.GateCX, target, place(control, target), control)
			continue
		}

		if m := singleGateParamRegex.FindStringSubmatch(line); m != nil {
			name := strings.ToUpper(m[1])
			if !qsim.IsParameterized(name) {
				return fmt.Errorf("line %d: gate %q takes no parameters", n+1, m[1])
			}
			params, err := parseParams(m[2])
			if err != nil {
				return fmt.Errorf("line %d: %w", n+1, err)
			}
			target, err := qubitIndex(m[3])
			if err != nil {
				return fmt.Errorf("line %d: %w", n+1, err)
			}
			c.AddParameterizedGate(name, target, place(target), params)
			continue
		}

		if m := singleGateRegex.FindStringSubmatch(line); m != nil {
			name := strings.ToUpper(m[1])
			gate, err := qsim.GateByName(name)
			if err != nil {
				return fmt.Errorf("line %d: %w", n+1, err)
			}
			if r, _ := gate.Dims(); r != 2 {
				return fmt.Errorf("line %d: %s needs two qubits", n+1, m[1])
			}
			target, err := qubitIndex(m[2])
			if err != nil {
				return fmt.Errorf("line %d: %w", n+1, err)
			}
			c.AddGate(name, target, place(target))
			continue
		}

		return fmt.Errorf("line %d: cannot parse %q", n+1, line)
	}

	for _, g := range c.Gates {
		c.NumQubits = max(c.NumQubits, g.Target+1, g.Control+1)
	}
	return nil
}

func qubitIndex(s string) (int, error) {
	q, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("qubit index %s: %w", s, err)
	}
	return q, nil
}

// cellInfo describes what occupies a single cell in the circuit grid.
type cellInfo struct {
	gate        *Gate
	isControl   bool
	isTarget    bool
	vertAbove   bool
	vertBelow   bool
	passThrough bool
}

// getCellInfo returns rendering information for the cell at (step, qubit).
func (c *Circuit) getCellInfo(step, qubit int) cellInfo {
	var info cellInfo

	if gate := c.GetGateAt(step, qubit); gate != nil {
		info.gate = gate
		info.isControl = gate.Control == qubit
		info.isTarget = gate.Target == qubit && gate.Control >= 0
	}

	for _, g := range c.Gates {
		if g.Step != step || g.Control < 0 {
			continue
		}
		minQ, maxQ := min(g.Control, g.Target), max(g.Control, g.Target)
		if qubit < minQ || qubit > maxQ {
			continue
		}
		info.vertAbove = info.vertAbove || qubit > minQ
		info.vertBelow = info.vertBelow || qubit < maxQ
		if qubit > minQ && qubit < maxQ && info.gate == nil {
			info.passThrough = true
		}
	}
	return info
}
