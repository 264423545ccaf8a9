package main

import (
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/require"
)

var namedKeys = map[string]tea.KeyType{
	"enter":     tea.KeyEnter,
	"esc":       tea.KeyEsc,
	"tab":       tea.KeyTab,
	"up":        tea.KeyUp,
	"down":      tea.KeyDown,
	"left":      tea.KeyLeft,
	"right":     tea.KeyRight,
	"backspace": tea.KeyBackspace,
	"ctrl+s":    tea.KeyCtrlS,
	"ctrl+e":    tea.KeyCtrlE,
	"ctrl+r":    tea.KeyCtrlR,
}

func keyMsg(k string) tea.KeyMsg {
	if kt, ok := namedKeys[k]; ok {
		return tea.KeyMsg{Type: kt}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}

// press feeds keys to the model and returns it with the last command.
func press(m Model, keys ...string) (Model, tea.Cmd) {
	var cmd tea.Cmd
	for _, k := range keys {
		var next tea.Model
		next, cmd = m.Update(keyMsg(k))
		m = next.(Model)
	}
	return m, cmd
}

func testModel(t *testing.T) Model {
	t.Helper()
	dir := t.TempDir()
	cfg := NewConfig()
	cfg.Seed = 99
	cfg.Shots = 300
	cfg.Workers = 2
	cfg.QASMFile = filepath.Join(dir, "circuit.qasm")
	cfg.ChartFile = filepath.Join(dir, "histogram.svg")
	return newModel(cfg, log.New(io.Discard))
}

// bellModel places H on q[0] then CX q[0],q[1] from the gate menu.
func bellModel(t *testing.T) Model {
	t.Helper()
	m := testModel(t)
	m, _ = press(m, "a", "enter")                   // H at q[0], step 0
	m, _ = press(m, "a", "right", "right", "enter") // CX at q[0], step 1
	require.Len(t, m.circuit.Gates, 2)
	return m
}

func TestModelPlacesGatesFromMenu(t *testing.T) {
	m := bellModel(t)

	require.Equal(t, focusCircuit, m.focus)
	require.Equal(t, 2, m.cursorStep)
	require.Contains(t, m.lastQASM, "h q[0];")
	require.Contains(t, m.lastQASM, "cx q[0], q[1];")
	require.Contains(t, m.qasmEditor.Value(), "cx q[0], q[1];")
}

func TestModelRejectsOccupiedCell(t *testing.T) {
	m := bellModel(t)
	m, _ = press(m, "left", "a", "enter") // H on q[0] where the CX control sits

	require.Equal(t, focusMenu, m.focus)
	require.Contains(t, m.statusMsg, "Cannot place")
	require.Len(t, m.circuit.Gates, 2)
}

func TestModelCXNeedsQubitBelow(t *testing.T) {
	m := testModel(t)
	m, _ = press(m, "down", "a", "right", "right", "enter")

	require.Contains(t, m.statusMsg, "CX needs a target")
	require.Empty(t, m.circuit.Gates)
}

func TestModelParameterizedGate(t *testing.T) {
	m := testModel(t)
	m, _ = press(m, "a", "right", "enter")
	require.Equal(t, focusInputParam, m.focus)
	require.Equal(t, "RX", m.pendingGate)

	m, _ = press(m, "p", "i", "/", "2", "enter")
	require.Equal(t, focusCircuit, m.focus)
	require.Len(t, m.circuit.Gates, 1)
	require.InDelta(t, math.Pi/2, m.circuit.Gates[0].Params[0], 1e-12)
	require.Contains(t, m.lastQASM, "rx(pi/2) q[0];")
}

func TestModelRejectsBadAngle(t *testing.T) {
	m := testModel(t)
	m, _ = press(m, "a", "right", "enter", "p", "p", "enter")

	require.Equal(t, focusInputParam, m.focus)
	require.Contains(t, m.statusMsg, "Invalid angle")
	require.Empty(t, m.circuit.Gates)
}

func TestModelRun(t *testing.T) {
	m := bellModel(t)

	m, _ = press(m, "r")
	require.Equal(t, outputState, m.output)
	require.Equal(t, -1, m.stateStep)
	probs := m.state.Probabilities()
	require.InDelta(t, 0.5, probs[0], 1e-9)
	require.InDelta(t, 0.5, probs[3], 1e-9)

	// Cursor back on step 0: only the Hadamard has been applied.
	m, _ = press(m, "left", "left", "R")
	require.Equal(t, 0, m.stateStep)
	probs = m.state.Probabilities()
	require.InDelta(t, 0.5, probs[0], 1e-9)
	require.InDelta(t, 0.5, probs[2], 1e-9)
}

func TestModelMeasureOnce(t *testing.T) {
	m := bellModel(t)
	for range 5 {
		m, _ = press(m, "m")
		require.Contains(t, []string{"00", "11"}, m.lastSample)
	}
}

func TestModelSampleAndExport(t *testing.T) {
	m := bellModel(t)

	m, cmd := press(m, "s")
	require.True(t, m.sampling)
	require.NotNil(t, cmd)

	next, _ := m.Update(cmd())
	m = next.(Model)
	require.False(t, m.sampling)
	require.Equal(t, outputCounts, m.output)
	require.Equal(t, 300, m.result.Shots())
	require.Equal(t, 300, m.result.Count("00")+m.result.Count("11"))

	m, _ = press(m, "ctrl+e")
	require.FileExists(t, m.cfg.ChartFile)

	m, _ = press(m, "ctrl+s")
	data, err := os.ReadFile(m.cfg.QASMFile)
	require.NoError(t, err)
	require.Equal(t, m.circuit.ToQASM(), string(data))
}

func TestModelDropsStaleSample(t *testing.T) {
	m := bellModel(t)
	m, cmd := press(m, "s")

	m, _ = press(m, "a", "enter") // edit while sampling
	next, _ := m.Update(cmd())
	m = next.(Model)

	require.False(t, m.sampling)
	require.Nil(t, m.result)
	require.Equal(t, outputNone, m.output)
}

func TestModelExportNeedsSample(t *testing.T) {
	m := bellModel(t)
	m, _ = press(m, "ctrl+e")
	require.Contains(t, m.statusMsg, "sample first")
	require.NoFileExists(t, m.cfg.ChartFile)
}

func TestModelQubitCeiling(t *testing.T) {
	m := testModel(t)
	m.cfg.MaxQubits = 3
	m, _ = press(m, "+", "+")
	require.Equal(t, 3, m.circuit.NumQubits)
	require.Contains(t, m.statusMsg, "ceiling")

	m, _ = press(m, "-", "-", "-")
	require.Equal(t, 1, m.circuit.NumQubits)
}

func TestModelQASMEdit(t *testing.T) {
	m := testModel(t)

	m.qasmEditor.SetValue(bellQASM)
	m.parseQASMInput()
	require.Len(t, m.circuit.Gates, 2)

	m.qasmEditor.SetValue("qreg q[2];\nfoo q[0];")
	m.parseQASMInput()
	require.Contains(t, m.statusMsg, "line 2")
	require.Len(t, m.circuit.Gates, 2, "a bad edit keeps the last good circuit")
}

func TestModelLoadsQASMFile(t *testing.T) {
	dir := t.TempDir()
	cfg := NewConfig()
	cfg.QASMFile = filepath.Join(dir, "bell.qasm")
	require.NoError(t, os.WriteFile(cfg.QASMFile, []byte(bellQASM), 0o644))

	m := newModel(cfg, log.New(io.Discard))
	require.Len(t, m.circuit.Gates, 2)
	require.Equal(t, 2, m.circuit.NumQubits)
}

func TestModelView(t *testing.T) {
	m := bellModel(t)
	next, _ := m.Update(tea.WindowSizeMsg{Width: 160, Height: 48})
	m = next.(Model)

	view := m.View()
	require.Contains(t, view, "Quantum Circuit")
	require.Contains(t, view, "QASM Editor")

	m, _ = press(m, "r")
	require.Contains(t, m.View(), "Final state")

	m, _ = press(m, "a")
	require.True(t, strings.Contains(m.View(), "Add Gate"))
}
