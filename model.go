package main

import (
	"fmt"
	"math/rand/v2"
	"os"
	"slices"
	"time"

	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"qtermsim/qsim"
)

// focus represents which panel/mode has keyboard input.
type focus int

const (
	focusCircuit focus = iota
	focusQASM
	focusMenu
	focusInputParam
)

// outputMode selects what the output panel shows.
type outputMode int

const (
	outputNone outputMode = iota
	outputState
	outputCounts
)

// Model represents the TUI application state.
type Model struct {
	cfg    *Config
	logger *log.Logger
	rng    *rand.Rand

	circuit     Circuit
	cursorQubit int
	cursorStep  int
	width       int
	height      int
	qasmEditor  textarea.Model
	focus       focus
	lastQASM    string
	statusMsg   string // transient status message (e.g. save confirmation)

	// Menu state
	menuCat     int
	menuItem    int
	pendingGate string
	paramInput  string

	// Simulation output. revision changes with every edit so a sample that
	// finishes after the circuit changed is dropped.
	output     outputMode
	state      *qsim.StateVector
	stateStep  int // -1 when state covers the whole circuit
	result     *qsim.Result
	lastSample string
	sampling   bool
	revision   int
}

// sampledMsg carries the result of an asynchronous Measure(shots).
type sampledMsg struct {
	revision int
	result   *qsim.Result
	elapsed  time.Duration
	err      error
}

func newModel(cfg *Config, logger *log.Logger) Model {
	ta := textarea.New()
	ta.Placeholder = "Edit QASM here..."
	ta.SetWidth(40)
	ta.SetHeight(20)
	ta.ShowLineNumbers = true

	seed := cfg.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}

	m := Model{
		cfg:        cfg,
		logger:     logger,
		rng:        rand.New(rand.NewPCG(seed, seed>>1|1)),
		circuit:    Circuit{NumQubits: cfg.Qubits},
		qasmEditor: ta,
		focus:      focusCircuit,
		stateStep:  -1,
	}
	m.loadQASMFile()
	m.syncQASM()
	return m
}

// loadQASMFile replaces the empty start circuit with cfg.QASMFile when it
// exists and parses.
func (m *Model) loadQASMFile() {
	data, err := os.ReadFile(m.cfg.QASMFile)
	if err != nil {
		if !os.IsNotExist(err) {
			m.logger.Warn("cannot read QASM file", "file", m.cfg.QASMFile, "err", err)
		}
		return
	}
	var c Circuit
	if err := c.ParseQASM(string(data)); err != nil {
		m.logger.Warn("ignoring QASM file", "file", m.cfg.QASMFile, "err", err)
		return
	}
	if c.NumQubits < 1 || c.NumQubits > m.cfg.MaxQubits {
		m.logger.Warn("ignoring QASM file", "file", m.cfg.QASMFile, "qubits", c.NumQubits, "max", m.cfg.MaxQubits)
		return
	}
	m.circuit = c
	m.logger.Info("loaded circuit", "file", m.cfg.QASMFile, "qubits", c.NumQubits, "gates", len(c.Gates))
}

// syncQASM regenerates the editor text from the circuit.
func (m *Model) syncQASM() {
	qasm := m.circuit.ToQASM()
	m.qasmEditor.SetValue(qasm)
	m.lastQASM = qasm
	m.invalidate()
}

// parseQASMInput rebuilds the circuit after an edit in the QASM panel. A
// parse error keeps the previous circuit and shows the error.
func (m *Model) parseQASMInput() {
	qasm := m.qasmEditor.Value()
	if qasm == m.lastQASM {
		return
	}
	m.lastQASM = qasm

	var c Circuit
	if err := c.ParseQASM(qasm); err != nil {
		m.statusMsg = err.Error()
		return
	}
	if c.NumQubits < 1 || c.NumQubits > m.cfg.MaxQubits {
		m.statusMsg = fmt.Sprintf("qreg must hold 1 to %d qubits", m.cfg.MaxQubits)
		return
	}
	m.circuit = c
	m.cursorQubit = min(m.cursorQubit, c.NumQubits-1)
	m.invalidate()
}

// invalidate drops simulation output that no longer matches the circuit.
func (m *Model) invalidate() {
	m.revision++
	m.output = outputNone
	m.state = nil
	m.result = nil
	m.lastSample = ""
}

// engineOptions configures circuits compiled by the UI. Every call gets its
// own random stream split off the session generator.
func (m *Model) engineOptions() []qsim.Option {
	return []qsim.Option{
		qsim.WithMaxQubits(m.cfg.MaxQubits),
		qsim.WithWorkers(m.cfg.Workers),
		qsim.WithRand(rand.New(rand.NewPCG(m.rng.Uint64(), m.rng.Uint64()))),
		qsim.WithLogger(m.logger),
	}
}

// placeGate places a gate at the cursor. CX uses the cursor qubit as control
// and the qubit below it as target. Returns false if the cells are taken.
func (m *Model) placeGate(gateType string, params []float64) bool {
	qubits := []int{m.cursorQubit}
	if gateType == qsim.GateCX {
		if m.cursorQubit+1 >= m.circuit.NumQubits {
			m.statusMsg = "CX needs a target qubit below the control"
			return false
		}
		qubits = append(qubits, m.cursorQubit+1)
	}
	if !m.circuit.CanPlaceAt(m.cursorStep, qubits) {
		m.statusMsg = "Cannot place: qubit already used by another gate at this step"
		return false
	}

	if gateType == qsim.GateCX {
		m.circuit.AddGate(gateType, qubits[1], m.cursorStep, qubits[0])
	} else {
		m.circuit.AddParameterizedGate(gateType, m.cursorQubit, m.cursorStep, params)
	}
	m.logger.Debug("gate placed", "gate", gateType, "qubits", qubits, "step", m.cursorStep)

	m.pendingGate = ""
	m.paramInput = ""
	m.cursorStep++
	m.circuit.MaxSteps = max(m.circuit.MaxSteps, m.cursorStep)
	m.syncQASM()
	return true
}

// runState evolves the ground state through the circuit, stopping after
// upToStep when it is not negative.
func (m *Model) runState(upToStep int) {
	state, err := simulate(&m.circuit, upToStep, m.engineOptions()...)
	if err != nil {
		m.statusMsg = fmt.Sprintf("Run error: %v", err)
		m.logger.Error("run failed", "err", err)
		return
	}
	m.state = state
	m.stateStep = upToStep
	m.output = outputState
}

// measureOnce runs the circuit and draws a single outcome.
func (m *Model) measureOnce() {
	qc, err := m.circuit.Compile(-1, m.engineOptions()...)
	if err == nil {
		var idx int
		if idx, err = qc.RunAndMeasure(); err == nil {
			m.lastSample = qsim.BasisLabel(idx, qc.Qubits())
			m.statusMsg = fmt.Sprintf("Measured |%s⟩", m.lastSample)
			return
		}
	}
	m.statusMsg = fmt.Sprintf("Measure error: %v", err)
	m.logger.Error("measure failed", "err", err)
}

// sampleCmd samples cfg.Shots outcomes off the UI goroutine.
func (m *Model) sampleCmd() tea.Cmd {
	c := Circuit{
		NumQubits: m.circuit.NumQubits,
		Gates:     slices.Clone(m.circuit.Gates),
	}
	opts := m.engineOptions()
	shots, rev := m.cfg.Shots, m.revision

	return func() tea.Msg {
		start := time.Now()
		qc, err := c.Compile(-1, opts...)
		if err != nil {
			return sampledMsg{revision: rev, err: err}
		}
		res, err := qc.Measure(shots)
		return sampledMsg{revision: rev, result: res, elapsed: time.Since(start), err: err}
	}
}

func (m *Model) saveQASM() {
	if err := os.WriteFile(m.cfg.QASMFile, []byte(m.circuit.ToQASM()), 0o644); err != nil {
		m.statusMsg = fmt.Sprintf("Save error: %v", err)
		m.logger.Error("save failed", "file", m.cfg.QASMFile, "err", err)
		return
	}
	m.statusMsg = "Saved " + m.cfg.QASMFile
	m.logger.Info("circuit saved", "file", m.cfg.QASMFile)
}

func (m *Model) exportChart() {
	if m.result == nil {
		m.statusMsg = "Nothing to export: sample first (s)"
		return
	}
	if err := saveChart(m.result, m.cfg.ChartFile); err != nil {
		m.statusMsg = fmt.Sprintf("Export error: %v", err)
		m.logger.Error("chart export failed", "file", m.cfg.ChartFile, "err", err)
		return
	}
	m.statusMsg = "Exported " + m.cfg.ChartFile
	m.logger.Info("histogram written", "file", m.cfg.ChartFile)
}

// ──────────────────────────── Init / Update ────────────────────────────

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.qasmEditor.SetWidth(max(msg.Width/3-6, 20))
		m.qasmEditor.SetHeight(max(msg.Height-controlsHeight-10, 4))

	case sampledMsg:
		m.sampling = false
		switch {
		case msg.revision != m.revision:
			m.logger.Debug("dropping stale sample", "revision", msg.revision)
		case msg.err != nil:
			m.statusMsg = fmt.Sprintf("Sample error: %v", msg.err)
			m.logger.Error("sampling failed", "err", msg.err)
		default:
			m.result = msg.result
			m.output = outputCounts
			m.statusMsg = fmt.Sprintf("Sampled %d shots in %s", msg.result.Shots(), msg.elapsed.Round(time.Millisecond))
			m.logger.Info("sampled", "shots", msg.result.Shots(), "outcomes", len(msg.result.Counts()), "elapsed", msg.elapsed)
		}

	case tea.KeyMsg:
		key := msg.String()
		m.statusMsg = ""

		if key == "ctrl+c" {
			return m, tea.Quit
		}

		switch m.focus {
		case focusCircuit:
			switch key {
			case "q":
				return m, tea.Quit
			case "tab":
				m.focus = focusQASM
				m.qasmEditor.Focus()
			case "ctrl+r":
				m.circuit.Gates = nil
				m.circuit.MaxSteps = 0
				m.cursorStep = 0
				m.syncQASM()
			case "ctrl+s":
				m.saveQASM()
			case "ctrl+e":
				m.exportChart()
			case "up", "k":
				if m.cursorQubit > 0 {
					m.cursorQubit--
				}
			case "down", "j":
				if m.cursorQubit < m.circuit.NumQubits-1 {
					m.cursorQubit++
				}
			case "left", "h":
				if m.cursorStep > 0 {
					m.cursorStep--
				}
			case "right", "l":
				m.cursorStep++
				m.circuit.MaxSteps = max(m.circuit.MaxSteps, m.cursorStep)
			case "+", "=":
				if m.circuit.NumQubits >= m.cfg.MaxQubits {
					m.statusMsg = fmt.Sprintf("Qubit ceiling is %d", m.cfg.MaxQubits)
					break
				}
				m.circuit.NumQubits++
				m.syncQASM()
			case "-":
				if m.circuit.NumQubits > 1 {
					m.circuit.NumQubits--
					m.circuit.RemoveGatesOnQubit(m.circuit.NumQubits)
					m.cursorQubit = min(m.cursorQubit, m.circuit.NumQubits-1)
					m.syncQASM()
				}
			case "a":
				m.focus = focusMenu
				m.menuCat = 0
				m.menuItem = 0
			case "backspace", "delete":
				if m.circuit.GetGateAt(m.cursorStep, m.cursorQubit) != nil {
					m.circuit.RemoveGateAt(m.cursorStep, m.cursorQubit)
					m.syncQASM()
				}
			case "r":
				m.runState(-1)
			case "R":
				m.runState(m.cursorStep)
			case "m":
				m.measureOnce()
			case "s":
				if m.sampling {
					m.statusMsg = "Sampling in progress"
					break
				}
				m.sampling = true
				m.statusMsg = fmt.Sprintf("Sampling %d shots...", m.cfg.Shots)
				cmds = append(cmds, m.sampleCmd())
			case "esc":
				m.output = outputNone
			}

		case focusMenu:
			switch key {
			case "esc":
				m.focus = focusCircuit
			case "up", "k":
				if m.menuItem > 0 {
					m.menuItem--
				}
			case "down", "j":
				if m.menuItem < len(gateMenu[m.menuCat].items)-1 {
					m.menuItem++
				}
			case "left", "h":
				if m.menuCat > 0 {
					m.menuCat--
					m.menuItem = 0
				}
			case "right", "l":
				if m.menuCat < len(gateMenu)-1 {
					m.menuCat++
					m.menuItem = 0
				}
			case "enter":
				item := gateMenu[m.menuCat].items[m.menuItem]
				if qsim.IsParameterized(item.gateType) {
					m.pendingGate = item.gateType
					m.paramInput = ""
					m.focus = focusInputParam
					break
				}
				if m.placeGate(item.gateType, nil) {
					m.focus = focusCircuit
				}
			}

		case focusInputParam:
			switch key {
			case "esc":
				m.focus = focusCircuit
				m.paramInput = ""
				m.pendingGate = ""
			case "backspace":
				if len(m.paramInput) > 0 {
					m.paramInput = m.paramInput[:len(m.paramInput)-1]
				}
			case "enter":
				params := []float64{0}
				if m.paramInput != "" {
					var err error
					if params, err = parseParams(m.paramInput); err != nil {
						m.statusMsg = "Invalid angle: use numbers or pi expressions (e.g. pi/2, 3*pi/4)"
						break
					}
				}
				if m.placeGate(m.pendingGate, params[:1]) {
					m.focus = focusCircuit
				}
			default:
				if len(key) == 1 && isParamRune(key[0]) {
					m.paramInput += key
				}
			}

		case focusQASM:
			switch key {
			case "tab", "esc":
				m.focus = focusCircuit
				m.qasmEditor.Blur()
			default:
				var cmd tea.Cmd
				m.qasmEditor, cmd = m.qasmEditor.Update(msg)
				cmds = append(cmds, cmd)
				m.parseQASMInput()
			}
		}
	}

	return m, tea.Batch(cmds...)
}

func isParamRune(ch byte) bool {
	switch {
	case ch >= '0' && ch <= '9':
		return true
	default:
		return slices.Contains([]byte(".-+eEpPiI*/ "), ch)
	}
}

// View renders the UI.
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	qasmWidth := m.width / 3
	leftWidth := m.width - qasmWidth - 4
	mainHeight := max(m.height-controlsHeight-2, 12)
	circuitHeight := max(mainHeight*3/5, 6)
	outputHeight := max(mainHeight-circuitHeight-2, 4)

	var lower string
	switch m.focus {
	case focusMenu:
		lower = m.renderMenu(leftWidth, outputHeight)
	case focusInputParam:
		lower = m.renderParamInput(leftWidth, outputHeight)
	default:
		lower = m.renderOutputPanel(leftWidth, outputHeight)
	}

	left := lipgloss.JoinVertical(lipgloss.Left, m.renderCircuitPanel(leftWidth, circuitHeight), lower)
	top := lipgloss.JoinHorizontal(lipgloss.Top, left, m.renderQASMPanel(qasmWidth, mainHeight))
	return lipgloss.JoinVertical(lipgloss.Left, top, m.renderControlsPanel(m.width-4, controlsHeight-2))
}
