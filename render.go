package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// ──────────────────────────── Rendering helpers ────────────────────────────

func padCenter(s string, width int) string {
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, s)
}

// wire draws a horizontal wire with sym in the middle of a cellW column.
func wire(sym string) string {
	left := (cellW - 1) / 2
	return strings.Repeat("─", left) + sym + strings.Repeat("─", cellW-left-1)
}

// ──────────────────────────── Cell rendering ────────────────────────────

// renderCell returns 3 lines (top, mid, bot) for a single cell. Each line is
// exactly cellW visual characters wide.
func renderCell(info cellInfo, cursor bool) (top, mid, bot string) {
	empty := strings.Repeat(" ", cellW)
	half := cellW / 2
	vert := strings.Repeat(" ", half) + "│" + strings.Repeat(" ", cellW-half-1)

	top, bot = empty, empty
	if info.vertAbove {
		top = vert
	}
	if info.vertBelow {
		bot = vert
	}

	switch {
	case info.isControl:
		mid = wire(gateStyle.Render("●"))
	case info.isTarget:
		mid = wire(gateStyle.Render("⊕"))
	case info.gate != nil:
		margin := (cellW - gateBoxW) / 2
		right := cellW - margin - gateBoxW
		edge := strings.Repeat("─", gateNameW)
		top = strings.Repeat(" ", margin) + gateStyle.Render("┌"+edge+"┐") + strings.Repeat(" ", right)
		mid = strings.Repeat("─", margin) + gateStyle.Render("┤"+padCenter(info.gate.Type, gateNameW)+"├") + strings.Repeat("─", right)
		bot = strings.Repeat(" ", margin) + gateStyle.Render("└"+edge+"┘") + strings.Repeat(" ", right)
	case info.passThrough:
		mid = wire("┼")
	default:
		mid = strings.Repeat("─", cellW)
	}

	if cursor {
		inner := cellW - 2
		top = cursorBoxStyle.Render("╔" + strings.Repeat("═", inner) + "╗")
		bot = cursorBoxStyle.Render("╚" + strings.Repeat("═", inner) + "╝")
		mid = cursorBoxStyle.Render("║") + trimCell(info) + cursorBoxStyle.Render("║")
	}
	return top, mid, bot
}

// trimCell is the middle row of a highlighted cell, two columns narrower.
func trimCell(info cellInfo) string {
	inner := cellW - 2
	left := (inner - 1) / 2
	sym := "─"
	switch {
	case info.isControl:
		sym = gateStyle.Render("●")
	case info.isTarget:
		sym = gateStyle.Render("⊕")
	case info.gate != nil:
		return "─┤" + gateStyle.Render(padCenter(info.gate.Type, gateNameW)) + "├─"
	case info.passThrough:
		sym = "┼"
	}
	return strings.Repeat("─", left) + sym + strings.Repeat("─", inner-left-1)
}

// ──────────────────────────── Panel rendering ────────────────────────────

// renderCircuitPanel renders the circuit grid panel.
func (m Model) renderCircuitPanel(width, height int) string {
	var sb strings.Builder

	sb.WriteString(titleStyle.Render("Quantum Circuit"))
	fmt.Fprintf(&sb, "  %s\n\n", dimStyle.Render(fmt.Sprintf("%d qubits, %d gates", m.circuit.NumQubits, len(m.circuit.Gates))))

	visible := max((width-labelVisualW-4)/cellW, 1)
	start := 0
	if m.cursorStep >= visible {
		start = m.cursorStep - visible + 1
	}
	if start > 0 {
		fmt.Fprintf(&sb, "  ◀ showing steps %d–%d\n", start, start+visible-1)
	}

	header := strings.Repeat(" ", labelVisualW)
	for step := start; step < start+visible; step++ {
		header += dimStyle.Render(padCenter(fmt.Sprint(step), cellW))
	}
	sb.WriteString(header + "\n")

	for qubit := range m.circuit.NumQubits {
		topLine := strings.Repeat(" ", labelVisualW)
		midLine := qubitLabelStyle.Render(fmt.Sprintf("%-5s", fmt.Sprintf("q[%d]", qubit))) + "──"
		botLine := topLine

		for step := start; step < start+visible; step++ {
			cursor := step == m.cursorStep && qubit == m.cursorQubit && m.focus != focusQASM
			top, mid, bot := renderCell(m.circuit.getCellInfo(step, qubit), cursor)
			topLine += top
			midLine += mid
			botLine += bot
		}
		sb.WriteString(topLine + "\n" + midLine + "\n" + botLine + "\n")
	}

	fmt.Fprintf(&sb, "\n  Position: Step %d, Qubit %d", m.cursorStep, m.cursorQubit)
	if m.lastSample != "" {
		fmt.Fprintf(&sb, "  │  last shot %s", activeGateStyle.Render("|"+m.lastSample+"⟩"))
	}
	if m.statusMsg != "" {
		fmt.Fprintf(&sb, "  │  %s", activeGateStyle.Render(m.statusMsg))
	}

	return circuitStyle.Width(width).Height(height).Render(sb.String())
}

// renderQASMPanel renders the QASM editor panel.
func (m Model) renderQASMPanel(width, height int) string {
	title := "QASM Editor"
	if m.focus == focusQASM {
		title += " [ACTIVE]"
	}
	body := titleStyle.Render(title) + "\n\n" + m.qasmEditor.View()
	return qasmStyle.Width(width).Height(height).Render(body)
}

// renderControlsPanel renders the bottom help/controls bar.
func (m Model) renderControlsPanel(width, height int) string {
	var sb strings.Builder

	sb.WriteString(activeGateStyle.Render("Edit:     "))
	sb.WriteString("↑↓←→/hjkl Move  +/- Qubits  a Add gate  Bksp Delete  ^R Reset  Tab QASM\n")
	sb.WriteString(activeGateStyle.Render("Simulate: "))
	fmt.Fprintf(&sb, "r Run  R Run to cursor  m Measure once  s Sample %d shots  ^E Export chart  ^S Save  q Quit", m.cfg.Shots)

	return controlsStyle.Width(width).Height(height).Render(sb.String())
}

// renderParamInput renders the angle prompt for parameterized gates.
func (m Model) renderParamInput(width, height int) string {
	var sb strings.Builder
	sb.WriteString(titleStyle.Render("Angle for " + m.pendingGate))
	sb.WriteString("\n\n")
	fmt.Fprintf(&sb, "θ = %s_", m.paramInput)
	sb.WriteString("\n\n")
	sb.WriteString(dimStyle.Render("Examples: pi/2, 3*pi/4, 1.57   ⏎ Ok  Esc ✕"))
	return menuBorderStyle.Width(width).Height(height).Render(sb.String())
}
