package main

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// probabilityFloor hides basis states that are numerically empty.
const probabilityFloor = 1e-10

// bar draws a horizontal bar of frac*width cells, padded to width.
func bar(style lipgloss.Style, frac float64, width int) string {
	n := int(math.Round(math.Max(0, math.Min(1, frac)) * float64(width)))
	return style.Render(strings.Repeat("█", n)) + dimStyle.Render(strings.Repeat("░", width-n))
}

// renderOutputPanel shows the last simulation result.
func (m Model) renderOutputPanel(width, height int) string {
	var body string
	switch m.output {
	case outputState:
		body = m.renderStateView(width - 4)
	case outputCounts:
		body = m.renderCountsView(width - 4)
	default:
		body = titleStyle.Render("Output") + "\n\n" +
			dimStyle.Render("r runs the circuit, m measures once, s samples shots.")
	}
	return outputStyle.Width(width).Height(height).Render(body)
}

// renderStateView lists non-empty amplitudes and each qubit's marginal.
func (m Model) renderStateView(width int) string {
	var sb strings.Builder

	title := "Final state"
	if m.stateStep >= 0 {
		title = fmt.Sprintf("State after step %d", m.stateStep)
	}
	sb.WriteString(titleStyle.Render(title))
	sb.WriteString("\n\n")

	barW := max(width-48, 8)
	for _, e := range significantStates(m.state, probabilityFloor) {
		fmt.Fprintf(&sb, "%s  %-18s p=%.4f  %s  %s\n",
			qubitLabelStyle.Render("|"+e.Label+"⟩"), e.Amplitude, e.Prob,
			phaseStyle.Render(fmt.Sprintf("φ=%+.3f", e.Phase)), bar(barStyle, e.Prob, barW))
	}

	sb.WriteString("\n")
	for q, p := range qubitProbabilities(m.state) {
		fmt.Fprintf(&sb, "q[%d] P(1)=%.3f %s\n", q, p.Prob1, bar(marginalStyle, p.Prob1, barW))
	}
	return sb.String()
}

// renderCountsView draws the shot histogram as horizontal bars scaled to
// the most frequent outcome.
func (m Model) renderCountsView(width int) string {
	var sb strings.Builder

	res := m.result
	fmt.Fprintf(&sb, "%s  %s\n\n", titleStyle.Render("Counts"),
		dimStyle.Render(fmt.Sprintf("%d shots, %d outcomes", res.Shots(), len(res.Counts()))))

	outcomes := res.Sorted()
	peak := 0
	for _, o := range outcomes {
		peak = max(peak, o.Count)
	}

	barW := max(width-res.Qubits()-24, 8)
	for _, o := range outcomes {
		fmt.Fprintf(&sb, "%s %s %6d %5.1f%%\n",
			qubitLabelStyle.Render(o.State), bar(barStyle, float64(o.Count)/float64(peak), barW),
			o.Count, 100*res.Probability(o.State))
	}
	return sb.String()
}
