package main

import (
	"fmt"
	"strings"

	"qtermsim/qsim"
)

// menuItem represents a single gate choice in the menu.
type menuItem struct {
	name     string
	gateType string
	symbol   string
	hint     string // parameter example, empty for fixed gates
}

// menuCategory groups related menu items under a tab.
type menuCategory struct {
	name  string
	items []menuItem
}

// gateMenu lists every gate the engine can place.
var gateMenu = []menuCategory{
	{
		name: "Single Qubit",
		items: []menuItem{
			{name: "Hadamard", gateType: qsim.GateH, symbol: "H"},
			{name: "Pauli-X (NOT)", gateType: qsim.GateX, symbol: "X"},
			{name: "Pauli-Y", gateType: qsim.GateY, symbol: "Y"},
			{name: "Pauli-Z", gateType: qsim.GateZ, symbol: "Z"},
			{name: "Phase (S)", gateType: qsim.GateS, symbol: "S"},
			{name: "T Gate", gateType: qsim.GateT, symbol: "T"},
		},
	},
	{
		name: "Rotation",
		items: []menuItem{
			{name: "Rotate X", gateType: qsim.GateRX, symbol: "RX", hint: "pi/2"},
			{name: "Rotate Y", gateType: qsim.GateRY, symbol: "RY", hint: "pi/2"},
			{name: "Rotate Z", gateType: qsim.GateRZ, symbol: "RZ", hint: "pi/2"},
			{name: "Phase Shift", gateType: qsim.GateP, symbol: "P", hint: "pi/4"},
		},
	},
	{
		name: "Two Qubit",
		items: []menuItem{
			{name: "CNOT", gateType: qsim.GateCX, symbol: "●─⊕", hint: "target = next qubit"},
		},
	},
}

// renderMenu renders the gate picker in place of the output panel.
func (m Model) renderMenu(width, height int) string {
	var sb strings.Builder

	sb.WriteString(titleStyle.Render(fmt.Sprintf("Add Gate at q[%d], step %d", m.cursorQubit, m.cursorStep)))
	sb.WriteString("\n")

	for i, cat := range gateMenu {
		name := " " + cat.name + " "
		if i == m.menuCat {
			sb.WriteString(activeGateStyle.Render(name))
		} else {
			sb.WriteString(dimStyle.Render(name))
		}
		if i < len(gateMenu)-1 {
			sb.WriteString(dimStyle.Render("│"))
		}
	}
	sb.WriteString("\n")
	sb.WriteString(dimStyle.Render(strings.Repeat("─", 42)))
	sb.WriteString("\n")

	for i, item := range gateMenu[m.menuCat].items {
		if i == m.menuItem {
			sb.WriteString(menuSelectedStyle.Render(fmt.Sprintf(" ▸ %-18s", item.name)))
			sb.WriteString(gateStyle.Render(item.symbol))
		} else {
			sb.WriteString(menuNormalStyle.Render(fmt.Sprintf("   %-18s", item.name)))
			sb.WriteString(dimStyle.Render(item.symbol))
		}
		if item.hint != "" {
			sb.WriteString(dimStyle.Render(fmt.Sprintf(" (%s)", item.hint)))
		}
		sb.WriteString("\n")
	}
	sb.WriteString(dimStyle.Render(" ↑↓ Select  ←→ Cat  ⏎ Ok  Esc ✕"))

	return menuBorderStyle.Width(width).Height(height).Render(sb.String())
}
