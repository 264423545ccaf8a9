package main

import "github.com/charmbracelet/lipgloss"

// Grid geometry, in terminal cells.
const (
	cellW          = 11 // one circuit step
	labelVisualW   = 7  // "q[n]: " gutter
	gateNameW      = 5
	gateBoxW       = gateNameW + 2 // ┤name├
	controlsHeight = 4             // help bar including its border
)

// Tokyo Night palette.
const (
	colorBlue   = lipgloss.Color("#7aa2f7")
	colorCyan   = lipgloss.Color("#7dcfff")
	colorPurple = lipgloss.Color("#bb9af7")
	colorGreen  = lipgloss.Color("#9ece6a")
	colorOrange = lipgloss.Color("#ff9e64")
	colorYellow = lipgloss.Color("#e0af68")
	colorTeal   = lipgloss.Color("#73daca")
	colorMuted  = lipgloss.Color("#565f89")
	colorText   = lipgloss.Color("#c0caf5")
)

// panel is a rounded box with the given accent; pad follows lipgloss
// Padding shorthand.
func panel(accent lipgloss.Color, pad ...int) lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(accent).
		Padding(pad...)
}

var (
	circuitStyle    = panel(colorBlue, 1)
	outputStyle     = panel(colorCyan, 0, 1)
	qasmStyle       = panel(colorPurple, 1)
	controlsStyle   = panel(colorGreen, 0, 1)
	menuBorderStyle = panel(colorOrange, 0, 1)

	titleStyle      = lipgloss.NewStyle().Bold(true).Foreground(colorOrange)
	cursorBoxStyle  = lipgloss.NewStyle().Bold(true).Foreground(colorOrange)
	activeGateStyle = lipgloss.NewStyle().Foreground(colorYellow)
	qubitLabelStyle = lipgloss.NewStyle().Foreground(colorCyan)
	gateStyle       = lipgloss.NewStyle().Bold(true).Foreground(colorTeal)
	dimStyle        = lipgloss.NewStyle().Foreground(colorMuted)

	// Output panel: amplitude and count bars, per-qubit P(1) bars.
	barStyle      = lipgloss.NewStyle().Foreground(colorGreen)
	marginalStyle = lipgloss.NewStyle().Foreground(colorYellow)
	phaseStyle    = lipgloss.NewStyle().Foreground(colorPurple)

	menuSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorOrange)
	menuNormalStyle   = lipgloss.NewStyle().Foreground(colorText)
)
