package tui

import "github.com/charmbracelet/lipgloss"

var (
	// Private brand colors.
	colorIris  = lipgloss.Color("#5D3FD3")
	colorSlate = lipgloss.Color("#667085")
	colorWhite = lipgloss.Color("#FFFFFF")

	// Row Styles.
	rowStyle = lipgloss.NewStyle()

	focusedStyle = lipgloss.NewStyle().
			Foreground(colorIris).
			Bold(true)

	activeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")) // Green

	expanderStyle = lipgloss.NewStyle().
			Foreground(colorSlate)

	loadingStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")) // Orange

	// Status Styles.
	statusStyle = lipgloss.NewStyle().
			Foreground(colorSlate)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")) // Red

	// Header Styles.
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Padding(0, 1).
			Background(colorIris).
			Foreground(colorWhite)
)
