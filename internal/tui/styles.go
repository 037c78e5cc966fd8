package tui

import (
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
)

// Colors matching the output/colors.go scheme
var (
	colorCyan   = lipgloss.Color("6")  // Cyan - titles, cold
	colorYellow = lipgloss.Color("3")  // Yellow - loading, warm
	colorRed    = lipgloss.Color("1")  // Red - errors
	colorBlue   = lipgloss.Color("4")  // Blue - precipitation
	colorWhite  = lipgloss.Color("15") // White - headers
	colorGray   = lipgloss.Color("8")  // Gray - muted text
)

// Text styles
var (
	styleTitle    = lipgloss.NewStyle().Foreground(colorYellow).Bold(true)
	styleHeader   = lipgloss.NewStyle().Foreground(colorWhite).Bold(true).Underline(true)
	styleHeading  = lipgloss.NewStyle().Foreground(colorCyan).Bold(true)
	styleMuted    = lipgloss.NewStyle().Foreground(colorGray)
	styleSelected = lipgloss.NewStyle().Foreground(colorCyan).Bold(true)
	styleLoading  = lipgloss.NewStyle().Foreground(colorYellow).Italic(true)
	styleError    = lipgloss.NewStyle().Foreground(colorRed)
	stylePrompt   = lipgloss.NewStyle().Foreground(colorYellow).Bold(true)
)

// Result area border
var (
	stylePanelFocused = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(colorCyan).
				Padding(0, 1)

	stylePanelNormal = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(colorGray).
				Padding(0, 1)
)

// Status bar at the bottom
var styleStatusBar = lipgloss.NewStyle().
	Foreground(colorGray).
	Background(lipgloss.Color("0"))

// tableStyles styles the forecast table
func tableStyles() table.Styles {
	s := table.DefaultStyles()
	s.Header = s.Header.
		Foreground(colorWhite).
		Bold(true).
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(colorGray).
		BorderBottom(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("0")).
		Background(colorBlue).
		Bold(false)
	return s
}
