// ABOUTME: Shared terminal styles for calendar and chart rendering.
// ABOUTME: Small palette of reusable lipgloss styles.
package render

import "github.com/charmbracelet/lipgloss"

var (
	cPrimary = lipgloss.Color("63")  // blue
	cGood    = lipgloss.Color("42")  // green
	cBad     = lipgloss.Color("196") // red
	cMuted   = lipgloss.Color("244") // gray
	cGold    = lipgloss.Color("220") // gold
	cTrack   = lipgloss.Color("238")
)

var (
	// Title styles headings such as the month title.
	Title = lipgloss.NewStyle().Bold(true).Foreground(cPrimary)
	// Muted styles secondary text.
	Muted = lipgloss.NewStyle().Foreground(cMuted)
	// Good styles within-limit values.
	Good = lipgloss.NewStyle().Bold(true).Foreground(cGood)
	// Bad styles over-limit values.
	Bad = lipgloss.NewStyle().Bold(true).Foreground(cBad)

	cellStyle     = lipgloss.NewStyle().Width(CellWidth)
	headerStyle   = lipgloss.NewStyle().Width(CellWidth).Foreground(cMuted)
	goodCellStyle = cellStyle.Foreground(cGood)
	badCellStyle  = cellStyle.Foreground(cBad).Bold(true)
	todayStyle    = lipgloss.NewStyle().Underline(true)
	selectedStyle = lipgloss.NewStyle().Background(cPrimary).Foreground(cGold)
	labelStyle    = lipgloss.NewStyle().Foreground(cMuted)
)
