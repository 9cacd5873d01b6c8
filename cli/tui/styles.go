// Package tui provides Bubble Tea views for the clipfrag CLI.
//
// TUI mode is opt-in (--tui) and read-only. It renders the same response
// values as json/table/yaml output.
package tui

import "github.com/charmbracelet/lipgloss"

// Color palette.
var (
	primaryColor   = lipgloss.Color("#7C3AED") // Purple
	warningColor   = lipgloss.Color("#F59E0B") // Amber
	mutedColor     = lipgloss.Color("#6B7280") // Gray
	highlightColor = lipgloss.Color("#3B82F6") // Blue
)

// Styles for TUI components.
var (
	// TitleStyle for headers and titles.
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primaryColor)

	// SummaryStyle for the plan summary line.
	SummaryStyle = lipgloss.NewStyle().
			Foreground(mutedColor)

	// RowStyle for unselected fragment rows.
	RowStyle = lipgloss.NewStyle()

	// SelectedStyle for the fragment under the cursor.
	SelectedStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(highlightColor)

	// OversizeStyle marks fragments over the budget.
	OversizeStyle = lipgloss.NewStyle().
			Foreground(warningColor)

	// DetailStyle frames the selected fragment's text.
	DetailStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(mutedColor).
			Padding(0, 1)

	// HelpStyle for help text.
	HelpStyle = lipgloss.NewStyle().
			Foreground(mutedColor)
)
