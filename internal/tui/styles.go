package tui

import "github.com/charmbracelet/lipgloss"

var (
	success = lipgloss.Color("#8BC34A")
	warning = lipgloss.Color("#FFC107")
	danger  = lipgloss.Color("#e53935")
	muted   = lipgloss.Color("#6b7280")
	accent  = lipgloss.Color("#2196F3")
)

// Styles groups the lipgloss styles the roster view uses.
type Styles struct {
	Title   lipgloss.Style
	Summary lipgloss.Style
	Banner  lipgloss.Style
	Alert   lipgloss.Style
	Success lipgloss.Style
	Pending lipgloss.Style
	Muted   lipgloss.Style
	Detail  lipgloss.Style
	Button  lipgloss.Style
}

func DefaultStyles() Styles {
	return Styles{
		Title:   lipgloss.NewStyle().Bold(true).Foreground(accent),
		Summary: lipgloss.NewStyle().Foreground(muted),
		Banner:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#ffffff")).Background(danger).Padding(0, 1),
		Alert:   lipgloss.NewStyle().Bold(true).Foreground(danger).Border(lipgloss.RoundedBorder()).BorderForeground(danger).Padding(0, 1),
		Success: lipgloss.NewStyle().Foreground(success),
		Pending: lipgloss.NewStyle().Foreground(warning),
		Muted:   lipgloss.NewStyle().Foreground(muted),
		Detail:  lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(muted).Padding(0, 1),
		Button:  lipgloss.NewStyle().Bold(true),
	}
}
