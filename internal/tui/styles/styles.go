package styles

import "github.com/charmbracelet/lipgloss"

// Theme defines the core UI styles
var Theme = struct {
	App          lipgloss.Style
	Title        lipgloss.Style
	Selected     lipgloss.Style
	Unselected   lipgloss.Style
	Disabled     lipgloss.Style
	Help         lipgloss.Style
	Error        lipgloss.Style
	Announcement lipgloss.Style
	DropZone     lipgloss.Style
	DropZoneHot  lipgloss.Style
}{
	App: lipgloss.NewStyle().
		Padding(1, 2),
	Title: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#7B61FF")).
		MarginBottom(1),
	Selected: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#73F59F")).
		Bold(true),
	Unselected: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#666666")),
	Disabled: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#444444")).
		Strikethrough(true),
	Help: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#5A9")),
	Error: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#FF5F5F")),
	Announcement: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#959595")).
		Italic(true),
	DropZone: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#666666")).
		Padding(1, 2),
	DropZoneHot: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#73F59F")).
		Padding(1, 2),
}
