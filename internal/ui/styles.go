package ui

import "github.com/charmbracelet/lipgloss"

var (
	matchStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	spinnerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	statusStyle  = lipgloss.NewStyle().Faint(true)
)
