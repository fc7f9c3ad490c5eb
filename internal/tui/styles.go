package tui

import "github.com/charmbracelet/lipgloss"

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212")).MarginBottom(1)

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1).
			Width(60)

	selectedCardStyle = cardStyle.BorderForeground(lipgloss.Color("212"))

	labelStyle        = lipgloss.NewStyle().Width(16).Foreground(lipgloss.Color("245"))
	focusedLabelStyle = labelStyle.Foreground(lipgloss.Color("212")).Bold(true)
	dimStyle          = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

	resultStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("63")).
			Padding(0, 1).
			MarginTop(1)

	noticeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214")).MarginTop(1)
	errorStyle  = noticeStyle.Foreground(lipgloss.Color("196"))
)
