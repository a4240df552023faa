package ui

import "github.com/charmbracelet/lipgloss"

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FFFDF5"))
	subtitleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#AFAFAF")).MarginBottom(1)

	tabStyle = lipgloss.NewStyle().
			Padding(0, 2).
			Foreground(lipgloss.Color("#AFAFAF")).
			Background(lipgloss.Color("237"))
	activeTabStyle = tabStyle.
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color("62"))

	timerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("63")).
			Padding(1, 0, 0, 0)
	runningTimerStyle = timerStyle.Foreground(lipgloss.Color("205"))
	timerStatusStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888"))

	cardStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 2).
			Align(lipgloss.Center).
			Width(14)
	activeCardStyle = cardStyle.BorderForeground(lipgloss.Color("62"))
	countStyle      = lipgloss.NewStyle().Bold(true)
	nonZeroStyle    = countStyle.Foreground(lipgloss.Color("118"))

	presetLabelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#AFAFAF")).MarginTop(1)
	presetStyle       = lipgloss.NewStyle().Padding(0, 1).Foreground(lipgloss.Color("#AFAFAF"))
	activePresetStyle = presetStyle.Bold(true).Foreground(lipgloss.Color("#FFFFFF")).Background(lipgloss.Color("62"))

	formStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(1, 2)

	modalStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.DoubleBorder()).
			BorderForeground(lipgloss.Color("170")).
			Padding(1, 3).
			Align(lipgloss.Center)
	modalTitleStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("62")).
			Foreground(lipgloss.Color("#FFFFFF")).
			Padding(0, 1).
			Bold(true)
	modalHelpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888")).
			Padding(1, 0, 0, 0)

	docStyle = lipgloss.NewStyle().Margin(1, 2)
)
