package term

import "github.com/charmbracelet/lipgloss"

type styles struct {
	User        lipgloss.Style
	Bot         lipgloss.Style
	Placeholder lipgloss.Style
	Failure     lipgloss.Style
	Help        lipgloss.Style
	Border      lipgloss.Style
}

func defaultStyles() styles {
	return styles{
		User:        lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12")),
		Bot:         lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10")),
		Placeholder: lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("8")),
		Failure:     lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
		Help:        lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		Border:      lipgloss.NewStyle().BorderStyle(lipgloss.NormalBorder()).BorderTop(true).BorderForeground(lipgloss.Color("8")),
	}
}
