package status

import "github.com/charmbracelet/lipgloss"

type styles struct {
	title    lipgloss.Style
	header   lipgloss.Style
	user     lipgloss.Style
	key      lipgloss.Style
	detail   lipgloss.Style
	ok       lipgloss.Style
	warning  lipgloss.Style
	section  lipgloss.Style
	empty    lipgloss.Style
	sender   lipgloss.Style
	stamp    lipgloss.Style
	state    lipgloss.Style
	stateBad lipgloss.Style
}

func newStyles() styles {
	return styles{
		title:    lipgloss.NewStyle().Bold(true),
		header:   lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		user:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		key:      lipgloss.NewStyle().Foreground(lipgloss.Color("250")),
		detail:   lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		ok:       lipgloss.NewStyle().Foreground(lipgloss.Color("114")),
		warning:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("203")),
		section:  lipgloss.NewStyle().MarginTop(1),
		empty:    lipgloss.NewStyle().Faint(true),
		sender:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("159")),
		stamp:    lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		state:    lipgloss.NewStyle().Faint(true),
		stateBad: lipgloss.NewStyle().Foreground(lipgloss.Color("203")),
	}
}
