package player

import "github.com/charmbracelet/lipgloss"

type theme struct {
	name   string
	cue    lipgloss.Style
	status lipgloss.Style
	muted  lipgloss.Style
}

func newTheme(name, text, accent, muted string) theme {
	return theme{
		name:   name,
		cue:    lipgloss.NewStyle().Foreground(lipgloss.Color(text)).Bold(true),
		status: lipgloss.NewStyle().Foreground(lipgloss.Color(accent)),
		muted:  lipgloss.NewStyle().Foreground(lipgloss.Color(muted)).Italic(true),
	}
}

var themes = []theme{
	newTheme("dark", "#FFFFFF", "#93C5FD", "#6B7280"),
	newTheme("light", "#111827", "#1D4ED8", "#9CA3AF"),
	newTheme("amber", "#FFD166", "#F59E0B", "#6B7280"),
}
