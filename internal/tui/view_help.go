package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// renderHelpView renders the full key-binding reference.
func (m Model) renderHelpView() string {
	title := TitleStyle.Render("Keyboard shortcuts")

	var body strings.Builder
	body.WriteString(title)
	body.WriteString("\n\n")

	descStyle := lipgloss.NewStyle().Foreground(TextSecondary)
	keyStyle := lipgloss.NewStyle().Foreground(PrimaryColor).Bold(true)

	for _, binding := range m.KeyBindings {
		h := binding.Help()
		body.WriteString(keyStyle.Render(padKey(h.Key, 12)))
		body.WriteString(descStyle.Render(h.Desc))
		body.WriteString("\n")
	}

	contentWidth := getContentWidth(m.Width)
	containerStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(BorderColor).
		Padding(1, 2).
		Width(max(contentWidth-6, 20))

	footer := lipgloss.NewStyle().
		Foreground(MutedColor).
		Render("\nPress esc or ? to return • q to quit")

	return "\n" + containerStyle.Render(body.String()) + footer
}

func padKey(s string, width int) string {
	if len(s) >= width {
		return s + " "
	}
	return s + strings.Repeat(" ", width-len(s))
}
