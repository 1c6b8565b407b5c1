package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// renderHeader renders the title bar with the backend state.
func (m Model) renderHeader() string {
	styles := m.theme.Styles()
	surface := lipgloss.Color(m.theme.Surface)
	onSurface := func(s lipgloss.Style) lipgloss.Style { return s.Background(surface) }

	var health string
	switch m.health.status {
	case healthOnline:
		health = onSurface(styles.SuccessText).Render("● Backend online")
	case healthOffline:
		health = onSurface(styles.DangerText).Render("● Backend unreachable")
		if m.health.message != "" {
			health += onSurface(styles.MutedText).Render(" (" + truncateName(m.health.message, 40) + ")")
		}
	case healthChecking:
		health = onSurface(styles.WarningText).Render("○ Checking backend...")
	default:
		health = onSurface(styles.FaintText).Render("○ Backend not checked")
	}
	if !m.health.checked.IsZero() {
		health += onSurface(styles.FaintText).Render("  " + m.health.checked.Format("15:04:05"))
	}

	sep := onSurface(lipgloss.NewStyle()).Render("  ")
	parts := []string{
		onSurface(styles.Logo).Render("pitchdeck"),
		onSurface(styles.MutedText).Render("branded documents"),
		health,
	}
	if m.form.Submitting() || m.draft.Generating() {
		parts = append(parts, onSurface(styles.InfoText).Render(m.spinner.View()+" working"))
	}
	parts = append(parts, onSurface(styles.FaintText).Render(m.theme.Name))

	return styles.Header.Width(m.width).Render(strings.Join(parts, sep))
}

// renderCommandBar renders the short key help line.
func (m Model) renderCommandBar() string {
	styles := m.theme.Styles()
	bindings := m.keys.ShortHelp()
	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		parts = append(parts, styles.Key.Render("<"+h.Key+">")+" "+styles.MutedText.Render(h.Desc))
	}
	return styles.Footer.Render(strings.Join(parts, "  "))
}
