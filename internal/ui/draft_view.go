package ui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/pitchdeck/internal/catalog"
	"github.com/five82/pitchdeck/internal/draft"
)

func (m *Model) openDraft() {
	m.draft.Open()
	m.prompt.SetValue(m.draft.Prompt())
	m.context.SetValue(m.draft.Context())
	m.draftFocus = 0
	m.context.Blur()
}

func (m Model) closeDraft() Model {
	m.draft.Close()
	m.prompt.Blur()
	m.context.Blur()
	m.prompt.SetValue("")
	m.context.SetValue("")
	return m
}

func (m Model) handleDraftKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Escape):
		return m.closeDraft(), nil

	case key.Matches(msg, m.keys.SwitchField):
		if m.draftFocus == 0 {
			m.draftFocus = 1
			m.prompt.Blur()
			return m, m.context.Focus()
		}
		m.draftFocus = 0
		m.context.Blur()
		return m, m.prompt.Focus()

	case key.Matches(msg, m.keys.Generate),
		m.draftFocus == 1 && key.Matches(msg, m.keys.Confirm):
		return m.generateDraft()

	case key.Matches(msg, m.keys.Example1):
		return m.prefill(0), nil
	case key.Matches(msg, m.keys.Example2):
		return m.prefill(1), nil
	case key.Matches(msg, m.keys.Example3):
		return m.prefill(2), nil

	}

	var cmd tea.Cmd
	if m.draftFocus == 0 {
		m.prompt, cmd = m.prompt.Update(msg)
		m.draft.SetPrompt(m.prompt.Value())
	} else {
		m.context, cmd = m.context.Update(msg)
		m.draft.SetContext(m.context.Value())
	}
	return m, cmd
}

func (m Model) prefill(i int) Model {
	if err := m.draft.PrefillFromExample(i); err != nil {
		m.log.WithError(err).Debug("example prompt not available")
		return m
	}
	m.prompt.SetValue(m.draft.Prompt())
	return m
}

func (m Model) generateDraft() (tea.Model, tea.Cmd) {
	cmd, err := m.draft.Generate()
	if err != nil {
		if !errors.Is(err, draft.ErrEmptyPrompt) {
			m.log.WithError(err).Warn("draft rejected")
		}
		return m, nil
	}
	if cmd == nil {
		return m, nil
	}
	return m, tea.Batch(cmd, m.maybeSpin())
}

// renderDraftModal renders the AI drafting dialog.
func (m Model) renderDraftModal() string {
	styles := m.theme.Styles()
	var b strings.Builder

	b.WriteString(styles.Text.Bold(true).Render("✨ AI drafting"))
	b.WriteString("\n")
	b.WriteString(styles.FaintText.Render(strings.Repeat("─", ModalWidth-6)))
	b.WriteString("\n\n")

	label := func(text string, focused bool) string {
		if focused {
			return styles.AccentText.Bold(true).Render(text)
		}
		return styles.MutedText.Render(text)
	}

	b.WriteString(label("What should be written?", m.draftFocus == 0))
	b.WriteString("\n")
	b.WriteString(m.prompt.View())
	b.WriteString("\n\n")
	b.WriteString(label("Context", m.draftFocus == 1))
	b.WriteString("\n")
	b.WriteString(m.context.View())
	b.WriteString("\n\n")

	b.WriteString(styles.MutedText.Render("Examples"))
	b.WriteString("\n")
	for i, example := range catalog.ExamplePrompts() {
		b.WriteString(styles.Key.Render(fmt.Sprintf("alt+%d ", i+1)))
		b.WriteString(styles.FaintText.Render(truncateName(example, ModalWidth-14)))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	switch {
	case m.draft.Generating():
		b.WriteString(styles.ButtonDisabled.Render(m.spinner.View() + " Generating text..."))
	case m.draft.CanGenerate():
		b.WriteString(styles.Button.Render("Generate text"))
	default:
		b.WriteString(styles.ButtonDisabled.Render("Generate text"))
	}
	b.WriteString("\n")

	if notice := m.draft.Notice(); notice != "" {
		b.WriteString("\n")
		b.WriteString(styles.DangerText.Render(notice))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(styles.Key.Render("ctrl+g") + styles.MutedText.Render(" generate  ") +
		styles.Key.Render("tab") + styles.MutedText.Render(" switch field  ") +
		styles.Key.Render("esc") + styles.MutedText.Render(" close"))

	return m.placeModal(b.String(), ModalWidth)
}

// placeModal centers content in a bordered box over the whole screen.
func (m Model) placeModal(content string, width int) string {
	modal := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(m.theme.Accent)).
		Padding(1, 2).
		Width(width)

	return lipgloss.Place(
		m.width,
		m.height,
		lipgloss.Center,
		lipgloss.Center,
		modal.Render(content),
		lipgloss.WithWhitespaceChars(" "),
		lipgloss.WithWhitespaceForeground(lipgloss.Color(m.theme.Background)),
	)
}
