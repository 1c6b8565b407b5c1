package ui

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/pitchdeck/internal/catalog"
	"github.com/five82/pitchdeck/internal/form"
	"github.com/five82/pitchdeck/internal/lifecycle"
	"github.com/five82/pitchdeck/internal/prefs"
)

func (m *Model) initWidgets() {
	m.text = textarea.New()
	m.text.Placeholder = "Describe your offer, or press a to draft it with AI"
	m.text.ShowLineNumbers = false
	m.text.CharLimit = 0
	m.text.MaxHeight = 0

	m.logoPath = textinput.New()
	m.logoPath.Prompt = "path: "
	m.logoPath.Placeholder = "~/Pictures/logo.png"

	m.prompt = textarea.New()
	m.prompt.Placeholder = "What should be written?"
	m.prompt.ShowLineNumbers = false
	m.prompt.CharLimit = 0

	m.context = textinput.New()
	m.context.Prompt = ""
	m.context.Placeholder = "Product, audience, tone (optional)"

	m.spinner = spinner.New()
	m.spinner.Spinner = spinner.Dot
}

// resize lays the widgets out for the current window size.
func (m *Model) resize() {
	inner := clamp(m.width-6, 20, LayoutMaxWidth)
	m.text.SetWidth(inner)
	m.text.SetHeight(TextAreaHeight)
	m.logoPath.Width = clamp(ModalWidth-12, 10, inner)
	m.prompt.SetWidth(ModalWidth - 6)
	m.prompt.SetHeight(PromptHeight)
	m.context.Width = ModalWidth - 8
	m.initLogViewport()
}

// syncTextFromForm copies the form text into the editor after the drafting
// flow wrote to it.
func (m *Model) syncTextFromForm() {
	if m.text.Value() != m.form.Text() {
		m.text.SetValue(m.form.Text())
	}
}

func (m Model) handleBrowseKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.status = ""
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m.quit()

	case key.Matches(msg, m.keys.Help):
		m.mode = modeHelp
		return m, nil

	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		name := m.theme.Name
		if err := prefs.Update(m.prefsPath, func(p *prefs.Prefs) { p.Theme = name }); err != nil {
			m.log.WithError(err).Warn("could not save theme preference")
			m.status = "Theme not saved: " + err.Error()
		}
		return m, nil

	case key.Matches(msg, m.keys.Logs):
		m.mode = modeLogs
		return m, m.refreshLogs()

	case key.Matches(msg, m.keys.Check):
		seq := m.health.start(m.pinger())
		return m, checkCmd(m.ctx, m.pinger(), seq)

	case key.Matches(msg, m.keys.EditText):
		m.mode = modeEditText
		return m, m.text.Focus()

	case key.Matches(msg, m.keys.PickLogo):
		m.mode = modeLogoPath
		m.logoPath.SetValue("")
		return m, m.logoPath.Focus()

	case key.Matches(msg, m.keys.NextStyle):
		m.form.NextStyle()
		return m, nil

	case key.Matches(msg, m.keys.PrevStyle):
		m.form.PrevStyle()
		return m, nil

	case key.Matches(msg, m.keys.Draft):
		m.openDraft()
		return m, m.prompt.Focus()

	case key.Matches(msg, m.keys.Submit):
		return m.submit()
	}
	return m, nil
}

func (m Model) submit() (tea.Model, tea.Cmd) {
	cmd, err := m.form.Submit()
	if err != nil {
		if !errors.Is(err, form.ErrMissingLogo) {
			m.log.WithError(err).Warn("submit rejected")
		}
		return m, nil
	}
	if cmd == nil {
		return m, nil
	}
	return m, tea.Batch(cmd, m.maybeSpin())
}

func (m Model) handleEditTextKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Escape) {
		m.text.Blur()
		m.mode = modeBrowse
		return m, nil
	}
	if msg.String() == "ctrl+s" {
		m.text.Blur()
		m.mode = modeBrowse
		return m.submit()
	}
	var cmd tea.Cmd
	m.text, cmd = m.text.Update(msg)
	m.form.SetText(m.text.Value())
	return m, cmd
}

func (m Model) handleLogoPathKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Escape):
		m.logoPath.Blur()
		m.mode = modeBrowse
		return m, nil
	case key.Matches(msg, m.keys.Confirm):
		path := expandHome(m.logoPath.Value())
		if strings.TrimSpace(path) == "" {
			return m, nil
		}
		if err := m.form.LoadLogo(path); err != nil {
			m.log.WithError(err).WithField("path", path).Warn("could not load logo")
		}
		m.logoPath.Blur()
		m.mode = modeBrowse
		return m, nil
	}
	var cmd tea.Cmd
	m.logoPath, cmd = m.logoPath.Update(msg)
	return m, cmd
}

// renderMain renders the form screen.
func (m Model) renderMain() string {
	styles := m.theme.Styles()
	width := clamp(m.width-2, 20, LayoutMaxWidth+4)

	sections := []string{
		m.renderHeader(),
		m.renderCommandBar(),
		"",
		m.renderLogoSection(styles, width),
		m.renderStyleCards(styles, width),
		m.renderTextSection(styles),
		m.renderSubmitSection(styles),
		"",
		m.renderFeatures(styles, width),
	}
	if m.status != "" {
		sections = append(sections, styles.WarningText.Render(m.status))
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) renderLogoSection(styles Styles, width int) string {
	title := styles.AccentText.Bold(true).Render("1. Logo")
	logo := m.form.Logo()
	if logo == nil {
		body := styles.MutedText.Render("No logo selected. Press l to choose an image file.")
		return lipgloss.JoinVertical(lipgloss.Left, title, styles.Panel.Width(width-2).Render(body))
	}

	size := humanSize(len(logo.Data))
	p := m.form.Preview()
	if w, h := p.Dimensions(); p != nil && w > 0 {
		size += fmt.Sprintf(" · %d×%d px", w, h)
	}
	info := []string{
		styles.Text.Bold(true).Render(truncateName(logo.Name, LogoNameLimit)),
		styles.MutedText.Render(size),
	}
	if hint := m.form.Hint(); hint != "" {
		info = append(info, styles.WarningText.Render(hint))
	}
	if p != nil && p.Err() != nil {
		info = append(info, styles.FaintText.Render("Preview unavailable"))
	}
	info = append(info, styles.FaintText.Render("Press l to replace"))

	var previewBlock string
	if !p.Released() {
		previewBlock = p.Render()
	}
	body := lipgloss.JoinHorizontal(lipgloss.Top, previewBlock, "  ", lipgloss.JoinVertical(lipgloss.Left, info...))
	return lipgloss.JoinVertical(lipgloss.Left, title, styles.Panel.Width(width-2).Render(body))
}

func (m Model) renderStyleCards(styles Styles, width int) string {
	title := styles.AccentText.Bold(true).Render("2. Style")
	options := catalog.Styles()
	cardWidth := clamp((width-len(options)*2)/len(options), 12, 28)

	cards := make([]string, 0, len(options))
	for _, opt := range options {
		selected := opt.ID == m.form.Style()
		marker := "  "
		if selected {
			marker = lipgloss.NewStyle().Foreground(styles.StyleColor(opt.Token)).Render("● ")
		}
		name := lipgloss.NewStyle().Foreground(styles.StyleColor(opt.Token)).Bold(true).Render(opt.Name)
		content := lipgloss.JoinVertical(lipgloss.Left,
			opt.Icon+" "+marker+name,
			styles.MutedText.Render(opt.Description),
		)
		cards = append(cards, styles.Card(opt.Token, selected, cardWidth).Render(content))
	}

	row := lipgloss.JoinHorizontal(lipgloss.Top, cards...)
	if lipgloss.Width(row) > width {
		half := (len(cards) + 1) / 2
		row = lipgloss.JoinVertical(lipgloss.Left,
			lipgloss.JoinHorizontal(lipgloss.Top, cards[:half]...),
			lipgloss.JoinHorizontal(lipgloss.Top, cards[half:]...),
		)
	}
	return lipgloss.JoinVertical(lipgloss.Left, title, row)
}

func (m Model) renderTextSection(styles Styles) string {
	title := styles.AccentText.Bold(true).Render("3. Text")
	if m.mode == modeEditText {
		title += styles.FaintText.Render("  editing, esc to finish")
	}
	panel := styles.Panel
	if m.mode == modeEditText {
		panel = styles.PanelFocus
	}
	lines := []string{title, panel.Render(m.text.View())}
	if m.form.TextReady() {
		lines = append(lines, styles.SuccessText.Render("✓ Text ready for document generation"))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (m Model) renderSubmitSection(styles Styles) string {
	var button string
	switch {
	case m.form.Submitting():
		button = styles.ButtonDisabled.Render(m.spinner.View() + " Generating document...")
	case m.form.CanSubmit():
		button = styles.Button.Render("Generate document")
	default:
		button = styles.ButtonDisabled.Render("Generate document")
	}

	lines := []string{button}
	if msg := m.form.Error(); msg != "" {
		lines = append(lines, styles.DangerText.Render("✗ "+msg))
	}
	if m.form.Success() {
		saved := m.form.Saved()
		msg := fmt.Sprintf("✓ Document downloaded: %s", saved.Path)
		if saved.Pages > 0 {
			msg += fmt.Sprintf(" (%d %s)", saved.Pages, plural(saved.Pages, "page", "pages"))
		}
		lines = append(lines, styles.SuccessText.Render(msg))
	} else if m.form.State() == lifecycle.Succeeded {
		lines = append(lines, styles.FaintText.Render("Last document: "+m.form.Saved().Name))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (m Model) renderFeatures(styles Styles, width int) string {
	features := catalog.Features()
	tileWidth := clamp(width/len(features)-1, 14, 26)
	tiles := make([]string, 0, len(features))
	for _, f := range features {
		tile := lipgloss.JoinVertical(lipgloss.Left,
			f.Icon+" "+styles.Text.Bold(true).Render(f.Title),
			styles.FaintText.Render(f.Description),
		)
		tiles = append(tiles, lipgloss.NewStyle().Width(tileWidth).Render(tile))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tiles...)
}

// renderLogoPicker renders the logo path prompt as a modal.
func (m Model) renderLogoPicker() string {
	styles := m.theme.Styles()
	var b strings.Builder
	b.WriteString(styles.Text.Bold(true).Render("Choose logo"))
	b.WriteString("\n")
	b.WriteString(styles.FaintText.Render("PNG, JPG, GIF, SVG or WebP"))
	b.WriteString("\n\n")
	b.WriteString(m.logoPath.View())
	if dir := m.downloadDir; dir != "" {
		b.WriteString("\n\n")
		b.WriteString(styles.FaintText.Render("Documents are saved to " + dir))
	}
	b.WriteString("\n\n")
	b.WriteString(styles.Key.Render("enter") + styles.MutedText.Render(" select  ") +
		styles.Key.Render("esc") + styles.MutedText.Render(" cancel"))
	return m.placeModal(b.String(), ModalWidth)
}

func expandHome(path string) string {
	path = strings.TrimSpace(path)
	if !strings.HasPrefix(path, "~") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
