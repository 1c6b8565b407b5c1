package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sirupsen/logrus"

	"github.com/five82/pitchdeck/internal/logtail"
)

// logsMsg carries a fresh tail of the client log file.
type logsMsg struct {
	lines []string
	err   error
}

// refreshLogs reads the tail of the client log off the update loop.
func (m Model) refreshLogs() tea.Cmd {
	path := m.logFile
	return func() tea.Msg {
		if path == "" {
			return logsMsg{err: fmt.Errorf("logging to file is disabled")}
		}
		lines, err := logtail.Read(path, LogTailLines)
		return logsMsg{lines: lines, err: err}
	}
}

// initLogViewport sizes the log viewport for the current window.
func (m *Model) initLogViewport() {
	width := clamp(m.width-4, 10, m.width)
	height := clamp(m.height-6, 3, m.height)
	if m.logViewport.Width == 0 {
		m.logViewport = viewport.New(width, height)
		m.logViewport.Style = lipgloss.NewStyle()
		return
	}
	m.logViewport.Width = width
	m.logViewport.Height = height
}

func (m *Model) handleLogs(msg logsMsg) {
	m.logErr = msg.err
	m.logLines = msg.lines
	m.renderLogContent()
}

// renderLogContent fills the viewport from the cached lines and keeps the
// newest entries in view.
func (m *Model) renderLogContent() {
	if m.logViewport.Width == 0 {
		m.initLogViewport()
	}
	styles := m.theme.Styles()

	lines := m.logLines
	if m.logWarnOnly {
		lines = logtail.Filter(lines, logrus.WarnLevel)
	}

	var b strings.Builder
	switch {
	case m.logErr != nil:
		b.WriteString(styles.DangerText.Render("Could not read log: " + m.logErr.Error()))
	case len(lines) == 0:
		b.WriteString(styles.MutedText.Render("No log entries yet"))
	}
	for i, line := range lines {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(colorizeLogLine(line, styles))
	}
	m.logViewport.SetContent(b.String())
	m.logViewport.GotoBottom()
}

// colorizeLogLine colors a logrus line by level. Unparsable lines are shown
// as-is.
func colorizeLogLine(line string, styles Styles) string {
	entry, ok := logtail.Parse(line)
	if !ok {
		return styles.FaintText.Render(line)
	}

	var level lipgloss.Style
	switch {
	case entry.Level <= logrus.ErrorLevel:
		level = styles.DangerText
	case entry.Level == logrus.WarnLevel:
		level = styles.WarningText
	case entry.Level == logrus.InfoLevel:
		level = styles.InfoText
	default:
		level = styles.FaintText
	}

	var b strings.Builder
	if !entry.Time.IsZero() {
		b.WriteString(styles.FaintText.Render(entry.Time.Format("15:04:05")))
		b.WriteString(" ")
	}
	b.WriteString(level.Render(fmt.Sprintf("%-5s", strings.ToUpper(entry.Level.String()))))
	b.WriteString(" ")
	b.WriteString(styles.Text.Render(entry.Message))
	for _, f := range entry.Fields {
		b.WriteString(" ")
		b.WriteString(styles.MutedText.Render(f.Key + "="))
		b.WriteString(styles.Text.Render(f.Value))
	}
	return b.String()
}

func (m Model) handleLogsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Escape), key.Matches(msg, m.keys.Logs), key.Matches(msg, m.keys.Quit):
		m.mode = modeBrowse
		return m, nil
	case key.Matches(msg, m.keys.WarnOnly):
		m.logWarnOnly = !m.logWarnOnly
		m.renderLogContent()
		return m, nil
	case key.Matches(msg, m.keys.Reload):
		return m, m.refreshLogs()
	}
	var cmd tea.Cmd
	m.logViewport, cmd = m.logViewport.Update(msg)
	return m, cmd
}

// renderLogs renders the client log overlay.
func (m Model) renderLogs() string {
	styles := m.theme.Styles()

	title := "Client log"
	if m.logWarnOnly {
		title += " (warnings)"
	}
	header := lipgloss.JoinHorizontal(lipgloss.Top,
		styles.AccentText.Bold(true).Render(title),
		"  ",
		styles.FaintText.Render(m.logFile),
	)

	hints := styles.Key.Render("w") + styles.MutedText.Render(" warnings only  ") +
		styles.Key.Render("r") + styles.MutedText.Render(" reload  ") +
		styles.Key.Render("esc") + styles.MutedText.Render(" close")

	box := styles.PanelFocus.
		Width(clamp(m.width-2, 10, m.width)).
		Render(m.logViewport.View())

	return lipgloss.JoinVertical(lipgloss.Left, header, box, hints)
}
