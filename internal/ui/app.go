package ui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"github.com/five82/pitchdeck/internal/docgen"
	"github.com/five82/pitchdeck/internal/draft"
	"github.com/five82/pitchdeck/internal/form"
	"github.com/five82/pitchdeck/internal/preview"
	"github.com/five82/pitchdeck/internal/prefs"
)

// mode is the surface currently receiving keys.
type mode int

const (
	modeBrowse mode = iota
	modeEditText
	modeLogoPath
	modeLogs
	modeHelp
)

// Options configures the UI.
type Options struct {
	Context       context.Context
	Service       docgen.Service
	Downloader    form.Downloader
	Logger        logrus.FieldLogger
	LogFile       string
	DownloadDir   string
	ThemeName     string
	PrefsPath     string
	FlashDuration time.Duration
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	ctx         context.Context
	service     docgen.Service
	log         logrus.FieldLogger
	logFile     string
	downloadDir string
	prefsPath   string

	// Controllers
	form     *form.Controller
	draft    *draft.Controller
	previews *preview.Tracker

	// UI state
	theme  Theme
	keys   keyMap
	mode   mode
	width  int
	height int
	ready  bool
	status string // transient footer message

	// Widgets
	text       textarea.Model
	logoPath   textinput.Model
	prompt     textarea.Model
	context    textinput.Model
	draftFocus int // 0 = prompt, 1 = context
	spinner    spinner.Model
	spinning   bool

	// Backend health
	health healthState

	// Log overlay
	logViewport viewport.Model
	logLines    []string
	logWarnOnly bool
	logErr      error
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	log := opts.Logger
	if log == nil {
		log = logrus.StandardLogger()
	}

	themeName := opts.ThemeName
	if themeName == "" {
		themeName = themeOrder[0]
	}

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}

	previews := &preview.Tracker{}
	var gen form.Generator
	var drafter draft.Drafter
	if opts.Service != nil {
		gen, drafter = opts.Service, opts.Service
	}

	m := Model{
		ctx:         ctx,
		service:     opts.Service,
		log:         log,
		logFile:     opts.LogFile,
		downloadDir: opts.DownloadDir,
		prefsPath:   prefsPath,
		previews:    previews,
		form: form.New(form.Options{
			Context:       ctx,
			Generator:     gen,
			Downloader:    opts.Downloader,
			Previews:      previews,
			Logger:        log,
			FlashDuration: opts.FlashDuration,
		}),
		draft: draft.New(draft.Options{
			Context: ctx,
			Drafter: drafter,
			Logger:  log,
		}),
		theme: GetTheme(themeName),
		keys:  DefaultKeyMap(),
	}
	m.initWidgets()
	m.health.start(m.pinger())
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		textarea.Blink,
		checkCmd(m.ctx, m.pinger(), m.health.seq),
	)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.resize()
		return m, nil

	case form.ResultMsg:
		cmd := m.form.HandleResult(msg)
		return m, tea.Batch(cmd, m.maybeSpin())

	case form.FlashExpiredMsg:
		m.form.HandleFlashExpired(msg)
		return m, nil

	case draft.ResultMsg:
		m.draft.HandleResult(msg, m.form)
		m.syncTextFromForm()
		if !m.draft.IsOpen() {
			m.prompt.Blur()
			m.context.Blur()
		}
		return m, nil

	case healthMsg:
		m.health.apply(msg)
		return m, nil

	case logsMsg:
		m.handleLogs(msg)
		return m, nil

	case spinner.TickMsg:
		if !m.form.Submitting() && !m.draft.Generating() {
			m.spinning = false
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m.updateFocused(msg)
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	switch {
	case m.mode == modeHelp:
		return m.renderHelp()
	case m.mode == modeLogs:
		return m.renderLogs()
	case m.draft.IsOpen():
		return m.renderDraftModal()
	case m.mode == modeLogoPath:
		return m.renderLogoPicker()
	}
	return m.renderMain()
}

// handleKey routes keyboard input to the active surface.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m.quit()
	}

	switch {
	case m.mode == modeHelp:
		// Any key closes help
		m.mode = modeBrowse
		return m, nil
	case m.mode == modeLogs:
		return m.handleLogsKey(msg)
	case m.draft.IsOpen():
		return m.handleDraftKey(msg)
	case m.mode == modeLogoPath:
		return m.handleLogoPathKey(msg)
	case m.mode == modeEditText:
		return m.handleEditTextKey(msg)
	}
	return m.handleBrowseKey(msg)
}

// updateFocused forwards non-key messages (cursor blink and the like) to the
// focused widget.
func (m Model) updateFocused(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch {
	case m.draft.IsOpen() && m.draftFocus == 0:
		m.prompt, cmd = m.prompt.Update(msg)
	case m.draft.IsOpen():
		m.context, cmd = m.context.Update(msg)
	case m.mode == modeLogoPath:
		m.logoPath, cmd = m.logoPath.Update(msg)
	case m.mode == modeEditText:
		m.text, cmd = m.text.Update(msg)
	case m.mode == modeLogs:
		m.logViewport, cmd = m.logViewport.Update(msg)
	}
	return m, cmd
}

// pinger returns the service as a pinger, or nil without leaving a typed nil
// behind.
func (m Model) pinger() pinger {
	if m.service == nil {
		return nil
	}
	return m.service
}

func (m Model) quit() (tea.Model, tea.Cmd) {
	m.form.Close()
	return m, tea.Quit
}

// maybeSpin starts the spinner when a request is in flight and it is not
// already ticking.
func (m *Model) maybeSpin() tea.Cmd {
	if m.spinning || (!m.form.Submitting() && !m.draft.Generating()) {
		return nil
	}
	m.spinning = true
	return m.spinner.Tick
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	m := New(opts)
	defer m.form.Close()
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(m.ctx))
	_, err := p.Run()
	return err
}
