// Package form implements the primary document form: the logo, the text and
// the selected style, plus the lifecycle of the document generation request.
package form

import (
	"context"
	"errors"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"github.com/five82/pitchdeck/internal/catalog"
	"github.com/five82/pitchdeck/internal/docgen"
	"github.com/five82/pitchdeck/internal/download"
	"github.com/five82/pitchdeck/internal/lifecycle"
	"github.com/five82/pitchdeck/internal/preview"
)

// SuccessFlashDuration is how long the success message stays visible.
const SuccessFlashDuration = 3 * time.Second

const (
	missingLogoMessage = "Please upload a logo"
	generateFallback   = "Failed to generate the document. Check that the backend is running."
)

var (
	// ErrMissingLogo is returned by Submit when no logo is selected.
	ErrMissingLogo = errors.New("logo is required")
	// ErrUnknownStyle is returned by SelectStyle for ids outside the catalog.
	ErrUnknownStyle = errors.New("unknown style")
)

// Generator produces documents. *docgen.Client satisfies it.
type Generator interface {
	GenerateDocument(ctx context.Context, req docgen.DocumentRequest) (docgen.Document, error)
}

// Downloader stores a generated document locally. *download.Saver satisfies it.
type Downloader interface {
	Save(data []byte, contentType string) (download.Result, error)
}

// ResultMsg carries the outcome of a generation request back to the form.
type ResultMsg struct {
	Epoch uint64
	Saved download.Result
	Err   error
}

// FlashExpiredMsg asks the form to hide the success message armed with Token.
type FlashExpiredMsg struct {
	Token uint64
}

// Logo is the selected logo file.
type Logo struct {
	Name string
	Data []byte
}

// Options configures a Controller.
type Options struct {
	Context       context.Context
	Generator     Generator
	Downloader    Downloader
	Previews      *preview.Tracker
	Logger        logrus.FieldLogger
	FlashDuration time.Duration // zero uses SuccessFlashDuration
}

// Controller owns the form state. Methods must be called from the UI update
// loop; the commands it returns do the network and disk work off-loop.
type Controller struct {
	ctx      context.Context
	gen      Generator
	saver    Downloader
	previews *preview.Tracker
	log      logrus.FieldLogger
	flash    time.Duration

	logo    *Logo
	preview *preview.Preview
	hint    string
	text    string
	style   catalog.StyleID

	life       lifecycle.Lifecycle
	errMsg     string
	success    bool
	flashToken uint64
	saved      download.Result
}

// New creates a Controller with the default style selected.
func New(opts Options) *Controller {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	log := opts.Logger
	if log == nil {
		log = logrus.StandardLogger()
	}
	previews := opts.Previews
	if previews == nil {
		previews = &preview.Tracker{}
	}
	flash := opts.FlashDuration
	if flash <= 0 {
		flash = SuccessFlashDuration
	}
	return &Controller{
		ctx:      ctx,
		gen:      opts.Generator,
		saver:    opts.Downloader,
		previews: previews,
		log:      log.WithField("component", "form"),
		flash:    flash,
		style:    catalog.DefaultStyle(),
	}
}

// SetLogo replaces the logo. No type or size validation happens here; the
// previous preview is released and a new one acquired.
func (c *Controller) SetLogo(name string, data []byte) {
	if c.preview != nil {
		c.preview.Release()
	}
	c.logo = &Logo{Name: name, Data: data}
	c.preview = c.previews.Acquire(name, data, preview.DefaultCols, preview.DefaultRows)
	c.hint = ""
	if !looksLikeImage(name) {
		c.hint = fmt.Sprintf("%s does not look like an image; it will be sent as is", name)
	}
	c.log.WithFields(logrus.Fields{"logo": name, "size": len(data)}).Debug("logo selected")
}

// LoadLogo reads the file at path and selects it as the logo.
func (c *Controller) LoadLogo(path string) error {
	path = strings.TrimSpace(path)
	if path == "" {
		return fmt.Errorf("logo path is empty")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		c.errMsg = fmt.Sprintf("Could not read logo: %v", err)
		return fmt.Errorf("read logo: %w", err)
	}
	c.SetLogo(filepath.Base(path), data)
	return nil
}

// SetText replaces the document text. It is also the write-back target of
// the drafting flow.
func (c *Controller) SetText(value string) {
	c.text = value
}

// SelectStyle selects id, which must be one of catalog.Styles.
func (c *Controller) SelectStyle(id catalog.StyleID) error {
	if _, ok := catalog.LookupStyle(id); !ok {
		return fmt.Errorf("%w: %q", ErrUnknownStyle, id)
	}
	c.style = id
	return nil
}

// NextStyle selects the following style, wrapping around.
func (c *Controller) NextStyle() {
	c.style = catalog.StyleAt(catalog.StyleIndex(c.style) + 1).ID
}

// PrevStyle selects the preceding style, wrapping around.
func (c *Controller) PrevStyle() {
	c.style = catalog.StyleAt(catalog.StyleIndex(c.style) - 1).ID
}

// CanSubmit reports whether the submit affordance should be enabled.
func (c *Controller) CanSubmit() bool {
	return c.logo != nil && c.text != "" && c.life.CanStart()
}

// Submit validates the form and returns the command that performs the
// generation request. A missing logo returns ErrMissingLogo without leaving
// Idle. Empty text and re-entrant calls while a request is in flight are
// no-ops returning a nil command.
func (c *Controller) Submit() (tea.Cmd, error) {
	if c.logo == nil {
		c.errMsg = missingLogoMessage
		return nil, ErrMissingLogo
	}
	if c.text == "" {
		return nil, nil
	}
	epoch, ok := c.life.Begin()
	if !ok {
		c.log.Debug("submit ignored: generation already in flight")
		return nil, nil
	}
	c.errMsg = ""
	c.success = false

	req := docgen.DocumentRequest{
		LogoName: c.logo.Name,
		Logo:     c.logo.Data,
		Text:     c.text,
		Style:    c.style,
	}
	c.log.WithFields(logrus.Fields{
		"epoch": epoch,
		"style": req.Style,
		"logo":  req.LogoName,
	}).Info("submitting document request")

	ctx, gen, saver := c.ctx, c.gen, c.saver
	return func() tea.Msg {
		if gen == nil {
			return ResultMsg{Epoch: epoch, Err: fmt.Errorf("no generation service configured")}
		}
		doc, err := gen.GenerateDocument(ctx, req)
		if err != nil {
			return ResultMsg{Epoch: epoch, Err: err}
		}
		if saver == nil {
			return ResultMsg{Epoch: epoch, Err: &saveError{err: fmt.Errorf("no download directory configured")}}
		}
		saved, err := saver.Save(doc.Data, doc.ContentType)
		if err != nil {
			return ResultMsg{Epoch: epoch, Err: &saveError{err: err}}
		}
		return ResultMsg{Epoch: epoch, Saved: saved}
	}, nil
}

// HandleResult applies a generation outcome. Results from a superseded
// request are ignored. On success it returns the command that hides the
// success message after the flash duration.
func (c *Controller) HandleResult(msg ResultMsg) tea.Cmd {
	entry := c.log.WithField("epoch", msg.Epoch)
	if msg.Err != nil {
		reason := describe(msg.Err)
		if !c.life.Fail(msg.Epoch, reason) {
			entry.Debug("dropping stale generation result")
			return nil
		}
		entry.WithError(msg.Err).Warn("document generation failed")
		return nil
	}
	if !c.life.Succeed(msg.Epoch) {
		entry.Debug("dropping stale generation result")
		return nil
	}
	c.saved = msg.Saved
	c.success = true
	c.flashToken++
	token := c.flashToken
	entry.WithField("path", msg.Saved.Path).Info("document generated")
	return tea.Tick(c.flash, func(time.Time) tea.Msg {
		return FlashExpiredMsg{Token: token}
	})
}

// HandleFlashExpired hides the success message if msg belongs to the most
// recent success.
func (c *Controller) HandleFlashExpired(msg FlashExpiredMsg) {
	if msg.Token == c.flashToken {
		c.success = false
	}
}

// Close releases resources held by the form.
func (c *Controller) Close() {
	if c.preview != nil {
		c.preview.Release()
		c.preview = nil
	}
}

// Logo returns the selected logo, or nil.
func (c *Controller) Logo() *Logo { return c.logo }

// Preview returns the preview of the selected logo, or nil.
func (c *Controller) Preview() *preview.Preview { return c.preview }

func (c *Controller) Text() string           { return c.text }
func (c *Controller) TextReady() bool        { return c.text != "" }
func (c *Controller) Style() catalog.StyleID { return c.style }
func (c *Controller) State() lifecycle.State { return c.life.State() }
func (c *Controller) Submitting() bool       { return c.life.InFlight() }
func (c *Controller) Hint() string           { return c.hint }
func (c *Controller) Success() bool          { return c.success }
func (c *Controller) Saved() download.Result { return c.saved }

// Error returns the message shown under the submit button: a local
// validation message, otherwise the reason of a failed generation.
func (c *Controller) Error() string {
	if c.errMsg != "" {
		return c.errMsg
	}
	if c.life.State() == lifecycle.Failed {
		return c.life.Reason()
	}
	return ""
}

type saveError struct {
	err error
}

func (e *saveError) Error() string { return "save document: " + e.err.Error() }
func (e *saveError) Unwrap() error { return e.err }

func describe(err error) string {
	var se *saveError
	if errors.As(err, &se) {
		return fmt.Sprintf("The document was generated but could not be saved: %v", se.err)
	}
	return docgen.Describe(err, generateFallback)
}

func looksLikeImage(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	if ext == "" {
		return false
	}
	return strings.HasPrefix(mime.TypeByExtension(ext), "image/")
}
