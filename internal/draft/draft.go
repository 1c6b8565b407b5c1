// Package draft implements the modal AI drafting flow. A draft is requested
// from a prompt and optional context; an accepted draft is written into the
// form's text field through a TextSink and the modal closes itself.
package draft

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"github.com/five82/pitchdeck/internal/catalog"
	"github.com/five82/pitchdeck/internal/docgen"
	"github.com/five82/pitchdeck/internal/lifecycle"
)

// User-facing notices.
const (
	NoticeEmptyPrompt = "Please describe what should be written"
	NoticeRejected    = "Could not generate the text. Please try again."
	NoticeFailed      = "AI text generation failed. Check the connection to the server."
)

var (
	// ErrEmptyPrompt is returned by Generate when the prompt is blank.
	ErrEmptyPrompt = errors.New("prompt is empty")
	// ErrUnknownExample is returned by PrefillFromExample for an index
	// outside the example set.
	ErrUnknownExample = errors.New("unknown example prompt")
)

// Drafter requests draft text. *docgen.Client satisfies it.
type Drafter interface {
	DraftText(ctx context.Context, req docgen.DraftRequest) (docgen.DraftResponse, error)
}

// TextSink receives an accepted draft. The flow only ever writes to it.
type TextSink interface {
	SetText(value string)
}

// ResultMsg carries the outcome of a draft request back to the flow.
type ResultMsg struct {
	Epoch uint64
	Resp  docgen.DraftResponse
	Err   error
}

// Options configures a Controller.
type Options struct {
	Context context.Context
	Drafter Drafter
	Logger  logrus.FieldLogger
}

// Controller owns the drafting modal state.
type Controller struct {
	ctx     context.Context
	drafter Drafter
	log     logrus.FieldLogger

	open    bool
	prompt  string
	context string
	life    lifecycle.Lifecycle
	result  string
	has     bool
	notice  string
}

// New returns a closed Controller.
func New(opts Options) *Controller {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	log := opts.Logger
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Controller{
		ctx:     ctx,
		drafter: opts.Drafter,
		log:     log.WithField("component", "draft"),
	}
}

// Open shows the modal. Only the previous result is cleared.
func (c *Controller) Open() {
	c.open = true
	c.result, c.has = "", false
}

// Close hides the modal and resets it. A request still in flight is
// abandoned: its response carries an old epoch and will be dropped.
func (c *Controller) Close() {
	c.open = false
	c.prompt = ""
	c.context = ""
	c.result, c.has = "", false
	c.notice = ""
	c.life.Reset()
}

func (c *Controller) SetPrompt(value string)  { c.prompt = value }
func (c *Controller) SetContext(value string) { c.context = value }

// PrefillFromExample sets the prompt to example i. No request is sent.
func (c *Controller) PrefillFromExample(i int) error {
	examples := catalog.ExamplePrompts()
	if i < 0 || i >= len(examples) {
		return fmt.Errorf("%w: %d", ErrUnknownExample, i)
	}
	c.prompt = examples[i]
	return nil
}

// Generate returns the command that requests a draft. A blank prompt sets
// the notice and returns ErrEmptyPrompt. While a request is in flight it is
// a no-op.
func (c *Controller) Generate() (tea.Cmd, error) {
	if strings.TrimSpace(c.prompt) == "" {
		c.notice = NoticeEmptyPrompt
		return nil, ErrEmptyPrompt
	}
	epoch, ok := c.life.Begin()
	if !ok {
		return nil, nil
	}
	c.result, c.has = "", false
	c.notice = ""

	req := docgen.DraftRequest{Prompt: c.prompt, Context: c.context}
	c.log.WithFields(logrus.Fields{
		"epoch":       epoch,
		"prompt_len":  len(req.Prompt),
		"context_len": len(req.Context),
	}).Info("requesting draft")

	ctx, drafter := c.ctx, c.drafter
	return func() tea.Msg {
		if drafter == nil {
			return ResultMsg{Epoch: epoch, Err: fmt.Errorf("no drafting service configured")}
		}
		resp, err := drafter.DraftText(ctx, req)
		return ResultMsg{Epoch: epoch, Resp: resp, Err: err}
	}, nil
}

// HandleResult applies a draft outcome. An accepted draft is written to
// sink and closes the modal; rejected drafts and errors leave the modal open
// with its inputs intact.
func (c *Controller) HandleResult(msg ResultMsg, sink TextSink) {
	entry := c.log.WithField("epoch", msg.Epoch)
	switch {
	case msg.Err != nil:
		if !c.life.Fail(msg.Epoch, msg.Err.Error()) {
			entry.Debug("dropping stale draft result")
			return
		}
		c.notice = docgen.Describe(msg.Err, NoticeFailed)
		entry.WithError(msg.Err).Warn("draft request failed")
	case !msg.Resp.Success:
		if !c.life.Fail(msg.Epoch, "rejected") {
			entry.Debug("dropping stale draft result")
			return
		}
		c.notice = NoticeRejected
		entry.Warn("draft rejected by service")
	default:
		if !c.life.Succeed(msg.Epoch) {
			entry.Debug("dropping stale draft result")
			return
		}
		c.result, c.has = msg.Resp.Text, true
		entry.WithField("text_len", len(msg.Resp.Text)).Info("draft accepted")
		c.writeBack(sink)
	}
}

// AcceptResult writes the held result into sink and closes the modal.
func (c *Controller) AcceptResult(sink TextSink) {
	if !c.has {
		return
	}
	c.writeBack(sink)
	c.Close()
}

// DiscardResult drops the held result.
func (c *Controller) DiscardResult() {
	c.result, c.has = "", false
}

func (c *Controller) writeBack(sink TextSink) {
	if sink != nil {
		sink.SetText(c.result)
	}
	c.open = false
	c.prompt = ""
	c.context = ""
	c.notice = ""
}

func (c *Controller) IsOpen() bool           { return c.open }
func (c *Controller) Prompt() string         { return c.prompt }
func (c *Controller) Context() string        { return c.context }
func (c *Controller) State() lifecycle.State { return c.life.State() }
func (c *Controller) Generating() bool       { return c.life.InFlight() }
func (c *Controller) Notice() string         { return c.notice }

// Result returns the last accepted draft, if any.
func (c *Controller) Result() (string, bool) { return c.result, c.has }

// CanGenerate reports whether the generate affordance should be enabled.
func (c *Controller) CanGenerate() bool {
	return strings.TrimSpace(c.prompt) != "" && c.life.CanStart()
}
