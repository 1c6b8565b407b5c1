package form

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"regexp"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/five82/pitchdeck/internal/catalog"
	"github.com/five82/pitchdeck/internal/docgen"
	"github.com/five82/pitchdeck/internal/download"
	"github.com/five82/pitchdeck/internal/lifecycle"
	"github.com/five82/pitchdeck/internal/preview"
)

type fakeGenerator struct {
	mu    sync.Mutex
	calls []docgen.DocumentRequest
	doc   docgen.Document
	err   error
}

func (f *fakeGenerator) GenerateDocument(_ context.Context, req docgen.DocumentRequest) (docgen.Document, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, req)
	return f.doc, f.err
}

func (f *fakeGenerator) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

type fakeDownloader struct {
	saved [][]byte
	err   error
}

func (f *fakeDownloader) Save(data []byte, _ string) (download.Result, error) {
	if f.err != nil {
		return download.Result{}, f.err
	}
	f.saved = append(f.saved, data)
	return download.Result{Path: "/tmp/offer_1.pdf", Name: "offer_1.pdf", Size: len(data)}, nil
}

func newTestController(gen Generator, dl Downloader) *Controller {
	return New(Options{
		Generator:     gen,
		Downloader:    dl,
		FlashDuration: 10 * time.Millisecond,
	})
}

func run(t *testing.T, cmd tea.Cmd) tea.Msg {
	t.Helper()
	require.NotNil(t, cmd)
	return cmd()
}

func TestSubmit_WithoutLogoFailsValidation(t *testing.T) {
	gen := &fakeGenerator{}
	c := newTestController(gen, &fakeDownloader{})
	c.SetText("Hello")

	cmd, err := c.Submit()
	assert.ErrorIs(t, err, ErrMissingLogo)
	assert.Nil(t, cmd)
	assert.Equal(t, lifecycle.Idle, c.State())
	assert.Equal(t, missingLogoMessage, c.Error())
	assert.Zero(t, gen.callCount())
}

func TestSubmit_EmptyTextIsNoop(t *testing.T) {
	gen := &fakeGenerator{}
	c := newTestController(gen, &fakeDownloader{})
	c.SetLogo("logo.png", []byte("png"))

	assert.False(t, c.CanSubmit())
	cmd, err := c.Submit()
	assert.NoError(t, err)
	assert.Nil(t, cmd)
	assert.Equal(t, lifecycle.Idle, c.State())
	assert.Empty(t, c.Error())
}

func TestSubmit_SingleRequestAndReentryIgnored(t *testing.T) {
	gen := &fakeGenerator{doc: docgen.Document{Data: []byte("%PDF-1.4"), ContentType: "application/pdf"}}
	dl := &fakeDownloader{}
	c := newTestController(gen, dl)
	c.SetLogo("logo.png", []byte("png"))
	c.SetText("Hello")
	require.NoError(t, c.SelectStyle(catalog.StyleCorporate))
	require.True(t, c.CanSubmit())

	cmd, err := c.Submit()
	require.NoError(t, err)
	require.NotNil(t, cmd)
	assert.Equal(t, lifecycle.InFlight, c.State())
	assert.False(t, c.CanSubmit())

	again, err := c.Submit()
	assert.NoError(t, err)
	assert.Nil(t, again, "submit while in flight must be a no-op")

	msg := run(t, cmd)
	assert.Equal(t, 1, gen.callCount())
	assert.Equal(t, docgen.DocumentRequest{
		LogoName: "logo.png",
		Logo:     []byte("png"),
		Text:     "Hello",
		Style:    catalog.StyleCorporate,
	}, gen.calls[0])

	flash := c.HandleResult(msg.(ResultMsg))
	assert.Equal(t, lifecycle.Succeeded, c.State())
	assert.True(t, c.Success(), "success flag is set immediately")
	assert.Equal(t, "offer_1.pdf", c.Saved().Name)
	require.Len(t, dl.saved, 1)

	expired := run(t, flash)
	c.HandleFlashExpired(expired.(FlashExpiredMsg))
	assert.False(t, c.Success(), "success flag clears after the flash")
}

func TestFlash_StaleTokenDoesNotClearNewerSuccess(t *testing.T) {
	gen := &fakeGenerator{doc: docgen.Document{Data: []byte("x")}}
	c := newTestController(gen, &fakeDownloader{})
	c.SetLogo("logo.png", []byte("png"))
	c.SetText("Hello")

	cmd, _ := c.Submit()
	first := c.HandleResult(run(t, cmd).(ResultMsg))

	cmd, _ = c.Submit()
	assert.False(t, c.Success(), "a new submit hides the previous success")
	second := c.HandleResult(run(t, cmd).(ResultMsg))
	require.True(t, c.Success())

	c.HandleFlashExpired(run(t, first).(FlashExpiredMsg))
	assert.True(t, c.Success(), "the first timer must not clear the second success")

	c.HandleFlashExpired(run(t, second).(FlashExpiredMsg))
	assert.False(t, c.Success())
}

func TestHandleResult_Failures(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want string
	}{
		{"service detail", &docgen.ServiceError{Endpoint: "generate", Status: 500, Detail: "template missing"}, "template missing"},
		{"transport", errors.New("execute request: connection refused"), generateFallback},
		{"service without detail", &docgen.ServiceError{Endpoint: "generate", Status: 502}, generateFallback},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			gen := &fakeGenerator{err: tc.err}
			c := newTestController(gen, &fakeDownloader{})
			c.SetLogo("logo.png", []byte("png"))
			c.SetText("Hello")

			cmd, err := c.Submit()
			require.NoError(t, err)
			assert.Nil(t, c.HandleResult(run(t, cmd).(ResultMsg)))
			assert.Equal(t, lifecycle.Failed, c.State())
			assert.Equal(t, tc.want, c.Error())
			assert.False(t, c.Success())
			assert.True(t, c.CanSubmit(), "failed state allows a manual retry")
		})
	}
}

func TestHandleResult_SaveFailure(t *testing.T) {
	gen := &fakeGenerator{doc: docgen.Document{Data: []byte("x")}}
	c := newTestController(gen, &fakeDownloader{err: errors.New("disk full")})
	c.SetLogo("logo.png", []byte("png"))
	c.SetText("Hello")

	cmd, _ := c.Submit()
	c.HandleResult(run(t, cmd).(ResultMsg))
	assert.Equal(t, lifecycle.Failed, c.State())
	assert.Contains(t, c.Error(), "disk full")
}

func TestHandleResult_StaleEpochIgnored(t *testing.T) {
	c := newTestController(&fakeGenerator{}, &fakeDownloader{})
	assert.Nil(t, c.HandleResult(ResultMsg{Epoch: 7}))
	assert.Equal(t, lifecycle.Idle, c.State())
	assert.False(t, c.Success())
}

func TestSubmit_ClearsPreviousError(t *testing.T) {
	gen := &fakeGenerator{err: errors.New("boom")}
	c := newTestController(gen, &fakeDownloader{})
	c.SetText("Hello")
	_, err := c.Submit()
	require.ErrorIs(t, err, ErrMissingLogo)

	c.SetLogo("logo.png", []byte("png"))
	_, err = c.Submit()
	require.NoError(t, err)
	assert.Empty(t, c.Error())
}

func TestSelectStyle_RoundTripForEveryStyle(t *testing.T) {
	c := newTestController(nil, nil)
	assert.Equal(t, catalog.DefaultStyle(), c.Style())

	for _, s := range catalog.Styles() {
		require.NoError(t, c.SelectStyle(s.ID))
		assert.Equal(t, s.ID, c.Style())
	}

	before := c.Style()
	err := c.SelectStyle("neon")
	assert.ErrorIs(t, err, ErrUnknownStyle)
	assert.Equal(t, before, c.Style(), "unknown style leaves the selection unchanged")
}

func TestNextPrevStyle_Wraps(t *testing.T) {
	c := newTestController(nil, nil)
	styles := catalog.Styles()
	c.PrevStyle()
	assert.Equal(t, styles[len(styles)-1].ID, c.Style())
	c.NextStyle()
	assert.Equal(t, styles[0].ID, c.Style())
	c.NextStyle()
	assert.Equal(t, styles[1].ID, c.Style())
}

func TestSetLogo_ReleasesPreviousPreview(t *testing.T) {
	tracker := &preview.Tracker{}
	c := New(Options{Previews: tracker})

	c.SetLogo("a.png", []byte("not really a png"))
	first := c.Preview()
	c.SetLogo("b.png", []byte("still not a png"))

	assert.True(t, first.Released())
	assert.False(t, c.Preview().Released())
	assert.Equal(t, 1, tracker.Live())
	assert.Equal(t, "b.png", c.Logo().Name)

	c.Close()
	assert.Equal(t, 0, tracker.Live())
}

func TestLoadLogo_AdvisoryFilter(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "brand.txt")
	require.NoError(t, os.WriteFile(path, []byte("text logo"), 0o600))

	c := newTestController(nil, nil)
	require.NoError(t, c.LoadLogo(path))
	assert.Equal(t, "brand.txt", c.Logo().Name)
	assert.Equal(t, []byte("text logo"), c.Logo().Data)
	assert.NotEmpty(t, c.Hint(), "non-image files are accepted with a hint")

	png := filepath.Join(dir, "logo.png")
	require.NoError(t, os.WriteFile(png, []byte("x"), 0o600))
	require.NoError(t, c.LoadLogo(png))
	assert.Empty(t, c.Hint())

	err := c.LoadLogo(filepath.Join(dir, "missing.png"))
	assert.Error(t, err)
	assert.Contains(t, c.Error(), "Could not read logo")
	assert.Equal(t, "logo.png", c.Logo().Name, "failed load keeps the previous logo")
}

func TestSubmit_EndToEndWithHTTPService(t *testing.T) {
	var parts []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mr, err := r.MultipartReader()
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		for {
			p, err := mr.NextPart()
			if err == io.EOF {
				break
			}
			require.NoError(t, err)
			parts = append(parts, p.FormName())
		}
		w.Header().Set("Content-Type", "application/pdf")
		_, _ = w.Write([]byte("%PDF-1.4 body"))
	}))
	t.Cleanup(server.Close)

	client, err := docgen.NewClient(server.URL)
	require.NoError(t, err)
	saver := download.NewSaver(t.TempDir(), nil)

	c := New(Options{Generator: client, Downloader: saver, FlashDuration: time.Millisecond})
	c.SetLogo("logo.png", make([]byte, 10*1024))
	c.SetText("Hello")
	require.NoError(t, c.SelectStyle(catalog.StyleCorporate))

	cmd, err := c.Submit()
	require.NoError(t, err)
	c.HandleResult(run(t, cmd).(ResultMsg))

	assert.Equal(t, []string{"logo", "text", "style"}, parts)
	assert.Equal(t, lifecycle.Succeeded, c.State())
	assert.Regexp(t, regexp.MustCompile(`^offer_\d+\.pdf$`), c.Saved().Name)
	_, err = os.Stat(c.Saved().Path)
	assert.NoError(t, err)
}
