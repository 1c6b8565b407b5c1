package draft

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/five82/pitchdeck/internal/catalog"
	"github.com/five82/pitchdeck/internal/docgen"
	"github.com/five82/pitchdeck/internal/lifecycle"
)

type fakeDrafter struct {
	calls []docgen.DraftRequest
	resp  docgen.DraftResponse
	err   error
}

func (f *fakeDrafter) DraftText(_ context.Context, req docgen.DraftRequest) (docgen.DraftResponse, error) {
	f.calls = append(f.calls, req)
	return f.resp, f.err
}

type textSink struct {
	writes []string
}

func (s *textSink) SetText(v string) { s.writes = append(s.writes, v) }

func openWithPrompt(d Drafter, prompt, ctx string) *Controller {
	c := New(Options{Drafter: d})
	c.Open()
	c.SetPrompt(prompt)
	c.SetContext(ctx)
	return c
}

func TestGenerate_BlankPromptSendsNothing(t *testing.T) {
	d := &fakeDrafter{}
	c := openWithPrompt(d, "   \n\t", "")

	assert.False(t, c.CanGenerate())
	cmd, err := c.Generate()
	assert.ErrorIs(t, err, ErrEmptyPrompt)
	assert.Nil(t, cmd)
	assert.Equal(t, NoticeEmptyPrompt, c.Notice())
	assert.Equal(t, lifecycle.Idle, c.State())
	assert.Empty(t, d.calls)
}

func TestGenerate_AcceptedDraftWritesBackAndCloses(t *testing.T) {
	d := &fakeDrafter{resp: docgen.DraftResponse{Text: "Buy now", Success: true}}
	sink := &textSink{}
	c := openWithPrompt(d, "Write a sale banner", "Shoes")

	cmd, err := c.Generate()
	require.NoError(t, err)
	require.NotNil(t, cmd)
	assert.True(t, c.Generating())

	again, err := c.Generate()
	assert.NoError(t, err)
	assert.Nil(t, again, "generate while in flight must be a no-op")

	c.HandleResult(cmd().(ResultMsg), sink)

	require.Len(t, d.calls, 1)
	assert.Equal(t, docgen.DraftRequest{Prompt: "Write a sale banner", Context: "Shoes"}, d.calls[0])
	assert.Equal(t, []string{"Buy now"}, sink.writes)
	assert.False(t, c.IsOpen())
	assert.Empty(t, c.Prompt())
	assert.Empty(t, c.Context())
	assert.Equal(t, lifecycle.Succeeded, c.State())

	text, ok := c.Result()
	assert.True(t, ok)
	assert.Equal(t, "Buy now", text)

	c.Open()
	_, ok = c.Result()
	assert.False(t, ok, "open clears the previous result")
}

func TestGenerate_RejectedDraftKeepsModalOpen(t *testing.T) {
	d := &fakeDrafter{resp: docgen.DraftResponse{Text: "", Success: false}}
	sink := &textSink{}
	c := openWithPrompt(d, "Write something", "ctx")

	cmd, err := c.Generate()
	require.NoError(t, err)
	c.HandleResult(cmd().(ResultMsg), sink)

	assert.Empty(t, sink.writes)
	assert.True(t, c.IsOpen())
	assert.Equal(t, "Write something", c.Prompt())
	assert.Equal(t, "ctx", c.Context())
	assert.Equal(t, NoticeRejected, c.Notice())
	assert.Equal(t, lifecycle.Failed, c.State())
	assert.True(t, c.CanGenerate(), "failed draft allows a retry")
}

func TestGenerate_ErrorNotice(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want string
	}{
		{"transport", errors.New("execute request: refused"), NoticeFailed},
		{"service detail", &docgen.ServiceError{Endpoint: "ai/generate-text", Status: 500, Detail: "model offline"}, "model offline"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			sink := &textSink{}
			c := openWithPrompt(&fakeDrafter{err: tc.err}, "p", "")
			cmd, err := c.Generate()
			require.NoError(t, err)
			c.HandleResult(cmd().(ResultMsg), sink)

			assert.Equal(t, tc.want, c.Notice())
			assert.True(t, c.IsOpen())
			assert.Empty(t, sink.writes)
			assert.Equal(t, lifecycle.Failed, c.State())
		})
	}
}

func TestClose_IsIdempotent(t *testing.T) {
	c := openWithPrompt(&fakeDrafter{}, "p", "c")
	c.Close()
	first := *c
	c.Close()

	assert.False(t, c.IsOpen())
	assert.Empty(t, c.Prompt())
	assert.Empty(t, c.Context())
	assert.Empty(t, c.Notice())
	assert.Equal(t, lifecycle.Idle, c.State())
	assert.Equal(t, first.open, c.open)
	assert.Equal(t, first.prompt, c.prompt)
}

func TestHandleResult_DropsResponseAfterClose(t *testing.T) {
	d := &fakeDrafter{resp: docgen.DraftResponse{Text: "late", Success: true}}
	sink := &textSink{}
	c := openWithPrompt(d, "p", "")

	cmd, err := c.Generate()
	require.NoError(t, err)
	c.Close()

	c.HandleResult(cmd().(ResultMsg), sink)
	assert.Empty(t, sink.writes, "late response must not write into the form")
	assert.False(t, c.IsOpen())
	assert.Equal(t, lifecycle.Idle, c.State())
	_, ok := c.Result()
	assert.False(t, ok)
}

func TestAcceptAndDiscardResult(t *testing.T) {
	sink := &textSink{}
	c := New(Options{})
	c.Open()

	c.AcceptResult(sink)
	assert.Empty(t, sink.writes, "accept without a result is a no-op")
	assert.True(t, c.IsOpen())

	c.result, c.has = "Held draft", true
	c.DiscardResult()
	_, ok := c.Result()
	assert.False(t, ok)
	assert.True(t, c.IsOpen())

	c.result, c.has = "Held draft", true
	c.AcceptResult(sink)
	assert.Equal(t, []string{"Held draft"}, sink.writes)
	assert.False(t, c.IsOpen())
}

func TestPrefillFromExample(t *testing.T) {
	d := &fakeDrafter{}
	c := New(Options{Drafter: d})
	c.Open()

	examples := catalog.ExamplePrompts()
	for i, want := range examples {
		require.NoError(t, c.PrefillFromExample(i))
		assert.Equal(t, want, c.Prompt())
	}
	assert.ErrorIs(t, c.PrefillFromExample(len(examples)), ErrUnknownExample)
	assert.ErrorIs(t, c.PrefillFromExample(-1), ErrUnknownExample)
	assert.Equal(t, examples[len(examples)-1], c.Prompt())
	assert.Empty(t, d.calls, "prefill never sends a request")
}

func TestGenerate_WithoutDrafterFails(t *testing.T) {
	c := openWithPrompt(nil, "p", "")
	cmd, err := c.Generate()
	require.NoError(t, err)
	c.HandleResult(cmd().(ResultMsg), nil)
	assert.Equal(t, NoticeFailed, c.Notice())
}
