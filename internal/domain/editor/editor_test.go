package editor_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rpggio/voicenotes/internal/domain/dictation"
	"github.com/rpggio/voicenotes/internal/domain/editor"
	"github.com/rpggio/voicenotes/internal/domain/note"
	"github.com/rpggio/voicenotes/internal/speech"
	"github.com/stretchr/testify/require"
)

type notices struct {
	mu      sync.Mutex
	success []string
	alerts  []string
	errs    []string
}

func (n *notices) Success(msg string) { n.mu.Lock(); n.success = append(n.success, msg); n.mu.Unlock() }
func (n *notices) Alert(msg string)   { n.mu.Lock(); n.alerts = append(n.alerts, msg); n.mu.Unlock() }
func (n *notices) Error(msg string)   { n.mu.Lock(); n.errs = append(n.errs, msg); n.mu.Unlock() }

type creatorStub struct {
	created []string
	err     error
}

func (c *creatorStub) Create(_ context.Context, content string) (*note.Note, error) {
	if content == "" {
		return nil, nil
	}
	c.created = append(c.created, content)
	return &note.Note{ID: "n1", Content: content}, c.err
}

func segment(text string) dictation.Segment {
	return dictation.Segment{Alternatives: []dictation.Alternative{{Transcript: text}}}
}

func TestEditor_InitialState(t *testing.T) {
	ed := editor.New(&creatorStub{}, nil, nil, nil)
	require.Equal(t, editor.State{ShowOnboarding: true}, ed.State())
}

func TestEditor_TypedNote(t *testing.T) {
	ctx := context.Background()
	creator := &creatorStub{}
	n := &notices{}
	ed := editor.New(creator, nil, n, nil)

	ed.StartEditor()
	require.False(t, ed.State().ShowOnboarding)

	ed.ContentChanged("lembrar do dentista")
	created, err := ed.Save(ctx)
	require.NoError(t, err)
	require.Equal(t, "lembrar do dentista", created.Content)
	require.Equal(t, []string{"lembrar do dentista"}, creator.created)
	require.Equal(t, []string{editor.MsgNoteCreated}, n.success)
	require.Equal(t, editor.State{ShowOnboarding: true}, ed.State())
}

func TestEditor_ClearingContentShowsOnboarding(t *testing.T) {
	ed := editor.New(&creatorStub{}, nil, nil, nil)
	ed.StartEditor()
	ed.ContentChanged("x")
	require.False(t, ed.State().ShowOnboarding)
	ed.ContentChanged("")
	require.True(t, ed.State().ShowOnboarding)
}

func TestEditor_SaveEmptyIsIgnored(t *testing.T) {
	creator := &creatorStub{}
	n := &notices{}
	ed := editor.New(creator, nil, n, nil)

	created, err := ed.Save(context.Background())
	require.NoError(t, err)
	require.Nil(t, created)
	require.Empty(t, creator.created)
	require.Empty(t, n.success)
}

func TestEditor_SavePersistFailureNotifies(t *testing.T) {
	creator := &creatorStub{err: note.ErrPersist}
	n := &notices{}
	ed := editor.New(creator, nil, n, nil)
	ed.ContentChanged("texto")

	created, err := ed.Save(context.Background())
	require.ErrorIs(t, err, note.ErrPersist)
	require.NotNil(t, created)
	require.Equal(t, []string{editor.MsgSaveFailed}, n.errs)
	require.Empty(t, n.success)
	require.Equal(t, "", ed.State().Content)
}

func TestEditor_SaveOtherFailureKeepsContent(t *testing.T) {
	creator := &creatorStub{err: errors.New("duplicate")}
	ed := editor.New(creator, nil, nil, nil)
	ed.ContentChanged("texto")

	_, err := ed.Save(context.Background())
	require.Error(t, err)
	require.Equal(t, "texto", ed.State().Content)
}

func TestEditor_StartRecordingUnavailable(t *testing.T) {
	n := &notices{}
	ed := editor.New(&creatorStub{}, dictation.NewBridge(nil, nil), n, nil)

	err := ed.StartRecording(context.Background())
	require.ErrorIs(t, err, dictation.ErrUnavailable)
	require.Equal(t, []string{editor.MsgDictationUnavailable}, n.alerts)
	require.False(t, ed.State().Recording)
	require.True(t, ed.State().ShowOnboarding)
}

func TestEditor_StopWithoutStart(t *testing.T) {
	ed := editor.New(&creatorStub{}, dictation.NewBridge(nil, nil), nil, nil)
	require.NotPanics(t, ed.StopRecording)
	require.False(t, ed.State().Recording)
}

func TestEditor_DictatedNote(t *testing.T) {
	ctx := context.Background()
	creator := &creatorStub{}
	n := &notices{}

	rec := speech.NewScriptedRecognizer(
		speech.Step{Event: &dictation.Event{Results: []dictation.Segment{segment("comprar")}}},
		speech.Step{Err: errors.New("no-speech")},
		speech.Step{Event: &dictation.Event{Results: []dictation.Segment{segment("comprar"), segment(" pão")}}},
	)

	states := make(chan editor.State, 16)
	ed := editor.New(creator, dictation.NewBridge(rec, nil), n, nil,
		editor.WithObserver(func(s editor.State) { states <- s }))

	require.NoError(t, ed.StartRecording(ctx))
	require.True(t, ed.State().Recording)
	require.False(t, ed.State().ShowOnboarding)

	require.Eventually(t, func() bool { return ed.State().Content == "comprar pão" }, 2*time.Second, 10*time.Millisecond)
	require.True(t, ed.State().Recording, "errors keep the session recording")

	_, err := ed.Save(ctx)
	require.ErrorIs(t, err, editor.ErrRecording)

	ed.StopRecording()
	ed.StopRecording()
	require.False(t, ed.State().Recording)

	created, err := ed.Save(ctx)
	require.NoError(t, err)
	require.Equal(t, "comprar pão", created.Content)
	require.Equal(t, []string{editor.MsgNoteCreated}, n.success)
	require.NotEmpty(t, states)
}

func TestEditor_StartRecordingTwiceKeepsOneSession(t *testing.T) {
	ctx := context.Background()
	starts := 0
	rec := recognizerFunc(func(ctx context.Context, s dictation.Settings, l dictation.Listener) (dictation.Handle, error) {
		starts++
		return speech.NewScriptedRecognizer().Start(ctx, s, l)
	})
	ed := editor.New(&creatorStub{}, dictation.NewBridge(rec, nil), nil, nil)

	require.NoError(t, ed.StartRecording(ctx))
	require.NoError(t, ed.StartRecording(ctx))
	require.Equal(t, 1, starts)
	ed.StopRecording()
}

type recognizerFunc func(context.Context, dictation.Settings, dictation.Listener) (dictation.Handle, error)

func (f recognizerFunc) Start(ctx context.Context, s dictation.Settings, l dictation.Listener) (dictation.Handle, error) {
	return f(ctx, s, l)
}
