package editor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/rpggio/voicenotes/internal/domain/dictation"
	"github.com/rpggio/voicenotes/internal/domain/note"
)

// User-facing notices.
const (
	MsgNoteCreated          = "Nota criada com sucesso!"
	MsgDictationUnavailable = "Infelizmente seu navegador não suporta a API de gravação!"
	MsgSaveFailed           = "Não foi possível salvar suas notas. Elas continuam disponíveis nesta sessão."
)

// ErrRecording indicates the note cannot be saved while dictation is running.
var ErrRecording = errors.New("stop recording before saving")

// NoteCreator creates notes; *note.Service satisfies it.
type NoteCreator interface {
	Create(ctx context.Context, content string) (*note.Note, error)
}

// Dictation starts dictation sessions; *dictation.Bridge satisfies it.
type Dictation interface {
	IsAvailable() bool
	Start(ctx context.Context, onUpdate func(string), onError func(error)) (*dictation.Session, error)
}

// Notifier shows transient messages to the user.
type Notifier interface {
	Success(msg string)
	Alert(msg string)
	Error(msg string)
}

// State is a snapshot of the editor.
type State struct {
	Content        string
	ShowOnboarding bool
	Recording      bool
}

// Editor is the single "new note" editing context. It owns at most one
// dictation session at a time.
type Editor struct {
	notes     NoteCreator
	dictation Dictation
	notifier  Notifier
	logger    *slog.Logger
	observer  func(State)

	mu      sync.Mutex
	state   State
	session *dictation.Session
}

// Option customises an Editor.
type Option func(*Editor)

// WithObserver registers a callback invoked after every state change.
func WithObserver(fn func(State)) Option {
	return func(e *Editor) { e.observer = fn }
}

// New creates an editor showing the onboarding prompt.
func New(notes NoteCreator, dict Dictation, notifier Notifier, logger *slog.Logger, opts ...Option) *Editor {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if notifier == nil {
		notifier = discardNotifier{}
	}
	e := &Editor{
		notes:     notes,
		dictation: dict,
		notifier:  notifier,
		logger:    logger,
		state:     State{ShowOnboarding: true},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// State returns the current editor state.
func (e *Editor) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// StartEditor switches from the onboarding prompt to plain text entry.
func (e *Editor) StartEditor() {
	e.update(func(s *State) { s.ShowOnboarding = false })
}

// ContentChanged replaces the typed text. Clearing it brings the prompt back.
func (e *Editor) ContentChanged(text string) {
	e.update(func(s *State) {
		s.Content = text
		if text == "" {
			s.ShowOnboarding = true
		}
	})
}

// StartRecording begins dictation into the content field. Without a
// recognizer the user is told so and the editor stays idle.
func (e *Editor) StartRecording(ctx context.Context) error {
	if e.dictation == nil || !e.dictation.IsAvailable() {
		e.notifier.Alert(MsgDictationUnavailable)
		return dictation.ErrUnavailable
	}

	e.mu.Lock()
	if e.state.Recording {
		e.mu.Unlock()
		return nil
	}
	e.state.Recording = true
	e.state.ShowOnboarding = false
	e.mu.Unlock()
	e.notify()

	sess, err := e.dictation.Start(ctx, e.transcriptUpdated, e.recognitionFailed)
	if err != nil {
		e.update(func(s *State) { s.Recording = false })
		e.logger.Error("starting dictation", "error", err)
		return fmt.Errorf("starting dictation: %w", err)
	}

	e.mu.Lock()
	if !e.state.Recording {
		// StopRecording ran while the recognizer was starting.
		e.mu.Unlock()
		sess.Stop()
		return nil
	}
	e.session = sess
	e.mu.Unlock()
	return nil
}

// StopRecording ends dictation. It is safe to call when not recording.
func (e *Editor) StopRecording() {
	e.mu.Lock()
	sess := e.session
	e.session = nil
	wasRecording := e.state.Recording
	e.state.Recording = false
	e.mu.Unlock()

	sess.Stop()
	if wasRecording {
		e.notify()
	}
}

// Save creates a note from the current content. Empty content is ignored.
// On success the editor resets to the onboarding prompt.
func (e *Editor) Save(ctx context.Context) (*note.Note, error) {
	e.mu.Lock()
	if e.state.Recording {
		e.mu.Unlock()
		return nil, ErrRecording
	}
	content := e.state.Content
	e.mu.Unlock()

	if content == "" {
		return nil, nil
	}

	created, err := e.notes.Create(ctx, content)
	if err != nil && !errors.Is(err, note.ErrPersist) {
		return nil, err
	}

	e.update(func(s *State) {
		s.Content = ""
		s.ShowOnboarding = true
	})

	if err != nil {
		e.notifier.Error(MsgSaveFailed)
		return created, err
	}
	e.notifier.Success(MsgNoteCreated)
	return created, nil
}

func (e *Editor) transcriptUpdated(text string) {
	e.update(func(s *State) { s.Content = text })
}

func (e *Editor) recognitionFailed(err error) {
	e.logger.Warn("speech recognition error", "error", err)
}

func (e *Editor) update(fn func(*State)) {
	e.mu.Lock()
	fn(&e.state)
	e.mu.Unlock()
	e.notify()
}

func (e *Editor) notify() {
	if e.observer == nil {
		return
	}
	e.observer(e.State())
}

type discardNotifier struct{}

func (discardNotifier) Success(string) {}
func (discardNotifier) Alert(string)   {}
func (discardNotifier) Error(string)   {}
