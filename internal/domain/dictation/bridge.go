package dictation

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
)

// Bridge adapts an optional Recognizer into a start/stop contract that
// pushes the full transcript on every recognition event.
type Bridge struct {
	rec      Recognizer
	settings Settings
	logger   *slog.Logger
}

// NewBridge creates a bridge. A nil recognizer means the capability is absent.
func NewBridge(rec Recognizer, logger *slog.Logger) *Bridge {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Bridge{rec: rec, settings: DefaultSettings(), logger: logger}
}

// Settings returns the recognition settings used by Start. A nil bridge
// reports the defaults.
func (b *Bridge) Settings() Settings {
	if b == nil {
		return DefaultSettings()
	}
	return b.settings
}

// IsAvailable reports whether the environment provides a recognizer.
func (b *Bridge) IsAvailable() bool {
	return b != nil && b.rec != nil
}

// Start begins a recognition session. onUpdate receives the complete
// transcript so far, never a delta. Engine errors go to onError and leave
// the session running. Without a recognizer Start returns ErrUnavailable
// and invokes neither callback.
func (b *Bridge) Start(ctx context.Context, onUpdate func(string), onError func(error)) (*Session, error) {
	if !b.IsAvailable() {
		return nil, ErrUnavailable
	}
	if onUpdate == nil {
		return nil, ErrInvalidInput
	}
	if onError == nil {
		onError = func(error) {}
	}

	sess := &Session{
		status:   StatusRecording,
		onUpdate: onUpdate,
		onError:  onError,
		logger:   b.logger,
	}
	handle, err := b.rec.Start(ctx, b.settings, sess)
	if err != nil {
		return nil, fmt.Errorf("starting recognizer: %w", err)
	}

	sess.mu.Lock()
	sess.handle = handle
	sess.mu.Unlock()

	b.logger.Debug("dictation started", "locale", b.settings.Locale)
	return sess, nil
}

// Status is the lifecycle state of a Session.
type Status string

const (
	StatusIdle      Status = "idle"
	StatusRecording Status = "recording"
)

// Session is one running dictation. It is owned by the editing context that
// started it and must not be shared.
type Session struct {
	mu       sync.Mutex
	status   Status
	handle   Handle
	onUpdate func(string)
	onError  func(error)
	logger   *slog.Logger
}

// OnResult implements Listener.
func (s *Session) OnResult(ev Event) {
	s.mu.Lock()
	if s.status != StatusRecording {
		s.mu.Unlock()
		return
	}
	cb := s.onUpdate
	s.mu.Unlock()

	cb(Transcript(ev))
}

// OnError implements Listener.
func (s *Session) OnError(err error) {
	s.mu.Lock()
	if s.status != StatusRecording {
		s.mu.Unlock()
		return
	}
	cb := s.onError
	s.mu.Unlock()

	s.logger.Warn("dictation error", "error", err)
	cb(err)
}

// Stop ends the session. Stopping twice, or stopping a nil session, does nothing.
func (s *Session) Stop() {
	if s == nil {
		return
	}
	s.mu.Lock()
	if s.status == StatusIdle {
		s.mu.Unlock()
		return
	}
	s.status = StatusIdle
	handle := s.handle
	s.mu.Unlock()

	if handle == nil {
		return
	}
	if err := handle.Stop(); err != nil {
		s.logger.Warn("stopping recognizer", "error", err)
	}
	s.logger.Debug("dictation stopped")
}

// Status returns the current lifecycle state.
func (s *Session) Status() Status {
	if s == nil {
		return StatusIdle
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// Active reports whether the session is still recording.
func (s *Session) Active() bool {
	return s.Status() == StatusRecording
}

// Wait blocks until the engine has delivered its last event or ctx ends.
func (s *Session) Wait(ctx context.Context) error {
	if s == nil {
		return nil
	}
	s.mu.Lock()
	handle := s.handle
	s.mu.Unlock()
	if handle == nil {
		return nil
	}
	select {
	case <-handle.Done():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
