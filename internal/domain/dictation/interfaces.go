package dictation

import "context"

// Recognizer is a speech-to-text capability supplied by the environment.
type Recognizer interface {
	Start(ctx context.Context, settings Settings, listener Listener) (Handle, error)
}

// Listener receives recognition output. Calls may arrive on any goroutine.
type Listener interface {
	OnResult(ev Event)
	OnError(err error)
}

// Handle controls a running recognition.
type Handle interface {
	// Stop asks the engine to finish. It must not block on listener calls.
	Stop() error
	// Done is closed once the engine will deliver no more events.
	Done() <-chan struct{}
}
