package speech

import (
	"context"
	"sync"
	"time"

	"github.com/rpggio/voicenotes/internal/domain/dictation"
)

// ScriptedRecognizer replays a fixed list of steps. In continuous mode it
// keeps the session open after the last step until stopped, the way a live
// engine keeps listening.
type ScriptedRecognizer struct {
	Steps []Step
}

// NewScriptedRecognizer creates a recognizer replaying steps.
func NewScriptedRecognizer(steps ...Step) *ScriptedRecognizer {
	return &ScriptedRecognizer{Steps: steps}
}

// Start implements dictation.Recognizer.
func (r *ScriptedRecognizer) Start(ctx context.Context, settings dictation.Settings, listener dictation.Listener) (dictation.Handle, error) {
	h := newStopHandle()
	steps := append([]Step(nil), r.Steps...)

	go func() {
		defer close(h.done)
		for _, step := range steps {
			if step.Delay > 0 {
				timer := time.NewTimer(step.Delay)
				select {
				case <-timer.C:
				case <-h.stop:
					timer.Stop()
					return
				case <-ctx.Done():
					timer.Stop()
					return
				}
			}
			select {
			case <-h.stop:
				return
			case <-ctx.Done():
				return
			default:
			}
			deliver(step, listener)
		}
		if !settings.Continuous {
			return
		}
		select {
		case <-h.stop:
		case <-ctx.Done():
		}
	}()

	return h, nil
}

type stopHandle struct {
	once sync.Once
	stop chan struct{}
	done chan struct{}
}

func newStopHandle() *stopHandle {
	return &stopHandle{stop: make(chan struct{}), done: make(chan struct{})}
}

func (h *stopHandle) Stop() error {
	h.once.Do(func() { close(h.stop) })
	return nil
}

func (h *stopHandle) Done() <-chan struct{} {
	return h.done
}
