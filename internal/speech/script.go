// Package speech provides dictation.Recognizer implementations that the
// environment can supply: an external speech-to-text process and a scripted
// replay used for demos and tests.
package speech

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/rpggio/voicenotes/internal/domain/dictation"
)

// Step is one scripted recognizer output: an event, an error, or both.
type Step struct {
	Event *dictation.Event
	Err   error
	Delay time.Duration
}

// line is the JSON-lines wire format shared by recognizer processes and
// script files.
type line struct {
	Results []dictation.Segment `json:"results"`
	Error   string              `json:"error,omitempty"`
	DelayMS int                 `json:"delay_ms,omitempty"`
}

func decodeLine(data []byte) (Step, error) {
	var l line
	if err := json.Unmarshal(data, &l); err != nil {
		return Step{}, err
	}
	step := Step{Delay: time.Duration(l.DelayMS) * time.Millisecond}
	if l.Error != "" {
		step.Err = errors.New(l.Error)
	}
	if l.Results != nil {
		step.Event = &dictation.Event{Results: l.Results}
	}
	if step.Event == nil && step.Err == nil {
		return Step{}, fmt.Errorf("line has neither results nor error")
	}
	return step, nil
}

func deliver(step Step, listener dictation.Listener) {
	if step.Err != nil {
		listener.OnError(step.Err)
	}
	if step.Event != nil {
		listener.OnResult(*step.Event)
	}
}

// ParseScript reads JSON lines into steps. Blank lines are skipped.
func ParseScript(r io.Reader) ([]Step, error) {
	var steps []Step
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	n := 0
	for scanner.Scan() {
		n++
		raw := scanner.Bytes()
		if len(bytes.TrimSpace(raw)) == 0 {
			continue
		}
		step, err := decodeLine(raw)
		if err != nil {
			return nil, fmt.Errorf("script line %d: %w", n, err)
		}
		steps = append(steps, step)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading script: %w", err)
	}
	return steps, nil
}
