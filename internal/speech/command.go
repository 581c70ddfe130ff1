package speech

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/rpggio/voicenotes/internal/domain/dictation"
)

const maxLineBytes = 1 << 20

var (
	// ErrNoCommand indicates no recognizer command is configured.
	ErrNoCommand = errors.New("no recognizer command configured")
	// ErrNotInstalled indicates the configured command cannot be found.
	ErrNotInstalled = errors.New("recognizer command not installed")
	// ErrLineTooLong reports a recognizer output line over maxLineBytes.
	// The line is skipped and reading continues with the next one.
	ErrLineTooLong = errors.New("recognizer output line too long")
)

// CommandRecognizer runs an external speech-to-text process. The process
// reads settings from VOICENOTES_* environment variables and writes one JSON
// object per line on stdout: {"results":[...]} or {"error":"..."}.
type CommandRecognizer struct {
	path   string
	args   []string
	logger *slog.Logger
}

// NewCommandRecognizer resolves command[0] in PATH.
func NewCommandRecognizer(command []string, logger *slog.Logger) (*CommandRecognizer, error) {
	if len(command) == 0 || command[0] == "" {
		return nil, ErrNoCommand
	}
	path, err := exec.LookPath(command[0])
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNotInstalled, err)
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &CommandRecognizer{path: path, args: command[1:], logger: logger}, nil
}

// Detect returns a recognizer for command, or nil when the environment
// cannot provide one. A nil result makes the dictation bridge unavailable.
func Detect(command []string, logger *slog.Logger) dictation.Recognizer {
	rec, err := NewCommandRecognizer(command, logger)
	if err != nil {
		if logger != nil && !errors.Is(err, ErrNoCommand) {
			logger.Info("dictation disabled", "error", err)
		}
		return nil
	}
	return rec
}

// Start implements dictation.Recognizer.
func (r *CommandRecognizer) Start(ctx context.Context, settings dictation.Settings, listener dictation.Listener) (dictation.Handle, error) {
	runCtx, cancel := context.WithCancel(ctx)
	cmd := exec.CommandContext(runCtx, r.path, r.args...)
	cmd.Env = append(os.Environ(),
		"VOICENOTES_LOCALE="+settings.Locale,
		"VOICENOTES_CONTINUOUS="+strconv.FormatBool(settings.Continuous),
		"VOICENOTES_INTERIM_RESULTS="+strconv.FormatBool(settings.InterimResults),
		"VOICENOTES_MAX_ALTERNATIVES="+strconv.Itoa(settings.MaxAlternatives),
	)

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		cancel()
		return nil, fmt.Errorf("recognizer stdout: %w", err)
	}
	if err := cmd.Start(); err != nil {
		cancel()
		return nil, fmt.Errorf("start recognizer: %w", err)
	}

	h := &processHandle{cancel: cancel, done: make(chan struct{})}
	r.logger.Debug("recognizer process started", "path", r.path, "pid", cmd.Process.Pid)
	go h.run(cmd, stdout, listener, r.logger)
	return h, nil
}

type processHandle struct {
	cancel  context.CancelFunc
	once    sync.Once
	stopped atomic.Bool
	done    chan struct{}
}

func (h *processHandle) Stop() error {
	h.once.Do(func() {
		h.stopped.Store(true)
		h.cancel()
	})
	return nil
}

func (h *processHandle) Done() <-chan struct{} {
	return h.done
}

func (h *processHandle) run(cmd *exec.Cmd, stdout io.Reader, listener dictation.Listener, logger *slog.Logger) {
	defer close(h.done)
	defer h.cancel()

	lines := &lineReader{br: bufio.NewReaderSize(stdout, 64*1024)}
	for {
		text, err := lines.next()
		if errors.Is(err, ErrLineTooLong) {
			listener.OnError(err)
			continue
		}
		if err != nil {
			if !errors.Is(err, io.EOF) && !h.stopped.Load() {
				listener.OnError(fmt.Errorf("read recognizer output: %w", err))
			}
			break
		}
		raw := bytes.TrimSpace(text)
		if len(raw) == 0 {
			continue
		}
		step, err := decodeLine(raw)
		if err != nil {
			listener.OnError(fmt.Errorf("decode recognizer output: %w", err))
			continue
		}
		deliver(step, listener)
	}

	err := cmd.Wait()
	if err != nil && !h.stopped.Load() {
		listener.OnError(fmt.Errorf("recognizer exited: %w", err))
	}
	logger.Debug("recognizer process finished", "error", err)
}

// lineReader splits a stream into lines of at most maxLineBytes. A longer
// line is drained up to its newline and reported as ErrLineTooLong, so one
// bad line never stops the stream.
type lineReader struct {
	br  *bufio.Reader
	buf []byte
}

func (l *lineReader) next() ([]byte, error) {
	l.buf = l.buf[:0]
	tooLong := false
	for {
		chunk, err := l.br.ReadSlice('\n')
		if !tooLong {
			if len(l.buf)+len(chunk) > maxLineBytes {
				tooLong = true
				l.buf = l.buf[:0]
			} else {
				l.buf = append(l.buf, chunk...)
			}
		}
		if errors.Is(err, bufio.ErrBufferFull) {
			continue
		}
		if err != nil && !(errors.Is(err, io.EOF) && (tooLong || len(l.buf) > 0)) {
			return nil, err
		}
		if tooLong {
			return nil, ErrLineTooLong
		}
		return l.buf, nil
	}
}
