package app

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/rpggio/voicenotes/internal/config"
	"gopkg.in/natefinch/lumberjack.v2"
)

// NewLogger builds the process logger. When cfg.Path is set, output goes to
// a size-rotated file instead of fallback. The returned closer releases the
// file and is never nil.
func NewLogger(cfg config.LogConfig, fallback io.Writer) (*slog.Logger, io.Closer, error) {
	var (
		w      = fallback
		closer io.Closer = nopCloser{}
	)
	if cfg.Path != "" {
		if err := ensureDir(cfg.Path); err != nil {
			return nil, nil, err
		}
		rotator := &lumberjack.Logger{
			Filename:   cfg.Path,
			MaxSize:    5, // megabytes
			MaxBackups: 3,
			MaxAge:     28, // days
		}
		w, closer = rotator, rotator
	}
	logger := slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: ParseLogLevel(cfg.Level),
	}))
	return logger, closer, nil
}

// ParseLogLevel maps a config level name to a slog level; unknown names
// mean info.
func ParseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func ensureDir(path string) error {
	if path == ":memory:" || path == "" {
		return nil
	}
	dir := filepath.Dir(path)
	if dir == "." {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
