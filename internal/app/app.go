// Package app wires configuration, storage, and services into a runnable
// application shared by the server and CLI binaries.
package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/rpggio/voicenotes/internal/config"
	"github.com/rpggio/voicenotes/internal/domain/dictation"
	"github.com/rpggio/voicenotes/internal/domain/note"
	"github.com/rpggio/voicenotes/internal/speech"
	"github.com/rpggio/voicenotes/internal/sqlite"
)

// App holds the long-lived collaborators of one process.
type App struct {
	Config    config.Config
	Logger    *slog.Logger
	DB        *sqlite.DB
	Notes     *note.Service
	Dictation *dictation.Bridge
	// Loaded is the outcome of reading the store at startup.
	Loaded note.LoadResult
}

// Option customises Open.
type Option func(*options)

type options struct {
	recognizer dictation.Recognizer
	noteOpts   []note.Option
}

// WithRecognizer replaces the configured dictation command.
func WithRecognizer(rec dictation.Recognizer) Option {
	return func(o *options) { o.recognizer = rec }
}

// WithNoteOptions passes options through to note.NewService.
func WithNoteOptions(opts ...note.Option) Option {
	return func(o *options) { o.noteOpts = append(o.noteOpts, opts...) }
}

// Open prepares the database, loads the notes, and detects dictation.
// A store that cannot be read is logged and the app starts empty.
func Open(ctx context.Context, cfg config.Config, logger *slog.Logger, opts ...Option) (*App, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	if err := ensureDir(cfg.DB.Path); err != nil {
		return nil, fmt.Errorf("prepare database path: %w", err)
	}
	db, err := sqlite.New(cfg.DB.Path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.RunMigrations(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	store := sqlite.NewNoteStore(sqlite.NewSlotRepository(db), cfg.Store.Key)
	notes := note.NewService(store, logger, o.noteOpts...)
	loaded := notes.Initialize(ctx)

	rec := o.recognizer
	if rec == nil {
		rec = speech.Detect(cfg.Dictation.Command, logger)
	}
	bridge := dictation.NewBridge(rec, logger)

	logger.Debug("notes ready", "db", cfg.DB.Path, "count", notes.Len(), "load", loaded.Status, "dictation", bridge.IsAvailable())

	return &App{
		Config:    cfg,
		Logger:    logger,
		DB:        db,
		Notes:     notes,
		Dictation: bridge,
		Loaded:    loaded,
	}, nil
}

// Close releases the database.
func (a *App) Close() error {
	if a == nil || a.DB == nil {
		return nil
	}
	return a.DB.Close()
}
