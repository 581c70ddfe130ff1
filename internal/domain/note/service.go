package note

import (
	"context"
	"fmt"
	"io"
	"iter"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Service owns the in-memory note collection and keeps the store in step
// with it. Every mutation writes the whole collection before returning.
type Service struct {
	store  Store
	logger *slog.Logger
	now    func() time.Time
	newID  func() string

	mu    sync.Mutex
	notes []Note
}

// NewService creates a new note service with an empty collection.
// Call Initialize to read the store.
func NewService(store Store, logger *slog.Logger, opts ...Option) *Service {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	s := &Service{
		store:  store,
		logger: logger,
		now:    time.Now,
		newID:  uuid.NewString,
		notes:  []Note{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Initialize loads the collection from the store. Failures are logged and
// leave the collection empty; the raw outcome is returned for callers that
// need to tell "no notes yet" from "could not read".
func (s *Service) Initialize(ctx context.Context) LoadResult {
	res := s.store.Load(ctx)
	if res.Failed() {
		s.logger.Warn("notes store unreadable, starting empty", "status", res.Status, "error", res.Err)
	}

	s.mu.Lock()
	s.notes = res.Notes()
	count := len(s.notes)
	s.mu.Unlock()

	s.logger.Debug("notes loaded", "status", res.Status, "count", count)
	return res
}

// Create prepends a new note and persists the collection. The exact empty
// string is rejected silently with a nil note and nil error; whitespace-only
// content is accepted.
//
// When the write fails the note stays in memory and is returned together
// with an error wrapping ErrPersist.
func (s *Service) Create(ctx context.Context, content string) (*Note, error) {
	if content == "" {
		return nil, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	n := Note{
		ID:        s.newID(),
		CreatedAt: s.now().UTC().Truncate(time.Millisecond),
		Content:   content,
	}
	if s.indexOf(n.ID) >= 0 {
		return nil, fmt.Errorf("creating note %s: %w", n.ID, ErrDuplicateID)
	}

	next := make([]Note, 0, len(s.notes)+1)
	next = append(next, n)
	next = append(next, s.notes...)
	s.notes = next

	if err := s.persistLocked(ctx); err != nil {
		return &n, err
	}
	s.logger.Debug("note created", "id", n.ID)
	return &n, nil
}

// Delete removes the note with the given id and reports whether one was
// removed. Unknown ids are not an error; the collection is persisted either
// way.
func (s *Service) Delete(ctx context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := false
	next := make([]Note, 0, len(s.notes))
	for _, n := range s.notes {
		if n.ID == id {
			removed = true
			continue
		}
		next = append(next, n)
	}
	s.notes = next

	if err := s.persistLocked(ctx); err != nil {
		return removed, err
	}
	s.logger.Debug("note deleted", "id", id, "removed", removed)
	return removed, nil
}

// Search returns a lazy view over the collection as it is now. An empty
// query yields every note; otherwise only notes whose content contains the
// query, ignoring case. The sequence can be ranged over any number of times.
func (s *Service) Search(query string) iter.Seq[Note] {
	snapshot := s.Notes()
	if query == "" {
		return slices.Values(snapshot)
	}
	needle := strings.ToLower(query)
	return func(yield func(Note) bool) {
		for _, n := range snapshot {
			if !strings.Contains(strings.ToLower(n.Content), needle) {
				continue
			}
			if !yield(n) {
				return
			}
		}
	}
}

// Notes returns a copy of the collection, newest first.
func (s *Service) Notes() []Note {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Note, len(s.notes))
	copy(out, s.notes)
	return out
}

// Get looks up a note by id.
func (s *Service) Get(id string) (Note, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := s.indexOf(id); i >= 0 {
		return s.notes[i], true
	}
	return Note{}, false
}

// Len returns the number of notes.
func (s *Service) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.notes)
}

func (s *Service) indexOf(id string) int {
	return slices.IndexFunc(s.notes, func(n Note) bool { return n.ID == id })
}

func (s *Service) persistLocked(ctx context.Context) error {
	if err := s.store.Save(ctx, s.notes); err != nil {
		s.logger.Error("saving notes failed, keeping in-memory state", "count", len(s.notes), "error", err)
		return fmt.Errorf("%w: %w", ErrPersist, err)
	}
	return nil
}
