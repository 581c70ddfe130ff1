package sqlite

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rpggio/voicenotes/internal/domain/note"
	"github.com/rpggio/voicenotes/internal/repository"
)

// DefaultNotesKey is the slot the note collection lives under.
const DefaultNotesKey = "notes"

// errNotAnArray is reported when the slot holds valid JSON that is not a list.
var errNotAnArray = errors.New("notes slot does not hold a JSON array")

// NoteStore implements note.Store on top of a single key-value slot holding
// the JSON-serialized collection.
type NoteStore struct {
	slots repository.SlotRepository
	key   string
}

// NewNoteStore creates a NoteStore. An empty key selects DefaultNotesKey.
func NewNoteStore(slots repository.SlotRepository, key string) *NoteStore {
	if key == "" {
		key = DefaultNotesKey
	}
	return &NoteStore{slots: slots, key: key}
}

// Load reads and parses the slot. It never returns an error; the outcome is
// carried by the result status.
func (s *NoteStore) Load(ctx context.Context) note.LoadResult {
	raw, err := s.slots.Get(ctx, s.key)
	if errors.Is(err, repository.ErrNotFound) {
		return note.Empty()
	}
	if err != nil {
		return note.Unavailable(err)
	}
	if raw == "" {
		return note.Empty()
	}

	var notes []note.Note
	if err := json.Unmarshal([]byte(raw), &notes); err != nil {
		return note.Malformed(fmt.Errorf("parse notes slot: %w", err))
	}
	if notes == nil {
		return note.Malformed(errNotAnArray)
	}
	return note.Loaded(notes)
}

// Save serializes the whole collection and overwrites the slot.
func (s *NoteStore) Save(ctx context.Context, notes []note.Note) error {
	data, err := note.MarshalNotes(notes)
	if err != nil {
		return fmt.Errorf("encode notes: %w", err)
	}
	if err := s.slots.Set(ctx, s.key, string(data)); err != nil {
		return fmt.Errorf("write notes slot: %w", err)
	}
	return nil
}
