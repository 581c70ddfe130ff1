package mcp

import (
	"github.com/rpggio/voicenotes/internal/domain/note"
)

type CreateNoteParams struct {
	Content string `json:"content"`
}

type DeleteNoteParams struct {
	ID string `json:"id"`
}

type SearchNotesParams struct {
	Query string `json:"query,omitempty"`
	Limit int    `json:"limit,omitempty"`
}

// NoteResponse is the wire form of a note; Date uses note.DateLayout.
type NoteResponse struct {
	ID      string `json:"id"`
	Date    string `json:"date"`
	Content string `json:"content"`
}

type CreateNoteResponse struct {
	Note    *NoteResponse `json:"note,omitempty"`
	Created bool          `json:"created"`
	Message string        `json:"message,omitempty"`
}

type DeleteNoteResponse struct {
	ID      string `json:"id"`
	Deleted bool   `json:"deleted"`
}

type NoteListResponse struct {
	Notes []NoteResponse `json:"notes"`
	Count int            `json:"count"`
}

type DictationStatusResponse struct {
	Available       bool   `json:"available"`
	Locale          string `json:"locale"`
	Continuous      bool   `json:"continuous"`
	InterimResults  bool   `json:"interim_results"`
	MaxAlternatives int    `json:"max_alternatives"`
	Message         string `json:"message,omitempty"`
}

func toNoteResponse(n note.Note) NoteResponse {
	return NoteResponse{
		ID:      n.ID,
		Date:    n.CreatedAt.UTC().Format(note.DateLayout),
		Content: n.Content,
	}
}
