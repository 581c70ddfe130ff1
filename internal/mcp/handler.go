package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"iter"

	"github.com/rpggio/voicenotes/internal/domain/dictation"
	"github.com/rpggio/voicenotes/internal/domain/note"
)

// NoteService defines note operations needed by MCP.
type NoteService interface {
	Create(ctx context.Context, content string) (*note.Note, error)
	Delete(ctx context.Context, id string) (bool, error)
	Search(query string) iter.Seq[note.Note]
}

// DictationService reports whether speech recognition can be used.
type DictationService interface {
	IsAvailable() bool
	Settings() dictation.Settings
}

// Handler dispatches MCP commands.
type Handler struct {
	notes     NoteService
	dictation DictationService
}

// NewHandler creates a new MCP handler. dict may be nil when dictation is
// not configured.
func NewHandler(notes NoteService, dict DictationService) *Handler {
	return &Handler{notes: notes, dictation: dict}
}

// Handle dispatches MCP requests to domain services.
func (h *Handler) Handle(ctx context.Context, method string, params json.RawMessage) (any, error) {
	switch method {
	case "create_note":
		var req CreateNoteParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		created, err := h.notes.Create(ctx, req.Content)
		if err != nil {
			apiErr := MapError(err)
			if apiErr == nil {
				return nil, err
			}
			if created != nil {
				resp := toNoteResponse(*created)
				apiErr.Details = CreateNoteResponse{Note: &resp, Created: true}
			}
			return nil, apiErr
		}
		if created == nil {
			return CreateNoteResponse{Created: false, Message: "empty content ignored"}, nil
		}
		resp := toNoteResponse(*created)
		return CreateNoteResponse{Note: &resp, Created: true}, nil
	case "delete_note":
		var req DeleteNoteParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		removed, err := h.notes.Delete(ctx, req.ID)
		if err != nil {
			return nil, mapError(err)
		}
		return DeleteNoteResponse{ID: req.ID, Deleted: removed}, nil
	case "search_notes":
		var req SearchNotesParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		return h.collect(req.Query, req.Limit), nil
	case "list_notes":
		return h.collect("", 0), nil
	case "dictation_status":
		settings := dictation.DefaultSettings()
		available := false
		if h.dictation != nil {
			settings = h.dictation.Settings()
			available = h.dictation.IsAvailable()
		}
		resp := DictationStatusResponse{
			Available:       available,
			Locale:          settings.Locale,
			Continuous:      settings.Continuous,
			InterimResults:  settings.InterimResults,
			MaxAlternatives: settings.MaxAlternatives,
		}
		if !available {
			resp.Message = MapError(dictation.ErrUnavailable).Message
		}
		return resp, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownMethod, method)
	}
}

func (h *Handler) collect(query string, limit int) NoteListResponse {
	resp := NoteListResponse{Notes: []NoteResponse{}}
	for n := range h.notes.Search(query) {
		if limit > 0 && len(resp.Notes) >= limit {
			break
		}
		resp.Notes = append(resp.Notes, toNoteResponse(n))
	}
	resp.Count = len(resp.Notes)
	return resp
}

func decodeParams(params json.RawMessage, out any) error {
	if len(params) == 0 || string(params) == "null" {
		return nil
	}
	if err := json.Unmarshal(params, out); err != nil {
		return mapError(fmt.Errorf("%w: %v", ErrInvalidParams, err))
	}
	return nil
}
