package mcp

import (
	"errors"
	"fmt"

	"github.com/rpggio/voicenotes/internal/domain/dictation"
	"github.com/rpggio/voicenotes/internal/domain/note"
)

// APIError represents an MCP error response.
type APIError struct {
	Code         string `json:"code"`
	Message      string `json:"message"`
	Details      any    `json:"details,omitempty"`
	RecoveryHint string `json:"recovery_hint,omitempty"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Error codes returned to clients.
const (
	CodePersistFailed        = "PERSIST_FAILED"
	CodeDuplicateID          = "DUPLICATE_ID"
	CodeDictationUnavailable = "DICTATION_UNAVAILABLE"
	CodeInvalidParams        = "INVALID_PARAMS"
)

var (
	// ErrInvalidParams reports tool arguments that could not be decoded.
	ErrInvalidParams = errors.New("invalid params")
	ErrUnknownMethod = errors.New("unknown method")
)

// MapError maps domain errors to MCP error codes.
func MapError(err error) *APIError {
	if err == nil {
		return nil
	}
	var apiErr *APIError
	switch {
	case errors.As(err, &apiErr):
		return apiErr
	case errors.Is(err, note.ErrPersist):
		return &APIError{Code: CodePersistFailed, Message: "notes could not be saved", Details: err.Error(), RecoveryHint: "The change is kept for this session; retry a later write"}
	case errors.Is(err, note.ErrDuplicateID):
		return &APIError{Code: CodeDuplicateID, Message: "generated note id already exists", RecoveryHint: "Retry create_note"}
	case errors.Is(err, dictation.ErrUnavailable):
		return &APIError{Code: CodeDictationUnavailable, Message: "speech recognition is not available", RecoveryHint: "Configure dictation.command"}
	case errors.Is(err, ErrInvalidParams):
		return &APIError{Code: CodeInvalidParams, Message: err.Error()}
	default:
		return nil
	}
}

func mapError(err error) error {
	if apiErr := MapError(err); apiErr != nil {
		return apiErr
	}
	return err
}
