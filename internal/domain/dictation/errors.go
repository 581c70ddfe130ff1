package dictation

import "errors"

var (
	// ErrUnavailable indicates no speech recognizer is present.
	ErrUnavailable = errors.New("speech recognition unavailable")
	// ErrInvalidInput indicates a missing callback.
	ErrInvalidInput = errors.New("invalid dictation input")
)
