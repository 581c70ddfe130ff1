package note

import "errors"

var (
	// ErrPersist indicates the collection changed in memory but could not be written.
	ErrPersist = errors.New("persisting notes failed")
	// ErrDuplicateID indicates the generated id already exists in the collection.
	ErrDuplicateID = errors.New("duplicate note id")
)
