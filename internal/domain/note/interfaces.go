package note

import "context"

// Store persists the whole note collection as a single blob.
type Store interface {
	Load(ctx context.Context) LoadResult
	Save(ctx context.Context, notes []Note) error
}
