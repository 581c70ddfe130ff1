package repository

import "context"

// SlotRepository is a string key-value store where every write replaces the
// whole value of a slot.
type SlotRepository interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
	Keys(ctx context.Context) ([]string, error)
}
