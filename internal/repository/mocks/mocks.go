package mocks

import (
	"context"

	"github.com/rpggio/voicenotes/internal/domain/note"
	"github.com/stretchr/testify/mock"
)

// SlotRepository is a mock for repository.SlotRepository.
type SlotRepository struct {
	mock.Mock
}

func (m *SlotRepository) Get(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

func (m *SlotRepository) Set(ctx context.Context, key, value string) error {
	args := m.Called(ctx, key, value)
	return args.Error(0)
}

func (m *SlotRepository) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *SlotRepository) Keys(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if keys, ok := args.Get(0).([]string); ok {
		return keys, args.Error(1)
	}
	return nil, args.Error(1)
}

// NoteStore is a mock for note.Store.
type NoteStore struct {
	mock.Mock
}

func (m *NoteStore) Load(ctx context.Context) note.LoadResult {
	args := m.Called(ctx)
	return args.Get(0).(note.LoadResult)
}

func (m *NoteStore) Save(ctx context.Context, notes []note.Note) error {
	args := m.Called(ctx, notes)
	return args.Error(0)
}
