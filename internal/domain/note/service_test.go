package note_test

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"testing"
	"time"

	"github.com/rpggio/voicenotes/internal/domain/note"
	"github.com/rpggio/voicenotes/internal/repository/mocks"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// memStore keeps the serialized blob the way the slot store would.
type memStore struct {
	blob  []note.Note
	saved int
	fail  error
}

func (m *memStore) Load(context.Context) note.LoadResult {
	if m.blob == nil {
		return note.Empty()
	}
	return note.Loaded(slices.Clone(m.blob))
}

func (m *memStore) Save(_ context.Context, notes []note.Note) error {
	if m.fail != nil {
		return m.fail
	}
	m.saved++
	m.blob = slices.Clone(notes)
	return nil
}

func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
}

func newService(store note.Store) *note.Service {
	clock := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	return note.NewService(store, nil,
		note.WithIDGenerator(sequentialIDs()),
		note.WithClock(func() time.Time {
			clock = clock.Add(time.Minute)
			return clock
		}),
	)
}

func contents(seq []note.Note) []string {
	out := make([]string, 0, len(seq))
	for _, n := range seq {
		out = append(out, n.Content)
	}
	return out
}

func requireConsistent(t *testing.T, svc *note.Service, store note.Store) {
	t.Helper()
	reloaded := store.Load(context.Background()).Notes()
	current := svc.Notes()
	require.Len(t, reloaded, len(current))
	for i := range current {
		require.Equal(t, current[i].ID, reloaded[i].ID)
		require.Equal(t, current[i].Content, reloaded[i].Content)
		require.True(t, current[i].CreatedAt.Equal(reloaded[i].CreatedAt))
	}
}

func TestService_Scenario(t *testing.T) {
	ctx := context.Background()
	store := &memStore{}
	svc := newService(store)

	res := svc.Initialize(ctx)
	require.Equal(t, note.LoadEmpty, res.Status)
	require.Equal(t, 0, svc.Len())

	first, err := svc.Create(ctx, "first note")
	require.NoError(t, err)
	require.Equal(t, []string{"first note"}, contents(svc.Notes()))

	_, err = svc.Create(ctx, "second note")
	require.NoError(t, err)
	require.Equal(t, []string{"second note", "first note"}, contents(svc.Notes()))

	removed, err := svc.Delete(ctx, first.ID)
	require.NoError(t, err)
	require.True(t, removed)
	require.Equal(t, []string{"second note"}, contents(svc.Notes()))

	requireConsistent(t, svc, store)
}

func TestService_CreateRejectsEmptyString(t *testing.T) {
	ctx := context.Background()
	store := &memStore{}
	svc := newService(store)

	n, err := svc.Create(ctx, "")
	require.NoError(t, err)
	require.Nil(t, n)
	require.Equal(t, 0, svc.Len())
	require.Equal(t, 0, store.saved)
}

func TestService_CreateAcceptsWhitespace(t *testing.T) {
	ctx := context.Background()
	svc := newService(&memStore{})

	n, err := svc.Create(ctx, "   ")
	require.NoError(t, err)
	require.NotNil(t, n)
	require.Equal(t, "   ", n.Content)
	require.Equal(t, 1, svc.Len())
}

func TestService_CreateAssignsIDAndTimestamp(t *testing.T) {
	ctx := context.Background()
	svc := note.NewService(&memStore{}, nil)

	before := time.Now().Add(-time.Second)
	a, err := svc.Create(ctx, "a")
	require.NoError(t, err)
	b, err := svc.Create(ctx, "b")
	require.NoError(t, err)

	require.NotEmpty(t, a.ID)
	require.NotEqual(t, a.ID, b.ID)
	require.True(t, a.CreatedAt.After(before))
	require.Equal(t, time.UTC, a.CreatedAt.Location())
	require.Zero(t, a.CreatedAt.Nanosecond()%int(time.Millisecond))
}

func TestService_CreateThenSearchFindsItFirst(t *testing.T) {
	ctx := context.Background()
	svc := newService(&memStore{})
	_, err := svc.Create(ctx, "Buy Milk")
	require.NoError(t, err)
	_, err = svc.Create(ctx, "call mom")
	require.NoError(t, err)

	created, err := svc.Create(ctx, "buy milk again")
	require.NoError(t, err)

	found := slices.Collect(svc.Search("buy milk again"))
	require.NotEmpty(t, found)
	require.Equal(t, created.ID, found[0].ID)
}

func TestService_CreateDuplicateID(t *testing.T) {
	ctx := context.Background()
	store := &memStore{}
	svc := note.NewService(store, nil, note.WithIDGenerator(func() string { return "same" }))

	_, err := svc.Create(ctx, "one")
	require.NoError(t, err)
	_, err = svc.Create(ctx, "two")
	require.ErrorIs(t, err, note.ErrDuplicateID)
	require.Equal(t, 1, svc.Len())
	requireConsistent(t, svc, store)
}

func TestService_DeleteUnknownIsNoop(t *testing.T) {
	ctx := context.Background()
	store := &memStore{}
	svc := newService(store)
	_, err := svc.Create(ctx, "keep me")
	require.NoError(t, err)
	before := svc.Notes()

	removed, err := svc.Delete(ctx, "does-not-exist")
	require.NoError(t, err)
	require.False(t, removed)
	require.Equal(t, before, svc.Notes())
	require.Equal(t, 2, store.saved)
	requireConsistent(t, svc, store)
}

func TestService_Search(t *testing.T) {
	ctx := context.Background()
	svc := newService(&memStore{})
	for _, c := range []string{"Buy Milk", "walk the dog", "milkshake recipe", "MILK tea"} {
		_, err := svc.Create(ctx, c)
		require.NoError(t, err)
	}

	all := slices.Collect(svc.Search(""))
	require.Equal(t, svc.Notes(), all)

	require.Equal(t, []string{"MILK tea", "milkshake recipe", "Buy Milk"}, contents(slices.Collect(svc.Search("milk"))))
	require.Equal(t, []string{"MILK tea", "milkshake recipe", "Buy Milk"}, contents(slices.Collect(svc.Search("MILK"))))
	require.Empty(t, slices.Collect(svc.Search("cat")))
}

func TestService_SearchIsRestartableAndLazy(t *testing.T) {
	ctx := context.Background()
	svc := newService(&memStore{})
	for _, c := range []string{"a1", "b", "a2", "a3"} {
		_, err := svc.Create(ctx, c)
		require.NoError(t, err)
	}

	seq := svc.Search("a")
	require.Len(t, slices.Collect(seq), 3)
	require.Len(t, slices.Collect(seq), 3)

	seen := 0
	for range seq {
		seen++
		if seen == 1 {
			break
		}
	}
	require.Equal(t, 1, seen)
}

func TestService_SearchDoesNotPersist(t *testing.T) {
	ctx := context.Background()
	store := &mocks.NoteStore{}
	store.On("Load", ctx).Return(note.Empty())
	svc := newService(store)
	svc.Initialize(ctx)

	_ = slices.Collect(svc.Search(""))
	_ = slices.Collect(svc.Search("x"))
	store.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestService_InitializeFailsSoft(t *testing.T) {
	ctx := context.Background()
	store := &mocks.NoteStore{}
	store.On("Load", ctx).Return(note.Malformed(errors.New("unexpected token")))

	svc := newService(store)
	res := svc.Initialize(ctx)
	require.Equal(t, note.LoadMalformed, res.Status)
	require.True(t, res.Failed())
	require.Equal(t, 0, svc.Len())
}

func TestService_InitializeLoadsExisting(t *testing.T) {
	ctx := context.Background()
	existing := []note.Note{
		{ID: "b", Content: "newer", CreatedAt: time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)},
		{ID: "a", Content: "older", CreatedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)},
	}
	store := &memStore{blob: existing}
	svc := newService(store)

	res := svc.Initialize(ctx)
	require.Equal(t, note.LoadOK, res.Status)
	require.Equal(t, existing, svc.Notes())

	_, err := svc.Create(ctx, "newest")
	require.NoError(t, err)
	require.Equal(t, []string{"newest", "newer", "older"}, contents(svc.Notes()))
}

func TestService_PersistFailureKeepsMemory(t *testing.T) {
	ctx := context.Background()
	store := &memStore{}
	svc := newService(store)
	_, err := svc.Create(ctx, "saved")
	require.NoError(t, err)

	store.fail = errors.New("quota exceeded")
	n, err := svc.Create(ctx, "unsaved")
	require.ErrorIs(t, err, note.ErrPersist)
	require.NotNil(t, n)
	require.Equal(t, []string{"unsaved", "saved"}, contents(svc.Notes()))

	// The next successful write heals the store.
	store.fail = nil
	_, err = svc.Create(ctx, "healed")
	require.NoError(t, err)
	requireConsistent(t, svc, store)
}

func TestService_RandomSequenceStaysConsistent(t *testing.T) {
	ctx := context.Background()
	store := &memStore{}
	svc := newService(store)

	var ids []string
	for i := 0; i < 50; i++ {
		switch {
		case i%7 == 3 && len(ids) > 0:
			removed, err := svc.Delete(ctx, ids[len(ids)/2])
			require.NoError(t, err)
			require.True(t, removed)
			ids = slices.Delete(ids, len(ids)/2, len(ids)/2+1)
		case i%11 == 5:
			_, err := svc.Delete(ctx, "ghost")
			require.NoError(t, err)
		case i%13 == 0:
			_, err := svc.Create(ctx, "")
			require.NoError(t, err)
		default:
			n, err := svc.Create(ctx, fmt.Sprintf("note %d", i))
			require.NoError(t, err)
			ids = append(ids, n.ID)
		}
		requireConsistent(t, svc, store)
	}
	require.Equal(t, len(ids), svc.Len())
}

func TestService_Get(t *testing.T) {
	ctx := context.Background()
	svc := newService(&memStore{})
	created, err := svc.Create(ctx, "hello")
	require.NoError(t, err)

	got, ok := svc.Get(created.ID)
	require.True(t, ok)
	require.Equal(t, "hello", got.Content)

	_, ok = svc.Get("nope")
	require.False(t, ok)
}
