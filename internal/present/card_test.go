package present

import (
	"bytes"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/rpggio/voicenotes/internal/domain/note"
	"github.com/stretchr/testify/require"
)

func TestRelativeDate(t *testing.T) {
	now := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
	cases := []struct {
		then time.Time
		want string
	}{
		{now, "agora"},
		{now.Add(-90 * time.Second), "há 1 minuto"},
		{now.Add(-5 * time.Minute), "há 5 minutos"},
		{now.Add(-48 * time.Hour), "há 2 dias"},
		{now.Add(-10 * 24 * time.Hour), "há 1 semana"},
		{now.Add(3 * time.Hour), "daqui a 3 horas"},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, RelativeDate(tc.then, now), tc.then.String())
	}
}

func TestPreview(t *testing.T) {
	require.Equal(t, "one two three", Preview("one\n  two\tthree ", 0))
	require.Equal(t, "short", Preview("short", 10))
	require.Equal(t, "abc…", Preview("abc def", 4))
	require.Equal(t, "ação…", Preview("ação rápida", 4))
	require.Equal(t, "", Preview("   ", 5))
}

func TestCards_KeepOrder(t *testing.T) {
	now := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
	notes := []note.Note{
		{ID: "b", Content: "newer", CreatedAt: now.Add(-time.Hour * 3)},
		{ID: "a", Content: "older", CreatedAt: now.Add(-48 * time.Hour)},
	}

	cards := Cards(slices.Values(notes), now, DefaultPreviewRunes)
	require.Len(t, cards, 2)
	require.Equal(t, "b", cards[0].ID)
	require.Equal(t, "há 3 horas", cards[0].When)
	require.Equal(t, "2024-03-08T12:00:00.000Z", cards[1].Date)
	require.NotNil(t, Cards(slices.Values([]note.Note(nil)), now, 0))
}

func TestWriteCards(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCards(&buf, nil))
	require.Equal(t, "Nenhuma nota encontrada.\n", buf.String())

	buf.Reset()
	require.NoError(t, WriteCards(&buf, []Card{
		{ID: "1", When: "agora", Preview: "primeira"},
		{ID: "2", When: "há 2 dias", Preview: "segunda"},
	}))
	out := buf.String()
	require.True(t, strings.HasPrefix(out, "agora  [1]\n  primeira\n\n"))
	require.Contains(t, out, "há 2 dias  [2]\n  segunda\n")
}
