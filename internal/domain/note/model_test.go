package note

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestNote_MarshalUsesBrowserDateForm(t *testing.T) {
	loc := time.FixedZone("BRT", -3*60*60)
	n := Note{ID: "x", CreatedAt: time.Date(2024, 3, 1, 9, 0, 0, 123_456_789, loc), Content: "oi"}

	data, err := json.Marshal(n)
	require.NoError(t, err)
	require.Equal(t, `{"id":"x","date":"2024-03-01T12:00:00.123Z","content":"oi"}`, string(data))
}

func TestMarshalNotes_WritesTextUnescaped(t *testing.T) {
	at := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	data, err := MarshalNotes([]Note{{ID: "x", CreatedAt: at, Content: "a < b & c > d\u2028fim"}})
	require.NoError(t, err)
	require.Equal(t, `[{"id":"x","date":"2024-03-01T12:00:00.000Z","content":"a < b & c > d`+"\u2028"+`fim"}]`, string(data))

	empty, err := MarshalNotes(nil)
	require.NoError(t, err)
	require.Equal(t, "[]", string(empty))
}

func TestUnescapeLineSeparators_LeavesOtherEscapes(t *testing.T) {
	in := `"\\u2028 \u2029 \n \"q\""`
	require.Equal(t, `"\\u2028 `+"\u2029"+` \n \"q\""`, string(unescapeLineSeparators([]byte(in))))
}

func TestNote_UnmarshalAcceptsRFC3339Variants(t *testing.T) {
	for _, date := range []string{
		"2024-03-01T12:00:00Z",
		"2024-03-01T12:00:00.000Z",
		"2024-03-01T09:00:00-03:00",
	} {
		var n Note
		require.NoError(t, json.Unmarshal([]byte(`{"id":"x","date":"`+date+`","content":"c"}`), &n))
		require.True(t, n.CreatedAt.Equal(time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)), date)
	}
}

func TestNote_UnmarshalRejectsBadDate(t *testing.T) {
	var n Note
	require.Error(t, json.Unmarshal([]byte(`{"id":"x","date":"","content":"c"}`), &n))
}

func TestLoadResult_NotesCollapsesFailures(t *testing.T) {
	require.Empty(t, Malformed(nil).Notes())
	require.Empty(t, Unavailable(nil).Notes())
	require.Empty(t, Empty().Notes())
	require.NotNil(t, Empty().Notes())

	src := []Note{{ID: "a"}}
	res := Loaded(src)
	out := res.Notes()
	out[0].ID = "changed"
	require.Equal(t, "a", res.Notes()[0].ID)
}
