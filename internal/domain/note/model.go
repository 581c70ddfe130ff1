package note

import (
	"bytes"
	"encoding/json"
	"time"
)

// DateLayout matches the ISO-8601 form produced by JavaScript's
// Date.prototype.toISOString, which is what the storage slot has always held.
const DateLayout = "2006-01-02T15:04:05.000Z07:00"

// Note is a single user-authored text entry.
type Note struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"date"`
	Content   string    `json:"content"`
}

type wireNote struct {
	ID      string `json:"id"`
	Date    string `json:"date"`
	Content string `json:"content"`
}

// MarshalJSON writes the date with millisecond precision in UTC. Text is
// written the way JSON.stringify writes it, without HTML escapes.
func (n Note) MarshalJSON() ([]byte, error) {
	return marshalPlain(wireNote{
		ID:      n.ID,
		Date:    n.CreatedAt.UTC().Format(DateLayout),
		Content: n.Content,
	})
}

// UnmarshalJSON accepts any RFC 3339 date, with or without fractional seconds.
func (n *Note) UnmarshalJSON(data []byte) error {
	var w wireNote
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	created, err := time.Parse(time.RFC3339Nano, w.Date)
	if err != nil {
		return err
	}
	n.ID = w.ID
	n.CreatedAt = created
	n.Content = w.Content
	return nil
}

// MarshalNotes encodes a collection in the storage slot format. A nil slice
// encodes as an empty array.
func MarshalNotes(notes []Note) ([]byte, error) {
	if notes == nil {
		notes = []Note{}
	}
	return marshalPlain(notes)
}

func marshalPlain(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return unescapeLineSeparators(bytes.TrimSuffix(buf.Bytes(), []byte("\n"))), nil
}

// unescapeLineSeparators turns the \u2028 and \u2029 escapes that
// encoding/json always emits back into raw characters. Other escape
// sequences are copied as they are.
func unescapeLineSeparators(data []byte) []byte {
	if !bytes.Contains(data, []byte(`\u202`)) {
		return data
	}
	out := make([]byte, 0, len(data))
	for i := 0; i < len(data); i++ {
		c := data[i]
		if c != '\\' || i+1 >= len(data) {
			out = append(out, c)
			continue
		}
		if i+5 < len(data) && string(data[i+1:i+5]) == "u202" && (data[i+5] == '8' || data[i+5] == '9') {
			if data[i+5] == '8' {
				out = append(out, "\u2028"...)
			} else {
				out = append(out, "\u2029"...)
			}
			i += 5
			continue
		}
		out = append(out, c, data[i+1])
		i++
	}
	return out
}
