package dictation

import "strings"

// DefaultLocale is the only language the recognizer is asked for.
const DefaultLocale = "pt-BR"

// Alternative is one candidate transcription of a segment.
type Alternative struct {
	Transcript string  `json:"transcript"`
	Confidence float64 `json:"confidence,omitempty"`
}

// Segment is one recognition result. Interim segments may be revised by
// later events until Final is set.
type Segment struct {
	Alternatives []Alternative `json:"alternatives"`
	Final        bool          `json:"final,omitempty"`
}

// Event carries every segment recognized so far in the session.
type Event struct {
	Results []Segment `json:"results"`
}

// Settings configures a recognition run.
type Settings struct {
	Locale          string
	Continuous      bool
	InterimResults  bool
	MaxAlternatives int
}

// DefaultSettings returns continuous pt-BR recognition with interim results
// and a single alternative per segment.
func DefaultSettings() Settings {
	return Settings{
		Locale:          DefaultLocale,
		Continuous:      true,
		InterimResults:  true,
		MaxAlternatives: 1,
	}
}

// Transcript concatenates the best alternative of every segment in order.
// Segments without alternatives contribute nothing.
func Transcript(ev Event) string {
	var b strings.Builder
	for _, seg := range ev.Results {
		if len(seg.Alternatives) == 0 {
			continue
		}
		b.WriteString(seg.Alternatives[0].Transcript)
	}
	return b.String()
}
