// Package present renders notes for terminal output.
package present

import (
	"fmt"
	"io"
	"iter"
	"math"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/dustin/go-humanize"
	"github.com/rpggio/voicenotes/internal/domain/note"
)

// DefaultPreviewRunes is the preview length used by list output.
const DefaultPreviewRunes = 120

var ptBRMagnitudes = []humanize.RelTimeMagnitude{
	{D: time.Second, Format: "agora", DivBy: time.Second},
	{D: 2 * time.Second, Format: "%s 1 segundo", DivBy: 1},
	{D: time.Minute, Format: "%s %d segundos", DivBy: time.Second},
	{D: 2 * time.Minute, Format: "%s 1 minuto", DivBy: 1},
	{D: time.Hour, Format: "%s %d minutos", DivBy: time.Minute},
	{D: 2 * time.Hour, Format: "%s 1 hora", DivBy: 1},
	{D: humanize.Day, Format: "%s %d horas", DivBy: time.Hour},
	{D: 2 * humanize.Day, Format: "%s 1 dia", DivBy: 1},
	{D: humanize.Week, Format: "%s %d dias", DivBy: humanize.Day},
	{D: 2 * humanize.Week, Format: "%s 1 semana", DivBy: 1},
	{D: humanize.Month, Format: "%s %d semanas", DivBy: humanize.Week},
	{D: 2 * humanize.Month, Format: "%s 1 mês", DivBy: 1},
	{D: humanize.Year, Format: "%s %d meses", DivBy: humanize.Month},
	{D: 2 * humanize.Year, Format: "%s 1 ano", DivBy: 1},
	{D: humanize.LongTime, Format: "%s %d anos", DivBy: humanize.Year},
	{D: math.MaxInt64, Format: "%s muito tempo", DivBy: 1},
}

// RelativeDate describes t relative to now in Portuguese, e.g. "há 2 dias".
func RelativeDate(t, now time.Time) string {
	return humanize.CustomRelTime(t, now, "há", "daqui a", ptBRMagnitudes)
}

// Card is the display form of a single note.
type Card struct {
	ID      string `json:"id"`
	When    string `json:"when"`
	Date    string `json:"date"`
	Preview string `json:"preview"`
}

// NewCard builds the card for n as seen at now.
func NewCard(n note.Note, now time.Time, previewRunes int) Card {
	return Card{
		ID:      n.ID,
		When:    RelativeDate(n.CreatedAt, now),
		Date:    n.CreatedAt.UTC().Format(note.DateLayout),
		Preview: Preview(n.Content, previewRunes),
	}
}

// Cards converts a note sequence into cards, keeping its order.
func Cards(notes iter.Seq[note.Note], now time.Time, previewRunes int) []Card {
	cards := []Card{}
	for n := range notes {
		cards = append(cards, NewCard(n, now, previewRunes))
	}
	return cards
}

// Preview collapses whitespace and cuts content to at most max runes,
// marking the cut with an ellipsis. A non-positive max disables the cut.
func Preview(content string, max int) string {
	flat := strings.Join(strings.Fields(content), " ")
	if max <= 0 || utf8.RuneCountInString(flat) <= max {
		return flat
	}
	runes := []rune(flat)
	return strings.TrimRight(string(runes[:max]), " ") + "…"
}

// WriteCards prints cards one block per note.
func WriteCards(w io.Writer, cards []Card) error {
	if len(cards) == 0 {
		_, err := fmt.Fprintln(w, "Nenhuma nota encontrada.")
		return err
	}
	for i, c := range cards {
		if i > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintf(w, "%s  [%s]\n  %s\n", c.When, c.ID, c.Preview); err != nil {
			return err
		}
	}
	return nil
}
