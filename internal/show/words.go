package show

import (
	"fmt"
	"strings"

	"github.com/pbaille/sbsolver/internal/domain"
)

// Words lists words with their scores under a count header, wrapping at
// width. Pangrams are highlighted.
func Words(desc string, words []domain.Word, width int) string {
	if width <= 0 {
		width = DefaultWidth
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%d %s:\n", len(words), desc)

	lineLen := 0
	for _, w := range words {
		scored := fmt.Sprintf("  %s %d", w.Text, w.Score)
		if lineLen+len(scored) > width {
			b.WriteByte('\n')
			lineLen = 0
		}
		if w.IsPangram {
			b.WriteString(Highlight(scored))
		} else {
			b.WriteString(scored)
		}
		lineLen += len(scored)
	}
	return b.String()
}

// WithDefinitions renders a word followed by up to maxEntries of its
// definitions, numbered when there is more than one. Tabs inside a
// definition separate its part of speech from its text.
func WithDefinitions(w domain.Word, maxEntries, width int) string {
	defs := w.Definitions
	if maxEntries > 0 && len(defs) > maxEntries {
		defs = defs[:maxEntries]
	}

	entries := make([]string, 0, len(defs))
	for i, d := range defs {
		d = strings.ReplaceAll(d, "\t", ". ")
		if len(defs) > 1 {
			d = fmt.Sprintf("%d. %s", i+1, d)
		}
		entries = append(entries, d)
	}
	text := strings.Join(entries, " ")
	if text == "" {
		text = domain.NotFound
	}

	head := w.Text
	if w.IsPangram {
		head = Highlight(head)
	}
	return head + "\n" + Wrap(text, width, "  ", "  ")
}

// Definitions renders every word with its definitions, blank line separated.
func Definitions(words []domain.Word, maxEntries, width int) string {
	out := make([]string, len(words))
	for i, w := range words {
		out[i] = WithDefinitions(w, maxEntries, width)
	}
	return strings.Join(out, "\n\n")
}

// Header is the title line of a solved round.
func Header(r domain.GameRound) string {
	return fmt.Sprintf("Spelling Bee Solver - %s Letters: %s", r.Date, title(r.Puzzle.Letters))
}

// Rounds lists the rounds available for --past.
func Rounds(rounds []domain.GameRound) string {
	var b strings.Builder
	b.WriteString("Available puzzles:\n")
	for i, r := range rounds {
		fmt.Fprintf(&b, "  %2d  %-20s %s\n", i, r.Date, upper(r.Puzzle.Letters))
	}
	return strings.TrimRight(b.String(), "\n")
}

// Missing reports words added to the corpus after reconciliation.
func Missing(words []string) string {
	plural := ""
	if len(words) > 1 {
		plural = "s"
	}
	return fmt.Sprintf("%d new word%s added:\n  %s", len(words), plural, strings.Join(words, " "))
}

// Rejected reports official answers the corpus cannot hold.
func Rejected(words []string) string {
	return fmt.Sprintf("%d official answer(s) not stored, only a-z words are kept:\n  %s", len(words), strings.Join(words, " "))
}
