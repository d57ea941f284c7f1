package show

import (
	"fmt"
	"strings"

	"github.com/pbaille/sbsolver/internal/domain"
	"github.com/pbaille/sbsolver/internal/store"
)

// Stats renders the corpus and definition cache report.
func Stats(path string, st *store.Stats, width int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Stats for %s:\n", path)
	fmt.Fprintf(&b, "  Creation date: %s\n", st.CreatedAt.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&b, "  Total words: %d\n", st.TotalWords)
	fmt.Fprintf(&b, "  Added words: %d\n", len(st.AddedWords))
	if list := Wrap(strings.Join(st.AddedWords, " "), width, "    ", "    "); list != "" {
		b.WriteString(list + "\n")
	}
	fmt.Fprintf(&b, "  Empty definitions: %d\n", len(st.EmptyDefinitions))
	if list := Wrap(strings.Join(st.EmptyDefinitions, " "), width, "    ", "    "); list != "" {
		b.WriteString(list + "\n")
	}
	fmt.Fprintf(&b, "  Defined words: %d\n", st.DefinedWords)
	fmt.Fprintf(&b, "  Total definitions: %d", st.TotalDefinitions)
	return b.String()
}

// FileStats renders the flat-file corpus report: words from the base list
// and words discovered since.
func FileStats(path string, base, total int) string {
	return fmt.Sprintf("Stats for %s:\n  Total words: %d\n  Base words: %d\n  Added words: %d",
		path, total, base, total-base)
}

// Additions renders the words added after bootstrap, each with its
// definitions and the day it was added. words[i] is adds[i] defined.
func Additions(adds []store.Addition, words []domain.Word, maxEntries, width int) string {
	if len(adds) == 0 {
		return "No words added since the corpus was created."
	}
	out := make([]string, len(words))
	for i, w := range words {
		entry := WithDefinitions(w, maxEntries, width)
		if i < len(adds) && adds[i].AddedAt != nil {
			entry += "\n  " + ital("added "+adds[i].AddedAt.Format("2006-01-02"))
		}
		out[i] = entry
	}
	return strings.Join(out, "\n\n")
}
