package show

import (
	"fmt"
	"math/rand/v2"
	"sort"
	"strings"

	"github.com/pbaille/sbsolver/internal/domain"
)

// Summary holds the headline statistics of a word set
type Summary struct {
	Words    int  `json:"words"`
	Points   int  `json:"points"`
	Pangrams int  `json:"pangrams"`
	Perfect  int  `json:"perfect_pangrams"`
	Bingo    bool `json:"bingo"`
}

// Summarize counts words, points and pangrams. A perfect pangram is seven
// letters long; Bingo means every puzzle letter starts some word.
func Summarize(words []domain.Word) Summary {
	s := Summary{Words: len(words), Points: domain.TotalScore(words)}
	first := make(map[byte]struct{})
	for _, w := range words {
		if w.IsPangram {
			s.Pangrams++
			if len(w.Text) == domain.PuzzleSize {
				s.Perfect++
			}
		}
		if w.Text != "" {
			first[w.Text[0]] = struct{}{}
		}
	}
	s.Bingo = len(first) == domain.PuzzleSize
	return s
}

// PangramText renders the pangram count with its perfect annotation.
func (s Summary) PangramText() string {
	if s.Perfect == 0 {
		return fmt.Sprint(s.Pangrams)
	}
	if s.Pangrams > 1 {
		return fmt.Sprintf("%d (%d Perfect)", s.Pangrams, s.Perfect)
	}
	return fmt.Sprintf("%d (Perfect)", s.Pangrams)
}

// Hints renders the letters, summary line, grid and two letter list.
func Hints(words []domain.Word, p domain.Puzzle) string {
	s := Summarize(words)
	parts := []string{Highlight(upper(p.Center()))}
	for _, r := range upper(p.Outer()) {
		parts = append(parts, string(r))
	}

	bingo := ""
	if s.Bingo {
		bingo = ", Bingo"
	}

	out := []string{
		"Letters: " + strings.Join(parts, " "),
		fmt.Sprintf("Words: %d, Points: %d, Pangrams: %s%s", s.Words, s.Points, s.PangramText(), bingo),
	}
	if g := Grid(words); g != "" {
		out = append(out, g)
	}
	out = append(out, TwoLetterList(words))
	return strings.Join(out, "\n\n")
}

// Grid counts words by first letter and length.
//
//	     4  5  6  ∑
//	A:  1  -  1  2
//	G:  1  2  -  3
//	∑:  2  2  1  5
func Grid(words []domain.Word) string {
	if len(words) == 0 {
		return ""
	}

	byLength := make(map[int]int)
	byLetter := make(map[byte]map[int]int)
	for _, w := range words {
		n := len(w.Text)
		byLength[n]++
		c := w.Text[0]
		if byLetter[c] == nil {
			byLetter[c] = make(map[int]int)
		}
		byLetter[c][n]++
	}

	lengths := make([]int, 0, len(byLength))
	for n := range byLength {
		lengths = append(lengths, n)
	}
	sort.Ints(lengths)
	letters := make([]byte, 0, len(byLetter))
	for c := range byLetter {
		letters = append(letters, c)
	}
	sort.Slice(letters, func(i, j int) bool { return letters[i] < letters[j] })

	cells := func(get func(n int) string) string {
		out := make([]string, len(lengths))
		for i, n := range lengths {
			out[i] = fmt.Sprintf("%2s", get(n))
		}
		return strings.Join(out, " ")
	}

	rows := []string{Highlight("     " + cells(func(n int) string { return fmt.Sprint(n) }) + "  ∑")}
	for _, c := range letters {
		counts := byLetter[c]
		total := 0
		row := cells(func(n int) string {
			if counts[n] == 0 {
				return "-"
			}
			total += counts[n]
			return fmt.Sprint(counts[n])
		})
		rows = append(rows, fmt.Sprintf("  %s: %s %s", Highlight(upper(string(c))), row, Highlight(fmt.Sprintf("%2d", total))))
	}
	footer := cells(func(n int) string { return fmt.Sprint(byLength[n]) })
	rows = append(rows, Highlight(fmt.Sprintf("  ∑: %s ", footer))+ital(fmt.Sprintf("%2d", len(words))))

	return strings.Join(rows, "\n")
}

// TwoLetterList counts words by their first two letters, one line per first letter.
func TwoLetterList(words []domain.Word) string {
	counts := make(map[string]int)
	for _, w := range words {
		prefix := w.Text
		if len(prefix) > 2 {
			prefix = prefix[:2]
		}
		counts[upper(prefix)]++
	}

	pairs := make([]string, 0, len(counts))
	for p := range counts {
		pairs = append(pairs, p)
	}
	sort.Strings(pairs)

	lines := []string{"Two letter list:"}
	var group []string
	for i, p := range pairs {
		group = append(group, fmt.Sprintf("%s-%d", p, counts[p]))
		if i == len(pairs)-1 || pairs[i+1][0] != p[0] {
			lines = append(lines, "  "+strings.Join(group, " "))
			group = nil
		}
	}
	return strings.Join(lines, "\n")
}

// DefinitionHints gives one line per word: its first two letters, its
// length and a random definition that does not give the word away.
func DefinitionHints(words []domain.Word, width int, rng *rand.Rand) string {
	sorted := append([]domain.Word(nil), words...)
	domain.SortWords(sorted)

	out := make([]string, 0, len(sorted))
	for _, w := range sorted {
		var usable []string
		if w.Defined() {
			for _, d := range w.Definitions {
				if d != domain.NotFound && !strings.Contains(d, w.Text) {
					usable = append(usable, d)
				}
			}
		}

		hint := "No definition available without the word itself."
		if len(usable) > 0 {
			d := usable[rng.IntN(len(usable))]
			if _, text, ok := strings.Cut(d, "\t"); ok {
				d = text
			}
			hint = d
		}

		prefix := w.Text
		if len(prefix) > 2 {
			prefix = prefix[:2]
		}
		entry := fmt.Sprintf("%s%2d %s", upper(prefix), len(w.Text), hint)
		out = append(out, Wrap(entry, width, "", strings.Repeat(" ", 5)))
	}
	return strings.Join(out, "\n")
}
