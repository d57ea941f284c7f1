package show

import (
	"math/rand/v2"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/pbaille/sbsolver/internal/domain"
	"github.com/pbaille/sbsolver/internal/store"
)

func TestWrap(t *testing.T) {
	got := Wrap("one two three four five", 10, "  ", "    ")
	assert.Equal(t, "  one two\n    three\n    four\n    five", got)

	assert.Equal(t, "", Wrap("   ", 10, "  ", "  "))
	assert.Equal(t, "  extraordinarily", Wrap("extraordinarily", 5, "  ", "  "))
}

func TestWords(t *testing.T) {
	words := domain.WordsFrom([]string{"gnat", "tangy", "grantly"})
	got := Words("possible words found", words, 72)

	assert.True(t, strings.HasPrefix(got, "3 possible words found:\n"))
	assert.Contains(t, got, "  gnat 1  tangy 5")
	assert.Contains(t, got, Highlight("  grantly 14"))
}

func TestWords_WrapsLines(t *testing.T) {
	words := domain.WordsFrom([]string{"gnat", "rang", "tang"})
	got := Words("words", words, 16)

	assert.Equal(t, "3 words:\n  gnat 1  rang 1\n  tang 1", got)
}

func TestWithDefinitions(t *testing.T) {
	w := domain.NewWord("tangy")
	w.Definitions = []string{"adj\ttasting sharp", "adj\tpungent", "adj\tzesty"}

	got := WithDefinitions(w, 2, 72)
	assert.Equal(t, "tangy\n  1. adj. tasting sharp 2. adj. pungent", got)

	w.Definitions = []string{"adj\ttasting sharp"}
	assert.Equal(t, "tangy\n  adj. tasting sharp", WithDefinitions(w, 4, 72))

	w.Definitions = nil
	assert.Equal(t, "tangy\n  "+domain.NotFound, WithDefinitions(w, 4, 72))

	p := domain.NewWord("grantly")
	assert.True(t, strings.HasPrefix(WithDefinitions(p, 4, 72), Highlight("grantly")))
}

func TestSummarize(t *testing.T) {
	words := domain.WordsFrom([]string{"gnat", "tangy", "grantly", "gallantry"})
	s := Summarize(words)

	assert.Equal(t, 4, s.Words)
	assert.Equal(t, 1+5+14+16, s.Points)
	assert.Equal(t, 2, s.Pangrams)
	assert.Equal(t, 1, s.Perfect)
	assert.False(t, s.Bingo)
	assert.Equal(t, "2 (1 Perfect)", s.PangramText())

	assert.Equal(t, "1 (Perfect)", Summarize(domain.WordsFrom([]string{"grantly"})).PangramText())
	assert.Equal(t, "1", Summarize(domain.WordsFrom([]string{"gallantry"})).PangramText())
	assert.Equal(t, "0", Summarize(nil).PangramText())
}

func TestSummarize_Bingo(t *testing.T) {
	words := domain.WordsFrom([]string{"able", "bale", "cable", "dale", "eagle", "flag", "gale"})
	assert.True(t, Summarize(words).Bingo)
}

func TestGrid(t *testing.T) {
	words := domain.WordsFrom([]string{"gnat", "gnarly", "tangy", "tarty", "rang"})
	got := Grid(words)
	lines := strings.Split(got, "\n")

	assert.Len(t, lines, 5)
	assert.Equal(t, Highlight("      4  5  6  ∑"), lines[0])
	assert.Equal(t, "  "+Highlight("G")+":  1  -  1 "+Highlight(" 2"), lines[1])
	assert.Equal(t, "  "+Highlight("R")+":  1  -  - "+Highlight(" 1"), lines[2])
	assert.Equal(t, "  "+Highlight("T")+":  -  2  - "+Highlight(" 2"), lines[3])
	assert.Equal(t, Highlight("  ∑:  2  2  1 ")+ital(" 5"), lines[4])

	assert.Equal(t, "", Grid(nil))
}

func TestTwoLetterList(t *testing.T) {
	words := domain.WordsFrom([]string{"gnat", "gnarly", "grant", "tangy", "tarty", "rang"})
	got := TwoLetterList(words)

	assert.Equal(t, "Two letter list:\n  GN-2 GR-1\n  RA-1\n  TA-2", got)
}

func TestHints(t *testing.T) {
	words := domain.WordsFrom([]string{"gnat", "grantly"})
	got := Hints(words, domain.Puzzle{Letters: "algrnty"})

	assert.True(t, strings.HasPrefix(got, "Letters: "+Highlight("A")+" L G R N T Y\n\n"))
	assert.Contains(t, got, "Words: 2, Points: 15, Pangrams: 1 (Perfect)\n")
	assert.Contains(t, got, "Two letter list:")
}

func TestDefinitionHints(t *testing.T) {
	gnat := domain.NewWord("gnat")
	gnat.Definitions = []string{"n\ta small fly", "n\tgnat-like insect"}
	tangy := domain.NewWord("tangy")
	tangy.Definitions = []string{"adj\tlike a tangy thing"}
	zzq := domain.NewWord("zzq")

	got := DefinitionHints([]domain.Word{tangy, zzq, gnat}, 72, rand.New(rand.NewPCG(1, 2)))
	lines := strings.Split(got, "\n")

	assert.Equal(t, []string{
		"GN 4 a small fly",
		"TA 5 No definition available without the word itself.",
		"ZZ 3 No definition available without the word itself.",
	}, lines)
}

func TestStats(t *testing.T) {
	st := &store.Stats{
		CreatedAt:        time.Date(2026, 10, 1, 8, 0, 0, 0, time.Local),
		TotalWords:       10,
		AddedWords:       []string{"tanta", "zzq"},
		EmptyDefinitions: []string{"zzq"},
		DefinedWords:     2,
		TotalDefinitions: 3,
	}
	got := Stats("words.db", st, 72)

	assert.Equal(t, strings.Join([]string{
		"Stats for words.db:",
		"  Creation date: 2026-10-01 08:00:00",
		"  Total words: 10",
		"  Added words: 2",
		"    tanta zzq",
		"  Empty definitions: 1",
		"    zzq",
		"  Defined words: 2",
		"  Total definitions: 3",
	}, "\n"), got)
}

func TestFileStats(t *testing.T) {
	assert.Equal(t, "Stats for word_list.txt:\n  Total words: 10\n  Base words: 8\n  Added words: 2",
		FileStats("word_list.txt", 8, 10))
}

func TestHeaderAndRounds(t *testing.T) {
	r := domain.GameRound{Date: "October 18, 2026", Puzzle: domain.Puzzle{Letters: "algrnty"}}
	assert.Equal(t, "Spelling Bee Solver - October 18, 2026 Letters: Algrnty", Header(r))
	assert.Contains(t, Rounds([]domain.GameRound{r}), "   0  October 18, 2026     ALGRNTY")
	assert.Equal(t, "1 new word added:\n  zzq", Missing([]string{"zzq"}))
	assert.Equal(t, "2 new words added:\n  tanta zzq", Missing([]string{"tanta", "zzq"}))
	assert.Equal(t, "1 official answer(s) not stored, only a-z words are kept:\n  x-ray", Rejected([]string{"x-ray"}))
}

func TestAdditions(t *testing.T) {
	assert.Equal(t, "No words added since the corpus was created.", Additions(nil, nil, 4, 72))

	added := time.Date(2026, 10, 17, 9, 30, 0, 0, time.UTC)
	adds := []store.Addition{{Word: "tanta", AddedAt: &added}, {Word: "zzq"}}
	words := domain.WordsFrom([]string{"tanta", "zzq"})
	words[0].Definitions = []string{"n\tan aunt"}

	got := Additions(adds, words, 4, 72)
	assert.Equal(t, "tanta\n  n. an aunt\n  "+ital("added 2026-10-17")+"\n\nzzq\n  "+domain.NotFound, got)
}
