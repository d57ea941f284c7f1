// Package solver finds the corpus words that fit a puzzle and feeds
// official answers the corpus is missing back into it.
package solver

import (
	"errors"
	"fmt"
	"sort"

	"github.com/rs/zerolog/log"

	"github.com/pbaille/sbsolver/internal/corpus"
	"github.com/pbaille/sbsolver/internal/domain"
)

// ErrRoundOutOfRange is returned when a round index has no matching round.
var ErrRoundOutOfRange = errors.New("round out of range")

// SelectRound returns rounds[n]. Index 0 is today's round.
func SelectRound(rounds []domain.GameRound, n int) (domain.GameRound, error) {
	if n < 0 || n >= len(rounds) {
		return domain.GameRound{}, fmt.Errorf("round %d of %d: %w", n, len(rounds), ErrRoundOutOfRange)
	}
	return rounds[n], nil
}

// FindWords returns the candidates that are valid for p: at least
// MinWordLength letters, containing the center letter and using no letter
// outside the puzzle. Output is sorted and free of duplicates.
func FindWords(p domain.Puzzle, candidates []string) []domain.Word {
	center := p.Center()
	seen := make(map[string]struct{})
	found := []domain.Word{}

	for _, c := range candidates {
		if !valid(p, center, c) {
			continue
		}
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		found = append(found, domain.NewWord(c))
	}

	domain.SortWords(found)
	return found
}

func valid(p domain.Puzzle, center, word string) bool {
	if len(word) < domain.MinWordLength || center == "" {
		return false
	}
	hasCenter := false
	for _, r := range word {
		if !p.Allows(r) {
			return false
		}
		if string(r) == center {
			hasCenter = true
		}
	}
	return hasCenter
}

// Solve queries c for candidates holding the center letter and filters them.
func Solve(c corpus.Corpus, p domain.Puzzle) ([]domain.Word, error) {
	candidates, err := c.AllWords(domain.MinWordLength, p.Center())
	if err != nil {
		return nil, fmt.Errorf("query corpus: %w", err)
	}
	return FindWords(p, candidates), nil
}

// Reconcile returns the official answers absent from found, sorted.
func Reconcile(found, official []domain.Word) []string {
	have := make(map[string]struct{}, len(found))
	for _, f := range found {
		have[f.Text] = struct{}{}
	}

	missing := make(map[string]struct{})
	for _, a := range official {
		if _, ok := have[a.Text]; !ok {
			missing[a.Text] = struct{}{}
		}
	}

	out := make([]string, 0, len(missing))
	for w := range missing {
		out = append(out, w)
	}
	sort.Strings(out)
	return out
}

// Maintain adds the official answers the corpus failed to produce. It
// returns the words written and the answers the corpus cannot store because
// they are not plain a-z words. Store failures are returned, never dropped.
func Maintain(c corpus.Corpus, found, official []domain.Word) (added, rejected []string, err error) {
	for _, w := range Reconcile(found, official) {
		if w == "" || !corpus.IsAlpha(w) {
			rejected = append(rejected, w)
			continue
		}
		added = append(added, w)
	}
	if len(rejected) > 0 {
		log.Warn().Strs("words", rejected).Msg("official answers the corpus cannot store")
	}
	if len(added) == 0 {
		return nil, rejected, nil
	}

	log.Info().Strs("words", added).Msg("official answers missing from corpus")
	n, err := c.AddWords(added)
	if err != nil {
		return nil, rejected, fmt.Errorf("add missing words: %w", err)
	}
	if n < len(added) {
		log.Debug().Int("count", len(added)-n).Msg("missing words already stored")
	}
	return added, rejected, nil
}
