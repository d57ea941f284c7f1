// Package corpus defines the set of known legal words and a flat-file
// backend for it. The SQLite backend lives in package store.
package corpus

import (
	"context"
	"errors"
	"sort"
	"strings"
)

// ErrNotBootstrapped is returned by queries against a corpus that has never
// been populated with its base word list.
var ErrNotBootstrapped = errors.New("corpus not bootstrapped")

// Corpus is the persistent collection of known legal words.
type Corpus interface {
	// Bootstrap loads the base word list from src if nothing is persisted yet.
	Bootstrap(ctx context.Context, src WordListSource) error
	Contains(word string) (bool, error)
	// AllWords returns the sorted words at least minLength long that contain
	// mustContain. An empty mustContain matches every word.
	AllWords(minLength int, mustContain string) ([]string, error)
	// AddWords merges words into the corpus and returns how many were new.
	AddWords(words []string) (int, error)
}

// WordListSource supplies the base word list used to bootstrap a corpus.
type WordListSource interface {
	FetchWordList(ctx context.Context) ([]string, error)
}

// WordListFunc adapts a function to WordListSource.
type WordListFunc func(ctx context.Context) ([]string, error)

// FetchWordList calls f(ctx).
func (f WordListFunc) FetchWordList(ctx context.Context) ([]string, error) {
	return f(ctx)
}

// Normalize lowercases and trims words, dropping empty and non-alphabetic
// tokens and duplicates. The result is sorted.
func Normalize(words []string) []string {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		w = strings.ToLower(strings.TrimSpace(w))
		if w == "" || !IsAlpha(w) {
			continue
		}
		set[w] = struct{}{}
	}
	return sortedKeys(set)
}

// IsAlpha reports whether s is all lowercase ASCII letters.
func IsAlpha(s string) bool {
	for _, r := range s {
		if r < 'a' || r > 'z' {
			return false
		}
	}
	return true
}

// Match reports whether word passes the AllWords filter.
func Match(word string, minLength int, mustContain string) bool {
	return len(word) >= minLength && strings.Contains(word, mustContain)
}

func sortedKeys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for w := range set {
		out = append(out, w)
	}
	sort.Strings(out)
	return out
}
