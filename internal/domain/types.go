package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// PuzzleSize is the number of distinct letters in every puzzle.
const PuzzleSize = 7

// MinWordLength is the shortest word the game accepts.
const MinWordLength = 4

// NotFound marks a word the definition source knows nothing about
const NotFound = "<definition not found>"

// ErrInvalidLetters is returned by ParsePuzzle for malformed letter sets.
var ErrInvalidLetters = errors.New("puzzle needs 7 distinct letters a-z")

// Word is a candidate or answer word with its derived score
type Word struct {
	Text        string   `json:"text"`
	IsPangram   bool     `json:"is_pangram"`
	Score       int      `json:"score"`
	Definitions []string `json:"definitions,omitempty"`
}

// NewWord lowercases raw and derives its score and pangram status.
func NewWord(raw string) Word {
	text := strings.ToLower(raw)
	return Word{
		Text:      text,
		IsPangram: IsPangram(text),
		Score:     Score(text),
	}
}

// WordsFrom builds a Word for every raw string, keeping order.
func WordsFrom(raws []string) []Word {
	words := make([]Word, len(raws))
	for i, r := range raws {
		words[i] = NewWord(r)
	}
	return words
}

// Texts returns the text of every word.
func Texts(words []Word) []string {
	out := make([]string, len(words))
	for i, w := range words {
		out[i] = w.Text
	}
	return out
}

// SortWords orders words alphabetically in place.
func SortWords(words []Word) {
	sort.Slice(words, func(i, j int) bool { return words[i].Text < words[j].Text })
}

// Defined reports whether the word carries at least one real definition.
func (w Word) Defined() bool {
	for _, d := range w.Definitions {
		if d != NotFound {
			return true
		}
	}
	return false
}

// Puzzle is one day's letter set. Letters[0] is the center letter.
type Puzzle struct {
	Letters string `json:"letters"`
}

// ParsePuzzle validates user supplied letters.
// The first letter becomes the center letter.
func ParsePuzzle(s string) (Puzzle, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if len(s) != PuzzleSize {
		return Puzzle{}, fmt.Errorf("%w: got %q", ErrInvalidLetters, s)
	}
	seen := make(map[rune]bool, PuzzleSize)
	for _, r := range s {
		if r < 'a' || r > 'z' || seen[r] {
			return Puzzle{}, fmt.Errorf("%w: got %q", ErrInvalidLetters, s)
		}
		seen[r] = true
	}
	return Puzzle{Letters: s}, nil
}

// Center returns the mandatory letter, or "" for an empty puzzle.
func (p Puzzle) Center() string {
	if p.Letters == "" {
		return ""
	}
	return p.Letters[:1]
}

// Outer returns the six optional letters.
func (p Puzzle) Outer() string {
	if len(p.Letters) < 2 {
		return ""
	}
	return p.Letters[1:]
}

// Allows reports whether r is one of the puzzle letters.
func (p Puzzle) Allows(r rune) bool {
	return strings.ContainsRune(p.Letters, r)
}

// GameRound is one published puzzle with its official answers
type GameRound struct {
	Date    string `json:"date"`
	Puzzle  Puzzle `json:"puzzle"`
	Answers []Word `json:"answers"`
}
