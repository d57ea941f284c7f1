package store

import (
	"database/sql"
	"fmt"
	"time"
)

// Stats summarises the corpus and the definitions cache
type Stats struct {
	CreatedAt        time.Time `json:"created_at"`
	TotalWords       int       `json:"total_words"`
	InitialWords     int       `json:"initial_words"`
	AddedWords       []string  `json:"added_words"`
	EmptyDefinitions []string  `json:"empty_definitions"`
	DefinedWords     int       `json:"defined_words"`
	TotalDefinitions int       `json:"total_definitions"`
}

// Addition is a word discovered after the base list was loaded
type Addition struct {
	Word    string     `json:"word"`
	BatchID string     `json:"batch_id,omitempty"`
	AddedAt *time.Time `json:"added_at,omitempty"`
}

// Stats reports corpus size, words added since bootstrap and definition coverage.
func (s *Store) Stats() (*Stats, error) {
	if err := s.requireBootstrap(); err != nil {
		return nil, err
	}

	created, err := s.metadata(keyCreationDate)
	if err != nil {
		return nil, err
	}
	initial, err := s.metadata(keyInitialCount)
	if err != nil {
		return nil, err
	}

	st := &Stats{
		CreatedAt:    time.Unix(created, 0),
		InitialWords: int(initial),
	}

	err = s.db.QueryRow(`
		SELECT
			(SELECT COUNT(*) FROM words),
			(SELECT COUNT(DISTINCT word_id) FROM definitions),
			(SELECT COUNT(*) FROM definitions)
	`).Scan(&st.TotalWords, &st.DefinedWords, &st.TotalDefinitions)
	if err != nil {
		return nil, fmt.Errorf("count words: %w", err)
	}

	additions, err := s.NewWords()
	if err != nil {
		return nil, err
	}
	st.AddedWords = make([]string, len(additions))
	for i, a := range additions {
		st.AddedWords[i] = a.Word
	}

	st.EmptyDefinitions, err = s.UndefinedWords()
	if err != nil {
		return nil, err
	}

	return st, nil
}

// NewWords returns words added after bootstrap in insertion order
func (s *Store) NewWords() ([]Addition, error) {
	if err := s.requireBootstrap(); err != nil {
		return nil, err
	}
	initial, err := s.metadata(keyInitialCount)
	if err != nil {
		return nil, err
	}

	rows, err := s.db.Query(`
		SELECT w.word, a.batch_id, a.added_at
		FROM words w
		LEFT JOIN additions a ON a.word_id = w.word_id
		WHERE w.word_id > ?
		ORDER BY w.word_id
	`, initial)
	if err != nil {
		return nil, fmt.Errorf("list new words: %w", err)
	}
	defer rows.Close()

	var out []Addition
	for rows.Next() {
		var (
			a       Addition
			batch   sql.NullString
			addedAt sql.NullTime
		)
		if err := rows.Scan(&a.Word, &batch, &addedAt); err != nil {
			return nil, fmt.Errorf("scan new word: %w", err)
		}
		a.BatchID = batch.String
		if addedAt.Valid {
			t := addedAt.Time
			a.AddedAt = &t
		}
		out = append(out, a)
	}

	return out, rows.Err()
}
