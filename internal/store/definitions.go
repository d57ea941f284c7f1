package store

import (
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/pbaille/sbsolver/internal/domain"
)

// LoadDefinitions returns the cached definitions of every known word in
// words. Words without cached definitions are absent from the map.
func (s *Store) LoadDefinitions(words []string) (map[string][]string, error) {
	defs := make(map[string][]string)
	if len(words) == 0 {
		return defs, nil
	}

	rows, err := sq.Select("w.word", "d.definition").
		From("definitions d").
		Join("words w ON w.word_id = d.word_id").
		Where(sq.Eq{"w.word": words}).
		OrderBy("d.rowid").
		RunWith(s.db).
		Query()
	if err != nil {
		return nil, fmt.Errorf("load definitions: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var word, def string
		if err := rows.Scan(&word, &def); err != nil {
			return nil, fmt.Errorf("scan definition: %w", err)
		}
		defs[word] = append(defs[word], def)
	}

	return defs, rows.Err()
}

// SaveDefinitions attaches definitions to words already in the corpus.
// Unknown words are skipped; duplicates are ignored.
func (s *Store) SaveDefinitions(defs map[string][]string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin save definitions: %w", err)
	}
	defer tx.Rollback()

	for word, list := range defs {
		for _, d := range list {
			_, err := tx.Exec(`
				INSERT OR IGNORE INTO definitions (word_id, definition)
				SELECT word_id, ? FROM words WHERE word = ?
			`, d, word)
			if err != nil {
				return fmt.Errorf("insert definition: %w", err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit definitions: %w", err)
	}
	return nil
}

// ReplaceDefinitions swaps the cached definitions of one word
func (s *Store) ReplaceDefinitions(word string, defs []string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin replace definitions: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		DELETE FROM definitions
		WHERE word_id = (SELECT word_id FROM words WHERE word = ?)
	`, word)
	if err != nil {
		return fmt.Errorf("delete definitions: %w", err)
	}

	for _, d := range defs {
		_, err := tx.Exec(`
			INSERT OR IGNORE INTO definitions (word_id, definition)
			SELECT word_id, ? FROM words WHERE word = ?
		`, d, word)
		if err != nil {
			return fmt.Errorf("insert definition: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit definitions: %w", err)
	}
	return nil
}

// DefinedWords lists every word with at least one cached definition
func (s *Store) DefinedWords() ([]string, error) {
	return s.queryWords(`
		SELECT DISTINCT w.word
		FROM words w
		JOIN definitions d ON d.word_id = w.word_id
		ORDER BY w.word
	`)
}

// UndefinedWords lists words whose only cached definition is the not-found marker
func (s *Store) UndefinedWords() ([]string, error) {
	return s.queryWords(`
		SELECT w.word
		FROM words w
		JOIN definitions d ON d.word_id = w.word_id
		WHERE d.definition = ?
		ORDER BY w.word
	`, domain.NotFound)
}

func (s *Store) queryWords(query string, args ...any) ([]string, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("query words: %w", err)
	}
	defer rows.Close()

	var words []string
	for rows.Next() {
		var w string
		if err := rows.Scan(&w); err != nil {
			return nil, fmt.Errorf("scan word: %w", err)
		}
		words = append(words, w)
	}

	return words, rows.Err()
}
