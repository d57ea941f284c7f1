package store

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog/log"

	"github.com/pbaille/sbsolver/internal/corpus"
)

//go:embed schema.sql
var schema string

const (
	keyCreationDate = "creation_date"
	keyInitialCount = "initial_words_count"
)

var _ corpus.Corpus = (*Store)(nil)

// Store handles database operations
type Store struct {
	db *sql.DB
}

// New creates a new Store with the given database path
func New(dbPath string) (*Store, error) {
	sep := "?"
	if strings.Contains(dbPath, "?") {
		sep = "&"
	}
	db, err := sql.Open("sqlite3", dbPath+sep+"_busy_timeout=5000&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// Initialize schema
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database connection
func (s *Store) Close() error {
	return s.db.Close()
}

// Bootstrap fills the words table from src the first time it runs.
// The base insert and its metadata are committed together.
func (s *Store) Bootstrap(ctx context.Context, src corpus.WordListSource) error {
	ok, err := s.bootstrapped()
	if err != nil {
		return err
	}
	if ok {
		return nil
	}

	log.Info().Msg("fetch word list")
	raw, err := src.FetchWordList(ctx)
	if err != nil {
		return fmt.Errorf("fetch word list: %w", err)
	}
	words := corpus.Normalize(raw)
	if len(words) == 0 {
		return errors.New("fetch word list: no words")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin bootstrap: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare("INSERT OR IGNORE INTO words (word) VALUES (?)")
	if err != nil {
		return fmt.Errorf("prepare insert word: %w", err)
	}
	defer stmt.Close()

	for _, w := range words {
		if _, err := stmt.Exec(w); err != nil {
			return fmt.Errorf("insert word: %w", err)
		}
	}

	var maxID int64
	if err := tx.QueryRow("SELECT COALESCE(MAX(word_id), 0) FROM words").Scan(&maxID); err != nil {
		return fmt.Errorf("max word id: %w", err)
	}

	_, err = tx.Exec(
		"INSERT OR REPLACE INTO metadata (key, value) VALUES (?, ?), (?, ?)",
		keyCreationDate, time.Now().Unix(), keyInitialCount, maxID,
	)
	if err != nil {
		return fmt.Errorf("insert metadata: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit bootstrap: %w", err)
	}

	log.Info().Int("count", len(words)).Msg("added words to database")
	return nil
}

func (s *Store) bootstrapped() (bool, error) {
	_, err := s.metadata(keyInitialCount)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (s *Store) metadata(key string) (int64, error) {
	var v int64
	err := s.db.QueryRow("SELECT value FROM metadata WHERE key = ?", key).Scan(&v)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("get metadata %s: %w", key, err)
	}
	return v, err
}

func (s *Store) requireBootstrap() error {
	ok, err := s.bootstrapped()
	if err != nil {
		return err
	}
	if !ok {
		return corpus.ErrNotBootstrapped
	}
	return nil
}

// Contains reports whether word is a known legal word
func (s *Store) Contains(word string) (bool, error) {
	if err := s.requireBootstrap(); err != nil {
		return false, err
	}
	var n int
	err := s.db.QueryRow(
		"SELECT COUNT(1) FROM words WHERE word = ?",
		strings.ToLower(word),
	).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("find word: %w", err)
	}
	return n > 0, nil
}

// AllWords returns words at least minLength long containing mustContain
func (s *Store) AllWords(minLength int, mustContain string) ([]string, error) {
	if err := s.requireBootstrap(); err != nil {
		return nil, err
	}

	q := sq.Select("word").
		From("words").
		Where(sq.Expr("length(word) >= ?", minLength)).
		OrderBy("word")
	if mustContain != "" {
		q = q.Where(sq.Expr("instr(word, ?) > 0", mustContain))
	}

	rows, err := q.RunWith(s.db).Query()
	if err != nil {
		return nil, fmt.Errorf("list words: %w", err)
	}
	defer rows.Close()

	words := []string{}
	for rows.Next() {
		var w string
		if err := rows.Scan(&w); err != nil {
			return nil, fmt.Errorf("scan word: %w", err)
		}
		words = append(words, w)
	}

	return words, rows.Err()
}

// AddWords inserts unseen words as one batch and logs the addition.
func (s *Store) AddWords(words []string) (int, error) {
	if err := s.requireBootstrap(); err != nil {
		return 0, err
	}
	words = corpus.Normalize(words)
	if len(words) == 0 {
		return 0, nil
	}

	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("begin add words: %w", err)
	}
	defer tx.Rollback()

	batch := uuid.New().String()
	now := time.Now()
	var added []string

	for _, w := range words {
		res, err := tx.Exec("INSERT OR IGNORE INTO words (word) VALUES (?)", w)
		if err != nil {
			return 0, fmt.Errorf("insert word: %w", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return 0, fmt.Errorf("insert word: %w", err)
		}
		if n == 0 {
			continue
		}
		id, err := res.LastInsertId()
		if err != nil {
			return 0, fmt.Errorf("insert word: %w", err)
		}
		_, err = tx.Exec(
			"INSERT INTO additions (word_id, batch_id, added_at) VALUES (?, ?, ?)",
			id, batch, now,
		)
		if err != nil {
			return 0, fmt.Errorf("insert addition: %w", err)
		}
		added = append(added, w)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit add words: %w", err)
	}

	if len(added) > 0 {
		log.Info().Str("batch", batch).Strs("words", added).Msg("added words to database")
	}
	return len(added), nil
}
