package corpus

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
)

// FileCorpus keeps the corpus in two flat files: the base word list written
// once at bootstrap and an addendum that only ever grows.
type FileCorpus struct {
	basePath     string
	addendumPath string

	words     map[string]struct{}
	baseCount int
	loaded    bool
}

// NewFile opens a file backed corpus. Missing files are not an error; the
// corpus stays unbootstrapped until Bootstrap writes the base list.
func NewFile(basePath, addendumPath string) (*FileCorpus, error) {
	c := &FileCorpus{
		basePath:     basePath,
		addendumPath: addendumPath,
		words:        make(map[string]struct{}),
	}
	if err := c.load(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *FileCorpus) load() error {
	base, err := readWordFile(c.basePath)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read word list: %w", err)
	}

	addendum, err := readWordFile(c.addendumPath)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("read addendum: %w", err)
	}

	for _, w := range base {
		c.words[w] = struct{}{}
	}
	c.baseCount = len(c.words)
	for _, w := range addendum {
		c.words[w] = struct{}{}
	}
	c.loaded = true
	return nil
}

// Bootstrap writes the base word list when it does not exist yet.
func (c *FileCorpus) Bootstrap(ctx context.Context, src WordListSource) error {
	if c.loaded {
		return nil
	}

	log.Info().Str("path", c.basePath).Msg("bootstrap word list")
	raw, err := src.FetchWordList(ctx)
	if err != nil {
		return fmt.Errorf("fetch word list: %w", err)
	}
	words := Normalize(raw)
	if len(words) == 0 {
		return errors.New("fetch word list: no words")
	}

	if err := writeWordFile(c.basePath, words); err != nil {
		return fmt.Errorf("write word list: %w", err)
	}

	return c.load()
}

// Contains reports whether word is in the base list or the addendum.
func (c *FileCorpus) Contains(word string) (bool, error) {
	if !c.loaded {
		return false, ErrNotBootstrapped
	}
	_, ok := c.words[strings.ToLower(word)]
	return ok, nil
}

// AllWords scans every word once.
func (c *FileCorpus) AllWords(minLength int, mustContain string) ([]string, error) {
	if !c.loaded {
		return nil, ErrNotBootstrapped
	}
	match := make(map[string]struct{})
	for w := range c.words {
		if Match(w, minLength, mustContain) {
			match[w] = struct{}{}
		}
	}
	return sortedKeys(match), nil
}

// AddWords appends unseen words to the addendum file.
func (c *FileCorpus) AddWords(words []string) (int, error) {
	if !c.loaded {
		return 0, ErrNotBootstrapped
	}

	var fresh []string
	for _, w := range Normalize(words) {
		if _, ok := c.words[w]; !ok {
			fresh = append(fresh, w)
		}
	}
	if len(fresh) == 0 {
		return 0, nil
	}

	if err := appendWordFile(c.addendumPath, fresh); err != nil {
		return 0, fmt.Errorf("append addendum: %w", err)
	}
	for _, w := range fresh {
		c.words[w] = struct{}{}
	}

	log.Info().Int("count", len(fresh)).Strs("words", fresh).Msg("added words to addendum")
	return len(fresh), nil
}

// BaseCount is the number of words loaded from the base list.
func (c *FileCorpus) BaseCount() int {
	return c.baseCount
}

// Len is the size of the effective corpus.
func (c *FileCorpus) Len() int {
	return len(c.words)
}

// readWordFile loads one word per line, lowercased and trimmed.
func readWordFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var out []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		w := strings.TrimSpace(strings.ToLower(sc.Text()))
		if w != "" && IsAlpha(w) {
			out = append(out, w)
		}
	}
	return out, sc.Err()
}

// writeWordFile replaces path atomically with the given words.
func writeWordFile(path string, words []string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, []byte(strings.Join(words, "\n")+"\n"), 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

func appendWordFile(path string, words []string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	if _, err := f.WriteString(strings.Join(words, "\n") + "\n"); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
