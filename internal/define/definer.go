// Package define attaches dictionary definitions to words, reading through
// a persistent cache and fetching what is missing from a remote source.
package define

import (
	"context"
	"fmt"
	"slices"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/pbaille/sbsolver/internal/domain"
)

const (
	defaultConcurrency = 8
	defaultMemoSize    = 1024
)

// Source returns the definitions of one word. Unknown words yield no
// definitions and no error.
type Source interface {
	Define(ctx context.Context, word string) ([]string, error)
}

// Cache persists definitions between runs.
type Cache interface {
	LoadDefinitions(words []string) (map[string][]string, error)
	SaveDefinitions(defs map[string][]string) error
}

// RefreshCache is a Cache whose entries can be listed and replaced.
type RefreshCache interface {
	Cache
	DefinedWords() ([]string, error)
	ReplaceDefinitions(word string, defs []string) error
}

// NopCache persists nothing. Backends without a definitions table use it.
type NopCache struct{}

func (NopCache) LoadDefinitions([]string) (map[string][]string, error) { return nil, nil }

func (NopCache) SaveDefinitions(map[string][]string) error { return nil }

// Definer fills in Word definitions from memory, the cache, then the source.
type Definer struct {
	src         Source
	cache       Cache
	memo        *lru.Cache[string, []string]
	concurrency int
}

// NewDefiner creates a Definer. Non-positive concurrency or memoSize use defaults.
func NewDefiner(src Source, cache Cache, concurrency, memoSize int) (*Definer, error) {
	if concurrency <= 0 {
		concurrency = defaultConcurrency
	}
	if memoSize <= 0 {
		memoSize = defaultMemoSize
	}
	memo, err := lru.New[string, []string](memoSize)
	if err != nil {
		return nil, fmt.Errorf("create memo: %w", err)
	}
	return &Definer{src: src, cache: cache, memo: memo, concurrency: concurrency}, nil
}

// Define sets Definitions on every word. Words the source cannot reach stay
// undefined and are not cached; words the source does not know get the
// domain.NotFound marker.
func (d *Definer) Define(ctx context.Context, words []domain.Word) error {
	defs := make(map[string][]string, len(words))
	var cold []string
	for _, w := range words {
		if v, ok := d.memo.Get(w.Text); ok {
			defs[w.Text] = v
			continue
		}
		if !slices.Contains(cold, w.Text) {
			cold = append(cold, w.Text)
		}
	}

	if len(cold) > 0 {
		cached, err := d.cache.LoadDefinitions(cold)
		if err != nil {
			return fmt.Errorf("load definitions: %w", err)
		}
		var missing []string
		for _, w := range cold {
			if v, ok := cached[w]; ok && len(v) > 0 {
				defs[w] = v
				d.memo.Add(w, v)
				continue
			}
			missing = append(missing, w)
		}

		if len(missing) > 0 {
			fetched, err := d.fetch(ctx, missing)
			if err != nil {
				return err
			}
			if len(fetched) > 0 {
				if err := d.cache.SaveDefinitions(fetched); err != nil {
					return fmt.Errorf("save definitions: %w", err)
				}
			}
			for w, v := range fetched {
				defs[w] = v
				d.memo.Add(w, v)
			}
		}
	}

	for i := range words {
		words[i].Definitions = defs[words[i].Text]
	}
	return nil
}

// fetch looks words up concurrently. Per-word failures are logged and
// skipped; only cancellation aborts the batch.
func (d *Definer) fetch(ctx context.Context, words []string) (map[string][]string, error) {
	log.Info().Int("count", len(words)).Msg("definitions to fetch")

	var (
		mu  sync.Mutex
		out = make(map[string][]string, len(words))
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(d.concurrency)

	for _, w := range words {
		g.Go(func() error {
			defs, err := d.src.Define(gctx, w)
			if err != nil {
				if gctx.Err() != nil {
					return gctx.Err()
				}
				log.Warn().Err(err).Str("word", w).Msg("definition lookup failed")
				return nil
			}
			if len(defs) == 0 {
				log.Warn().Str("word", w).Msg("definition not found")
				defs = []string{domain.NotFound}
			}
			mu.Lock()
			out[w] = defs
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("fetch definitions: %w", err)
	}
	return out, nil
}

// Refresh re-fetches every cached word and replaces definitions that
// changed. Empty lookups never overwrite what is cached. It returns the
// words that were updated.
func (d *Definer) Refresh(ctx context.Context, cache RefreshCache) ([]string, error) {
	words, err := cache.DefinedWords()
	if err != nil {
		return nil, fmt.Errorf("list defined words: %w", err)
	}
	local, err := cache.LoadDefinitions(words)
	if err != nil {
		return nil, fmt.Errorf("load definitions: %w", err)
	}
	remote, err := d.fetch(ctx, words)
	if err != nil {
		return nil, err
	}

	var updated []string
	for _, w := range words {
		defs, ok := remote[w]
		if !ok || slices.Equal(defs, []string{domain.NotFound}) || slices.Equal(defs, local[w]) {
			continue
		}
		if err := cache.ReplaceDefinitions(w, defs); err != nil {
			return updated, fmt.Errorf("replace definitions: %w", err)
		}
		d.memo.Remove(w)
		log.Info().Str("word", w).Msg("updated local definition")
		updated = append(updated, w)
	}
	return updated, nil
}
