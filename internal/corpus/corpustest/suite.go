// Package corpustest holds the behaviour every corpus.Corpus backend must
// share. Backend packages call Run from their own tests.
package corpustest

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pbaille/sbsolver/internal/corpus"
)

// OpenFunc opens a corpus persisted under dir. Calling it twice with the
// same dir must reach the same persisted state.
type OpenFunc func(t *testing.T, dir string) corpus.Corpus

// BaseWords is the word list every suite corpus is bootstrapped with.
var BaseWords = []string{"granny", "Rangy", "tangy", "gnarly", "layer", "gnat", "art", " tarty "}

// StaticSource returns a WordListSource serving words and counting calls.
func StaticSource(words []string, calls *int) corpus.WordListSource {
	return corpus.WordListFunc(func(ctx context.Context) ([]string, error) {
		if calls != nil {
			*calls++
		}
		return words, nil
	})
}

func bootstrapped(t *testing.T, open OpenFunc, dir string) corpus.Corpus {
	t.Helper()
	c := open(t, dir)
	require.NoError(t, c.Bootstrap(context.Background(), StaticSource(BaseWords, nil)))
	return c
}

// Run exercises a backend against the shared corpus contract.
func Run(t *testing.T, open OpenFunc) {
	t.Run("queries before bootstrap fail", func(t *testing.T) {
		c := open(t, t.TempDir())

		_, err := c.Contains("gnat")
		assert.ErrorIs(t, err, corpus.ErrNotBootstrapped)
		_, err = c.AllWords(4, "a")
		assert.ErrorIs(t, err, corpus.ErrNotBootstrapped)
	})

	t.Run("bootstrap loads normalised base list", func(t *testing.T) {
		c := bootstrapped(t, open, t.TempDir())

		for _, w := range []string{"granny", "rangy", "tarty", "art"} {
			ok, err := c.Contains(w)
			require.NoError(t, err)
			assert.True(t, ok, w)
		}
		ok, err := c.Contains("RANGY")
		require.NoError(t, err)
		assert.True(t, ok)

		ok, err = c.Contains("zzq")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("bootstrap runs once", func(t *testing.T) {
		dir := t.TempDir()
		calls := 0
		c := open(t, dir)
		require.NoError(t, c.Bootstrap(context.Background(), StaticSource(BaseWords, &calls)))
		require.NoError(t, c.Bootstrap(context.Background(), StaticSource(BaseWords, &calls)))
		assert.Equal(t, 1, calls)

		reopened := open(t, dir)
		require.NoError(t, reopened.Bootstrap(context.Background(), StaticSource(BaseWords, &calls)))
		assert.Equal(t, 1, calls)
	})

	t.Run("bootstrap failure propagates", func(t *testing.T) {
		c := open(t, t.TempDir())
		boom := errors.New("unreachable")
		err := c.Bootstrap(context.Background(), corpus.WordListFunc(func(ctx context.Context) ([]string, error) {
			return nil, boom
		}))
		require.ErrorIs(t, err, boom)

		_, err = c.Contains("gnat")
		assert.ErrorIs(t, err, corpus.ErrNotBootstrapped)
	})

	t.Run("bootstrap rejects empty list", func(t *testing.T) {
		c := open(t, t.TempDir())
		err := c.Bootstrap(context.Background(), StaticSource([]string{"", "  ", "42"}, nil))
		require.Error(t, err)
	})

	t.Run("all words filters and sorts", func(t *testing.T) {
		c := bootstrapped(t, open, t.TempDir())

		words, err := c.AllWords(4, "n")
		require.NoError(t, err)
		assert.Equal(t, []string{"gnarly", "gnat", "granny", "rangy", "tangy"}, words)

		words, err = c.AllWords(6, "")
		require.NoError(t, err)
		assert.Equal(t, []string{"gnarly", "granny"}, words)

		words, err = c.AllWords(4, "q")
		require.NoError(t, err)
		assert.Empty(t, words)
	})

	t.Run("all words treats mustContain literally", func(t *testing.T) {
		c := bootstrapped(t, open, t.TempDir())

		for _, sub := range []string{"_", "%", "g%y", "n_t"} {
			words, err := c.AllWords(0, sub)
			require.NoError(t, err)
			assert.Empty(t, words, sub)
		}

		words, err := c.AllWords(0, "rt")
		require.NoError(t, err)
		assert.Equal(t, []string{"art", "tarty"}, words)
	})

	t.Run("add words is idempotent", func(t *testing.T) {
		c := bootstrapped(t, open, t.TempDir())

		n, err := c.AddWords([]string{"zzq", "gnat"})
		require.NoError(t, err)
		assert.Equal(t, 1, n)
		first, err := c.AllWords(0, "")
		require.NoError(t, err)

		n, err = c.AddWords([]string{"zzq", "gnat"})
		require.NoError(t, err)
		assert.Equal(t, 0, n)
		second, err := c.AllWords(0, "")
		require.NoError(t, err)

		assert.Equal(t, first, second)
		ok, err := c.Contains("zzq")
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("add words normalises input", func(t *testing.T) {
		c := bootstrapped(t, open, t.TempDir())

		n, err := c.AddWords([]string{"Tanta", "tanta", "", "x-ray"})
		require.NoError(t, err)
		assert.Equal(t, 1, n)

		ok, err := c.Contains("tanta")
		require.NoError(t, err)
		assert.True(t, ok)
		ok, err = c.Contains("x-ray")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("added words persist", func(t *testing.T) {
		dir := t.TempDir()
		c := bootstrapped(t, open, dir)
		_, err := c.AddWords([]string{"zzq"})
		require.NoError(t, err)

		reopened := open(t, dir)
		ok, err := reopened.Contains("zzq")
		require.NoError(t, err)
		assert.True(t, ok)
		ok, err = reopened.Contains("granny")
		require.NoError(t, err)
		assert.True(t, ok)
	})
}
