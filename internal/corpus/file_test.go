package corpus_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pbaille/sbsolver/internal/corpus"
	"github.com/pbaille/sbsolver/internal/corpus/corpustest"
)

func openFile(t *testing.T, dir string) corpus.Corpus {
	t.Helper()
	c, err := corpus.NewFile(filepath.Join(dir, "word_list.txt"), filepath.Join(dir, "addendum.txt"))
	require.NoError(t, err)
	return c
}

func TestFileCorpus(t *testing.T) {
	corpustest.Run(t, openFile)
}

func TestFileCorpus_ReadsExistingFiles(t *testing.T) {
	dir := t.TempDir()
	base := filepath.Join(dir, "word_list.txt")
	addendum := filepath.Join(dir, "addendum.txt")
	require.NoError(t, os.WriteFile(base, []byte("Granny\nrangy\n\n  tangy\nit's\n"), 0o644))
	require.NoError(t, os.WriteFile(addendum, []byte("gnarly\nrangy\n"), 0o644))

	c, err := corpus.NewFile(base, addendum)
	require.NoError(t, err)

	assert.Equal(t, 3, c.BaseCount())
	assert.Equal(t, 4, c.Len())

	words, err := c.AllWords(4, "y")
	require.NoError(t, err)
	assert.Equal(t, []string{"gnarly", "granny", "rangy", "tangy"}, words)
}

func TestFileCorpus_AddendumAppends(t *testing.T) {
	dir := t.TempDir()
	c := openFile(t, dir).(*corpus.FileCorpus)
	require.NoError(t, c.Bootstrap(t.Context(), corpustest.StaticSource([]string{"gnat"}, nil)))

	_, err := c.AddWords([]string{"tanta"})
	require.NoError(t, err)
	_, err = c.AddWords([]string{"zzq"})
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, "addendum.txt"))
	require.NoError(t, err)
	assert.Equal(t, "tanta\nzzq\n", string(data))
}

func TestNormalize(t *testing.T) {
	got := corpus.Normalize([]string{" Tangy", "tangy", "", "x-ray", "GNAT"})
	assert.Equal(t, []string{"gnat", "tangy"}, got)
}

func TestMatch(t *testing.T) {
	assert.True(t, corpus.Match("tangy", 4, "a"))
	assert.False(t, corpus.Match("art", 4, "a"))
	assert.False(t, corpus.Match("tangy", 4, "q"))
	assert.True(t, corpus.Match("tangy", 0, ""))
}
