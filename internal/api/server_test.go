package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pbaille/sbsolver/internal/corpus"
	"github.com/pbaille/sbsolver/internal/corpus/corpustest"
	"github.com/pbaille/sbsolver/internal/domain"
	"github.com/pbaille/sbsolver/internal/store"
)

type staticRounds struct {
	rounds []domain.GameRound
	err    error
}

func (s staticRounds) FetchRounds(ctx context.Context) ([]domain.GameRound, error) {
	return s.rounds, s.err
}

var testRounds = staticRounds{rounds: []domain.GameRound{
	{
		Date:    "Sunday, October 18, 2026",
		Puzzle:  domain.Puzzle{Letters: "algrnty"},
		Answers: domain.WordsFrom([]string{"gnat", "tangy", "grantly"}),
	},
	{
		Date:   "Saturday, October 17, 2026",
		Puzzle: domain.Puzzle{Letters: "obcdefg"},
	},
}}

func fileCorpus(t *testing.T) corpus.Corpus {
	t.Helper()
	dir := t.TempDir()
	c, err := corpus.NewFile(filepath.Join(dir, "words.txt"), filepath.Join(dir, "addendum.txt"))
	require.NoError(t, err)
	require.NoError(t, c.Bootstrap(context.Background(), corpustest.StaticSource(corpustest.BaseWords, nil)))
	return c
}

func get(t *testing.T, h http.Handler, path string, out any) int {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	if out != nil {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), out))
	}
	return rec.Code
}

func TestHealth(t *testing.T) {
	h := New(testRounds, fileCorpus(t), "").Handler()

	var body map[string]string
	assert.Equal(t, http.StatusOK, get(t, h, "/health", &body))
	assert.Equal(t, "ok", body["status"])
}

func TestListRounds(t *testing.T) {
	h := New(testRounds, fileCorpus(t), "").Handler()

	var body struct {
		Rounds []RoundInfo `json:"rounds"`
	}
	require.Equal(t, http.StatusOK, get(t, h, "/rounds", &body))
	require.Len(t, body.Rounds, 2)
	assert.Equal(t, RoundInfo{Index: 0, Date: "Sunday, October 18, 2026", Letters: "algrnty", Center: "a"}, body.Rounds[0])
	assert.Equal(t, 1, body.Rounds[1].Index)
}

func TestListRounds_SourceError(t *testing.T) {
	h := New(staticRounds{err: errors.New("boom")}, fileCorpus(t), "").Handler()

	var body map[string]string
	assert.Equal(t, http.StatusBadGateway, get(t, h, "/rounds", &body))
	assert.Equal(t, "boom", body["error"])
}

func TestSolveRound(t *testing.T) {
	c := fileCorpus(t)
	h := New(testRounds, c, "").Handler()

	var body SolveResponse
	require.Equal(t, http.StatusOK, get(t, h, "/rounds/0", &body))

	assert.Equal(t, "algrnty", body.Letters)
	assert.Equal(t, []string{"gnarly", "gnat", "granny", "rangy", "tangy", "tarty"}, domain.Texts(body.Found))
	assert.Equal(t, []string{"grantly"}, body.Missing)
	assert.Len(t, body.Answers, 3)
	assert.Equal(t, 6, body.Summary.Words)
	assert.Equal(t, 28, body.Summary.Points)

	// reporting only, no writes
	ok, err := c.Contains("grantly")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSolveRound_NoAnswers(t *testing.T) {
	h := New(testRounds, fileCorpus(t), "").Handler()

	var body SolveResponse
	require.Equal(t, http.StatusOK, get(t, h, "/rounds/1", &body))
	assert.Empty(t, body.Found)
	assert.NotNil(t, body.Answers)
	assert.Empty(t, body.Missing)
}

func TestSolveRound_BadIndex(t *testing.T) {
	h := New(testRounds, fileCorpus(t), "").Handler()

	assert.Equal(t, http.StatusBadRequest, get(t, h, "/rounds/today", nil))
	assert.Equal(t, http.StatusNotFound, get(t, h, "/rounds/7", nil))
}

func TestSolveRound_NotBootstrapped(t *testing.T) {
	dir := t.TempDir()
	c, err := corpus.NewFile(filepath.Join(dir, "words.txt"), filepath.Join(dir, "addendum.txt"))
	require.NoError(t, err)
	h := New(testRounds, c, "").Handler()

	assert.Equal(t, http.StatusServiceUnavailable, get(t, h, "/rounds/0", nil))
}

func TestCorpusStats(t *testing.T) {
	s, err := store.New(filepath.Join(t.TempDir(), "words.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	require.NoError(t, s.Bootstrap(context.Background(), corpustest.StaticSource(corpustest.BaseWords, nil)))

	h := New(testRounds, s, "").Handler()

	var body store.Stats
	require.Equal(t, http.StatusOK, get(t, h, "/corpus/stats", &body))
	assert.Equal(t, 8, body.TotalWords)
	assert.Equal(t, 8, body.InitialWords)
}

func TestCorpusStats_Unsupported(t *testing.T) {
	h := New(testRounds, fileCorpus(t), "").Handler()

	assert.Equal(t, http.StatusNotImplemented, get(t, h, "/corpus/stats", nil))
}

func TestCORSPreflight(t *testing.T) {
	h := New(testRounds, fileCorpus(t), "").Handler()

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodOptions, "/rounds", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}
