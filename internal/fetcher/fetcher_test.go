package fetcher

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pbaille/sbsolver/internal/domain"
)

const page = `<!DOCTYPE html>
<html><head>
<script>window.analytics = {};</script>
<script type="text/javascript">window.gameData = {"today":{"displayDate":"October 18, 2026","printDate":"2026-10-18","centerLetter":"a","validLetters":["a","l","g","r","n","t","y"],"answers":["granny","rangy","tangy","gnarly"]},"pastPuzzles":{"lastWeek":[{"displayDate":"October 11, 2026","printDate":"2026-10-11","centerLetter":"o","validLetters":["b","o","c","d","e","l","n"],"answers":["bond","code"]}],"thisWeek":[{"displayDate":"October 17, 2026","printDate":"2026-10-17","centerLetter":"i","validLetters":["i","m","p","r","s","t","e"],"answers":["mist"]},{"displayDate":"October 18, 2026","printDate":"2026-10-18","centerLetter":"a","validLetters":["a","l","g","r","n","t","y"],"answers":["granny"]}]}}</script>
</head><body><div id="pz-game-root"></div></body></html>`

func serve(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "sbsolver/1.0", r.Header.Get("User-Agent"))
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestFetchRounds(t *testing.T) {
	srv := serve(t, http.StatusOK, page)
	c := New(srv.URL, "", time.Second)

	rounds, err := c.FetchRounds(context.Background())
	require.NoError(t, err)
	require.Len(t, rounds, 3)

	today := rounds[0]
	assert.Equal(t, "October 18, 2026", today.Date)
	assert.Equal(t, "algrnty", today.Puzzle.Letters)
	assert.Equal(t, []string{"granny", "rangy", "tangy", "gnarly"}, domain.Texts(today.Answers))

	assert.Equal(t, "October 17, 2026", rounds[1].Date)
	assert.Equal(t, "October 11, 2026", rounds[2].Date)
	// center letter is moved to the front when validLetters disagree
	assert.Equal(t, "obcdeln", rounds[2].Puzzle.Letters)
}

func TestFetchRounds_NoGameData(t *testing.T) {
	srv := serve(t, http.StatusOK, `<html><script>var x = 1;</script></html>`)
	c := New(srv.URL, "", time.Second)

	_, err := c.FetchRounds(context.Background())
	assert.ErrorIs(t, err, ErrGameDataNotFound)
}

func TestFetchRounds_HTTPError(t *testing.T) {
	srv := serve(t, http.StatusServiceUnavailable, "down")
	c := New(srv.URL, "", time.Second)

	_, err := c.FetchRounds(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HTTP 503")
}

func TestFetch_UnsupportedScheme(t *testing.T) {
	c := New("ftp://example.com/puzzle", "", time.Second)

	_, err := c.FetchRounds(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported scheme")
}

func TestParseGameData(t *testing.T) {
	rounds, err := ParseGameData(` window.gameData = {"today":{"displayDate":"Today","validLetters":["E","x","t","r","a","s","y"],"answers":["Extra"]}}; `)
	require.NoError(t, err)
	require.Len(t, rounds, 1)
	assert.Equal(t, "extrasy", rounds[0].Puzzle.Letters)
	assert.Equal(t, "extra", rounds[0].Answers[0].Text)

	_, err = ParseGameData(`window.gameData = {not json}`)
	assert.Error(t, err)

	_, err = ParseGameData(`window.gameData = {}`)
	assert.ErrorIs(t, err, ErrGameDataNotFound)
}

func TestFetchWordList(t *testing.T) {
	srv := serve(t, http.StatusOK, "TWL06 word list\n\nAA\naah\r\nzyzzyva\nit's\n")
	c := New("", srv.URL, time.Second)

	words, err := c.FetchWordList(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"aa", "aah", "zyzzyva"}, words)
}

func TestFetchWordList_Failures(t *testing.T) {
	empty := serve(t, http.StatusOK, "header only\n")
	_, err := New("", empty.URL, time.Second).FetchWordList(context.Background())
	assert.Error(t, err)

	down := serve(t, http.StatusNotFound, "")
	_, err = New("", down.URL, time.Second).FetchWordList(context.Background())
	assert.Error(t, err)
}
