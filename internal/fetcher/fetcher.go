package fetcher

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/net/html"

	"github.com/pbaille/sbsolver/internal/corpus"
	"github.com/pbaille/sbsolver/internal/domain"
)

const (
	// DefaultGameURL is the puzzle page carrying window.gameData
	DefaultGameURL = "https://www.nytimes.com/puzzles/spelling-bee"
	// DefaultWordListURL serves the TWL06 scrabble word list
	DefaultWordListURL = "https://www.wordgamedictionary.com/twl06/download/twl06.txt"

	gameDataPrefix = "window.gameData"
	maxPageSize    = 5 * 1024 * 1024
	maxListSize    = 16 * 1024 * 1024
)

// ErrGameDataNotFound means the puzzle page had no window.gameData script.
var ErrGameDataNotFound = errors.New("game data not found")

var _ corpus.WordListSource = (*Client)(nil)

// Client fetches puzzle rounds and the base word list
type Client struct {
	http        *http.Client
	gameURL     string
	wordListURL string
}

// New creates a Client. Empty URLs fall back to the defaults.
func New(gameURL, wordListURL string, timeout time.Duration) *Client {
	if gameURL == "" {
		gameURL = DefaultGameURL
	}
	if wordListURL == "" {
		wordListURL = DefaultWordListURL
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		http:        &http.Client{Timeout: timeout},
		gameURL:     gameURL,
		wordListURL: wordListURL,
	}
}

// FetchRounds scrapes the puzzle page and returns today's round followed by
// past rounds, most recent first.
func (c *Client) FetchRounds(ctx context.Context) ([]domain.GameRound, error) {
	log.Info().Str("url", c.gameURL).Msg("fetch game data")

	body, err := c.get(ctx, c.gameURL, maxPageSize)
	if err != nil {
		return nil, err
	}

	doc, err := html.Parse(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parse page: %w", err)
	}

	raw := findGameData(doc)
	if raw == "" {
		return nil, ErrGameDataNotFound
	}

	return ParseGameData(raw)
}

// FetchWordList downloads the base word list, one word per line.
// Header lines and anything that is not a plain word are skipped.
func (c *Client) FetchWordList(ctx context.Context) ([]string, error) {
	log.Info().Str("url", c.wordListURL).Msg("fetch word list")

	body, err := c.get(ctx, c.wordListURL, maxListSize)
	if err != nil {
		return nil, err
	}

	var words []string
	sc := bufio.NewScanner(bytes.NewReader(body))
	for sc.Scan() {
		w := strings.ToLower(strings.TrimSpace(sc.Text()))
		if w != "" && corpus.IsAlpha(w) {
			words = append(words, w)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read word list: %w", err)
	}
	if len(words) == 0 {
		return nil, errors.New("word list is empty")
	}

	log.Info().Int("count", len(words)).Msg("fetched word list")
	return words, nil
}

func (c *Client) get(ctx context.Context, rawURL string, limit int64) ([]byte, error) {
	// Validate URL
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("invalid URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("unsupported scheme: %s", u.Scheme)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", "sbsolver/1.0")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d: %s", resp.StatusCode, resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, limit))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	return body, nil
}

// findGameData returns the text of the first script assigning window.gameData
func findGameData(n *html.Node) string {
	if n.Type == html.ElementNode && n.Data == "script" {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == html.TextNode && strings.Contains(c.Data, gameDataPrefix) {
				return c.Data
			}
		}
		return ""
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if s := findGameData(c); s != "" {
			return s
		}
	}
	return ""
}

type gameData struct {
	Today       *puzzleData `json:"today"`
	PastPuzzles struct {
		ThisWeek []puzzleData `json:"thisWeek"`
		LastWeek []puzzleData `json:"lastWeek"`
	} `json:"pastPuzzles"`
}

type puzzleData struct {
	DisplayDate  string   `json:"displayDate"`
	PrintDate    string   `json:"printDate"`
	CenterLetter string   `json:"centerLetter"`
	ValidLetters []string `json:"validLetters"`
	Answers      []string `json:"answers"`
}

// ParseGameData decodes a window.gameData assignment into rounds, today
// first and then past puzzles from newest to oldest.
func ParseGameData(script string) ([]domain.GameRound, error) {
	raw := strings.TrimSpace(script)
	if i := strings.Index(raw, "="); i >= 0 && strings.HasPrefix(raw, gameDataPrefix) {
		raw = raw[i+1:]
	}
	raw = strings.TrimSuffix(strings.TrimSpace(raw), ";")

	var data gameData
	if err := json.Unmarshal([]byte(raw), &data); err != nil {
		return nil, fmt.Errorf("decode game data: %w", err)
	}

	var puzzles []puzzleData
	if data.Today != nil && len(data.Today.ValidLetters) > 0 {
		puzzles = append(puzzles, *data.Today)
	}
	past := append(append([]puzzleData{}, data.PastPuzzles.LastWeek...), data.PastPuzzles.ThisWeek...)
	for i := len(past) - 1; i >= 0; i-- {
		puzzles = append(puzzles, past[i])
	}

	seen := make(map[string]bool)
	var rounds []domain.GameRound
	for _, p := range puzzles {
		key := p.PrintDate
		if key == "" {
			key = p.DisplayDate
		}
		if seen[key] {
			continue
		}
		seen[key] = true
		rounds = append(rounds, p.round())
	}

	if len(rounds) == 0 {
		return nil, ErrGameDataNotFound
	}
	return rounds, nil
}

func (p puzzleData) round() domain.GameRound {
	letters := strings.ToLower(strings.Join(p.ValidLetters, ""))
	center := strings.ToLower(p.CenterLetter)
	if center != "" && !strings.HasPrefix(letters, center) {
		letters = center + strings.Replace(letters, center, "", 1)
	}
	return domain.GameRound{
		Date:    p.DisplayDate,
		Puzzle:  domain.Puzzle{Letters: letters},
		Answers: domain.WordsFrom(p.Answers),
	}
}
