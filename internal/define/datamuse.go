package define

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// DefaultDatamuseURL is the Datamuse words endpoint
const DefaultDatamuseURL = "https://api.datamuse.com/words"

// Datamuse looks up short definitions through the Datamuse API
type Datamuse struct {
	baseURL string
	http    *http.Client
}

// NewDatamuse creates a Datamuse client. An empty baseURL uses the public API.
func NewDatamuse(baseURL string, timeout time.Duration) *Datamuse {
	if baseURL == "" {
		baseURL = DefaultDatamuseURL
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Datamuse{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
	}
}

// Define returns the definitions Datamuse knows for word, each formatted as
// "pos\tdefinition". A word Datamuse does not know yields nil, nil.
func (d *Datamuse) Define(ctx context.Context, word string) ([]string, error) {
	params := url.Values{}
	params.Set("sp", word)
	params.Set("md", "d")
	params.Set("max", "1")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, d.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := d.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("api error (status %d): %s", resp.StatusCode, string(body))
	}

	var entries []datamuseEntry
	if err := json.Unmarshal(body, &entries); err != nil {
		return nil, fmt.Errorf("unmarshal response: %w", err)
	}

	if len(entries) == 0 {
		return nil, nil
	}
	return entries[0].Defs, nil
}

type datamuseEntry struct {
	Word string   `json:"word"`
	Defs []string `json:"defs"`
}
