package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/rs/zerolog/log"

	"github.com/pbaille/sbsolver/internal/corpus"
	"github.com/pbaille/sbsolver/internal/domain"
	"github.com/pbaille/sbsolver/internal/show"
	"github.com/pbaille/sbsolver/internal/solver"
	"github.com/pbaille/sbsolver/internal/store"
)

// RoundSource provides the published rounds, today first
type RoundSource interface {
	FetchRounds(ctx context.Context) ([]domain.GameRound, error)
}

// StatsSource is implemented by corpus backends that keep statistics
type StatsSource interface {
	Stats() (*store.Stats, error)
}

// Server handles HTTP requests for the solver API
type Server struct {
	rounds RoundSource
	corpus corpus.Corpus
	stats  StatsSource
	addr   string
}

// New creates a new API server. Corpus statistics are served only when c
// implements StatsSource.
func New(rounds RoundSource, c corpus.Corpus, addr string) *Server {
	s := &Server{rounds: rounds, corpus: c, addr: addr}
	if st, ok := c.(StatsSource); ok {
		s.stats = st
	}
	return s
}

// Handler returns the routed handler with CORS applied.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	// Rounds
	mux.HandleFunc("GET /rounds", s.listRounds)
	mux.HandleFunc("GET /rounds/{n}", s.solveRound)

	// Corpus
	mux.HandleFunc("GET /corpus/stats", s.corpusStats)

	// Health check
	mux.HandleFunc("GET /health", s.health)

	return withCORS(mux)
}

// Run starts the HTTP server
func (s *Server) Run() error {
	log.Info().Str("addr", s.addr).Msg("starting server")
	return http.ListenAndServe(s.addr, s.Handler())
}

// withCORS adds CORS headers for frontend development
func withCORS(h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		h.ServeHTTP(w, r)
	})
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// RoundInfo is one entry of the round listing
type RoundInfo struct {
	Index   int    `json:"index"`
	Date    string `json:"date"`
	Letters string `json:"letters"`
	Center  string `json:"center"`
}

func (s *Server) listRounds(w http.ResponseWriter, r *http.Request) {
	rounds, err := s.rounds.FetchRounds(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("fetch rounds")
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}

	infos := make([]RoundInfo, len(rounds))
	for i, rd := range rounds {
		infos[i] = RoundInfo{
			Index:   i,
			Date:    rd.Date,
			Letters: rd.Puzzle.Letters,
			Center:  rd.Puzzle.Center(),
		}
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"rounds": infos,
	})
}

// SolveResponse is the response for a solved round
type SolveResponse struct {
	Round   int           `json:"round"`
	Date    string        `json:"date"`
	Letters string        `json:"letters"`
	Found   []domain.Word `json:"found"`
	Answers []domain.Word `json:"answers"`
	Missing []string      `json:"missing"`
	Summary show.Summary  `json:"summary"`
}

// solveRound solves one round against the corpus. It reports what the
// corpus misses but does not add it; the CLI owns corpus writes.
func (s *Server) solveRound(w http.ResponseWriter, r *http.Request) {
	n, err := strconv.Atoi(r.PathValue("n"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "round index must be an integer")
		return
	}

	rounds, err := s.rounds.FetchRounds(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("fetch rounds")
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}

	round, err := solver.SelectRound(rounds, n)
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}

	found, err := solver.Solve(s.corpus, round.Puzzle)
	if err != nil {
		writeCorpusError(w, err)
		return
	}

	answers := round.Answers
	if answers == nil {
		answers = []domain.Word{}
	}

	writeJSON(w, http.StatusOK, SolveResponse{
		Round:   n,
		Date:    round.Date,
		Letters: round.Puzzle.Letters,
		Found:   found,
		Answers: answers,
		Missing: solver.Reconcile(found, round.Answers),
		Summary: show.Summarize(found),
	})
}

func (s *Server) corpusStats(w http.ResponseWriter, r *http.Request) {
	if s.stats == nil {
		writeError(w, http.StatusNotImplemented, "corpus backend keeps no statistics")
		return
	}

	st, err := s.stats.Stats()
	if err != nil {
		writeCorpusError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, st)
}

func writeCorpusError(w http.ResponseWriter, err error) {
	if errors.Is(err, corpus.ErrNotBootstrapped) {
		writeError(w, http.StatusServiceUnavailable, err.Error())
		return
	}
	log.Error().Err(err).Msg("corpus query")
	writeError(w, http.StatusInternalServerError, err.Error())
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
