package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/pbaille/sbsolver/internal/config"
	"github.com/pbaille/sbsolver/internal/corpus"
	"github.com/pbaille/sbsolver/internal/define"
	"github.com/pbaille/sbsolver/internal/fetcher"
	"github.com/pbaille/sbsolver/internal/store"
)

var (
	cfg     *config.Config
	dbPath  string
	logFile io.Closer
)

func main() {
	_ = godotenv.Load()

	rootCmd := solveCmd()
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "database path (default $DATA_DIR/words.db)")
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		return setup()
	}

	rootCmd.AddCommand(statsCmd())
	rootCmd.AddCommand(newWordsCmd())
	rootCmd.AddCommand(refreshDefsCmd())
	rootCmd.AddCommand(undefinedCmd())
	rootCmd.AddCommand(serveCmd())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if logFile != nil {
		logFile.Close()
	}
	if err != nil {
		os.Exit(1)
	}
}

func setup() error {
	c, err := config.Load()
	if err != nil {
		return err
	}
	if dbPath != "" {
		c.Corpus.DBPath = dbPath
	}

	f, err := setupLogging(c.Log)
	if err != nil {
		return err
	}
	logFile = f
	cfg = c

	log.Debug().Str("backend", cfg.Corpus.Backend).Str("data_dir", cfg.DataDir).Msg("config loaded")
	return nil
}

// setupLogging sends the global logger to the configured file.
func setupLogging(lc config.LogConfig) (io.Closer, error) {
	level, err := zerolog.ParseLevel(lc.Level)
	if err != nil {
		return nil, fmt.Errorf("parse log level: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(lc.File), 0755); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}
	f, err := os.OpenFile(lc.File, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}

	zerolog.SetGlobalLevel(level)
	log.Logger = zerolog.New(f).With().Timestamp().Logger()
	return f, nil
}

func getStore() (*store.Store, error) {
	// Ensure directory exists
	dir := filepath.Dir(cfg.Corpus.DBPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}
	return store.New(cfg.Corpus.DBPath)
}

// getSQLite opens the store for commands that only the sqlite backend supports.
func getSQLite(command string) (*store.Store, error) {
	if cfg.Corpus.Backend != "sqlite" {
		return nil, fmt.Errorf("%s requires the sqlite corpus backend, have %q", command, cfg.Corpus.Backend)
	}
	return getStore()
}

// openCorpus opens the configured backend. The store is nil unless the
// backend is sqlite; done releases whatever was opened.
func openCorpus() (c corpus.Corpus, s *store.Store, done func(), err error) {
	switch cfg.Corpus.Backend {
	case "file":
		if err := os.MkdirAll(filepath.Dir(cfg.Corpus.WordListFile), 0755); err != nil {
			return nil, nil, nil, fmt.Errorf("create word list dir: %w", err)
		}
		fc, err := corpus.NewFile(cfg.Corpus.WordListFile, cfg.Corpus.AddendumFile)
		if err != nil {
			return nil, nil, nil, err
		}
		return fc, nil, func() {}, nil
	default:
		st, err := getStore()
		if err != nil {
			return nil, nil, nil, err
		}
		return st, st, func() { st.Close() }, nil
	}
}

func newFetcher() *fetcher.Client {
	return fetcher.New(cfg.Sources.GameURL, cfg.Sources.WordListURL, cfg.Sources.Timeout)
}

// newDefiner builds a Datamuse backed Definer. A nil store caches nothing
// between runs.
func newDefiner(s *store.Store) (*define.Definer, error) {
	var cache define.Cache = define.NopCache{}
	if s != nil {
		cache = s
	}
	src := define.NewDatamuse(cfg.Sources.DatamuseURL, cfg.Sources.Timeout)
	return define.NewDefiner(src, cache, cfg.Define.Concurrency, cfg.Define.CacheSize)
}
