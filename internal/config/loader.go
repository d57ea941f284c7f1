package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/rs/zerolog"
)

// Backends lists the supported corpus backends.
var Backends = []string{"sqlite", "file"}

// Load reads configuration from a YAML file and environment variables.
// Priority: ENV > YAML > defaults (via env-default tags).
// The YAML file path is determined by CONFIG_PATH env (fallback "./config.yaml").
// If the file does not exist and CONFIG_PATH was not set explicitly,
// configuration is loaded from ENV + defaults only.
func Load() (*Config, error) {
	var cfg Config

	path := os.Getenv("CONFIG_PATH")
	explicitPath := path != ""
	if !explicitPath {
		path = "./config.yaml"
	}

	if _, err := os.Stat(path); err == nil {
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
	} else if explicitPath {
		return nil, fmt.Errorf("config: file %s: %w", path, err)
	} else {
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("config: read env: %w", err)
		}
	}

	if err := cfg.resolvePaths(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: validate: %w", err)
	}

	return &cfg, nil
}

// resolvePaths fills empty file locations under DataDir (default ~/.sbsolver).
func (c *Config) resolvePaths() error {
	if c.DataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("home dir: %w", err)
		}
		c.DataDir = filepath.Join(home, ".sbsolver")
	}

	def := func(p *string, name string) {
		if *p == "" {
			*p = filepath.Join(c.DataDir, name)
		}
	}
	def(&c.Corpus.DBPath, "words.db")
	def(&c.Corpus.WordListFile, "word_list.txt")
	def(&c.Corpus.AddendumFile, "addendum.txt")
	def(&c.Log.File, "sbsolver.log")
	return nil
}

// Validate checks values cleanenv cannot.
func (c *Config) Validate() error {
	var errs []error

	if !slices.Contains(Backends, c.Corpus.Backend) {
		errs = append(errs, fmt.Errorf("corpus.backend %q must be one of %v", c.Corpus.Backend, Backends))
	}
	if c.Display.Width < 20 {
		errs = append(errs, fmt.Errorf("display.width must be at least 20, got %d", c.Display.Width))
	}
	if c.Define.Concurrency < 1 {
		errs = append(errs, fmt.Errorf("define.concurrency must be positive, got %d", c.Define.Concurrency))
	}
	if c.Define.CacheSize < 1 {
		errs = append(errs, fmt.Errorf("define.cache_size must be positive, got %d", c.Define.CacheSize))
	}
	if c.Sources.Timeout <= 0 {
		errs = append(errs, fmt.Errorf("sources.timeout must be positive, got %s", c.Sources.Timeout))
	}
	if _, err := zerolog.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, fmt.Errorf("log.level: %w", err))
	}

	return errors.Join(errs...)
}
