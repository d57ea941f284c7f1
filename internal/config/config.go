package config

import (
	"time"
)

// Config is the root application configuration.
type Config struct {
	DataDir string        `yaml:"data_dir" env:"DATA_DIR"`
	Corpus  CorpusConfig  `yaml:"corpus"`
	Sources SourcesConfig `yaml:"sources"`
	Define  DefineConfig  `yaml:"define"`
	Display DisplayConfig `yaml:"display"`
	Log     LogConfig     `yaml:"log"`
	Serve   ServeConfig   `yaml:"serve"`
}

// CorpusConfig selects and locates the word corpus.
// Empty paths are placed under DataDir.
type CorpusConfig struct {
	Backend      string `yaml:"backend"       env:"CORPUS_BACKEND" env-default:"sqlite"`
	DBPath       string `yaml:"db_path"       env:"DB_PATH"`
	WordListFile string `yaml:"wordlist_file" env:"WORDLIST_FILE"`
	AddendumFile string `yaml:"addendum_file" env:"ADDENDUM_FILE"`
}

// SourcesConfig holds the remote endpoints the solver reads from.
type SourcesConfig struct {
	GameURL     string        `yaml:"game_url"     env:"GAME_URL"     env-default:"https://www.nytimes.com/puzzles/spelling-bee"`
	WordListURL string        `yaml:"wordlist_url" env:"WORDLIST_URL" env-default:"https://www.wordgamedictionary.com/twl06/download/twl06.txt"`
	DatamuseURL string        `yaml:"datamuse_url" env:"DATAMUSE_URL" env-default:"https://api.datamuse.com/words"`
	Timeout     time.Duration `yaml:"timeout"      env:"HTTP_TIMEOUT" env-default:"30s"`
}

// DefineConfig tunes definition lookups.
type DefineConfig struct {
	Concurrency int `yaml:"concurrency" env:"DEFINE_CONCURRENCY" env-default:"8"`
	MaxEntries  int `yaml:"max_entries" env:"DEFINE_MAX_ENTRIES" env-default:"4"`
	CacheSize   int `yaml:"cache_size"  env:"DEFINE_CACHE_SIZE"  env-default:"1024"`
}

// DisplayConfig holds console output settings.
type DisplayConfig struct {
	Width int `yaml:"width" env:"MAX_LINE_WIDTH" env-default:"72"`
}

// LogConfig holds logging settings. An empty File logs to DataDir/sbsolver.log.
type LogConfig struct {
	Level string `yaml:"level" env:"LOG_LEVEL" env-default:"info"`
	File  string `yaml:"file"  env:"LOG_FILE"`
}

// ServeConfig holds the JSON API settings.
type ServeConfig struct {
	Addr string `yaml:"addr" env:"SERVE_ADDR" env-default:":8080"`
}
