// Package config loads the indexer and querier settings from an optional YAML
// file, then applies TSE_* environment overrides on top of the defaults.
package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config is the top-level configuration.
type Config struct {
	Logging   LoggingConfig   `yaml:"logging"`
	Index     IndexConfig     `yaml:"index"`
	Query     QueryConfig     `yaml:"query"`
	PageStore PageStoreConfig `yaml:"pageStore"`
}

// LoggingConfig controls structured logging level and output format.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// IndexConfig controls index construction.
type IndexConfig struct {
	Buckets       int `yaml:"buckets"`
	MinWordLength int `yaml:"minWordLength"`
}

type QueryConfig struct {
	ScoreboardCapacity int `yaml:"scoreboardCapacity"`
}

// PageStoreConfig selects an optional key-value cache in front of the crawler
// directory. Cache is "", "badger" or "bolt".
type PageStoreConfig struct {
	Cache    string `yaml:"cache"`
	CacheDir string `yaml:"cacheDir"`
}

// Load reads a YAML config file (if provided) and applies environment-variable
// overrides.
func Load(path string) (*Config, error) {
	cfg := defaultConfig()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file %s: %w", path, err)
		}
	}
	applyEnvOverrides(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects settings the index and querier cannot run with.
func (c *Config) Validate() error {
	if c.Index.Buckets <= 0 {
		return fmt.Errorf("index.buckets must be positive, got %d", c.Index.Buckets)
	}
	if c.Index.MinWordLength < 1 {
		return fmt.Errorf("index.minWordLength must be at least 1, got %d", c.Index.MinWordLength)
	}
	if c.Query.ScoreboardCapacity < 0 {
		return fmt.Errorf("query.scoreboardCapacity must not be negative, got %d", c.Query.ScoreboardCapacity)
	}
	switch c.PageStore.Cache {
	case "", "badger", "bolt":
	default:
		return fmt.Errorf("pageStore.cache must be badger or bolt, got %q", c.PageStore.Cache)
	}
	if c.PageStore.Cache != "" && c.PageStore.CacheDir == "" {
		return fmt.Errorf("pageStore.cacheDir is required when pageStore.cache is set")
	}
	return nil
}

func defaultConfig() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:  "warn",
			Format: "text",
		},
		Index: IndexConfig{
			Buckets:       200,
			MinWordLength: 3,
		},
		Query: QueryConfig{
			ScoreboardCapacity: 100,
		},
	}
}

// applyEnvOverrides reads TSE_* environment variables and overrides the
// corresponding config fields.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("TSE_LOGGING_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("TSE_LOGGING_FORMAT"); v != "" {
		cfg.Logging.Format = v
	}
	if v := os.Getenv("TSE_INDEX_BUCKETS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Index.Buckets = n
		}
	}
	if v := os.Getenv("TSE_INDEX_MIN_WORD_LENGTH"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Index.MinWordLength = n
		}
	}
	if v := os.Getenv("TSE_QUERY_SCOREBOARD_CAPACITY"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Query.ScoreboardCapacity = n
		}
	}
	if v := os.Getenv("TSE_PAGESTORE_CACHE"); v != "" {
		cfg.PageStore.Cache = v
	}
	if v := os.Getenv("TSE_PAGESTORE_CACHE_DIR"); v != "" {
		cfg.PageStore.CacheDir = v
	}
}
