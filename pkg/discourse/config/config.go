// Package config holds the YAML configuration of a dialogue assistant:
// service endpoints, cache backend and language resource extensions.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/cognicore/discourse/pkg/discourse/internalerr"
)

// Cache backends.
const (
	BackendFlatfile = "flatfile"
	BackendSQLite   = "sqlite"
)

// Config is the full assistant configuration.
type Config struct {
	// Language of the assistant; "ro" is the only implemented language.
	Language string `yaml:"language"`

	Annotation ServiceConfig `yaml:"annotation"`
	WordNet    ServiceConfig `yaml:"wordnet"`

	Cache CacheConfig `yaml:"cache"`

	// DistanceCacheSize bounds the edit-distance LRU cache; 0 uses the
	// engine default.
	DistanceCacheSize int `yaml:"distance_cache_size"`

	Lexicon LexiconConfig `yaml:"lexicon"`
	Sayings SayingsConfig `yaml:"sayings"`
}

// ServiceConfig locates one external web service.
type ServiceConfig struct {
	URL string `yaml:"url"`
}

// CacheConfig selects and locates the cache persistence backend.
type CacheConfig struct {
	// Backend is "flatfile" or "sqlite"; empty disables persistence.
	Backend string `yaml:"backend"`

	// Flat-file backend paths.
	AnnotationsPath  string `yaml:"annotations_path"`
	EquivalencesPath string `yaml:"equivalences_path"`

	// SQLite backend database path.
	SQLitePath string `yaml:"sqlite_path"`
}

// LexiconConfig extends the built-in language lexicon.
type LexiconConfig struct {
	ExtraFunctionalWords []string `yaml:"extra_functional_words"`
}

// SayingsConfig extends the built-in fixed-phrase tables.
type SayingsConfig struct {
	ExtraOpenings []string `yaml:"extra_openings"`
	ExtraClosings []string `yaml:"extra_closings"`
}

// Default returns the configuration used when no file is given: the public
// RELATE endpoints, no cache persistence.
func Default() *Config {
	return &Config{
		Language:   "ro",
		Annotation: ServiceConfig{URL: "http://relate.racai.ro:5000/process"},
		WordNet:    ServiceConfig{URL: "https://relate.racai.ro/index.php?path=rownws"},
	}
}

// Load reads and validates a YAML configuration file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks internal consistency.
func (c *Config) Validate() error {
	if c.Language != "ro" {
		return fmt.Errorf("%w: unsupported language %q", internalerr.ErrInvalidConfig, c.Language)
	}
	if c.Annotation.URL == "" {
		return fmt.Errorf("%w: annotation url is required", internalerr.ErrInvalidConfig)
	}
	if c.WordNet.URL == "" {
		return fmt.Errorf("%w: wordnet url is required", internalerr.ErrInvalidConfig)
	}
	if c.DistanceCacheSize < 0 {
		return fmt.Errorf("%w: distance_cache_size may not be negative", internalerr.ErrInvalidConfig)
	}

	switch c.Cache.Backend {
	case "":
	case BackendFlatfile:
		if c.Cache.AnnotationsPath == "" || c.Cache.EquivalencesPath == "" {
			return fmt.Errorf("%w: flatfile backend needs annotations_path and equivalences_path",
				internalerr.ErrInvalidConfig)
		}
	case BackendSQLite:
		if c.Cache.SQLitePath == "" {
			return fmt.Errorf("%w: sqlite backend needs sqlite_path", internalerr.ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: unknown cache backend %q", internalerr.ErrInvalidConfig, c.Cache.Backend)
	}
	return nil
}
