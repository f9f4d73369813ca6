/*
Package config manages TOML config for the analyzer services.
*/
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"
)

// Config holds the entire config structure.
type Config struct {
	Dict   DictConfig   `toml:"dict"`
	Tagger TaggerConfig `toml:"tagger"`
}

// DictConfig selects the dictionaries to bind.
type DictConfig struct {
	// Dir is the compiled dictionary directory; empty selects the
	// embedded default dictionary.
	Dir string `toml:"dir"`
	// UserDir optionally names a user dictionary merged over the base.
	UserDir string `toml:"user_dir"`
	// TokenizeUnknownKatakana groups an unmatched katakana run into one
	// token instead of per-character tokens.
	TokenizeUnknownKatakana bool `toml:"tokenize_unknown_katakana"`
}

// TaggerConfig holds analysis options.
type TaggerConfig struct {
	// BufferSize is the rune capacity of the streaming read buffer.
	BufferSize int `toml:"buffer_size"`
	// UnknownCost is the emission cost of out-of-vocabulary tokens.
	UnknownCost int `toml:"unknown_cost"`
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Dict: DictConfig{},
		Tagger: TaggerConfig{
			BufferSize:  4096,
			UnknownCost: 30000,
		},
	}
}

// LoadConfig loads from a TOML file, filling missing keys from defaults.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("load config %s: %w", path, err)
	}
	if cfg.Tagger.BufferSize <= 0 {
		log.Warnf("buffer_size %d invalid, using default", cfg.Tagger.BufferSize)
		cfg.Tagger.BufferSize = DefaultConfig().Tagger.BufferSize
	}
	return cfg, nil
}

// LoadConfigWithFallback loads the config at path when it exists and falls
// back to the builtin defaults otherwise. A missing path is not an error;
// an unreadable or invalid file is reported and defaults are used.
func LoadConfigWithFallback(path string) *Config {
	if path == "" {
		return DefaultConfig()
	}
	if _, err := os.Stat(path); err != nil {
		log.Debugf("no config at %s, using defaults", path)
		return DefaultConfig()
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		log.Warnf("failed to load config from %s: %v. Using builtin defaults...", path, err)
		return DefaultConfig()
	}
	log.Debugf("loaded config from %s", path)
	return cfg
}
