// Package config loads and validates the application's combined
// configuration: defaults, then the TOML config file, then flag overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/averill/quill/internal/logger"
)

// Config holds the application's combined configuration.
type Config struct {
	Logger    logger.Config     `toml:"logger"`
	History   HistoryConfig     `toml:"history"`
	Parser    ParserConfig      `toml:"parser"`
	Clipboard ClipboardConfig   `toml:"clipboard"`
	Commands  map[string]string `toml:"commands"` // command name -> strategy name overrides
}

// HistoryConfig tunes the undo/redo manager.
type HistoryConfig struct {
	MaxEntries    int    `toml:"max_entries"`
	Debounce      string `toml:"debounce"`       // duration string, e.g. "400ms"
	ReplayRelease string `toml:"replay_release"` // duration string, e.g. "150ms"

	debounce      time.Duration
	replayRelease time.Duration
}

// DebounceDuration returns the parsed debounce window.
func (h HistoryConfig) DebounceDuration() time.Duration { return h.debounce }

// ReplayReleaseDuration returns the parsed replay release delay.
func (h HistoryConfig) ReplayReleaseDuration() time.Duration { return h.replayRelease }

// ParserConfig tunes the model-response parser.
type ParserConfig struct {
	MaxContentLength int `toml:"max_content_length"`
	// ExtraReasoningTags extends the built-in reasoning tag aliases
	// (think, thinking, reasoning, thinkpad).
	ExtraReasoningTags []string `toml:"extra_reasoning_tags"`
}

// ClipboardConfig selects between the internal register and the OS clipboard.
type ClipboardConfig struct {
	SystemClipboard bool `toml:"system_clipboard"`
}

// NewDefaultConfig creates a Config with default values, already validated.
func NewDefaultConfig() *Config {
	cfg := &Config{
		Logger: logger.Config{
			Level:    "info",
			FilePath: "",
		},
		History: HistoryConfig{
			MaxEntries:    DefaultMaxHistory,
			Debounce:      DefaultDebounce.String(),
			ReplayRelease: DefaultReplayRelease.String(),
		},
		Parser: ParserConfig{
			MaxContentLength: DefaultMaxContentLength,
		},
		Clipboard: ClipboardConfig{
			SystemClipboard: false,
		},
	}
	cfg.validate()
	return cfg
}

// DefaultPath returns the conventional config file location,
// ~/.config/quill/config.toml (or the platform equivalent).
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, ConfigDirName, DefaultConfigFileName)
}

// Load builds the effective configuration: defaults, overlaid by the TOML
// file at path (missing file is not an error), overlaid by any parsed
// flags, then validated. An empty path selects DefaultPath().
func Load(path string, flags *Flags) (*Config, error) {
	cfg := NewDefaultConfig()

	if path == "" {
		path = DefaultPath()
	}
	if path != "" {
		if err := decodeFile(path, cfg); err != nil {
			return nil, err
		}
	}

	if flags != nil {
		flags.ApplyOverrides(cfg)
	}

	cfg.validate()
	return cfg, nil
}

// decodeFile overlays the TOML file onto cfg. Keys absent from the file
// leave the existing (default) values untouched.
func decodeFile(path string, cfg *Config) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	} else if err != nil {
		return fmt.Errorf("check config file %q: %w", path, err)
	}

	metadata, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return fmt.Errorf("parse config file %q: %w", path, err)
	}
	for _, key := range metadata.Undecoded() {
		logger.Warnf("config file %q: unrecognized key %q", path, key.String())
	}
	return nil
}

// validate clamps invalid values back to defaults and parses durations.
func (c *Config) validate() {
	if c.History.MaxEntries <= 1 {
		c.History.MaxEntries = DefaultMaxHistory
	}
	c.History.debounce = parseDuration(c.History.Debounce, DefaultDebounce)
	c.History.replayRelease = parseDuration(c.History.ReplayRelease, DefaultReplayRelease)

	if c.Parser.MaxContentLength <= 0 {
		c.Parser.MaxContentLength = DefaultMaxContentLength
	}
	if c.Logger.Level == "" {
		c.Logger.Level = "info"
	}
}

func parseDuration(s string, fallback time.Duration) time.Duration {
	if s == "" {
		return fallback
	}
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		logger.Warnf("config: invalid duration %q, using %v", s, fallback)
		return fallback
	}
	return d
}
