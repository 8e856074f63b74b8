// Package logger provides the shared, filterable logging facility.
package logger

import (
	"log/slog"
	"strings"
)

// Config holds all logger settings. It is embedded in the application
// config under the [logger] table.
type Config struct {
	// Level is the minimum level to log: "debug", "info", "warn", "error".
	Level string `toml:"level"`

	// FilePath is where log output goes. Empty or "-" means stderr.
	FilePath string `toml:"file"`

	// EnabledTags, when non-empty, restricts output to records carrying
	// one of these tags. DisabledTags drops matching records and wins
	// over EnabledTags.
	EnabledTags  []string `toml:"enabled_tags"`
	DisabledTags []string `toml:"disabled_tags"`

	// EnabledPackages/DisabledPackages filter by the immediate directory
	// name of the call site (e.g. "history", "response", "assistant").
	EnabledPackages  []string `toml:"enabled_packages"`
	DisabledPackages []string `toml:"disabled_packages"`

	// processed forms, built by normalize().
	level        slog.Level
	enabledTags  map[string]struct{}
	disabledTags map[string]struct{}
	enabledPkgs  map[string]struct{}
	disabledPkgs map[string]struct{}
}

// normalize parses the string level and converts the filter lists into
// lookup sets. Safe to call on a zero Config.
func (c *Config) normalize() {
	switch strings.ToLower(c.Level) {
	case "debug":
		c.level = slog.LevelDebug
	case "warn", "warning":
		c.level = slog.LevelWarn
	case "error", "err":
		c.level = slog.LevelError
	default:
		c.level = slog.LevelInfo
	}

	c.enabledTags = toSet(c.EnabledTags)
	c.disabledTags = toSet(c.DisabledTags)
	c.enabledPkgs = toSet(c.EnabledPackages)
	c.disabledPkgs = toSet(c.DisabledPackages)
}

// toSet lowercases the items into a set; a nil map means "no filter",
// which keeps the handler checks cheap.
func toSet(items []string) map[string]struct{} {
	set := make(map[string]struct{}, len(items))
	for _, item := range items {
		item = strings.TrimSpace(item)
		if item != "" {
			set[strings.ToLower(item)] = struct{}{}
		}
	}
	if len(set) == 0 {
		return nil
	}
	return set
}
