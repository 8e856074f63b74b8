package config

import (
	"flag"
)

// Flags holds values parsed from the command line. Pointer fields record
// whether a flag was actually set, so unset flags never clobber file values.
type Flags struct {
	ConfigPath *string
	LogLevel   *string
	LogFile    *string
	MaxHistory *int
	Debounce   *string

	set map[string]bool
}

// DefineFlags registers the command-line flags on fs.
func DefineFlags(fs *flag.FlagSet) *Flags {
	f := &Flags{set: make(map[string]bool)}
	f.ConfigPath = fs.String("config", "", "path to config file")
	f.LogLevel = fs.String("log-level", "", "log level (debug, info, warn, error)")
	f.LogFile = fs.String("log-file", "", "log file path (\"-\" for stderr)")
	f.MaxHistory = fs.Int("max-history", 0, "maximum undo history entries")
	f.Debounce = fs.String("debounce", "", "history debounce window (e.g. 400ms)")
	return f
}

// ParseFlags parses args and records which flags were explicitly set.
func (f *Flags) ParseFlags(fs *flag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		return err
	}
	fs.Visit(func(fl *flag.Flag) {
		f.set[fl.Name] = true
	})
	return nil
}

// Set reports whether the named flag was given on the command line.
func (f *Flags) Set(name string) bool { return f.set[name] }

// ApplyOverrides overlays explicitly set flags onto cfg.
func (f *Flags) ApplyOverrides(cfg *Config) {
	if f.Set("log-level") {
		cfg.Logger.Level = *f.LogLevel
	}
	if f.Set("log-file") {
		cfg.Logger.FilePath = *f.LogFile
	}
	if f.Set("max-history") {
		cfg.History.MaxEntries = *f.MaxHistory
	}
	if f.Set("debounce") {
		cfg.History.Debounce = *f.Debounce
	}
}
