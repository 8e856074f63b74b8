package config

import "time"

// Base application details
const AppName = "quill"
const ConfigDirName = "quill"
const DefaultConfigFileName = "config.toml"
const DefaultLogFileName = "quill.log"

// History defaults. The debounce window coalesces bursts of organic edits
// into one snapshot; the replay release is how long the history manager
// stays deaf to pushes after applying an undo/redo step.
const DefaultMaxHistory = 50
const DefaultDebounce = 400 * time.Millisecond
const DefaultReplayRelease = 150 * time.Millisecond

// Parser defaults
const DefaultMaxContentLength = 100_000
