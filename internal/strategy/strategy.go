// Package strategy maps assistant command names to mutation strategies. The
// command table ships as data, extended by config overrides, never as
// scattered conditionals.
package strategy

import "strings"

// Strategy describes how newly generated text is merged into the document.
type Strategy int

const (
	// Replace makes the new content the entire document. It is the default
	// for unmapped commands: full replacement is always well-defined.
	Replace Strategy = iota
	// Append concatenates the new content after the existing content with a
	// blank-line separator, independent of selection.
	Append
	// TargetedEdit replaces the current selection when one exists.
	TargetedEdit
	// InsertAtCursor inserts at the caret, replacing any selection.
	InsertAtCursor
	// ContextOnly routes the content to the suggestion side channel; it
	// never touches the document.
	ContextOnly
)

var strategyNames = map[Strategy]string{
	Replace:        "replace",
	Append:         "append",
	TargetedEdit:   "targeted-edit",
	InsertAtCursor: "insert-at-cursor",
	ContextOnly:    "context-only",
}

func (s Strategy) String() string {
	if name, ok := strategyNames[s]; ok {
		return name
	}
	return "replace"
}

// Parse maps a strategy name (as written in config) back to a Strategy.
func Parse(name string) (Strategy, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for s, n := range strategyNames {
		if n == name {
			return s, true
		}
	}
	return Replace, false
}

// defaultTable is the authoritative command to strategy mapping.
var defaultTable = map[string]Strategy{
	"continue":  Append,
	"expand":    Append,
	"suggest":   ContextOnly,
	"analyze":   ContextOnly,
	"help":      ContextOnly,
	"improve":   TargetedEdit,
	"fix":       TargetedEdit,
	"rewrite":   TargetedEdit,
	"tone":      TargetedEdit,
	"translate": TargetedEdit,
	"format":    TargetedEdit,
	"simplify":  TargetedEdit,
	"summarize": InsertAtCursor,
	"list":      InsertAtCursor,
	"outline":   InsertAtCursor,
}
