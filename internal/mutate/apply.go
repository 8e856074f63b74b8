// Package mutate computes the new document content for a parsed model
// response, honoring the resolved strategy and the selection captured when
// the request was made.
package mutate

import (
	"github.com/averill/quill/internal/logger"
	"github.com/averill/quill/internal/response"
	"github.com/averill/quill/internal/selection"
	"github.com/averill/quill/internal/strategy"
)

// Flags are upstream short-circuits that bypass strategy inference.
type Flags struct {
	// ReplaceEntireContent makes the parsed content the whole document.
	ReplaceEntireContent bool
	// ReplaceSelection targets the captured selection regardless of the
	// resolved strategy.
	ReplaceSelection bool
}

// Result is the outcome of applying a parsed response.
type Result struct {
	Content     string
	Suggestions []string
	// Caret is the byte offset of the end of the inserted span, for the
	// host to restore focus; -1 when nothing was inserted.
	Caret int
	// Applied is false when the document was left untouched.
	Applied bool
}

// Apply merges the parsed content into current. Pure and total: the first
// matching branch wins, no branch panics, and identical arguments always
// produce identical Results. A malformed selection is treated as absent so
// the replace and append fallbacks take over instead of corrupting content.
func Apply(parsed response.Parsed, sel selection.Info, current, command string, flags Flags) Result {
	switch {
	case parsed.Strategy == strategy.ContextOnly:
		logger.DebugTagf("mutate", "context-only result for %q, document untouched", command)
		return Result{Content: current, Suggestions: sideChannel(parsed), Caret: -1}

	case flags.ReplaceEntireContent:
		return applied(parsed.Content, len(parsed.Content))

	case targetsSelection(parsed, flags) && sel.HasSelection() && sel.Valid():
		content := sel.Before + parsed.Content + sel.After
		return applied(content, len(sel.Before)+len(parsed.Content))

	case command == "continue" || parsed.Strategy == strategy.Append:
		content := current + "\n\n" + parsed.Content
		return applied(content, len(content))

	default:
		return applied(parsed.Content, len(parsed.Content))
	}
}

func applied(content string, caret int) Result {
	return Result{Content: content, Caret: caret, Applied: true}
}

// targetsSelection reports whether the response should land on the captured
// selection.
func targetsSelection(parsed response.Parsed, flags Flags) bool {
	if flags.ReplaceSelection {
		return true
	}
	return parsed.Strategy == strategy.TargetedEdit || parsed.Strategy == strategy.InsertAtCursor
}

// sideChannel picks the suggestion payload for a context-only result.
func sideChannel(parsed response.Parsed) []string {
	if len(parsed.Suggestions) > 0 {
		return parsed.Suggestions
	}
	if parsed.Content != "" {
		return []string{parsed.Content}
	}
	return nil
}
