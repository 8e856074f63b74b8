// Package response recovers structured intent from the raw, loosely
// structured text a language model returns: cleaned content, optional
// reasoning text, optional suggestions, and the mutation strategy.
package response

import (
	"strings"

	"github.com/rivo/uniseg"

	"github.com/averill/quill/internal/config"
	"github.com/averill/quill/internal/logger"
	"github.com/averill/quill/internal/selection"
	"github.com/averill/quill/internal/strategy"
)

// Parsed is the structured result recovered from one model response. It is
// produced once per completed call and consumed immediately by the applier.
type Parsed struct {
	Content     string
	Thinking    string
	HasThinking bool // distinguishes "no reasoning blocks" from an empty block
	Suggestions []string
	Strategy    strategy.Strategy
	Truncated   bool
	Diagnostic  bool // Content is a parse-failure notice, not model prose
}

// complexEditCommands rewrite existing prose. Their model output is prose,
// not markup, so the empty-content fallback keeps the raw text instead of
// running the generic tag sweep that would mangle it.
var complexEditCommands = map[string]struct{}{
	"improve":   {},
	"fix":       {},
	"rewrite":   {},
	"tone":      {},
	"translate": {},
	"format":    {},
	"simplify":  {},
}

// parseFailureNotice is surfaced as a context-only suggestion when no usable
// content can be recovered. It is never written into the document.
const parseFailureNotice = "The response could not be turned into an edit: no usable text was found. " +
	"Try running the command again, or rephrase the request."

const truncationNotice = "\n\n[response truncated]"

// Options tunes a Parser.
type Options struct {
	// MaxContentLength caps Content in bytes; 0 selects the default.
	MaxContentLength int
	// ExtraReasoningTags extends the built-in reasoning tag aliases.
	ExtraReasoningTags []string
	// Resolver maps commands to strategies; nil selects the default table.
	Resolver *strategy.Resolver
}

// Parser converts raw model text into Parsed results. All fields are set at
// construction; a Parser is safe for concurrent use.
type Parser struct {
	resolver  *strategy.Resolver
	reasoning *reasoningExtractor
	maxLen    int
}

// NewParser builds a Parser from opts.
func NewParser(opts Options) *Parser {
	if opts.MaxContentLength <= 0 {
		opts.MaxContentLength = config.DefaultMaxContentLength
	}
	if opts.Resolver == nil {
		opts.Resolver = strategy.NewResolver(nil)
	}
	aliases := append(append([]string(nil), defaultReasoningTags...), opts.ExtraReasoningTags...)
	return &Parser{
		resolver:  opts.Resolver,
		reasoning: newReasoningExtractor(aliases),
		maxLen:    opts.MaxContentLength,
	}
}

// Parse recovers a structured result from raw model output. It never
// panics; when nothing usable can be recovered it degrades to a
// context-only diagnostic rather than writing noise into the document.
func (p *Parser) Parse(raw, command string, sel selection.Info) Parsed {
	logger.DebugTagf("response", "parsing %d bytes for command %q (selection %d bytes)",
		len(raw), command, len(sel.Text))

	var out Parsed

	blocks, cleaned := p.reasoning.extract(raw)
	if len(blocks) > 0 {
		out.HasThinking = true
		out.Thinking = strings.Join(blocks, "\n\n")
	}

	content, hadFinal := extractFinalOutput(cleaned)
	if !hadFinal {
		content = sweepTags(cleaned)
	}

	if content == "" && isComplexEdit(command) {
		// Keep the prose as the model wrote it; only unwrap any empty
		// final-answer envelope left behind.
		content = strings.TrimSpace(finalOutputRe.ReplaceAllString(cleaned, "$1"))
		if content != "" {
			logger.DebugTagf("response", "empty after cleanup, kept raw prose for %q", command)
		}
	}

	forced := false
	if content == "" {
		content = parseFailureNotice
		out.Diagnostic = true
		forced = true
		logger.WarnTagf("response", "no usable content for command %q, surfacing diagnostic", command)
	}

	if len(content) > p.maxLen {
		content = truncateGraphemes(content, p.maxLen) + truncationNotice
		out.Truncated = true
		logger.WarnTagf("response", "content truncated to %d bytes", p.maxLen)
	}
	out.Content = content

	if forced {
		out.Strategy = strategy.ContextOnly
	} else {
		out.Strategy = p.resolver.Resolve(command)
	}
	if out.Strategy == strategy.ContextOnly {
		out.Suggestions = []string{out.Content}
	}
	return out
}

// isComplexEdit reports whether command rewrites existing prose.
func isComplexEdit(command string) bool {
	_, ok := complexEditCommands[strings.ToLower(strings.TrimSpace(command))]
	return ok
}

// truncateGraphemes cuts s to at most max bytes without splitting a
// grapheme cluster.
func truncateGraphemes(s string, max int) string {
	if len(s) <= max {
		return s
	}
	g := uniseg.NewGraphemes(s)
	end := 0
	for g.Next() {
		_, to := g.Positions()
		if to > max {
			break
		}
		end = to
	}
	return s[:end]
}
