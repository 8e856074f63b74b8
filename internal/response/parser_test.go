package response

import (
	"strings"
	"testing"

	"github.com/averill/quill/internal/selection"
	"github.com/averill/quill/internal/strategy"
)

func TestParsePlainProse(t *testing.T) {
	p := NewParser(Options{})

	got := p.Parse("no tags at all, just prose", "continue", selection.Info{})

	if got.Content != "no tags at all, just prose" {
		t.Errorf("Content = %q, want the trimmed input", got.Content)
	}
	if got.Strategy != strategy.Append {
		t.Errorf("Strategy = %v, want %v", got.Strategy, strategy.Append)
	}
	if got.HasThinking {
		t.Error("HasThinking = true, want false for untagged input")
	}
}

func TestParseThinkingAndFinalOutput(t *testing.T) {
	p := NewParser(Options{})

	got := p.Parse("<thinking>x</thinking><final_output>Hello</final_output>", "rewrite", selection.Info{})

	if got.Thinking != "x" {
		t.Errorf("Thinking = %q, want %q", got.Thinking, "x")
	}
	if !got.HasThinking {
		t.Error("HasThinking = false, want true")
	}
	if got.Content != "Hello" {
		t.Errorf("Content = %q, want %q", got.Content, "Hello")
	}
	if got.Strategy != strategy.TargetedEdit {
		t.Errorf("Strategy = %v, want %v", got.Strategy, strategy.TargetedEdit)
	}
}

func TestParseReasoningBlocksInDocumentOrder(t *testing.T) {
	p := NewParser(Options{})
	raw := "<reasoning>one</reasoning>\n\nBody text.\n\n<think>two</think>"

	got := p.Parse(raw, "improve", selection.Info{})

	if got.Thinking != "one\n\ntwo" {
		t.Errorf("Thinking = %q, want blocks joined in document order", got.Thinking)
	}
	if got.Content != "Body text." {
		t.Errorf("Content = %q, want %q", got.Content, "Body text.")
	}
	if strings.Contains(got.Content, "<") {
		t.Errorf("Content %q still contains tag markup", got.Content)
	}
}

func TestParseRepeatedAlias(t *testing.T) {
	p := NewParser(Options{})

	got := p.Parse("<think>a</think>mid<think>b</think>", "fix", selection.Info{})

	if got.Thinking != "a\n\nb" {
		t.Errorf("Thinking = %q, want %q", got.Thinking, "a\n\nb")
	}
	if got.Content != "mid" {
		t.Errorf("Content = %q, want %q", got.Content, "mid")
	}
}

func TestParseEmptyReasoningBlock(t *testing.T) {
	p := NewParser(Options{})

	got := p.Parse("<thinking></thinking>Hello", "continue", selection.Info{})

	if !got.HasThinking {
		t.Error("HasThinking = false, want true for a present empty block")
	}
	if got.Thinking != "" {
		t.Errorf("Thinking = %q, want empty", got.Thinking)
	}
	if got.Content != "Hello" {
		t.Errorf("Content = %q, want %q", got.Content, "Hello")
	}
}

func TestParseCaseInsensitiveMultiline(t *testing.T) {
	p := NewParser(Options{})

	got := p.Parse("<THINKING>line1\nline2</THINKING>done", "continue", selection.Info{})

	if got.Thinking != "line1\nline2" {
		t.Errorf("Thinking = %q, want %q", got.Thinking, "line1\nline2")
	}
	if got.Content != "done" {
		t.Errorf("Content = %q, want %q", got.Content, "done")
	}
}

func TestParseExtraReasoningTags(t *testing.T) {
	p := NewParser(Options{ExtraReasoningTags: []string{"scratchpad"}})

	got := p.Parse("<scratchpad>hm</scratchpad>Done.", "continue", selection.Info{})

	if got.Thinking != "hm" {
		t.Errorf("Thinking = %q, want %q", got.Thinking, "hm")
	}
	if got.Content != "Done." {
		t.Errorf("Content = %q, want %q", got.Content, "Done.")
	}
}

func TestParseFirstFinalOutputWins(t *testing.T) {
	p := NewParser(Options{})

	got := p.Parse("<final_output>one</final_output><final_output>two</final_output>", "rewrite", selection.Info{})

	if got.Content != "one" {
		t.Errorf("Content = %q, want %q", got.Content, "one")
	}
}

func TestParseGenericSweepPreservesInnerText(t *testing.T) {
	p := NewParser(Options{})

	got := p.Parse("Intro <answer>kept text</answer> outro", "continue", selection.Info{})

	if got.Content != "Intro kept text outro" {
		t.Errorf("Content = %q, want %q", got.Content, "Intro kept text outro")
	}
}

func TestParseSweepLeavesComparisonsAlone(t *testing.T) {
	p := NewParser(Options{})
	raw := "valid for x < 10 and y > 2"

	got := p.Parse(raw, "continue", selection.Info{})

	if got.Content != raw {
		t.Errorf("Content = %q, want %q untouched", got.Content, raw)
	}
}

func TestParseCollapsesNewlineRuns(t *testing.T) {
	p := NewParser(Options{})

	got := p.Parse("first\n\n\n\n\nsecond", "continue", selection.Info{})

	if got.Content != "first\n\nsecond" {
		t.Errorf("Content = %q, want %q", got.Content, "first\n\nsecond")
	}
}

func TestParseRawFallbackForComplexEdit(t *testing.T) {
	p := NewParser(Options{})
	raw := "<final_output>  </final_output>Polished text here."

	got := p.Parse(raw, "improve", selection.Info{})

	if got.Content != "Polished text here." {
		t.Errorf("Content = %q, want the surviving prose", got.Content)
	}
	if got.Diagnostic {
		t.Error("Diagnostic = true, want false when the fallback recovered prose")
	}
	if got.Strategy != strategy.TargetedEdit {
		t.Errorf("Strategy = %v, want %v", got.Strategy, strategy.TargetedEdit)
	}
}

func TestParseNoFallbackForSimpleCommands(t *testing.T) {
	p := NewParser(Options{})
	raw := "<final_output>  </final_output>"

	got := p.Parse(raw, "continue", selection.Info{})

	if !got.Diagnostic {
		t.Error("Diagnostic = false, want true when nothing usable was recovered")
	}
	if got.Strategy != strategy.ContextOnly {
		t.Errorf("Strategy = %v, want forced %v", got.Strategy, strategy.ContextOnly)
	}
}

func TestParseEmptyInputYieldsDiagnostic(t *testing.T) {
	p := NewParser(Options{})

	got := p.Parse("   ", "rewrite", selection.Info{})

	if !got.Diagnostic {
		t.Error("Diagnostic = false, want true")
	}
	if got.Content == "" {
		t.Error("Content is empty, want a user-facing notice")
	}
	if got.Strategy != strategy.ContextOnly {
		t.Errorf("Strategy = %v, want forced %v", got.Strategy, strategy.ContextOnly)
	}
	if len(got.Suggestions) != 1 || got.Suggestions[0] != got.Content {
		t.Errorf("Suggestions = %v, want the notice routed to the side channel", got.Suggestions)
	}
}

func TestParseContextOnlySetsSuggestions(t *testing.T) {
	p := NewParser(Options{})

	got := p.Parse("Use shorter sentences.", "suggest", selection.Info{})

	if got.Strategy != strategy.ContextOnly {
		t.Errorf("Strategy = %v, want %v", got.Strategy, strategy.ContextOnly)
	}
	if len(got.Suggestions) != 1 || got.Suggestions[0] != "Use shorter sentences." {
		t.Errorf("Suggestions = %v, want [%q]", got.Suggestions, "Use shorter sentences.")
	}
}

func TestParseTruncatesOnGraphemeBoundary(t *testing.T) {
	p := NewParser(Options{MaxContentLength: 5})

	got := p.Parse("héllo world", "continue", selection.Info{})

	if !got.Truncated {
		t.Fatal("Truncated = false, want true")
	}
	if !strings.HasPrefix(got.Content, "héll") {
		t.Errorf("Content = %q, want prefix %q", got.Content, "héll")
	}
	if !strings.HasSuffix(got.Content, "[response truncated]") {
		t.Errorf("Content = %q, want a visible truncation notice", got.Content)
	}
}

func TestTruncateGraphemesNeverSplitsCluster(t *testing.T) {
	// Each thumbs-up is 4 bytes; a 6-byte cap must keep exactly one.
	got := truncateGraphemes("\U0001F44D\U0001F44D\U0001F44D", 6)
	if got != "\U0001F44D" {
		t.Errorf("truncateGraphemes() = %q, want a single cluster", got)
	}

	if got := truncateGraphemes("short", 100); got != "short" {
		t.Errorf("truncateGraphemes() = %q, want input unchanged", got)
	}
}

func TestParseUnknownCommandDefaultsToReplace(t *testing.T) {
	p := NewParser(Options{})

	got := p.Parse("some text", "frobnicate", selection.Info{})

	if got.Strategy != strategy.Replace {
		t.Errorf("Strategy = %v, want %v", got.Strategy, strategy.Replace)
	}
}
