package strategy

import "testing"

func TestResolveTable(t *testing.T) {
	r := NewResolver(nil)

	tests := []struct {
		command string
		want    Strategy
	}{
		{"continue", Append},
		{"expand", Append},
		{"suggest", ContextOnly},
		{"analyze", ContextOnly},
		{"help", ContextOnly},
		{"improve", TargetedEdit},
		{"fix", TargetedEdit},
		{"rewrite", TargetedEdit},
		{"tone", TargetedEdit},
		{"translate", TargetedEdit},
		{"format", TargetedEdit},
		{"simplify", TargetedEdit},
		{"summarize", InsertAtCursor},
		{"list", InsertAtCursor},
		{"outline", InsertAtCursor},
	}
	for _, tt := range tests {
		if got := r.Resolve(tt.command); got != tt.want {
			t.Errorf("Resolve(%q) = %v, want %v", tt.command, got, tt.want)
		}
	}
}

func TestResolveUnknownDefaultsToReplace(t *testing.T) {
	r := NewResolver(nil)
	for _, command := range []string{"", "frobnicate", "IMPROVE-ish"} {
		if got := r.Resolve(command); got != Replace {
			t.Errorf("Resolve(%q) = %v, want %v", command, got, Replace)
		}
	}
}

func TestResolveNormalizesCase(t *testing.T) {
	r := NewResolver(nil)
	if got := r.Resolve("  Improve "); got != TargetedEdit {
		t.Errorf("Resolve(\"  Improve \") = %v, want %v", got, TargetedEdit)
	}
}

func TestResolverOverrides(t *testing.T) {
	r := NewResolver(map[string]string{
		"polish":  "targeted-edit",
		"improve": "replace",
		"bogus":   "no-such-strategy",
	})

	if got := r.Resolve("polish"); got != TargetedEdit {
		t.Errorf("Resolve(polish) = %v, want %v", got, TargetedEdit)
	}
	if got := r.Resolve("improve"); got != Replace {
		t.Errorf("Resolve(improve) with override = %v, want %v", got, Replace)
	}
	// The invalid override is skipped; the command stays unmapped.
	if got := r.Resolve("bogus"); got != Replace {
		t.Errorf("Resolve(bogus) = %v, want %v", got, Replace)
	}
}

func TestNearest(t *testing.T) {
	r := NewResolver(nil)

	got, ok := r.Nearest("improv")
	if !ok {
		t.Fatal("Nearest(improv) reported no candidate")
	}
	if got != "improve" {
		t.Errorf("Nearest(improv) = %q, want %q", got, "improve")
	}

	if _, ok := r.Nearest(""); ok {
		t.Error("Nearest(\"\") reported a candidate, want none")
	}
}

func TestStrategyRoundTrip(t *testing.T) {
	for _, s := range []Strategy{Replace, Append, TargetedEdit, InsertAtCursor, ContextOnly} {
		parsed, ok := Parse(s.String())
		if !ok || parsed != s {
			t.Errorf("Parse(%q) = %v, %v; want %v, true", s.String(), parsed, ok, s)
		}
	}
	if _, ok := Parse("nonsense"); ok {
		t.Error("Parse(nonsense) = true, want false")
	}
}
