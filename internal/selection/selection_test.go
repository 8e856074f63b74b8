package selection

import "testing"

func TestCapture(t *testing.T) {
	content := "A. B."
	info := Capture(content, 3, 5)

	if info.Text != "B." {
		t.Errorf("Text = %q, want %q", info.Text, "B.")
	}
	if info.Before != "A. " {
		t.Errorf("Before = %q, want %q", info.Before, "A. ")
	}
	if info.After != "" {
		t.Errorf("After = %q, want %q", info.After, "")
	}
	if got := info.Before + info.Text + info.After; got != content {
		t.Errorf("reassembled = %q, want %q", got, content)
	}
	if !info.Valid() {
		t.Error("Valid() = false, want true")
	}
	if !info.ConsistentWith(content) {
		t.Error("ConsistentWith(original) = false, want true")
	}
}

func TestCaptureSwapsInvertedRange(t *testing.T) {
	info := Capture("hello world", 5, 0)
	if info.Text != "hello" {
		t.Errorf("Text = %q, want %q", info.Text, "hello")
	}
	if info.Start != 0 || info.End != 5 {
		t.Errorf("range = [%d, %d), want [0, 5)", info.Start, info.End)
	}
}

func TestCaptureClampsOutOfRange(t *testing.T) {
	content := "abc"
	info := Capture(content, -2, 99)
	if info.Text != content {
		t.Errorf("Text = %q, want %q", info.Text, content)
	}
	if info.Start != 0 || info.End != len(content) {
		t.Errorf("range = [%d, %d), want [0, %d)", info.Start, info.End, len(content))
	}
}

func TestCaptureAlignsToRuneBoundary(t *testing.T) {
	content := "héllo" // é is two bytes: offsets 1 and 2
	info := Capture(content, 2, 4)

	if info.Start != 1 {
		t.Errorf("Start = %d, want aligned to 1", info.Start)
	}
	if got := info.Before + info.Text + info.After; got != content {
		t.Errorf("reassembled = %q, want %q", got, content)
	}
}

func TestCaret(t *testing.T) {
	info := Caret("hello", 3)
	if info.HasSelection() {
		t.Error("HasSelection() = true for a collapsed caret, want false")
	}
	if info.Before != "hel" || info.After != "lo" {
		t.Errorf("Before/After = %q/%q, want %q/%q", info.Before, info.After, "hel", "lo")
	}
}

func TestConsistentWithDetectsDrift(t *testing.T) {
	info := Capture("A. B.", 3, 5)
	if info.ConsistentWith("A. C.") {
		t.Error("ConsistentWith(drifted) = true, want false")
	}
}

func TestValidRejectsMismatchedFields(t *testing.T) {
	bad := Info{Text: "xy", Start: 1, End: 2, Before: "aaa", After: ""}
	if bad.Valid() {
		t.Error("Valid() = true for mismatched fields, want false")
	}
}
