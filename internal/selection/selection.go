// Package selection captures the caret and selection state of a document as
// an immutable value object. A snapshot is taken per action and informs
// exactly one mutation; it is never updated in place.
package selection

import "unicode/utf8"

// Info is a snapshot of the selection at a point in time. Offsets are byte
// positions into the content string it was captured from. Before + Text +
// After reassembles that content.
type Info struct {
	Text   string
	Start  int
	End    int
	Before string
	After  string
}

// Capture snapshots the range [start, end) of content. Out-of-range offsets
// are clamped, inverted ranges are swapped, and offsets falling inside a
// UTF-8 sequence are moved back to the rune boundary.
func Capture(content string, start, end int) Info {
	if start > end {
		start, end = end, start
	}
	start = alignLeft(content, clamp(start, len(content)))
	end = alignLeft(content, clamp(end, len(content)))

	return Info{
		Text:   content[start:end],
		Start:  start,
		End:    end,
		Before: content[:start],
		After:  content[end:],
	}
}

// Caret snapshots a collapsed selection at pos.
func Caret(content string, pos int) Info {
	return Capture(content, pos, pos)
}

// HasSelection reports whether the snapshot covers a non-empty range.
func (i Info) HasSelection() bool { return i.Text != "" }

// Valid reports whether the snapshot's parts cohere with its offsets. A
// hand-built Info with mismatched fields fails this check; a snapshot from
// Capture always passes.
func (i Info) Valid() bool {
	return i.Start >= 0 && i.Start <= i.End &&
		len(i.Before) == i.Start &&
		i.End-i.Start == len(i.Text)
}

// ConsistentWith reports whether the snapshot still reassembles content.
// False means the document drifted underneath after capture.
func (i Info) ConsistentWith(content string) bool {
	return i.Before+i.Text+i.After == content
}

func clamp(n, max int) int {
	if n < 0 {
		return 0
	}
	if n > max {
		return max
	}
	return n
}

// alignLeft moves pos back to the start of the rune it falls inside.
func alignLeft(s string, pos int) int {
	for pos > 0 && pos < len(s) && !utf8.RuneStart(s[pos]) {
		pos--
	}
	return pos
}
