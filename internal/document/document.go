// Package document holds the live document model: the one component that
// owns the title and content strings the pipeline mutates.
package document

import (
	"strings"
	"sync"

	"github.com/rivo/uniseg"

	"github.com/averill/quill/internal/history"
	"github.com/averill/quill/internal/mutate"
	"github.com/averill/quill/internal/selection"
)

// Document is the single owner of a title/content pair plus the live caret
// and selection anchor. Offsets are bytes into the content string. Safe for
// concurrent use.
type Document struct {
	mu      sync.RWMutex
	title   string
	content string
	anchor  int // selection anchor
	caret   int // active end of the selection
}

// New creates a document with the caret at the end of content.
func New(title, content string) *Document {
	return &Document{
		title:   title,
		content: content,
		anchor:  len(content),
		caret:   len(content),
	}
}

// Title returns the current title.
func (d *Document) Title() string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.title
}

// Content returns the current content.
func (d *Document) Content() string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.content
}

// SetTitle replaces the title.
func (d *Document) SetTitle(title string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.title = title
}

// SetContent replaces the content wholesale (the organic edit path),
// clamping the caret and anchor into the new bounds.
func (d *Document) SetContent(content string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.content = content
	d.anchor = clamp(d.anchor, len(content))
	d.caret = clamp(d.caret, len(content))
}

// Select sets the selection to [start, end); end is the active side.
func (d *Document) Select(start, end int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.anchor = clamp(start, len(d.content))
	d.caret = clamp(end, len(d.content))
}

// CursorTo collapses the selection at pos.
func (d *Document) CursorTo(pos int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.caret = clamp(pos, len(d.content))
	d.anchor = d.caret
}

// Caret returns the caret position.
func (d *Document) Caret() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.caret
}

// Capture snapshots the current selection against the current content.
func (d *Document) Capture() selection.Info {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return selection.Capture(d.content, d.anchor, d.caret)
}

// ApplyMutation installs an applied mutation result: new content with the
// caret at the end of the inserted span and the selection collapsed. A
// result that did not touch the document is ignored.
func (d *Document) ApplyMutation(res mutate.Result) {
	if !res.Applied {
		return
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.content = res.Content
	d.caret = clamp(res.Caret, len(res.Content))
	if res.Caret < 0 {
		d.caret = len(res.Content)
	}
	d.anchor = d.caret
}

// Restore installs a history snapshot, collapsing the selection at the end
// of the restored content.
func (d *Document) Restore(e history.Entry) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.title = e.Title
	d.content = e.Content
	d.caret = len(e.Content)
	d.anchor = d.caret
}

// Snapshot captures the document as a history entry.
func (d *Document) Snapshot() history.Entry {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return history.Entry{Title: d.title, Content: d.content}
}

// Stats reports the content's user-perceived character count (grapheme
// clusters, not bytes) and word count.
func (d *Document) Stats() (graphemes, words int) {
	d.mu.RLock()
	content := d.content
	d.mu.RUnlock()

	graphemes = uniseg.GraphemeClusterCount(content)

	state := -1
	var word string
	rest := content
	for len(rest) > 0 {
		word, rest, state = uniseg.FirstWordInString(rest, state)
		if strings.TrimSpace(word) != "" {
			words++
		}
	}
	return graphemes, words
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
