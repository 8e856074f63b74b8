// Package history maintains the branching, debounced undo/redo stack of
// document snapshots. Organic edits are coalesced through a debounce window
// before they become entries; undo/redo replays are guarded so they are
// never re-recorded as new history.
package history

// Entry is one recorded document snapshot.
type Entry struct {
	Title   string
	Content string
}

// Equal reports whether two snapshots are textually identical.
func (e Entry) Equal(other Entry) bool {
	return e.Title == other.Title && e.Content == other.Content
}
