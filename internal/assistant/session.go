// Package assistant orchestrates the mutation pipeline around one document:
// organic edits and model responses flow in, document mutations, history
// snapshots, and suggestion side channels flow out.
package assistant

import (
	"errors"
	"fmt"
	"sync"

	"github.com/averill/quill/internal/clipboard"
	"github.com/averill/quill/internal/config"
	"github.com/averill/quill/internal/document"
	"github.com/averill/quill/internal/event"
	"github.com/averill/quill/internal/history"
	"github.com/averill/quill/internal/logger"
	"github.com/averill/quill/internal/mutate"
	"github.com/averill/quill/internal/provider"
	"github.com/averill/quill/internal/response"
	"github.com/averill/quill/internal/selection"
	"github.com/averill/quill/internal/strategy"
)

var (
	// ErrClosed is returned by operations on a closed session.
	ErrClosed = errors.New("assistant: session closed")
	// ErrNoProvider is returned by Dispatch and Run when the session was
	// built without a provider.
	ErrNoProvider = errors.New("assistant: no provider configured")
)

// Options assembles a Session.
type Options struct {
	Title   string
	Content string
	// Config tunes the parser, history, and clipboard; nil uses defaults.
	Config *config.Config
	// Provider backs Dispatch and Run; nil limits the session to HandleRaw.
	Provider provider.Provider
	// Events receives the session's event traffic; nil creates a private bus.
	Events *event.Manager
}

// pendingRequest is the state captured at dispatch time. Responses are
// applied against this, not against the live selection at delivery time.
type pendingRequest struct {
	command   string
	selection selection.Info
	flags     mutate.Flags
}

// Session wires the document, parser, resolver, history, and side channels
// into one assistant editing session. Safe for concurrent use.
type Session struct {
	mu sync.Mutex

	doc      *document.Document
	parser   *response.Parser
	resolver *strategy.Resolver
	hist     *history.Manager
	events   *event.Manager
	clip     *clipboard.Manager
	prov     provider.Provider

	pending     map[string]pendingRequest
	suggestions []string
	closed      bool
}

// NewSession builds a session seeded with the given document state.
func NewSession(opts Options) *Session {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.NewDefaultConfig()
	}

	resolver := strategy.NewResolver(cfg.Commands)
	doc := document.New(opts.Title, opts.Content)
	events := opts.Events
	if events == nil {
		events = event.NewManager()
	}

	return &Session{
		doc:      doc,
		resolver: resolver,
		parser: response.NewParser(response.Options{
			MaxContentLength:   cfg.Parser.MaxContentLength,
			ExtraReasoningTags: cfg.Parser.ExtraReasoningTags,
			Resolver:           resolver,
		}),
		hist: history.NewManager(history.Options{
			MaxEntries:    cfg.History.MaxEntries,
			Debounce:      cfg.History.DebounceDuration(),
			ReplayRelease: cfg.History.ReplayReleaseDuration(),
			Seed:          doc.Snapshot(),
		}),
		events:  events,
		clip:    clipboard.NewManager(cfg.Clipboard.SystemClipboard),
		prov:    opts.Provider,
		pending: make(map[string]pendingRequest),
	}
}

// UpdateContent records an organic content edit (the typing path). The
// change reaches history once the debounce window elapses.
func (s *Session) UpdateContent(content string) {
	if s.isClosed() {
		return
	}
	s.doc.SetContent(content)
	s.hist.Push(s.doc.Snapshot())
}

// UpdateTitle records an organic title edit.
func (s *Session) UpdateTitle(title string) {
	if s.isClosed() {
		return
	}
	s.doc.SetTitle(title)
	s.hist.Push(s.doc.Snapshot())
	s.events.Dispatch(event.TypeTitleChanged, event.TitleChangedData{Title: title})
}

// Select sets the live selection range.
func (s *Session) Select(start, end int) { s.doc.Select(start, end) }

// CursorTo collapses the selection at pos.
func (s *Session) CursorTo(pos int) { s.doc.CursorTo(pos) }

// Undo restores the previous snapshot. The restored state is not
// re-recorded as new history.
func (s *Session) Undo() (history.Entry, bool) {
	e, ok := s.hist.Undo()
	if !ok {
		return history.Entry{}, false
	}
	s.doc.Restore(e)
	s.events.Dispatch(event.TypeHistoryMoved, event.HistoryMovedData{Direction: "undo", Index: s.hist.Index()})
	return e, true
}

// Redo restores the next snapshot, symmetric to Undo.
func (s *Session) Redo() (history.Entry, bool) {
	e, ok := s.hist.Redo()
	if !ok {
		return history.Entry{}, false
	}
	s.doc.Restore(e)
	s.events.Dispatch(event.TypeHistoryMoved, event.HistoryMovedData{Direction: "redo", Index: s.hist.Index()})
	return e, true
}

// CanUndo reports whether a step back exists.
func (s *Session) CanUndo() bool { return s.hist.CanUndo() }

// CanRedo reports whether a step forward exists.
func (s *Session) CanRedo() bool { return s.hist.CanRedo() }

// Title returns the current document title.
func (s *Session) Title() string { return s.doc.Title() }

// Content returns the current document content.
func (s *Session) Content() string { return s.doc.Content() }

// Stats reports the document's grapheme and word counts.
func (s *Session) Stats() (graphemes, words int) { return s.doc.Stats() }

// Commands returns the known command vocabulary.
func (s *Session) Commands() []string { return s.resolver.Known() }

// Events returns the session's event bus for hosts to subscribe on.
func (s *Session) Events() *event.Manager { return s.events }

// Suggestions returns a copy of the retained suggestion list.
func (s *Session) Suggestions() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.suggestions))
	copy(out, s.suggestions)
	return out
}

// CopySuggestion puts the suggestion at index i on the clipboard.
func (s *Session) CopySuggestion(i int) error {
	s.mu.Lock()
	if i < 0 || i >= len(s.suggestions) {
		n := len(s.suggestions)
		s.mu.Unlock()
		return fmt.Errorf("no suggestion at index %d (have %d)", i, n)
	}
	text := s.suggestions[i]
	s.mu.Unlock()
	return s.clip.Write(text)
}

// ClearSuggestions drops the retained suggestions.
func (s *Session) ClearSuggestions() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.suggestions = nil
}

// Flush commits any pending debounced history push immediately. Hosts call
// it before reading history state at a barrier (save, unmount).
func (s *Session) Flush() { s.hist.Flush() }

// Close flushes pending history and stops the session. Responses arriving
// after Close are dropped.
func (s *Session) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	s.mu.Unlock()

	s.hist.Flush()
	s.hist.Close()
	logger.InfoTagf("assistant", "session closed")
}

func (s *Session) isClosed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}
