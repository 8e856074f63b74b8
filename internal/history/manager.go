package history

import (
	"sync"
	"time"

	"github.com/averill/quill/internal/config"
	"github.com/averill/quill/internal/logger"
)

// Options tunes a Manager.
type Options struct {
	// MaxEntries caps the stack; the oldest entry is evicted beyond it.
	MaxEntries int
	// Debounce is the quiet window a push must survive before it is
	// recorded.
	Debounce time.Duration
	// ReplayRelease is how long the manager stays deaf to pushes after
	// handing out an undo/redo entry.
	ReplayRelease time.Duration
	// Seed is the initial snapshot (the document's state at mount).
	Seed Entry
}

// Manager owns the undo/redo stack. Two write paths feed it: organic edits
// arrive through Push and are debounced into entries; Undo and Redo replay
// recorded entries and must never be re-recorded. All methods are safe for
// concurrent use.
type Manager struct {
	mu      sync.Mutex
	entries []Entry
	current int

	maxEntries    int
	debounce      time.Duration
	replayRelease time.Duration

	pending      *Entry // waiting out the debounce window
	pendingGen   uint64
	pendingTimer *time.Timer // single handle, cancel-then-reschedule

	guard  replayGuard
	closed bool
}

// NewManager creates a manager seeded with opts.Seed.
func NewManager(opts Options) *Manager {
	if opts.MaxEntries <= 1 {
		opts.MaxEntries = config.DefaultMaxHistory
	}
	if opts.Debounce <= 0 {
		opts.Debounce = config.DefaultDebounce
	}
	if opts.ReplayRelease <= 0 {
		opts.ReplayRelease = config.DefaultReplayRelease
	}
	return &Manager{
		entries:       []Entry{opts.Seed},
		current:       0,
		maxEntries:    opts.MaxEntries,
		debounce:      opts.Debounce,
		replayRelease: opts.ReplayRelease,
	}
}

// Push offers a new snapshot. Pushes during a replay are ignored; the echo
// of the last replayed entry is discarded unrecorded; everything else
// restarts the debounce window and is committed when it elapses.
func (m *Manager) Push(e Entry) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return
	}
	if m.guard.replaying() {
		logger.DebugTagf("history", "push ignored, replay in flight")
		return
	}
	if m.guard.isEcho(e) {
		m.guard.clearEcho()
		logger.DebugTagf("history", "push discarded, replay echo")
		return
	}

	m.pending = &e
	m.pendingGen++
	gen := m.pendingGen
	if m.pendingTimer != nil {
		m.pendingTimer.Stop()
	}
	m.pendingTimer = time.AfterFunc(m.debounce, func() { m.commitPending(gen) })
}

// commitPending runs on the debounce timer goroutine.
func (m *Manager) commitPending(gen uint64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if gen != m.pendingGen {
		return
	}
	m.commitLocked()
}

// commitLocked records the pending entry unless it equals the current one.
// Recording after an undo truncates the forward branch (branch discard).
func (m *Manager) commitLocked() {
	if m.pending == nil || m.closed {
		return
	}
	e := *m.pending
	m.pending = nil
	if m.pendingTimer != nil {
		m.pendingTimer.Stop()
		m.pendingTimer = nil
	}

	if m.entries[m.current].Equal(e) {
		return
	}

	m.entries = append(m.entries[:m.current+1], e)
	m.current = len(m.entries) - 1

	if over := len(m.entries) - m.maxEntries; over > 0 {
		m.entries = append([]Entry(nil), m.entries[over:]...)
		m.current -= over
		if m.current < 0 {
			m.current = 0
		}
	}
	logger.DebugTagf("history", "recorded snapshot, index %d, size %d", m.current, len(m.entries))
}

// Undo steps back one snapshot and returns it for the owner to apply. The
// second return is false at the oldest entry. A pending organic edit is
// committed first so it stays reachable by redo.
func (m *Manager) Undo() (Entry, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return Entry{}, false
	}
	m.commitLocked()
	if m.current == 0 {
		logger.DebugTagf("history", "nothing to undo")
		return Entry{}, false
	}

	m.current--
	e := m.entries[m.current]
	m.beginReplayLocked(e)
	logger.DebugTagf("history", "undo to index %d of %d", m.current, len(m.entries))
	return e, true
}

// Redo steps forward one snapshot, symmetric to Undo.
func (m *Manager) Redo() (Entry, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return Entry{}, false
	}
	m.commitLocked()
	if m.current >= len(m.entries)-1 {
		logger.DebugTagf("history", "nothing to redo")
		return Entry{}, false
	}

	m.current++
	e := m.entries[m.current]
	m.beginReplayLocked(e)
	logger.DebugTagf("history", "redo to index %d of %d", m.current, len(m.entries))
	return e, true
}

func (m *Manager) beginReplayLocked(e Entry) {
	m.guard.begin(e, m.replayRelease, m.releaseReplay)
}

// releaseReplay runs on the guard's release timer goroutine.
func (m *Manager) releaseReplay(gen uint64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.guard.releaseIf(gen)
}

// Clear resets the stack to a single snapshot of the current state and
// drops any pending debounced push.
func (m *Manager) Clear(e Entry) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.dropPendingLocked()
	m.entries = []Entry{e}
	m.current = 0
	logger.DebugTagf("history", "cleared")
}

// Flush commits a pending debounced push immediately.
func (m *Manager) Flush() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.commitLocked()
}

// Close stops all timers and makes every further call a no-op.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return
	}
	m.closed = true
	m.dropPendingLocked()
	m.guard.stop()
}

func (m *Manager) dropPendingLocked() {
	m.pending = nil
	m.pendingGen++
	if m.pendingTimer != nil {
		m.pendingTimer.Stop()
		m.pendingTimer = nil
	}
}

// CanUndo reports whether a step back exists.
func (m *Manager) CanUndo() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.current > 0
}

// CanRedo reports whether a step forward exists.
func (m *Manager) CanRedo() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.current < len(m.entries)-1
}

// Len returns the number of recorded snapshots.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}

// Index returns the current position in the stack.
func (m *Manager) Index() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.current
}

// Current returns the snapshot at the current position.
func (m *Manager) Current() Entry {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.entries[m.current]
}
