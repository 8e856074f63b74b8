package history

import "time"

// guardState is the replay guard's two-state machine.
type guardState int

const (
	guardIdle guardState = iota
	guardReplaying
)

// replayGuard suppresses history recording while an undo/redo step
// propagates back through the document owner. It remembers the replayed
// entry so the owner's eventual push of that same state is recognized as an
// echo and discarded instead of recorded. The guard is owned by Manager and
// only touched under its lock.
type replayGuard struct {
	state   guardState
	echo    *Entry
	gen     uint64
	release *time.Timer
}

func (g *replayGuard) replaying() bool { return g.state == guardReplaying }

// begin enters Replaying for entry e and schedules the return to Idle after
// d, so the guard always clears even if no push ever arrives. The
// generation passed to onRelease invalidates release timers that were
// superseded by a newer begin.
func (g *replayGuard) begin(e Entry, d time.Duration, onRelease func(gen uint64)) {
	g.state = guardReplaying
	echo := e
	g.echo = &echo
	g.gen++
	gen := g.gen
	if g.release != nil {
		g.release.Stop()
	}
	g.release = time.AfterFunc(d, func() { onRelease(gen) })
}

// releaseIf returns to Idle when gen still names the latest begin.
func (g *replayGuard) releaseIf(gen uint64) {
	if gen == g.gen {
		g.state = guardIdle
	}
}

// isEcho reports whether e matches the remembered replayed entry. The echo
// outlives the Replaying state: the owner's push may land after release.
func (g *replayGuard) isEcho(e Entry) bool {
	return g.echo != nil && g.echo.Equal(e)
}

// clearEcho forgets the remembered entry.
func (g *replayGuard) clearEcho() { g.echo = nil }

// stop cancels the pending release timer.
func (g *replayGuard) stop() {
	if g.release != nil {
		g.release.Stop()
		g.release = nil
	}
}
