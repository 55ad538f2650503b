package engine

import (
	"context"
	"os/exec"
)

// Event flows from screens and background operations into the event loop.
// The set of implementations is closed.
type Event interface {
	isEvent()
}

// RequestFocus asks the loop to move focus to Target.
type RequestFocus struct {
	Target Target
}

// ReportFailure asks the loop to show Err in the error popup.
type ReportFailure struct {
	Err error
}

// Change says which view of the repository went stale.
type Change int

const (
	LogStale Change = iota
	BranchesStale
	StatusStale
	DiffStale
)

// Screens returns the screens that must refresh for the change.
func (c Change) Screens() []ScreenID {
	switch c {
	case LogStale:
		return []ScreenID{CommitLog, FileStatus, WorkingDiff, StagedDiff}
	case BranchesStale:
		return []ScreenID{BranchList, CommitLog, FileStatus}
	case StatusStale:
		return []ScreenID{FileStatus, WorkingDiff, StagedDiff}
	case DiffStale:
		return []ScreenID{WorkingDiff, StagedDiff}
	}
	return nil
}

// RepositoryChanged forces an immediate refresh of the affected screens.
type RepositoryChanged struct {
	Change Change
}

// RequestExit ends the session.
type RequestExit struct{}

// RequestRedrawReset forces a full repaint of the terminal.
type RequestRedrawReset struct{}

// OperationProgress reports a background operation's percent complete.
type OperationProgress struct {
	Op      OpID
	Label   string
	Percent int
}

// RunExternal asks the loop to hand the terminal to Cmd. OnExit, if set,
// maps the command's result to a follow-up event.
type RunExternal struct {
	Cmd    *exec.Cmd
	OnExit func(err error) Event
}

func (RequestFocus) isEvent()       {}
func (ReportFailure) isEvent()      {}
func (RepositoryChanged) isEvent()  {}
func (RequestExit) isEvent()        {}
func (RequestRedrawReset) isEvent() {}
func (OperationProgress) isEvent()  {}
func (RunExternal) isEvent()        {}

// Emitter accepts events.
type Emitter interface {
	Emit(Event)
}

// Queue collects events emitted on the loop goroutine while a screen runs,
// to be processed after it returns.
type Queue struct {
	events []Event
}

// Emit appends ev.
func (q *Queue) Emit(ev Event) {
	q.events = append(q.events, ev)
}

// Drain returns and clears the queued events in emission order.
func (q *Queue) Drain() []Event {
	events := q.events
	q.events = nil
	return events
}

// Bus carries events from background goroutines to the loop. Events from one
// sender arrive in the order they were posted.
type Bus struct {
	ch chan Event
}

// NewBus returns a bus buffering up to size events.
func NewBus(size int) *Bus {
	return &Bus{ch: make(chan Event, size)}
}

// Post blocks until ev is queued or ctx is done. It reports whether ev was
// queued.
func (b *Bus) Post(ctx context.Context, ev Event) bool {
	select {
	case b.ch <- ev:
		return true
	case <-ctx.Done():
		return false
	}
}

// Events is the receiving side of the bus.
func (b *Bus) Events() <-chan Event {
	return b.ch
}
