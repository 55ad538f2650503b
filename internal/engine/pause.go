package engine

import (
	"context"
	"sync/atomic"
	"time"
)

// PauseFlag stops the tick source while an external program owns the
// terminal. It is the only state shared between goroutines.
type PauseFlag struct {
	paused atomic.Bool
}

// Pause stops ticks until Resume.
func (p *PauseFlag) Pause() { p.paused.Store(true) }

// Resume restarts ticks.
func (p *PauseFlag) Resume() { p.paused.Store(false) }

// Paused reports whether ticks are suspended.
func (p *PauseFlag) Paused() bool { return p.paused.Load() }

// TickMsg is one periodic tick from the tick source.
type TickMsg struct {
	Time time.Time
}

// RunTicker sends a TickMsg every interval until ctx is done, skipping ticks
// while pause is set. It blocks, so run it on its own goroutine.
func RunTicker(ctx context.Context, interval time.Duration, pause *PauseFlag, send func(any)) {
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-t.C:
			if pause.Paused() {
				continue
			}
			send(TickMsg{Time: now})
		}
	}
}
