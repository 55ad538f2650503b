package screen

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/henri123lemoine/twig/internal/engine"
	"github.com/henri123lemoine/twig/internal/git"
	"github.com/henri123lemoine/twig/internal/git/gittest"
)

// fakeOps records started operations.
type fakeOps struct {
	started []string
}

func (o *fakeOps) RunPush(remote, branch string) {
	o.started = append(o.started, "push "+remote+" "+branch)
}
func (o *fakeOps) RunFetch(remote string) {
	o.started = append(o.started, "fetch "+remote)
}
func (o *fakeOps) RunPullSelected(remote, branch string) {
	o.started = append(o.started, "pull "+remote+" "+branch)
}
func (o *fakeOps) RunPullHead(remote string) {
	o.started = append(o.started, "pull-head "+remote)
}

type fixture struct {
	backend *gittest.Fake
	ops     *fakeOps
	events  *engine.Queue
	copied  []string
	deps    *Deps
}

func newFixture() *fixture {
	f := &fixture{
		backend: gittest.New(),
		ops:     &fakeOps{},
		events:  &engine.Queue{},
	}
	f.deps = &Deps{
		Backend: f.backend,
		Ops:     f.ops,
		Events:  f.events,
		Clipboard: func(s string) error {
			f.copied = append(f.copied, s)
			return nil
		},
		Now: func() time.Time { return time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC) },
	}
	return f
}

// focusTargets returns the targets of queued RequestFocus events.
func focusTargets(events []engine.Event) []engine.Target {
	var out []engine.Target
	for _, ev := range events {
		if rf, ok := ev.(engine.RequestFocus); ok {
			out = append(out, rf.Target)
		}
	}
	return out
}

func changes(events []engine.Event) []engine.Change {
	var out []engine.Change
	for _, ev := range events {
		if rc, ok := ev.(engine.RepositoryChanged); ok {
			out = append(out, rc.Change)
		}
	}
	return out
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func keyOf(t tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: t}
}

func press(t interface{ HandleInput(tea.KeyMsg) error }, msgs ...tea.KeyMsg) error {
	for _, m := range msgs {
		if err := t.HandleInput(m); err != nil {
			return err
		}
	}
	return nil
}

func commit(id, summary string) git.Commit {
	return git.Commit{ID: id, Summary: summary, Author: "A", Email: "a@example.com"}
}
