package screen

import (
	"time"

	"github.com/atotto/clipboard"

	"github.com/henri123lemoine/twig/internal/engine"
	"github.com/henri123lemoine/twig/internal/git"
)

// Deps are the collaborators shared by all screens.
type Deps struct {
	Backend git.Backend
	Ops     engine.Operations
	Events  engine.Emitter

	// Remote is the configured remote name; empty picks one automatically.
	Remote string
	Editor string

	// Clipboard and Now are replaced in tests.
	Clipboard func(string) error
	Now       func() time.Time
}

func (d *Deps) emit(ev engine.Event) {
	d.Events.Emit(ev)
}

func (d *Deps) focus(t engine.Target) {
	d.Events.Emit(engine.RequestFocus{Target: t})
}

func (d *Deps) changed(c engine.Change) {
	d.Events.Emit(engine.RepositoryChanged{Change: c})
}

func (d *Deps) remote() string {
	return d.Backend.PrimaryRemote(d.Remote)
}

func (d *Deps) copy(text string) error {
	if d.Clipboard != nil {
		return d.Clipboard(text)
	}
	return clipboard.WriteAll(text)
}

func (d *Deps) now() time.Time {
	if d.Now != nil {
		return d.Now()
	}
	return time.Now()
}
