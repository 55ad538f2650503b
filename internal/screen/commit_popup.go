package screen

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/henri123lemoine/twig/internal/engine"
	"github.com/henri123lemoine/twig/internal/ui"
)

// CommitPopup asks for a one-line commit message.
type CommitPopup struct {
	base
	deps  *Deps
	input textinput.Model
}

// NewCommitPopup returns the commit message popup.
func NewCommitPopup(deps *Deps) *CommitPopup {
	return &CommitPopup{deps: deps, input: newInput("commit message", 0)}
}

func (p *CommitPopup) Update() error { return nil }

func (p *CommitPopup) Focus(focused bool) {
	p.base.Focus(focused)
	if focused {
		p.input.Reset()
		p.input.Focus()
	} else {
		p.input.Blur()
	}
}

func (p *CommitPopup) SetViewport(width, height int) {
	p.base.SetViewport(width, height)
	p.input.Width = max(width-3, 1)
}

func (p *CommitPopup) HandleInput(msg tea.KeyMsg) error {
	switch {
	case key.Matches(msg, keys.Cancel):
		p.deps.focus(engine.Return{})
	case key.Matches(msg, keys.Confirm):
		message := strings.TrimSpace(p.input.Value())
		if message == "" {
			return nil
		}
		if err := p.deps.Backend.Commit(message); err != nil {
			return err
		}
		p.deps.changed(engine.LogStale)
		p.deps.focus(engine.Return{})
	default:
		p.input = updateInput(p.input, msg)
	}
	return nil
}

func (p *CommitPopup) View() string {
	return p.input.View() + "\n\n" + ui.HelpStyle.Render(helpLine(keys.Confirm, keys.Cancel))
}
