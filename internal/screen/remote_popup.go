package screen

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/henri123lemoine/twig/internal/engine"
	"github.com/henri123lemoine/twig/internal/git"
	"github.com/henri123lemoine/twig/internal/ui"
)

// RemotePopup offers to add a remote when the repository has none.
type RemotePopup struct {
	base
	deps *Deps

	asking bool
	inputs [2]textinput.Model
	field  int
	err    error
}

const (
	remoteNameField = iota
	remoteURLField
)

// NewRemotePopup returns the remote setup popup.
func NewRemotePopup(deps *Deps) *RemotePopup {
	p := &RemotePopup{deps: deps}
	p.inputs[remoteNameField] = newInput("origin", 0)
	p.inputs[remoteURLField] = newInput("git@example.com:user/repo.git", 0)
	p.inputs[remoteNameField].Prompt = "Name: "
	p.inputs[remoteURLField].Prompt = "URL:  "
	return p
}

func (p *RemotePopup) Update() error { return nil }

func (p *RemotePopup) Focus(focused bool) {
	p.base.Focus(focused)
	if !focused {
		return
	}
	p.asking = true
	p.err = nil
	p.field = remoteNameField
	for i := range p.inputs {
		p.inputs[i].Reset()
		p.inputs[i].Blur()
	}
}

func (p *RemotePopup) SetViewport(width, height int) {
	p.base.SetViewport(width, height)
	for i := range p.inputs {
		p.inputs[i].Width = max(width-len(p.inputs[i].Prompt)-1, 1)
	}
}

// Error returns the last validation error.
func (p *RemotePopup) Error() error {
	return p.err
}

func (p *RemotePopup) HandleInput(msg tea.KeyMsg) error {
	if key.Matches(msg, keys.Cancel) {
		p.deps.focus(engine.Return{})
		return nil
	}

	if p.asking {
		switch {
		case key.Matches(msg, keys.Yes):
			p.asking = false
			p.inputs[p.field].Focus()
		case key.Matches(msg, keys.No):
			p.deps.focus(engine.Return{})
		}
		return nil
	}

	switch {
	case key.Matches(msg, keys.SwitchField):
		p.inputs[p.field].Blur()
		p.field = (p.field + 1) % len(p.inputs)
		p.inputs[p.field].Focus()
	case key.Matches(msg, keys.Confirm):
		return p.submit()
	default:
		p.inputs[p.field] = updateInput(p.inputs[p.field], msg)
	}
	return nil
}

func (p *RemotePopup) submit() error {
	name := strings.TrimSpace(p.inputs[remoteNameField].Value())
	if name == "" {
		name = p.inputs[remoteNameField].Placeholder
	}
	url := strings.TrimSpace(p.inputs[remoteURLField].Value())
	if err := git.ValidateRemote(name, url); err != nil {
		p.err = err
		return nil
	}
	if err := p.deps.Backend.AddRemote(name, url); err != nil {
		return err
	}
	p.deps.changed(engine.BranchesStale)
	p.deps.focus(engine.Return{})
	return nil
}

func (p *RemotePopup) View() string {
	if p.asking {
		return "No remotes found. Add one?\n\n" + ui.HelpStyle.Render(helpLine(keys.Yes, keys.No))
	}

	var b strings.Builder
	for _, in := range p.inputs {
		b.WriteString(in.View())
		b.WriteByte('\n')
	}
	if p.err != nil {
		b.WriteString(ui.ErrorStyle.Render(p.err.Error()))
	}
	b.WriteString("\n" + ui.HelpStyle.Render(helpLine(keys.SwitchField, keys.Confirm, keys.Cancel)))
	return b.String()
}
