package screen

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/henri123lemoine/twig/internal/engine"
	"github.com/henri123lemoine/twig/internal/ui"
)

// BranchNameLimit caps new branch names.
const BranchNameLimit = 75

// BranchPopup creates a branch at HEAD and switches to it.
type BranchPopup struct {
	base
	deps  *Deps
	input textinput.Model
}

// NewBranchPopup returns the branch creation popup.
func NewBranchPopup(deps *Deps) *BranchPopup {
	return &BranchPopup{deps: deps, input: newInput("new branch name", BranchNameLimit)}
}

func (p *BranchPopup) Update() error { return nil }

func (p *BranchPopup) Focus(focused bool) {
	p.base.Focus(focused)
	if focused {
		p.input.Reset()
		p.input.Focus()
	} else {
		p.input.Blur()
	}
}

func (p *BranchPopup) SetViewport(width, height int) {
	p.base.SetViewport(width, height)
	p.input.Width = max(width-3, 1)
}

func (p *BranchPopup) HandleInput(msg tea.KeyMsg) error {
	switch {
	case key.Matches(msg, keys.Cancel):
		p.deps.focus(engine.Return{})
	case key.Matches(msg, keys.DeleteWord):
		p.input.SetValue(deleteLastWord(p.input.Value()))
		p.input.CursorEnd()
	case key.Matches(msg, keys.Confirm):
		name := strings.TrimSpace(p.input.Value())
		if name == "" {
			return nil
		}
		if err := p.deps.Backend.CreateBranch(name); err != nil {
			return err
		}
		p.deps.changed(engine.BranchesStale)
		p.deps.focus(engine.Return{})
	default:
		p.input = updateInput(p.input, msg)
	}
	return nil
}

func (p *BranchPopup) View() string {
	return p.input.View() + "\n\n" + ui.HelpStyle.Render(helpLine(keys.Confirm, keys.DeleteWord, keys.Cancel))
}
