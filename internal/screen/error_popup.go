package screen

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/henri123lemoine/twig/internal/engine"
	"github.com/henri123lemoine/twig/internal/ui"
)

// ErrorPopup shows a failure until dismissed.
type ErrorPopup struct {
	base
	deps    *Deps
	failure *engine.Failure
}

// NewErrorPopup returns the error popup.
func NewErrorPopup(deps *Deps) *ErrorPopup {
	return &ErrorPopup{deps: deps}
}

func (p *ErrorPopup) Update() error { return nil }

// SetFailure sets the failure to show.
func (p *ErrorPopup) SetFailure(f *engine.Failure) {
	p.failure = f
}

// Failure returns the shown failure.
func (p *ErrorPopup) Failure() *engine.Failure {
	return p.failure
}

func (p *ErrorPopup) HandleInput(msg tea.KeyMsg) error {
	if key.Matches(msg, keys.Cancel) {
		p.deps.focus(engine.Return{})
	}
	return nil
}

func (p *ErrorPopup) View() string {
	if p.failure == nil {
		return ""
	}
	header := p.failure.Kind.String()
	if p.failure.Code != 0 {
		header = fmt.Sprintf("%s (code %d)", header, p.failure.Code)
	}
	body := lipgloss.NewStyle().Width(max(p.width, 1)).Render(p.failure.Message)
	return ui.ErrorStyle.Render(header) + "\n\n" + body + "\n\n" + ui.HelpStyle.Render("[ESC] close")
}
