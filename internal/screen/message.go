package screen

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/henri123lemoine/twig/internal/engine"
	"github.com/henri123lemoine/twig/internal/ui"
)

// MessagePopup shows a short message, with a progress bar once an
// operation reports progress.
type MessagePopup struct {
	base
	deps *Deps

	text     string
	label    string
	percent  int
	tracking bool

	spinner  spinner.Model
	progress progress.Model
	ticking  bool
}

// NewMessagePopup returns the transient message popup.
func NewMessagePopup(deps *Deps) *MessagePopup {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = ui.PathStyle
	return &MessagePopup{
		deps:     deps,
		spinner:  s,
		progress: progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage()),
	}
}

func (p *MessagePopup) Update() error { return nil }

// SetMessage replaces the text and forgets earlier progress.
func (p *MessagePopup) SetMessage(text string) {
	p.text = text
	p.label = ""
	p.percent = 0
	p.tracking = false
}

// SetProgress records an operation's percent complete.
func (p *MessagePopup) SetProgress(label string, percent int) {
	p.tracking = true
	p.label = label
	p.percent = min(max(percent, 0), 100)
}

// Percent returns the last reported progress.
func (p *MessagePopup) Percent() int {
	return p.percent
}

// Text returns the shown message.
func (p *MessagePopup) Text() string {
	return p.text
}

func (p *MessagePopup) Focus(focused bool) {
	p.base.Focus(focused)
	if !focused {
		p.ticking = false
	}
}

func (p *MessagePopup) SetViewport(width, height int) {
	p.base.SetViewport(width, height)
	p.progress.Width = max(width-6, 10)
}

// Animate drives the spinner. The first call after gaining focus starts
// the tick chain.
func (p *MessagePopup) Animate(msg tea.Msg) tea.Cmd {
	if !p.focused {
		return nil
	}
	if !p.ticking {
		p.ticking = true
		return p.spinner.Tick
	}
	if tick, ok := msg.(spinner.TickMsg); ok {
		var cmd tea.Cmd
		p.spinner, cmd = p.spinner.Update(tick)
		return cmd
	}
	return nil
}

func (p *MessagePopup) HandleInput(msg tea.KeyMsg) error {
	if key.Matches(msg, keys.Cancel) {
		p.deps.focus(engine.Return{})
	}
	return nil
}

func (p *MessagePopup) View() string {
	if !p.tracking {
		return p.text + "\n\n" + ui.HelpStyle.Render("[ESC] hide")
	}
	title := p.text
	if p.percent < 100 {
		title = p.spinner.View() + " " + title
	}
	return title + "\n\n" +
		p.progress.ViewAs(float64(p.percent)/100) + ui.HelpStyle.Render(fmt.Sprintf(" %3d%%", p.percent)) + "\n\n" +
		ui.HelpStyle.Render("[ESC] hide")
}
